package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCalendar(t *testing.T) {
	csv := `listing_id,date,available,price
101,2026-07-01,t,$150.00
101,2026-07-02,f,$150.00
102,2026-07-01,t,
`
	path := writeTemp(t, "calendar.csv", csv)

	days, err := LoadCalendar(path)
	require.NoError(t, err)
	require.Len(t, days, 3)

	assert.Equal(t, int64(101), days[0].ListingID)
	assert.Equal(t, "2026-07-01", days[0].RawDate)
	assert.Equal(t, "t", days[0].RawAvailable)
	assert.Equal(t, "$150.00", days[0].RawPrice)
	assert.Nil(t, days[0].Date) // parsing happens in the cleaning pipeline

	assert.Equal(t, "f", days[1].RawAvailable)
	assert.Equal(t, "", days[2].RawPrice)
}

func TestLoadCalendarMissingRequiredColumn(t *testing.T) {
	csv := `listing_id,available,price
101,t,$150.00
`
	path := writeTemp(t, "nodates.csv", csv)

	_, err := LoadCalendar(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingColumn)
}
