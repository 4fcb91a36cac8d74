package clean

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAmenities(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "json array",
			input: `["Wifi", "Kitchen", "Heating"]`,
			want:  []string{"Wifi", "Kitchen", "Heating"},
		},
		{
			name:  "preserves order and duplicates",
			input: `["Wifi", "Wifi", "Kitchen"]`,
			want:  []string{"Wifi", "Wifi", "Kitchen"},
		},
		{
			name:  "trims entries",
			input: `["  Wifi ", "Kitchen  "]`,
			want:  []string{"Wifi", "Kitchen"},
		},
		{
			name:  "drops empty entries",
			input: `["Wifi", "", "   ", "Kitchen"]`,
			want:  []string{"Wifi", "Kitchen"},
		},
		{
			name:  "empty array",
			input: `[]`,
			want:  []string{},
		},
		{
			name:  "empty string",
			input: "",
			want:  []string{},
		},
		{
			name:  "malformed json",
			input: `["Wifi", "Kitchen"`,
			want:  []string{},
		},
		{
			name:  "not an array",
			input: `{"Wifi": true}`,
			want:  []string{},
		},
		{
			name:  "non-string elements skipped",
			input: `["Wifi", 42, null, "Kitchen"]`,
			want:  []string{"Wifi", "Kitchen"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseAmenities(tt.input)
			assert.NotNil(t, got)
			assert.Equal(t, tt.want, got)
		})
	}
}
