package clean

import (
	"strconv"
	"strings"
)

// ParsePrice converts a currency string like "$1,234.56" to a number.
// Missing or unparseable values return nil rather than an error:
// a malformed price means the value is unknown, not that the record
// is invalid.
func ParsePrice(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}
