package clean

import (
	"encoding/json"
	"strings"
)

// ParseAmenities parses an amenities value, stored in the source data
// as a JSON array string like '["Wifi", "Kitchen"]'. Missing values,
// parse failures and non-array payloads all yield an empty list.
// Source order is preserved and duplicates are kept.
func ParseAmenities(s string) []string {
	if strings.TrimSpace(s) == "" {
		return []string{}
	}

	var parsed []any
	if err := json.Unmarshal([]byte(s), &parsed); err != nil {
		return []string{}
	}

	out := make([]string, 0, len(parsed))
	for _, a := range parsed {
		s, ok := a.(string)
		if !ok {
			continue
		}
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		out = append(out, s)
	}
	return out
}
