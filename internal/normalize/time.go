package normalize

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/spendscope/spendscope/internal/model"
)

// Timestamp layouts accepted in exports, most specific first.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999Z0700",
	"2006-01-02T15:04:05.999999999Z07",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999Z0700",
	"2006-01-02 15:04:05.999999999Z07",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
	"2006/01/02",
	"20060102",
}

// ParseTime parses s against the accepted layouts.
func ParseTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timeLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// timestamp reads an optional timestamp field. Absent and null values are nil
// without counting as invalid.
func (n *Normalizer) timestamp(rec model.RawRecord, field string, stats *Stats) *time.Time {
	raw, ok := rec[field]
	if !ok || string(raw) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		stats.InvalidTimestamps++
		return nil
	}
	ts, ok := ParseTime(s)
	if !ok {
		if strings.TrimSpace(s) != "" {
			stats.InvalidTimestamps++
		}
		return nil
	}
	return &ts
}
