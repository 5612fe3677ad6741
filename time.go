package doct

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// isoLayout renders local time ISO-8601 style, fractional seconds
// trimmed of trailing zeros.
const isoLayout = "2006-01-02T15:04:05.999999"

// PrettyPrintTime interprets value as a Unix timestamp in seconds and
// returns a string combining a human-relative phrase with the absolute
// local time, e.g. "50 seconds ago (2026-08-25T14:03:21)". Values that
// cannot be read as a number (non-numeric strings, mappings, nil) are
// returned unchanged: this is an advisory formatter used on arbitrary
// fields, never an error path.
func PrettyPrintTime(value any) any {
	ts, ok := timestampSeconds(value)
	if !ok {
		return value
	}
	t := fromUnixSeconds(ts)
	return fmt.Sprintf("%s (%s)", humanize.Time(t), t.Format(isoLayout))
}

// timestampSeconds extracts a float64 Unix timestamp from numeric values
// and numeric strings.
func timestampSeconds(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case string:
		ts, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		return ts, true
	default:
		return 0, false
	}
}

func fromUnixSeconds(ts float64) time.Time {
	sec := int64(ts)
	nsec := int64((ts - float64(sec)) * 1e9)
	return time.Unix(sec, nsec)
}
