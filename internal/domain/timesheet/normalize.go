package timesheet

import (
	"reflect"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

// EpochSeconder is implemented by timestamp wrappers that expose Unix seconds.
type EpochSeconder interface {
	EpochSeconds() int64
}

// Layouts without a zone are read as wall clock in the business timezone.
var localLayouts = []string{
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	"02/01/2006",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Normalize converts any supported timestamp representation into an instant.
// Zone-less values are read in loc. It returns false instead of an error when
// the value cannot be read, and never panics.
func Normalize(raw any, loc *time.Location) (time.Time, bool) {
	if isNilPointer(raw) {
		return time.Time{}, false
	}

	switch v := raw.(type) {
	case nil:
		return time.Time{}, false
	case time.Time:
		if v.IsZero() {
			return time.Time{}, false
		}
		return v, true
	case *time.Time:
		return Normalize(*v, loc)
	case pgtype.Timestamptz:
		if !v.Valid || v.InfinityModifier != pgtype.Finite {
			return time.Time{}, false
		}
		return v.Time, true
	case pgtype.Timestamp:
		if !v.Valid || v.InfinityModifier != pgtype.Finite {
			return time.Time{}, false
		}
		w := v.Time
		return time.Date(w.Year(), w.Month(), w.Day(), w.Hour(), w.Minute(), w.Second(), w.Nanosecond(), loc), true
	case EpochSeconder:
		return epochSeconds(v)
	case int64:
		return time.Unix(v, 0), true
	case string:
		return parseString(v, loc)
	case *string:
		return parseString(*v, loc)
	}
	return time.Time{}, false
}

func isNilPointer(raw any) bool {
	if raw == nil {
		return false
	}
	rv := reflect.ValueOf(raw)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}

// epochSeconds treats a wrapper that panics as unreadable.
func epochSeconds(v EpochSeconder) (t time.Time, ok bool) {
	defer func() {
		if recover() != nil {
			t, ok = time.Time{}, false
		}
	}()
	return time.Unix(v.EpochSeconds(), 0), true
}

func parseString(s string, loc *time.Location) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, true
	}

	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
