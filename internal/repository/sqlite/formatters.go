package sqlite

import (
	"strconv"
	"time"
)

// dbTimeLayout is fixed width so that text ordering of created_at matches time ordering.
const dbTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// FormatTimeForDB formats a time.Time value in UTC using the fixed-width storage layout
func FormatTimeForDB(t time.Time) string {
	return t.UTC().Format(dbTimeLayout)
}

// ParseTimeFromDB parses a stored timestamp. Plain RFC3339 values are accepted as well.
func ParseTimeFromDB(s string) (time.Time, error) {
	t, err := time.Parse(dbTimeLayout, s)
	if err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339Nano, s)
}

// boolToDB stores booleans as 0/1 integers
func boolToDB(b bool) int {
	if b {
		return 1
	}
	return 0
}

func formatMillis(d time.Duration) string {
	return strconv.FormatInt(d.Milliseconds(), 10)
}
