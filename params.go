package trainstream

import (
	"net/url"
	"strconv"
	"time"
)

const (
	defaultLimit = 100
	maxLimit     = 1000
	defaultHours = 1
)

// parseLimit reads the limit query parameter, clamped to [1, maxLimit].
// Absent or unparsable values fall back to the default.
func parseLimit(q url.Values) int {
	v, err := strconv.Atoi(q.Get("limit"))
	if err != nil {
		return defaultLimit
	}
	if v < 1 {
		return 1
	}
	if v > maxLimit {
		return maxLimit
	}
	return v
}

// parseSince reads the hours query parameter (default 1 for absent,
// unparsable or non-positive values) and converts it to the since cutoff in
// milliseconds since the Unix epoch.
func parseSince(q url.Values, now time.Time) int64 {
	hours, err := strconv.Atoi(q.Get("hours"))
	if err != nil || hours <= 0 {
		hours = defaultHours
	}
	return now.Add(-time.Duration(hours)*time.Hour).UnixMilli()
}
