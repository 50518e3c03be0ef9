package codec

import "time"

// KeepaEpoch is the reference instant for the service's timestamps. The
// wire format carries minute offsets relative to this instant instead of
// absolute times.
var KeepaEpoch = time.Date(2011, time.January, 1, 0, 0, 0, 0, time.UTC)

// MinutesToTime converts a minute offset since KeepaEpoch to a UTC instant.
func MinutesToTime(minutes int64) time.Time {
	return KeepaEpoch.Add(time.Duration(minutes) * time.Minute)
}
