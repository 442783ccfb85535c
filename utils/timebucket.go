package utils

import (
	"time"

	"github.com/jinzhu/now"
)

// BucketKeyLayout is the minute-resolution bucket format shared by the
// expansion engine (write side) and the dispatcher (read side). Both sides
// must format in the same location or due items are silently never found.
const BucketKeyLayout = "2006/01/02-15:04"

// BucketKey truncates a timestamp to its minute and formats it as a bucket
// key, e.g. "2024/01/01-09:00". The instant is normalized to UTC first:
// occurrence times come from client-supplied timestamps that carry arbitrary
// offsets, while the dispatcher queries with the server clock, and both must
// produce the same key for the same instant.
func BucketKey(t time.Time) string {
	return now.With(t.UTC()).BeginningOfMinute().Format(BucketKeyLayout)
}

// ParseBucketKey parses a bucket key back into the UTC instant it was
// formatted from. Used by the operator endpoints to validate query input.
func ParseBucketKey(key string) (time.Time, error) {
	return time.ParseInLocation(BucketKeyLayout, key, time.UTC)
}
