package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBucketKeyTruncatesToMinute(t *testing.T) {
	ts := time.Date(2024, 1, 1, 9, 0, 59, 999_000_000, time.UTC)
	assert.Equal(t, "2024/01/01-09:00", BucketKey(ts))

	ts = time.Date(2024, 12, 31, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, "2024/12/31-23:59", BucketKey(ts))
}

func TestBucketKeyZeroPadding(t *testing.T) {
	ts := time.Date(2024, 3, 5, 4, 7, 0, 0, time.UTC)
	assert.Equal(t, "2024/03/05-04:07", BucketKey(ts))
}

// Occurrence times arrive with whatever offset the client sent, while the
// dispatcher formats the server clock. The same instant must land in the
// same bucket regardless of representation, or its items are never found.
func TestBucketKeySameInstantAcrossZones(t *testing.T) {
	instant := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	dhaka := instant.In(time.FixedZone("UTC+6", 6*60*60))
	pacific := instant.In(time.FixedZone("UTC-8", -8*60*60))

	assert.Equal(t, "2024/01/01-09:00", BucketKey(instant))
	assert.Equal(t, BucketKey(instant), BucketKey(dhaka))
	assert.Equal(t, BucketKey(instant), BucketKey(pacific))
}

func TestParseBucketKeyRoundTrip(t *testing.T) {
	ts := time.Date(2024, 1, 8, 14, 30, 0, 0, time.UTC)
	key := BucketKey(ts)

	parsed, err := ParseBucketKey(key)
	require.NoError(t, err)
	assert.True(t, parsed.Equal(ts))
}

func TestParseBucketKeyInvalid(t *testing.T) {
	_, err := ParseBucketKey("2024-01-01 09:00")
	assert.Error(t, err)

	_, err = ParseBucketKey("not-a-bucket")
	assert.Error(t, err)
}
