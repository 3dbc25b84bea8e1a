package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatTimestamp(t *testing.T) {
	jakarta := time.FixedZone("WIB", 7*60*60)
	stamp := time.Date(2024, 1, 1, 17, 0, 0, 123456789, jakarta)

	assert.Equal(t, "2024-01-01T10:00:00.123Z", FormatTimestamp(stamp))
}

func TestParseTimestamp(t *testing.T) {
	parsed, err := ParseTimestamp("2024-01-01T10:00:00.123Z")
	require.NoError(t, err)
	assert.Equal(t, 123*time.Millisecond, time.Duration(parsed.Nanosecond()))

	parsed, err = ParseTimestamp("2024-01-01T10:00:00+07:00")
	require.NoError(t, err)
	assert.Equal(t, 3, parsed.UTC().Hour())

	_, err = ParseTimestamp("yesterday")
	assert.Error(t, err)
}
