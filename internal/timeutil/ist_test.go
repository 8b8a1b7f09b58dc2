package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInIST(t *testing.T) {
	parsed, err := ParseInIST(DateLayout, "2024-04-15")
	require.NoError(t, err)
	assert.Equal(t, 2024, parsed.Year())
	assert.Equal(t, time.April, parsed.Month())
	assert.Equal(t, 15, parsed.Day())

	_, offset := parsed.Zone()
	assert.Equal(t, 5*3600+30*60, offset)
}

func TestParseInIST_Invalid(t *testing.T) {
	_, err := ParseInIST(DateLayout, "15/04/2024")
	assert.Error(t, err)
}

func TestStartAndEndOfDay(t *testing.T) {
	// 2024-04-15 01:00 UTC is 06:30 IST the same day
	utc := time.Date(2024, 4, 15, 1, 0, 0, 0, time.UTC)

	start := StartOfDay(utc)
	assert.Equal(t, 15, start.Day())
	assert.Equal(t, 0, start.Hour())

	end := EndOfDay(utc)
	assert.Equal(t, 15, end.Day())
	assert.Equal(t, 23, end.Hour())
}

func TestStartOfDay_CrossesDateLine(t *testing.T) {
	// 2024-04-15 20:00 UTC is already 2024-04-16 in IST
	utc := time.Date(2024, 4, 15, 20, 0, 0, 0, time.UTC)
	assert.Equal(t, 16, StartOfDay(utc).Day())
}
