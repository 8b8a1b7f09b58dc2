package monitoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatBytes(t *testing.T) {
	assert.Equal(t, "512.0 MB", formatBytes(512*1024*1024))
	assert.Equal(t, "1.5 GB", formatBytes(uint64(1.5*1024*1024*1024)))
}

func TestFormatUptime(t *testing.T) {
	assert.Equal(t, "45m", formatUptime(45*60))
	assert.Equal(t, "3h 20m", formatUptime(3*3600+20*60))
	assert.Equal(t, "2d 5h", formatUptime(2*86400+5*3600))
}
