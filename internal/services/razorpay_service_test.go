package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToPaise(t *testing.T) {
	tests := []struct {
		rupees float64
		paise  int
	}{
		{19.99, 1999},
		{0.29, 29},
		{100, 10000},
		{1234.56, 123456},
		{0.01, 1},
		{999999.99, 99999999},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.paise, toPaise(tt.rupees), "%.2f rupees", tt.rupees)
	}
}
