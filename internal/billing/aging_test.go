package billing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClassifyAging_Buckets(t *testing.T) {
	today := time.Date(2024, 6, 15, 9, 30, 0, 0, time.UTC)

	tests := []struct {
		name        string
		daysOverdue int
		want        AgingBucket
	}{
		{"due in future", -10, AgingCurrent},
		{"due today", 0, AgingCurrent},
		{"one day overdue", 1, Aging1To30},
		{"day 30 boundary", 30, Aging1To30},
		{"day 31 boundary", 31, Aging31To60},
		{"day 45", 45, Aging31To60},
		{"day 60 boundary", 60, Aging31To60},
		{"day 61 boundary", 61, Aging61To90},
		{"day 90 boundary", 90, Aging61To90},
		{"day 91", 91, AgingOver90},
		{"a year overdue", 365, AgingOver90},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dueDate := today.AddDate(0, 0, -tt.daysOverdue)
			assert.Equal(t, tt.want, ClassifyAging(dueDate, today))
		})
	}
}

func TestClassifyAging_IgnoresTimeOfDay(t *testing.T) {
	// due late on day 1, checked early on day 2: still one full day overdue
	due := time.Date(2024, 6, 1, 23, 50, 0, 0, time.UTC)
	today := time.Date(2024, 6, 2, 0, 10, 0, 0, time.UTC)

	assert.Equal(t, 1, DaysOverdue(due, today))
	assert.Equal(t, Aging1To30, ClassifyAging(due, today))
}

func TestDaysOverdue_NotYetDue(t *testing.T) {
	today := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	due := today.AddDate(0, 0, 7)
	assert.Equal(t, -7, DaysOverdue(due, today))
}
