package billing

import "time"

// DaysOverdue returns whole calendar days between the due date and the
// reference day. Zero or negative means not yet due.
func DaysOverdue(dueDate, today time.Time) int {
	due := truncateToDay(dueDate)
	ref := truncateToDay(today)
	return int(ref.Sub(due).Hours() / 24)
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ClassifyAging assigns exactly one aging bucket to an outstanding
// document. Bucket boundaries are inclusive: day 30 is still "1-30",
// day 31 falls into "31-60". Callers exclude settled documents; a zero
// balance never reaches the classifier.
func ClassifyAging(dueDate, today time.Time) AgingBucket {
	days := DaysOverdue(dueDate, today)
	switch {
	case days <= 0:
		return AgingCurrent
	case days <= 30:
		return Aging1To30
	case days <= 60:
		return Aging31To60
	case days <= 90:
		return Aging61To90
	default:
		return AgingOver90
	}
}
