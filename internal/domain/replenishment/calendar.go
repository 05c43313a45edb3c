package replenishment

import "time"

// dayKey buckets an instant into its UTC calendar day
func dayKey(t time.Time) string {
	return t.UTC().Format(time.DateOnly)
}

// wholeDaysBetween returns the number of complete days from a to b (negative if b is before a)
func wholeDaysBetween(a, b time.Time) int {
	return int(b.Sub(a) / (24 * time.Hour))
}
