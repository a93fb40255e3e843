package compliance

import "time"

// EndDate computes the compliance period's end date for a frequency and
// start date. The second return is false when either input is missing, in
// which case no computation is attempted and the field is left for manual
// entry.
//
// All computed end dates are normalized to the end of the resulting day
// (23:59:59.999999999 in the start date's location). Month-based
// frequencies end on the last day of the month containing start+N months;
// year-based frequencies end on the same month and day N years later.
func EndDate(f Frequency, start time.Time) (time.Time, bool) {
	if f == "" || start.IsZero() {
		return time.Time{}, false
	}

	switch {
	case f == OneTime:
		return endOfDay(start), true

	case f.months() > 0:
		// AddDate normalizes day overflow (Jan 31 plus one month lands in
		// March), so resolve the target month directly and take its last day.
		y, m, _ := start.Date()
		last := time.Date(y, m+time.Month(f.months())+1, 0, 0, 0, 0, 0, start.Location())
		return endOfDay(last), true

	case f.years() > 0:
		return endOfDay(start.AddDate(f.years(), 0, 0)), true
	}

	return time.Time{}, false
}

// Duration echoes the frequency label into the task's read-only derived
// duration field.
func Duration(f Frequency) string {
	return string(f)
}

func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}
