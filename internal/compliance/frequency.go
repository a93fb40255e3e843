// Package compliance derives a compliance period's end date from a
// frequency label and a start date, and validates the free-text year list
// entered alongside them.
package compliance

import "fmt"

// Frequency is the closed set of labels describing how often a revenue
// task's obligation recurs. It is stored as a string on the task, not as
// a separate entity.
type Frequency string

const (
	OneTime    Frequency = "One Time"
	Monthly    Frequency = "Monthly"
	Quarterly  Frequency = "Quarterly"
	BiAnnually Frequency = "Bi-Annually"
	Annual     Frequency = "Annual"
	TwoYears   Frequency = "2 Years"
	ThreeYears Frequency = "3 Years"
	FourYears  Frequency = "4 Years"
	FiveYears  Frequency = "5 Years"
)

// Frequencies lists all valid labels in recurrence order.
var Frequencies = []Frequency{
	OneTime, Monthly, Quarterly, BiAnnually, Annual,
	TwoYears, ThreeYears, FourYears, FiveYears,
}

// ParseFrequency validates a label against the closed enum.
func ParseFrequency(label string) (Frequency, error) {
	for _, f := range Frequencies {
		if string(f) == label {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown compliance frequency %q: %w", label, ErrUnknownFrequency)
}

// months returns the period length in months for month-based frequencies,
// zero otherwise.
func (f Frequency) months() int {
	switch f {
	case Monthly:
		return 1
	case Quarterly:
		return 3
	case BiAnnually:
		return 6
	}
	return 0
}

// years returns the period length in years for year-based frequencies,
// zero otherwise.
func (f Frequency) years() int {
	switch f {
	case Annual:
		return 1
	case TwoYears:
		return 2
	case ThreeYears:
		return 3
	case FourYears:
		return 4
	case FiveYears:
		return 5
	}
	return 0
}

// YearCount returns how many distinct years the obligation spans, used by
// the advisory year-text hint. One Time and sub-annual frequencies span
// a single year entry.
func (f Frequency) YearCount() int {
	if y := f.years(); y > 0 {
		return y
	}
	return 1
}
