package compliance

import (
	"errors"
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ============================================================================
// ParseFrequency
// ============================================================================

func TestParseFrequency(t *testing.T) {
	for _, f := range Frequencies {
		parsed, err := ParseFrequency(string(f))
		if err != nil {
			t.Errorf("ParseFrequency(%q) returned error: %v", f, err)
		}
		if parsed != f {
			t.Errorf("ParseFrequency(%q) = %q", f, parsed)
		}
	}

	if _, err := ParseFrequency("Weekly"); !errors.Is(err, ErrUnknownFrequency) {
		t.Errorf("expected ErrUnknownFrequency, got %v", err)
	}
	if _, err := ParseFrequency(""); !errors.Is(err, ErrUnknownFrequency) {
		t.Errorf("expected ErrUnknownFrequency for empty label, got %v", err)
	}
}

// ============================================================================
// EndDate
// ============================================================================

func TestEndDate_OneTime(t *testing.T) {
	start := date(2024, time.March, 15)

	end, ok := EndDate(OneTime, start)
	if !ok {
		t.Fatal("expected a computed end date")
	}

	// Same day, normalized to end of day
	y, m, d := end.Date()
	if y != 2024 || m != time.March || d != 15 {
		t.Errorf("One Time end should be the start day, got %v", end)
	}
	if end.Hour() != 23 || end.Minute() != 59 || end.Second() != 59 {
		t.Errorf("end date should be normalized to end of day, got %v", end)
	}
}

func TestEndDate_MonthBased(t *testing.T) {
	tests := []struct {
		freq  Frequency
		start time.Time
		year  int
		month time.Month
		day   int
	}{
		// Last day of the month containing start + N months
		{Monthly, date(2024, time.January, 15), 2024, time.February, 29},
		{Monthly, date(2023, time.January, 15), 2023, time.February, 28},
		{Monthly, date(2024, time.March, 1), 2024, time.April, 30},
		{Quarterly, date(2024, time.January, 10), 2024, time.April, 30},
		{Quarterly, date(2024, time.November, 20), 2025, time.February, 28},
		{BiAnnually, date(2024, time.January, 31), 2024, time.July, 31},
		// Month-end starts must not spill into the following month when the
		// target month is shorter
		{Monthly, date(2024, time.January, 31), 2024, time.February, 29},
		{Monthly, date(2023, time.January, 31), 2023, time.February, 28},
		{Monthly, date(2024, time.March, 31), 2024, time.April, 30},
		{Quarterly, date(2024, time.November, 30), 2025, time.February, 28},
		{BiAnnually, date(2024, time.August, 31), 2025, time.February, 28},
		{Monthly, date(2024, time.December, 31), 2025, time.January, 31},
	}

	for _, tt := range tests {
		end, ok := EndDate(tt.freq, tt.start)
		if !ok {
			t.Errorf("%s from %v: expected a computed end date", tt.freq, tt.start)
			continue
		}
		y, m, d := end.Date()
		if y != tt.year || m != tt.month || d != tt.day {
			t.Errorf("%s from %v: expected %d-%02d-%02d, got %d-%02d-%02d",
				tt.freq, tt.start, tt.year, tt.month, tt.day, y, m, d)
		}
	}
}

func TestEndDate_YearBased(t *testing.T) {
	start := date(2024, time.March, 15)

	tests := []struct {
		freq Frequency
		year int
	}{
		{Annual, 2025},
		{TwoYears, 2026},
		{ThreeYears, 2027},
		{FourYears, 2028},
		{FiveYears, 2029},
	}

	for _, tt := range tests {
		end, ok := EndDate(tt.freq, start)
		if !ok {
			t.Fatalf("%s: expected a computed end date", tt.freq)
		}
		y, m, d := end.Date()
		if y != tt.year || m != time.March || d != 15 {
			t.Errorf("%s: expected %d-03-15, got %d-%02d-%02d", tt.freq, tt.year, y, m, d)
		}
	}
}

func TestEndDate_MissingInputs(t *testing.T) {
	if _, ok := EndDate("", date(2024, time.March, 15)); ok {
		t.Error("missing frequency should not compute an end date")
	}
	if _, ok := EndDate(Monthly, time.Time{}); ok {
		t.Error("missing start date should not compute an end date")
	}
	if _, ok := EndDate("Weekly", date(2024, time.March, 15)); ok {
		t.Error("unknown frequency should not compute an end date")
	}
}

func TestDuration_EchoesLabel(t *testing.T) {
	for _, f := range Frequencies {
		if Duration(f) != string(f) {
			t.Errorf("Duration(%q) = %q", f, Duration(f))
		}
	}
}

// ============================================================================
// Year text validation
// ============================================================================

func TestValidateYears(t *testing.T) {
	tests := []struct {
		text  string
		valid bool
	}{
		{"", true},
		{"2024", true},
		{"2024,2025", true},
		{"2024, 2025, 2026", true},
		{"24", false},
		{"20245", false},
		{"2024,25", false},
		{"2024;2025", false},
		{"abcd", false},
		{"2024,", false},
	}

	for _, tt := range tests {
		errs := ValidateYears(tt.text)
		if tt.valid && len(errs) > 0 {
			t.Errorf("ValidateYears(%q) = %v, expected valid", tt.text, errs)
		}
		if !tt.valid && len(errs) == 0 {
			t.Errorf("ValidateYears(%q) should have failed", tt.text)
		}
	}
}

func TestValidateYears_FieldErrors(t *testing.T) {
	errs := ValidateYears("2024,25,xyz")
	if len(errs) != 2 {
		t.Fatalf("expected 2 field errors, got %d", len(errs))
	}
	for _, e := range errs {
		if e.Field != "complianceYears" {
			t.Errorf("field error should target complianceYears, got %q", e.Field)
		}
	}
}

func TestYearCountHint(t *testing.T) {
	// Matching counts produce no hint
	if hint := YearCountHint(TwoYears, "2024,2025"); hint != "" {
		t.Errorf("matching count should produce no hint, got %q", hint)
	}
	if hint := YearCountHint(Annual, "2024"); hint != "" {
		t.Errorf("matching count should produce no hint, got %q", hint)
	}

	// Mismatch is advisory only
	if hint := YearCountHint(ThreeYears, "2024"); hint == "" {
		t.Error("count mismatch should produce a hint")
	}

	// Invalid text defers to hard validation, no hint
	if hint := YearCountHint(Annual, "24"); hint != "" {
		t.Errorf("invalid year text should produce no hint, got %q", hint)
	}

	// Empty text means nothing to hint about
	if hint := YearCountHint(FiveYears, ""); hint != "" {
		t.Errorf("empty text should produce no hint, got %q", hint)
	}
}
