package domain

import (
	"fmt"
	"time"
)

// Period is a calendar month, the scheduling unit. Its canonical wire form
// is "YYYY-MM", zero-padded. Parsing and formatting round-trip exactly.
type Period struct {
	Year  int
	Month int // 1-12
}

// ParsePeriod parses the canonical "YYYY-MM" form. Anything else is rejected.
func ParsePeriod(s string) (Period, error) {
	if len(s) != 7 {
		return Period{}, fmt.Errorf("%w: %q is not in YYYY-MM form", ErrInvalidPeriod, s)
	}
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Period{}, fmt.Errorf("%w: %q is not in YYYY-MM form", ErrInvalidPeriod, s)
	}
	return Period{Year: t.Year(), Month: int(t.Month())}, nil
}

func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, p.Month)
}

// Date is a single calendar day in canonical "YYYY-MM-DD" form. A Date always
// belongs to exactly one Period, obtained by truncation.
type Date struct {
	Year  int
	Month int
	Day   int
}

// ParseDate parses the canonical "YYYY-MM-DD" form and rejects dates that do
// not exist on the calendar.
func ParseDate(s string) (Date, error) {
	if len(s) != 10 {
		return Date{}, fmt.Errorf("%w: %q is not in YYYY-MM-DD form", ErrInvalidDate, s)
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q is not in YYYY-MM-DD form", ErrInvalidDate, s)
	}
	return Date{Year: t.Year(), Month: int(t.Month()), Day: t.Day()}, nil
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// Period returns the period this date belongs to.
func (d Date) Period() Period {
	return Period{Year: d.Year, Month: d.Month}
}

// Before reports whether d is chronologically before other. Because the
// canonical form is zero-padded, this matches lexicographic string order.
func (d Date) Before(other Date) bool {
	return d.String() < other.String()
}

// Weekday returns the day of the week, Sunday = 0.
func (d Date) Weekday() int {
	return int(time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC).Weekday())
}
