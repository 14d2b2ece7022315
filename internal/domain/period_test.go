package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParsePeriodRoundTrip(t *testing.T) {
	for _, s := range []string{"2024-01", "2024-12", "1999-06", "2031-10"} {
		p, err := ParsePeriod(s)
		require.NoError(t, err)
		require.Equal(t, s, p.String())
	}
}

func TestParsePeriodRejectsNonCanonicalForms(t *testing.T) {
	for _, s := range []string{
		"",
		"2024",
		"2024-3",     // month not zero-padded
		"2024-13",    // no such month
		"2024-00",    // no such month
		"24-03",      // short year
		"2024/03",    // wrong separator
		"2024-03-05", // that's a date
		"abcd-ef",
	} {
		_, err := ParsePeriod(s)
		require.Error(t, err, "input %q", s)
		require.True(t, errors.Is(err, ErrInvalidPeriod))
	}
}

func TestParseDateRoundTrip(t *testing.T) {
	for _, s := range []string{"2024-03-05", "2024-02-29", "2000-01-01", "2024-12-31"} {
		d, err := ParseDate(s)
		require.NoError(t, err)
		require.Equal(t, s, d.String())
	}
}

func TestParseDateRejectsImpossibleDates(t *testing.T) {
	for _, s := range []string{
		"",
		"2024-03",
		"2024-3-5",
		"2024-02-30", // not on the calendar
		"2023-02-29", // not a leap year
		"2024-13-01",
		"2024-00-10",
		"2024-03-00",
		"2024-03-32",
	} {
		_, err := ParseDate(s)
		require.Error(t, err, "input %q", s)
		require.True(t, errors.Is(err, ErrInvalidDate))
	}
}

func TestDatePeriod(t *testing.T) {
	d, err := ParseDate("2024-03-05")
	require.NoError(t, err)
	require.Equal(t, "2024-03", d.Period().String())
}

func TestDateBeforeMatchesLexicographicOrder(t *testing.T) {
	a, err := ParseDate("2024-03-05")
	require.NoError(t, err)
	b, err := ParseDate("2024-03-12")
	require.NoError(t, err)
	c, err := ParseDate("2024-10-01")
	require.NoError(t, err)

	require.True(t, a.Before(b))
	require.True(t, b.Before(c))
	require.False(t, b.Before(a))
	require.False(t, a.Before(a))
}
