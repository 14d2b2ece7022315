package scheduler

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mit-pika/cook-roster/backend/internal/domain"
)

func newCook(kerb string, solo, lead, assist bool, maxDays int, dates ...string) *Cook {
	available := make(map[string]bool, len(dates))
	for _, d := range dates {
		available[d] = true
	}
	return &Cook{
		Kerb:           kerb,
		CanSolo:        solo,
		CanLead:        lead,
		CanAssist:      assist,
		MaxCookingDays: maxDays,
		Available:      available,
	}
}

func assignmentFor(t *testing.T, res *Result, date string) *domain.Assignment {
	t.Helper()
	for _, a := range res.Assignments {
		if a.Date == date {
			return a
		}
	}
	t.Fatalf("no assignment for %s", date)
	return nil
}

func TestGreedyPairsLeadAndAssistant(t *testing.T) {
	in := &Input{
		Period:       "2024-03",
		CookingDates: []string{"2024-03-05", "2024-03-12"},
		Cooks: []*Cook{
			newCook("alice", false, true, true, 2, "2024-03-05", "2024-03-12"),
			newCook("bob", false, false, true, 1, "2024-03-05", "2024-03-12"),
		},
	}

	res, err := Greedy{}.Generate(in)
	require.NoError(t, err)
	require.Len(t, res.Assignments, 2)

	first := assignmentFor(t, res, "2024-03-05")
	require.NotNil(t, first.Lead)
	require.Equal(t, "alice", *first.Lead)
	require.NotNil(t, first.Assistant)
	require.Equal(t, "bob", *first.Assistant)
	require.Nil(t, first.Solo)

	// bob is at his cap, so the second date runs lead-only and is reported.
	second := assignmentFor(t, res, "2024-03-12")
	require.NotNil(t, second.Lead)
	require.Equal(t, "alice", *second.Lead)
	require.Nil(t, second.Assistant)
	require.Nil(t, second.Solo)

	require.Empty(t, res.Unstaffed)
	require.Equal(t, []string{"2024-03-12"}, res.AssistantShort)
}

func TestGreedyIsDeterministic(t *testing.T) {
	in := &Input{
		Period:       "2024-03",
		CookingDates: []string{"2024-03-19", "2024-03-05", "2024-03-12"},
		Cooks: []*Cook{
			newCook("carol", false, true, true, 3, "2024-03-05", "2024-03-12", "2024-03-19"),
			newCook("dave", false, true, true, 3, "2024-03-05", "2024-03-12", "2024-03-19"),
			newCook("erin", false, false, true, 2, "2024-03-05", "2024-03-19"),
		},
	}

	first, err := Greedy{}.Generate(in)
	require.NoError(t, err)
	second, err := Greedy{}.Generate(in)
	require.NoError(t, err)

	require.Equal(t, first, second)
}

func TestGreedyProcessesDatesChronologically(t *testing.T) {
	// bob has capacity for one day only; given chronological processing he
	// must land on the earliest date even though it is listed last.
	in := &Input{
		Period:       "2024-03",
		CookingDates: []string{"2024-03-26", "2024-03-05"},
		Cooks: []*Cook{
			newCook("alice", false, true, true, 2, "2024-03-05", "2024-03-26"),
			newCook("bob", false, false, true, 1, "2024-03-05", "2024-03-26"),
		},
	}

	res, err := Greedy{}.Generate(in)
	require.NoError(t, err)

	first := assignmentFor(t, res, "2024-03-05")
	require.NotNil(t, first.Assistant)
	require.Equal(t, "bob", *first.Assistant)

	second := assignmentFor(t, res, "2024-03-26")
	require.Nil(t, second.Assistant)
}

func TestGreedyPrefersLeastLoadedThenKerb(t *testing.T) {
	in := &Input{
		Period:       "2024-03",
		CookingDates: []string{"2024-03-05", "2024-03-12"},
		Cooks: []*Cook{
			newCook("zoe", false, true, true, 5, "2024-03-05", "2024-03-12"),
			newCook("amy", false, true, true, 5, "2024-03-05", "2024-03-12"),
			newCook("ben", false, false, true, 5, "2024-03-05", "2024-03-12"),
		},
	}

	res, err := Greedy{}.Generate(in)
	require.NoError(t, err)

	// Equal loads on the first date: kerb order picks amy to lead, ben to
	// assist. On the second date zoe is the least-loaded lead candidate.
	first := assignmentFor(t, res, "2024-03-05")
	require.Equal(t, "amy", *first.Lead)
	require.Equal(t, "ben", *first.Assistant)

	second := assignmentFor(t, res, "2024-03-12")
	require.Equal(t, "zoe", *second.Lead)
}

func TestGreedyConvertsToSoloWhenNoAssistant(t *testing.T) {
	in := &Input{
		Period:       "2024-03",
		CookingDates: []string{"2024-03-05"},
		Cooks: []*Cook{
			newCook("lena", false, true, false, 2, "2024-03-05"),
			newCook("sam", true, false, false, 2, "2024-03-05"),
		},
	}

	res, err := Greedy{}.Generate(in)
	require.NoError(t, err)

	a := assignmentFor(t, res, "2024-03-05")
	require.Nil(t, a.Lead)
	require.Nil(t, a.Assistant)
	require.NotNil(t, a.Solo)
	require.Equal(t, "sam", *a.Solo)
	require.Empty(t, res.AssistantShort)
}

func TestGreedyReportsUnstaffedDates(t *testing.T) {
	in := &Input{
		Period:       "2024-03",
		CookingDates: []string{"2024-03-05", "2024-03-12"},
		Cooks: []*Cook{
			newCook("bob", false, false, true, 3, "2024-03-05", "2024-03-12"),
			newCook("alice", false, true, true, 3, "2024-03-05"),
		},
	}

	res, err := Greedy{}.Generate(in)
	require.NoError(t, err)

	require.Equal(t, []string{"2024-03-12"}, res.Unstaffed)
	require.Len(t, res.Assignments, 1)
}

func TestGreedySkipsUnavailableCooks(t *testing.T) {
	in := &Input{
		Period:       "2024-03",
		CookingDates: []string{"2024-03-05"},
		Cooks: []*Cook{
			newCook("alice", false, true, true, 3), // submitted nothing for this date
			newCook("carol", false, true, true, 3, "2024-03-05"),
		},
	}

	res, err := Greedy{}.Generate(in)
	require.NoError(t, err)

	a := assignmentFor(t, res, "2024-03-05")
	require.Equal(t, "carol", *a.Lead)
}

func TestGreedyZeroCapMeansNeverScheduled(t *testing.T) {
	// A registered cook without a submitted preference snapshots to a zero
	// cap and must never be assigned.
	in := &Input{
		Period:       "2024-03",
		CookingDates: []string{"2024-03-05"},
		Cooks: []*Cook{
			newCook("ghost", true, true, true, 0, "2024-03-05"),
			newCook("alice", false, true, true, 3, "2024-03-05"),
		},
	}

	res, err := Greedy{}.Generate(in)
	require.NoError(t, err)

	a := assignmentFor(t, res, "2024-03-05")
	require.Equal(t, "alice", *a.Lead)
	require.Nil(t, a.Assistant)
	require.Equal(t, []string{"2024-03-05"}, res.AssistantShort)
}

func TestGreedyCarriesPinsAndCountsTheirLoad(t *testing.T) {
	pin := &domain.Assignment{
		Date:   "2024-03-05",
		Lead:   strPtr("alice"),
		Pinned: true,
	}

	in := &Input{
		Period:       "2024-03",
		CookingDates: []string{"2024-03-05", "2024-03-12"},
		Cooks: []*Cook{
			newCook("alice", false, true, true, 1, "2024-03-05", "2024-03-12"),
			newCook("bob", false, true, true, 3, "2024-03-05", "2024-03-12"),
		},
		Existing: []*domain.Assignment{pin},
	}

	res, err := Greedy{}.Generate(in)
	require.NoError(t, err)

	// The pinned date comes through untouched.
	first := assignmentFor(t, res, "2024-03-05")
	require.Same(t, pin, first)

	// alice's pinned day consumed her whole cap, so the other date falls to
	// bob alone.
	second := assignmentFor(t, res, "2024-03-12")
	require.Equal(t, "bob", *second.Lead)
	require.Nil(t, second.Assistant)
}

func TestGreedyRegenerationIsIdempotent(t *testing.T) {
	in := &Input{
		Period:       "2024-03",
		CookingDates: []string{"2024-03-05", "2024-03-12", "2024-03-19"},
		Cooks: []*Cook{
			newCook("alice", false, true, true, 2, "2024-03-05", "2024-03-12", "2024-03-19"),
			newCook("bob", false, true, true, 2, "2024-03-05", "2024-03-12", "2024-03-19"),
			newCook("carol", false, false, true, 2, "2024-03-05", "2024-03-12", "2024-03-19"),
		},
	}

	first, err := Greedy{}.Generate(in)
	require.NoError(t, err)

	// Clearing non-pinned assignments and regenerating from the same
	// snapshot must reproduce the same roster.
	second, err := Greedy{}.Generate(in)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestCheckHardConstraintsRejectsViolations(t *testing.T) {
	in := &Input{
		Period:       "2024-03",
		CookingDates: []string{"2024-03-05"},
		Cooks: []*Cook{
			newCook("alice", false, true, true, 1, "2024-03-05"),
			newCook("bob", false, false, true, 1, "2024-03-05"),
		},
	}

	tests := []struct {
		name        string
		assignments []*domain.Assignment
	}{
		{
			name: "unregistered cook",
			assignments: []*domain.Assignment{
				{Date: "2024-03-05", Lead: strPtr("mallory")},
			},
		},
		{
			name: "not a cooking date",
			assignments: []*domain.Assignment{
				{Date: "2024-03-06", Lead: strPtr("alice")},
			},
		},
		{
			name: "solo mixed with lead",
			assignments: []*domain.Assignment{
				{Date: "2024-03-05", Solo: strPtr("alice"), Lead: strPtr("bob")},
			},
		},
		{
			name: "assistant without lead",
			assignments: []*domain.Assignment{
				{Date: "2024-03-05", Assistant: strPtr("bob")},
			},
		},
		{
			name: "lead lacks capability",
			assignments: []*domain.Assignment{
				{Date: "2024-03-05", Lead: strPtr("bob")},
			},
		},
		{
			name: "same cook in both slots",
			assignments: []*domain.Assignment{
				{Date: "2024-03-05", Lead: strPtr("alice"), Assistant: strPtr("alice")},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckHardConstraints(in, &Result{Assignments: tt.assignments})
			require.Error(t, err)
		})
	}
}

func TestCheckHardConstraintsCountsPinnedLoad(t *testing.T) {
	// alice's pin consumes her single slot, so a generated assignment for her
	// on another date must fail the cap check even though the pin itself is
	// not re-validated.
	pin := &domain.Assignment{Date: "2024-03-05", Lead: strPtr("alice"), Pinned: true}
	in := &Input{
		Period:       "2024-03",
		CookingDates: []string{"2024-03-05", "2024-03-12"},
		Cooks: []*Cook{
			newCook("alice", false, true, true, 1, "2024-03-05", "2024-03-12"),
		},
		Existing: []*domain.Assignment{pin},
	}

	err := CheckHardConstraints(in, &Result{Assignments: []*domain.Assignment{
		pin,
		{Date: "2024-03-12", Lead: strPtr("alice")},
	}})
	require.Error(t, err)
}
