package scheduler

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mit-pika/cook-roster/backend/internal/domain"
)

func TestCandidateKerbs(t *testing.T) {
	in := &Input{
		Period:       "2024-03",
		CookingDates: []string{"2024-03-05", "2024-03-12"},
		Cooks: []*Cook{
			newCook("zoe", false, true, true, 2, "2024-03-05"),
			newCook("alice", false, true, true, 2, "2024-03-05", "2024-03-12"),
			newCook("bob", false, false, true, 1, "2024-03-05", "2024-03-12"),
			newCook("carol", false, true, false, 2, "2024-03-12"),
		},
		Existing: []*domain.Assignment{
			{Date: "2024-03-12", Lead: strPtr("bob")},
		},
	}

	// bob is at his cap from the existing assignment, carol is not available
	// on the date; the rest come back in kerb order.
	require.Equal(t, []string{"alice", "zoe"}, CandidateKerbs(in, "2024-03-05"))

	// alice is free; bob already holds a slot that day, zoe is unavailable.
	require.Equal(t, []string{"alice", "carol"}, CandidateKerbs(in, "2024-03-12"))
}

func TestCandidateKerbsEmptyWhenNobodyFits(t *testing.T) {
	in := &Input{
		Period:       "2024-03",
		CookingDates: []string{"2024-03-05"},
		Cooks: []*Cook{
			newCook("alice", false, true, true, 0, "2024-03-05"),
		},
	}

	require.Empty(t, CandidateKerbs(in, "2024-03-05"))
}
