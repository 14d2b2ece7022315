package scheduler

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mit-pika/cook-roster/backend/internal/domain"
)

func manualInput() *Input {
	return &Input{
		Period:       "2024-03",
		CookingDates: []string{"2024-03-05", "2024-03-12"},
		Cooks: []*Cook{
			newCook("alice", false, true, true, 2, "2024-03-05", "2024-03-12"),
			newCook("bob", false, false, true, 2, "2024-03-05", "2024-03-12"),
			newCook("carol", false, true, false, 1, "2024-03-05"),
		},
	}
}

func TestValidateManual(t *testing.T) {
	tests := []struct {
		name     string
		existing []*domain.Assignment
		kerb     string
		date     string
		role     Role
		want     error
	}{
		{
			name: "valid lead",
			kerb: "alice",
			date: "2024-03-05",
			role: RoleLead,
			want: nil,
		},
		{
			name: "unregistered cook",
			kerb: "mallory",
			date: "2024-03-05",
			role: RoleLead,
			want: domain.ErrNotRegisteredCook,
		},
		{
			name: "not a cooking date",
			kerb: "alice",
			date: "2024-03-06",
			role: RoleLead,
			want: domain.ErrNotCookingDate,
		},
		{
			name: "not available",
			kerb: "carol",
			date: "2024-03-12",
			role: RoleLead,
			want: domain.ErrNotAvailable,
		},
		{
			// bob is registered, available and under his cap; the capability
			// check must still fire.
			name: "lead without canLead",
			kerb: "bob",
			date: "2024-03-05",
			role: RoleLead,
			want: domain.ErrCapabilityMismatch,
		},
		{
			name: "assistant without canAssist",
			kerb: "carol",
			date: "2024-03-05",
			role: RoleAssistant,
			want: domain.ErrCapabilityMismatch,
		},
		{
			name: "over capacity",
			existing: []*domain.Assignment{
				{Date: "2024-03-05", Lead: strPtr("carol"), Pinned: true},
			},
			kerb: "carol",
			date: "2024-03-05",
			role: RoleLead,
			want: domain.ErrCapacityExceeded,
		},
		{
			name: "already assigned on the date",
			existing: []*domain.Assignment{
				{Date: "2024-03-05", Lead: strPtr("alice")},
			},
			kerb: "alice",
			date: "2024-03-05",
			role: RoleAssistant,
			want: domain.ErrAlreadyAssigned,
		},
		{
			name: "lead slot already filled",
			existing: []*domain.Assignment{
				{Date: "2024-03-05", Lead: strPtr("carol")},
			},
			kerb: "alice",
			date: "2024-03-05",
			role: RoleLead,
			want: domain.ErrSlotFilled,
		},
		{
			name: "solo day accepts nobody",
			existing: []*domain.Assignment{
				{Date: "2024-03-05", Solo: strPtr("carol")},
			},
			kerb: "alice",
			date: "2024-03-05",
			role: RoleLead,
			want: domain.ErrSlotFilled,
		},
		{
			name: "assistant needs a lead first",
			kerb: "bob",
			date: "2024-03-05",
			role: RoleAssistant,
			want: domain.ErrNoAssignment,
		},
		{
			name: "assistant onto a lead",
			existing: []*domain.Assignment{
				{Date: "2024-03-05", Lead: strPtr("alice")},
			},
			kerb: "bob",
			date: "2024-03-05",
			role: RoleAssistant,
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := manualInput()
			in.Existing = tt.existing

			err := ValidateManual(in, tt.kerb, tt.date, tt.role)
			if tt.want == nil {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, tt.want)
			}
		})
	}
}
