package scheduler

import "github.com/mit-pika/cook-roster/backend/internal/domain"

// Role identifies the slot a manual assignment targets.
type Role int

const (
	RoleLead Role = iota
	RoleAssistant
)

// ValidateManual re-checks, for a manual lead or assistant assignment, the
// same constraints generation enforces: registration, cooking-date existence,
// availability, capability, capacity and double-booking. A manual assignment
// that would violate any of them is rejected instead of silently applied.
func ValidateManual(in *Input, kerb, date string, role Role) error {
	cook := in.cook(kerb)
	if cook == nil {
		return domain.ErrNotRegisteredCook
	}
	if !in.isCookingDate(date) {
		return domain.ErrNotCookingDate
	}
	if !cook.Available[date] {
		return domain.ErrNotAvailable
	}

	switch role {
	case RoleLead:
		if !cook.CanLead {
			return domain.ErrCapabilityMismatch
		}
	case RoleAssistant:
		if !cook.CanAssist {
			return domain.ErrCapabilityMismatch
		}
	}

	if countsOf(in.Existing)[kerb] >= cook.MaxCookingDays {
		return domain.ErrCapacityExceeded
	}

	if existing := in.assignmentOn(date); existing != nil {
		if existing.Involves(kerb) {
			return domain.ErrAlreadyAssigned
		}
		if existing.Solo != nil {
			return domain.ErrSlotFilled
		}
		switch role {
		case RoleLead:
			if existing.Lead != nil {
				return domain.ErrSlotFilled
			}
		case RoleAssistant:
			if existing.Assistant != nil {
				return domain.ErrSlotFilled
			}
			if existing.Lead == nil {
				// An assistant needs a lead on the date first.
				return domain.ErrNoAssignment
			}
		}
	} else if role == RoleAssistant {
		return domain.ErrNoAssignment
	}

	return nil
}
