package scheduler

import (
	"github.com/mit-pika/cook-roster/backend/internal/domain"
)

// Cook is the per-period snapshot of one registered cook: capability flags,
// workload cap and the dates they declared themselves available on. A cook
// who never submitted a preference carries the zero flags and a zero cap and
// is therefore never schedulable.
type Cook struct {
	Kerb           string
	CanSolo        bool
	CanLead        bool
	CanAssist      bool
	MaxCookingDays int
	Available      map[string]bool // canonical YYYY-MM-DD
}

// Input is the full snapshot a generation strategy operates on. Existing
// holds every assignment currently stored for the period; generation carries
// the pinned ones through unchanged and replaces the rest.
type Input struct {
	Period       string
	CookingDates []string
	Cooks        []*Cook
	Existing     []*domain.Assignment
}

// Result is the outcome of one generation run. Unstaffed lists cooking dates
// for which no lead could be found; AssistantShort lists dates staffed by a
// lead alone because no assistant or solo candidate remained. Both are
// reported, not fatal.
type Result struct {
	Assignments    []*domain.Assignment `json:"assignments"`
	Unstaffed      []string             `json:"unstaffed"`
	AssistantShort []string             `json:"assistantShort"`
}

// Strategy produces a full assignment map for a period. Implementations may
// differ in their soft tie-breaks but must satisfy the same hard constraints
// (registration, availability, capability, capacity); CheckHardConstraints
// verifies a result independently of how it was produced.
type Strategy interface {
	Generate(in *Input) (*Result, error)
}

func (in *Input) cook(kerb string) *Cook {
	for _, c := range in.Cooks {
		if c.Kerb == kerb {
			return c
		}
	}
	return nil
}

func (in *Input) assignmentOn(date string) *domain.Assignment {
	for _, a := range in.Existing {
		if a.Date == date {
			return a
		}
	}
	return nil
}

func (in *Input) isCookingDate(date string) bool {
	for _, d := range in.CookingDates {
		if d == date {
			return true
		}
	}
	return false
}

func (in *Input) pinned() []*domain.Assignment {
	var pins []*domain.Assignment
	for _, a := range in.Existing {
		if a.Pinned {
			pins = append(pins, a)
		}
	}
	return pins
}

// countsOf tallies cooking days per kerb, each date counted once per cook
// regardless of role.
func countsOf(assignments []*domain.Assignment) map[string]int {
	counts := make(map[string]int)
	for _, a := range assignments {
		for _, kerb := range a.Cooks() {
			counts[kerb]++
		}
	}
	return counts
}
