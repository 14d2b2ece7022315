package scheduler

import (
	"fmt"
	"sort"

	"github.com/mit-pika/cook-roster/backend/internal/domain"
)

// Greedy is the reference generation strategy: a single deterministic
// left-to-right pass over the cooking dates in chronological order. It does
// not backtrack; fairness comes from a fewest-assignments-first tie-break
// with lexicographic kerb order as the final tie-break.
type Greedy struct{}

func (Greedy) Generate(in *Input) (*Result, error) {
	dates := make([]string, len(in.CookingDates))
	copy(dates, in.CookingDates)
	sort.Strings(dates) // canonical form makes this chronological

	pinnedByDate := make(map[string]*domain.Assignment)
	for _, pin := range in.pinned() {
		pinnedByDate[pin.Date] = pin
	}

	// Pinned cooks' load counts against their caps from the start.
	counts := countsOf(in.pinned())

	res := &Result{
		Assignments:    make([]*domain.Assignment, 0, len(dates)),
		Unstaffed:      []string{},
		AssistantShort: []string{},
	}

	for _, date := range dates {
		if pin, ok := pinnedByDate[date]; ok {
			res.Assignments = append(res.Assignments, pin)
			continue
		}

		cands := eligible(in.Cooks, counts, date)

		lead := pickBest(cands, counts, func(c *Cook) bool { return c.CanLead })
		if lead == nil {
			res.Unstaffed = append(res.Unstaffed, date)
			continue
		}

		rest := without(cands, lead.Kerb)

		if assistant := pickBest(rest, counts, func(c *Cook) bool { return c.CanAssist }); assistant != nil {
			res.Assignments = append(res.Assignments, &domain.Assignment{
				Date:      date,
				Lead:      strPtr(lead.Kerb),
				Assistant: strPtr(assistant.Kerb),
			})
			counts[lead.Kerb]++
			counts[assistant.Kerb]++
			continue
		}

		// No assistant candidate: convert to a solo day if a remaining
		// candidate can cook alone, otherwise the lead takes the day
		// without an assistant.
		if solo := pickBest(rest, counts, func(c *Cook) bool { return c.CanSolo }); solo != nil {
			res.Assignments = append(res.Assignments, &domain.Assignment{
				Date: date,
				Solo: strPtr(solo.Kerb),
			})
			counts[solo.Kerb]++
			continue
		}

		res.Assignments = append(res.Assignments, &domain.Assignment{
			Date: date,
			Lead: strPtr(lead.Kerb),
		})
		counts[lead.Kerb]++
		res.AssistantShort = append(res.AssistantShort, date)
	}

	if err := CheckHardConstraints(in, res); err != nil {
		return nil, err
	}

	return res, nil
}

// eligible returns the candidate set for a date: available on it and still
// under their cooking-day cap. Capability is a role concern and is filtered
// at selection time.
func eligible(cooks []*Cook, counts map[string]int, date string) []*Cook {
	var cands []*Cook
	for _, c := range cooks {
		if !c.Available[date] {
			continue
		}
		if counts[c.Kerb] >= c.MaxCookingDays {
			continue
		}
		cands = append(cands, c)
	}
	return cands
}

// pickBest selects the candidate satisfying ok with the fewest assignments
// so far, breaking ties by kerb. Returns nil if no candidate qualifies.
func pickBest(cands []*Cook, counts map[string]int, ok func(*Cook) bool) *Cook {
	var best *Cook
	for _, c := range cands {
		if !ok(c) {
			continue
		}
		if best == nil {
			best = c
			continue
		}
		if counts[c.Kerb] < counts[best.Kerb] ||
			(counts[c.Kerb] == counts[best.Kerb] && c.Kerb < best.Kerb) {
			best = c
		}
	}
	return best
}

func without(cands []*Cook, kerb string) []*Cook {
	rest := make([]*Cook, 0, len(cands))
	for _, c := range cands {
		if c.Kerb != kerb {
			rest = append(rest, c)
		}
	}
	return rest
}

// CheckHardConstraints verifies a generation result against the constraints
// every strategy must honor, whatever its tie-breaks: each assigned cook is
// registered, available, capable of their role and under their cap; solo
// days carry no lead or assistant; no cook appears twice on one date.
func CheckHardConstraints(in *Input, res *Result) error {
	seen := make(map[string]bool)

	// Pins were validated when they were placed; their load is seeded up
	// front so caps hold over the whole result, but they are otherwise
	// carried through as-is.
	counts := countsOf(in.pinned())

	check := func(date, kerb string, capable func(*Cook) bool, role string) error {
		cook := in.cook(kerb)
		if cook == nil {
			return fmt.Errorf("cook %s on %s is not registered for period %s", kerb, date, in.Period)
		}
		if !cook.Available[date] {
			return fmt.Errorf("cook %s is not available on %s", kerb, date)
		}
		if !capable(cook) {
			return fmt.Errorf("cook %s lacks the %s capability required on %s", kerb, role, date)
		}
		counts[kerb]++
		if counts[kerb] > cook.MaxCookingDays {
			return fmt.Errorf("cook %s exceeds their %d cooking day cap", kerb, cook.MaxCookingDays)
		}
		return nil
	}

	for _, a := range res.Assignments {
		if seen[a.Date] {
			return fmt.Errorf("date %s is assigned twice", a.Date)
		}
		seen[a.Date] = true

		if !in.isCookingDate(a.Date) {
			return fmt.Errorf("date %s is not a cooking date of period %s", a.Date, in.Period)
		}
		if a.Solo != nil && (a.Lead != nil || a.Assistant != nil) {
			return fmt.Errorf("date %s mixes a solo cook with a lead/assistant pair", a.Date)
		}
		if a.Lead == nil && a.Solo == nil {
			return fmt.Errorf("date %s has neither a lead nor a solo cook", a.Date)
		}
		if a.Lead == nil && a.Assistant != nil {
			return fmt.Errorf("date %s has an assistant but no lead", a.Date)
		}

		kerbs := a.Cooks()
		for i, kerb := range kerbs {
			for _, other := range kerbs[i+1:] {
				if kerb == other {
					return fmt.Errorf("cook %s holds two slots on %s", kerb, a.Date)
				}
			}
		}

		if a.Pinned {
			continue
		}

		if a.Solo != nil {
			if err := check(a.Date, *a.Solo, func(c *Cook) bool { return c.CanSolo }, "solo"); err != nil {
				return err
			}
			continue
		}
		if err := check(a.Date, *a.Lead, func(c *Cook) bool { return c.CanLead }, "lead"); err != nil {
			return err
		}
		if a.Assistant != nil {
			if err := check(a.Date, *a.Assistant, func(c *Cook) bool { return c.CanAssist }, "assist"); err != nil {
				return err
			}
		}
	}

	return nil
}

func strPtr(s string) *string {
	return &s
}
