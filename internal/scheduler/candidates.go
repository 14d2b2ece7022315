package scheduler

import "sort"

// CandidateKerbs answers "which cooks are eligible for this date": registered
// for the period, available on the date, under their cooking-day cap given
// the assignments already stored, and not already holding a slot that day.
// Manual assignment and generation both build on this filter so the UI never
// offers a cook the engine would reject.
func CandidateKerbs(in *Input, date string) []string {
	counts := countsOf(in.Existing)
	existing := in.assignmentOn(date)

	var kerbs []string
	for _, c := range eligible(in.Cooks, counts, date) {
		if existing != nil && existing.Involves(c.Kerb) {
			continue
		}
		kerbs = append(kerbs, c.Kerb)
	}

	sort.Strings(kerbs)
	return kerbs
}
