package domain

import "time"

// PeriodInfo is the stored state of a scheduling period. FormOpen gates
// whether cooks may submit availability and preferences; Current marks the
// single period the house is actively planning (at most one at a time).
type PeriodInfo struct {
	Period    string    `json:"period"` // canonical YYYY-MM
	FormOpen  bool      `json:"formOpen"`
	Current   bool      `json:"current"`
	CreatedAt time.Time `json:"createdAt"`
	Version   int32     `json:"-"`
}

// Preference is a cook's per-period capability flags and workload cap.
// A maxCookingDays of 0 is a hard cap of zero slots; "no preference
// submitted" is the absence of a Preference record, not a zero record.
type Preference struct {
	Kerb           string    `json:"kerb"`
	Period         string    `json:"period"`
	CanSolo        bool      `json:"canSolo"`
	CanLead        bool      `json:"canLead"`
	CanAssist      bool      `json:"canAssist"`
	MaxCookingDays int       `json:"maxCookingDays"`
	CreatedAt      time.Time `json:"createdAt"`
	Version        int32     `json:"-"`
}

// Assignment is the resolved staffing for one cooking date. Solo is mutually
// exclusive with Lead/Assistant: a solo cook fills the whole day alone.
// Pinned assignments were placed manually and survive regeneration.
type Assignment struct {
	Date      string    `json:"date"` // canonical YYYY-MM-DD
	Lead      *string   `json:"lead"`
	Assistant *string   `json:"assistant"`
	Solo      *string   `json:"solo"`
	Pinned    bool      `json:"pinned"`
	CreatedAt time.Time `json:"createdAt"`
	Version   int32     `json:"-"`
}

// Cooks returns the kerbs staffed on this date, each counted once.
func (a *Assignment) Cooks() []string {
	var kerbs []string
	if a.Solo != nil {
		kerbs = append(kerbs, *a.Solo)
	}
	if a.Lead != nil {
		kerbs = append(kerbs, *a.Lead)
	}
	if a.Assistant != nil {
		kerbs = append(kerbs, *a.Assistant)
	}
	return kerbs
}

// Involves reports whether the kerb occupies any slot of this assignment.
func (a *Assignment) Involves(kerb string) bool {
	for _, k := range a.Cooks() {
		if k == kerb {
			return true
		}
	}
	return false
}
