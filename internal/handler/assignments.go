package handler

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mit-pika/cook-roster/backend/internal/domain"
	"github.com/mit-pika/cook-roster/backend/internal/scheduler"
)

func (h *Handler) GetAssignments(w http.ResponseWriter, r *http.Request) {
	info := r.Context().Value(PeriodCtx).(*domain.PeriodInfo)

	assignments, err := h.repository.GetAssignmentsByPeriod(info.Period)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.dataResponse(w, r, assignments)
}

func (h *Handler) GetAssignment(w http.ResponseWriter, r *http.Request) {
	info := r.Context().Value(PeriodCtx).(*domain.PeriodInfo)

	date, err := h.parsePeriodDate(info, chi.URLParam(r, "date"))
	if err != nil {
		h.failure(w, r, err)
		return
	}

	a, err := h.repository.GetAssignment(date.String())
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.failure(w, r, domain.ErrNoAssignment)
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.dataResponse(w, r, a)
}

// buildInput snapshots everything a generation or validation run needs for a
// period: cooking dates, every registered cook with their preference and
// availability, and the assignments currently stored. A registered cook with
// no preference submission appears with zero flags and a zero cap.
func (h *Handler) buildInput(period string) (*scheduler.Input, error) {
	dates, err := h.repository.GetCookingDates(period)
	if err != nil {
		return nil, err
	}

	kerbs, err := h.repository.GetCooks(period)
	if err != nil {
		return nil, err
	}

	prefs, err := h.repository.GetPreferencesByPeriod(period)
	if err != nil {
		return nil, err
	}
	prefByKerb := make(map[string]*domain.Preference, len(prefs))
	for _, p := range prefs {
		prefByKerb[p.Kerb] = p
	}

	availability, err := h.repository.GetAvailabilityByPeriod(period)
	if err != nil {
		return nil, err
	}

	cooks := make([]*scheduler.Cook, 0, len(kerbs))
	for _, kerb := range kerbs {
		cook := &scheduler.Cook{
			Kerb:      kerb,
			Available: make(map[string]bool),
		}
		if pref, ok := prefByKerb[kerb]; ok {
			cook.CanSolo = pref.CanSolo
			cook.CanLead = pref.CanLead
			cook.CanAssist = pref.CanAssist
			cook.MaxCookingDays = pref.MaxCookingDays
		}
		for _, date := range availability[kerb] {
			cook.Available[date] = true
		}
		cooks = append(cooks, cook)
	}

	existing, err := h.repository.GetAssignmentsByPeriod(period)
	if err != nil {
		return nil, err
	}

	return &scheduler.Input{
		Period:       period,
		CookingDates: dates,
		Cooks:        cooks,
		Existing:     existing,
	}, nil
}

func generationLockKey(period string) string {
	return fmt.Sprintf("generate_lock_%s", period)
}

func (h *Handler) GenerateAssignments(w http.ResponseWriter, r *http.Request) {
	h.generateAssignments(w, r, h.strategy)
}

func (h *Handler) GenerateAssignmentsWithLLM(w http.ResponseWriter, r *http.Request) {
	if h.llmStrategy == nil {
		h.errorResponse(w, r, "predictive generation is not configured")
		return
	}
	h.generateAssignments(w, r, h.llmStrategy)
}

func (h *Handler) generateAssignments(w http.ResponseWriter, r *http.Request, strategy scheduler.Strategy) {
	info := r.Context().Value(PeriodCtx).(*domain.PeriodInfo)

	// One generation run per period at a time.
	ctx, cancel := h.redisCtx()
	defer cancel()

	lockKey := generationLockKey(info.Period)
	lockTTL := time.Duration(h.config.Generation.LockExpiration) * time.Second
	locked, err := h.redisClient.SetNX(ctx, lockKey, "1", lockTTL).Result()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if !locked {
		h.errorResponse(w, r, "a generation run for this period is already in progress")
		return
	}
	defer func() {
		ctx, cancel := h.redisCtx()
		defer cancel()
		if err := h.redisClient.Del(ctx, lockKey).Err(); err != nil {
			slog.Error("failed to release generation lock", "period", info.Period, "error", err)
		}
	}()

	in, err := h.buildInput(info.Period)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	result, err := strategy.Generate(in)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if err := h.repository.ReplaceGeneratedAssignments(info.Period, result.Assignments); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.notifyScheduledCooks(info.Period, result.Assignments)

	h.dataResponse(w, r, result)
}

// notifyScheduledCooks mails each assigned cook their duties for the period.
// Delivery is best-effort; a publish failure never fails the generation.
func (h *Handler) notifyScheduledCooks(period string, assignments []*domain.Assignment) {
	duties := make(map[string][]string)
	for _, a := range assignments {
		if a.Solo != nil {
			duties[*a.Solo] = append(duties[*a.Solo], fmt.Sprintf("%s (solo)", a.Date))
		}
		if a.Lead != nil {
			duties[*a.Lead] = append(duties[*a.Lead], fmt.Sprintf("%s (lead)", a.Date))
		}
		if a.Assistant != nil {
			duties[*a.Assistant] = append(duties[*a.Assistant], fmt.Sprintf("%s (assistant)", a.Date))
		}
	}

	for kerb, dates := range duties {
		user, err := h.repository.GetUserByKerb(kerb)
		if err != nil {
			slog.Error("failed to look up scheduled cook", "kerb", kerb, "error", err)
			continue
		}

		err = h.publishMail(&domain.MailMessage{
			Type: "schedule_published",
			To:   user.Email,
			Data: domain.SchedulePublishedMailData{
				Kerb:   kerb,
				Period: period,
				Duties: dates,
			},
		})
		if err != nil {
			slog.Error("failed to publish schedule mail", "kerb", kerb, "error", err)
		}
	}
}

func (h *Handler) AssignLead(w http.ResponseWriter, r *http.Request) {
	h.assignManual(w, r, scheduler.RoleLead)
}

func (h *Handler) AssignAssistant(w http.ResponseWriter, r *http.Request) {
	h.assignManual(w, r, scheduler.RoleAssistant)
}

// assignManual places one cook into one slot after running the same
// constraint checks generation enforces. Manual placements are pinned, so
// they survive later regeneration runs.
func (h *Handler) assignManual(w http.ResponseWriter, r *http.Request, role scheduler.Role) {
	info := r.Context().Value(PeriodCtx).(*domain.PeriodInfo)

	request := struct {
		Kerb string `json:"kerb" validate:"required"`
		Date string `json:"date" validate:"required"`
	}{}

	if err := h.readJSON(r, &request); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(request); err != nil {
		h.badRequest(w, r, err)
		return
	}

	date, err := h.parsePeriodDate(info, request.Date)
	if err != nil {
		h.failure(w, r, err)
		return
	}

	in, err := h.buildInput(info.Period)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if err := scheduler.ValidateManual(in, request.Kerb, date.String(), role); err != nil {
		h.failure(w, r, err)
		return
	}

	a := &domain.Assignment{Date: date.String(), Pinned: true}
	if existing, dbErr := h.repository.GetAssignment(date.String()); dbErr == nil {
		a = existing
		a.Pinned = true
	} else if !errors.Is(dbErr, sql.ErrNoRows) {
		h.internalServerError(w, r, dbErr)
		return
	}

	switch role {
	case scheduler.RoleLead:
		a.Lead = &request.Kerb
	case scheduler.RoleAssistant:
		a.Assistant = &request.Kerb
	}

	if err := h.repository.SaveAssignment(info.Period, a); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.dataResponse(w, r, a)
}

func (h *Handler) RemoveAssignment(w http.ResponseWriter, r *http.Request) {
	info := r.Context().Value(PeriodCtx).(*domain.PeriodInfo)

	date, err := h.parsePeriodDate(info, chi.URLParam(r, "date"))
	if err != nil {
		h.failure(w, r, err)
		return
	}

	if err := h.repository.DeleteAssignment(date.String()); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.failure(w, r, domain.ErrNoAssignment)
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.okResponse(w, r)
}

func (h *Handler) ClearAssignments(w http.ResponseWriter, r *http.Request) {
	info := r.Context().Value(PeriodCtx).(*domain.PeriodInfo)

	includePinned := r.URL.Query().Get("includePinned") == "true"

	if err := h.repository.ClearAssignments(info.Period, includePinned); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.okResponse(w, r)
}

func (h *Handler) GetCandidateCooks(w http.ResponseWriter, r *http.Request) {
	info := r.Context().Value(PeriodCtx).(*domain.PeriodInfo)

	date, err := h.parsePeriodDate(info, chi.URLParam(r, "date"))
	if err != nil {
		h.failure(w, r, err)
		return
	}

	in, err := h.buildInput(info.Period)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.dataResponse(w, r, scheduler.CandidateKerbs(in, date.String()))
}
