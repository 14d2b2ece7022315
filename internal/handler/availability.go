package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/mit-pika/cook-roster/backend/internal/domain"
)

// formGate enforces who may edit a cook's submissions: cooks edit only their
// own, and only while the period's form is open; admins and food studs edit
// anyone's at any time.
func (h *Handler) formGate(r *http.Request, kerb string) error {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)
	info := r.Context().Value(PeriodCtx).(*domain.PeriodInfo)

	if myInfo.CanBypassFormGate() {
		return nil
	}
	if myInfo.Kerb != kerb {
		return domain.ErrFormClosed
	}
	if !info.FormOpen {
		return domain.ErrFormClosed
	}
	return nil
}

func (h *Handler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	info := r.Context().Value(PeriodCtx).(*domain.PeriodInfo)
	kerb := chi.URLParam(r, "kerb")

	dates, err := h.repository.GetAvailability(kerb, info.Period)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.dataResponse(w, r, dates)
}

func (h *Handler) AddAvailability(w http.ResponseWriter, r *http.Request) {
	info := r.Context().Value(PeriodCtx).(*domain.PeriodInfo)
	kerb := chi.URLParam(r, "kerb")

	if err := h.formGate(r, kerb); err != nil {
		h.failure(w, r, err)
		return
	}

	request := struct {
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

	if err := h.repository.AddAvailability(kerb, info.Period, date.String()); err != nil {
		pgErr := &pgconn.PgError{}
		if errors.As(err, &pgErr) && pgErr.ConstraintName == "availabilities_period_kerb_fkey" {
			h.failure(w, r, domain.ErrNotRegisteredCook)
			return
		}
		h.internalServerError(w, r, err)
		return
	}

	h.okResponse(w, r)
}

func (h *Handler) RemoveAvailability(w http.ResponseWriter, r *http.Request) {
	info := r.Context().Value(PeriodCtx).(*domain.PeriodInfo)
	kerb := chi.URLParam(r, "kerb")

	if err := h.formGate(r, kerb); err != nil {
		h.failure(w, r, err)
		return
	}

	date, err := h.parsePeriodDate(info, chi.URLParam(r, "date"))
	if err != nil {
		h.failure(w, r, err)
		return
	}

	if err := h.repository.RemoveAvailability(kerb, date.String()); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.okResponse(w, r)
}

func (h *Handler) GetPreference(w http.ResponseWriter, r *http.Request) {
	info := r.Context().Value(PeriodCtx).(*domain.PeriodInfo)
	kerb := chi.URLParam(r, "kerb")

	pref, err := h.repository.GetPreference(kerb, info.Period)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			// no submission yet; the cook is unschedulable until one exists
			h.dataResponse(w, r, nil)
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.dataResponse(w, r, pref)
}

func (h *Handler) UploadPreference(w http.ResponseWriter, r *http.Request) {
	info := r.Context().Value(PeriodCtx).(*domain.PeriodInfo)
	kerb := chi.URLParam(r, "kerb")

	if err := h.formGate(r, kerb); err != nil {
		h.failure(w, r, err)
		return
	}

	request := struct {
		CanSolo        bool `json:"canSolo"`
		CanLead        bool `json:"canLead"`
		CanAssist      bool `json:"canAssist"`
		MaxCookingDays *int `json:"maxCookingDays" validate:"required,min=0"`
	}{}

	if err := h.readJSON(r, &request); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(request); err != nil {
		h.badRequest(w, r, err)
		return
	}

	registered, err := h.repository.IsRegisteredCook(info.Period, kerb)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if !registered {
		h.failure(w, r, domain.ErrNotRegisteredCook)
		return
	}

	pref := &domain.Preference{
		Kerb:           kerb,
		Period:         info.Period,
		CanSolo:        request.CanSolo,
		CanLead:        request.CanLead,
		CanAssist:      request.CanAssist,
		MaxCookingDays: *request.MaxCookingDays,
	}

	if err := h.repository.UpsertPreference(pref); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.dataResponse(w, r, pref)
}
