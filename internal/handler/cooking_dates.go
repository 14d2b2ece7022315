package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mit-pika/cook-roster/backend/internal/domain"
)

func (h *Handler) GetCookingDates(w http.ResponseWriter, r *http.Request) {
	info := r.Context().Value(PeriodCtx).(*domain.PeriodInfo)

	dates, err := h.repository.GetCookingDates(info.Period)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.dataResponse(w, r, dates)
}

func (h *Handler) AddCookingDate(w http.ResponseWriter, r *http.Request) {
	info := r.Context().Value(PeriodCtx).(*domain.PeriodInfo)

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

	if err := h.repository.AddCookingDate(info.Period, date.String()); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.okResponse(w, r)
}

func (h *Handler) RemoveCookingDate(w http.ResponseWriter, r *http.Request) {
	info := r.Context().Value(PeriodCtx).(*domain.PeriodInfo)

	date, err := h.parsePeriodDate(info, chi.URLParam(r, "date"))
	if err != nil {
		h.failure(w, r, err)
		return
	}

	if err := h.repository.RemoveCookingDate(date.String()); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.okResponse(w, r)
}

// parsePeriodDate parses a date and checks it falls inside the routed period.
func (h *Handler) parsePeriodDate(info *domain.PeriodInfo, raw string) (domain.Date, error) {
	date, err := domain.ParseDate(raw)
	if err != nil {
		return domain.Date{}, err
	}
	if date.Period().String() != info.Period {
		return domain.Date{}, domain.ErrInvalidDate
	}
	return date, nil
}
