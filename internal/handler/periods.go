package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/mit-pika/cook-roster/backend/internal/domain"
)

func (h *Handler) GetAllPeriods(w http.ResponseWriter, r *http.Request) {
	periods, err := h.repository.GetAllPeriods()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.dataResponse(w, r, periods)
}

func (h *Handler) CreatePeriod(w http.ResponseWriter, r *http.Request) {
	request := struct {
		Period string `json:"period" validate:"required"`
	}{}

	if err := h.readJSON(r, &request); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(request); err != nil {
		h.badRequest(w, r, err)
		return
	}

	period, err := domain.ParsePeriod(request.Period)
	if err != nil {
		h.failure(w, r, err)
		return
	}

	if err := h.repository.CreatePeriod(period.String()); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	info, err := h.repository.GetPeriod(period.String())
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.dataResponse(w, r, info)
}

func (h *Handler) GetCurrentPeriod(w http.ResponseWriter, r *http.Request) {
	info, err := h.repository.GetCurrentPeriod()
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.dataResponse(w, r, nil)
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.dataResponse(w, r, info)
}

func (h *Handler) SetCurrentPeriod(w http.ResponseWriter, r *http.Request) {
	request := struct {
		Period string `json:"period" validate:"required"`
	}{}

	if err := h.readJSON(r, &request); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(request); err != nil {
		h.badRequest(w, r, err)
		return
	}

	period, err := domain.ParsePeriod(request.Period)
	if err != nil {
		h.failure(w, r, err)
		return
	}

	if err := h.repository.SetCurrentPeriod(period.String()); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.failure(w, r, domain.ErrInvalidPeriod)
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.okResponse(w, r)
}

func (h *Handler) GetPeriod(w http.ResponseWriter, r *http.Request) {
	info := r.Context().Value(PeriodCtx).(*domain.PeriodInfo)
	h.dataResponse(w, r, info)
}

func (h *Handler) DeletePeriod(w http.ResponseWriter, r *http.Request) {
	info := r.Context().Value(PeriodCtx).(*domain.PeriodInfo)

	if err := h.repository.DeletePeriod(info.Period); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.failure(w, r, domain.ErrInvalidPeriod)
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.okResponse(w, r)
}

func (h *Handler) OpenPeriod(w http.ResponseWriter, r *http.Request) {
	h.setPeriodOpen(w, r, true)
}

func (h *Handler) ClosePeriod(w http.ResponseWriter, r *http.Request) {
	h.setPeriodOpen(w, r, false)
}

func (h *Handler) setPeriodOpen(w http.ResponseWriter, r *http.Request, open bool) {
	info := r.Context().Value(PeriodCtx).(*domain.PeriodInfo)

	if err := h.repository.SetPeriodOpen(info.Period, open); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.failure(w, r, domain.ErrInvalidPeriod)
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.okResponse(w, r)
}
