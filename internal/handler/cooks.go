package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/mit-pika/cook-roster/backend/internal/domain"
)

func (h *Handler) GetCooks(w http.ResponseWriter, r *http.Request) {
	info := r.Context().Value(PeriodCtx).(*domain.PeriodInfo)

	kerbs, err := h.repository.GetCooks(info.Period)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.dataResponse(w, r, kerbs)
}

func (h *Handler) AddCook(w http.ResponseWriter, r *http.Request) {
	info := r.Context().Value(PeriodCtx).(*domain.PeriodInfo)

	request := struct {
		Kerb string `json:"kerb" validate:"required,alphanum,lowercase"`
	}{}

	if err := h.readJSON(r, &request); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(request); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.repository.AddCook(info.Period, request.Kerb); err != nil {
		pgErr := &pgconn.PgError{}
		if errors.As(err, &pgErr) && pgErr.ConstraintName == "period_cooks_kerb_fkey" {
			h.errorResponse(w, r, "no user with this kerb exists")
			return
		}
		h.internalServerError(w, r, err)
		return
	}

	h.okResponse(w, r)
}

// RemoveCook drops a cook from the period roster; their availability and
// preference for the period go with them.
func (h *Handler) RemoveCook(w http.ResponseWriter, r *http.Request) {
	info := r.Context().Value(PeriodCtx).(*domain.PeriodInfo)
	kerb := chi.URLParam(r, "kerb")

	if err := h.repository.RemoveCook(info.Period, kerb); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.okResponse(w, r)
}
