package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"

	"github.com/mit-pika/cook-roster/backend/internal/domain"
	"github.com/mit-pika/cook-roster/backend/internal/utils"
)

func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	request := struct {
		Kerb string      `json:"kerb" validate:"required,alphanum,lowercase"`
		Role domain.Role `json:"role" validate:"required,oneof=cook foodstud admin"`
	}{}

	if err := h.readJSON(r, &request); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(request); err != nil {
		h.badRequest(w, r, err)
		return
	}

	password, err := utils.GenerateRandomPassword(h.config.NewUser.PasswordLength)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	user := &domain.User{
		Kerb:         request.Kerb,
		PasswordHash: string(hash),
		Email:        fmt.Sprintf("%s@%s", request.Kerb, h.config.Email.UserDomain),
		Role:         request.Role,
	}

	if err := h.repository.CreateUser(user); err != nil {
		pgErr := &pgconn.PgError{}
		if errors.As(err, &pgErr) && pgErr.ConstraintName == "users_kerb_key" {
			h.errorResponse(w, r, "a user with this kerb already exists")
			return
		}
		h.internalServerError(w, r, err)
		return
	}

	err = h.publishMail(&domain.MailMessage{
		Type: "create_user",
		To:   user.Email,
		Data: domain.CreateUserMailData{
			Kerb:     user.Kerb,
			Password: password,
		},
	})
	if err != nil {
		slog.Error("failed to publish create user mail", "kerb", user.Kerb, "error", err)
	}

	h.dataResponse(w, r, user)
}

func (h *Handler) GetAllUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.repository.GetAllUsers()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.dataResponse(w, r, users)
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	user := r.Context().Value(UserInfoCtx).(*domain.User)
	h.dataResponse(w, r, user)
}

func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	user := r.Context().Value(UserInfoCtx).(*domain.User)

	request := struct {
		Email    *string      `json:"email" validate:"omitempty,email"`
		Role     *domain.Role `json:"role" validate:"omitempty,oneof=cook foodstud admin"`
		IsActive *bool        `json:"isActive"`
	}{}

	if err := h.readJSON(r, &request); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(request); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if request.Email != nil {
		user.Email = *request.Email
	}
	if request.Role != nil {
		user.Role = *request.Role
	}
	if request.IsActive != nil {
		user.IsActive = *request.IsActive
	}

	if err := h.repository.UpdateUser(user); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.dataResponse(w, r, user)
}

func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	user := r.Context().Value(UserInfoCtx).(*domain.User)

	if err := h.repository.DeleteUser(user.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.okResponse(w, r)
}

func (h *Handler) UpdateUserPassword(w http.ResponseWriter, r *http.Request) {
	user := r.Context().Value(UserInfoCtx).(*domain.User)

	request := struct {
		NewPassword string `json:"newPassword" validate:"required,min=8"`
	}{}

	if err := h.readJSON(r, &request); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(request); err != nil {
		h.badRequest(w, r, err)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(request.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	user.PasswordHash = string(hash)
	if err := h.repository.UpdateUser(user); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.okResponse(w, r)
}

// SetFoodStud hands one of the two food-stud seats to the target user. The
// previous seat holder, if any, goes back to the plain cook role.
func (h *Handler) SetFoodStud(w http.ResponseWriter, r *http.Request) {
	user := r.Context().Value(UserInfoCtx).(*domain.User)

	request := struct {
		Seat string `json:"seat" validate:"required,oneof=costco produce"`
	}{}

	if err := h.readJSON(r, &request); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(request); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if user.Role == domain.RoleAdmin {
		h.errorResponse(w, r, "admins cannot hold a food-stud seat")
		return
	}

	if err := h.repository.SetFoodStudSeat(request.Seat, user.Kerb); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.okResponse(w, r)
}
