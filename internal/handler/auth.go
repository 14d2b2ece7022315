package handler

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"github.com/mit-pika/cook-roster/backend/internal/domain"
	"github.com/mit-pika/cook-roster/backend/internal/utils"
)

type AuthClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	request := struct {
		Kerb     string `json:"kerb" validate:"required"`
		Password string `json:"password" validate:"required"`
	}{}

	if err := h.readJSON(r, &request); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(request); err != nil {
		h.badRequest(w, r, err)
		return
	}

	user, err := h.repository.GetUserByKerb(request.Kerb)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "incorrect kerb or password")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(request.Password)); err != nil {
		h.errorResponse(w, r, "incorrect kerb or password")
		return
	}

	if !user.IsActive {
		h.errorResponse(w, r, "account is deactivated")
		return
	}

	expiration := time.Duration(h.config.JWT.Expiration) * time.Second
	claims := &AuthClaims{
		Role: string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%d", user.ID),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiration)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(h.config.JWT.Secret))
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    tokenString,
		Path:     "/",
		MaxAge:   h.config.JWT.Expiration,
		HttpOnly: true,
		Secure:   h.config.Environment == "production",
		SameSite: http.SameSiteStrictMode,
	})

	h.dataResponse(w, r, user)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.config.Environment == "production",
		SameSite: http.SameSiteStrictMode,
	})

	h.okResponse(w, r)
}

func resetPasswordOTPKey(kerb string) string {
	return fmt.Sprintf("reset_password_otp_%s", kerb)
}

func (h *Handler) RequireResetPassword(w http.ResponseWriter, r *http.Request) {
	request := struct {
		Kerb string `json:"kerb" validate:"required"`
	}{}

	if err := h.readJSON(r, &request); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(request); err != nil {
		h.badRequest(w, r, err)
		return
	}

	user, err := h.repository.GetUserByKerb(request.Kerb)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			// do not reveal whether the kerb exists
			h.okResponse(w, r)
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	otp, err := utils.GenerateRandomOTP()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	ctx, cancel := h.redisCtx()
	defer cancel()

	expiration := time.Duration(h.config.OTP.Expiration) * time.Second
	if err := h.redisClient.Set(ctx, resetPasswordOTPKey(user.Kerb), otp, expiration).Err(); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	err = h.publishMail(&domain.MailMessage{
		Type: "reset_password",
		To:   user.Email,
		Data: domain.ResetPasswordMailData{
			Kerb:       user.Kerb,
			OTP:        otp,
			Expiration: h.config.OTP.Expiration / 60,
		},
	})
	if err != nil {
		slog.Error("failed to publish reset password mail", "kerb", user.Kerb, "error", err)
	}

	h.okResponse(w, r)
}

func (h *Handler) ConfirmResetPassword(w http.ResponseWriter, r *http.Request) {
	request := struct {
		Kerb        string `json:"kerb" validate:"required"`
		OTP         string `json:"otp" validate:"required"`
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

	ctx, cancel := h.redisCtx()
	defer cancel()

	storedOTP, err := h.redisClient.Get(ctx, resetPasswordOTPKey(request.Kerb)).Result()
	if err != nil {
		switch {
		case errors.Is(err, redis.Nil):
			h.errorResponse(w, r, "verification code is invalid or has expired")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if storedOTP != request.OTP {
		h.errorResponse(w, r, "verification code is invalid or has expired")
		return
	}

	user, err := h.repository.GetUserByKerb(request.Kerb)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "user does not exist")
		default:
			h.internalServerError(w, r, err)
		}
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

	if err := h.redisClient.Del(ctx, resetPasswordOTPKey(request.Kerb)).Err(); err != nil {
		slog.Error("failed to delete used otp", "kerb", request.Kerb, "error", err)
	}

	h.okResponse(w, r)
}
