package handler

import (
	"context"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"github.com/mit-pika/cook-roster/backend/internal/config"
	"github.com/mit-pika/cook-roster/backend/internal/domain"
	"github.com/mit-pika/cook-roster/backend/internal/repository"
	"github.com/mit-pika/cook-roster/backend/internal/scheduler"
)

type Handler struct {
	validate    *validator.Validate
	config      *config.Config
	repository  *repository.Repository
	translator  ut.Translator
	mailChannel *amqp.Channel
	redisClient *redis.Client
	strategy    scheduler.Strategy
	llmStrategy scheduler.Strategy // optional alternate generator; nil when unconfigured

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, mailCh *amqp.Channel, rdb *redis.Client) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ := uni.GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:    validate,
		config:      cfg,
		repository:  repo,
		translator:  trans,
		mailChannel: mailCh,
		redisClient: rdb,
		strategy:    scheduler.Greedy{},

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) redisCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), time.Duration(h.config.Redis.OperationExpiration)*time.Second)
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	adminOnly := h.RequiredRole([]domain.Role{domain.RoleAdmin})
	staff := h.RequiredRole([]domain.Role{domain.RoleAdmin, domain.RoleFoodStud})

	h.Mux.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
		r.Route("/reset-password", func(r chi.Router) {
			r.Post("/require", h.RequireResetPassword)
			r.Post("/confirm", h.ConfirmResetPassword)
		})
	})

	// everything below requires a session
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Route("/my-info", func(r chi.Router) {
			r.Use(h.myInfo)
			r.Get("/", h.GetMyInfo)
			r.Patch("/password", h.UpdateMyPassword)
		})

		r.Route("/users", func(r chi.Router) {
			r.With(adminOnly).Post("/", h.CreateUser)
			r.Get("/", h.GetAllUsers)
			r.Route("/{kerb}", func(r chi.Router) {
				r.Use(h.userInfo)
				r.Get("/", h.GetUser)
				r.With(h.preventOperateInitialAdmin).With(adminOnly).Patch("/", h.UpdateUser)
				r.With(h.preventOperateInitialAdmin).With(adminOnly).Delete("/", h.DeleteUser)
				r.With(adminOnly).Patch("/password", h.UpdateUserPassword)
				r.With(adminOnly).Put("/foodstud", h.SetFoodStud)
			})
		})

		r.Route("/periods", func(r chi.Router) {
			r.Get("/", h.GetAllPeriods)
			r.With(staff).Post("/", h.CreatePeriod)
			r.Get("/current", h.GetCurrentPeriod)
			r.With(staff).Put("/current", h.SetCurrentPeriod)

			r.Route("/{period}", func(r chi.Router) {
				r.Use(h.periodCtx)
				r.Use(h.myInfo)
				r.Get("/", h.GetPeriod)
				r.With(staff).Delete("/", h.DeletePeriod)
				r.With(staff).Post("/open", h.OpenPeriod)
				r.With(staff).Post("/close", h.ClosePeriod)

				r.Route("/cooks", func(r chi.Router) {
					r.Get("/", h.GetCooks)
					r.With(staff).Post("/", h.AddCook)
					r.Route("/{kerb}", func(r chi.Router) {
						r.With(staff).Delete("/", h.RemoveCook)
						r.Route("/availability", func(r chi.Router) {
							r.Get("/", h.GetAvailability)
							r.Post("/", h.AddAvailability)
							r.Delete("/{date}", h.RemoveAvailability)
						})
						r.Route("/preference", func(r chi.Router) {
							r.Get("/", h.GetPreference)
							r.Put("/", h.UploadPreference)
						})
					})
				})

				r.Route("/cooking-dates", func(r chi.Router) {
					r.Get("/", h.GetCookingDates)
					r.With(staff).Post("/", h.AddCookingDate)
					r.Route("/{date}", func(r chi.Router) {
						r.With(staff).Delete("/", h.RemoveCookingDate)
						r.Get("/candidates", h.GetCandidateCooks)
					})
				})

				r.Route("/assignments", func(r chi.Router) {
					r.Get("/", h.GetAssignments)
					r.Get("/{date}", h.GetAssignment)
					r.With(staff).Post("/generate", h.GenerateAssignments)
					r.With(staff).Post("/generate-llm", h.GenerateAssignmentsWithLLM)
					r.With(staff).Post("/lead", h.AssignLead)
					r.With(staff).Post("/assistant", h.AssignAssistant)
					r.With(staff).Delete("/", h.ClearAssignments)
					r.With(staff).Delete("/{date}", h.RemoveAssignment)
				})
			})
		})
	})
}
