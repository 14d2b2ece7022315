package seed

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/mit-pika/cook-roster/backend/internal/domain"
	"github.com/mit-pika/cook-roster/backend/internal/repository"
)

// SeedDemoRoster fills one period with a plausible kitchen: every existing
// non-admin user registered as a cook, random availability over the period's
// cooking dates and a random preference tuple each. The period gets cooking
// dates on Tuesdays and Thursdays.
func SeedDemoRoster(repo *repository.Repository, period string) {
	p, err := domain.ParsePeriod(period)
	if err != nil {
		slog.Error("invalid period", slog.String("period", period), slog.String("error", err.Error()))
		return
	}

	if err := repo.CreatePeriod(p.String()); err != nil {
		slog.Error("failed to create period", slog.String("error", err.Error()))
		return
	}

	var dates []string
	for day := 1; day <= 28; day++ {
		date := fmt.Sprintf("%s-%02d", p.String(), day)
		d, err := domain.ParseDate(date)
		if err != nil {
			continue
		}
		if wd := d.Weekday(); wd != 2 && wd != 4 {
			continue
		}
		if err := repo.AddCookingDate(p.String(), date); err != nil {
			slog.Error("failed to add cooking date", slog.String("date", date), slog.String("error", err.Error()))
			continue
		}
		dates = append(dates, date)
	}

	users, err := repo.GetAllUsers()
	if err != nil {
		slog.Error("failed to load users", slog.String("error", err.Error()))
		return
	}

	registered := 0
	for _, user := range users {
		if user.Role == domain.RoleAdmin {
			continue
		}

		if err := repo.AddCook(p.String(), user.Kerb); err != nil {
			slog.Error("failed to register cook", slog.String("kerb", user.Kerb), slog.String("error", err.Error()))
			continue
		}

		for _, date := range dates {
			if rand.Intn(2) == 0 {
				continue
			}
			if err := repo.AddAvailability(user.Kerb, p.String(), date); err != nil {
				slog.Error("failed to add availability", slog.String("kerb", user.Kerb), slog.String("error", err.Error()))
			}
		}

		pref := &domain.Preference{
			Kerb:           user.Kerb,
			Period:         p.String(),
			CanSolo:        rand.Intn(4) == 0,
			CanLead:        rand.Intn(2) == 0,
			CanAssist:      true,
			MaxCookingDays: 1 + rand.Intn(4),
		}
		if err := repo.UpsertPreference(pref); err != nil {
			slog.Error("failed to store preference", slog.String("kerb", user.Kerb), slog.String("error", err.Error()))
			continue
		}

		registered++
	}

	slog.Info("demo roster seeded", slog.String("period", p.String()), slog.Int("cooks", registered), slog.Int("cookingDates", len(dates)))
}
