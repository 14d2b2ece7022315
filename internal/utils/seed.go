package utils

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/mit-pika/cook-roster/backend/internal/domain"
)

// GenerateRandomUser builds a throwaway cook account for seeding. All seeded
// users share the configured seed password so they are easy to log in as.
func GenerateRandomUser(password string, emailDomain string) (*domain.User, error) {
	suffix, err := GenerateRandomPassword(6)
	if err != nil {
		return nil, err
	}
	kerb := fmt.Sprintf("cook%s", suffix)

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return &domain.User{
		Kerb:         kerb,
		PasswordHash: string(hash),
		Email:        fmt.Sprintf("%s@%s", kerb, emailDomain),
		Role:         domain.RoleCook,
	}, nil
}
