package domain

import (
	"time"
)

type Role string

const (
	RoleCook     Role = "cook"
	RoleFoodStud Role = "foodstud"
	RoleAdmin    Role = "admin"
)

// FoodStud seats. The house runs two food-stud positions at a time; each seat
// is held by at most one user.
const (
	SeatCostco  = "costco"
	SeatProduce = "produce"
)

type User struct {
	ID           int64     `json:"id"`
	Kerb         string    `json:"kerb"`
	PasswordHash string    `json:"-"`
	Email        string    `json:"email"`
	Role         Role      `json:"role"`
	FoodStudSeat *string   `json:"foodStudSeat,omitempty"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	Version      int32     `json:"-"`
}

// CanBypassFormGate reports whether the user may edit availability and
// preferences for a closed period and trigger admin-only roster operations.
func (u *User) CanBypassFormGate() bool {
	return u.Role == RoleAdmin || u.Role == RoleFoodStud
}
