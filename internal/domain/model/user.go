package model

import "time"

// Role is the closed set of staff roles recognised by the lifecycle engine.
type Role string

const (
	RoleKitchen Role = "KITCHEN"
	RoleCourier Role = "COURIER"
	RoleCashier Role = "CASHIER"
	RoleAdmin   Role = "ADMIN"
)

// Valid reports whether the role belongs to the closed set.
func (r Role) Valid() bool {
	switch r {
	case RoleKitchen, RoleCourier, RoleCashier, RoleAdmin:
		return true
	}
	return false
}

// Customer places orders through the public menu.
type Customer struct {
	ID           int64
	Name         string
	Email        string
	Phone        string
	Address      string
	PasswordHash string
	CreatedAt    time.Time
}

// Staff is a restaurant employee with a single role.
type Staff struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}
