package auth

import (
	"time"

	"github.com/comedor/comedor/internal/domain/model"
)

// PrincipalKind separates the two authenticated populations.
type PrincipalKind string

const (
	KindCustomer PrincipalKind = "customer"
	KindStaff    PrincipalKind = "staff"
)

// Principal is the authenticated identity carried by a token. Role is empty
// for customers.
type Principal struct {
	Kind PrincipalKind
	ID   int64
	Role model.Role
}

type Strategy interface {
	IssueToken(p Principal) (string, error)
	ParseToken(token string) (Principal, error)
	Name() string
}

type Options struct {
	TTL time.Duration
}
