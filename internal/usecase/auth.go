package usecase

import (
	"context"
	"errors"
	"strings"

	domainErrors "github.com/comedor/comedor/internal/domain/errors"
	"github.com/comedor/comedor/internal/domain/model"
	"github.com/comedor/comedor/internal/domain/repository"
	pkgAuth "github.com/comedor/comedor/internal/pkg/auth"
)

// AuthUseCase handles customer and staff credentials and token management.
type AuthUseCase struct {
	customers repository.CustomerRepository
	staff     repository.StaffRepository
	hasher    pkgAuth.PasswordHasher
	tokens    pkgAuth.Strategy
}

// NewAuthUseCase constructs AuthUseCase.
func NewAuthUseCase(customers repository.CustomerRepository, staff repository.StaffRepository, hasher pkgAuth.PasswordHasher, strategy pkgAuth.Strategy) *AuthUseCase {
	return &AuthUseCase{customers: customers, staff: staff, hasher: hasher, tokens: strategy}
}

// CustomerRegistration carries the signup form fields.
type CustomerRegistration struct {
	Name     string
	Email    string
	Phone    string
	Address  string
	Password string
}

// RegisterCustomer creates a new customer and returns an auth token.
func (u *AuthUseCase) RegisterCustomer(ctx context.Context, reg CustomerRegistration) (*model.Customer, string, error) {
	reg.Email = strings.TrimSpace(strings.ToLower(reg.Email))
	reg.Name = strings.TrimSpace(reg.Name)
	if reg.Email == "" || reg.Password == "" || reg.Name == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	hash, err := u.hasher.Hash(reg.Password)
	if err != nil {
		return nil, "", err
	}

	customer, err := u.customers.Create(ctx, model.Customer{
		Name:         reg.Name,
		Email:        reg.Email,
		Phone:        reg.Phone,
		Address:      reg.Address,
		PasswordHash: hash,
	})
	if err != nil {
		return nil, "", err
	}

	token, err := u.tokens.IssueToken(pkgAuth.Principal{Kind: pkgAuth.KindCustomer, ID: customer.ID})
	if err != nil {
		return nil, "", err
	}

	return customer, token, nil
}

// AuthenticateCustomer validates credentials and returns an auth token.
func (u *AuthUseCase) AuthenticateCustomer(ctx context.Context, email, password string) (*model.Customer, string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	customer, err := u.customers.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, "", domainErrors.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := u.hasher.Compare(customer.PasswordHash, password); err != nil {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	token, err := u.tokens.IssueToken(pkgAuth.Principal{Kind: pkgAuth.KindCustomer, ID: customer.ID})
	if err != nil {
		return nil, "", err
	}

	return customer, token, nil
}

// AuthenticateStaff validates staff credentials and returns a role-bearing token.
func (u *AuthUseCase) AuthenticateStaff(ctx context.Context, email, password string) (*model.Staff, string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	staff, err := u.staff.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, "", domainErrors.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := u.hasher.Compare(staff.PasswordHash, password); err != nil {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	token, err := u.tokens.IssueToken(pkgAuth.Principal{Kind: pkgAuth.KindStaff, ID: staff.ID, Role: staff.Role})
	if err != nil {
		return nil, "", err
	}

	return staff, token, nil
}

// ParseToken extracts the principal from the provided token.
func (u *AuthUseCase) ParseToken(token string) (pkgAuth.Principal, error) {
	if token == "" {
		return pkgAuth.Principal{}, pkgAuth.ErrInvalidToken
	}
	return u.tokens.ParseToken(token)
}

// GetCustomer fetches a customer by identifier.
func (u *AuthUseCase) GetCustomer(ctx context.Context, id int64) (*model.Customer, error) {
	return u.customers.GetByID(ctx, id)
}

// ProfileUpdate carries the editable customer fields. Password change is
// optional and requires the current password.
type ProfileUpdate struct {
	Name            string
	Phone           string
	Address         string
	CurrentPassword string
	NewPassword     string
}

// UpdateProfile applies profile changes for the customer.
func (u *AuthUseCase) UpdateProfile(ctx context.Context, customerID int64, update ProfileUpdate) error {
	update.Name = strings.TrimSpace(update.Name)
	if update.Name == "" {
		return domainErrors.ErrInvalidCredentials
	}

	customer, err := u.customers.GetByID(ctx, customerID)
	if err != nil {
		return err
	}

	customer.Name = update.Name
	customer.Phone = update.Phone
	customer.Address = update.Address

	if update.NewPassword != "" {
		if err := u.hasher.Compare(customer.PasswordHash, update.CurrentPassword); err != nil {
			return domainErrors.ErrInvalidCredentials
		}
		hash, err := u.hasher.Hash(update.NewPassword)
		if err != nil {
			return err
		}
		customer.PasswordHash = hash
	}

	return u.customers.Update(ctx, *customer)
}
