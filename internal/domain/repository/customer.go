package repository

import (
	"context"

	"github.com/comedor/comedor/internal/domain/model"
)

// CustomerRepository describes persistence operations for customers.
type CustomerRepository interface {
	Create(ctx context.Context, c model.Customer) (*model.Customer, error)
	GetByEmail(ctx context.Context, email string) (*model.Customer, error)
	GetByID(ctx context.Context, id int64) (*model.Customer, error)
	Update(ctx context.Context, c model.Customer) error
}
