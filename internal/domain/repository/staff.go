package repository

import (
	"context"

	"github.com/comedor/comedor/internal/domain/model"
)

// StaffRepository describes persistence operations for restaurant staff.
type StaffRepository interface {
	Create(ctx context.Context, s model.Staff) (*model.Staff, error)
	GetByEmail(ctx context.Context, email string) (*model.Staff, error)
	GetByID(ctx context.Context, id int64) (*model.Staff, error)
	ListByRoles(ctx context.Context, roles ...model.Role) ([]model.Staff, error)
}
