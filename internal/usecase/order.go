package usecase

import (
	"context"
	"time"

	domainErrors "github.com/comedor/comedor/internal/domain/errors"
	"github.com/comedor/comedor/internal/domain/lifecycle"
	"github.com/comedor/comedor/internal/domain/model"
	"github.com/comedor/comedor/internal/domain/repository"
)

// OrderUseCase drives the order lifecycle. Every transition runs against the
// order row locked by the repository, so concurrent requests for the same
// order serialise and the loser observes the already-moved state.
type OrderUseCase struct {
	orders    repository.OrderRepository
	customers repository.CustomerRepository
	staff     repository.StaffRepository
	notifier  Notifier
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(orders repository.OrderRepository, customers repository.CustomerRepository, staff repository.StaffRepository, notifier Notifier) *OrderUseCase {
	return &OrderUseCase{orders: orders, customers: customers, staff: staff, notifier: notifier}
}

// ListByCustomer returns the customer's orders, newest first.
func (u *OrderUseCase) ListByCustomer(ctx context.Context, customerID int64) ([]model.Order, error) {
	return u.orders.ListByCustomer(ctx, customerID)
}

// GetForCustomer returns one order with lines, verifying ownership.
func (u *OrderUseCase) GetForCustomer(ctx context.Context, customerID, orderID int64) (*model.Order, error) {
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.CustomerID != customerID {
		return nil, domainErrors.ErrNotFound
	}
	return order, nil
}

// ListForStaff returns orders visible to the role. The kitchen only sees
// orders it can act on; other roles may filter by state.
func (u *OrderUseCase) ListForStaff(ctx context.Context, role model.Role, states []model.OrderState) ([]model.Order, error) {
	if role == model.RoleKitchen {
		states = []model.OrderState{model.StateInPreparation, model.StateReadyForPickup}
	}
	for _, state := range states {
		if !state.Valid() {
			return nil, domainErrors.ErrUnknownState
		}
	}
	return u.orders.ListByStates(ctx, states...)
}

// Transition moves the order into target on behalf of actor. State mutation
// and delivery stamping commit atomically; notifications are emitted only
// after the commit and never roll it back.
func (u *OrderUseCase) Transition(ctx context.Context, actor model.Staff, orderID int64, target model.OrderState) (*model.Order, error) {
	order, err := u.orders.Mutate(ctx, orderID, func(o *model.Order) error {
		eff, err := lifecycle.Decide(o, actor, target)
		if err != nil {
			return err
		}
		o.State = target
		if eff.AssignCourier {
			courierID := actor.ID
			o.CourierID = &courierID
		}
		if eff.StampDelivery {
			now := time.Now().UTC()
			o.DeliveredAt = &now
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.notifier.OrderChanged(*order, u.customerName(ctx, order.CustomerID))
	return order, nil
}

// AssignCourier sets or clears the order's courier. Admin only; a non-nil
// courier must hold the courier role.
func (u *OrderUseCase) AssignCourier(ctx context.Context, actor model.Staff, orderID int64, courierID *int64) (*model.Order, error) {
	if actor.Role != model.RoleAdmin {
		return nil, domainErrors.ErrUnauthorized
	}

	if courierID != nil {
		courier, err := u.staff.GetByID(ctx, *courierID)
		if err != nil {
			return nil, err
		}
		if courier.Role != model.RoleCourier {
			return nil, domainErrors.ErrNotACourier
		}
	}

	order, err := u.orders.Mutate(ctx, orderID, func(o *model.Order) error {
		o.CourierID = courierID
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.notifier.CourierAssigned(*order, u.customerName(ctx, order.CustomerID))
	return order, nil
}

func (u *OrderUseCase) customerName(ctx context.Context, customerID int64) string {
	customer, err := u.customers.GetByID(ctx, customerID)
	if err != nil {
		return ""
	}
	return customer.Name
}
