package usecase

import (
	"context"
	"errors"
	"testing"

	domainErrors "github.com/comedor/comedor/internal/domain/errors"
	"github.com/comedor/comedor/internal/domain/model"
)

type stubOrderRepository struct{}

func (stubOrderRepository) CheckoutCart(context.Context, int64) (*model.Order, error) {
	panic("not implemented")
}

func (stubOrderRepository) GetByID(context.Context, int64) (*model.Order, error) {
	panic("not implemented")
}

func (stubOrderRepository) GetByCode(context.Context, string) (*model.Order, error) {
	panic("not implemented")
}

func (stubOrderRepository) ListByCustomer(context.Context, int64) ([]model.Order, error) {
	panic("not implemented")
}

func (stubOrderRepository) ListByStates(context.Context, ...model.OrderState) ([]model.Order, error) {
	panic("not implemented")
}

func (stubOrderRepository) Mutate(context.Context, int64, func(*model.Order) error) (*model.Order, error) {
	panic("not implemented")
}

// memoryOrderRepository mimics the storage Mutate contract against a single
// in-memory order.
type memoryOrderRepository struct {
	stubOrderRepository

	order  model.Order
	states []model.OrderState
}

func (s *memoryOrderRepository) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	if s.order.ID != id {
		return nil, domainErrors.ErrNotFound
	}
	copied := s.order
	return &copied, nil
}

func (s *memoryOrderRepository) ListByStates(ctx context.Context, states ...model.OrderState) ([]model.Order, error) {
	s.states = states
	return []model.Order{s.order}, nil
}

func (s *memoryOrderRepository) Mutate(ctx context.Context, orderID int64, apply func(*model.Order) error) (*model.Order, error) {
	if s.order.ID != orderID {
		return nil, domainErrors.ErrNotFound
	}
	candidate := s.order
	if err := apply(&candidate); err != nil {
		return nil, err
	}
	s.order = candidate
	copied := candidate
	return &copied, nil
}

type stubStaffRepository struct {
	byID map[int64]*model.Staff
}

func (s stubStaffRepository) Create(context.Context, model.Staff) (*model.Staff, error) {
	panic("not implemented")
}

func (s stubStaffRepository) GetByEmail(context.Context, string) (*model.Staff, error) {
	panic("not implemented")
}

func (s stubStaffRepository) GetByID(ctx context.Context, id int64) (*model.Staff, error) {
	if member, ok := s.byID[id]; ok {
		return member, nil
	}
	return nil, domainErrors.ErrNotFound
}

func (s stubStaffRepository) ListByRoles(context.Context, ...model.Role) ([]model.Staff, error) {
	panic("not implemented")
}

func newOrderUseCaseForTest(order model.Order, staff stubStaffRepository) (*OrderUseCase, *memoryOrderRepository, *recordingNotifier) {
	orders := &memoryOrderRepository{order: order}
	notifier := &recordingNotifier{}
	customers := stubCustomerRepository{customers: map[int64]*model.Customer{
		order.CustomerID: {ID: order.CustomerID, Name: "Maria"},
	}}
	return NewOrderUseCase(orders, customers, staff, notifier), orders, notifier
}

func TestTransitionKitchenAdvancesOrder(t *testing.T) {
	uc, orders, notifier := newOrderUseCaseForTest(
		model.Order{ID: 1, CustomerID: 3, State: model.StateReceived},
		stubStaffRepository{},
	)

	order, err := uc.Transition(context.Background(), model.Staff{ID: 2, Role: model.RoleKitchen}, 1, model.StateInPreparation)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.State != model.StateInPreparation {
		t.Fatalf("unexpected state %s", order.State)
	}
	if orders.order.State != model.StateInPreparation {
		t.Fatal("transition must be persisted")
	}
	if len(notifier.calls) != 1 || notifier.calls[0].customerName != "Maria" {
		t.Fatalf("unexpected notifications %+v", notifier.calls)
	}
}

func TestTransitionKitchenCannotSkipSteps(t *testing.T) {
	uc, orders, notifier := newOrderUseCaseForTest(
		model.Order{ID: 1, CustomerID: 3, State: model.StateReceived},
		stubStaffRepository{},
	)

	_, err := uc.Transition(context.Background(), model.Staff{ID: 2, Role: model.RoleKitchen}, 1, model.StateReadyForPickup)
	if !errors.Is(err, domainErrors.ErrIllegalTransition) {
		t.Fatalf("expected illegal transition error, got %v", err)
	}
	if orders.order.State != model.StateReceived {
		t.Fatal("rejected transition must not change state")
	}
	if len(notifier.calls) != 0 {
		t.Fatal("rejected transition must not notify")
	}
}

func TestTransitionCourierPickupAssignsActor(t *testing.T) {
	uc, orders, _ := newOrderUseCaseForTest(
		model.Order{ID: 1, CustomerID: 3, State: model.StateReadyForPickup},
		stubStaffRepository{},
	)

	order, err := uc.Transition(context.Background(), model.Staff{ID: 5, Role: model.RoleCourier}, 1, model.StateEnRoute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.CourierID == nil || *order.CourierID != 5 {
		t.Fatalf("expected courier 5 assigned, got %v", order.CourierID)
	}
	if orders.order.CourierID == nil || *orders.order.CourierID != 5 {
		t.Fatal("assignment must be persisted")
	}
}

func TestTransitionWrongCourierRejected(t *testing.T) {
	assigned := int64(5)
	uc, _, notifier := newOrderUseCaseForTest(
		model.Order{ID: 1, CustomerID: 3, State: model.StateEnRoute, CourierID: &assigned},
		stubStaffRepository{},
	)

	_, err := uc.Transition(context.Background(), model.Staff{ID: 7, Role: model.RoleCourier}, 1, model.StateDelivered)
	if !errors.Is(err, domainErrors.ErrUnauthorized) {
		t.Fatalf("expected unauthorized error, got %v", err)
	}
	if len(notifier.calls) != 0 {
		t.Fatal("rejected transition must not notify")
	}
}

func TestTransitionDeliveryStampsTimestampOnce(t *testing.T) {
	assigned := int64(5)
	uc, orders, _ := newOrderUseCaseForTest(
		model.Order{ID: 1, CustomerID: 3, State: model.StateEnRoute, CourierID: &assigned},
		stubStaffRepository{},
	)

	order, err := uc.Transition(context.Background(), model.Staff{ID: 5, Role: model.RoleCourier}, 1, model.StateDelivered)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.DeliveredAt == nil {
		t.Fatal("delivery must stamp the timestamp")
	}
	stamped := *orders.order.DeliveredAt

	admin := model.Staff{ID: 9, Role: model.RoleAdmin}
	if _, err := uc.Transition(context.Background(), admin, 1, model.StateNotDelivered); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !orders.order.DeliveredAt.Equal(stamped) {
		t.Fatal("delivery timestamp must be write-once")
	}
}

func TestListForStaffKitchenSeesOnlyActionable(t *testing.T) {
	uc, orders, _ := newOrderUseCaseForTest(
		model.Order{ID: 1, CustomerID: 3, State: model.StateInPreparation},
		stubStaffRepository{},
	)

	if _, err := uc.ListForStaff(context.Background(), model.RoleKitchen, []model.OrderState{model.StateDelivered}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []model.OrderState{model.StateInPreparation, model.StateReadyForPickup}
	if len(orders.states) != len(want) || orders.states[0] != want[0] || orders.states[1] != want[1] {
		t.Fatalf("kitchen filter = %v, want %v", orders.states, want)
	}
}

func TestListForStaffRejectsUnknownState(t *testing.T) {
	uc, _, _ := newOrderUseCaseForTest(model.Order{ID: 1}, stubStaffRepository{})

	_, err := uc.ListForStaff(context.Background(), model.RoleAdmin, []model.OrderState{"SHIPPED"})
	if !errors.Is(err, domainErrors.ErrUnknownState) {
		t.Fatalf("expected unknown state error, got %v", err)
	}
}

func TestGetForCustomerHidesForeignOrders(t *testing.T) {
	uc, _, _ := newOrderUseCaseForTest(
		model.Order{ID: 1, CustomerID: 3, State: model.StateReceived},
		stubStaffRepository{},
	)

	if _, err := uc.GetForCustomer(context.Background(), 4, 1); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found for foreign order, got %v", err)
	}
}

func TestAssignCourierAdminOnly(t *testing.T) {
	uc, _, _ := newOrderUseCaseForTest(
		model.Order{ID: 1, CustomerID: 3, State: model.StateReadyForPickup},
		stubStaffRepository{},
	)

	courierID := int64(5)
	_, err := uc.AssignCourier(context.Background(), model.Staff{ID: 2, Role: model.RoleCashier}, 1, &courierID)
	if !errors.Is(err, domainErrors.ErrUnauthorized) {
		t.Fatalf("expected unauthorized error, got %v", err)
	}
}

func TestAssignCourierRequiresCourierRole(t *testing.T) {
	staff := stubStaffRepository{byID: map[int64]*model.Staff{
		8: {ID: 8, Role: model.RoleCashier},
	}}
	uc, _, _ := newOrderUseCaseForTest(
		model.Order{ID: 1, CustomerID: 3, State: model.StateReadyForPickup},
		staff,
	)

	target := int64(8)
	_, err := uc.AssignCourier(context.Background(), model.Staff{ID: 9, Role: model.RoleAdmin}, 1, &target)
	if !errors.Is(err, domainErrors.ErrNotACourier) {
		t.Fatalf("expected not a courier error, got %v", err)
	}
}

func TestAssignCourierSetsCourierAndNotifies(t *testing.T) {
	staff := stubStaffRepository{byID: map[int64]*model.Staff{
		5: {ID: 5, Name: "Pedro", Role: model.RoleCourier},
	}}
	uc, orders, notifier := newOrderUseCaseForTest(
		model.Order{ID: 1, CustomerID: 3, State: model.StateReadyForPickup},
		staff,
	)

	target := int64(5)
	order, err := uc.AssignCourier(context.Background(), model.Staff{ID: 9, Role: model.RoleAdmin}, 1, &target)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.CourierID == nil || *order.CourierID != 5 {
		t.Fatalf("expected courier 5, got %v", order.CourierID)
	}
	if orders.order.CourierID == nil || *orders.order.CourierID != 5 {
		t.Fatal("assignment must be persisted")
	}
	if len(notifier.calls) != 1 || !notifier.calls[0].assignment {
		t.Fatalf("expected one assignment notification, got %+v", notifier.calls)
	}
}
