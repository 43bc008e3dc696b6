package test

import (
	"context"
	"sync"

	domainErrors "github.com/comedor/comedor/internal/domain/errors"
	"github.com/comedor/comedor/internal/domain/model"
)

// CustomerRepositoryStub stores customers in-memory for tests.
type CustomerRepositoryStub struct {
	ByEmail map[string]*model.Customer
	ByID    map[int64]*model.Customer
	Next    int64
	Err     error
}

// NewCustomerRepositoryStub constructs stub repository with initialized maps.
func NewCustomerRepositoryStub() *CustomerRepositoryStub {
	return &CustomerRepositoryStub{
		ByEmail: make(map[string]*model.Customer),
		ByID:    make(map[int64]*model.Customer),
		Next:    1,
	}
}

// Create registers customer unless already exists or stub has explicit error.
func (s *CustomerRepositoryStub) Create(ctx context.Context, c model.Customer) (*model.Customer, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if _, exists := s.ByEmail[c.Email]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	if s.Next == 0 {
		s.Next = 1
	}
	c.ID = s.Next
	s.Next++
	stored := c
	s.ByEmail[c.Email] = &stored
	s.ByID[c.ID] = &stored
	return &stored, nil
}

// GetByEmail fetches customer by email or returns not found.
func (s *CustomerRepositoryStub) GetByEmail(ctx context.Context, email string) (*model.Customer, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if c, ok := s.ByEmail[email]; ok {
		return c, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches customer by identifier or returns not found.
func (s *CustomerRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Customer, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if c, ok := s.ByID[id]; ok {
		return c, nil
	}
	return nil, domainErrors.ErrNotFound
}

// Update replaces the stored customer.
func (s *CustomerRepositoryStub) Update(ctx context.Context, c model.Customer) error {
	if s.Err != nil {
		return s.Err
	}
	stored, ok := s.ByID[c.ID]
	if !ok {
		return domainErrors.ErrNotFound
	}
	delete(s.ByEmail, stored.Email)
	*stored = c
	s.ByEmail[c.Email] = stored
	return nil
}

// StaffRepositoryStub stores staff members in-memory for tests.
type StaffRepositoryStub struct {
	ByEmail map[string]*model.Staff
	ByID    map[int64]*model.Staff
	Next    int64
	Err     error
}

// NewStaffRepositoryStub constructs stub repository with initialized maps.
func NewStaffRepositoryStub() *StaffRepositoryStub {
	return &StaffRepositoryStub{
		ByEmail: make(map[string]*model.Staff),
		ByID:    make(map[int64]*model.Staff),
		Next:    1,
	}
}

// Add inserts a staff member directly, bypassing Create bookkeeping.
func (s *StaffRepositoryStub) Add(member model.Staff) *model.Staff {
	if member.ID == 0 {
		member.ID = s.Next
		s.Next++
	} else if member.ID >= s.Next {
		s.Next = member.ID + 1
	}
	stored := member
	s.ByEmail[member.Email] = &stored
	s.ByID[member.ID] = &stored
	return &stored
}

// Create registers a staff member unless the email is taken.
func (s *StaffRepositoryStub) Create(ctx context.Context, member model.Staff) (*model.Staff, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if _, exists := s.ByEmail[member.Email]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	member.ID = 0
	return s.Add(member), nil
}

// GetByEmail fetches staff by email or returns not found.
func (s *StaffRepositoryStub) GetByEmail(ctx context.Context, email string) (*model.Staff, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if member, ok := s.ByEmail[email]; ok {
		return member, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches staff by identifier or returns not found.
func (s *StaffRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Staff, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if member, ok := s.ByID[id]; ok {
		return member, nil
	}
	return nil, domainErrors.ErrNotFound
}

// ListByRoles returns stored staff holding any of the roles, ordered by ID.
func (s *StaffRepositoryStub) ListByRoles(ctx context.Context, roles ...model.Role) ([]model.Staff, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	var out []model.Staff
	for id := int64(1); id < s.Next; id++ {
		member, ok := s.ByID[id]
		if !ok {
			continue
		}
		for _, role := range roles {
			if member.Role == role {
				out = append(out, *member)
				break
			}
		}
	}
	return out, nil
}

// CatalogRepositoryStub allows tests to customize catalog behaviour.
type CatalogRepositoryStub struct {
	MenuFn           func(context.Context) ([]model.MenuSection, error)
	CreateCategoryFn func(context.Context, model.Category) (*model.Category, error)
	CreateProductFn  func(context.Context, model.Product) (*model.Product, error)
	UpdateProductFn  func(context.Context, model.Product) error
	GetProductFn     func(context.Context, int64) (*model.Product, error)
	SoftDeleteFn     func(context.Context, int64) error

	Sections []model.MenuSection
	Deleted  []int64
}

// Menu returns configured sections.
func (s *CatalogRepositoryStub) Menu(ctx context.Context) ([]model.MenuSection, error) {
	if s.MenuFn != nil {
		return s.MenuFn(ctx)
	}
	return s.Sections, nil
}

// CreateCategory returns the category with an assigned identifier.
func (s *CatalogRepositoryStub) CreateCategory(ctx context.Context, c model.Category) (*model.Category, error) {
	if s.CreateCategoryFn != nil {
		return s.CreateCategoryFn(ctx, c)
	}
	c.ID = 1
	return &c, nil
}

// CreateProduct returns the product with an assigned identifier.
func (s *CatalogRepositoryStub) CreateProduct(ctx context.Context, p model.Product) (*model.Product, error) {
	if s.CreateProductFn != nil {
		return s.CreateProductFn(ctx, p)
	}
	p.ID = 1
	return &p, nil
}

// UpdateProduct applies override when provided.
func (s *CatalogRepositoryStub) UpdateProduct(ctx context.Context, p model.Product) error {
	if s.UpdateProductFn != nil {
		return s.UpdateProductFn(ctx, p)
	}
	return nil
}

// GetProduct returns configured product or not found.
func (s *CatalogRepositoryStub) GetProduct(ctx context.Context, id int64) (*model.Product, error) {
	if s.GetProductFn != nil {
		return s.GetProductFn(ctx, id)
	}
	return nil, domainErrors.ErrNotFound
}

// SoftDeleteProduct records deleted identifiers.
func (s *CatalogRepositoryStub) SoftDeleteProduct(ctx context.Context, id int64) error {
	if s.SoftDeleteFn != nil {
		return s.SoftDeleteFn(ctx, id)
	}
	s.Deleted = append(s.Deleted, id)
	return nil
}

// CartRepositoryStub allows tests to customize cart behaviour.
type CartRepositoryStub struct {
	AddItemFn     func(context.Context, int64, int64) error
	SetQuantityFn func(context.Context, int64, int64, int32) error
	RemoveItemFn  func(context.Context, int64, int64) error
	ActiveViewFn  func(context.Context, int64) (*model.CartView, error)

	View    *model.CartView
	Added   []int64
	Removed []int64
}

// AddItem records added product identifiers.
func (s *CartRepositoryStub) AddItem(ctx context.Context, customerID, productID int64) error {
	if s.AddItemFn != nil {
		return s.AddItemFn(ctx, customerID, productID)
	}
	s.Added = append(s.Added, productID)
	return nil
}

// SetQuantity applies override when provided.
func (s *CartRepositoryStub) SetQuantity(ctx context.Context, customerID, productID int64, quantity int32) error {
	if s.SetQuantityFn != nil {
		return s.SetQuantityFn(ctx, customerID, productID, quantity)
	}
	return nil
}

// RemoveItem records removed product identifiers.
func (s *CartRepositoryStub) RemoveItem(ctx context.Context, customerID, productID int64) error {
	if s.RemoveItemFn != nil {
		return s.RemoveItemFn(ctx, customerID, productID)
	}
	s.Removed = append(s.Removed, productID)
	return nil
}

// ActiveView returns the configured view or not found.
func (s *CartRepositoryStub) ActiveView(ctx context.Context, customerID int64) (*model.CartView, error) {
	if s.ActiveViewFn != nil {
		return s.ActiveViewFn(ctx, customerID)
	}
	if s.View == nil {
		return nil, domainErrors.ErrNotFound
	}
	return s.View, nil
}

// OrderRepositoryStub keeps orders in-memory and runs Mutate against them the
// way the storage layer does, minus locking.
type OrderRepositoryStub struct {
	CheckoutFn func(context.Context, int64) (*model.Order, error)
	MutateFn   func(context.Context, int64, func(*model.Order) error) (*model.Order, error)

	mu        sync.Mutex
	Orders    map[int64]*model.Order
	Checkouts []int64
}

// NewOrderRepositoryStub constructs stub repository with initialized state.
func NewOrderRepositoryStub() *OrderRepositoryStub {
	return &OrderRepositoryStub{Orders: make(map[int64]*model.Order)}
}

// Put stores an order for later lookups and mutations.
func (s *OrderRepositoryStub) Put(order model.Order) *model.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := order
	s.Orders[order.ID] = &stored
	return &stored
}

// CheckoutCart records the invocation and returns a fresh order.
func (s *OrderRepositoryStub) CheckoutCart(ctx context.Context, customerID int64) (*model.Order, error) {
	if s.CheckoutFn != nil {
		return s.CheckoutFn(ctx, customerID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Checkouts = append(s.Checkouts, customerID)
	order := model.Order{
		ID:         int64(len(s.Orders) + 1),
		Code:       model.NewOrderCode(),
		CustomerID: customerID,
		State:      model.StateReceived,
	}
	stored := order
	s.Orders[order.ID] = &stored
	return &order, nil
}

// GetByID fetches a stored order copy or returns not found.
func (s *OrderRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if order, ok := s.Orders[id]; ok {
		copied := *order
		return &copied, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByCode fetches a stored order by its code.
func (s *OrderRepositoryStub) GetByCode(ctx context.Context, code string) (*model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, order := range s.Orders {
		if order.Code == code {
			copied := *order
			return &copied, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// ListByCustomer returns stored orders belonging to the customer.
func (s *OrderRepositoryStub) ListByCustomer(ctx context.Context, customerID int64) ([]model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Order
	for id := int64(1); id <= int64(len(s.Orders))+16; id++ {
		order, ok := s.Orders[id]
		if !ok {
			continue
		}
		if order.CustomerID == customerID {
			out = append(out, *order)
		}
	}
	return out, nil
}

// ListByStates returns stored orders matching any of the states.
func (s *OrderRepositoryStub) ListByStates(ctx context.Context, states ...model.OrderState) ([]model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Order
	for id := int64(1); id <= int64(len(s.Orders))+16; id++ {
		order, ok := s.Orders[id]
		if !ok {
			continue
		}
		if len(states) == 0 {
			out = append(out, *order)
			continue
		}
		for _, state := range states {
			if order.State == state {
				out = append(out, *order)
				break
			}
		}
	}
	return out, nil
}

// Mutate applies the callback against the stored order and keeps the result.
func (s *OrderRepositoryStub) Mutate(ctx context.Context, orderID int64, apply func(*model.Order) error) (*model.Order, error) {
	if s.MutateFn != nil {
		return s.MutateFn(ctx, orderID, apply)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.Orders[orderID]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	candidate := *order
	if err := apply(&candidate); err != nil {
		return nil, err
	}
	*order = candidate
	copied := candidate
	return &copied, nil
}
