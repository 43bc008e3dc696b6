package test

import (
	"context"

	"github.com/comedor/comedor/internal/domain/model"
	pkgAuth "github.com/comedor/comedor/internal/pkg/auth"
	"github.com/comedor/comedor/internal/usecase"
)

// AuthFacadeStub simulates authentication facade interactions.
type AuthFacadeStub struct {
	RegisterFn      func(context.Context, usecase.CustomerRegistration) (string, error)
	LoginFn         func(context.Context, string, string) (string, error)
	StaffLoginFn    func(context.Context, string, string) (string, model.Role, error)
	ParseFn         func(string) (pkgAuth.Principal, error)
	ProfileFn       func(context.Context, int64) (*model.Customer, error)
	UpdateProfileFn func(context.Context, int64, usecase.ProfileUpdate) error

	Principal pkgAuth.Principal
}

// RegisterCustomer returns token for successful registration scenarios.
func (s AuthFacadeStub) RegisterCustomer(ctx context.Context, reg usecase.CustomerRegistration) (string, error) {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, reg)
	}
	return "token", nil
}

// LoginCustomer returns token for successful authentication scenarios.
func (s AuthFacadeStub) LoginCustomer(ctx context.Context, email, password string) (string, error) {
	if s.LoginFn != nil {
		return s.LoginFn(ctx, email, password)
	}
	return "token", nil
}

// LoginStaff returns token and role for staff authentication scenarios.
func (s AuthFacadeStub) LoginStaff(ctx context.Context, email, password string) (string, model.Role, error) {
	if s.StaffLoginFn != nil {
		return s.StaffLoginFn(ctx, email, password)
	}
	return "token", model.RoleKitchen, nil
}

// ParseToken returns the configured principal.
func (s AuthFacadeStub) ParseToken(token string) (pkgAuth.Principal, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	return s.Principal, nil
}

// Profile returns a minimal customer record.
func (s AuthFacadeStub) Profile(ctx context.Context, customerID int64) (*model.Customer, error) {
	if s.ProfileFn != nil {
		return s.ProfileFn(ctx, customerID)
	}
	return &model.Customer{ID: customerID, Name: "customer", Email: "customer@example.com"}, nil
}

// UpdateProfile executes configured update handler.
func (s AuthFacadeStub) UpdateProfile(ctx context.Context, customerID int64, update usecase.ProfileUpdate) error {
	if s.UpdateProfileFn != nil {
		return s.UpdateProfileFn(ctx, customerID, update)
	}
	return nil
}

// CatalogFacadeStub simulates catalog operations.
type CatalogFacadeStub struct {
	MenuFn           func(context.Context) ([]model.MenuSection, error)
	CreateCategoryFn func(context.Context, model.Category) (*model.Category, error)
	CreateProductFn  func(context.Context, model.Product) (*model.Product, error)
	UpdateProductFn  func(context.Context, model.Product) error
	GetProductFn     func(context.Context, int64) (*model.Product, error)
	DeleteProductFn  func(context.Context, int64) error
}

// Menu returns preconfigured sections.
func (s CatalogFacadeStub) Menu(ctx context.Context) ([]model.MenuSection, error) {
	if s.MenuFn != nil {
		return s.MenuFn(ctx)
	}
	return nil, nil
}

// CreateCategory returns the category with an identifier.
func (s CatalogFacadeStub) CreateCategory(ctx context.Context, c model.Category) (*model.Category, error) {
	if s.CreateCategoryFn != nil {
		return s.CreateCategoryFn(ctx, c)
	}
	c.ID = 1
	return &c, nil
}

// CreateProduct returns the product with an identifier.
func (s CatalogFacadeStub) CreateProduct(ctx context.Context, p model.Product) (*model.Product, error) {
	if s.CreateProductFn != nil {
		return s.CreateProductFn(ctx, p)
	}
	p.ID = 1
	return &p, nil
}

// UpdateProduct executes configured handler.
func (s CatalogFacadeStub) UpdateProduct(ctx context.Context, p model.Product) error {
	if s.UpdateProductFn != nil {
		return s.UpdateProductFn(ctx, p)
	}
	return nil
}

// GetProduct returns a minimal product record.
func (s CatalogFacadeStub) GetProduct(ctx context.Context, id int64) (*model.Product, error) {
	if s.GetProductFn != nil {
		return s.GetProductFn(ctx, id)
	}
	return &model.Product{ID: id, Name: "product", Active: true}, nil
}

// DeleteProduct executes configured handler.
func (s CatalogFacadeStub) DeleteProduct(ctx context.Context, id int64) error {
	if s.DeleteProductFn != nil {
		return s.DeleteProductFn(ctx, id)
	}
	return nil
}

// CartFacadeStub simulates cart operations.
type CartFacadeStub struct {
	AddFn      func(context.Context, int64, int64) error
	SetFn      func(context.Context, int64, int64, int32) error
	RemoveFn   func(context.Context, int64, int64) error
	CartFn     func(context.Context, int64) (*model.CartView, error)
	CheckoutFn func(context.Context, int64) (*model.Order, error)
}

// AddToCart executes configured handler.
func (s CartFacadeStub) AddToCart(ctx context.Context, customerID, productID int64) error {
	if s.AddFn != nil {
		return s.AddFn(ctx, customerID, productID)
	}
	return nil
}

// SetCartQuantity executes configured handler.
func (s CartFacadeStub) SetCartQuantity(ctx context.Context, customerID, productID int64, quantity int32) error {
	if s.SetFn != nil {
		return s.SetFn(ctx, customerID, productID, quantity)
	}
	return nil
}

// RemoveFromCart executes configured handler.
func (s CartFacadeStub) RemoveFromCart(ctx context.Context, customerID, productID int64) error {
	if s.RemoveFn != nil {
		return s.RemoveFn(ctx, customerID, productID)
	}
	return nil
}

// Cart returns preconfigured view.
func (s CartFacadeStub) Cart(ctx context.Context, customerID int64) (*model.CartView, error) {
	if s.CartFn != nil {
		return s.CartFn(ctx, customerID)
	}
	return &model.CartView{Cart: model.Cart{CustomerID: customerID}}, nil
}

// Checkout returns a fresh order.
func (s CartFacadeStub) Checkout(ctx context.Context, customerID int64) (*model.Order, error) {
	if s.CheckoutFn != nil {
		return s.CheckoutFn(ctx, customerID)
	}
	return &model.Order{ID: 1, Code: "ORD-TEST0001", CustomerID: customerID, State: model.StateReceived}, nil
}

// OrderFacadeStub provides controllable behaviour for order endpoints.
type OrderFacadeStub struct {
	CustomerOrdersFn func(context.Context, int64) ([]model.Order, error)
	CustomerOrderFn  func(context.Context, int64, int64) (*model.Order, error)
	StaffOrdersFn    func(context.Context, model.Role, []model.OrderState) ([]model.Order, error)
	TransitionFn     func(context.Context, model.Staff, int64, model.OrderState) (*model.Order, error)
	AssignCourierFn  func(context.Context, model.Staff, int64, *int64) (*model.Order, error)
}

// CustomerOrders returns preconfigured orders.
func (s OrderFacadeStub) CustomerOrders(ctx context.Context, customerID int64) ([]model.Order, error) {
	if s.CustomerOrdersFn != nil {
		return s.CustomerOrdersFn(ctx, customerID)
	}
	return []model.Order{{ID: 1, Code: "ORD-TEST0001", CustomerID: customerID}}, nil
}

// CustomerOrder returns one preconfigured order.
func (s OrderFacadeStub) CustomerOrder(ctx context.Context, customerID, orderID int64) (*model.Order, error) {
	if s.CustomerOrderFn != nil {
		return s.CustomerOrderFn(ctx, customerID, orderID)
	}
	return &model.Order{ID: orderID, Code: "ORD-TEST0001", CustomerID: customerID}, nil
}

// StaffOrders returns preconfigured orders for staff listings.
func (s OrderFacadeStub) StaffOrders(ctx context.Context, role model.Role, states []model.OrderState) ([]model.Order, error) {
	if s.StaffOrdersFn != nil {
		return s.StaffOrdersFn(ctx, role, states)
	}
	return []model.Order{{ID: 1, Code: "ORD-TEST0001"}}, nil
}

// TransitionOrder executes configured handler.
func (s OrderFacadeStub) TransitionOrder(ctx context.Context, actor model.Staff, orderID int64, target model.OrderState) (*model.Order, error) {
	if s.TransitionFn != nil {
		return s.TransitionFn(ctx, actor, orderID, target)
	}
	return &model.Order{ID: orderID, Code: "ORD-TEST0001", State: target}, nil
}

// AssignCourier executes configured handler.
func (s OrderFacadeStub) AssignCourier(ctx context.Context, actor model.Staff, orderID int64, courierID *int64) (*model.Order, error) {
	if s.AssignCourierFn != nil {
		return s.AssignCourierFn(ctx, actor, orderID, courierID)
	}
	return &model.Order{ID: orderID, Code: "ORD-TEST0001", CourierID: courierID}, nil
}

// RestaurantFacadeStub aggregates facade dependencies for HTTP layer tests.
type RestaurantFacadeStub struct {
	AuthFacadeStub
	CatalogFacadeStub
	CartFacadeStub
	OrderFacadeStub
}
