package app

import (
	"context"

	"github.com/comedor/comedor/internal/domain/model"
	pkgAuth "github.com/comedor/comedor/internal/pkg/auth"
	"github.com/comedor/comedor/internal/usecase"
)

// RestaurantFacade aggregates the application use cases behind one surface
// consumed by the HTTP layer.
type RestaurantFacade struct {
	auth    *usecase.AuthUseCase
	catalog *usecase.CatalogUseCase
	carts   *usecase.CartUseCase
	orders  *usecase.OrderUseCase
}

// NewRestaurantFacade constructs the facade.
func NewRestaurantFacade(auth *usecase.AuthUseCase, catalog *usecase.CatalogUseCase, carts *usecase.CartUseCase, orders *usecase.OrderUseCase) *RestaurantFacade {
	return &RestaurantFacade{auth: auth, catalog: catalog, carts: carts, orders: orders}
}

func (f *RestaurantFacade) RegisterCustomer(ctx context.Context, reg usecase.CustomerRegistration) (string, error) {
	_, token, err := f.auth.RegisterCustomer(ctx, reg)
	return token, err
}

func (f *RestaurantFacade) LoginCustomer(ctx context.Context, email, password string) (string, error) {
	_, token, err := f.auth.AuthenticateCustomer(ctx, email, password)
	return token, err
}

func (f *RestaurantFacade) LoginStaff(ctx context.Context, email, password string) (string, model.Role, error) {
	staff, token, err := f.auth.AuthenticateStaff(ctx, email, password)
	if err != nil {
		return "", "", err
	}
	return token, staff.Role, nil
}

func (f *RestaurantFacade) ParseToken(token string) (pkgAuth.Principal, error) {
	return f.auth.ParseToken(token)
}

func (f *RestaurantFacade) Profile(ctx context.Context, customerID int64) (*model.Customer, error) {
	return f.auth.GetCustomer(ctx, customerID)
}

func (f *RestaurantFacade) UpdateProfile(ctx context.Context, customerID int64, update usecase.ProfileUpdate) error {
	return f.auth.UpdateProfile(ctx, customerID, update)
}

func (f *RestaurantFacade) Menu(ctx context.Context) ([]model.MenuSection, error) {
	return f.catalog.Menu(ctx)
}

func (f *RestaurantFacade) CreateCategory(ctx context.Context, c model.Category) (*model.Category, error) {
	return f.catalog.CreateCategory(ctx, c)
}

func (f *RestaurantFacade) CreateProduct(ctx context.Context, p model.Product) (*model.Product, error) {
	return f.catalog.CreateProduct(ctx, p)
}

func (f *RestaurantFacade) UpdateProduct(ctx context.Context, p model.Product) error {
	return f.catalog.UpdateProduct(ctx, p)
}

func (f *RestaurantFacade) GetProduct(ctx context.Context, id int64) (*model.Product, error) {
	return f.catalog.GetProduct(ctx, id)
}

func (f *RestaurantFacade) DeleteProduct(ctx context.Context, id int64) error {
	return f.catalog.DeleteProduct(ctx, id)
}

func (f *RestaurantFacade) AddToCart(ctx context.Context, customerID, productID int64) error {
	return f.carts.AddItem(ctx, customerID, productID)
}

func (f *RestaurantFacade) SetCartQuantity(ctx context.Context, customerID, productID int64, quantity int32) error {
	return f.carts.SetQuantity(ctx, customerID, productID, quantity)
}

func (f *RestaurantFacade) RemoveFromCart(ctx context.Context, customerID, productID int64) error {
	return f.carts.RemoveItem(ctx, customerID, productID)
}

func (f *RestaurantFacade) Cart(ctx context.Context, customerID int64) (*model.CartView, error) {
	return f.carts.View(ctx, customerID)
}

func (f *RestaurantFacade) Checkout(ctx context.Context, customerID int64) (*model.Order, error) {
	return f.carts.Checkout(ctx, customerID)
}

func (f *RestaurantFacade) CustomerOrders(ctx context.Context, customerID int64) ([]model.Order, error) {
	return f.orders.ListByCustomer(ctx, customerID)
}

func (f *RestaurantFacade) CustomerOrder(ctx context.Context, customerID, orderID int64) (*model.Order, error) {
	return f.orders.GetForCustomer(ctx, customerID, orderID)
}

func (f *RestaurantFacade) StaffOrders(ctx context.Context, role model.Role, states []model.OrderState) ([]model.Order, error) {
	return f.orders.ListForStaff(ctx, role, states)
}

func (f *RestaurantFacade) TransitionOrder(ctx context.Context, actor model.Staff, orderID int64, target model.OrderState) (*model.Order, error) {
	return f.orders.Transition(ctx, actor, orderID, target)
}

func (f *RestaurantFacade) AssignCourier(ctx context.Context, actor model.Staff, orderID int64, courierID *int64) (*model.Order, error) {
	return f.orders.AssignCourier(ctx, actor, orderID, courierID)
}
