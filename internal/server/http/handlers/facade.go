package handlers

import (
	"context"

	"github.com/comedor/comedor/internal/domain/model"
	pkgAuth "github.com/comedor/comedor/internal/pkg/auth"
	"github.com/comedor/comedor/internal/usecase"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	RegisterCustomer(ctx context.Context, reg usecase.CustomerRegistration) (string, error)
	LoginCustomer(ctx context.Context, email, password string) (string, error)
	LoginStaff(ctx context.Context, email, password string) (string, model.Role, error)
	ParseToken(token string) (pkgAuth.Principal, error)
	Profile(ctx context.Context, customerID int64) (*model.Customer, error)
	UpdateProfile(ctx context.Context, customerID int64, update usecase.ProfileUpdate) error
}

// CatalogFacade exposes the menu and its administration.
type CatalogFacade interface {
	Menu(ctx context.Context) ([]model.MenuSection, error)
	CreateCategory(ctx context.Context, c model.Category) (*model.Category, error)
	CreateProduct(ctx context.Context, p model.Product) (*model.Product, error)
	UpdateProduct(ctx context.Context, p model.Product) error
	GetProduct(ctx context.Context, id int64) (*model.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
}

// CartFacade covers cart mutation and checkout.
type CartFacade interface {
	AddToCart(ctx context.Context, customerID, productID int64) error
	SetCartQuantity(ctx context.Context, customerID, productID int64, quantity int32) error
	RemoveFromCart(ctx context.Context, customerID, productID int64) error
	Cart(ctx context.Context, customerID int64) (*model.CartView, error)
	Checkout(ctx context.Context, customerID int64) (*model.Order, error)
}

// OrderFacade encapsulates order reads and lifecycle operations.
type OrderFacade interface {
	CustomerOrders(ctx context.Context, customerID int64) ([]model.Order, error)
	CustomerOrder(ctx context.Context, customerID, orderID int64) (*model.Order, error)
	StaffOrders(ctx context.Context, role model.Role, states []model.OrderState) ([]model.Order, error)
	TransitionOrder(ctx context.Context, actor model.Staff, orderID int64, target model.OrderState) (*model.Order, error)
	AssignCourier(ctx context.Context, actor model.Staff, orderID int64, courierID *int64) (*model.Order, error)
}

// RestaurantFacade aggregates the full set of operations used across handlers.
type RestaurantFacade interface {
	AuthFacade
	CatalogFacade
	CartFacade
	OrderFacade
}
