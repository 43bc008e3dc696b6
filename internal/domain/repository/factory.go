package repository

// Factory describes access to different domain repositories.
type Factory interface {
	Customers() CustomerRepository
	Staff() StaffRepository
	Catalog() CatalogRepository
	Carts() CartRepository
	Orders() OrderRepository
}
