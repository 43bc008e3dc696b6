package postgres

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmockv3 "github.com/pashagolub/pgxmock/v3"

	domainErrors "github.com/comedor/comedor/internal/domain/errors"
	"github.com/comedor/comedor/internal/domain/model"
	"github.com/comedor/comedor/internal/domain/repository"
)

func newMockStorage(t *testing.T) (*Storage, pgxmockv3.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmockv3.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	storage := &Storage{pool: mock, logger: logger}
	return storage, mock
}

func expectSchema(mock pgxmockv3.PgxPoolIface) {
	tableStatements := []string{
		"CREATE TABLE IF NOT EXISTS customers",
		"CREATE TABLE IF NOT EXISTS staff",
		"CREATE TABLE IF NOT EXISTS categories",
		"CREATE TABLE IF NOT EXISTS products",
		"CREATE TABLE IF NOT EXISTS carts",
		"CREATE TABLE IF NOT EXISTS cart_lines",
		"CREATE TABLE IF NOT EXISTS orders",
		"CREATE TABLE IF NOT EXISTS order_lines",
	}
	for _, stmt := range tableStatements {
		mock.ExpectExec(stmt).WillReturnResult(pgxmockv3.NewResult("CREATE", 0))
	}
	mock.ExpectExec("CREATE UNIQUE INDEX IF NOT EXISTS idx_carts_one_active").WillReturnResult(pgxmockv3.NewResult("CREATE", 0))
	mock.ExpectExec("CREATE INDEX IF NOT EXISTS idx_orders_customer").WillReturnResult(pgxmockv3.NewResult("CREATE", 0))
	mock.ExpectExec("CREATE INDEX IF NOT EXISTS idx_orders_state").WillReturnResult(pgxmockv3.NewResult("CREATE", 0))
}

func TestInitSchemaExecutesAllStatements(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()

	expectSchema(mock)

	if err := storage.initSchema(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCustomerCreateTranslatesDuplicate(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()

	mock.ExpectQuery("INSERT INTO customers").
		WithArgs("Maria", "maria@example.com", "", "", "hash").
		WillReturnError(&pgconn.PgError{Code: "23505"})

	_, err := storage.Customers().Create(context.Background(), model.Customer{
		Name: "Maria", Email: "maria@example.com", PasswordHash: "hash",
	})
	if !errors.Is(err, domainErrors.ErrAlreadyExists) {
		t.Fatalf("expected already exists error, got %v", err)
	}
}

func TestStaffListByRoles(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()

	now := time.Now()
	rows := pgxmockv3.NewRows([]string{"id", "name", "email", "password_hash", "role", "created_at"}).
		AddRow(int64(8), "Cashier", "cashier@example.com", "hash", model.Role("CASHIER"), now).
		AddRow(int64(9), "Admin", "admin@example.com", "hash", model.Role("ADMIN"), now)
	mock.ExpectQuery("SELECT id, name, email, password_hash, role, created_at").
		WithArgs([]string{"CASHIER", "ADMIN"}).
		WillReturnRows(rows)

	staff, err := storage.Staff().ListByRoles(context.Background(), model.RoleCashier, model.RoleAdmin)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(staff) != 2 || staff[0].Role != model.RoleCashier || staff[1].Role != model.RoleAdmin {
		t.Fatalf("unexpected staff %+v", staff)
	}
}

func TestSoftDeleteProductMissingRow(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()

	mock.ExpectExec("UPDATE products SET deleted=TRUE, active=FALSE").
		WithArgs(int64(4)).
		WillReturnResult(pgxmockv3.NewResult("UPDATE", 0))

	err := storage.Catalog().SoftDeleteProduct(context.Background(), 4)
	if !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestOrderGetByIDTranslatesMissingRow(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()

	mock.ExpectQuery("SELECT id, code, customer_id, courier_id, state, total::text").
		WithArgs(int64(7)).
		WillReturnError(pgx.ErrNoRows)

	_, err := storage.Orders().GetByID(context.Background(), 7)
	if !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestOrderMutatePersistsAppliedChanges(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()

	now := time.Now()
	mock.ExpectBegin()
	rows := pgxmockv3.NewRows([]string{"id", "code", "customer_id", "courier_id", "state", "total", "created_at", "delivered_at"}).
		AddRow(int64(1), "ORD-1", int64(3), nil, model.OrderState("READY_FOR_PICKUP"), "13.50", now, nil)
	mock.ExpectQuery("SELECT id, code, customer_id, courier_id, state, total::text").
		WithArgs(int64(1)).
		WillReturnRows(rows)
	mock.ExpectExec("UPDATE orders SET state=").
		WithArgs("EN_ROUTE", pgxmockv3.AnyArg(), (*time.Time)(nil), int64(1)).
		WillReturnResult(pgxmockv3.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	courierID := int64(5)
	order, err := storage.Orders().Mutate(context.Background(), 1, func(o *model.Order) error {
		o.State = model.StateEnRoute
		o.CourierID = &courierID
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.State != model.StateEnRoute || order.CourierID == nil || *order.CourierID != 5 {
		t.Fatalf("unexpected order %+v", order)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestOrderMutateRollsBackOnApplyError(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()

	now := time.Now()
	mock.ExpectBegin()
	rows := pgxmockv3.NewRows([]string{"id", "code", "customer_id", "courier_id", "state", "total", "created_at", "delivered_at"}).
		AddRow(int64(1), "ORD-1", int64(3), nil, model.OrderState("RECEIVED"), "13.50", now, nil)
	mock.ExpectQuery("SELECT id, code, customer_id, courier_id, state, total::text").
		WithArgs(int64(1)).
		WillReturnRows(rows)
	mock.ExpectRollback()

	boom := errors.New("rejected")
	_, err := storage.Orders().Mutate(context.Background(), 1, func(*model.Order) error {
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected apply error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCheckoutCartComputesTotalAndDeactivates(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()

	now := time.Now()
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM carts WHERE customer_id").
		WithArgs(int64(3)).
		WillReturnRows(pgxmockv3.NewRows([]string{"id"}).AddRow(int64(10)))

	lineRows := pgxmockv3.NewRows([]string{"product_id", "quantity", "name", "price"}).
		AddRow(int64(1), int32(2), "Tacos al Pastor", "5.00").
		AddRow(int64(2), int32(1), "Agua de Horchata", "3.50")
	mock.ExpectQuery("SELECT l.product_id, l.quantity, p.name, p.price::text").
		WithArgs(int64(10)).
		WillReturnRows(lineRows)

	mock.ExpectQuery("INSERT INTO orders").
		WithArgs(pgxmockv3.AnyArg(), int64(3), "RECEIVED", "13.50").
		WillReturnRows(pgxmockv3.NewRows([]string{"id", "created_at"}).AddRow(int64(21), now))

	mock.ExpectQuery("INSERT INTO order_lines").
		WithArgs(int64(21), int64(1), "Tacos al Pastor", "5.00", int32(2)).
		WillReturnRows(pgxmockv3.NewRows([]string{"id"}).AddRow(int64(31)))
	mock.ExpectQuery("INSERT INTO order_lines").
		WithArgs(int64(21), int64(2), "Agua de Horchata", "3.50", int32(1)).
		WillReturnRows(pgxmockv3.NewRows([]string{"id"}).AddRow(int64(32)))

	mock.ExpectExec("UPDATE carts SET active=FALSE").
		WithArgs(int64(10)).
		WillReturnResult(pgxmockv3.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	order, err := storage.Orders().CheckoutCart(context.Background(), 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.Total.StringFixed(2) != "13.50" {
		t.Fatalf("unexpected total %s", order.Total.StringFixed(2))
	}
	if order.State != model.StateReceived || len(order.Lines) != 2 {
		t.Fatalf("unexpected order %+v", order)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCheckoutCartWithoutActiveCart(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM carts WHERE customer_id").
		WithArgs(int64(3)).
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectRollback()

	_, err := storage.Orders().CheckoutCart(context.Background(), 3)
	if !errors.Is(err, domainErrors.ErrEmptyCart) {
		t.Fatalf("expected empty cart error, got %v", err)
	}
}

func TestCheckoutCartWithoutLines(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM carts WHERE customer_id").
		WithArgs(int64(3)).
		WillReturnRows(pgxmockv3.NewRows([]string{"id"}).AddRow(int64(10)))
	mock.ExpectQuery("SELECT l.product_id, l.quantity, p.name, p.price::text").
		WithArgs(int64(10)).
		WillReturnRows(pgxmockv3.NewRows([]string{"product_id", "quantity", "name", "price"}))
	mock.ExpectRollback()

	_, err := storage.Orders().CheckoutCart(context.Background(), 3)
	if !errors.Is(err, domainErrors.ErrEmptyCart) {
		t.Fatalf("expected empty cart error, got %v", err)
	}
}

func TestCartAddItemCreatesCartLazily(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM carts WHERE customer_id").
		WithArgs(int64(3)).
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectQuery("INSERT INTO carts").
		WithArgs(int64(3)).
		WillReturnRows(pgxmockv3.NewRows([]string{"id"}).AddRow(int64(10)))
	mock.ExpectQuery("SELECT 1 FROM products WHERE id").
		WithArgs(int64(2)).
		WillReturnRows(pgxmockv3.NewRows([]string{"?column?"}).AddRow(1))
	mock.ExpectExec("INSERT INTO cart_lines").
		WithArgs(int64(10), int64(2)).
		WillReturnResult(pgxmockv3.NewResult("INSERT", 1))
	mock.ExpectCommit()

	if err := storage.Carts().AddItem(context.Background(), 3, 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCartAddItemRejectsUnsellableProduct(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM carts WHERE customer_id").
		WithArgs(int64(3)).
		WillReturnRows(pgxmockv3.NewRows([]string{"id"}).AddRow(int64(10)))
	mock.ExpectQuery("SELECT 1 FROM products WHERE id").
		WithArgs(int64(2)).
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectRollback()

	err := storage.Carts().AddItem(context.Background(), 3, 2)
	if !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestStorageImplementsFactory(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()

	var factory repository.Factory = storage
	if _, ok := factory.Orders().(*orderRepository); !ok {
		t.Fatal("expected order repository adapter")
	}
	if _, ok := factory.Carts().(*cartRepository); !ok {
		t.Fatal("expected cart repository adapter")
	}
	if _, ok := factory.Customers().(*customerRepository); !ok {
		t.Fatal("expected customer repository adapter")
	}
	if _, ok := factory.Staff().(*staffRepository); !ok {
		t.Fatal("expected staff repository adapter")
	}
	if _, ok := factory.Catalog().(*catalogRepository); !ok {
		t.Fatal("expected catalog repository adapter")
	}
}
