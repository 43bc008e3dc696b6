package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	domainErrors "github.com/comedor/comedor/internal/domain/errors"
	"github.com/comedor/comedor/internal/domain/model"
	"github.com/comedor/comedor/internal/domain/repository"
)

// pool is the subset of pgxpool.Pool the storage uses; pgxmock satisfies it.
type pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, opts pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   pool
	logger *slog.Logger
}

type customerRepository struct {
	storage *Storage
}

type staffRepository struct {
	storage *Storage
}

type catalogRepository struct {
	storage *Storage
}

type cartRepository struct {
	storage *Storage
}

type orderRepository struct {
	storage *Storage
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	p, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: p, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		p.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Factory methods for domain repositories.
func (s *Storage) Customers() repository.CustomerRepository {
	return &customerRepository{storage: s}
}

func (s *Storage) Staff() repository.StaffRepository {
	return &staffRepository{storage: s}
}

func (s *Storage) Catalog() repository.CatalogRepository {
	return &catalogRepository{storage: s}
}

func (s *Storage) Carts() repository.CartRepository {
	return &cartRepository{storage: s}
}

func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS customers (
            id BIGSERIAL PRIMARY KEY,
            name TEXT NOT NULL,
            email TEXT UNIQUE NOT NULL,
            phone TEXT NOT NULL DEFAULT '',
            address TEXT NOT NULL DEFAULT '',
            password_hash TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS staff (
            id BIGSERIAL PRIMARY KEY,
            name TEXT NOT NULL,
            email TEXT UNIQUE NOT NULL,
            password_hash TEXT NOT NULL,
            role TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS categories (
            id BIGSERIAL PRIMARY KEY,
            name TEXT UNIQUE NOT NULL,
            description TEXT NOT NULL DEFAULT '',
            active BOOLEAN NOT NULL DEFAULT TRUE,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS products (
            id BIGSERIAL PRIMARY KEY,
            category_id BIGINT REFERENCES categories(id),
            name TEXT NOT NULL,
            description TEXT NOT NULL DEFAULT '',
            price NUMERIC(10,2) NOT NULL,
            active BOOLEAN NOT NULL DEFAULT TRUE,
            deleted BOOLEAN NOT NULL DEFAULT FALSE,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS carts (
            id BIGSERIAL PRIMARY KEY,
            customer_id BIGINT NOT NULL REFERENCES customers(id),
            active BOOLEAN NOT NULL DEFAULT TRUE,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS cart_lines (
            id BIGSERIAL PRIMARY KEY,
            cart_id BIGINT NOT NULL REFERENCES carts(id) ON DELETE CASCADE,
            product_id BIGINT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
            quantity INT NOT NULL CHECK (quantity > 0),
            UNIQUE (cart_id, product_id)
        )`,
		`CREATE TABLE IF NOT EXISTS orders (
            id BIGSERIAL PRIMARY KEY,
            code TEXT UNIQUE NOT NULL,
            customer_id BIGINT NOT NULL REFERENCES customers(id),
            courier_id BIGINT REFERENCES staff(id),
            state TEXT NOT NULL,
            total NUMERIC(10,2) NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            delivered_at TIMESTAMPTZ
        )`,
		`CREATE TABLE IF NOT EXISTS order_lines (
            id BIGSERIAL PRIMARY KEY,
            order_id BIGINT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
            product_id BIGINT REFERENCES products(id) ON DELETE SET NULL,
            product_name TEXT NOT NULL,
            unit_price NUMERIC(10,2) NOT NULL,
            quantity INT NOT NULL CHECK (quantity > 0)
        )`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_carts_one_active ON carts(customer_id) WHERE active`,
		`CREATE INDEX IF NOT EXISTS idx_orders_customer ON orders(customer_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_state ON orders(state)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

func translateError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return domainErrors.ErrAlreadyExists
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return domainErrors.ErrNotFound
	}
	return err
}

func parseMoney(raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse money %q: %w", raw, err)
	}
	return d, nil
}

// --- CustomerRepository implementation ---

func (r *customerRepository) Create(ctx context.Context, c model.Customer) (*model.Customer, error) {
	const query = `INSERT INTO customers (name, email, phone, address, password_hash)
                   VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at`
	err := r.storage.pool.QueryRow(ctx, query, c.Name, c.Email, c.Phone, c.Address, c.PasswordHash).
		Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return nil, translateError(err)
	}
	return &c, nil
}

func (r *customerRepository) GetByEmail(ctx context.Context, email string) (*model.Customer, error) {
	const query = `SELECT id, name, email, phone, address, password_hash, created_at
                   FROM customers WHERE email=$1`
	var c model.Customer
	err := r.storage.pool.QueryRow(ctx, query, email).
		Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Address, &c.PasswordHash, &c.CreatedAt)
	if err != nil {
		return nil, translateError(err)
	}
	return &c, nil
}

func (r *customerRepository) GetByID(ctx context.Context, id int64) (*model.Customer, error) {
	const query = `SELECT id, name, email, phone, address, password_hash, created_at
                   FROM customers WHERE id=$1`
	var c model.Customer
	err := r.storage.pool.QueryRow(ctx, query, id).
		Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Address, &c.PasswordHash, &c.CreatedAt)
	if err != nil {
		return nil, translateError(err)
	}
	return &c, nil
}

func (r *customerRepository) Update(ctx context.Context, c model.Customer) error {
	const query = `UPDATE customers SET name=$1, phone=$2, address=$3, password_hash=$4 WHERE id=$5`
	tag, err := r.storage.pool.Exec(ctx, query, c.Name, c.Phone, c.Address, c.PasswordHash, c.ID)
	if err != nil {
		return translateError(err)
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

// --- StaffRepository implementation ---

func (r *staffRepository) Create(ctx context.Context, s model.Staff) (*model.Staff, error) {
	const query = `INSERT INTO staff (name, email, password_hash, role)
                   VALUES ($1, $2, $3, $4) RETURNING id, created_at`
	err := r.storage.pool.QueryRow(ctx, query, s.Name, s.Email, s.PasswordHash, string(s.Role)).
		Scan(&s.ID, &s.CreatedAt)
	if err != nil {
		return nil, translateError(err)
	}
	return &s, nil
}

func (r *staffRepository) GetByEmail(ctx context.Context, email string) (*model.Staff, error) {
	const query = `SELECT id, name, email, password_hash, role, created_at FROM staff WHERE email=$1`
	var s model.Staff
	err := r.storage.pool.QueryRow(ctx, query, email).
		Scan(&s.ID, &s.Name, &s.Email, &s.PasswordHash, &s.Role, &s.CreatedAt)
	if err != nil {
		return nil, translateError(err)
	}
	return &s, nil
}

func (r *staffRepository) GetByID(ctx context.Context, id int64) (*model.Staff, error) {
	const query = `SELECT id, name, email, password_hash, role, created_at FROM staff WHERE id=$1`
	var s model.Staff
	err := r.storage.pool.QueryRow(ctx, query, id).
		Scan(&s.ID, &s.Name, &s.Email, &s.PasswordHash, &s.Role, &s.CreatedAt)
	if err != nil {
		return nil, translateError(err)
	}
	return &s, nil
}

func (r *staffRepository) ListByRoles(ctx context.Context, roles ...model.Role) ([]model.Staff, error) {
	const query = `SELECT id, name, email, password_hash, role, created_at
                   FROM staff WHERE role = ANY($1) ORDER BY id`
	names := make([]string, 0, len(roles))
	for _, role := range roles {
		names = append(names, string(role))
	}

	rows, err := r.storage.pool.Query(ctx, query, names)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Staff
	for rows.Next() {
		var s model.Staff
		if err := rows.Scan(&s.ID, &s.Name, &s.Email, &s.PasswordHash, &s.Role, &s.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// --- CatalogRepository implementation ---

func (r *catalogRepository) Menu(ctx context.Context) ([]model.MenuSection, error) {
	const categoriesQuery = `SELECT id, name, description, active, created_at
                             FROM categories WHERE active ORDER BY name`
	rows, err := r.storage.pool.Query(ctx, categoriesQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sections []model.MenuSection
	index := make(map[int64]int)
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.Active, &c.CreatedAt); err != nil {
			return nil, err
		}
		index[c.ID] = len(sections)
		sections = append(sections, model.MenuSection{Category: c})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	const productsQuery = `SELECT id, category_id, name, description, price::text, active, deleted, created_at
                           FROM products
                           WHERE active AND NOT deleted AND category_id IS NOT NULL
                           ORDER BY name`
	prows, err := r.storage.pool.Query(ctx, productsQuery)
	if err != nil {
		return nil, err
	}
	defer prows.Close()

	for prows.Next() {
		p, err := scanProduct(prows)
		if err != nil {
			return nil, err
		}
		if i, ok := index[*p.CategoryID]; ok {
			sections[i].Products = append(sections[i].Products, *p)
		}
	}
	if err := prows.Err(); err != nil {
		return nil, err
	}

	// Categories without sellable products are not part of the menu.
	filtered := sections[:0]
	for _, section := range sections {
		if len(section.Products) > 0 {
			filtered = append(filtered, section)
		}
	}
	return filtered, nil
}

func scanProduct(row pgx.Row) (*model.Product, error) {
	var (
		p     model.Product
		price string
	)
	if err := row.Scan(&p.ID, &p.CategoryID, &p.Name, &p.Description, &price, &p.Active, &p.Deleted, &p.CreatedAt); err != nil {
		return nil, err
	}
	var err error
	if p.Price, err = parseMoney(price); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *catalogRepository) CreateCategory(ctx context.Context, c model.Category) (*model.Category, error) {
	const query = `INSERT INTO categories (name, description, active)
                   VALUES ($1, $2, $3) RETURNING id, created_at`
	err := r.storage.pool.QueryRow(ctx, query, c.Name, c.Description, c.Active).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return nil, translateError(err)
	}
	return &c, nil
}

func (r *catalogRepository) CreateProduct(ctx context.Context, p model.Product) (*model.Product, error) {
	const query = `INSERT INTO products (category_id, name, description, price, active)
                   VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at`
	err := r.storage.pool.QueryRow(ctx, query, p.CategoryID, p.Name, p.Description, p.Price.StringFixed(2), p.Active).
		Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return nil, translateError(err)
	}
	return &p, nil
}

func (r *catalogRepository) UpdateProduct(ctx context.Context, p model.Product) error {
	const query = `UPDATE products SET category_id=$1, name=$2, description=$3, price=$4, active=$5
                   WHERE id=$6 AND NOT deleted`
	tag, err := r.storage.pool.Exec(ctx, query, p.CategoryID, p.Name, p.Description, p.Price.StringFixed(2), p.Active, p.ID)
	if err != nil {
		return translateError(err)
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *catalogRepository) GetProduct(ctx context.Context, id int64) (*model.Product, error) {
	const query = `SELECT id, category_id, name, description, price::text, active, deleted, created_at
                   FROM products WHERE id=$1`
	p, err := scanProduct(r.storage.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, translateError(err)
	}
	return p, nil
}

func (r *catalogRepository) SoftDeleteProduct(ctx context.Context, id int64) error {
	const query = `UPDATE products SET deleted=TRUE, active=FALSE WHERE id=$1 AND NOT deleted`
	tag, err := r.storage.pool.Exec(ctx, query, id)
	if err != nil {
		return translateError(err)
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

// --- CartRepository implementation ---

// lockActiveCart returns the id of the customer's active cart with the row
// locked, serialising concurrent mutations of the same cart.
func lockActiveCart(ctx context.Context, tx pgx.Tx, customerID int64) (int64, error) {
	const query = `SELECT id FROM carts WHERE customer_id=$1 AND active FOR UPDATE`
	var id int64
	if err := tx.QueryRow(ctx, query, customerID).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *cartRepository) AddItem(ctx context.Context, customerID, productID int64) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		cartID, err := lockActiveCart(ctx, tx, customerID)
		if errors.Is(err, pgx.ErrNoRows) {
			// Lazy cart creation; the partial unique index folds racing
			// creations into the surviving row.
			const create = `INSERT INTO carts (customer_id) VALUES ($1)
                            ON CONFLICT (customer_id) WHERE active DO UPDATE SET active=TRUE
                            RETURNING id`
			if err := tx.QueryRow(ctx, create, customerID).Scan(&cartID); err != nil {
				return translateError(err)
			}
		} else if err != nil {
			return err
		}

		const sellable = `SELECT 1 FROM products WHERE id=$1 AND active AND NOT deleted`
		var one int
		if err := tx.QueryRow(ctx, sellable, productID).Scan(&one); err != nil {
			return translateError(err)
		}

		const upsert = `INSERT INTO cart_lines (cart_id, product_id, quantity) VALUES ($1, $2, 1)
                        ON CONFLICT (cart_id, product_id)
                        DO UPDATE SET quantity = cart_lines.quantity + 1`
		if _, err := tx.Exec(ctx, upsert, cartID, productID); err != nil {
			return translateError(err)
		}
		return nil
	})
}

func (r *cartRepository) SetQuantity(ctx context.Context, customerID, productID int64, quantity int32) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		cartID, err := lockActiveCart(ctx, tx, customerID)
		if err != nil {
			return translateError(err)
		}

		const query = `UPDATE cart_lines SET quantity=$1 WHERE cart_id=$2 AND product_id=$3`
		tag, err := tx.Exec(ctx, query, quantity, cartID, productID)
		if err != nil {
			return translateError(err)
		}
		if tag.RowsAffected() == 0 {
			return domainErrors.ErrNotFound
		}
		return nil
	})
}

func (r *cartRepository) RemoveItem(ctx context.Context, customerID, productID int64) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		cartID, err := lockActiveCart(ctx, tx, customerID)
		if err != nil {
			return translateError(err)
		}

		const query = `DELETE FROM cart_lines WHERE cart_id=$1 AND product_id=$2`
		tag, err := tx.Exec(ctx, query, cartID, productID)
		if err != nil {
			return translateError(err)
		}
		if tag.RowsAffected() == 0 {
			return domainErrors.ErrNotFound
		}
		return nil
	})
}

func (r *cartRepository) ActiveView(ctx context.Context, customerID int64) (*model.CartView, error) {
	const cartQuery = `SELECT id, customer_id, active, created_at
                       FROM carts WHERE customer_id=$1 AND active`
	var view model.CartView
	err := r.storage.pool.QueryRow(ctx, cartQuery, customerID).
		Scan(&view.Cart.ID, &view.Cart.CustomerID, &view.Cart.Active, &view.Cart.CreatedAt)
	if err != nil {
		return nil, translateError(err)
	}

	const linesQuery = `SELECT l.id, l.cart_id, l.product_id, l.quantity,
                               p.id, p.category_id, p.name, p.description, p.price::text, p.active, p.deleted, p.created_at
                        FROM cart_lines l
                        JOIN products p ON p.id = l.product_id
                        WHERE l.cart_id=$1
                        ORDER BY l.id`
	rows, err := r.storage.pool.Query(ctx, linesQuery, view.Cart.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	view.Total = decimal.Zero
	for rows.Next() {
		var (
			item  model.CartItem
			price string
		)
		err := rows.Scan(
			&item.Line.ID, &item.Line.CartID, &item.Line.ProductID, &item.Line.Quantity,
			&item.Product.ID, &item.Product.CategoryID, &item.Product.Name, &item.Product.Description,
			&price, &item.Product.Active, &item.Product.Deleted, &item.Product.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		if item.Product.Price, err = parseMoney(price); err != nil {
			return nil, err
		}
		view.Items = append(view.Items, item)
		view.Total = view.Total.Add(item.Subtotal())
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &view, nil
}

// --- OrderRepository implementation ---

func (r *orderRepository) CheckoutCart(ctx context.Context, customerID int64) (*model.Order, error) {
	var order model.Order
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		cartID, err := lockActiveCart(ctx, tx, customerID)
		if errors.Is(err, pgx.ErrNoRows) {
			return domainErrors.ErrEmptyCart
		} else if err != nil {
			return err
		}

		const linesQuery = `SELECT l.product_id, l.quantity, p.name, p.price::text
                            FROM cart_lines l
                            JOIN products p ON p.id = l.product_id
                            WHERE l.cart_id=$1
                            ORDER BY l.id`
		rows, err := tx.Query(ctx, linesQuery, cartID)
		if err != nil {
			return err
		}

		type pendingLine struct {
			productID int64
			quantity  int32
			name      string
			price     decimal.Decimal
		}
		var pending []pendingLine
		for rows.Next() {
			var (
				line  pendingLine
				price string
			)
			if err := rows.Scan(&line.productID, &line.quantity, &line.name, &price); err != nil {
				rows.Close()
				return err
			}
			if line.price, err = parseMoney(price); err != nil {
				rows.Close()
				return err
			}
			pending = append(pending, line)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return err
		}
		if len(pending) == 0 {
			return domainErrors.ErrEmptyCart
		}

		total := decimal.Zero
		for _, line := range pending {
			total = total.Add(line.price.Mul(decimal.NewFromInt32(line.quantity)))
		}

		order = model.Order{
			Code:       model.NewOrderCode(),
			CustomerID: customerID,
			State:      model.StateReceived,
			Total:      total,
		}
		const insertOrder = `INSERT INTO orders (code, customer_id, state, total)
                             VALUES ($1, $2, $3, $4) RETURNING id, created_at`
		err = tx.QueryRow(ctx, insertOrder, order.Code, customerID, string(order.State), total.StringFixed(2)).
			Scan(&order.ID, &order.CreatedAt)
		if err != nil {
			return translateError(err)
		}

		const insertLine = `INSERT INTO order_lines (order_id, product_id, product_name, unit_price, quantity)
                            VALUES ($1, $2, $3, $4, $5) RETURNING id`
		for _, line := range pending {
			ol := model.OrderLine{
				OrderID:     order.ID,
				ProductID:   &line.productID,
				ProductName: line.name,
				UnitPrice:   line.price,
				Quantity:    line.quantity,
			}
			err := tx.QueryRow(ctx, insertLine, order.ID, line.productID, line.name, line.price.StringFixed(2), line.quantity).
				Scan(&ol.ID)
			if err != nil {
				return err
			}
			order.Lines = append(order.Lines, ol)
		}

		const deactivate = `UPDATE carts SET active=FALSE WHERE id=$1`
		if _, err := tx.Exec(ctx, deactivate, cartID); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

const orderColumns = `id, code, customer_id, courier_id, state, total::text, created_at, delivered_at`

func scanOrder(row pgx.Row) (*model.Order, error) {
	var (
		o     model.Order
		total string
	)
	err := row.Scan(&o.ID, &o.Code, &o.CustomerID, &o.CourierID, &o.State, &total, &o.CreatedAt, &o.DeliveredAt)
	if err != nil {
		return nil, err
	}
	if o.Total, err = parseMoney(total); err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *orderRepository) loadLines(ctx context.Context, order *model.Order) error {
	const query = `SELECT id, order_id, product_id, product_name, unit_price::text, quantity
                   FROM order_lines WHERE order_id=$1 ORDER BY id`
	rows, err := r.storage.pool.Query(ctx, query, order.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			line  model.OrderLine
			price string
		)
		if err := rows.Scan(&line.ID, &line.OrderID, &line.ProductID, &line.ProductName, &price, &line.Quantity); err != nil {
			return err
		}
		if line.UnitPrice, err = parseMoney(price); err != nil {
			return err
		}
		order.Lines = append(order.Lines, line)
	}
	return rows.Err()
}

func (r *orderRepository) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	order, err := scanOrder(r.storage.pool.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id=$1`, id))
	if err != nil {
		return nil, translateError(err)
	}
	if err := r.loadLines(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) GetByCode(ctx context.Context, code string) (*model.Order, error) {
	order, err := scanOrder(r.storage.pool.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE code=$1`, code))
	if err != nil {
		return nil, translateError(err)
	}
	if err := r.loadLines(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) list(ctx context.Context, query string, args ...any) ([]model.Order, error) {
	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *orderRepository) ListByCustomer(ctx context.Context, customerID int64) ([]model.Order, error) {
	return r.list(ctx, `SELECT `+orderColumns+` FROM orders WHERE customer_id=$1 ORDER BY created_at DESC`, customerID)
}

func (r *orderRepository) ListByStates(ctx context.Context, states ...model.OrderState) ([]model.Order, error) {
	if len(states) == 0 {
		return r.list(ctx, `SELECT `+orderColumns+` FROM orders ORDER BY created_at DESC`)
	}
	names := make([]string, 0, len(states))
	for _, state := range states {
		names = append(names, string(state))
	}
	return r.list(ctx, `SELECT `+orderColumns+` FROM orders WHERE state = ANY($1) ORDER BY created_at DESC`, names)
}

func (r *orderRepository) Mutate(ctx context.Context, orderID int64, apply func(*model.Order) error) (*model.Order, error) {
	var mutated *model.Order
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const query = `SELECT ` + orderColumns + ` FROM orders WHERE id=$1 FOR UPDATE`
		order, err := scanOrder(tx.QueryRow(ctx, query, orderID))
		if err != nil {
			return translateError(err)
		}

		if err := apply(order); err != nil {
			return err
		}

		const update = `UPDATE orders SET state=$1, courier_id=$2, delivered_at=$3 WHERE id=$4`
		if _, err := tx.Exec(ctx, update, string(order.State), order.CourierID, order.DeliveredAt, orderID); err != nil {
			return err
		}
		mutated = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return mutated, nil
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}

// Logger returns storage logger.
func (s *Storage) Logger() *slog.Logger {
	return s.logger
}
