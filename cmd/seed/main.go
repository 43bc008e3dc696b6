// Command seed provisions demo staff accounts and a starter menu so a fresh
// installation is usable right away. Existing rows are left untouched.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/shopspring/decimal"

	domainErrors "github.com/comedor/comedor/internal/domain/errors"
	"github.com/comedor/comedor/internal/domain/model"
	"github.com/comedor/comedor/internal/logger"
	pkgAuth "github.com/comedor/comedor/internal/pkg/auth"
	"github.com/comedor/comedor/internal/storage/postgres"
)

type staffSeed struct {
	name     string
	email    string
	password string
	role     model.Role
}

type productSeed struct {
	name        string
	description string
	price       string
}

var staffSeeds = []staffSeed{
	{"Kitchen One", "kitchen@comedor.local", "kitchen123", model.RoleKitchen},
	{"Courier One", "courier@comedor.local", "courier123", model.RoleCourier},
	{"Cashier One", "cashier@comedor.local", "cashier123", model.RoleCashier},
	{"Admin", "admin@comedor.local", "admin123", model.RoleAdmin},
}

var menuSeeds = map[string][]productSeed{
	"Mains": {
		{"Enchiladas Verdes", "Three chicken enchiladas in green salsa", "9.50"},
		{"Tacos al Pastor", "Five pork tacos with pineapple", "8.00"},
		{"Pozole Rojo", "Hominy and pork stew, large bowl", "10.50"},
	},
	"Drinks": {
		{"Agua de Horchata", "Rice and cinnamon, half litre", "3.50"},
		{"Agua de Jamaica", "Hibiscus, half litre", "3.50"},
	},
	"Desserts": {
		{"Flan Napolitano", "Caramel custard slice", "4.00"},
	},
}

func main() {
	dsn := flag.String("d", os.Getenv("DATABASE_URI"), "PostgreSQL DSN")
	flag.Parse()

	if *dsn == "" {
		fmt.Fprintln(os.Stderr, "database URI must be provided via -d or DATABASE_URI")
		os.Exit(1)
	}

	log := logger.New()
	ctx := context.Background()

	storage, err := postgres.New(ctx, *dsn, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open storage: %v\n", err)
		os.Exit(1)
	}
	defer storage.Close()

	if err := seed(ctx, storage, log); err != nil {
		fmt.Fprintf(os.Stderr, "seeding failed: %v\n", err)
		os.Exit(1)
	}
}

func seed(ctx context.Context, storage *postgres.Storage, log *slog.Logger) error {
	hasher := pkgAuth.NewBcryptHasher(0)
	staffRepo := storage.Staff()

	for _, s := range staffSeeds {
		hash, err := hasher.Hash(s.password)
		if err != nil {
			return err
		}
		_, err = staffRepo.Create(ctx, model.Staff{
			Name:         s.name,
			Email:        s.email,
			PasswordHash: hash,
			Role:         s.role,
		})
		switch {
		case err == nil:
			log.Info("staff account created", slog.String("email", s.email), slog.String("role", string(s.role)))
		case errors.Is(err, domainErrors.ErrAlreadyExists):
			log.Info("staff account exists, skipping", slog.String("email", s.email))
		default:
			return err
		}
	}

	catalog := storage.Catalog()
	for categoryName, products := range menuSeeds {
		category, err := catalog.CreateCategory(ctx, model.Category{Name: categoryName, Active: true})
		if err != nil {
			if !errors.Is(err, domainErrors.ErrAlreadyExists) {
				return err
			}
			log.Info("category exists, skipping section", slog.String("category", categoryName))
			continue
		}

		for _, p := range products {
			price, err := decimal.NewFromString(p.price)
			if err != nil {
				return err
			}
			if _, err := catalog.CreateProduct(ctx, model.Product{
				CategoryID:  &category.ID,
				Name:        p.name,
				Description: p.description,
				Price:       price,
				Active:      true,
			}); err != nil {
				return err
			}
		}
		log.Info("menu section created", slog.String("category", categoryName), slog.Int("products", len(products)))
	}

	return nil
}
