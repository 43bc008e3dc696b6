package usecase

import (
	"context"
	"errors"
	"testing"

	domainErrors "github.com/comedor/comedor/internal/domain/errors"
	"github.com/comedor/comedor/internal/domain/model"
	pkgAuth "github.com/comedor/comedor/internal/pkg/auth"
)

type memoryCustomerRepository struct {
	byEmail map[string]*model.Customer
	byID    map[int64]*model.Customer
	next    int64
}

func newMemoryCustomerRepository() *memoryCustomerRepository {
	return &memoryCustomerRepository{
		byEmail: make(map[string]*model.Customer),
		byID:    make(map[int64]*model.Customer),
		next:    1,
	}
}

func (s *memoryCustomerRepository) Create(ctx context.Context, c model.Customer) (*model.Customer, error) {
	if _, exists := s.byEmail[c.Email]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	c.ID = s.next
	s.next++
	stored := c
	s.byEmail[c.Email] = &stored
	s.byID[c.ID] = &stored
	return &stored, nil
}

func (s *memoryCustomerRepository) GetByEmail(ctx context.Context, email string) (*model.Customer, error) {
	if c, ok := s.byEmail[email]; ok {
		return c, nil
	}
	return nil, domainErrors.ErrNotFound
}

func (s *memoryCustomerRepository) GetByID(ctx context.Context, id int64) (*model.Customer, error) {
	if c, ok := s.byID[id]; ok {
		return c, nil
	}
	return nil, domainErrors.ErrNotFound
}

func (s *memoryCustomerRepository) Update(ctx context.Context, c model.Customer) error {
	stored, ok := s.byID[c.ID]
	if !ok {
		return domainErrors.ErrNotFound
	}
	*stored = c
	return nil
}

type memoryStaffRepository struct {
	stubStaffRepository

	byEmail map[string]*model.Staff
}

func (s memoryStaffRepository) GetByEmail(ctx context.Context, email string) (*model.Staff, error) {
	if member, ok := s.byEmail[email]; ok {
		return member, nil
	}
	return nil, domainErrors.ErrNotFound
}

type testHasher struct{}

func (testHasher) Hash(password string) (string, error) { return "hash:" + password, nil }

func (testHasher) Compare(hash string, password string) error {
	if hash != "hash:"+password {
		return errors.New("mismatch")
	}
	return nil
}

type testStrategy struct {
	issueFn func(pkgAuth.Principal) (string, error)
}

func (s testStrategy) IssueToken(p pkgAuth.Principal) (string, error) {
	if s.issueFn != nil {
		return s.issueFn(p)
	}
	return "token", nil
}

func (s testStrategy) ParseToken(string) (pkgAuth.Principal, error) {
	return pkgAuth.Principal{}, nil
}

func (s testStrategy) Name() string { return "stub" }

func newAuthUseCaseForTest() (*AuthUseCase, *memoryCustomerRepository) {
	customers := newMemoryCustomerRepository()
	staff := memoryStaffRepository{byEmail: make(map[string]*model.Staff)}
	uc := NewAuthUseCase(customers, staff, testHasher{}, testStrategy{})
	return uc, customers
}

func TestRegisterCustomerNormalisesEmail(t *testing.T) {
	uc, customers := newAuthUseCaseForTest()

	customer, token, err := uc.RegisterCustomer(context.Background(), CustomerRegistration{
		Name:     " Maria ",
		Email:    " Maria@Example.COM ",
		Password: "secret",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token == "" {
		t.Fatal("expected auth token")
	}
	if customer.Email != "maria@example.com" || customer.Name != "Maria" {
		t.Fatalf("unexpected normalisation: %+v", customer)
	}
	if _, ok := customers.byEmail["maria@example.com"]; !ok {
		t.Fatal("customer not stored under normalised email")
	}
}

func TestRegisterCustomerRejectsBlankFields(t *testing.T) {
	uc, _ := newAuthUseCaseForTest()

	_, _, err := uc.RegisterCustomer(context.Background(), CustomerRegistration{Email: "a@b.c"})
	if !errors.Is(err, domainErrors.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials error, got %v", err)
	}
}

func TestAuthenticateCustomerMasksUnknownEmail(t *testing.T) {
	uc, _ := newAuthUseCaseForTest()

	_, _, err := uc.AuthenticateCustomer(context.Background(), "ghost@example.com", "secret")
	if !errors.Is(err, domainErrors.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials error, got %v", err)
	}
}

func TestAuthenticateCustomerWrongPassword(t *testing.T) {
	uc, _ := newAuthUseCaseForTest()

	if _, _, err := uc.RegisterCustomer(context.Background(), CustomerRegistration{
		Name: "Maria", Email: "maria@example.com", Password: "secret",
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, _, err := uc.AuthenticateCustomer(context.Background(), "maria@example.com", "wrong")
	if !errors.Is(err, domainErrors.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials error, got %v", err)
	}
}

func TestAuthenticateStaffIssuesRoleToken(t *testing.T) {
	customers := newMemoryCustomerRepository()
	staff := memoryStaffRepository{byEmail: map[string]*model.Staff{
		"kitchen@example.com": {ID: 2, Name: "Cook", Email: "kitchen@example.com", PasswordHash: "hash:secret", Role: model.RoleKitchen},
	}}

	var issued pkgAuth.Principal
	strategy := testStrategy{issueFn: func(p pkgAuth.Principal) (string, error) {
		issued = p
		return "token", nil
	}}
	uc := NewAuthUseCase(customers, staff, testHasher{}, strategy)

	member, token, err := uc.AuthenticateStaff(context.Background(), "kitchen@example.com", "secret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token != "token" || member.Role != model.RoleKitchen {
		t.Fatalf("unexpected result: %s %s", token, member.Role)
	}
	if issued.Kind != pkgAuth.KindStaff || issued.ID != 2 || issued.Role != model.RoleKitchen {
		t.Fatalf("unexpected principal %+v", issued)
	}
}

func TestUpdateProfileRequiresCurrentPassword(t *testing.T) {
	uc, _ := newAuthUseCaseForTest()

	customer, _, err := uc.RegisterCustomer(context.Background(), CustomerRegistration{
		Name: "Maria", Email: "maria@example.com", Password: "secret",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err = uc.UpdateProfile(context.Background(), customer.ID, ProfileUpdate{
		Name:            "Maria",
		CurrentPassword: "wrong",
		NewPassword:     "fresh",
	})
	if !errors.Is(err, domainErrors.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials error, got %v", err)
	}
}

func TestUpdateProfileChangesFieldsAndPassword(t *testing.T) {
	uc, customers := newAuthUseCaseForTest()

	customer, _, err := uc.RegisterCustomer(context.Background(), CustomerRegistration{
		Name: "Maria", Email: "maria@example.com", Password: "secret",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err = uc.UpdateProfile(context.Background(), customer.ID, ProfileUpdate{
		Name:            "Maria G.",
		Phone:           "555-0101",
		Address:         "Calle 1",
		CurrentPassword: "secret",
		NewPassword:     "fresh",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stored := customers.byID[customer.ID]
	if stored.Name != "Maria G." || stored.Phone != "555-0101" || stored.Address != "Calle 1" {
		t.Fatalf("profile not updated: %+v", stored)
	}
	if stored.PasswordHash != "hash:fresh" {
		t.Fatalf("password not rehashed: %s", stored.PasswordHash)
	}
}
