package accounts

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/reganthompson23/wholesaleportal/modules/auth"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(&Customer{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// fakeAuth implements auth.AuthPort, recording identity calls so tests can
// check provisioning order and cleanup.
type fakeAuth struct {
	nextUserID string
	failCreate bool
	created    []string
	deleted    []string
}

func (f *fakeAuth) ValidateToken(_ context.Context, _ string) (*auth.ValidateTokenResponse, error) {
	return &auth.ValidateTokenResponse{Valid: true}, nil
}

func (f *fakeAuth) CreateIdentity(_ context.Context, req auth.CreateIdentityRequest) (*auth.CreateIdentityResponse, error) {
	if f.failCreate {
		return nil, fmt.Errorf("email already registered")
	}
	f.created = append(f.created, req.Email)
	return &auth.CreateIdentityResponse{
		UserID:       f.nextUserID,
		Email:        req.Email,
		Role:         req.Role,
		TempPassword: "w8k2mproq4vt",
	}, nil
}

func (f *fakeAuth) DeleteIdentity(_ context.Context, userID string) error {
	f.deleted = append(f.deleted, userID)
	return nil
}

func setupService(t *testing.T) (*Service, *fakeAuth) {
	t.Helper()
	authPort := &fakeAuth{nextUserID: "user-1"}
	// A nil event bus means provisioning events are silently skipped.
	return NewService(NewRepository(setupTestDB(t)), authPort, nil), authPort
}

func TestService_CreateCustomer(t *testing.T) {
	t.Run("provisions identity then record", func(t *testing.T) {
		svc, authPort := setupService(t)

		customer, err := svc.CreateCustomer(context.Background(), CreateCustomerRequest{
			BusinessName: "  Acme Hardware  ",
			ContactName:  "Pat",
			Email:        "  Pat@Acme.Test ",
			Phone:        "0400 000 000",
		})
		if err != nil {
			t.Fatalf("CreateCustomer() error = %v", err)
		}

		if customer.AuthUserID != "user-1" {
			t.Errorf("auth user id = %q, want user-1", customer.AuthUserID)
		}
		if customer.BusinessName != "Acme Hardware" {
			t.Errorf("business name = %q, want trimmed", customer.BusinessName)
		}
		if customer.Email != "pat@acme.test" {
			t.Errorf("email = %q, want lowercased and trimmed", customer.Email)
		}
		if len(authPort.created) != 1 || authPort.created[0] != "pat@acme.test" {
			t.Errorf("identity created for %v, want pat@acme.test", authPort.created)
		}
		if len(authPort.deleted) != 0 {
			t.Errorf("unexpected identity cleanup: %v", authPort.deleted)
		}
	})

	t.Run("validation happens before the identity call", func(t *testing.T) {
		svc, authPort := setupService(t)

		tests := []CreateCustomerRequest{
			{Email: "pat@acme.test"},
			{BusinessName: "Acme", Email: ""},
			{BusinessName: "Acme", Email: "not-an-email"},
		}
		for _, req := range tests {
			if _, err := svc.CreateCustomer(context.Background(), req); err == nil {
				t.Errorf("CreateCustomer(%+v) expected error", req)
			}
		}
		if len(authPort.created) != 0 {
			t.Errorf("identities created for invalid requests: %v", authPort.created)
		}
	})

	t.Run("identity failure stops provisioning", func(t *testing.T) {
		svc, authPort := setupService(t)
		authPort.failCreate = true

		_, err := svc.CreateCustomer(context.Background(), CreateCustomerRequest{
			BusinessName: "Acme",
			Email:        "pat@acme.test",
		})
		if err == nil {
			t.Fatal("expected error when identity creation fails")
		}
		if _, err := svc.GetByAuthUser("user-1"); !errors.Is(err, ErrNotFound) {
			t.Errorf("customer record exists after identity failure: %v", err)
		}
	})

	t.Run("identity cleaned up when record insert fails", func(t *testing.T) {
		svc, authPort := setupService(t)

		if _, err := svc.CreateCustomer(context.Background(), CreateCustomerRequest{
			BusinessName: "Acme",
			Email:        "pat@acme.test",
		}); err != nil {
			t.Fatalf("CreateCustomer() error = %v", err)
		}

		authPort.nextUserID = "user-2"
		_, err := svc.CreateCustomer(context.Background(), CreateCustomerRequest{
			BusinessName: "Copycat",
			Email:        "pat@acme.test",
		})
		if !errors.Is(err, ErrEmailExists) {
			t.Fatalf("CreateCustomer() error = %v, want ErrEmailExists", err)
		}
		// The second identity must not be left claiming the email.
		if len(authPort.deleted) != 1 || authPort.deleted[0] != "user-2" {
			t.Errorf("cleanup deleted %v, want [user-2]", authPort.deleted)
		}
	})
}

func TestService_ListAndSearch(t *testing.T) {
	svc, authPort := setupService(t)
	ctx := context.Background()

	seed := []struct {
		userID, business, contact, email string
	}{
		{"u-1", "Bolt Supply Co", "Sam", "sam@bolt.test"},
		{"u-2", "Acme Hardware", "Pat", "pat@acme.test"},
		{"u-3", "Zenith Traders", "Alex", "alex@zenith.test"},
	}
	for _, s := range seed {
		authPort.nextUserID = s.userID
		if _, err := svc.CreateCustomer(ctx, CreateCustomerRequest{
			BusinessName: s.business,
			ContactName:  s.contact,
			Email:        s.email,
		}); err != nil {
			t.Fatalf("CreateCustomer() error = %v", err)
		}
	}

	t.Run("ordered by business name", func(t *testing.T) {
		found, err := svc.List("")
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if len(found) != 3 {
			t.Fatalf("got %d customers, want 3", len(found))
		}
		if found[0].BusinessName != "Acme Hardware" || found[2].BusinessName != "Zenith Traders" {
			t.Errorf("order = %q ... %q", found[0].BusinessName, found[2].BusinessName)
		}
	})

	t.Run("search matches business contact and email", func(t *testing.T) {
		tests := []struct {
			query string
			want  int
		}{
			{"BOLT", 1},
			{"pat", 1},
			{"zenith.test", 1},
			{"warehouse", 0},
		}
		for _, tt := range tests {
			found, err := svc.List(tt.query)
			if err != nil {
				t.Fatalf("List(%q) error = %v", tt.query, err)
			}
			if len(found) != tt.want {
				t.Errorf("List(%q) returned %d customers, want %d", tt.query, len(found), tt.want)
			}
		}
	})
}

func TestService_Update(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	customer, err := svc.CreateCustomer(ctx, CreateCustomerRequest{
		BusinessName: "Acme Hardware",
		ContactName:  "Pat",
		Email:        "pat@acme.test",
		Phone:        "0400 000 000",
	})
	if err != nil {
		t.Fatalf("CreateCustomer() error = %v", err)
	}

	t.Run("partial update leaves other fields alone", func(t *testing.T) {
		phone := ""
		business := "Acme Hardware Pty Ltd"
		updated, err := svc.Update(UpdateCustomerRequest{
			ID:           customer.ID,
			BusinessName: &business,
			Phone:        &phone,
		})
		if err != nil {
			t.Fatalf("Update() error = %v", err)
		}
		if updated.BusinessName != "Acme Hardware Pty Ltd" {
			t.Errorf("business name = %q", updated.BusinessName)
		}
		if updated.Phone != "" {
			t.Errorf("phone = %q, want cleared", updated.Phone)
		}
		if updated.ContactName != "Pat" {
			t.Errorf("contact name = %q, want untouched", updated.ContactName)
		}
		if updated.Email != "pat@acme.test" {
			t.Errorf("email = %q, want untouched", updated.Email)
		}
	})

	t.Run("empty business name rejected", func(t *testing.T) {
		blank := "   "
		if _, err := svc.Update(UpdateCustomerRequest{ID: customer.ID, BusinessName: &blank}); err == nil {
			t.Error("expected error for blank business name")
		}
	})

	t.Run("unknown customer", func(t *testing.T) {
		name := "Ghost"
		if _, err := svc.Update(UpdateCustomerRequest{ID: "missing", BusinessName: &name}); !errors.Is(err, ErrNotFound) {
			t.Errorf("Update() error = %v, want ErrNotFound", err)
		}
	})
}

func TestService_Delete(t *testing.T) {
	svc, authPort := setupService(t)
	ctx := context.Background()

	customer, err := svc.CreateCustomer(ctx, CreateCustomerRequest{
		BusinessName: "Acme Hardware",
		Email:        "pat@acme.test",
	})
	if err != nil {
		t.Fatalf("CreateCustomer() error = %v", err)
	}

	if err := svc.Delete(ctx, customer.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	if _, err := svc.Get(customer.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() after delete error = %v, want ErrNotFound", err)
	}
	if len(authPort.deleted) != 1 || authPort.deleted[0] != "user-1" {
		t.Errorf("identity deletion = %v, want [user-1]", authPort.deleted)
	}

	if err := svc.Delete(ctx, customer.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete() twice error = %v, want ErrNotFound", err)
	}
}
