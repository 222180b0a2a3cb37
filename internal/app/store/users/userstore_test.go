package userstore_test

import (
	"testing"

	userstore "github.com/gashatech/adminhub/internal/app/store/users"
	"github.com/gashatech/adminhub/internal/domain/models"
	"github.com/gashatech/adminhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := models.User{
		FullName: "  Test Admin  ",
		Email:    "Admin@Example.COM",
		Role:     "admin",
		Modules:  []string{"gasha-erp"},
	}

	created, err := store.Create(ctx, u, "s3cret-pass")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if created.ID == primitive.NilObjectID {
		t.Error("expected ID to be assigned")
	}
	if created.FullName != "Test Admin" {
		t.Errorf("FullName: got %q, want %q", created.FullName, "Test Admin")
	}
	if created.Email != "admin@example.com" {
		t.Errorf("Email: got %q, want %q", created.Email, "admin@example.com")
	}
	if created.FullNameCI == "" {
		t.Error("expected FullNameCI to be set")
	}
	if created.Status != "active" {
		t.Errorf("expected status 'active', got %q", created.Status)
	}
	if created.Password == "" || created.Password == "s3cret-pass" {
		t.Error("expected password to be stored hashed")
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Error("expected timestamps to be set")
	}
}

func TestStore_Create_DuplicateEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	ensureEmailIndex(t, db)

	u := models.User{
		FullName: "First User",
		Email:    "dup@example.com",
		Role:     "admin",
		Modules:  []string{"gasha-erp"},
	}
	if _, err := store.Create(ctx, u, "pass-one"); err != nil {
		t.Fatalf("first Create failed: %v", err)
	}

	u.FullName = "Second User"
	if _, err := store.Create(ctx, u, "pass-two"); err != userstore.ErrDuplicateEmail {
		t.Errorf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestStore_Create_ModulesRequired(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	// Non-super-admin with no modules is rejected.
	u := models.User{
		FullName: "No Modules",
		Email:    "nomods@example.com",
		Role:     "admin",
	}
	if _, err := store.Create(ctx, u, "pass"); err == nil {
		t.Error("expected error for admin with no modules")
	}

	// Super-admin is exempt.
	u.Email = "super@example.com"
	u.Role = "super-admin"
	if _, err := store.Create(ctx, u, "pass"); err != nil {
		t.Errorf("super-admin with no modules should be allowed: %v", err)
	}
}

func TestStore_GetByEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.User{
		FullName: "Lookup User",
		Email:    "lookup@example.com",
		Role:     "marketing",
		Modules:  []string{"nisir-security"},
	}, "pass")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// Lookup is case-insensitive.
	found, err := store.GetByEmail(ctx, "LOOKUP@example.com")
	if err != nil {
		t.Fatalf("GetByEmail failed: %v", err)
	}
	if found.ID != created.ID {
		t.Errorf("ID: got %v, want %v", found.ID, created.ID)
	}
}

func TestStore_GetByID_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := store.GetByID(ctx, primitive.NewObjectID())
	if err != mongo.ErrNoDocuments {
		t.Errorf("expected mongo.ErrNoDocuments, got %v", err)
	}
}

func TestVerifyPassword(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.User{
		FullName: "Password User",
		Email:    "pw@example.com",
		Role:     "super-admin",
	}, "correct-horse")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if !userstore.VerifyPassword(&created, "correct-horse") {
		t.Error("expected correct password to verify")
	}
	if userstore.VerifyPassword(&created, "wrong-horse") {
		t.Error("expected wrong password to fail")
	}
}

func TestStore_UpdateFields(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.User{
		FullName: "Before Update",
		Email:    "update@example.com",
		Role:     "admin",
		Modules:  []string{"gasha-erp"},
	}, "pass")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	err = store.UpdateFields(ctx, created.ID, userstore.Update{
		FullName: "After Update",
		Status:   "inactive",
		Modules:  []string{"gasha-erp", "nisir-security"},
	})
	if err != nil {
		t.Fatalf("UpdateFields failed: %v", err)
	}

	got, err := store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.FullName != "After Update" {
		t.Errorf("FullName: got %q", got.FullName)
	}
	if got.Status != "inactive" {
		t.Errorf("Status: got %q, want inactive", got.Status)
	}
	if len(got.Modules) != 2 {
		t.Errorf("Modules: got %v", got.Modules)
	}
	if !got.UpdatedAt.After(created.UpdatedAt) {
		t.Error("expected UpdatedAt to advance")
	}
}

func TestStore_RemoveModuleFromAll(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures := testutil.NewFixtures(t, db)
	fixtures.CreateAdmin(ctx, "Admin One", "one@example.com", []string{"gasha-erp", "nisir-security"})
	fixtures.CreateAdmin(ctx, "Admin Two", "two@example.com", []string{"nisir-security"})
	fixtures.CreateAdmin(ctx, "Admin Three", "three@example.com", []string{"gasha-erp"})

	modified, err := store.RemoveModuleFromAll(ctx, "nisir-security")
	if err != nil {
		t.Fatalf("RemoveModuleFromAll failed: %v", err)
	}
	if modified != 2 {
		t.Errorf("modified: got %d, want 2", modified)
	}

	remaining, err := store.Count(ctx, bson.M{"modules": "nisir-security"})
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if remaining != 0 {
		t.Errorf("expected no users still referencing the slug, got %d", remaining)
	}
}

func TestStore_Delete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.User{
		FullName: "Delete Me",
		Email:    "delete@example.com",
		Role:     "super-admin",
	}, "pass")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	deleted, err := store.Delete(ctx, created.ID)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if deleted != 1 {
		t.Errorf("deleted: got %d, want 1", deleted)
	}

	// Second delete is a no-op.
	deleted, err = store.Delete(ctx, created.ID)
	if err != nil {
		t.Fatalf("second Delete failed: %v", err)
	}
	if deleted != 0 {
		t.Errorf("second delete: got %d, want 0", deleted)
	}
}

// ensureEmailIndex creates the unique email index the app normally
// builds at startup, so duplicate-key behavior can be exercised.
func ensureEmailIndex(t *testing.T, db *mongo.Database) {
	t.Helper()

	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := db.Collection("users").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		t.Fatalf("failed to create email index: %v", err)
	}
}
