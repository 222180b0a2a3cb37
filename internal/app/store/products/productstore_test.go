package productstore_test

import (
	"testing"

	productstore "github.com/gashatech/adminhub/internal/app/store/products"
	"github.com/gashatech/adminhub/internal/domain/models"
	"github.com/gashatech/adminhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := productstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.Product{
		Name:            "Gasha Payroll",
		Category:        "gasha",
		Module:          "Gasha ERP",
		Description:     "Payroll processing",
		Features:        []string{"tax tables", "batch runs"},
		DownloadEnabled: true,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if created.ID == primitive.NilObjectID {
		t.Error("expected ID to be assigned")
	}
	if created.Module != "gasha-erp" {
		t.Errorf("Module: got %q, want %q", created.Module, "gasha-erp")
	}
	if created.NameCI == "" {
		t.Error("expected NameCI to be set")
	}
	if created.Status != "active" {
		t.Errorf("expected status 'active', got %q", created.Status)
	}
}

func TestStore_Create_InvalidCategory(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := productstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := store.Create(ctx, models.Product{
		Name:     "Bad Category",
		Category: "widgets",
		Module:   "gasha-erp",
	})
	if err == nil {
		t.Error("expected error for invalid category")
	}
}

func TestStore_Create_ModuleRequired(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := productstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := store.Create(ctx, models.Product{
		Name:     "Orphan Product",
		Category: "nisir",
	})
	if err == nil {
		t.Error("expected error for product without a module")
	}
}

func TestStore_UpdateFields(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := productstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.Product{
		Name:           "Nisir Endpoint",
		Category:       "nisir",
		Module:         "nisir-security",
		RequestEnabled: true,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	off := false
	err = store.UpdateFields(ctx, created.ID, productstore.Update{
		Status:         "maintenance",
		RequestEnabled: &off,
		Features:       []string{"edr"},
	})
	if err != nil {
		t.Fatalf("UpdateFields failed: %v", err)
	}

	got, err := store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Status != "maintenance" {
		t.Errorf("Status: got %q, want maintenance", got.Status)
	}
	if got.RequestEnabled {
		t.Error("expected RequestEnabled to be false")
	}
	if len(got.Features) != 1 || got.Features[0] != "edr" {
		t.Errorf("Features: got %v", got.Features)
	}
	// Untouched fields survive.
	if got.Name != "Nisir Endpoint" {
		t.Errorf("Name: got %q", got.Name)
	}
}

func TestStore_DeleteByModule(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := productstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures := testutil.NewFixtures(t, db)
	fixtures.CreateProduct(ctx, "Keep Me", "gasha", "gasha-erp")
	fixtures.CreateProduct(ctx, "Drop One", "nisir", "nisir-security")
	fixtures.CreateProduct(ctx, "Drop Two", "nisir", "nisir-security")

	deleted, err := store.DeleteByModule(ctx, "nisir-security")
	if err != nil {
		t.Fatalf("DeleteByModule failed: %v", err)
	}
	if deleted != 2 {
		t.Errorf("deleted: got %d, want 2", deleted)
	}

	remaining, err := store.Count(ctx, bson.M{})
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if remaining != 1 {
		t.Errorf("remaining: got %d, want 1", remaining)
	}
}

func TestStore_NameExistsInModule(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := productstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.Product{
		Name:     "CodePro IDE",
		Category: "codepro",
		Module:   "codepro-tools",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// Case-insensitive match in the same module.
	exists, err := store.NameExistsInModule(ctx, "codepro-tools", "CODEPRO ide", primitive.NilObjectID)
	if err != nil {
		t.Fatalf("NameExistsInModule failed: %v", err)
	}
	if !exists {
		t.Error("expected name to exist in module")
	}

	// Excluding the product itself finds nothing.
	exists, err = store.NameExistsInModule(ctx, "codepro-tools", "CodePro IDE", created.ID)
	if err != nil {
		t.Fatalf("NameExistsInModule with exclude failed: %v", err)
	}
	if exists {
		t.Error("expected no match when excluding the product's own ID")
	}

	// Same name in a different module is fine.
	exists, err = store.NameExistsInModule(ctx, "gasha-erp", "CodePro IDE", primitive.NilObjectID)
	if err != nil {
		t.Fatalf("NameExistsInModule other module failed: %v", err)
	}
	if exists {
		t.Error("expected no match in a different module")
	}
}
