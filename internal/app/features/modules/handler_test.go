package modules_test

import (
	"context"
	"net/http"
	"testing"

	modulesfeature "github.com/gashatech/adminhub/internal/app/features/modules"
	"github.com/gashatech/adminhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestHandleCreate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := modulesfeature.NewHandler(db, zap.NewNop())

	req := testutil.NewJSONRequest(t, "POST", "/api/modules", map[string]any{
		"display_name": "Gasha ERP",
		"description":  "Enterprise resource planning",
	})
	req = testutil.WithUser(req, testutil.SuperAdminUser())
	rec := testutil.NewRecorder()
	h.HandleCreate(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusCreated)
	env := rec.AssertSuccess(t)

	var created struct {
		Name        string `json:"name"`
		DisplayName string `json:"display_name"`
		Status      string `json:"status"`
	}
	testutil.DecodeData(t, env, &created)
	if created.Name != "gasha-erp" {
		t.Errorf("slug: got %q, want gasha-erp", created.Name)
	}
	if created.Status != "active" {
		t.Errorf("status: got %q, want active", created.Status)
	}
}

func TestHandleCreate_MissingName(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := modulesfeature.NewHandler(db, zap.NewNop())

	req := testutil.NewJSONRequest(t, "POST", "/api/modules", map[string]any{
		"description": "no name",
	})
	req = testutil.WithUser(req, testutil.SuperAdminUser())
	rec := testutil.NewRecorder()
	h.HandleCreate(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusBadRequest)
	rec.AssertError(t)
}

func TestHandleList(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := modulesfeature.NewHandler(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateModule(ctx, "Gasha ERP", "gasha-erp")
	fixtures.CreateModule(ctx, "Nisir Security", "nisir-security")

	req := testutil.NewAuthenticatedRequest("GET", "/api/modules", testutil.SuperAdminUser())
	rec := testutil.NewRecorder()
	h.HandleList(rec.ResponseRecorder, req)

	env := rec.AssertSuccess(t)
	var payload struct {
		Modules []struct {
			Name string `json:"name"`
		} `json:"modules"`
		Total int64 `json:"total"`
	}
	testutil.DecodeData(t, env, &payload)

	if payload.Total != 2 {
		t.Errorf("total: got %d, want 2", payload.Total)
	}
	// Sorted by slug.
	if len(payload.Modules) != 2 || payload.Modules[0].Name != "gasha-erp" {
		t.Errorf("modules: got %+v", payload.Modules)
	}
}

func TestHandleList_Search(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := modulesfeature.NewHandler(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateModule(ctx, "Gasha ERP", "gasha-erp")
	fixtures.CreateModule(ctx, "Nisir Security", "nisir-security")

	req := testutil.NewAuthenticatedRequest("GET", "/api/modules?search=Gasha", testutil.SuperAdminUser())
	rec := testutil.NewRecorder()
	h.HandleList(rec.ResponseRecorder, req)

	env := rec.AssertSuccess(t)
	var payload struct {
		Total int64 `json:"total"`
	}
	testutil.DecodeData(t, env, &payload)
	if payload.Total != 1 {
		t.Errorf("total: got %d, want 1", payload.Total)
	}
}

func TestHandleUpdate_RenameCascades(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := modulesfeature.NewHandler(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	mod := fixtures.CreateModule(ctx, "Gasha ERP", "gasha-erp")
	fixtures.CreateProduct(ctx, "Gasha Payroll", "gasha", "gasha-erp")
	admin := fixtures.CreateAdmin(ctx, "Gasha Admin", "gadmin@example.com", []string{"gasha-erp"})

	req := testutil.NewJSONRequest(t, "PUT", "/api/modules/"+mod.ID.Hex(), map[string]any{
		"display_name": "Gasha Platform",
	})
	req = testutil.WithUser(req, testutil.SuperAdminUser())
	req = testutil.WithChiURLParam(req, "id", mod.ID.Hex())
	rec := testutil.NewRecorder()
	h.HandleUpdate(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusOK)
	env := rec.AssertSuccess(t)

	var updated struct {
		Name string `json:"name"`
	}
	testutil.DecodeData(t, env, &updated)
	if updated.Name != "gasha-platform" {
		t.Fatalf("slug: got %q, want gasha-platform", updated.Name)
	}

	n, err := db.Collection("products").CountDocuments(ctx, bson.M{"module": "gasha-platform"})
	if err != nil {
		t.Fatalf("count products: %v", err)
	}
	if n != 1 {
		t.Errorf("products repointed: got %d, want 1", n)
	}

	reloaded, err := h.Users.GetByID(ctx, admin.ID)
	if err != nil {
		t.Fatalf("reload admin: %v", err)
	}
	if len(reloaded.Modules) != 1 || reloaded.Modules[0] != "gasha-platform" {
		t.Errorf("admin modules: got %v", reloaded.Modules)
	}
}

func TestHandleDelete_Cascades(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := modulesfeature.NewHandler(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	mod := fixtures.CreateModule(ctx, "Nisir Security", "nisir-security")
	fixtures.CreateProduct(ctx, "Nisir Firewall", "nisir", "nisir-security")
	fixtures.CreateProduct(ctx, "Nisir EDR", "nisir", "nisir-security")
	admin := fixtures.CreateAdmin(ctx, "Nisir Admin", "nadmin@example.com", []string{"nisir-security", "gasha-erp"})

	req := testutil.NewAuthenticatedRequest("DELETE", "/api/modules/"+mod.ID.Hex(), testutil.SuperAdminUser())
	req = testutil.WithChiURLParam(req, "id", mod.ID.Hex())
	rec := testutil.NewRecorder()
	h.HandleDelete(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusOK)

	n, err := db.Collection("products").CountDocuments(ctx, bson.M{"module": "nisir-security"})
	if err != nil {
		t.Fatalf("count products: %v", err)
	}
	if n != 0 {
		t.Errorf("products remaining: got %d, want 0", n)
	}

	reloaded, err := h.Users.GetByID(ctx, admin.ID)
	if err != nil {
		t.Fatalf("reload admin: %v", err)
	}
	if len(reloaded.Modules) != 1 || reloaded.Modules[0] != "gasha-erp" {
		t.Errorf("admin modules: got %v", reloaded.Modules)
	}
}

func TestHandleDelete_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := modulesfeature.NewHandler(db, zap.NewNop())

	req := testutil.NewAuthenticatedRequest("DELETE", "/api/modules/ffffffffffffffffffffffff", testutil.SuperAdminUser())
	req = testutil.WithChiURLParam(req, "id", "ffffffffffffffffffffffff")
	rec := testutil.NewRecorder()
	h.HandleDelete(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusNotFound)
}

func TestHandleGet_StoreFailureLogsCause(t *testing.T) {
	db := testutil.SetupTestDB(t)
	core, logs := observer.New(zap.ErrorLevel)
	h := modulesfeature.NewHandler(db, zap.New(core))

	// A canceled context makes the store lookup fail with something
	// other than ErrNoDocuments.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	req := testutil.NewAuthenticatedRequest("GET", "/api/modules/ffffffffffffffffffffffff", testutil.SuperAdminUser())
	req = req.WithContext(ctx)
	req = testutil.WithChiURLParam(req, "id", "ffffffffffffffffffffffff")
	rec := testutil.NewRecorder()
	h.HandleGet(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusInternalServerError)

	entries := logs.All()
	if len(entries) == 0 {
		t.Fatal("store failure produced no error log")
	}
	withCause := false
	for _, field := range entries[0].Context {
		if field.Key == "error" && field.Interface != nil {
			withCause = true
		}
	}
	if !withCause {
		t.Errorf("log entry %q carries no error field", entries[0].Message)
	}
}
