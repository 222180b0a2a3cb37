package products_test

import (
	"net/http"
	"testing"

	productsfeature "github.com/gashatech/adminhub/internal/app/features/products"
	"github.com/gashatech/adminhub/internal/testutil"
	"go.uber.org/zap"
)

func TestHandleCreate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := productsfeature.NewHandler(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateModule(ctx, "Gasha ERP", "gasha-erp")

	req := testutil.NewJSONRequest(t, "POST", "/api/products", map[string]any{
		"name":             "Gasha Payroll",
		"category":         "gasha",
		"module":           "gasha-erp",
		"download_enabled": true,
		"catalog_visible":  true,
	})
	req = testutil.WithUser(req, testutil.SuperAdminUser())
	rec := testutil.NewRecorder()
	h.HandleCreate(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusCreated)
	env := rec.AssertSuccess(t)

	var created struct {
		Name            string `json:"name"`
		Module          string `json:"module"`
		Status          string `json:"status"`
		DownloadEnabled bool   `json:"download_enabled"`
		RequestEnabled  bool   `json:"request_enabled"`
	}
	testutil.DecodeData(t, env, &created)
	if created.Module != "gasha-erp" {
		t.Errorf("module: got %q", created.Module)
	}
	if created.Status != "active" {
		t.Errorf("status: got %q, want active", created.Status)
	}
	if !created.DownloadEnabled || created.RequestEnabled {
		t.Errorf("flags: download=%v request=%v", created.DownloadEnabled, created.RequestEnabled)
	}
}

func TestHandleCreate_UnknownModule(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := productsfeature.NewHandler(db, zap.NewNop())

	req := testutil.NewJSONRequest(t, "POST", "/api/products", map[string]any{
		"name":     "Orphan",
		"category": "gasha",
		"module":   "no-such-module",
	})
	req = testutil.WithUser(req, testutil.SuperAdminUser())
	rec := testutil.NewRecorder()
	h.HandleCreate(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusBadRequest)
	env := rec.AssertError(t)
	if env.Error != "module does not exist" {
		t.Errorf("error: got %q", env.Error)
	}
}

func TestHandleCreate_DuplicateName(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := productsfeature.NewHandler(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateModule(ctx, "Gasha ERP", "gasha-erp")
	fixtures.CreateProduct(ctx, "Gasha Payroll", "gasha", "gasha-erp")

	req := testutil.NewJSONRequest(t, "POST", "/api/products", map[string]any{
		"name":     "gasha payroll", // same name, different casing
		"category": "gasha",
		"module":   "gasha-erp",
	})
	req = testutil.WithUser(req, testutil.SuperAdminUser())
	rec := testutil.NewRecorder()
	h.HandleCreate(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusConflict)
}

func TestHandleCreate_InvalidCategory(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := productsfeature.NewHandler(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateModule(ctx, "Gasha ERP", "gasha-erp")

	req := testutil.NewJSONRequest(t, "POST", "/api/products", map[string]any{
		"name":     "Bad Category",
		"category": "hardware",
		"module":   "gasha-erp",
	})
	req = testutil.WithUser(req, testutil.SuperAdminUser())
	rec := testutil.NewRecorder()
	h.HandleCreate(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusBadRequest)
}

func TestHandleList_ModuleFilter(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := productsfeature.NewHandler(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateProduct(ctx, "Gasha Payroll", "gasha", "gasha-erp")
	fixtures.CreateProduct(ctx, "Nisir Firewall", "nisir", "nisir-security")

	req := testutil.NewAuthenticatedRequest("GET", "/api/products?module=nisir-security", testutil.SuperAdminUser())
	rec := testutil.NewRecorder()
	h.HandleList(rec.ResponseRecorder, req)

	env := rec.AssertSuccess(t)
	var payload struct {
		Products []struct {
			Name string `json:"name"`
		} `json:"products"`
		Total int64 `json:"total"`
	}
	testutil.DecodeData(t, env, &payload)

	if payload.Total != 1 {
		t.Errorf("total: got %d, want 1", payload.Total)
	}
	if len(payload.Products) != 1 || payload.Products[0].Name != "Nisir Firewall" {
		t.Errorf("products: got %+v", payload.Products)
	}
}

func TestHandleUpdate_FlagToggle(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := productsfeature.NewHandler(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	prod := fixtures.CreateProduct(ctx, "Gasha Payroll", "gasha", "gasha-erp")

	req := testutil.NewJSONRequest(t, "PUT", "/api/products/"+prod.ID.Hex(), map[string]any{
		"download_enabled": false,
	})
	req = testutil.WithUser(req, testutil.SuperAdminUser())
	req = testutil.WithChiURLParam(req, "id", prod.ID.Hex())
	rec := testutil.NewRecorder()
	h.HandleUpdate(rec.ResponseRecorder, req)

	env := rec.AssertSuccess(t)
	var updated struct {
		DownloadEnabled bool `json:"download_enabled"`
		RequestEnabled  bool `json:"request_enabled"`
		CatalogVisible  bool `json:"catalog_visible"`
	}
	testutil.DecodeData(t, env, &updated)

	if updated.DownloadEnabled {
		t.Error("download_enabled should be off")
	}
	// Omitted flags keep their stored values.
	if !updated.RequestEnabled || !updated.CatalogVisible {
		t.Errorf("flags changed unexpectedly: %+v", updated)
	}
}

func TestHandleDelete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := productsfeature.NewHandler(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	prod := fixtures.CreateProduct(ctx, "Short Lived", "gasha", "gasha-erp")

	req := testutil.NewAuthenticatedRequest("DELETE", "/api/products/"+prod.ID.Hex(), testutil.SuperAdminUser())
	req = testutil.WithChiURLParam(req, "id", prod.ID.Hex())
	rec := testutil.NewRecorder()
	h.HandleDelete(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusOK)

	req = testutil.NewAuthenticatedRequest("DELETE", "/api/products/"+prod.ID.Hex(), testutil.SuperAdminUser())
	req = testutil.WithChiURLParam(req, "id", prod.ID.Hex())
	rec = testutil.NewRecorder()
	h.HandleDelete(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusNotFound)
}
