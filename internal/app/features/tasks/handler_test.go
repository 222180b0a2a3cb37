package tasks_test

import (
	"net/http"
	"testing"

	tasksfeature "github.com/gashatech/adminhub/internal/app/features/tasks"
	"github.com/gashatech/adminhub/internal/domain/models"
	"github.com/gashatech/adminhub/internal/testutil"
	"go.uber.org/zap"
)

func taskWithTitle(title string) models.Task {
	return models.Task{Title: title}
}

func TestHandleCreate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := tasksfeature.NewHandler(db, zap.NewNop())

	req := testutil.NewJSONRequest(t, "POST", "/api/tasks", map[string]any{
		"title":       "Rotate signing keys",
		"description": "Quarterly rotation",
	})
	req = testutil.WithUser(req, testutil.AdminUser("gasha-erp"))
	rec := testutil.NewRecorder()
	h.HandleCreate(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusCreated)
	env := rec.AssertSuccess(t)

	var created struct {
		Title  string `json:"title"`
		Status string `json:"status"`
	}
	testutil.DecodeData(t, env, &created)
	if created.Status != "open" {
		t.Errorf("status: got %q, want open", created.Status)
	}
}

func TestHandleCreate_MissingTitle(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := tasksfeature.NewHandler(db, zap.NewNop())

	req := testutil.NewJSONRequest(t, "POST", "/api/tasks", map[string]any{
		"description": "no title",
	})
	req = testutil.WithUser(req, testutil.SuperAdminUser())
	rec := testutil.NewRecorder()
	h.HandleCreate(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusBadRequest)
}

func TestHandleCreate_BadAssignee(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := tasksfeature.NewHandler(db, zap.NewNop())

	req := testutil.NewJSONRequest(t, "POST", "/api/tasks", map[string]any{
		"title":       "Orphan task",
		"assignee_id": "not-an-id",
	})
	req = testutil.WithUser(req, testutil.SuperAdminUser())
	rec := testutil.NewRecorder()
	h.HandleCreate(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusBadRequest)
}

func TestHandleUpdate_StatusFlow(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := tasksfeature.NewHandler(db, zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := h.Tasks.Create(ctx, taskWithTitle("Ship release"))
	if err != nil {
		t.Fatalf("create task: %v", err)
	}

	for _, status := range []string{"in-progress", "done"} {
		req := testutil.NewJSONRequest(t, "PUT", "/api/tasks/"+created.ID.Hex(), map[string]any{
			"status": status,
		})
		req = testutil.WithUser(req, testutil.SuperAdminUser())
		req = testutil.WithChiURLParam(req, "id", created.ID.Hex())
		rec := testutil.NewRecorder()
		h.HandleUpdate(rec.ResponseRecorder, req)

		env := rec.AssertSuccess(t)
		var updated struct {
			Status string `json:"status"`
		}
		testutil.DecodeData(t, env, &updated)
		if updated.Status != status {
			t.Errorf("status: got %q, want %q", updated.Status, status)
		}
	}
}

func TestHandleUpdate_InvalidStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := tasksfeature.NewHandler(db, zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := h.Tasks.Create(ctx, taskWithTitle("Some task"))
	if err != nil {
		t.Fatalf("create task: %v", err)
	}

	req := testutil.NewJSONRequest(t, "PUT", "/api/tasks/"+created.ID.Hex(), map[string]any{
		"status": "blocked",
	})
	req = testutil.WithUser(req, testutil.SuperAdminUser())
	req = testutil.WithChiURLParam(req, "id", created.ID.Hex())
	rec := testutil.NewRecorder()
	h.HandleUpdate(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusBadRequest)
}

func TestHandleList_StatusFilter(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := tasksfeature.NewHandler(db, zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := h.Tasks.Create(ctx, taskWithTitle("Open one")); err != nil {
		t.Fatalf("create task: %v", err)
	}
	done := taskWithTitle("Done one")
	done.Status = "done"
	if _, err := h.Tasks.Create(ctx, done); err != nil {
		t.Fatalf("create task: %v", err)
	}

	req := testutil.NewAuthenticatedRequest("GET", "/api/tasks?status=open", testutil.SuperAdminUser())
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

func TestHandleDelete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := tasksfeature.NewHandler(db, zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := h.Tasks.Create(ctx, taskWithTitle("Short lived"))
	if err != nil {
		t.Fatalf("create task: %v", err)
	}

	req := testutil.NewAuthenticatedRequest("DELETE", "/api/tasks/"+created.ID.Hex(), testutil.SuperAdminUser())
	req = testutil.WithChiURLParam(req, "id", created.ID.Hex())
	rec := testutil.NewRecorder()
	h.HandleDelete(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusOK)

	req = testutil.NewAuthenticatedRequest("DELETE", "/api/tasks/"+created.ID.Hex(), testutil.SuperAdminUser())
	req = testutil.WithChiURLParam(req, "id", created.ID.Hex())
	rec = testutil.NewRecorder()
	h.HandleDelete(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusNotFound)
}
