package notifications_test

import (
	"net/http"
	"testing"

	notificationsfeature "github.com/gashatech/adminhub/internal/app/features/notifications"
	"github.com/gashatech/adminhub/internal/domain/models"
	"github.com/gashatech/adminhub/internal/testutil"
	"go.uber.org/zap"
)

func TestHandleCreate_Broadcast(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := notificationsfeature.NewHandler(db, zap.NewNop())

	req := testutil.NewJSONRequest(t, "POST", "/api/notifications", map[string]any{
		"title": "Maintenance window",
		"body":  "Sunday 02:00 UTC",
		"level": "warning",
	})
	req = testutil.WithUser(req, testutil.SuperAdminUser())
	rec := testutil.NewRecorder()
	h.HandleCreate(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusCreated)
	env := rec.AssertSuccess(t)

	var created struct {
		ID     string  `json:"id"`
		Level  string  `json:"level"`
		UserID *string `json:"user_id"`
		Read   bool    `json:"read"`
	}
	testutil.DecodeData(t, env, &created)
	if created.UserID != nil {
		t.Error("expected broadcast (nil user_id)")
	}
	if created.Level != "warning" {
		t.Errorf("level: got %q", created.Level)
	}
	if created.Read {
		t.Error("new notification should be unread")
	}
}

func TestHandleCreate_BadLevel(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := notificationsfeature.NewHandler(db, zap.NewNop())

	req := testutil.NewJSONRequest(t, "POST", "/api/notifications", map[string]any{
		"title": "Oops",
		"level": "urgent",
	})
	req = testutil.WithUser(req, testutil.SuperAdminUser())
	rec := testutil.NewRecorder()
	h.HandleCreate(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusBadRequest)
}

func TestHandleFeed(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := notificationsfeature.NewHandler(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	me := fixtures.CreateAdmin(ctx, "Feed Reader", "feed@example.com", []string{"gasha-erp"})
	other := fixtures.CreateAdmin(ctx, "Someone Else", "other@example.com", []string{"gasha-erp"})

	if _, err := h.Notifications.Create(ctx, models.Notification{Title: "For everyone"}); err != nil {
		t.Fatalf("create broadcast: %v", err)
	}
	if _, err := h.Notifications.Create(ctx, models.Notification{Title: "For me", UserID: &me.ID}); err != nil {
		t.Fatalf("create personal: %v", err)
	}
	if _, err := h.Notifications.Create(ctx, models.Notification{Title: "Not for me", UserID: &other.ID}); err != nil {
		t.Fatalf("create other: %v", err)
	}

	req := testutil.NewAuthenticatedRequest("GET", "/api/notifications", testutil.TestUser{
		ID:   me.ID.Hex(),
		Role: "admin",
	})
	rec := testutil.NewRecorder()
	h.HandleFeed(rec.ResponseRecorder, req)

	env := rec.AssertSuccess(t)
	var payload struct {
		Notifications []struct {
			Title string `json:"title"`
		} `json:"notifications"`
	}
	testutil.DecodeData(t, env, &payload)

	if len(payload.Notifications) != 2 {
		t.Fatalf("feed size: got %d, want 2", len(payload.Notifications))
	}
	for _, n := range payload.Notifications {
		if n.Title == "Not for me" {
			t.Error("feed leaked another operator's notification")
		}
	}
}

func TestHandleMarkRead(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := notificationsfeature.NewHandler(db, zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := h.Notifications.Create(ctx, models.Notification{Title: "Ack me"})
	if err != nil {
		t.Fatalf("create notification: %v", err)
	}

	req := testutil.NewAuthenticatedRequest("POST", "/api/notifications/"+created.ID.Hex()+"/read", testutil.AdminUser("gasha-erp"))
	req = testutil.WithChiURLParam(req, "id", created.ID.Hex())
	rec := testutil.NewRecorder()
	h.HandleMarkRead(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusOK)

	notes, err := h.Notifications.ForUser(ctx, created.ID, 0)
	if err != nil {
		t.Fatalf("reload feed: %v", err)
	}
	if len(notes) != 1 || !notes[0].Read {
		t.Errorf("notification not marked read: %+v", notes)
	}
}

func TestHandleDelete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := notificationsfeature.NewHandler(db, zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := h.Notifications.Create(ctx, models.Notification{Title: "Short lived"})
	if err != nil {
		t.Fatalf("create notification: %v", err)
	}

	req := testutil.NewAuthenticatedRequest("DELETE", "/api/notifications/"+created.ID.Hex(), testutil.SuperAdminUser())
	req = testutil.WithChiURLParam(req, "id", created.ID.Hex())
	rec := testutil.NewRecorder()
	h.HandleDelete(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusOK)

	req = testutil.NewAuthenticatedRequest("DELETE", "/api/notifications/"+created.ID.Hex(), testutil.SuperAdminUser())
	req = testutil.WithChiURLParam(req, "id", created.ID.Hex())
	rec = testutil.NewRecorder()
	h.HandleDelete(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusNotFound)
}
