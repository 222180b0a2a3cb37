package metricstore_test

import (
	"testing"
	"time"

	metricstore "github.com/gashatech/adminhub/internal/app/store/analytics"
	"github.com/gashatech/adminhub/internal/domain/models"
	"github.com/gashatech/adminhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStore_Record(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := metricstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	m, err := store.Record(ctx, models.Metric{
		Name:   "product_download",
		Value:  1,
		Module: "gasha-erp",
	})
	if err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	if m.ID == primitive.NilObjectID {
		t.Error("expected ID to be assigned")
	}
	if m.Kind != "counter" {
		t.Errorf("Kind: got %q, want counter", m.Kind)
	}
	if m.RecordedAt.IsZero() {
		t.Error("expected RecordedAt to be filled in")
	}
}

func TestStore_Record_InvalidKind(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := metricstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := store.Record(ctx, models.Metric{Name: "x", Kind: "timer"})
	if err == nil {
		t.Error("expected error for invalid kind")
	}
}

func TestStore_SumByModule(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := metricstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures := testutil.NewFixtures(t, db)
	fixtures.RecordMetric(ctx, "product_download", "gasha-erp", 5)
	fixtures.RecordMetric(ctx, "product_download", "gasha-erp", 3)
	fixtures.RecordMetric(ctx, "product_download", "nisir-security", 2)
	fixtures.RecordMetric(ctx, "page_visit", "gasha-erp", 100) // different metric, excluded

	totals, err := store.SumByModule(ctx, "product_download")
	if err != nil {
		t.Fatalf("SumByModule failed: %v", err)
	}

	if len(totals) != 2 {
		t.Fatalf("totals: got %d rows, want 2", len(totals))
	}
	// Sorted highest first.
	if totals[0].Module != "gasha-erp" || totals[0].Total != 8 {
		t.Errorf("top row: got %+v", totals[0])
	}
	if totals[1].Module != "nisir-security" || totals[1].Total != 2 {
		t.Errorf("second row: got %+v", totals[1])
	}
}

func TestStore_SumSince(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := metricstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	old := models.Metric{
		Name:       "page_visit",
		Value:      10,
		Kind:       "counter",
		RecordedAt: time.Now().UTC().Add(-48 * time.Hour),
	}
	if _, err := store.Record(ctx, old); err != nil {
		t.Fatalf("Record old failed: %v", err)
	}
	if _, err := store.Record(ctx, models.Metric{Name: "page_visit", Value: 4, Kind: "counter"}); err != nil {
		t.Fatalf("Record recent failed: %v", err)
	}

	total, err := store.SumSince(ctx, "page_visit", time.Now().UTC().Add(-24*time.Hour))
	if err != nil {
		t.Fatalf("SumSince failed: %v", err)
	}
	if total != 4 {
		t.Errorf("total: got %v, want 4", total)
	}

	// No samples in range sums to zero.
	total, err = store.SumSince(ctx, "nonexistent", time.Now().UTC().Add(-time.Hour))
	if err != nil {
		t.Fatalf("SumSince empty failed: %v", err)
	}
	if total != 0 {
		t.Errorf("empty total: got %v, want 0", total)
	}
}
