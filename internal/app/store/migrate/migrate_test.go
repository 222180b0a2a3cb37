package migrate

import (
	"testing"
	"testing/fstest"

	"github.com/gashatech/adminhub/internal/testutil"
	"go.uber.org/zap"
)

func TestLoadCommand_PreservesKeyOrder(t *testing.T) {
	fsys := fstest.MapFS{
		"001_create_modules.json": {
			Data: []byte(`{"create": "modules", "comment": "initial collection"}`),
		},
	}

	cmd, err := loadCommand(fsys, "001_create_modules.json")
	if err != nil {
		t.Fatalf("loadCommand failed: %v", err)
	}

	// The command name must decode as the first key.
	if cmd[0].Key != "create" {
		t.Errorf("first key: got %q, want %q", cmd[0].Key, "create")
	}
	if cmd[0].Value != "modules" {
		t.Errorf("command value: got %v", cmd[0].Value)
	}
}

func TestLoadCommand_Errors(t *testing.T) {
	fsys := fstest.MapFS{
		"001_bad.json":   {Data: []byte(`not json`)},
		"002_empty.json": {Data: []byte(`{}`)},
	}

	if _, err := loadCommand(fsys, "001_bad.json"); err == nil {
		t.Error("expected error for malformed JSON")
	}
	if _, err := loadCommand(fsys, "002_empty.json"); err == nil {
		t.Error("expected error for empty command document")
	}
	if _, err := loadCommand(fsys, "003_missing.json"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestRun_AppliesOnceInOrder(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fsys := fstest.MapFS{
		"002_create_products.json": {Data: []byte(`{"create": "products"}`)},
		"001_create_modules.json":  {Data: []byte(`{"create": "modules"}`)},
	}

	applied, err := Run(ctx, db, fsys, zap.NewNop())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if applied != 2 {
		t.Errorf("applied: got %d, want 2", applied)
	}

	// A second run has nothing left to do.
	applied, err = Run(ctx, db, fsys, zap.NewNop())
	if err != nil {
		t.Fatalf("second Run failed: %v", err)
	}
	if applied != 0 {
		t.Errorf("second run applied: got %d, want 0", applied)
	}

	pending, err := Pending(ctx, db, fsys)
	if err != nil {
		t.Fatalf("Pending failed: %v", err)
	}
	if len(pending) != 0 {
		t.Errorf("pending after run: got %v", pending)
	}
}

func TestRun_AbortsOnFailure(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fsys := fstest.MapFS{
		"001_create_ok.json": {Data: []byte(`{"create": "first"}`)},
		"002_bogus.json":     {Data: []byte(`{"notARealCommand": 1}`)},
		"003_never_runs.json": {
			Data: []byte(`{"create": "unreachable"}`),
		},
	}

	applied, err := Run(ctx, db, fsys, zap.NewNop())
	if err == nil {
		t.Fatal("expected Run to fail on the bogus command")
	}
	if applied != 1 {
		t.Errorf("applied before failure: got %d, want 1", applied)
	}

	// The failed and subsequent migrations remain pending.
	pending, err := Pending(ctx, db, fsys)
	if err != nil {
		t.Fatalf("Pending failed: %v", err)
	}
	if len(pending) != 2 {
		t.Errorf("pending: got %v, want 2 entries", pending)
	}
}
