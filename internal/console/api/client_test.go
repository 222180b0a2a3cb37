package api_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gashatech/adminhub/internal/console/api"
	"go.uber.org/zap"
)

func TestDo_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"data":{"name":"gasha-erp"}}`))
	}))
	defer srv.Close()

	c := api.New(srv.URL, api.NewMemoryTokenStore(), zap.NewNop())
	env := c.Do(context.Background(), "GET", "/api/modules", nil)

	if !env.Success {
		t.Fatalf("expected success, got error %q", env.Error)
	}
	if !strings.Contains(string(env.Data), "gasha-erp") {
		t.Errorf("data: got %s", env.Data)
	}
}

func TestDo_ServerErrorKeepsMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"success":false,"error":"a module with this name already exists"}`))
	}))
	defer srv.Close()

	c := api.New(srv.URL, api.NewMemoryTokenStore(), zap.NewNop())
	env := c.Do(context.Background(), "POST", "/api/modules", map[string]string{"display_name": "X"})

	if env.Success {
		t.Fatal("expected failure")
	}
	if env.Error != "a module with this name already exists" {
		t.Errorf("error: got %q", env.Error)
	}
}

func TestDo_TransportFailure(t *testing.T) {
	// Point at a closed server: the envelope must still come back.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := api.New(srv.URL, api.NewMemoryTokenStore(), zap.NewNop())
	env := c.Do(context.Background(), "GET", "/api/modules", nil)

	if env.Success {
		t.Fatal("expected failure")
	}
	if !strings.Contains(env.Error, "network error") {
		t.Errorf("error: got %q", env.Error)
	}
}

func TestDo_UnparseableBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>gateway error</html>"))
	}))
	defer srv.Close()

	c := api.New(srv.URL, api.NewMemoryTokenStore(), zap.NewNop())
	env := c.Do(context.Background(), "GET", "/api/modules", nil)

	if env.Success {
		t.Fatal("expected failure")
	}
	if !strings.Contains(env.Error, "network error") {
		t.Errorf("error: got %q", env.Error)
	}
}

func TestDo_SendsBearerToken(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	c := api.New(srv.URL, api.NewMemoryTokenStore(), zap.NewNop())
	c.SetToken("tok-123")
	c.Do(context.Background(), "GET", "/api/auth/me", nil)

	if got != "Bearer tok-123" {
		t.Errorf("authorization header: got %q", got)
	}
}

func TestFileTokenStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "token")
	store := api.NewFileTokenStore(path)

	if tok, err := store.Load(); err != nil || tok != "" {
		t.Fatalf("empty load: got %q, %v", tok, err)
	}

	if err := store.Save("tok-456"); err != nil {
		t.Fatalf("save: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("token file mode: got %v", info.Mode().Perm())
	}

	tok, err := store.Load()
	if err != nil || tok != "tok-456" {
		t.Fatalf("load: got %q, %v", tok, err)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if tok, _ := store.Load(); tok != "" {
		t.Errorf("token survived clear: %q", tok)
	}
}

func TestNew_SeedsTokenFromStore(t *testing.T) {
	store := api.NewMemoryTokenStore()
	if err := store.Save("persisted"); err != nil {
		t.Fatalf("save: %v", err)
	}

	c := api.New("http://localhost:0", store, zap.NewNop())
	if c.Token() != "persisted" {
		t.Errorf("token: got %q, want persisted", c.Token())
	}
}
