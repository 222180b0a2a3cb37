package services_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gashatech/adminhub/internal/console/api"
	"github.com/gashatech/adminhub/internal/console/services"
	"go.uber.org/zap"
)

func newClient(t *testing.T, handler http.Handler) *api.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return api.New(srv.URL, api.NewMemoryTokenStore(), zap.NewNop())
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write([]byte(body))
}

func TestModules_List_NormalizesRawID(t *testing.T) {
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"success":true,"data":{"modules":[
			{"id":"aaa111","name":"gasha-erp","display_name":"Gasha ERP","status":"active"},
			{"_id":"bbb222","name":"nisir-av","display_name":"Nisir AV","status":"active"}
		],"total":2}}`)
	}))

	list := services.NewModules(c).List(context.Background())
	if !list.Success {
		t.Fatalf("list failed: %s", list.Error)
	}
	if len(list.Modules) != 2 {
		t.Fatalf("modules: got %d", len(list.Modules))
	}
	if list.Modules[0].ID != "aaa111" || list.Modules[1].ID != "bbb222" {
		t.Errorf("canonical ids: got %q, %q", list.Modules[0].ID, list.Modules[1].ID)
	}
}

func TestModules_List_PagesThroughFullCollection(t *testing.T) {
	const total = 250
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

		end := offset + limit
		if end > total {
			end = total
		}
		rows := make([]map[string]any, 0, end-offset)
		for i := offset; i < end; i++ {
			rows = append(rows, map[string]any{
				"id":   fmt.Sprintf("m%03d", i),
				"name": fmt.Sprintf("module-%03d", i),
			})
		}
		data, _ := json.Marshal(map[string]any{"modules": rows, "total": total})
		writeJSON(w, http.StatusOK, `{"success":true,"data":`+string(data)+`}`)
	}))

	list := services.NewModules(c).List(context.Background())
	if !list.Success {
		t.Fatalf("list failed: %s", list.Error)
	}
	if len(list.Modules) != total {
		t.Fatalf("modules: got %d, want %d", len(list.Modules), total)
	}
	if list.Modules[249].ID != "m249" {
		t.Errorf("last module: got %q", list.Modules[249].ID)
	}
}

func TestModules_Delete_RequiresID(t *testing.T) {
	called := false
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	res := services.NewModules(c).Delete(context.Background(), "")
	if res.Success || res.Error == "" {
		t.Fatalf("expected failure, got %+v", res)
	}
	if called {
		t.Error("empty id still reached the network")
	}
}

func TestProducts_GetByModule_PreservesOrder(t *testing.T) {
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"success":true,"data":{"products":[
			{"id":"p1","name":"Scanner","module":"gasha"},
			{"id":"p2","name":"Firewall","module":"nisir"},
			{"id":"p3","name":"Agent","module":"gasha"},
			{"id":"p4","name":"Console","module":"gasha"}
		],"total":4}}`)
	}))

	list := services.NewProducts(c).GetByModule(context.Background(), "gasha")
	if !list.Success {
		t.Fatalf("get by module failed: %s", list.Error)
	}
	got := make([]string, 0, len(list.Products))
	for _, p := range list.Products {
		got = append(got, p.ID)
	}
	if strings.Join(got, ",") != "p1,p3,p4" {
		t.Errorf("products: got %v", got)
	}
}

func TestUsers_SetStatus_SendsOnlyStatus(t *testing.T) {
	var method, path string
	var body map[string]any
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method, path = r.Method, r.URL.Path
		json.NewDecoder(r.Body).Decode(&body)
		writeJSON(w, http.StatusOK, `{"success":true,"data":{"id":"u1","status":"inactive"}}`)
	}))

	res := services.NewUsers(c).SetStatus(context.Background(), "u1", "inactive")
	if !res.Success {
		t.Fatalf("set status failed: %s", res.Error)
	}
	if method != http.MethodPut || path != "/api/users/u1" {
		t.Errorf("request: got %s %s", method, path)
	}
	if len(body) != 1 || body["status"] != "inactive" {
		t.Errorf("body: got %v", body)
	}
	if res.User.Status != "inactive" {
		t.Errorf("status: got %q", res.User.Status)
	}
}

func TestUsers_Create_KeepsServerError(t *testing.T) {
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusConflict, `{"success":false,"error":"a user with this email already exists"}`)
	}))

	res := services.NewUsers(c).Create(context.Background(), services.UserInput{
		FullName: "Abel T",
		Email:    "abel@gashatech.com",
		Password: "longenough",
		Role:     "admin",
		Modules:  []string{"gasha"},
	})
	if res.Success {
		t.Fatal("expected failure")
	}
	if res.Error != "a user with this email already exists" {
		t.Errorf("error: got %q", res.Error)
	}
}

func TestStats_Summary(t *testing.T) {
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/analytics/summary" {
			t.Errorf("path: got %s", r.URL.Path)
		}
		writeJSON(w, http.StatusOK, `{"success":true,"data":{
			"users":4,"modules":2,"products":7,
			"requests":{"pending":3,"completed":5},
			"downloads_by_module":[{"module":"gasha","total":12}],
			"visits_last_30_days":88
		}}`)
	}))

	res := services.NewStats(c).Summary(context.Background())
	if !res.Success {
		t.Fatalf("summary failed: %s", res.Error)
	}
	if res.Summary.Users != 4 || res.Summary.Requests["completed"] != 5 {
		t.Errorf("summary: got %+v", res.Summary)
	}
	if len(res.Summary.DownloadsByModule) != 1 || res.Summary.DownloadsByModule[0].Total != 12 {
		t.Errorf("downloads: got %+v", res.Summary.DownloadsByModule)
	}
}

func TestStats_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()
	c := api.New(srv.URL, api.NewMemoryTokenStore(), zap.NewNop())

	res := services.NewStats(c).Requests(context.Background())
	if res.Success || res.Error == "" {
		t.Fatalf("expected failure with message, got %+v", res)
	}
}

func TestUpload_Logo(t *testing.T) {
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(8 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		if kind := r.FormValue("kind"); kind != "logo" {
			t.Errorf("kind field: got %q", kind)
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("file part: %v", err)
		}
		file.Close()
		if header.Filename != "logo.png" {
			t.Errorf("filename: got %q", header.Filename)
		}
		writeJSON(w, http.StatusCreated, `{"success":true,"data":{
			"path":"uploads/logo/2026/08/abc123-logo.png",
			"file_name":"logo.png","size":4,"content_type":"image/png",
			"url":"/files/uploads/logo/2026/08/abc123-logo.png"
		}}`)
	}))

	res := services.NewUpload(c).Logo(context.Background(), "logo.png", strings.NewReader("PNG!"))
	if !res.Success {
		t.Fatalf("upload failed: %s", res.Error)
	}
	if res.File.Path != "uploads/logo/2026/08/abc123-logo.png" {
		t.Errorf("path: got %q", res.File.Path)
	}
	if res.File.URL == "" {
		t.Error("url missing")
	}
}
