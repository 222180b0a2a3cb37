package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gashatech/adminhub/internal/app/system/auth"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TestUser represents user data for testing HTTP handlers.
type TestUser struct {
	ID      string
	Name    string
	Email   string
	Role    string
	Modules []string
}

// SuperAdminUser returns a TestUser with super-admin role.
func SuperAdminUser() TestUser {
	return TestUser{
		ID:    primitive.NewObjectID().Hex(),
		Name:  "Test Super Admin",
		Email: "super@test.com",
		Role:  "super-admin",
	}
}

// AdminUser returns a TestUser with admin role assigned to the given modules.
func AdminUser(modules ...string) TestUser {
	return TestUser{
		ID:      primitive.NewObjectID().Hex(),
		Name:    "Test Admin",
		Email:   "admin@test.com",
		Role:    "admin",
		Modules: modules,
	}
}

// MarketingUser returns a TestUser with marketing role.
func MarketingUser(modules ...string) TestUser {
	return TestUser{
		ID:      primitive.NewObjectID().Hex(),
		Name:    "Test Marketer",
		Email:   "marketing@test.com",
		Role:    "marketing",
		Modules: modules,
	}
}

// WithUser adds a user to the request context for testing authenticated handlers.
// This bypasses the bearer-token middleware and injects the user directly.
func WithUser(r *http.Request, user TestUser) *http.Request {
	sessionUser := &auth.SessionUser{
		ID:      user.ID,
		Name:    user.Name,
		Email:   user.Email,
		Role:    user.Role,
		Modules: user.Modules,
	}
	return auth.WithTestUser(r, sessionUser)
}

// NewRequest creates an HTTP request for testing.
func NewRequest(method, target string) *http.Request {
	return httptest.NewRequest(method, target, nil)
}

// NewJSONRequest creates an HTTP request with a JSON-encoded body.
func NewJSONRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()

	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("failed to marshal request body: %v", err)
	}
	req := httptest.NewRequest(method, target, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// NewAuthenticatedRequest creates an HTTP request with a user in context.
func NewAuthenticatedRequest(method, target string, user TestUser) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	return WithUser(req, user)
}

// Envelope mirrors the API's JSON response envelope for decoding in tests.
type Envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Message string          `json:"message,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// DecodeEnvelope decodes a response body into an Envelope.
func DecodeEnvelope(t *testing.T, body io.Reader) Envelope {
	t.Helper()

	var env Envelope
	if err := json.NewDecoder(body).Decode(&env); err != nil {
		t.Fatalf("failed to decode response envelope: %v", err)
	}
	return env
}

// DecodeData decodes an envelope's data payload into out.
func DecodeData(t *testing.T, env Envelope, out any) {
	t.Helper()

	if err := json.Unmarshal(env.Data, out); err != nil {
		t.Fatalf("failed to decode envelope data: %v", err)
	}
}

// ResponseRecorder wraps httptest.ResponseRecorder with helper methods.
type ResponseRecorder struct {
	*httptest.ResponseRecorder
}

// NewRecorder creates a new ResponseRecorder.
func NewRecorder() *ResponseRecorder {
	return &ResponseRecorder{httptest.NewRecorder()}
}

// AssertStatus checks the response status code.
func (r *ResponseRecorder) AssertStatus(t interface{ Errorf(string, ...any) }, expected int) {
	if r.Code != expected {
		t.Errorf("status code: got %d, want %d", r.Code, expected)
	}
}

// AssertSuccess decodes the envelope and fails the test if success is false.
func (r *ResponseRecorder) AssertSuccess(t *testing.T) Envelope {
	t.Helper()

	env := DecodeEnvelope(t, r.Body)
	if !env.Success {
		t.Errorf("expected success envelope, got error: %q", env.Error)
	}
	return env
}

// AssertError decodes the envelope and fails the test if success is true.
func (r *ResponseRecorder) AssertError(t *testing.T) Envelope {
	t.Helper()

	env := DecodeEnvelope(t, r.Body)
	if env.Success {
		t.Errorf("expected error envelope, got success")
	}
	return env
}
