package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gashatech/adminhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateModule creates a test module with the given display name. The
// slug is derived the same way the store derives it.
func (f *Fixtures) CreateModule(ctx context.Context, displayName, slug string) models.Module {
	f.t.Helper()

	now := time.Now().UTC()
	mod := models.Module{
		ID:          primitive.NewObjectID(),
		Name:        slug,
		DisplayName: displayName,
		Description: "Test module description",
		Status:      "active",
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	_, err := f.db.Collection("modules").InsertOne(ctx, mod)
	if err != nil {
		f.t.Fatalf("failed to create test module: %v", err)
	}

	return mod
}

// CreateUser creates a test user with the given parameters. Non-super-admin
// roles should be given at least one module slug.
func (f *Fixtures) CreateUser(ctx context.Context, fullName, email, role string, modules []string) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	user := models.User{
		ID:         primitive.NewObjectID(),
		FullName:   fullName,
		FullNameCI: text.Fold(fullName),
		Email:      email,
		Role:       role,
		Modules:    modules,
		Status:     "active",
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	_, err := f.db.Collection("users").InsertOne(ctx, user)
	if err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}

	return user
}

// CreateSuperAdmin creates a test super-admin user.
func (f *Fixtures) CreateSuperAdmin(ctx context.Context, fullName, email string) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, fullName, email, "super-admin", nil)
}

// CreateAdmin creates a test admin user assigned to the given modules.
func (f *Fixtures) CreateAdmin(ctx context.Context, fullName, email string, modules []string) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, fullName, email, "admin", modules)
}

// CreateInactiveUser creates a test user with inactive status.
func (f *Fixtures) CreateInactiveUser(ctx context.Context, fullName, email string) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	user := models.User{
		ID:         primitive.NewObjectID(),
		FullName:   fullName,
		FullNameCI: text.Fold(fullName),
		Email:      email,
		Role:       "admin",
		Modules:    []string{"gasha-erp"},
		Status:     "inactive",
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	_, err := f.db.Collection("users").InsertOne(ctx, user)
	if err != nil {
		f.t.Fatalf("failed to create inactive test user: %v", err)
	}

	return user
}

// CreateProduct creates a test product in the given module.
func (f *Fixtures) CreateProduct(ctx context.Context, name, category, moduleSlug string) models.Product {
	f.t.Helper()

	now := time.Now().UTC()
	prod := models.Product{
		ID:              primitive.NewObjectID(),
		Name:            name,
		NameCI:          text.Fold(name),
		Category:        category,
		Description:     "Test product description",
		Module:          moduleSlug,
		DownloadEnabled: true,
		RequestEnabled:  true,
		CatalogVisible:  true,
		Status:          "active",
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	_, err := f.db.Collection("products").InsertOne(ctx, prod)
	if err != nil {
		f.t.Fatalf("failed to create test product: %v", err)
	}

	return prod
}

// CreateRequest creates a pending download request for the given product.
func (f *Fixtures) CreateRequest(ctx context.Context, productName, fullName, email string) models.DownloadRequest {
	f.t.Helper()

	now := time.Now().UTC()
	req := models.DownloadRequest{
		ID:          primitive.NewObjectID(),
		ProductName: productName,
		FullName:    fullName,
		Email:       email,
		Platform:    "windows",
		OTP:         "TESTOTP1",
		Status:      "pending",
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	_, err := f.db.Collection("download_requests").InsertOne(ctx, req)
	if err != nil {
		f.t.Fatalf("failed to create test request: %v", err)
	}

	return req
}

// RecordMetric appends a test metric sample.
func (f *Fixtures) RecordMetric(ctx context.Context, name, module string, value float64) models.Metric {
	f.t.Helper()

	m := models.Metric{
		ID:         primitive.NewObjectID(),
		Name:       name,
		Value:      value,
		Kind:       "counter",
		Module:     module,
		RecordedAt: time.Now().UTC(),
	}

	_, err := f.db.Collection("metrics").InsertOne(ctx, m)
	if err != nil {
		f.t.Fatalf("failed to record test metric: %v", err)
	}

	return m
}
