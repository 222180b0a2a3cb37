// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration.
//
// WAFFLE's CoreConfig handles framework-level settings like:
//   - HTTP/HTTPS ports and TLS configuration
//   - Logging level and format
//   - Request body size limits
//   - Database connection timeouts
//
// AppConfig is where everything specific to AdminHub lives: the MongoDB
// connection, bearer-token signing, file storage for module logos and
// product bundles, Google sign-in, and the super-admin bootstrap.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connection pool size
	MongoMinPoolSize uint64 // Min connection pool size

	// Bearer-token auth
	AuthSecret   string        // HS256 signing secret (must be strong in production)
	AuthTokenTTL time.Duration // Access token lifetime

	// CORS
	CORSAllowedOrigins []string // Origins allowed to call the API (console hosts)

	// File storage configuration
	StorageLocalPath string // Local storage path (e.g., "./uploads")
	StorageLocalURL  string // URL prefix for serving stored files (e.g., "/files")

	// Schema migrations
	MigrationsPath string // Directory of NNN_name.json migration files (blank disables)

	// Google OAuth (POST /api/auth/google)
	GoogleClientID     string
	GoogleClientSecret string

	// Base URL for links in outbound responses (request OTP delivery, etc.)
	BaseURL string

	// SuperAdmin bootstrap: ensures this account exists on startup.
	SuperAdminEmail    string
	SuperAdminName     string
	SuperAdminPassword string
}
