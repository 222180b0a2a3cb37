// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	analyticsfeature "github.com/gashatech/adminhub/internal/app/features/analytics"
	authfeature "github.com/gashatech/adminhub/internal/app/features/auth"
	contentfeature "github.com/gashatech/adminhub/internal/app/features/content"
	healthfeature "github.com/gashatech/adminhub/internal/app/features/health"
	modulesfeature "github.com/gashatech/adminhub/internal/app/features/modules"
	notificationsfeature "github.com/gashatech/adminhub/internal/app/features/notifications"
	productsfeature "github.com/gashatech/adminhub/internal/app/features/products"
	requestsfeature "github.com/gashatech/adminhub/internal/app/features/requests"
	tasksfeature "github.com/gashatech/adminhub/internal/app/features/tasks"
	uploadsfeature "github.com/gashatech/adminhub/internal/app/features/uploads"
	usersfeature "github.com/gashatech/adminhub/internal/app/features/users"
	"github.com/gashatech/adminhub/internal/app/system/auth"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/storage"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. At this point you have access to:
//   - coreCfg: WAFFLE core configuration (ports, env, timeouts, etc.)
//   - appCfg: app-specific configuration defined in AppConfig
//   - deps: any DB or backend clients bundled in DBDeps
//   - logger: the fully configured zap.Logger for this app
//
// AdminHub serves a JSON API under /api. Every response uses the
// {success, data, message, error} envelope; the console depends on that
// shape never varying. Auth is a bearer token loaded once here, with
// per-route role checks applied inside each feature's Routes.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	db := deps.AdminHubMongoDatabase

	tokens := auth.NewTokenManager([]byte(appCfg.AuthSecret), appCfg.AuthTokenTTL)

	fileStore, err := storage.NewLocal(storage.LocalConfig{
		BasePath: appCfg.StorageLocalPath,
		BaseURL:  appCfg.StorageLocalURL,
	})
	if err != nil {
		logger.Error("local storage init failed", zap.Error(err))
		return nil, err
	}

	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   appCfg.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Global auth middleware: loads the bearer user into context when a
	// token is present. Whether a missing user matters is decided per
	// route by RequireSignedIn / RequireRole inside each feature.
	r.Use(tokens.LoadBearerUser)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.AdminHubMongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Stored files (module logos, product bundles) with pre-compressed
	// file support (gzip/brotli)
	r.Handle(appCfg.StorageLocalURL+"/*", fileserver.Handler(appCfg.StorageLocalURL, appCfg.StorageLocalPath))

	r.Route("/api", func(api chi.Router) {
		authHandler := authfeature.NewHandler(db, tokens, appCfg.GoogleClientID, appCfg.GoogleClientSecret, logger)
		api.Mount("/auth", authfeature.Routes(authHandler))

		usersHandler := usersfeature.NewHandler(db, logger)
		api.Mount("/users", usersfeature.Routes(usersHandler))

		modulesHandler := modulesfeature.NewHandler(db, logger)
		api.Mount("/modules", modulesfeature.Routes(modulesHandler))

		productsHandler := productsfeature.NewHandler(db, logger)
		api.Mount("/products", productsfeature.Routes(productsHandler))

		requestsHandler := requestsfeature.NewHandler(db, logger)
		api.Mount("/requests", requestsfeature.Routes(requestsHandler))
		api.Mount("/public/requests", requestsfeature.PublicRoutes(requestsHandler))

		analyticsHandler := analyticsfeature.NewHandler(db, logger)
		api.Mount("/analytics", analyticsfeature.Routes(analyticsHandler))

		contentHandler := contentfeature.NewHandler(db, logger)
		api.Mount("/content", contentfeature.Routes(contentHandler))

		tasksHandler := tasksfeature.NewHandler(db, logger)
		api.Mount("/tasks", tasksfeature.Routes(tasksHandler))

		notificationsHandler := notificationsfeature.NewHandler(db, logger)
		api.Mount("/notifications", notificationsfeature.Routes(notificationsHandler))

		uploadsHandler := uploadsfeature.NewHandler(fileStore, appCfg.StorageLocalURL, logger)
		api.Mount("/upload", uploadsfeature.Routes(uploadsHandler))
	})

	return r, nil
}
