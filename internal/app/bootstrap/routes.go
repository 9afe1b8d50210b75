// internal/app/bootstrap/routes.go
package bootstrap

import (
	"fmt"
	"net/http"
	"time"

	activityfeature "github.com/dalemusser/mediateam/internal/app/features/activity"
	analyticsfeature "github.com/dalemusser/mediateam/internal/app/features/analytics"
	eventsfeature "github.com/dalemusser/mediateam/internal/app/features/events"
	healthfeature "github.com/dalemusser/mediateam/internal/app/features/health"
	loginfeature "github.com/dalemusser/mediateam/internal/app/features/login"
	minutesfeature "github.com/dalemusser/mediateam/internal/app/features/minutes"
	notificationsfeature "github.com/dalemusser/mediateam/internal/app/features/notifications"
	reportsfeature "github.com/dalemusser/mediateam/internal/app/features/reports"
	rolesfeature "github.com/dalemusser/mediateam/internal/app/features/roles"
	submissionsfeature "github.com/dalemusser/mediateam/internal/app/features/submissions"
	usersfeature "github.com/dalemusser/mediateam/internal/app/features/users"
	activitystore "github.com/dalemusser/mediateam/internal/app/store/activity"
	adminstore "github.com/dalemusser/mediateam/internal/app/store/admins"
	notificationstore "github.com/dalemusser/mediateam/internal/app/store/notifications"
	userrolestore "github.com/dalemusser/mediateam/internal/app/store/userroles"
	userstore "github.com/dalemusser/mediateam/internal/app/store/users"
	"github.com/dalemusser/mediateam/internal/app/system/auditlog"
	"github.com/dalemusser/mediateam/internal/app/system/auth"
	"github.com/dalemusser/mediateam/internal/app/system/authz"
	"github.com/dalemusser/mediateam/internal/app/system/limits"
	"github.com/dalemusser/mediateam/internal/app/system/metrics"
	"github.com/dalemusser/mediateam/internal/app/system/notify"
	"github.com/dalemusser/mediateam/internal/app/system/respond"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/unrolled/secure"
	"go.uber.org/zap"
)

// requestTimeout bounds a whole request; handlers use shorter per-call
// timeouts from system/timeouts.
const requestTimeout = 60 * time.Second

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// Startup have completed. Shared services (token verifier, permission
// checker, notification dispatcher, activity logger) are built once here
// and injected into each feature handler.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	env := ""
	if coreCfg != nil {
		env = coreCfg.Env
	}
	return buildRouter(env, appCfg, deps, logger)
}

func buildRouter(env string, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	db := deps.MongoDatabase

	tokens, err := auth.NewTokens(appCfg.JWTSecret, appCfg.JWTIssuer, appCfg.JWTTTL)
	if err != nil {
		logger.Error("token issuer init failed", zap.Error(err))
		return nil, fmt.Errorf("token issuer: %w", err)
	}
	accounts := loginfeature.Accounts{Users: userstore.New(db), Admins: adminstore.New(db)}
	mw := auth.NewMiddleware(tokens, accounts, logger)
	checker := authz.NewChecker(userrolestore.New(db), logger)
	dispatcher := notify.New(notificationstore.New(db))
	activity := auditlog.New(activitystore.New(db), logger, auditlog.Config{Mode: appCfg.ActivityLogMode})

	loginLimit := httprate.LimitByIP(appCfg.RateLimitLogin, time.Minute)
	submitLimit := httprate.LimitByIP(appCfg.RateLimitSubmissions, time.Minute)

	headers := secure.New(secure.Options{
		FrameDeny:             true,
		ContentTypeNosniff:    true,
		ReferrerPolicy:        "no-referrer",
		ContentSecurityPolicy: "default-src 'none'; frame-ancestors 'none'",
		SSLProxyHeaders:       map[string]string{"X-Forwarded-Proto": "https"},
		IsDevelopment:         env == "dev",
	})

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(headers.Handler)
	r.Use(metrics.Instrument)
	r.Use(middleware.Timeout(requestTimeout))

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		respond.NotFound(w, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		respond.Fail(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	// Health check endpoint for load balancers and orchestrators
	r.Mount("/health", healthfeature.Routes(healthfeature.NewHandler(deps.MongoClient, logger)))
	r.Handle("/metrics", metrics.Handler())

	r.Route("/api", func(api chi.Router) {
		api.Use(limits.Body(limits.MaxContentBody))
		small := api.With(limits.Body(limits.MaxJSONBody))

		// Authentication
		loginHandler := loginfeature.NewHandler(db, tokens, activity, logger)
		small.Mount("/auth", loginfeature.Routes(loginHandler, mw, loginLimit))

		// Applications (public create, admin review)
		submissionsHandler := submissionsfeature.NewHandler(db, dispatcher, activity, logger)
		small.Mount("/submissions", submissionsfeature.Routes(submissionsHandler, mw, submitLimit))

		// People and roles
		usersHandler := usersfeature.NewHandler(db, checker, activity, logger)
		api.Mount("/users", usersfeature.Routes(usersHandler, mw))

		rolesHandler := rolesfeature.NewHandler(db, dispatcher, activity, logger)
		api.Mount("/roles", rolesfeature.Routes(rolesHandler, mw))

		notificationsHandler := notificationsfeature.NewHandler(db, appCfg.NotificationRetentionDays, logger)
		api.Mount("/notifications", notificationsfeature.Routes(notificationsHandler, mw))

		// Permission-gated team content
		eventsHandler := eventsfeature.NewHandler(db, dispatcher, activity, logger)
		api.Mount("/events", eventsfeature.Routes(eventsHandler, mw, checker))

		minutesHandler := minutesfeature.NewHandler(db, dispatcher, logger)
		api.Mount("/minutes", minutesfeature.Routes(minutesHandler, mw, checker))

		// Admin reporting
		activityHandler := activityfeature.NewHandler(db, logger)
		api.Mount("/activity", activityfeature.Routes(activityHandler, mw))

		analyticsHandler := analyticsfeature.NewHandler(db, logger)
		api.Mount("/analytics", analyticsfeature.Routes(analyticsHandler, mw))

		reportsHandler := reportsfeature.NewHandler(db, logger)
		api.Mount("/reports", reportsfeature.Routes(reportsHandler, mw))
	})

	return r, nil
}
