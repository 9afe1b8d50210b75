// internal/app/bootstrap/config.go
package bootstrap

import (
	"errors"
	"fmt"
	"time"

	"github.com/dalemusser/mediateam/internal/app/system/auditlog"
	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// minProdSecret is the shortest jwt_secret accepted in prod.
const minProdSecret = 32

// appConfigKeys defines the configuration keys for the media team API.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, jwt_secret, etc.
//   - Environment variables: MEDIATEAM_MONGO_URI, MEDIATEAM_JWT_SECRET, etc.
//   - Command-line flags: --mongo_uri, --jwt_secret, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "mediateam", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size"},
	{Name: "mongo_min_pool_size", Default: 5, Desc: "MongoDB min connection pool size"},

	// Tokens
	{Name: "jwt_secret", Default: "", Desc: "HMAC secret for signing bearer tokens (required)"},
	{Name: "jwt_issuer", Default: "mediateam", Desc: "Issuer claim written to and required on tokens"},
	{Name: "jwt_ttl", Default: "24h", Desc: "Token lifetime (e.g., 24h, 90m)"},

	// Bootstrap admin
	{Name: "admin_email", Default: "", Desc: "Email of the bootstrap administrator"},
	{Name: "admin_password", Default: "", Desc: "Password for the bootstrap administrator"},
	{Name: "admin_name", Default: "Administrator", Desc: "Display name for the bootstrap administrator"},

	// Notifications
	{Name: "notification_retention_days", Default: 30, Desc: "Read notifications older than this many days are deleted"},
	{Name: "notification_cleanup_schedule", Default: "@daily", Desc: "Cron schedule for the notification retention sweep"},

	// Rate limits
	{Name: "rate_limit_login", Default: 10, Desc: "Login attempts per minute per IP"},
	{Name: "rate_limit_submissions", Default: 5, Desc: "Application submissions per minute per IP"},

	{Name: "expose_errors", Default: false, Desc: "Return internal error messages in 500 responses"},
	{Name: "seed_default_roles", Default: true, Desc: "Create the standard team roles on startup"},
	{Name: "activity_log_mode", Default: "all", Desc: "Admin activity logging: 'all' (db+log), 'db', 'log', or 'off'"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// Precedence is flags > env > files > defaults, as resolved by
// config.LoadWithAppConfig.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "MEDIATEAM", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		JWTSecret: appValues.String("jwt_secret"),
		JWTIssuer: appValues.String("jwt_issuer"),
		JWTTTL:    appValues.Duration("jwt_ttl", 24*time.Hour),

		AdminEmail:    appValues.String("admin_email"),
		AdminPassword: appValues.String("admin_password"),
		AdminName:     appValues.String("admin_name"),

		NotificationRetentionDays:   appValues.Int("notification_retention_days"),
		NotificationCleanupSchedule: appValues.String("notification_cleanup_schedule"),

		RateLimitLogin:       appValues.Int("rate_limit_login"),
		RateLimitSubmissions: appValues.Int("rate_limit_submissions"),

		ExposeErrors:     appValues.Bool("expose_errors"),
		SeedDefaultRoles: appValues.Bool("seed_default_roles"),
		ActivityLogMode:  appValues.String("activity_log_mode"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig rejects configurations that would fail later at runtime.
// Every problem is reported, not just the first.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	env := ""
	if coreCfg != nil {
		env = coreCfg.Env
	}
	err := validate(env, appCfg)
	if err != nil {
		logger.Error("invalid configuration", zap.Error(err))
	}
	return err
}

func validate(env string, appCfg AppConfig) error {
	var errs []error

	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		errs = append(errs, fmt.Errorf("invalid MongoDB URI: %w", err))
	}
	if appCfg.MongoDatabase == "" {
		errs = append(errs, errors.New("mongo_database is required"))
	}

	switch {
	case appCfg.JWTSecret == "":
		errs = append(errs, errors.New("jwt_secret is required"))
	case env == "prod" && len(appCfg.JWTSecret) < minProdSecret:
		errs = append(errs, fmt.Errorf("jwt_secret must be at least %d bytes in prod", minProdSecret))
	}
	if appCfg.JWTTTL <= 0 {
		errs = append(errs, errors.New("jwt_ttl must be positive"))
	}

	if (appCfg.AdminEmail == "") != (appCfg.AdminPassword == "") {
		errs = append(errs, errors.New("admin_email and admin_password must be set together"))
	}

	if appCfg.NotificationRetentionDays <= 0 {
		errs = append(errs, errors.New("notification_retention_days must be positive"))
	}
	if _, err := cron.ParseStandard(appCfg.NotificationCleanupSchedule); err != nil {
		errs = append(errs, fmt.Errorf("notification_cleanup_schedule: %w", err))
	}
	if appCfg.RateLimitLogin <= 0 || appCfg.RateLimitSubmissions <= 0 {
		errs = append(errs, errors.New("rate limits must be positive"))
	}

	switch appCfg.ActivityLogMode {
	case auditlog.ModeAll, auditlog.ModeDB, auditlog.ModeLog, auditlog.ModeOff:
	default:
		errs = append(errs, fmt.Errorf("activity_log_mode %q is not one of all, db, log, off", appCfg.ActivityLogMode))
	}

	return errors.Join(errs...)
}
