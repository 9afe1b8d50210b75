// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables (MEDIATEAM_*), configuration
// files, or command-line flags (loaded in LoadConfig). Ports, TLS, log level
// and CORS belong to WAFFLE's CoreConfig and are not repeated here.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string
	MongoDatabase    string
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Bearer token signing
	JWTSecret string
	JWTIssuer string
	JWTTTL    time.Duration

	// Bootstrap administrator, created on startup when email and password are set
	AdminEmail    string
	AdminPassword string
	AdminName     string

	// Notifications
	NotificationRetentionDays   int
	NotificationCleanupSchedule string // cron spec or descriptor, e.g. "@daily"

	// Requests per minute per client IP
	RateLimitLogin       int
	RateLimitSubmissions int

	ExposeErrors     bool   // include internal error text in 500 responses
	SeedDefaultRoles bool   // create the standard team roles on startup
	ActivityLogMode  string // all | db | log | off
}

// Retention returns the notification retention window as a duration.
func (c AppConfig) Retention() time.Duration {
	return time.Duration(c.NotificationRetentionDays) * 24 * time.Hour
}
