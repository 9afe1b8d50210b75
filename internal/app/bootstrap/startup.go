// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"errors"
	"fmt"

	adminstore "github.com/dalemusser/mediateam/internal/app/store/admins"
	notificationstore "github.com/dalemusser/mediateam/internal/app/store/notifications"
	rolestore "github.com/dalemusser/mediateam/internal/app/store/roles"
	"github.com/dalemusser/mediateam/internal/app/system/authutil"
	"github.com/dalemusser/mediateam/internal/app/system/respond"
	"github.com/dalemusser/mediateam/internal/app/system/workers"
	"github.com/dalemusser/mediateam/internal/domain/models"
	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Startup runs one-time initialization after schema setup and before the
// handler is built: seed data, response settings, background workers.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	respond.Configure(appCfg.ExposeErrors)

	if appCfg.AdminEmail != "" && appCfg.AdminPassword != "" {
		if err := ensureAdmin(ctx, deps.MongoDatabase, appCfg.AdminName, appCfg.AdminEmail, appCfg.AdminPassword, logger); err != nil {
			return err
		}
	}

	if appCfg.SeedDefaultRoles {
		n, err := rolestore.New(deps.MongoDatabase).EnsureDefaults(ctx, defaultRoles)
		if err != nil {
			return fmt.Errorf("seed default roles: %w", err)
		}
		if n > 0 {
			logger.Info("seeded default roles", zap.Int("created", n))
		}
	}

	cleanup, err := workers.NewNotificationCleanup(
		notificationstore.New(deps.MongoDatabase), logger,
		appCfg.NotificationCleanupSchedule, appCfg.Retention())
	if err != nil {
		return err
	}
	if err := cleanup.Start(); err != nil {
		return fmt.Errorf("start notification cleanup: %w", err)
	}
	deps.Runtime.setCleanup(cleanup)
	return nil
}

// ensureAdmin creates the bootstrap administrator if no admin has that
// email. An existing account is left as is, password included.
func ensureAdmin(ctx context.Context, db *mongo.Database, name, email, password string, logger *zap.Logger) error {
	admins := adminstore.New(db)

	existing, err := admins.GetByEmail(ctx, email)
	switch {
	case err == nil:
		if existing.Status != adminstore.StatusActive {
			logger.Warn("bootstrap admin exists but is not active", zap.String("email", existing.Email))
		}
		return nil
	case !errors.Is(err, adminstore.ErrNotFound):
		return fmt.Errorf("look up bootstrap admin: %w", err)
	}

	hash, err := authutil.HashPassword(password)
	if err != nil {
		return fmt.Errorf("bootstrap admin password: %w", err)
	}
	a, err := admins.Create(ctx, models.Admin{FullName: name, Email: email, PasswordHash: hash})
	if errors.Is(err, adminstore.ErrDuplicateEmail) {
		// another instance created it first
		return nil
	}
	if err != nil {
		return fmt.Errorf("create bootstrap admin: %w", err)
	}
	logger.Info("created bootstrap admin", zap.String("email", a.Email), zap.String("admin_id", a.ID.Hex()))
	return nil
}
