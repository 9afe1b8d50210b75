// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"sync"

	"github.com/dalemusser/mediateam/internal/app/system/workers"
	"go.mongodb.org/mongo-driver/mongo"
)

// DBDeps holds database/back-end dependencies for the app.
type DBDeps struct {
	MongoClient   *mongo.Client
	MongoDatabase *mongo.Database

	// Runtime is shared by pointer so Startup can hand background workers
	// to Shutdown through the by-value hook arguments.
	Runtime *Runtime
}

// Runtime holds the background workers started in Startup.
type Runtime struct {
	mu      sync.Mutex
	cleanup *workers.NotificationCleanup
}

func (rt *Runtime) setCleanup(w *workers.NotificationCleanup) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	rt.cleanup = w
}

func (rt *Runtime) stop() {
	if rt == nil {
		return
	}
	rt.mu.Lock()
	defer rt.mu.Unlock()
	if rt.cleanup != nil {
		rt.cleanup.Stop()
		rt.cleanup = nil
	}
}
