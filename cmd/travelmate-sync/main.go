// Command travelmate-sync runs a single synchronization pass against the
// TravelMate backend: replay any pending offline mutations, then refresh
// the locally cached trip list.
package main

import (
	"context"
	"time"

	"github.com/travelmate-app/travelmate-client/config"
	"github.com/travelmate-app/travelmate-client/errors"
	"github.com/travelmate-app/travelmate-client/internal/apiclient"
	"github.com/travelmate-app/travelmate-client/internal/offline"
	"github.com/travelmate-app/travelmate-client/internal/session"
	"github.com/travelmate-app/travelmate-client/logger"
)

func main() {
	// Initialize logger
	logger.InitLogger()
	log := logger.GetLogger()
	defer func() {
		_ = logger.Close()
	}()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	sessionStore, err := session.Open(cfg.Storage.SessionFile)
	if err != nil {
		log.Fatalf("Failed to open session store: %v", err)
	}
	if sessionStore.Token() == "" {
		log.Fatal("Not logged in: no access token in session store")
	}
	if sessionStore.TokenExpired(time.Now()) {
		log.Warn("Stored access token looks expired, the backend may reject this sync")
	}

	cache, err := offline.Open(cfg.Storage.CacheFile)
	if err != nil {
		log.Fatalf("Failed to open offline cache: %v", err)
	}

	requestTimeout := time.Duration(cfg.API.TimeoutSeconds) * time.Second
	client := apiclient.NewClient(cfg.API.BaseURL, sessionStore,
		apiclient.WithTimeout(requestTimeout))
	replayer := offline.NewReplayer(cache, offline.NewClientDispatcher(client))

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout*10)
	defer cancel()

	result, err := replayer.Replay(ctx)
	if err != nil {
		log.Fatalf("Replay failed: %v", err)
	}
	log.Infow("Pending action replay complete",
		"replayed", result.Replayed,
		"dropped", result.Dropped,
		"remaining", result.Remaining)

	trips, err := client.ListTrips(ctx)
	if err != nil {
		if errors.IsConnectivity(err) {
			cached := cache.CachedTrips()
			log.Warnw("Backend unreachable, serving cached trips",
				"cached", len(cached))
			return
		}
		log.Fatalf("Failed to list trips: %v", err)
	}

	if err := cache.CacheTrips(trips); err != nil {
		log.Fatalf("Failed to cache trips: %v", err)
	}

	lastSync, _ := cache.LastSync()
	log.Infow("Trip list refreshed",
		"trips", len(trips),
		"last_sync", lastSync.Format(time.RFC3339))
}
