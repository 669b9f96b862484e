package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/petshop-storefront/internal/cache"
	"github.com/yungbote/petshop-storefront/internal/cartstore"
	"github.com/yungbote/petshop-storefront/internal/clients/cartapi"
	"github.com/yungbote/petshop-storefront/internal/config"
	"github.com/yungbote/petshop-storefront/internal/envutil"
	"github.com/yungbote/petshop-storefront/internal/handlers"
	"github.com/yungbote/petshop-storefront/internal/logger"
	"github.com/yungbote/petshop-storefront/internal/server"
	"github.com/yungbote/petshop-storefront/internal/session"
	"github.com/yungbote/petshop-storefront/internal/stock"
	"github.com/yungbote/petshop-storefront/internal/syncer"
	"github.com/yungbote/petshop-storefront/internal/types"
)

func main() {
	// Config
	cfg, err := config.Load(envutil.Str("CONFIG_PATH", "storefront.yaml"))
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Logger
	log, err := logger.New(cfg.LogMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Catalog + stock ledger
	log.Info("Loading catalog...", "path", cfg.CatalogPath)
	products, err := stock.LoadCatalog(cfg.CatalogPath)
	if err != nil {
		log.Warn("Catalog load failed, starting with empty ledger", "error", err)
		products = []types.Product{}
	}
	ledger := stock.NewLedger(products, log)

	// Persistent cart cache
	sessionID := envutil.Str("SESSION_ID", uuid.NewString())
	log.Info("Opening cart cache...", "backend", cfg.Cache.Backend, "session_id", sessionID)
	cacheStore, err := openCache(cfg.Cache, sessionID, log)
	if err != nil {
		log.Warn("Cart cache unavailable, falling back to in-memory", "error", err)
		cacheStore = cache.NewMemory()
	}

	// Session + cart store
	sessions := session.NewStore(log)
	if tok := envutil.Str("SESSION_TOKEN", ""); tok != "" {
		sessions.Set(types.Credential{Token: tok})
	}
	store := cartstore.New(log)

	// Remote cart client
	api := cartapi.NewClient(
		cfg.Backend.BaseURL,
		time.Duration(cfg.Backend.TimeoutSeconds)*time.Second,
		sessions.Token,
		sessions.Clear,
		log,
	)

	// Coordinator
	coordinator := syncer.NewCoordinator(store, ledger, cacheStore, sessions, api, products, log)
	hydrated := coordinator.Hydrate(context.Background())
	log.Info("Cart hydrated", "mode", hydrated.Mode.String(), "items", len(hydrated.State.Items))

	// HTTP surface
	router := server.NewRouter(server.RouterConfig{
		CartHandler:    handlers.NewCartHandler(coordinator, ledger, log),
		SessionHandler: handlers.NewSessionHandler(sessions, coordinator, log),
		CatalogHandler: handlers.NewCatalogHandler(products, log),
	})

	log.Info("Listening...", "addr", cfg.ListenAddr)
	if err := router.Run(cfg.ListenAddr); err != nil {
		log.Fatal("Server stopped", "error", err)
	}
}

func openCache(cfg config.Cache, sessionID string, log *logger.Logger) (cache.Store, error) {
	switch cfg.Backend {
	case "redis":
		return cache.NewRedis(cache.RedisOptions{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		}, sessionID, log)
	case "postgres":
		return cache.NewPostgres(cfg.PostgresDSN, sessionID, log)
	default:
		return cache.NewSQLite(cfg.SQLitePath, sessionID, log)
	}
}
