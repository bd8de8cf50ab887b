package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"guardian-vault-api/internal/bungie"
	"guardian-vault-api/internal/cache"
	"guardian-vault-api/internal/config"
	"guardian-vault-api/internal/handler"
	"guardian-vault-api/internal/model"
	"guardian-vault-api/internal/repository"
	"guardian-vault-api/internal/router"
	"guardian-vault-api/internal/service"
	"guardian-vault-api/internal/stores"

	_ "github.com/go-sql-driver/mysql"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("Starting Guardian Vault API...")

	// Load configuration
	cfg := config.MustLoad()
	log.Printf("Environment: %s", cfg.App.Environment)

	// Initialize annotation repository based on config
	var annotationRepo repository.AnnotationRepository
	switch cfg.AnnotationDB.Type {
	case "postgres", "postgresql":
		pgRepo, err := repository.NewPostgresAnnotationRepository(cfg.AnnotationDB.PostgresDSN())
		if err != nil {
			log.Fatalf("Failed to initialize PostgreSQL: %v", err)
		}
		defer pgRepo.Close()
		annotationRepo = pgRepo
		log.Println("PostgreSQL annotation repository initialized")
	default: // sqlite
		sqliteRepo, err := repository.NewSQLiteAnnotationRepository(cfg.AnnotationDB.Path)
		if err != nil {
			log.Fatalf("Failed to initialize SQLite: %v", err)
		}
		defer sqliteRepo.Close()
		annotationRepo = sqliteRepo
		log.Println("SQLite annotation repository initialized")
	}

	// Seen-items tracking shares the SQLite file
	seenRepo, err := repository.NewSQLiteSeenItemsRepository(cfg.AnnotationDB.Path)
	if err != nil {
		log.Fatalf("Failed to initialize seen-items repository: %v", err)
	}
	defer seenRepo.Close()

	// Initialize MySQL connection for linked accounts (optional)
	var accountLinkRepo *repository.MySQLAccountLinkRepository
	mysqlDB, err := sql.Open("mysql", cfg.AccountDB.DSN())
	if err != nil {
		log.Printf("Warning: MySQL connection failed: %v", err)
	} else {
		mysqlDB.SetMaxOpenConns(10)
		mysqlDB.SetMaxIdleConns(5)
		mysqlDB.SetConnMaxLifetime(5 * time.Minute)

		if err := mysqlDB.Ping(); err != nil {
			log.Printf("Warning: MySQL ping failed: %v", err)
			mysqlDB.Close()
			mysqlDB = nil
		} else {
			accountLinkRepo = repository.NewMySQLAccountLinkRepository(mysqlDB)
			log.Println("MySQL account-link repository initialized")
		}
	}
	if mysqlDB != nil {
		defer mysqlDB.Close()
	}

	// Initialize definition cache
	var defCache cache.Cache
	switch cfg.Cache.Type {
	case "redis":
		redisCache, err := cache.NewRedisCache(cache.RedisCacheConfig{
			Addr:     cfg.Cache.RedisAddress(),
			Password: cfg.Cache.RedisPassword,
			DB:       cfg.Cache.RedisDB,
		})
		if err != nil {
			log.Printf("Warning: Redis cache unavailable, using memory cache: %v", err)
			defCache = cache.NewMemoryCache()
		} else {
			defCache = redisCache
			log.Println("Redis definition cache initialized")
		}
	default:
		defCache = cache.NewMemoryCache()
		log.Println("Memory definition cache initialized")
	}
	defer defCache.Close()

	// Vendor API client and providers
	vendorClient := bungie.NewClient(bungie.ClientConfig{
		APIKey:  cfg.Vendor.APIKey,
		BaseURL: cfg.Vendor.BaseURL,
		Timeout: cfg.Vendor.Timeout,
	})
	definitions := bungie.NewDefinitionsProvider(vendorClient, defCache, cfg.Cache.TTL)

	// Services
	annotationService := service.NewAnnotationService(annotationRepo)
	newItemsService := service.NewNewItemsService(seenRepo)
	notifications := service.NewNotificationCenter()

	var ratings stores.RatingFetcher
	if cfg.App.RatingsEnabled {
		ratings = bungie.NewRatingClient(vendorClient)
		log.Println("Review side channel enabled")
	}

	// Loading pipeline and the derived store stream
	loader := stores.NewLoader(stores.LoaderConfig{
		Accounts:    vendorClient,
		Source:      vendorClient,
		Definitions: definitions,
		Items:       stores.NewItemFactory(newItemsService),
		NewItems:    newItemsService,
		Annotations: annotationService,
		Ratings:     ratings,
		Catalog:     model.DefaultBucketCatalog(),
	})
	stream := stores.NewStoreStream(loader, notifications)

	// Periodic cleanup of stale annotations
	cleanup := service.NewCleanupScheduler(annotationRepo, service.CleanupConfig{
		StaleThreshold: cfg.AnnotationDB.StaleThreshold,
	})
	cleanup.Start()
	defer cleanup.Stop()

	// Handlers and router
	healthHandler := handler.New(cfg.App.Version, notifications)
	var accountLinks handler.AccountLinker
	if accountLinkRepo != nil {
		accountLinks = accountLinkRepo
	}
	storesHandler := handler.NewStoresHandler(stream, vendorClient, accountLinks)
	annotationsHandler := handler.NewAnnotationsHandler(annotationService, newItemsService)

	r := router.New(router.Config{
		Handler:            healthHandler,
		StoresHandler:      storesHandler,
		AnnotationsHandler: annotationsHandler,
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Server listening on %s", cfg.Server.Address())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Server stopped")
}
