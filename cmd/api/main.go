package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/esenciapy/backend/internal/adapters/cache"
	"github.com/esenciapy/backend/internal/adapters/database"
	"github.com/esenciapy/backend/internal/adapters/search"
	"github.com/esenciapy/backend/internal/api/handlers"
	"github.com/esenciapy/backend/internal/api/routes"
	"github.com/esenciapy/backend/internal/application/services"
	"github.com/esenciapy/backend/internal/domain/repositories"
	"github.com/esenciapy/backend/internal/infrastructure/clients/openai"
	"github.com/esenciapy/backend/internal/infrastructure/clients/postgres"
	"github.com/esenciapy/backend/internal/infrastructure/clients/redis"
	"github.com/esenciapy/backend/internal/infrastructure/clients/typesense"
	"github.com/esenciapy/backend/internal/infrastructure/observability"
	"github.com/esenciapy/backend/pkg/config"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Server.Env)

	// Set up context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(
			ctx,
			cfg.OTEL.ServiceName,
			cfg.OTEL.ServiceVersion,
			cfg.OTEL.Endpoint,
		)
		if err != nil {
			log.Printf("Warning: Failed to set up OpenTelemetry: %v", err)
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Printf("Error shutting down OpenTelemetry: %v", err)
				}
			}()
			log.Println("OpenTelemetry initialized successfully")
		}
	}

	// Initialize metrics
	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatalf("Failed to initialize metrics: %v", err)
	}

	// Initialize database client
	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize PostgreSQL client: %v", err)
	}
	defer pgClient.Close()
	log.Println("PostgreSQL client initialized successfully")

	// Initialize Redis client
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Printf("Warning: Failed to initialize Redis client: %v", err)
		// Continue without Redis - the application can work without caching
		redisClient = nil
	} else {
		defer redisClient.Close()
		log.Println("Redis client initialized successfully")
	}

	// Initialize Typesense client
	typesenseClient, err := typesense.NewClient(&cfg.Typesense)
	if err != nil {
		log.Printf("Warning: Failed to initialize Typesense client: %v", err)
		typesenseClient = nil
	} else {
		log.Println("Typesense client initialized successfully")
	}

	// Initialize OpenAI client
	openaiClient, err := openai.NewClient(&cfg.OpenAI)
	if err != nil {
		log.Fatalf("Failed to initialize OpenAI client: %v", err)
	}

	// Initialize adapters
	productAdapter := database.NewProductAdapter(pgClient)
	brandAdapter := database.NewBrandAdapter(pgClient)
	familyAdapter := database.NewScentFamilyAdapter(pgClient)
	matchAdapter := database.NewMatchAdapter(pgClient)
	profileAdapter := database.NewUserProfileAdapter(pgClient)
	historyAdapter := database.NewSearchHistoryAdapter(pgClient)

	var searchIndex repositories.ProductSearchIndex
	if typesenseClient != nil {
		adapter := search.NewTypesenseAdapter(typesenseClient)
		if err := adapter.InitSchema(context.Background()); err != nil {
			log.Printf("Warning: Failed to init Typesense schema: %v", err)
		}
		searchIndex = adapter
	}

	// Initialize services
	parserService := services.NewQueryParserService(openaiClient)
	if redisClient != nil {
		parserService.SetCache(cache.NewRedisAdapter(redisClient))
	}

	if searchIndex != nil {
		indexSync := services.NewIndexSyncService(productAdapter, searchIndex)
		go indexSync.StartPeriodicSync(ctx, 15*time.Minute)
		log.Println("Search index sync started (refreshes every 15 minutes)")
	}

	filterCompiler := services.NewFilterCompiler(familyAdapter)
	catalogService := services.NewCatalogSearchService(productAdapter, familyAdapter, searchIndex, &cfg.Matching)
	historyService := services.NewSearchHistoryService(historyAdapter)
	searchService := services.NewSearchService(parserService, filterCompiler, catalogService, historyService)
	matchService := services.NewMatchService(openaiClient, matchAdapter, profileAdapter, productAdapter, &cfg.Matching)

	// Initialize handlers
	searchHandler := handlers.NewSearchHandler(searchService, historyService)
	productHandler := handlers.NewProductHandler(productAdapter, catalogService)
	matchHandler := handlers.NewMatchHandler(matchService)
	catalogHandler := handlers.NewCatalogHandler(brandAdapter, familyAdapter)

	// Set up router
	router := routes.NewRouter(
		searchHandler,
		productHandler,
		matchHandler,
		catalogHandler,
		metrics,
	)
	handler := router.SetupRoutes()

	// Create HTTP server
	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on %s", serverAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during server shutdown: %v", err)
	}

	log.Println("Server stopped")
}
