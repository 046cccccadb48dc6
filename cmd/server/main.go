package main

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/listify/backend/config"
	httpDelivery "github.com/listify/backend/internal/delivery/http"
	"github.com/listify/backend/internal/domain"
	"github.com/listify/backend/internal/infrastructure/ai"
	"github.com/listify/backend/internal/infrastructure/catalog"
	"github.com/listify/backend/internal/infrastructure/registry"
	"github.com/listify/backend/internal/usecase"
)

func main() {
	// .env is optional; real deployments inject environment directly
	_ = godotenv.Load()

	logger := logrus.New()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}

	if cfg.Server.Environment == "production" {
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetLevel(logrus.InfoLevel)
	} else {
		logger.SetLevel(logrus.DebugLevel)
	}

	logger.WithFields(logrus.Fields{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"registry":    cfg.Registry.Type,
		"model":       cfg.AI.Model,
	}).Info("starting listify backend v1.0.0")

	// Initialize infrastructure dependencies
	var registryStore domain.RegistryStore
	if cfg.Registry.Type == "redis" {
		redisStore, err := registry.NewRedisStore(cfg.Registry.RedisURL)
		if err != nil {
			logger.Fatalf("Failed to initialize redis registry: %v", err)
		}
		registryStore = redisStore
	} else {
		registryStore = registry.NewMemoryStore()
	}

	aiClient := ai.NewClient(cfg.AI.APIKey, cfg.AI.BaseURL, cfg.AI.Model, cfg.AI.Temperature, logger)

	catalogClient := catalog.NewClient(cfg.Catalog.BaseURL, cfg.Catalog.ConsumerKey, cfg.Catalog.ConsumerSecret, logger)
	if !catalogClient.Configured() {
		logger.Warn("catalog credentials incomplete: imports will report not_configured until set")
	}

	// Initialize usecase layer
	researchService := usecase.NewResearchService(
		aiClient,
		registryStore,
		usecase.ResearchServiceConfig{
			ModelName:   cfg.AI.Model,
			RegistryTTL: cfg.Registry.TTL,
		},
		logger,
	)
	importService := usecase.NewImportService(catalogClient, logger)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(researchService, importService, catalogClient, logger)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler, logger)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	logger.Infof("server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		logger.Fatalf("Failed to start server: %v", err)
	}
}
