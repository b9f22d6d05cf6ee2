package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	_ "time/tzdata"

	"energy-insights/internal/api"
	"energy-insights/internal/api/handlers"
	"energy-insights/internal/config"
	"energy-insights/internal/data"
	"energy-insights/internal/logging"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	cfgPath := flag.String("config", os.Getenv("CONFIG_FILE"), "Path to YAML config (optional)")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.Server.Env)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	client := data.NewAnalyticsClient(cfg.Backend.APIKey, cfg.Backend.BaseURL, cfg.Backend.Timeout, logger.Named("analytics"))
	// The response cache is for local development only.
	if cfg.Backend.Cache.Enabled && !cfg.IsProduction() {
		client.Cache = data.NewResponseCache(cfg.Backend.Cache.TTL)
		defer client.Cache.Close()
		logger.Info("analytics response cache enabled", zap.Duration("ttl", cfg.Backend.Cache.TTL))
	}

	h := handlers.NewHandler(cfg, func(apiKey string) data.Backend {
		return client.WithAPIKey(apiKey)
	}, logger.Named("api"))
	router := api.NewRouter(cfg, h, logger)

	// Serve the dashboard bundle from the static dir (if it exists)
	staticDir := cfg.Server.StaticDir
	if _, err := os.Stat(staticDir); err == nil {
		router.Static("/assets", staticDir+"/assets")
		router.StaticFile("/favicon.ico", staticDir+"/favicon.ico")

		// Serve index.html for all non-API routes (SPA routing)
		router.NoRoute(func(c *gin.Context) {
			if strings.HasPrefix(c.Request.URL.Path, "/api") {
				c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"code": "NOT_FOUND", "message": "Not found"}})
				return
			}
			c.File(staticDir + "/index.html")
		})
		logger.Info("serving static files", zap.String("dir", staticDir))
	} else {
		logger.Info("static directory not found, skipping static file serving", zap.String("dir", staticDir))
	}

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	logger.Info("starting API server",
		zap.String("addr", addr),
		zap.String("backend", cfg.Backend.BaseURL),
		zap.String("env", cfg.Server.Env))
	if err := router.Run(addr); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}
}
