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

	"github.com/labstack/echo/v4"

	"l1board/config"
	"l1board/handlers"
	"l1board/middleware"
	"l1board/services"
	"l1board/utils"
)

func main() {
	// 1. Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	log.Println("=== Configuration ===")
	log.Printf("Server: %s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Printf("Stats API: %s", cfg.StatsAPI.BaseURL)
	log.Printf("Redis: %s", cfg.Redis.Address)
	log.Printf("MongoDB: %s", cfg.MongoDB.Database)

	// 2. Core Services
	geo := utils.NewGeoResolver(cfg.GeoIP.DBPath)
	defer geo.Close()

	mongoService, err := services.NewMongoDBService(cfg)
	if err != nil {
		log.Printf("⚠️  MongoDB connection failed: %v", err)
		log.Println("Alert persistence will be disabled")
		mongoService = nil
	}
	if mongoService != nil {
		defer mongoService.Close()
	}

	discordToken := os.Getenv("DISCORD_BOT_TOKEN")
	discordChannelID := os.Getenv("DISCORD_CHANNEL_ID")
	discordBot, err := services.NewDiscordBotService(discordToken, discordChannelID)
	if err != nil {
		log.Printf("⚠️  Discord bot initialization failed: %v", err)
		log.Println("Discord notifications will be disabled")
		discordBot = nil
	} else if discordBot != nil {
		defer discordBot.Close()
	}

	statsClient := services.NewStatsClient(cfg)
	cache := services.NewCacheService(cfg)
	fetcher := services.NewCachedFetcher(statsClient, cache, cfg.CacheTTLDuration())

	alertService := services.NewAlertService(mongoService, discordBot)
	if err := alertService.LoadRulesFromDB(); err != nil {
		log.Printf("Warning: Failed to load alert rules from MongoDB: %v", err)
	}

	registry := services.NewSessionRegistry(fetcher, alertService)
	defer registry.Close()

	versionCfg := &utils.VersionConfig{
		CurrentStable: cfg.Versions.CurrentStable,
		MinSupported:  cfg.Versions.MinSupported,
	}
	nodeService := services.NewNodeService(statsClient, geo, versionCfg)

	// 3. Start Background Services
	cache.Start()
	log.Println("✓ Cache Service started")
	log.Printf("   Mode: %s", cache.Mode())

	// 4. Web Server
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.LoggerMiddleware())
	e.Use(middleware.CORSMiddleware(cfg.Server.AllowedOrigins))
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			defer func() {
				if r := recover(); r != nil {
					log.Printf("Recovered from panic: %v", r)
					c.Error(fmt.Errorf("internal server error"))
				}
			}()
			return next(c)
		}
	})

	// 5. Handlers
	h := handlers.NewHandler(cfg, cache)
	chartHandlers := handlers.NewChartHandlers(registry)
	nodeHandlers := handlers.NewNodeHandlers(nodeService)
	alertHandlers := handlers.NewAlertHandlers(alertService)
	cacheHandlers := handlers.NewCacheHandlers(cache)

	// 6. Routes
	e.GET("/health", h.GetHealth)
	e.GET("/cache/status", cacheHandlers.GetCacheStatus)
	e.POST("/cache/clear", cacheHandlers.ClearCache)

	api := e.Group("/api")

	api.GET("/status", h.GetStatus)
	api.GET("/chart/:address", chartHandlers.GetChart)
	api.GET("/nodes/:address", nodeHandlers.GetNodes)

	alerts := api.Group("/alerts")
	alerts.POST("", alertHandlers.CreateRule)
	alerts.GET("", alertHandlers.ListRules)
	alerts.GET("/history", alertHandlers.GetHistory)
	alerts.GET("/:id", alertHandlers.GetRule)
	alerts.PUT("/:id", alertHandlers.UpdateRule)
	alerts.DELETE("/:id", alertHandlers.DeleteRule)
	alerts.POST("/:id/test", alertHandlers.TestRule)

	// 7. Start Server with Graceful Shutdown
	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)

	go func() {
		log.Printf("🚀 Server running on http://%s", serverAddr)
		if err := e.Start(serverAddr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("shutting down the server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("⏳ Graceful shutdown initiated...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	log.Println("Stopping services...")
	registry.Close()
	cache.Stop()
	log.Println("✓ All services stopped")

	if err := e.Shutdown(ctx); err != nil {
		e.Logger.Fatal(err)
	}
	log.Println("✓ Server exited cleanly")
}
