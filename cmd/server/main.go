package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tabugame/bot/internal/cache"
	"github.com/tabugame/bot/internal/config"
	"github.com/tabugame/bot/internal/database"
	"github.com/tabugame/bot/internal/game"
	"github.com/tabugame/bot/internal/handler"
	"github.com/tabugame/bot/internal/history"
	"github.com/tabugame/bot/internal/llm"
	"github.com/tabugame/bot/internal/middleware"
	"github.com/tabugame/bot/internal/telegram"
)

// generatorAdapter bridges the llm provider to the game's Generator.
type generatorAdapter struct {
	provider llm.Provider
}

func (g generatorAdapter) Generate(ctx context.Context) (game.Challenge, error) {
	pair, err := g.provider.Generate(ctx)
	if err != nil {
		return game.Challenge{}, err
	}
	return game.Challenge{Word: pair.Word, ForbiddenWords: pair.ForbiddenWords}, nil
}

func main() {
	// Load .env file if exists
	_ = godotenv.Load()

	cfg := config.Load()

	if cfg.TelegramToken == "" {
		log.Fatal("TELEGRAM_TOKEN is required")
	}

	// Initialize database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto migrate
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// Initialize Redis cache
	redisCache, err := cache.NewRedisCache(cfg.RedisURL)
	if err != nil {
		log.Printf("Warning: Failed to connect to Redis: %v", err)
		redisCache = nil
		// Continue without Redis; history falls back to the database
	}

	wordHistory := history.NewStore(db, redisCache)

	// Initialize word generator based on provider
	var provider llm.Provider
	switch cfg.LLMProvider {
	case "gemini":
		if cfg.GeminiAPIKey == "" {
			log.Fatal("GEMINI_API_KEY is required when using gemini provider")
		}
		provider = llm.NewGeminiClient(cfg.GeminiAPIKey, cfg.GeminiModel)
		log.Printf("Using Gemini API with model: %s", cfg.GeminiModel)
	case "ollama":
		provider = llm.NewOllamaClient(cfg.OllamaURL, cfg.OllamaModel)
		log.Printf("Using Ollama at %s with model: %s", cfg.OllamaURL, cfg.OllamaModel)
	default:
		log.Fatalf("Unknown LLM provider: %s (supported: gemini, ollama)", cfg.LLMProvider)
	}

	supplier := game.NewSupplier(generatorAdapter{provider: provider}, wordHistory, cfg.WordRetryCap)
	notifier := telegram.NewClient(cfg.TelegramToken, cfg.TelegramAPIURL)

	registry := game.NewRegistry(game.Deps{
		Notifier:   notifier,
		Supplier:   supplier,
		Selector:   game.RandomSelector{},
		JoinWindow: cfg.JoinWindow,
	})

	webhookHandler := handler.NewWebhookHandler(registry, notifier)

	// Setup router
	r := gin.Default()

	// Prometheus metrics middleware
	r.Use(middleware.MetricsMiddleware())

	// Prometheus metrics endpoint
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Active sessions overview
	r.GET("/sessions/status", func(c *gin.Context) {
		c.JSON(200, gin.H{"active": registry.Active()})
	})

	// Telegram webhook
	r.POST("/webhook", webhookHandler.Receive)

	log.Printf("Taboo bot starting on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
