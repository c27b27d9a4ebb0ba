// Package bootstrap wires dependencies and assembles the HTTP application.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"assistant_server/adapter/out/mongodb"
	"assistant_server/config"
	"assistant_server/core/agent/llm"
	"assistant_server/core/analysis"
	"assistant_server/core/domain"
	"assistant_server/core/port/out"
	"assistant_server/pkg/ratelimit"
)

type Dependencies struct {
	Config  *config.Config
	MongoDB *mongo.Client
	Redis   *redis.Client

	// Repositories
	AnalysisRepo out.AnalysisRepository
	UserRepo     out.UserRepository

	// Agent
	LLMClient *llm.Client

	// Pipeline
	Pipeline *analysis.Pipeline

	// Rate limiting
	Limiter ratelimit.Limiter
}

// NewDependencies builds the dependency graph. The generative service and
// Redis are optional; MongoDB is not.
func NewDependencies(cfg *config.Config) (*Dependencies, func(), error) {
	zlog := zerolog.New(zerolog.NewConsoleWriter()).With().Timestamp().Logger()

	deps := &Dependencies{Config: cfg}
	var cleanups []func()

	cleanup := func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}

	// MongoDB
	mongoURL := cfg.MongoDBURL
	if mongoURL == "" {
		mongoURL = "mongodb://localhost:27017"
	}
	mongoClient, err := mongodb.NewClient(mongoURL)
	if err != nil {
		return nil, nil, fmt.Errorf("mongodb: %w", err)
	}
	deps.MongoDB = mongoClient
	cleanups = append(cleanups, func() {
		mongoClient.Disconnect(context.Background())
	})
	zlog.Info().Str("database", cfg.MongoDBName).Msg("MongoDB connected")

	db := mongoClient.Database(cfg.MongoDBName)
	analysisRepo := mongodb.NewAnalysisAdapter(db)
	userRepo := mongodb.NewUserAdapter(db)
	deps.AnalysisRepo = analysisRepo
	deps.UserRepo = userRepo

	ctx := context.Background()
	if err := analysisRepo.EnsureIndexes(ctx); err != nil {
		zlog.Warn().Err(err).Msg("Failed to ensure analysis indexes")
	}
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		zlog.Warn().Err(err).Msg("Failed to ensure user indexes")
	}

	// Redis (rate limiter storage)
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			zlog.Warn().Err(err).Msg("Invalid Redis URL, using in-memory rate limiter")
		} else {
			client := redis.NewClient(opts)
			if err := client.Ping(ctx).Err(); err != nil {
				zlog.Warn().Err(err).Msg("Redis unreachable, using in-memory rate limiter")
				client.Close()
			} else {
				deps.Redis = client
				cleanups = append(cleanups, func() { client.Close() })
				zlog.Info().Msg("Redis connected")
			}
		}
	}

	if deps.Redis != nil {
		deps.Limiter = ratelimit.NewRedisLimiter(deps.Redis, "api", cfg.RateLimit, cfg.RateLimitWindow)
	} else {
		memLimiter := ratelimit.NewMemoryLimiter(cfg.RateLimit, cfg.RateLimitWindow)
		deps.Limiter = memLimiter
		cleanups = append(cleanups, memLimiter.Close)
	}

	// Generative service. Without a key, every stage runs its fallback tier.
	var generator out.TextGenerator
	if cfg.OpenAIAPIKey != "" {
		deps.LLMClient = llm.NewClientWithConfig(llm.ClientConfig{
			APIKey:    cfg.OpenAIAPIKey,
			Model:     cfg.LLMModel,
			MaxTokens: cfg.LLMMaxTokens,
			Timeout:   cfg.LLMTimeout,
		})
		generator = deps.LLMClient
		zlog.Info().Str("model", cfg.LLMModel).Msg("Generative service client initialized")
	} else {
		zlog.Warn().Msg("OPENAI_API_KEY not set, running deterministic fallbacks only")
	}

	categories := domain.LoadCategoryTable(cfg.CategoriesPath)
	templates := domain.LoadReplyTemplateTable(cfg.ReplyTemplatesPath)

	deps.Pipeline = analysis.NewPipeline(generator, categories, templates)

	return deps, cleanup, nil
}
