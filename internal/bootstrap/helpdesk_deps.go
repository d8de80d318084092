package bootstrap

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"helpdesk_server/adapter/out/inference"
	"helpdesk_server/adapter/out/llm"
	"helpdesk_server/adapter/out/mongodb"
	"helpdesk_server/adapter/out/persistence"
	"helpdesk_server/adapter/out/realtime"
	"helpdesk_server/config"
	"helpdesk_server/core/port/out"
	"helpdesk_server/core/service/analysis"
	"helpdesk_server/core/service/chat"
	"helpdesk_server/core/service/ticket"
	"helpdesk_server/infra/database"
	"helpdesk_server/pkg/cache"
	"helpdesk_server/pkg/logger"
	"helpdesk_server/pkg/metrics"
)

// Dependencies wires adapters and services for the API.
type Dependencies struct {
	Config  *config.Config
	Redis   *redis.Client
	MongoDB *mongo.Client

	// Repositories
	TicketRepo *mongodb.TicketAdapter

	// Realtime
	RealtimeAdapter *realtime.SSEAdapter

	// Metrics
	AnalysisMetrics *metrics.AnalysisMetrics

	// Services
	AnalysisService *analysis.Analyzer
	TicketService   *ticket.Service
	ChatService     *chat.Service
}

// NewDependencies constructs the dependency graph. Redis and the LLM are
// optional: without them the chat flow loses caching, history, and generated
// replies but keeps working.
func NewDependencies(cfg *config.Config, zlog zerolog.Logger) (*Dependencies, func(), error) {
	deps := &Dependencies{Config: cfg}
	var cleanups []func()

	cleanup := func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}

	// MongoDB
	mongoClient, err := mongodb.NewClient(cfg.MongoDBURL, "helpdesk-api")
	if err != nil {
		return nil, nil, err
	}
	deps.MongoDB = mongoClient
	cleanups = append(cleanups, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		mongoClient.Disconnect(ctx)
	})

	db := mongoClient.Database(cfg.MongoDBName)
	deps.TicketRepo = mongodb.NewTicketAdapter(db)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := deps.TicketRepo.EnsureIndexes(ctx); err != nil {
		logger.WithError(err).Warn("failed to ensure ticket indexes")
	}

	// Redis (optional)
	if cfg.RedisURL != "" {
		redisClient, err := database.NewRedis(cfg.RedisURL)
		if err != nil {
			logger.WithError(err).Warn("Redis unavailable, chat cache and history disabled")
		} else {
			deps.Redis = redisClient
			cleanups = append(cleanups, func() { redisClient.Close() })
		}
	}

	// Inference clients
	hfClient := inference.NewClient(inference.Config{
		BaseURL: cfg.HFBaseURL,
		APIKey:  cfg.HFAPIKey,
		Timeout: cfg.HFTimeout,
	}, logger.Default())

	classifier := inference.NewClassifierAdapter(hfClient, cfg.ClassifierModelID)
	sentiment := inference.NewSentimentAdapter(hfClient, cfg.SentimentModelID)
	emotion := inference.NewEmotionAdapter(hfClient, cfg.EmotionModelID)

	// Metrics
	deps.AnalysisMetrics = metrics.NewAnalysisMetrics(1000)

	// Analysis service
	deps.AnalysisService = analysis.NewAnalyzer(
		classifier,
		sentiment,
		emotion,
		deps.AnalysisMetrics,
		logger.Default(),
	)

	// Realtime
	deps.RealtimeAdapter = realtime.NewSSEAdapter(zlog)

	// Ticket service
	deps.TicketService = ticket.NewService(
		deps.TicketRepo,
		deps.AnalysisService,
		deps.RealtimeAdapter,
		logger.Default(),
	)

	// Chat service (cache and history only when Redis is up). Optional
	// adapters stay nil interfaces unless a concrete value exists: a typed
	// nil pointer would defeat the service's nil checks.
	var (
		enrichmentCache out.EnrichmentCache
		chatHistory     out.ChatHistory
		replyGenerator  out.ReplyGenerator
	)
	if deps.Redis != nil {
		enrichmentCache = persistence.NewEnrichmentCacheAdapter(cache.NewRedisCache(deps.Redis))
		chatHistory = cache.NewChatHistoryStore(deps.Redis, int64(cfg.ChatHistorySize))
	}
	if generator := llm.NewReplyGenerator(llm.Config{
		APIKey:      cfg.OpenAIAPIKey,
		Model:       cfg.LLMModel,
		MaxTokens:   cfg.LLMMaxTokens,
		Temperature: cfg.LLMTemperature,
	}, logger.Default()); generator != nil {
		replyGenerator = generator
	} else {
		logger.Warn("no OpenAI API key configured, chat replies use canned responses")
	}

	deps.ChatService = chat.NewService(
		deps.AnalysisService,
		enrichmentCache,
		chatHistory,
		replyGenerator,
		logger.Default(),
	)

	return deps, cleanup, nil
}
