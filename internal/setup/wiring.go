package setup

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/patentscout/patentscout/internal/config"
	"github.com/patentscout/patentscout/internal/dialogue"
	"github.com/patentscout/patentscout/internal/embedding"
	embedbedrock "github.com/patentscout/patentscout/internal/embedding/bedrock"
	embedgpt "github.com/patentscout/patentscout/internal/embedding/gpt"
	"github.com/patentscout/patentscout/internal/llm"
	"github.com/patentscout/patentscout/internal/llm/bedrock"
	"github.com/patentscout/patentscout/internal/llm/gpt"
	"github.com/patentscout/patentscout/internal/models"
	"github.com/patentscout/patentscout/internal/pipeline"
	"github.com/patentscout/patentscout/internal/ranking"
	"github.com/patentscout/patentscout/internal/redis"
	"github.com/patentscout/patentscout/internal/retrieval"
	"github.com/patentscout/patentscout/internal/router"
	"github.com/patentscout/patentscout/internal/session"
)

type Config struct {
	AWSRegion        string
	ClaudeModelID    string
	TitanModelID     string
	OpenAIKey        string
	OpenAIModelID    string
	OpenAIEmbedModel string
	DefaultProvider  string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	RedisAddr     string
	RedisPassword string
	RedisTTL      time.Duration

	StageTimeout time.Duration
}

type Dependencies struct {
	Orchestrator *pipeline.Orchestrator
	Store        *session.Store
	Retriever    *retrieval.PostgresRetriever
	Ranker       *ranking.Engine
	Weights      models.SimilarityWeights
	Logger       *zerolog.Logger
}

func LoadConfig() *Config {
	return &Config{
		AWSRegion:        getEnv("AWS_REGION", "us-east-1"),
		ClaudeModelID:    getEnv("CLAUDE_MODEL_ID", ""),
		TitanModelID:     getEnv("TITAN_EMBED_MODEL_ID", "amazon.titan-embed-text-v2:0"),
		OpenAIKey:        getEnv("OPEN_AI_KEY", ""),
		OpenAIModelID:    getEnv("OPEN_AI_MODEL_ID", ""),
		OpenAIEmbedModel: getEnv("OPEN_AI_EMBED_MODEL_ID", "text-embedding-3-small"),
		DefaultProvider:  getEnv("DEFAULT_LLM_PROVIDER", "bedrock"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "patents"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "patentscout"),
		DBSSLMode:  getEnv("DB_SSL_MODE", "disable"),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisTTL:      getEnvDuration("REDIS_EMBEDDING_TTL", 24*time.Hour),

		StageTimeout: getEnvDuration("STAGE_TIMEOUT", 60*time.Second),
	}
}

// Wire builds the full pipeline: LLM client, embedder (optionally
// cached through Redis), Postgres retriever, ranking engine, router,
// generator and orchestrator.
func Wire(ctx context.Context, cfg *Config, logger *zerolog.Logger) (*Dependencies, error) {
	llmClient, err := createLLMClient(ctx, cfg.DefaultProvider, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	embedder, err := createEmbedder(ctx, cfg.DefaultProvider, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create embedder: %w", err)
	}

	if cfg.RedisAddr != "" {
		redisClient, err := redis.ConnectRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, 3)
		if err != nil {
			return nil, fmt.Errorf("failed to connect embedding cache: %w", err)
		}
		embedder = embedding.NewCachedEmbedder(embedder, redisClient, cfg.RedisTTL, logger)
	}

	promptsConfig, err := config.LoadPromptsConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load prompts config: %w", err)
	}

	weights, err := config.LoadWeights()
	if err != nil {
		logger.Warn().Err(err).Msg("similarity weights file not loaded, using defaults")
	}

	dialogueRouter, err := router.New(promptsConfig.Prompts.Router, llmClient, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to build dialogue router: %w", err)
	}

	generator, err := dialogue.NewGenerator(promptsConfig, llmClient, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to build dialogue generator: %w", err)
	}

	retriever, err := retrieval.NewPostgres(ctx, retrieval.Config{
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		Database: cfg.DBName,
		SSLMode:  cfg.DBSSLMode,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to connect patent database: %w", err)
	}

	ranker := ranking.NewEngine(embedder, logger)

	orchestrator := pipeline.NewOrchestrator(dialogueRouter, generator, retriever, ranker, cfg.StageTimeout, logger)

	return &Dependencies{
		Orchestrator: orchestrator,
		Store:        session.NewStore(),
		Retriever:    retriever,
		Ranker:       ranker,
		Weights:      weights,
		Logger:       logger,
	}, nil
}

func getEnv(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		value = defaultValue
	}

	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		if secs, serr := strconv.Atoi(valueStr); serr == nil {
			return time.Duration(secs) * time.Second
		}
		return defaultValue
	}
	return value
}

func createLLMClient(ctx context.Context, provider string, cfg *Config) (llm.Client, error) {
	switch provider {
	case "openai":
		return gpt.NewClient(cfg.OpenAIKey, cfg.OpenAIModelID)
	default:
		return bedrock.NewClient(ctx, cfg.AWSRegion, cfg.ClaudeModelID)
	}
}

func createEmbedder(ctx context.Context, provider string, cfg *Config) (embedding.Embedder, error) {
	switch provider {
	case "openai":
		return embedgpt.NewEmbedder(cfg.OpenAIKey, cfg.OpenAIEmbedModel)
	default:
		return embedbedrock.NewEmbedder(ctx, cfg.AWSRegion, cfg.TitanModelID)
	}
}
