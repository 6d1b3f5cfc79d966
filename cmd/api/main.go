package main

import (
	"go.uber.org/zap"

	"loan-backend/internal/cache"
	"loan-backend/internal/config"
	"loan-backend/internal/engine"
	"loan-backend/internal/llm"
	"loan-backend/internal/llm/openai"
	"loan-backend/internal/server"
	"loan-backend/internal/telemetry"
)

func main() {
	cfg := config.Load()
	logger := telemetry.NewLogger(cfg.LogLevel, cfg.LogFormat)
	defer logger.Sync()

	client, err := openai.NewClient(cfg.OpenAIAPIKey, cfg.LLMModel, cfg.LLMTimeout)
	if err != nil {
		logger.Fatal("llm client init failed", zap.Error(err))
	}
	var llmClient llm.Client = client
	if cfg.LLMMaxAttempts > 1 {
		llmClient = llm.WithRetry(llmClient, cfg.LLMMaxAttempts, 0)
	}

	opts := []engine.Option{engine.WithLogger(logger)}
	if cfg.RedisAddr != "" {
		decisionCache := cache.New(cfg.RedisAddr, cfg.CacheTTL)
		defer decisionCache.Close()
		opts = append(opts, engine.WithCache(decisionCache))
		logger.Info("decision cache enabled", zap.String("redis_addr", cfg.RedisAddr))
	}
	eng := engine.New(llmClient, opts...)

	srv := server.New(eng, cfg.PolicyPath, logger)
	logger.Info("api listening",
		zap.String("port", cfg.Port),
		zap.String("model", cfg.LLMModel),
		zap.String("policy_path", cfg.PolicyPath),
	)
	if err := srv.Router().Run(":" + cfg.Port); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
