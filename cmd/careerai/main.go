// careerai is the resume analysis service: deterministic resume parsing plus
// an LLM-backed ATS analyzer with a deterministic fallback.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	glog "github.com/cloudwego/hertz/pkg/common/hlog"
	hertzadapter "github.com/hertz-contrib/logger/zerolog"
	"github.com/spf13/pflag"

	"careerai/internal/analysis"
	"careerai/internal/api/handler"
	"careerai/internal/api/router"
	"careerai/internal/config"
	"careerai/internal/llm"
	"careerai/internal/logger"
	"careerai/internal/ratelimit"
	"careerai/internal/storage"
)

func main() {
	var configPath string
	pflag.StringVarP(&configPath, "config", "c", "config.yaml", "Path to config file")
	pflag.Parse()

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Fatal().Err(err).Str("path", configPath).Msg("load config failed")
	}

	logger.Init(cfg.Logger)
	glog.SetLogger(hertzadapter.From(logger.Logger))

	ctx := context.Background()

	store := storage.NewStorage(ctx, cfg)
	defer store.Close()

	chain := buildProviderChain(ctx, cfg)
	analyzer := analysis.NewAnalyzer(chain,
		analysis.WithMaxTokens(cfg.LLM.MaxTokens),
		analysis.WithTemperature(cfg.LLM.Temperature),
	)

	resumeHandler := handler.NewResumeHandler(store)
	analysisHandler := handler.NewAnalysisHandler(cfg, store, analyzer)

	h := server.New(
		server.WithHostPorts(cfg.Server.Address),
		server.WithHandleMethodNotAllowed(true),
	)
	h.Use(func(c context.Context, ctx *app.RequestContext) {
		start := time.Now()
		ctx.Next(c)
		logger.Info().
			Str("method", string(ctx.Method())).
			Str("path", string(ctx.Path())).
			Int("status", ctx.Response.StatusCode()).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	})

	router.RegisterRoutes(h, resumeHandler, analysisHandler)

	logger.Info().Str("address", cfg.Server.Address).Msg("server starting")
	go func() {
		if err := h.Run(); err != nil {
			logger.Fatal().Err(err).Msg("server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(),
		config.GetDuration(cfg.Server.ShutdownTimeout, 5*time.Second))
	defer cancel()
	if err := h.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("shutdown failed")
	}
}

// buildProviderChain assembles the ordered provider list from whatever API
// keys are configured: Gemini first, OpenAI second, rate-limited Qwen last.
// An empty chain is allowed; the analyzer serves fallbacks.
func buildProviderChain(ctx context.Context, cfg *config.Config) *llm.Chain {
	var providers []llm.Provider

	if cfg.LLM.Gemini.APIKey != "" {
		if p, err := llm.NewGeminiProvider(ctx, cfg.LLM.Gemini.APIKey, cfg.LLM.Gemini.Model); err != nil {
			logger.Warn().Err(err).Msg("gemini provider unavailable")
		} else {
			providers = append(providers, p)
		}
	}

	if cfg.LLM.OpenAI.APIKey != "" {
		if p, err := llm.NewOpenAIProvider(cfg.LLM.OpenAI.APIKey, cfg.LLM.OpenAI.BaseURL, cfg.LLM.OpenAI.Model); err != nil {
			logger.Warn().Err(err).Msg("openai provider unavailable")
		} else {
			providers = append(providers, p)
		}
	}

	if cfg.LLM.Qwen.APIKey != "" {
		if m, err := llm.NewQwenChatModel(cfg.LLM.Qwen.APIKey, cfg.LLM.Qwen.Model, cfg.LLM.Qwen.APIURL); err != nil {
			logger.Warn().Err(err).Msg("qwen provider unavailable")
		} else {
			providers = append(providers, ratelimit.NewLimitedProvider(llm.NewQwenProvider(m), cfg.LLM.Qwen.QPM))
		}
	}

	if len(providers) == 0 {
		logger.Warn().Msg("no LLM providers configured, every analysis will use the deterministic fallback")
	}

	names := make([]string, 0, len(providers))
	for _, p := range providers {
		names = append(names, p.Name())
	}
	logger.Info().Strs("providers", names).Msg("provider chain ready")

	return llm.NewChain(providers,
		llm.WithCallTimeout(config.GetDuration(cfg.LLM.CallTimeout, 30*time.Second)))
}
