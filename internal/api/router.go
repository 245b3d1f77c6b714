package api

import (
	"encoding/json"
	"net/http"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/seeitmyway/perspective/internal/api/handlers"
	mw "github.com/seeitmyway/perspective/internal/api/middleware"
	"github.com/seeitmyway/perspective/internal/config"
	"github.com/seeitmyway/perspective/internal/domain"
	"github.com/seeitmyway/perspective/internal/llm"
	"github.com/seeitmyway/perspective/internal/service"
	"github.com/seeitmyway/perspective/internal/web"
	"go.uber.org/zap"
)

// App holds the router plus request counters for the metrics endpoint.
// There is no shared mutable state between requests beyond these counters.
type App struct {
	Router       *chi.Mux
	startTime    time.Time
	requestCount atomic.Int64
	errorCount   atomic.Int64
}

// NewApp wires services and handlers around the given completion client.
// The client is injected rather than built here so tests can swap in a
// double.
func NewApp(client domain.CompletionClient, logger *zap.Logger) *App {
	// Services
	scopeSvc := service.NewScopeService(client, logger)
	questionSvc := service.NewQuestionService(client, logger)
	reconstructionSvc := service.NewReconstructionService(client, logger)

	// Handlers
	dialogueHandler := handlers.NewDialogueHandler(scopeSvc, questionSvc, reconstructionSvc, logger)

	r := chi.NewRouter()

	app := &App{
		Router:    r,
		startTime: time.Now(),
	}

	metricsCollector := mw.NewMetricsCollector(&app.requestCount, &app.errorCount)

	// Global middleware (order matters)
	r.Use(mw.RequestID)
	r.Use(middleware.RealIP)
	r.Use(metricsCollector.Middleware)
	r.Use(mw.Logging(logger))
	r.Use(middleware.Recoverer)
	r.Use(mw.RateLimit(config.RateLimitRPS(), config.RateLimitBurst()))

	// Entry page
	r.Get("/", web.Index)

	// Health and metrics
	r.Get("/health", healthHandler())
	r.Get("/metrics", app.metricsHandler())

	// API
	r.Route("/api", func(r chi.Router) {
		r.Post("/questions", dialogueHandler.Questions)
		r.Post("/reconstruct", dialogueHandler.Reconstruct)
	})

	return app
}

func healthHandler() http.HandlerFunc {
	provider := config.LLMProvider()
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"status":   "ok",
			"provider": provider,
		})
	}
}

func (app *App) metricsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var memStats runtime.MemStats
		runtime.ReadMemStats(&memStats)

		uptime := time.Since(app.startTime)

		response := map[string]any{
			"uptime_seconds": uptime.Seconds(),
			"uptime_human":   uptime.Round(time.Second).String(),
			"request_count":  app.requestCount.Load(),
			"error_count":    app.errorCount.Load(),
			"goroutines":     runtime.NumGoroutine(),
			"memory": map[string]any{
				"alloc_mb":       float64(memStats.Alloc) / 1024 / 1024,
				"total_alloc_mb": float64(memStats.TotalAlloc) / 1024 / 1024,
				"sys_mb":         float64(memStats.Sys) / 1024 / 1024,
				"num_gc":         memStats.NumGC,
			},
			"go_version": runtime.Version(),
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(response)
	}
}

// Ensure clients satisfy the capability interface at compile time.
var (
	_ domain.CompletionClient = (*llm.OpenAIClient)(nil)
	_ domain.CompletionClient = (*llm.CerebrasClient)(nil)
	_ domain.CompletionClient = (*llm.GeminiClient)(nil)
	_ domain.CompletionClient = (*llm.MockClient)(nil)
)
