package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"pantrychef/internal/api"
	"pantrychef/internal/config"
	"pantrychef/internal/generator"
	"pantrychef/internal/library"
	"pantrychef/internal/logger"
	"pantrychef/internal/metrics"
	"pantrychef/internal/platform/gemini"
	"pantrychef/internal/platform/localllm"
	"pantrychef/internal/store"
	"pantrychef/internal/timer"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Errorf("failed to load config: %w", err))
	}

	log := logger.New(logger.Config{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		Development: cfg.Log.Development,
	})
	defer log.Sync()

	if !cfg.Log.Development {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	completer, closeCompleter, err := newCompleter(ctx, cfg)
	if err != nil {
		log.Fatal("error creating model client", zap.Error(err))
	}
	defer closeCompleter()

	svc := generator.NewService(completer, generator.Config{
		APIKey:         cfg.APIKey(),
		CredentialName: cfg.CredentialName(),
	}, log, generator.WithMetrics(m))

	st, err := newStore(ctx, cfg)
	if err != nil {
		log.Fatal("error creating store", zap.String("driver", cfg.Store.Driver), zap.Error(err))
	}
	defer st.Close()

	board := timer.NewBoard(log, timer.WithOnComplete(func(timer.Timer) {
		m.TimersCompleted.Inc()
	}))
	go board.Run(ctx, cfg.Timer.TickInterval)

	handler := api.NewHandler(svc, library.New(st, log), board, log)
	handler.GenerateTimeout = cfg.AI.Timeout

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: newRouter(handler, cfg, m, reg, log),
	}

	go func() {
		log.Info("server listening",
			zap.String("addr", srv.Addr),
			zap.String("provider", cfg.AI.Provider),
			zap.String("store", cfg.Store.Driver),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
}

// newRouter registers every route on a fresh engine.
func newRouter(handler *api.Handler, cfg *config.Config, m *metrics.Metrics, gatherer prometheus.Gatherer, log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), api.RequestID(), api.Logger(log), api.Metrics(m))

	// Configure CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	g := r.Group("/api")
	g.POST("/generate", api.RateLimit(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst), handler.Generate)
	g.GET("/filters", handler.Filters)

	g.POST("/recipes/scale", handler.ScaleRecipe)
	g.POST("/recipes/score", handler.ScoreRecipe)
	g.GET("/recipes/saved", handler.ListSaved)
	g.POST("/recipes/saved", handler.SaveRecipe)
	g.DELETE("/recipes/saved/:id", handler.DeleteSaved)

	g.GET("/history", handler.History)
	g.DELETE("/history", handler.ClearHistory)

	g.GET("/profile", handler.GetProfile)
	g.PUT("/profile", handler.PutProfile)
	g.GET("/profile/goals", handler.ProfileGoals)
	g.POST("/nutrition/goals", handler.ComputeGoals)

	g.GET("/shopping-list", handler.ShoppingList)
	g.GET("/shopping-list/summary", handler.ShoppingSummary)
	g.POST("/shopping-list", handler.AddToShoppingList)
	g.POST("/shopping-list/:index/toggle", handler.ToggleShoppingItem)
	g.DELETE("/shopping-list/:index", handler.RemoveShoppingItem)
	g.DELETE("/shopping-list", handler.ClearShoppingList)

	g.GET("/timers", handler.ListTimers)
	g.POST("/timers", handler.AddTimer)
	g.POST("/timers/:id/start", handler.StartTimer)
	g.POST("/timers/:id/pause", handler.PauseTimer)
	g.DELETE("/timers/:id", handler.RemoveTimer)

	g.GET("/ingredients", handler.SearchIngredients)
	g.GET("/ingredients/categories", handler.IngredientCategories)
	g.GET("/ingredients/:name/substitutes", handler.Substitutes)

	return r
}

// newCompleter builds the model client for the configured provider. The
// Gemini client is only created when a key is set; without one the service
// reports a configuration error per request.
func newCompleter(ctx context.Context, cfg *config.Config) (generator.Completer, func(), error) {
	noop := func() {}
	switch cfg.AI.Provider {
	case config.ProviderLocal:
		return localllm.NewClient(cfg.AI.LocalURL, cfg.AI.LocalAPIKey, cfg.AI.LocalModel, cfg.AI.Timeout), noop, nil
	default:
		if cfg.AI.GeminiAPIKey == "" {
			return nil, noop, nil
		}
		client, err := gemini.NewClient(ctx, cfg.AI.GeminiAPIKey, cfg.AI.Model)
		if err != nil {
			return nil, noop, fmt.Errorf("error creating gemini client: %w", err)
		}
		return client, func() { client.Close() }, nil
	}
}

func newStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	switch cfg.Store.Driver {
	case config.DriverPostgres:
		s, err := store.NewPostgresStore(cfg.Store.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.DriverRedis:
		s, err := store.NewRedisStore(ctx, store.RedisConfig{
			Addr:     cfg.Store.RedisAddr,
			Password: cfg.Store.RedisPassword,
			DB:       cfg.Store.RedisDB,
			Prefix:   cfg.Store.KeyPrefix,
		})
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return store.NewMemoryStore(), nil
	}
}
