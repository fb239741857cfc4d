package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"marketagents/internal/api"
	"marketagents/internal/cache"
	"marketagents/internal/config"
	"marketagents/internal/llm"
	"marketagents/internal/logging"
	"marketagents/internal/notifier"
	"marketagents/internal/pricing"
	"marketagents/internal/storage"
)

func main() {
	if err := run(); err != nil {
		slog.Error("exiting", "err", err)
		os.Exit(1)
	}
}

func run() error {
	// .env is optional
	_ = godotenv.Load()

	cfg, err := config.Load(config.Path())
	if err != nil {
		return err
	}

	logger := logging.New(cfg.Log.Level, cfg.Log.Format)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	gen, err := llm.New(cfg.LLM.Client(logger))
	if err != nil {
		logger.Warn("llm disabled", "err", err)
		gen = llm.Disabled{}
	}
	logger.Info("price explanations", "provider", gen.Provider(), "model", gen.Model())

	store, closeCache, err := openCache(cfg.Cache)
	if err != nil {
		return err
	}
	defer closeCache()

	repo, closeRepo, err := openRepo(ctx, cfg.Storage)
	if err != nil {
		return err
	}
	defer closeRepo()

	var nt notifier.Notifier
	if cfg.Notifier.TelegramToken != "" && len(cfg.Notifier.TelegramChatIDs) > 0 {
		nt = notifier.NewTelegram(cfg.Notifier.TelegramToken, cfg.Notifier.TelegramChatIDs, logger)
	}

	pricer := pricing.NewAgent(gen,
		pricing.WithCache(store),
		pricing.WithTimeout(cfg.LLM.Timeout),
		pricing.WithLogger(logger),
		pricing.WithLLMRequested(cfg.LLM.Enabled),
	)

	server := api.NewServer(api.Options{
		APIKey:   cfg.Server.APIKey,
		Pricer:   pricer,
		Repo:     repo,
		Notifier: nt,
		Logger:   logger,
	})

	errc := make(chan error, 1)
	go func() {
		logger.Info("server starting", "addr", cfg.Server.Addr)
		if err := server.Start(cfg.Server.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-errc:
		return err
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func openCache(cfg config.CacheConfig) (cache.Store, func(), error) {
	switch cfg.Driver {
	case "", "none":
		return nil, func() {}, nil
	case "redis":
		rdb, err := cache.NewRedis(cfg.RedisURL, cfg.TTL)
		if err != nil {
			return nil, nil, err
		}
		return rdb, func() { rdb.Close() }, nil
	default:
		return cache.NewMemory(cfg.Size, cfg.TTL), func() {}, nil
	}
}

func openRepo(ctx context.Context, cfg config.StorageConfig) (storage.SuggestionRepository, func(), error) {
	switch cfg.Driver {
	case "", "none":
		return nil, func() {}, nil
	case "postgres":
		pg, err := storage.NewPostgres(ctx, cfg.DSN)
		if err != nil {
			return nil, nil, err
		}
		if err := pg.EnsureSchema(ctx); err != nil {
			pg.Close()
			return nil, nil, err
		}
		return pg, func() { pg.Close() }, nil
	case "csv":
		repo, err := storage.NewCSV(cfg.Path)
		if err != nil {
			return nil, nil, err
		}
		return repo, func() {}, nil
	default:
		return nil, nil, errors.New("unknown storage driver: " + cfg.Driver)
	}
}
