package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/splice/internal/config"
	"github.com/MrSnakeDoc/splice/internal/domain"
	"github.com/MrSnakeDoc/splice/internal/editor"
	"github.com/MrSnakeDoc/splice/internal/httpserver"
	"github.com/MrSnakeDoc/splice/internal/httpserver/deps"
	"github.com/MrSnakeDoc/splice/internal/index"
	"github.com/MrSnakeDoc/splice/internal/logger"
	"github.com/MrSnakeDoc/splice/internal/redis"
	"github.com/MrSnakeDoc/splice/internal/scheduler"
	redisstore "github.com/MrSnakeDoc/splice/internal/store/redis"
	"github.com/MrSnakeDoc/splice/internal/utils"
	"github.com/MrSnakeDoc/splice/internal/version"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	redisClient *goredis.Client
	editor      *editor.Editor
	reloader    *scheduler.AssetReloader
	saver       *scheduler.SnapshotSaver
}

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	// Initialize Redis early - fail fast if unavailable
	loggerClient.Infof("Connecting to Redis at %s", cfg.RedisAddr)
	redisClient, err := redis.New(redis.ConnectOptions{
		Addr:           cfg.RedisAddr,
		User:           cfg.RedisUser,
		Password:       cfg.RedisPassword,
		RedisDB:        cfg.RedisDB,
		DialTimeout:    cfg.RedisDT,
		ReadTimeout:    cfg.RedisRT,
		WriteTimeout:   cfg.RedisWT,
		PoolSize:       cfg.RedisPoolSize,
		ConnectTimeout: cfg.RedisConnectTimeout,
		RetryInterval:  cfg.RedisRetryInterval,
		MaxWait:        cfg.RedisMaxWait,
		PingTimeout:    cfg.RedisPingTimeout,
		WarnThreshold:  cfg.RedisWarnThreshold,
	}, loggerClient)
	if err != nil {
		loggerClient.Errorf("Failed to connect to Redis: %v", err)
		os.Exit(1)
	}
	loggerClient.Info("Redis initialized successfully")

	// Initialize Redis store
	store := redisstore.NewStore(redisClient)

	// Initialize the editor around an empty registry
	overlap, err := domain.ParseOverlapPolicy(cfg.OverlapPolicy)
	if err != nil {
		loggerClient.Errorf("Invalid overlap policy: %v", err)
		os.Exit(1)
	}
	ed := editor.New(editor.Options{
		Zoom: cfg.DefaultZoom,
		Policy: domain.Policy{
			Overlap:           overlap,
			AllowKindCrossing: !cfg.EnforceSameKind,
		},
		HistoryLimit: cfg.HistoryLimit,
		Registry:     index.NewAssetRegistry(),
		Logger:       loggerClient,
	})

	// Try to restore assets and the last snapshot on startup
	syncer := scheduler.NewRedisSyncer(store, ed, loggerClient)
	if err := syncer.Sync(context.Background()); err != nil {
		loggerClient.Warn("failed to restore from redis on startup, starting empty",
			logger.Error(err))
	}

	// Initialize snapshot saver
	snapshotTrigger := make(chan struct{}, 1)
	saver := scheduler.NewSnapshotSaver(
		store,
		ed,
		loggerClient,
		cfg.SnapshotInterval,
		snapshotTrigger,
	)

	// Initialize asset reloader (if a manifest is configured)
	var reloader *scheduler.AssetReloader
	var reloadTrigger chan struct{}
	if cfg.ManifestFile != "" {
		loggerClient.Info("asset manifest configured, initializing asset reloader",
			logger.String("file", cfg.ManifestFile))
		reloadTrigger = make(chan struct{}, 1)
		reloader = scheduler.NewAssetReloader(
			cfg.ManifestFile,
			store,
			ed,
			loggerClient,
			cfg.ReloadInterval,
			reloadTrigger,
		)
	} else {
		loggerClient.Info("asset manifest not configured, assets arrive through the API only")
	}

	// Dependencies passed to routes (extend as needed).
	d := deps.Deps{
		Logger:           loggerClient,
		StartTime:        time.Now(),
		Version:          version.Version,
		Commit:           version.Commit,
		BuildDate:        version.BuildDate,
		GoVersion:        version.GoVersion,
		TimeNow:          time.Now,
		AllowedHosts:     cfg.AllowedHosts,
		AllowedCIDRS:     cfg.AllowedCIDRS,
		TrustProxy:       cfg.TrustProxy,
		RateBurst:        cfg.RateBurst,
		RateRefillPerMin: cfg.RateRefillPerMin,
		ManifestFile:     cfg.ManifestFile,
		Editor:           ed,
		Store:            store,
		ReloadTrigger:    reloadTrigger,
		SnapshotTrigger:  snapshotTrigger,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      server,
		redisClient: redisClient,
		editor:      ed,
		reloader:    reloader,
		saver:       saver,
	}
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting Splice v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("Splice %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start asset reloader (if enabled)
	if a.reloader != nil {
		if err := a.reloader.Start(ctx); err != nil {
			return fmt.Errorf("failed to start asset reloader: %w", err)
		}
		a.logger.Info("asset reloader started",
			logger.Duration("interval", a.cfg.ReloadInterval))
	}

	// Start snapshot saver
	if err := a.saver.Start(ctx); err != nil {
		return fmt.Errorf("failed to start snapshot saver: %w", err)
	}
	a.logger.Info("snapshot saver started",
		logger.Duration("interval", a.cfg.SnapshotInterval))

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	// Stop reloader
	if a.reloader != nil {
		a.reloader.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	// No more edits can arrive: persist the final state
	if err := a.saver.Stop(shutdownCtx); err != nil {
		a.logger.Error("final snapshot not saved", logger.Error(err))
	} else {
		a.logger.Info("✅ Timeline snapshot flushed",
			logger.Uint64("revision", a.editor.Revision()))
	}

	if a.redisClient != nil {
		utils.MustClose(a.redisClient, a.logger, "redis")
	}

	a.logger.Info("✅ Splice stopped cleanly")
	return nil
}
