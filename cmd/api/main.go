package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/clipperroom/clipperroom-api/internal/assets"
	"github.com/clipperroom/clipperroom-api/internal/config"
	dbpkg "github.com/clipperroom/clipperroom-api/internal/db"
	"github.com/clipperroom/clipperroom-api/internal/logging"
	"github.com/clipperroom/clipperroom-api/internal/metrics"
	"github.com/clipperroom/clipperroom-api/internal/notifier"
	"github.com/clipperroom/clipperroom-api/internal/payments"
	"github.com/clipperroom/clipperroom-api/internal/realtime"
	"github.com/clipperroom/clipperroom-api/internal/routes"
	"github.com/clipperroom/clipperroom-api/internal/timezone"
)

func main() {

	cfg := config.Load()
	log := logging.New(cfg)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db := dbpkg.NewDB(cfg)
	metrics.Register()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ------------------------------
	// Realtime fan-out
	// ------------------------------
	hub := realtime.NewHub(log)

	var cache *redis.Client
	var bus notifier.Broadcaster = hub

	if cfg.RedisAddr != "" {
		cache = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})

		relay := realtime.NewRelay(cache, log)
		go relay.Subscribe(ctx, hub)
		bus = relay

		log.Info().Str("addr", cfg.RedisAddr).Msg("redis relay enabled")
	}

	// ------------------------------
	// Live updates (LISTEN/NOTIFY)
	// ------------------------------
	if err := dbpkg.InstallChangeTriggers(db); err != nil {
		log.Warn().Err(err).Msg("change triggers unavailable, live updates disabled")
	} else {
		n := notifier.New(cfg.DBUrl, notifier.NewGormLoader(db), bus, log)
		go n.Run(ctx)
	}

	// ------------------------------
	// Optional integrations
	// ------------------------------
	var uploader *assets.Uploader
	if cfg.UploadsEnabled() {
		uploader = assets.New(cfg)
	}

	var payClient payments.Client
	if cfg.MPAccessToken != "" {
		mp, err := payments.NewMercadoPago(cfg.MPAccessToken)
		if err != nil {
			log.Warn().Err(err).Msg("mercado pago disabled")
		} else {
			payClient = mp
		}
	}

	// ------------------------------
	// HTTP
	// ------------------------------
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg, routes.Deps{
		Log:      log,
		Hub:      hub,
		Cache:    cache,
		Uploader: uploader,
		Payments: payClient,
		Loc:      timezone.Location(cfg.Timezone),
	})

	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: r,
	}

	go func() {
		log.Info().Str("addr", cfg.Addr()).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
