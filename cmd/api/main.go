package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/BruksfildServices01/garage-coop/internal/audit"
	"github.com/BruksfildServices01/garage-coop/internal/auth"
	"github.com/BruksfildServices01/garage-coop/internal/config"
	dbpkg "github.com/BruksfildServices01/garage-coop/internal/db"
	accountDomain "github.com/BruksfildServices01/garage-coop/internal/domain/account"
	"github.com/BruksfildServices01/garage-coop/internal/infra/repository"
	"github.com/BruksfildServices01/garage-coop/internal/infra/storage"
	"github.com/BruksfildServices01/garage-coop/internal/infra/tokenstore"
	"github.com/BruksfildServices01/garage-coop/internal/logging"
	"github.com/BruksfildServices01/garage-coop/internal/middleware"
	"github.com/BruksfildServices01/garage-coop/internal/notify"
	"github.com/BruksfildServices01/garage-coop/internal/obs"
	"github.com/BruksfildServices01/garage-coop/internal/routes"
	ucRole "github.com/BruksfildServices01/garage-coop/internal/usecase/role"
)

const serviceName = "garage-coop"

func main() {

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("invalid configuration")
	}

	accessLog := logging.Setup(cfg.LogLevel, cfg.LogFile)

	// ======================================================
	// OBSERVABILITY
	// ======================================================
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			Environment:      cfg.AppEnv,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
		}); err != nil {
			logrus.WithError(err).Error("sentry init failed")
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	if cfg.OTelEnabled {
		shutdown, err := obs.InitTracer(context.Background(), serviceName, cfg.AppEnv)
		if err != nil {
			logrus.WithError(err).Error("opentelemetry init failed")
		} else {
			defer func() { _ = shutdown(context.Background()) }()
		}
	}

	// ======================================================
	// STORAGE
	// ======================================================
	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("database unavailable")
	}
	defer func() { _ = dbpkg.Close(db) }()

	var store accountDomain.TokenStore
	if cfg.RedisAddr != "" {
		rs, err := tokenstore.NewRedisStore(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			logrus.WithError(err).Warn("redis unavailable, using in-memory token store")
			store = tokenstore.NewMemoryStore()
		} else {
			defer func() { _ = rs.Close() }()
			store = rs
		}
	} else {
		store = tokenstore.NewMemoryStore()
	}

	var photos accountDomain.PhotoStore
	if cfg.S3Bucket != "" {
		photos = storage.NewS3Store(storage.S3Config{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
		})
	} else {
		logrus.Info("S3_BUCKET not set, photo uploads disabled")
	}

	// ======================================================
	// BACKGROUND WORKERS
	// ======================================================
	var sender notify.Sender = notify.LogSender{IncludeBody: cfg.AppEnv == "development"}
	if cfg.RabbitURL != "" {
		amqpSender, err := notify.NewAMQPSender(cfg.RabbitURL, cfg.NotifyExchange)
		if err != nil {
			logrus.WithError(err).Warn("rabbitmq unavailable, notifications go to the log")
		} else {
			defer func() { _ = amqpSender.Close() }()
			sender = amqpSender
		}
	}
	notifier := notify.NewDispatcher(sender, 100)
	auditDispatcher := audit.NewDispatcher(audit.New(db))

	// ======================================================
	// BOOTSTRAP
	// ======================================================
	if cfg.BootstrapAdminEmail != "" {
		roles := repository.NewRoleGormRepository(db)
		bootstrap := ucRole.NewBootstrapAdmin(
			repository.NewAccountGormRepository(db),
			ucRole.NewResolver(roles),
			ucRole.NewTransition(roles, auditDispatcher),
		)
		if err := bootstrap.Execute(context.Background(), cfg.BootstrapAdminEmail); err != nil {
			logrus.WithError(err).Error("bootstrap admin failed")
		}
	}

	// ======================================================
	// HTTP
	// ======================================================
	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logging.AccessLog(accessLog))
	if cfg.SentryDSN != "" {
		r.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	if cfg.OTelEnabled {
		r.Use(otelgin.Middleware(serviceName))
	}

	routes.RegisterRoutes(r, routes.Deps{
		DB:       db,
		Config:   cfg,
		Tokens:   auth.NewTokens(cfg.JWTSecret, cfg.JWTTTL),
		Hasher:   auth.NewBcryptHasher(0),
		Store:    store,
		Photos:   photos,
		Notifier: notifier,
		Audit:    auditDispatcher,
		Metrics:  middleware.NewMetrics("garage_coop", registry),
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logrus.WithField("addr", cfg.Addr()).Info("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithError(err).Fatal("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logrus.WithError(err).Error("server shutdown")
	}
	if err := notifier.Close(ctx); err != nil {
		logrus.WithError(err).Warn("notification queue not drained")
	}
	if err := auditDispatcher.Close(ctx); err != nil {
		logrus.WithError(err).Warn("audit queue not drained")
	}
}
