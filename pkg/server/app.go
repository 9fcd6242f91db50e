package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	domrepo "DealSense/internal/domain/repository"
	pkgcache "DealSense/pkg/cache"
	pkgch "DealSense/pkg/clickhouse"
	"DealSense/pkg/config"
	xhttp "DealSense/pkg/http"
	pkgkafka "DealSense/pkg/kafka"
	applogger "DealSense/pkg/logger"
)

// App owns the process lifecycle: the price-feed consumer, the HTTP
// server, and the infrastructure clients that need orderly shutdown.
type App struct {
	cfg        *config.Config
	l          *applogger.Logger
	consumer   *pkgkafka.Consumer
	ph         pkgkafka.MessageHandler
	chClient   *pkgch.Client
	cacheSvc   pkgcache.Service
	publisher  domrepo.AlertPublisher
	httpServer *xhttp.Server
	handler    xhttp.Handler
}

// New creates an App with all dependencies injected.
func New(
	cfg *config.Config,
	l *applogger.Logger,
	consumer *pkgkafka.Consumer,
	ph pkgkafka.MessageHandler,
	chClient *pkgch.Client,
	cacheSvc pkgcache.Service,
	publisher domrepo.AlertPublisher,
	handler xhttp.Handler,
) *App {
	return &App{
		cfg:       cfg,
		l:         l,
		consumer:  consumer,
		ph:        ph,
		chClient:  chClient,
		cacheSvc:  cacheSvc,
		publisher: publisher,
		handler:   handler,
	}
}

// Run starts everything and blocks until an interrupt arrives.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a.httpServer = xhttp.NewServer(a.handler,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
	)

	if a.consumer != nil && a.ph != nil {
		a.consumer.RegisterHandler(a.ph)
		go func() {
			if err := a.consumer.Start(); err != nil {
				a.l.Error("kafka consumer error", applogger.Error(err))
			}
		}()
		a.l.Info("kafka consumer started", applogger.String("topic", a.ph.Topic()))
	}

	if err := a.httpServer.Start(); err != nil {
		a.l.Error("http server start error", applogger.Error(err))
		return err
	}
	a.l.Info("http server started", applogger.Int("port", a.cfg.Server.Port))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.l.Info("shutdown signal received")
	return a.shutdown(ctx)
}

func (a *App) shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, a.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.l.Error("http shutdown error", applogger.Error(err))
	}

	if a.consumer != nil {
		if err := a.consumer.Stop(shutdownCtx); err != nil {
			a.l.Warn("kafka consumer stop error", applogger.Error(err))
		}
	}

	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			a.l.Warn("alert publisher close error", applogger.Error(err))
		}
	}
	if a.cacheSvc != nil {
		if err := a.cacheSvc.Close(); err != nil {
			a.l.Warn("cache close error", applogger.Error(err))
		}
	}
	if a.chClient != nil {
		if err := a.chClient.Close(); err != nil {
			a.l.Warn("clickhouse close error", applogger.Error(err))
		}
	}

	a.l.Info("shutdown complete")
	return nil
}
