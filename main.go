package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/banca-client/api"
	"github.com/carson-networks/banca-client/internal/alert"
	"github.com/carson-networks/banca-client/internal/auth"
	"github.com/carson-networks/banca-client/internal/config"
	"github.com/carson-networks/banca-client/internal/exchange"
	"github.com/carson-networks/banca-client/internal/gateway"
	"github.com/carson-networks/banca-client/internal/gateway/fixture"
	alertshandler "github.com/carson-networks/banca-client/internal/handlers/v1/alerts"
	exchangehandler "github.com/carson-networks/banca-client/internal/handlers/v1/exchange"
	localehandler "github.com/carson-networks/banca-client/internal/handlers/v1/locale"
	"github.com/carson-networks/banca-client/internal/handlers/v1/operations"
	"github.com/carson-networks/banca-client/internal/handlers/v1/screens"
	sessionhandler "github.com/carson-networks/banca-client/internal/handlers/v1/session"
	"github.com/carson-networks/banca-client/internal/kvstore"
	"github.com/carson-networks/banca-client/internal/locale"
	"github.com/carson-networks/banca-client/internal/logging"
	"github.com/carson-networks/banca-client/internal/operator"
	"github.com/carson-networks/banca-client/internal/screen"
	"github.com/carson-networks/banca-client/internal/session"
	"github.com/carson-networks/banca-client/internal/storage"
)

func main() {
	logger := logging.SetupLogging()
	logrus.Info("banca-client starting")

	cfg, err := config.ProcessEnvironmentVariables()
	if err != nil {
		logrus.WithError(err).Fatal("config.ProcessEnvironmentVariables")
		return
	}
	logging.SetLevel(logger, cfg.Log.Level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	kv := kvstore.NewFile(cfg.Storage.Path)
	locales := locale.NewStore(kv, logger)
	locales.Load(ctx)

	alerts := alert.NewQueue(logger)

	var provider auth.Provider
	if cfg.AuthConfigured() {
		client := auth.NewClient(cfg.Auth.URL, cfg.Auth.Key, kv)
		logger.WithField("endpoint", client.Endpoint()).Info("auth provider configured")
		provider = client
	} else {
		logger.Warn("auth provider not configured, running in mock session mode")
	}
	sessions := session.NewStore(provider, alerts, locales, logger)
	sessions.RestoreSession(ctx)

	backend, closeBackend := newBackend(cfg, logger)
	defer closeBackend()
	gw := gateway.New(backend, logger)

	delegator := operator.NewOperatorDelegator(gw, cfg.Operator.Workers, logger)
	delegator.Start()
	defer delegator.Stop()

	rates := exchange.NewClient(cfg.Exchange.URL, cfg.Exchange.Timeout, logger)
	board := exchange.NewBoard(rates, decimal.NewFromFloat(cfg.Exchange.Fallback))
	board.Refresh(ctx)

	coordinator := screen.NewCoordinator(ctx, gw, logger)
	coordinator.Bind(sessions, locales)
	defer coordinator.Close()

	poller := screen.NewPoller(gw, sessions, cfg.Poll.Interval, logger)
	poller.Start(ctx)
	defer poller.Stop()

	forms := screen.NewForms(sessions, delegator, alerts, locales, coordinator, logger)

	httpRest := api.Rest{
		Logger:  logger,
		Port:    cfg.API.Port,
		Backend: gw.BackendName(),
		Handlers: []api.Registrar{
			sessionhandler.NewHandler(sessions),
			localehandler.NewHandler(locales),
			screens.NewHandler(coordinator, poller),
			operations.NewHandler(forms),
			exchangehandler.NewHandler(board, locales),
			alertshandler.NewHandler(alerts),
		},
	}
	httpRest.Serve(ctx)
}

// newBackend picks the live Postgres backend when it is configured and the
// built-in fixture data otherwise.
func newBackend(cfg *config.Config, logger *logrus.Logger) (gateway.Backend, func()) {
	if !cfg.BackendConfigured() {
		logger.Warn("postgres not configured, serving fixture data")
		return fixture.New(), func() {}
	}

	db, err := storage.NewStorage(cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("storage.NewStorage")
	}
	return db, func() {
		if err := db.Close(); err != nil {
			logger.WithError(err).Warn("storage.Close")
		}
	}
}
