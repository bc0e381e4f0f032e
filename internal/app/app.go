package app

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/beetracked/fleet-ops/config"
	"github.com/beetracked/fleet-ops/internal/adapter/cognito"
	"github.com/beetracked/fleet-ops/internal/adapter/credfile"
	httpserver "github.com/beetracked/fleet-ops/internal/adapter/http/server"
	"github.com/beetracked/fleet-ops/internal/adapter/http/ws"
	"github.com/beetracked/fleet-ops/internal/adapter/postgres"
	rabbitadapter "github.com/beetracked/fleet-ops/internal/adapter/rabbit"
	"github.com/beetracked/fleet-ops/internal/adapter/s3"
	"github.com/beetracked/fleet-ops/internal/adapter/sheets"
	"github.com/beetracked/fleet-ops/internal/rowstore"
	"github.com/beetracked/fleet-ops/internal/service/auth"
	"github.com/beetracked/fleet-ops/internal/service/carrera"
	"github.com/beetracked/fleet-ops/internal/service/ecodelivery"
	"github.com/beetracked/fleet-ops/internal/service/events"
	"github.com/beetracked/fleet-ops/internal/service/session"
	"github.com/beetracked/fleet-ops/internal/service/shift"
	"github.com/beetracked/fleet-ops/pkg/logger"
	postgresclient "github.com/beetracked/fleet-ops/pkg/postgres"
	"github.com/beetracked/fleet-ops/pkg/rabbit"
	wsHub "github.com/beetracked/fleet-ops/pkg/wsHub"
)

// App wires the row store, photo storage, session registry, services
// and HTTP server together and runs them until shutdown.
type App struct {
	httpServer *httpserver.API
	registry   *session.Registry
	hub        *wsHub.ConnectionHub
	rabbitMQ   *rabbit.RabbitMQ
	postgresDB *postgresclient.PostgreDB

	cfg config.Config
	log logger.Logger
}

func NewApplication(ctx context.Context, cfg config.Config, log logger.Logger) (*App, error) {
	app := &App{
		cfg: cfg,
		log: log,
	}

	// row store backend
	var (
		store        rowstore.Store
		spreadsheets rowstore.SpreadsheetStore
	)
	switch cfg.Store.Backend {
	case "postgres":
		db, err := postgresclient.New(ctx, cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		repo := postgres.NewRowRepo(db.Pool)
		store, spreadsheets = repo, repo
		app.postgresDB = db
	case "memory":
		mem := rowstore.NewMemory()
		store, spreadsheets = mem, mem
	default:
		client, err := sheets.New(ctx, sheets.Config{
			SpreadsheetID:   cfg.Google.SheetID,
			CredentialsFile: cfg.Google.CredentialsFile,
			CredentialsJSON: cfg.Google.CredentialsJSON,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to init sheets client: %w", err)
		}
		store, spreadsheets = client, client
	}

	// photo storage
	uploader, err := s3.New(ctx, s3.Config{
		Bucket:          cfg.AWS.Bucket,
		Region:          cfg.AWS.Region,
		AccessKeyID:     cfg.AWS.AccessKeyID,
		SecretAccessKey: cfg.AWS.SecretAccessKey,
		OnIAMRole:       cfg.AWS.OnIAMRole(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to init s3 uploader: %w", err)
	}
	if !uploader.Configured() {
		log.Warn(ctx, "S3 is not configured, photo uploads are disabled")
	}

	// event fan-out: the live feed always, RabbitMQ when enabled
	app.hub = wsHub.NewConnHub(log)
	feed := ws.NewFeed(app.hub, log)
	publishers := events.Multi{feed}
	if cfg.RabbitMQ.Enabled {
		client, err := rabbit.New(ctx, cfg.RabbitMQ.GetDSN(), log)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to rabbitmq: %w", err)
		}
		app.rabbitMQ = client
		publishers = append(publishers, rabbitadapter.NewFleetBroker(client, log))
	}

	// sessions
	app.registry = session.NewRegistry(cfg.Session.InactivityTimeout, cfg.Session.SweepInterval, log)

	// services
	creds := credfile.New(cfg.Auth.CredentialsFile)
	authSvc := auth.NewAuthService(creds, app.registry, log)
	shiftSvc := shift.NewShiftService(store, uploader, publishers, log)
	ecoSvc := ecodelivery.NewEcoService(store, spreadsheets, uploader, publishers, cfg.Google.BikersSheetID, log)
	carreraSvc := carrera.NewCarreraService(spreadsheets, publishers, cfg.Google.RidesSheetID(), log)

	verifier := cognito.NewVerifier(cognito.Config{
		Region:     cfg.Cognito.Region,
		UserPoolID: cfg.Cognito.UserPoolID,
	}, log)
	if !verifier.Configured() {
		log.Warn(ctx, "Cognito is not configured, tokens are accepted without verification")
	}

	server, err := httpserver.New(cfg, authSvc, shiftSvc, ecoSvc, carreraSvc, app.registry, app.registry, verifier, feed, log)
	if err != nil {
		return nil, fmt.Errorf("failed to init http server: %w", err)
	}
	app.httpServer = server

	return app, nil
}

func (a *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	defer func() {
		a.close(context.Background())
		a.log.Info(ctx, "service closed")
	}()

	// background sweep of expired sessions
	go a.registry.Run(ctx)

	errCh := make(chan error, 1)
	a.httpServer.Run(ctx, errCh)

	a.log.Info(ctx, "service started")
	select {
	case errRun := <-errCh:
		return errRun
	case <-ctx.Done():
		a.log.Info(ctx, "shutting down application")
		return nil
	}
}

func (a *App) close(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, time.Second*10)
	defer cancel()

	if err := a.httpServer.Stop(ctx); err != nil {
		a.log.Error(ctx, "failed to shutdown HTTP server", err)
	}

	a.hub.Close()

	if a.rabbitMQ != nil {
		if err := a.rabbitMQ.Close(ctx); err != nil {
			a.log.Error(ctx, "failed to close rabbitmq connection", err)
		}
	}
	if a.postgresDB != nil {
		a.postgresDB.Pool.Close()
	}
}
