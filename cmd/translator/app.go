package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/janhq/jan-translator/internal/config"
	"github.com/janhq/jan-translator/internal/domain/account"
	"github.com/janhq/jan-translator/internal/domain/apperr"
	"github.com/janhq/jan-translator/internal/domain/conversationlist"
	"github.com/janhq/jan-translator/internal/domain/session"
	"github.com/janhq/jan-translator/internal/domain/settingspanel"
	"github.com/janhq/jan-translator/internal/domain/workspace"
	"github.com/janhq/jan-translator/internal/infrastructure/apiclient"
	"github.com/janhq/jan-translator/internal/infrastructure/audio"
	"github.com/janhq/jan-translator/internal/infrastructure/logger"
	"github.com/janhq/jan-translator/internal/infrastructure/observability"
	"github.com/janhq/jan-translator/internal/infrastructure/tokenstore"
)

// App is the container shared by every command of one invocation.
type App struct {
	cfg      *config.Config
	log      zerolog.Logger
	client   *apiclient.Client
	session  *session.Session
	accounts *account.Service
	panels   *settingspanel.Service

	shutdownTelemetry observability.Shutdown
}

// NewApp assembles the container from its parts.
func NewApp(cfg *config.Config, log zerolog.Logger, client *apiclient.Client, sess *session.Session, accounts *account.Service, panels *settingspanel.Service) *App {
	return &App{
		cfg:      cfg,
		log:      log,
		client:   client,
		session:  sess,
		accounts: accounts,
		panels:   panels,
	}
}

func provideAPIClient(cfg *config.Config, log zerolog.Logger) *apiclient.Client {
	return apiclient.New(apiclient.Config{
		BaseURL:   cfg.APIBaseURL,
		Timeout:   cfg.HTTPTimeout,
		UserAgent: "jan-translator/" + version,
	}, log)
}

func provideTokenStore(cfg *config.Config) *tokenstore.BoltStore {
	return tokenstore.NewBoltStore(cfg.SessionStorePath)
}

func provideSession(client *apiclient.Client, store *tokenstore.BoltStore, log zerolog.Logger) *session.Session {
	return session.New(client, store, log)
}

func provideAccounts(client *apiclient.Client, sess *session.Session, log zerolog.Logger) *account.Service {
	return account.NewService(client, sess, log)
}

func providePanels(cfg *config.Config, client *apiclient.Client, log zerolog.Logger) *settingspanel.Service {
	return settingspanel.NewService(client, log, cfg.StatusCloseDelay)
}

// buildApp wires the container by hand; wire.go describes the same graph.
func buildApp(cfg *config.Config, log zerolog.Logger) *App {
	client := provideAPIClient(cfg, log)
	sess := provideSession(client, provideTokenStore(cfg), log)
	return NewApp(cfg, log, client, sess, provideAccounts(client, sess, log), providePanels(cfg, client, log))
}

// app is set by setupApp before any command runs.
var app *App

func setupApp(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	level := cfg.LogLevel
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = "debug"
	}
	log, err := logger.New(level, cfg.LogFormat)
	if err != nil {
		return fmt.Errorf("configure logger: %w", err)
	}

	app = buildApp(cfg, log)
	shutdown, err := observability.Setup(cmd.Context(), cfg, log)
	if err != nil {
		return fmt.Errorf("initialize observability: %w", err)
	}
	app.shutdownTelemetry = shutdown
	return nil
}

func teardownApp(ctx context.Context) error {
	if app == nil {
		return nil
	}
	var errs []error
	if app.shutdownTelemetry != nil {
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), app.cfg.ShutdownTimeout)
		defer cancel()
		errs = append(errs, app.shutdownTelemetry(shutdownCtx))
	}
	errs = append(errs, app.session.Close())
	app = nil
	return errors.Join(errs...)
}

// requireLogin restores the persisted session and fails when nobody is
// signed in.
func (a *App) requireLogin(ctx context.Context) error {
	if err := a.session.Initialize(ctx); err != nil {
		return err
	}
	if err := a.session.Require(); err != nil {
		return apperr.New(apperr.KindAuth, "not logged in, run `translator login` first")
	}
	return nil
}

func (a *App) conversations() *conversationlist.List {
	return conversationlist.New(a.client, a.log, a.session.HandleAuthFailure)
}

func (a *App) workspace(conversationID int64, recorder workspace.Recorder) *workspace.Workspace {
	return workspace.New(a.client, recorder, conversationID, a.log,
		workspace.WithAuthFailureHandler(a.session.HandleAuthFailure))
}

// recorder returns the configured capture command, or nil when none is set.
func (a *App) recorder() workspace.Recorder {
	r, err := audio.NewProcessRecorder(a.cfg.RecorderCommand, a.log)
	if err != nil {
		a.log.Debug().Err(err).Msg("voice capture disabled")
		return nil
	}
	return r
}

// player returns the configured playback command, or nil when none is set.
func (a *App) player() *audio.ProcessPlayer {
	p, err := audio.NewProcessPlayer(a.cfg.TTSPlayerCommand)
	if err != nil {
		return nil
	}
	return p
}

func parseID(value, what string) (int64, error) {
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.Validation("%s must be a positive integer, got %q", what, value)
	}
	return id, nil
}

func contextWithoutCancel(cmd *cobra.Command) context.Context {
	return context.WithoutCancel(cmd.Context())
}
