// Package app wires the application services together.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/lucas-bats/timetraveler/src/chat"
	"github.com/lucas-bats/timetraveler/src/config"
	"github.com/lucas-bats/timetraveler/src/genclient"
	"github.com/lucas-bats/timetraveler/src/histdata"
	"github.com/lucas-bats/timetraveler/src/kvstore"
	"github.com/lucas-bats/timetraveler/src/notify"
	"github.com/lucas-bats/timetraveler/src/orchestrator"
	"github.com/lucas-bats/timetraveler/src/session"
)

var _ orchestrator.Generator = (*genclient.Client)(nil)

// App holds the initialized services.
type App struct {
	Store        *kvstore.Store
	Bus          *kvstore.Bus
	Orchestrator *orchestrator.Orchestrator
	Notifier     *notify.Service
	Config       *config.Config
	Logger       *slog.Logger
}

// New creates an App from cfg. The store directory is created if needed;
// when the database cannot be opened the app falls back to a detached store
// so conversations still work for the life of the process.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	}

	bus := kvstore.NewBus()

	dbPath := cfg.Storage.DatabasePath
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	store, err := kvstore.Open(dbPath, bus, logger)
	if err != nil {
		logger.Warn("falling back to in-memory state", "path", dbPath, "error", err)
		store = kvstore.Detached(logger)
	}

	client := genclient.NewClient(genclient.Config{
		BaseURL: cfg.API.BaseURL,
		APIKey:  cfg.API.APIKey,
		Model:   cfg.API.Model,
		Timeout: cfg.API.Timeout,
		Logger:  logger,
	})

	return &App{
		Store:        store,
		Bus:          bus,
		Orchestrator: orchestrator.New(client, logger),
		Notifier:     notify.NewService(),
		Config:       cfg,
		Logger:       logger,
	}, nil
}

// Locale returns the persisted response language, falling back to the
// configured one.
func (a *App) Locale() string {
	return kvstore.Read(a.Store, session.LocaleKey, a.Config.Chat.Locale)
}

// SetLocale persists the response language.
func (a *App) SetLocale(locale string) {
	kvstore.Write(a.Store, session.LocaleKey, locale)
}

// MountConversation builds the controller for one subject.
func (a *App) MountConversation(kind histdata.SubjectType, id string) (*chat.Controller, error) {
	return chat.Mount(chat.Deps{
		Store:    a.Store,
		Replier:  a.Orchestrator,
		Notifier: a.Notifier,
		Language: a.Locale(),
		Logger:   a.Logger,
	}, kind, id)
}

// Close releases the store.
func (a *App) Close() error {
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}
