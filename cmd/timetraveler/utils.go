package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lucas-bats/timetraveler/src/app"
	"github.com/lucas-bats/timetraveler/src/config"
	"github.com/lucas-bats/timetraveler/src/histdata"
)

// buildApp loads the configuration, applies CLI flag overrides and wires the
// application services.
func buildApp(cli *CLI, logger *slog.Logger) (*app.App, error) {
	cfg, err := config.NewLoader().Load()
	if err != nil {
		return nil, err
	}

	if cli.APIKey != "" {
		cfg.API.APIKey = cli.APIKey
	}
	if cli.BaseURL != "" {
		cfg.API.BaseURL = cli.BaseURL
	}
	if cli.Model != "" {
		cfg.API.Model = cli.Model
	}
	if cli.LogLevel != "" {
		cfg.Log.Level = cli.LogLevel
	}

	return app.New(context.Background(), cfg, logger)
}

// parseSubjectKind maps a CLI argument to a subject kind.
func parseSubjectKind(kind string) (histdata.SubjectType, error) {
	switch kind {
	case "character":
		return histdata.SubjectCharacter, nil
	case "event":
		return histdata.SubjectEvent, nil
	default:
		return "", fmt.Errorf("unknown subject kind %q (expected character or event)", kind)
	}
}
