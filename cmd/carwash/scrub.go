package main

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/colindecarlo/carwash"
	"github.com/colindecarlo/carwash/faker"
	"github.com/colindecarlo/carwash/sqlstore"
)

// scrub loads the settings, connects to the database and scrubs the
// requested tables
func scrub(ctx context.Context, args scrubArgs, logger *zap.Logger) error {

	cfg, err := carwash.LoadToml(args.settingsFile)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	store, err := sqlstore.Open(ctx, sqlstore.Config{
		Driver:   args.driver,
		DSN:      args.dsn,
		PageSize: args.pageSize,
	}, logger)
	if err != nil {
		return fmt.Errorf("%w: %w", carwash.ErrStore, err)
	}
	defer store.Close()

	logger.Info("starting scrub",
		zap.String("settings", args.settingsFile),
		zap.Strings("tables", carwash.Targets(cfg, args.tables)),
	)

	scrubber := carwash.NewScrubber(store, faker.New(args.seed), carwash.WithLogger(logger))
	return scrubber.Run(ctx, cfg, args.tables...)
}

// errorClass names the kind of failure so an operator knows whether to
// fix the settings or retry
func errorClass(err error) string {
	switch {
	case errors.Is(err, carwash.ErrConfiguration):
		return "configuration"
	case errors.Is(err, carwash.ErrArityMismatch):
		return "generator arguments"
	case errors.Is(err, carwash.ErrStore):
		return "database"
	}
	return "formatter"
}
