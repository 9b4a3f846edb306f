package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/bordenet/pr-faq-assistant/internal/db"
)

// ErrNoDatabase is returned by commands that need persistent storage when no DATABASE_URL is set
var ErrNoDatabase = errors.New("DATABASE_URL is required for this command")

// openStore opens the persistent project store. Tests replace it.
var openStore = func(ctx context.Context) (db.Store, error) {
	if appConfig.DatabaseURL == "" {
		return nil, ErrNoDatabase
	}
	database, err := db.Connect(ctx, appConfig.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return database, nil
}
