// Package repository selects the store backend from a connection URL.
package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/msomdec/items-api/internal/domain"
	"github.com/msomdec/items-api/internal/repository/postgres"
	"github.com/msomdec/items-api/internal/repository/sqlite"
)

const sqliteScheme = "sqlite://"

// Open connects to the store named by databaseURL. Supported forms are
// sqlite://<path> and postgres:// or postgresql:// DSNs.
func Open(ctx context.Context, databaseURL string) (domain.Store, error) {
	switch {
	case strings.HasPrefix(databaseURL, sqliteScheme):
		path := strings.TrimPrefix(databaseURL, sqliteScheme)
		if path == "" {
			return nil, fmt.Errorf("sqlite url %q has no path", databaseURL)
		}
		db, err := sqlite.New(path)
		if err != nil {
			return nil, err
		}
		return db, nil
	case strings.HasPrefix(databaseURL, "postgres://"), strings.HasPrefix(databaseURL, "postgresql://"):
		db, err := postgres.New(ctx, databaseURL)
		if err != nil {
			return nil, err
		}
		return db, nil
	default:
		return nil, fmt.Errorf("unsupported database url scheme in %q", redact(databaseURL))
	}
}

// redact drops everything after the scheme so credentials never reach logs.
func redact(databaseURL string) string {
	if i := strings.Index(databaseURL, "://"); i >= 0 {
		return databaseURL[:i+3] + "..."
	}
	return "..."
}
