package migrations_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/msomdec/items-api/internal/repository/sqlite/migrations"
	_ "modernc.org/sqlite"
)

func openMemory(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	// A second pooled connection would see a different :memory: database.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestRunMigrations(t *testing.T) {
	db := openMemory(t)
	ctx := context.Background()

	if err := migrations.Run(ctx, db); err != nil {
		t.Fatalf("first migration run: %v", err)
	}

	_, err := db.ExecContext(ctx,
		"INSERT INTO items (id, name, created_at, updated_at, owner) VALUES (?, ?, ?, ?, ?)",
		"i-1", "Item", "2024-01-01 00:00:00+00:00", "2024-01-01 00:00:00+00:00", "u-1",
	)
	if err != nil {
		t.Fatalf("insert into items: %v", err)
	}
}

func TestRunMigrationsIdempotent(t *testing.T) {
	db := openMemory(t)
	ctx := context.Background()

	// Run migrations twice; second run should be a no-op.
	if err := migrations.Run(ctx, db); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if err := migrations.Run(ctx, db); err != nil {
		t.Fatalf("second run (idempotent): %v", err)
	}

	var count int
	err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM goose_db_version WHERE version_id > 0").Scan(&count)
	if err != nil {
		t.Fatalf("count goose_db_version: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 migration records, got %d", count)
	}
}
