package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/msomdec/items-api/internal/domain"
	"github.com/msomdec/items-api/internal/repository/sqlite/migrations"
	_ "modernc.org/sqlite"
)

// DB is the SQLite-backed domain.Store.
type DB struct {
	SqlDB *sql.DB
	users *UserRepository
	items *ItemRepository
}

// New opens a SQLite database at the given path and configures it for use.
// It enables WAL mode. The schema has no foreign keys, so the
// foreign_keys pragma is left at its default.
func New(dbPath string) (*DB, error) {
	sqlDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Enable WAL mode for better concurrent read performance.
	if _, err := sqlDB.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	// SQLite serializes writers; one connection also keeps :memory: databases alive.
	sqlDB.SetMaxOpenConns(1)

	if err := sqlDB.PingContext(context.Background()); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &DB{
		SqlDB: sqlDB,
		users: NewUserRepository(sqlDB),
		items: NewItemRepository(sqlDB),
	}, nil
}

// Migrate applies the embedded schema migrations.
func (db *DB) Migrate(ctx context.Context) error {
	return migrations.Run(ctx, db.SqlDB)
}

func (db *DB) Ping(ctx context.Context) error {
	return db.SqlDB.PingContext(ctx)
}

func (db *DB) Close() error {
	return db.SqlDB.Close()
}

func (db *DB) Users() domain.UserRepository {
	return db.users
}

func (db *DB) Items() domain.ItemRepository {
	return db.items
}
