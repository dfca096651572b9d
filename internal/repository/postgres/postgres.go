// Package postgres provides the PostgreSQL-backed domain.Store, using pgx
// through database/sql and goose for embedded migrations.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/msomdec/items-api/internal/domain"
	"github.com/msomdec/items-api/internal/repository/postgres/migrations"
	"github.com/pressly/goose/v3"
)

const uniqueViolation = "23505"

// DB is the PostgreSQL-backed domain.Store.
type DB struct {
	SqlDB *sql.DB
	users *UserRepository
	items *ItemRepository
}

// New parses dsn, opens a pooled connection and verifies it is reachable.
func New(ctx context.Context, dsn string) (*DB, error) {
	cfg, err := pgx.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	sqlDB := stdlib.OpenDB(*cfg)
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 8*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return Wrap(sqlDB), nil
}

// Wrap builds a DB around an already opened connection pool.
func Wrap(sqlDB *sql.DB) *DB {
	return &DB{
		SqlDB: sqlDB,
		users: NewUserRepository(sqlDB),
		items: NewItemRepository(sqlDB),
	}
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// Migrate applies the embedded migrations with goose.
func (db *DB) Migrate(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set dialect: %w", err)
	}
	if err := gooseUpContext(ctx, db.SqlDB, "."); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
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

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
