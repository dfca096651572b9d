package domain

import "context"

// Database defines lifecycle operations for the underlying database.
// Each implementation (SQLite, Postgres) owns its own migration files,
// so the backend is swappable by connection string alone.
type Database interface {
	Migrate(ctx context.Context) error
	Ping(ctx context.Context) error
	Close() error
}

// Store is a Database that also vends the user and item collections.
type Store interface {
	Database
	Users() UserRepository
	Items() ItemRepository
}
