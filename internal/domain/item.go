package domain

import (
	"context"
	"time"
)

// Item is a named entry owned by exactly one user. Owner is set at creation
// and never changes.
type Item struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
	Owner     string
}

// ItemRepository defines persistence operations for items.
type ItemRepository interface {
	// List returns every item, most recently updated first.
	List(ctx context.Context) ([]Item, error)
	GetByID(ctx context.Context, id string) (*Item, error)
	Create(ctx context.Context, item *Item) error
	// Update writes name and timestamps. The owner column is left untouched.
	Update(ctx context.Context, item *Item) error
	Delete(ctx context.Context, id string) error
}
