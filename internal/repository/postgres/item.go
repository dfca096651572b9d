package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/msomdec/items-api/internal/dbx"
	"github.com/msomdec/items-api/internal/domain"
)

// ItemRepository implements domain.ItemRepository using PostgreSQL.
type ItemRepository struct {
	db dbx.DBTX
}

func NewItemRepository(db dbx.DBTX) *ItemRepository {
	return &ItemRepository{db: db}
}

func (r *ItemRepository) List(ctx context.Context) ([]domain.Item, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, created_at, updated_at, owner
		 FROM items ORDER BY updated_at DESC, created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	items := []domain.Item{}
	for rows.Next() {
		var it domain.Item
		if err := rows.Scan(&it.ID, &it.Name, &it.CreatedAt, &it.UpdatedAt, &it.Owner); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		it.CreatedAt = it.CreatedAt.UTC()
		it.UpdatedAt = it.UpdatedAt.UTC()
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *ItemRepository) GetByID(ctx context.Context, id string) (*domain.Item, error) {
	// Non-UUID ids would fail the cast in Postgres; no such row can exist.
	if uuid.Validate(id) != nil {
		return nil, domain.ErrNotFound
	}

	it := &domain.Item{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, created_at, updated_at, owner
		 FROM items WHERE id = $1`, id,
	).Scan(&it.ID, &it.Name, &it.CreatedAt, &it.UpdatedAt, &it.Owner)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get item by id: %w", err)
	}
	it.CreatedAt = it.CreatedAt.UTC()
	it.UpdatedAt = it.UpdatedAt.UTC()
	return it, nil
}

func (r *ItemRepository) Create(ctx context.Context, item *domain.Item) error {
	id := uuid.NewString()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO items (id, name, created_at, updated_at, owner)
		 VALUES ($1, $2, $3, $4, $5)`,
		id, item.Name, item.CreatedAt.UTC(), item.UpdatedAt.UTC(), item.Owner,
	)
	if err != nil {
		return fmt.Errorf("insert item: %w", err)
	}

	item.ID = id
	return nil
}

func (r *ItemRepository) Update(ctx context.Context, item *domain.Item) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE items SET name = $1, created_at = $2, updated_at = $3
		 WHERE id = $4`,
		item.Name, item.CreatedAt.UTC(), item.UpdatedAt.UTC(), item.ID,
	)
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ItemRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM items WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
