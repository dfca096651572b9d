package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/msomdec/items-api/internal/domain"
)

// ItemInput is the client-supplied part of an item. Timestamps are raw
// strings; empty means "not supplied".
type ItemInput struct {
	Name      string
	Owner     string
	CreatedAt string
	UpdatedAt string
}

// ItemService handles item listing and owner-checked mutations.
type ItemService struct {
	items domain.ItemRepository
	now   func() time.Time
}

// NewItemService creates a new ItemService.
func NewItemService(items domain.ItemRepository) *ItemService {
	return &ItemService{items: items, now: time.Now}
}

// List returns all items, most recently updated first.
func (s *ItemService) List(ctx context.Context) ([]domain.Item, error) {
	items, err := s.items.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return items, nil
}

// Create stores a new item for in.Owner, saved in canonical UUID form. The
// owner is not checked against the user collection.
func (s *ItemService) Create(ctx context.Context, in ItemInput) (*domain.Item, error) {
	if in.Owner == "" {
		return nil, domain.Invalid("Owner (userId) is required to create an item.")
	}
	owner, err := uuid.Parse(in.Owner)
	if err != nil {
		return nil, domain.Invalid("Owner (userId) must be a valid user id.")
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, domain.Invalid("Name is required.")
	}

	now := normalizeTime(s.now())
	createdAt, err := parseTimestamp("createdAt", in.CreatedAt, now)
	if err != nil {
		return nil, err
	}
	updatedAt, err := parseTimestamp("updatedAt", in.UpdatedAt, now)
	if err != nil {
		return nil, err
	}

	item := &domain.Item{
		Name:      in.Name,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
		Owner:     owner.String(),
	}
	if err := s.items.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("create item: %w", err)
	}
	return item, nil
}

// Update overwrites name and timestamps of item id when in.Owner matches
// the stored owner. The owner itself is never reassigned. An absent
// createdAt keeps the stored value; an absent updatedAt becomes now.
func (s *ItemService) Update(ctx context.Context, id string, in ItemInput) (*domain.Item, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, domain.Invalid("Name is required.")
	}

	now := normalizeTime(s.now())
	var createdAt time.Time
	if in.CreatedAt != "" {
		t, err := parseTimestamp("createdAt", in.CreatedAt, now)
		if err != nil {
			return nil, err
		}
		createdAt = t
	}
	updatedAt, err := parseTimestamp("updatedAt", in.UpdatedAt, now)
	if err != nil {
		return nil, err
	}

	item, err := s.items.GetByID(ctx, canonicalID(id))
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	if !sameID(item.Owner, in.Owner) {
		return nil, domain.ErrForbidden
	}

	item.Name = in.Name
	if !createdAt.IsZero() {
		item.CreatedAt = createdAt
	}
	item.UpdatedAt = updatedAt

	if err := s.items.Update(ctx, item); err != nil {
		return nil, fmt.Errorf("update item: %w", err)
	}
	return item, nil
}

// Delete removes item id when userID matches the stored owner.
func (s *ItemService) Delete(ctx context.Context, id, userID string) error {
	if userID == "" {
		return domain.Invalid("Missing userId parameter")
	}

	item, err := s.items.GetByID(ctx, canonicalID(id))
	if err != nil {
		return fmt.Errorf("get item: %w", err)
	}
	if !sameID(item.Owner, userID) {
		return domain.ErrForbidden
	}

	if err := s.items.Delete(ctx, item.ID); err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}
