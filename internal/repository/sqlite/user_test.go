package sqlite_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/msomdec/items-api/internal/domain"
	"github.com/msomdec/items-api/internal/repository/sqlite"
)

func newTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := sqlite.New(dbPath)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestUserRepository_Create(t *testing.T) {
	db := newTestDB(t)
	repo := db.Users()
	ctx := context.Background()

	user := &domain.User{
		Name:         "Test User",
		Email:        "test@example.com",
		PasswordHash: "hashedpw",
	}

	if err := repo.Create(ctx, user); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if user.ID == "" {
		t.Fatal("expected user ID to be set after create")
	}
}

func TestUserRepository_Create_DuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	repo := db.Users()
	ctx := context.Background()

	user1 := &domain.User{Name: "User 1", Email: "dup@example.com", PasswordHash: "hash1"}
	if err := repo.Create(ctx, user1); err != nil {
		t.Fatalf("Create user1: %v", err)
	}

	user2 := &domain.User{Name: "User 2", Email: "dup@example.com", PasswordHash: "hash2"}
	err := repo.Create(ctx, user2)
	if !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestUserRepository_Create_EmailIsCaseSensitive(t *testing.T) {
	db := newTestDB(t)
	repo := db.Users()
	ctx := context.Background()

	if err := repo.Create(ctx, &domain.User{Name: "Lower", Email: "case@example.com", PasswordHash: "h"}); err != nil {
		t.Fatalf("Create lower: %v", err)
	}
	if err := repo.Create(ctx, &domain.User{Name: "Upper", Email: "Case@example.com", PasswordHash: "h"}); err != nil {
		t.Fatalf("Create upper: %v", err)
	}
}

func TestUserRepository_GetByEmail(t *testing.T) {
	db := newTestDB(t)
	repo := db.Users()
	ctx := context.Background()

	user := &domain.User{Name: "By Email", Email: "byemail@example.com", PasswordHash: "hash"}
	if err := repo.Create(ctx, user); err != nil {
		t.Fatalf("Create: %v", err)
	}

	found, err := repo.GetByEmail(ctx, "byemail@example.com")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}

	if found.ID != user.ID {
		t.Fatalf("expected id %s, got %s", user.ID, found.ID)
	}
	if found.Name != user.Name {
		t.Fatalf("expected name %q, got %q", user.Name, found.Name)
	}
	if found.PasswordHash != "hash" {
		t.Fatalf("expected password hash to round-trip, got %q", found.PasswordHash)
	}
}

func TestUserRepository_GetByEmail_NotFound(t *testing.T) {
	db := newTestDB(t)
	repo := db.Users()
	ctx := context.Background()

	_, err := repo.GetByEmail(ctx, "nonexistent@example.com")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
