package user

import (
	"context"
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/mpetrov/usersvc/internal/domain"
)

// setupTestDB opens an in-memory SQLite database for the raw-SQL repository.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	// In-memory databases are per-connection.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	return db
}

func setupRepo(t *testing.T) domain.UserRepository {
	t.Helper()
	repo := NewUserRepository(setupTestDB(t), "sqlite")
	if err := repo.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("EnsureSchema: %v", err)
	}
	return repo
}

func TestEnsureSchema_Idempotent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db, "sqlite")
	ctx := context.Background()

	if err := repo.EnsureSchema(ctx); err != nil {
		t.Fatalf("first EnsureSchema: %v", err)
	}
	if err := repo.EnsureSchema(ctx); err != nil {
		t.Fatalf("second EnsureSchema: %v", err)
	}
}

func TestEnsureSchema_UnsupportedDriver(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t), "mysql")
	if err := repo.EnsureSchema(context.Background()); err == nil {
		t.Error("expected error for unsupported driver")
	}
}

func TestInsertAndList(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	alice, err := repo.Insert(ctx, "Alice")
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if alice.ID == 0 {
		t.Fatal("expected non-zero ID after Insert")
	}
	if alice.Name != "Alice" {
		t.Errorf("Name = %q; want Alice", alice.Name)
	}

	bob, err := repo.Insert(ctx, "Bob")
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if bob.ID == alice.ID {
		t.Error("expected distinct ids")
	}

	users, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("len(users) = %d; want 2", len(users))
	}

	names := map[string]bool{}
	for _, u := range users {
		names[u.Name] = true
	}
	if !names["Alice"] || !names["Bob"] {
		t.Errorf("missing inserted rows: %+v", users)
	}
}

func TestList_NoRows(t *testing.T) {
	repo := setupRepo(t)

	users, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(users) != 0 {
		t.Errorf("len(users) = %d; want 0", len(users))
	}
}

func TestInsert_NullNameRejectedByConstraint(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db, "sqlite")
	ctx := context.Background()
	if err := repo.EnsureSchema(ctx); err != nil {
		t.Fatalf("EnsureSchema: %v", err)
	}

	// Bypass the service layer's validation and hit the NOT NULL constraint
	// directly; the repository must map it to an internal error.
	_, err := db.ExecContext(ctx, "INSERT INTO users (name) VALUES (NULL)")
	if err == nil {
		t.Fatal("expected NOT NULL constraint violation")
	}
	if mapped := mapError(err); !domain.IsInternal(mapped) {
		t.Errorf("mapError = %v; want internal", mapped)
	}
}
