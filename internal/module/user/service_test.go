package user

import (
	"context"
	"testing"

	"github.com/mpetrov/usersvc/internal/domain"
)

// mockRepo is an in-memory domain.UserRepository for service tests.
type mockRepo struct {
	users     []domain.User
	nextID    int64
	insertErr error
	listErr   error
}

func newMockRepo() *mockRepo {
	return &mockRepo{nextID: 1}
}

func (m *mockRepo) EnsureSchema(ctx context.Context) error { return nil }

func (m *mockRepo) Insert(ctx context.Context, name string) (*domain.User, error) {
	if m.insertErr != nil {
		return nil, m.insertErr
	}
	u := domain.User{ID: m.nextID, Name: name}
	m.nextID++
	m.users = append(m.users, u)
	return &u, nil
}

func (m *mockRepo) List(ctx context.Context) ([]domain.User, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.users, nil
}

func TestAddUser(t *testing.T) {
	repo := newMockRepo()
	svc := NewUserService(repo)

	u, err := svc.AddUser(context.Background(), "Alice")
	if err != nil {
		t.Fatalf("AddUser: %v", err)
	}
	if u.ID != 1 || u.Name != "Alice" {
		t.Errorf("got %+v", u)
	}
}

func TestAddUser_BlankName(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"whitespace", "   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newMockRepo()
			svc := NewUserService(repo)

			_, err := svc.AddUser(context.Background(), tt.input)
			if !domain.IsValidation(err) {
				t.Errorf("err = %v; want validation error", err)
			}
			if len(repo.users) != 0 {
				t.Error("no row must be created for a blank name")
			}
		})
	}
}

func TestAddUser_NamePreservedVerbatim(t *testing.T) {
	repo := newMockRepo()
	svc := NewUserService(repo)

	// Inner whitespace and surrounding characters are stored as submitted.
	u, err := svc.AddUser(context.Background(), "  Alice Smith  ")
	if err != nil {
		t.Fatalf("AddUser: %v", err)
	}
	if u.Name != "  Alice Smith  " {
		t.Errorf("Name = %q; want verbatim value", u.Name)
	}
}

func TestAddUser_RepositoryError(t *testing.T) {
	repo := newMockRepo()
	repo.insertErr = domain.NewAppError(domain.CodeInternal, "database error", nil)
	svc := NewUserService(repo)

	_, err := svc.AddUser(context.Background(), "Alice")
	if !domain.IsInternal(err) {
		t.Errorf("err = %v; want internal", err)
	}
}

func TestListUsers(t *testing.T) {
	repo := newMockRepo()
	svc := NewUserService(repo)

	if _, err := svc.AddUser(context.Background(), "Alice"); err != nil {
		t.Fatalf("AddUser: %v", err)
	}

	users, err := svc.ListUsers(context.Background())
	if err != nil {
		t.Fatalf("ListUsers: %v", err)
	}
	if len(users) != 1 || users[0].Name != "Alice" {
		t.Errorf("got %+v", users)
	}
}
