package user

import (
	"context"
	"strings"

	"github.com/mpetrov/usersvc/internal/domain"
)

// userService implements domain.UserService.
type userService struct {
	repo domain.UserRepository
}

// NewUserService creates a new UserService with the given repository.
func NewUserService(repo domain.UserRepository) domain.UserService {
	return &userService{repo: repo}
}

// AddUser validates the name and persists a new user. The name is stored as
// submitted; only blank values are rejected.
func (s *userService) AddUser(ctx context.Context, name string) (*domain.User, error) {
	if strings.TrimSpace(name) == "" {
		return nil, domain.NewAppError(domain.CodeValidation, "name is required", nil)
	}
	return s.repo.Insert(ctx, name)
}

// ListUsers returns all users in database order.
func (s *userService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.repo.List(ctx)
}
