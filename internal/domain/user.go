package domain

import "context"

// User is a record in the API service's users table. It is written through
// explicit SQL rather than the ORM, so it carries no gorm tags; rows are
// serialized positionally as [id, name].
type User struct {
	ID   int64
	Name string
}

// UserRepository defines the data access interface for users.
type UserRepository interface {
	// EnsureSchema creates the users table if it does not already exist.
	// It is idempotent and safe to run against an externally managed schema.
	EnsureSchema(ctx context.Context) error
	Insert(ctx context.Context, name string) (*User, error)
	// List returns all users in whatever order the database produces them.
	List(ctx context.Context) ([]User, error)
}

// UserService defines the business logic interface for users.
type UserService interface {
	AddUser(ctx context.Context, name string) (*User, error)
	ListUsers(ctx context.Context) ([]User, error)
}
