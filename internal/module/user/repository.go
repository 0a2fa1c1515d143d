package user

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mpetrov/usersvc/internal/domain"
)

// All SQL is explicit and parameterized; values never appear in query text.
// The $N placeholder form is understood by both supported drivers.
const (
	sqlInsertUser = `INSERT INTO users (name) VALUES ($1) RETURNING id`

	// No ORDER BY: callers get rows in whatever order the database produces.
	sqlListUsers = `SELECT id, name FROM users`

	ddlUsersPostgres = `CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL
	)`

	ddlUsersSQLite = `CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL
	)`
)

// userRepository implements domain.UserRepository on a plain sql.DB handle.
type userRepository struct {
	db     *sql.DB
	driver string
}

// NewUserRepository creates a UserRepository backed by the given database
// handle. driver selects the DDL dialect for EnsureSchema and must be
// "postgres" or "sqlite".
func NewUserRepository(db *sql.DB, driver string) domain.UserRepository {
	return &userRepository{db: db, driver: driver}
}

// EnsureSchema creates the users table if it does not exist. It runs once at
// startup and is a no-op when the schema is managed out of band.
func (r *userRepository) EnsureSchema(ctx context.Context) error {
	var ddl string
	switch r.driver {
	case "postgres":
		ddl = ddlUsersPostgres
	case "sqlite":
		ddl = ddlUsersSQLite
	default:
		return fmt.Errorf("unsupported driver %q", r.driver)
	}

	if _, err := r.db.ExecContext(ctx, ddl); err != nil {
		return mapError(err)
	}
	return nil
}

// Insert adds one user row and returns the record with its database-assigned id.
func (r *userRepository) Insert(ctx context.Context, name string) (*domain.User, error) {
	u := &domain.User{Name: name}
	if err := r.db.QueryRowContext(ctx, sqlInsertUser, name).Scan(&u.ID); err != nil {
		return nil, mapError(err)
	}
	return u, nil
}

// List returns every user row, unordered.
func (r *userRepository) List(ctx context.Context) ([]domain.User, error) {
	rows, err := r.db.QueryContext(ctx, sqlListUsers)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Name); err != nil {
			return nil, mapError(err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}
	return users, nil
}

// mapError converts database errors to domain errors. Constraint violations
// and connection failures alike surface as internal errors; no detail from
// the driver reaches the response body.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	return domain.NewAppError(domain.CodeInternal, "database error", err)
}
