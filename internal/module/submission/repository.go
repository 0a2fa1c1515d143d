package submission

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/mpetrov/usersvc/internal/domain"
	"github.com/mpetrov/usersvc/internal/pkg"
)

// submissionRepository implements domain.SubmissionRepository using GORM.
type submissionRepository struct {
	db *gorm.DB
}

// NewSubmissionRepository creates a SubmissionRepository backed by the given
// GORM database.
func NewSubmissionRepository(db *gorm.DB) domain.SubmissionRepository {
	return &submissionRepository{db: db}
}

// Create inserts a new submission. The insert runs in its own transaction so
// each request is bounded by exactly one commit.
func (r *submissionRepository) Create(ctx context.Context, s *domain.Submission) error {
	err := pkg.WithTx(r.db.WithContext(ctx), func(tx *gorm.DB) error {
		return tx.Create(s).Error
	})
	if err != nil {
		return mapError(err)
	}
	return nil
}

// mapError converts GORM errors to domain errors.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || isDuplicateKeyError(err) {
		return domain.NewAppError(domain.CodeAlreadyExists, "already exists", err)
	}
	return domain.NewAppError(domain.CodeInternal, "database error", err)
}

// isDuplicateKeyError detects unique constraint violations by examining the
// error message. This is needed because not all GORM dialectors translate
// driver-level errors to gorm.ErrDuplicatedKey (e.g. the pure-Go SQLite driver).
func isDuplicateKeyError(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "duplicate entry")
}
