package submission

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/mpetrov/usersvc/internal/domain"
)

// submissionService implements domain.SubmissionService.
type submissionService struct {
	repo domain.SubmissionRepository
}

// NewSubmissionService creates a new SubmissionService with the given repository.
func NewSubmissionService(repo domain.SubmissionRepository) domain.SubmissionService {
	return &submissionService{repo: repo}
}

// Submit validates input, builds a Submission, and persists it.
func (s *submissionService) Submit(ctx context.Context, name, email string) (*domain.Submission, error) {
	if err := validateNameEmail(name, email); err != nil {
		return nil, err
	}

	sub := &domain.Submission{
		Name:  name,
		Email: email,
	}

	if err := s.repo.Create(ctx, sub); err != nil {
		return nil, err
	}

	return sub, nil
}

// validateNameEmail checks presence and the column size limits.
func validateNameEmail(name, email string) error {
	if strings.TrimSpace(name) == "" {
		return domain.NewAppError(domain.CodeValidation, "name is required", nil)
	}
	if utf8.RuneCountInString(name) > 80 {
		return domain.NewAppError(domain.CodeValidation, "name must be at most 80 characters", nil)
	}
	if strings.TrimSpace(email) == "" {
		return domain.NewAppError(domain.CodeValidation, "email is required", nil)
	}
	if utf8.RuneCountInString(email) > 120 {
		return domain.NewAppError(domain.CodeValidation, "email must be at most 120 characters", nil)
	}
	return nil
}
