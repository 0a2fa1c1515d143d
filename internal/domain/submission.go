package domain

import "context"

// Submission is a (name, email) record captured by the form service.
// Records are immutable after insert; there are no update or delete paths.
type Submission struct {
	BaseModel
	Name  string `gorm:"size:80;not null" json:"name"`
	Email string `gorm:"size:120;not null" json:"email"`
}

// SubmissionRepository defines the data access interface for submissions.
type SubmissionRepository interface {
	Create(ctx context.Context, s *Submission) error
}

// SubmissionService defines the business logic interface for submissions.
type SubmissionService interface {
	Submit(ctx context.Context, name, email string) (*Submission, error)
}
