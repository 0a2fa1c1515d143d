package submission

// SubmitRequest represents the form-encoded input for creating a submission.
// Both fields are required; length limits mirror the column sizes.
type SubmitRequest struct {
	Name  string `form:"name" json:"name" binding:"required,max=80"`
	Email string `form:"email" json:"email" binding:"required,max=120"`
}
