package user

// AddUserRequest represents the JSON input for creating a new user.
// A missing or empty name is rejected with a validation error rather than
// being passed through to the database as null.
type AddUserRequest struct {
	Name string `json:"name" binding:"required"`
}
