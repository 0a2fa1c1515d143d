package user

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mpetrov/usersvc/internal/domain"
	"github.com/mpetrov/usersvc/internal/pkg"
)

// UserHandler handles the JSON API endpoints for the user resource.
type UserHandler struct {
	svc domain.UserService
}

// NewUserHandler creates a new UserHandler with the given service.
func NewUserHandler(svc domain.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// Welcome handles GET /. It is a static banner with no database dependency.
func (h *UserHandler) Welcome(c *gin.Context) {
	c.String(http.StatusOK, "Welcome to the User API!")
}

// Add handles POST /add.
func (h *UserHandler) Add(c *gin.Context) {
	var req AddUserRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	u, err := h.svc.AddUser(c.Request.Context(), req.Name)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("%s added!", u.Name),
	})
}

// List handles GET /users. Rows are serialized positionally as [id, name]
// tuples, in the order the database returned them.
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.svc.ListUsers(c.Request.Context())
	if err != nil {
		pkg.Error(c, err)
		return
	}

	// Non-nil so an empty table marshals as [] rather than null.
	rows := make([][]any, 0, len(users))
	for _, u := range users {
		rows = append(rows, []any{u.ID, u.Name})
	}

	c.JSON(http.StatusOK, rows)
}
