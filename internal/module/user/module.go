package user

import "github.com/gin-gonic/gin"

// UserModule implements the app.Module interface for the user API.
type UserModule struct {
	handler *UserHandler
}

// NewModule creates a new UserModule with the given handler.
// Panics if h is nil.
func NewModule(h *UserHandler) *UserModule {
	if h == nil {
		panic("user.NewModule: handler must not be nil")
	}
	return &UserModule{handler: h}
}

// RegisterRoutes registers the user API routes.
func (m *UserModule) RegisterRoutes(r *gin.Engine) {
	r.GET("/", m.handler.Welcome)
	r.POST("/add", m.handler.Add)
	r.GET("/users", m.handler.List)
}
