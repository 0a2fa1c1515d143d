package submission

import "github.com/gin-gonic/gin"

// SubmissionModule implements the app.Module interface for the intake form.
type SubmissionModule struct {
	handler *SubmissionHandler
}

// NewModule creates a new SubmissionModule with the given handler.
// Panics if h is nil.
func NewModule(h *SubmissionHandler) *SubmissionModule {
	if h == nil {
		panic("submission.NewModule: handler must not be nil")
	}
	return &SubmissionModule{handler: h}
}

// RegisterRoutes registers the form routes.
func (m *SubmissionModule) RegisterRoutes(r *gin.Engine) {
	r.GET("/", m.handler.FormPage)
	r.POST("/", m.handler.Submit)
}
