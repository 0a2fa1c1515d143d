package submission

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mpetrov/usersvc/internal/domain"
	"github.com/mpetrov/usersvc/internal/pkg"
)

// SubmissionHandler serves the intake form and accepts form submissions.
type SubmissionHandler struct {
	svc domain.SubmissionService
}

// NewSubmissionHandler creates a new SubmissionHandler with the given service.
func NewSubmissionHandler(svc domain.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{svc: svc}
}

// FormPage renders the submission form.
// GET /
func (h *SubmissionHandler) FormPage(c *gin.Context) {
	c.HTML(http.StatusOK, "submission/form.html", gin.H{
		"Name":  "",
		"Email": "",
	})
}

// Submit accepts a form-encoded (name, email) pair and persists it.
// A request missing either field is rejected with HTTP 400 and creates no row.
// POST /
func (h *SubmissionHandler) Submit(c *gin.Context) {
	var req SubmitRequest
	if err := c.ShouldBind(&req); err != nil {
		if acceptsHTML(c) {
			c.HTML(http.StatusBadRequest, "submission/form.html", gin.H{
				"Error": "Both name and email are required.",
				"Name":  c.PostForm("name"),
				"Email": c.PostForm("email"),
			})
			return
		}
		pkg.ValidationError(c, err)
		return
	}

	if _, err := h.svc.Submit(c.Request.Context(), req.Name, req.Email); err != nil {
		if acceptsHTML(c) {
			c.HTML(domain.HTTPStatusCode(err), "errors/500.html", gin.H{})
			return
		}
		pkg.Error(c, err)
		return
	}

	c.String(http.StatusOK, "Submitted successfully!")
}

// acceptsHTML returns true if the request's Accept header contains "text/html".
func acceptsHTML(c *gin.Context) bool {
	accept := strings.ToLower(c.GetHeader("Accept"))
	return strings.Contains(accept, "text/html")
}
