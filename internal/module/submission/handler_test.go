package submission

import (
	"context"
	"html/template"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/mpetrov/usersvc/internal/domain"
)

type mockSubmissionService struct {
	submitErr error
	calls     int
}

func (m *mockSubmissionService) Submit(ctx context.Context, name, email string) (*domain.Submission, error) {
	m.calls++
	if m.submitErr != nil {
		return nil, m.submitErr
	}
	return &domain.Submission{Name: name, Email: email}, nil
}

func setupRouter(svc domain.SubmissionService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	tmpl := template.Must(template.New("submission/form.html").Parse(`<form>{{ .Error }}</form>`))
	template.Must(tmpl.New("errors/500.html").Parse(`<h1>Server Error</h1>`))
	r.SetHTMLTemplate(tmpl)
	NewModule(NewSubmissionHandler(svc)).RegisterRoutes(r)
	return r
}

func postForm(r *gin.Engine, values url.Values, accept string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestFormPage(t *testing.T) {
	r := setupRouter(&mockSubmissionService{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}
	if !strings.Contains(w.Header().Get("Content-Type"), "text/html") {
		t.Errorf("expected HTML content type, got %q", w.Header().Get("Content-Type"))
	}
}

func TestSubmit(t *testing.T) {
	svc := &mockSubmissionService{}
	r := setupRouter(svc)

	w := postForm(r, url.Values{"name": {"Alice"}, "email": {"alice@example.com"}}, "")

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if w.Body.String() != "Submitted successfully!" {
		t.Errorf("unexpected body: %q", w.Body.String())
	}
	if svc.calls != 1 {
		t.Errorf("expected 1 service call, got %d", svc.calls)
	}
}

func TestSubmit_MissingField(t *testing.T) {
	tests := []struct {
		name   string
		values url.Values
	}{
		{"missing name", url.Values{"email": {"alice@example.com"}}},
		{"missing email", url.Values{"name": {"Alice"}}},
		{"missing both", url.Values{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockSubmissionService{}
			r := setupRouter(svc)

			w := postForm(r, tt.values, "")

			if w.Code != http.StatusBadRequest {
				t.Errorf("expected status 400, got %d", w.Code)
			}
			if svc.calls != 0 {
				t.Errorf("expected no service calls, got %d", svc.calls)
			}
		})
	}
}

func TestSubmit_MissingFieldBrowser(t *testing.T) {
	svc := &mockSubmissionService{}
	r := setupRouter(svc)

	w := postForm(r, url.Values{"name": {"Alice"}}, "text/html,application/xhtml+xml")

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "required") {
		t.Errorf("expected form re-render with error message, got %q", w.Body.String())
	}
}

func TestSubmit_ServiceError(t *testing.T) {
	svc := &mockSubmissionService{submitErr: domain.NewAppError(domain.CodeInternal, "database error", nil)}
	r := setupRouter(svc)

	w := postForm(r, url.Values{"name": {"Alice"}, "email": {"alice@example.com"}}, "")

	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", w.Code)
	}
}

func TestSubmit_RealRepository(t *testing.T) {
	db := setupGormDB(t)
	svc := NewSubmissionService(NewSubmissionRepository(db))
	r := setupRouter(svc)

	w := postForm(r, url.Values{"name": {"Alice"}, "email": {"alice@example.com"}}, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var count int64
	if err := db.Model(&domain.Submission{}).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 row, got %d", count)
	}

	// A rejected request must not create a row.
	w = postForm(r, url.Values{"name": {"Bob"}}, "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}
	if err := db.Model(&domain.Submission{}).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected row count unchanged, got %d", count)
	}
}
