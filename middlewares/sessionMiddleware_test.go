package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func doRequest(t *testing.T, token string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(SessionMiddleware())
	r.GET("/export", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/export", nil)
	if token != "" {
		req.Header.Set("token", token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSessionMiddlewareOpenWithoutTokens(t *testing.T) {
	t.Setenv("EXPORT_API_TOKENS", "")
	if w := doRequest(t, ""); w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}

func TestSessionMiddlewareEnforcesTokens(t *testing.T) {
	t.Setenv("EXPORT_API_TOKENS", "alpha, beta")

	if w := doRequest(t, "alpha"); w.Code != http.StatusOK {
		t.Errorf("valid token status = %d, want 200", w.Code)
	}
	if w := doRequest(t, "beta"); w.Code != http.StatusOK {
		t.Errorf("second token status = %d, want 200", w.Code)
	}
	if w := doRequest(t, "gamma"); w.Code != http.StatusUnauthorized {
		t.Errorf("bad token status = %d, want 401", w.Code)
	}
	if w := doRequest(t, ""); w.Code != http.StatusUnauthorized {
		t.Errorf("missing token status = %d, want 401", w.Code)
	}
}
