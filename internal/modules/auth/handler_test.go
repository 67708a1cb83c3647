package auth

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter(f *fixture) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(f.svc).RegisterPublicRoutes(r.Group("/api"), func(c *gin.Context) { c.Next() })
	return r
}

func post(t *testing.T, r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(body))
	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandler_ForgotPassword_SameAnswerForUnknownEmail(t *testing.T) {
	f := newFixture(t)
	r := newRouter(f)

	known := post(t, r, "/api/auth/forgot-password", gin.H{"email": "lina@example.com"})
	unknown := post(t, r, "/api/auth/forgot-password", gin.H{"email": "ghost@example.com"})

	assert.Equal(t, http.StatusOK, known.Code)
	assert.Equal(t, http.StatusOK, unknown.Code)
	assert.JSONEq(t, known.Body.String(), unknown.Body.String())
}

func TestHandler_ForgotPassword_MailFailure(t *testing.T) {
	f := newFixture(t)
	f.mailer.err = errors.New("smtp down")

	w := post(t, newRouter(f), "/api/auth/forgot-password", gin.H{"email": "lina@example.com"})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "EMAIL_SEND_FAILED")
}

func TestHandler_ResetPassword(t *testing.T) {
	f := newFixture(t)
	r := newRouter(f)
	require.Equal(t, http.StatusOK, post(t, r, "/api/auth/forgot-password", gin.H{"email": "lina@example.com"}).Code)

	w := post(t, r, "/api/auth/reset-password/nope", gin.H{"password": "new-secret"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_TOKEN")

	w = post(t, r, "/api/auth/reset-password/tok-123", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "VALIDATION_ERROR")

	w = post(t, r, "/api/auth/reset-password/tok-123", gin.H{"password": "new-secret"})
	assert.Equal(t, http.StatusOK, w.Code)
}
