package upload

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

func setupRouter(t *testing.T, maxSize int64) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	dir := t.TempDir()
	h := NewHandler(NewService(dir, maxSize))

	r := gin.New()
	h.RegisterRoutes(r.Group("/api"))
	h.RegisterStatic(r)
	return r, dir
}

func multipartRequest(t *testing.T, field, filename string, content []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload/image", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestUpload_StoresPNGUnderRandomName(t *testing.T) {
	r, dir := setupRouter(t, 0)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, multipartRequest(t, "image", "../../etc/passwd.png", pngHeader))

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var body struct {
		Data Stored `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, strings.HasSuffix(body.Data.Filename, ".png"))
	assert.NotContains(t, body.Data.Filename, "passwd")
	assert.Equal(t, "/uploads/"+body.Data.Filename, body.Data.URL)

	onDisk, err := os.ReadFile(filepath.Join(dir, body.Data.Filename))
	require.NoError(t, err)
	assert.Equal(t, pngHeader, onDisk)

	get := httptest.NewRecorder()
	r.ServeHTTP(get, httptest.NewRequest(http.MethodGet, body.Data.URL, nil))
	assert.Equal(t, http.StatusOK, get.Code)
}

func TestUpload_AcceptsPDF(t *testing.T) {
	r, _ := setupRouter(t, 0)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, multipartRequest(t, "image", "statement.pdf", []byte("%PDF-1.4\n%âãÏÓ\n1 0 obj\n<<>>\nendobj\n")))

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), ".pdf")
}

func TestUpload_RejectsDisallowedType(t *testing.T) {
	r, dir := setupRouter(t, 0)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, multipartRequest(t, "image", "evil.png", []byte("#!/bin/sh\necho hi\n")))

	assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestUpload_MissingField(t *testing.T) {
	r, _ := setupRouter(t, 0)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, multipartRequest(t, "file", "a.png", pngHeader))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "NO_FILE")
}

func TestUpload_TooLarge(t *testing.T) {
	r, _ := setupRouter(t, 16)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, multipartRequest(t, "image", "a.png", append(pngHeader, make([]byte, 64)...)))

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}
