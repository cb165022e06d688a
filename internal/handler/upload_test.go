package handler

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

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func multipartBody(t *testing.T, field, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestUpload_StoresImage(t *testing.T) {
	dir := t.TempDir()
	h, err := NewUploadHandler(dir, zap.NewNop())
	require.NoError(t, err)

	body, contentType := multipartBody(t, "image", "banner.png", []byte("not really a png"))
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()

	h.Upload(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.True(t, strings.HasPrefix(resp["url"], "/uploads/"))
	assert.True(t, strings.HasSuffix(resp["url"], ".png"))

	stored := filepath.Join(dir, strings.TrimPrefix(resp["url"], "/uploads/"))
	data, err := os.ReadFile(stored)
	require.NoError(t, err)
	assert.Equal(t, []byte("not really a png"), data)
}

func TestUpload_RejectsNonImage(t *testing.T) {
	h, err := NewUploadHandler(t.TempDir(), zap.NewNop())
	require.NoError(t, err)

	body, contentType := multipartBody(t, "image", "payload.exe", []byte("nope"))
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()

	h.Upload(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpload_MissingFile(t *testing.T) {
	h, err := NewUploadHandler(t.TempDir(), zap.NewNop())
	require.NoError(t, err)

	body, contentType := multipartBody(t, "wrong_field", "banner.png", []byte("x"))
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()

	h.Upload(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
