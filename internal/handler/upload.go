package handler

import (
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
)

const maxUploadSize = 5 << 20 // 5 MB

var allowedImageExts = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// UploadHandler stores event banner images on disk and serves them back
// under /uploads/.
type UploadHandler struct {
	dir string
	log *zap.Logger
}

// NewUploadHandler constructs an UploadHandler, creating the upload
// directory if needed.
func NewUploadHandler(dir string, log *zap.Logger) (*UploadHandler, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &UploadHandler{dir: dir, log: log}, nil
}

// Upload handles POST /api/upload. It accepts a single image in the "image"
// form field and responds with the public URL of the stored file.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeError(w, http.StatusBadRequest, "file too large or malformed upload")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		writeError(w, http.StatusBadRequest, "No file uploaded")
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedImageExts[ext] {
		writeError(w, http.StatusBadRequest, "Only image files are allowed")
		return
	}

	name := fmt.Sprintf("%d-%d%s", time.Now().UnixMilli(), rand.Intn(1_000_000_000), ext)
	dst, err := os.Create(filepath.Join(h.dir, name))
	if err != nil {
		h.log.Error("create upload file", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to store file")
		return
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		h.log.Error("write upload file", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to store file")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"url": "/uploads/" + name})
}

// ServeUploads returns a handler serving the stored files.
func (h *UploadHandler) ServeUploads() http.Handler {
	return http.StripPrefix("/uploads/", http.FileServer(http.Dir(h.dir)))
}
