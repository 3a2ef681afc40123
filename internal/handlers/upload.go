package handlers

import (
	"encoding/json"
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nfnt/resize"

	_ "image/gif"
	_ "image/png"
)

const (
	// maxUploadBytes matches the original 1 GB cap.
	maxUploadBytes = 1 << 30

	// thumbnails are generated for anything wider or taller than this.
	thumbMaxDim = 512
)

var uploadDir string

// InitUploads sets the directory uploaded images are written to, creating
// it if needed. Called once from main.
func InitUploads(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}
	uploadDir = dir
	return nil
}

// UploadResponse is the body of POST /api/upload.
type UploadResponse struct {
	Success      bool   `json:"success"`
	ImageURL     string `json:"imageUrl,omitempty"`
	ThumbnailURL string `json:"thumbnailUrl,omitempty"`
	Filename     string `json:"filename,omitempty"`
	Error        string `json:"error,omitempty"`
}

// UploadFile stores an image on local disk and returns its public URL.
// Only images are accepted; oversized bodies are rejected by MaxBytesReader.
func UploadFile(w http.ResponseWriter, r *http.Request) {
	if uploadDir == "" {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(UploadResponse{
			Success: false,
			Error:   "Uploads are not configured",
		})
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(UploadResponse{
			Success: false,
			Error:   "File size must be less than 1GB",
		})
		return
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(UploadResponse{
			Success: false,
			Error:   "No file uploaded",
		})
		return
	}
	defer file.Close()

	if !strings.HasPrefix(fileHeader.Header.Get("Content-Type"), "image/") {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(UploadResponse{
			Success: false,
			Error:   "Only image files are allowed",
		})
		return
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if ext == "" {
		ext = ".img"
	}
	filename := fmt.Sprintf("%d_%s%s", time.Now().UnixMilli(), uuid.NewString()[:8], ext)
	dstPath := filepath.Join(uploadDir, filename)

	dst, err := os.Create(dstPath)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(UploadResponse{
			Success: false,
			Error:   "Failed to upload file",
		})
		return
	}
	if _, err := io.Copy(dst, file); err != nil {
		dst.Close()
		os.Remove(dstPath)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(UploadResponse{
			Success: false,
			Error:   "Failed to upload file",
		})
		return
	}
	dst.Close()

	resp := UploadResponse{
		Success:  true,
		ImageURL: "/uploads/" + filename,
		Filename: filename,
	}
	if thumbName, ok := writeThumbnail(dstPath, filename); ok {
		resp.ThumbnailURL = "/uploads/" + thumbName
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// writeThumbnail creates a downscaled JPEG sidecar for large images.
// Best-effort: any failure just means the client uses the full image.
func writeThumbnail(srcPath, filename string) (string, bool) {
	f, err := os.Open(srcPath)
	if err != nil {
		return "", false
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return "", false
	}

	bounds := img.Bounds()
	if bounds.Dx() <= thumbMaxDim && bounds.Dy() <= thumbMaxDim {
		return "", false
	}

	thumb := resize.Thumbnail(thumbMaxDim, thumbMaxDim, img, resize.Lanczos3)
	thumbName := strings.TrimSuffix(filename, filepath.Ext(filename)) + "_thumb.jpg"

	out, err := os.Create(filepath.Join(uploadDir, thumbName))
	if err != nil {
		return "", false
	}
	defer out.Close()

	if err := jpeg.Encode(out, thumb, &jpeg.Options{Quality: 80}); err != nil {
		os.Remove(filepath.Join(uploadDir, thumbName))
		return "", false
	}
	return thumbName, true
}
