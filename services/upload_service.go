package services

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/akinalp/masterblog/pkg"
)

// UploadService stores blog cover images on disk and returns their public URL.
type UploadService interface {
	Upload(file multipart.File, header *multipart.FileHeader) (string, error)
}

type uploadService struct {
	uploadDir string
	maxSize   int64
}

// NewUploadService wires the image upload service.
func NewUploadService(uploadDir string, maxSize int64) UploadService {
	return &uploadService{
		uploadDir: uploadDir,
		maxSize:   maxSize,
	}
}

// allowedImageTypes are the only upload types accepted for blog images.
var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
}

// Upload validates the image and writes it to disk under a
// {random_hex}_{original_filename} name to avoid collisions.
func (s *uploadService) Upload(file multipart.File, header *multipart.FileHeader) (string, error) {
	if header.Size > s.maxSize {
		return "", pkg.BadRequest(fmt.Sprintf("file too large (max %dMB)", s.maxSize/(1024*1024)))
	}

	contentType := header.Header.Get("Content-Type")
	mimeBase := strings.TrimSpace(strings.Split(contentType, ";")[0])
	if !allowedImageTypes[mimeBase] {
		return "", pkg.BadRequest("only png and jpeg images are allowed")
	}

	randomBytes := make([]byte, 8)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", fmt.Errorf("failed to generate random filename: %w", err)
	}
	diskFilename := hex.EncodeToString(randomBytes) + "_" + sanitizeFilename(header.Filename)

	destPath := filepath.Join(s.uploadDir, diskFilename)
	destFile, err := os.Create(destPath)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer destFile.Close()

	if _, err := io.Copy(destFile, file); err != nil {
		os.Remove(destPath)
		return "", fmt.Errorf("failed to save file: %w", err)
	}

	return "/uploads/" + diskFilename, nil
}

// sanitizeFilename strips path components and unsafe characters so the stored
// name can never escape the upload directory.
func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "file"
	}
	return b.String()
}
