package storage

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Payment-proof images are stored on local disk and served back from
// the API host under /uploads. Cloud storage is deliberately not used:
// proofs are small, low-traffic, and the owner views them through the
// same API origin.

var uploadsDir = "uploads"

func InitializeUploads(dir string) {
	if dir != "" {
		uploadsDir = dir
	}
	if err := os.MkdirAll(uploadsDir, 0o755); err != nil {
		panic(fmt.Sprintf("cannot create uploads dir %q: %v", uploadsDir, err))
	}
}

func UploadsDir() string { return uploadsDir }

// SaveUpload writes src to the uploads directory under a random name
// and returns the public URL path ("/uploads/<uuid><ext>").
func SaveUpload(src io.Reader, originalName string) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	name := uuid.New().String() + ext

	dst, err := os.Create(filepath.Join(uploadsDir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}

	return path.Join("/uploads", name), nil
}
