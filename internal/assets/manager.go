// Package assets stores uploaded listing images on disk and manages their
// lifecycle: one asset per product, old files removed only after their
// replacement has been persisted.
package assets

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

// MaxUploadSize is the largest accepted image, in bytes.
const MaxUploadSize = 5 << 20

// URLPrefix is the public path under which stored assets are served.
const URLPrefix = "/uploads"

var (
	ErrUnsupportedMedia = errors.New("file type not allowed: only jpg, png, gif, webp accepted")
	ErrTooLarge         = errors.New("file exceeds the 5 MB upload limit")
)

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// Upload describes an incoming multipart file.
type Upload struct {
	File        io.Reader
	Filename    string
	ContentType string
	Size        int64
}

// Manager persists image files under a single storage root.
type Manager struct {
	root string
}

func NewManager(root string) (*Manager, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("creating upload directory: %w", err)
	}
	return &Manager{root: root}, nil
}

// Accept validates and stores an upload, returning its public reference path.
// A file is accepted when either its extension or its declared content type
// indicates an image.
func (m *Manager) Accept(up *Upload) (string, error) {
	if up.Size > MaxUploadSize {
		return "", ErrTooLarge
	}

	ext := strings.ToLower(filepath.Ext(up.Filename))
	if !allowedExtensions[ext] && !strings.HasPrefix(up.ContentType, "image/") {
		return "", ErrUnsupportedMedia
	}

	name, err := uniqueName(ext)
	if err != nil {
		return "", fmt.Errorf("generating filename: %w", err)
	}

	dst, err := os.Create(filepath.Join(m.root, name))
	if err != nil {
		return "", fmt.Errorf("creating asset file: %w", err)
	}
	defer dst.Close()

	// Guard against callers lying about the size.
	written, err := io.Copy(dst, io.LimitReader(up.File, MaxUploadSize+1))
	if err != nil {
		os.Remove(dst.Name())
		return "", fmt.Errorf("writing asset file: %w", err)
	}
	if written > MaxUploadSize {
		os.Remove(dst.Name())
		return "", ErrTooLarge
	}

	return URLPrefix + "/" + name, nil
}

// Replace stores the new upload (if any) and then removes the superseded
// asset. The old file is never deleted before the new one is safely on disk;
// a failed old-file removal is logged but does not fail the replacement.
func (m *Manager) Replace(oldRef string, up *Upload) (string, error) {
	if up == nil {
		return oldRef, nil
	}

	newRef, err := m.Accept(up)
	if err != nil {
		return "", err
	}

	if oldRef != "" {
		m.Delete(oldRef)
	}
	return newRef, nil
}

// Delete removes the backing file for a reference, best effort. A missing
// file is not an error.
func (m *Manager) Delete(ref string) {
	if ref == "" {
		return
	}
	// References look like "/uploads/<name>"; only the final element is
	// meaningful, which also blocks path traversal.
	name := path.Base(ref)
	if err := os.Remove(filepath.Join(m.root, name)); err != nil && !os.IsNotExist(err) {
		log.Printf("ERROR [assets.Delete] removing %s: %v", name, err)
	}
}

// Dir returns the storage root, for mounting a static file server.
func (m *Manager) Dir() string {
	return m.root
}

func uniqueName(ext string) (string, error) {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), hex.EncodeToString(buf), ext), nil
}
