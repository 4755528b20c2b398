// Package file provides a filesystem-backed image store for screenshot
// captures. Images are PNG-encoded and named by their content hash, so
// saving the same capture twice is naturally idempotent.
package file

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/pagemark-labs/pagemark/internal/core/ports/driven"
)

// Store writes captures into a single directory.
type Store struct {
	dir string
}

var _ driven.ImageStore = (*Store)(nil)

// NewStore creates an image store rooted at dir. If dir is empty, defaults
// to ~/.pagemark/data/captures.
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dir = filepath.Join(home, ".pagemark", "data", "captures")
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("creating capture directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the capture directory.
func (s *Store) Dir() string {
	return s.dir
}

// SaveImage PNG-encodes the capture and writes it as <sha256>.png.
func (s *Store) SaveImage(ctx context.Context, img image.Image) (*driven.SavedImage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encoding capture: %w", err)
	}

	sum := sha256.Sum256(buf.Bytes())
	hash := hex.EncodeToString(sum[:])
	path := filepath.Join(s.dir, hash+".png")

	// Content-addressed name: an existing file already holds these bytes.
	if _, err := os.Stat(path); err == nil {
		return &driven.SavedImage{Path: path, Hash: hash}, nil
	}

	if err := os.WriteFile(path, buf.Bytes(), 0600); err != nil {
		return nil, fmt.Errorf("writing capture: %w", err)
	}

	return &driven.SavedImage{Path: path, Hash: hash}, nil
}
