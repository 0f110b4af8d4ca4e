// Copyright (c) 2026 Tablon. All rights reserved.
// Author: rb.quintana.dev@gmail.com

package upload

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/tablonapp/tablon/internal/platform/apperr"
	"github.com/tablonapp/tablon/internal/platform/constants"
)

// uploadExtensions maps accepted upload extensions to their expected MIME
// types. Both the extension AND the declared content type must match.
var uploadExtensions = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
}

// DiskStore persists uploaded post images on the local filesystem.
//
// # Naming
//
// Stored files are renamed to a generated UUID so a hostile original filename
// can never influence the on-disk path. The public URL is the join of
// [constants.UploadURLPrefix] and the generated name.
type DiskStore struct {
	dir     string
	maxSize int64
}

// NewDiskStore creates the storage directory if needed and returns the store.
func NewDiskStore(dir string, maxSize int64) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("upload_store_mkdir_failed: %w", err)
	}

	if maxSize <= 0 {
		maxSize = constants.DefaultMaxUploadSize
	}

	return &DiskStore{dir: dir, maxSize: maxSize}, nil
}

// Save validates and persists one multipart image, returning its public URL.
//
// # Validation
//   - The extension must be one of jpg/jpeg/png/gif/webp.
//   - The declared content type must agree with the extension.
//   - The size must not exceed the configured maximum.
func (store *DiskStore) Save(file multipart.File, header *multipart.FileHeader) (string, error) {
	// ── 1. Extension & Content-Type Checks ────────────────────────────────

	extension := extensionOf(header.Filename)
	expectedType, allowed := uploadExtensions[extension]
	if !allowed {
		return "", apperr.ValidationError("Only jpeg, jpg, png, gif and webp images are allowed")
	}

	declaredType := strings.ToLower(header.Header.Get("Content-Type"))
	if declaredType != expectedType {
		return "", apperr.ValidationError("Image content type does not match its extension")
	}

	// ── 2. Size Check ─────────────────────────────────────────────────────

	if header.Size > store.maxSize {
		return "", apperr.ValidationError(fmt.Sprintf("Image must not exceed %d bytes", store.maxSize))
	}

	// ── 3. Persist Under a Generated Name ──────────────────────────────────

	name := uuid.New().String() + extension
	destination := filepath.Join(store.dir, name)

	out, err := os.Create(destination)
	if err != nil {
		return "", fmt.Errorf("upload_store_create_failed: %w", err)
	}
	defer out.Close()

	// Copy at most maxSize+1 bytes so a lying Content-Length cannot flood the
	// disk; anything past the cap means the header undersold the payload.
	written, err := io.Copy(out, io.LimitReader(file, store.maxSize+1))
	if err != nil {
		_ = os.Remove(destination)
		return "", fmt.Errorf("upload_store_write_failed: %w", err)
	}
	if written > store.maxSize {
		_ = os.Remove(destination)
		return "", apperr.ValidationError(fmt.Sprintf("Image must not exceed %d bytes", store.maxSize))
	}

	return constants.UploadURLPrefix + name, nil
}

// Remove deletes a previously stored file given its public URL.
//
// Used as the compensating action when a post mutation fails after its image
// was already written. Unknown prefixes and traversal attempts are rejected.
func (store *DiskStore) Remove(publicURL string) error {
	name, found := strings.CutPrefix(publicURL, constants.UploadURLPrefix)
	if !found || name == "" {
		return nil
	}

	// The stored name is always a flat UUID file; separators mean tampering.
	if strings.ContainsAny(name, "/\\") || name != filepath.Base(name) {
		return nil
	}

	err := os.Remove(filepath.Join(store.dir, name))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("upload_store_remove_failed: %w", err)
	}

	return nil
}

// Dir returns the on-disk directory served under the /uploads/ prefix.
func (store *DiskStore) Dir() string {
	return store.dir
}
