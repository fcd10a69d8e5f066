// Package storage keeps uploaded resumes. A stored resume is addressed by the opaque
// reference returned from Save, which is what applications persist.
package storage

import (
	"context"
	"errors"
	"io"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ErrNotFound is returned by Open when no object exists for a reference.
var ErrNotFound = errors.New("storage: object not found")

// ErrInvalidReference is returned for references that were not produced by Save.
var ErrInvalidReference = errors.New("storage: invalid reference")

const resumePrefix = "resumes"

type ResumeStore interface {
	// Save stores data under a fresh random name and returns its reference.
	Save(ctx context.Context, filename, contentType string, data []byte) (string, error)
	Open(ctx context.Context, ref string) (io.ReadCloser, error)
}

// newReference builds "resumes/<uuid><ext>". The client filename only contributes its
// lowercased extension.
func newReference(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return path.Join(resumePrefix, uuid.NewString()+ext)
}

func checkReference(ref string) error {
	clean := path.Clean(ref)
	if clean != ref || !strings.HasPrefix(ref, resumePrefix+"/") || strings.Contains(ref, "..") {
		return ErrInvalidReference
	}
	if _, err := uuid.Parse(strings.TrimSuffix(path.Base(ref), path.Ext(ref))); err != nil {
		return ErrInvalidReference
	}
	return nil
}
