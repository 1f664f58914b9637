package storage

import (
	"context"
	"errors"
	"io"
	"time"
)

// Package storage contains backends that hold generated files: a local directory and
// an S3-compatible object store. Keys are flat names; nested keys are rejected.

var (
	// ErrNotFound is returned when a key does not exist in the backend.
	ErrNotFound = errors.New("object not found")
	// ErrInvalidKey is returned for keys that would escape the backend root.
	ErrInvalidKey = errors.New("invalid object key")
)

// PutObjectOptions define optional parameters for uploading objects.
// Size should be the exact number of bytes if known; if unknown, set to -1.
type PutObjectOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// ObjectInfo contains basic information about an object in storage.
type ObjectInfo struct {
	Key          string
	Size         int64
	ContentType  string
	LastModified time.Time
	Metadata     map[string]string
}

// Storage is the backend interface used by the file store.
// Implementations must be safe for concurrent use.
type Storage interface {
	// Put stores the reader's content under key, replacing any existing object.
	Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
	// Get returns a streaming reader over the object alongside its info.
	Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error)
	// Delete removes an object by key. Missing objects yield ErrNotFound.
	Delete(ctx context.Context, key string) error
	// List returns the objects held directly under the backend root.
	List(ctx context.Context) ([]ObjectInfo, error)
}
