package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// localStorage keeps objects as regular files directly inside one directory.
type localStorage struct {
	dir string
}

// NewLocal creates a directory-backed storage rooted at dir, creating it if missing.
func NewLocal(dir string) (Storage, error) {
	if dir == "" {
		return nil, fmt.Errorf("storage directory is required")
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve storage directory: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("create storage directory: %w", err)
	}
	return &localStorage{dir: abs}, nil
}

// resolve maps key to a path that is guaranteed to sit directly inside the root.
func (l *localStorage) resolve(key string) (string, error) {
	if key == "" || key == "." || key == ".." || strings.ContainsAny(key, `/\`+"\x00") {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	p := filepath.Join(l.dir, key)
	if filepath.Dir(p) != l.dir {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return p, nil
}

// Put writes through a temporary sibling and renames it into place so readers never see partial files.
func (l *localStorage) Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error) {
	p, err := l.resolve(key)
	if err != nil {
		return ObjectInfo{}, err
	}
	if err := ctx.Err(); err != nil {
		return ObjectInfo{}, err
	}

	tmp, err := os.CreateTemp(l.dir, ".upload-*")
	if err != nil {
		return ObjectInfo{}, fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := io.Copy(tmp, r); err != nil {
		_ = tmp.Close()
		cleanup()
		return ObjectInfo{}, fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return ObjectInfo{}, fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		cleanup()
		return ObjectInfo{}, fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpName, p); err != nil {
		cleanup()
		return ObjectInfo{}, fmt.Errorf("rename into place: %w", err)
	}

	st, err := os.Stat(p)
	if err != nil {
		return ObjectInfo{}, fmt.Errorf("stat stored file: %w", err)
	}
	return ObjectInfo{
		Key:          key,
		Size:         st.Size(),
		ContentType:  opt.ContentType,
		LastModified: st.ModTime(),
		Metadata:     opt.Metadata,
	}, nil
}

// Get opens the file for reading. Symlinks and other non-regular entries are reported as ErrNotFound,
// and the open itself is confined to the root so a swapped-in link cannot escape it.
func (l *localStorage) Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error) {
	if _, err := l.resolve(key); err != nil {
		return nil, ObjectInfo{}, err
	}
	root, err := os.OpenRoot(l.dir)
	if err != nil {
		return nil, ObjectInfo{}, fmt.Errorf("open storage directory: %w", err)
	}
	defer root.Close()

	lst, err := root.Lstat(key)
	if err != nil {
		return nil, ObjectInfo{}, mapFSError(key, err)
	}
	if !lst.Mode().IsRegular() {
		return nil, ObjectInfo{}, fmt.Errorf("%w: %s", ErrNotFound, key)
	}

	f, err := root.Open(key)
	if err != nil {
		return nil, ObjectInfo{}, mapFSError(key, err)
	}
	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, ObjectInfo{}, mapFSError(key, err)
	}
	if !st.Mode().IsRegular() || !os.SameFile(lst, st) {
		f.Close()
		return nil, ObjectInfo{}, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	return f, ObjectInfo{Key: key, Size: st.Size(), LastModified: st.ModTime()}, nil
}

// Delete removes a regular file by key.
func (l *localStorage) Delete(ctx context.Context, key string) error {
	p, err := l.resolve(key)
	if err != nil {
		return err
	}
	st, err := os.Lstat(p)
	if err != nil {
		return mapFSError(key, err)
	}
	if !st.Mode().IsRegular() {
		return fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	if err := os.Remove(p); err != nil {
		return mapFSError(key, err)
	}
	return nil
}

// List returns regular files directly inside the root, skipping dot-files and directories.
func (l *localStorage) List(ctx context.Context) ([]ObjectInfo, error) {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return nil, fmt.Errorf("read storage directory: %w", err)
	}

	out := make([]ObjectInfo, 0, len(entries))
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if strings.HasPrefix(e.Name(), ".") || !e.Type().IsRegular() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("stat %s: %w", e.Name(), err)
		}
		out = append(out, ObjectInfo{
			Key:          e.Name(),
			Size:         info.Size(),
			LastModified: info.ModTime(),
		})
	}
	return out, nil
}

func mapFSError(key string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	return err
}
