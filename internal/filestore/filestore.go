// Package filestore names, persists, serves and expires generated documents on top of a storage backend.
package filestore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/matematicocardenas25-crypto/generador-documentos-cientificos/internal/model"
	"github.com/matematicocardenas25-crypto/generador-documentos-cientificos/internal/storage"
)

const (
	// FilenamePrefix starts every generated filename.
	FilenamePrefix = "documento_"
	// TimestampLayout renders YYYYMMDD_HHMMSS.
	TimestampLayout = "20060102_150405"

	maxFilenameLength = 255
)

var (
	ErrNotFound        = errors.New("file not found")
	ErrInvalidFilename = errors.New("invalid filename")
)

var filenamePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// Store is the generated-file lifecycle contract.
type Store interface {
	// Write persists data under a fresh timestamp-derived name for format.
	Write(ctx context.Context, data []byte, format model.Format, now time.Time) (*model.GeneratedFile, error)
	// Read returns the content of a stored file. Unknown or escaping names yield ErrNotFound / ErrInvalidFilename.
	Read(ctx context.Context, filename string) ([]byte, *model.GeneratedFile, error)
	// Delete removes one stored file.
	Delete(ctx context.Context, filename string) error
	// Sweep deletes files whose last modification is strictly older than maxAge and returns their names.
	Sweep(ctx context.Context, maxAge time.Duration) ([]string, error)
	// List returns every stored file, newest first.
	List(ctx context.Context) ([]model.GeneratedFile, error)
}

// Options tune filename generation and the sweep clock.
type Options struct {
	// UniqueSuffix appends a short random token so same-second writes do not collide.
	UniqueSuffix bool
	// Location is the zone used to render filename timestamps.
	Location *time.Location
	// Now overrides the clock used by Sweep.
	Now func() time.Time
}

type fileStore struct {
	backend storage.Storage
	unique  bool
	loc     *time.Location
	now     func() time.Time
	suffix  func() string
}

// New wraps a storage backend.
func New(backend storage.Storage, opts Options) Store {
	fs := &fileStore{
		backend: backend,
		unique:  opts.UniqueSuffix,
		loc:     opts.Location,
		now:     opts.Now,
		suffix:  randomSuffix,
	}
	if fs.loc == nil {
		fs.loc = time.Local
	}
	if fs.now == nil {
		fs.now = time.Now
	}
	return fs
}

func randomSuffix() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

// Filename derives the stored name for a generation at now.
func (s *fileStore) Filename(format model.Format, now time.Time) string {
	name := FilenamePrefix + now.In(s.loc).Format(TimestampLayout)
	if s.unique {
		name += "_" + s.suffix()
	}
	return name + format.Extension()
}

// ValidateFilename rejects names that are empty, too long, hidden, or could leave the store root.
func ValidateFilename(name string) error {
	if len(name) == 0 || len(name) > maxFilenameLength || strings.Contains(name, "..") || !filenamePattern.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidFilename, name)
	}
	return nil
}

func (s *fileStore) Write(ctx context.Context, data []byte, format model.Format, now time.Time) (*model.GeneratedFile, error) {
	name := s.Filename(format, now)
	info, err := s.backend.Put(ctx, name, bytes.NewReader(data), storage.PutObjectOptions{
		Size:        int64(len(data)),
		ContentType: format.ContentType(),
		Metadata:    map[string]string{"format": string(format)},
	})
	if err != nil {
		return nil, fmt.Errorf("store %s: %w", name, err)
	}
	return &model.GeneratedFile{
		Filename:    name,
		Format:      format,
		StoragePath: info.Key,
		Size:        info.Size,
		ContentType: format.ContentType(),
		CreatedAt:   info.LastModified,
	}, nil
}

func (s *fileStore) Read(ctx context.Context, filename string) ([]byte, *model.GeneratedFile, error) {
	if err := ValidateFilename(filename); err != nil {
		return nil, nil, err
	}
	rc, info, err := s.backend.Get(ctx, filename)
	if err != nil {
		return nil, nil, mapBackendError(filename, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, nil, mapBackendError(filename, err)
	}
	info.Size = int64(len(data))
	return data, toGeneratedFile(info), nil
}

func (s *fileStore) Delete(ctx context.Context, filename string) error {
	if err := ValidateFilename(filename); err != nil {
		return err
	}
	if err := s.backend.Delete(ctx, filename); err != nil {
		return mapBackendError(filename, err)
	}
	return nil
}

// Sweep keeps going after a failed delete and reports all failures together.
// Files that vanish concurrently are not counted and are not errors.
func (s *fileStore) Sweep(ctx context.Context, maxAge time.Duration) ([]string, error) {
	objs, err := s.backend.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list stored files: %w", err)
	}

	now := s.now()
	var (
		deleted []string
		errs    []error
	)
	for _, obj := range objs {
		if now.Sub(obj.LastModified) <= maxAge {
			continue
		}
		if err := s.backend.Delete(ctx, obj.Key); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				continue
			}
			errs = append(errs, fmt.Errorf("delete %s: %w", obj.Key, err))
			continue
		}
		deleted = append(deleted, obj.Key)
	}
	return deleted, errors.Join(errs...)
}

func (s *fileStore) List(ctx context.Context) ([]model.GeneratedFile, error) {
	objs, err := s.backend.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list stored files: %w", err)
	}
	out := make([]model.GeneratedFile, 0, len(objs))
	for _, obj := range objs {
		out = append(out, *toGeneratedFile(obj))
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].Filename > out[j].Filename
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func toGeneratedFile(info storage.ObjectInfo) *model.GeneratedFile {
	f := &model.GeneratedFile{
		Filename:    info.Key,
		StoragePath: info.Key,
		Size:        info.Size,
		ContentType: model.ContentTypeUnknown,
		CreatedAt:   info.LastModified,
	}
	if format, ok := model.FormatFromFilename(info.Key); ok {
		f.Format = format
		f.ContentType = format.ContentType()
	}
	return f
}

func mapBackendError(filename string, err error) error {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return fmt.Errorf("%w: %s", ErrNotFound, filename)
	case errors.Is(err, storage.ErrInvalidKey):
		return fmt.Errorf("%w: %q", ErrInvalidFilename, filename)
	default:
		return err
	}
}
