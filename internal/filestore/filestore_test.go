package filestore

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/matematicocardenas25-crypto/generador-documentos-cientificos/internal/model"
	"github.com/matematicocardenas25-crypto/generador-documentos-cientificos/internal/storage"
	storeMocks "github.com/matematicocardenas25-crypto/generador-documentos-cientificos/internal/storage/mocks"
)

var fixedNow = time.Date(2024, 3, 15, 10, 30, 45, 0, time.UTC)

func newLocalStore(t *testing.T, opts Options) (Store, string) {
	t.Helper()
	dir := t.TempDir()
	backend, err := storage.NewLocal(dir)
	require.NoError(t, err)
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	return New(backend, opts), dir
}

func TestFileStore_WriteRead(t *testing.T) {
	s, dir := newLocalStore(t, Options{})
	ctx := context.Background()
	blob := []byte{0x50, 0x4b, 0x03, 0x04, 0x00, 0xff}

	f, err := s.Write(ctx, blob, model.FormatWord, fixedNow)
	require.NoError(t, err)
	assert.Equal(t, "documento_20240315_103045.docx", f.Filename)
	assert.Equal(t, model.FormatWord, f.Format)
	assert.Equal(t, model.ContentTypeWord, f.ContentType)
	assert.Equal(t, int64(len(blob)), f.Size)
	assert.FileExists(t, filepath.Join(dir, f.Filename))

	data, got, err := s.Read(ctx, f.Filename)
	require.NoError(t, err)
	assert.Equal(t, blob, data)
	assert.Equal(t, f.Filename, got.Filename)
	assert.Equal(t, model.FormatWord, got.Format)
	assert.Equal(t, model.ContentTypeWord, got.ContentType)
}

func TestFileStore_FilenameUsesLocation(t *testing.T) {
	loc := time.FixedZone("CST", -6*60*60)
	s, _ := newLocalStore(t, Options{Location: loc})

	f, err := s.Write(context.Background(), []byte("x"), model.FormatLatex, fixedNow)
	require.NoError(t, err)
	assert.Equal(t, "documento_20240315_043045.tex", f.Filename)
}

func TestFileStore_UniqueSuffix(t *testing.T) {
	s, _ := newLocalStore(t, Options{UniqueSuffix: true})
	ctx := context.Background()

	a, err := s.Write(ctx, []byte("a"), model.FormatLatex, fixedNow)
	require.NoError(t, err)
	b, err := s.Write(ctx, []byte("b"), model.FormatLatex, fixedNow)
	require.NoError(t, err)

	pattern := regexp.MustCompile(`^documento_20240315_103045_[0-9a-f]{8}\.tex$`)
	assert.Regexp(t, pattern, a.Filename)
	assert.Regexp(t, pattern, b.Filename)
	assert.NotEqual(t, a.Filename, b.Filename)

	data, _, err := s.Read(ctx, a.Filename)
	require.NoError(t, err)
	assert.Equal(t, "a", string(data))
}

func TestFileStore_SameSecondOverwritesWithoutSuffix(t *testing.T) {
	s, _ := newLocalStore(t, Options{})
	ctx := context.Background()

	a, err := s.Write(ctx, []byte("first"), model.FormatLatex, fixedNow)
	require.NoError(t, err)
	b, err := s.Write(ctx, []byte("second"), model.FormatLatex, fixedNow)
	require.NoError(t, err)
	assert.Equal(t, a.Filename, b.Filename)

	data, _, err := s.Read(ctx, a.Filename)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))
}

func TestFileStore_ReadRejectsEscapingNames(t *testing.T) {
	s, dir := newLocalStore(t, Options{})
	ctx := context.Background()
	require.NoError(t, os.WriteFile(filepath.Join(filepath.Dir(dir), "secret"), []byte("top secret"), 0o600))

	for _, name := range []string{"", "..", "../secret", "..%2Fsecret", "a/b", `a\b`, ".hidden", "/etc/passwd", "a\x00b"} {
		data, f, err := s.Read(ctx, name)
		assert.ErrorIs(t, err, ErrInvalidFilename, name)
		assert.Nil(t, data)
		assert.Nil(t, f)
		assert.ErrorIs(t, s.Delete(ctx, name), ErrInvalidFilename, name)
	}
}

func TestFileStore_ReadDoesNotFollowSymlinks(t *testing.T) {
	s, dir := newLocalStore(t, Options{})
	outside := filepath.Join(t.TempDir(), "secret.txt")
	require.NoError(t, os.WriteFile(outside, []byte("TOP SECRET"), 0o600))
	require.NoError(t, os.Symlink(outside, filepath.Join(dir, "documento_x.docx")))

	data, f, err := s.Read(context.Background(), "documento_x.docx")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Nil(t, data)
	assert.Nil(t, f)
}

func TestFileStore_ReadMissing(t *testing.T) {
	s, _ := newLocalStore(t, Options{})

	_, _, err := s.Read(context.Background(), "documento_20240101_000000.docx")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.Delete(context.Background(), "documento_20240101_000000.docx"), ErrNotFound)
}

func TestFileStore_ReadRacingDelete(t *testing.T) {
	backend := new(storeMocks.MockStorage)
	backend.On("Get", mock.Anything, "documento_x.docx").
		Return(nil, storage.ObjectInfo{}, storage.ErrNotFound)

	s := New(backend, Options{})
	_, _, err := s.Read(context.Background(), "documento_x.docx")
	assert.ErrorIs(t, err, ErrNotFound)
	backend.AssertExpectations(t)
}

func TestFileStore_Delete(t *testing.T) {
	s, dir := newLocalStore(t, Options{})
	ctx := context.Background()

	f, err := s.Write(ctx, []byte("x"), model.FormatWord, fixedNow)
	require.NoError(t, err)
	require.NoError(t, s.Delete(ctx, f.Filename))
	assert.NoFileExists(t, filepath.Join(dir, f.Filename))
}

func TestFileStore_Sweep(t *testing.T) {
	s, dir := newLocalStore(t, Options{Now: func() time.Time { return fixedNow }})
	ctx := context.Background()

	fixtures := map[string]time.Duration{
		"old.docx":     2 * time.Hour,
		"stale.tex":    time.Hour + time.Second,
		"boundary.tex": time.Hour,
		"fresh.docx":   10 * time.Minute,
		"future.tex":   -time.Minute,
		"notes.txt":    3 * time.Hour,
		".keep":        5 * time.Hour,
	}
	for name, age := range fixtures {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte(name), 0o644))
		mtime := fixedNow.Add(-age)
		require.NoError(t, os.Chtimes(p, mtime, mtime))
	}
	sub := filepath.Join(dir, "archive")
	require.NoError(t, os.Mkdir(sub, 0o755))
	old := fixedNow.Add(-10 * time.Hour)
	require.NoError(t, os.Chtimes(sub, old, old))

	deleted, err := s.Sweep(ctx, time.Hour)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"old.docx", "stale.tex", "notes.txt"}, deleted)

	for _, kept := range []string{"boundary.tex", "fresh.docx", "future.tex", ".keep", "archive"} {
		_, err := os.Stat(filepath.Join(dir, kept))
		assert.NoError(t, err, kept)
	}
	for _, gone := range deleted {
		assert.NoFileExists(t, filepath.Join(dir, gone))
	}
}

func TestFileStore_SweepWithMockBackend(t *testing.T) {
	ctx := context.Background()
	now := func() time.Time { return fixedNow }
	objs := []storage.ObjectInfo{
		{Key: "a.docx", LastModified: fixedNow.Add(-2 * time.Hour)},
		{Key: "b.docx", LastModified: fixedNow.Add(-2 * time.Hour)},
		{Key: "c.docx", LastModified: fixedNow.Add(-2 * time.Hour)},
	}

	t.Run("concurrently removed files are skipped", func(t *testing.T) {
		backend := new(storeMocks.MockStorage)
		backend.On("List", ctx).Return(objs, nil)
		backend.On("Delete", ctx, "a.docx").Return(storage.ErrNotFound)
		backend.On("Delete", ctx, "b.docx").Return(nil)
		backend.On("Delete", ctx, "c.docx").Return(nil)

		deleted, err := New(backend, Options{Now: now}).Sweep(ctx, time.Hour)
		assert.NoError(t, err)
		assert.Equal(t, []string{"b.docx", "c.docx"}, deleted)
		backend.AssertExpectations(t)
	})

	t.Run("delete failures are joined and the sweep continues", func(t *testing.T) {
		backend := new(storeMocks.MockStorage)
		backend.On("List", ctx).Return(objs, nil)
		backend.On("Delete", ctx, "a.docx").Return(errors.New("permission denied"))
		backend.On("Delete", ctx, "b.docx").Return(nil)
		backend.On("Delete", ctx, "c.docx").Return(errors.New("io error"))

		deleted, err := New(backend, Options{Now: now}).Sweep(ctx, time.Hour)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "delete a.docx: permission denied")
		assert.Contains(t, err.Error(), "delete c.docx: io error")
		assert.Equal(t, []string{"b.docx"}, deleted)
	})

	t.Run("list failure", func(t *testing.T) {
		backend := new(storeMocks.MockStorage)
		backend.On("List", ctx).Return(nil, errors.New("unavailable"))

		deleted, err := New(backend, Options{Now: now}).Sweep(ctx, time.Hour)
		assert.Error(t, err)
		assert.Nil(t, deleted)
	})
}

func TestFileStore_List(t *testing.T) {
	backend := new(storeMocks.MockStorage)
	backend.On("List", mock.Anything).Return([]storage.ObjectInfo{
		{Key: "documento_1.tex", Size: 1, LastModified: fixedNow.Add(-time.Hour)},
		{Key: "documento_2.docx", Size: 2, LastModified: fixedNow},
		{Key: "other.bin", Size: 3, LastModified: fixedNow.Add(-2 * time.Hour)},
	}, nil)

	files, err := New(backend, Options{}).List(context.Background())
	require.NoError(t, err)
	require.Len(t, files, 3)
	assert.Equal(t, "documento_2.docx", files[0].Filename)
	assert.Equal(t, model.FormatWord, files[0].Format)
	assert.Equal(t, model.FormatLatex, files[1].Format)
	assert.Equal(t, model.ContentTypeUnknown, files[2].ContentType)
}

func TestValidateFilename(t *testing.T) {
	valid := []string{"documento_20240315_103045.docx", "documento_20240315_103045_ab12cd34.tex", "A-b.c"}
	for _, name := range valid {
		assert.NoError(t, ValidateFilename(name), name)
	}

	long := make([]byte, maxFilenameLength+1)
	for i := range long {
		long[i] = 'a'
	}
	invalid := []string{"", ".", "..", "a..b", "-x", "_x", ".env", "a b", "a/b", string(long)}
	for _, name := range invalid {
		assert.ErrorIs(t, ValidateFilename(name), ErrInvalidFilename, name)
	}
}
