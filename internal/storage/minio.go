package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/matematicocardenas25-crypto/generador-documentos-cientificos/internal/config"
)

// minioStorage implements the Storage interface using an S3-compatible backend (MinIO, AWS S3, etc.).
// Objects live under an optional prefix; listing is non-recursive below it.
type minioStorage struct {
	client *minio.Client
	bucket string
	prefix string
}

// NewMinIO creates a new S3-compatible storage client backed by MinIO.
// It validates connectivity and ensures the bucket exists (creates it if missing).
func NewMinIO(cfg config.MinIOConfig) (Storage, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("minio endpoint is required")
	}
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, fmt.Errorf("minio credentials are required")
	}
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("minio bucket is required")
	}

	cli, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Ensure bucket exists.
	exists, err := cli.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket existence: %w", err)
	}
	if !exists {
		if err := cli.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket: %w", err)
		}
	}

	return &minioStorage{client: cli, bucket: cfg.Bucket, prefix: normalizePrefix(cfg.Prefix)}, nil
}

func normalizePrefix(p string) string {
	p = strings.Trim(p, "/")
	if p == "" {
		return ""
	}
	return p + "/"
}

func (m *minioStorage) objectName(key string) (string, error) {
	if key == "" || key == "." || key == ".." || strings.ContainsAny(key, `/\`+"\x00") {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return m.prefix + key, nil
}

// Put uploads an object using streaming I/O only (no local disk).
func (m *minioStorage) Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error) {
	name, err := m.objectName(key)
	if err != nil {
		return ObjectInfo{}, err
	}
	putOpts := minio.PutObjectOptions{
		ContentType:  opt.ContentType,
		UserMetadata: opt.Metadata,
	}
	info, err := m.client.PutObject(ctx, m.bucket, name, r, opt.Size, putOpts)
	if err != nil {
		return ObjectInfo{}, err
	}
	lastModified := info.LastModified
	if lastModified.IsZero() {
		lastModified = time.Now()
	}
	return ObjectInfo{
		Key:          key,
		Size:         info.Size,
		ContentType:  opt.ContentType,
		LastModified: lastModified,
		Metadata:     opt.Metadata,
	}, nil
}

// Get downloads an object content as a ReadCloser along with basic info.
func (m *minioStorage) Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error) {
	name, err := m.objectName(key)
	if err != nil {
		return nil, ObjectInfo{}, err
	}
	obj, err := m.client.GetObject(ctx, m.bucket, name, minio.GetObjectOptions{})
	if err != nil {
		return nil, ObjectInfo{}, mapMinIOError(key, err)
	}
	// Fetch stat to populate info; avoid reading content into memory.
	st, err := obj.Stat()
	if err != nil {
		obj.Close()
		return nil, ObjectInfo{}, mapMinIOError(key, err)
	}
	info := ObjectInfo{
		Key:          key,
		Size:         st.Size,
		ContentType:  st.ContentType,
		LastModified: st.LastModified,
		Metadata:     st.UserMetadata,
	}
	return obj, info, nil
}

// Delete removes an object by key. S3 deletes are idempotent, so existence is checked first.
func (m *minioStorage) Delete(ctx context.Context, key string) error {
	name, err := m.objectName(key)
	if err != nil {
		return err
	}
	if _, err := m.client.StatObject(ctx, m.bucket, name, minio.StatObjectOptions{}); err != nil {
		return mapMinIOError(key, err)
	}
	return m.client.RemoveObject(ctx, m.bucket, name, minio.RemoveObjectOptions{})
}

// List returns objects directly under the prefix; common prefixes are skipped.
func (m *minioStorage) List(ctx context.Context) ([]ObjectInfo, error) {
	var out []ObjectInfo
	for obj := range m.client.ListObjects(ctx, m.bucket, minio.ListObjectsOptions{Prefix: m.prefix, Recursive: false}) {
		if obj.Err != nil {
			return nil, obj.Err
		}
		if strings.HasSuffix(obj.Key, "/") {
			continue
		}
		key := path.Base(obj.Key)
		if strings.HasPrefix(key, ".") {
			continue
		}
		out = append(out, ObjectInfo{
			Key:          key,
			Size:         obj.Size,
			ContentType:  obj.ContentType,
			LastModified: obj.LastModified,
		})
	}
	return out, nil
}

func mapMinIOError(key string, err error) error {
	var resp minio.ErrorResponse
	if errors.As(err, &resp) {
		if resp.Code == "NoSuchKey" || resp.StatusCode == http.StatusNotFound {
			return fmt.Errorf("%w: %s", ErrNotFound, key)
		}
	}
	return err
}
