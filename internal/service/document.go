package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/matematicocardenas25-crypto/generador-documentos-cientificos/internal/filestore"
	"github.com/matematicocardenas25-crypto/generador-documentos-cientificos/internal/logger"
	"github.com/matematicocardenas25-crypto/generador-documentos-cientificos/internal/metrics"
	"github.com/matematicocardenas25-crypto/generador-documentos-cientificos/internal/model"
	"github.com/matematicocardenas25-crypto/generador-documentos-cientificos/internal/render"
	"github.com/matematicocardenas25-crypto/generador-documentos-cientificos/internal/repository"
)

const (
	DefaultListLimit = 10
	MaxListLimit     = 100
)

var tracer = otel.Tracer("github.com/matematicocardenas25-crypto/generador-documentos-cientificos/internal/service")

// LatexResult carries the stored typesetting source and its text, which is echoed to the client.
type LatexResult struct {
	File    *model.GeneratedFile
	Content string
}

// DownloadResult is a stored file and its bytes.
type DownloadResult struct {
	File *model.GeneratedFile
	Data []byte
}

// FileListResult is the service-level DTO for paginated generated files.
type FileListResult struct {
	Items []model.GeneratedFile `json:"items"`
	Total int                   `json:"total"`
}

// DocumentService defines the document generation use cases.
type DocumentService interface {
	// GenerateWord renders the structured document and stores it.
	GenerateWord(ctx context.Context, req model.GenerationRequest) (*model.GeneratedFile, error)

	// GenerateLatex renders the typesetting source and stores it.
	GenerateLatex(ctx context.Context, req model.GenerationRequest) (*LatexResult, error)

	// Download returns a stored file by name.
	Download(ctx context.Context, filename string) (*DownloadResult, error)

	// Delete removes a stored file and its manifest row.
	Delete(ctx context.Context, filename string) error

	// Cleanup removes files older than maxAge and returns how many were deleted.
	// A non-positive maxAge selects the configured TTL.
	Cleanup(ctx context.Context, maxAge time.Duration) (int, error)

	// List returns generated files newest first using limit/offset.
	List(ctx context.Context, limit, offset int) (*FileListResult, error)
}

// DefaultFileTTL applies when Options.FileTTL is not positive.
const DefaultFileTTL = time.Hour

// Options carries the deployment-level defaults the service applies.
type Options struct {
	DefaultTitle  string
	DefaultAuthor string
	FileTTL       time.Duration
	// Now overrides the generation clock.
	Now func() time.Time
}

type documentService struct {
	store   filestore.Store
	repo    repository.GeneratedFileRepository
	word    render.Renderer
	latex   render.Renderer
	opts    Options
	metrics *metrics.Metrics
	log     *logger.Logger
}

// NewDocumentService constructs a new DocumentService.
// repo may be nil, in which case no manifest is kept and listings come from the store.
func NewDocumentService(
	store filestore.Store,
	repo repository.GeneratedFileRepository,
	word, latex render.Renderer,
	opts Options,
	m *metrics.Metrics,
	log *logger.Logger,
) DocumentService {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.FileTTL <= 0 {
		opts.FileTTL = DefaultFileTTL
	}
	if log == nil {
		log = logger.Nop()
	}
	return &documentService{
		store:   store,
		repo:    repo,
		word:    word,
		latex:   latex,
		opts:    opts,
		metrics: m,
		log:     log,
	}
}

func (s *documentService) GenerateWord(ctx context.Context, req model.GenerationRequest) (*model.GeneratedFile, error) {
	f, _, err := s.generate(ctx, "GenerateWord", s.word, req)
	return f, err
}

func (s *documentService) GenerateLatex(ctx context.Context, req model.GenerationRequest) (*LatexResult, error) {
	f, data, err := s.generate(ctx, "GenerateLatex", s.latex, req)
	if err != nil {
		return nil, err
	}
	return &LatexResult{File: f, Content: string(data)}, nil
}

// generate validates, applies defaults, renders, stores and records one document.
// Nothing is left in the store when any step fails.
func (s *documentService) generate(ctx context.Context, op string, r render.Renderer, req model.GenerationRequest) (*model.GeneratedFile, []byte, error) {
	format := r.Format()
	ctx, span := tracer.Start(ctx, "DocumentService."+op,
		trace.WithAttributes(attribute.String("document.format", string(format))))
	defer span.End()

	fail := func(err error) (*model.GeneratedFile, []byte, error) {
		kind := KindOf(err)
		s.metrics.Failed(string(format), kind.String())
		span.RecordError(err)
		span.SetStatus(codes.Error, kind.String())
		s.log.Warn("document_generation_failed", "format", format, "kind", kind.String(), "error", err.Error())
		return nil, nil, err
	}

	if err := req.Validate(); err != nil {
		return fail(&Error{Kind: KindValidation, Op: op, Err: err})
	}
	req = req.WithDefaults(s.opts.DefaultTitle, s.opts.DefaultAuthor)

	now := s.opts.Now()
	start := time.Now()
	data, err := r.Render(req, now)
	s.metrics.ObserveRender(string(format), time.Since(start))
	if err != nil {
		return fail(classify(op, err, KindRender))
	}

	f, err := s.store.Write(ctx, data, format, now)
	if err != nil {
		return fail(classify(op, err, KindIO))
	}

	f, err = s.record(ctx, f)
	if err != nil {
		return fail(classify(op, err, KindIO))
	}

	s.metrics.Generated(string(format))
	span.SetAttributes(
		attribute.String("document.filename", f.Filename),
		attribute.Int64("document.size", f.Size),
	)
	s.log.Info("document_generated", "format", format, "filename", f.Filename, "size", f.Size)
	return f, data, nil
}

// record saves the manifest row and deletes the stored file when that fails.
func (s *documentService) record(ctx context.Context, f *model.GeneratedFile) (*model.GeneratedFile, error) {
	if s.repo == nil {
		return f, nil
	}
	f.ID = uuid.NewString()
	stored, err := s.repo.Create(ctx, f)
	if err != nil {
		// Rollback: delete the file from the store
		if delErr := s.store.Delete(ctx, f.Filename); delErr != nil {
			return nil, fmt.Errorf("manifest save failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("manifest save failed: %w", err)
	}
	return stored, nil
}

func (s *documentService) Download(ctx context.Context, filename string) (*DownloadResult, error) {
	const op = "Download"
	if filename == "" {
		return nil, &Error{Kind: KindNotFound, Op: op, Err: ErrFilenameRequired}
	}
	data, f, err := s.store.Read(ctx, filename)
	if err != nil {
		return nil, classify(op, err, KindIO)
	}
	return &DownloadResult{File: s.withManifest(ctx, f), Data: data}, nil
}

// withManifest overlays the recorded id, format and creation time on what the store reports.
// The stored bytes are authoritative, so a missing or unreadable row only costs metadata.
func (s *documentService) withManifest(ctx context.Context, f *model.GeneratedFile) *model.GeneratedFile {
	if s.repo == nil {
		return f
	}
	row, err := s.repo.FindByFilename(ctx, f.Filename)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.log.Warn("manifest_lookup_failed", "filename", f.Filename, "error", err.Error())
		}
		return f
	}
	out := *f
	out.ID = row.ID
	if row.Format != "" {
		out.Format = row.Format
		out.ContentType = row.Format.ContentType()
	}
	if row.ContentType != "" {
		out.ContentType = row.ContentType
	}
	if !row.CreatedAt.IsZero() {
		out.CreatedAt = row.CreatedAt
	}
	return &out
}

// Delete removes the file first; a manifest row for a file that is already gone is pruned anyway.
func (s *documentService) Delete(ctx context.Context, filename string) error {
	const op = "Delete"
	if filename == "" {
		return &Error{Kind: KindNotFound, Op: op, Err: ErrFilenameRequired}
	}

	storeErr := s.store.Delete(ctx, filename)
	if storeErr != nil && !errors.Is(storeErr, filestore.ErrNotFound) {
		return classify(op, storeErr, KindIO)
	}

	if s.repo != nil {
		if err := s.repo.Delete(ctx, filename); err != nil {
			return &Error{Kind: KindIO, Op: op, Err: fmt.Errorf("manifest delete: %w", err)}
		}
	}

	if storeErr != nil {
		return classify(op, storeErr, KindNotFound)
	}
	s.log.Info("document_deleted", "filename", filename)
	return nil
}

func (s *documentService) Cleanup(ctx context.Context, maxAge time.Duration) (int, error) {
	const op = "Cleanup"
	if maxAge <= 0 {
		maxAge = s.opts.FileTTL
	}

	ctx, span := tracer.Start(ctx, "DocumentService."+op,
		trace.WithAttributes(attribute.Float64("cleanup.max_age_seconds", maxAge.Seconds())))
	defer span.End()

	deleted, sweepErr := s.store.Sweep(ctx, maxAge)
	s.metrics.Swept(len(deleted))
	span.SetAttributes(attribute.Int("cleanup.deleted", len(deleted)))

	if len(deleted) > 0 && s.repo != nil {
		// Files are already gone; a stale manifest row is only reported.
		if err := s.repo.Delete(ctx, deleted...); err != nil {
			s.log.Warn("manifest_cleanup_failed", "files", len(deleted), "error", err.Error())
		}
	}

	if sweepErr != nil {
		span.RecordError(sweepErr)
		span.SetStatus(codes.Error, KindIO.String())
		return len(deleted), &Error{Kind: KindIO, Op: op, Err: sweepErr}
	}
	s.log.Info("temp_cleanup", "deleted", len(deleted), "max_age_sec", int(maxAge.Seconds()))
	return len(deleted), nil
}

// List returns paginated files from the manifest, or from the store when no manifest is kept.
func (s *documentService) List(ctx context.Context, limit, offset int) (*FileListResult, error) {
	const op = "List"
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	if offset < 0 {
		offset = 0
	}

	if s.repo != nil {
		res, err := s.repo.List(ctx, repository.PageQuery{Limit: limit, Offset: offset})
		if err != nil {
			return nil, &Error{Kind: KindIO, Op: op, Err: err}
		}
		return &FileListResult{Items: res.Items, Total: res.Total}, nil
	}

	all, err := s.store.List(ctx)
	if err != nil {
		return nil, &Error{Kind: KindIO, Op: op, Err: err}
	}
	items := []model.GeneratedFile{}
	if offset < len(all) {
		end := min(offset+limit, len(all))
		items = all[offset:end]
	}
	return &FileListResult{Items: items, Total: len(all)}, nil
}
