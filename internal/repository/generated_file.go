package repository

import (
	"context"
	"errors"

	"github.com/matematicocardenas25-crypto/generador-documentos-cientificos/internal/model"
)

// Package repository contains data access abstractions for the generated-file manifest.
// Implementations live in subpackages (e.g., postgres) inside this directory.

// ErrNotFound is returned when no manifest row matches.
var ErrNotFound = errors.New("manifest entry not found")

// GeneratedFileRepository records which files were generated, when, and in which format.
// No business logic here — strictly persistence operations.
type GeneratedFileRepository interface {
	// Create upserts a manifest row keyed by filename and returns the stored row.
	Create(ctx context.Context, f *model.GeneratedFile) (*model.GeneratedFile, error)

	// FindByFilename returns a manifest row by filename.
	FindByFilename(ctx context.Context, filename string) (*model.GeneratedFile, error)

	// List returns a page of rows, newest first, and the total row count.
	List(ctx context.Context, pq PageQuery) (*PageResult[model.GeneratedFile], error)

	// Delete removes rows by filename. Missing rows are not an error.
	Delete(ctx context.Context, filenames ...string) error
}

// PageQuery holds limit/offset pagination parameters.
type PageQuery struct {
	Limit  int
	Offset int
}

// PageResult is a generic pagination result wrapper.
// T is typically a model type.
type PageResult[T any] struct {
	Items []T
	Total int
}
