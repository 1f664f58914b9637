package service

import (
	"errors"
	"fmt"

	"github.com/matematicocardenas25-crypto/generador-documentos-cientificos/internal/filestore"
	"github.com/matematicocardenas25-crypto/generador-documentos-cientificos/internal/render"
)

var ErrFilenameRequired = errors.New("filename is required")

// Kind classifies a service failure so the transport layer can pick a status code.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindRender
	KindNotFound
	KindIO
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindRender:
		return "render"
	case KindNotFound:
		return "not_found"
	case KindIO:
		return "io"
	default:
		return "internal"
	}
}

// Error is returned by every DocumentService operation that fails.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf extracts the failure kind from err. Errors that did not come from the service are internal.
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindInternal
}

// classify wraps err with the kind implied by the lower layers, defaulting to fallback.
func classify(op string, err error, fallback Kind) error {
	kind := fallback
	switch {
	case errors.Is(err, filestore.ErrNotFound), errors.Is(err, filestore.ErrInvalidFilename):
		kind = KindNotFound
	case errors.Is(err, render.ErrRender):
		kind = KindRender
	}
	return &Error{Kind: kind, Op: op, Err: err}
}
