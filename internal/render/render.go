// Package render defines the contract shared by the document emitters.
package render

import (
	"errors"
	"fmt"
	"time"

	"github.com/matematicocardenas25-crypto/generador-documentos-cientificos/internal/model"
)

// ErrRender is matched by every emitter failure.
var ErrRender = errors.New("render failed")

// Renderer turns a generation request into a serialized document.
// now is the wall-clock instant embedded in the output; equal inputs and equal now yield equal bytes.
type Renderer interface {
	Format() model.Format
	Render(req model.GenerationRequest, now time.Time) ([]byte, error)
}

// Error describes a failed emission for a given format.
type Error struct {
	Format model.Format
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("render %s: %v", e.Format, e.Err)
}

func (e *Error) Unwrap() []error {
	return []error{ErrRender, e.Err}
}

// Wrap returns err as a render error for the given format, or nil when err is nil.
func Wrap(format model.Format, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Format: format, Err: err}
}
