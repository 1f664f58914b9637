package docx

import (
	"time"

	"github.com/matematicocardenas25-crypto/generador-documentos-cientificos/internal/model"
	"github.com/matematicocardenas25-crypto/generador-documentos-cientificos/internal/render"
)

// Renderer emits the structured word-processing document.
type Renderer struct{}

var _ render.Renderer = Renderer{}

// NewRenderer returns the structured-document emitter.
func NewRenderer() Renderer {
	return Renderer{}
}

func (Renderer) Format() model.Format {
	return model.FormatWord
}

// Render builds the document tree for req and serializes it synchronously.
func (Renderer) Render(req model.GenerationRequest, now time.Time) ([]byte, error) {
	d, err := Build(req, now)
	if err != nil {
		return nil, render.Wrap(model.FormatWord, err)
	}
	out, err := d.Bytes()
	if err != nil {
		return nil, render.Wrap(model.FormatWord, err)
	}
	return out, nil
}
