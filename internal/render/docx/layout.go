package docx

import (
	"strings"
	"time"

	"github.com/matematicocardenas25-crypto/generador-documentos-cientificos/internal/model"
	"github.com/matematicocardenas25-crypto/generador-documentos-cientificos/internal/parser"
)

// Fixed layout parameters of the generated scientific document.
const (
	TitleFont      = "Times New Roman"
	TitleSize      = 28
	AuthorSize     = 14
	ContentHeading = "CONTENIDO"
)

var (
	TitleColor  = RGB{R: 0, G: 51, B: 102}
	AuthorColor = RGB{R: 64, G: 64, B: 64}
)

// ScaffoldLength is the number of body paragraphs emitted before user content.
const ScaffoldLength = 6

// Build lays out the title page, author block and parsed content of req.
func Build(req model.GenerationRequest, now time.Time) (*Document, error) {
	d := New()
	d.Properties = Properties{Title: req.Title, Creator: req.Author, Created: now}
	d.Page.MarginTop = Cm(2.5)
	d.Page.MarginBottom = Cm(2.5)
	d.Page.MarginLeft = Cm(3)
	d.Page.MarginRight = Cm(3)

	title := d.AddParagraph("")
	title.Align = AlignCenter
	tr := title.AddRun(strings.ToUpper(req.Title))
	tr.Size = TitleSize
	titleColor := TitleColor
	tr.Color = &titleColor
	tr.Bold = true
	tr.Font = TitleFont

	d.AddParagraph("").AddBreak()
	d.AddParagraph("").AddBreak()

	author := d.AddParagraph("")
	author.Align = AlignCenter
	ar := author.AddRun(req.Author)
	ar.Size = AuthorSize
	authorColor := AuthorColor
	ar.Color = &authorColor
	ar.Bold = true

	d.AddPageBreak()
	d.AddHeading(ContentHeading, 1)

	for _, block := range parser.Parse(req.Content) {
		if block.IsHeading() {
			d.AddHeading(block.Text, block.Level)
			continue
		}
		d.AddParagraph(block.Text)
	}

	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}
