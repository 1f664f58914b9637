// Package docx builds word-processing documents as an in-memory object tree and
// serializes them to the zipped WordprocessingML package format.
package docx

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

// Length is a measurement in twentieths of a point (twips).
type Length int

// Cm converts centimetres to twips.
func Cm(v float64) Length {
	return Length(math.Round(v * 1440 / 2.54))
}

// RGB is a 24-bit run color.
type RGB struct {
	R, G, B uint8
}

// Hex renders the color as the six-digit form used by the package markup.
func (c RGB) Hex() string {
	return fmt.Sprintf("%02X%02X%02X", c.R, c.G, c.B)
}

// Alignment is a paragraph justification value.
type Alignment string

const (
	AlignDefault Alignment = ""
	AlignLeft    Alignment = "left"
	AlignCenter  Alignment = "center"
	AlignRight   Alignment = "right"
	AlignJustify Alignment = "both"
)

// BreakKind selects what a break run inserts.
type BreakKind int

const (
	BreakNone BreakKind = iota
	BreakLine
	BreakPage
)

// MaxHeadingLevel is the deepest heading style shipped in the package styles part.
const MaxHeadingLevel = 3

// maxFontSize mirrors the word processor's upper bound, in points.
const maxFontSize = 1638

var (
	ErrInvalidStyle     = errors.New("invalid paragraph style")
	ErrInvalidAlignment = errors.New("invalid alignment")
	ErrInvalidFontSize  = errors.New("invalid font size")
	ErrInvalidFont      = errors.New("invalid font name")
	ErrInvalidMargin    = errors.New("invalid page margin")
)

// Properties are the package core properties.
type Properties struct {
	Title   string
	Creator string
	Created time.Time
}

// PageSetup holds the geometry of the single document section.
type PageSetup struct {
	Width        Length
	Height       Length
	MarginTop    Length
	MarginBottom Length
	MarginLeft   Length
	MarginRight  Length
}

// Run is a contiguous span of text sharing formatting, or a single break.
type Run struct {
	Text  string
	Bold  bool
	Size  float64 // points; zero inherits the style size
	Color *RGB
	Font  string
	Break BreakKind
}

// Paragraph is a block-level element made of runs.
type Paragraph struct {
	Style string
	Align Alignment
	Runs  []*Run
}

// Document is the root of the in-memory object tree.
type Document struct {
	Properties Properties
	Page       PageSetup
	Body       []*Paragraph
}

// New returns an empty A4 document with the word processor's default margins.
func New() *Document {
	return &Document{
		Page: PageSetup{
			Width:        11906,
			Height:       16838,
			MarginTop:    Cm(2.54),
			MarginBottom: Cm(2.54),
			MarginLeft:   Cm(2.54),
			MarginRight:  Cm(2.54),
		},
	}
}

// AddParagraph appends a body paragraph, with a plain run when text is not empty.
func (d *Document) AddParagraph(text string) *Paragraph {
	p := &Paragraph{}
	if text != "" {
		p.AddRun(text)
	}
	d.Body = append(d.Body, p)
	return p
}

// AddHeading appends a heading paragraph at the given level.
func (d *Document) AddHeading(text string, level int) *Paragraph {
	p := d.AddParagraph(text)
	p.Style = fmt.Sprintf("Heading%d", level)
	return p
}

// AddPageBreak appends a paragraph holding only a page break.
func (d *Document) AddPageBreak() *Paragraph {
	p := &Paragraph{Runs: []*Run{{Break: BreakPage}}}
	d.Body = append(d.Body, p)
	return p
}

// AddRun appends a text run to the paragraph.
func (p *Paragraph) AddRun(text string) *Run {
	r := &Run{Text: text}
	p.Runs = append(p.Runs, r)
	return r
}

// AddBreak appends a line break run to the paragraph.
func (p *Paragraph) AddBreak() *Run {
	r := &Run{Break: BreakLine}
	p.Runs = append(p.Runs, r)
	return r
}

// Text concatenates the text of all runs.
func (p *Paragraph) Text() string {
	var b strings.Builder
	for _, r := range p.Runs {
		b.WriteString(r.Text)
	}
	return b.String()
}

// Validate checks every node against the values the package writer can express.
func (d *Document) Validate() error {
	margins := []Length{d.Page.MarginTop, d.Page.MarginBottom, d.Page.MarginLeft, d.Page.MarginRight}
	for _, m := range margins {
		if m < 0 || m >= d.Page.Width || m >= d.Page.Height {
			return fmt.Errorf("%w: %d", ErrInvalidMargin, m)
		}
	}
	for i, p := range d.Body {
		if err := p.validate(); err != nil {
			return fmt.Errorf("paragraph %d: %w", i, err)
		}
	}
	return nil
}

func (p *Paragraph) validate() error {
	if !knownStyle(p.Style) {
		return fmt.Errorf("%w: %q", ErrInvalidStyle, p.Style)
	}
	switch p.Align {
	case AlignDefault, AlignLeft, AlignCenter, AlignRight, AlignJustify:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidAlignment, p.Align)
	}
	for _, r := range p.Runs {
		if r.Size < 0 || r.Size > maxFontSize {
			return fmt.Errorf("%w: %v", ErrInvalidFontSize, r.Size)
		}
		if r.Font != "" && strings.TrimSpace(r.Font) == "" {
			return ErrInvalidFont
		}
	}
	return nil
}

func knownStyle(style string) bool {
	if style == "" {
		return true
	}
	for level := 1; level <= MaxHeadingLevel; level++ {
		if style == fmt.Sprintf("Heading%d", level) {
			return true
		}
	}
	return false
}
