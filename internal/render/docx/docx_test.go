package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matematicocardenas25-crypto/generador-documentos-cientificos/internal/model"
	"github.com/matematicocardenas25-crypto/generador-documentos-cientificos/internal/render"
)

var fixedNow = time.Date(2024, 3, 15, 10, 30, 45, 0, time.UTC)

type parsedRun struct {
	Text string    `xml:"t"`
	Bold *struct{} `xml:"rPr>b"`
	Size struct {
		Val string `xml:"val,attr"`
	} `xml:"rPr>sz"`
	Color struct {
		Val string `xml:"val,attr"`
	} `xml:"rPr>color"`
	Font struct {
		ASCII string `xml:"ascii,attr"`
	} `xml:"rPr>rFonts"`
	Br *struct {
		Type string `xml:"type,attr"`
	} `xml:"br"`
}

type parsedParagraph struct {
	Style struct {
		Val string `xml:"val,attr"`
	} `xml:"pPr>pStyle"`
	Jc struct {
		Val string `xml:"val,attr"`
	} `xml:"pPr>jc"`
	Runs []parsedRun `xml:"r"`
}

type parsedDocument struct {
	Paragraphs []parsedParagraph `xml:"body>p"`
	Margins    struct {
		Top    int `xml:"top,attr"`
		Bottom int `xml:"bottom,attr"`
		Left   int `xml:"left,attr"`
		Right  int `xml:"right,attr"`
	} `xml:"body>sectPr>pgMar"`
}

func readParts(t *testing.T, pkg []byte) map[string][]byte {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(pkg), int64(len(pkg)))
	require.NoError(t, err)

	parts := make(map[string][]byte, len(zr.File))
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		rc.Close()
		parts[f.Name] = data
	}
	return parts
}

func parseDocument(t *testing.T, pkg []byte) parsedDocument {
	t.Helper()
	parts := readParts(t, pkg)
	var doc parsedDocument
	require.NoError(t, xml.Unmarshal(parts[PartDocument], &doc))
	return doc
}

func TestCm(t *testing.T) {
	assert.Equal(t, Length(1417), Cm(2.5))
	assert.Equal(t, Length(1701), Cm(3))
	assert.Equal(t, Length(1440), Cm(2.54))
}

func TestRGB_Hex(t *testing.T) {
	assert.Equal(t, "003366", TitleColor.Hex())
	assert.Equal(t, "404040", AuthorColor.Hex())
}

func TestBuild_Scaffold(t *testing.T) {
	d, err := Build(model.GenerationRequest{Title: "Test", Author: "A"}, fixedNow)
	require.NoError(t, err)
	require.Len(t, d.Body, ScaffoldLength)

	title := d.Body[0]
	assert.Equal(t, "TEST", title.Text())
	assert.Equal(t, AlignCenter, title.Align)
	require.Len(t, title.Runs, 1)
	assert.True(t, title.Runs[0].Bold)
	assert.Equal(t, float64(TitleSize), title.Runs[0].Size)
	assert.Equal(t, TitleColor, *title.Runs[0].Color)
	assert.Equal(t, TitleFont, title.Runs[0].Font)

	for _, spacer := range d.Body[1:3] {
		require.Len(t, spacer.Runs, 1)
		assert.Equal(t, BreakLine, spacer.Runs[0].Break)
	}

	author := d.Body[3]
	assert.Equal(t, "A", author.Text())
	assert.Equal(t, AlignCenter, author.Align)
	assert.Equal(t, float64(AuthorSize), author.Runs[0].Size)
	assert.Equal(t, AuthorColor, *author.Runs[0].Color)
	assert.True(t, author.Runs[0].Bold)

	assert.Equal(t, BreakPage, d.Body[4].Runs[0].Break)
	assert.Equal(t, "Heading1", d.Body[5].Style)
	assert.Equal(t, ContentHeading, d.Body[5].Text())

	assert.Equal(t, Cm(2.5), d.Page.MarginTop)
	assert.Equal(t, Cm(2.5), d.Page.MarginBottom)
	assert.Equal(t, Cm(3), d.Page.MarginLeft)
	assert.Equal(t, Cm(3), d.Page.MarginRight)
	assert.Equal(t, "Test", d.Properties.Title)
	assert.Equal(t, "A", d.Properties.Creator)
}

func TestBuild_Content(t *testing.T) {
	req := model.GenerationRequest{
		Title:   "Álgebra lineal",
		Author:  "A",
		Content: "# Intro\nHello\n\n## Sub\n### Deep\nWorld",
	}
	d, err := Build(req, fixedNow)
	require.NoError(t, err)

	body := d.Body[ScaffoldLength:]
	require.Len(t, body, 5)

	want := []struct {
		style string
		text  string
	}{
		{"Heading1", "Intro"},
		{"", "Hello"},
		{"Heading2", "Sub"},
		{"Heading3", "Deep"},
		{"", "World"},
	}
	for i, w := range want {
		assert.Equal(t, w.style, body[i].Style, "block %d", i)
		assert.Equal(t, w.text, body[i].Text(), "block %d", i)
	}
	assert.Equal(t, "ÁLGEBRA LINEAL", d.Body[0].Text())
}

func TestDocument_Validate(t *testing.T) {
	t.Run("unknown heading level", func(t *testing.T) {
		d := New()
		d.AddHeading("too deep", 4)
		assert.ErrorIs(t, d.Validate(), ErrInvalidStyle)
	})

	t.Run("negative font size", func(t *testing.T) {
		d := New()
		d.AddParagraph("x").Runs[0].Size = -1
		assert.ErrorIs(t, d.Validate(), ErrInvalidFontSize)
	})

	t.Run("blank font name", func(t *testing.T) {
		d := New()
		d.AddParagraph("x").Runs[0].Font = "   "
		assert.ErrorIs(t, d.Validate(), ErrInvalidFont)
	})

	t.Run("bad alignment", func(t *testing.T) {
		d := New()
		d.AddParagraph("x").Align = "diagonal"
		assert.ErrorIs(t, d.Validate(), ErrInvalidAlignment)
	})

	t.Run("margin larger than page", func(t *testing.T) {
		d := New()
		d.Page.MarginLeft = d.Page.Width
		assert.ErrorIs(t, d.Validate(), ErrInvalidMargin)
	})

	t.Run("write refuses invalid tree", func(t *testing.T) {
		d := New()
		d.AddHeading("x", 0)
		_, err := d.Bytes()
		assert.ErrorIs(t, err, ErrInvalidStyle)
	})
}

func TestRenderer_Render(t *testing.T) {
	r := NewRenderer()
	assert.Equal(t, model.FormatWord, r.Format())

	out, err := r.Render(model.GenerationRequest{Title: "Test", Author: "A", Content: "# Uno\ntexto"}, fixedNow)
	require.NoError(t, err)

	parts := readParts(t, out)
	for _, name := range []string{PartContentTypes, PartRootRels, PartDocument, PartDocumentRels, PartStyles, PartCore} {
		assert.Contains(t, parts, name)
	}

	doc := parseDocument(t, out)
	require.Len(t, doc.Paragraphs, ScaffoldLength+2)

	title := doc.Paragraphs[0]
	assert.Equal(t, "center", title.Jc.Val)
	require.Len(t, title.Runs, 1)
	assert.Equal(t, "TEST", title.Runs[0].Text)
	assert.NotNil(t, title.Runs[0].Bold)
	assert.Equal(t, "56", title.Runs[0].Size.Val)
	assert.Equal(t, "003366", title.Runs[0].Color.Val)
	assert.Equal(t, TitleFont, title.Runs[0].Font.ASCII)

	assert.NotNil(t, doc.Paragraphs[1].Runs[0].Br)
	assert.Equal(t, "28", doc.Paragraphs[3].Runs[0].Size.Val)
	assert.Equal(t, "page", doc.Paragraphs[4].Runs[0].Br.Type)
	assert.Equal(t, "Heading1", doc.Paragraphs[5].Style.Val)
	assert.Equal(t, "CONTENIDO", doc.Paragraphs[5].Runs[0].Text)
	assert.Equal(t, "Heading1", doc.Paragraphs[6].Style.Val)
	assert.Equal(t, "Uno", doc.Paragraphs[6].Runs[0].Text)
	assert.Equal(t, "", doc.Paragraphs[7].Style.Val)
	assert.Equal(t, "texto", doc.Paragraphs[7].Runs[0].Text)

	assert.Equal(t, 1417, doc.Margins.Top)
	assert.Equal(t, 1417, doc.Margins.Bottom)
	assert.Equal(t, 1701, doc.Margins.Left)
	assert.Equal(t, 1701, doc.Margins.Right)

	assert.Contains(t, string(parts[PartCore]), "<dc:title>Test</dc:title>")
	assert.Contains(t, string(parts[PartCore]), "2024-03-15T10:30:45Z")
}

func TestRenderer_EmptyContentHasOnlyScaffold(t *testing.T) {
	out, err := NewRenderer().Render(model.GenerationRequest{Title: "Test", Author: "A"}, fixedNow)
	require.NoError(t, err)

	doc := parseDocument(t, out)
	assert.Len(t, doc.Paragraphs, ScaffoldLength)
	assert.Equal(t, "TEST", doc.Paragraphs[0].Runs[0].Text)
}

func TestRenderer_EscapesMarkup(t *testing.T) {
	req := model.GenerationRequest{Title: "a<b & c>", Author: "O'Neil \"x\"", Content: "x < y && z > w"}
	out, err := NewRenderer().Render(req, fixedNow)
	require.NoError(t, err)

	doc := parseDocument(t, out)
	assert.Equal(t, "A<B & C>", doc.Paragraphs[0].Runs[0].Text)
	assert.Equal(t, "O'Neil \"x\"", doc.Paragraphs[3].Runs[0].Text)
	assert.Equal(t, "x < y && z > w", doc.Paragraphs[ScaffoldLength].Runs[0].Text)
}

func TestRenderer_Deterministic(t *testing.T) {
	req := model.GenerationRequest{Title: "Test", Author: "A", Content: "# a\nb"}

	first, err := NewRenderer().Render(req, fixedNow)
	require.NoError(t, err)
	second, err := NewRenderer().Render(req, fixedNow)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	later, err := NewRenderer().Render(req, fixedNow.Add(time.Hour))
	require.NoError(t, err)
	assert.NotEqual(t, first, later)
}

func TestError_IsRenderError(t *testing.T) {
	err := render.Wrap(model.FormatWord, ErrInvalidStyle)
	assert.ErrorIs(t, err, render.ErrRender)
	assert.ErrorIs(t, err, ErrInvalidStyle)
}
