package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"time"
)

const xmlHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"

const (
	nsMain = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	nsRel  = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
)

// Part names inside the package.
const (
	PartContentTypes = "[Content_Types].xml"
	PartRootRels     = "_rels/.rels"
	PartDocument     = "word/document.xml"
	PartDocumentRels = "word/_rels/document.xml.rels"
	PartStyles       = "word/styles.xml"
	PartCore         = "docProps/core.xml"
)

type xmlDocument struct {
	XMLName xml.Name `xml:"w:document"`
	NSW     string   `xml:"xmlns:w,attr"`
	NSR     string   `xml:"xmlns:r,attr"`
	Body    xmlBody  `xml:"w:body"`
}

type xmlBody struct {
	Paragraphs []xmlParagraph `xml:"w:p"`
	SectPr     xmlSectPr      `xml:"w:sectPr"`
}

type xmlParagraph struct {
	PPr  *xmlPPr  `xml:"w:pPr,omitempty"`
	Runs []xmlRun `xml:"w:r"`
}

type xmlPPr struct {
	PStyle *xmlVal `xml:"w:pStyle,omitempty"`
	Jc     *xmlVal `xml:"w:jc,omitempty"`
}

type xmlVal struct {
	Val string `xml:"w:val,attr"`
}

type xmlRun struct {
	RPr  *xmlRPr  `xml:"w:rPr,omitempty"`
	Br   *xmlBr   `xml:"w:br,omitempty"`
	Text *xmlText `xml:"w:t,omitempty"`
}

type xmlRPr struct {
	Fonts *xmlFonts `xml:"w:rFonts,omitempty"`
	Bold  *struct{} `xml:"w:b,omitempty"`
	Color *xmlVal   `xml:"w:color,omitempty"`
	Size  *xmlVal   `xml:"w:sz,omitempty"`
	SizeC *xmlVal   `xml:"w:szCs,omitempty"`
}

type xmlFonts struct {
	ASCII string `xml:"w:ascii,attr"`
	HAnsi string `xml:"w:hAnsi,attr"`
	CS    string `xml:"w:cs,attr"`
}

type xmlBr struct {
	Type string `xml:"w:type,attr,omitempty"`
}

type xmlText struct {
	Space string `xml:"xml:space,attr,omitempty"`
	Value string `xml:",chardata"`
}

type xmlSectPr struct {
	PgSz  xmlPgSz  `xml:"w:pgSz"`
	PgMar xmlPgMar `xml:"w:pgMar"`
}

type xmlPgSz struct {
	W int `xml:"w:w,attr"`
	H int `xml:"w:h,attr"`
}

type xmlPgMar struct {
	Top    int `xml:"w:top,attr"`
	Right  int `xml:"w:right,attr"`
	Bottom int `xml:"w:bottom,attr"`
	Left   int `xml:"w:left,attr"`
	Header int `xml:"w:header,attr"`
	Footer int `xml:"w:footer,attr"`
	Gutter int `xml:"w:gutter,attr"`
}

// Bytes serializes the document into a complete package.
func (d *Document) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := d.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write validates the document and writes the zipped package to w.
// Entry timestamps come from Properties.Created so output is reproducible.
func (d *Document) Write(w io.Writer) error {
	if err := d.Validate(); err != nil {
		return err
	}

	body, err := d.marshalBody()
	if err != nil {
		return fmt.Errorf("marshal document part: %w", err)
	}

	parts := []struct {
		name string
		data []byte
	}{
		{PartContentTypes, []byte(contentTypesXML)},
		{PartRootRels, []byte(rootRelsXML)},
		{PartDocument, body},
		{PartDocumentRels, []byte(documentRelsXML)},
		{PartStyles, []byte(stylesXML)},
		{PartCore, d.coreXML()},
	}

	modified := d.Properties.Created
	if modified.IsZero() {
		modified = time.Date(1980, 1, 1, 0, 0, 0, 0, time.UTC)
	}

	zw := zip.NewWriter(w)
	for _, p := range parts {
		fw, err := zw.CreateHeader(&zip.FileHeader{
			Name:     p.name,
			Method:   zip.Deflate,
			Modified: modified,
		})
		if err != nil {
			return fmt.Errorf("create part %s: %w", p.name, err)
		}
		if _, err := fw.Write(p.data); err != nil {
			return fmt.Errorf("write part %s: %w", p.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("close package: %w", err)
	}
	return nil
}

func (d *Document) marshalBody() ([]byte, error) {
	doc := xmlDocument{NSW: nsMain, NSR: nsRel}
	doc.Body.Paragraphs = make([]xmlParagraph, 0, len(d.Body))
	for _, p := range d.Body {
		doc.Body.Paragraphs = append(doc.Body.Paragraphs, toXMLParagraph(p))
	}
	doc.Body.SectPr = xmlSectPr{
		PgSz: xmlPgSz{W: int(d.Page.Width), H: int(d.Page.Height)},
		PgMar: xmlPgMar{
			Top:    int(d.Page.MarginTop),
			Right:  int(d.Page.MarginRight),
			Bottom: int(d.Page.MarginBottom),
			Left:   int(d.Page.MarginLeft),
			Header: 708,
			Footer: 708,
		},
	}

	out, err := xml.Marshal(doc)
	if err != nil {
		return nil, err
	}
	return append([]byte(xmlHeader), out...), nil
}

func toXMLParagraph(p *Paragraph) xmlParagraph {
	var xp xmlParagraph
	if p.Style != "" || p.Align != AlignDefault {
		xp.PPr = &xmlPPr{}
		if p.Style != "" {
			xp.PPr.PStyle = &xmlVal{Val: p.Style}
		}
		if p.Align != AlignDefault {
			xp.PPr.Jc = &xmlVal{Val: string(p.Align)}
		}
	}
	for _, r := range p.Runs {
		xp.Runs = append(xp.Runs, toXMLRun(r))
	}
	return xp
}

func toXMLRun(r *Run) xmlRun {
	xr := xmlRun{RPr: toXMLRunProps(r)}
	switch r.Break {
	case BreakLine:
		xr.Br = &xmlBr{}
	case BreakPage:
		xr.Br = &xmlBr{Type: "page"}
	default:
		xr.Text = &xmlText{Space: "preserve", Value: r.Text}
	}
	return xr
}

func toXMLRunProps(r *Run) *xmlRPr {
	if r.Font == "" && !r.Bold && r.Color == nil && r.Size == 0 {
		return nil
	}
	rpr := &xmlRPr{}
	if r.Font != "" {
		rpr.Fonts = &xmlFonts{ASCII: r.Font, HAnsi: r.Font, CS: r.Font}
	}
	if r.Bold {
		rpr.Bold = &struct{}{}
	}
	if r.Color != nil {
		rpr.Color = &xmlVal{Val: r.Color.Hex()}
	}
	if r.Size > 0 {
		halfPoints := strconv.Itoa(int(r.Size * 2))
		rpr.Size = &xmlVal{Val: halfPoints}
		rpr.SizeC = &xmlVal{Val: halfPoints}
	}
	return rpr
}

func (d *Document) coreXML() []byte {
	created := d.Properties.Created.UTC().Format(time.RFC3339)
	var buf bytes.Buffer
	buf.WriteString(xmlHeader)
	buf.WriteString(`<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties"` +
		` xmlns:dc="http://purl.org/dc/elements/1.1/" xmlns:dcterms="http://purl.org/dc/terms/"` +
		` xmlns:dcmitype="http://purl.org/dc/dcmitype/" xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">`)
	buf.WriteString("<dc:title>")
	_ = xml.EscapeText(&buf, []byte(d.Properties.Title))
	buf.WriteString("</dc:title><dc:creator>")
	_ = xml.EscapeText(&buf, []byte(d.Properties.Creator))
	buf.WriteString("</dc:creator>")
	if !d.Properties.Created.IsZero() {
		fmt.Fprintf(&buf, `<dcterms:created xsi:type="dcterms:W3CDTF">%s</dcterms:created>`, created)
		fmt.Fprintf(&buf, `<dcterms:modified xsi:type="dcterms:W3CDTF">%s</dcterms:modified>`, created)
	}
	buf.WriteString("</cp:coreProperties>")
	return buf.Bytes()
}
