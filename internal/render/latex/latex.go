// Package latex emits typesetting source by substituting request fields into a fixed template.
// Content is inserted verbatim; users author the markup themselves.
package latex

import (
	"bytes"
	"strings"
	"text/template"
	"time"

	"github.com/matematicocardenas25-crypto/generador-documentos-cientificos/internal/model"
	"github.com/matematicocardenas25-crypto/generador-documentos-cientificos/internal/render"
)

// DateLayout formats the generation date in the source header as day/month/year.
const DateLayout = "02/01/2006"

// Template delimiters avoid clashing with the braces of the typesetting language.
const (
	leftDelim  = "<<"
	rightDelim = ">>"
)

const source = `% ============================================
% DOCUMENTO CIENTÍFICO EN LATEX
% Generado automáticamente
% Autor: <<.Author>>
% Fecha: <<.Date>>
% ============================================

\documentclass[12pt, a4paper]{article}

% Paquetes esenciales
\usepackage{amsmath, amssymb, amsthm, amsfonts}
\usepackage{mathtools, bm, physics}
\usepackage{geometry}
\geometry{a4paper, margin=2.5cm}
\usepackage[spanish]{babel}
\usepackage[utf8]{inputenc}
\usepackage{graphicx}
\usepackage{hyperref}
\usepackage{fancyhdr}
\usepackage{titlesec}

% Configuración
\title{<<.Title>>}
\author{<<.Author>><<range .Affiliation>> \\ <<.>><<end>>}
\date{\today}

\begin{document}

\maketitle

% Contenido
<<.Content>>

\end{document}
`

var tmpl = template.Must(template.New("latex").Delims(leftDelim, rightDelim).Parse(source))

type templateData struct {
	Title       string
	Author      string
	Affiliation []string
	Date        string
	Content     string
}

// Renderer emits the typesetting source document.
type Renderer struct {
	affiliation []string
}

var _ render.Renderer = (*Renderer)(nil)

// NewRenderer returns an emitter that lists affiliation lines under the author name.
func NewRenderer(affiliation []string) *Renderer {
	lines := make([]string, 0, len(affiliation))
	for _, a := range affiliation {
		if a = strings.TrimSpace(a); a != "" {
			lines = append(lines, a)
		}
	}
	return &Renderer{affiliation: lines}
}

func (r *Renderer) Format() model.Format {
	return model.FormatLatex
}

// Render substitutes title, author, date and raw content into the template.
func (r *Renderer) Render(req model.GenerationRequest, now time.Time) ([]byte, error) {
	data := templateData{
		Title:       req.Title,
		Author:      req.Author,
		Affiliation: r.affiliation,
		Date:        now.Format(DateLayout),
		Content:     req.Content,
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, render.Wrap(model.FormatLatex, err)
	}
	return buf.Bytes(), nil
}
