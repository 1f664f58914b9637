package model

import (
	"path/filepath"
	"strings"
	"time"
)

// Format identifies the kind of generated artifact.
type Format string

const (
	FormatWord  Format = "docx"
	FormatLatex Format = "tex"
)

const (
	ContentTypeWord    = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	ContentTypeLatex   = "application/x-tex"
	ContentTypeUnknown = "application/octet-stream"
)

// Extension returns the file extension for the format, including the leading dot.
func (f Format) Extension() string {
	return "." + string(f)
}

// ContentType returns the MIME type served for the format.
func (f Format) ContentType() string {
	switch f {
	case FormatWord:
		return ContentTypeWord
	case FormatLatex:
		return ContentTypeLatex
	default:
		return ContentTypeUnknown
	}
}

// FormatFromFilename infers the format from a filename extension.
func FormatFromFilename(name string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".docx":
		return FormatWord, true
	case ".tex":
		return FormatLatex, true
	default:
		return "", false
	}
}

// GeneratedFile represents one emitted artifact held by the file store.
// CreatedAt mirrors the backend's last-modified time unless a manifest row says otherwise.
type GeneratedFile struct {
	ID          string    `json:"id,omitempty"`
	Filename    string    `json:"filename"`
	Format      Format    `json:"format"`
	StoragePath string    `json:"storage_path"`
	Size        int64     `json:"size"`
	ContentType string    `json:"content_type"`
	CreatedAt   time.Time `json:"created_at"`
}
