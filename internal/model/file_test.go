package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatFromFilename(t *testing.T) {
	tests := []struct {
		name   string
		want   Format
		wantOK bool
	}{
		{"documento_20240101_120000.docx", FormatWord, true},
		{"documento_20240101_120000.TEX", FormatLatex, true},
		{"notes.txt", "", false},
		{"noext", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FormatFromFilename(tt.name)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormat_ContentType(t *testing.T) {
	assert.Equal(t, ContentTypeWord, FormatWord.ContentType())
	assert.Equal(t, ContentTypeLatex, FormatLatex.ContentType())
	assert.Equal(t, ContentTypeUnknown, Format("pdf").ContentType())
	assert.Equal(t, ".docx", FormatWord.Extension())
}

func TestGenerationRequest_WithDefaults(t *testing.T) {
	req := GenerationRequest{Content: "body"}.WithDefaults("Documento Científico", "Autor")
	assert.Equal(t, "Documento Científico", req.Title)
	assert.Equal(t, "Autor", req.Author)
	assert.Equal(t, "body", req.Content)

	kept := GenerationRequest{Title: "T", Author: "A"}.WithDefaults("x", "y")
	assert.Equal(t, "T", kept.Title)
	assert.Equal(t, "A", kept.Author)
}

func TestGenerationRequest_Validate(t *testing.T) {
	assert.NoError(t, GenerationRequest{}.Validate())
	assert.NoError(t, GenerationRequest{Title: "T", Author: "A", Content: "# x"}.Validate())

	long := make([]rune, MaxTitleLength+1)
	for i := range long {
		long[i] = 'á'
	}
	err := GenerationRequest{Title: string(long)}.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "titulo")
}
