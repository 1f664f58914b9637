package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Field limits enforced on incoming generation requests.
const (
	MaxTitleLength   = 500
	MaxAuthorLength  = 300
	MaxContentLength = 1 << 20
)

// GenerationRequest carries the user-submitted fields for one document generation.
// This is a pure value object; defaults are applied by the service before rendering.
type GenerationRequest struct {
	Title   string `json:"titulo"`
	Content string `json:"contenido"`
	Author  string `json:"autor"`
}

// WithDefaults returns a copy where an empty title or author is replaced by the given defaults.
// Content is left untouched; an empty body is valid.
func (r GenerationRequest) WithDefaults(title, author string) GenerationRequest {
	if r.Title == "" {
		r.Title = title
	}
	if r.Author == "" {
		r.Author = author
	}
	return r
}

// Validate checks field lengths. Missing fields are not an error.
func (r GenerationRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.RuneLength(0, MaxTitleLength)),
		validation.Field(&r.Author, validation.RuneLength(0, MaxAuthorLength)),
		validation.Field(&r.Content, validation.RuneLength(0, MaxContentLength)),
	)
}
