package generator

import "errors"

// Pipeline failure taxonomy. Collaborator failures are wrapped into one of
// these (or into the groq package's ErrModelCall / ErrMalformedOutput) so
// handlers can map them to HTTP statuses with errors.Is.
var (
	// ErrInvalidInput: missing or too-short content, or a bad question count.
	ErrInvalidInput = errors.New("invalid input")
	// ErrExtraction: OCR, PDF or transcript extraction failed.
	ErrExtraction = errors.New("content extraction failed")
	// ErrValidation: the model returned questions violating the quiz invariants.
	ErrValidation = errors.New("generated quiz failed validation")
	// ErrPersistence: the database rejected a write.
	ErrPersistence = errors.New("persistence failed")
)
