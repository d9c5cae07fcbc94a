package services

import "fmt"

// UnsupportedFormatError is returned when the uploaded file's extension is
// not one of .pdf, .docx, .jpg, .jpeg, .png.
type UnsupportedFormatError struct {
	Extension string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported file format: %q", e.Extension)
}

// ExtractionError is an unrecoverable per-format extraction failure
// (corrupted DOCX, OCR exhausting every language with no usable text).
type ExtractionError struct {
	Format string
	Reason string
	Err    error
}

func (e *ExtractionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s extraction failed: %s: %v", e.Format, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s extraction failed: %s", e.Format, e.Reason)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}
