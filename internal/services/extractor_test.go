package services

import (
	"context"
	"errors"
	"testing"
)

type stubPDFParser struct {
	text  string
	err   error
	calls int
}

func (s *stubPDFParser) ExtractText(string) (string, error) {
	s.calls++
	return s.text, s.err
}

type stubDocxParser struct {
	text  string
	err   error
	calls int
}

func (s *stubDocxParser) ExtractText(string) (string, error) {
	s.calls++
	return s.text, s.err
}

type stubOCR struct {
	text  string
	err   error
	calls int
}

func (s *stubOCR) RecognizeText(context.Context, string) (string, error) {
	s.calls++
	return s.text, s.err
}

func TestExtractDispatchesByExtension(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		wantPDF  int
		wantDocx int
		wantOCR  int
	}{
		{"pdf", "resume.pdf", 1, 0, 0},
		{"docx", "resume.docx", 0, 1, 0},
		{"jpg", "scan.jpg", 0, 0, 1},
		{"jpeg", "scan.jpeg", 0, 0, 1},
		{"png", "scan.png", 0, 0, 1},
		{"uppercase extension", "RESUME.PDF", 1, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pdf := &stubPDFParser{text: "pdf text"}
			docx := &stubDocxParser{text: "docx text"}
			ocr := &stubOCR{text: "ocr text"}
			extractor := NewDocumentExtractor(pdf, docx, ocr)

			_, err := extractor.Extract(context.Background(), FileInput{
				Path:         "/tmp/stored",
				OriginalName: tt.filename,
			})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if pdf.calls != tt.wantPDF || docx.calls != tt.wantDocx || ocr.calls != tt.wantOCR {
				t.Errorf("calls pdf=%d docx=%d ocr=%d, want %d/%d/%d",
					pdf.calls, docx.calls, ocr.calls, tt.wantPDF, tt.wantDocx, tt.wantOCR)
			}
		})
	}
}

func TestExtractUnsupportedExtension(t *testing.T) {
	extractor := NewDocumentExtractor(&stubPDFParser{}, &stubDocxParser{}, &stubOCR{})

	_, err := extractor.Extract(context.Background(), FileInput{
		Path:         "/tmp/stored",
		OriginalName: "malware.exe",
	})
	if err == nil {
		t.Fatal("expected error for unsupported extension")
	}

	var unsupported *UnsupportedFormatError
	if !errors.As(err, &unsupported) {
		t.Fatalf("expected *UnsupportedFormatError, got %T: %v", err, err)
	}
	if unsupported.Extension != ".exe" {
		t.Errorf("extension = %q, want .exe", unsupported.Extension)
	}
}

func TestExtractPropagatesParserError(t *testing.T) {
	wantErr := &ExtractionError{Format: "docx", Reason: "could not open archive"}
	extractor := NewDocumentExtractor(&stubPDFParser{}, &stubDocxParser{err: wantErr}, &stubOCR{})

	_, err := extractor.Extract(context.Background(), FileInput{
		Path:         "/tmp/stored",
		OriginalName: "broken.docx",
	})

	var extraction *ExtractionError
	if !errors.As(err, &extraction) {
		t.Fatalf("expected *ExtractionError, got %T: %v", err, err)
	}
}
