package services

import (
	"context"
	"log"
	"path/filepath"
	"strings"
)

// FileInput describes one uploaded CV handed to the extractor.
type FileInput struct {
	Path         string
	OriginalName string
	MimeType     string
}

// DocumentExtractor turns an uploaded file into raw text, dispatching on the
// file extension of the original upload name.
type DocumentExtractor interface {
	Extract(ctx context.Context, file FileInput) (string, error)
}

type documentExtractor struct {
	pdf  PDFParserService
	docx DocxParserService
	ocr  OCRService
}

func NewDocumentExtractor(pdf PDFParserService, docx DocxParserService, ocr OCRService) DocumentExtractor {
	return &documentExtractor{
		pdf:  pdf,
		docx: docx,
		ocr:  ocr,
	}
}

// Extract implements DocumentExtractor.
func (e *documentExtractor) Extract(ctx context.Context, file FileInput) (string, error) {
	name := file.OriginalName
	if name == "" {
		name = file.Path
	}
	ext := strings.ToLower(filepath.Ext(name))

	log.Printf("📄 Extracting text from %s (%s)\n", file.OriginalName, ext)

	switch ext {
	case ".pdf":
		return e.pdf.ExtractText(file.Path)
	case ".docx":
		return e.docx.ExtractText(file.Path)
	case ".jpg", ".jpeg", ".png":
		return e.ocr.RecognizeText(ctx, file.Path)
	default:
		return "", &UnsupportedFormatError{Extension: ext}
	}
}
