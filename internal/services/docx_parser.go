package services

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/nguyenthenguyen/docx"
)

type DocxParserService interface {
	ExtractText(filePath string) (string, error)
}

type docxParserService struct{}

func NewDocxParserService() DocxParserService {
	return &docxParserService{}
}

var docxTagPattern = regexp.MustCompile(`<[^>]+>`)

// ExtractText reads the OOXML document body as plain text. Unlike the PDF
// path there is no fallback: a corrupted DOCX is a hard error.
func (d *docxParserService) ExtractText(filePath string) (string, error) {
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return "", fmt.Errorf("file does not exist: %s", filePath)
	}

	doc, err := docx.ReadDocxFile(filePath)
	if err != nil {
		return "", &ExtractionError{Format: "docx", Reason: "could not open archive", Err: err}
	}
	defer doc.Close()

	content := doc.Editable().GetContent()

	// The body arrives as WordprocessingML; paragraph boundaries become
	// newlines before the remaining tags are stripped.
	content = strings.ReplaceAll(content, "</w:p>", "\n")
	text := docxTagPattern.ReplaceAllString(content, "")
	text = strings.TrimSpace(text)

	if text == "" {
		return "", &ExtractionError{Format: "docx", Reason: "document contains no text"}
	}

	return text, nil
}
