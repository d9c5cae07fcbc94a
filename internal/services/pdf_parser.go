package services

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
)

type PDFParserService interface {
	ExtractText(filePath string) (string, error)
}

type pdfParserService struct {
	// demoFallback substitutes mockCVText when parsing fails. Opt-in only:
	// production deployments keep it off and surface the real error.
	demoFallback bool
}

func NewPDFParserService(demoFallback bool) PDFParserService {
	return &pdfParserService{demoFallback: demoFallback}
}

func (p *pdfParserService) ExtractText(filePath string) (string, error) {
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return "", fmt.Errorf("file does not exist: %s", filePath)
	}

	text, err := p.parse(filePath)
	if err != nil {
		if p.demoFallback {
			log.Printf("⚠️  PDF parse failed for %s, substituting demo CV text: %v\n", filePath, err)
			return mockCVText, nil
		}
		return "", &ExtractionError{Format: "pdf", Reason: "could not parse document", Err: err}
	}

	return text, nil
}

func (p *pdfParserService) parse(filePath string) (string, error) {
	f, r, err := pdf.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	var textBuilder strings.Builder
	totalPage := r.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// Log error but continue with other pages
			continue
		}

		textBuilder.WriteString(text)
		textBuilder.WriteString("\n\n")
	}

	text := textBuilder.String()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("no text content found in PDF")
	}

	return text, nil
}

// mockCVText backs the opt-in demo fallback so demonstrations keep working
// even when a sample PDF cannot be parsed.
const mockCVText = `Nguyen Van An
Software Engineer

Kinh nghiệm làm việc:
3 năm kinh nghiệm với JavaScript, React và Node.js tại FPT Software.
Phát triển và tối ưu hóa các ứng dụng web với hơn 100,000 người dùng.

Học vấn:
Tốt nghiệp đại học Bách Khoa Hà Nội, chuyên ngành Công nghệ thông tin.

Kỹ năng:
JavaScript, TypeScript, React, Node.js, PostgreSQL, Docker, Git, Agile.
Kỹ năng làm việc nhóm và giao tiếp tốt.`
