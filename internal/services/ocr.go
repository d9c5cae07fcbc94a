package services

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os/exec"
	"strconv"
	"strings"

	"vietcareer/cv-match/internal/config"
)

// Runner lets tests stub the tesseract invocation.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var out, errb bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errb
	err := cmd.Run()
	return out.Bytes(), errb.Bytes(), err
}

type OCRService interface {
	RecognizeText(ctx context.Context, imagePath string) (string, error)
}

type ocrService struct {
	cfg    config.OCRConfig
	runner Runner
}

func NewOCRService(cfg config.OCRConfig) OCRService {
	return NewOCRServiceWithRunner(cfg, execRunner{})
}

func NewOCRServiceWithRunner(cfg config.OCRConfig, runner Runner) OCRService {
	if cfg.TesseractPath == "" {
		cfg.TesseractPath = "tesseract"
	}
	if len(cfg.Languages) == 0 {
		cfg.Languages = []string{"vie+eng", "eng", "vie"}
	}
	return &ocrService{cfg: cfg, runner: runner}
}

// RecognizeText tries each configured language in order, one fresh tesseract
// process per attempt, and returns the first non-empty recognition result.
// Attempts are sequential to bound OCR memory and CPU.
func (o *ocrService) RecognizeText(ctx context.Context, imagePath string) (string, error) {
	var lastErr error

	for _, lang := range o.cfg.Languages {
		text, err := o.recognizeWithLanguage(ctx, imagePath, lang)
		if err != nil {
			log.Printf("⚠️  OCR attempt with language %q failed: %v\n", lang, err)
			lastErr = err
			continue
		}

		if strings.TrimSpace(text) == "" {
			log.Printf("⚠️  OCR attempt with language %q returned empty text\n", lang)
			continue
		}

		if o.cfg.LogConfidence {
			if conf, err := o.meanConfidence(ctx, imagePath, lang); err == nil {
				log.Printf("🔍 OCR succeeded with language %q (confidence %.2f)\n", lang, conf)
			} else {
				log.Printf("🔍 OCR succeeded with language %q (confidence unavailable)\n", lang)
			}
		}

		return text, nil
	}

	return "", &ExtractionError{
		Format: "image",
		Reason: "no readable text found in image, please upload a clearer scan",
		Err:    lastErr,
	}
}

func (o *ocrService) recognizeWithLanguage(ctx context.Context, imagePath, lang string) (string, error) {
	args := []string{imagePath, "stdout", "-l", lang}
	if o.cfg.TessdataDir != "" {
		args = append(args, "--tessdata-dir", o.cfg.TessdataDir)
	}

	out, errb, err := o.runner.Run(ctx, o.cfg.TesseractPath, args...)
	if err != nil {
		return "", fmt.Errorf("tesseract (-l %s): %w: %s", lang, err, strings.TrimSpace(string(errb)))
	}

	return string(out), nil
}

// meanConfidence reruns tesseract in TSV mode and averages per-word
// confidence. The value is logged only, never part of the result contract.
func (o *ocrService) meanConfidence(ctx context.Context, imagePath, lang string) (float64, error) {
	args := []string{imagePath, "stdout", "-l", lang}
	if o.cfg.TessdataDir != "" {
		args = append(args, "--tessdata-dir", o.cfg.TessdataDir)
	}
	args = append(args, "tsv")

	out, _, err := o.runner.Run(ctx, o.cfg.TesseractPath, args...)
	if err != nil {
		return 0, fmt.Errorf("tesseract tsv: %w", err)
	}

	var sum float64
	var count int
	for i, line := range strings.Split(string(out), "\n") {
		if i == 0 {
			continue // header row
		}
		fields := strings.Split(line, "\t")
		if len(fields) < 12 {
			continue
		}
		conf, err := strconv.ParseFloat(fields[10], 64)
		if err != nil || conf < 0 {
			continue
		}
		if strings.TrimSpace(fields[11]) == "" {
			continue
		}
		sum += conf
		count++
	}

	if count == 0 {
		return 0, fmt.Errorf("no confident words in tsv output")
	}
	return sum / float64(count) / 100.0, nil
}
