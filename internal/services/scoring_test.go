package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"vietcareer/cv-match/internal/models"
)

type fakeGemini struct {
	responses map[string]string
	errs      map[string]error
	calls     []string
}

func (f *fakeGemini) GenerateText(ctx context.Context, model, prompt string) (string, error) {
	f.calls = append(f.calls, model)
	if err, ok := f.errs[model]; ok {
		return "", err
	}
	if resp, ok := f.responses[model]; ok {
		return resp, nil
	}
	return "", errors.New("unexpected model: " + model)
}

func testAnalysis() *models.CVAnalysis {
	return &models.CVAnalysis{
		ExtractedText: "Experienced developer",
		Skills:        []string{"go", "postgresql"},
		Experience:    "3 years backend development",
		Education:     "Bachelor of Computer Science",
		KeyPoints:     []string{"Shipped v2 of the billing system"},
	}
}

func testJob() *models.Job {
	return &models.Job{
		ID:           1,
		Title:        "Backend Developer",
		CompanyName:  "VietCareer",
		Requirements: "Go, PostgreSQL, Docker",
		Description:  "Build APIs",
		WorkType:     "full-time",
	}
}

func TestScoreUsesFirstSuccessfulModel(t *testing.T) {
	gemini := &fakeGemini{
		errs: map[string]error{
			"model-a": errors.New("quota exceeded"),
		},
		responses: map[string]string{
			"model-b": `{"score": 85, "summary": "Strong match", "strengths": ["Go"], "weaknesses": ["No Docker"], "matchingSkills": ["go"], "missingSkills": ["docker"], "suggestions": ["Learn Docker"]}`,
		},
	}

	svc := NewScoringService(gemini, "model-a", []string{"model-b", "model-c"})
	result := svc.Score(context.Background(), testAnalysis(), testJob())

	if result.Score != 85 {
		t.Errorf("score = %d, want 85", result.Score)
	}
	if len(gemini.calls) != 2 || gemini.calls[0] != "model-a" || gemini.calls[1] != "model-b" {
		t.Errorf("unexpected call order: %v", gemini.calls)
	}
}

func TestScoreFallbackWhenAllModelsFail(t *testing.T) {
	gemini := &fakeGemini{
		errs: map[string]error{
			"model-a": errors.New("network error"),
			"model-b": errors.New("invalid model"),
		},
	}

	svc := NewScoringService(gemini, "model-a", []string{"model-b"})
	result := svc.Score(context.Background(), testAnalysis(), testJob())

	if result.Score != fallbackScore {
		t.Errorf("score = %d, want %d", result.Score, fallbackScore)
	}
	if !strings.Contains(result.Summary, aiDegradedMarker) {
		t.Errorf("fallback summary must contain the degraded marker, got %q", result.Summary)
	}
	if result.JobMatch.JobTitle != "Backend Developer" {
		t.Errorf("job match title = %q", result.JobMatch.JobTitle)
	}
	if result.Analysis.MissingSkills == nil || result.Suggestions == nil {
		t.Error("fallback result must not carry nil arrays")
	}
}

func TestScoreMalformedReplyAdvancesChain(t *testing.T) {
	gemini := &fakeGemini{
		responses: map[string]string{
			"model-a": "I cannot produce JSON today, sorry.",
			"model-b": `{"score": 60, "summary": "Decent"}`,
		},
	}

	svc := NewScoringService(gemini, "model-a", []string{"model-b"})
	result := svc.Score(context.Background(), testAnalysis(), testJob())

	if result.Score != 60 {
		t.Errorf("score = %d, want 60 from the second model", result.Score)
	}
	if len(gemini.calls) != 2 {
		t.Errorf("expected both models called once each, got %v", gemini.calls)
	}
}

func TestScoreClampsOutOfRangeValues(t *testing.T) {
	tests := []struct {
		name     string
		rawScore string
		want     int
	}{
		{"above range", "150", 100},
		{"below range", "-10", 0},
		{"zero is legitimate", "0", 0},
		{"float rounds", "72.6", 73},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gemini := &fakeGemini{
				responses: map[string]string{
					"m": fmt.Sprintf(`{"score": %s, "summary": "x"}`, tt.rawScore),
				},
			}
			svc := NewScoringService(gemini, "m", nil)
			result := svc.Score(context.Background(), testAnalysis(), testJob())
			if result.Score != tt.want {
				t.Errorf("score = %d, want %d", result.Score, tt.want)
			}
		})
	}
}

func TestScoreTruncatesLongSummary(t *testing.T) {
	long := strings.Repeat("Việt ", 100) // well over 255 runes
	gemini := &fakeGemini{
		responses: map[string]string{
			"m": fmt.Sprintf(`{"score": 50, "summary": %q}`, long),
		},
	}

	svc := NewScoringService(gemini, "m", nil)
	result := svc.Score(context.Background(), testAnalysis(), testJob())

	if n := len([]rune(result.Summary)); n > maxSummaryLength {
		t.Errorf("summary length = %d runes, want <= %d", n, maxSummaryLength)
	}
	if !strings.HasSuffix(result.Summary, "...") {
		t.Errorf("truncated summary should end with ellipsis, got %q", result.Summary)
	}
}

func TestScoreDefaultsMissingArrays(t *testing.T) {
	gemini := &fakeGemini{
		responses: map[string]string{
			"m": `{"score": 77, "summary": "Good fit"}`,
		},
	}

	svc := NewScoringService(gemini, "m", nil)
	result := svc.Score(context.Background(), testAnalysis(), testJob())

	if len(result.Suggestions) == 0 {
		t.Error("suggestions must degrade to a non-empty default")
	}
	if len(result.Analysis.Strengths) == 0 {
		t.Error("strengths must degrade to a non-empty default")
	}
	if result.Analysis.MissingSkills == nil {
		t.Error("missing skills must be an empty slice, not nil")
	}
}

func TestScoreParsesFencedReply(t *testing.T) {
	gemini := &fakeGemini{
		responses: map[string]string{
			"m": "```json\n{\"score\": 91, \"summary\": \"Excellent\"}\n```",
		},
	}

	svc := NewScoringService(gemini, "m", nil)
	result := svc.Score(context.Background(), testAnalysis(), testJob())

	if result.Score != 91 {
		t.Errorf("score = %d, want 91", result.Score)
	}
}
