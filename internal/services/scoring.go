package services

import (
	"context"
	"encoding/json"
	"log"
	"math"
	"strings"

	"vietcareer/cv-match/internal/models"
)

const (
	maxSummaryLength = 255

	// aiDegradedMarker makes an infrastructure-outage result distinguishable
	// from a genuine low AI score.
	aiDegradedMarker = "AI analysis is temporarily unavailable"

	fallbackScore = 75
)

// ScoringService asks the generative model to judge a CV against a job.
// It never returns an error: when every model in the chain fails it falls
// back to a deterministic degraded result, because a missing AI judgment
// must not block the user-visible flow.
type ScoringService interface {
	Score(ctx context.Context, analysis *models.CVAnalysis, job *models.Job) *models.CVScoringResult
}

type scoringService struct {
	gemini        GeminiService
	promptBuilder *PromptBuilder
	// modelChain is tried in order; the first model whose reply survives
	// parsing wins.
	modelChain []string
}

func NewScoringService(gemini GeminiService, primaryModel string, fallbackModels []string) ScoringService {
	chain := []string{primaryModel}
	for _, m := range fallbackModels {
		if m != "" && m != primaryModel {
			chain = append(chain, m)
		}
	}
	return &scoringService{
		gemini:        gemini,
		promptBuilder: NewPromptBuilder(),
		modelChain:    chain,
	}
}

type aiScoringReply struct {
	Score           json.Number `json:"score"`
	Summary         string      `json:"summary"`
	Strengths       []string    `json:"strengths"`
	Weaknesses      []string    `json:"weaknesses"`
	MatchingSkills  []string    `json:"matchingSkills"`
	MissingSkills   []string    `json:"missingSkills"`
	Suggestions     []string    `json:"suggestions"`
	ExperienceMatch string      `json:"experienceMatch"`
	EducationMatch  string      `json:"educationMatch"`
}

// Score implements ScoringService.
func (s *scoringService) Score(ctx context.Context, analysis *models.CVAnalysis, job *models.Job) *models.CVScoringResult {
	prompt := s.promptBuilder.BuildScoringPrompt(analysis, job)

	for _, model := range s.modelChain {
		response, err := s.gemini.GenerateText(ctx, model, prompt)
		if err != nil {
			log.Printf("⚠️  Model %s failed, trying next in chain: %v\n", model, err)
			continue
		}

		reply, err := parseScoringReply(response)
		if err != nil {
			// Malformed even after repair: do not retry the same model.
			log.Printf("⚠️  Model %s returned unparseable reply, trying next in chain: %v\n", model, err)
			continue
		}

		log.Printf("🤖 Scoring succeeded with model %s\n", model)
		return s.buildResult(reply, analysis, job)
	}

	log.Println("⚠️  All models in the chain failed, returning degraded fallback result")
	return s.fallbackResult(analysis, job)
}

// parseScoringReply strips markdown wrapping and, if plain parsing fails,
// applies the quote-repair pass once before giving up on this reply.
func parseScoringReply(response string) (*aiScoringReply, error) {
	text := StripCodeFences(response)

	var reply aiScoringReply
	if err := json.Unmarshal([]byte(text), &reply); err != nil {
		repaired := RepairJSON(text)
		if err2 := json.Unmarshal([]byte(repaired), &reply); err2 != nil {
			return nil, err2
		}
	}

	// A reply without a numeric score is not usable; zero itself is a
	// legitimate outcome and must pass through.
	if reply.Score.String() == "" {
		return nil, &ExtractionError{Format: "ai-reply", Reason: "score field missing or non-numeric"}
	}
	if _, err := reply.Score.Float64(); err != nil {
		return nil, err
	}

	return &reply, nil
}

func (s *scoringService) buildResult(reply *aiScoringReply, analysis *models.CVAnalysis, job *models.Job) *models.CVScoringResult {
	scoreFloat, _ := reply.Score.Float64()
	score := clampScore(int(math.Round(scoreFloat)))

	summary := strings.TrimSpace(reply.Summary)
	if summary == "" {
		summary = "The CV was evaluated against the job posting."
	}
	summary = truncateSummary(summary)

	return &models.CVScoringResult{
		Score:       score,
		Summary:     summary,
		Suggestions: defaultIfEmpty(reply.Suggestions, []string{"Tailor your CV to the specific requirements listed in the job posting."}),
		Analysis: models.ScoreAnalysis{
			Strengths:      defaultIfEmpty(reply.Strengths, []string{"CV was successfully processed and analyzed."}),
			Weaknesses:     defaultIfEmpty(reply.Weaknesses, []string{"No specific weaknesses identified."}),
			MatchingSkills: defaultIfEmpty(reply.MatchingSkills, analysis.Skills),
			MissingSkills:  emptyIfNil(reply.MissingSkills),
		},
		JobMatch: models.JobMatch{
			JobTitle:     job.Title,
			CompanyName:  job.CompanyName,
			Requirements: DeriveJobRequirements(job),
		},
	}
}

// fallbackResult is returned when every model in the chain failed. The fixed
// score assumes a roughly adequate candidate rather than penalizing them for
// an infrastructure outage.
func (s *scoringService) fallbackResult(analysis *models.CVAnalysis, job *models.Job) *models.CVScoringResult {
	matching := analysis.Skills
	if len(matching) > 5 {
		matching = matching[:5]
	}

	return &models.CVScoringResult{
		Score:   fallbackScore,
		Summary: truncateSummary(aiDegradedMarker + "; this is a provisional assessment based on the extracted CV content."),
		Suggestions: []string{
			"Add concrete, measurable achievements to your work history.",
			"List the technologies you used for each role or project.",
			"Make sure the skills section mirrors the job's requirements.",
		},
		Analysis: models.ScoreAnalysis{
			Strengths:      []string{"CV was received and processed successfully."},
			Weaknesses:     []string{"Detailed AI review could not be completed at this time."},
			MatchingSkills: emptyIfNil(matching),
			MissingSkills:  []string{},
		},
		JobMatch: models.JobMatch{
			JobTitle:     job.Title,
			CompanyName:  job.CompanyName,
			Requirements: DeriveJobRequirements(job),
		},
	}
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// truncateSummary enforces the 255-character ceiling, ellipsizing at 252.
func truncateSummary(summary string) string {
	runes := []rune(summary)
	if len(runes) <= maxSummaryLength {
		return summary
	}
	return string(runes[:maxSummaryLength-3]) + "..."
}

func defaultIfEmpty(values, fallback []string) []string {
	if len(values) > 0 {
		return values
	}
	if fallback == nil {
		return []string{}
	}
	return fallback
}

func emptyIfNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
