package services

import (
	"fmt"
	"math/rand"
	"strings"

	"vietcareer/cv-match/internal/models"
)

// HeuristicScorer is the deterministic, non-AI fallback scorer: rule-based
// aside from a small bounded random jitter.
type HeuristicScorer interface {
	Score(analysis *models.CVAnalysis, job *models.Job) *models.CVScoringResult
}

type heuristicScorer struct{}

func NewHeuristicScorer() HeuristicScorer {
	return &heuristicScorer{}
}

// DeriveJobRequirements scans the posting's requirement and description text
// against the technology keyword list, then appends the posting's own work
// type and education level.
func DeriveJobRequirements(job *models.Job) []string {
	text := strings.ToLower(job.Requirements + " " + job.Description)

	var requirements []string
	seen := make(map[string]struct{})
	add := func(s string) {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" {
			return
		}
		if _, ok := seen[s]; ok {
			return
		}
		seen[s] = struct{}{}
		requirements = append(requirements, s)
	}

	for _, kw := range jobTechKeywords {
		if strings.Contains(text, kw) {
			add(kw)
		}
	}

	add(job.WorkType)
	add(job.EducationLevel)

	return requirements
}

// Score implements HeuristicScorer.
func (h *heuristicScorer) Score(analysis *models.CVAnalysis, job *models.Job) *models.CVScoringResult {
	requirements := DeriveJobRequirements(job)

	var matching []string
	matched := make(map[string]struct{})
	for _, skill := range analysis.Skills {
		for _, req := range requirements {
			// Substring-tolerant in both directions: "node.js" matches a
			// "node.js backend" requirement and vice versa.
			if strings.Contains(req, skill) || strings.Contains(skill, req) {
				matching = append(matching, skill)
				matched[req] = struct{}{}
				break
			}
		}
	}

	var missing []string
	for _, req := range requirements {
		if _, ok := matched[req]; !ok {
			missing = append(missing, req)
		}
	}
	if len(missing) > 5 {
		missing = missing[:5]
	}

	score := 60

	skillBonus := len(matching) * 5
	if skillBonus > 25 {
		skillBonus = 25
	}
	score += skillBonus

	hasExperience := analysis.Experience != "" && analysis.Experience != experienceNotFound
	if hasExperience {
		score += 10
	}

	hasEducation := analysis.Education != "" && analysis.Education != educationNotFound
	if hasEducation {
		score += 5
	}

	score += rand.Intn(11) - 5 // jitter in [-5, +5]

	if score < 50 {
		score = 50
	}
	if score > 100 {
		score = 100
	}

	return &models.CVScoringResult{
		Score:       score,
		Summary:     truncateSummary(h.buildSummary(len(matching), len(requirements), job)),
		Suggestions: h.buildSuggestions(missing, hasExperience, hasEducation),
		Analysis: models.ScoreAnalysis{
			Strengths:      h.buildStrengths(matching, hasExperience, hasEducation),
			Weaknesses:     h.buildWeaknesses(missing),
			MatchingSkills: emptyIfNil(matching),
			MissingSkills:  emptyIfNil(missing),
		},
		JobMatch: models.JobMatch{
			JobTitle:     job.Title,
			CompanyName:  job.CompanyName,
			Requirements: requirements,
		},
	}
}

func (h *heuristicScorer) buildSummary(matched, total int, job *models.Job) string {
	if total == 0 {
		return fmt.Sprintf("Your CV was reviewed for the %s position at %s.", job.Title, job.CompanyName)
	}
	return fmt.Sprintf("Your CV matches %d of %d key requirements for the %s position at %s.",
		matched, total, job.Title, job.CompanyName)
}

func (h *heuristicScorer) buildStrengths(matching []string, hasExperience, hasEducation bool) []string {
	var strengths []string
	if len(matching) > 0 {
		strengths = append(strengths, fmt.Sprintf("Relevant skills found: %s.", strings.Join(matching, ", ")))
	}
	if hasExperience {
		strengths = append(strengths, "Work experience is clearly described.")
	}
	if hasEducation {
		strengths = append(strengths, "Educational background is clearly described.")
	}
	if len(strengths) == 0 {
		strengths = append(strengths, "CV was successfully processed and analyzed.")
	}
	return strengths
}

func (h *heuristicScorer) buildWeaknesses(missing []string) []string {
	if len(missing) == 0 {
		return []string{"No significant gaps found against the listed requirements."}
	}
	return []string{fmt.Sprintf("The CV does not mention: %s.", strings.Join(missing, ", "))}
}

func (h *heuristicScorer) buildSuggestions(missing []string, hasExperience, hasEducation bool) []string {
	var suggestions []string
	if len(missing) > 0 {
		suggestions = append(suggestions, fmt.Sprintf("Add or highlight experience with: %s.", strings.Join(missing, ", ")))
	}
	if !hasExperience {
		suggestions = append(suggestions, "Describe your work history with durations and concrete responsibilities.")
	}
	if !hasEducation {
		suggestions = append(suggestions, "Add your education, degrees, and relevant certificates.")
	}
	suggestions = append(suggestions, "Quantify achievements with numbers where possible.")
	return suggestions
}
