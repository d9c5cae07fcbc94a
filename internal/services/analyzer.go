package services

import (
	"log"
	"strings"

	"vietcareer/cv-match/internal/models"
)

const (
	experienceNotFound = "Experience details not found in CV / Không tìm thấy thông tin kinh nghiệm trong CV"
	educationNotFound  = "Education details not found in CV / Không tìm thấy thông tin học vấn trong CV"

	maxKeyPoints = 5
)

// Analyzer converts raw extracted text into a structured CVAnalysis.
// Pure: no I/O, no shared state, same input always yields the same output.
type Analyzer interface {
	Analyze(rawText, sourceLabel string) *models.CVAnalysis
}

type analyzer struct{}

func NewAnalyzer() Analyzer {
	return &analyzer{}
}

// Analyze implements Analyzer.
func (a *analyzer) Analyze(rawText, sourceLabel string) *models.CVAnalysis {
	cleaned := CleanText(rawText)

	analysis := &models.CVAnalysis{
		ExtractedText: cleaned,
		Skills:        extractSkills(cleaned),
		Experience:    extractExperience(cleaned),
		Education:     extractEducation(cleaned),
		KeyPoints:     extractKeyPoints(cleaned),
	}

	log.Printf("🔬 Analyzed %s: %d skills, %d key points\n",
		sourceLabel, len(analysis.Skills), len(analysis.KeyPoints))

	return analysis
}

// CleanText collapses whitespace, repairs common Vietnamese OCR artifacts
// and strips characters outside the allowed set.
func CleanText(text string) string {
	text = whitespaceRun.ReplaceAllString(text, " ")

	for _, c := range ocrCorrections {
		text = c.Pattern.ReplaceAllString(text, c.Replacement)
	}

	text = allowedChars.ReplaceAllString(text, "")
	text = whitespaceRun.ReplaceAllString(text, " ")

	return strings.TrimSpace(text)
}

// extractSkills scans the cleaned text against the bilingual lexicon and the
// "N years experience with X" pattern. Membership is case-folded; order is
// first-seen but irrelevant to the contract.
func extractSkills(text string) []string {
	lower := strings.ToLower(text)

	var skills []string
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
		skills = append(skills, s)
	}

	for _, skill := range skillLexicon {
		if strings.Contains(lower, skill) {
			add(skill)
		}
	}

	for _, m := range yearsWithSkill.FindAllStringSubmatch(text, -1) {
		token := strings.Trim(m[1], ". ")
		if len(token) >= 3 && len(token) <= 20 {
			add(token)
		}
	}

	return skills
}

// extractExperience builds a free-text work-history summary: up to three
// keyword-matched sentences, three duration matches and two position matches.
func extractExperience(text string) string {
	var parts []string

	sentences := keywordSentences(text, experienceKeywords, 3)
	parts = append(parts, sentences...)

	var yearMatches []string
	yearMatches = append(yearMatches, yearsPattern.FindAllString(text, -1)...)
	yearMatches = append(yearMatches, yearRangePattern.FindAllString(text, -1)...)
	for i, m := range dedupeFold(yearMatches) {
		if i >= 3 {
			break
		}
		parts = append(parts, strings.TrimSpace(m))
	}

	for i, m := range dedupeFold(positionPattern.FindAllString(text, -1)) {
		if i >= 2 {
			break
		}
		parts = append(parts, strings.TrimSpace(m))
	}

	if len(parts) == 0 {
		return experienceNotFound
	}

	return strings.Join(parts, ". ")
}

// extractEducation mirrors extractExperience for degrees and institutions.
func extractEducation(text string) string {
	var parts []string

	sentences := keywordSentences(text, educationKeywords, 3)
	parts = append(parts, sentences...)

	for i, m := range dedupeFold(degreePattern.FindAllString(text, -1)) {
		if i >= 2 {
			break
		}
		parts = append(parts, strings.TrimSpace(m))
	}

	for i, m := range dedupeFold(institutionPattern.FindAllString(text, -1)) {
		if i >= 2 {
			break
		}
		parts = append(parts, strings.TrimSpace(m))
	}

	if len(parts) == 0 {
		return educationNotFound
	}

	return strings.Join(parts, ". ")
}

// extractKeyPoints returns up to five achievement-flavored sentences,
// keyword hits first. When nothing qualifies it falls back to the five
// shortest sentences under 100 characters.
func extractKeyPoints(text string) []string {
	sentences := splitSentences(text)

	var points []string
	for _, s := range sentences {
		if len(s) <= 20 || len(s) >= 150 {
			continue
		}
		if containsAnyFold(s, impactKeywords) {
			points = append(points, s)
			if len(points) == maxKeyPoints {
				return points
			}
		}
	}

	if len(points) > 0 {
		return points
	}

	// Fallback: shortest readable sentences.
	var short []string
	for _, s := range sentences {
		if len(s) > 20 && len(s) < 100 {
			short = append(short, s)
		}
	}
	for i := 0; i < len(short); i++ {
		for j := i + 1; j < len(short); j++ {
			if len(short[j]) < len(short[i]) {
				short[i], short[j] = short[j], short[i]
			}
		}
	}
	if len(short) > maxKeyPoints {
		short = short[:maxKeyPoints]
	}
	return short
}

func splitSentences(text string) []string {
	var out []string
	for _, s := range sentenceSplit.Split(text, -1) {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

func keywordSentences(text string, keywords []string, limit int) []string {
	var out []string
	for _, s := range splitSentences(text) {
		if len(s) < 10 {
			continue
		}
		if containsAnyFold(s, keywords) {
			out = append(out, s)
			if len(out) == limit {
				break
			}
		}
	}
	return out
}

func containsAnyFold(s string, keywords []string) bool {
	lower := strings.ToLower(s)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func dedupeFold(items []string) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, item := range items {
		key := strings.ToLower(strings.TrimSpace(item))
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, item)
	}
	return out
}
