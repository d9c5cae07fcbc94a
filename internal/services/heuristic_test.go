package services

import (
	"testing"

	"vietcareer/cv-match/internal/models"
)

func TestDeriveJobRequirements(t *testing.T) {
	job := &models.Job{
		Title:          "Fullstack Developer",
		Requirements:   "Thành thạo React và Node.js, biết Docker là lợi thế",
		Description:    "Làm việc với PostgreSQL và AWS",
		WorkType:       "remote",
		EducationLevel: "đại học",
	}

	reqs := DeriveJobRequirements(job)

	for _, want := range []string{"react", "node.js", "docker", "postgresql", "aws", "remote", "đại học"} {
		if !containsString(reqs, want) {
			t.Errorf("expected requirement %q in %v", want, reqs)
		}
	}
}

func TestDeriveJobRequirementsDeduplicates(t *testing.T) {
	job := &models.Job{
		Requirements: "React, react, REACT",
		Description:  "More React work",
	}

	reqs := DeriveJobRequirements(job)

	count := 0
	for _, r := range reqs {
		if r == "react" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("expected one 'react' requirement, got %d in %v", count, reqs)
	}
}

func TestHeuristicScoreNoMatchingSkills(t *testing.T) {
	// Scenario: CV with no tech keywords against a job requiring React and
	// Node.js. No skill bonus, no experience/education bonus.
	analysis := &models.CVAnalysis{
		ExtractedText: "Plain text with no technology mentions",
		Skills:        nil,
		Experience:    experienceNotFound,
		Education:     educationNotFound,
	}
	job := &models.Job{
		Title:        "Frontend Developer",
		CompanyName:  "VietCareer",
		Requirements: "React, Node.js",
	}

	result := NewHeuristicScorer().Score(analysis, job)

	if len(result.Analysis.MatchingSkills) != 0 {
		t.Errorf("expected no matching skills, got %v", result.Analysis.MatchingSkills)
	}
	if !containsString(result.Analysis.MissingSkills, "react") || !containsString(result.Analysis.MissingSkills, "node.js") {
		t.Errorf("expected react and node.js missing, got %v", result.Analysis.MissingSkills)
	}
	// Base 60, no bonuses, jitter at most +5.
	if result.Score > 65 {
		t.Errorf("score = %d, want <= 65 without any bonus", result.Score)
	}
	if result.Score < 50 {
		t.Errorf("score = %d, below the heuristic floor", result.Score)
	}
}

func TestHeuristicScoreBonusesAndBounds(t *testing.T) {
	analysis := &models.CVAnalysis{
		Skills:     []string{"react", "node.js", "docker", "postgresql", "aws", "git"},
		Experience: "5 years at TechCorp",
		Education:  "Bachelor of Engineering",
	}
	job := &models.Job{
		Title:        "Backend Developer",
		Requirements: "React, Node.js, Docker, PostgreSQL, AWS, Git",
	}

	scorer := NewHeuristicScorer()
	for i := 0; i < 50; i++ {
		result := scorer.Score(analysis, job)
		if result.Score < 50 || result.Score > 100 {
			t.Fatalf("score %d out of [50,100]", result.Score)
		}
		// 60 base + 25 skill cap + 10 experience + 5 education = 100 before
		// jitter; clamped ceiling must hold.
		if result.Score < 90 {
			t.Fatalf("score %d unexpectedly low for a full match", result.Score)
		}
	}
}

func TestHeuristicScoreSubstringTolerantMatching(t *testing.T) {
	analysis := &models.CVAnalysis{
		Skills:     []string{"node.js backend"},
		Experience: "2 years",
		Education:  educationNotFound,
	}
	job := &models.Job{
		Title:        "Backend Developer",
		Requirements: "Node.js",
	}

	result := NewHeuristicScorer().Score(analysis, job)

	if !containsString(result.Analysis.MatchingSkills, "node.js backend") {
		t.Errorf("expected substring-tolerant match, got %v", result.Analysis.MatchingSkills)
	}
	if containsString(result.Analysis.MissingSkills, "node.js") {
		t.Errorf("matched requirement should not be missing: %v", result.Analysis.MissingSkills)
	}
}

func TestHeuristicMissingSkillsCapped(t *testing.T) {
	analysis := &models.CVAnalysis{
		Skills:     nil,
		Experience: experienceNotFound,
		Education:  educationNotFound,
	}
	job := &models.Job{
		Title:        "Polyglot Developer",
		Requirements: "React, Vue, Angular, Docker, Kubernetes, AWS, GCP, Kafka",
	}

	result := NewHeuristicScorer().Score(analysis, job)

	if len(result.Analysis.MissingSkills) > 5 {
		t.Errorf("missing skills should be capped at 5 for display, got %d", len(result.Analysis.MissingSkills))
	}
}

func TestHeuristicSummaryWithinLimit(t *testing.T) {
	analysis := &models.CVAnalysis{Skills: []string{"go"}}
	job := &models.Job{
		Title:        "A position with an unusually long and descriptive title that goes on and on about responsibilities",
		CompanyName:  "A company whose registered name is also remarkably long for testing purposes",
		Requirements: "Go",
	}

	result := NewHeuristicScorer().Score(analysis, job)
	if n := len([]rune(result.Summary)); n > maxSummaryLength {
		t.Errorf("summary length = %d runes, want <= %d", n, maxSummaryLength)
	}
}
