package services

import (
	"fmt"
	"strings"

	"vietcareer/cv-match/internal/models"
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildScoringPrompt embeds the job posting and the extracted CV signal into
// one instruction asking for a single JSON object.
func (pb *PromptBuilder) BuildScoringPrompt(analysis *models.CVAnalysis, job *models.Job) string {
	return fmt.Sprintf(`You are an expert HR recruiter for a Vietnamese job board, evaluating how well a candidate's CV matches a job posting. The CV may be written in Vietnamese, English, or both.

JOB POSTING:
Title: %s
Company: %s
Work type: %s
Experience level: %s
Education level: %s
Requirements: %s
Description: %s

CANDIDATE CV (raw text):
%s

EXTRACTED SIGNAL:
Skills: %s
Experience summary: %s
Education summary: %s
Key points: %s

Evaluate the candidate against the job posting and respond with a SINGLE JSON object exactly matching this schema:
{
  "score": <integer 0-100, overall match>,
  "summary": "<2-3 sentence overall assessment, max 250 characters>",
  "strengths": ["<strength>", ...],
  "weaknesses": ["<weakness>", ...],
  "matchingSkills": ["<skill the CV has that the job needs>", ...],
  "missingSkills": ["<skill the job needs that the CV lacks>", ...],
  "suggestions": ["<concrete improvement the candidate can make>", ...],
  "experienceMatch": "<one sentence on experience fit>",
  "educationMatch": "<one sentence on education fit>"
}

Rules:
- Return ONLY the JSON object, no markdown fences, no commentary.
- Properly escape any double quotes inside string values with a backslash.
- Be specific: reference actual skills and requirements, not generalities.`,
		job.Title,
		job.CompanyName,
		job.WorkType,
		job.ExperienceLevel,
		job.EducationLevel,
		job.Requirements,
		job.Description,
		analysis.ExtractedText,
		strings.Join(analysis.Skills, ", "),
		analysis.Experience,
		analysis.Education,
		strings.Join(analysis.KeyPoints, "; "),
	)
}
