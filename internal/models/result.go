package models

// CVScoringResult is the sole artifact this subsystem returns to its caller.
// Score is always within [0,100] and Summary never exceeds 255 characters,
// regardless of whether the AI or the heuristic scorer produced them.
type CVScoringResult struct {
	Score       int           `json:"score"`
	Summary     string        `json:"summary"`
	Suggestions []string      `json:"suggestions"`
	Analysis    ScoreAnalysis `json:"analysis"`
	JobMatch    JobMatch      `json:"job_match"`
}

type ScoreAnalysis struct {
	Strengths      []string `json:"strengths"`
	Weaknesses     []string `json:"weaknesses"`
	MatchingSkills []string `json:"matching_skills"`
	MissingSkills  []string `json:"missing_skills"`
}

type JobMatch struct {
	JobTitle     string   `json:"job_title"`
	CompanyName  string   `json:"company_name"`
	Requirements []string `json:"requirements"`
}

type DemoScoreRequest struct {
	JobID uint `json:"job_id"`
}
