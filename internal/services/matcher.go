package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"vietcareer/cv-match/internal/models"
	"vietcareer/cv-match/internal/repositories"
)

// MatcherService is the public entry point of the scoring subsystem.
type MatcherService interface {
	// ScoreCV scores a real uploaded CV against a job posting. The uploaded
	// temp file is deleted exactly once, on every exit path.
	ScoreCV(ctx context.Context, file FileInput, jobID uint) (*models.CVScoringResult, error)
	// ScoreDemo synthesizes a plausible CV from the job's own requirements
	// and scores it, so demos and tests need no real upload.
	ScoreDemo(ctx context.Context, jobID uint) (*models.CVScoringResult, error)
}

type matcherService struct {
	jobRepo        repositories.JobRepository
	extractor      DocumentExtractor
	analyzer       Analyzer
	scoring        ScoringService
	heuristic      HeuristicScorer
	storage        StorageService
	requestTimeout time.Duration
}

func NewMatcherService(
	jobRepo repositories.JobRepository,
	extractor DocumentExtractor,
	analyzer Analyzer,
	scoring ScoringService,
	heuristic HeuristicScorer,
	storage StorageService,
	requestTimeout time.Duration,
) MatcherService {
	if requestTimeout <= 0 {
		requestTimeout = 2 * time.Minute
	}
	return &matcherService{
		jobRepo:        jobRepo,
		extractor:      extractor,
		analyzer:       analyzer,
		scoring:        scoring,
		heuristic:      heuristic,
		storage:        storage,
		requestTimeout: requestTimeout,
	}
}

// ScoreCV implements MatcherService.
func (m *matcherService) ScoreCV(ctx context.Context, file FileInput, jobID uint) (*models.CVScoringResult, error) {
	// Cleanup runs on success and on every error path below.
	defer m.storage.DeleteFile(file.Path)

	ctx, cancel := context.WithTimeout(ctx, m.requestTimeout)
	defer cancel()

	// Resolve the job before touching the file to avoid wasted work.
	job, err := m.jobRepo.FindByID(jobID)
	if err != nil {
		return nil, err
	}

	rawText, err := m.extractor.Extract(ctx, file)
	if err != nil {
		return nil, fmt.Errorf("failed to extract CV content: %w", err)
	}

	analysis := m.analyzer.Analyze(rawText, file.OriginalName)

	return m.scoreWithHeuristicGuard(ctx, analysis, job), nil
}

// ScoreDemo implements MatcherService.
func (m *matcherService) ScoreDemo(ctx context.Context, jobID uint) (*models.CVScoringResult, error) {
	ctx, cancel := context.WithTimeout(ctx, m.requestTimeout)
	defer cancel()

	job, err := m.jobRepo.FindByID(jobID)
	if err != nil {
		return nil, err
	}

	analysis := SynthesizeDemoAnalysis(job)
	log.Printf("🎭 Demo scoring for job %d with %d synthesized skills\n", jobID, len(analysis.Skills))

	return m.scoreWithHeuristicGuard(ctx, analysis, job), nil
}

// scoreWithHeuristicGuard runs the AI scoring client, which by contract
// returns its own fallback rather than failing. A panic out of the client is
// still caught here and answered with the heuristic scorer.
func (m *matcherService) scoreWithHeuristicGuard(ctx context.Context, analysis *models.CVAnalysis, job *models.Job) (result *models.CVScoringResult) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("⚠️  AI scoring panicked (%v), using heuristic scorer\n", r)
			result = m.heuristic.Score(analysis, job)
		}
	}()
	return m.scoring.Score(ctx, analysis, job)
}

// SynthesizeDemoAnalysis fabricates a CVAnalysis covering roughly 70% of the
// job's own derived requirements plus a few generic skills.
func SynthesizeDemoAnalysis(job *models.Job) *models.CVAnalysis {
	requirements := DeriveJobRequirements(job)

	covered := (len(requirements)*7 + 9) / 10 // ceil(0.7 * n)
	if covered > len(requirements) {
		covered = len(requirements)
	}

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
	for _, req := range requirements[:covered] {
		add(req)
	}
	for _, s := range genericDemoSkills {
		add(s)
	}

	experience := fmt.Sprintf("3 năm kinh nghiệm làm việc ở vị trí tương đương %s. Đã tham gia nhiều dự án thực tế tại các công ty công nghệ.", job.Title)
	education := "Tốt nghiệp đại học chuyên ngành phù hợp với yêu cầu công việc."

	return &models.CVAnalysis{
		ExtractedText: fmt.Sprintf("Demo CV synthesized for the %s position at %s. Skills: %s.",
			job.Title, job.CompanyName, strings.Join(skills, ", ")),
		Skills:     skills,
		Experience: experience,
		Education:  education,
		KeyPoints: []string{
			"Hoàn thành các dự án đúng tiến độ với chất lượng cao",
			"Tối ưu hiệu năng hệ thống và cải thiện trải nghiệm người dùng",
			"Làm việc nhóm hiệu quả trong môi trường Agile",
		},
	}
}
