package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"vietcareer/cv-match/internal/models"
)

// ErrJobNotFound is returned when the requested job id does not exist.
var ErrJobNotFound = errors.New("job not found")

// JobRepository is the scoring subsystem's read-only view of job postings.
type JobRepository interface {
	FindByID(id uint) (*models.Job, error)
}

type jobRepository struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) JobRepository {
	return &jobRepository{db: db}
}

// FindByID implements JobRepository.
func (r *jobRepository) FindByID(id uint) (*models.Job, error) {
	var job models.Job
	if err := r.db.Where("id = ?", id).First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, fmt.Errorf("failed to find job: %w", err)
	}
	return &job, nil
}
