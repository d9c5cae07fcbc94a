package models

import (
	"time"
)

// Job is the job-board posting as stored by the surrounding application.
// The scoring subsystem only ever reads it.
type Job struct {
	ID              uint      `gorm:"primary_key" json:"id"`
	Title           string    `gorm:"type:text;not null" json:"title"`
	CompanyName     string    `gorm:"type:text" json:"company_name"`
	Description     string    `gorm:"type:text" json:"description"`
	Requirements    string    `gorm:"type:text" json:"requirements"`
	ExperienceLevel string    `gorm:"type:text" json:"experience_level"`
	EducationLevel  string    `gorm:"type:text" json:"education_level"`
	WorkType        string    `gorm:"type:text" json:"work_type"`
	CreatedAt       time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt       time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Job) TableName() string {
	return "jobs"
}
