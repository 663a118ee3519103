package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type SubmissionStatus string

const (
	StatusQueued     SubmissionStatus = "queued"
	StatusProcessing SubmissionStatus = "processing"
	StatusCompleted  SubmissionStatus = "completed"
	StatusFailed     SubmissionStatus = "failed"
)

type Submission struct {
	ID           uuid.UUID                           `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	DocumentID   uuid.UUID                           `gorm:"type:uuid;not null" json:"document_id"`
	Language     string                              `gorm:"type:text" json:"language,omitempty"`
	Status       SubmissionStatus                    `gorm:"not null;default:'queued'" json:"status"`
	Source       Source                              `gorm:"type:text" json:"source,omitempty"`
	RawText      string                              `gorm:"type:text" json:"raw_text,omitempty"`
	Extracted    datatypes.JSONType[ExtractedRecord] `gorm:"type:jsonb" json:"extracted"`
	Profile      datatypes.JSONType[ProfileForm]     `gorm:"type:jsonb" json:"profile"`
	Fraud        datatypes.JSONType[FraudReport]     `gorm:"type:jsonb" json:"fraud"`
	Health       datatypes.JSONType[HealthScore]     `gorm:"type:jsonb" json:"health"`
	RiskScore    *float64                            `gorm:"type:decimal(5,1)" json:"risk_score,omitempty"`
	RiskLevel    *string                             `gorm:"type:text" json:"risk_level,omitempty"`
	HealthScore  *int                                `gorm:"type:integer" json:"health_score,omitempty"`
	DuplicateOf  *uuid.UUID                          `gorm:"type:uuid" json:"duplicate_of,omitempty"`
	Similarity   *float32                            `gorm:"type:real" json:"similarity,omitempty"`
	ErrorMessage *string                             `gorm:"type:text" json:"error_message,omitempty"`
	CreatedAt    time.Time                           `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time                           `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`

	// Relations
	Document Document `gorm:"foreignKey:DocumentID" json:"-"`
}

func (Submission) TableName() string {
	return "submissions"
}

// Report rebuilds the ScreeningReport stored on a completed submission.
func (s *Submission) Report() *ScreeningReport {
	report := &ScreeningReport{
		RawText:   s.RawText,
		Source:    s.Source,
		Extracted: s.Extracted.Data(),
		Profile:   s.Profile.Data(),
		Fraud:     s.Fraud.Data(),
		Health:    s.Health.Data(),
	}
	if s.DuplicateOf != nil {
		match := &DuplicateMatch{SubmissionID: *s.DuplicateOf}
		if s.Similarity != nil {
			match.Similarity = *s.Similarity
		}
		report.Duplicate = match
	}
	return report
}
