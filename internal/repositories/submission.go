package repositories

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"alfredoptarigan/profile-screener/internal/models"
)

type SubmissionRepository interface {
	Create(sub *models.Submission) error
	FindByID(id uuid.UUID) (*models.Submission, error)
	UpdateStatus(id uuid.UUID, status models.SubmissionStatus) error
	UpdateResult(id uuid.UUID, report *models.ScreeningReport) error
	UpdateAssessment(id uuid.UUID, profile models.ProfileForm, fraud models.FraudReport, health models.HealthScore) error
	UpdateError(id uuid.UUID, errorMsg string) error
	FindPendingJobs(limit int) ([]models.Submission, error)
}

type submissionRepository struct {
	db *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) SubmissionRepository {
	return &submissionRepository{db: db}
}

func (r *submissionRepository) Create(sub *models.Submission) error {
	if sub.ID == uuid.Nil {
		sub.ID = uuid.New()
	}
	if sub.Status == "" {
		sub.Status = models.StatusQueued
	}
	if err := r.db.Create(sub).Error; err != nil {
		return fmt.Errorf("failed to create submission: %w", err)
	}
	return nil
}

func (r *submissionRepository) FindByID(id uuid.UUID) (*models.Submission, error) {
	var sub models.Submission
	if err := r.db.Where("id = ?", id).First(&sub).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("submission %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find submission: %w", err)
	}
	return &sub, nil
}

func (r *submissionRepository) UpdateStatus(id uuid.UUID, status models.SubmissionStatus) error {
	return r.update(id, "status", map[string]interface{}{
		"status":     status,
		"updated_at": time.Now(),
	})
}

// UpdateResult stores a finished screening and marks the submission completed.
func (r *submissionRepository) UpdateResult(id uuid.UUID, report *models.ScreeningReport) error {
	updates := assessmentColumns(report.Profile, report.Fraud, report.Health)
	updates["status"] = models.StatusCompleted
	updates["source"] = report.Source
	updates["raw_text"] = report.RawText
	updates["extracted"] = datatypes.NewJSONType(report.Extracted)
	updates["error_message"] = nil
	if report.Duplicate != nil {
		updates["duplicate_of"] = report.Duplicate.SubmissionID
		updates["similarity"] = report.Duplicate.Similarity
	}
	return r.update(id, "result", updates)
}

// UpdateAssessment replaces the form and its derived fraud and health results.
func (r *submissionRepository) UpdateAssessment(id uuid.UUID, profile models.ProfileForm, fraud models.FraudReport, health models.HealthScore) error {
	return r.update(id, "assessment", assessmentColumns(profile, fraud, health))
}

func (r *submissionRepository) UpdateError(id uuid.UUID, errorMsg string) error {
	return r.update(id, "error", map[string]interface{}{
		"status":        models.StatusFailed,
		"error_message": errorMsg,
		"updated_at":    time.Now(),
	})
}

func (r *submissionRepository) FindPendingJobs(limit int) ([]models.Submission, error) {
	var subs []models.Submission
	err := r.db.
		Where("status = ?", models.StatusQueued).
		Order("created_at ASC").
		Limit(limit).
		Find(&subs).Error

	if err != nil {
		return nil, fmt.Errorf("failed to find pending jobs: %w", err)
	}

	return subs, nil
}

func (r *submissionRepository) update(id uuid.UUID, what string, updates map[string]interface{}) error {
	result := r.db.Model(&models.Submission{}).
		Where("id = ?", id).
		Updates(updates)

	if result.Error != nil {
		return fmt.Errorf("failed to update %s: %w", what, result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("submission %s: %w", id, ErrNotFound)
	}

	return nil
}

func assessmentColumns(profile models.ProfileForm, fraud models.FraudReport, health models.HealthScore) map[string]interface{} {
	return map[string]interface{}{
		"profile":      datatypes.NewJSONType(profile),
		"fraud":        datatypes.NewJSONType(fraud),
		"health":       datatypes.NewJSONType(health),
		"risk_score":   fraud.RiskScore,
		"risk_level":   string(fraud.RiskLevel),
		"health_score": health.Score,
		"updated_at":   time.Now(),
	}
}
