package repositories

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"alfredoptarigan/profile-screener/internal/models"
)

// MemoryDocumentRepository keeps documents in memory. It backs the service
// when no database is configured and is safe for concurrent use.
type MemoryDocumentRepository struct {
	mu   sync.RWMutex
	byID map[uuid.UUID]models.Document
}

func NewMemoryDocumentRepository() *MemoryDocumentRepository {
	return &MemoryDocumentRepository{byID: make(map[uuid.UUID]models.Document)}
}

func (r *MemoryDocumentRepository) Create(document *models.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if document.ID == uuid.Nil {
		document.ID = uuid.New()
	}
	now := time.Now()
	document.CreatedAt, document.UpdatedAt = now, now
	r.byID[document.ID] = *document
	return nil
}

func (r *MemoryDocumentRepository) FindByID(id uuid.UUID) (*models.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	doc, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("document %s: %w", id, ErrNotFound)
	}
	return &doc, nil
}

func (r *MemoryDocumentRepository) FindByOriginalName(name string) (*models.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var latest *models.Document
	for _, doc := range r.byID {
		if doc.OriginalFileName != name {
			continue
		}
		if latest == nil || doc.CreatedAt.After(latest.CreatedAt) {
			d := doc
			latest = &d
		}
	}
	if latest == nil {
		return nil, fmt.Errorf("document %q: %w", name, ErrNotFound)
	}
	return latest, nil
}

// MemorySubmissionRepository keeps submissions in memory and is safe for
// concurrent use.
type MemorySubmissionRepository struct {
	mu   sync.RWMutex
	byID map[uuid.UUID]models.Submission
}

func NewMemorySubmissionRepository() *MemorySubmissionRepository {
	return &MemorySubmissionRepository{byID: make(map[uuid.UUID]models.Submission)}
}

func (r *MemorySubmissionRepository) Create(sub *models.Submission) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if sub.ID == uuid.Nil {
		sub.ID = uuid.New()
	}
	if sub.Status == "" {
		sub.Status = models.StatusQueued
	}
	now := time.Now()
	sub.CreatedAt, sub.UpdatedAt = now, now
	r.byID[sub.ID] = *sub
	return nil
}

func (r *MemorySubmissionRepository) FindByID(id uuid.UUID) (*models.Submission, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sub, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("submission %s: %w", id, ErrNotFound)
	}
	return &sub, nil
}

func (r *MemorySubmissionRepository) UpdateStatus(id uuid.UUID, status models.SubmissionStatus) error {
	return r.modify(id, func(s *models.Submission) {
		s.Status = status
	})
}

func (r *MemorySubmissionRepository) UpdateResult(id uuid.UUID, report *models.ScreeningReport) error {
	return r.modify(id, func(s *models.Submission) {
		s.Status = models.StatusCompleted
		s.Source = report.Source
		s.RawText = report.RawText
		s.Extracted = datatypes.NewJSONType(report.Extracted)
		s.ErrorMessage = nil
		setAssessment(s, report.Profile, report.Fraud, report.Health)
		if report.Duplicate != nil {
			dup, sim := report.Duplicate.SubmissionID, report.Duplicate.Similarity
			s.DuplicateOf, s.Similarity = &dup, &sim
		}
	})
}

func (r *MemorySubmissionRepository) UpdateAssessment(id uuid.UUID, profile models.ProfileForm, fraud models.FraudReport, health models.HealthScore) error {
	return r.modify(id, func(s *models.Submission) {
		setAssessment(s, profile, fraud, health)
	})
}

func (r *MemorySubmissionRepository) UpdateError(id uuid.UUID, errorMsg string) error {
	return r.modify(id, func(s *models.Submission) {
		s.Status = models.StatusFailed
		s.ErrorMessage = &errorMsg
	})
}

func (r *MemorySubmissionRepository) FindPendingJobs(limit int) ([]models.Submission, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var subs []models.Submission
	for _, s := range r.byID {
		if s.Status == models.StatusQueued {
			subs = append(subs, s)
		}
	}
	sort.Slice(subs, func(i, j int) bool {
		return subs[i].CreatedAt.Before(subs[j].CreatedAt)
	})
	if limit > 0 && len(subs) > limit {
		subs = subs[:limit]
	}
	return subs, nil
}

func (r *MemorySubmissionRepository) modify(id uuid.UUID, fn func(*models.Submission)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	sub, ok := r.byID[id]
	if !ok {
		return fmt.Errorf("submission %s: %w", id, ErrNotFound)
	}
	fn(&sub)
	sub.UpdatedAt = time.Now()
	r.byID[id] = sub
	return nil
}

func setAssessment(s *models.Submission, profile models.ProfileForm, fraud models.FraudReport, health models.HealthScore) {
	s.Profile = datatypes.NewJSONType(profile)
	s.Fraud = datatypes.NewJSONType(fraud)
	s.Health = datatypes.NewJSONType(health)
	score, level, hs := fraud.RiskScore, string(fraud.RiskLevel), health.Score
	s.RiskScore, s.RiskLevel, s.HealthScore = &score, &level, &hs
}
