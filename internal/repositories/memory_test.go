package repositories

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/profile-screener/internal/models"
)

func TestMemorySubmissionLifecycle(t *testing.T) {
	repo := NewMemorySubmissionRepository()
	sub := &models.Submission{DocumentID: uuid.New()}
	require.NoError(t, repo.Create(sub))
	assert.NotEqual(t, uuid.Nil, sub.ID)
	assert.Equal(t, models.StatusQueued, sub.Status)

	require.NoError(t, repo.UpdateStatus(sub.ID, models.StatusProcessing))
	got, err := repo.FindByID(sub.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusProcessing, got.Status)

	dup := uuid.New()
	report := &models.ScreeningReport{
		RawText: "Priya",
		Source:  models.SourceText,
		Profile: models.ProfileForm{Name: "Priya"},
		Fraud:   models.FraudReport{RiskScore: 12.5, RiskLevel: models.RiskLow},
		Health:  models.HealthScore{Score: 40},
		Duplicate: &models.DuplicateMatch{
			SubmissionID: dup,
			Similarity:   0.97,
		},
	}
	require.NoError(t, repo.UpdateResult(sub.ID, report))

	got, err = repo.FindByID(sub.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, got.Status)
	require.NotNil(t, got.RiskScore)
	assert.Equal(t, 12.5, *got.RiskScore)
	assert.Equal(t, "LOW", *got.RiskLevel)
	assert.Equal(t, 40, *got.HealthScore)
	assert.Equal(t, report, got.Report())
}

func TestMemorySubmissionUpdateAssessment(t *testing.T) {
	repo := NewMemorySubmissionRepository()
	sub := &models.Submission{}
	require.NoError(t, repo.Create(sub))

	profile := models.ProfileForm{Name: "Ravi"}
	fraud := models.FraudReport{RiskScore: 70, RiskLevel: models.RiskHigh}
	health := models.HealthScore{Score: 5}
	require.NoError(t, repo.UpdateAssessment(sub.ID, profile, fraud, health))

	got, err := repo.FindByID(sub.ID)
	require.NoError(t, err)
	assert.Equal(t, profile, got.Profile.Data())
	assert.Equal(t, fraud, got.Fraud.Data())
	assert.Equal(t, "HIGH", *got.RiskLevel)
}

func TestMemorySubmissionErrors(t *testing.T) {
	repo := NewMemorySubmissionRepository()
	missing := uuid.New()

	_, err := repo.FindByID(missing)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.True(t, errors.Is(repo.UpdateStatus(missing, models.StatusFailed), ErrNotFound))

	sub := &models.Submission{}
	require.NoError(t, repo.Create(sub))
	require.NoError(t, repo.UpdateError(sub.ID, "no text"))
	got, _ := repo.FindByID(sub.ID)
	assert.Equal(t, models.StatusFailed, got.Status)
	assert.Equal(t, "no text", *got.ErrorMessage)
}

func TestMemoryFindPendingJobs(t *testing.T) {
	repo := NewMemorySubmissionRepository()
	var ids []uuid.UUID
	for i := 0; i < 4; i++ {
		sub := &models.Submission{}
		require.NoError(t, repo.Create(sub))
		ids = append(ids, sub.ID)
		time.Sleep(time.Millisecond)
	}
	require.NoError(t, repo.UpdateStatus(ids[1], models.StatusCompleted))

	subs, err := repo.FindPendingJobs(2)
	require.NoError(t, err)
	require.Len(t, subs, 2)
	assert.Equal(t, ids[0], subs[0].ID)
	assert.Equal(t, ids[2], subs[1].ID)
}

func TestMemoryDocuments(t *testing.T) {
	repo := NewMemoryDocumentRepository()
	a := &models.Document{Filename: "a.pdf", OriginalFileName: "cv.pdf", Source: models.SourcePDF}
	b := &models.Document{Filename: "b.png", OriginalFileName: "scan.png", Source: models.SourceImage}
	require.NoError(t, repo.Create(a))
	require.NoError(t, repo.Create(b))

	got, err := repo.FindByID(a.ID)
	require.NoError(t, err)
	assert.Equal(t, "a.pdf", got.Filename)

	got, err = repo.FindByOriginalName("scan.png")
	require.NoError(t, err)
	assert.Equal(t, b.ID, got.ID)

	_, err = repo.FindByOriginalName("missing.pdf")
	assert.True(t, errors.Is(err, ErrNotFound))

	_, err = repo.FindByID(uuid.New())
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestMemoryConcurrentCreates(t *testing.T) {
	repo := NewMemorySubmissionRepository()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, repo.Create(&models.Submission{}))
		}()
	}
	wg.Wait()

	subs, err := repo.FindPendingJobs(0)
	require.NoError(t, err)
	assert.Len(t, subs, 50)
}
