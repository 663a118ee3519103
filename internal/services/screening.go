package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"alfredoptarigan/profile-screener/internal/extractor"
	"alfredoptarigan/profile-screener/internal/fraud"
	"alfredoptarigan/profile-screener/internal/health"
	"alfredoptarigan/profile-screener/internal/models"
	"alfredoptarigan/profile-screener/internal/repositories"
)

// Screener runs the scoring core over acquired text. It holds no mutable
// state and is safe for concurrent use.
type Screener struct {
	extractor *extractor.Extractor
	fraud     *fraud.Evaluator
}

func NewScreener(ex *extractor.Extractor, fr *fraud.Evaluator) *Screener {
	return &Screener{extractor: ex, fraud: fr}
}

func (s *Screener) Extractor() *extractor.Extractor {
	return s.extractor
}

// Screen extracts fields from doc, prefills the registration form and scores it.
func (s *Screener) Screen(ctx context.Context, doc models.RawDocument) (*models.ScreeningReport, error) {
	rec := s.extractor.ExtractDocument(doc)
	profile := models.ProfileFromRecord(rec, doc.Source != models.SourceVoice)

	fraudReport, healthScore, err := s.Assess(ctx, profile)
	if err != nil {
		return nil, err
	}

	return &models.ScreeningReport{
		RawText:   doc.Text,
		Source:    doc.Source,
		Extracted: rec,
		Profile:   profile,
		Fraud:     fraudReport,
		Health:    healthScore,
	}, nil
}

// Assess computes the fraud report and health score of a form. The two are
// independent and run concurrently.
func (s *Screener) Assess(ctx context.Context, profile models.ProfileForm) (models.FraudReport, models.HealthScore, error) {
	var (
		fraudReport models.FraudReport
		healthScore models.HealthScore
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		fraudReport = s.fraud.Evaluate(profile)
		return nil
	})
	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		healthScore = health.Score(profile)
		return nil
	})
	if err := g.Wait(); err != nil {
		return models.FraudReport{}, models.HealthScore{}, err
	}

	return fraudReport, healthScore, nil
}

type ScreeningService interface {
	ProcessSubmission(ctx context.Context, submissionID uuid.UUID) error
	Reevaluate(ctx context.Context, submissionID uuid.UUID, profile models.ProfileForm) (*models.EvaluateResponse, error)
}

type screeningService struct {
	subRepo    repositories.SubmissionRepository
	docRepo    repositories.DocumentRepository
	acquirer   Acquirer
	screener   *Screener
	duplicates DuplicateDetector
}

// NewScreeningService wires the submission pipeline. duplicates may be nil.
func NewScreeningService(
	subRepo repositories.SubmissionRepository,
	docRepo repositories.DocumentRepository,
	acquirer Acquirer,
	screener *Screener,
	duplicates DuplicateDetector,
) ScreeningService {
	return &screeningService{
		subRepo:    subRepo,
		docRepo:    docRepo,
		acquirer:   acquirer,
		screener:   screener,
		duplicates: duplicates,
	}
}

// ProcessSubmission runs one queued submission to completion. Acquisition
// failures are stored on the submission and also returned.
func (s *screeningService) ProcessSubmission(ctx context.Context, submissionID uuid.UUID) error {
	sub, err := s.subRepo.FindByID(submissionID)
	if err != nil {
		return fmt.Errorf("failed to get submission: %w", err)
	}

	if sub.Status != models.StatusQueued {
		log.Debug().Str("submission_id", submissionID.String()).Str("status", string(sub.Status)).Msg("submission already picked up, skipping")
		return nil
	}

	if err := s.subRepo.UpdateStatus(submissionID, models.StatusProcessing); err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}

	logger := log.With().Str("submission_id", submissionID.String()).Logger()
	logger.Info().Msg("🔄 Starting screening")

	doc, err := s.docRepo.FindByID(sub.DocumentID)
	if err != nil {
		s.fail(submissionID, fmt.Sprintf("document not found: %v", err))
		return fmt.Errorf("failed to get document: %w", err)
	}
	if sub.Language != "" {
		doc.Language = sub.Language
	}

	logger.Info().Str("source", string(doc.Source)).Msg("📄 Acquiring text")
	raw, err := s.acquirer.AcquireDocument(ctx, doc)
	if err != nil {
		reason := err.Error()
		var acqErr *AcquisitionError
		if errors.As(err, &acqErr) {
			reason = acqErr.Reason
		}
		s.fail(submissionID, reason)
		return fmt.Errorf("failed to acquire text: %w", err)
	}

	report, err := s.screener.Screen(ctx, *raw)
	if err != nil {
		s.fail(submissionID, fmt.Sprintf("screening interrupted: %v", err))
		return fmt.Errorf("failed to screen: %w", err)
	}

	if s.duplicates != nil {
		report.Duplicate = s.checkDuplicate(ctx, submissionID, raw.Text)
	}

	if err := s.subRepo.UpdateResult(submissionID, report); err != nil {
		s.fail(submissionID, "screening result could not be saved")
		return fmt.Errorf("failed to save result: %w", err)
	}

	logger.Info().
		Float64("risk_score", report.Fraud.RiskScore).
		Str("risk_level", string(report.Fraud.RiskLevel)).
		Int("health_score", report.Health.Score).
		Msg("✅ Screening completed")
	return nil
}

// checkDuplicate looks up and indexes the submission text. Lookup failures
// are logged and never fail the submission.
func (s *screeningService) checkDuplicate(ctx context.Context, submissionID uuid.UUID, text string) *models.DuplicateMatch {
	logger := log.With().Str("submission_id", submissionID.String()).Logger()

	match, embedding, err := s.duplicates.FindDuplicate(ctx, submissionID, text)
	if err != nil {
		logger.Warn().Err(err).Msg("⚠️ Duplicate lookup failed")
	}
	if match != nil {
		logger.Warn().
			Str("duplicate_of", match.SubmissionID.String()).
			Float32("similarity", match.Similarity).
			Msg("⚠️ Possible duplicate submission")
	}

	if embedding != nil {
		if err := s.duplicates.Index(ctx, submissionID, text, embedding); err != nil {
			logger.Warn().Err(err).Msg("⚠️ Failed to index submission")
		}
	}
	return match
}

// Reevaluate replaces the stored form and recomputes fraud and health from it.
func (s *screeningService) Reevaluate(ctx context.Context, submissionID uuid.UUID, profile models.ProfileForm) (*models.EvaluateResponse, error) {
	if _, err := s.subRepo.FindByID(submissionID); err != nil {
		return nil, fmt.Errorf("failed to get submission: %w", err)
	}

	fraudReport, healthScore, err := s.screener.Assess(ctx, profile)
	if err != nil {
		return nil, err
	}

	if err := s.subRepo.UpdateAssessment(submissionID, profile, fraudReport, healthScore); err != nil {
		return nil, fmt.Errorf("failed to save assessment: %w", err)
	}

	return &models.EvaluateResponse{Fraud: fraudReport, Health: healthScore}, nil
}

func (s *screeningService) fail(submissionID uuid.UUID, reason string) {
	if err := s.subRepo.UpdateError(submissionID, reason); err != nil {
		log.Error().Err(err).Str("submission_id", submissionID.String()).Msg("❌ Failed to record submission error")
	}
}
