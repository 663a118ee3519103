package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	flag "github.com/spf13/pflag"

	"alfredoptarigan/profile-screener/internal/config"
	"alfredoptarigan/profile-screener/internal/logger"
	"alfredoptarigan/profile-screener/internal/models"
	"alfredoptarigan/profile-screener/internal/repositories"
	"alfredoptarigan/profile-screener/internal/services"
	"alfredoptarigan/profile-screener/internal/speech"
)

// Queues every resume under a directory for screening. A running API worker
// picks the submissions up, so completed ones land in the duplicate index.
func main() {
	dir := flag.StringP("dir", "d", "./reference_resumes", "directory of resumes to ingest")
	language := flag.StringP("language", "l", "en-US", "language recorded on each document")
	flag.Parse()

	cfg := config.Load()
	logger.Init(logger.Config{Level: cfg.Logger.Level, Format: "pretty"})
	log.Info().Str("dir", *dir).Msg("🚀 Starting resume ingestion...")

	if !cfg.HasDatabase() {
		log.Fatal().Msg("❌ Ingestion needs a database, set DATABASE_URL or DB_HOST")
	}

	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("❌ Failed to initialize database")
	}

	storage := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storage.EnsureUploadDir(); err != nil {
		log.Fatal().Err(err).Msg("❌ Failed to create upload directory")
	}

	ing := &ingester{
		docRepo: repositories.NewDocumentRepository(db),
		subRepo: repositories.NewSubmissionRepository(db),
		storage: storage,
		lang:    speech.LookupLanguage(*language),
		maxSize: cfg.Storage.MaxFileSize,
	}

	successCount := 0
	skipCount := 0
	failCount := 0

	err = filepath.WalkDir(*dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if _, _, err := services.DetectFileType(services.UploadResume, path); err != nil {
			log.Debug().Str("path", path).Msg("⏭️ Skipping unsupported file")
			return nil
		}

		if ing.seen(path) {
			log.Info().Str("path", path).Msg("⏭️ Already ingested, skipping")
			skipCount++
			return nil
		}

		id, err := ing.ingest(path)
		if err != nil {
			log.Error().Err(err).Str("path", path).Msg("❌ Failed to ingest")
			failCount++
			return nil
		}
		log.Info().Str("path", path).Str("submission_id", id.String()).Msg("📄 Queued")
		successCount++
		return nil
	})
	if err != nil {
		log.Fatal().Err(err).Msg("❌ Failed to walk directory")
	}

	// Summary
	log.Info().Msg(strings.Repeat("=", 60))
	log.Info().Int("queued", successCount).Int("skipped", skipCount).Int("failed", failCount).Msg("📊 Ingestion summary")
	log.Info().Msg(strings.Repeat("=", 60))

	if failCount > 0 {
		log.Warn().Msg("⚠️ Some resumes failed to ingest. Please check the logs above.")
		os.Exit(1)
	}

	log.Info().Msg("✅ All resumes queued successfully!")
}

type ingester struct {
	docRepo repositories.DocumentRepository
	subRepo repositories.SubmissionRepository
	storage services.StorageService
	lang    speech.Language
	maxSize int64
}

// seen reports whether a document with the same file name already exists.
func (i *ingester) seen(path string) bool {
	_, err := i.docRepo.FindByOriginalName(filepath.Base(path))
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		log.Warn().Err(err).Str("path", path).Msg("⚠️ Could not check for an earlier ingest")
	}
	return err == nil
}

func (i *ingester) ingest(path string) (uuid.UUID, error) {
	info, err := os.Stat(path)
	if err != nil {
		return uuid.Nil, err
	}
	if info.Size() > i.maxSize {
		return uuid.Nil, fmt.Errorf("file too large: %d bytes", info.Size())
	}

	f, err := os.Open(path)
	if err != nil {
		return uuid.Nil, err
	}
	defer f.Close()

	stored, err := i.storage.Save(filepath.Base(path), f, services.UploadResume)
	if err != nil {
		return uuid.Nil, err
	}

	doc := models.Document{
		Filename:         stored.Filename,
		OriginalFileName: filepath.Base(path),
		Source:           stored.Source,
		MimeType:         stored.MimeType,
		Language:         i.lang.Code,
		FilePath:         stored.Path,
		SizeBytes:        info.Size(),
	}
	if err := i.docRepo.Create(&doc); err != nil {
		i.storage.DeleteFile(stored.Filename)
		return uuid.Nil, fmt.Errorf("failed to save document record: %w", err)
	}

	sub := models.Submission{
		ID:         uuid.New(),
		DocumentID: doc.ID,
		Language:   doc.Language,
		Status:     models.StatusQueued,
	}
	if err := i.subRepo.Create(&sub); err != nil {
		return uuid.Nil, fmt.Errorf("failed to create submission: %w", err)
	}
	return sub.ID, nil
}
