package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog/log"

	"alfredoptarigan/profile-screener/internal/config"
	"alfredoptarigan/profile-screener/internal/extractor"
	"alfredoptarigan/profile-screener/internal/fraud"
	"alfredoptarigan/profile-screener/internal/handlers"
	"alfredoptarigan/profile-screener/internal/logger"
	"alfredoptarigan/profile-screener/internal/repositories"
	"alfredoptarigan/profile-screener/internal/services"
	"alfredoptarigan/profile-screener/internal/speech"
)

func main() {
	// Load configuration
	cfg := config.Load()
	logger.Init(logger.Config{Level: cfg.Logger.Level, Format: cfg.Logger.Format})
	log.Info().Str("env", cfg.Server.Env).Msg("✅ Config loaded successfully")

	// Initialize repositories
	var (
		docRepo repositories.DocumentRepository
		subRepo repositories.SubmissionRepository
		backend string
	)
	if cfg.HasDatabase() {
		db, err := config.InitDatabase(cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("❌ Failed to initialize database")
		}
		docRepo = repositories.NewDocumentRepository(db)
		subRepo = repositories.NewSubmissionRepository(db)
		backend = "postgres"
	} else {
		log.Warn().Msg("⚠️ No database configured, submissions are kept in memory")
		docRepo = repositories.NewMemoryDocumentRepository()
		subRepo = repositories.NewMemorySubmissionRepository()
		backend = "memory"
	}
	log.Info().Str("storage", backend).Msg("✅ Repositories initialized successfully")

	// Initialize storage
	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatal().Err(err).Msg("❌ Failed to create upload directory")
	}

	// Scoring core
	vocab, err := extractor.LoadVocabulary(cfg.Extraction.SkillsFile)
	if err != nil {
		log.Fatal().Err(err).Msg("❌ Failed to load skills vocabulary")
	}
	if len(vocab) == 0 {
		log.Warn().Str("path", cfg.Extraction.SkillsFile).Msg("⚠️ Skills vocabulary is empty, no skills will be matched")
	}
	matcher := extractor.NewMatcher(vocab)
	screener := services.NewScreener(
		extractor.New(matcher, extractor.WithPhoneMode(extractor.PhoneMode(cfg.Extraction.PhoneMode))),
		fraud.NewEvaluator(fraud.Config{
			PhoneLeadingDigits: cfg.Fraud.PhoneLeadingDigits,
			DisposableDomains:  cfg.Fraud.DisposableDomains,
		}),
	)
	log.Info().Int("skills", matcher.Len()).Msg("✅ Screener initialized")

	// Initialize Gemini AI and speech backends
	var (
		ocr         services.ImageReader
		duplicates  services.DuplicateDetector
		transcriber speech.Fallback
	)
	if cfg.Whisper.APIKey != "" {
		whisper, err := speech.NewWhisperTranscriber(cfg.Whisper.APIKey, cfg.Whisper.Model, speech.WithWhisperURL(cfg.Whisper.URL))
		if err != nil {
			log.Fatal().Err(err).Msg("❌ Failed to initialize Whisper")
		}
		transcriber = append(transcriber, whisper)
		log.Info().Msg("✅ Whisper transcription enabled")
	}

	if cfg.Gemini.APIKey != "" {
		geminiService, err := services.NewGeminiService(cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Gemini.EmbedModel, cfg.Gemini.MaxRetries)
		if err != nil {
			log.Fatal().Err(err).Msg("❌ Failed to initialize Gemini AI")
		}
		ocr = geminiService
		transcriber = append(transcriber, services.NewGeminiTranscriber(geminiService))
		log.Info().Msg("✅ Gemini AI initialized successfully")

		if cfg.Qdrant.URL != "" && cfg.Qdrant.DuplicateDetection {
			duplicates = initDuplicateDetection(cfg, geminiService)
		}
	} else {
		log.Warn().Msg("⚠️ GEMINI_API_KEY not set, image resumes and duplicate detection are disabled")
	}

	var stt speech.Transcriber
	if len(transcriber) > 0 {
		stt = transcriber
	} else {
		log.Warn().Msg("⚠️ No speech-to-text backend configured, voice input is disabled")
	}

	acquirer := services.NewAcquirer(cfg.Extraction.AcquisitionTimeout, ocr, stt)
	screeningService := services.NewScreeningService(subRepo, docRepo, acquirer, screener, duplicates)
	voiceService := services.NewVoiceService(acquirer, matcher)

	// Initialize worker
	worker := services.NewWorker(subRepo, screeningService, services.WorkerOptions{
		Concurrency:  cfg.Worker.Concurrency,
		QueueSize:    cfg.Worker.QueueSize,
		PollInterval: cfg.Worker.PollInterval,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	worker.Start(ctx)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Profile Screener API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 2 * cfg.Extraction.AcquisitionTimeout,
		BodyLimit:    int(cfg.Storage.MaxFileSize) + 1<<20,
		ErrorHandler: handlers.ErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	handlers.SetupRoutes(app, handlers.Handlers{
		Upload:  handlers.NewUploadHandler(docRepo, storageService, cfg.Storage.MaxFileSize),
		Screen:  handlers.NewScreenHandler(subRepo, docRepo, worker),
		Result:  handlers.NewResultHandler(subRepo, screeningService),
		Profile: handlers.NewProfileHandler(screener),
		Voice:   handlers.NewVoiceHandler(voiceService, cfg.Storage.MaxFileSize),
		Health:  handlers.NewHealthHandler(backend, matcher.Len()),
	})
	log.Info().Msg("✅ Handlers initialized")

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Info().Msg("🛑 Shutting down server...")
		worker.Stop()
		cancel()
		if err := app.Shutdown(); err != nil {
			log.Error().Err(err).Msg("❌ Server forced to shutdown")
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Info().Str("addr", addr).Msg("🚀 Server starting")

	if err := app.Listen(addr); err != nil {
		log.Fatal().Err(err).Msg("❌ Failed to start server")
	}
}

// initDuplicateDetection connects to Qdrant. Failures disable duplicate
// detection instead of stopping the server.
func initDuplicateDetection(cfg *config.Config, embedder services.Embedder) services.DuplicateDetector {
	qdrantService, err := services.NewQdrantService(cfg.Qdrant.URL, cfg.Qdrant.APIKey, cfg.Qdrant.Collection)
	if err != nil {
		log.Error().Err(err).Msg("❌ Failed to initialize Qdrant, duplicate detection disabled")
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := qdrantService.InitCollection(ctx); err != nil {
		log.Error().Err(err).Msg("❌ Failed to initialize Qdrant collection, duplicate detection disabled")
		return nil
	}

	log.Info().Float32("threshold", cfg.Qdrant.DuplicateThreshold).Msg("✅ Duplicate detection enabled")
	return services.NewDuplicateDetector(embedder, qdrantService, cfg.Qdrant.DuplicateThreshold)
}
