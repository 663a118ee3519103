// Command screen runs the screening pipeline on a local resume or voice file
// and prints the report to stdout.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
	flag "github.com/spf13/pflag"

	"alfredoptarigan/profile-screener/internal/config"
	"alfredoptarigan/profile-screener/internal/extractor"
	"alfredoptarigan/profile-screener/internal/fraud"
	"alfredoptarigan/profile-screener/internal/logger"
	"alfredoptarigan/profile-screener/internal/models"
	"alfredoptarigan/profile-screener/internal/receipt"
	"alfredoptarigan/profile-screener/internal/services"
	"alfredoptarigan/profile-screener/internal/speech"
)

const (
	formatJSON    = "json"
	formatReceipt = "receipt"
)

func main() {
	cfg := config.Load()

	file := flag.StringP("file", "f", "", "resume (pdf, docx, png, jpg, txt) or voice recording (wav, mp3, m4a, ogg, webm)")
	skills := flag.String("skills", cfg.Extraction.SkillsFile, "skills vocabulary file (.csv or .yaml)")
	phoneMode := flag.String("phone-mode", cfg.Extraction.PhoneMode, "phone number rules: IN or generic")
	format := flag.String("format", formatJSON, "output format: json or receipt")
	timeout := flag.Duration("timeout", cfg.Extraction.AcquisitionTimeout, "text acquisition timeout")
	language := flag.StringP("language", "l", "en-US", "spoken language for voice input")
	logLevel := flag.String("log-level", "warn", "log level")
	flag.Parse()

	logger.Init(logger.Config{Level: *logLevel, Format: "pretty"})

	if *file == "" {
		fmt.Fprintln(os.Stderr, "--file is required")
		flag.Usage()
		os.Exit(2)
	}
	if *format != formatJSON && *format != formatReceipt {
		fmt.Fprintf(os.Stderr, "unknown --format %q\n", *format)
		os.Exit(2)
	}

	if err := run(cfg, *file, *skills, *phoneMode, *format, *timeout, speech.LookupLanguage(*language)); err != nil {
		log.Error().Err(err).Msg("❌ Screening failed")
		os.Exit(1)
	}
}

func run(cfg *config.Config, file, skillsFile, phoneMode, format string, timeout time.Duration, lang speech.Language) error {
	src, mimeType, err := detectSource(file)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", file, err)
	}

	vocab, err := extractor.LoadVocabulary(skillsFile)
	if err != nil {
		return fmt.Errorf("failed to load skills vocabulary: %w", err)
	}
	if len(vocab) == 0 {
		log.Warn().Str("path", skillsFile).Msg("⚠️ Skills vocabulary is empty, no skills will be matched")
	}

	screener := services.NewScreener(
		extractor.New(extractor.NewMatcher(vocab), extractor.WithPhoneMode(extractor.PhoneMode(phoneMode))),
		fraud.NewEvaluator(fraud.Config{
			PhoneLeadingDigits: cfg.Fraud.PhoneLeadingDigits,
			DisposableDomains:  cfg.Fraud.DisposableDomains,
		}),
	)

	var (
		ocr         services.ImageReader
		transcriber speech.Transcriber
	)
	if src == models.SourceImage || src == models.SourceVoice {
		ocr, transcriber = remoteBackends(cfg)
	}

	ctx := context.Background()
	doc, err := services.NewAcquirer(timeout, ocr, transcriber).Acquire(ctx, src, data, mimeType, lang)
	if err != nil {
		return err
	}

	report, err := screener.Screen(ctx, *doc)
	if err != nil {
		return err
	}

	if format == formatReceipt {
		return receipt.Render(os.Stdout, receipt.Receipt{
			SubmissionID: filepath.Base(file),
			GeneratedAt:  time.Now(),
			Profile:      report.Profile,
			Fraud:        report.Fraud,
			Health:       report.Health,
		})
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

// detectSource accepts anything the upload endpoint accepts as a resume or
// an audio recording.
func detectSource(file string) (models.Source, string, error) {
	if src, mimeType, err := services.DetectFileType(services.UploadResume, file); err == nil {
		return src, mimeType, nil
	}
	return services.DetectFileType(services.UploadAudio, file)
}

// remoteBackends builds the OCR and speech backends from the environment.
// Missing keys leave the backend nil and acquisition reports it.
func remoteBackends(cfg *config.Config) (services.ImageReader, speech.Transcriber) {
	var (
		ocr      services.ImageReader
		fallback speech.Fallback
	)

	if cfg.Whisper.APIKey != "" {
		whisper, err := speech.NewWhisperTranscriber(cfg.Whisper.APIKey, cfg.Whisper.Model, speech.WithWhisperURL(cfg.Whisper.URL))
		if err != nil {
			log.Warn().Err(err).Msg("⚠️ Whisper unavailable")
		} else {
			fallback = append(fallback, whisper)
		}
	}

	if cfg.Gemini.APIKey != "" {
		gemini, err := services.NewGeminiService(cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Gemini.EmbedModel, cfg.Gemini.MaxRetries)
		if err != nil {
			log.Warn().Err(err).Msg("⚠️ Gemini unavailable")
		} else {
			ocr = gemini
			fallback = append(fallback, services.NewGeminiTranscriber(gemini))
		}
	}

	if len(fallback) == 0 {
		return ocr, nil
	}
	return ocr, fallback
}
