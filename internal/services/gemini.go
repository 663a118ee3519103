package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"google.golang.org/genai"

	"alfredoptarigan/profile-screener/internal/speech"
)

const maxEmbeddingChars = 8000

type GeminiService interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
	ReadImageText(ctx context.Context, image []byte, mimeType string) (string, error)
	TranscribeAudio(ctx context.Context, audio []byte, mimeType string, lang speech.Language) (string, error)
}

type geminiService struct {
	client        *genai.Client
	modelName     string
	embedModel    string
	maxRetries    int
	promptBuilder *PromptBuilder
}

func NewGeminiService(apiKey, model, embedModel string, maxRetries int) (GeminiService, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required")
	}

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	if maxRetries < 1 {
		maxRetries = 1
	}

	return &geminiService{
		client:        client,
		modelName:     model,
		embedModel:    embedModel,
		maxRetries:    maxRetries,
		promptBuilder: NewPromptBuilder(),
	}, nil
}

// GenerateEmbedding implements GeminiService.
func (g *geminiService) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	if len(text) > maxEmbeddingChars {
		text = text[:maxEmbeddingChars]
	}

	result, err := g.client.Models.EmbedContent(ctx, g.embedModel, genai.Text(text), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to generate embedding: %w", err)
	}

	if result == nil || len(result.Embeddings) == 0 {
		return nil, fmt.Errorf("empty embedding result")
	}

	return result.Embeddings[0].Values, nil
}

// ReadImageText implements GeminiService.
func (g *geminiService) ReadImageText(ctx context.Context, image []byte, mimeType string) (string, error) {
	return g.generateWithRetry(ctx, g.promptBuilder.BuildOCRPrompt(), image, mimeType)
}

// TranscribeAudio implements GeminiService.
func (g *geminiService) TranscribeAudio(ctx context.Context, audio []byte, mimeType string, lang speech.Language) (string, error) {
	return g.generateWithRetry(ctx, g.promptBuilder.BuildTranscriptionPrompt(lang), audio, mimeType)
}

func (g *geminiService) generate(ctx context.Context, prompt string, data []byte, mimeType string) (string, error) {
	temperature := float32(0)
	config := &genai.GenerateContentConfig{
		Temperature:     &temperature,
		MaxOutputTokens: 4096,
	}

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromText(prompt),
			genai.NewPartFromBytes(data, mimeType),
		}, genai.RoleUser),
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, contents, config)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	if resp == nil {
		return "", fmt.Errorf("no response generated (nil response)")
	}

	return CleanText(resp.Text()), nil
}

func (g *geminiService) generateWithRetry(ctx context.Context, prompt string, data []byte, mimeType string) (string, error) {
	var lastErr error

	for attempt := 1; attempt <= g.maxRetries; attempt++ {
		text, err := g.generate(ctx, prompt, data, mimeType)
		if err == nil {
			return text, nil
		}

		lastErr = err

		if attempt == g.maxRetries {
			break
		}

		log.Warn().Err(err).Int("attempt", attempt).Msg("⚠️ Gemini request failed, retrying")

		select {
		case <-ctx.Done():
			return "", fmt.Errorf("context cancelled: %w", ctx.Err())
		case <-time.After(time.Duration(attempt) * 500 * time.Millisecond):
		}
	}

	return "", fmt.Errorf("failed after %d attempts: %w", g.maxRetries, lastErr)
}

// GeminiTranscriber adapts GeminiService to speech.Transcriber.
type GeminiTranscriber struct {
	gemini GeminiService
}

func NewGeminiTranscriber(gemini GeminiService) *GeminiTranscriber {
	return &GeminiTranscriber{gemini: gemini}
}

func (t *GeminiTranscriber) Name() string {
	return "gemini"
}

func (t *GeminiTranscriber) Transcribe(ctx context.Context, audio []byte, mimeType string, lang speech.Language) (string, error) {
	if len(audio) == 0 {
		return "", speech.ErrNoAudio
	}

	text, err := t.gemini.TranscribeAudio(ctx, audio, mimeType, lang)
	if err != nil {
		return "", err
	}

	if text == "" || strings.EqualFold(text, noSpeechMarker) {
		return "", speech.ErrNoSpeech
	}

	return text, nil
}
