package handlers

import (
	"errors"
	"fmt"
	"io"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/profile-screener/internal/services"
	"alfredoptarigan/profile-screener/internal/speech"
)

type VoiceHandler struct {
	voice       services.VoiceService
	maxFileSize int64
}

func NewVoiceHandler(voice services.VoiceService, maxFileSize int64) *VoiceHandler {
	return &VoiceHandler{
		voice:       voice,
		maxFileSize: maxFileSize,
	}
}

// HandleTranscribe handles POST /voice/:field with an "audio" file.
func (h *VoiceHandler) HandleTranscribe(c *fiber.Ctx) error {
	field, ok := speech.ParseField(c.Params("field"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("Unknown voice field %q", c.Params("field")),
		})
	}

	file, err := c.FormFile("audio")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "audio file is required",
		})
	}

	if file.Size > h.maxFileSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("Audio file too large. Max size: %d bytes", h.maxFileSize),
		})
	}

	_, mimeType, err := services.DetectFileType(services.UploadAudio, file.Filename)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	src, err := file.Open()
	if err != nil {
		return fmt.Errorf("failed to open audio: %w", err)
	}
	defer src.Close()

	audio, err := io.ReadAll(src)
	if err != nil {
		return fmt.Errorf("failed to read audio: %w", err)
	}

	lang := speech.LookupLanguage(c.FormValue("language"))
	resp, err := h.voice.TranscribeField(c.UserContext(), field, audio, mimeType, lang)
	if err != nil {
		var acqErr *services.AcquisitionError
		if errors.As(err, &acqErr) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"error": acqErr.Reason,
			})
		}
		return err
	}

	return c.JSON(resp)
}

// HandleGetPrompt handles GET /voice/prompts/:field?language=
func (h *VoiceHandler) HandleGetPrompt(c *fiber.Ctx) error {
	field, ok := speech.ParseField(c.Params("field"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("Unknown voice field %q", c.Params("field")),
		})
	}

	lang := speech.LookupLanguage(c.Query("language"))
	return c.JSON(fiber.Map{
		"field":    field,
		"language": lang.Code,
		"prompt":   h.voice.Prompt(field, lang),
	})
}
