package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/profile-screener/internal/repositories"
)

type Handlers struct {
	Upload  *UploadHandler
	Screen  *ScreenHandler
	Result  *ResultHandler
	Profile *ProfileHandler
	Voice   *VoiceHandler
	Health  *HealthHandler
}

// SetupRoutes mounts every endpoint under /api/v1.
func SetupRoutes(app *fiber.App, h Handlers) {
	api := app.Group("/api/v1")

	api.Get("/health", h.Health.HandleHealth)

	api.Post("/upload", h.Upload.HandleUpload)
	api.Post("/screen", h.Screen.HandleScreen)

	api.Get("/result/:id", h.Result.HandleGetResult)
	api.Put("/result/:id/profile", h.Result.HandleUpdateProfile)
	api.Get("/result/:id/receipt", h.Result.HandleGetReceipt)

	api.Post("/profile/evaluate", h.Profile.HandleEvaluate)

	api.Get("/voice/prompts/:field", h.Voice.HandleGetPrompt)
	api.Post("/voice/:field", h.Voice.HandleTranscribe)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Profile Screener API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/upload",
				"POST /api/v1/screen",
				"GET /api/v1/result/:id",
				"PUT /api/v1/result/:id/profile",
				"GET /api/v1/result/:id/receipt",
				"POST /api/v1/profile/evaluate",
				"POST /api/v1/voice/:field",
				"GET /api/v1/voice/prompts/:field",
			},
		})
	})
}

// ErrorHandler renders errors that escape a handler as {error, code}.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		code = fe.Code
	case errors.Is(err, repositories.ErrNotFound):
		code = fiber.StatusNotFound
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}

type HealthHandler struct {
	storage        string
	vocabularySize int
	started        time.Time
}

func NewHealthHandler(storage string, vocabularySize int) *HealthHandler {
	return &HealthHandler{
		storage:        storage,
		vocabularySize: vocabularySize,
		started:        time.Now(),
	}
}

func (h *HealthHandler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":          "healthy",
		"time":            time.Now(),
		"uptime_seconds":  int(time.Since(h.started).Seconds()),
		"storage":         h.storage,
		"vocabulary_size": h.vocabularySize,
	})
}
