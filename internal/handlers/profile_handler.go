package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/profile-screener/internal/models"
	"alfredoptarigan/profile-screener/internal/services"
)

type ProfileHandler struct {
	screener *services.Screener
}

func NewProfileHandler(screener *services.Screener) *ProfileHandler {
	return &ProfileHandler{screener: screener}
}

// HandleEvaluate handles POST /profile/evaluate. Nothing is stored.
func (h *ProfileHandler) HandleEvaluate(c *fiber.Ctx) error {
	var profile models.ProfileForm
	if err := c.BodyParser(&profile); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid profile payload",
		})
	}
	if profile.Education != "" && !profile.Education.Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("Unknown education level %q", profile.Education),
		})
	}

	fraudReport, healthScore, err := h.screener.Assess(c.UserContext(), profile)
	if err != nil {
		return err
	}

	return c.JSON(models.EvaluateResponse{
		Fraud:  fraudReport,
		Health: healthScore,
	})
}
