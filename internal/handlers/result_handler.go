package handlers

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/profile-screener/internal/models"
	"alfredoptarigan/profile-screener/internal/receipt"
	"alfredoptarigan/profile-screener/internal/repositories"
	"alfredoptarigan/profile-screener/internal/services"
)

type ResultHandler struct {
	subRepo   repositories.SubmissionRepository
	screening services.ScreeningService
}

func NewResultHandler(subRepo repositories.SubmissionRepository, screening services.ScreeningService) *ResultHandler {
	return &ResultHandler{
		subRepo:   subRepo,
		screening: screening,
	}
}

// HandleGetResult handles GET /result/:id
func (h *ResultHandler) HandleGetResult(c *fiber.Ctx) error {
	sub, err := h.findSubmission(c)
	if err != nil {
		return err
	}

	response := models.ResultResponse{
		ID:     sub.ID.String(),
		Status: string(sub.Status),
	}

	if sub.Status == models.StatusCompleted {
		response.Result = sub.Report()
	}

	if sub.Status == models.StatusFailed && sub.ErrorMessage != nil {
		response.ErrorMessage = sub.ErrorMessage
	}

	return c.JSON(response)
}

// HandleUpdateProfile handles PUT /result/:id/profile with the edited form.
func (h *ResultHandler) HandleUpdateProfile(c *fiber.Ctx) error {
	sub, err := h.findSubmission(c)
	if err != nil {
		return err
	}

	if sub.Status != models.StatusCompleted {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": fmt.Sprintf("Submission is %s, profile can only be edited once screening has completed", sub.Status),
		})
	}

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

	resp, err := h.screening.Reevaluate(c.UserContext(), sub.ID, profile)
	if err != nil {
		return err
	}

	return c.JSON(resp)
}

// HandleGetReceipt handles GET /result/:id/receipt
func (h *ResultHandler) HandleGetReceipt(c *fiber.Ctx) error {
	sub, err := h.findSubmission(c)
	if err != nil {
		return err
	}

	if sub.Status != models.StatusCompleted {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": fmt.Sprintf("Submission is %s, receipt is available once screening has completed", sub.Status),
		})
	}

	text, err := receipt.String(receipt.Receipt{
		SubmissionID: sub.ID.String(),
		GeneratedAt:  time.Now(),
		Profile:      sub.Profile.Data(),
		Fraud:        sub.Fraud.Data(),
		Health:       sub.Health.Data(),
	})
	if err != nil {
		return fmt.Errorf("failed to render receipt: %w", err)
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="receipt_%s.txt"`, sub.ID))
	return c.SendString(text)
}

// findSubmission loads the submission named by the :id parameter. The
// returned error is a *fiber.Error ready for ErrorHandler.
func (h *ResultHandler) findSubmission(c *fiber.Ctx) (*models.Submission, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid submission ID format")
	}

	sub, err := h.subRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Submission not found")
		}
		return nil, err
	}

	return sub, nil
}
