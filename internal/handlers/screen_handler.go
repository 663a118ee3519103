package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/profile-screener/internal/models"
	"alfredoptarigan/profile-screener/internal/repositories"
	"alfredoptarigan/profile-screener/internal/services"
	"alfredoptarigan/profile-screener/internal/speech"
)

type ScreenHandler struct {
	subRepo repositories.SubmissionRepository
	docRepo repositories.DocumentRepository
	worker  services.Worker
}

func NewScreenHandler(
	subRepo repositories.SubmissionRepository,
	docRepo repositories.DocumentRepository,
	worker services.Worker,
) *ScreenHandler {
	return &ScreenHandler{
		subRepo: subRepo,
		docRepo: docRepo,
		worker:  worker,
	}
}

// HandleScreen handles POST /screen
func (h *ScreenHandler) HandleScreen(c *fiber.Ctx) error {
	var req models.ScreenRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if req.DocumentID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "document_id is required",
		})
	}

	docID, err := uuid.Parse(req.DocumentID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid document_id format",
		})
	}

	doc, err := h.docRepo.FindByID(docID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Document not found",
			})
		}
		return err
	}

	language := doc.Language
	if req.Language != "" {
		language = speech.LookupLanguage(req.Language).Code
	}

	submission := &models.Submission{
		ID:         uuid.New(),
		DocumentID: docID,
		Language:   language,
		Status:     models.StatusQueued,
	}

	if err := h.subRepo.Create(submission); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create screening job",
		})
	}

	h.worker.EnqueueJob(submission.ID)

	return c.Status(fiber.StatusAccepted).JSON(models.ScreenResponse{
		ID:     submission.ID.String(),
		Status: string(models.StatusQueued),
	})
}
