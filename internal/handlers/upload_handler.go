package handlers

import (
	"fmt"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/profile-screener/internal/models"
	"alfredoptarigan/profile-screener/internal/repositories"
	"alfredoptarigan/profile-screener/internal/services"
	"alfredoptarigan/profile-screener/internal/speech"
)

type UploadHandler struct {
	docRepo        repositories.DocumentRepository
	storageService services.StorageService
	maxFileSize    int64
}

func NewUploadHandler(
	docRepo repositories.DocumentRepository,
	storageService services.StorageService,
	maxFileSize int64,
) *UploadHandler {
	return &UploadHandler{
		docRepo:        docRepo,
		storageService: storageService,
		maxFileSize:    maxFileSize,
	}
}

// HandleUpload handles POST /upload with a "resume" and/or "audio" file.
func (h *UploadHandler) HandleUpload(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "failed to parse multipart form",
		})
	}

	lang := speech.LookupLanguage(firstValue(form.Value["language"]))

	var responses []models.UploadResponse
	for _, kind := range []services.UploadKind{services.UploadResume, services.UploadAudio} {
		files, exists := form.File[string(kind)]
		if !exists || len(files) == 0 {
			continue
		}

		resp, status, err := h.store(files[0], kind, lang)
		if err != nil {
			return c.Status(status).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		responses = append(responses, *resp)
	}

	if len(responses) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No valid files uploaded. Please upload 'resume' (pdf, docx, png, jpg, txt) and/or 'audio' (wav, mp3, m4a, ogg, webm).",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":   "Files uploaded successfully",
		"documents": responses,
	})
}

func (h *UploadHandler) store(file *multipart.FileHeader, kind services.UploadKind, lang speech.Language) (*models.UploadResponse, int, error) {
	if file.Size > h.maxFileSize {
		return nil, fiber.StatusBadRequest, fmt.Errorf("%s file too large. Max size: %d bytes", kind, h.maxFileSize)
	}

	stored, err := h.storageService.SaveFile(file, kind)
	if err != nil {
		return nil, fiber.StatusBadRequest, fmt.Errorf("failed to save %s file: %w", kind, err)
	}

	doc := models.Document{
		Filename:         stored.Filename,
		OriginalFileName: file.Filename,
		Source:           stored.Source,
		MimeType:         stored.MimeType,
		Language:         lang.Code,
		FilePath:         stored.Path,
		SizeBytes:        file.Size,
	}

	if err := h.docRepo.Create(&doc); err != nil {
		// Cleanup uploaded file if database insert fails
		h.storageService.DeleteFile(stored.Filename)
		return nil, fiber.StatusInternalServerError, fmt.Errorf("failed to save %s document record", kind)
	}

	return &models.UploadResponse{
		ID:           doc.ID.String(),
		Filename:     doc.Filename,
		OriginalName: doc.OriginalFileName,
		Source:       doc.Source,
	}, fiber.StatusCreated, nil
}

func firstValue(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
