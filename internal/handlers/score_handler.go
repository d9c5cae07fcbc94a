package handlers

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"vietcareer/cv-match/internal/models"
	"vietcareer/cv-match/internal/repositories"
	"vietcareer/cv-match/internal/services"
)

// allowedMimeTypes is the upload contract; the extension check in the
// storage layer validates again defensively.
var allowedMimeTypes = map[string]struct{}{
	"application/pdf": {},
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": {},
	"image/jpeg": {},
	"image/jpg":  {},
	"image/png":  {},
}

type ScoreHandler struct {
	matcher        services.MatcherService
	storageService services.StorageService
	maxFileSize    int64
}

func NewScoreHandler(
	matcher services.MatcherService,
	storageService services.StorageService,
	maxFileSize int64,
) *ScoreHandler {
	return &ScoreHandler{
		matcher:        matcher,
		storageService: storageService,
		maxFileSize:    maxFileSize,
	}
}

// HandleScore handles POST /score: multipart form with a "cv" file and a
// "job_id" form value.
func (h *ScoreHandler) HandleScore(c *fiber.Ctx) error {
	jobID, err := parseJobID(c.FormValue("job_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	fileHeader, err := c.FormFile("cv")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "cv file is required",
		})
	}

	if fileHeader.Size > h.maxFileSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("CV file too large. Max size: %d bytes", h.maxFileSize),
		})
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if _, ok := allowedMimeTypes[contentType]; contentType != "" && !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("unsupported content type: %s", contentType),
		})
	}

	_, filePath, err := h.storageService.SaveFile(fileHeader)
	if err != nil {
		var unsupported *services.UnsupportedFormatError
		if errors.As(err, &unsupported) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": unsupported.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to save CV file: %v", err),
		})
	}

	file := services.FileInput{
		Path:         filePath,
		OriginalName: fileHeader.Filename,
		MimeType:     contentType,
	}

	result, err := h.matcher.ScoreCV(c.Context(), file, jobID)
	if err != nil {
		return scoringErrorResponse(c, err)
	}

	return c.JSON(result)
}

// HandleScoreDemo handles POST /score/demo: JSON body with job_id, no file.
func (h *ScoreHandler) HandleScoreDemo(c *fiber.Ctx) error {
	var req models.DemoScoreRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if req.JobID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "job_id must be a positive integer",
		})
	}

	result, err := h.matcher.ScoreDemo(c.Context(), req.JobID)
	if err != nil {
		return scoringErrorResponse(c, err)
	}

	return c.JSON(result)
}

func parseJobID(raw string) (uint, error) {
	if raw == "" {
		return 0, errors.New("job_id is required")
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("job_id must be a positive integer")
	}
	return uint(id), nil
}

func scoringErrorResponse(c *fiber.Ctx, err error) error {
	if errors.Is(err, repositories.ErrJobNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Job not found",
		})
	}

	var unsupported *services.UnsupportedFormatError
	if errors.As(err, &unsupported) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": unsupported.Error(),
		})
	}

	var extraction *services.ExtractionError
	if errors.As(err, &extraction) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": extraction.Error(),
		})
	}

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": fmt.Sprintf("failed to score CV: %v", err),
	})
}
