package handler

import (
	"fmt"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/tournest-backend/internal/models"
	"github.com/sefazor/tournest-backend/internal/service"
	"github.com/sefazor/tournest-backend/pkg/utils"
)

type StoryHandler struct {
	storyService *service.StoryService
	validator    *utils.Validator
}

func NewStoryHandler(storyService *service.StoryService, validator *utils.Validator) *StoryHandler {
	return &StoryHandler{
		storyService: storyService,
		validator:    validator,
	}
}

func (h *StoryHandler) List(c *fiber.Ctx) error {
	page, err := h.storyService.List(c.Query("email"), c.Query("search"), utils.ParsePagination(c, utils.DefaultLimit))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(models.SuccessResponse(page, ""))
}

func (h *StoryHandler) Random(c *fiber.Ctx) error {
	stories, err := h.storyService.Random(c.QueryInt("size", service.DefaultRandomSize))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(models.SuccessResponse(stories, ""))
}

func (h *StoryHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	story, err := h.storyService.Get(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(models.SuccessResponse(story, ""))
}

func (h *StoryHandler) Create(c *fiber.Ctx) error {
	var req models.CreateStoryRequest
	if err := bindAndValidate(c, h.validator, &req); err != nil {
		return respondError(c, err)
	}

	story, err := h.storyService.Create(req, actor(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(story, "Story created"))
}

func (h *StoryHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var req models.UpdateStoryRequest
	if err := bindAndValidate(c, h.validator, &req); err != nil {
		return respondError(c, err)
	}

	story, err := h.storyService.Update(c.UserContext(), id, req, actor(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(models.SuccessResponse(story, "Story updated"))
}

func (h *StoryHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	if err := h.storyService.Delete(c.UserContext(), id, actor(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(models.SuccessResponse(nil, "Story deleted"))
}

// UploadImages accepts multipart "images" fields and returns their public URLs.
func (h *StoryHandler) UploadImages(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return respondError(c, fmt.Errorf("Invalid multipart form: %w", service.ErrBadRequest))
	}

	headers := form.File["images"]
	uploads := make([]service.ImageUpload, 0, len(headers))
	for _, fh := range headers {
		file, err := fh.Open()
		if err != nil {
			return err
		}
		defer func(f multipart.File) { f.Close() }(file)

		uploads = append(uploads, service.ImageUpload{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get(fiber.HeaderContentType),
			Size:        fh.Size,
			Body:        file,
		})
	}

	urls, err := h.storyService.UploadImages(c.UserContext(), uploads)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(fiber.Map{"urls": urls}, "Images uploaded"))
}
