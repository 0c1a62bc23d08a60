package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/marafield/brandops/internal/service"
	"github.com/marafield/brandops/internal/transfer"
)

type GenerateHandler struct {
	ai service.OpenAIService
	b  service.BrandService
}

func NewGenerateHandler(ai service.OpenAIService, b service.BrandService) *GenerateHandler {
	return &GenerateHandler{ai: ai, b: b}
}

func (h *GenerateHandler) GenerateCaption(c *fiber.Ctx) error {
	var req transfer.CaptionRequest
	if err := c.BodyParser(&req); err != nil {
		slog.Error(err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request body",
		})
	}

	caption, err := h.ai.GenerateCaption(c.Context(), &req)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"caption": caption,
	})
}

// GenerateImage produces an image and returns the durable media asset. The
// ephemeral provider URL never leaves the server.
func (h *GenerateHandler) GenerateImage(c *fiber.Ctx) error {
	var req transfer.ImageRequest
	if err := c.BodyParser(&req); err != nil {
		slog.Error(err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request body",
		})
	}

	brand, err := h.b.BrandInfo(c.Context(), req.BrandID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	asset, err := h.ai.GenerateImage(c.Context(), brand.Slug, &req)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(asset)
}
