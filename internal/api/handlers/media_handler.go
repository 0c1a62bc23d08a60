package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/marafield/brandops/internal/service"
)

type MediaHandler struct {
	s service.MediaService
	b service.BrandService
}

func NewMediaHandler(s service.MediaService, b service.BrandService) *MediaHandler {
	return &MediaHandler{s: s, b: b}
}

func (h *MediaHandler) UploadMedia(c *fiber.Ctx) error {
	brandID := c.QueryInt("brand_id", 0)

	brand, err := h.b.BrandInfo(c.Context(), int64(brandID))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	file, err := c.FormFile("file")
	if err != nil {
		slog.Error(err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse form",
		})
	}

	asset, err := h.s.Upload(c.Context(), brand, file)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(asset)
}

func (h *MediaHandler) ListMedia(c *fiber.Ctx) error {
	brandID := c.QueryInt("brand_id", 0)

	assets, err := h.s.List(c.Context(), int64(brandID))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to list media",
		})
	}

	return c.Status(fiber.StatusOK).JSON(assets)
}

func (h *MediaHandler) RemoveMedia(c *fiber.Ctx) error {
	brandID := c.QueryInt("brand_id", 0)
	assetID := c.QueryInt("id", 0)

	err := h.s.Remove(c.Context(), int64(brandID), int64(assetID))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to remove media",
		})
	}

	return c.SendStatus(fiber.StatusOK)
}
