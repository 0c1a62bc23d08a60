package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/marafield/brandops/internal/service"
)

type EmailHandler struct {
	s service.EmailService
}

func NewEmailHandler(service service.EmailService) *EmailHandler {
	return &EmailHandler{s: service}
}

type campaignRequest struct {
	Recipients []string `json:"recipients"`
	Subject    string   `json:"subject"`
	Body       string   `json:"body"`
}

func (h *EmailHandler) SendCampaign(c *fiber.Ctx) error {
	var req campaignRequest
	if err := c.BodyParser(&req); err != nil {
		slog.Error(err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request body",
		})
	}

	sent, err := h.s.SendCampaign(c.Context(), req.Recipients, req.Subject, req.Body)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Campaign sent",
		"sent":    sent,
	})
}
