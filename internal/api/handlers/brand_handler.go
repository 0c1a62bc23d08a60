package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/marafield/brandops/internal/service"
)

type BrandHandler struct {
	s    service.BrandService
	meta service.MetaService
}

func NewBrandHandler(s service.BrandService, meta service.MetaService) *BrandHandler {
	return &BrandHandler{s: s, meta: meta}
}

func (h *BrandHandler) ListBrands(c *fiber.Ctx) error {
	brands, err := h.s.List(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to list brands",
		})
	}

	return c.Status(fiber.StatusOK).JSON(brands)
}

func (h *BrandHandler) BrandInfo(c *fiber.Ctx) error {
	brandID := c.QueryInt("id", 0)
	if brandID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Brand id is required",
		})
	}

	brand, err := h.s.BrandWithAccounts(c.Context(), int64(brandID))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(brand)
}

// ConnectMeta starts the OAuth dialog for connecting a brand's Facebook
// page and Instagram account. The brand id rides through the state
// parameter.
func (h *BrandHandler) ConnectMeta(c *fiber.Ctx) error {
	brandID := c.QueryInt("brand_id", 0)
	if brandID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Brand id is required",
		})
	}

	return c.Redirect(h.meta.GetAuthURL(strconv.Itoa(brandID)))
}

func (h *BrandHandler) MetaCallback(c *fiber.Ctx) error {
	code := c.Query("code")
	state := c.Query("state")

	brandID, err := strconv.ParseInt(state, 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid state",
		})
	}

	if err := h.meta.ConnectCallback(c.Context(), code, brandID); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Accounts connected successfully",
	})
}

func (h *BrandHandler) SetAccountActive(c *fiber.Ctx) error {
	brandID := c.QueryInt("brand_id", 0)
	accountID := c.QueryInt("account_id", 0)
	active := c.QueryBool("active", true)

	err := h.s.SetAccountActive(c.Context(), int64(brandID), int64(accountID), active)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.SendStatus(fiber.StatusOK)
}

func (h *BrandHandler) DisconnectAccount(c *fiber.Ctx) error {
	brandID := c.QueryInt("brand_id", 0)
	accountID := c.QueryInt("account_id", 0)

	err := h.s.DisconnectAccount(c.Context(), int64(brandID), int64(accountID))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.SendStatus(fiber.StatusOK)
}
