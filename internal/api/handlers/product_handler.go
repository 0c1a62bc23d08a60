package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/marafield/brandops/internal/repository"
	"github.com/marafield/brandops/internal/service"
)

type ProductHandler struct {
	printify service.PrintifyService
	shopify  service.ShopifyService
	b        service.BrandService
	pr       repository.ProductRepository
}

func NewProductHandler(
	printify service.PrintifyService,
	shopify service.ShopifyService,
	b service.BrandService,
	pr repository.ProductRepository) *ProductHandler {
	return &ProductHandler{
		printify: printify,
		shopify:  shopify,
		b:        b,
		pr:       pr,
	}
}

func (h *ProductHandler) SyncCatalog(c *fiber.Ctx) error {
	brandID := c.QueryInt("brand_id", 0)
	if brandID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Brand id is required",
		})
	}

	synced, err := h.printify.SyncCatalog(c.Context(), int64(brandID))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Catalog synced",
		"synced":  synced,
	})
}

func (h *ProductHandler) ListProducts(c *fiber.Ctx) error {
	brandID := c.QueryInt("brand_id", 0)

	products, err := h.pr.ListByBrandID(c.Context(), int64(brandID))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to list products",
		})
	}

	return c.Status(fiber.StatusOK).JSON(products)
}

func (h *ProductHandler) PublishProduct(c *fiber.Ctx) error {
	brandID := c.QueryInt("brand_id", 0)
	productID := c.QueryInt("id", 0)

	brand, err := h.b.BrandInfo(c.Context(), int64(brandID))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	product, err := h.shopify.PublishProduct(c.Context(), int64(productID), brand)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(product)
}
