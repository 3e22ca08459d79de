package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/garmentdb/internal/services"
	"github.com/localnerve/garmentdb/internal/utils"
	"gorm.io/gorm"
)

// ProductHandler handles catalog product routes
type ProductHandler struct {
	DB *gorm.DB
}

// List handles GET /api/products
// @Summary List catalog products
// @Tags Products
// @Produce json
// @Success 200 {array} models.Product
// @Router /products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	products, err := services.ListProducts(h.DB)
	if err != nil {
		return fail(c, err, "listProducts")
	}
	return utils.SuccessResponse(c, products, fiber.StatusOK)
}

// Categories handles GET /api/products/categories
// @Summary List product categories in use
// @Tags Products
// @Produce json
// @Success 200 {array} string
// @Router /products/categories [get]
func (h *ProductHandler) Categories(c *fiber.Ctx) error {
	categories, err := services.ProductCategories(h.DB)
	if err != nil {
		return fail(c, err, "productCategories")
	}
	return utils.SuccessResponse(c, categories, fiber.StatusOK)
}

// ByCategory handles GET /api/products/category/:category
// @Summary List products of one category
// @Tags Products
// @Produce json
// @Param category path string true "Category"
// @Success 200 {array} models.Product
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /products/category/{category} [get]
func (h *ProductHandler) ByCategory(c *fiber.Ctx) error {
	products, err := services.ProductsByCategory(h.DB, c.Params("category"))
	if err != nil {
		return fail(c, err, "productsByCategory")
	}
	return utils.SuccessResponse(c, products, fiber.StatusOK)
}

// BySKU handles GET /api/products/sku/:sku
// @Summary Get a product by SKU
// @Tags Products
// @Produce json
// @Param sku path string true "SKU"
// @Success 200 {object} models.Product
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /products/sku/{sku} [get]
func (h *ProductHandler) BySKU(c *fiber.Ctx) error {
	product, err := services.GetProductBySKU(h.DB, c.Params("sku"))
	if err != nil {
		return fail(c, err, "productBySKU")
	}
	return utils.SuccessResponse(c, product, fiber.StatusOK)
}

// Create handles POST /api/products
// @Summary Create a product
// @Tags Products
// @Accept json
// @Produce json
// @Param input body services.ProductInput true "Product fields"
// @Success 201 {object} models.Product
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var input services.ProductInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, "Invalid request body", fiber.StatusBadRequest, "validation")
	}

	product, err := services.CreateProduct(h.DB, &input)
	if err != nil {
		return fail(c, err, "createProduct")
	}
	return utils.SuccessResponse(c, product, fiber.StatusCreated)
}

// Get handles GET /api/products/:id
// @Summary Get one product
// @Tags Products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} models.Product
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /products/{id} [get]
func (h *ProductHandler) Get(c *fiber.Ctx) error {
	product, err := services.GetProduct(h.DB, c.Params("id"))
	if err != nil {
		return fail(c, err, "getProduct")
	}
	return utils.SuccessResponse(c, product, fiber.StatusOK)
}

// Update handles PUT /api/products/:id
// @Summary Update a product
// @Tags Products
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param input body services.ProductInput true "Product fields"
// @Success 200 {object} models.Product
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /products/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var input services.ProductInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, "Invalid request body", fiber.StatusBadRequest, "validation")
	}

	product, err := services.UpdateProduct(h.DB, c.Params("id"), &input)
	if err != nil {
		return fail(c, err, "updateProduct")
	}
	return utils.SuccessResponse(c, product, fiber.StatusOK)
}

// Delete handles DELETE /api/products/:id
// @Summary Delete a product
// @Tags Products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} utils.MessageResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /products/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	if err := services.DeleteProduct(h.DB, c.Params("id")); err != nil {
		return fail(c, err, "deleteProduct")
	}
	return utils.MessageResponse(c, "Product deleted successfully")
}
