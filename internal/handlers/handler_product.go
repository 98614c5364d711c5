package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/tahina-mg/pos_management_app/internal/core/ports/services"
	"github.com/tahina-mg/pos_management_app/internal/dto"
)

// productHandler handles product catalog requests.
type productHandler struct {
	service portssvc.ProductSvcFacade
}

func newProductHandler(service portssvc.ProductSvcFacade) *productHandler {
	return &productHandler{service: service}
}

func registerProductRoutes(group *gin.RouterGroup, service portssvc.ProductSvcFacade) {
	h := newProductHandler(service)
	products := group.Group("/products")
	{
		products.POST("", h.createProduct)
		products.GET("/:id", h.getProduct)
		products.PUT("/:id", h.updateProduct)
		products.POST("/:id/validate", h.validateProduct)
		products.GET("/:id/prices", h.listPriceHistory)
	}
	categories := group.Group("/categories")
	{
		categories.POST("", h.createCategory)
		categories.PUT("/:id", h.updateCategory)
		categories.DELETE("/:id", h.deleteCategory)
	}
	group.GET("/areas/:id/products", h.listProducts)
	group.GET("/areas/:id/categories", h.listCategories)
}

// createProduct godoc
// @Summary Create a new product
// @Description Creates a product in PENDING state with zero stock.
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param product body dto.CreateProductRequest true "Product Info"
// @Success 201 {object} dto.ProductResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Reference already exists"
// @Failure 500 {object} ErrorResponse
// @Router /products [post]
func (h *productHandler) createProduct(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req dto.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	product, err := h.service.CreateProduct(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "Failed to create product")
		return
	}
	c.JSON(http.StatusCreated, dto.ToProductResponse(product))
}

// getProduct godoc
// @Summary Get product by ID
// @Tags products
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Success 200 {object} dto.ProductResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /products/{id} [get]
func (h *productHandler) getProduct(c *gin.Context) {
	product, err := h.service.GetProductByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve product")
		return
	}
	c.JSON(http.StatusOK, dto.ToProductResponse(product))
}

// listProducts godoc
// @Summary List products for an area
// @Tags products
// @Produce json
// @Security BearerAuth
// @Param id path string true "Area ID"
// @Param skip query int false "Items to skip"
// @Param limit query int false "Page size"
// @Success 200 {object} dto.ListProductsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /areas/{id}/products [get]
func (h *productHandler) listProducts(c *gin.Context) {
	var params dto.ListProductsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.service.ListProducts(c.Request.Context(), c.Param("id"), params)
	if err != nil {
		respondError(c, err, "Failed to list products")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// updateProduct godoc
// @Summary Update product details
// @Description Updates a product. Price changes are recorded in the price history.
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Param product body dto.UpdateProductRequest true "Fields to update"
// @Success 200 {object} dto.ProductResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /products/{id} [put]
func (h *productHandler) updateProduct(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	product, err := h.service.UpdateProduct(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to update product")
		return
	}
	c.JSON(http.StatusOK, dto.ToProductResponse(product))
}

// validateProduct godoc
// @Summary Review a pending product
// @Description Moves a PENDING product to VALIDATED or REJECTED.
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Param decision body dto.ValidateProductRequest true "Review decision"
// @Success 200 {object} dto.ProductResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Product is not pending review"
// @Failure 500 {object} ErrorResponse
// @Router /products/{id}/validate [post]
func (h *productHandler) validateProduct(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req dto.ValidateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	product, err := h.service.ValidateProduct(c.Request.Context(), c.Param("id"), req.Approve, userID)
	if err != nil {
		respondError(c, err, "Failed to review product")
		return
	}
	c.JSON(http.StatusOK, dto.ToProductResponse(product))
}

// createCategory godoc
// @Summary Create a product category
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param category body dto.CreateCategoryRequest true "Category Info"
// @Success 201 {object} domain.ProductCategory
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Category name already exists in the area"
// @Failure 500 {object} ErrorResponse
// @Router /categories [post]
func (h *productHandler) createCategory(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	category, err := h.service.CreateCategory(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "Failed to create category")
		return
	}
	c.JSON(http.StatusCreated, category)
}

// updateCategory godoc
// @Summary Rename a product category
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Category ID"
// @Param category body dto.UpdateCategoryRequest true "New name"
// @Success 200 {object} domain.ProductCategory
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /categories/{id} [put]
func (h *productHandler) updateCategory(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	category, err := h.service.UpdateCategory(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to update category")
		return
	}
	c.JSON(http.StatusOK, category)
}

// deleteCategory godoc
// @Summary Delete a product category
// @Description Removes a category. Products keep their rows with the category reference cleared.
// @Tags products
// @Security BearerAuth
// @Param id path string true "Category ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /categories/{id} [delete]
func (h *productHandler) deleteCategory(c *gin.Context) {
	if _, ok := mustUserID(c); !ok {
		return
	}

	if err := h.service.DeleteCategory(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete category")
		return
	}
	c.Status(http.StatusNoContent)
}

// listCategories godoc
// @Summary List product categories of an area
// @Tags products
// @Produce json
// @Security BearerAuth
// @Param id path string true "Area ID"
// @Success 200 {array} domain.ProductCategory
// @Failure 500 {object} ErrorResponse
// @Router /areas/{id}/categories [get]
func (h *productHandler) listCategories(c *gin.Context) {
	categories, err := h.service.ListCategories(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to list categories")
		return
	}
	c.JSON(http.StatusOK, categories)
}

// listPriceHistory godoc
// @Summary List price changes of a product
// @Tags products
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Success 200 {array} dto.PriceHistoryResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /products/{id}/prices [get]
func (h *productHandler) listPriceHistory(c *gin.Context) {
	history, err := h.service.ListPriceHistory(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve price history")
		return
	}

	responses := make([]dto.PriceHistoryResponse, len(history))
	for i := range history {
		responses[i] = dto.ToPriceHistoryResponse(&history[i])
	}
	c.JSON(http.StatusOK, responses)
}
