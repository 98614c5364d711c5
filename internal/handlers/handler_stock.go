package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	portssvc "github.com/tahina-mg/pos_management_app/internal/core/ports/services"
	"github.com/tahina-mg/pos_management_app/internal/dto"
)

// stockHandler handles stock ledger requests.
type stockHandler struct {
	service portssvc.StockSvcFacade
}

func newStockHandler(service portssvc.StockSvcFacade) *stockHandler {
	return &stockHandler{service: service}
}

func registerStockRoutes(group *gin.RouterGroup, service portssvc.StockSvcFacade) {
	h := newStockHandler(service)
	movements := group.Group("/stock-movements")
	{
		movements.POST("", h.createMovement)
		movements.GET("", h.listMovements)
		movements.GET("/:id", h.getMovement)
		movements.POST("/:id/cancel", h.cancelMovement)
	}
	group.POST("/products/:id/stock-check", h.checkProductStock)
}

// createMovement godoc
// @Summary Record a stock movement
// @Description Records a movement and applies its signed quantity to the product stock atomically.
// @Tags stock
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param movement body dto.CreateMovementRequest true "Movement Info"
// @Success 201 {object} dto.MovementResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse "Stock would go negative"
// @Failure 500 {object} ErrorResponse
// @Router /stock-movements [post]
func (h *stockHandler) createMovement(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req dto.CreateMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	movement, err := h.service.CreateMovement(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "Failed to record movement")
		return
	}
	c.JSON(http.StatusCreated, dto.ToMovementResponse(movement))
}

// getMovement godoc
// @Summary Get stock movement by ID
// @Tags stock
// @Produce json
// @Security BearerAuth
// @Param id path string true "Movement ID"
// @Success 200 {object} dto.MovementResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /stock-movements/{id} [get]
func (h *stockHandler) getMovement(c *gin.Context) {
	movement, err := h.service.GetMovementByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve movement")
		return
	}
	c.JSON(http.StatusOK, dto.ToMovementResponse(movement))
}

// listMovements godoc
// @Summary List stock movements for a product
// @Description Returns the movement history newest first, with cursor pagination.
// @Tags stock
// @Produce json
// @Security BearerAuth
// @Param productID query string true "Product ID"
// @Param areaID query string false "Area ID"
// @Param dateBegin query string false "Start date (YYYY-MM-DD)"
// @Param dateEnd query string false "End date (YYYY-MM-DD)"
// @Param limit query int false "Page size"
// @Param nextToken query string false "Pagination cursor"
// @Success 200 {object} dto.ListMovementsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /stock-movements [get]
func (h *stockHandler) listMovements(c *gin.Context) {
	var params dto.ListMovementsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.service.ListMovements(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "Failed to list movements")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// cancelMovement godoc
// @Summary Cancel a stock movement
// @Description Reverses a movement recorded earlier the same day with a reversing entry. The original row is kept for audit.
// @Tags stock
// @Produce json
// @Security BearerAuth
// @Param id path string true "Movement ID"
// @Success 200 {object} dto.MovementResponse "The reversing movement"
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Already cancelled or too old to cancel"
// @Failure 422 {object} ErrorResponse "Reversal would drive stock negative"
// @Failure 500 {object} ErrorResponse
// @Router /stock-movements/{id}/cancel [post]
func (h *stockHandler) cancelMovement(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	reversal, err := h.service.CancelMovement(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, err, "Failed to cancel movement")
		return
	}
	c.JSON(http.StatusOK, dto.ToMovementResponse(reversal))
}

// checkProductStock godoc
// @Summary Check a product's stock against its movement history
// @Description Recomputes the stock from the full ledger and reports any drift. With repair=true the stored value is corrected.
// @Tags stock
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Param repair query bool false "Repair drift when found"
// @Success 200 {object} dto.StockCheckResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /products/{id}/stock-check [post]
func (h *stockHandler) checkProductStock(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	repair, _ := strconv.ParseBool(c.DefaultQuery("repair", "false"))
	resp, err := h.service.CheckProductStock(c.Request.Context(), c.Param("id"), repair, userID)
	if err != nil {
		respondError(c, err, "Failed to check product stock")
		return
	}
	c.JSON(http.StatusOK, resp)
}
