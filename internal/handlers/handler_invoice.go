package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/tahina-mg/pos_management_app/internal/core/ports/services"
	"github.com/tahina-mg/pos_management_app/internal/dto"
)

// invoiceHandler handles invoice and settlement requests.
type invoiceHandler struct {
	service portssvc.InvoiceSvcFacade
}

func newInvoiceHandler(service portssvc.InvoiceSvcFacade) *invoiceHandler {
	return &invoiceHandler{service: service}
}

func registerInvoiceRoutes(group *gin.RouterGroup, service portssvc.InvoiceSvcFacade) {
	h := newInvoiceHandler(service)
	invoices := group.Group("/invoices")
	{
		invoices.POST("", h.createInvoice)
		invoices.GET("/:id", h.getInvoice)
		invoices.PUT("/:id/lines", h.updateInvoiceLines)
		invoices.POST("/:id/payments", h.addPayment)
		invoices.PUT("/:id/status", h.setInvoiceStatus)
	}
	group.GET("/areas/:id/invoices", h.listInvoices)
	group.GET("/payment-methods", h.listPaymentMethods)
	group.POST("/purchase-requests/:id/invoice", h.createInvoiceFromPurchase)
	group.POST("/orders/:id/invoice", h.createInvoiceFromOrder)
}

// createInvoiceFromPurchase godoc
// @Summary Create an incoming invoice from a purchase request
// @Description Copies the purchase request lines into a new IN invoice linked to it. Granted quantities become the confirmed quantities.
// @Tags invoices
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Purchase Request ID"
// @Param invoice body dto.InvoiceFromPurchaseRequest true "Supplier and optional reference"
// @Success 201 {object} dto.InvoiceResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Purchase request is rejected"
// @Failure 500 {object} ErrorResponse
// @Router /purchase-requests/{id}/invoice [post]
func (h *invoiceHandler) createInvoiceFromPurchase(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req dto.InvoiceFromPurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	invoice, err := h.service.CreateInvoiceFromPurchase(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to create invoice from purchase request")
		return
	}
	c.JSON(http.StatusCreated, invoice)
}

// createInvoiceFromOrder godoc
// @Summary Create an outgoing invoice from a customer order
// @Description Copies the order lines into a new OUT invoice billed to the order's customer.
// @Tags invoices
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Param invoice body dto.InvoiceFromOrderRequest true "Optional reference"
// @Success 201 {object} dto.InvoiceResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Order is rejected"
// @Failure 500 {object} ErrorResponse
// @Router /orders/{id}/invoice [post]
func (h *invoiceHandler) createInvoiceFromOrder(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req dto.InvoiceFromOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	invoice, err := h.service.CreateInvoiceFromOrder(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to create invoice from order")
		return
	}
	c.JSON(http.StatusCreated, invoice)
}

// createInvoice godoc
// @Summary Create an invoice
// @Description Creates an invoice with its detail lines, optionally linked to a purchase request, order or sale.
// @Tags invoices
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param invoice body dto.CreateInvoiceRequest true "Invoice Info"
// @Success 201 {object} dto.InvoiceResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /invoices [post]
func (h *invoiceHandler) createInvoice(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req dto.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	invoice, err := h.service.CreateInvoice(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "Failed to create invoice")
		return
	}
	c.JSON(http.StatusCreated, invoice)
}

// getInvoice godoc
// @Summary Get invoice by ID
// @Description Returns the invoice with lines, payments and derived amounts.
// @Tags invoices
// @Produce json
// @Security BearerAuth
// @Param id path string true "Invoice ID"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /invoices/{id} [get]
func (h *invoiceHandler) getInvoice(c *gin.Context) {
	invoice, err := h.service.GetInvoiceByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve invoice")
		return
	}
	c.JSON(http.StatusOK, invoice)
}

// listInvoices godoc
// @Summary List invoices for an area
// @Tags invoices
// @Produce json
// @Security BearerAuth
// @Param id path string true "Area ID"
// @Param type query string false "Invoice type (IN or OUT)"
// @Param dateBegin query string false "Start date (YYYY-MM-DD)"
// @Param dateEnd query string false "End date (YYYY-MM-DD)"
// @Param skip query int false "Items to skip"
// @Param limit query int false "Page size"
// @Success 200 {object} dto.ListInvoicesResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /areas/{id}/invoices [get]
func (h *invoiceHandler) listInvoices(c *gin.Context) {
	var params dto.ListInvoicesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.service.ListInvoices(c.Request.Context(), c.Param("id"), params)
	if err != nil {
		respondError(c, err, "Failed to list invoices")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// updateInvoiceLines godoc
// @Summary Replace the detail lines of an invoice
// @Description Replaces the lines of a non-final invoice. Derived amounts are recomputed.
// @Tags invoices
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Invoice ID"
// @Param lines body dto.UpdateInvoiceLinesRequest true "New lines"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Invoice is final"
// @Failure 500 {object} ErrorResponse
// @Router /invoices/{id}/lines [put]
func (h *invoiceHandler) updateInvoiceLines(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateInvoiceLinesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	invoice, err := h.service.UpdateInvoiceLines(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to update invoice lines")
		return
	}
	c.JSON(http.StatusOK, invoice)
}

// addPayment godoc
// @Summary Record a payment against an invoice
// @Description Records a payment. The settled total never exceeds the amount to pay; settling it exactly closes the invoice. CASH payments also record a transaction on the designated register.
// @Tags invoices
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Invoice ID"
// @Param payment body dto.AddPaymentRequest true "Payment Info"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse "Overpayment or rejected invoice"
// @Failure 500 {object} ErrorResponse
// @Router /invoices/{id}/payments [post]
func (h *invoiceHandler) addPayment(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req dto.AddPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	invoice, err := h.service.AddPayment(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to record payment")
		return
	}
	c.JSON(http.StatusOK, invoice)
}

// setInvoiceStatus godoc
// @Summary Transition an invoice
// @Description Moves an invoice through its lifecycle. CLOSED requires exact settlement; REJECTED requires no recorded payment.
// @Tags invoices
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Invoice ID"
// @Param status body dto.SetInvoiceStatusRequest true "Target status"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse "Settlement invariant violated"
// @Failure 500 {object} ErrorResponse
// @Router /invoices/{id}/status [put]
func (h *invoiceHandler) setInvoiceStatus(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req dto.SetInvoiceStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	invoice, err := h.service.SetInvoiceStatus(c.Request.Context(), c.Param("id"), req.Status, userID)
	if err != nil {
		respondError(c, err, "Failed to update invoice status")
		return
	}
	c.JSON(http.StatusOK, invoice)
}

// listPaymentMethods godoc
// @Summary List supported payment methods
// @Tags invoices
// @Produce json
// @Security BearerAuth
// @Success 200 {array} string
// @Failure 500 {object} ErrorResponse
// @Router /payment-methods [get]
func (h *invoiceHandler) listPaymentMethods(c *gin.Context) {
	methods, err := h.service.ListPaymentMethods(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list payment methods")
		return
	}
	c.JSON(http.StatusOK, methods)
}
