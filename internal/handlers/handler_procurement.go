package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/tahina-mg/pos_management_app/internal/core/ports/services"
	"github.com/tahina-mg/pos_management_app/internal/dto"
)

// procurementHandler handles purchase request, order, sale and partner
// requests.
type procurementHandler struct {
	service portssvc.ProcurementSvcFacade
}

func newProcurementHandler(service portssvc.ProcurementSvcFacade) *procurementHandler {
	return &procurementHandler{service: service}
}

func registerProcurementRoutes(group *gin.RouterGroup, service portssvc.ProcurementSvcFacade) {
	h := newProcurementHandler(service)

	requests := group.Group("/purchase-requests")
	{
		requests.POST("", h.createPurchaseRequest)
		requests.GET("/:id", h.getPurchaseRequest)
		requests.PUT("/:id/grant", h.grantPurchaseRequestLines)
		requests.POST("/:id/deliver", h.deliverPurchaseRequest)
		requests.PUT("/:id/status", h.setPurchaseRequestStatus)
	}
	group.GET("/areas/:id/purchase-requests", h.listPurchaseRequests)

	orders := group.Group("/orders")
	{
		orders.POST("", h.createOrder)
		orders.GET("/:id", h.getOrder)
		orders.POST("/:id/deliver", h.deliverOrder)
		orders.PUT("/:id/status", h.setOrderStatus)
	}
	group.GET("/areas/:id/orders", h.listOrders)

	sales := group.Group("/sales")
	{
		sales.POST("", h.createSale)
		sales.GET("/:id", h.getSale)
		sales.POST("/:id/deliver", h.deliverSale)
		sales.POST("/:id/reject", h.rejectSale)
	}
	group.GET("/areas/:id/sales", h.listSales)

	customers := group.Group("/customers")
	{
		customers.POST("", h.createCustomer)
		customers.GET("", h.listCustomers)
		customers.GET("/:id", h.getCustomer)
		customers.PUT("/:id", h.updateCustomer)
	}

	suppliers := group.Group("/suppliers")
	{
		suppliers.POST("", h.createSupplier)
		suppliers.GET("", h.listSuppliers)
		suppliers.GET("/:id", h.getSupplier)
		suppliers.PUT("/:id", h.updateSupplier)
	}
}

// createPurchaseRequest godoc
// @Summary Raise a purchase request
// @Description Creates a supply request with its detail lines in OPENED status.
// @Tags procurement
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreatePurchaseRequestRequest true "Request Info"
// @Success 201 {object} domain.PurchaseRequest
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /purchase-requests [post]
func (h *procurementHandler) createPurchaseRequest(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req dto.CreatePurchaseRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	request, err := h.service.CreatePurchaseRequest(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "Failed to create purchase request")
		return
	}
	c.JSON(http.StatusCreated, request)
}

// getPurchaseRequest godoc
// @Summary Get purchase request by ID
// @Tags procurement
// @Produce json
// @Security BearerAuth
// @Param id path string true "Purchase Request ID"
// @Success 200 {object} domain.PurchaseRequest
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /purchase-requests/{id} [get]
func (h *procurementHandler) getPurchaseRequest(c *gin.Context) {
	request, err := h.service.GetPurchaseRequestByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve purchase request")
		return
	}
	c.JSON(http.StatusOK, request)
}

// listPurchaseRequests godoc
// @Summary List purchase requests for an area
// @Tags procurement
// @Produce json
// @Security BearerAuth
// @Param id path string true "Area ID"
// @Param dateBegin query string false "Start date (YYYY-MM-DD)"
// @Param dateEnd query string false "End date (YYYY-MM-DD)"
// @Param skip query int false "Items to skip"
// @Param limit query int false "Page size"
// @Success 200 {array} domain.PurchaseRequest
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /areas/{id}/purchase-requests [get]
func (h *procurementHandler) listPurchaseRequests(c *gin.Context) {
	var params dto.ListProcurementParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	requests, err := h.service.ListPurchaseRequests(c.Request.Context(), c.Param("id"), params)
	if err != nil {
		respondError(c, err, "Failed to list purchase requests")
		return
	}
	c.JSON(http.StatusOK, requests)
}

// grantPurchaseRequestLines godoc
// @Summary Grant quantities on a purchase request
// @Description Records the granted quantity per line ahead of delivery.
// @Tags procurement
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Purchase Request ID"
// @Param lines body dto.GrantLinesRequest true "Granted quantities"
// @Success 200 {object} domain.PurchaseRequest
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Request is final"
// @Failure 500 {object} ErrorResponse
// @Router /purchase-requests/{id}/grant [put]
func (h *procurementHandler) grantPurchaseRequestLines(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req dto.GrantLinesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	request, err := h.service.GrantPurchaseRequestLines(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to grant purchase request lines")
		return
	}
	c.JSON(http.StatusOK, request)
}

// deliverPurchaseRequest godoc
// @Summary Deliver a purchase request
// @Description Moves the request to DELIVERED and records one SUPPLY movement per granted line. Redelivery skips lines that already bear a movement.
// @Tags procurement
// @Produce json
// @Security BearerAuth
// @Param id path string true "Purchase Request ID"
// @Success 200 {object} domain.PurchaseRequest
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Request is not deliverable"
// @Failure 500 {object} ErrorResponse
// @Router /purchase-requests/{id}/deliver [post]
func (h *procurementHandler) deliverPurchaseRequest(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	request, err := h.service.DeliverPurchaseRequest(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, err, "Failed to deliver purchase request")
		return
	}
	c.JSON(http.StatusOK, request)
}

// setPurchaseRequestStatus godoc
// @Summary Transition a purchase request
// @Tags procurement
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Purchase Request ID"
// @Param status body dto.SetRequestStatusRequest true "Target status"
// @Success 200 {object} domain.PurchaseRequest
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Transition not allowed"
// @Failure 500 {object} ErrorResponse
// @Router /purchase-requests/{id}/status [put]
func (h *procurementHandler) setPurchaseRequestStatus(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req dto.SetRequestStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	request, err := h.service.SetPurchaseRequestStatus(c.Request.Context(), c.Param("id"), req.Status, userID)
	if err != nil {
		respondError(c, err, "Failed to update purchase request status")
		return
	}
	c.JSON(http.StatusOK, request)
}

// createOrder godoc
// @Summary Record a customer order
// @Tags procurement
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param order body dto.CreateOrderRequest true "Order Info"
// @Success 201 {object} domain.Order
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /orders [post]
func (h *procurementHandler) createOrder(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	order, err := h.service.CreateOrder(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "Failed to create order")
		return
	}
	c.JSON(http.StatusCreated, order)
}

// getOrder godoc
// @Summary Get order by ID
// @Tags procurement
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 200 {object} domain.Order
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /orders/{id} [get]
func (h *procurementHandler) getOrder(c *gin.Context) {
	order, err := h.service.GetOrderByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve order")
		return
	}
	c.JSON(http.StatusOK, order)
}

// listOrders godoc
// @Summary List orders for an area
// @Tags procurement
// @Produce json
// @Security BearerAuth
// @Param id path string true "Area ID"
// @Param dateBegin query string false "Start date (YYYY-MM-DD)"
// @Param dateEnd query string false "End date (YYYY-MM-DD)"
// @Param skip query int false "Items to skip"
// @Param limit query int false "Page size"
// @Success 200 {array} domain.Order
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /areas/{id}/orders [get]
func (h *procurementHandler) listOrders(c *gin.Context) {
	var params dto.ListProcurementParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	orders, err := h.service.ListOrders(c.Request.Context(), c.Param("id"), params)
	if err != nil {
		respondError(c, err, "Failed to list orders")
		return
	}
	c.JSON(http.StatusOK, orders)
}

// deliverOrder godoc
// @Summary Deliver an order
// @Description Moves the order to DELIVERED and records one SUPPLY movement per line, idempotently.
// @Tags procurement
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 200 {object} domain.Order
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Order is not deliverable"
// @Failure 500 {object} ErrorResponse
// @Router /orders/{id}/deliver [post]
func (h *procurementHandler) deliverOrder(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	order, err := h.service.DeliverOrder(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, err, "Failed to deliver order")
		return
	}
	c.JSON(http.StatusOK, order)
}

// setOrderStatus godoc
// @Summary Transition an order
// @Tags procurement
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Param status body dto.SetRequestStatusRequest true "Target status"
// @Success 200 {object} domain.Order
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Transition not allowed"
// @Failure 500 {object} ErrorResponse
// @Router /orders/{id}/status [put]
func (h *procurementHandler) setOrderStatus(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req dto.SetRequestStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	order, err := h.service.SetOrderStatus(c.Request.Context(), c.Param("id"), req.Status, userID)
	if err != nil {
		respondError(c, err, "Failed to update order status")
		return
	}
	c.JSON(http.StatusOK, order)
}

// createSale godoc
// @Summary Record a sale
// @Description Creates a sale with its detail lines in PENDING status. Stock moves at delivery.
// @Tags procurement
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param sale body dto.CreateSaleRequest true "Sale Info"
// @Success 201 {object} domain.Sale
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /sales [post]
func (h *procurementHandler) createSale(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req dto.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	sale, err := h.service.CreateSale(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "Failed to create sale")
		return
	}
	c.JSON(http.StatusCreated, sale)
}

// getSale godoc
// @Summary Get sale by ID
// @Tags procurement
// @Produce json
// @Security BearerAuth
// @Param id path string true "Sale ID"
// @Success 200 {object} domain.Sale
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /sales/{id} [get]
func (h *procurementHandler) getSale(c *gin.Context) {
	sale, err := h.service.GetSaleByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve sale")
		return
	}
	c.JSON(http.StatusOK, sale)
}

// listSales godoc
// @Summary List sales for an area
// @Tags procurement
// @Produce json
// @Security BearerAuth
// @Param id path string true "Area ID"
// @Param dateBegin query string false "Start date (YYYY-MM-DD)"
// @Param dateEnd query string false "End date (YYYY-MM-DD)"
// @Param skip query int false "Items to skip"
// @Param limit query int false "Page size"
// @Success 200 {array} domain.Sale
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /areas/{id}/sales [get]
func (h *procurementHandler) listSales(c *gin.Context) {
	var params dto.ListProcurementParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	sales, err := h.service.ListSales(c.Request.Context(), c.Param("id"), params)
	if err != nil {
		respondError(c, err, "Failed to list sales")
		return
	}
	c.JSON(http.StatusOK, sales)
}

// deliverSale godoc
// @Summary Deliver a sale
// @Description Moves the sale to DELIVERED and records one SALE movement per line, idempotently. Fails when a line would drive stock negative.
// @Tags procurement
// @Produce json
// @Security BearerAuth
// @Param id path string true "Sale ID"
// @Success 200 {object} domain.Sale
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Sale is not deliverable"
// @Failure 422 {object} ErrorResponse "Insufficient stock"
// @Failure 500 {object} ErrorResponse
// @Router /sales/{id}/deliver [post]
func (h *procurementHandler) deliverSale(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	sale, err := h.service.DeliverSale(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, err, "Failed to deliver sale")
		return
	}
	c.JSON(http.StatusOK, sale)
}

// rejectSale godoc
// @Summary Reject a sale
// @Description Moves a PENDING sale to REJECTED without touching stock.
// @Tags procurement
// @Produce json
// @Security BearerAuth
// @Param id path string true "Sale ID"
// @Success 200 {object} domain.Sale
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Sale is not pending"
// @Failure 500 {object} ErrorResponse
// @Router /sales/{id}/reject [post]
func (h *procurementHandler) rejectSale(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	sale, err := h.service.RejectSale(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, err, "Failed to reject sale")
		return
	}
	c.JSON(http.StatusOK, sale)
}

// createCustomer godoc
// @Summary Register a customer
// @Tags partners
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param customer body dto.CreateCustomerRequest true "Customer Info"
// @Success 201 {object} domain.Customer
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /customers [post]
func (h *procurementHandler) createCustomer(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req dto.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	customer, err := h.service.CreateCustomer(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "Failed to create customer")
		return
	}
	c.JSON(http.StatusCreated, customer)
}

// getCustomer godoc
// @Summary Get customer by ID
// @Tags partners
// @Produce json
// @Security BearerAuth
// @Param id path string true "Customer ID"
// @Success 200 {object} domain.Customer
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /customers/{id} [get]
func (h *procurementHandler) getCustomer(c *gin.Context) {
	customer, err := h.service.GetCustomerByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve customer")
		return
	}
	c.JSON(http.StatusOK, customer)
}

// listCustomers godoc
// @Summary List customers
// @Tags partners
// @Produce json
// @Security BearerAuth
// @Param skip query int false "Items to skip"
// @Param limit query int false "Page size"
// @Success 200 {array} domain.Customer
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /customers [get]
func (h *procurementHandler) listCustomers(c *gin.Context) {
	var params dto.ListPartnersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	customers, err := h.service.ListCustomers(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "Failed to list customers")
		return
	}
	c.JSON(http.StatusOK, customers)
}

// updateCustomer godoc
// @Summary Update customer details
// @Tags partners
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Customer ID"
// @Param customer body dto.UpdateCustomerRequest true "Fields to update"
// @Success 200 {object} domain.Customer
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /customers/{id} [put]
func (h *procurementHandler) updateCustomer(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	customer, err := h.service.UpdateCustomer(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to update customer")
		return
	}
	c.JSON(http.StatusOK, customer)
}

// createSupplier godoc
// @Summary Register a supplier
// @Tags partners
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param supplier body dto.CreateSupplierRequest true "Supplier Info"
// @Success 201 {object} domain.Supplier
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /suppliers [post]
func (h *procurementHandler) createSupplier(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req dto.CreateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	supplier, err := h.service.CreateSupplier(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "Failed to create supplier")
		return
	}
	c.JSON(http.StatusCreated, supplier)
}

// getSupplier godoc
// @Summary Get supplier by ID
// @Tags partners
// @Produce json
// @Security BearerAuth
// @Param id path string true "Supplier ID"
// @Success 200 {object} domain.Supplier
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /suppliers/{id} [get]
func (h *procurementHandler) getSupplier(c *gin.Context) {
	supplier, err := h.service.GetSupplierByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve supplier")
		return
	}
	c.JSON(http.StatusOK, supplier)
}

// listSuppliers godoc
// @Summary List suppliers
// @Tags partners
// @Produce json
// @Security BearerAuth
// @Param skip query int false "Items to skip"
// @Param limit query int false "Page size"
// @Success 200 {array} domain.Supplier
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /suppliers [get]
func (h *procurementHandler) listSuppliers(c *gin.Context) {
	var params dto.ListPartnersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	suppliers, err := h.service.ListSuppliers(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "Failed to list suppliers")
		return
	}
	c.JSON(http.StatusOK, suppliers)
}

// updateSupplier godoc
// @Summary Update supplier details
// @Tags partners
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Supplier ID"
// @Param supplier body dto.UpdateSupplierRequest true "Fields to update"
// @Success 200 {object} domain.Supplier
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /suppliers/{id} [put]
func (h *procurementHandler) updateSupplier(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	supplier, err := h.service.UpdateSupplier(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to update supplier")
		return
	}
	c.JSON(http.StatusOK, supplier)
}
