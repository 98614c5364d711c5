package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/tahina-mg/pos_management_app/internal/core/ports/services"
	"github.com/tahina-mg/pos_management_app/internal/dto"
)

// cashHandler handles cash register requests.
type cashHandler struct {
	service portssvc.CashSvcFacade
}

func newCashHandler(service portssvc.CashSvcFacade) *cashHandler {
	return &cashHandler{service: service}
}

func registerCashRoutes(group *gin.RouterGroup, service portssvc.CashSvcFacade) {
	h := newCashHandler(service)
	accounts := group.Group("/cash-accounts")
	{
		accounts.POST("", h.openAccount)
		accounts.GET("/:id", h.getAccount)
		accounts.POST("/:id/close", h.closeAccount)
		accounts.GET("/:id/transaction-counts", h.countTransactions)
		accounts.POST("/:id/balance-report", h.getBalanceReport)
		accounts.POST("/:id/balance", h.balanceAccount)
		accounts.POST("/:id/force-balance", h.forceBalance)
	}
	group.GET("/areas/:id/cash-accounts", h.listAccounts)

	transactions := group.Group("/cash-transactions")
	{
		transactions.POST("", h.createTransaction)
		transactions.GET("", h.listTransactions)
		transactions.GET("/:id", h.getTransaction)
		transactions.PUT("/:id/lines", h.updateTransactionLines)
		transactions.PUT("/:id/status", h.setTransactionStatus)
	}

	denominations := group.Group("/denominations")
	{
		denominations.GET("", h.listDenominations)
		denominations.POST("", h.createDenomination)
	}
}

// openAccount godoc
// @Summary Open the day's cash account for an area
// @Description Opens a register with its opening float. At most one account per area may be OPEN.
// @Tags cash
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param account body dto.OpenCashAccountRequest true "Opening Info"
// @Success 201 {object} dto.CashAccountResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Area already has an open account"
// @Failure 500 {object} ErrorResponse
// @Router /cash-accounts [post]
func (h *cashHandler) openAccount(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req dto.OpenCashAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	account, err := h.service.OpenAccount(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "Failed to open cash account")
		return
	}
	c.JSON(http.StatusCreated, dto.ToCashAccountResponse(account))
}

// getAccount godoc
// @Summary Get cash account by ID
// @Tags cash
// @Produce json
// @Security BearerAuth
// @Param id path string true "Account ID"
// @Success 200 {object} dto.CashAccountResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /cash-accounts/{id} [get]
func (h *cashHandler) getAccount(c *gin.Context) {
	account, err := h.service.GetAccountByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve cash account")
		return
	}
	c.JSON(http.StatusOK, dto.ToCashAccountResponse(account))
}

// listAccounts godoc
// @Summary List cash accounts for an area
// @Tags cash
// @Produce json
// @Security BearerAuth
// @Param id path string true "Area ID"
// @Param dateBegin query string false "Start date (YYYY-MM-DD)"
// @Param dateEnd query string false "End date (YYYY-MM-DD)"
// @Success 200 {array} dto.CashAccountResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /areas/{id}/cash-accounts [get]
func (h *cashHandler) listAccounts(c *gin.Context) {
	var params dto.ListCashAccountsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	accounts, err := h.service.ListAccounts(c.Request.Context(), c.Param("id"), params)
	if err != nil {
		respondError(c, err, "Failed to list cash accounts")
		return
	}

	responses := make([]dto.CashAccountResponse, len(accounts))
	for i := range accounts {
		responses[i] = dto.ToCashAccountResponse(&accounts[i])
	}
	c.JSON(http.StatusOK, responses)
}

// closeAccount godoc
// @Summary Close a cash account
// @Description Moves an OPEN account to CLOSED so no further transactions are accepted.
// @Tags cash
// @Produce json
// @Security BearerAuth
// @Param id path string true "Account ID"
// @Success 200 {object} dto.CashAccountResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Account is not open"
// @Failure 500 {object} ErrorResponse
// @Router /cash-accounts/{id}/close [post]
func (h *cashHandler) closeAccount(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	account, err := h.service.CloseAccount(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, err, "Failed to close cash account")
		return
	}
	c.JSON(http.StatusOK, dto.ToCashAccountResponse(account))
}

// countTransactions godoc
// @Summary Count an account's transactions for a date
// @Description Tallies IN, OUT and cancelled transactions for one business date. Defaults to today.
// @Tags cash
// @Produce json
// @Security BearerAuth
// @Param id path string true "Account ID"
// @Param date query string false "Business date (YYYY-MM-DD)"
// @Success 200 {object} dto.TransactionCountsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /cash-accounts/{id}/transaction-counts [get]
func (h *cashHandler) countTransactions(c *gin.Context) {
	day := time.Now().UTC()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid date, expected YYYY-MM-DD"})
			return
		}
		day = parsed
	}

	counts, err := h.service.CountTransactions(c.Request.Context(), c.Param("id"), day)
	if err != nil {
		respondError(c, err, "Failed to count transactions")
		return
	}
	c.JSON(http.StatusOK, counts)
}

// getBalanceReport godoc
// @Summary Preview the balance of a cash account
// @Description Computes theoretical against counted balance without changing any state.
// @Tags cash
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Account ID"
// @Param counts body dto.BalanceAccountRequest true "Physical count"
// @Success 200 {object} dto.BalanceReport
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /cash-accounts/{id}/balance-report [post]
func (h *cashHandler) getBalanceReport(c *gin.Context) {
	var req dto.BalanceAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	report, err := h.service.GetBalanceReport(c.Request.Context(), c.Param("id"), req.Counts)
	if err != nil {
		respondError(c, err, "Failed to compute balance report")
		return
	}
	c.JSON(http.StatusOK, report)
}

// balanceAccount godoc
// @Summary Balance a cash account
// @Description Counts the drawer against the theoretical balance and moves the account to BALANCED or NOT_BALANCED.
// @Tags cash
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Account ID"
// @Param counts body dto.BalanceAccountRequest true "Physical count"
// @Success 200 {object} dto.BalanceReport
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Non-final transactions remain"
// @Failure 500 {object} ErrorResponse
// @Router /cash-accounts/{id}/balance [post]
func (h *cashHandler) balanceAccount(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req dto.BalanceAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	report, err := h.service.BalanceAccount(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to balance cash account")
		return
	}
	c.JSON(http.StatusOK, report)
}

// forceBalance godoc
// @Summary Force-balance a cash account
// @Description Resolves a NOT_BALANCED account by accepting the discrepancy with a justification.
// @Tags cash
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Account ID"
// @Param justification body dto.ForceBalanceRequest true "Reason for the discrepancy"
// @Success 200 {object} dto.CashAccountResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Account is not awaiting resolution"
// @Failure 500 {object} ErrorResponse
// @Router /cash-accounts/{id}/force-balance [post]
func (h *cashHandler) forceBalance(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req dto.ForceBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	account, err := h.service.ForceBalance(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to force-balance cash account")
		return
	}
	c.JSON(http.StatusOK, dto.ToCashAccountResponse(account))
}

// createTransaction godoc
// @Summary Record a cash transaction
// @Description Records a money movement on an open register with its denomination breakdown.
// @Tags cash
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param transaction body dto.CreateCashTransactionRequest true "Transaction Info"
// @Success 201 {object} dto.CashTransactionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Account is not open"
// @Failure 500 {object} ErrorResponse
// @Router /cash-transactions [post]
func (h *cashHandler) createTransaction(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req dto.CreateCashTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	transaction, err := h.service.CreateTransaction(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "Failed to record transaction")
		return
	}
	c.JSON(http.StatusCreated, dto.ToCashTransactionResponse(transaction))
}

// getTransaction godoc
// @Summary Get cash transaction by ID
// @Tags cash
// @Produce json
// @Security BearerAuth
// @Param id path string true "Transaction ID"
// @Success 200 {object} dto.CashTransactionResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /cash-transactions/{id} [get]
func (h *cashHandler) getTransaction(c *gin.Context) {
	transaction, err := h.service.GetTransactionByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve transaction")
		return
	}
	c.JSON(http.StatusOK, dto.ToCashTransactionResponse(transaction))
}

// listTransactions godoc
// @Summary List cash transactions
// @Description Returns the transaction history newest first, with cursor pagination.
// @Tags cash
// @Produce json
// @Security BearerAuth
// @Param accountID query string false "Account ID"
// @Param areaID query string false "Area ID"
// @Param dateBegin query string false "Start date (YYYY-MM-DD)"
// @Param dateEnd query string false "End date (YYYY-MM-DD)"
// @Param limit query int false "Page size"
// @Param nextToken query string false "Pagination cursor"
// @Success 200 {object} dto.ListCashTransactionsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /cash-transactions [get]
func (h *cashHandler) listTransactions(c *gin.Context) {
	var params dto.ListCashTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.service.ListTransactions(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "Failed to list transactions")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// updateTransactionLines godoc
// @Summary Replace the denomination lines of a transaction
// @Description Replaces the breakdown of a non-final transaction, keeping an adjustment trail.
// @Tags cash
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Transaction ID"
// @Param lines body dto.UpdateCashTransactionLinesRequest true "New breakdown"
// @Success 200 {object} dto.CashTransactionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Transaction is final"
// @Failure 500 {object} ErrorResponse
// @Router /cash-transactions/{id}/lines [put]
func (h *cashHandler) updateTransactionLines(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateCashTransactionLinesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	transaction, err := h.service.UpdateTransactionLines(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to update transaction lines")
		return
	}
	c.JSON(http.StatusOK, dto.ToCashTransactionResponse(transaction))
}

// setTransactionStatus godoc
// @Summary Transition a cash transaction
// @Description Moves a transaction through its lifecycle. Only COMPLETED transactions count toward the balance.
// @Tags cash
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Transaction ID"
// @Param status body dto.SetTransactionStatusRequest true "Target status"
// @Success 200 {object} dto.CashTransactionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Transition not allowed"
// @Failure 500 {object} ErrorResponse
// @Router /cash-transactions/{id}/status [put]
func (h *cashHandler) setTransactionStatus(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req dto.SetTransactionStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	transaction, err := h.service.SetTransactionStatus(c.Request.Context(), c.Param("id"), req.Status, req.Reason, userID)
	if err != nil {
		respondError(c, err, "Failed to update transaction status")
		return
	}
	c.JSON(http.StatusOK, dto.ToCashTransactionResponse(transaction))
}

// listDenominations godoc
// @Summary List the denomination catalog
// @Tags cash
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.Denomination
// @Failure 500 {object} ErrorResponse
// @Router /denominations [get]
func (h *cashHandler) listDenominations(c *gin.Context) {
	denominations, err := h.service.ListDenominations(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list denominations")
		return
	}
	c.JSON(http.StatusOK, denominations)
}

// createDenomination godoc
// @Summary Add a denomination to the catalog
// @Tags cash
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param denomination body dto.CreateDenominationRequest true "Denomination Info"
// @Success 201 {object} domain.Denomination
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Denomination already exists"
// @Failure 500 {object} ErrorResponse
// @Router /denominations [post]
func (h *cashHandler) createDenomination(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req dto.CreateDenominationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	denomination, err := h.service.CreateDenomination(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "Failed to create denomination")
		return
	}
	c.JSON(http.StatusCreated, denomination)
}
