package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/btc_tracker/internal/core/ports/services"
	"github.com/SscSPs/btc_tracker/internal/dto"
	"github.com/SscSPs/btc_tracker/internal/middleware"
	"github.com/gin-gonic/gin"
)

// transactionHandler handles HTTP requests related to BTC transactions.
type transactionHandler struct {
	transactionService portssvc.TransactionSvcFacade
}

// newTransactionHandler creates a new transactionHandler.
func newTransactionHandler(ts portssvc.TransactionSvcFacade) *transactionHandler {
	return &transactionHandler{
		transactionService: ts,
	}
}

// registerTransactionRoutes registers routes related to transactions.
func registerTransactionRoutes(rg *gin.RouterGroup, transactionService portssvc.TransactionSvcFacade) {
	h := newTransactionHandler(transactionService)

	transactions := rg.Group("/transactions")
	{
		transactions.POST("", h.createTransaction)
		transactions.GET("", h.listTransactions)
		transactions.GET("/:transaction_id", h.getTransaction)
		transactions.DELETE("/:transaction_id", h.deleteTransaction)
	}
}

// createTransaction godoc
// @Summary Create a new transaction
// @Description Records a BTC buy or sell. Base currency values are computed from current rates unless supplied.
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   transaction body dto.CreateTransactionRequest true "Transaction details"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Invalid input or unsupported currency"
// @Failure 409 {object} map[string]string "Transaction already exists"
// @Failure 500 {object} map[string]string "Failed to create transaction"
// @Router /transactions [post]
func (h *transactionHandler) createTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithBindError(c, logger, err, "JSON for CreateTransaction")
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		creatorUserID = middleware.DefaultUserID
	}

	tx, err := h.transactionService.CreateTransaction(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to create transaction")
		return
	}

	logger.Info("Transaction created successfully", slog.String("transaction_id", tx.ID))
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(tx, "", nil))
}

// getTransaction godoc
// @Summary Get a transaction by ID
// @Description Retrieves a transaction with its values in the requested currency (entry currency by default)
// @Tags transactions
// @Produce  json
// @Param   transaction_id path string true "Transaction ID"
// @Param   currency query string false "Display currency"
// @Success 200 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Unsupported currency"
// @Failure 404 {object} map[string]string "Transaction not found"
// @Failure 500 {object} map[string]string "Failed to retrieve transaction"
// @Router /transactions/{transaction_id} [get]
func (h *transactionHandler) getTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("transaction_id")
	currency := c.Query("currency")

	tx, values, err := h.transactionService.GetTransaction(c.Request.Context(), transactionID, currency)
	if err != nil {
		respondWithError(c, logger.With(slog.String("transaction_id", transactionID)), err, "Failed to retrieve transaction")
		return
	}

	if currency == "" {
		currency = string(tx.Original.Currency)
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(tx, normalizeCurrencyParam(currency), &values))
}

// listTransactions godoc
// @Summary List transactions
// @Description Lists transactions newest first with token-based pagination
// @Tags transactions
// @Produce  json
// @Param   limit query int false "Maximum number of transactions to return" default(20)
// @Param   nextToken query string false "Token from the previous page"
// @Param   currency query string false "Display currency"
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 500 {object} map[string]string "Failed to list transactions"
// @Router /transactions [get]
func (h *transactionHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondWithBindError(c, logger, err, "query for ListTransactions")
		return
	}

	txs, nextToken, err := h.transactionService.ListTransactions(c.Request.Context(), params)
	if err != nil {
		respondWithError(c, logger, err, "Failed to list transactions")
		return
	}

	c.JSON(http.StatusOK, dto.ToListTransactionResponse(txs, normalizeCurrencyParam(params.Currency), nextToken))
}

// deleteTransaction godoc
// @Summary Delete a transaction
// @Tags transactions
// @Param   transaction_id path string true "Transaction ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Transaction not found"
// @Failure 500 {object} map[string]string "Failed to delete transaction"
// @Router /transactions/{transaction_id} [delete]
func (h *transactionHandler) deleteTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("transaction_id")

	if err := h.transactionService.DeleteTransaction(c.Request.Context(), transactionID); err != nil {
		respondWithError(c, logger.With(slog.String("transaction_id", transactionID)), err, "Failed to delete transaction")
		return
	}
	c.Status(http.StatusNoContent)
}
