package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/sakahan-app/sakahan-backend/internal/core/ports/services"
	"github.com/sakahan-app/sakahan-backend/internal/dto"
	"github.com/sakahan-app/sakahan-backend/internal/middleware"
)

// debtHandler handles HTTP requests for debts and ledger operations.
type debtHandler struct {
	ledgerService portssvc.LedgerSvcFacade
	importService portssvc.DebtImportSvcFacade
}

func newDebtHandler(ledger portssvc.LedgerSvcFacade, importer portssvc.DebtImportSvcFacade) *debtHandler {
	return &debtHandler{
		ledgerService: ledger,
		importService: importer,
	}
}

// registerDebtRoutes registers debt and ledger routes. The status override
// is additionally gated behind the admin role.
func registerDebtRoutes(rg *gin.RouterGroup, ledger portssvc.LedgerSvcFacade, importer portssvc.DebtImportSvcFacade) {
	h := newDebtHandler(ledger, importer)

	debts := rg.Group("/debts")
	{
		debts.POST("", h.issueDebt)
		debts.GET("/:id", h.getDebt)
		debts.GET("/:id/history", h.listDebtHistory)
		debts.POST("/:id/interest", h.accrueInterest)
		debts.POST("/:id/payments", h.makePayment)
		debts.PATCH("/:id", h.adjustDebt)
		debts.POST("/:id/cancel", h.cancelDebt)
		debts.PUT("/:id/status", middleware.RequireAdmin(), h.overrideStatus)
		debts.POST("/history/:entryID/reverse", h.reversePayment)
		debts.POST("/interest-quote", h.quoteInterest)
		debts.POST("/import", h.importDebts)
	}
}

func (h *debtHandler) issueDebt(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.IssueDebtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for IssueDebt", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.Fail("Invalid request format: "+err.Error()))
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.Fail("Unauthorized"))
		return
	}

	debt, err := h.ledgerService.IssueDebt(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "Failed to issue debt")
		return
	}

	c.JSON(http.StatusCreated, dto.OK("Debt issued", dto.ToDebtResponse(debt)))
}

func (h *debtHandler) getDebt(c *gin.Context) {
	debt, err := h.ledgerService.GetDebt(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve debt")
		return
	}
	c.JSON(http.StatusOK, dto.OK("Debt retrieved", dto.ToDebtResponse(debt)))
}

func (h *debtHandler) listDebtHistory(c *gin.Context) {
	entries, err := h.ledgerService.ListDebtHistory(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve debt history")
		return
	}
	c.JSON(http.StatusOK, dto.OK("Debt history retrieved", dto.ToDebtHistoryResponses(entries)))
}

func (h *debtHandler) accrueInterest(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.AccrueInterestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AccrueInterest", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.Fail("Invalid request format: "+err.Error()))
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.Fail("Unauthorized"))
		return
	}

	debt, err := h.ledgerService.AccrueInterest(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to accrue interest")
		return
	}

	c.JSON(http.StatusOK, dto.OK("Interest accrued", dto.ToDebtResponse(debt)))
}

func (h *debtHandler) makePayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.MakePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for MakePayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.Fail("Invalid request format: "+err.Error()))
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.Fail("Unauthorized"))
		return
	}

	debt, entry, err := h.ledgerService.MakePayment(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to record payment")
		return
	}

	c.JSON(http.StatusCreated, dto.OK("Payment recorded", gin.H{
		"debt":  dto.ToDebtResponse(debt),
		"entry": dto.ToDebtHistoryResponse(entry),
	}))
}

func (h *debtHandler) reversePayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ReversePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ReversePayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.Fail("Invalid request format: "+err.Error()))
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.Fail("Unauthorized"))
		return
	}

	debt, refund, err := h.ledgerService.ReversePayment(c.Request.Context(), c.Param("entryID"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to reverse payment")
		return
	}

	c.JSON(http.StatusOK, dto.OK("Payment reversed", gin.H{
		"debt":  dto.ToDebtResponse(debt),
		"entry": dto.ToDebtHistoryResponse(refund),
	}))
}

func (h *debtHandler) adjustDebt(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.AdjustDebtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AdjustDebt", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.Fail("Invalid request format: "+err.Error()))
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.Fail("Unauthorized"))
		return
	}

	debt, err := h.ledgerService.AdjustDebt(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to adjust debt")
		return
	}

	c.JSON(http.StatusOK, dto.OK("Debt adjusted", dto.ToDebtResponse(debt)))
}

func (h *debtHandler) cancelDebt(c *gin.Context) {
	var req dto.CancelDebtRequest
	// Body is optional; an empty cancel carries no reason.
	_ = c.ShouldBindJSON(&req)

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.Fail("Unauthorized"))
		return
	}

	debtID, err := h.ledgerService.CancelDebt(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to cancel debt")
		return
	}

	c.JSON(http.StatusOK, dto.OK("Debt cancelled", gin.H{"debtID": debtID}))
}

func (h *debtHandler) overrideStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.OverrideStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for OverrideStatus", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.Fail("Invalid request format: "+err.Error()))
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.Fail("Unauthorized"))
		return
	}

	debt, err := h.ledgerService.OverrideStatus(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to override debt status")
		return
	}

	c.JSON(http.StatusOK, dto.OK("Debt status overridden", dto.ToDebtResponse(debt)))
}

func (h *debtHandler) quoteInterest(c *gin.Context) {
	var req dto.QuoteInterestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Fail("Invalid request format: "+err.Error()))
		return
	}

	c.JSON(http.StatusOK, dto.OK("Interest quoted", h.ledgerService.QuoteInterest(req)))
}

func (h *debtHandler) importDebts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ImportDebtsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ImportDebts", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.Fail("Invalid request format: "+err.Error()))
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.Fail("Unauthorized"))
		return
	}

	result, err := h.importService.ImportFromCSV(c.Request.Context(), req.FilePath, userID)
	if err != nil {
		respondError(c, err, "Failed to import debts")
		return
	}

	c.JSON(http.StatusOK, dto.OK("Import finished", result))
}
