package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/sakahan-app/sakahan-backend/internal/core/ports/services"
	"github.com/sakahan-app/sakahan-backend/internal/dto"
	"github.com/sakahan-app/sakahan-backend/internal/middleware"
)

// workerHandler handles HTTP requests related to workers.
type workerHandler struct {
	workerService portssvc.WorkerSvcFacade
	ledgerService portssvc.LedgerSvcFacade
}

func newWorkerHandler(ws portssvc.WorkerSvcFacade, ls portssvc.LedgerSvcFacade) *workerHandler {
	return &workerHandler{
		workerService: ws,
		ledgerService: ls,
	}
}

// registerWorkerRoutes registers routes related to workers, including the
// per-worker debt listing which reads through the ledger service.
func registerWorkerRoutes(rg *gin.RouterGroup, workerService portssvc.WorkerSvcFacade, ledgerService portssvc.LedgerSvcFacade) {
	h := newWorkerHandler(workerService, ledgerService)

	workers := rg.Group("/workers")
	{
		workers.POST("", h.createWorker)
		workers.GET("", h.listWorkers)
		workers.GET("/:id", h.getWorker)
		workers.PUT("/:id", h.updateWorker)
		workers.DELETE("/:id", h.deactivateWorker)
		workers.GET("/:id/debts", h.listWorkerDebts)
	}
}

func (h *workerHandler) createWorker(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateWorkerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateWorker", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.Fail("Invalid request format: "+err.Error()))
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.Fail("Unauthorized"))
		return
	}

	worker, err := h.workerService.CreateWorker(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "Failed to create worker")
		return
	}

	c.JSON(http.StatusCreated, dto.OK("Worker created", dto.ToWorkerResponse(worker)))
}

func (h *workerHandler) getWorker(c *gin.Context) {
	worker, err := h.workerService.GetWorkerByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve worker")
		return
	}
	c.JSON(http.StatusOK, dto.OK("Worker retrieved", dto.ToWorkerResponse(worker)))
}

func (h *workerHandler) listWorkers(c *gin.Context) {
	limit, offset := paginationParams(c)
	workers, err := h.workerService.ListWorkers(c.Request.Context(), limit, offset)
	if err != nil {
		respondError(c, err, "Failed to list workers")
		return
	}
	c.JSON(http.StatusOK, dto.OK("Workers listed", dto.ToWorkerResponses(workers)))
}

func (h *workerHandler) updateWorker(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpdateWorkerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateWorker", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.Fail("Invalid request format: "+err.Error()))
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.Fail("Unauthorized"))
		return
	}

	worker, err := h.workerService.UpdateWorker(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to update worker")
		return
	}

	c.JSON(http.StatusOK, dto.OK("Worker updated", dto.ToWorkerResponse(worker)))
}

func (h *workerHandler) deactivateWorker(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.Fail("Unauthorized"))
		return
	}

	if err := h.workerService.DeactivateWorker(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondError(c, err, "Failed to deactivate worker")
		return
	}

	c.JSON(http.StatusOK, dto.OK("Worker deactivated", nil))
}

func (h *workerHandler) listWorkerDebts(c *gin.Context) {
	limit, offset := paginationParams(c)
	debts, err := h.ledgerService.ListWorkerDebts(c.Request.Context(), c.Param("id"), limit, offset)
	if err != nil {
		respondError(c, err, "Failed to list worker debts")
		return
	}

	responses := make([]dto.DebtResponse, len(debts))
	for i := range debts {
		responses[i] = dto.ToDebtResponse(&debts[i])
	}
	c.JSON(http.StatusOK, dto.OK("Worker debts listed", responses))
}
