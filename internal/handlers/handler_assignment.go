package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/sakahan-app/sakahan-backend/internal/core/ports/services"
	"github.com/sakahan-app/sakahan-backend/internal/dto"
	"github.com/sakahan-app/sakahan-backend/internal/middleware"
)

type assignmentHandler struct {
	assignmentService portssvc.AssignmentSvcFacade
}

func newAssignmentHandler(as portssvc.AssignmentSvcFacade) *assignmentHandler {
	return &assignmentHandler{assignmentService: as}
}

func registerAssignmentRoutes(rg *gin.RouterGroup, assignmentService portssvc.AssignmentSvcFacade) {
	h := newAssignmentHandler(assignmentService)

	assignments := rg.Group("/assignments")
	{
		assignments.POST("", h.createAssignment)
		assignments.GET("/:id", h.getAssignment)
		assignments.PUT("/:id", h.updateAssignment)
	}

	// Per-worker listing lives under /workers to mirror the debts listing.
	rg.GET("/workers/:id/assignments", h.listWorkerAssignments)
}

func (h *assignmentHandler) createAssignment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateAssignment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.Fail("Invalid request format: "+err.Error()))
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.Fail("Unauthorized"))
		return
	}

	assignment, err := h.assignmentService.CreateAssignment(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "Failed to create assignment")
		return
	}

	c.JSON(http.StatusCreated, dto.OK("Assignment created", dto.ToAssignmentResponse(assignment)))
}

func (h *assignmentHandler) getAssignment(c *gin.Context) {
	assignment, err := h.assignmentService.GetAssignmentByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve assignment")
		return
	}
	c.JSON(http.StatusOK, dto.OK("Assignment retrieved", dto.ToAssignmentResponse(assignment)))
}

func (h *assignmentHandler) updateAssignment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpdateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateAssignment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.Fail("Invalid request format: "+err.Error()))
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.Fail("Unauthorized"))
		return
	}

	assignment, err := h.assignmentService.UpdateAssignment(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to update assignment")
		return
	}

	c.JSON(http.StatusOK, dto.OK("Assignment updated", dto.ToAssignmentResponse(assignment)))
}

func (h *assignmentHandler) listWorkerAssignments(c *gin.Context) {
	limit, offset := paginationParams(c)
	assignments, err := h.assignmentService.ListAssignmentsByWorker(c.Request.Context(), c.Param("id"), limit, offset)
	if err != nil {
		respondError(c, err, "Failed to list worker assignments")
		return
	}
	c.JSON(http.StatusOK, dto.OK("Worker assignments listed", dto.ToAssignmentResponses(assignments)))
}
