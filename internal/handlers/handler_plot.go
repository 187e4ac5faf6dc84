package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/sakahan-app/sakahan-backend/internal/core/ports/services"
	"github.com/sakahan-app/sakahan-backend/internal/dto"
	"github.com/sakahan-app/sakahan-backend/internal/middleware"
)

type plotHandler struct {
	plotService       portssvc.PlotSvcFacade
	assignmentService portssvc.AssignmentSvcFacade
}

func newPlotHandler(ps portssvc.PlotSvcFacade, as portssvc.AssignmentSvcFacade) *plotHandler {
	return &plotHandler{
		plotService:       ps,
		assignmentService: as,
	}
}

func registerPlotRoutes(rg *gin.RouterGroup, plotService portssvc.PlotSvcFacade, assignmentService portssvc.AssignmentSvcFacade) {
	h := newPlotHandler(plotService, assignmentService)

	plots := rg.Group("/plots")
	{
		plots.POST("", h.createPlot)
		plots.GET("", h.listPlots)
		plots.GET("/:id", h.getPlot)
		plots.PUT("/:id", h.updatePlot)
		plots.DELETE("/:id", h.deactivatePlot)
		plots.GET("/:id/assignments", h.listPlotAssignments)
	}
}

func (h *plotHandler) createPlot(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreatePlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreatePlot", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.Fail("Invalid request format: "+err.Error()))
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.Fail("Unauthorized"))
		return
	}

	plot, err := h.plotService.CreatePlot(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "Failed to create plot")
		return
	}

	c.JSON(http.StatusCreated, dto.OK("Plot created", dto.ToPlotResponse(plot)))
}

func (h *plotHandler) getPlot(c *gin.Context) {
	plot, err := h.plotService.GetPlotByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve plot")
		return
	}
	c.JSON(http.StatusOK, dto.OK("Plot retrieved", dto.ToPlotResponse(plot)))
}

func (h *plotHandler) listPlots(c *gin.Context) {
	limit, offset := paginationParams(c)
	plots, err := h.plotService.ListPlots(c.Request.Context(), limit, offset)
	if err != nil {
		respondError(c, err, "Failed to list plots")
		return
	}
	c.JSON(http.StatusOK, dto.OK("Plots listed", dto.ToPlotResponses(plots)))
}

func (h *plotHandler) updatePlot(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpdatePlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdatePlot", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.Fail("Invalid request format: "+err.Error()))
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.Fail("Unauthorized"))
		return
	}

	plot, err := h.plotService.UpdatePlot(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to update plot")
		return
	}

	c.JSON(http.StatusOK, dto.OK("Plot updated", dto.ToPlotResponse(plot)))
}

func (h *plotHandler) deactivatePlot(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.Fail("Unauthorized"))
		return
	}

	if err := h.plotService.DeactivatePlot(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondError(c, err, "Failed to deactivate plot")
		return
	}

	c.JSON(http.StatusOK, dto.OK("Plot deactivated", nil))
}

func (h *plotHandler) listPlotAssignments(c *gin.Context) {
	limit, offset := paginationParams(c)
	assignments, err := h.assignmentService.ListAssignmentsByPlot(c.Request.Context(), c.Param("id"), limit, offset)
	if err != nil {
		respondError(c, err, "Failed to list plot assignments")
		return
	}
	c.JSON(http.StatusOK, dto.OK("Plot assignments listed", dto.ToAssignmentResponses(assignments)))
}
