package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/campaign_ledger/internal/core/ports/services"
	"github.com/SscSPs/campaign_ledger/internal/dto"
	"github.com/SscSPs/campaign_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

type memorialDayHandler struct {
	memorialDayService portssvc.MemorialDaySvcFacade
}

func newMemorialDayHandler(ms portssvc.MemorialDaySvcFacade) *memorialDayHandler {
	return &memorialDayHandler{memorialDayService: ms}
}

func registerMemorialDayRoutes(rg *gin.RouterGroup, memorialDayService portssvc.MemorialDaySvcFacade) {
	h := newMemorialDayHandler(memorialDayService)

	memorialDays := rg.Group("/memorial-days")
	{
		memorialDays.POST("", h.assignMemorialDay)
		memorialDays.DELETE("", h.removeMemorialDay)
	}
	rg.GET("/campaigns/:campainName/memorial-days/eligible", h.listEligibleDonors)
}

// assignMemorialDay godoc
// @Summary Allocate a memorial day
// @Description Allocates a calendar date to the donor's commitment. A date can be held by one commitment per campaign.
// @Tags memorial-days
// @Accept  json
// @Produce  json
// @Param   memorialDay body dto.AssignMemorialDayRequest true "Donor, campaign and date"
// @Success 200 {object} domain.Commitment
// @Failure 400 {object} dto.ErrorResponse "Invalid input or no capacity left"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Commitment or campaign not found"
// @Failure 409 {object} dto.ErrorResponse "Date already allocated"
// @Failure 500 {object} dto.ErrorResponse "Failed to allocate memorial day"
// @Security BearerAuth
// @Router /memorial-days [post]
func (h *memorialDayHandler) assignMemorialDay(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.AssignMemorialDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}
	actor, ok := requireActor(c, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.String("anash_identifier", req.AnashIdentifier), slog.String("campain_name", req.CampainName), slog.String("date", req.Date))

	commitment, err := h.memorialDayService.AssignMemorialDay(c.Request.Context(), req, actor)
	if err != nil {
		respondError(c, logger, err, "Failed to allocate memorial day")
		return
	}

	logger.Info("Memorial day allocated")
	c.JSON(http.StatusOK, commitment)
}

// removeMemorialDay godoc
// @Summary Remove a memorial day
// @Tags memorial-days
// @Produce  json
// @Param   AnashIdentifier query string true "Donor identifier"
// @Param   CampainName query string true "Campaign name"
// @Param   date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} domain.Commitment
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Commitment or memorial day not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to remove memorial day"
// @Security BearerAuth
// @Router /memorial-days [delete]
func (h *memorialDayHandler) removeMemorialDay(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.RemoveMemorialDayParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, logger, err)
		return
	}
	actor, ok := requireActor(c, logger)
	if !ok {
		return
	}

	commitment, err := h.memorialDayService.RemoveMemorialDay(c.Request.Context(), params, actor)
	if err != nil {
		respondError(c, logger, err, "Failed to remove memorial day")
		return
	}

	logger.Info("Memorial day removed", slog.String("anash_identifier", params.AnashIdentifier), slog.String("date", params.Date))
	c.JSON(http.StatusOK, commitment)
}

// listEligibleDonors godoc
// @Summary List donors that can receive memorial days
// @Tags memorial-days
// @Produce  json
// @Param   campainName path string true "Campaign name"
// @Success 200 {object} dto.EligibleDonorsResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Campaign not found or it has no commitments"
// @Failure 500 {object} dto.ErrorResponse "Failed to list eligible donors"
// @Security BearerAuth
// @Router /campaigns/{campainName}/memorial-days/eligible [get]
func (h *memorialDayHandler) listEligibleDonors(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	campainName := c.Param("campainName")

	people, err := h.memorialDayService.ListEligibleDonors(c.Request.Context(), campainName)
	if err != nil {
		respondError(c, logger.With(slog.String("campain_name", campainName)), err, "Failed to list eligible donors")
		return
	}

	c.JSON(http.StatusOK, dto.EligibleDonorsResponse{Status: "success", People: people})
}
