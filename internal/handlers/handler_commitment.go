package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/campaign_ledger/internal/core/ports/services"
	"github.com/SscSPs/campaign_ledger/internal/dto"
	"github.com/SscSPs/campaign_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// commitmentHandler handles HTTP requests related to commitments.
type commitmentHandler struct {
	commitmentService portssvc.CommitmentSvcFacade
}

func newCommitmentHandler(cs portssvc.CommitmentSvcFacade) *commitmentHandler {
	return &commitmentHandler{commitmentService: cs}
}

// registerCommitmentRoutes registers all commitment-related routes. bulk guards the review and upload endpoints.
func registerCommitmentRoutes(rg *gin.RouterGroup, commitmentService portssvc.CommitmentSvcFacade, bulk ...gin.HandlerFunc) {
	h := newCommitmentHandler(commitmentService)

	commitments := rg.Group("/commitments")
	{
		commitments.POST("/review", guarded(bulk, h.reviewCommitments)...)
		commitments.POST("/upload", guarded(bulk, h.uploadCommitments)...)
		commitments.GET("", h.listCommitments)
		commitments.GET("/:commitmentID", h.getCommitment)
		commitments.PUT("/:commitmentID", h.updateCommitment)
		commitments.DELETE("/:commitmentID", h.deleteCommitment)
	}
}

// reviewCommitments godoc
// @Summary Review commitment candidates
// @Description Splits the submitted commitments into valid and invalid ones without writing anything
// @Tags commitments
// @Accept  json
// @Produce  json
// @Param   campainName query string false "Campaign applied to records without one"
// @Param   commitments body []dto.CommitmentRecord true "One commitment or an array of them"
// @Success 200 {object} dto.ReviewResponse[dto.CommitmentRecord]
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Failed to review commitments"
// @Security BearerAuth
// @Router /commitments/review [post]
func (h *commitmentHandler) reviewCommitments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var records dto.OneOrMany[dto.CommitmentRecord]
	if err := c.ShouldBindJSON(&records); err != nil {
		respondBindError(c, logger, err)
		return
	}

	partition, err := h.commitmentService.ReviewCommitments(c.Request.Context(), records, c.Query("campainName"))
	if err != nil {
		respondError(c, logger, err, "Failed to review commitments")
		return
	}

	c.JSON(http.StatusOK, dto.ToReviewResponse(partition))
}

// uploadCommitments godoc
// @Summary Upload reviewed commitments
// @Description Re-reviews and inserts every commitment, or none if any is invalid
// @Tags commitments
// @Accept  json
// @Produce  json
// @Param   commitments body []dto.CommitmentRecord true "Commitments to insert"
// @Success 201 {object} dto.UploadCommitmentsResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 422 {object} dto.ErrorResponse "Commitment balances are inconsistent"
// @Failure 500 {object} dto.ErrorResponse "Failed to upload commitments"
// @Security BearerAuth
// @Router /commitments/upload [post]
func (h *commitmentHandler) uploadCommitments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var records dto.OneOrMany[dto.CommitmentRecord]
	if err := c.ShouldBindJSON(&records); err != nil {
		respondBindError(c, logger, err)
		return
	}
	actor, ok := requireActor(c, logger)
	if !ok {
		return
	}

	created, err := h.commitmentService.UploadCommitments(c.Request.Context(), records, actor)
	if err != nil {
		respondError(c, logger, err, "Failed to upload commitments")
		return
	}

	logger.Info("Commitments uploaded", slog.Int("count", len(created)))
	c.JSON(http.StatusCreated, dto.UploadCommitmentsResponse{Status: "success", UploadedCommitments: created})
}

// listCommitments godoc
// @Summary List commitments
// @Tags commitments
// @Produce  json
// @Param   campainName query string false "Campaign name"
// @Param   isActive query string false "Donor status filter (true or false)"
// @Success 200 {object} dto.ListCommitmentsResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid query parameters"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Failed to list commitments"
// @Security BearerAuth
// @Router /commitments [get]
func (h *commitmentHandler) listCommitments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListCommitmentsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, logger, err)
		return
	}

	commitments, err := h.commitmentService.ListCommitments(c.Request.Context(), params)
	if err != nil {
		respondError(c, logger, err, "Failed to list commitments")
		return
	}

	c.JSON(http.StatusOK, dto.ListCommitmentsResponse{Status: "success", Commitments: commitments})
}

// getCommitment godoc
// @Summary Get a commitment
// @Description Retrieves a commitment together with its payments
// @Tags commitments
// @Produce  json
// @Param   commitmentID path string true "Commitment ID"
// @Success 200 {object} dto.CommitmentDetailsResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Commitment not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to retrieve commitment"
// @Security BearerAuth
// @Router /commitments/{commitmentID} [get]
func (h *commitmentHandler) getCommitment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	commitmentID := c.Param("commitmentID")

	details, err := h.commitmentService.GetCommitment(c.Request.Context(), commitmentID)
	if err != nil {
		respondError(c, logger.With(slog.String("commitment_id", commitmentID)), err, "Failed to retrieve commitment")
		return
	}

	c.JSON(http.StatusOK, details)
}

// updateCommitment godoc
// @Summary Edit a commitment
// @Description Replaces the balances and descriptive fields of a commitment after validating them. Omitted AmountPaid and PaymentsMade count as 0, so send the current values to keep them.
// @Tags commitments
// @Accept  json
// @Produce  json
// @Param   commitmentID path string true "Commitment ID"
// @Param   commitment body dto.UpdateCommitmentRequest true "New commitment state"
// @Success 200 {object} domain.Commitment
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Commitment not found"
// @Failure 422 {object} dto.ErrorResponse "Commitment balances are inconsistent"
// @Failure 500 {object} dto.ErrorResponse "Failed to update commitment"
// @Security BearerAuth
// @Router /commitments/{commitmentID} [put]
func (h *commitmentHandler) updateCommitment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	commitmentID := c.Param("commitmentID")
	logger = logger.With(slog.String("commitment_id", commitmentID))

	var req dto.UpdateCommitmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}
	actor, ok := requireActor(c, logger)
	if !ok {
		return
	}

	updated, err := h.commitmentService.UpdateCommitment(c.Request.Context(), commitmentID, req, actor)
	if err != nil {
		respondError(c, logger, err, "Failed to update commitment")
		return
	}

	logger.Info("Commitment updated")
	c.JSON(http.StatusOK, updated)
}

// deleteCommitment godoc
// @Summary Delete a commitment
// @Description Deletes a commitment that has no payments
// @Tags commitments
// @Produce  json
// @Param   commitmentID path string true "Commitment ID"
// @Success 200 {object} domain.Commitment
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Commitment not found"
// @Failure 409 {object} dto.ErrorResponse "Commitment has payments"
// @Failure 500 {object} dto.ErrorResponse "Failed to delete commitment"
// @Security BearerAuth
// @Router /commitments/{commitmentID} [delete]
func (h *commitmentHandler) deleteCommitment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	commitmentID := c.Param("commitmentID")
	logger = logger.With(slog.String("commitment_id", commitmentID))

	actor, ok := requireActor(c, logger)
	if !ok {
		return
	}

	deleted, err := h.commitmentService.DeleteCommitment(c.Request.Context(), commitmentID, actor)
	if err != nil {
		respondError(c, logger, err, "Failed to delete commitment")
		return
	}

	logger.Info("Commitment deleted")
	c.JSON(http.StatusOK, deleted)
}
