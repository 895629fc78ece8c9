package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/campaign_ledger/internal/core/ports/services"
	"github.com/SscSPs/campaign_ledger/internal/dto"
	"github.com/SscSPs/campaign_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// paymentHandler handles HTTP requests related to payments.
type paymentHandler struct {
	paymentService portssvc.PaymentSvcFacade
}

func newPaymentHandler(ps portssvc.PaymentSvcFacade) *paymentHandler {
	return &paymentHandler{paymentService: ps}
}

// registerPaymentRoutes registers all payment-related routes. bulk guards the review and upload endpoints.
func registerPaymentRoutes(rg *gin.RouterGroup, paymentService portssvc.PaymentSvcFacade, bulk ...gin.HandlerFunc) {
	h := newPaymentHandler(paymentService)

	payments := rg.Group("/payments")
	{
		payments.POST("/review", guarded(bulk, h.reviewPayments)...)
		payments.POST("/upload", guarded(bulk, h.uploadPayments)...)
		payments.POST("", h.createPayment)
		payments.DELETE("/:paymentID", h.deletePayment)
	}
}

// reviewPayments godoc
// @Summary Review payment candidates
// @Description Splits the submitted payments into valid and invalid ones, simulating their cumulative effect
// @Tags payments
// @Accept  json
// @Produce  json
// @Param   payments body dto.ReviewPaymentsRequest true "Payments and optional campaign"
// @Success 200 {object} dto.ReviewResponse[dto.PaymentRecord]
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Failed to review payments"
// @Security BearerAuth
// @Router /payments/review [post]
func (h *paymentHandler) reviewPayments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ReviewPaymentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}

	partition, err := h.paymentService.ReviewPayments(c.Request.Context(), req.Data, req.CampainName)
	if err != nil {
		respondError(c, logger, err, "Failed to review payments")
		return
	}

	c.JSON(http.StatusOK, dto.ToReviewResponse(partition))
}

// uploadPayments godoc
// @Summary Upload a batch of payments
// @Description Records every payment against its referenced commitment, or none if any fails
// @Tags payments
// @Accept  json
// @Produce  json
// @Param   payments body []dto.PaymentRecord true "Payments with CommitmentId set"
// @Success 201 {object} dto.UploadPaymentsResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Commitment not found"
// @Failure 422 {object} dto.ErrorResponse "Payments would break the commitment balances"
// @Failure 500 {object} dto.ErrorResponse "Failed to upload payments"
// @Security BearerAuth
// @Router /payments/upload [post]
func (h *paymentHandler) uploadPayments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var records dto.OneOrMany[dto.PaymentRecord]
	if err := c.ShouldBindJSON(&records); err != nil {
		respondBindError(c, logger, err)
		return
	}
	actor, ok := requireActor(c, logger)
	if !ok {
		return
	}

	created, err := h.paymentService.UploadPayments(c.Request.Context(), records, actor)
	if err != nil {
		respondError(c, logger, err, "Failed to upload payments")
		return
	}

	logger.Info("Payments uploaded", slog.Int("count", len(created)))
	c.JSON(http.StatusCreated, dto.UploadPaymentsResponse{Status: "success", Payments: created})
}

// createPayment godoc
// @Summary Record a payment
// @Description Records a payment against the donor's commitment to the campaign. A negative cash amount reverses an earlier cash income.
// @Tags payments
// @Accept  json
// @Produce  json
// @Param   payment body dto.CreatePaymentRequest true "Payment details"
// @Success 201 {object} dto.PaymentResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Donor or commitment not found"
// @Failure 422 {object} dto.ErrorResponse "Payment would break the commitment balances"
// @Failure 500 {object} dto.ErrorResponse "Failed to create payment"
// @Security BearerAuth
// @Router /payments [post]
func (h *paymentHandler) createPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}
	actor, ok := requireActor(c, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.String("anash_identifier", req.AnashIdentifier), slog.String("campain_name", req.CampainName))

	payment, err := h.paymentService.CreatePayment(c.Request.Context(), req, actor)
	if err != nil {
		respondError(c, logger, err, "Failed to create payment")
		return
	}

	logger.Info("Payment created", slog.String("payment_id", payment.PaymentID))
	c.JSON(http.StatusCreated, dto.PaymentResponse{Status: "success", Payment: *payment})
}

// deletePayment godoc
// @Summary Delete a payment
// @Description Deletes a payment and reverses its effect on the commitment
// @Tags payments
// @Produce  json
// @Param   paymentID path string true "Payment ID"
// @Success 200 {object} dto.PaymentResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Payment not found"
// @Failure 422 {object} dto.ErrorResponse "Reversal would break the commitment balances"
// @Failure 500 {object} dto.ErrorResponse "Failed to delete payment"
// @Security BearerAuth
// @Router /payments/{paymentID} [delete]
func (h *paymentHandler) deletePayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	paymentID := c.Param("paymentID")
	logger = logger.With(slog.String("payment_id", paymentID))

	actor, ok := requireActor(c, logger)
	if !ok {
		return
	}

	payment, err := h.paymentService.DeletePayment(c.Request.Context(), paymentID, actor)
	if err != nil {
		respondError(c, logger, err, "Failed to delete payment")
		return
	}

	logger.Info("Payment deleted")
	c.JSON(http.StatusOK, dto.PaymentResponse{Status: "success", Payment: *payment})
}
