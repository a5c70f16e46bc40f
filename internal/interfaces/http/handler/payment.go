package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appescrow "github.com/escrowdesk/backend/internal/application/escrow"
)

// PaymentHandler handles payment verification endpoints
type PaymentHandler struct {
	BaseHandler
	verificationService *appescrow.PaymentVerificationService
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(verificationService *appescrow.PaymentVerificationService, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		BaseHandler:         NewBaseHandler(logger),
		verificationService: verificationService,
	}
}

// VerifyPaymentRequest is the payload for verifying a payment receipt.
// ScreenshotKey references the uploaded proof image; it is discarded
// when verification rejects the receipt.
type VerifyPaymentRequest struct {
	ReceiptRef     string `json:"receipt_ref" binding:"required,max=128"`
	ExpectedAmount int64  `json:"expected_amount" binding:"required,gt=0"`
	ScreenshotKey  string `json:"screenshot_key" binding:"omitempty,max=512"`
}

// Verify handles POST /payments/verify
func (h *PaymentHandler) Verify(c *gin.Context) {
	var req VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.verificationService.Verify(c.Request.Context(), req.ReceiptRef, req.ExpectedAmount, req.ScreenshotKey)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}
