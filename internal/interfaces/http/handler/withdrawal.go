package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	appescrow "github.com/escrowdesk/backend/internal/application/escrow"
	"github.com/escrowdesk/backend/internal/interfaces/http/dto"
)

// WithdrawalHandler handles withdrawal endpoints
type WithdrawalHandler struct {
	BaseHandler
	withdrawalService *appescrow.WithdrawalService
}

// NewWithdrawalHandler creates a new withdrawal handler
func NewWithdrawalHandler(withdrawalService *appescrow.WithdrawalService, logger *zap.Logger) *WithdrawalHandler {
	return &WithdrawalHandler{
		BaseHandler:       NewBaseHandler(logger),
		withdrawalService: withdrawalService,
	}
}

// RequestWithdrawalRequest is the payload for requesting a payout
type RequestWithdrawalRequest struct {
	UserID string `json:"user_id" binding:"required,uuid"`
	Amount int64  `json:"amount" binding:"required,gt=0"`
}

// RejectWithdrawalRequest is the payload for rejecting a payout
type RejectWithdrawalRequest struct {
	Note string `json:"note" binding:"required,max=512"`
}

// Request handles POST /withdrawals
func (h *WithdrawalHandler) Request(c *gin.Context) {
	var req RequestWithdrawalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	withdrawal, err := h.withdrawalService.Request(c.Request.Context(), uuid.MustParse(req.UserID), req.Amount)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, withdrawal)
}

// Get handles GET /withdrawals/:id
func (h *WithdrawalHandler) Get(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	withdrawal, err := h.withdrawalService.Get(c.Request.Context(), uuid.MustParse(req.ID))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, withdrawal)
}

// MarkPaid handles POST /withdrawals/:id/mark-paid
func (h *WithdrawalHandler) MarkPaid(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	withdrawal, err := h.withdrawalService.MarkPaid(c.Request.Context(), uuid.MustParse(req.ID))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, withdrawal)
}

// Reject handles POST /withdrawals/:id/reject
func (h *WithdrawalHandler) Reject(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	var req RejectWithdrawalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	withdrawal, err := h.withdrawalService.Reject(c.Request.Context(), uuid.MustParse(uri.ID), req.Note)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, withdrawal)
}
