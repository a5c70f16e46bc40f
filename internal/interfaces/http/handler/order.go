package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	appescrow "github.com/escrowdesk/backend/internal/application/escrow"
	"github.com/escrowdesk/backend/internal/interfaces/http/dto"
)

// OrderHandler handles escrow order endpoints
type OrderHandler struct {
	BaseHandler
	orderService *appescrow.OrderService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *appescrow.OrderService, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{
		BaseHandler:  NewBaseHandler(logger),
		orderService: orderService,
	}
}

// CreateOrderRequest is the payload for opening an escrow order
type CreateOrderRequest struct {
	BuyerID    string `json:"buyer_id" binding:"required,uuid"`
	AccountID  string `json:"account_id" binding:"required,uuid"`
	Amount     int64  `json:"amount" binding:"required,gt=0"`
	ReceiptRef string `json:"receipt_ref" binding:"required,max=128"`
}

// FailOrderRequest is the payload for failing an order
type FailOrderRequest struct {
	Reason string `json:"reason" binding:"required,max=512"`
}

// Create handles POST /orders
func (h *OrderHandler) Create(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	order, err := h.orderService.Create(c.Request.Context(),
		uuid.MustParse(req.BuyerID), uuid.MustParse(req.AccountID), req.Amount, req.ReceiptRef)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, order)
}

// Get handles GET /orders/:id
func (h *OrderHandler) Get(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	order, err := h.orderService.Get(c.Request.Context(), uuid.MustParse(req.ID))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// Complete handles POST /orders/:id/complete
func (h *OrderHandler) Complete(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	order, err := h.orderService.Complete(c.Request.Context(), uuid.MustParse(req.ID))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// Cancel handles POST /orders/:id/cancel
func (h *OrderHandler) Cancel(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	order, err := h.orderService.Cancel(c.Request.Context(), uuid.MustParse(req.ID))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// Fail handles POST /orders/:id/fail
func (h *OrderHandler) Fail(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	var req FailOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	order, err := h.orderService.Fail(c.Request.Context(), uuid.MustParse(uri.ID), req.Reason)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}
