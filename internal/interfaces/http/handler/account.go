package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	applisting "github.com/escrowdesk/backend/internal/application/listing"
	"github.com/escrowdesk/backend/internal/domain/listing"
	"github.com/escrowdesk/backend/internal/domain/shared"
	"github.com/escrowdesk/backend/internal/interfaces/http/dto"
)

// AccountHandler handles account listing endpoints
type AccountHandler struct {
	BaseHandler
	accountService     *applisting.AccountService
	reservationService *applisting.ReservationService
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(accountService *applisting.AccountService, reservationService *applisting.ReservationService, logger *zap.Logger) *AccountHandler {
	return &AccountHandler{
		BaseHandler:        NewBaseHandler(logger),
		accountService:     accountService,
		reservationService: reservationService,
	}
}

// CreateAccountRequest is the payload for listing an account for sale
type CreateAccountRequest struct {
	SellerID string `json:"seller_id" binding:"required,uuid"`
	Platform string `json:"platform" binding:"required,oneof=CHANNEL GROUP"`
	Title    string `json:"title" binding:"required,max=256"`
	Price    int64  `json:"price" binding:"required,gt=0"`
}

// ListAccountsRequest is the query for browsing available accounts
type ListAccountsRequest struct {
	dto.ListRequest
	Platform string `form:"platform" binding:"omitempty,oneof=CHANNEL GROUP"`
}

// DeleteAccountRequest identifies who asks for the removal
type DeleteAccountRequest struct {
	RequesterID string `json:"requester_id" binding:"required,uuid"`
}

// ReserveAccountRequest is the payload for reserving an account
type ReserveAccountRequest struct {
	BuyerID string `json:"buyer_id" binding:"required,uuid"`
}

// Create handles POST /accounts
func (h *AccountHandler) Create(c *gin.Context) {
	var req CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	account, err := h.accountService.Create(c.Request.Context(),
		uuid.MustParse(req.SellerID), listing.Platform(req.Platform), req.Title, req.Price)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, account)
}

// Get handles GET /accounts/:id
func (h *AccountHandler) Get(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	account, err := h.accountService.Get(c.Request.Context(), uuid.MustParse(req.ID))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, account)
}

// List handles GET /accounts
func (h *AccountHandler) List(c *gin.Context) {
	req := ListAccountsRequest{ListRequest: dto.DefaultListRequest()}
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := shared.DefaultFilter()
	filter.Page = req.Page
	filter.PageSize = req.PageSize

	result, err := h.accountService.ListAvailable(c.Request.Context(), listing.Platform(req.Platform), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Delete handles DELETE /accounts/:id
func (h *AccountHandler) Delete(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	var req DeleteAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if err := h.accountService.Delete(c.Request.Context(), uuid.MustParse(uri.ID), uuid.MustParse(req.RequesterID)); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Reserve handles POST /accounts/:id/reserve
func (h *AccountHandler) Reserve(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	var req ReserveAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	reservation, err := h.reservationService.Reserve(c.Request.Context(),
		uuid.MustParse(uri.ID), uuid.MustParse(req.BuyerID))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, reservation)
}
