package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/escrowdesk/backend/internal/application/identity"
	"github.com/escrowdesk/backend/internal/interfaces/http/dto"
)

// UserHandler handles user endpoints
type UserHandler struct {
	BaseHandler
	userService *identity.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *identity.UserService, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		BaseHandler: NewBaseHandler(logger),
		userService: userService,
	}
}

// RegisterUserRequest is the payload for registering a user
type RegisterUserRequest struct {
	ExternalID int64  `json:"external_id" binding:"required"`
	Handle     string `json:"handle" binding:"required,max=64"`
}

// SetBankDetailsRequest is the payload for setting payout details
type SetBankDetailsRequest struct {
	BankName    string `json:"bank_name" binding:"required,max=128"`
	BankAccount string `json:"bank_account" binding:"required,max=64"`
}

// Register handles POST /users
func (h *UserHandler) Register(c *gin.Context) {
	var req RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	user, err := h.userService.Register(c.Request.Context(), req.ExternalID, req.Handle)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, user)
}

// Get handles GET /users/:id
func (h *UserHandler) Get(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	user, err := h.userService.Get(c.Request.Context(), uuid.MustParse(req.ID))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, user)
}

// SetBankDetails handles PUT /users/:id/bank-details
func (h *UserHandler) SetBankDetails(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	var req SetBankDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	user, err := h.userService.SetBankDetails(c.Request.Context(), uuid.MustParse(uri.ID), req.BankName, req.BankAccount)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, user)
}
