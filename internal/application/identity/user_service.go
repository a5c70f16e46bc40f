package identity

import (
	"context"
	"errors"
	"time"

	"github.com/escrowdesk/backend/internal/domain/identity"
	"github.com/escrowdesk/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UserResponse is the API representation of a user
type UserResponse struct {
	ID          uuid.UUID `json:"id"`
	ExternalID  int64     `json:"external_id"`
	Handle      string    `json:"handle"`
	Balance     int64     `json:"balance"`
	BankName    string    `json:"bank_name,omitempty"`
	BankAccount string    `json:"bank_account,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToUserResponse converts a domain user to its API representation
func ToUserResponse(user *identity.User) UserResponse {
	return UserResponse{
		ID:          user.ID,
		ExternalID:  user.ExternalID,
		Handle:      user.Handle,
		Balance:     user.Balance,
		BankName:    user.BankName,
		BankAccount: user.BankAccount,
		CreatedAt:   user.CreatedAt,
	}
}

// UserService registers users on first contact and maintains their payout
// details. Balance mutations happen in the escrow flows, not here.
type UserService struct {
	userRepo identity.UserRepository
	logger   *zap.Logger
}

// NewUserService creates a new UserService
func NewUserService(userRepo identity.UserRepository, logger *zap.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// Register upserts a user by external chat identity. Repeated contact
// refreshes the handle but never resets the balance.
func (s *UserService) Register(ctx context.Context, externalID int64, handle string) (*UserResponse, error) {
	user, err := s.userRepo.FindByExternalID(ctx, externalID)
	switch {
	case err == nil:
		user.UpdateHandle(handle)
		if err := s.userRepo.Save(ctx, user); err != nil {
			return nil, err
		}
	case errors.Is(err, shared.ErrNotFound):
		user, err = identity.NewUser(externalID, handle)
		if err != nil {
			return nil, err
		}
		if err := s.userRepo.Save(ctx, user); err != nil {
			return nil, err
		}
		s.logger.Info("User registered",
			zap.String("user_id", user.ID.String()),
			zap.Int64("external_id", externalID),
		)
	default:
		return nil, err
	}

	resp := ToUserResponse(user)
	return &resp, nil
}

// Get returns a single user
func (s *UserService) Get(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := ToUserResponse(user)
	return &resp, nil
}

// SetBankDetails records the payout destination for withdrawals
func (s *UserService) SetBankDetails(ctx context.Context, userID uuid.UUID, bankName, bankAccount string) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := user.SetBankDetails(bankName, bankAccount); err != nil {
		return nil, err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}
	resp := ToUserResponse(user)
	return &resp, nil
}
