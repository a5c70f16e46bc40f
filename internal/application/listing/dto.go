package listing

import (
	"time"

	"github.com/escrowdesk/backend/internal/domain/listing"
	"github.com/google/uuid"
)

// AccountResponse is the API representation of a listed account
type AccountResponse struct {
	ID        uuid.UUID        `json:"id"`
	SellerID  uuid.UUID        `json:"seller_id"`
	Platform  listing.Platform `json:"platform"`
	Title     string           `json:"title"`
	Price     int64            `json:"price"`
	Status    string           `json:"status"`
	CreatedAt time.Time        `json:"created_at"`
}

// ToAccountResponse converts a domain account to its API representation
func ToAccountResponse(account *listing.Account) AccountResponse {
	return AccountResponse{
		ID:        account.ID,
		SellerID:  account.SellerID,
		Platform:  account.Platform,
		Title:     account.Title,
		Price:     account.Price,
		Status:    account.Status.String(),
		CreatedAt: account.CreatedAt,
	}
}

// ReservationResponse is returned to the buyer who won the reservation
type ReservationResponse struct {
	ID        uuid.UUID       `json:"id"`
	Account   AccountResponse `json:"account"`
	BuyerID   uuid.UUID       `json:"buyer_id"`
	ExpireAt  time.Time       `json:"expire_at"`
	CreatedAt time.Time       `json:"created_at"`
}
