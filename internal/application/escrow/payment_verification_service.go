package escrow

import (
	"context"
	"strings"
	"time"

	"github.com/escrowdesk/backend/internal/domain/escrow"
	"github.com/escrowdesk/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// DefaultReceiptTTL is how long a consumed receipt reference stays marked in
// the idempotency store.
const DefaultReceiptTTL = 90 * 24 * time.Hour

// ReceiptStorage is the narrow slice of object storage the verification flow
// needs: discarding the uploaded receipt screenshot once the verifier has
// seen it, whatever the outcome.
type ReceiptStorage interface {
	Delete(ctx context.Context, objectKey string) error
}

// PaymentVerificationService checks a submitted payment receipt against the
// external settlement-lookup service before an order may be created.
type PaymentVerificationService struct {
	verifier  escrow.PaymentVerifier
	receipts  shared.IdempotencyStore
	storage   ReceiptStorage
	receivers []string // normalized escrow identities
	logger    *zap.Logger
}

// NewPaymentVerificationService creates a new PaymentVerificationService.
// escrowReceivers is the fixed allow-list of names settlements must be
// addressed to.
func NewPaymentVerificationService(
	verifier escrow.PaymentVerifier,
	receipts shared.IdempotencyStore,
	storage ReceiptStorage,
	escrowReceivers []string,
	logger *zap.Logger,
) *PaymentVerificationService {
	normalized := make([]string, 0, len(escrowReceivers))
	for _, r := range escrowReceivers {
		if n := normalizeReceiver(r); n != "" {
			normalized = append(normalized, n)
		}
	}
	return &PaymentVerificationService{
		verifier:  verifier,
		receipts:  receipts,
		storage:   storage,
		receivers: normalized,
		logger:    logger,
	}
}

// Verify checks the receipt against the expected amount and the escrow
// receiver allow-list. screenshotKey, when non-empty, names the uploaded
// receipt image; it is discarded regardless of outcome so a corrected
// resubmission can proceed and storage does not leak.
func (s *PaymentVerificationService) Verify(ctx context.Context, receiptRef string, expectedAmount int64, screenshotKey string) (*VerificationResponse, error) {
	defer s.discardScreenshot(ctx, screenshotKey)

	receiptRef = strings.TrimSpace(receiptRef)
	if receiptRef == "" {
		return nil, shared.NewDomainError("INVALID_RECEIPT", "Receipt reference cannot be empty")
	}
	if expectedAmount <= 0 {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Expected amount must be positive")
	}

	consumed, err := s.receipts.IsProcessed(ctx, receiptRef)
	if err != nil {
		s.logger.Error("Receipt idempotency check failed", zap.Error(err))
		return nil, shared.ErrVerifierUnavailable
	}
	if consumed {
		return nil, shared.ErrDuplicateReceipt
	}

	result, err := s.verifier.Verify(ctx, receiptRef)
	if err != nil {
		return nil, err
	}

	if !result.Accepted {
		s.logger.Info("Receipt rejected by verifier",
			zap.String("receipt_ref", receiptRef),
		)
		return nil, shared.ErrPaymentMismatch
	}
	if result.SettledAmount < expectedAmount {
		s.logger.Info("Settled amount below expected",
			zap.String("receipt_ref", receiptRef),
			zap.Int64("settled", result.SettledAmount),
			zap.Int64("expected", expectedAmount),
		)
		return nil, shared.ErrPaymentMismatch
	}
	if !s.isEscrowReceiver(result.Receiver) {
		s.logger.Warn("Settlement receiver is not an escrow identity",
			zap.String("receipt_ref", receiptRef),
			zap.String("receiver", result.Receiver),
		)
		return nil, shared.ErrPaymentMismatch
	}

	// Mark only accepted receipts; a mismatched receipt may be corrected
	// and resubmitted (e.g. after a top-up payment under a new reference).
	marked, err := s.receipts.MarkProcessed(ctx, receiptRef, DefaultReceiptTTL)
	if err != nil {
		s.logger.Error("Failed to mark receipt consumed", zap.Error(err))
		return nil, shared.ErrVerifierUnavailable
	}
	if !marked {
		// Lost the race to a concurrent submission of the same receipt.
		return nil, shared.ErrDuplicateReceipt
	}

	s.logger.Info("Payment verified",
		zap.String("receipt_ref", receiptRef),
		zap.Int64("settled", result.SettledAmount),
	)

	return &VerificationResponse{
		Accepted:      true,
		Payer:         result.Payer,
		Receiver:      result.Receiver,
		SettledAmount: result.SettledAmount,
		Reference:     result.Reference,
	}, nil
}

func (s *PaymentVerificationService) isEscrowReceiver(receiver string) bool {
	normalized := normalizeReceiver(receiver)
	for _, r := range s.receivers {
		if r == normalized {
			return true
		}
	}
	return false
}

func (s *PaymentVerificationService) discardScreenshot(ctx context.Context, key string) {
	if key == "" || s.storage == nil {
		return
	}
	if err := s.storage.Delete(ctx, key); err != nil {
		s.logger.Warn("Failed to discard receipt screenshot",
			zap.String("object_key", key),
			zap.Error(err),
		)
	}
}

// normalizeReceiver lowercases and collapses whitespace so that
// " Kaleb  Mate " and "kaleb mate" compare equal.
func normalizeReceiver(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}
