package escrow

import (
	"context"
	"testing"

	"github.com/escrowdesk/backend/internal/domain/escrow"
	"github.com/escrowdesk/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func newVerificationService(verifier *MockPaymentVerifier, receipts *MockIdempotencyStore, storage *MockReceiptStorage) *PaymentVerificationService {
	return NewPaymentVerificationService(verifier, receipts, storage, []string{"Kaleb Mate"}, zap.NewNop())
}

func TestPaymentVerificationService_Verify_Success(t *testing.T) {
	verifier := new(MockPaymentVerifier)
	receipts := new(MockIdempotencyStore)

	receipts.On("IsProcessed", mock.Anything, "RCPT-100").Return(false, nil)
	verifier.On("Verify", mock.Anything, "RCPT-100").Return(&escrow.VerificationResult{
		Accepted:      true,
		Payer:         "Abel Bekele",
		Receiver:      "Kaleb Mate",
		SettledAmount: 50000,
		Reference:     "RCPT-100",
	}, nil)
	receipts.On("MarkProcessed", mock.Anything, "RCPT-100", DefaultReceiptTTL).Return(true, nil)

	service := newVerificationService(verifier, receipts, nil)

	resp, err := service.Verify(context.Background(), "RCPT-100", 50000, "")

	assert.NoError(t, err)
	assert.True(t, resp.Accepted)
	assert.Equal(t, int64(50000), resp.SettledAmount)
	receipts.AssertExpectations(t)
}

func TestPaymentVerificationService_Verify_ReceiverNormalization(t *testing.T) {
	verifier := new(MockPaymentVerifier)
	receipts := new(MockIdempotencyStore)

	// Verifier reports the receiver with different casing and spacing.
	receipts.On("IsProcessed", mock.Anything, "RCPT-101").Return(false, nil)
	verifier.On("Verify", mock.Anything, "RCPT-101").Return(&escrow.VerificationResult{
		Accepted:      true,
		Receiver:      "  KALEB   mate ",
		SettledAmount: 50000,
	}, nil)
	receipts.On("MarkProcessed", mock.Anything, "RCPT-101", DefaultReceiptTTL).Return(true, nil)

	service := newVerificationService(verifier, receipts, nil)

	resp, err := service.Verify(context.Background(), "RCPT-101", 50000, "")

	assert.NoError(t, err)
	assert.True(t, resp.Accepted)
}

func TestPaymentVerificationService_Verify_WrongReceiver(t *testing.T) {
	verifier := new(MockPaymentVerifier)
	receipts := new(MockIdempotencyStore)

	receipts.On("IsProcessed", mock.Anything, "RCPT-102").Return(false, nil)
	verifier.On("Verify", mock.Anything, "RCPT-102").Return(&escrow.VerificationResult{
		Accepted:      true,
		Receiver:      "Someone Else",
		SettledAmount: 50000,
	}, nil)

	service := newVerificationService(verifier, receipts, nil)

	resp, err := service.Verify(context.Background(), "RCPT-102", 50000, "")

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, shared.ErrPaymentMismatch)
	// A mismatched receipt stays unconsumed so a corrected one can follow.
	receipts.AssertNotCalled(t, "MarkProcessed", mock.Anything, mock.Anything, mock.Anything)
}

func TestPaymentVerificationService_Verify_SettledBelowExpected(t *testing.T) {
	verifier := new(MockPaymentVerifier)
	receipts := new(MockIdempotencyStore)

	receipts.On("IsProcessed", mock.Anything, "RCPT-103").Return(false, nil)
	verifier.On("Verify", mock.Anything, "RCPT-103").Return(&escrow.VerificationResult{
		Accepted:      true,
		Receiver:      "Kaleb Mate",
		SettledAmount: 49999,
	}, nil)

	service := newVerificationService(verifier, receipts, nil)

	resp, err := service.Verify(context.Background(), "RCPT-103", 50000, "")

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, shared.ErrPaymentMismatch)
}

func TestPaymentVerificationService_Verify_OverpaymentAccepted(t *testing.T) {
	verifier := new(MockPaymentVerifier)
	receipts := new(MockIdempotencyStore)

	receipts.On("IsProcessed", mock.Anything, "RCPT-104").Return(false, nil)
	verifier.On("Verify", mock.Anything, "RCPT-104").Return(&escrow.VerificationResult{
		Accepted:      true,
		Receiver:      "Kaleb Mate",
		SettledAmount: 60000,
	}, nil)
	receipts.On("MarkProcessed", mock.Anything, "RCPT-104", DefaultReceiptTTL).Return(true, nil)

	service := newVerificationService(verifier, receipts, nil)

	resp, err := service.Verify(context.Background(), "RCPT-104", 50000, "")

	assert.NoError(t, err)
	assert.True(t, resp.Accepted)
}

func TestPaymentVerificationService_Verify_DuplicateReceipt(t *testing.T) {
	verifier := new(MockPaymentVerifier)
	receipts := new(MockIdempotencyStore)

	receipts.On("IsProcessed", mock.Anything, "RCPT-105").Return(true, nil)

	service := newVerificationService(verifier, receipts, nil)

	resp, err := service.Verify(context.Background(), "RCPT-105", 50000, "")

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, shared.ErrDuplicateReceipt)
	verifier.AssertNotCalled(t, "Verify", mock.Anything, mock.Anything)
}

func TestPaymentVerificationService_Verify_DuplicateRaceOnMark(t *testing.T) {
	verifier := new(MockPaymentVerifier)
	receipts := new(MockIdempotencyStore)

	receipts.On("IsProcessed", mock.Anything, "RCPT-106").Return(false, nil)
	verifier.On("Verify", mock.Anything, "RCPT-106").Return(&escrow.VerificationResult{
		Accepted:      true,
		Receiver:      "Kaleb Mate",
		SettledAmount: 50000,
	}, nil)
	// A concurrent submission consumed the receipt between check and mark.
	receipts.On("MarkProcessed", mock.Anything, "RCPT-106", DefaultReceiptTTL).Return(false, nil)

	service := newVerificationService(verifier, receipts, nil)

	resp, err := service.Verify(context.Background(), "RCPT-106", 50000, "")

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, shared.ErrDuplicateReceipt)
}

func TestPaymentVerificationService_Verify_VerifierDown(t *testing.T) {
	verifier := new(MockPaymentVerifier)
	receipts := new(MockIdempotencyStore)

	receipts.On("IsProcessed", mock.Anything, "RCPT-107").Return(false, nil)
	verifier.On("Verify", mock.Anything, "RCPT-107").Return(nil, shared.ErrVerifierUnavailable)

	service := newVerificationService(verifier, receipts, nil)

	resp, err := service.Verify(context.Background(), "RCPT-107", 50000, "")

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, shared.ErrVerifierUnavailable)
	receipts.AssertNotCalled(t, "MarkProcessed", mock.Anything, mock.Anything, mock.Anything)
}

func TestPaymentVerificationService_Verify_ScreenshotDiscardedOnFailure(t *testing.T) {
	verifier := new(MockPaymentVerifier)
	receipts := new(MockIdempotencyStore)
	storage := new(MockReceiptStorage)

	receipts.On("IsProcessed", mock.Anything, "RCPT-108").Return(false, nil)
	verifier.On("Verify", mock.Anything, "RCPT-108").Return(&escrow.VerificationResult{
		Accepted: false,
	}, nil)
	storage.On("Delete", mock.Anything, "receipts/rcpt-108.jpg").Return(nil)

	service := newVerificationService(verifier, receipts, storage)

	_, err := service.Verify(context.Background(), "RCPT-108", 50000, "receipts/rcpt-108.jpg")

	assert.ErrorIs(t, err, shared.ErrPaymentMismatch)
	storage.AssertExpectations(t)
}

func TestPaymentVerificationService_Verify_ScreenshotDiscardedOnSuccess(t *testing.T) {
	verifier := new(MockPaymentVerifier)
	receipts := new(MockIdempotencyStore)
	storage := new(MockReceiptStorage)

	receipts.On("IsProcessed", mock.Anything, "RCPT-109").Return(false, nil)
	verifier.On("Verify", mock.Anything, "RCPT-109").Return(&escrow.VerificationResult{
		Accepted:      true,
		Receiver:      "Kaleb Mate",
		SettledAmount: 50000,
	}, nil)
	receipts.On("MarkProcessed", mock.Anything, "RCPT-109", DefaultReceiptTTL).Return(true, nil)
	storage.On("Delete", mock.Anything, "receipts/rcpt-109.jpg").Return(nil)

	service := newVerificationService(verifier, receipts, storage)

	resp, err := service.Verify(context.Background(), "RCPT-109", 50000, "receipts/rcpt-109.jpg")

	assert.NoError(t, err)
	assert.True(t, resp.Accepted)
	storage.AssertExpectations(t)
}

func TestPaymentVerificationService_Verify_EmptyReceipt(t *testing.T) {
	verifier := new(MockPaymentVerifier)
	receipts := new(MockIdempotencyStore)

	service := newVerificationService(verifier, receipts, nil)

	resp, err := service.Verify(context.Background(), "   ", 50000, "")

	assert.Nil(t, resp)
	assert.Error(t, err)
	verifier.AssertNotCalled(t, "Verify", mock.Anything, mock.Anything)
}
