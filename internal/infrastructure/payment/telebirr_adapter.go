package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"

	"github.com/escrowdesk/backend/internal/domain/escrow"
	"github.com/escrowdesk/backend/internal/domain/shared"
)

const telebirrReceiptPath = "/v1/receipts/"

// TelebirrAdapter implements PaymentVerifier against the Telebirr receipt
// lookup API. Transient upstream failures (transport errors, 5xx) surface as
// shared.ErrVerifierUnavailable so callers can tell the buyer to retry.
type TelebirrAdapter struct {
	config     *TelebirrConfig
	httpClient *http.Client
}

// NewTelebirrAdapter creates a new Telebirr adapter
func NewTelebirrAdapter(config *TelebirrConfig) (*TelebirrAdapter, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &TelebirrAdapter{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
	}, nil
}

// Verify looks up a receipt reference and reports the settlement it records.
// An unknown receipt is not an error: it comes back as Accepted=false so the
// caller can reject the payment claim.
func (a *TelebirrAdapter) Verify(ctx context.Context, receiptRef string) (*escrow.VerificationResult, error) {
	lookupURL := a.config.BaseURL + telebirrReceiptPath + url.PathEscape(receiptRef)

	var lastErr error
	for attempt := 0; attempt <= a.config.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, fmt.Errorf("%w: %v", shared.ErrVerifierUnavailable, ctx.Err())
			case <-time.After(time.Duration(attempt) * 500 * time.Millisecond):
			}
		}

		result, retryable, err := a.lookup(ctx, lookupURL)
		if err == nil {
			return result, nil
		}
		if !retryable {
			return nil, err
		}
		lastErr = err
	}

	return nil, lastErr
}

// lookup performs a single receipt lookup attempt. The second return value
// reports whether the failure is worth retrying.
func (a *TelebirrAdapter) lookup(ctx context.Context, lookupURL string) (*escrow.VerificationResult, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, lookupURL, nil)
	if err != nil {
		return nil, false, fmt.Errorf("telebirr: failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+a.config.APIKey)
	req.Header.Set("Accept", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, true, fmt.Errorf("%w: %v", shared.ErrVerifierUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, fmt.Errorf("%w: %v", shared.ErrVerifierUnavailable, err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		return a.parseReceipt(respBody)

	case resp.StatusCode == http.StatusNotFound:
		// The reference does not exist upstream. Report a rejection rather
		// than an outage so the claim fails deterministically.
		return &escrow.VerificationResult{Accepted: false}, false, nil

	case resp.StatusCode >= 500:
		return nil, true, fmt.Errorf("%w: HTTP %d", shared.ErrVerifierUnavailable, resp.StatusCode)

	default:
		var apiErr telebirrErrorResponse
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Message != "" {
			return nil, false, fmt.Errorf("telebirr: lookup rejected: %s - %s", apiErr.Code, apiErr.Message)
		}
		return nil, false, fmt.Errorf("telebirr: lookup rejected: HTTP %d", resp.StatusCode)
	}
}

func (a *TelebirrAdapter) parseReceipt(respBody []byte) (*escrow.VerificationResult, bool, error) {
	var receipt telebirrReceiptResponse
	if err := json.Unmarshal(respBody, &receipt); err != nil {
		return nil, false, fmt.Errorf("telebirr: failed to parse response: %w", err)
	}

	result := &escrow.VerificationResult{
		Accepted:  receipt.IsSettled(),
		Payer:     receipt.PayerName,
		Receiver:  receipt.CreditedPartyName,
		Reference: receipt.ReceiptNo,
	}

	if receipt.SettledAmount != "" {
		amount, err := decimal.NewFromString(receipt.SettledAmount)
		if err != nil {
			return nil, false, fmt.Errorf("telebirr: invalid settled amount %q: %w", receipt.SettledAmount, err)
		}
		// The API reports major units; balances are kept in cents.
		result.SettledAmount = amount.Shift(2).IntPart()
	}

	return result, false, nil
}

// Ensure TelebirrAdapter implements PaymentVerifier interface
var _ escrow.PaymentVerifier = (*TelebirrAdapter)(nil)
