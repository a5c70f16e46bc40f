package payment

// Telebirr receipt statuses as returned by the lookup API
const (
	telebirrStatusCompleted = "Completed"
	telebirrStatusPending   = "Pending"
	telebirrStatusReversed  = "Reversed"
)

// telebirrReceiptResponse is the JSON body of a successful receipt lookup
type telebirrReceiptResponse struct {
	ReceiptNo         string `json:"receiptNo"`
	Status            string `json:"status"`
	PayerName         string `json:"payerName"`
	PayerPhone        string `json:"payerPhone"`
	CreditedPartyName string `json:"creditedPartyName"`
	SettledAmount     string `json:"settledAmount"`
	Currency          string `json:"currency"`
	PaymentDate       string `json:"paymentDate"`
}

// IsSettled reports whether the receipt represents money that actually moved
func (r *telebirrReceiptResponse) IsSettled() bool {
	return r.Status == telebirrStatusCompleted
}

// telebirrErrorResponse is the JSON body of a failed lookup
type telebirrErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
