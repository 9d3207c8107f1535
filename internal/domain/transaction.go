package domain

// Payment statuses the ledger reports.
const (
	PaymentStatusCompleted = "completed"
	PaymentStatusPending   = "pending"
	PaymentStatusFailed    = "failed"
)

// Transaction is one row of the append-only payment ledger owned by the
// backend (GET /assets/{n}/transactions/). Read-only in this service.
type Transaction struct {
	Name           string `json:"name"`
	Amount         string `json:"amount"`
	SubAssetNumber string `json:"sub_asset_number"`
	PaymentStatus  string `json:"payment_status"`
	DateTime       string `json:"date_time"`
}
