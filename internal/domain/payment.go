package domain

// PaymentCurrency is fixed for every initiation request.
const PaymentCurrency = "NGN"

// PaymentRequest is the transient body for POST /payment/init/. Success is
// signaled by an opaque response payload and not tracked further here.
type PaymentRequest struct {
	Email          string `json:"email"`
	Name           string `json:"name"`
	PhoneNumber    string `json:"phonenumber"`
	Amount         string `json:"amount"`
	RedirectURL    string `json:"redirect_url"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	AssetNumber    string `json:"asset_number"`
	SubAssetNumber string `json:"sub_asset_number"`
	Currency       string `json:"currency"`
	IsOutgoing     bool   `json:"is_outgoing"`
}
