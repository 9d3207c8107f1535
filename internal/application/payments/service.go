package payments

import (
	"context"
	"errors"
	"fmt"

	"trykey-dashboard/internal/application/pending"
	"trykey-dashboard/internal/domain"
	"trykey-dashboard/internal/pkg/validation"

	"github.com/rs/zerolog/log"
)

var (
	// ErrPaymentPending rejects a second submission while one is in flight
	// for the same room.
	ErrPaymentPending = errors.New("A payment for this room is already pending")

	ErrMissingFields = errors.New("Email, name and phone number are required")
	ErrInvalidEmail  = errors.New("Invalid email address")
	ErrInvalidPhone  = errors.New("Invalid phone number")
)

// PaymentSender abstracts the platform client.
type PaymentSender interface {
	InitPayment(ctx context.Context, req domain.PaymentRequest) (map[string]interface{}, error)
}

// Ledger is the slice of the transactions service the initiator needs.
type Ledger interface {
	Invalidate(ctx context.Context, assetNumber string) error
}

// Service initiates room booking payments. The amount is a fixed per-request
// constant and the currency is fixed; business validation (duplicate payment,
// insufficient amount) stays upstream and surfaces as an opaque error.
type Service struct {
	Client      PaymentSender
	Pending     *pending.Registry
	Ledger      Ledger
	Amount      string
	RedirectURL string
}

// Form carries the payer contact details collected by the dashboard.
type Form struct {
	Email       string `json:"email"`
	Name        string `json:"name"`
	PhoneNumber string `json:"phonenumber"`
}

// Result reports an initiated payment back to the UI. Payload is the opaque
// provider response (e.g. a checkout link) passed through untouched.
type Result struct {
	RoomNumber string                 `json:"room_number"`
	Notice     string                 `json:"notice"`
	Payload    map[string]interface{} `json:"payload"`
}

// Initiate submits one payment initiation for the room and, on success,
// invalidates the asset's transaction ledger exactly once so the new
// (likely pending) transaction becomes visible on the next read.
func (s *Service) Initiate(ctx context.Context, assetNumber string, room domain.Room, form Form) (*Result, error) {
	if form.Email == "" || form.Name == "" || form.PhoneNumber == "" {
		return nil, ErrMissingFields
	}
	if !validation.IsValidEmail(form.Email) {
		return nil, ErrInvalidEmail
	}
	if !validation.IsValidPhone(form.PhoneNumber) {
		return nil, ErrInvalidPhone
	}

	if !s.Pending.Begin(assetNumber, room.RoomNumber) {
		return nil, ErrPaymentPending
	}
	defer s.Pending.End(assetNumber, room.RoomNumber)

	req := domain.PaymentRequest{
		Email:          form.Email,
		Name:           form.Name,
		PhoneNumber:    form.PhoneNumber,
		Amount:         s.Amount,
		RedirectURL:    s.RedirectURL,
		Title:          "Room booking",
		Description:    fmt.Sprintf("Payment for room %s, asset %s", room.RoomNumber, assetNumber),
		AssetNumber:    assetNumber,
		SubAssetNumber: room.RoomNumber,
		Currency:       domain.PaymentCurrency,
		IsOutgoing:     false,
	}

	payload, err := s.Client.InitPayment(ctx, req)
	if err != nil {
		return nil, err
	}

	if s.Ledger != nil {
		if err := s.Ledger.Invalidate(ctx, assetNumber); err != nil {
			log.Warn().Err(err).Str("asset", assetNumber).Msg("ledger cache invalidation failed")
		}
	}

	return &Result{
		RoomNumber: room.RoomNumber,
		Notice:     fmt.Sprintf("Payment initiated for Room %s.", room.RoomNumber),
		Payload:    payload,
	}, nil
}
