package control

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"trykey-dashboard/internal/application/pending"
	"trykey-dashboard/internal/domain"
	"trykey-dashboard/internal/trykey"

	"github.com/rs/zerolog/log"
)

var (
	// ErrCommandPending rejects a second submission while one is in flight
	// for the same room.
	ErrCommandPending = errors.New("A command for this room is already pending")

	// ErrUnexpectedResponse marks a transport-level success whose body did
	// not carry the exact confirmation message.
	ErrUnexpectedResponse = errors.New("Unexpected control response")
)

// CommandSender abstracts the platform client.
type CommandSender interface {
	SendControl(ctx context.Context, cmd domain.ControlCommand) (string, error)
}

// RoomCache is the slice of the rooms service the dispatcher needs.
type RoomCache interface {
	Invalidate(ctx context.Context, assetNumber string) error
}

// Service dispatches remote actuation commands. Commands are fire-and-forget
// request/response cycles: no queue, no retry, no cancellation once sent.
type Service struct {
	Client  CommandSender
	Pending *pending.Registry
	Rooms   RoomCache
}

// Result reports a dispatched command back to the UI.
type Result struct {
	RoomNumber string `json:"room_number"`
	ActionType string `json:"action_type"`
	Data       string `json:"data"`
	Notice     string `json:"notice"`
}

// Toggle computes the command payload as the inverse of the room's current
// paid/active status: an active room is turned off, anything else on.
func Toggle(room domain.Room) string {
	if room.Status {
		return domain.ControlTurnOff
	}
	return domain.ControlTurnOn
}

// Dispatch sends one control command for the room. The device effect is
// eventually consistent; local state is not flipped optimistically — the
// rooms cache is invalidated instead so the next read refetches.
func (s *Service) Dispatch(ctx context.Context, assetNumber string, room domain.Room, actionType string) (*Result, error) {
	if !domain.ValidActionType(actionType) {
		return nil, fmt.Errorf("unknown action type %q", actionType)
	}
	if !s.Pending.Begin(assetNumber, room.RoomNumber) {
		return nil, ErrCommandPending
	}
	defer s.Pending.End(assetNumber, room.RoomNumber)

	cmd := domain.ControlCommand{
		AssetNumber:    assetNumber,
		SubAssetNumber: room.RoomNumber,
		ActionType:     actionType,
		Data:           Toggle(room),
	}

	message, err := s.Client.SendControl(ctx, cmd)
	if err != nil {
		return nil, err
	}
	if message != trykey.ControlSuccessMessage {
		log.Warn().Str("asset", assetNumber).Str("room", room.RoomNumber).
			Str("message", message).Msg("control response missing confirmation")
		return nil, fmt.Errorf("%w: %q", ErrUnexpectedResponse, message)
	}

	if s.Rooms != nil {
		if err := s.Rooms.Invalidate(ctx, assetNumber); err != nil {
			log.Warn().Err(err).Str("asset", assetNumber).Msg("rooms cache invalidation failed")
		}
	}

	return &Result{
		RoomNumber: room.RoomNumber,
		ActionType: actionType,
		Data:       cmd.Data,
		Notice:     notice(cmd),
	}, nil
}

func notice(cmd domain.ControlCommand) string {
	action := strings.ReplaceAll(cmd.Data, "_", " ")
	return fmt.Sprintf("Sent %s (%s) to Room %s. Changes will take effect soon.",
		action, cmd.ActionType, cmd.SubAssetNumber)
}
