package control

import (
	controlsvc "trykey-dashboard/internal/application/control"
	roomsvc "trykey-dashboard/internal/application/rooms"
	"trykey-dashboard/internal/domain"
	"trykey-dashboard/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *controlsvc.Service
	Rooms   *roomsvc.Service
}

// SendCommandRequest body. The on/off direction is not part of the request:
// the dispatcher toggles based on the room's current state.
type SendCommandRequest struct {
	ActionType string `json:"action_type"`
}

// SendCommand POST /api/v1/assets/:asset_number/rooms/:room_number/control
func (h *Handlers) SendCommand(c *fiber.Ctx) error {
	assetNumber := c.Params("asset_number")
	roomNumber := c.Params("room_number")

	var req SendCommandRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	if req.ActionType == "" {
		return response.Error(c, "action_type is required", fiber.StatusBadRequest, nil)
	}
	if !domain.ValidActionType(req.ActionType) {
		return response.Error(c, "Unknown action_type "+req.ActionType, fiber.StatusBadRequest, nil)
	}

	room, err := h.Rooms.Find(c.Context(), assetNumber, roomNumber)
	if err != nil {
		return response.Error(c, err.Error(), fiber.StatusBadGateway, nil)
	}
	if room == nil {
		return response.Error(c, "Room not found", fiber.StatusNotFound, nil)
	}

	result, err := h.Service.Dispatch(c.Context(), assetNumber, *room, req.ActionType)
	if err != nil {
		switch err {
		case controlsvc.ErrCommandPending:
			return response.Error(c, err.Error(), fiber.StatusConflict, nil)
		default:
			return response.Error(c, err.Error(), fiber.StatusBadGateway, nil)
		}
	}

	return response.Success(c, result.Notice, result, nil)
}
