package payments

import (
	paysvc "trykey-dashboard/internal/application/payments"
	roomsvc "trykey-dashboard/internal/application/rooms"
	"trykey-dashboard/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *paysvc.Service
	Rooms   *roomsvc.Service
}

// InitPayment POST /api/v1/assets/:asset_number/rooms/:room_number/payment
func (h *Handlers) InitPayment(c *fiber.Ctx) error {
	assetNumber := c.Params("asset_number")
	roomNumber := c.Params("room_number")

	var form paysvc.Form
	if err := c.BodyParser(&form); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}

	room, err := h.Rooms.Find(c.Context(), assetNumber, roomNumber)
	if err != nil {
		return response.Error(c, err.Error(), fiber.StatusBadGateway, nil)
	}
	if room == nil {
		return response.Error(c, "Room not found", fiber.StatusNotFound, nil)
	}

	result, err := h.Service.Initiate(c.Context(), assetNumber, *room, form)
	if err != nil {
		switch err {
		case paysvc.ErrMissingFields, paysvc.ErrInvalidEmail, paysvc.ErrInvalidPhone:
			return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
		case paysvc.ErrPaymentPending:
			return response.Error(c, err.Error(), fiber.StatusConflict, nil)
		default:
			return response.Error(c, err.Error(), fiber.StatusBadGateway, nil)
		}
	}

	return response.Success(c, result.Notice, result, nil)
}
