package rooms

import (
	"strconv"

	roomsvc "trykey-dashboard/internal/application/rooms"
	"trykey-dashboard/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *roomsvc.Service
}

// GetRooms GET /api/v1/assets/:asset_number/rooms?search=&filter=&page=
// A changed search term or facet always lands on page 1: the client omits
// the page parameter on selection changes and it defaults to 1 here.
func (h *Handlers) GetRooms(c *fiber.Ctx) error {
	assetNumber := c.Params("asset_number")
	facet := c.Query("filter")
	if !roomsvc.ValidFacet(facet) {
		return response.Error(c, "Unknown filter "+strconv.Quote(facet), fiber.StatusBadRequest, nil)
	}
	page, _ := strconv.Atoi(c.Query("page", "1"))

	view, err := h.Service.Directory(c.Context(), assetNumber, roomsvc.Query{
		Search: c.Query("search"),
		Facet:  facet,
		Page:   page,
	})
	if err != nil {
		return response.Error(c, err.Error(), fiber.StatusBadGateway, nil)
	}
	return response.Success(c, "Rooms fetched successfully", view, nil)
}
