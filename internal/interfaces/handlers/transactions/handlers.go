package transactions

import (
	txsvc "trykey-dashboard/internal/application/transactions"
	"trykey-dashboard/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *txsvc.Service
}

// GetTransactions GET /api/v1/assets/:asset_number/transactions
func (h *Handlers) GetTransactions(c *fiber.Ctx) error {
	assetNumber := c.Params("asset_number")
	rows, err := h.Service.List(c.Context(), assetNumber)
	if err != nil {
		return response.Error(c, err.Error(), fiber.StatusBadGateway, nil)
	}
	return response.Success(c, "Transactions fetched successfully", rows, nil)
}
