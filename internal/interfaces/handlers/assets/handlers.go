package assets

import (
	assetsvc "trykey-dashboard/internal/application/assets"
	"trykey-dashboard/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *assetsvc.Service
}

// GetAssets GET /api/v1/assets/
func (h *Handlers) GetAssets(c *fiber.Ctx) error {
	assets, err := h.Service.ListAssets(c.Context())
	if err != nil {
		return response.Error(c, err.Error(), fiber.StatusBadGateway, nil)
	}
	return response.Success(c, "Assets fetched successfully", assets, nil)
}

// GetAsset GET /api/v1/assets/:asset_number
func (h *Handlers) GetAsset(c *fiber.Ctx) error {
	assetNumber := c.Params("asset_number")
	detail, err := h.Service.GetAsset(c.Context(), assetNumber)
	if err != nil {
		if err == assetsvc.ErrAssetNotFound {
			return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
		}
		return response.Error(c, err.Error(), fiber.StatusBadGateway, nil)
	}
	return response.Success(c, "Asset fetched successfully", detail, nil)
}

// GetStatus GET /api/v1/assets/:asset_number/status
func (h *Handlers) GetStatus(c *fiber.Ctx) error {
	assetNumber := c.Params("asset_number")
	status, err := h.Service.Status(c.Context(), assetNumber)
	if err != nil {
		return response.Error(c, "Error fetching asset status", fiber.StatusBadGateway, nil)
	}
	return response.Success(c, "Asset status fetched successfully", status, nil)
}
