package domain

// Asset types known to the platform.
const (
	AssetTypeHotel     = "hotel"
	AssetTypeTransport = "transport"
	AssetTypeLogistics = "logistics"
)

// Asset is a top-level investable unit as returned by GET /assets/.
type Asset struct {
	AssetNumber   string `json:"asset_number"`
	AssetType     string `json:"asset_type"`
	AssetName     string `json:"asset_name"`
	Location      string `json:"location"`
	TotalRevenue  string `json:"total_revenue"`
	Details       string `json:"details"`
	AccountNumber string `json:"account_number"`
	Bank          string `json:"bank"`
	UserRole      string `json:"user_role"`
	SubAssetCount int    `json:"sub_asset_count"`
}

// DailyStat is one point of the occupancy series in the asset status payload.
type DailyStat struct {
	Date          string `json:"date"`
	OccupiedRooms int    `json:"occupied_rooms"`
	ActiveRooms   int    `json:"active_rooms"`
}

// AssetStatus is the occupancy/room aggregate from GET /assets/{n}/status/.
type AssetStatus struct {
	TotalRooms         int         `json:"total_rooms"`
	TotalActiveRooms   int         `json:"total_active_rooms"`
	TotalOccupiedRooms int         `json:"total_occupied_rooms"`
	DailyStats         []DailyStat `json:"daily_stats"`
}
