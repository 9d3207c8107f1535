package domain

// Actuation targets supported by the platform.
const (
	ActionElectricity = "electricity"
	ActionIgnition    = "ignition"
	ActionDoor        = "door"
)

// Control payload values.
const (
	ControlTurnOn  = "turn_on"
	ControlTurnOff = "turn_off"
)

// ControlCommand is the transient actuation request sent to
// POST /assets/{asset}/control/{sub_asset}/. It is never persisted; the
// request itself is its only representation.
type ControlCommand struct {
	AssetNumber    string `json:"asset_number"`
	SubAssetNumber string `json:"sub_asset_number"`
	ActionType     string `json:"action_type"`
	Data           string `json:"data"`
}

// ValidActionType reports whether s names a known actuation target.
func ValidActionType(s string) bool {
	switch s {
	case ActionElectricity, ActionIgnition, ActionDoor:
		return true
	}
	return false
}
