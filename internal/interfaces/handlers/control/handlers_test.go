package control

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	controlsvc "trykey-dashboard/internal/application/control"
	"trykey-dashboard/internal/application/pending"
	roomsvc "trykey-dashboard/internal/application/rooms"
	"trykey-dashboard/internal/domain"
	"trykey-dashboard/internal/trykey"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFetcher struct {
	rooms []domain.Room
}

func (f *stubFetcher) ListRooms(ctx context.Context, assetNumber string) ([]domain.Room, error) {
	return f.rooms, nil
}

type stubSender struct {
	message string
	err     error
	sent    []domain.ControlCommand
}

func (s *stubSender) SendControl(ctx context.Context, cmd domain.ControlCommand) (string, error) {
	s.sent = append(s.sent, cmd)
	return s.message, s.err
}

func setupControlApp(sender *stubSender, rooms []domain.Room) *fiber.App {
	rs := &roomsvc.Service{Client: &stubFetcher{rooms: rooms}}
	cs := &controlsvc.Service{Client: sender, Pending: pending.NewRegistry(), Rooms: rs}
	h := &Handlers{Service: cs, Rooms: rs}
	app := fiber.New()
	app.Post("/assets/:asset_number/rooms/:room_number/control", h.SendCommand)
	return app
}

func TestSendCommand_Success(t *testing.T) {
	sender := &stubSender{message: trykey.ControlSuccessMessage}
	app := setupControlApp(sender, []domain.Room{{RoomNumber: "12", Status: false}})

	body, _ := json.Marshal(map[string]string{"action_type": "electricity"})
	req := httptest.NewRequest("POST", "/assets/KD123/rooms/12/control", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	b, _ := io.ReadAll(resp.Body)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &out))
	assert.Equal(t, "success", out["status"])
	data, _ := out["data"].(map[string]interface{})
	require.NotNil(t, data)
	assert.Equal(t, "12", data["room_number"])
	assert.Equal(t, "turn_on", data["data"])

	require.Len(t, sender.sent, 1)
	assert.Equal(t, "KD123", sender.sent[0].AssetNumber)
}

func TestSendCommand_MissingActionType(t *testing.T) {
	sender := &stubSender{message: trykey.ControlSuccessMessage}
	app := setupControlApp(sender, []domain.Room{{RoomNumber: "12"}})

	body, _ := json.Marshal(map[string]string{})
	req := httptest.NewRequest("POST", "/assets/KD123/rooms/12/control", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Empty(t, sender.sent)
}

func TestSendCommand_UnknownActionType(t *testing.T) {
	sender := &stubSender{message: trykey.ControlSuccessMessage}
	app := setupControlApp(sender, []domain.Room{{RoomNumber: "12"}})

	body, _ := json.Marshal(map[string]string{"action_type": "thermostat"})
	req := httptest.NewRequest("POST", "/assets/KD123/rooms/12/control", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestSendCommand_RoomNotFound(t *testing.T) {
	sender := &stubSender{message: trykey.ControlSuccessMessage}
	app := setupControlApp(sender, []domain.Room{{RoomNumber: "12"}})

	body, _ := json.Marshal(map[string]string{"action_type": "door"})
	req := httptest.NewRequest("POST", "/assets/KD123/rooms/99/control", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestSendCommand_UnexpectedUpstreamMessage(t *testing.T) {
	sender := &stubSender{message: "Command queued"}
	app := setupControlApp(sender, []domain.Room{{RoomNumber: "12"}})

	body, _ := json.Marshal(map[string]string{"action_type": "ignition"})
	req := httptest.NewRequest("POST", "/assets/KD123/rooms/12/control", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadGateway, resp.StatusCode)
}
