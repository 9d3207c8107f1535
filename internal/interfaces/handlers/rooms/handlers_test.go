package rooms

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	roomsvc "trykey-dashboard/internal/application/rooms"
	"trykey-dashboard/internal/domain"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFetcher struct {
	rooms []domain.Room
	err   error
}

func (f *stubFetcher) ListRooms(ctx context.Context, assetNumber string) ([]domain.Room, error) {
	return f.rooms, f.err
}

func setupRoomsApp(fetcher *stubFetcher) *fiber.App {
	h := &Handlers{Service: &roomsvc.Service{Client: fetcher}}
	app := fiber.New()
	app.Get("/assets/:asset_number/rooms", h.GetRooms)
	return app
}

func makeRooms(n int) []domain.Room {
	out := make([]domain.Room, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, domain.Room{RoomNumber: fmt.Sprintf("%d", i), Occupancy: i % 2})
	}
	return out
}

func TestGetRooms_FirstPage(t *testing.T) {
	app := setupRoomsApp(&stubFetcher{rooms: makeRooms(20)})

	req := httptest.NewRequest("GET", "/assets/KD123/rooms", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	b, _ := io.ReadAll(resp.Body)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &out))
	assert.Equal(t, "success", out["status"])
	data, _ := out["data"].(map[string]interface{})
	require.NotNil(t, data)
	assert.Equal(t, float64(20), data["total_rooms"])
	assert.Equal(t, float64(2), data["total_pages"])
	assert.Equal(t, float64(1), data["page"])
	rooms, _ := data["rooms"].([]interface{})
	assert.Len(t, rooms, 16)
}

func TestGetRooms_SearchAndPage(t *testing.T) {
	app := setupRoomsApp(&stubFetcher{rooms: makeRooms(25)})

	req := httptest.NewRequest("GET", "/assets/KD123/rooms?search=3&page=1", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	b, _ := io.ReadAll(resp.Body)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &out))
	data, _ := out["data"].(map[string]interface{})
	assert.Equal(t, float64(3), data["total_rooms"])
	assert.Equal(t, "3", data["search"])
}

func TestGetRooms_UnknownFilter(t *testing.T) {
	app := setupRoomsApp(&stubFetcher{rooms: makeRooms(5)})

	req := httptest.NewRequest("GET", "/assets/KD123/rooms?filter=vacant", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestGetRooms_UpstreamFailure(t *testing.T) {
	app := setupRoomsApp(&stubFetcher{err: fmt.Errorf("connection refused")})

	req := httptest.NewRequest("GET", "/assets/KD123/rooms", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadGateway, resp.StatusCode)

	b, _ := io.ReadAll(resp.Body)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &out))
	assert.Equal(t, "error", out["status"])
	errObj, _ := out["error"].(map[string]interface{})
	require.NotNil(t, errObj)
	assert.Equal(t, "Error fetching rooms", errObj["message"])
}
