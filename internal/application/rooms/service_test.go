package rooms

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"trykey-dashboard/internal/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFetcher struct {
	rooms []domain.Room
	err   error
	calls int
}

func (f *stubFetcher) ListRooms(ctx context.Context, assetNumber string) ([]domain.Room, error) {
	f.calls++
	return f.rooms, f.err
}

func makeRooms(n int) []domain.Room {
	out := make([]domain.Room, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, domain.Room{
			RoomNumber: fmt.Sprintf("%d", i),
			RoomType:   "standard",
			Status:     i%2 == 0,
			Occupancy:  i % 3,
		})
	}
	return out
}

func TestFilter_SearchSubstring(t *testing.T) {
	all := makeRooms(25)
	got := Filter(all, "3", "all")
	// 3, 13, 23
	require.Len(t, got, 3)
	for _, r := range got {
		assert.Contains(t, r.RoomNumber, "3")
	}
}

func TestFilter_SearchCaseInsensitive(t *testing.T) {
	all := []domain.Room{{RoomNumber: "A12"}, {RoomNumber: "B7"}}
	got := Filter(all, "a1", "all")
	require.Len(t, got, 1)
	assert.Equal(t, "A12", got[0].RoomNumber)
}

func TestFilter_Facets(t *testing.T) {
	all := []domain.Room{
		{RoomNumber: "1", Status: true, Occupancy: 2},
		{RoomNumber: "2", Status: false, Occupancy: 0},
		{RoomNumber: "3", Status: true, Occupancy: 0},
	}
	assert.Len(t, Filter(all, "", "paid"), 2)
	assert.Len(t, Filter(all, "", "unpaid"), 1)
	assert.Len(t, Filter(all, "", "occupied"), 1)
	assert.Len(t, Filter(all, "", "unoccupied"), 2)
	assert.Len(t, Filter(all, "", "all"), 3)
	assert.Len(t, Filter(all, "", ""), 3)
}

func TestFilter_Idempotent(t *testing.T) {
	all := makeRooms(25)
	once := Filter(all, "1", "paid")
	twice := Filter(once, "1", "paid")
	assert.Equal(t, once, twice)
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	all := makeRooms(10)
	before := make([]domain.Room, len(all))
	copy(before, all)
	Filter(all, "1", "occupied")
	assert.Equal(t, before, all)
}

func TestPaginate_TwentyRoomsTwoPages(t *testing.T) {
	filtered := makeRooms(20)

	page1, clamped, total := Paginate(filtered, 1)
	assert.Equal(t, 1, clamped)
	assert.Equal(t, 2, total)
	assert.Len(t, page1, PageSize)

	page2, clamped, total := Paginate(filtered, 2)
	assert.Equal(t, 2, clamped)
	assert.Equal(t, 2, total)
	assert.Len(t, page2, 4)
}

func TestPaginate_ClampsOutOfRange(t *testing.T) {
	filtered := makeRooms(20)

	_, clamped, _ := Paginate(filtered, 99)
	assert.Equal(t, 2, clamped)

	_, clamped, _ = Paginate(filtered, 0)
	assert.Equal(t, 1, clamped)

	_, clamped, _ = Paginate(filtered, -5)
	assert.Equal(t, 1, clamped)
}

func TestPaginate_EmptySet(t *testing.T) {
	rooms, clamped, total := Paginate(nil, 3)
	assert.Empty(t, rooms)
	assert.Equal(t, 1, clamped)
	assert.Equal(t, 1, total)
}

func TestValidFacet(t *testing.T) {
	assert.True(t, ValidFacet(""))
	assert.True(t, ValidFacet("all"))
	assert.True(t, ValidFacet("paid"))
	assert.True(t, ValidFacet("unoccupied"))
	assert.False(t, ValidFacet("vacant"))
}

func setupService(t *testing.T, fetcher *stubFetcher) (*Service, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return &Service{Client: fetcher, Rdb: rdb}, mr
}

func TestDirectory_FetchesAndCaches(t *testing.T) {
	fetcher := &stubFetcher{rooms: makeRooms(20)}
	svc, _ := setupService(t, fetcher)
	ctx := context.Background()

	view, err := svc.Directory(ctx, "KD123", Query{Page: 1})
	require.NoError(t, err)
	assert.Equal(t, 20, view.TotalRooms)
	assert.Equal(t, 2, view.TotalPages)
	assert.Len(t, view.Rooms, PageSize)
	assert.Equal(t, 0, view.IndexOfFirst)
	assert.Equal(t, 16, view.IndexOfLast)
	assert.Equal(t, "all", view.Facet)

	// Second read hits the cache
	_, err = svc.Directory(ctx, "KD123", Query{Page: 2})
	require.NoError(t, err)
	assert.Equal(t, 1, fetcher.calls)
}

func TestDirectory_SearchLandsOnPageOne(t *testing.T) {
	fetcher := &stubFetcher{rooms: makeRooms(25)}
	svc, _ := setupService(t, fetcher)

	view, err := svc.Directory(context.Background(), "KD123", Query{Search: "3", Page: 1})
	require.NoError(t, err)
	assert.Equal(t, 3, view.TotalRooms)
	assert.Equal(t, 1, view.TotalPages)
	assert.Equal(t, 1, view.Page)
}

func TestDirectory_FetchError(t *testing.T) {
	fetcher := &stubFetcher{err: errors.New("boom")}
	svc, _ := setupService(t, fetcher)

	view, err := svc.Directory(context.Background(), "KD123", Query{})
	assert.Nil(t, view)
	assert.Equal(t, ErrFetchFailed, err)
}

func TestFind(t *testing.T) {
	fetcher := &stubFetcher{rooms: makeRooms(5)}
	svc, _ := setupService(t, fetcher)
	ctx := context.Background()

	room, err := svc.Find(ctx, "KD123", "3")
	require.NoError(t, err)
	require.NotNil(t, room)
	assert.Equal(t, "3", room.RoomNumber)

	missing, err := svc.Find(ctx, "KD123", "99")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestInvalidate_ForcesRefetch(t *testing.T) {
	fetcher := &stubFetcher{rooms: makeRooms(4)}
	svc, _ := setupService(t, fetcher)
	ctx := context.Background()

	_, err := svc.Directory(ctx, "KD123", Query{})
	require.NoError(t, err)
	require.NoError(t, svc.Invalidate(ctx, "KD123"))

	_, err = svc.Directory(ctx, "KD123", Query{})
	require.NoError(t, err)
	assert.Equal(t, 2, fetcher.calls)
}

func TestDirectory_WorksWithoutRedis(t *testing.T) {
	fetcher := &stubFetcher{rooms: makeRooms(4)}
	svc := &Service{Client: fetcher}

	view, err := svc.Directory(context.Background(), "KD123", Query{})
	require.NoError(t, err)
	assert.Equal(t, 4, view.TotalRooms)
}
