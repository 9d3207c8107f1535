package rooms

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"trykey-dashboard/internal/domain"

	"github.com/redis/go-redis/v9"
)

// PageSize is the fixed display page size of the room grid.
const PageSize = 16

const cachePrefix = "rooms:"

// ErrFetchFailed is the terminal error for the directory section; the
// dashboard shows it in place of the grid with no automatic retry.
var ErrFetchFailed = errors.New("Error fetching rooms")

// RoomFetcher abstracts the platform client for testability.
type RoomFetcher interface {
	ListRooms(ctx context.Context, assetNumber string) ([]domain.Room, error)
}

// Service serves the room directory: a cached fetch of the full room set,
// with filtering and pagination derived per request.
type Service struct {
	Client RoomFetcher
	Rdb    *redis.Client
	TTL    time.Duration
}

// Query is the directory view selection. An empty facet means "all".
type Query struct {
	Search string
	Facet  string
	Page   int
}

// View is one page of the filtered directory.
type View struct {
	Rooms        []domain.Room `json:"rooms"`
	Page         int           `json:"page"`
	TotalPages   int           `json:"total_pages"`
	TotalRooms   int           `json:"total_rooms"`
	IndexOfFirst int           `json:"index_of_first"`
	IndexOfLast  int           `json:"index_of_last"`
	Search       string        `json:"search"`
	Facet        string        `json:"facet"`
}

// ValidFacet reports whether f is a known status facet.
func ValidFacet(f string) bool {
	switch f {
	case "", "all", "paid", "unpaid", "occupied", "unoccupied":
		return true
	}
	return false
}

// Filter derives the subset of rooms matching the search term and facet.
// The search is a case-insensitive substring match on room_number; the facet
// predicates test the paid flag and occupancy. The input slice is never
// mutated.
func Filter(all []domain.Room, search, facet string) []domain.Room {
	search = strings.ToLower(search)
	out := make([]domain.Room, 0, len(all))
	for _, r := range all {
		if search != "" && !strings.Contains(strings.ToLower(r.RoomNumber), search) {
			continue
		}
		switch facet {
		case "", "all":
		case "paid":
			if !r.Status {
				continue
			}
		case "unpaid":
			if r.Status {
				continue
			}
		case "occupied":
			if !r.Occupied() {
				continue
			}
		case "unoccupied":
			if r.Occupied() {
				continue
			}
		}
		out = append(out, r)
	}
	return out
}

// Paginate slices one display page out of the filtered set. The requested
// page is clamped into [1, totalPages]; totalPages is never below 1 so an
// empty set still renders page 1 of 1.
func Paginate(filtered []domain.Room, page int) (pageRooms []domain.Room, clamped, totalPages int) {
	totalPages = (len(filtered) + PageSize - 1) / PageSize
	if totalPages < 1 {
		totalPages = 1
	}
	clamped = page
	if clamped < 1 {
		clamped = 1
	}
	if clamped > totalPages {
		clamped = totalPages
	}
	first := (clamped - 1) * PageSize
	last := first + PageSize
	if last > len(filtered) {
		last = len(filtered)
	}
	return filtered[first:last], clamped, totalPages
}

// Directory fetches the room set for the asset (through the cache) and
// derives the requested view. A selection change is expressed by the caller
// re-querying from page 1.
func (s *Service) Directory(ctx context.Context, assetNumber string, q Query) (*View, error) {
	all, err := s.fetch(ctx, assetNumber)
	if err != nil {
		return nil, ErrFetchFailed
	}

	facet := q.Facet
	if facet == "" {
		facet = "all"
	}
	filtered := Filter(all, q.Search, facet)
	pageRooms, page, totalPages := Paginate(filtered, q.Page)

	first := (page - 1) * PageSize
	return &View{
		Rooms:        pageRooms,
		Page:         page,
		TotalPages:   totalPages,
		TotalRooms:   len(filtered),
		IndexOfFirst: first,
		IndexOfLast:  first + len(pageRooms),
		Search:       q.Search,
		Facet:        facet,
	}, nil
}

// Find returns the room with the given number, or nil if the asset has none.
func (s *Service) Find(ctx context.Context, assetNumber, roomNumber string) (*domain.Room, error) {
	all, err := s.fetch(ctx, assetNumber)
	if err != nil {
		return nil, ErrFetchFailed
	}
	for i := range all {
		if all[i].RoomNumber == roomNumber {
			return &all[i], nil
		}
	}
	return nil, nil
}

// Invalidate drops the cached room set so the next read refetches. Called
// after a successful control command (refetch-after-mutation model).
func (s *Service) Invalidate(ctx context.Context, assetNumber string) error {
	if s.Rdb == nil {
		return nil
	}
	return s.Rdb.Del(ctx, cachePrefix+assetNumber).Err()
}

func (s *Service) fetch(ctx context.Context, assetNumber string) ([]domain.Room, error) {
	key := cachePrefix + assetNumber
	if s.Rdb != nil {
		if b, err := s.Rdb.Get(ctx, key).Bytes(); err == nil {
			var cached []domain.Room
			if json.Unmarshal(b, &cached) == nil {
				return cached, nil
			}
		}
	}

	all, err := s.Client.ListRooms(ctx, assetNumber)
	if err != nil {
		return nil, err
	}
	if s.Rdb != nil {
		if b, err := json.Marshal(all); err == nil {
			s.Rdb.Set(ctx, key, b, s.ttl())
		}
	}
	return all, nil
}

func (s *Service) ttl() time.Duration {
	if s.TTL > 0 {
		return s.TTL
	}
	return 30 * time.Second
}
