package assets

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"trykey-dashboard/internal/domain"

	"github.com/redis/go-redis/v9"
)

const statusCachePrefix = "status:"

// defaultExpectedYield mirrors the dashboard's fixed expected-yield figure.
const defaultExpectedYield = 500000

var (
	ErrAssetNotFound = errors.New("Asset not found")
	ErrFetchFailed   = errors.New("Error fetching assets")
)

// PlatformClient abstracts the platform API calls this service needs.
type PlatformClient interface {
	ListAssets(ctx context.Context) ([]domain.Asset, error)
	AssetStatus(ctx context.Context, assetNumber string) (*domain.AssetStatus, error)
}

// Service serves the asset overview: the asset list, a single asset matched
// client-side by asset_number, and the cached occupancy status.
type Service struct {
	Client PlatformClient
	Rdb    *redis.Client
	TTL    time.Duration
}

// Detail is one asset plus its yield summary, as shown on the asset page.
type Detail struct {
	domain.Asset
	YieldGenerated float64 `json:"yield_generated"`
	ExpectedYield  float64 `json:"expected_yield"`
	YieldPercent   float64 `json:"yield_percent"`
}

// ListAssets returns every asset visible to the credential.
func (s *Service) ListAssets(ctx context.Context) ([]domain.Asset, error) {
	assets, err := s.Client.ListAssets(ctx)
	if err != nil {
		return nil, ErrFetchFailed
	}
	return assets, nil
}

// GetAsset fetches the list and matches the asset_number client-side; the
// platform has no single-asset endpoint.
func (s *Service) GetAsset(ctx context.Context, assetNumber string) (*Detail, error) {
	assets, err := s.Client.ListAssets(ctx)
	if err != nil {
		return nil, ErrFetchFailed
	}
	for _, a := range assets {
		if a.AssetNumber == assetNumber {
			d := &Detail{Asset: a, ExpectedYield: defaultExpectedYield}
			d.YieldGenerated, _ = strconv.ParseFloat(a.TotalRevenue, 64)
			if d.ExpectedYield > 0 {
				d.YieldPercent = d.YieldGenerated / d.ExpectedYield * 100
			}
			return d, nil
		}
	}
	return nil, ErrAssetNotFound
}

// Status returns the occupancy aggregate and daily series, through the cache.
func (s *Service) Status(ctx context.Context, assetNumber string) (*domain.AssetStatus, error) {
	key := statusCachePrefix + assetNumber
	if s.Rdb != nil {
		if b, err := s.Rdb.Get(ctx, key).Bytes(); err == nil {
			var cached domain.AssetStatus
			if json.Unmarshal(b, &cached) == nil {
				return &cached, nil
			}
		}
	}
	return s.RefreshStatus(ctx, assetNumber)
}

// RefreshStatus fetches the status from the platform and overwrites the
// cache unconditionally. Used by Status on a miss and by the poller.
func (s *Service) RefreshStatus(ctx context.Context, assetNumber string) (*domain.AssetStatus, error) {
	status, err := s.Client.AssetStatus(ctx, assetNumber)
	if err != nil {
		return nil, err
	}
	if s.Rdb != nil {
		if b, err := json.Marshal(status); err == nil {
			s.Rdb.Set(ctx, statusCachePrefix+assetNumber, b, s.ttl())
		}
	}
	return status, nil
}

func (s *Service) ttl() time.Duration {
	if s.TTL > 0 {
		return s.TTL
	}
	return 30 * time.Second
}
