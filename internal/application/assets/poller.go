package assets

import (
	"context"
	"time"

	"trykey-dashboard/internal/application/pending"

	"github.com/rs/zerolog/log"
)

// Poller refreshes the cached status of every asset on a fixed interval.
// Assets with a pending control or payment mutation are skipped for that
// tick, so a poll never overwrites state that is about to change; the
// staleness window closes on the next tick.
type Poller struct {
	Assets   *Service
	Pending  *pending.Registry
	Interval time.Duration
}

// Run polls until ctx is cancelled.
func (p *Poller) Run(ctx context.Context) {
	interval := p.Interval
	if interval <= 0 {
		interval = 30 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.tick(ctx)
		}
	}
}

func (p *Poller) tick(ctx context.Context) {
	assets, err := p.Assets.Client.ListAssets(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("status poll: asset list fetch failed")
		return
	}
	for _, a := range assets {
		if p.Pending != nil && p.Pending.AssetBusy(a.AssetNumber) {
			continue
		}
		if _, err := p.Assets.RefreshStatus(ctx, a.AssetNumber); err != nil {
			log.Warn().Err(err).Str("asset", a.AssetNumber).Msg("status poll: refresh failed")
		}
	}
}
