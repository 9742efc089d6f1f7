// internal/poller/runner.go
package poller

import (
	"context"
	"time"
)

// Run drives the fixed-cadence acquisition loop until ctx is cancelled.
// The ticker anchors every cycle to the schedule, so a slow cycle never
// accumulates drift. Cancellation is observed between cycles; a cycle
// once started runs to completion. Per-cycle failures are logged and the
// next cycle starts from a fresh read.
func (p *Poller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := p.PollOnce(); err != nil {
				p.log.Warn().Err(err).Msg("poll cycle skipped")
			}
		}
	}
}
