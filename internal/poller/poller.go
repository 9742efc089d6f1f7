// internal/poller/poller.go
package poller

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/p-conrad/modbus-mqtt-adapter/internal/record"
)

// Poller is a dumb, clock-driven reader: one contiguous register read,
// one decode, one dispatch per cycle. It owns no connection state and no
// history; every cycle starts from a fresh buffer.
type Poller struct {
	cfg    Config
	client Client
	sink   Sink
	log    zerolog.Logger
}

// New creates a poller with immutable config. The layout must already have
// passed validation.
func New(cfg Config, client Client, sink Sink, log zerolog.Logger) (*Poller, error) {
	if cfg.Device == "" {
		return nil, errors.New("poller: device name required")
	}
	if cfg.Interval <= 0 {
		return nil, errors.New("poller: interval must be > 0")
	}
	if cfg.Modules < 1 {
		return nil, errors.New("poller: at least one module required")
	}
	if cfg.Layout.WordsPerModule < 1 {
		return nil, errors.New("poller: layout module span required")
	}
	if client == nil {
		return nil, errors.New("poller: client required")
	}
	if sink == nil {
		return nil, errors.New("poller: sink required")
	}
	return &Poller{cfg: cfg, client: client, sink: sink, log: log}, nil
}

// PollOnce performs exactly one acquisition cycle: read, decode, assemble,
// dispatch. Any failure aborts the cycle and leaves nothing behind; the
// error is returned for logging only and never terminates the loop.
func (p *Poller) PollOnce() error {
	qty := uint16(p.cfg.Layout.WordsPerModule * p.cfg.Modules)

	// The capture timestamp is approximated as the midpoint of the
	// request, so downstream latency never skews it.
	before := time.Now()
	words, err := p.client.ReadInputRegisters(p.cfg.BaseAddress, qty)
	after := time.Now()

	if err != nil {
		return fmt.Errorf("register read failed: %w", err)
	}

	modules, err := p.cfg.Layout.Decode(words)
	if err != nil {
		// Most likely a transient malformed response; a bad layout
		// would not have survived startup validation.
		return fmt.Errorf("decode failed: %w", err)
	}

	captured := (before.Unix() + after.Unix()) / 2
	rec := record.Assemble(modules, p.cfg.Device, captured)

	p.sink.Submit(rec)

	p.log.Debug().
		Int("modules", len(modules)).
		Int64("timestamp", captured).
		Msg("cycle dispatched")

	return nil
}
