// internal/poller/builder.go
package poller

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/p-conrad/modbus-mqtt-adapter/internal/config"
	pmodbus "github.com/p-conrad/modbus-mqtt-adapter/internal/poller/modbus"
)

// Build constructs a Poller and its Modbus client from configuration.
// The client dials lazily, so an unreachable device at startup is not
// fatal; the first cycles simply fail and are retried on schedule.
func Build(cfg *config.Config, sink Sink, log zerolog.Logger) (*Poller, func() error, error) {
	client, err := pmodbus.New(pmodbus.Config{
		Endpoint: fmt.Sprintf("%s:%d", cfg.Device.Host, cfg.Device.Port),
		UnitID:   cfg.Device.UnitID,
		Timeout:  time.Duration(cfg.Device.TimeoutMs) * time.Millisecond,
	})
	if err != nil {
		return nil, nil, err
	}

	p, err := New(
		Config{
			Device:      cfg.Device.Name,
			BaseAddress: cfg.Device.BaseAddress,
			Modules:     cfg.Device.Modules,
			Interval:    time.Duration(cfg.Poll.IntervalMs) * time.Millisecond,
			Layout:      cfg.Layout,
		},
		client,
		sink,
		log,
	)
	if err != nil {
		_ = client.Close()
		return nil, nil, err
	}

	return p, client.Close, nil
}
