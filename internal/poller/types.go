// internal/poller/types.go
package poller

import (
	"time"

	"github.com/p-conrad/modbus-mqtt-adapter/internal/layout"
	"github.com/p-conrad/modbus-mqtt-adapter/internal/record"
)

// Client abstracts the register transport. The poller issues exactly one
// contiguous input-register read per cycle; connection lifecycle belongs
// to the implementation.
type Client interface {
	ReadInputRegisters(addr, qty uint16) ([]uint16, error)
}

// Sink accepts finished records for asynchronous delivery. Submit must
// return immediately regardless of transport health; delivery failures
// never surface back to the poller.
type Sink interface {
	Submit(rec record.Record)
}

// Config is the minimal runtime config the poller needs.
type Config struct {
	Device      string
	BaseAddress uint16
	Modules     int
	Interval    time.Duration
	Layout      layout.Layout
}
