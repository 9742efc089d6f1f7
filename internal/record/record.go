// internal/record/record.go
package record

import (
	"github.com/p-conrad/modbus-mqtt-adapter/internal/layout"
)

// Record is the terminal dataset handed to the publish pipeline: one
// acquisition cycle's decoded modules, tagged with the source device and
// the capture timestamp.
type Record struct {
	Device    string          `json:"device"`
	Timestamp int64           `json:"timestamp"`
	Results   []layout.Module `json:"results"`
}

// Assemble packages decoded module blocks with device identity and a
// caller-supplied capture time (epoch seconds, taken at read time so that
// delivery latency never skews it). Pure packaging, no decision logic.
func Assemble(modules []layout.Module, device string, timestamp int64) Record {
	if modules == nil {
		modules = []layout.Module{}
	}
	return Record{
		Device:    device,
		Timestamp: timestamp,
		Results:   modules,
	}
}
