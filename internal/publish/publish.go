// internal/publish/publish.go
package publish

import (
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/p-conrad/modbus-mqtt-adapter/internal/record"
)

// Transport delivers serialized payloads to the message broker.
// Implementations own connection lifecycle, retries and reconnects.
type Transport interface {
	Publish(topic string, payload []byte) error
}

// Config is the minimal runtime config the pipeline needs.
type Config struct {
	Topic string

	// QueueSize bounds the handoff queue. A few cycles' worth is
	// plenty: stale telemetry has little value.
	QueueSize int

	// Grace bounds the flush of queued messages in Close.
	Grace time.Duration
}

// Pipeline decouples record delivery from the acquisition loop. Submit
// serializes and enqueues; a single worker drains the queue into the
// transport. When the queue is full the oldest payload is dropped, so the
// producer never blocks on a slow or dead broker.
type Pipeline struct {
	cfg   Config
	tr    Transport
	log   zerolog.Logger
	queue chan []byte
	done  chan struct{}

	dropped   atomic.Uint64
	closeOnce sync.Once
}

// New starts the pipeline's delivery worker.
func New(cfg Config, tr Transport, log zerolog.Logger) *Pipeline {
	if cfg.QueueSize < 1 {
		cfg.QueueSize = 16
	}
	if cfg.Grace <= 0 {
		cfg.Grace = 5 * time.Second
	}

	p := &Pipeline{
		cfg:   cfg,
		tr:    tr,
		log:   log,
		queue: make(chan []byte, cfg.QueueSize),
		done:  make(chan struct{}),
	}
	go p.run()
	return p
}

// Submit serializes rec and queues it for asynchronous delivery. The only
// work on the caller is serialization; the transport is never touched.
// Must not be called after Close.
func (p *Pipeline) Submit(rec record.Record) {
	payload, err := json.Marshal(rec)
	if err != nil {
		p.log.Error().Err(err).Msg("record serialization failed, message dropped")
		return
	}

	for {
		select {
		case p.queue <- payload:
			p.log.Debug().Int("bytes", len(payload)).Msg("record queued for publish")
			return
		default:
		}

		// Queue full: discard the oldest queued message and retry.
		select {
		case <-p.queue:
			total := p.dropped.Add(1)
			p.log.Warn().
				Uint64("dropped_total", total).
				Msg("publish queue full, oldest message dropped")
		default:
			// Worker drained the queue in between; retry the send.
		}
	}
}

// Dropped returns the number of messages discarded due to queue overflow.
func (p *Pipeline) Dropped() uint64 {
	return p.dropped.Load()
}

// run is the single delivery worker. Transport errors are logged and the
// message is dropped; they never propagate to the producer.
func (p *Pipeline) run() {
	defer close(p.done)

	for payload := range p.queue {
		if err := p.tr.Publish(p.cfg.Topic, payload); err != nil {
			p.log.Warn().Err(err).Msg("publish failed, message dropped")
		}
	}
}

// Close stops accepting submissions and flushes queued messages within the
// grace period. Messages still queued when the deadline passes are dropped.
func (p *Pipeline) Close() {
	p.closeOnce.Do(func() {
		close(p.queue)
	})

	select {
	case <-p.done:
	case <-time.After(p.cfg.Grace):
		p.log.Warn().
			Int("remaining", len(p.queue)).
			Msg("flush deadline exceeded, dropping queued messages")
	}
}
