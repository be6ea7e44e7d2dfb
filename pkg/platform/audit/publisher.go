package audit

import (
	"context"
	"log/slog"
	"sync"

	dErrors "veritas/pkg/domain-errors"
)

// AsyncPublisher queues events and writes them to the sink in a background
// goroutine so audit I/O never sits on the request path. When the buffer is
// full the event is dropped and counted rather than blocking a verification.
type AsyncPublisher struct {
	sink    Sink
	events  chan Event
	wg      sync.WaitGroup
	logger  *slog.Logger
	metrics *Metrics
	async   bool

	mu     sync.Mutex
	closed bool
}

// PublisherOption configures the AsyncPublisher.
type PublisherOption func(*AsyncPublisher)

// WithAsyncBuffer enables async processing with the specified buffer size.
// Events are queued and persisted in a background goroutine.
func WithAsyncBuffer(size int) PublisherOption {
	return func(p *AsyncPublisher) {
		if size > 0 {
			p.events = make(chan Event, size)
			p.async = true
		}
	}
}

// WithPublisherLogger sets a logger for async error reporting.
func WithPublisherLogger(logger *slog.Logger) PublisherOption {
	return func(p *AsyncPublisher) {
		p.logger = logger
	}
}

// WithPublisherMetrics sets the metrics collector for drop/failure counters.
func WithPublisherMetrics(m *Metrics) PublisherOption {
	return func(p *AsyncPublisher) {
		p.metrics = m
	}
}

func NewPublisher(sink Sink, opts ...PublisherOption) *AsyncPublisher {
	p := &AsyncPublisher{sink: sink}
	for _, opt := range opts {
		opt(p)
	}
	if p.async {
		p.wg.Add(1)
		go p.processEvents()
	}
	return p
}

// processEvents runs in a goroutine and persists events from the channel.
func (p *AsyncPublisher) processEvents() {
	defer p.wg.Done()
	for event := range p.events {
		if err := p.sink.Write(context.Background(), event); err != nil {
			if p.metrics != nil {
				p.metrics.IncPersistFailures()
			}
			if p.logger != nil {
				p.logger.Warn("failed to persist audit event",
					"action", event.Action,
					"error", err,
				)
			}
		} else if p.metrics != nil {
			p.metrics.IncTracked()
		}
	}
}

// Emit records an audit event. In async mode a full buffer drops the event;
// in sync mode the sink is written inline and its error returned.
func (p *AsyncPublisher) Emit(ctx context.Context, event Event) error {
	if !p.async {
		if err := p.sink.Write(ctx, event); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "audit sink write failed")
		}
		if p.metrics != nil {
			p.metrics.IncTracked()
		}
		return nil
	}

	select {
	case p.events <- event:
		return nil
	default:
		if p.metrics != nil {
			p.metrics.IncDropped()
		}
		if p.logger != nil {
			p.logger.WarnContext(ctx, "audit buffer full, event dropped",
				"action", event.Action,
			)
		}
		return nil
	}
}

// Close drains the queue and stops the background goroutine.
func (p *AsyncPublisher) Close() {
	p.mu.Lock()
	if p.closed || !p.async {
		p.mu.Unlock()
		return
	}
	p.closed = true
	p.mu.Unlock()

	close(p.events)
	p.wg.Wait()
}

// SlogSink writes audit events as structured log lines. The default sink for
// deployments without a dedicated audit store.
type SlogSink struct {
	logger *slog.Logger
}

func NewSlogSink(logger *slog.Logger) *SlogSink {
	return &SlogSink{logger: logger}
}

func (s *SlogSink) Write(ctx context.Context, event Event) error {
	s.logger.InfoContext(ctx, "audit",
		"action", event.Action,
		"subject", event.Subject,
		"decision", event.Decision,
		"reason", event.Reason,
		"device", event.Device,
		"request_id", event.RequestID,
		"timestamp", event.Timestamp,
	)
	return nil
}
