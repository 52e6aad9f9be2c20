package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sethvargo/go-retry"

	"github.com/jwalitptl/restaurant-admin/pkg/messaging"
	"github.com/jwalitptl/restaurant-admin/pkg/metrics"
)

// Nop drops every event.
type Nop struct{}

func (Nop) Publish(context.Context, Event) {}

type BrokerConfig struct {
	Channel    string
	MaxRetries uint64
	Backoff    time.Duration
	Timeout    time.Duration
}

// BrokerPublisher sends events to a broker in the background. Failures
// are logged and counted, never returned to the caller.
type BrokerPublisher struct {
	broker  messaging.Broker
	cfg     BrokerConfig
	metrics *metrics.Metrics
	wg      sync.WaitGroup
}

func NewBrokerPublisher(b messaging.Broker, cfg BrokerConfig, m *metrics.Metrics) *BrokerPublisher {
	if cfg.Channel == "" {
		cfg.Channel = Channel
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 3
	}
	if cfg.Backoff <= 0 {
		cfg.Backoff = 50 * time.Millisecond
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	return &BrokerPublisher{broker: b, cfg: cfg, metrics: m}
}

// Publish returns immediately. The request context only contributes its
// values; the send outlives the request.
func (p *BrokerPublisher) Publish(ctx context.Context, e Event) {
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.cfg.Timeout)
		defer cancel()

		err := p.send(ctx, e)
		p.metrics.ObserveEvent(err)
		if err != nil {
			log.Error().Err(err).
				Str("event_id", e.ID.String()).
				Str("type", string(e.Type)).
				Msg("Failed to publish mutation event")
		}
	}()
}

func (p *BrokerPublisher) send(ctx context.Context, e Event) error {
	backoff := retry.WithMaxRetries(p.cfg.MaxRetries, retry.NewExponential(p.cfg.Backoff))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		msg := messaging.Message{Type: string(e.Type), Payload: e}
		if err := p.broker.Publish(ctx, p.cfg.Channel, msg); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}
	return nil
}

// Close waits for in-flight publications and closes the broker.
func (p *BrokerPublisher) Close() error {
	p.wg.Wait()
	return p.broker.Close()
}
