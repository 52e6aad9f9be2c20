// Package audit records the outcome of every console mutation: a metric,
// a log line and, on success, a published event.
package audit

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/jwalitptl/restaurant-admin/internal/session"
	"github.com/jwalitptl/restaurant-admin/pkg/event"
	"github.com/jwalitptl/restaurant-admin/pkg/logger"
	"github.com/jwalitptl/restaurant-admin/pkg/metrics"
)

type Service struct {
	publisher event.Publisher
	metrics   *metrics.Metrics
}

func NewService(p event.Publisher, m *metrics.Metrics) *Service {
	if p == nil {
		p = event.Nop{}
	}
	return &Service{publisher: p, metrics: m}
}

type LogOptions struct {
	ItemID  int64
	Changes map[string]interface{}
}

// Log records one mutation attempt. err is the mutation result.
func (s *Service) Log(ctx context.Context, entity, action string, id int64, err error, opts *LogOptions) {
	s.metrics.ObserveMutation(entity, action, err)

	e := event.New(entity, action, id)
	e.RequestID = logger.RequestID(ctx)
	if sess, ok := session.FromContext(ctx); ok {
		e.ActorID = sess.Account.ID.String()
	}
	if opts != nil {
		e.ItemID = opts.ItemID
		e.Changes = opts.Changes
	}

	l := zerolog.Ctx(ctx).With().
		Str("entity", entity).
		Str("action", action).
		Int64("record_id", id).
		Str("actor_id", e.ActorID).
		Logger()
	if err != nil {
		l.Warn().Err(err).Msg("Mutation failed")
		return
	}
	l.Info().Msg("Mutation applied")
	s.publisher.Publish(ctx, e)
}
