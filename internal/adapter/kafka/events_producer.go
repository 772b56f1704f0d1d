package kafka

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
	"github.com/niksmo/storefront/pkg/retry"
	"github.com/niksmo/storefront/pkg/schema"
	"github.com/twmb/franz-go/pkg/kgo"
)

var _ port.EventsEmitter = (*ClientEventsProducer)(nil)

const produceAttempts = 3

// A ClientEventsProducer publishes storefront interaction events to
// the client-events topic.
type ClientEventsProducer struct {
	cl      ProducerClient
	encoder Encoder
}

func NewClientEventsProducer(
	opts ...ProducerOpt,
) (ClientEventsProducer, error) {
	const op = "NewClientEventsProducer"

	if len(opts) != 2 {
		panic(fmt.Errorf("%s: %w", op, ErrTooFewOpts)) // develop mistake
	}

	var options producerOpts
	for _, opt := range opts {
		if err := opt(&options); err != nil {
			return ClientEventsProducer{}, fmt.Errorf("%s: %w", op, err)
		}
	}
	return ClientEventsProducer{options.cl, options.encoder}, nil
}

func (p ClientEventsProducer) Close() {
	const op = "ClientEventsProducer.Close"
	log := slog.With("op", op)
	log.Info("closing producer...")
	p.cl.Close()
	log.Info("producer is closed")
}

func (p ClientEventsProducer) EmitEvent(
	ctx context.Context, ev domain.ClientEvent,
) error {
	const op = "ClientEventsProducer.EmitEvent"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	r, err := p.createRecord(ev)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	err = retry.Do(ctx,
		retry.RetryConfig{
			MaxAttempts: produceAttempts,
			Backoff:     retry.ExponentialBackoff(100 * time.Millisecond),
		},
		func() error {
			return p.cl.ProduceSync(ctx, r).FirstErr()
		},
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (p ClientEventsProducer) createRecord(
	ev domain.ClientEvent,
) (*kgo.Record, error) {
	const op = "ClientEventsProducer.createRecord"

	s := p.toSchema(ev)
	v, err := p.encoder.Encode(s)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &kgo.Record{Key: []byte(s.Kind), Value: v}, nil
}

func (ClientEventsProducer) toSchema(
	ev domain.ClientEvent,
) (s schema.ClientEventV1) {
	s.Kind = string(ev.Kind)
	s.ProductID = ev.ProductID
	s.Quantity = ev.Quantity
	s.Total = ev.Total
	s.OccurredAt = ev.OccurredAt.UnixMilli()
	return s
}
