package kafka

import (
	"context"
	"log/slog"

	"github.com/niksmo/visionframe/internal/core/domain"
	"github.com/niksmo/visionframe/internal/core/port"
	"github.com/niksmo/visionframe/internal/core/query"
	"github.com/twmb/franz-go/pkg/kgo"
)

var _ port.EventsProducer = (*EventsProducer)(nil)

// A producer is used for composition.
//
// Producing records to kafka broker and closing underlying [kgo.Client].
type producer struct {
	opPrefix string
	cl       ProducerClient
}

func (p producer) close() {
	const op = "close"
	log := slog.With("op", makeOp(p.opPrefix, op))
	log.Info("closing producer...")
	p.cl.Close()
	log.Info("producer is closed")
}

func (p producer) produce(
	ctx context.Context, rs ...*kgo.Record,
) error {
	const op = "produce"
	res := p.cl.ProduceSync(ctx, rs...)
	if err := res.FirstErr(); err != nil {
		return opErr(err, p.opPrefix, op)
	}
	return nil
}

// An EventsProducer used for produce [domain.FavoriteEvent]
// and [domain.SearchEvent].
type EventsProducer struct {
	producer      producer
	favoriteSerde Encoder
	searchSerde   Encoder
	favoriteTopic string
	searchTopic   string
	opPrefix      string
}

func NewEventsProducer(opts ...ProducerOpt) (EventsProducer, error) {
	const op = "NewEventsProducer"

	if len(opts) != 3 {
		panic(opErr(ErrTooFewOpts, op)) // develop mistake
	}

	var options producerOpts
	for _, opt := range opts {
		if err := opt(&options); err != nil {
			return EventsProducer{}, opErr(err, op)
		}
	}
	if options.cl == nil ||
		options.favoriteSerde == nil || options.searchSerde == nil {
		panic(opErr(ErrTooFewOpts, op)) // develop mistake
	}

	opPrefix := "EventsProducer"
	p := producer{
		opPrefix: opPrefix,
		cl:       options.cl,
	}

	return EventsProducer{
		producer:      p,
		favoriteSerde: options.favoriteSerde,
		searchSerde:   options.searchSerde,
		favoriteTopic: options.favoriteTopic,
		searchTopic:   options.searchTopic,
		opPrefix:      opPrefix,
	}, nil
}

func (p EventsProducer) Close() {
	p.producer.close()
}

// ProduceFavoriteEvent sends e keyed by product id, so all events
// of one product land in one partition in order.
func (p EventsProducer) ProduceFavoriteEvent(
	ctx context.Context, e domain.FavoriteEvent,
) error {
	const op = "ProduceFavoriteEvent"

	if err := ctx.Err(); err != nil {
		return opErr(err, p.opPrefix, op)
	}

	b, err := p.favoriteSerde.Encode(favoriteEventToSchemaV1(e))
	if err != nil {
		return opErr(err, p.opPrefix, op)
	}

	r := &kgo.Record{
		Topic: p.favoriteTopic,
		Key:   []byte(e.ProductID),
		Value: b,
	}
	if err := p.producer.produce(ctx, r); err != nil {
		return opErr(err, p.opPrefix, op)
	}
	return nil
}

// ProduceSearchEvent sends e keyed by the case-folded query.
func (p EventsProducer) ProduceSearchEvent(
	ctx context.Context, e domain.SearchEvent,
) error {
	const op = "ProduceSearchEvent"

	if err := ctx.Err(); err != nil {
		return opErr(err, p.opPrefix, op)
	}

	b, err := p.searchSerde.Encode(searchEventToSchemaV1(e))
	if err != nil {
		return opErr(err, p.opPrefix, op)
	}

	r := &kgo.Record{
		Topic: p.searchTopic,
		Key:   []byte(query.Fold(e.Query)),
		Value: b,
	}
	if err := p.producer.produce(ctx, r); err != nil {
		return opErr(err, p.opPrefix, op)
	}
	return nil
}
