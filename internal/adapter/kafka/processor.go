package kafka

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"sync"

	"github.com/lovoo/goka"
	"github.com/niksmo/visionframe/internal/core/port"
	"github.com/niksmo/visionframe/pkg/schema"
)

var _ port.PopularityProcessor = (*PopularityProcessor)(nil)

// A processor is used for composition.
//
// Running and closing the underlying [goka.Processor]
type processor struct {
	opPrefix string
	gp       *goka.Processor
}

func (p *processor) run(
	ctx context.Context, stopFn context.CancelFunc, wg *sync.WaitGroup,
) {
	const op = "run"
	log := slog.With("op", makeOp(p.opPrefix, op))

	defer wg.Done()

	go p.runProc(ctx, stopFn)

	log.Info("preparing...")
	p.waitForReady(ctx)
	log.Info("running")
}

func (p *processor) runProc(ctx context.Context, stopFn context.CancelFunc) {
	const op = "run"
	log := slog.With("op", makeOp(p.opPrefix, op))

	defer stopFn()

	err := p.gp.Run(ctx)
	if err != nil {
		log.Error("stopped", "err", err)
		return
	}
	log.Info("stopped")
}

func (p *processor) waitForReady(ctx context.Context) {
	const op = "waitForReady"
	log := slog.With("op", makeOp(p.opPrefix, op))

	err := p.gp.WaitForReadyContext(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		log.Error("fall down while preparing", "err", err)
		return
	}
}

func (p *processor) close() {
	const op = "close"
	log := slog.With("op", makeOp(p.opPrefix, op))

	log.Info("closing processor...")
	p.gp.Stop()
	log.Info("processor is closed")
}

// A favoriteEventCodec used for serde [schema.FavoriteEventV1]
type favoriteEventCodec struct {
	serde Serde
}

func newFavoriteEventCodec(s Serde) favoriteEventCodec {
	return favoriteEventCodec{s}
}

func (c favoriteEventCodec) Encode(v any) ([]byte, error) {
	const op = "favoriteEventCodec.Encode"
	if _, ok := v.(schema.FavoriteEventV1); !ok {
		return nil, opErr(ErrInvalidValueType, op)
	}
	return c.serde.Encode(v)
}

func (c favoriteEventCodec) Decode(data []byte) (any, error) {
	const op = "favoriteEventCodec.Decode"
	var s schema.FavoriteEventV1
	err := c.serde.Decode(data, &s)
	if err != nil {
		return nil, opErr(err, op)
	}
	return s, nil
}

// A counterValue is the number of clients holding a product as favorite.
type counterValue int64

// A counterCodec used for serde [counterValue]
type counterCodec struct{}

func (counterCodec) Encode(v any) ([]byte, error) {
	const op = "counterCodec.Encode"
	cv, ok := v.(counterValue)
	if !ok {
		return nil, opErr(ErrInvalidValueType, op)
	}
	return strconv.AppendInt(nil, int64(cv), 10), nil
}

func (counterCodec) Decode(data []byte) (any, error) {
	const op = "counterCodec.Decode"
	n, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return nil, opErr(err, op)
	}
	return counterValue(n), nil
}

// nextCounter applies one favorite event to the stored counter.
// The counter never drops below zero.
func nextCounter(stored any, event schema.FavoriteEventV1) counterValue {
	cur, _ := stored.(counterValue)
	if event.Favorited {
		return cur + 1
	}
	return max(0, cur-1)
}

// A PopularityProcessor counts favorite events per product id
// from the favorite events stream into the group table.
type PopularityProcessor struct {
	opPrefix string
	proc     processor
}

func NewPopularityProc(
	seedBrokers []string,
	inputStream string,
	group string,
	favoriteEventSerde Serde,
	sec Security,
	opts ...goka.ProcessorOption,
) (*PopularityProcessor, error) {
	const op = "NewPopularityProcessor"

	applySASLTLS(sec)

	var p PopularityProcessor

	gg := goka.DefineGroup(goka.Group(group),
		goka.Input(
			goka.Stream(inputStream),
			newFavoriteEventCodec(favoriteEventSerde),
			p.processFn,
		),
		goka.Persist(counterCodec{}),
	)

	opts = append([]goka.ProcessorOption{withNonlogProcOpt()}, opts...)
	gp, err := goka.NewProcessor(seedBrokers, gg, opts...)
	if err != nil {
		return nil, opErr(err, op)
	}

	p.opPrefix = "PopularityProcessor"
	p.proc = processor{
		opPrefix: p.opPrefix,
		gp:       gp,
	}

	return &p, nil
}

func (p *PopularityProcessor) Run(
	ctx context.Context, stopFn context.CancelFunc, wg *sync.WaitGroup,
) {
	p.proc.run(ctx, stopFn, wg)
}

func (p *PopularityProcessor) Close() {
	p.proc.close()
}

func (p *PopularityProcessor) processFn(ctx goka.Context, msg any) {
	const op = "processFn"

	event, _ := msg.(schema.FavoriteEventV1)
	log := slog.With(
		"op", makeOp("PopularityProcessor", op), "productID", ctx.Key(),
	)

	v := nextCounter(ctx.Value(), event)
	ctx.SetValue(v)
	log.Debug("popularity updated", "favorited", event.Favorited, "count", v)
}
