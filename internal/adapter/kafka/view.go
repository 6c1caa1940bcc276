package kafka

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lovoo/goka"
	"github.com/niksmo/visionframe/internal/core/domain"
	"github.com/niksmo/visionframe/internal/core/port"
)

var _ port.PopularityReader = (*PopularityView)(nil)

// A PopularityViewConfig used for setup [PopularityView].
//
// Security is optional.
type PopularityViewConfig struct {
	SeedBrokers []string
	Group       string
	Security    Security
}

// A PopularityView serves popularity reads from a local copy
// of the popularity group table.
type PopularityView struct {
	gv *goka.View
}

func NewPopularityView(
	config PopularityViewConfig,
) (PopularityView, error) {
	const op = "NewPopularityView"

	applySASLTLS(config.Security)

	gv, err := goka.NewView(
		config.SeedBrokers,
		goka.GroupTable(goka.Group(config.Group)),
		counterCodec{},
	)
	if err != nil {
		return PopularityView{}, opErr(err, op)
	}

	return PopularityView{gv}, nil
}

// Run blocks until ctx is done.
func (v PopularityView) Run(ctx context.Context) {
	const op = "PopularityView.Run"
	log := slog.With("op", op)

	log.Info("running")
	err := v.gv.Run(ctx)
	if err != nil {
		log.Error("unexpected fail on run", "err", err)
		return
	}
	log.Info("stopped")
}

// Popularity returns the stored counter of productID. A product
// nobody has favorited yet has popularity zero.
//
// Until the view has recovered the table [domain.ErrUnavailable]
// is returned.
func (v PopularityView) Popularity(
	ctx context.Context, productID string,
) (int64, error) {
	const op = "PopularityView.Popularity"

	if err := ctx.Err(); err != nil {
		return 0, opErr(err, op)
	}
	if !v.gv.Recovered() {
		return 0, opErr(domain.ErrUnavailable, op)
	}

	value, err := v.gv.Get(productID)
	if err != nil {
		return 0, opErr(err, op)
	}
	if value == nil {
		return 0, nil
	}

	cv, ok := value.(counterValue)
	if !ok {
		err := fmt.Errorf("%w: %T", ErrInvalidValueType, value)
		return 0, opErr(err, op)
	}
	return int64(cv), nil
}
