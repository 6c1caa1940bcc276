package app

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/niksmo/visionframe/config"
	"github.com/niksmo/visionframe/internal/adapter"
	"github.com/niksmo/visionframe/internal/adapter/httphandler"
	"github.com/niksmo/visionframe/internal/adapter/kafka"
	"github.com/niksmo/visionframe/internal/adapter/storage"
	"github.com/niksmo/visionframe/internal/core/catalog"
	"github.com/niksmo/visionframe/internal/core/favorites"
	"github.com/niksmo/visionframe/internal/core/history"
	"github.com/niksmo/visionframe/internal/core/port"
	"github.com/niksmo/visionframe/internal/core/service"
	"github.com/niksmo/visionframe/pkg/schema"
	"github.com/twmb/franz-go/pkg/sr"
)

type serdes struct {
	favoriteEvent schema.Serde
	searchEvent   schema.Serde
}

type broker struct {
	enabled    bool
	security   kafka.Security
	serdes     serdes
	producer   kafka.EventsProducer
	processor  *kafka.PopularityProcessor
	popularity kafka.PopularityView
}

type App struct {
	ctx        context.Context
	cfg        config.Config
	kv         port.KVStorage
	closeKV    func()
	broker     broker
	service    service.Service
	httpServer httphandler.HTTPServer
}

func New(ctx context.Context, cfg config.Config) *App {
	app := &App{ctx: ctx, cfg: cfg}

	app.initLogger()
	app.initStorage()
	app.initBroker()
	app.initCoreService()
	app.initInboundAdapters()

	return app
}

func (app *App) initLogger() {
	opts := &slog.HandlerOptions{Level: app.cfg.LogLevel}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, opts))
	slog.SetDefault(logger)
}

func (app *App) initStorage() {
	const op = "App.initStorage"

	switch app.cfg.Storage.Backend {
	case config.BackendPostgres:
		db, err := storage.NewSQLDB(app.ctx, app.cfg.Storage.PostgresDSN)
		if err != nil {
			app.fallDown(op, err)
		}
		app.kv = storage.NewSQLKV(db)
		app.closeKV = db.Close
	case config.BackendRedis:
		kv, err := storage.NewRedisKV(app.ctx, app.cfg.Storage.RedisURL)
		if err != nil {
			app.fallDown(op, err)
		}
		app.kv = kv
		app.closeKV = kv.Close
	default:
		app.kv = storage.NewMemoryKV()
		app.closeKV = func() {}
		slog.Warn("in-memory storage: state is lost on restart", "op", op)
	}
}

func (app *App) initBroker() {
	if !app.cfg.Broker.Enabled {
		slog.Info("broker is disabled, events and popularity are off")
		return
	}
	app.broker.enabled = true

	app.initSecurity()
	app.initSerdes()
	app.initOutboundAdapters()
}

func (app *App) initSecurity() {
	const op = "App.initSecurity"

	var tlsConfig *tls.Config
	files := app.cfg.Broker.TLS
	if files.Enabled() {
		var err error
		tlsConfig, err = adapter.MakeTLSConfig(files.CA, files.Cert, files.Key)
		if err != nil {
			app.fallDown(op, err)
		}
	}

	app.broker.security = kafka.Security{
		TLSConfig: tlsConfig,
		User:      app.cfg.Broker.SASL.User,
		Pass:      app.cfg.Broker.SASL.Pass,
	}
}

func (app *App) initSerdes() {
	const op = "App.initSerdes"
	urls := app.cfg.Broker.SchemaRegistryURLs
	ctx := app.ctx

	srOpts := []sr.ClientOpt{sr.URLs(urls...)}
	if tlsConfig := app.broker.security.TLSConfig; tlsConfig != nil {
		srOpts = append(srOpts, sr.DialTLSConfig(tlsConfig))
	}
	srClient, err := sr.NewClient(srOpts...)
	if err != nil {
		app.fallDown(op, err)
	}

	schemaCreator := schema.NewSchemaCreator(srClient)

	favoriteSS := schema.ValueSubject(app.cfg.Broker.Topics.FavoriteEvents)
	favoriteSerde, err := schema.NewSerdeFavoriteEventV1(
		ctx,
		schema.SubjectOpt(favoriteSS),
		schema.SchemaIdentifierOpt(schemaCreator),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	searchSS := schema.ValueSubject(app.cfg.Broker.Topics.SearchEvents)
	searchSerde, err := schema.NewSerdeSearchEventV1(
		ctx,
		schema.SubjectOpt(searchSS),
		schema.SchemaIdentifierOpt(schemaCreator),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	app.broker.serdes.favoriteEvent = favoriteSerde
	app.broker.serdes.searchEvent = searchSerde
}

func (app *App) initOutboundAdapters() {
	const op = "App.initOutboundAdapters"

	ctx := app.ctx
	seedBrokers := app.cfg.Broker.SeedBrokers
	topics := app.cfg.Broker.Topics
	group := app.cfg.Broker.Consumers.PopularityGroup
	sec := app.broker.security

	producer, err := kafka.NewEventsProducer(
		kafka.ProducerClientOpt(ctx, seedBrokers, sec),
		kafka.ProducerFavoriteEventsOpt(
			topics.FavoriteEvents, app.broker.serdes.favoriteEvent,
		),
		kafka.ProducerSearchEventsOpt(
			topics.SearchEvents, app.broker.serdes.searchEvent,
		),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	processor, err := kafka.NewPopularityProc(
		seedBrokers,
		topics.FavoriteEvents,
		group,
		app.broker.serdes.favoriteEvent,
		sec,
	)
	if err != nil {
		app.fallDown(op, err)
	}

	view, err := kafka.NewPopularityView(kafka.PopularityViewConfig{
		SeedBrokers: seedBrokers,
		Group:       group,
		Security:    sec,
	})
	if err != nil {
		app.fallDown(op, err)
	}

	app.broker.producer = producer
	app.broker.processor = processor
	app.broker.popularity = view
}

func (app *App) initCoreService() {
	const op = "App.initCoreService"

	c := catalog.Default()
	slog.Info("catalog is loaded", "op", op, "products", c.Len())

	favoritesStore := favorites.NewStore(app.kv, app.cfg.Storage.FavoritesKey)
	historyStore := history.NewStore(app.kv, app.cfg.Storage.HistoryKey)

	if !app.broker.enabled {
		app.service = service.New(
			c, favoritesStore, historyStore, nil, nil, nil,
		)
		return
	}

	app.service = service.New(
		c,
		favoritesStore,
		historyStore,
		app.broker.producer,
		app.broker.popularity,
		app.broker.processor,
	)
}

func (app *App) initInboundAdapters() {
	addr := app.cfg.HTTPServerAddr
	mux := http.NewServeMux()
	httphandler.RegisterProducts(mux, app.service)
	httphandler.RegisterSearch(mux, app.service)
	httphandler.RegisterFavorites(mux, app.service)
	httphandler.RegisterCart(mux, app.service)

	handler := httphandler.LogRequests(httphandler.AllowJSON(mux))
	app.httpServer = httphandler.NewHTTPServer(
		addr, handler, app.cfg.RequestTimeout,
	)
}

// Run loads persisted state, starts background components
// and the http server.
func (app *App) Run(stopFn context.CancelFunc) {
	app.service.Run(app.ctx, stopFn)

	if app.broker.enabled {
		go app.broker.popularity.Run(app.ctx)
	}

	go app.httpServer.Run(stopFn)

	slog.Info("application is running")
}

func (app *App) Close(ctx context.Context) {
	slog.Info("application is closing...")

	app.httpServer.Close(ctx)
	app.service.Close()
	if app.broker.enabled {
		app.broker.producer.Close()
	}
	app.closeKV()

	slog.Info("application is closed")
}

func (app *App) fallDown(op string, err error) {
	panic(fmt.Errorf("%s: %w", op, err))
}
