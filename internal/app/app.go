package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/niksmo/storefront/config"
	"github.com/niksmo/storefront/internal/adapter/catalogapi"
	"github.com/niksmo/storefront/internal/adapter/httphandler"
	"github.com/niksmo/storefront/internal/adapter/kafka"
	"github.com/niksmo/storefront/internal/adapter/storage"
	"github.com/niksmo/storefront/internal/core/port"
	"github.com/niksmo/storefront/internal/core/service"
	"github.com/niksmo/storefront/pkg/schema"
	"github.com/twmb/franz-go/pkg/sr"
)

type stores struct {
	catalog  *service.CatalogService
	cart     *service.CartService
	wishlist *service.WishlistService
	notices  *service.NoticeCenter
}

type App struct {
	ctx            context.Context
	cfg            config.Config
	blobs          storage.Blobs
	eventsProducer port.EventsEmitter
	eventsCloser   func()
	stores         stores
	httpServer     httphandler.HTTPServer
}

func New(ctx context.Context, cfg config.Config) *App {
	app := &App{ctx: ctx, cfg: cfg}

	app.initLogger()
	app.initStorage()
	app.initEventsProducer()
	app.initStores()
	app.initHTTPServer()

	return app
}

func (app *App) initLogger() {
	opts := &slog.HandlerOptions{Level: app.cfg.LogLevel}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, opts))
	slog.SetDefault(logger)
}

func (app *App) initStorage() {
	const op = "App.initStorage"

	blobs, err := storage.NewBlobs(app.cfg.StoragePath)
	if err != nil {
		app.fallDown(op, err)
	}
	app.blobs = blobs
}

// initEventsProducer wires the client-events analytics emitter. With
// no seed brokers configured the storefront runs without analytics.
func (app *App) initEventsProducer() {
	const op = "App.initEventsProducer"

	if len(app.cfg.Broker.SeedBrokers) == 0 {
		slog.Info("no seed brokers configured, client events are disabled")
		return
	}

	srClient, err := sr.NewClient(
		sr.URLs(app.cfg.Broker.SchemaRegistryURLs...),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	subject := app.cfg.Broker.Topics.ClientEvents + "-value"
	serde, err := schema.NewSerdeClientEventV1(
		app.ctx,
		schema.SubjectOpt(subject),
		schema.SchemaIdentifierOpt(schema.NewSchemaCreater(srClient)),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	producer, err := kafka.NewClientEventsProducer(
		kafka.ProducerClientOpt(
			app.ctx,
			app.cfg.Broker.SeedBrokers,
			app.cfg.Broker.Topics.ClientEvents,
		),
		kafka.ProducerEncoderOpt(serde),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	app.eventsProducer = producer
	app.eventsCloser = producer.Close
}

func (app *App) initStores() {
	notices := service.NewNoticeCenter(app.cfg.NoticeTTL)
	catalogClient := catalogapi.New(app.cfg.CatalogAPIURL)

	catalog := service.NewCatalogService(
		catalogClient, notices, app.cfg.SearchDebounce,
	)
	cart := service.NewCartService(
		app.ctx, app.blobs, notices, app.eventsProducer,
	)
	wishlist := service.NewWishlistService(
		app.ctx, app.blobs, notices, app.eventsProducer, cart,
	)

	app.stores = stores{catalog, cart, wishlist, notices}
}

func (app *App) initHTTPServer() {
	const op = "App.initHTTPServer"

	view, err := httphandler.NewRenderer(
		app.stores.catalog, app.stores.cart, app.stores.wishlist,
	)
	if err != nil {
		app.fallDown(op, err)
	}

	// One-way data flow: stores mutate, the renderer redraws.
	app.stores.catalog.Subscribe(view.RefreshCatalog)
	app.stores.cart.Subscribe(view.RefreshCart)
	app.stores.wishlist.Subscribe(view.RefreshWishlist)

	mux := http.NewServeMux()
	httphandler.RegisterViews(mux, view)
	httphandler.RegisterCatalog(mux, app.stores.catalog)
	httphandler.RegisterCart(mux, app.stores.cart, app.stores.catalog)
	httphandler.RegisterWishlist(mux, app.stores.wishlist, app.stores.catalog)
	httphandler.RegisterStatus(
		mux, app.stores.cart, app.stores.wishlist, app.stores.notices,
	)

	handler := httphandler.AllowJSON(mux)
	app.httpServer = httphandler.NewHTTPServer(app.cfg.HTTPServerAddr, handler)
}

func (app *App) Run(stopFn context.CancelFunc) {
	go app.httpServer.Run(stopFn)

	// Initial catalog load. A failure leaves the catalog empty with an
	// error notice; there is no automatic retry.
	go func() {
		const op = "App.Run"
		if err := app.stores.catalog.Load(app.ctx); err != nil {
			slog.Error("initial catalog load failed", "op", op, "err", err)
		}
	}()

	slog.Info("application is running")
}

func (app *App) Close(ctx context.Context) {
	slog.Info("application is closing...")

	app.httpServer.Close(ctx)
	if app.eventsCloser != nil {
		app.eventsCloser()
	}
	app.blobs.Close()

	slog.Info("application is closed")
}

func (app *App) fallDown(op string, err error) {
	panic(fmt.Errorf("%s: %w", op, err))
}
