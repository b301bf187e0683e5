package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync"

	"github.com/niksmo/marketplace/config"
	"github.com/niksmo/marketplace/internal/adapter"
	"github.com/niksmo/marketplace/internal/adapter/httphandler"
	"github.com/niksmo/marketplace/internal/adapter/imageurl"
	"github.com/niksmo/marketplace/internal/adapter/kafka"
	"github.com/niksmo/marketplace/internal/adapter/mailer"
	"github.com/niksmo/marketplace/internal/adapter/session"
	"github.com/niksmo/marketplace/internal/adapter/storage"
	"github.com/niksmo/marketplace/internal/adapter/tracking"
	"github.com/niksmo/marketplace/internal/core/port"
	"github.com/niksmo/marketplace/internal/core/service"
	"github.com/niksmo/marketplace/pkg/schema"
	"github.com/twmb/franz-go/pkg/sr"
)

type serdes struct {
	orderShipped schema.Serde
	bidPlaced    schema.Serde
}

type outbound struct {
	sqlDB          storage.SQLDB
	ordersRepo     storage.OrdersRepository
	bidsRepo       storage.BidsRepository
	auctionsRepo   storage.AuctionsRepository
	redis          session.Client
	sessionStorage session.Storage
	images         imageurl.Resolver
	tracking       tracking.Generator
	shipments      kafka.ShipmentProducer
	bidsEmitter    kafka.BidsEmitter
	bidSummaryView kafka.BidSummaryView
}

type coreService struct {
	stores        service.Stores
	orders        service.Orders
	bids          service.Bids
	auctions      service.Auctions
	notifications service.Notifications
}

type inbound struct {
	httpServer       httphandler.HTTPServer
	shipmentConsumer kafka.ShipmentConsumer
	bidSummaryProc   port.BidSummaryProcessor
}

type App struct {
	ctx      context.Context
	cfg      config.Config
	security kafka.Security
	serdes   serdes
	outbound outbound
	service  coreService
	inbound  inbound
}

func New(ctx context.Context, cfg config.Config) *App {
	app := &App{ctx: ctx, cfg: cfg}

	app.initLogger()
	app.initSecurity()
	app.initSerdes()
	app.initOutboundAdapters()
	app.initCoreService()
	app.initInboundAdapters()

	return app
}

func (app *App) initLogger() {
	opts := &slog.HandlerOptions{Level: app.cfg.LogLevel}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, opts))
	slog.SetDefault(logger)
}

func (app *App) initSecurity() {
	const op = "App.initSecurity"

	brokerCfg := app.cfg.Broker
	sec := kafka.Security{
		User: brokerCfg.SASL.User,
		Pass: brokerCfg.SASL.Pass,
	}
	if brokerCfg.TLS.Enabled() {
		tlsCfg, err := adapter.MakeTLSConfig(
			brokerCfg.TLS.CA, brokerCfg.TLS.Cert, brokerCfg.TLS.Key,
		)
		if err != nil {
			app.fallDown(op, err)
		}
		sec.TLSConfig = tlsCfg
	}

	// goka components read the global sarama config on creation
	sec.ApplyGoka()
	app.security = sec
}

func (app *App) initSerdes() {
	const op = "App.initSerdes"
	ctx := app.ctx
	topics := app.cfg.Broker.Topics

	srOpts := []sr.ClientOpt{sr.URLs(app.cfg.Broker.SchemaRegistryURLs...)}
	if app.security.TLSConfig != nil {
		srOpts = append(srOpts, sr.DialTLSConfig(app.security.TLSConfig))
	}
	srClient, err := sr.NewClient(srOpts...)
	if err != nil {
		app.fallDown(op, err)
	}

	schemaCreater := schema.NewSchemaCreater(srClient)

	orderShipped, err := schema.NewSerdeOrderShippedV1(
		ctx,
		schema.SubjectOpt(topics.OrderShipped+"-value"),
		schema.SchemaIdentifierOpt(schemaCreater),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	bidPlaced, err := schema.NewSerdeBidPlacedV1(
		ctx,
		schema.SubjectOpt(topics.BidsPlaced+"-value"),
		schema.SchemaIdentifierOpt(schemaCreater),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	app.serdes.orderShipped = orderShipped
	app.serdes.bidPlaced = bidPlaced
}

func (app *App) initOutboundAdapters() {
	const op = "App.initOutboundAdapters"

	ctx := app.ctx
	brokerCfg := app.cfg.Broker
	shopCfg := app.cfg.Storefront

	sqlDB, err := storage.NewSQLDB(ctx, app.cfg.SQLDB)
	if err != nil {
		app.fallDown(op, err)
	}
	app.outbound.sqlDB = sqlDB
	app.outbound.ordersRepo = storage.NewOrdersRepository(sqlDB)
	app.outbound.bidsRepo = storage.NewBidsRepository(sqlDB)
	app.outbound.auctionsRepo = storage.NewAuctionsRepository(sqlDB)

	rdb, err := session.NewClient(ctx, app.cfg.Redis.URL)
	if err != nil {
		app.fallDown(op, err)
	}
	app.outbound.redis = rdb
	app.outbound.sessionStorage = session.NewStorage(rdb, app.cfg.Redis.SessionTTL)

	images, err := imageurl.New(
		shopCfg.ImageCDNURL, shopCfg.ImageProject, shopCfg.ImageDataset,
	)
	if err != nil {
		app.fallDown(op, err)
	}
	app.outbound.images = images
	app.outbound.tracking = tracking.NewGenerator(shopCfg.TrackingPrefix)

	shipments, err := kafka.NewShipmentProducer(
		kafka.ProducerClientOpt(
			ctx, brokerCfg.SeedBrokers, brokerCfg.Topics.OrderShipped, app.security,
		),
		kafka.ProducerEncoderOpt(app.serdes.orderShipped),
	)
	if err != nil {
		app.fallDown(op, err)
	}
	app.outbound.shipments = shipments

	bidsEmitter, err := kafka.NewBidsEmitter(
		brokerCfg.SeedBrokers, brokerCfg.Topics.BidsPlaced, app.serdes.bidPlaced,
	)
	if err != nil {
		app.fallDown(op, err)
	}
	app.outbound.bidsEmitter = bidsEmitter

	view, err := kafka.NewBidSummaryView(
		brokerCfg.SeedBrokers, brokerCfg.Consumers.BidSummaryGroup,
	)
	if err != nil {
		app.fallDown(op, err)
	}
	app.outbound.bidSummaryView = view
}

func (app *App) initCoreService() {
	out := app.outbound

	app.service.stores = service.NewStores(
		out.sessionStorage,
		out.sessionStorage,
		out.sessionStorage,
		out.images,
		app.cfg.Storefront.PlaceholderImage,
	)
	app.service.orders = service.NewOrders(
		out.ordersRepo, out.tracking, out.shipments,
	)
	app.service.bids = service.NewBids(
		out.bidsRepo, out.bidsEmitter, out.bidSummaryView,
	)
	app.service.auctions = service.NewAuctions(
		out.auctionsRepo, app.service.bids, app.service.bids,
	)
	app.service.notifications = service.NewNotifications(mailer.New())
}

func (app *App) initInboundAdapters() {
	const op = "App.initInboundAdapters"

	brokerCfg := app.cfg.Broker
	s := app.service

	mux := http.NewServeMux()
	httphandler.RegisterStores(mux, s.stores)
	httphandler.RegisterOrders(mux, s.orders)
	httphandler.RegisterBids(mux, s.bids, s.bids, s.bids)
	httphandler.RegisterAuctions(mux, s.auctions)

	app.inbound.httpServer = httphandler.NewHTTPServer(
		app.cfg.HTTPServerAddr,
		httphandler.AllowJSON(mux),
		httphandler.RequestTimeoutOpt(app.cfg.Storefront.RequestTimeout),
	)

	shipmentConsumer, err := kafka.NewShipmentConsumer(
		kafka.ConsumerClientOpt(
			brokerCfg.SeedBrokers,
			brokerCfg.Topics.OrderShipped,
			brokerCfg.Consumers.NotifierGroup,
			app.security,
		),
		kafka.ConsumerDecoderOpt(app.serdes.orderShipped),
		kafka.ShipmentsMailerOpt(s.notifications),
	)
	if err != nil {
		app.fallDown(op, err)
	}
	app.inbound.shipmentConsumer = shipmentConsumer

	bidSummaryProc, err := kafka.NewBidSummaryProc(
		brokerCfg.SeedBrokers,
		brokerCfg.Topics.BidsPlaced,
		brokerCfg.Consumers.BidSummaryGroup,
		app.serdes.bidPlaced,
	)
	if err != nil {
		app.fallDown(op, err)
	}
	app.inbound.bidSummaryProc = bidSummaryProc
}

// Run starts the processor first and waits until it is ready,
// the view and consumers depend on its group table.
func (app *App) Run(stopFn context.CancelFunc) {
	var wg sync.WaitGroup
	wg.Add(1)
	go app.inbound.bidSummaryProc.Run(app.ctx, stopFn, &wg)
	wg.Wait()

	go app.outbound.bidSummaryView.Run(app.ctx)
	go app.service.auctions.Run(app.ctx, service.DefaultPollInterval)
	go app.inbound.shipmentConsumer.Run(app.ctx)
	go app.inbound.httpServer.Run(stopFn)

	slog.Info("application is running")
}

func (app *App) Close(ctx context.Context) {
	slog.Info("application is closing...")

	app.inbound.httpServer.Close(ctx)
	if err := app.service.orders.Wait(ctx); err != nil {
		slog.Warn("shipment notices are still in flight", "err", err)
	}

	app.inbound.shipmentConsumer.Close()
	app.inbound.bidSummaryProc.Close()

	app.outbound.bidsEmitter.Close()
	app.outbound.shipments.Close()
	app.outbound.redis.Close()
	app.outbound.sqlDB.Close()

	slog.Info("application is closed")
}

func (app *App) fallDown(op string, err error) {
	panic(fmt.Errorf("%s: %w", op, err))
}
