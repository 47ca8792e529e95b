package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/ticket-calendar/internal/api/http"
	"github.com/spec-kit/ticket-calendar/internal/api/http/handlers"
	"github.com/spec-kit/ticket-calendar/internal/api/http/view"
	"github.com/spec-kit/ticket-calendar/internal/calendar"
	"github.com/spec-kit/ticket-calendar/internal/config"
	"github.com/spec-kit/ticket-calendar/internal/events"
	"github.com/spec-kit/ticket-calendar/internal/observability"
	"github.com/spec-kit/ticket-calendar/internal/persistence"
	"github.com/spec-kit/ticket-calendar/internal/repository"
	"github.com/spec-kit/ticket-calendar/internal/service"
	"github.com/spec-kit/ticket-calendar/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, closeStore, err := persistence.OpenStore(ctx, *cfg, logger)
	if err != nil {
		logger.Fatal("failed to open ticket cache", zap.String("driver", cfg.Cache.Driver), zap.Error(err))
	}
	defer closeStore()

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()
	worker.StartActivityWorker(service.NewActivityService(dispatcher, logger, metrics))

	location := cfg.App.Location()
	locale := calendar.LookupLocale(cfg.App.Locale)

	ticketRepo := repository.NewTicketRepository(store, repository.Options{
		ReloadAfterWrite: cfg.Cache.ReloadAfterWrite,
	})
	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketRepo: ticketRepo,
		IDs:        service.NewIDGenerator(cfg.Ticket.IDStrategy, time.Now),
		Clock:      time.Now,
		Location:   location,
		Dispatcher: dispatcher,
		Logger:     logger,
	})

	app := fiber.New(fiber.Config{
		AppName: cfg.App.Name,
		Views:   view.NewEngine(),
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:  handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, cfg.Cache.Driver, store),
		Metrics: handlers.NewMetricsHandler(metrics),
		Page: handlers.NewPageHandler(ticketService, handlers.PageSettings{
			AppName:  cfg.App.Name,
			Local:    cfg.Cache.IsLocal(),
			Locale:   locale,
			Location: location,
		}),
		Tickets:  handlers.NewTicketsHandler(ticketService, locale),
		Calendar: handlers.NewCalendarHandler(ticketService, locale),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()
	logger.Info("ticket calendar started",
		zap.String("addr", cfg.App.Addr()),
		zap.String("cache_driver", cfg.Cache.Driver),
		zap.String("locale", locale.Tag))

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
