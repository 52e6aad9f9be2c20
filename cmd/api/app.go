package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/jwalitptl/restaurant-admin/internal/catalog"
	"github.com/jwalitptl/restaurant-admin/internal/client"
	"github.com/jwalitptl/restaurant-admin/internal/config"
	authHandler "github.com/jwalitptl/restaurant-admin/internal/handler/auth"
	categoryHandler "github.com/jwalitptl/restaurant-admin/internal/handler/category"
	dashboardHandler "github.com/jwalitptl/restaurant-admin/internal/handler/dashboard"
	dishHandler "github.com/jwalitptl/restaurant-admin/internal/handler/dish"
	"github.com/jwalitptl/restaurant-admin/internal/handler/health"
	menuHandler "github.com/jwalitptl/restaurant-admin/internal/handler/menu"
	orderHandler "github.com/jwalitptl/restaurant-admin/internal/handler/order"
	promHandler "github.com/jwalitptl/restaurant-admin/internal/handler/prometheus"
	reservationHandler "github.com/jwalitptl/restaurant-admin/internal/handler/reservation"
	roleHandler "github.com/jwalitptl/restaurant-admin/internal/handler/role"
	screenHandler "github.com/jwalitptl/restaurant-admin/internal/handler/screen"
	tableHandler "github.com/jwalitptl/restaurant-admin/internal/handler/table"
	userHandler "github.com/jwalitptl/restaurant-admin/internal/handler/user"
	"github.com/jwalitptl/restaurant-admin/internal/menu"
	"github.com/jwalitptl/restaurant-admin/internal/middleware"
	"github.com/jwalitptl/restaurant-admin/internal/model"
	"github.com/jwalitptl/restaurant-admin/internal/router"
	"github.com/jwalitptl/restaurant-admin/internal/screen"
	"github.com/jwalitptl/restaurant-admin/internal/service/audit"
	authService "github.com/jwalitptl/restaurant-admin/internal/service/auth"
	categoryService "github.com/jwalitptl/restaurant-admin/internal/service/category"
	dashboardService "github.com/jwalitptl/restaurant-admin/internal/service/dashboard"
	dishService "github.com/jwalitptl/restaurant-admin/internal/service/dish"
	orderService "github.com/jwalitptl/restaurant-admin/internal/service/order"
	reservationService "github.com/jwalitptl/restaurant-admin/internal/service/reservation"
	roleService "github.com/jwalitptl/restaurant-admin/internal/service/role"
	tableService "github.com/jwalitptl/restaurant-admin/internal/service/table"
	userService "github.com/jwalitptl/restaurant-admin/internal/service/user"
	"github.com/jwalitptl/restaurant-admin/internal/session"
	"github.com/jwalitptl/restaurant-admin/pkg/event"
	"github.com/jwalitptl/restaurant-admin/pkg/messaging/redis"
	"github.com/jwalitptl/restaurant-admin/pkg/metrics"
	"github.com/jwalitptl/restaurant-admin/pkg/validator"
)

// app is the wired console: the HTTP handler plus what must be closed on
// shutdown.
type app struct {
	handler   http.Handler
	sessions  *session.Store
	publisher *event.BrokerPublisher
}

func newApp(cfg *config.Config, reg *prometheus.Registry) (*app, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	m := metrics.New(cfg.Metrics.Namespace, reg)

	apiClient := client.New(client.Config{
		BaseURL:         cfg.API.BaseURL,
		Timeout:         cfg.API.Timeout,
		RetryCount:      cfg.API.RetryCount,
		RetryWait:       cfg.API.RetryWait,
		RetryMaxWait:    cfg.API.RetryMaxWait,
		BreakerFailures: cfg.API.BreakerFailures,
		BreakerTimeout:  cfg.API.BreakerTimeout,
		Debug:           cfg.API.Debug,
	}, m)

	sessions := session.NewStore(apiClient, session.Config{
		TTL:             cfg.Session.TTL,
		CleanupInterval: cfg.Session.CleanupInterval,
	}, m)

	checks := map[string]health.Check{
		"api": func(context.Context) error { return apiClient.Ready() },
	}

	// Initialize event publishing
	a := &app{sessions: sessions}
	var publisher event.Publisher = event.Nop{}
	if cfg.Redis.URL != "" {
		broker, err := redis.NewRedisBroker(redis.Config{
			URL:        cfg.Redis.URL,
			MaxRetries: cfg.Redis.MaxRetries,
			PoolSize:   cfg.Redis.PoolSize,
		}, &log.Logger)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		if p, ok := broker.(interface{ Ping(context.Context) error }); ok {
			checks["redis"] = p.Ping
		}
		a.publisher = event.NewBrokerPublisher(broker, event.BrokerConfig{
			Channel:    cfg.Redis.Channel,
			MaxRetries: uint64(max(cfg.Redis.MaxRetries, 0)),
			Backoff:    cfg.Redis.Backoff,
		}, m)
		publisher = a.publisher
	}

	// Initialize services
	v := validator.New()
	auditor := audit.NewService(publisher, m)
	authSvc := authService.NewService(apiClient, sessions, v)
	dishSvc := dishService.NewService(v, auditor)
	orderSvc := orderService.NewService(auditor)
	reservationSvc := reservationService.NewService(auditor)
	tableSvc := tableService.NewService(v, auditor)
	userSvc := userService.NewService(v, auditor)
	roleSvc := roleService.NewService(v, auditor)
	categorySvc := categoryService.NewService(v, auditor)
	dashboardSvc := dashboardService.NewService()

	// Screens are created per session on first use
	opts := []screen.Option{screen.WithSearchWait(cfg.Search.Debounce), screen.WithMetrics(m)}
	dishes := screenHandler.NewHandler(menu.Dishes, func(api *client.API) *screen.Screen[model.Dish] {
		return screen.New(menu.Dishes, catalog.Dishes(), dishSvc.Loader(api), opts...)
	})
	orders := screenHandler.NewHandler(menu.Orders, func(api *client.API) *screen.Screen[model.Order] {
		return screen.New(menu.Orders, catalog.Orders(loc), orderSvc.Loader(api), opts...)
	})
	reservations := screenHandler.NewHandler(menu.Reservations, func(api *client.API) *screen.Screen[model.Reservation] {
		return screen.New(menu.Reservations, catalog.Reservations(loc), reservationSvc.Loader(api), opts...)
	})
	tables := screenHandler.NewHandler(menu.Tables, func(api *client.API) *screen.Screen[model.Table] {
		return screen.New(menu.Tables, catalog.Tables(), tableSvc.Loader(api), opts...)
	})
	users := screenHandler.NewHandler(menu.Users, func(api *client.API) *screen.Screen[model.User] {
		return screen.New(menu.Users, catalog.Users(), userSvc.Loader(api), opts...)
	})

	cors := middleware.CORSConfig{
		AllowOrigins:     cfg.CORS.AllowOrigins,
		ExposeHeaders:    cfg.CORS.ExposeHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           cfg.CORS.MaxAge,
	}

	r := router.NewRouter(middleware.NewAuthMiddleware(sessions), router.Handlers{
		Health:    health.NewHandler(checks),
		Metrics:   promHandler.New(reg, cfg.Metrics.Path),
		Auth:      authHandler.NewHandler(authSvc),
		Menu:      menuHandler.NewHandler(),
		Dashboard: dashboardHandler.NewHandler(dashboardSvc),
		Screens: map[string]router.Handler{
			menu.Dishes:       dishHandler.NewHandler(dishSvc, dishes),
			menu.Orders:       orderHandler.NewHandler(orderSvc, orders),
			menu.Reservations: reservationHandler.NewHandler(reservationSvc, reservations),
			menu.Tables:       tableHandler.NewHandler(tableSvc, tables),
			menu.Users:        userHandler.NewHandler(userSvc, users),
			menu.Roles:        roleHandler.NewHandler(roleSvc),
			menu.Categories:   categoryHandler.NewHandler(categorySvc),
		},
	}, m, router.RouterConfig{
		RateLimit:   rate.Limit(cfg.RateLimit.Rate),
		RateBurst:   cfg.RateLimit.Burst,
		CORSConfig:  cors,
		Timeout:     cfg.Server.RequestTimeout,
		MaxBodySize: cfg.Server.MaxBodyBytes,
	})
	r.Setup()

	a.handler = r.Engine()
	return a, nil
}

// Close flushes pending events and ends every session.
func (a *app) Close() error {
	a.sessions.Close()
	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
	}
	return nil
}
