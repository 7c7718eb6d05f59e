package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"mesaYaManager/internal/config"
	realtimeusecase "mesaYaManager/internal/modules/realtime/application/usecase"
	realtimeinfra "mesaYaManager/internal/modules/realtime/infrastructure"
	realtimetransport "mesaYaManager/internal/modules/realtime/interface"
	requestshandler "mesaYaManager/internal/modules/requests/application/handler"
	requestsusecase "mesaYaManager/internal/modules/requests/application/usecase"
	requestsinfra "mesaYaManager/internal/modules/requests/infrastructure"
	requeststransport "mesaYaManager/internal/modules/requests/interface"
	sessiontransport "mesaYaManager/internal/modules/session/interface"
	zonesusecase "mesaYaManager/internal/modules/zones/application/usecase"
	zonesinfra "mesaYaManager/internal/modules/zones/infrastructure"
	zonestransport "mesaYaManager/internal/modules/zones/interface"
	"mesaYaManager/internal/platform/broker"
	"mesaYaManager/internal/platform/metrics"
	"mesaYaManager/internal/platform/scheduler"
	"mesaYaManager/internal/platform/web"
	"mesaYaManager/internal/shared/auth"
	"mesaYaManager/internal/shared/logging"
)

func main() {
	// Attempt to load variables from .env so local runs honour configuration tweaks.
	if err := godotenv.Overload(); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, ".env load warning: %v\n", err)
		}
	}
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load error: %v\n", err)
		os.Exit(1)
	}

	logWriter, closeLog, err := logging.Setup(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		AddSource: true,
		Directory: cfg.Logging.Directory,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging setup error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()
	slog.Info("logging initialized", slog.String("directory", cfg.Logging.Directory), slog.String("level", cfg.Logging.Level), slog.String("format", cfg.Logging.Format))
	slog.Info("backend config resolved",
		slog.String("requestsApi", cfg.Backend.RequestsURL),
		slog.String("usersApi", cfg.Backend.UsersURL),
		slog.String("socket", cfg.Upstream.URL),
		slog.Any("kafkaBrokers", cfg.Kafka.Brokers),
	)

	metrics.Init()

	validator, err := auth.NewJWTValidator(cfg.Security.JWTSecret, cfg.Security.JWTPublicKey, cfg.Security.AllowedRoles)
	if err != nil {
		slog.Error("jwt validator setup failed", slog.Any("error", err))
		os.Exit(1)
	}
	if !validator.Enabled() {
		slog.Warn("manager authentication disabled: no JWT key configured")
	}

	renderer, err := web.NewRenderer()
	if err != nil {
		slog.Error("template setup failed", slog.Any("error", err))
		os.Exit(1)
	}

	// Realtime fan-out to browsers
	hub := realtimeinfra.NewHub()
	broadcastUC := realtimeusecase.NewBroadcastUseCase(hub)

	// Requests board
	board := requestsusecase.NewBoard(cfg.Dashboard.Location)
	requestsAPI := requestsinfra.NewRequestsHTTPClient(cfg.Backend.RequestsURL, cfg.Backend.Timeout, nil)
	syncUC := requestsusecase.NewSyncUseCase(board, requestsAPI, broadcastUC, cfg.Backend.ServiceToken)
	ackUC := requestsusecase.NewAcknowledgeUseCase(board, requestsAPI, broadcastUC)
	tickUC := requestsusecase.NewTickUseCase(board, broadcastUC)

	// Zones
	usersAPI := zonesinfra.NewUsersHTTPClient(cfg.Backend.UsersURL, cfg.Backend.Timeout, nil)
	settingsUC := zonesusecase.NewSettingsUseCase(usersAPI)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	loadCtx, loadCancel := context.WithTimeout(ctx, cfg.Backend.Timeout)
	if err := syncUC.Load(loadCtx); err != nil {
		slog.Warn("initial requests load failed, starting with an empty board", slog.Any("error", err))
	}
	loadCancel()

	// Upstream socket
	socketEvents := requestshandler.NewRequestEventHandler("", "socket", syncUC)
	upstream := requestsinfra.NewUpstreamSocket(cfg.Upstream.URL, socketEvents.Handle,
		requestsinfra.WithReconnectDelay(cfg.Upstream.ReconnectDelay),
		requestsinfra.WithHandshakeTimeout(cfg.Upstream.HandshakeTimeout),
		requestsinfra.WithBearerToken(cfg.Backend.ServiceToken),
		requestsinfra.WithOnConnect(func(ctx context.Context) {
			// Events missed while disconnected are recovered from the REST history.
			resyncCtx, cancel := context.WithTimeout(ctx, cfg.Backend.Timeout)
			defer cancel()
			_ = syncUC.Resync(resyncCtx, "")
		}),
	)
	go func() {
		if err := upstream.Run(ctx); err != nil {
			slog.Error("request socket stopped", slog.Any("error", err))
		}
	}()

	// Kafka carries the same request events when brokers are configured
	registry := broker.NewHandlerRegistry()
	registry.Register(requestshandler.NewRequestEventHandler(cfg.Kafka.Topic, "kafka", syncUC))
	broker.StartKafkaConsumers(ctx, registry, cfg.Kafka.Brokers, cfg.Kafka.GroupID)

	jobs, err := scheduler.Start(ctx, cfg.Dashboard.Location,
		scheduler.Job{Name: "board-tick", Interval: cfg.Jobs.TickInterval, Run: func(ctx context.Context) {
			tickUC.Execute(ctx)
		}},
		scheduler.Job{Name: "requests-resync", Interval: cfg.Jobs.ResyncInterval, Run: func(ctx context.Context) {
			resyncCtx, cancel := context.WithTimeout(ctx, cfg.Backend.Timeout)
			defer cancel()
			_ = syncUC.Resync(resyncCtx, "")
		}},
	)
	if err != nil {
		slog.Error("scheduler setup failed", slog.Any("error", err))
		os.Exit(1)
	}

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.Logger.SetOutput(logWriter)
	e.Renderer = renderer
	e.Use(middleware.RequestID())
	e.Use(middleware.Recover())

	guard := auth.RequireManager(validator)

	e.GET("/", func(c echo.Context) error {
		return c.Redirect(http.StatusFound, "/requests")
	})
	sessiontransport.NewAuthHandler(validator, cfg.Security.CookieSecure).Register(e)
	requeststransport.NewRequestsHandler(syncUC, ackUC).Register(e, guard)
	zonestransport.NewSettingsHandler(settingsUC).Register(e, guard)
	e.GET("/ws/dashboard", realtimetransport.NewDashboardWebsocketHandler(hub, syncUC, ackUC, syncUC, realtimetransport.DashboardOptions{
		AllowedOrigins: cfg.Dashboard.AllowOrigins,
		SendBuffer:     cfg.Dashboard.SendBuffer,
	}), guard)
	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"status":            "ok",
			"upstreamConnected": upstream.Connected(),
			"activeRequests":    board.ActiveCount(),
			"dashboards":        hub.ClientCount(),
		})
	})
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))

	go func() {
		if err := e.Start(":" + cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server stopped", slog.Any("error", err))
			cancel()
		}
	}()

	// Wait for a signal or a fatal server error
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-stop:
	case <-ctx.Done():
	}
	slog.Info("shutting down")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()
	if err := jobs.Shutdown(); err != nil {
		slog.Warn("scheduler shutdown error", slog.Any("error", err))
	}
	hub.Close()
	if err := e.Shutdown(shutdownCtx); err != nil {
		slog.Warn("http shutdown error", slog.Any("error", err))
	}
}
