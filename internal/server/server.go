package server

import (
	"context"
	"log/slog"
	"net/http"

	"pickleball-ticker-service/internal/app/tickers"
	"pickleball-ticker-service/internal/config"
	httpserver "pickleball-ticker-service/internal/http"
	"pickleball-ticker-service/internal/http/handlers"
	"pickleball-ticker-service/internal/logging"
	"pickleball-ticker-service/internal/metrics"
	"pickleball-ticker-service/internal/providers"
	"pickleball-ticker-service/internal/refresher"
	"pickleball-ticker-service/internal/store"
	"pickleball-ticker-service/internal/themes"
)

var metricsSetup = metrics.Setup

type Server struct {
	cfg           config.Config
	logger        *slog.Logger
	metrics       *metrics.Recorder
	matchCache    *store.MemoryStore
	tickerStore   tickers.Store
	tickerService *tickers.Service
	httpServer    httpServer
	metricsServer httpServer
	refresher     Refresher
	live          *liveFeeds
	metricsStop   func(context.Context) error
	closeStore    func() error
}

// New constructs a server with default provider and refresher wiring.
func New(cfg config.Config, logger *slog.Logger) (*Server, error) {
	return newServerWithProvider(cfg, logger, nil)
}

func newServerWithProvider(cfg config.Config, logger *slog.Logger, provider providers.MatchProvider) (*Server, error) {
	return newServerWithMetrics(cfg, logger, provider, nil)
}

func newServerWithMetrics(cfg config.Config, logger *slog.Logger, provider providers.MatchProvider, recorder *metrics.Recorder) (*Server, error) {
	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger, recorder)

	if provider == nil {
		provider = newProviderFactory(logger, recorder).build(cfg)
	} else {
		provider = providers.NewRetryingProvider(provider, logger, recorder, normalizeProviderName(cfg.Provider, provider), 0, 0)
	}

	tickerStore, storeName, closeStore, err := buildTickerStore(cfg, logger)
	if err != nil {
		return nil, err
	}
	matchCache := store.NewMemoryStore()
	themeStore := themes.NewFSStore(cfg.ThemesPath, logger)
	svc := tickers.NewService(tickerStore, themeStore, logger)

	ref := refresher.New(provider, matchCache, logger, recorder, cfg.RefreshInterval)
	live := newLiveFeeds(cfg, matchCache, logger, recorder)
	httpSrv := buildHTTPServer(cfg, svc, matchCache, logger, provider, recorder, storeName, ref)

	return &Server{
		cfg:           cfg,
		logger:        logger,
		metrics:       recorder,
		matchCache:    matchCache,
		tickerStore:   tickerStore,
		tickerService: svc,
		httpServer:    httpSrv,
		metricsServer: metricsSrv,
		refresher:     ref,
		live:          live,
		metricsStop:   metricsShutdown,
		closeStore:    closeStore,
	}, nil
}

// newServerWithDeps is used for testing to inject custom components.
func newServerWithDeps(cfg config.Config, logger *slog.Logger, svc *tickers.Service, httpSrv httpServer, ref Refresher) *Server {
	return &Server{
		cfg:           cfg,
		logger:        logger,
		tickerService: svc,
		httpServer:    httpSrv,
		refresher:     ref,
	}
}

// buildTickerStore picks Postgres when configured and falls back to the
// in-memory store otherwise, so the service runs without a database in
// development.
func buildTickerStore(cfg config.Config, logger *slog.Logger) (tickers.Store, string, func() error, error) {
	if cfg.DatabaseURL == "" {
		logging.Info(logger, "no database configured, using in-memory ticker store")
		return store.NewMemoryStore(), "memory", nil, nil
	}
	pg, err := store.OpenPostgres(cfg.DatabaseURL)
	if err != nil {
		return nil, "", nil, err
	}
	return pg, "postgres", pg.Close, nil
}

func buildHTTPServer(cfg config.Config, svc *tickers.Service, matchCache *store.MemoryStore, logger *slog.Logger, provider providers.MatchProvider, recorder *metrics.Recorder, storeName string, ref Refresher) httpServer {
	var statusFn func() refresher.Status
	if ref != nil {
		statusFn = ref.Status
	}

	if logger == nil {
		logger = logging.NewLogger(logging.Config{})
	}
	handler := handlers.NewHandler(svc, matchCache, provider, logger, recorder, storeName, statusFn)
	router := httpserver.NewRouter(handler, httpserver.RouterDeps{
		Logger:      logger,
		Recorder:    recorder,
		CORSOrigins: cfg.CORSOrigins,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	return netHTTPServer{srv: srv}
}

// Run starts the refresher, live feeds, and HTTP server, then waits for
// context cancellation to shut down gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()
	s.startServer(stop)
	s.refresher.Start(ctx)
	s.live.Start(ctx)

	<-ctx.Done()
	if s.logger != nil {
		s.logger.Info("shutdown signal received")
	}

	s.gracefulShutdown()
}

func (s *Server) startServer(stop context.CancelFunc) {
	if s.logger != nil {
		s.logger.Info("http server starting", slog.String("addr", s.httpServer.Addr()))
	}
	launchServer("http", s.httpServer, s.logger, func(err error) {
		if stop != nil {
			stop()
		}
	})
}

func (s *Server) startMetrics() {
	if s.metricsServer == nil {
		return
	}
	if s.logger != nil {
		s.logger.Info("metrics server starting", slog.String("addr", s.metricsServer.Addr()))
	}
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil && s.logger != nil {
			s.logger.Warn("metrics shutdown failed", "error", err)
		}
	}

	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil && s.logger != nil {
			s.logger.Warn("metrics server shutdown failed", "error", err)
		}
	}

	if err := s.live.Stop(shutdownCtx); err != nil && s.logger != nil {
		s.logger.Warn("failed to stop live feeds", "error", err)
	}

	if err := s.refresher.Stop(shutdownCtx); err != nil && s.logger != nil {
		s.logger.Error("failed to stop refresher", "error", err)
	}

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil && s.logger != nil {
		s.logger.Error("graceful shutdown failed", "error", err)
	}

	// Stop rate-limited providers to avoid ticker leaks when present.
	if rl, ok := s.refresherProvider().(interface{ Close() }); ok {
		rl.Close()
	}

	if s.closeStore != nil {
		if err := s.closeStore(); err != nil && s.logger != nil {
			s.logger.Warn("store close failed", "error", err)
		}
	}

	if s.logger != nil {
		s.logger.Info("shutdown complete")
	}
}

// refresherProvider attempts to extract the underlying provider from the refresher when available.
// Best-effort helper to enable cleanup of rate-limited tickers; safe if not supported.
func (s *Server) refresherProvider() providers.MatchProvider {
	if pa, ok := s.refresher.(interface {
		Provider() providers.MatchProvider
	}); ok {
		return pa.Provider()
	}
	return nil
}

func buildMetrics(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*metrics.Recorder, httpServer, func(context.Context) error) {
	if recorder != nil {
		return recorder, nil, nil
	}

	recCfg := metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		Port:         cfg.Metrics.Port,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	}

	rec, handler, shutdown, err := metricsSetup(context.Background(), recCfg)
	if err != nil {
		if logger != nil {
			logger.Warn("metrics setup failed, continuing without telemetry", "err", err)
		}
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		metricsSrv = netHTTPServer{
			srv: &http.Server{
				Addr:    ":" + recCfg.Port,
				Handler: handler,
			},
		}
	}

	return rec, metricsSrv, shutdown
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	go func() {
		if logger != nil {
			logger.Info("starting "+name+" server", slog.String("addr", srv.Addr()))
		}
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			if logger != nil {
				logger.Warn(name+" server failed", "error", err)
			}
			if onError != nil {
				onError(err)
			}
		}
	}()
}

// Handler exposes the HTTP handler (useful for tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}
