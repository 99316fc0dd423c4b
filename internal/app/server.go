package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/samvad-hq/trends-proxy/internal/api"
	"github.com/samvad-hq/trends-proxy/internal/config"
	"github.com/samvad-hq/trends-proxy/internal/logger"
	"github.com/samvad-hq/trends-proxy/internal/storage"
	"github.com/samvad-hq/trends-proxy/internal/trends"
	"github.com/samvad-hq/trends-proxy/pkg/httpclient"
	"github.com/samvad-hq/trends-proxy/pkg/publishers"
	"github.com/samvad-hq/trends-proxy/pkg/serpapi"
)

// Server is the trends proxy runtime. It owns the cache and publishers and
// exposes the routed handler for either a local listener or a serverless entry point.
type Server struct {
	cfg     *config.Config
	handler http.Handler
	store   storage.Store
	fanout  *publishers.Fanout
	log     logger.Logger
}

// NewServer builds the runtime from config.
func NewServer(ctx context.Context, cfg *config.Config, log logger.Logger) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	log = logger.Ensure(log)
	if ctx == nil {
		ctx = context.Background()
	}

	if cfg.SerpAPIKey == "" {
		log.WarnObj("serp api key missing; trends requests will fail", "config_warning", map[string]any{
			"key": "SERP_API_KEY",
		})
	}

	store, err := storage.NewStore(storage.Settings{
		Type:            cfg.CacheType,
		BBoltPath:       cfg.BBoltPath,
		RedisAddr:       cfg.RedisAddr,
		RedisPassword:   cfg.RedisPassword,
		RedisDB:         cfg.RedisDB,
		TTL:             cfg.CacheTTL,
		CleanupInterval: cfg.CacheCleanup,
	})
	if err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}
	log.InfoObj("storage initialized", "storage_config", map[string]any{
		"type":        cfg.CacheType,
		"ttl_seconds": int(cfg.CacheTTL.Seconds()),
	})

	fanout, err := buildFanout(ctx, cfg.PublishersFile, log)
	if err != nil {
		store.Close()
		return nil, err
	}

	client := serpapi.New(cfg.SerpAPIKey,
		serpapi.WithBaseURL(cfg.SerpBaseURL),
		serpapi.WithHTTPClient(httpclient.NewRestyClient(cfg.SerpTimeout)),
	)

	opts := []trends.Option{trends.WithLogger(log), trends.WithCache(store)}
	if fanout.Size() > 0 {
		opts = append(opts, trends.WithPublisher(fanout, 0))
	}
	svc := trends.NewService(client, opts...)

	return &Server{
		cfg:     cfg,
		handler: api.NewRouter(api.NewHandler(svc, cfg.SerpAPIKey, log), log),
		store:   store,
		fanout:  fanout,
		log:     log,
	}, nil
}

// buildFanout loads publishers from path; an empty path disables publishing.
func buildFanout(ctx context.Context, path string, log logger.Logger) (*publishers.Fanout, error) {
	if path == "" {
		return publishers.NewFanout(nil), nil
	}

	reg, err := publishers.LoadRegistry(path)
	if err != nil {
		return nil, fmt.Errorf("load publishers registry: %w", err)
	}
	enabled := reg.Enabled()

	pubs, err := publishers.BuildAll(ctx, publishers.DefaultRegistry(), enabled, log)
	if err != nil {
		return nil, fmt.Errorf("build publishers: %w", err)
	}

	summaries := make([]map[string]string, 0, len(enabled))
	for _, pubCfg := range enabled {
		summaries = append(summaries, map[string]string{"id": pubCfg.ID, "type": pubCfg.Type})
	}
	log.InfoObj("publishers registry loaded", "publishers_meta", map[string]any{
		"count":      len(summaries),
		"publishers": summaries,
	})
	return publishers.NewFanout(pubs), nil
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler { return s.handler }

// Run serves on cfg.ListenAddr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.ListenAddr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.cfg.ListenAddr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	if s == nil || s.handler == nil {
		return fmt.Errorf("server is not initialized")
	}
	defer s.Close()

	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	s.log.InfoObj("http server listening", "server_state", map[string]any{
		"addr":       ln.Addr().String(),
		"publishers": s.fanout.Size(),
	})

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http serve: %w", err)
	case <-ctx.Done():
	}

	s.log.InfoObj("http server shutting down", "reason", ctx.Err())
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}

// Close releases the cache and publisher connections.
func (s *Server) Close() {
	if s == nil {
		return
	}
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			s.log.ErrorObj("storage close failed", "error", err)
		}
	}
	if err := s.fanout.Close(); err != nil {
		s.log.ErrorObj("publishers close failed", "error", err)
	}
}
