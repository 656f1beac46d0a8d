// Package lifecycle starts the course API server on its well-known address
// and answers whether a server is already answering there.
package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"courseapi/internal/catalog"
	"courseapi/internal/httpx"
	"courseapi/internal/metrics"
	"courseapi/internal/platform/courseclient"
	"courseapi/internal/server"

	"go.uber.org/zap"
)

var (
	// ErrEndpointOccupied means something other than this server answered
	// on the configured address.
	ErrEndpointOccupied = errors.New("endpoint occupied by another service")
	// ErrNotReachable means the server was started but never answered the probe.
	ErrNotReachable = errors.New("server not reachable after start")
)

type Config struct {
	Addr         string
	BaseURL      string
	Dataset      []byte
	RetryCount   int
	RetryDelay   time.Duration
	MaxBodyBytes int64
	RateRPS      float64
	RateBurst    int
}

// Controller owns at most one listener and the store behind it.
type Controller struct {
	cfg    Config
	logger *zap.Logger
	client *courseclient.Client

	mu      sync.Mutex
	started bool
	srv     *http.Server
	store   *catalog.Store
	stop    context.CancelFunc
}

func NewController(cfg Config, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		cfg:    cfg,
		logger: logger,
		client: courseclient.NewClient(cfg.BaseURL, 0, 0),
	}
}

// Start seeds the catalog and serves it on the configured address, unless a
// course API server is already answering there. It returns once the server
// has answered a liveness probe.
func (c *Controller) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.started {
		return nil
	}

	running, err := c.IsRunning(ctx, false, 1, 0)
	if err != nil {
		return err
	}
	if running {
		c.logger.Info("course api already running", zap.String("base_url", c.cfg.BaseURL))
		return nil
	}

	dataset := c.cfg.Dataset
	if dataset == nil {
		if dataset, err = catalog.LoadDataset(""); err != nil {
			return err
		}
	}
	store, err := catalog.Seed(dataset)
	if err != nil {
		return fmt.Errorf("seed catalog: %w", err)
	}

	handlerCtx, stop := context.WithCancel(context.Background())
	handler := c.handler(handlerCtx, server.NewDispatcher(store, c.logger))

	ln, err := net.Listen("tcp", c.cfg.Addr)
	if err != nil {
		stop()
		return fmt.Errorf("listen on %s: %w", c.cfg.Addr, err)
	}

	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			c.logger.Error("course api server stopped", zap.Error(err))
		}
	}()

	running, err = c.IsRunning(ctx, true, c.cfg.RetryCount, c.cfg.RetryDelay)
	if err == nil && !running {
		err = ErrNotReachable
	}
	if err != nil {
		_ = srv.Close()
		stop()
		return err
	}

	c.started = true
	c.srv = srv
	c.store = store
	c.stop = stop
	c.logger.Info("course api started",
		zap.String("addr", ln.Addr().String()),
		zap.Int("courses", store.Len()),
	)
	return nil
}

func (c *Controller) handler(ctx context.Context, dispatcher http.Handler) http.Handler {
	middlewares := []func(http.Handler) http.Handler{
		httpx.RequestIDMiddleware,
		httpx.AccessLogMiddleware(c.logger),
		httpx.RecoveryMiddleware(c.logger),
		metrics.InstrumentHandler,
		httpx.RequestSizeLimitMiddleware(c.cfg.MaxBodyBytes),
	}
	if c.cfg.RateRPS > 0 {
		middlewares = append(middlewares, httpx.NewRateLimitMiddleware(ctx, c.cfg.RateRPS, c.cfg.RateBurst).Middleware)
	}
	return httpx.Chain(dispatcher, middlewares...)
}

// IsRunning probes GET / up to retryCount times. A sentinel answer means
// true; any other successful answer is ErrEndpointOccupied. A non-2xx answer
// moves straight on to the next attempt. A connection failure ends the probe
// at once unless wait is set, in which case the probe sleeps retryDelay
// before the next attempt.
func (c *Controller) IsRunning(ctx context.Context, wait bool, retryCount int, retryDelay time.Duration) (bool, error) {
	for attempt := 1; attempt <= retryCount; attempt++ {
		body, err := c.client.Ping(ctx)
		if err == nil {
			if body == server.Sentinel {
				return true, nil
			}
			return false, fmt.Errorf("%w: %s answered %q", ErrEndpointOccupied, c.cfg.BaseURL, abbreviate(body))
		}
		if ctx.Err() != nil {
			return false, ctx.Err()
		}

		var se *courseclient.StatusError
		if errors.As(err, &se) {
			c.logger.Debug("liveness probe rejected",
				zap.Int("attempt", attempt),
				zap.Int("status", se.Code),
			)
			continue
		}

		c.logger.Debug("liveness probe failed",
			zap.Int("attempt", attempt),
			zap.Bool("wait", wait),
			zap.Error(err),
		)
		if !wait {
			return false, nil
		}
		if attempt == retryCount {
			break
		}
		select {
		case <-time.After(retryDelay):
		case <-ctx.Done():
			return false, ctx.Err()
		}
	}
	return false, nil
}

// Reset asks the server at the base URL to restore every rating. It reports
// false for a non-2xx answer and an error only for transport failures.
func (c *Controller) Reset(ctx context.Context) (bool, error) {
	err := c.client.Reset(ctx)
	var se *courseclient.StatusError
	switch {
	case err == nil:
		return true, nil
	case errors.As(err, &se):
		c.logger.Warn("reset rejected", zap.Int("status", se.Code))
		return false, nil
	default:
		return false, err
	}
}

// Serving reports whether this controller owns a running listener.
func (c *Controller) Serving() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.started
}

// Shutdown stops the listener this controller started, if any.
func (c *Controller) Shutdown(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.started {
		return nil
	}
	err := c.srv.Shutdown(ctx)
	c.stop()
	c.started = false
	c.srv = nil
	c.store = nil
	return err
}

func abbreviate(s string) string {
	const limit = 64
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "..."
}
