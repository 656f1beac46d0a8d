// Package server implements the course API dispatcher: a fixed routing
// table over the seeded catalog that always answers with a complete response.
package server

import (
	"context"
	"io"
	"net/http"
	"strings"

	"courseapi/internal/entity"
	"courseapi/internal/httpx"
	"courseapi/internal/metrics"

	"go.uber.org/zap"
)

// Store is the catalog state the dispatcher reads and updates.
type Store interface {
	SummaryJSON() []byte
	CourseJSON(key entity.Key) ([]byte, bool)
	Rating(key entity.Key) (entity.Rating, bool)
	SetRating(rating entity.Rating) error
	Reset()
}

// Dispatcher maps requests to responses. It is safe for concurrent use as
// long as its Store is.
type Dispatcher struct {
	store  Store
	logger *zap.Logger
}

func NewDispatcher(store Store, logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{store: store, logger: logger}
}

// Dispatch routes one request. Handler errors and panics are logged and
// reported as 500; Dispatch itself never fails.
func (d *Dispatcher) Dispatch(ctx context.Context, method, path string, body []byte) (resp httpx.Response) {
	routeName := "bad_request"
	defer func() {
		if rec := recover(); rec != nil {
			d.logger.Error("dispatch panic",
				zap.String("route", routeName),
				zap.String("method", method),
				zap.String("path", path),
				zap.String("request_id", httpx.RequestIDFromContext(ctx)),
				zap.Any("panic", rec),
				zap.Stack("stack"),
			)
			resp = httpx.InternalError()
		}
		metrics.RecordDispatch(routeName, resp.Status)
	}()

	if method == "" || path == "" {
		return httpx.BadRequest()
	}

	req := request{
		method: strings.ToUpper(method),
		path:   normalizePath(path),
		body:   body,
	}
	req.segments = splitPath(req.path)

	routeName = "not_found"
	for _, rt := range routes {
		if !rt.accepts(req) {
			continue
		}
		routeName = rt.name
		out, err := rt.handle(d, req)
		if err != nil {
			d.logger.Error("dispatch failed",
				zap.String("route", routeName),
				zap.String("method", req.method),
				zap.String("path", req.path),
				zap.String("request_id", httpx.RequestIDFromContext(ctx)),
				zap.Error(err),
			)
			return httpx.InternalError()
		}
		return out
	}
	return httpx.NotFound()
}

// ServeHTTP adapts Dispatch to net/http.
func (d *Dispatcher) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		d.logger.Debug("read request body", zap.Error(err))
		httpx.BadRequest().Write(w)
		return
	}
	d.Dispatch(r.Context(), r.Method, r.URL.Path, body).Write(w)
}
