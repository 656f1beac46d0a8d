package httpx

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestResponseBuilders(t *testing.T) {
	tests := []struct {
		name        string
		resp        Response
		status      int
		body        string
		contentType string
	}{
		{name: "json", resp: JSON([]byte(`{"a":1}`)), status: http.StatusOK, body: `{"a":1}`, contentType: "application/json; charset=utf-8"},
		{name: "ok", resp: OK(), status: http.StatusOK, body: "200: OK", contentType: "text/plain; charset=utf-8"},
		{name: "bad request", resp: BadRequest(), status: http.StatusBadRequest, body: "400: Bad Request", contentType: "text/plain; charset=utf-8"},
		{name: "not found", resp: NotFound(), status: http.StatusNotFound, body: "404: Not Found", contentType: "text/plain; charset=utf-8"},
		{name: "internal", resp: InternalError(), status: http.StatusInternalServerError, body: "500: Internal Error", contentType: "text/plain; charset=utf-8"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, tt.resp.Status)
			assert.Equal(t, tt.body, string(tt.resp.Body))
			assert.Equal(t, tt.contentType, tt.resp.Header.Get("Content-Type"))
		})
	}
}

func TestRedirect(t *testing.T) {
	resp := Redirect("/rating/CS/124")
	assert.Equal(t, http.StatusFound, resp.Status)
	assert.Equal(t, "/rating/CS/124", resp.Header.Get("Location"))
	assert.Empty(t, resp.Body)
}

func TestResponse_Write(t *testing.T) {
	w := httptest.NewRecorder()
	JSON([]byte(`[]`)).Write(w)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", w.Body.String())
	assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Equal(t, "2", w.Header().Get("Content-Length"))
}

func TestRequestIDMiddleware(t *testing.T) {
	var seen string
	handler := RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFrom(r)
	}))

	t.Run("generates an id", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.NotEmpty(t, seen)
		assert.Equal(t, seen, w.Header().Get("X-Request-Id"))
	})

	t.Run("keeps the caller's id", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("X-Request-Id", "abc")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)
		assert.Equal(t, "abc", seen)
		assert.Equal(t, "abc", w.Header().Get("X-Request-Id"))
	})

	rejected := map[string]string{
		"too long":       strings.Repeat("a", 65),
		"contains space": "abc def",
		"control char":   "abc\x01",
		"non-ascii":      "req-é",
	}
	for name, inbound := range rejected {
		t.Run("replaces "+name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.Header.Set("X-Request-Id", inbound)
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, r)

			assert.NotEqual(t, inbound, seen)
			_, err := uuid.Parse(seen)
			assert.NoError(t, err, "replacement id should be a uuid")
			assert.Equal(t, seen, w.Header().Get("X-Request-Id"))
		})
	}
}

func TestValidRequestID(t *testing.T) {
	assert.True(t, validRequestID("3f2a-ok_id.1"))
	assert.True(t, validRequestID(strings.Repeat("x", 64)))
	assert.False(t, validRequestID(""))
	assert.False(t, validRequestID(strings.Repeat("x", 65)))
	assert.False(t, validRequestID("tab\there"))
}

func TestRecoveryMiddleware(t *testing.T) {
	logger := zap.NewNop()

	t.Run("panic becomes 500", func(t *testing.T) {
		handler := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			panic("boom")
		}), AccessLogMiddleware(logger), RecoveryMiddleware(logger))

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, BodyInternalError, w.Body.String())
	})

	t.Run("headers already written", func(t *testing.T) {
		handler := RecoveryMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusAccepted)
			panic("late")
		}))

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusAccepted, w.Code)
		assert.Empty(t, w.Body.String())
	})
}

func TestRequestSizeLimitMiddleware(t *testing.T) {
	handler := RequestSizeLimitMiddleware(8)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := io.ReadAll(r.Body); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("small body", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("1234")))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("declared too large", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("0123456789")))
		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	})

	t.Run("undeclared too large", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", io.NopCloser(bytes.NewReader([]byte("0123456789"))))
		r.ContentLength = -1
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("disabled", func(t *testing.T) {
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
		assert.NotNil(t, RequestSizeLimitMiddleware(0)(next))
	})
}

func TestRateLimitMiddleware(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rl := NewRateLimitMiddleware(ctx, 1, 2)
	handler := rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.RemoteAddr = "10.0.0.1:1234"
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "10.0.0.2:1234"
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	require.Equal(t, http.StatusOK, w.Code, "other clients have their own bucket")
}
