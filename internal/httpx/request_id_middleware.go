package httpx

import (
	"net/http"

	"github.com/google/uuid"
)

// RequestIDHeader carries the id that ties access log, dispatch and panic
// log lines to one request.
const RequestIDHeader = "X-Request-Id"

// Inbound ids are echoed into logs, so anything longer is replaced.
const maxRequestIDLen = 64

// validRequestID accepts 1..maxRequestIDLen visible ASCII characters.
func validRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDLen {
		return false
	}
	for i := 0; i < len(id); i++ {
		if id[i] < '!' || id[i] > '~' {
			return false
		}
	}
	return true
}

// RequestIDMiddleware keeps a well-formed inbound X-Request-Id and otherwise
// assigns a fresh uuid. The id is echoed on the response and stored in the
// request context for the dispatcher and recovery logs.
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(RequestIDHeader)
		if !validRequestID(requestID) {
			requestID = uuid.NewString()
		}

		w.Header().Set(RequestIDHeader, requestID)
		next.ServeHTTP(w, r.WithContext(ContextWithRequestID(r.Context(), requestID)))
	})
}
