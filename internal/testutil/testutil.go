// Package testutil holds fixtures and request helpers shared by package tests.
package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"courseapi/internal/catalog"
	"courseapi/internal/entity"
)

// CS124 is a course present in the bundled dataset.
var CS124 = entity.Summary{
	Subject: "CS",
	Number:  "124",
	Label:   "Intro to CS",
}

// SeededStore returns a store seeded from the bundled dataset.
func SeededStore(t testing.TB) *catalog.Store {
	t.Helper()
	data, err := catalog.LoadDataset("")
	if err != nil {
		t.Fatalf("load bundled dataset: %v", err)
	}
	store, err := catalog.Seed(data)
	if err != nil {
		t.Fatalf("seed bundled dataset: %v", err)
	}
	return store
}

// NewRequest creates a new HTTP request for testing. Non-nil bodies that
// are not already []byte or string are JSON encoded.
func NewRequest(method, path string, body interface{}) *http.Request {
	var bodyBytes []byte
	switch b := body.(type) {
	case nil:
	case []byte:
		bodyBytes = b
	case string:
		bodyBytes = []byte(b)
	default:
		bodyBytes, _ = json.Marshal(body)
	}
	var r *http.Request
	if bodyBytes != nil {
		r = httptest.NewRequest(method, path, bytes.NewReader(bodyBytes))
		r.Header.Set("Content-Type", "application/json")
	} else {
		r = httptest.NewRequest(method, path, nil)
	}
	return r
}

// RecordResponse records the HTTP response for testing
type RecordResponse struct {
	Code   int
	Header http.Header
	Body   string
}

// RecordHTTPResponse records the HTTP response
func RecordHTTPResponse(w *httptest.ResponseRecorder) RecordResponse {
	result := w.Result()
	defer result.Body.Close()

	bodyBytes, _ := io.ReadAll(result.Body)

	return RecordResponse{
		Code:   result.StatusCode,
		Header: result.Header,
		Body:   string(bodyBytes),
	}
}
