package server

import (
	"net/http"
	"strings"

	"courseapi/internal/httpx"
)

// Sentinel is the liveness body that identifies this server to its clients.
const Sentinel = "Courseable course API: ready"

// request is a normalized inbound request.
type request struct {
	method   string
	path     string
	segments []string
	body     []byte
}

// route is one row of the routing table.
type route struct {
	name   string
	method string
	match  func(req request) bool
	handle func(d *Dispatcher, req request) (httpx.Response, error)
}

func exactPath(path string) func(req request) bool {
	return func(req request) bool { return req.path == path }
}

func pathPrefix(prefix string) func(req request) bool {
	return func(req request) bool { return strings.HasPrefix(req.path, prefix) }
}

// routes is evaluated in order; the first row whose method and matcher
// accept the request handles it.
var routes = []route{
	{name: "liveness", method: http.MethodGet, match: exactPath("/"), handle: (*Dispatcher).liveness},
	{name: "reset", method: http.MethodGet, match: exactPath("/reset/"), handle: (*Dispatcher).reset},
	{name: "summary", method: http.MethodGet, match: exactPath("/summary/"), handle: (*Dispatcher).summary},
	{name: "course", method: http.MethodGet, match: pathPrefix("/course/"), handle: (*Dispatcher).course},
	{name: "rating_get", method: http.MethodGet, match: pathPrefix("/rating/"), handle: (*Dispatcher).getRating},
	{name: "rating_post", method: http.MethodPost, match: exactPath("/rating/"), handle: (*Dispatcher).postRating},
}

func (r route) accepts(req request) bool {
	return r.method == req.method && r.match(req)
}

// normalizePath collapses runs of '/' into one.
func normalizePath(path string) string {
	var b strings.Builder
	b.Grow(len(path))
	lastSlash := false
	for i := 0; i < len(path); i++ {
		c := path[i]
		if c == '/' {
			if lastSlash {
				continue
			}
			lastSlash = true
		} else {
			lastSlash = false
		}
		b.WriteByte(c)
	}
	return b.String()
}

// splitPath splits a normalized path on '/' and drops trailing empty
// segments, so "/course/CS/124/" and "/course/CS/124" both yield
// ["", "course", "CS", "124"].
func splitPath(path string) []string {
	parts := strings.Split(path, "/")
	for len(parts) > 0 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	return parts
}
