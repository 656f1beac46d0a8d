package httpx

import (
	"net/http"
	"strconv"
)

const (
	contentTypeJSON = "application/json; charset=utf-8"
	contentTypeText = "text/plain; charset=utf-8"

	BodyOK            = "200: OK"
	BodyBadRequest    = "400: Bad Request"
	BodyNotFound      = "404: Not Found"
	BodyInternalError = "500: Internal Error"
)

// Response is a complete transport response: status, headers and body.
type Response struct {
	Status int
	Header http.Header
	Body   []byte
}

func newResponse(status int, contentType string, body []byte) Response {
	header := make(http.Header)
	if contentType != "" {
		header.Set("Content-Type", contentType)
	}
	return Response{Status: status, Header: header, Body: body}
}

// JSON returns a 200 response carrying an already encoded JSON document.
func JSON(body []byte) Response {
	return newResponse(http.StatusOK, contentTypeJSON, body)
}

// Text returns a plain-text response.
func Text(status int, body string) Response {
	return newResponse(status, contentTypeText, []byte(body))
}

func OK() Response {
	return Text(http.StatusOK, BodyOK)
}

// Redirect returns a 302 pointing at location, with no body.
func Redirect(location string) Response {
	resp := newResponse(http.StatusFound, "", nil)
	resp.Header.Set("Location", location)
	return resp
}

func BadRequest() Response {
	return Text(http.StatusBadRequest, BodyBadRequest)
}

func NotFound() Response {
	return Text(http.StatusNotFound, BodyNotFound)
}

func InternalError() Response {
	return Text(http.StatusInternalServerError, BodyInternalError)
}

// Write copies resp onto w.
func (resp Response) Write(w http.ResponseWriter) {
	for key, values := range resp.Header {
		for _, v := range values {
			w.Header().Add(key, v)
		}
	}
	w.Header().Set("Content-Length", strconv.Itoa(len(resp.Body)))
	w.WriteHeader(resp.Status)
	if len(resp.Body) > 0 {
		_, _ = w.Write(resp.Body)
	}
}
