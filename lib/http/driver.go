package http

import (
	"context"
	"net/http"
	"net/url"
)

// HTTPDriver defines what the service needs from an HTTP framework
type HTTPDriver interface {
	AddRoute(method, path string, handler func(RequestContext)) error
	AddMiddleware(middleware func(RequestContext, func())) error

	// Start blocks until the server stops
	Start(address string) error
	// Stop drains in-flight requests until ctx expires
	Stop(ctx context.Context) error

	// Handler exposes the router, mainly for httptest
	Handler() http.Handler
	DriverName() string
}

// RequestContext is the framework-neutral view of a request handlers get
type RequestContext interface {
	Method() string
	Path() string
	// Route is the registered pattern that matched, e.g. /api/users
	Route() string
	Query() url.Values
	Header(name string) string

	Status(code int)
	SetHeader(name, value string)
	// JSON writes data with the status set by Status (200 by default)
	JSON(data any) error

	Set(key string, value any)
	Get(key string) (any, bool)

	Context() context.Context
	Unwrap() any
}
