package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	ginprometheus "github.com/zsais/go-gin-prometheus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/trace"

	"usersvc/shared/logger"
)

// RequestIDHeader carries the request id in and out
const RequestIDHeader = "X-Request-ID"

// Options configures the gin driver
type Options struct {
	// ServiceName names the tracer spans are reported under
	ServiceName string
	// Prometheus mounts go-gin-prometheus and its /metrics endpoint
	Prometheus bool
}

// GinDriver implements HTTPDriver using the Gin framework
type GinDriver struct {
	engine *gin.Engine
	server *http.Server
}

// NewGinDriver creates a gin engine with recovery, request ids, tracing,
// access logging and optionally Prometheus instrumentation.
func NewGinDriver(opts Options) *GinDriver {
	// Gin debug logs are not useful for application debugging
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(requestID)

	if opts.ServiceName != "" {
		engine.Use(otelgin.Middleware(opts.ServiceName))
	}

	engine.Use(accessLog)

	if opts.Prometheus {
		p := ginprometheus.NewPrometheus("gin")
		// label by route pattern, not raw URL, to keep cardinality bounded
		p.ReqCntURLLabelMappingFn = func(c *gin.Context) string {
			if route := c.FullPath(); route != "" {
				return route
			}
			return "unmatched"
		}
		p.Use(engine)
	}

	return &GinDriver{engine: engine}
}

func requestID(c *gin.Context) {
	id := c.GetHeader(RequestIDHeader)
	if id == "" {
		id = uuid.NewString()
	}
	c.Set("request_id", id)
	c.Header(RequestIDHeader, id)
	c.Next()
}

func accessLog(c *gin.Context) {
	start := time.Now()
	requestID := c.GetString("request_id")
	traceID := ""
	if sc := trace.SpanContextFromContext(c.Request.Context()); sc.HasTraceID() {
		traceID = sc.TraceID().String()
	}

	logger.Debug("HTTP Request",
		logger.String("method", c.Request.Method),
		logger.String("path", c.Request.URL.Path),
		logger.String("remote_addr", c.ClientIP()),
		logger.String("request_id", requestID),
		logger.String("trace_id", traceID))

	c.Next()

	logger.Info("HTTP Response",
		logger.String("method", c.Request.Method),
		logger.String("path", c.Request.URL.Path),
		logger.Int("status", c.Writer.Status()),
		logger.String("request_id", requestID),
		logger.String("trace_id", traceID),
		logger.Duration("duration", time.Since(start)),
		logger.Int("response_size", c.Writer.Size()))
}

// AddRoute adds a route to the Gin engine
func (g *GinDriver) AddRoute(method, path string, handler func(RequestContext)) error {
	ginHandler := func(c *gin.Context) {
		handler(NewGinRequestContext(c))
	}

	switch method {
	case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete,
		http.MethodPatch, http.MethodOptions, http.MethodHead:
		g.engine.Handle(method, path, ginHandler)
	default:
		return fmt.Errorf("unsupported HTTP method: %s", method)
	}

	logger.Debug("Added route",
		logger.String("method", method),
		logger.String("path", path))

	return nil
}

// AddMiddleware adds middleware to the Gin engine. Routes registered
// before the call are not affected.
func (g *GinDriver) AddMiddleware(middleware func(RequestContext, func())) error {
	g.engine.Use(func(c *gin.Context) {
		middleware(NewGinRequestContext(c), c.Next)
	})
	return nil
}

// Start starts the HTTP server
func (g *GinDriver) Start(address string) error {
	g.server = &http.Server{
		Addr:              address,
		Handler:           g.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("Starting Gin HTTP server", logger.String("address", address))

	if err := g.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Failed to start HTTP server", logger.Err(err))
		return err
	}
	return nil
}

// Stop gracefully shuts the server down
func (g *GinDriver) Stop(ctx context.Context) error {
	if g.server == nil {
		return nil
	}

	logger.Info("Stopping Gin HTTP server")
	return g.server.Shutdown(ctx)
}

// Handler returns the gin engine
func (g *GinDriver) Handler() http.Handler {
	return g.engine
}

// DriverName returns the driver name
func (g *GinDriver) DriverName() string {
	return "gin"
}

// GinRequestContext implements RequestContext for Gin
type GinRequestContext struct {
	ctx *gin.Context
}

// NewGinRequestContext creates a new Gin request context wrapper
func NewGinRequestContext(ctx *gin.Context) RequestContext {
	return &GinRequestContext{ctx: ctx}
}

func (g *GinRequestContext) Method() string {
	return g.ctx.Request.Method
}

func (g *GinRequestContext) Path() string {
	return g.ctx.Request.URL.Path
}

func (g *GinRequestContext) Route() string {
	return g.ctx.FullPath()
}

func (g *GinRequestContext) Query() url.Values {
	return g.ctx.Request.URL.Query()
}

func (g *GinRequestContext) Header(name string) string {
	return g.ctx.GetHeader(name)
}

func (g *GinRequestContext) Status(code int) {
	g.ctx.Status(code)
}

func (g *GinRequestContext) SetHeader(name, value string) {
	g.ctx.Header(name, value)
}

func (g *GinRequestContext) JSON(data any) error {
	g.ctx.JSON(g.ctx.Writer.Status(), data)
	return nil
}

func (g *GinRequestContext) Set(key string, value any) {
	g.ctx.Set(key, value)
}

func (g *GinRequestContext) Get(key string) (any, bool) {
	return g.ctx.Get(key)
}

func (g *GinRequestContext) Context() context.Context {
	return g.ctx.Request.Context()
}

// Unwrap returns the underlying *gin.Context
func (g *GinRequestContext) Unwrap() any {
	return g.ctx
}
