package users

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	zhttp "usersvc/lib/http"
	"usersvc/lib/metrics"
	"usersvc/shared/logger"
)

const (
	// Route is the listing endpoint, also used as the metrics route label
	Route = "/api/users"

	SuccessMessage       = "Users retrieved successfully"
	InternalErrorMessage = "Internal server error."
)

// Lister produces the users for one page
type Lister interface {
	List(ctx context.Context, p ListParams) ([]UserRecord, error)
}

// Handler serves GET /api/users
type Handler struct {
	users   Lister
	metrics metrics.Recorder
}

// NewHandler creates a Handler
func NewHandler(users Lister, rec metrics.Recorder) *Handler {
	return &Handler{users: users, metrics: rec}
}

// Register mounts the handler on the driver
func (h *Handler) Register(d zhttp.HTTPDriver) error {
	return d.AddRoute(http.MethodGet, Route, h.List)
}

// List handles one listing request. Every failure becomes a 500 with an
// opaque message.
func (h *Handler) List(ctx zhttp.RequestContext) {
	start := time.Now()
	method := ctx.Method()

	resp, err := h.list(ctx)

	status := http.StatusOK
	if err != nil {
		status = http.StatusInternalServerError
	}

	duration := time.Since(start)
	h.metrics.ObserveHTTPDuration(method, Route, duration)
	h.metrics.IncHTTPRequests(method, Route, strconv.Itoa(status))

	logger.Info("Users API execution",
		logger.Duration("duration", duration),
		logger.Int("status", status))

	if err != nil {
		fields := []logger.Field{logger.Err(err)}
		var rf *RequestFailure
		if errors.As(err, &rf) {
			fields = append(fields, logger.String("stage", string(rf.Stage)))
		}
		logger.Error("Users API error", fields...)

		ctx.Status(status)
		ctx.JSON(ErrorResponse{Message: InternalErrorMessage})
		return
	}

	ctx.Status(status)
	ctx.JSON(resp)
}

func (h *Handler) list(ctx zhttp.RequestContext) (resp *ListResponse, err error) {
	defer func() {
		if r := recover(); r != nil {
			resp, err = nil, fail(StagePanic, fmt.Errorf("%v", r))
		}
	}()

	params, err := DecodeListParams(ctx.Query())
	if err != nil {
		return nil, fail(StageDecode, err)
	}

	users, err := h.users.List(ctx.Context(), params)
	if err != nil {
		var rf *RequestFailure
		if errors.As(err, &rf) {
			return nil, err
		}
		return nil, fail(StageQuery, err)
	}
	if users == nil {
		users = []UserRecord{}
	}

	return &ListResponse{
		Users:      users,
		Total:      len(users),
		FilteredBy: params.FilteredBy(),
		Message:    SuccessMessage,
	}, nil
}
