package handler

import (
	"errors"
	"reflect"
	"time"

	"github.com/deppfellow/fellows-tracker/internal/errs"
	"github.com/deppfellow/fellows-tracker/internal/middleware"
	"github.com/deppfellow/fellows-tracker/internal/server"
	"github.com/deppfellow/fellows-tracker/internal/validation"
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/integrations/nrpkgerrors"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"
)

// Handler is embedded by FellowHandler, PostHandler and HealthHandler to
// give them the server container.
type Handler struct {
	server *server.Server
}

func NewHandler(s *server.Server) Handler {
	return Handler{server: s}
}

// HandlerFunc is a typed endpoint. Req is a pointer to the request struct
// so echo can bind into it.
type HandlerFunc[Req validation.Validatable, Res any] func(c echo.Context, req Req) (Res, error)

// HandlerFuncNoContent is a typed endpoint that answers with a bare status.
type HandlerFuncNoContent[Req validation.Validatable] func(c echo.Context, req Req) error

// ResponseHandler writes a successful result and reports it to New Relic.
type ResponseHandler interface {
	Handle(c echo.Context, result interface{}) error
	GetOperation() string
	AddAttributes(txn *newrelic.Transaction, result interface{})
}

type JSONResponseHandler struct {
	status int
}

func (h JSONResponseHandler) Handle(c echo.Context, result interface{}) error {
	return c.JSON(h.status, result)
}

func (h JSONResponseHandler) GetOperation() string {
	return "handler"
}

// AddAttributes records how many records a list endpoint returned.
func (h JSONResponseHandler) AddAttributes(txn *newrelic.Transaction, result interface{}) {
	if v := reflect.ValueOf(result); v.Kind() == reflect.Slice {
		txn.AddAttribute("response.items", v.Len())
	}
}

type NoContentResponseHandler struct {
	status int
}

func (h NoContentResponseHandler) Handle(c echo.Context, _ interface{}) error {
	return c.NoContent(h.status)
}

func (h NoContentResponseHandler) GetOperation() string {
	return "handler_no_content"
}

func (h NoContentResponseHandler) AddAttributes(*newrelic.Transaction, interface{}) {}

// phase times one step of a request. With the agent running, done records
// <name>.status and <name>.duration_ms on the transaction.
type phase struct {
	name  string
	start time.Time
	txn   *newrelic.Transaction
}

func startPhase(name string, txn *newrelic.Transaction) phase {
	return phase{name: name, start: time.Now(), txn: txn}
}

func (p phase) done(err error) time.Duration {
	elapsed := time.Since(p.start)
	if p.txn == nil {
		return elapsed
	}

	status := "success"
	if err != nil {
		status = "failed"
		p.txn.NoticeError(nrpkgerrors.Wrap(err))
	}
	p.txn.AddAttribute(p.name+".status", status)
	p.txn.AddAttribute(p.name+".duration_ms", elapsed.Milliseconds())
	return elapsed
}

// handleRequest binds and validates req, runs run, and writes the result.
// Errors are returned untouched for GlobalErrorHandler to render.
func handleRequest[Req validation.Validatable](
	c echo.Context,
	req Req,
	run func(c echo.Context, req Req) (interface{}, error),
	responseHandler ResponseHandler,
) error {
	start := time.Now()

	txn := newrelic.FromContext(c.Request().Context())
	if txn != nil {
		txn.AddAttribute("handler.name", c.Path())
	}

	logger := middleware.GetLogger(c).With().
		Str("operation", responseHandler.GetOperation()).
		Str("method", c.Request().Method).
		Str("route", c.Path()).
		Logger()

	logger.Info().Msg("handling request")

	validating := startPhase("validation", txn)
	err := validation.BindAndValidate(c, req)
	validated := validating.done(err)
	if err != nil {
		logger.Warn().Err(err).Dur("validation_duration", validated).Msg("request validation failed")
		return err
	}

	running := startPhase("handler", txn)
	result, err := run(c, req)
	ran := running.done(err)
	if err != nil {
		logFailure(&logger, err).
			Dur("handler_duration", ran).
			Dur("total_duration", time.Since(start)).
			Msg("handler execution failed")
		return err
	}

	if txn != nil {
		txn.AddAttribute("total.duration_ms", time.Since(start).Milliseconds())
		responseHandler.AddAttributes(txn, result)
	}

	logger.Info().
		Dur("validation_duration", validated).
		Dur("handler_duration", ran).
		Dur("total_duration", time.Since(start)).
		Msg("request completed successfully")

	return responseHandler.Handle(c, result)
}

// logFailure picks warn for 4xx errors and error for everything else.
func logFailure(logger *zerolog.Logger, err error) *zerolog.Event {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) && httpErr.Status < 500 {
		return logger.Warn().Err(err)
	}
	return logger.Error().Err(err)
}

// Handle adapts a typed endpoint to echo. A fresh *T is allocated for every
// request, so concurrent requests never share a payload:
//
//	api.POST("/fellows", handler.Handle(h.Handler, h.CreateFellow, http.StatusOK))
func Handle[T any, Req interface {
	*T
	validation.Validatable
}, Res any](
	h Handler,
	fn HandlerFunc[Req, Res],
	status int,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		return handleRequest(c, Req(new(T)), func(c echo.Context, req Req) (interface{}, error) {
			return fn(c, req)
		}, JSONResponseHandler{status: status})
	}
}

// HandleNoContent is Handle for endpoints that answer with a bare status.
func HandleNoContent[T any, Req interface {
	*T
	validation.Validatable
}](
	h Handler,
	fn HandlerFuncNoContent[Req],
	status int,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		return handleRequest(c, Req(new(T)), func(c echo.Context, req Req) (interface{}, error) {
			return nil, fn(c, req)
		}, NoContentResponseHandler{status: status})
	}
}
