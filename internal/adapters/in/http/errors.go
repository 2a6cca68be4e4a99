package http

import (
	"errors"
	"net/http"

	"courierhub/internal/core/application/usecases/commands"
	"courierhub/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Error is the body of every failed response.
type Error struct {
	Code    int      `json:"code"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

// statusOf maps domain errors onto HTTP status codes.
func statusOf(err error) int {
	var httpErr *echo.HTTPError
	var validationErrs validator.ValidationErrors

	switch {
	case errors.As(err, &httpErr):
		return httpErr.Code
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrInvalidTransition),
		errors.Is(err, errs.ErrConflict),
		errors.Is(err, errs.ErrVersionIsInvalid):
		return http.StatusConflict
	case errors.Is(err, errs.ErrMissingBillingInfo):
		return http.StatusUnprocessableEntity
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, commands.ErrNoOrderItems),
		errors.Is(err, commands.ErrNoOrderIDs),
		errors.As(err, &validationErrs):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func toError(err error) Error {
	code := statusOf(err)
	body := Error{Code: code, Message: err.Error()}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		if msg, ok := httpErr.Message.(string); ok {
			body.Message = msg
		}
	}

	var missing *errs.ObjectsNotFoundError
	if errors.As(err, &missing) {
		body.Details = missing.IDs
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		body.Message = "request is invalid"
		for _, fe := range validationErrs {
			body.Details = append(body.Details, fe.Namespace()+" failed on "+fe.Tag())
		}
	}

	if code == http.StatusInternalServerError {
		body.Message = http.StatusText(http.StatusInternalServerError)
	}
	return body
}

// ErrorHandler renders errors returned by handlers and middleware. Server
// errors are logged, client errors are not.
func ErrorHandler(log *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		body := toError(err)
		if body.Code >= http.StatusInternalServerError {
			log.Error("request failed",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Error(err),
			)
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(body.Code)
		} else {
			err = c.JSON(body.Code, body)
		}
		if err != nil {
			log.Warn("writing error response failed", zap.Error(err))
		}
	}
}
