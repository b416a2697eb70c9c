// Package response renders the error envelope shared by every endpoint and
// maps error kinds to HTTP statuses.
package response

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/SebastianoFazzino/number-game/internal/logger"
	"github.com/SebastianoFazzino/number-game/internal/models"
)

const (
	CodeValidation      = "method_argument_not_valid"
	CodeNotReadable     = "message_not_readable"
	CodeTooManyRequests = "too_many_requests"
	CodeGeneric         = "generic_exception"

	LevelWarn  = "WARN"
	LevelError = "ERROR"
)

var ErrRateLimited = errors.New("rate limit exceeded, please wait")

// ErrorResponse is the body of every non-2xx answer.
type ErrorResponse struct {
	HTTPStatus       string    `json:"httpStatus"`
	ErrorCode        string    `json:"errorCode,omitempty"`
	Message          string    `json:"message,omitempty"`
	LogLevel         string    `json:"logLevel,omitempty"`
	ValidationErrors []string  `json:"validationErrors,omitempty"`
	DateTime         time.Time `json:"dateTime"`
}

// NotReadableError wraps a request body that could not be decoded.
type NotReadableError struct {
	Err error
}

func (e *NotReadableError) Error() string {
	return "request body is not readable: " + e.Err.Error()
}

func (e *NotReadableError) Unwrap() error {
	return e.Err
}

// Build maps err to its status code and envelope.
func Build(err error) (int, ErrorResponse) {
	var (
		verr *models.ValidationError
		rerr *NotReadableError
	)

	switch {
	case errors.As(err, &verr):
		return envelope(http.StatusBadRequest, CodeValidation, LevelWarn, err.Error(), verr.Violations)
	case errors.As(err, &rerr):
		return envelope(http.StatusBadRequest, CodeNotReadable, LevelWarn, err.Error(), nil)
	case errors.Is(err, ErrRateLimited):
		return envelope(http.StatusTooManyRequests, CodeTooManyRequests, LevelWarn, err.Error(), nil)
	default:
		return envelope(http.StatusInternalServerError, CodeGeneric, LevelError, err.Error(), nil)
	}
}

func envelope(status int, code, level, message string, violations []string) (int, ErrorResponse) {
	return status, ErrorResponse{
		HTTPStatus:       statusName(status),
		ErrorCode:        code,
		Message:          message,
		LogLevel:         level,
		ValidationErrors: violations,
		DateTime:         time.Now().UTC(),
	}
}

// Error logs err at the level its kind carries and aborts the request with
// the matching envelope.
func Error(c *gin.Context, err error) {
	status, body := Build(err)

	fields := []zap.Field{
		zap.String("error_code", body.ErrorCode),
		zap.Int("status", status),
		zap.String("path", c.Request.URL.Path),
		zap.Error(err),
	}

	ctx := c.Request.Context()
	if body.LogLevel == LevelError {
		logger.ErrorCtx(ctx, "request failed", fields...)
	} else {
		logger.WarnCtx(ctx, "request rejected", fields...)
	}

	c.AbortWithStatusJSON(status, body)
}

// statusName renders 400 as BAD_REQUEST.
func statusName(status int) string {
	return strings.ToUpper(strings.ReplaceAll(http.StatusText(status), " ", "_"))
}
