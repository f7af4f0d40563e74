package handler

import (
	stdErrors "errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meetmate/internal/adapter/dto/common"
	"github.com/johnquangdev/meetmate/internal/infrastructure/memdb"
)

// validationEntry mirrors one element of a 422 detail list
type validationEntry struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

// getRequestID tries to read X-Request-ID from the request
func getRequestID(c echo.Context) string {
	if c == nil || c.Request() == nil {
		return ""
	}
	if id := c.Request().Header.Get(echo.HeaderXRequestID); id != "" {
		return id
	}
	return c.Response().Header().Get(echo.HeaderXRequestID)
}

// bind decodes and validates a request in one step
func bind(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return err
	}
	return c.Validate(req)
}

// list writes the envelope shared by every list endpoint
func list[T any](c echo.Context, items []T, total int) error {
	if items == nil {
		items = []T{}
	}
	return c.JSON(http.StatusOK, common.ListResponse[T]{Items: items, Total: total})
}

// ErrorHandler writes every error as {"detail": ...}, the way the real
// backend does. Validation failures carry a list of field entries.
func ErrorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		status, detail := classify(err)

		fields := []zap.Field{
			zap.String("request_id", getRequestID(c)),
			zap.String("method", c.Request().Method),
			zap.String("path", c.Path()),
			zap.Int("status", status),
			zap.Error(err),
		}
		if status >= http.StatusInternalServerError {
			logger.Error("http.response.error", fields...)
		} else {
			logger.Debug("http.response.error", fields...)
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, common.ErrorResponse{Detail: detail})
		}
		if err != nil {
			logger.Error("http.response.write_failed", zap.Error(err))
		}
	}
}

func classify(err error) (int, interface{}) {
	var (
		verrs   validator.ValidationErrors
		storeEr *memdb.Error
		httpErr *echo.HTTPError
	)
	switch {
	case stdErrors.As(err, &verrs):
		entries := make([]validationEntry, 0, len(verrs))
		for _, fe := range verrs {
			entries = append(entries, validationEntry{
				Loc:  []string{"body", fe.Field()},
				Msg:  validationMessage(fe),
				Type: "value_error." + fe.Tag(),
			})
		}
		return http.StatusUnprocessableEntity, entries
	case stdErrors.As(err, &storeEr):
		switch {
		case stdErrors.Is(err, memdb.ErrNotFound):
			return http.StatusNotFound, storeEr.Detail
		case stdErrors.Is(err, memdb.ErrConflict):
			return http.StatusConflict, storeEr.Detail
		default:
			return http.StatusUnprocessableEntity, storeEr.Detail
		}
	case stdErrors.As(err, &httpErr):
		if msg, ok := httpErr.Message.(string); ok {
			return httpErr.Code, msg
		}
		return httpErr.Code, fmt.Sprint(httpErr.Message)
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field required"
	case "email":
		return "value is not a valid email address"
	case "oneof":
		return fmt.Sprintf("value is not one of: %s", fe.Param())
	case "min":
		return fmt.Sprintf("ensure this value has at least %s items or characters", fe.Param())
	case "max":
		return fmt.Sprintf("ensure this value has at most %s items or characters", fe.Param())
	case "url":
		return "invalid or missing URL scheme"
	default:
		return fmt.Sprintf("failed on the %q rule", fe.Tag())
	}
}
