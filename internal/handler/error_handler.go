package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	apperrors "bakehouse/internal/errors"
)

// ErrorHandler renders every error as the standard failure envelope.
func ErrorHandler(logger zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		httpErr := toHTTPError(err, c)
		if httpErr.StatusCode >= http.StatusInternalServerError {
			logger.Error().Err(err).
				Str("method", c.Request().Method).
				Str("path", c.Request().URL.Path).
				Msg("request failed")
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(httpErr.StatusCode)
		} else {
			err = c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
		}
		if err != nil {
			logger.Warn().Err(err).Msg("write error response")
		}
	}
}

func toHTTPError(err error, c echo.Context) *apperrors.HTTPError {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return apperrors.NewHTTPError(http.StatusBadRequest, ValidationMessage(validationErrs), "")
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		if he == echo.ErrNotFound || he == echo.ErrMethodNotAllowed {
			return apperrors.NewHTTPError(http.StatusNotFound,
				fmt.Sprintf("not found - %s", c.Request().URL.Path), "")
		}
		detail := ""
		if he.Internal != nil {
			detail = he.Internal.Error()
		}
		return apperrors.NewHTTPError(he.Code, fmt.Sprint(he.Message), detail)
	}

	return apperrors.MapErrorToHTTP(err)
}

// ValidationMessage turns validator failures into one readable sentence.
func ValidationMessage(errs validator.ValidationErrors) string {
	msgs := make([]string, 0, len(errs))
	for _, fe := range errs {
		field := jsonName(fe.Field())
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, field+" is required")
		case "email":
			msgs = append(msgs, field+" must be a valid email")
		case "min":
			msgs = append(msgs, fmt.Sprintf("%s must be at least %s characters", field, fe.Param()))
		case "max":
			msgs = append(msgs, fmt.Sprintf("%s must be at most %s characters", field, fe.Param()))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", ")))
		default:
			msgs = append(msgs, field+" is invalid")
		}
	}
	return strings.Join(msgs, "; ")
}

func jsonName(field string) string {
	if field == "" {
		return field
	}
	return strings.ToLower(field[:1]) + field[1:]
}
