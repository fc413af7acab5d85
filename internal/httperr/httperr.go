// Package httperr translates taxonomy errors into HTTP responses.
package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/agendafacil/agenda-api/internal/apperr"
	"github.com/agendafacil/agenda-api/internal/logger"
)

func statusOf(kind apperr.Kind) int {
	switch kind {
	case apperr.KindValidation:
		return http.StatusBadRequest
	case apperr.KindAuthentication:
		return http.StatusUnauthorized
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Respond writes the JSON error body for any failure. Internal errors are
// logged with their cause and surfaced with a generic message only.
func Respond(c *gin.Context, err error) {
	var ae *apperr.Error
	if !errors.As(err, &ae) {
		ae = apperr.Internal(err)
	}

	if ae.Kind == apperr.KindInternal {
		log := logger.Get()
		log.Error().
			Err(ae.Unwrap()).
			Str("path", c.Request.URL.Path).
			Str("method", c.Request.Method).
			Msg("request failed")
	}

	c.JSON(statusOf(ae.Kind), gin.H{"error": ae.Message})
}

// Binding maps a gin binding failure to a single validation message.
func Binding(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		Respond(c, apperr.Validation(fieldMessage(verrs[0])))
		return
	}
	Respond(c, apperr.Validation("invalid request body"))
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "dateonly":
		return "invalid date format, use YYYY-MM-DD"
	case "hhmm":
		return "invalid time format, use HH:MM"
	case "oneof":
		return "invalid " + fe.Field()
	default:
		return "invalid " + fe.Field()
	}
}
