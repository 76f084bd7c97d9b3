package httpserver

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"github.com/and161185/studyhub/internal/errs"
)

var (
	errInvalidID   = &errs.Error{Kind: errs.ErrValidation, Msg: "Invalid id"}
	errInvalidBody = &errs.Error{Kind: errs.ErrValidation, Msg: "Invalid request body"}
	errNoToken     = &errs.Error{Kind: errs.ErrUnauthorized, Msg: "No token, authorization denied"}
)

// mapError maps domain errors to an HTTP status and client message.
func mapError(err error) (int, string) {
	status, msg := statusFor(err)
	var e *errs.Error
	if errors.As(err, &e) && e.Msg != "" && status < http.StatusInternalServerError {
		msg = e.Msg
	}
	return status, msg
}

func statusFor(err error) (int, string) {
	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		return fe.Code, fe.Message
	case errors.Is(err, errs.ErrValidation), errors.Is(err, errs.ErrWeakPassword):
		return http.StatusBadRequest, "Invalid request"
	case errors.Is(err, errs.ErrEmailTaken):
		return http.StatusBadRequest, "Email already exists"
	case errors.Is(err, errs.ErrUsernameTaken):
		return http.StatusBadRequest, "Username already exists"
	case errors.Is(err, errs.ErrInvalidVariant):
		return http.StatusBadRequest, "Invalid card type"
	case errors.Is(err, errs.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Invalid email or password"
	case errors.Is(err, errs.ErrUnauthorized):
		return http.StatusUnauthorized, "Token is not valid"
	case errors.Is(err, errs.ErrForbidden):
		return http.StatusForbidden, "Unauthorized"
	case errors.Is(err, errs.ErrNotFound):
		return http.StatusNotFound, "Not found"
	case errors.Is(err, errs.ErrRateLimited):
		return http.StatusTooManyRequests, "Too many signin attempts, try again later"
	case errors.Is(err, errs.ErrUpstream):
		return http.StatusInternalServerError, "Error calling OpenAI API"
	case errors.Is(err, errs.ErrOracleParse):
		return http.StatusInternalServerError, "Failed to parse OpenAI API response"
	default:
		return http.StatusInternalServerError, "Server error"
	}
}

// errorHandler writes {"error": msg} and logs server-side failures.
func errorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c fiber.Ctx, err error) error {
		status, msg := mapError(err)
		if status >= http.StatusInternalServerError {
			log.Error("request failed",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.Error(err),
			)
		}
		return c.Status(status).JSON(fiber.Map{"error": msg})
	}
}
