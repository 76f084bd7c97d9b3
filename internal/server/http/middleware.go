package httpserver

import (
	"fmt"
	"runtime/debug"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"github.com/and161185/studyhub/internal/model"
	"github.com/and161185/studyhub/internal/service"
)

const accountKey = "account"

// RequestLogger logs one line per request. Errors are rendered here so the
// logged status is the one sent.
func RequestLogger(log *zap.Logger) fiber.Handler {
	render := errorHandler(log)
	return func(c fiber.Ctx) error {
		start := time.Now()
		if err := c.Next(); err != nil {
			if rerr := render(c, err); rerr != nil {
				return rerr
			}
		}

		// metadata only, never bodies
		log.Info("http",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("dur", time.Since(start)),
			zap.String("ip", c.IP()),
		)
		return nil
	}
}

// Recover turns a handler panic into a 500.
func Recover(log *zap.Logger) fiber.Handler {
	return func(c fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				log.Error("panic",
					zap.Any("reason", r),
					zap.ByteString("stack", debug.Stack()),
					zap.String("path", c.Path()),
				)
				err = fmt.Errorf("panic: %v", r)
			}
		}()
		return c.Next()
	}
}

// RequireAuth resolves the bearer token to an account stored in Locals.
func RequireAuth(auth service.AuthService) fiber.Handler {
	return func(c fiber.Ctx) error {
		token := bearerToken(c)
		if token == "" {
			return errNoToken
		}
		acc, err := auth.VerifyToken(c.Context(), token)
		if err != nil {
			return err
		}
		c.Locals(accountKey, acc)
		return c.Next()
	}
}

// bearerToken extracts the token from "Authorization: Bearer <t>"; the scheme is case-insensitive.
func bearerToken(c fiber.Ctx) string {
	h := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	scheme, tok, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(tok)
}

func currentAccount(c fiber.Ctx) model.Account {
	acc, _ := c.Locals(accountKey).(model.Account)
	return acc
}
