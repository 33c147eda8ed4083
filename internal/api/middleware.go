package api

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	requestIDHeader     = "X-Request-ID"
	contextRequestIDKey = "request_id"
	contextTokenIDKey   = "token_id"
)

// RequestID reuses a caller-supplied X-Request-ID or assigns a new one.
func (handler *Handler) RequestID(c *fiber.Ctx) error {
	requestID := strings.TrimSpace(c.Get(requestIDHeader))
	if requestID == "" || len(requestID) > 128 {
		requestID = uuid.NewString()
	}
	c.Locals(contextRequestIDKey, requestID)
	c.Set(requestIDHeader, requestID)
	return c.Next()
}

func (handler *Handler) AccessLog(c *fiber.Ctx) error {
	started := time.Now()
	err := c.Next()

	status := c.Response().StatusCode()
	if err != nil {
		status = fiber.StatusInternalServerError
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			status = fiberErr.Code
		}
	}

	event := handler.logger.Info()
	if status >= fiber.StatusInternalServerError {
		event = handler.logger.Warn()
	}
	requestID, _ := c.Locals(contextRequestIDKey).(string)
	event.
		Str("method", c.Method()).
		Str("path", c.Path()).
		Int("status", status).
		Dur("latency", time.Since(started)).
		Str("request_id", requestID).
		Msg("request")
	return err
}

// TokenRequired guards the JSON API with a bearer token when a secret key is
// configured. Clients that keep failing are throttled.
func (handler *Handler) TokenRequired(c *fiber.Ctx) error {
	if !handler.authEnabled() {
		return c.Next()
	}

	now := handler.now()
	key := clientKey(c)
	if handler.tokenLimiter.blocked(key, now, tokenFailureLimit, tokenFailureWindow) {
		return apiError(c, fiber.StatusTooManyRequests, "too many failed attempts")
	}

	raw, ok := bearerToken(c.Get(fiber.HeaderAuthorization))
	if !ok {
		handler.tokenLimiter.recordFailure(key, now, tokenFailureWindow)
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	claims, err := parseToken(handler.secretKey, raw, now)
	if err != nil {
		handler.tokenLimiter.recordFailure(key, now, tokenFailureWindow)
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	handler.tokenLimiter.forget(key)
	c.Locals(contextTokenIDKey, claims.ID)
	return c.Next()
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
