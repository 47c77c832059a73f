package http

import (
	"net/http"

	"ordercycles/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
)

// UserIDHeader carries the acting user, set by the authenticating proxy.
const UserIDHeader = "X-User-ID"

const actorContextKey = "actor_id"

// ActorMiddleware reads the acting user from UserIDHeader.
func ActorMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := c.Request().Header.Get(UserIDHeader)
			if raw == "" {
				return c.JSON(http.StatusUnauthorized, ErrorResponse{Errors: "Authentication required"})
			}
			actorID, err := kernel.UUIDFromString(raw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, ErrorResponse{Errors: "Invalid user id"})
			}
			c.Set(actorContextKey, actorID)
			return next(c)
		}
	}
}

func actorFrom(c echo.Context) kernel.UUID {
	id, _ := c.Get(actorContextKey).(kernel.UUID)
	return id
}

// RequestLogger logs one line per request through logger.
func RequestLogger(logger logrus.FieldLogger) echo.MiddlewareFunc {
	log := logger.WithField("component", "http")
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogError:     true,
		LogRequestID: true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			entry := log.WithFields(logrus.Fields{
				"method":     v.Method,
				"uri":        v.URI,
				"status":     v.Status,
				"latency":    v.Latency.String(),
				"request_id": v.RequestID,
			})
			if v.Error != nil {
				entry.WithError(v.Error).Warn("request failed")
				return nil
			}
			entry.Info("request")
			return nil
		},
	})
}
