package echoapi

import (
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/littleheartschool/backend/core"
)

func adminMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			claims, err := getContextClaims(ctx)
			if err != nil {
				return errors.Wrap(err, "getting context claims")
			}
			if claims.IsAdmin {
				return next(ctx)
			}
			return errHttpForbidden
		}
	}
}

// rateLimitMiddleware caps requests per client address using the Redis
// limiter. A nil limiter disables limiting (DEV|TEST).
func rateLimitMiddleware(limiter *RedisLimiter, conf core.RedisConfig, scope string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			key := "ratelimit:" + scope + ":" + ctx.RealIP()
			if !limiter.Allow(key, conf.IntakeLimit, conf.IntakeWindow) {
				return errTooManyRequests
			}
			return next(ctx)
		}
	}
}
