package middleware

import (
	"time"

	"github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/config"
	"github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/types"
	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
)

func noop(c *gin.Context) {
	c.Next()
}

// SentryMiddleware returns a middleware that captures panics and performance data
func SentryMiddleware(cfg *config.Configuration) gin.HandlerFunc {
	if !cfg.Sentry.Enabled {
		return noop
	}

	return sentrygin.New(sentrygin.Options{
		Repanic:         true,
		WaitForDelivery: false,
		Timeout:         2 * time.Second,
	})
}

// SentryScopeMiddleware tags the request hub with request and company ids. It
// must run after SentryMiddleware and CompanyContextMiddleware.
func SentryScopeMiddleware(cfg *config.Configuration) gin.HandlerFunc {
	if !cfg.Sentry.Enabled {
		return noop
	}

	return func(c *gin.Context) {
		if hub := sentry.GetHubFromContext(c.Request.Context()); hub != nil {
			ctx := c.Request.Context()
			hub.ConfigureScope(func(scope *sentry.Scope) {
				scope.SetTag("request_id", types.GetRequestID(ctx))
				scope.SetTag("company_id", types.GetCompanyID(ctx))
			})
		}
		c.Next()
	}
}
