package middleware

import (
	"context"
	"errors"
	"strconv"
	"time"

	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/auth"
	"go-jobboard-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

// LoginGuard throttles repeated Basic-auth failures. *security.LoginTracker satisfies it.
type LoginGuard interface {
	IsBlocked(ctx context.Context, username, ip string) (bool, error)
	RecordFailedAttempt(ctx context.Context, username, ip, userAgent, requestID string) (bool, int, error)
	ClearAttempts(ctx context.Context, username, ip string) error
	GetBlockTTL(ctx context.Context, username string) (time.Duration, bool, error)
}

// AuthMiddleware resolves the Basic credential of every admin request into a
// domain.Identity. Handlers read it back with CurrentIdentity.
func AuthMiddleware(authUC domain.AuthUsecase, tracker LoginGuard) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		creds, err := auth.ParseBasicHeader(c.GetHeader("Authorization"))
		if err != nil {
			if errors.Is(err, auth.ErrNoCredentials) {
				err = apperror.Unauthenticated("Authentication required")
			}
			c.Error(err)
			c.Abort()
			return
		}

		ip := c.ClientIP()
		if tracker != nil {
			blocked, err := tracker.IsBlocked(ctx, creds.Username, ip)
			if err != nil {
				logger.Log.Warn("login tracker unavailable", "error", err)
			}
			if blocked {
				if ttl, ok, _ := tracker.GetBlockTTL(ctx, creds.Username); ok {
					c.Header("Retry-After", strconv.Itoa(int(ttl.Seconds())))
				}
				c.Error(apperror.TooManyRequests("Too many failed login attempts. Please try again later."))
				c.Abort()
				return
			}
		}

		identity, err := authUC.Authenticate(ctx, creds)
		if err != nil {
			if tracker != nil && apperror.Is(err, apperror.KindInvalidCredentials) {
				if _, _, terr := tracker.RecordFailedAttempt(ctx, creds.Username, ip, c.GetHeader("User-Agent"), response.RequestID(c)); terr != nil {
					logger.Log.Warn("failed to record login attempt", "error", terr)
				}
			}
			c.Error(err)
			c.Abort()
			return
		}

		if tracker != nil {
			if err := tracker.ClearAttempts(ctx, creds.Username, ip); err != nil {
				logger.Log.Warn("failed to clear login attempts", "error", err)
			}
		}

		c.Set(string(domain.KeyIdentity), identity)
		c.Next()
	}
}

// CurrentIdentity returns the identity stored by AuthMiddleware.
func CurrentIdentity(c *gin.Context) (domain.Identity, error) {
	v, ok := c.Get(string(domain.KeyIdentity))
	if !ok {
		return nil, apperror.Unauthenticated("Authentication required")
	}
	identity, ok := v.(domain.Identity)
	if !ok || identity == nil {
		return nil, apperror.Unauthenticated("Authentication required")
	}
	return identity, nil
}
