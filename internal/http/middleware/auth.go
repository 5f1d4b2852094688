package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/rentals-backend/internal/domain/errs"
	"github.com/yungbote/rentals-backend/internal/http/response"
	"github.com/yungbote/rentals-backend/internal/platform/ctxutil"
	"github.com/yungbote/rentals-backend/internal/platform/logger"
	"github.com/yungbote/rentals-backend/internal/services"
)

const wwwAuthenticate = `Basic realm="api"`

type AuthMiddleware struct {
	log      *logger.Logger
	identity services.IdentityService
}

func NewAuthMiddleware(log *logger.Logger, identity services.IdentityService) *AuthMiddleware {
	middlewareLogger := log.With("Middleware", "AuthMiddleware")
	return &AuthMiddleware{log: middlewareLogger, identity: identity}
}

// Authenticate resolves the Authorization header. Requests without one
// continue anonymously; bad credentials are rejected outright.
func (am *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := am.identity.Authenticate(c.Request.Context(), c.GetHeader("Authorization"))
		if err != nil {
			am.log.Debug("authentication failed", "error", err)
			if errs.IsCode(err, errs.CodeUnauthenticated) {
				c.Header("WWW-Authenticate", wwwAuthenticate)
			}
			response.RespondAppError(c, err)
			c.Abort()
			return
		}
		if !id.IsAnonymous() {
			ctx := ctxutil.WithRequestData(c.Request.Context(), &ctxutil.RequestData{
				UserID:   id.UserID,
				Username: id.Username,
			})
			c.Request = c.Request.WithContext(ctx)
			c.Set("user_id", id.UserID.String())
		}
		c.Next()
	}
}

// RequireAuth rejects anonymous requests. It must run after Authenticate.
func (am *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if ctxutil.Identity(c.Request.Context()).IsAnonymous() {
			c.Header("WWW-Authenticate", wwwAuthenticate)
			response.RespondError(c, http.StatusUnauthorized, string(errs.CodeUnauthenticated),
				errs.Unauthenticated("auth", "Authentication credentials were not provided."))
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAuthFor rejects anonymous requests using one of methods and lets
// every other method through.
func (am *AuthMiddleware) RequireAuthFor(methods ...string) gin.HandlerFunc {
	guard := am.RequireAuth()
	return func(c *gin.Context) {
		for _, m := range methods {
			if c.Request.Method == m {
				guard(c)
				return
			}
		}
		c.Next()
	}
}
