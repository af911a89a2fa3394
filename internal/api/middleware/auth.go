package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/icpcsp/compreg/internal/api/handler/v1/response"
	"github.com/icpcsp/compreg/internal/pkg/jwthelper"
)

// UserIDKey is the gin context key holding the authenticated user id.
const UserIDKey = "userID"

var (
	errMissingToken      = errors.New("missing bearer token")
	errUserAgentMismatch = errors.New("token was issued to a different client")
)

type Authenticator struct {
	key []byte
}

func NewAuthenticator(key string) *Authenticator {
	return &Authenticator{key: []byte(key)}
}

// VerifyJWT requires a valid token and stores its user id under UserIDKey.
// Browsers cannot set headers on websocket upgrades, so the token query parameter
// is accepted as a fallback.
func (a *Authenticator) VerifyJWT() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		raw := bearerToken(ctx)
		if raw == "" {
			response.RenderErr(ctx, response.ErrUnauthorized(errMissingToken))
			return
		}

		claims, err := jwthelper.ParseToken(a.key, raw)
		if err != nil {
			response.RenderErr(ctx, response.ErrUnauthorized(err))
			return
		}

		if claims.UserAgent != ctx.Request.UserAgent() {
			response.RenderErr(ctx, response.ErrUnauthorized(errUserAgentMismatch))
			return
		}

		ctx.Set(UserIDKey, claims.UserID)
		ctx.Next()
	}
}

func bearerToken(ctx *gin.Context) string {
	header := ctx.GetHeader("Authorization")
	if header != "" {
		scheme, token, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") {
			return ""
		}
		return strings.TrimSpace(token)
	}

	return ctx.Query("token")
}
