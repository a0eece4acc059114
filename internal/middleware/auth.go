package middleware

import (
	"encoding/json"
	"strings"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/taskhive/backend/api/transport"
	"github.com/taskhive/backend/domain"
	"github.com/taskhive/backend/internal/auth"
)

const identityKey = "identity"

// Identity returns the verified subject attached by BearerAuth, or ""
// when the request never passed through it.
func Identity(ctx *fasthttp.RequestCtx) string {
	identity, _ := ctx.UserValue(identityKey).(string)
	return identity
}

// BearerAuth verifies the Authorization header and attaches the subject
// as a request user value. Handlers must read identity only from that
// value; it cannot be spoofed through headers or body fields.
func BearerAuth(verifier *auth.Verifier, logger *zap.Logger) func(fasthttp.RequestHandler) fasthttp.RequestHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			tokenString := extractToken(ctx)
			if tokenString == "" {
				unauthorized(ctx, "missing bearer token")
				return
			}

			subject, err := verifier.Verify(tokenString)
			if err != nil {
				logger.Warn("token verification failed", zap.Error(err))
				unauthorized(ctx, domain.ErrUnauthorized.Message)
				return
			}

			ctx.SetUserValue(identityKey, subject)
			next(ctx)
		}
	}
}

func extractToken(ctx *fasthttp.RequestCtx) string {
	header := string(ctx.Request.Header.Peek("Authorization"))
	if header == "" {
		return ""
	}
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

func unauthorized(ctx *fasthttp.RequestCtx, message string) {
	ctx.Response.Header.Set("WWW-Authenticate", "Bearer")
	ctx.Response.Header.SetContentType("application/json")
	ctx.SetStatusCode(fasthttp.StatusUnauthorized)
	body, _ := json.Marshal(transport.NewError(string(domain.ErrCodeUnauthorized), message, nil))
	ctx.SetBody(body)
}
