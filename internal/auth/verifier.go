package auth

import (
	"github.com/golang-jwt/jwt/v4"

	"github.com/taskhive/backend/domain"
)

// Verifier validates HS256 bearer tokens against a shared secret and
// extracts the subject claim. It holds no mutable state and is safe for
// concurrent use.
type Verifier struct {
	secret []byte
}

func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

// Verify checks the token signature and validity window and returns the
// subject identity. Every failure maps to the unauthorized category; the
// outward message stays generic so validation internals never leak.
func (v *Verifier) Verify(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrUnauthorized
		}
		return v.secret, nil
	})
	if err != nil {
		return "", domain.WrapError(domain.ErrCodeUnauthorized, "invalid or expired token", err)
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid {
		return "", domain.NewError(domain.ErrCodeUnauthorized, "invalid or expired token")
	}

	// A structurally valid token without a subject asserts no identity.
	if claims.Subject == "" {
		return "", domain.NewError(domain.ErrCodeUnauthorized, "token missing subject")
	}

	return claims.Subject, nil
}
