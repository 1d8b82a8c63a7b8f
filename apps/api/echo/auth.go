package echoapi

import (
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/littleheartschool/backend/core"
)

const (
	authScheme      = "Bearer"
	contextTokenKey = "reviewerToken"
)

// Claims represents the authorization claims transmitted via a JWT.
// Tokens are issued by the school's identity provider; this API only
// verifies them against the shared signing key.
type Claims struct {
	jwt.StandardClaims
	Name    string `json:"name,omitempty"`
	Email   string `json:"email,omitempty"`
	IsAdmin bool   `json:"is_admin,omitempty"` // -> ADMIN PORTAL
}

// reviewerJWT verifies the Authorization header and stores the parsed token
// in the request context.
func reviewerJWT(conf *core.Config) echo.MiddlewareFunc {
	key := []byte(conf.SecretKey)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			raw, err := extractToken(ctx)
			if err != nil {
				return err
			}

			token, err := jwt.ParseWithClaims(raw, new(Claims), func(t *jwt.Token) (interface{}, error) {
				if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, errors.Errorf("unexpected signing method %q", t.Method.Alg())
				}
				return key, nil
			})
			if err != nil || !token.Valid {
				return errUnauthorized
			}

			ctx.Set(contextTokenKey, token)
			return next(ctx)
		}
	}
}

func extractToken(ctx echo.Context) (string, error) {
	header := ctx.Request().Header.Get(echo.HeaderAuthorization)
	if len(header) > len(authScheme) && strings.EqualFold(header[:len(authScheme)], authScheme) {
		return strings.TrimSpace(header[len(authScheme):]), nil
	}
	return "", errUnauthorized
}

// GenerateToken generates a signed JWT token string representing the Claims.
// Used by tests and local tooling; production tokens come from the identity
// provider.
func GenerateToken(conf *core.Config, claims *Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	ss, err := token.SignedString([]byte(conf.SecretKey))
	if err != nil {
		return "", errors.Wrap(err, "signing token")
	}
	return ss, nil
}

// GetReviewerClaims builds admin claims for a reviewer identity.
func GetReviewerClaims(conf *core.Config, subject, name, email string) *Claims {
	now := time.Now()
	return &Claims{
		StandardClaims: jwt.StandardClaims{
			Issuer:    conf.AppName,
			Subject:   subject,
			Audience:  "Admissions",
			ExpiresAt: now.Add(time.Hour).Unix(),
			IssuedAt:  now.Unix(),
		},
		Name:    name,
		Email:   email,
		IsAdmin: true,
	}
}

func getContextClaims(ctx echo.Context) (Claims, error) {
	if token, ok := ctx.Get(contextTokenKey).(*jwt.Token); ok {
		if claims, ok := token.Claims.(*Claims); ok {
			return *claims, nil
		}
	}
	return Claims{}, errUnauthorized
}
