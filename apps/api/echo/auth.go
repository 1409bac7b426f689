package echoapi

import (
	"context"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/participant"
	"github.com/trezcool/darasa/core/session"
)

const (
	contextTokenKey    = "identityToken"
	contextIdentityKey = "identity"
)

// appJWTConfig returns the JWT auth middleware config.
func appJWTConfig() middleware.JWTConfig {
	return middleware.JWTConfig{
		SigningKey:    []byte(core.Conf.SecretKey),
		SigningMethod: middleware.AlgorithmHS256,
		ContextKey:    contextTokenKey,
		Claims:        new(Claims),
	}
}

// Claims represents the authorization claims transmitted via a JWT.
type Claims struct {
	jwt.StandardClaims
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
}

func GetIdentityClaims(p participant.Participant, role string) *Claims {
	now := time.Now()
	return &Claims{
		StandardClaims: jwt.StandardClaims{
			Issuer:    core.Conf.AppName,
			Subject:   p.ID,
			ExpiresAt: now.Add(core.Conf.Server.JWTExpirationDelta).Unix(),
			IssuedAt:  now.Unix(),
		},
		Name:  p.Name,
		Email: p.Email,
		Role:  role,
	}
}

func authenticate(ctx context.Context, email, pwd, role string, directory participant.Directory) (*Claims, error) {
	p, err := directory.Authenticate(ctx, email, pwd, role)
	if err != nil {
		if errors.Cause(err) == participant.ErrNotFound {
			return nil, errAuthenticationFailed
		}
		return nil, errors.Wrap(err, "authenticating participant")
	}
	return GetIdentityClaims(p, role), nil
}

// GenerateToken generates a signed JWT token string representing the identity Claims.
func GenerateToken(claims *Claims) (string, error) {
	conf := appJWTConfig()
	method := jwt.GetSigningMethod(conf.SigningMethod)
	token := jwt.NewWithClaims(method, claims)

	ss, err := token.SignedString(conf.SigningKey.([]byte))
	if err != nil {
		return "", errors.New("signing token")
	}
	return ss, nil
}

func getContextClaims(ctx echo.Context) (Claims, error) {
	if token, ok := ctx.Get(contextTokenKey).(*jwt.Token); ok {
		if claims, ok := token.Claims.(*Claims); ok {
			return *claims, nil
		}
	}
	return Claims{}, errUnauthorized
}

// getContextIdentity rebuilds the caller's identity from their claims.
func getContextIdentity(ctx echo.Context) (session.Identity, error) {
	if id, ok := ctx.Get(contextIdentityKey).(session.Identity); ok {
		return id, nil
	}

	claims, err := getContextClaims(ctx)
	if err != nil {
		return session.Identity{}, err
	}
	id := session.Identity{
		ID:    claims.Subject,
		Name:  claims.Name,
		Email: claims.Email,
		Role:  claims.Role,
	}
	ctx.Set(contextIdentityKey, id)
	return id, nil
}

// getContextSession exposes the caller as a ready session for the gate.
func getContextSession(ctx echo.Context) session.Session {
	sess := session.Session{Ready: true}
	if id, err := getContextIdentity(ctx); err == nil {
		sess.Identity = &id
	}
	return sess
}
