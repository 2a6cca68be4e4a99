package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"courierhub/internal/core/domain/model/actor"
	"courierhub/internal/core/domain/model/kernel"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const actorKey = "actor"

var ErrMissingToken = errors.New("missing bearer token")

// Claims is the payload of the access tokens issued by the identity service.
// The subject is the user id.
type Claims struct {
	Role      string `json:"role"`
	CompanyID string `json:"companyId,omitempty"`
	jwt.RegisteredClaims
}

// Authenticator verifies HS256/HS512 bearer tokens and turns them into actors.
type Authenticator struct {
	secret []byte
}

func NewAuthenticator(secret string) (*Authenticator, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is required")
	}
	return &Authenticator{secret: []byte(secret)}, nil
}

// Sign issues a token for claims. It is used by tooling and tests; production
// tokens come from the identity service.
func (a *Authenticator) Sign(userID kernel.UUID, role actor.Role, companyID *kernel.UUID, ttl time.Duration) (string, error) {
	claims := Claims{
		Role: role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	if companyID != nil {
		claims.CompanyID = companyID.String()
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString(a.secret)
}

// Parse validates a raw token and builds the actor it describes.
func (a *Authenticator) Parse(raw string) (actor.Actor, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg(), jwt.SigningMethodHS512.Alg()}))
	if err != nil {
		return actor.Actor{}, err
	}

	userID, err := kernel.UUIDFromString(claims.Subject)
	if err != nil {
		return actor.Actor{}, err
	}
	role, err := actor.ParseRole(claims.Role)
	if err != nil {
		return actor.Actor{}, err
	}
	var companyID *kernel.UUID
	if claims.CompanyID != "" {
		id, err := kernel.UUIDFromString(claims.CompanyID)
		if err != nil {
			return actor.Actor{}, err
		}
		companyID = &id
	}
	return actor.New(userID, role, companyID)
}

// Middleware rejects requests without a valid token. Browsers cannot set
// headers on websocket upgrades, so a token query parameter is accepted too.
func (a *Authenticator) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := bearerToken(c.Request())
			if raw == "" {
				raw = c.QueryParam("token")
			}
			if raw == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, ErrMissingToken.Error())
			}

			caller, err := a.Parse(raw)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token").SetInternal(err)
			}
			c.Set(actorKey, caller)
			return next(c)
		}
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get(echo.HeaderAuthorization)
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

func callerOf(c echo.Context) (actor.Actor, error) {
	caller, ok := c.Get(actorKey).(actor.Actor)
	if !ok {
		return actor.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, ErrMissingToken.Error())
	}
	return caller, nil
}
