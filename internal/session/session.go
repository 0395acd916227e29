package session

import (
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// A visitor is identified by a random uuid carried in a signed cookie.
// The uuid scopes cart lines in the database; no account is involved.

const (
	CookieName = "storefront_session"
	ContextKey = "sessionID"
	TTL        = 30 * 24 * time.Hour
)

func NewToken(id uuid.UUID, secret []byte) (string, error) {
	claims := jwt.MapClaims{
		"sid": id.String(),
		"exp": time.Now().Add(TTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(secret)
}

func ParseToken(rawToken string, secret []byte) (uuid.UUID, error) {
	t, err := jwt.Parse(rawToken, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil || !t.Valid {
		return uuid.Nil, fmt.Errorf("invalid session token: %w", err)
	}

	claims, ok := t.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, fmt.Errorf("cannot parse claims")
	}

	raw, ok := claims["sid"].(string)
	if !ok {
		return uuid.Nil, fmt.Errorf("session token missing sid claim")
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("bad sid claim: %w", err)
	}
	return id, nil
}

func CreateCookie(name string, value string, path string, exp_time time.Time) *http.Cookie {
	cookie := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     path,
		Expires:  exp_time,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	}

	return cookie
}

// Middleware puts the visitor's session id into the echo context,
// minting a fresh one when the cookie is absent or fails to parse.
func Middleware(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if cookie, err := c.Cookie(CookieName); err == nil {
				if id, err := ParseToken(cookie.Value, secret); err == nil {
					c.Set(ContextKey, id)
					return next(c)
				}
			}

			id := uuid.New()
			token, err := NewToken(id, secret)
			if err != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, "cannot create session")
			}
			c.SetCookie(CreateCookie(CookieName, token, "/", time.Now().Add(TTL)))
			c.Set(ContextKey, id)
			return next(c)
		}
	}
}

func FromContext(c echo.Context) (uuid.UUID, error) {
	if id, ok := c.Get(ContextKey).(uuid.UUID); ok {
		return id, nil
	}
	return uuid.Nil, echo.NewHTTPError(http.StatusUnauthorized, "missing session")
}
