package web

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/Ostwick/RPG-Imperium/internal/config"
	"github.com/Ostwick/RPG-Imperium/internal/gameserver"
)

const identityKey = "imperium.identity"

// Claims is the payload of an access token. Subject carries the username.
type Claims struct {
	jwt.RegisteredClaims
	Role   string `json:"role"`
	UserID string `json:"id"`
}

// Authenticator decodes the identity cookie issued by the login service.
type Authenticator struct {
	cookie string
	secret []byte
	method string
}

// NewAuthenticator creates an Authenticator from cfg.
//
// Precondition: cfg has passed config validation.
func NewAuthenticator(cfg config.AuthConfig) *Authenticator {
	return &Authenticator{cookie: cfg.CookieName, secret: []byte(cfg.SecretKey), method: cfg.Algorithm}
}

// Identify reads the "Bearer <jwt>" cookie from r.
//
// Postcondition: ok is false for a missing cookie, a wrong scheme, a bad
// signature, an expired token, or a token without a subject.
func (a *Authenticator) Identify(r *http.Request) (gameserver.Identity, bool) {
	ck, err := r.Cookie(a.cookie)
	if err != nil {
		return gameserver.Identity{}, false
	}
	scheme, token, _ := strings.Cut(ck.Value, " ")
	if !strings.EqualFold(scheme, "bearer") || token == "" {
		return gameserver.Identity{}, false
	}

	var claims Claims
	_, err = jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{a.method}))
	if err != nil || claims.Subject == "" {
		return gameserver.Identity{}, false
	}

	id := claims.UserID
	if id == "" {
		id = claims.Subject
	}
	return gameserver.Identity{ID: id, Role: gameserver.Role(claims.Role)}, true
}

// Required rejects requests without a valid identity with 401.
func (a *Authenticator) Required() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := a.Identify(c.Request)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
			return
		}
		c.Set(identityKey, id)
		c.Next()
	}
}

// errNoIdentity means a handler ran outside the Required middleware.
var errNoIdentity = errors.New("no identity in request context")

func identity(c *gin.Context) gameserver.Identity {
	v, ok := c.Get(identityKey)
	if !ok {
		panic(errNoIdentity)
	}
	return v.(gameserver.Identity)
}
