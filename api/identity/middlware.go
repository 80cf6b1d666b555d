package identity

import (
	"errors"
	"net/http"
	"strings"

	"github.com/beka-birhanu/vinom-backrooms/service/i"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// ContextUserClaims is the key used to store user claims in the Gin context.
	ContextUserClaims = "userClaims"

	// TokenQueryParam carries the token for clients that cannot set headers, such as
	// browser websockets.
	TokenQueryParam = "access_token"
)

var ErrNoUser = errors.New("no authenticated user")

// Authorize rejects requests without a valid bearer token and stores the token
// claims on the context.
func Authorize(ts i.Tokenizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.Status(http.StatusUnauthorized)
			c.Abort()
			return
		}

		claims, err := ts.Decode(token)
		if err != nil {
			c.Status(http.StatusUnauthorized)
			c.Abort()
			return
		}

		c.Set(ContextUserClaims, claims)
		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		token := c.Query(TokenQueryParam)
		return token, token != ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// UserID returns the ID of the designer the request was authorized for.
func UserID(c *gin.Context) (uuid.UUID, error) {
	raw, ok := claim(c, "userID")
	if !ok {
		return uuid.Nil, ErrNoUser
	}
	return uuid.Parse(raw)
}

// claim returns a string claim of the authorized token.
func claim(c *gin.Context, key string) (string, bool) {
	v, ok := c.Get(ContextUserClaims)
	if !ok {
		return "", false
	}
	claims, ok := v.(map[string]interface{})
	if !ok {
		return "", false
	}
	s, ok := claims[key].(string)
	return s, ok
}
