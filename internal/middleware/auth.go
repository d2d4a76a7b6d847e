package middleware

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	appErrors "github.com/noah-isme/unischedule/pkg/errors"
	"github.com/noah-isme/unischedule/pkg/response"
)

// serviceClaims is the minimal claim set for the single shared-secret
// bearer token gating mutating endpoints (solve, reoptimize, schedule
// creation and deletion). There are no user accounts in this domain, so this
// is a service token rather than a per-user claim set.
type serviceClaims struct {
	jwt.RegisteredClaims
}

// Auth requires a valid HS256 bearer token signed with secret.
func Auth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "invalid authorization header"))
			c.Abort()
			return
		}

		if err := validateServiceToken(parts[1], secret); err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		c.Next()
	}
}

func validateServiceToken(tokenString, secret string) error {
	token, err := jwt.ParseWithClaims(tokenString, &serviceClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid token")
	}
	if !token.Valid {
		return appErrors.Clone(appErrors.ErrUnauthorized, "invalid token claims")
	}
	return nil
}
