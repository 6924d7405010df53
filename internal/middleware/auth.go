package middleware

import (
	"errors"
	"net/http"
	"strings"

	pkgAuth "dice-service/pkg/auth"
	"dice-service/pkg/response"

	"github.com/gin-gonic/gin"
)

const (
	ContextUserIDKey = "userID"
	BridgeKeyHeader  = "X-Bridge-Key"
)

type BridgeVerifier interface {
	VerifyBridgeKey(key string) error
}

func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := extractBearerToken(c.GetHeader("Authorization"))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}

		claims, err := pkgAuth.ParseUserToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(ContextUserIDKey, claims.SubjectID)
		c.Next()
	}
}

// BridgeKeyRequired guards routes only the chat bridge may call.
func BridgeKeyRequired(verifier BridgeVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := verifier.VerifyBridgeKey(c.GetHeader(BridgeKeyHeader)); err != nil {
			response.FromError(c, err)
			c.Abort()
			return
		}
		c.Next()
	}
}

func extractBearerToken(authHeader string) (string, error) {
	if strings.TrimSpace(authHeader) == "" {
		return "", errors.New("missing authorization header")
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", errors.New("invalid authorization header")
	}
	return strings.TrimSpace(parts[1]), nil
}
