package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"ridedispatch/pkg/models"
	"ridedispatch/pkg/security"
)

const (
	requestIDHeader = "X-Request-ID"
	claimsKey       = "claims"
)

func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if len(header) < 7 || !strings.EqualFold(header[:7], "Bearer ") {
		return ""
	}
	return strings.TrimSpace(header[7:])
}

// requireAuth rejects requests without a valid access token and stores its claims.
func (s *Server) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		claims, err := s.svc.Auth().Authenticate(token)
		if err != nil {
			s.abortWithError(c, err)
			return
		}
		c.Set(claimsKey, claims)
		c.Next()
	}
}

// optionalAuth stores claims when a valid access token is present and never rejects.
func (s *Server) optionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := bearerToken(c); token != "" {
			if claims, err := s.svc.Auth().Authenticate(token); err == nil {
				c.Set(claimsKey, claims)
			}
		}
		c.Next()
	}
}

func requireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := currentClaims(c)
		if claims == nil || claims.Role != models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin role required"})
			return
		}
		c.Next()
	}
}

func currentClaims(c *gin.Context) *security.Claims {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*security.Claims)
	return claims
}

func currentUserID(c *gin.Context) int64 {
	if claims := currentClaims(c); claims != nil {
		return claims.UserID
	}
	return 0
}
