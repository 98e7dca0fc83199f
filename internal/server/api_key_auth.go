package server

import (
	"crypto/sha256"
	"crypto/subtle"
	"strings"

	obscontext "github.com/faktur-app/faktur/internal/observability/context"
	"github.com/gin-gonic/gin"
)

// APIKeyRequired authenticates requests against the single owner key.
// Comparison happens on SHA-256 digests in constant time.
func (s *Server) APIKeyRequired() gin.HandlerFunc {
	ownerDigest := sha256.Sum256([]byte(strings.TrimSpace(s.cfg.OwnerAPIKey)))

	return func(c *gin.Context) {
		if strings.TrimSpace(s.cfg.OwnerAPIKey) == "" {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		header := strings.TrimSpace(c.GetHeader("Authorization"))
		if header == "" {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		parts := strings.Fields(header)
		if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		digest := sha256.Sum256([]byte(parts[1]))
		if subtle.ConstantTimeCompare(digest[:], ownerDigest[:]) != 1 {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		ctx := obscontext.WithActor(c.Request.Context(), "owner")
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
