package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"jobtrackr/internal/config"
	"jobtrackr/internal/denylist"
	"jobtrackr/pkg/utils"
)

const userIDKey = "userID"

// unauthenticatedMessage is shared by every rejection path. A missing,
// malformed, expired, forged or revoked token must all look the same to the
// client.
const unauthenticatedMessage = "invalid or expired token"

// AuthMiddleware gates protected routes. On success the resolved user id is
// stored in the request context; it never touches the credential store.
func AuthMiddleware(cfg *config.Config, deny *denylist.Denylist) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			rejectUnauthenticated(c)
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			rejectUnauthenticated(c)
			return
		}

		claims, err := utils.ValidateToken(parts[1], cfg.JWT.Secret)
		if err != nil {
			rejectUnauthenticated(c)
			return
		}

		revoked, err := deny.Contains(c.Request.Context(), claims.ID)
		if err != nil || revoked {
			rejectUnauthenticated(c)
			return
		}

		c.Set(userIDKey, claims.UserID)

		c.Next()
	}
}

func rejectUnauthenticated(c *gin.Context) {
	utils.ErrorResponse(c, http.StatusUnauthorized, unauthenticatedMessage)
	c.Abort()
}

// GetUserID retrieves the authenticated user id injected by AuthMiddleware.
func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get(userIDKey)
	if !exists {
		return uuid.Nil, false
	}

	userID, ok := value.(uuid.UUID)
	return userID, ok
}
