package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/Zenthoriax/personal-finance-app/internal/models"
	"github.com/Zenthoriax/personal-finance-app/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AuthMiddleware verifies the JWT and puts the current user into the gin
// context. The token is accepted from the Authorization header, a ?token=
// query parameter (for download links that cannot set headers) or the
// pft_token cookie.
func AuthMiddleware(jwtSecret string, db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var tokenStr string

		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
				tokenStr = parts[1]
			}
		}

		if tokenStr == "" {
			tokenStr = c.Query("token")
		}

		if tokenStr == "" {
			if cookie, err := c.Cookie("pft_token"); err == nil {
				tokenStr = cookie
			}
		}

		if tokenStr == "" {
			util.Error(c, http.StatusUnauthorized, util.CodeAuth, "access token required")
			c.Abort()
			return
		}

		claims, err := util.ParseToken(jwtSecret, tokenStr)
		if err != nil || claims.ExpiresAt == nil || claims.ExpiresAt.Before(time.Now()) {
			util.Error(c, http.StatusUnauthorized, util.CodeAuth, "invalid or expired token")
			c.Abort()
			return
		}

		// a logged-out session invalidates its tokens even before expiry
		if claims.SessionID != "" {
			var session models.Session
			if err := db.First(&session, "id = ?", claims.SessionID).Error; err != nil ||
				session.Revoked || session.ExpiresAt.Before(time.Now()) {
				util.Error(c, http.StatusUnauthorized, util.CodeAuth, "session expired, please log in again")
				c.Abort()
				return
			}
		}

		var user models.User
		if err := db.First(&user, claims.UserID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				util.Error(c, http.StatusUnauthorized, util.CodeAuth, "user not found")
			} else {
				util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load user")
			}
			c.Abort()
			return
		}

		c.Set("currentUser", &user)
		c.Set("currentSession", claims.SessionID)
		c.Next()
	}
}
