package handler

import (
	"github.com/Zenthoriax/personal-finance-app/internal/util"

	"github.com/gin-gonic/gin"
)

// GetMe returns the current logged-in user (requires AuthMiddleware).
func GetMe(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	util.Success(c, util.Response{
		"user": gin.H{
			"id":           user.ID,
			"username":     user.Username,
			"email":        user.Email,
			"display_name": user.DisplayName,
			"created_at":   user.CreatedAt,
		},
	})
}
