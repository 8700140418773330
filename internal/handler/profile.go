package handler

import (
	"net/http"
	"strings"

	"github.com/Zenthoriax/personal-finance-app/internal/util"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type updateProfileReq struct {
	DisplayName string `json:"display_name" binding:"max=64"`
}

type changePasswordReq struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// UpdateProfile updates the current user's display name.
func UpdateProfile(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			return
		}

		var req updateProfileReq
		if err := c.ShouldBindJSON(&req); err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid parameters")
			return
		}

		req.DisplayName = strings.TrimSpace(req.DisplayName)

		if err := db.Model(user).Update("display_name", req.DisplayName).Error; err != nil {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "update failed")
			return
		}

		user.DisplayName = req.DisplayName

		util.Success(c, util.Response{
			"user": gin.H{
				"id":           user.ID,
				"username":     user.Username,
				"display_name": user.DisplayName,
			},
		})
	}
}

// ChangePassword changes the current user's password.
func ChangePassword(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			return
		}

		var req changePasswordReq
		if err := c.ShouldBindJSON(&req); err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid parameters")
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.OldPassword)); err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "old password is incorrect")
			return
		}

		if !isStrongPassword(req.NewPassword) {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "password must be 8-32 chars with upper, lower and digit")
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "server error")
			return
		}

		if err := db.Model(user).Update("password_hash", string(hash)).Error; err != nil {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "update failed")
			return
		}

		util.Success(c, util.Response{
			"message": "password changed, please log in again",
		})
	}
}
