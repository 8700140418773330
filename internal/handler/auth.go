package handler

import (
	"errors"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/Zenthoriax/personal-finance-app/internal/models"
	"github.com/Zenthoriax/personal-finance-app/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthHandler serves register/login/logout.
type AuthHandler struct {
	DB         *gorm.DB
	JWTSecret  string
	Issuer     string
	TokenTTL   time.Duration
	BcryptCost int
}

func NewAuthHandler(db *gorm.DB, jwtSecret, issuer string, ttlHours, bcryptCost int) *AuthHandler {
	if ttlHours <= 0 {
		ttlHours = 24 * 7
	}
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = 12
	}
	return &AuthHandler{
		DB:         db,
		JWTSecret:  jwtSecret,
		Issuer:     issuer,
		TokenTTL:   time.Duration(ttlHours) * time.Hour,
		BcryptCost: bcryptCost,
	}
}

var usernameRe = regexp.MustCompile(`^[A-Za-z0-9_]{3,20}$`)

// password rule: 8-32 chars with upper, lower and digit
func isStrongPassword(pwd string) bool {
	if len(pwd) < 8 || len(pwd) > 32 {
		return false
	}
	var hasUpper, hasLower, hasDigit bool
	for _, ch := range pwd {
		switch {
		case ch >= 'A' && ch <= 'Z':
			hasUpper = true
		case ch >= 'a' && ch <= 'z':
			hasLower = true
		case ch >= '0' && ch <= '9':
			hasDigit = true
		}
	}
	return hasUpper && hasLower && hasDigit
}

type registerReq struct {
	Username    string `json:"username" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required"`
	DisplayName string `json:"display_name" binding:"max=64"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "all fields are required")
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	if !usernameRe.MatchString(req.Username) {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "username must be 3-20 letters, digits or underscores")
		return
	}
	if !isStrongPassword(req.Password) {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "password must be 8-32 chars with upper, lower and digit")
		return
	}

	// case-insensitive uniqueness over both username and email
	var count int64
	if err := h.DB.Model(&models.User{}).
		Where("LOWER(username) = LOWER(?) OR LOWER(email) = ?", req.Username, req.Email).
		Count(&count).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "server error")
		return
	}
	if count > 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "user already exists")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), h.BcryptCost)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "server error")
		return
	}

	user := models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		DisplayName:  req.DisplayName,
	}
	if err := h.DB.Create(&user).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "server error")
		return
	}

	token, sessionID, err := h.issueToken(user.ID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "server error")
		return
	}

	util.Created(c, util.Response{
		"message":    "user registered successfully",
		"token":      token,
		"session_id": sessionID,
		"userId":     user.ID,
	})
}

type loginReq struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "email and password are required")
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	if err := h.DB.Where("LOWER(email) = ?", req.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Error(c, http.StatusUnauthorized, util.CodeAuth, "invalid credentials")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "server error")
		}
		return
	}

	now := time.Now()

	if user.LockedUntil != nil && now.Before(*user.LockedUntil) {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "account locked, try again later")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		// 5 consecutive failures lock the account for 10 minutes
		user.FailedLoginAttempts++
		if user.FailedLoginAttempts >= 5 {
			lockUntil := now.Add(10 * time.Minute)
			user.LockedUntil = &lockUntil
			user.FailedLoginAttempts = 0
		}
		_ = h.DB.Save(&user).Error
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "invalid credentials")
		return
	}

	user.FailedLoginAttempts = 0
	user.LockedUntil = nil
	user.LastLoginIP = c.ClientIP()
	user.LastLoginAt = &now
	_ = h.DB.Save(&user).Error

	token, sessionID, err := h.issueToken(user.ID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "server error")
		return
	}

	util.Success(c, util.Response{
		"message":    "login successful",
		"token":      token,
		"session_id": sessionID,
		"userId":     user.ID,
		"username":   user.Username,
	})
}

// Logout revokes the session the current token belongs to.
func (h *AuthHandler) Logout(c *gin.Context) {
	if _, ok := currentUser(c); !ok {
		return
	}
	sessionID, _ := c.Get("currentSession")
	idStr, _ := sessionID.(string)
	if idStr != "" {
		if err := h.DB.Model(&models.Session{}).
			Where("id = ?", idStr).
			Update("revoked", true).Error; err != nil {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "server error")
			return
		}
	}
	util.Success(c, util.Response{"message": "logged out"})
}

// issueToken records a session row and signs a JWT bound to it.
func (h *AuthHandler) issueToken(userID uint) (token, sessionID string, err error) {
	session := models.Session{
		ID:        uuid.New().String(),
		UserID:    userID,
		ExpiresAt: time.Now().Add(h.TokenTTL),
	}
	if err = h.DB.Create(&session).Error; err != nil {
		return "", "", err
	}
	token, err = util.GenerateToken(h.JWTSecret, h.Issuer, userID, session.ID, h.TokenTTL)
	if err != nil {
		return "", "", err
	}
	return token, session.ID, nil
}
