package handler

import (
	"net/http"
	"strconv"

	"github.com/Zenthoriax/personal-finance-app/internal/models"
	"github.com/Zenthoriax/personal-finance-app/internal/util"

	"github.com/gin-gonic/gin"
)

// currentUser pulls the authenticated user out of the gin context. When it
// is missing the 401 has already been written here; callers just return.
func currentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get("currentUser")
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not logged in")
		return nil, false
	}
	user, ok := v.(*models.User)
	if !ok || user == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not logged in")
		return nil, false
	}
	return user, true
}

// idParam parses the :id path parameter.
func idParam(c *gin.Context) (uint, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid id")
		return 0, false
	}
	return uint(id), true
}
