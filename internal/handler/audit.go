package handler

import (
	"net/http"
	"strconv"

	"github.com/Zenthoriax/personal-finance-app/internal/models"
	"github.com/Zenthoriax/personal-finance-app/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AuditHandler lists the current user's audit trail.
type AuditHandler struct {
	DB *gorm.DB
}

func NewAuditHandler(db *gorm.DB) *AuditHandler {
	return &AuditHandler{DB: db}
}

type auditResp struct {
	ID        uint   `json:"id"`
	Method    string `json:"method"`
	Path      string `json:"path"`
	Action    string `json:"action"`
	IP        string `json:"ip"`
	UserAgent string `json:"user_agent"`
	CreatedAt string `json:"created_at"`
}

func (h *AuditHandler) List(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}
	size, _ := strconv.Atoi(c.DefaultQuery("page_size", "50"))
	if size <= 0 || size > 200 {
		size = 50
	}

	base := h.DB.Model(&models.AuditLog{}).Where("user_id = ?", user.ID)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "server error")
		return
	}

	var logs []models.AuditLog
	if err := base.Session(&gorm.Session{}).
		Order("created_at DESC, id DESC").
		Limit(size).
		Offset((page - 1) * size).
		Find(&logs).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "server error")
		return
	}

	items := make([]auditResp, 0, len(logs))
	for i := range logs {
		l := &logs[i]
		items = append(items, auditResp{
			ID:        l.ID,
			Method:    l.Method,
			Path:      l.Path,
			Action:    l.Action,
			IP:        l.IP,
			UserAgent: l.UserAgent,
			CreatedAt: l.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}

	util.Success(c, util.Response{
		"items": items,
		"total": total,
		"page":  page,
		"size":  size,
	})
}
