package handler

import (
	"net/http"
	"strings"

	"github.com/Zenthoriax/personal-finance-app/internal/models"
	"github.com/Zenthoriax/personal-finance-app/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CategoryHandler serves category CRUD.
type CategoryHandler struct {
	DB *gorm.DB
}

func NewCategoryHandler(db *gorm.DB) *CategoryHandler {
	return &CategoryHandler{DB: db}
}

type categoryReq struct {
	Name string `json:"category_name" binding:"required,max=64"`
	Type string `json:"category_type" binding:"required,oneof=income expense"`
}

type categoryResp struct {
	ID   uint   `json:"category_id"`
	Name string `json:"category_name"`
	Type string `json:"category_type"`
}

func (h *CategoryHandler) List(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var categories []models.Category
	if err := h.DB.Where("user_id = ?", user.ID).
		Order("name").
		Find(&categories).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "server error")
		return
	}

	items := make([]categoryResp, 0, len(categories))
	for i := range categories {
		items = append(items, categoryResp{
			ID:   categories[i].ID,
			Name: categories[i].Name,
			Type: categories[i].Type,
		})
	}

	util.Success(c, util.Response{"categories": items})
}

func (h *CategoryHandler) Create(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req categoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "category name and type are required")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "category name and type are required")
		return
	}

	// (user, name) is unique; check first for a friendly error
	var count int64
	if err := h.DB.Model(&models.Category{}).
		Where("user_id = ? AND name = ?", user.ID, req.Name).
		Count(&count).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "server error")
		return
	}
	if count > 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "category already exists")
		return
	}

	category := models.Category{
		UserID: user.ID,
		Name:   req.Name,
		Type:   req.Type,
	}
	if err := h.DB.Create(&category).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "server error")
		return
	}

	util.Created(c, util.Response{
		"message":    "category created",
		"categoryId": category.ID,
	})
}

func (h *CategoryHandler) Delete(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}

	res := h.DB.Where("id = ? AND user_id = ?", id, user.ID).Delete(&models.Category{})
	if res.Error != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "server error")
		return
	}
	if res.RowsAffected == 0 {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "category not found")
		return
	}

	util.Success(c, util.Response{"message": "category deleted"})
}
