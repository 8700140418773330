package handler

import (
	"net/http"

	"github.com/Zenthoriax/personal-finance-app/internal/models"
	"github.com/Zenthoriax/personal-finance-app/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// BudgetHandler serves budget CRUD.
type BudgetHandler struct {
	DB *gorm.DB
}

func NewBudgetHandler(db *gorm.DB) *BudgetHandler {
	return &BudgetHandler{DB: db}
}

type budgetReq struct {
	CategoryID  uint   `json:"category_id" binding:"required"`
	Amount      string `json:"budget_amount" binding:"required"`
	PeriodStart string `json:"period_start" binding:"required"`
	PeriodEnd   string `json:"period_end" binding:"required"`
}

type budgetResp struct {
	ID           uint   `json:"budget_id"`
	CategoryID   uint   `json:"category_id"`
	CategoryName string `json:"category_name"`
	AmountCent   int64  `json:"budget_amount_cent"`
	Amount       string `json:"budget_amount"`
	PeriodStart  string `json:"period_start"`
	PeriodEnd    string `json:"period_end"`
}

func (h *BudgetHandler) parseReq(c *gin.Context) (req budgetReq, amountCent int64, start, end string, ok bool) {
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "all fields are required")
		return req, 0, "", "", false
	}

	amountCent, err := util.ParseAmountCent(req.Amount)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid budget amount")
		return req, 0, "", "", false
	}
	if err := util.ValidateAmountCent(amountCent); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid budget amount")
		return req, 0, "", "", false
	}

	startDate, err := util.ValidateDate(req.PeriodStart)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "period dates must be YYYY-MM-DD")
		return req, 0, "", "", false
	}
	endDate, err := util.ValidateDate(req.PeriodEnd)
	if err != nil || endDate.Before(startDate) {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "period dates must be YYYY-MM-DD")
		return req, 0, "", "", false
	}

	return req, amountCent, req.PeriodStart, req.PeriodEnd, true
}

func (h *BudgetHandler) List(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var budgets []models.Budget
	if err := h.DB.Preload("Category").
		Where("user_id = ?", user.ID).
		Order("period_start DESC").
		Find(&budgets).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "server error")
		return
	}

	items := make([]budgetResp, 0, len(budgets))
	for i := range budgets {
		b := &budgets[i]
		items = append(items, budgetResp{
			ID:           b.ID,
			CategoryID:   b.CategoryID,
			CategoryName: b.Category.Name,
			AmountCent:   b.AmountCent,
			Amount:       util.FormatCent(b.AmountCent),
			PeriodStart:  b.PeriodStart.Format("2006-01-02"),
			PeriodEnd:    b.PeriodEnd.Format("2006-01-02"),
		})
	}

	util.Success(c, util.Response{"budgets": items})
}

func (h *BudgetHandler) Create(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	req, amountCent, startStr, endStr, ok := h.parseReq(c)
	if !ok {
		return
	}
	start, _ := util.ValidateDate(startStr)
	end, _ := util.ValidateDate(endStr)

	// the category must belong to the user
	var count int64
	if err := h.DB.Model(&models.Category{}).
		Where("id = ? AND user_id = ?", req.CategoryID, user.ID).
		Count(&count).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "server error")
		return
	}
	if count == 0 {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "category not found")
		return
	}

	budget := models.Budget{
		UserID:      user.ID,
		CategoryID:  req.CategoryID,
		AmountCent:  amountCent,
		PeriodStart: start,
		PeriodEnd:   end,
	}
	if err := h.DB.Create(&budget).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "server error")
		return
	}

	util.Created(c, util.Response{
		"message":  "budget created",
		"budgetId": budget.ID,
	})
}

func (h *BudgetHandler) Update(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}

	_, amountCent, startStr, endStr, ok := h.parseReq(c)
	if !ok {
		return
	}
	start, _ := util.ValidateDate(startStr)
	end, _ := util.ValidateDate(endStr)

	res := h.DB.Model(&models.Budget{}).
		Where("id = ? AND user_id = ?", id, user.ID).
		Updates(map[string]interface{}{
			"amount_cent":  amountCent,
			"period_start": start,
			"period_end":   end,
		})
	if res.Error != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "server error")
		return
	}
	if res.RowsAffected == 0 {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "budget not found")
		return
	}

	util.Success(c, util.Response{"message": "budget updated"})
}

func (h *BudgetHandler) Delete(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}

	res := h.DB.Where("id = ? AND user_id = ?", id, user.ID).Delete(&models.Budget{})
	if res.Error != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "server error")
		return
	}
	if res.RowsAffected == 0 {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "budget not found")
		return
	}

	util.Success(c, util.Response{"message": "budget deleted"})
}
