package handler

import (
	"net/http"
	"time"

	"github.com/Zenthoriax/personal-finance-app/internal/models"
	"github.com/Zenthoriax/personal-finance-app/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// DashboardHandler serves the derived summary: total balance across
// accounts, current-month income and expense, and the active goal count.
type DashboardHandler struct {
	DB *gorm.DB
}

func NewDashboardHandler(db *gorm.DB) *DashboardHandler {
	return &DashboardHandler{DB: db}
}

func (h *DashboardHandler) Get(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var totalBalanceCent int64
	if err := h.DB.Model(&models.Account{}).
		Where("user_id = ?", user.ID).
		Select("COALESCE(SUM(balance_cent), 0)").
		Scan(&totalBalanceCent).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "server error")
		return
	}

	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthEnd := monthStart.AddDate(0, 1, 0)

	monthlySum := func(txType string) (int64, error) {
		var sum int64
		err := h.DB.Model(&models.Transaction{}).
			Where("user_id = ? AND type = ? AND date >= ? AND date < ?",
				user.ID, txType, monthStart, monthEnd).
			Select("COALESCE(SUM(amount_cent), 0)").
			Scan(&sum).Error
		return sum, err
	}

	incomeCent, err := monthlySum(models.TypeIncome)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "server error")
		return
	}
	expenseCent, err := monthlySum(models.TypeExpense)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "server error")
		return
	}

	var activeGoals int64
	if err := h.DB.Model(&models.Goal{}).
		Where("user_id = ? AND status = ?", user.ID, models.GoalActive).
		Count(&activeGoals).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "server error")
		return
	}

	util.Success(c, util.Response{
		"totalBalance":   util.FormatCent(totalBalanceCent),
		"monthlyIncome":  util.FormatCent(incomeCent),
		"monthlyExpense": util.FormatCent(expenseCent),
		"activeGoals":    activeGoals,
	})
}
