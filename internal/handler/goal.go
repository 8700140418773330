package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/Zenthoriax/personal-finance-app/internal/models"
	"github.com/Zenthoriax/personal-finance-app/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GoalHandler serves savings goal CRUD.
type GoalHandler struct {
	DB *gorm.DB
}

func NewGoalHandler(db *gorm.DB) *GoalHandler {
	return &GoalHandler{DB: db}
}

type goalReq struct {
	Name          string `json:"goal_name" binding:"required,max=64"`
	TargetAmount  string `json:"target_amount" binding:"required"`
	CurrentAmount string `json:"current_amount"`
	TargetDate    string `json:"target_date"`
	Status        string `json:"status"`
}

type goalResp struct {
	ID          uint   `json:"goal_id"`
	Name        string `json:"goal_name"`
	TargetCent  int64  `json:"target_cent"`
	Target      string `json:"target_amount"`
	CurrentCent int64  `json:"current_cent"`
	Current     string `json:"current_amount"`
	TargetDate  string `json:"target_date,omitempty"`
	Status      string `json:"status"`
}

func validGoalStatus(s string) bool {
	switch s {
	case models.GoalActive, models.GoalCompleted, models.GoalAbandoned:
		return true
	}
	return false
}

func (h *GoalHandler) parseReq(c *gin.Context) (name string, targetCent, currentCent int64, targetDate *time.Time, status string, ok bool) {
	var req goalReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "goal name and target amount are required")
		return "", 0, 0, nil, "", false
	}

	name = strings.TrimSpace(req.Name)
	if name == "" {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "goal name and target amount are required")
		return "", 0, 0, nil, "", false
	}

	targetCent, err := util.ParseAmountCent(req.TargetAmount)
	if err != nil || targetCent <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid target amount")
		return "", 0, 0, nil, "", false
	}

	if req.CurrentAmount != "" {
		currentCent, err = util.ParseAmountCent(req.CurrentAmount)
		if err != nil || currentCent < 0 {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid current amount")
			return "", 0, 0, nil, "", false
		}
	}

	if req.TargetDate != "" {
		d, err := util.ValidateDate(req.TargetDate)
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "target date must be YYYY-MM-DD")
			return "", 0, 0, nil, "", false
		}
		targetDate = &d
	}

	status = req.Status
	if status == "" {
		status = models.GoalActive
	}
	if !validGoalStatus(status) {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid status")
		return "", 0, 0, nil, "", false
	}

	return name, targetCent, currentCent, targetDate, status, true
}

func (h *GoalHandler) List(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var goals []models.Goal
	if err := h.DB.Where("user_id = ?", user.ID).
		Order("created_at DESC").
		Find(&goals).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "server error")
		return
	}

	items := make([]goalResp, 0, len(goals))
	for i := range goals {
		g := &goals[i]
		resp := goalResp{
			ID:          g.ID,
			Name:        g.Name,
			TargetCent:  g.TargetCent,
			Target:      util.FormatCent(g.TargetCent),
			CurrentCent: g.CurrentCent,
			Current:     util.FormatCent(g.CurrentCent),
			Status:      g.Status,
		}
		if g.TargetDate != nil {
			resp.TargetDate = g.TargetDate.Format("2006-01-02")
		}
		items = append(items, resp)
	}

	util.Success(c, util.Response{"goals": items})
}

func (h *GoalHandler) Create(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	name, targetCent, currentCent, targetDate, status, ok := h.parseReq(c)
	if !ok {
		return
	}

	goal := models.Goal{
		UserID:      user.ID,
		Name:        name,
		TargetCent:  targetCent,
		CurrentCent: currentCent,
		TargetDate:  targetDate,
		Status:      status,
	}
	if err := h.DB.Create(&goal).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "server error")
		return
	}

	util.Created(c, util.Response{
		"message": "goal created",
		"goalId":  goal.ID,
	})
}

func (h *GoalHandler) Update(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}

	name, targetCent, currentCent, targetDate, status, ok := h.parseReq(c)
	if !ok {
		return
	}

	res := h.DB.Model(&models.Goal{}).
		Where("id = ? AND user_id = ?", id, user.ID).
		Updates(map[string]interface{}{
			"name":         name,
			"target_cent":  targetCent,
			"current_cent": currentCent,
			"target_date":  targetDate,
			"status":       status,
		})
	if res.Error != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "server error")
		return
	}
	if res.RowsAffected == 0 {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "goal not found")
		return
	}

	util.Success(c, util.Response{"message": "goal updated"})
}

func (h *GoalHandler) Delete(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}

	res := h.DB.Where("id = ? AND user_id = ?", id, user.ID).Delete(&models.Goal{})
	if res.Error != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "server error")
		return
	}
	if res.RowsAffected == 0 {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "goal not found")
		return
	}

	util.Success(c, util.Response{"message": "goal deleted"})
}
