package handler

import (
	"net/http"
	"strings"

	"github.com/Zenthoriax/personal-finance-app/internal/models"
	"github.com/Zenthoriax/personal-finance-app/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AccountHandler serves account CRUD. Account edits overwrite the balance
// directly; only the ledger keeps balance and transactions consistent.
type AccountHandler struct {
	DB *gorm.DB
}

func NewAccountHandler(db *gorm.DB) *AccountHandler {
	return &AccountHandler{DB: db}
}

type accountReq struct {
	Name    string `json:"account_name" binding:"required,max=64"`
	Type    string `json:"account_type" binding:"required,max=32"`
	Balance string `json:"balance"`
}

type accountResp struct {
	ID          uint   `json:"account_id"`
	Name        string `json:"account_name"`
	Type        string `json:"account_type"`
	BalanceCent int64  `json:"balance_cent"`
	Balance     string `json:"balance"`
}

func toAccountResp(a *models.Account) accountResp {
	return accountResp{
		ID:          a.ID,
		Name:        a.Name,
		Type:        a.Type,
		BalanceCent: a.BalanceCent,
		Balance:     util.FormatCent(a.BalanceCent),
	}
}

func (h *AccountHandler) parseReq(c *gin.Context) (accountReq, int64, bool) {
	var req accountReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "account name and type are required")
		return req, 0, false
	}
	req.Name = strings.TrimSpace(req.Name)
	if err := util.ValidateName(req.Name, 64); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "account name and type are required")
		return req, 0, false
	}

	var balanceCent int64
	if req.Balance != "" {
		var err error
		balanceCent, err = util.ParseAmountCent(req.Balance)
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid balance")
			return req, 0, false
		}
	}
	return req, balanceCent, true
}

func (h *AccountHandler) List(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var accounts []models.Account
	if err := h.DB.Where("user_id = ?", user.ID).
		Order("name").
		Find(&accounts).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "server error")
		return
	}

	items := make([]accountResp, 0, len(accounts))
	for i := range accounts {
		items = append(items, toAccountResp(&accounts[i]))
	}

	util.Success(c, util.Response{"accounts": items})
}

func (h *AccountHandler) Create(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	req, balanceCent, ok := h.parseReq(c)
	if !ok {
		return
	}

	account := models.Account{
		UserID:      user.ID,
		Name:        req.Name,
		Type:        req.Type,
		BalanceCent: balanceCent,
	}
	if err := h.DB.Create(&account).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "server error")
		return
	}

	util.Created(c, util.Response{
		"message":   "account created",
		"accountId": account.ID,
	})
}

func (h *AccountHandler) Update(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}

	req, balanceCent, ok := h.parseReq(c)
	if !ok {
		return
	}

	res := h.DB.Model(&models.Account{}).
		Where("id = ? AND user_id = ?", id, user.ID).
		Updates(map[string]interface{}{
			"name":         req.Name,
			"type":         req.Type,
			"balance_cent": balanceCent,
		})
	if res.Error != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "server error")
		return
	}
	if res.RowsAffected == 0 {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "account not found")
		return
	}

	util.Success(c, util.Response{"message": "account updated"})
}

func (h *AccountHandler) Delete(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}

	res := h.DB.Where("id = ? AND user_id = ?", id, user.ID).Delete(&models.Account{})
	if res.Error != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "server error")
		return
	}
	if res.RowsAffected == 0 {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "account not found")
		return
	}

	util.Success(c, util.Response{"message": "account deleted"})
}
