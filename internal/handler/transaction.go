package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/Zenthoriax/personal-finance-app/internal/ledger"
	"github.com/Zenthoriax/personal-finance-app/internal/models"
	"github.com/Zenthoriax/personal-finance-app/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// TransactionHandler serves transaction list/create/update/delete. All
// mutations go through the ledger so account balances stay consistent.
type TransactionHandler struct {
	DB       *gorm.DB
	Ledger   *ledger.Ledger
	PageSize int
}

func NewTransactionHandler(db *gorm.DB, l *ledger.Ledger, pageSize int) *TransactionHandler {
	if pageSize <= 0 {
		pageSize = 20
	}
	return &TransactionHandler{DB: db, Ledger: l, PageSize: pageSize}
}

type transactionReq struct {
	AccountID   uint   `json:"account_id" binding:"required"`
	CategoryID  uint   `json:"category_id" binding:"required"`
	Type        string `json:"transaction_type" binding:"required,oneof=income expense"`
	Amount      string `json:"amount" binding:"required"`
	Description string `json:"description" binding:"max=255"`
	Date        string `json:"transaction_date" binding:"required"`
}

type transactionResp struct {
	ID           uint      `json:"transaction_id"`
	AccountID    uint      `json:"account_id"`
	AccountName  string    `json:"account_name"`
	CategoryID   uint      `json:"category_id"`
	CategoryName string    `json:"category_name"`
	Type         string    `json:"transaction_type"`
	AmountCent   int64     `json:"amount_cent"`
	Amount       string    `json:"amount"`
	Description  string    `json:"description"`
	Date         string    `json:"transaction_date"`
	CreatedAt    time.Time `json:"created_at"`
}

func toTransactionResp(t *models.Transaction) transactionResp {
	return transactionResp{
		ID:           t.ID,
		AccountID:    t.AccountID,
		AccountName:  t.Account.Name,
		CategoryID:   t.CategoryID,
		CategoryName: t.Category.Name,
		Type:         t.Type,
		AmountCent:   t.AmountCent,
		Amount:       util.FormatCent(t.AmountCent),
		Description:  t.Description,
		Date:         t.Date.Format("2006-01-02"),
		CreatedAt:    t.CreatedAt,
	}
}

// parseInput turns the request body into a ledger input. Field presence is
// checked by binding; value checks live here.
func (h *TransactionHandler) parseInput(c *gin.Context) (ledger.Input, bool) {
	var req transactionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "required fields are missing")
		return ledger.Input{}, false
	}

	amountCent, err := util.ParseAmountCent(req.Amount)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid amount")
		return ledger.Input{}, false
	}
	if err := util.ValidateAmountCent(amountCent); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid amount")
		return ledger.Input{}, false
	}

	date, err := util.ValidateDate(req.Date)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "transaction date must be YYYY-MM-DD")
		return ledger.Input{}, false
	}

	return ledger.Input{
		AccountID:   req.AccountID,
		CategoryID:  req.CategoryID,
		Type:        req.Type,
		AmountCent:  amountCent,
		Description: req.Description,
		Date:        date,
	}, true
}

// writeLedgerError maps ledger errors to HTTP. Store errors are logged and
// surfaced as an opaque 500.
func writeLedgerError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ledger.ErrValidation):
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "required fields are missing")
	case errors.Is(err, ledger.ErrNotFound):
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "transaction or account not found")
	default:
		log.Printf("ledger error: %v", err)
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "server error")
	}
}

func (h *TransactionHandler) Create(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	in, ok := h.parseInput(c)
	if !ok {
		return
	}

	id, err := h.Ledger.Create(user.ID, in)
	if err != nil {
		writeLedgerError(c, err)
		return
	}

	util.Created(c, util.Response{
		"message":       "transaction created",
		"transactionId": id,
	})
}

func (h *TransactionHandler) Update(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}
	in, ok := h.parseInput(c)
	if !ok {
		return
	}

	if err := h.Ledger.Update(user.ID, id, in); err != nil {
		writeLedgerError(c, err)
		return
	}

	util.Success(c, util.Response{"message": "transaction updated"})
}

func (h *TransactionHandler) Delete(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.Ledger.Delete(user.ID, id); err != nil {
		writeLedgerError(c, err)
		return
	}

	util.Success(c, util.Response{"message": "transaction deleted"})
}

// List returns transactions newest first, with paging and optional date
// range, type and account filters.
func (h *TransactionHandler) List(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}
	size, _ := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(h.PageSize)))
	if size <= 0 || size > 100 {
		size = h.PageSize
	}
	offset := (page - 1) * size

	base := h.DB.Model(&models.Transaction{}).Where("user_id = ?", user.ID)

	if startStr := c.Query("start"); startStr != "" {
		start, err := util.ValidateDate(startStr)
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "start date must be YYYY-MM-DD")
			return
		}
		base = base.Where("date >= ?", start)
	}
	if endStr := c.Query("end"); endStr != "" {
		end, err := util.ValidateDate(endStr)
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "end date must be YYYY-MM-DD")
			return
		}
		// end date is inclusive: strictly before the next day
		base = base.Where("date < ?", end.Add(24*time.Hour))
	}
	if txType := c.Query("type"); txType == models.TypeIncome || txType == models.TypeExpense {
		base = base.Where("type = ?", txType)
	}
	if accountStr := c.Query("account_id"); accountStr != "" {
		if accountID, err := strconv.Atoi(accountStr); err == nil && accountID > 0 {
			base = base.Where("account_id = ?", accountID)
		}
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "server error")
		return
	}

	var txns []models.Transaction
	if err := base.Session(&gorm.Session{}).
		Preload("Account").
		Preload("Category").
		Order("date DESC, created_at DESC").
		Limit(size).
		Offset(offset).
		Find(&txns).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "server error")
		return
	}

	items := make([]transactionResp, 0, len(txns))
	for i := range txns {
		items = append(items, toTransactionResp(&txns[i]))
	}

	util.Success(c, util.Response{
		"items": items,
		"total": total,
		"page":  page,
		"size":  size,
	})
}
