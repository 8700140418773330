package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"github.com/Zenthoriax/personal-finance-app/internal/models"
	"github.com/Zenthoriax/personal-finance-app/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// ExportHandler streams the user's transactions as CSV or XLSX.
type ExportHandler struct {
	DB *gorm.DB
}

func NewExportHandler(db *gorm.DB) *ExportHandler {
	return &ExportHandler{DB: db}
}

var exportHeaders = []string{"Date", "Type", "Account", "Category", "Amount", "Description"}

func (h *ExportHandler) loadTransactions(c *gin.Context, userID uint) ([]models.Transaction, bool) {
	var txns []models.Transaction
	if err := h.DB.Preload("Account").
		Preload("Category").
		Where("user_id = ?", userID).
		Order("date DESC, created_at DESC").
		Find(&txns).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "server error")
		return nil, false
	}
	return txns, true
}

func exportRow(t *models.Transaction) []string {
	return []string{
		t.Date.Format("2006-01-02"),
		t.Type,
		t.Account.Name,
		t.Category.Name,
		util.FormatCent(t.AmountCent),
		t.Description,
	}
}

// ExportCSV exports all transactions as CSV.
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	txns, ok := h.loadTransactions(c, user.ID)
	if !ok {
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"transactions_%s.csv\"",
		time.Now().Format("20060102")))

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	// UTF-8 BOM so Excel detects the encoding
	c.Writer.Write([]byte{0xEF, 0xBB, 0xBF})

	writer.Write(exportHeaders)
	for i := range txns {
		writer.Write(exportRow(&txns[i]))
	}
}

// ExportXLSX exports all transactions as an Excel workbook.
func (h *ExportHandler) ExportXLSX(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	txns, ok := h.loadTransactions(c, user.ID)
	if !ok {
		return
	}

	f := excelize.NewFile()
	sheetName := "Transactions"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "server error")
		return
	}
	f.SetActiveSheet(index)

	for i, header := range exportHeaders {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
	}

	for idx := range txns {
		row := idx + 2
		for col, value := range exportRow(&txns[idx]) {
			cell := fmt.Sprintf("%c%d", 'A'+col, row)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	f.SetColWidth(sheetName, "A", "A", 12)
	f.SetColWidth(sheetName, "B", "B", 10)
	f.SetColWidth(sheetName, "C", "D", 16)
	f.SetColWidth(sheetName, "E", "E", 12)
	f.SetColWidth(sheetName, "F", "F", 30)

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"transactions_%s.xlsx\"",
		time.Now().Format("20060102")))

	if err := f.Write(c.Writer); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "export failed")
	}
}
