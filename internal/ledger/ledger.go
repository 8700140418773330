// Package ledger applies transaction mutations together with the
// compensating adjustment to the owning account's balance, as one atomic
// unit. It is the only code allowed to change accounts.balance_cent
// relative to transactions; account CRUD overwrites the balance directly
// and enforces nothing.
package ledger

import (
	"errors"
	"fmt"
	"time"

	"github.com/Zenthoriax/personal-finance-app/internal/models"

	"gorm.io/gorm"
)

// Sentinel errors. Handlers map these to 400/404; anything else is a store
// failure surfaced as an opaque 500.
var (
	ErrValidation = errors.New("invalid transaction input")
	ErrNotFound   = errors.New("not found")
)

// Input carries the fields of a transaction create or full-overwrite update.
type Input struct {
	AccountID   uint
	CategoryID  uint
	Type        string // models.TypeIncome / models.TypeExpense
	AmountCent  int64  // unsigned; direction comes from Type
	Description string
	Date        time.Time
}

func (in *Input) validate() error {
	if in.AccountID == 0 {
		return fmt.Errorf("%w: account_id is required", ErrValidation)
	}
	if in.CategoryID == 0 {
		return fmt.Errorf("%w: category_id is required", ErrValidation)
	}
	if in.Type != models.TypeIncome && in.Type != models.TypeExpense {
		return fmt.Errorf("%w: transaction_type must be income or expense", ErrValidation)
	}
	if in.AmountCent <= 0 {
		return fmt.Errorf("%w: amount must be positive", ErrValidation)
	}
	if in.Date.IsZero() {
		return fmt.Errorf("%w: transaction_date is required", ErrValidation)
	}
	return nil
}

// signedCent turns a stored unsigned amount into the delta it applies to a
// balance: positive for income, negative for expense.
func signedCent(amountCent int64, txType string) int64 {
	if txType == models.TypeIncome {
		return amountCent
	}
	return -amountCent
}

// Ledger runs balance-consistent transaction mutations against an injected
// gorm handle. It holds no state of its own; concurrent calls are safe.
type Ledger struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *Ledger {
	return &Ledger{DB: db}
}

// adjustBalance pushes a relative delta to the account row scoped by user.
// The delta is evaluated inside the database, never read-modify-written in
// application code, so concurrent mutations on the same account serialize
// on the store's atomic increment. Zero rows affected means the account does
// not exist under this user; the caller must abort.
func adjustBalance(tx *gorm.DB, userID, accountID uint, deltaCent int64) error {
	res := tx.Model(&models.Account{}).
		Where("id = ? AND user_id = ?", accountID, userID).
		UpdateColumn("balance_cent", gorm.Expr("balance_cent + ?", deltaCent))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: account %d", ErrNotFound, accountID)
	}
	return nil
}

// Create inserts a transaction and credits/debits its account, atomically.
// Returns the new transaction id.
func (l *Ledger) Create(userID uint, in Input) (uint, error) {
	if err := in.validate(); err != nil {
		return 0, err
	}

	txn := models.Transaction{
		UserID:      userID,
		AccountID:   in.AccountID,
		CategoryID:  in.CategoryID,
		Type:        in.Type,
		AmountCent:  in.AmountCent,
		Description: in.Description,
		Date:        in.Date,
	}

	err := l.DB.Transaction(func(tx *gorm.DB) error {
		// delta first: a zero-rows result proves the account is missing or
		// foreign-owned before any row is inserted
		if err := adjustBalance(tx, userID, in.AccountID, signedCent(in.AmountCent, in.Type)); err != nil {
			return err
		}
		return tx.Create(&txn).Error
	})
	if err != nil {
		return 0, err
	}
	return txn.ID, nil
}

// Update overwrites a transaction and rebalances, atomically: the old signed
// amount is reversed against the old account before the new signed amount is
// applied against the new account. Reversing first is what keeps balances
// correct when the transaction moves to a different account.
func (l *Ledger) Update(userID, txnID uint, in Input) error {
	if err := in.validate(); err != nil {
		return err
	}

	return l.DB.Transaction(func(tx *gorm.DB) error {
		var old models.Transaction
		if err := tx.Where("id = ? AND user_id = ?", txnID, userID).First(&old).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: transaction %d", ErrNotFound, txnID)
			}
			return err
		}

		if err := adjustBalance(tx, userID, old.AccountID, -signedCent(old.AmountCent, old.Type)); err != nil {
			return err
		}

		res := tx.Model(&models.Transaction{}).
			Where("id = ? AND user_id = ?", txnID, userID).
			Updates(map[string]interface{}{
				"account_id":  in.AccountID,
				"category_id": in.CategoryID,
				"type":        in.Type,
				"amount_cent": in.AmountCent,
				"description": in.Description,
				"date":        in.Date,
			})
		if res.Error != nil {
			return res.Error
		}

		return adjustBalance(tx, userID, in.AccountID, signedCent(in.AmountCent, in.Type))
	})
}

// Delete removes a transaction and reverses its balance effect, atomically.
func (l *Ledger) Delete(userID, txnID uint) error {
	return l.DB.Transaction(func(tx *gorm.DB) error {
		var txn models.Transaction
		if err := tx.Where("id = ? AND user_id = ?", txnID, userID).First(&txn).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: transaction %d", ErrNotFound, txnID)
			}
			return err
		}

		if err := adjustBalance(tx, userID, txn.AccountID, -signedCent(txn.AmountCent, txn.Type)); err != nil {
			return err
		}

		return tx.Delete(&txn).Error
	})
}
