package ledger

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Zenthoriax/personal-finance-app/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	// a fresh in-memory database per connection; keep a single connection so
	// every caller (including concurrent ones) sees the same database
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Account{},
		&models.Category{},
		&models.Transaction{},
	); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string) uint {
	t.Helper()
	u := models.User{Username: username, Email: username + "@example.com", PasswordHash: "x"}
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u.ID
}

func seedAccount(t *testing.T, db *gorm.DB, userID uint, name string, balanceCent int64) uint {
	t.Helper()
	a := models.Account{UserID: userID, Name: name, Type: "Checking", BalanceCent: balanceCent}
	if err := db.Create(&a).Error; err != nil {
		t.Fatalf("seed account: %v", err)
	}
	return a.ID
}

func seedCategory(t *testing.T, db *gorm.DB, userID uint, name, catType string) uint {
	t.Helper()
	c := models.Category{UserID: userID, Name: name, Type: catType}
	if err := db.Create(&c).Error; err != nil {
		t.Fatalf("seed category: %v", err)
	}
	return c.ID
}

func accountBalance(t *testing.T, db *gorm.DB, accountID uint) int64 {
	t.Helper()
	var a models.Account
	if err := db.First(&a, accountID).Error; err != nil {
		t.Fatalf("load account %d: %v", accountID, err)
	}
	return a.BalanceCent
}

func transactionCount(t *testing.T, db *gorm.DB, userID uint) int64 {
	t.Helper()
	var n int64
	if err := db.Model(&models.Transaction{}).Where("user_id = ?", userID).Count(&n).Error; err != nil {
		t.Fatalf("count transactions: %v", err)
	}
	return n
}

// checkInvariant verifies balance == initial + signed sum of live transactions.
func checkInvariant(t *testing.T, db *gorm.DB, accountID uint, initialCent int64) {
	t.Helper()
	var txns []models.Transaction
	if err := db.Where("account_id = ?", accountID).Find(&txns).Error; err != nil {
		t.Fatalf("load transactions: %v", err)
	}
	want := initialCent
	for _, txn := range txns {
		want += signedCent(txn.AmountCent, txn.Type)
	}
	if got := accountBalance(t, db, accountID); got != want {
		t.Errorf("invariant broken for account %d: balance = %d, want %d", accountID, got, want)
	}
}

func testInput(accountID, categoryID uint, txType string, amountCent int64) Input {
	return Input{
		AccountID:  accountID,
		CategoryID: categoryID,
		Type:       txType,
		AmountCent: amountCent,
		Date:       time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
	}
}

func TestCreateAppliesSignedDelta(t *testing.T) {
	db := newTestDB(t)
	l := New(db)
	user := seedUser(t, db, "alice")
	account := seedAccount(t, db, user, "Checking", 5000)
	income := seedCategory(t, db, user, "Salary", models.TypeIncome)
	expense := seedCategory(t, db, user, "Food", models.TypeExpense)

	id, err := l.Create(user, testInput(account, income, models.TypeIncome, 10000))
	if err != nil {
		t.Fatalf("create income: %v", err)
	}
	if id == 0 {
		t.Error("create returned zero transaction id")
	}
	if got := accountBalance(t, db, account); got != 15000 {
		t.Errorf("balance after income = %d, want 15000", got)
	}

	if _, err := l.Create(user, testInput(account, expense, models.TypeExpense, 4000)); err != nil {
		t.Fatalf("create expense: %v", err)
	}
	if got := accountBalance(t, db, account); got != 11000 {
		t.Errorf("balance after expense = %d, want 11000", got)
	}

	checkInvariant(t, db, account, 5000)
}

func TestCreateValidation(t *testing.T) {
	db := newTestDB(t)
	l := New(db)
	user := seedUser(t, db, "alice")
	account := seedAccount(t, db, user, "Checking", 5000)
	category := seedCategory(t, db, user, "Salary", models.TypeIncome)

	cases := []struct {
		name string
		in   Input
	}{
		{"missing account", testInput(0, category, models.TypeIncome, 100)},
		{"missing category", testInput(account, 0, models.TypeIncome, 100)},
		{"bad type", testInput(account, category, "transfer", 100)},
		{"zero amount", testInput(account, category, models.TypeIncome, 0)},
		{"negative amount", testInput(account, category, models.TypeExpense, -100)},
		{"missing date", Input{AccountID: account, CategoryID: category, Type: models.TypeIncome, AmountCent: 100}},
	}

	for _, tc := range cases {
		if _, err := l.Create(user, tc.in); !errors.Is(err, ErrValidation) {
			t.Errorf("%s: error = %v, want ErrValidation", tc.name, err)
		}
	}

	// failed validation must have zero effect
	if got := accountBalance(t, db, account); got != 5000 {
		t.Errorf("balance after rejected creates = %d, want 5000", got)
	}
	if n := transactionCount(t, db, user); n != 0 {
		t.Errorf("transaction count after rejected creates = %d, want 0", n)
	}
}

func TestCreateUnknownAccountRollsBack(t *testing.T) {
	db := newTestDB(t)
	l := New(db)
	user := seedUser(t, db, "alice")
	category := seedCategory(t, db, user, "Salary", models.TypeIncome)

	if _, err := l.Create(user, testInput(999, category, models.TypeIncome, 100)); !errors.Is(err, ErrNotFound) {
		t.Fatalf("create on unknown account: error = %v, want ErrNotFound", err)
	}
	if n := transactionCount(t, db, user); n != 0 {
		t.Errorf("orphan transaction rows after failed create: %d, want 0", n)
	}
}

func TestCreateForeignAccountRollsBack(t *testing.T) {
	db := newTestDB(t)
	l := New(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	bobAccount := seedAccount(t, db, bob, "Bob checking", 7000)
	category := seedCategory(t, db, alice, "Salary", models.TypeIncome)

	if _, err := l.Create(alice, testInput(bobAccount, category, models.TypeIncome, 100)); !errors.Is(err, ErrNotFound) {
		t.Fatalf("create on foreign account: error = %v, want ErrNotFound", err)
	}
	if n := transactionCount(t, db, alice); n != 0 {
		t.Errorf("orphan transaction rows after failed create: %d, want 0", n)
	}
	if got := accountBalance(t, db, bobAccount); got != 7000 {
		t.Errorf("foreign account balance = %d, want 7000", got)
	}
}

func TestUpdateReassignsAccount(t *testing.T) {
	db := newTestDB(t)
	l := New(db)
	user := seedUser(t, db, "alice")
	x := seedAccount(t, db, user, "X", 0)
	y := seedAccount(t, db, user, "Y", 0)
	category := seedCategory(t, db, user, "Salary", models.TypeIncome)

	id, err := l.Create(user, testInput(x, category, models.TypeIncome, 10000))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if got := accountBalance(t, db, x); got != 10000 {
		t.Fatalf("X balance = %d, want 10000", got)
	}

	if err := l.Update(user, id, testInput(y, category, models.TypeIncome, 10000)); err != nil {
		t.Fatalf("update: %v", err)
	}
	if got := accountBalance(t, db, x); got != 0 {
		t.Errorf("X balance after reassignment = %d, want 0", got)
	}
	if got := accountBalance(t, db, y); got != 10000 {
		t.Errorf("Y balance after reassignment = %d, want 10000", got)
	}

	checkInvariant(t, db, x, 0)
	checkInvariant(t, db, y, 0)
}

func TestUpdateNoChangeIsBalanceNoOp(t *testing.T) {
	db := newTestDB(t)
	l := New(db)
	user := seedUser(t, db, "alice")
	account := seedAccount(t, db, user, "Checking", 2500)
	category := seedCategory(t, db, user, "Food", models.TypeExpense)

	in := testInput(account, category, models.TypeExpense, 1200)
	id, err := l.Create(user, in)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	before := accountBalance(t, db, account)

	if err := l.Update(user, id, in); err != nil {
		t.Fatalf("no-op update: %v", err)
	}
	if got := accountBalance(t, db, account); got != before {
		t.Errorf("balance changed by no-op update: %d -> %d", before, got)
	}
}

func TestUpdateToUnknownAccountRollsBack(t *testing.T) {
	db := newTestDB(t)
	l := New(db)
	user := seedUser(t, db, "alice")
	account := seedAccount(t, db, user, "Checking", 0)
	category := seedCategory(t, db, user, "Salary", models.TypeIncome)

	id, err := l.Create(user, testInput(account, category, models.TypeIncome, 10000))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// the reversal and row overwrite succeed inside the block, then the
	// final delta hits zero rows; everything must be undone
	if err := l.Update(user, id, testInput(999, category, models.TypeIncome, 500)); !errors.Is(err, ErrNotFound) {
		t.Fatalf("update to unknown account: error = %v, want ErrNotFound", err)
	}

	if got := accountBalance(t, db, account); got != 10000 {
		t.Errorf("balance after rolled-back update = %d, want 10000", got)
	}
	var txn models.Transaction
	if err := db.First(&txn, id).Error; err != nil {
		t.Fatalf("reload transaction: %v", err)
	}
	if txn.AccountID != account || txn.AmountCent != 10000 {
		t.Errorf("transaction row changed by rolled-back update: account %d amount %d", txn.AccountID, txn.AmountCent)
	}
	checkInvariant(t, db, account, 0)
}

func TestDeleteReversesBalance(t *testing.T) {
	db := newTestDB(t)
	l := New(db)
	user := seedUser(t, db, "alice")
	account := seedAccount(t, db, user, "Checking", 10000)
	category := seedCategory(t, db, user, "Food", models.TypeExpense)

	id, err := l.Create(user, testInput(account, category, models.TypeExpense, 4000))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if got := accountBalance(t, db, account); got != 6000 {
		t.Fatalf("balance after expense = %d, want 6000", got)
	}

	if err := l.Delete(user, id); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if got := accountBalance(t, db, account); got != 10000 {
		t.Errorf("balance after delete = %d, want 10000", got)
	}
	if n := transactionCount(t, db, user); n != 0 {
		t.Errorf("transaction count after delete = %d, want 0", n)
	}
}

func TestCrossUserIsolation(t *testing.T) {
	db := newTestDB(t)
	l := New(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	aliceAccount := seedAccount(t, db, alice, "Checking", 0)
	aliceCategory := seedCategory(t, db, alice, "Salary", models.TypeIncome)
	bobAccount := seedAccount(t, db, bob, "Checking", 0)
	bobCategory := seedCategory(t, db, bob, "Salary", models.TypeIncome)

	id, err := l.Create(alice, testInput(aliceAccount, aliceCategory, models.TypeIncome, 10000))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := l.Update(bob, id, testInput(bobAccount, bobCategory, models.TypeIncome, 1)); !errors.Is(err, ErrNotFound) {
		t.Errorf("foreign update: error = %v, want ErrNotFound", err)
	}
	if err := l.Delete(bob, id); !errors.Is(err, ErrNotFound) {
		t.Errorf("foreign delete: error = %v, want ErrNotFound", err)
	}

	// deleting a transaction that never existed looks the same
	if err := l.Delete(bob, 424242); !errors.Is(err, ErrNotFound) {
		t.Errorf("delete of unknown id: error = %v, want ErrNotFound", err)
	}

	if got := accountBalance(t, db, aliceAccount); got != 10000 {
		t.Errorf("alice balance after foreign calls = %d, want 10000", got)
	}
	var txn models.Transaction
	if err := db.First(&txn, id).Error; err != nil {
		t.Errorf("alice transaction missing after foreign calls: %v", err)
	}
}

func TestConcurrentCreatesConverge(t *testing.T) {
	db := newTestDB(t)
	l := New(db)
	user := seedUser(t, db, "alice")
	account := seedAccount(t, db, user, "Checking", 5000)
	category := seedCategory(t, db, user, "Salary", models.TypeIncome)

	const n = 20
	const amount = 100

	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := l.Create(user, testInput(account, category, models.TypeIncome, amount))
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Fatalf("concurrent create: %v", err)
		}
	}

	if got := accountBalance(t, db, account); got != 5000+n*amount {
		t.Errorf("balance after %d concurrent creates = %d, want %d", n, got, 5000+n*amount)
	}
	checkInvariant(t, db, account, 5000)
}
