package returnbox

import (
	"errors"
	"testing"
	"time"

	"bookdrop/core/database"
	"bookdrop/feature/library"
	"bookdrop/feature/library/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

var testPolicy = library.Config{
	DailyFineRate:  0.50,
	MaxFineAmount:  10.00,
	LoanPeriodDays: 14,
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.All()...))
	return db
}

func seedBox(t *testing.T, db *gorm.DB, boxID int) {
	t.Helper()
	require.NoError(t, db.Create(&models.ReturnBox{
		ID:       boxID,
		Name:     "Lobby Box",
		Location: "Main Library Lobby",
		Status:   "active",
	}).Error)
}

func seedCopy(t *testing.T, db *gorm.DB, copyID int, epc string) {
	t.Helper()
	require.NoError(t, db.Create(&models.Book{
		ID:     copyID,
		Title:  "Test Title",
		Author: "Test Author",
	}).Error)
	require.NoError(t, db.Create(&models.BookCopy{
		ID:         copyID,
		BookID:     copyID,
		CopyNumber: 1,
		EPC:        epc,
		Status:     models.CopyCheckedOut,
		Condition:  "good",
	}).Error)
}

func TestFinalizeClosesLoanWithFine(t *testing.T) {
	db := newTestDB(t)
	seedBox(t, db, 1)
	seedCopy(t, db, 10, "TAG-A")

	// Three full days overdue at the time of return.
	dueDate := time.Now().Add(-73 * time.Hour)
	require.NoError(t, db.Create(&models.Loan{
		ID:           100,
		UserID:       7,
		CopyID:       10,
		CheckoutDate: dueDate.AddDate(0, 0, -14),
		DueDate:      dueDate,
		Status:       models.LoanOverdue,
	}).Error)

	w := NewWorker(db, testPolicy, zap.NewNop())
	require.NoError(t, w.Finalize(1, []string{"TAG-A"}))

	var loan models.Loan
	require.NoError(t, db.First(&loan, "loan_id = ?", 100).Error)
	assert.Equal(t, models.LoanReturned, loan.Status)
	assert.NotNil(t, loan.ReturnDate)
	assert.InDelta(t, 1.50, loan.FineAmount, 0.001)

	var c models.BookCopy
	require.NoError(t, db.First(&c, "copy_id = ?", 10).Error)
	assert.Equal(t, models.CopyReturned, c.Status)

	var txn models.ReturnTransaction
	require.NoError(t, db.Preload("Items").First(&txn).Error)
	assert.Equal(t, models.ReturnPending, txn.Status)
	assert.InDelta(t, 1.50, txn.TotalFines, 0.001)
	require.Len(t, txn.Items, 1)
	assert.Equal(t, 10, txn.Items[0].CopyID)
	require.NotNil(t, txn.Items[0].LoanID)
	assert.Equal(t, 100, *txn.Items[0].LoanID)
}

func TestFinalizeFineIsCapped(t *testing.T) {
	db := newTestDB(t)
	seedBox(t, db, 1)
	seedCopy(t, db, 10, "TAG-A")

	require.NoError(t, db.Create(&models.Loan{
		ID:           100,
		UserID:       7,
		CopyID:       10,
		CheckoutDate: time.Now().AddDate(0, 0, -114),
		DueDate:      time.Now().AddDate(0, 0, -100),
		Status:       models.LoanActive,
	}).Error)

	w := NewWorker(db, testPolicy, zap.NewNop())
	require.NoError(t, w.Finalize(1, []string{"TAG-A"}))

	var loan models.Loan
	require.NoError(t, db.First(&loan, "loan_id = ?", 100).Error)
	assert.InDelta(t, 10.00, loan.FineAmount, 0.001)
}

func TestFinalizeWalkInWithoutLoan(t *testing.T) {
	db := newTestDB(t)
	seedBox(t, db, 1)
	seedCopy(t, db, 10, "TAG-A")

	w := NewWorker(db, testPolicy, zap.NewNop())
	require.NoError(t, w.Finalize(1, []string{"TAG-A"}))

	var txn models.ReturnTransaction
	require.NoError(t, db.Preload("Items").First(&txn).Error)
	require.Len(t, txn.Items, 1)
	assert.Nil(t, txn.Items[0].LoanID)
	assert.Zero(t, txn.Items[0].FineAmount)
	assert.Zero(t, txn.TotalFines)
}

func TestFinalizeSkipsUnmatchedTags(t *testing.T) {
	db := newTestDB(t)
	seedBox(t, db, 1)
	seedCopy(t, db, 10, "TAG-A")

	w := NewWorker(db, testPolicy, zap.NewNop())
	require.NoError(t, w.Finalize(1, []string{"TAG-A", "TAG-UNKNOWN"}))

	var items []models.ReturnItem
	require.NoError(t, db.Find(&items).Error)
	assert.Len(t, items, 1)
	assert.Equal(t, 10, items[0].CopyID)
}

func TestFinalizeEmptyTagSetRecordsTransaction(t *testing.T) {
	db := newTestDB(t)
	seedBox(t, db, 1)

	w := NewWorker(db, testPolicy, zap.NewNop())
	require.NoError(t, w.Finalize(1, nil))

	var txns []models.ReturnTransaction
	require.NoError(t, db.Find(&txns).Error)
	require.Len(t, txns, 1)
	assert.Equal(t, models.ReturnPending, txns[0].Status)

	var items []models.ReturnItem
	require.NoError(t, db.Find(&items).Error)
	assert.Empty(t, items)
}

func TestFinalizeUnregisteredBox(t *testing.T) {
	db := newTestDB(t)

	w := NewWorker(db, testPolicy, zap.NewNop())
	err := w.Finalize(99, []string{"TAG-A"})
	assert.ErrorContains(t, err, "return box 99 is not registered")

	var txns []models.ReturnTransaction
	require.NoError(t, db.Find(&txns).Error)
	assert.Empty(t, txns)
}

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	})
	db, err := gorm.Open(dialector, &gorm.Config{})
	require.NoError(t, err)
	return db, mock
}

func TestFinalizeRollsBackOnQueryFailure(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .* FROM `return_box`").
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	w := NewWorker(db, testPolicy, zap.NewNop())
	err := w.Finalize(1, []string{"TAG-A"})
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
