package returnbox

import (
	"context"
	"testing"
	"time"

	"bookdrop/core/mqtt"
	"bookdrop/feature/library/models"
	"bookdrop/feature/returnbox/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newServiceWithDB(db *gorm.DB, pub *fakePublisher) *Service {
	return NewService(db, pub, mqtt.Config{
		CommandTopicFormat:    "ReturnBox%02d/Command",
		UnlockCooldownSeconds: 5,
	}, testPolicy, zap.NewNop())
}

func TestGetStatusIdleWithoutSession(t *testing.T) {
	svc := newServiceWithDB(newTestDB(t), &fakePublisher{connected: true})

	status, err := svc.GetStatus(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, StatusIdle, status.Status)
	assert.Empty(t, status.Tags)
	assert.Empty(t, status.Items)
}

func TestGetStatusEnrichesScannedTags(t *testing.T) {
	db := newTestDB(t)
	isbn := "978-0-1234-5678-9"
	require.NoError(t, db.Create(&models.Book{
		ID:     1,
		ISBN:   &isbn,
		Title:  "The Go Programming Language",
		Author: "Donovan & Kernighan",
	}).Error)
	require.NoError(t, db.Create(&models.BookCopy{
		ID:         10,
		BookID:     1,
		CopyNumber: 1,
		EPC:        "TAG-A",
		Status:     models.CopyCheckedOut,
		Condition:  "good",
	}).Error)

	svc := newServiceWithDB(db, &fakePublisher{connected: true})
	svc.HandleMessage("ReturnBox01/Return", []byte(`["TAG-A","TAG-UNKNOWN"]`))

	status, err := svc.GetStatus(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, StatusScanning, status.Status)
	assert.Equal(t, []string{"TAG-A", "TAG-UNKNOWN"}, status.Tags)

	// Unmatched tags stay in Tags but produce no item.
	require.Len(t, status.Items, 1)
	assert.Equal(t, "TAG-A", status.Items[0].Tag)
	assert.Equal(t, 10, status.Items[0].ItemID)
	assert.Equal(t, "The Go Programming Language", status.Items[0].Title)
	assert.Equal(t, "Donovan & Kernighan", status.Items[0].Author)
	assert.Equal(t, isbn, status.Items[0].ISBN)
	assert.Equal(t, models.CopyCheckedOut, status.Items[0].Status)
}

func TestWireStatus(t *testing.T) {
	tests := []struct {
		state session.State
		want  string
	}{
		{session.StateScanning, StatusScanning},
		{session.StateFinalizePending, StatusFinalized},
		{session.StateCompleted, StatusCompleted},
	}

	for _, tt := range tests {
		t.Run(string(tt.state), func(t *testing.T) {
			assert.Equal(t, tt.want, wireStatus(tt.state))
		})
	}
}

func TestClearSessionResetsToIdle(t *testing.T) {
	svc := newServiceWithDB(newTestDB(t), &fakePublisher{connected: true})
	svc.finalize = func(int, []string) {}

	svc.HandleMessage("ReturnBox01/Return", []byte(`["TAG-A"]`))
	svc.HandleMessage("ReturnBox01/Command", []byte(ConfirmPayload))
	svc.ClearSession(1)

	status, err := svc.GetStatus(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, StatusIdle, status.Status)
}

func TestListReturnsFiltersByStatus(t *testing.T) {
	db := newTestDB(t)
	boxID := 1
	seedBox(t, db, boxID)
	require.NoError(t, db.Create(&models.ReturnTransaction{
		ID:          1,
		ReturnBoxID: &boxID,
		ReturnDate:  time.Now().Add(-time.Hour),
		Status:      models.ReturnPending,
	}).Error)
	require.NoError(t, db.Create(&models.ReturnTransaction{
		ID:          2,
		ReturnBoxID: &boxID,
		ReturnDate:  time.Now(),
		Status:      models.ReturnCompleted,
	}).Error)

	svc := newServiceWithDB(db, &fakePublisher{connected: true})

	all, err := svc.ListReturns(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	// Newest first.
	assert.Equal(t, 2, all[0].ID)

	pending, err := svc.ListReturns(context.Background(), models.ReturnPending)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, 1, pending[0].ID)
}

func TestGetReturnNotFound(t *testing.T) {
	svc := newServiceWithDB(newTestDB(t), &fakePublisher{connected: true})

	_, err := svc.GetReturn(context.Background(), 999)
	assert.ErrorIs(t, err, ErrReturnNotFound)
}

func TestProcessReturnReshelvesCopies(t *testing.T) {
	db := newTestDB(t)
	boxID := 1
	seedBox(t, db, boxID)
	seedCopy(t, db, 10, "TAG-A")
	require.NoError(t, db.Model(&models.BookCopy{}).Where("copy_id = ?", 10).
		Update("status", models.CopyReturned).Error)
	require.NoError(t, db.Create(&models.ReturnTransaction{
		ID:          1,
		ReturnBoxID: &boxID,
		ReturnDate:  time.Now(),
		Status:      models.ReturnPending,
	}).Error)
	require.NoError(t, db.Create(&models.ReturnItem{
		ID:                1,
		ReturnID:          1,
		CopyID:            10,
		ConditionOnReturn: "good",
	}).Error)

	svc := newServiceWithDB(db, &fakePublisher{connected: true})

	txn, err := svc.ProcessReturn(context.Background(), 1, 42, "shelved on cart 3")
	require.NoError(t, err)
	assert.Equal(t, models.ReturnCompleted, txn.Status)
	require.NotNil(t, txn.ProcessedBy)
	assert.Equal(t, 42, *txn.ProcessedBy)
	assert.NotNil(t, txn.ProcessedAt)
	require.NotNil(t, txn.Notes)
	assert.Equal(t, "shelved on cart 3", *txn.Notes)

	var c models.BookCopy
	require.NoError(t, db.First(&c, "copy_id = ?", 10).Error)
	assert.Equal(t, models.CopyAvailable, c.Status)
}

func TestProcessReturnNotFound(t *testing.T) {
	svc := newServiceWithDB(newTestDB(t), &fakePublisher{connected: true})

	_, err := svc.ProcessReturn(context.Background(), 999, 42, "")
	assert.ErrorIs(t, err, ErrReturnNotFound)
}
