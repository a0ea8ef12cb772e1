package returnbox

import (
	"errors"
	"fmt"

	"bookdrop/feature/library"
	"bookdrop/feature/library/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Worker applies a finalized session's tag set to the persistence layer. It
// always runs off the message-delivery path: finalization does blocking
// database I/O and must never stall broker callbacks behind it.
type Worker struct {
	db     *gorm.DB
	policy library.Config
	logger *zap.Logger
}

// NewWorker creates a finalization worker.
func NewWorker(db *gorm.DB, policy library.Config, logger *zap.Logger) *Worker {
	return &Worker{db: db, policy: policy, logger: logger}
}

// Finalize reconciles the tag set against the catalog in one transaction:
// matched copies are marked returned, their active loans closed with any
// accrued fine, and a return transaction recorded. Tags with no matching
// copy are logged and skipped. On any persistence failure the whole
// transaction rolls back; there is no automatic retry.
func (w *Worker) Finalize(boxID int, tags []string) error {
	now := library.Now()

	err := w.db.Transaction(func(tx *gorm.DB) error {
		var box models.ReturnBox
		if err := tx.First(&box, "return_box_id = ?", boxID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("return box %d is not registered", boxID)
			}
			return fmt.Errorf("failed to load return box %d: %w", boxID, err)
		}

		var copies []models.BookCopy
		if len(tags) > 0 {
			if err := tx.Where("book_epc IN ?", tags).Find(&copies).Error; err != nil {
				return fmt.Errorf("failed to look up copies by tag: %w", err)
			}
		}

		matched := make(map[string]bool, len(copies))
		for _, c := range copies {
			matched[c.EPC] = true
		}
		for _, tag := range tags {
			if !matched[tag] {
				w.logger.Warn("No copy matches scanned tag, skipping",
					zap.Int("box_id", boxID), zap.String("tag", tag))
			}
		}

		txn := models.ReturnTransaction{
			ReturnBoxID: &box.ID,
			ReturnDate:  now,
			Status:      models.ReturnPending,
		}
		if err := tx.Create(&txn).Error; err != nil {
			return fmt.Errorf("failed to create return transaction: %w", err)
		}

		totalFines := 0.0
		for i := range copies {
			c := &copies[i]

			item := models.ReturnItem{
				ReturnID:          txn.ID,
				CopyID:            c.ID,
				ConditionOnReturn: "good",
			}

			// Close the active loan if one exists. A copy dropped off with
			// no open loan is a valid walk-in return, not an error.
			var loan models.Loan
			err := tx.Where("copy_id = ? AND status IN ?", c.ID,
				[]string{models.LoanActive, models.LoanOverdue}).First(&loan).Error
			switch {
			case err == nil:
				fine := w.policy.CalculateFine(loan.DueDate, now)
				updates := map[string]any{
					"return_date": now,
					"status":      models.LoanReturned,
					"fine_amount": fine,
				}
				if err := tx.Model(&models.Loan{}).Where("loan_id = ?", loan.ID).Updates(updates).Error; err != nil {
					return fmt.Errorf("failed to close loan %d: %w", loan.ID, err)
				}
				item.LoanID = &loan.ID
				item.FineAmount = fine
				totalFines += fine
			case errors.Is(err, gorm.ErrRecordNotFound):
				w.logger.Info("Copy returned without an open loan",
					zap.Int("box_id", boxID), zap.Int("copy_id", c.ID))
			default:
				return fmt.Errorf("failed to look up loan for copy %d: %w", c.ID, err)
			}

			if err := tx.Model(&models.BookCopy{}).Where("copy_id = ?", c.ID).
				Update("status", models.CopyReturned).Error; err != nil {
				return fmt.Errorf("failed to mark copy %d returned: %w", c.ID, err)
			}

			if err := tx.Create(&item).Error; err != nil {
				return fmt.Errorf("failed to create return item for copy %d: %w", c.ID, err)
			}
		}

		if totalFines > 0 {
			if err := tx.Model(&models.ReturnTransaction{}).Where("return_id = ?", txn.ID).
				Update("total_fines", totalFines).Error; err != nil {
				return fmt.Errorf("failed to update transaction fines: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		w.logger.Error("Finalization rolled back",
			zap.Int("box_id", boxID),
			zap.Int("tag_count", len(tags)),
			zap.Error(err),
		)
		return err
	}

	w.logger.Info("Session finalized",
		zap.Int("box_id", boxID),
		zap.Int("tag_count", len(tags)),
	)
	return nil
}
