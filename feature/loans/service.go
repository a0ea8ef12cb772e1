package loans

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bookdrop/feature/library"
	"bookdrop/feature/library/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Loan operation errors.
var (
	ErrLoanNotFound    = errors.New("loan not found")
	ErrCopyNotFound    = errors.New("book copy not found")
	ErrCopyUnavailable = errors.New("book copy is not available for checkout")
	ErrDuplicateLoan   = errors.New("book copy already has an open loan")
)

// Service manages the loan lifecycle.
type Service struct {
	db     *gorm.DB
	policy library.Config
	logger *zap.Logger
}

// NewService creates the loans service.
func NewService(db *gorm.DB, policy library.Config, logger *zap.Logger) *Service {
	return &Service{db: db, policy: policy, logger: logger}
}

// ListActive returns open loans (active and overdue), optionally filtered by
// borrower.
func (s *Service) ListActive(ctx context.Context, userID *int) ([]models.Loan, error) {
	q := s.db.WithContext(ctx).Preload("Copy").Preload("Copy.Book").
		Where("status IN ?", []string{models.LoanActive, models.LoanOverdue}).
		Order("due_date ASC")
	if userID != nil {
		q = q.Where("user_id = ?", *userID)
	}

	var loans []models.Loan
	if err := q.Find(&loans).Error; err != nil {
		return nil, fmt.Errorf("failed to list active loans: %w", err)
	}
	return loans, nil
}

// ListHistory returns closed loans (returned and lost), newest first,
// optionally filtered by borrower.
func (s *Service) ListHistory(ctx context.Context, userID *int) ([]models.Loan, error) {
	q := s.db.WithContext(ctx).Preload("Copy").Preload("Copy.Book").
		Where("status IN ?", []string{models.LoanReturned, models.LoanLost}).
		Order("return_date DESC")
	if userID != nil {
		q = q.Where("user_id = ?", *userID)
	}

	var loans []models.Loan
	if err := q.Find(&loans).Error; err != nil {
		return nil, fmt.Errorf("failed to list loan history: %w", err)
	}
	return loans, nil
}

// ListOverdue flips lapsed active loans to overdue, then returns the overdue
// set, optionally filtered by borrower.
func (s *Service) ListOverdue(ctx context.Context, userID *int) ([]models.Loan, error) {
	now := library.Now()
	if err := s.db.WithContext(ctx).Model(&models.Loan{}).
		Where("status = ? AND due_date < ?", models.LoanActive, now).
		Update("status", models.LoanOverdue).Error; err != nil {
		return nil, fmt.Errorf("failed to mark lapsed loans overdue: %w", err)
	}

	q := s.db.WithContext(ctx).Preload("Copy").Preload("Copy.Book").
		Where("status = ?", models.LoanOverdue).Order("due_date ASC")
	if userID != nil {
		q = q.Where("user_id = ?", *userID)
	}

	var loans []models.Loan
	if err := q.Find(&loans).Error; err != nil {
		return nil, fmt.Errorf("failed to list overdue loans: %w", err)
	}
	return loans, nil
}

// GetLoan returns one loan with its copy and book.
func (s *Service) GetLoan(ctx context.Context, loanID int) (*models.Loan, error) {
	var loan models.Loan
	err := s.db.WithContext(ctx).Preload("Copy").Preload("Copy.Book").
		First(&loan, "loan_id = ?", loanID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrLoanNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load loan %d: %w", loanID, err)
	}
	return &loan, nil
}

// CreateLoan checks out a copy to a borrower. The copy must be available and
// carry no open loan; its status flips to checked_out. A nil due date
// defaults to the configured loan period.
func (s *Service) CreateLoan(ctx context.Context, userID, copyID int, dueDate *time.Time) (*models.Loan, error) {
	now := library.Now()
	due := now.AddDate(0, 0, s.policy.LoanPeriodDays)
	if dueDate != nil {
		due = *dueDate
	}

	var loan models.Loan
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cp models.BookCopy
		err := tx.First(&cp, "copy_id = ?", copyID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCopyNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to load copy %d: %w", copyID, err)
		}
		if cp.Status != models.CopyAvailable {
			return ErrCopyUnavailable
		}

		var open int64
		if err := tx.Model(&models.Loan{}).
			Where("copy_id = ? AND status IN ?", copyID,
				[]string{models.LoanActive, models.LoanOverdue}).
			Count(&open).Error; err != nil {
			return fmt.Errorf("failed to check open loans for copy %d: %w", copyID, err)
		}
		if open > 0 {
			return ErrDuplicateLoan
		}

		loan = models.Loan{
			UserID:       userID,
			CopyID:       copyID,
			CheckoutDate: now,
			DueDate:      due,
			Status:       models.LoanActive,
		}
		if err := tx.Create(&loan).Error; err != nil {
			return fmt.Errorf("failed to create loan: %w", err)
		}

		if err := tx.Model(&models.BookCopy{}).Where("copy_id = ?", copyID).
			Update("status", models.CopyCheckedOut).Error; err != nil {
			return fmt.Errorf("failed to mark copy %d checked out: %w", copyID, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Loan created",
		zap.Int("loan_id", loan.ID),
		zap.Int("user_id", userID),
		zap.Int("copy_id", copyID),
		zap.Time("due_date", due),
	)
	return s.GetLoan(ctx, loan.ID)
}
