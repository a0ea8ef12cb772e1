package catalog

import (
	"context"
	"errors"
	"fmt"

	"bookdrop/feature/library/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Lookup errors for the catalog read surface.
var (
	ErrBookNotFound      = errors.New("book not found")
	ErrCopyNotFound      = errors.New("book copy not found")
	ErrLibraryNotFound   = errors.New("library not found")
	ErrReturnBoxNotFound = errors.New("return box not found")
)

// Service exposes read access to the catalog: books, physical copies,
// library branches and return box units.
type Service struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewService creates the catalog service.
func NewService(db *gorm.DB, logger *zap.Logger) *Service {
	return &Service{db: db, logger: logger}
}

// ListBooks returns books matching the optional search term (title, author or
// ISBN) and category filter.
func (s *Service) ListBooks(ctx context.Context, search, category string) ([]models.Book, error) {
	q := s.db.WithContext(ctx).Order("title ASC")
	if search != "" {
		like := "%" + search + "%"
		q = q.Where("title LIKE ? OR author LIKE ? OR isbn LIKE ?", like, like, like)
	}
	if category != "" {
		q = q.Where("category = ?", category)
	}

	var books []models.Book
	if err := q.Find(&books).Error; err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	return books, nil
}

// GetBook returns one book with its copies.
func (s *Service) GetBook(ctx context.Context, bookID int) (*models.Book, error) {
	var book models.Book
	err := s.db.WithContext(ctx).Preload("Copies").First(&book, "book_id = ?", bookID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrBookNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load book %d: %w", bookID, err)
	}
	return &book, nil
}

// ListBookCopies returns the physical copies of a book.
func (s *Service) ListBookCopies(ctx context.Context, bookID int) ([]models.BookCopy, error) {
	var book models.Book
	err := s.db.WithContext(ctx).Select("book_id").First(&book, "book_id = ?", bookID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrBookNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load book %d: %w", bookID, err)
	}

	var copies []models.BookCopy
	if err := s.db.WithContext(ctx).Where("book_id = ?", bookID).
		Order("copy_number ASC").Find(&copies).Error; err != nil {
		return nil, fmt.Errorf("failed to list copies of book %d: %w", bookID, err)
	}
	return copies, nil
}

// GetCopyByEPC resolves an RFID tag to its copy and book.
func (s *Service) GetCopyByEPC(ctx context.Context, epc string) (*models.BookCopy, error) {
	var c models.BookCopy
	err := s.db.WithContext(ctx).Preload("Book").First(&c, "book_epc = ?", epc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCopyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up copy by tag: %w", err)
	}
	return &c, nil
}

// ListLibraries returns all library branches.
func (s *Service) ListLibraries(ctx context.Context) ([]models.Library, error) {
	var libs []models.Library
	if err := s.db.WithContext(ctx).Order("library_name ASC").Find(&libs).Error; err != nil {
		return nil, fmt.Errorf("failed to list libraries: %w", err)
	}
	return libs, nil
}

// GetLibrary returns one library branch.
func (s *Service) GetLibrary(ctx context.Context, libraryID int) (*models.Library, error) {
	var lib models.Library
	err := s.db.WithContext(ctx).First(&lib, "library_id = ?", libraryID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrLibraryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load library %d: %w", libraryID, err)
	}
	return &lib, nil
}

// ListReturnBoxes returns return box units, optionally filtered by library.
func (s *Service) ListReturnBoxes(ctx context.Context, libraryID *int) ([]models.ReturnBox, error) {
	q := s.db.WithContext(ctx).Preload("Library").Order("return_box_id ASC")
	if libraryID != nil {
		q = q.Where("library_id = ?", *libraryID)
	}

	var boxes []models.ReturnBox
	if err := q.Find(&boxes).Error; err != nil {
		return nil, fmt.Errorf("failed to list return boxes: %w", err)
	}
	return boxes, nil
}

// GetReturnBox returns one return box unit.
func (s *Service) GetReturnBox(ctx context.Context, boxID int) (*models.ReturnBox, error) {
	var box models.ReturnBox
	err := s.db.WithContext(ctx).Preload("Library").First(&box, "return_box_id = ?", boxID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrReturnBoxNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load return box %d: %w", boxID, err)
	}
	return &box, nil
}
