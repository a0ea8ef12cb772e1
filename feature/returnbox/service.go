package returnbox

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"bookdrop/core/mqtt"
	"bookdrop/feature/library"
	"bookdrop/feature/library/models"
	"bookdrop/feature/returnbox/session"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

// Box session status values as exposed to polling clients.
const (
	StatusIdle      = "idle"
	StatusScanning  = "scanning"
	StatusFinalized = "finalized"
	StatusCompleted = "completed"
)

// ErrReturnNotFound reports an unknown return transaction id.
var ErrReturnNotFound = errors.New("return transaction not found")

// StatusItem is a scanned tag enriched with catalog metadata.
type StatusItem struct {
	Tag    string `json:"tag"`
	ItemID int    `json:"itemId"`
	Title  string `json:"title"`
	Author string `json:"author"`
	ISBN   string `json:"isbn"`
	Status string `json:"status"`
}

// StatusResponse is the polling surface payload for one return box.
type StatusResponse struct {
	Status string       `json:"status"`
	Tags   []string     `json:"tags"`
	Items  []StatusItem `json:"items"`
}

// Service owns the return box session lifecycle: it ingests broker messages,
// exposes session state to pollers, dispatches unlock commands and records
// finalized sessions through the Worker.
type Service struct {
	store      *session.Store
	db         *gorm.DB
	dispatcher *Dispatcher
	worker     *Worker
	logger     *zap.Logger

	// finalize schedules the worker off the delivery path. Tests swap it for
	// a synchronous recorder.
	finalize func(boxID int, tags []string)

	// sf collapses identical concurrent enrichment lookups from pollers.
	sf singleflight.Group
}

// NewService creates the return box service.
func NewService(db *gorm.DB, publisher mqtt.Publisher, cfg mqtt.Config, policy library.Config, logger *zap.Logger) *Service {
	worker := NewWorker(db, policy, logger)
	s := &Service{
		store:      session.NewStore(),
		db:         db,
		dispatcher: NewDispatcher(publisher, cfg, logger),
		worker:     worker,
		logger:     logger,
	}
	s.finalize = func(boxID int, tags []string) {
		go func() {
			// Worker logs both outcomes; persistence failures do not
			// propagate back into the session lifecycle.
			_ = worker.Finalize(boxID, tags)
		}()
	}
	return s
}

// GetStatus returns the session state of a box, enriched with catalog
// metadata for the scanned tags. A box with no session reports idle; that is
// never an error.
func (s *Service) GetStatus(ctx context.Context, boxID int) (*StatusResponse, error) {
	snap, ok := s.store.Snapshot(boxID)
	if !ok {
		return &StatusResponse{Status: StatusIdle, Tags: []string{}, Items: []StatusItem{}}, nil
	}

	resp := &StatusResponse{
		Status: wireStatus(snap.State),
		Tags:   snap.Tags,
		Items:  []StatusItem{},
	}

	if len(snap.Tags) == 0 {
		return resp, nil
	}

	items, err := s.enrich(ctx, boxID, snap.Tags)
	if err != nil {
		// Enrichment is display sugar; the session state is still valid.
		s.logger.Warn("Failed to enrich status with catalog metadata",
			zap.Int("box_id", boxID), zap.Error(err))
		return resp, nil
	}
	resp.Items = items
	return resp, nil
}

// enrich resolves tags to copies and books. Concurrent pollers asking for the
// same box and tag set share one database round-trip.
func (s *Service) enrich(ctx context.Context, boxID int, tags []string) ([]StatusItem, error) {
	key := fmt.Sprintf("%d|%s", boxID, strings.Join(tags, ","))
	v, err, _ := s.sf.Do(key, func() (any, error) {
		var copies []models.BookCopy
		if err := s.db.WithContext(ctx).Preload("Book").
			Where("book_epc IN ?", tags).Find(&copies).Error; err != nil {
			return nil, err
		}

		byEPC := make(map[string]*models.BookCopy, len(copies))
		for i := range copies {
			byEPC[copies[i].EPC] = &copies[i]
		}

		items := make([]StatusItem, 0, len(copies))
		for _, tag := range tags {
			c, ok := byEPC[tag]
			if !ok {
				continue
			}
			item := StatusItem{Tag: tag, ItemID: c.ID, Status: c.Status}
			if c.Book != nil {
				item.Title = c.Book.Title
				item.Author = c.Book.Author
				if c.Book.ISBN != nil {
					item.ISBN = *c.Book.ISBN
				}
			}
			items = append(items, item)
		}
		return items, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]StatusItem), nil
}

// Unlock dispatches the unlock command for a box.
func (s *Service) Unlock(boxID int) error {
	return s.dispatcher.SendUnlock(boxID)
}

// ClearSession removes a box's in-memory session so a new lifecycle can
// begin. Clearing an absent session is a no-op.
func (s *Service) ClearSession(boxID int) {
	s.store.Clear(boxID)
	s.logger.Info("Session cleared", zap.Int("box_id", boxID))
}

// TransportConnected reports whether the broker connection is up.
func (s *Service) TransportConnected() bool {
	return s.dispatcher.publisher.IsConnected()
}

// ListReturns returns recorded return transactions, newest first, optionally
// filtered by status.
func (s *Service) ListReturns(ctx context.Context, status string) ([]models.ReturnTransaction, error) {
	q := s.db.WithContext(ctx).Preload("Items").Order("return_date DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var txns []models.ReturnTransaction
	if err := q.Find(&txns).Error; err != nil {
		return nil, fmt.Errorf("failed to list return transactions: %w", err)
	}
	return txns, nil
}

// GetReturn returns one return transaction with its items.
func (s *Service) GetReturn(ctx context.Context, returnID int) (*models.ReturnTransaction, error) {
	var txn models.ReturnTransaction
	err := s.db.WithContext(ctx).Preload("Items").Preload("Items.Copy").
		First(&txn, "return_id = ?", returnID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrReturnNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load return transaction %d: %w", returnID, err)
	}
	return &txn, nil
}

// ProcessReturn completes a pending return transaction: staff have emptied
// the box and reshelved the copies, which go back to available.
func (s *Service) ProcessReturn(ctx context.Context, returnID int, processedBy int, notes string) (*models.ReturnTransaction, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var txn models.ReturnTransaction
		err := tx.Preload("Items").First(&txn, "return_id = ?", returnID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReturnNotFound
		}
		if err != nil {
			return err
		}

		for _, item := range txn.Items {
			if err := tx.Model(&models.BookCopy{}).Where("copy_id = ?", item.CopyID).
				Update("status", models.CopyAvailable).Error; err != nil {
				return fmt.Errorf("failed to reshelve copy %d: %w", item.CopyID, err)
			}
		}

		now := library.Now()
		updates := map[string]any{
			"status":       models.ReturnCompleted,
			"processed_by": processedBy,
			"processed_at": now,
		}
		if notes != "" {
			updates["notes"] = notes
		}
		return tx.Model(&models.ReturnTransaction{}).Where("return_id = ?", returnID).
			Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}

	return s.GetReturn(ctx, returnID)
}

func wireStatus(state session.State) string {
	switch state {
	case session.StateFinalizePending:
		return StatusFinalized
	case session.StateCompleted:
		return StatusCompleted
	default:
		return StatusScanning
	}
}
