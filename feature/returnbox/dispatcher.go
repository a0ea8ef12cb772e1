package returnbox

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"bookdrop/core/mqtt"

	"go.uber.org/zap"
)

// ErrCooldown reports a suppressed unlock: the last command to the box was
// sent too recently. Callers surface this as "ignored", not as a failure.
var ErrCooldown = errors.New("unlock suppressed by cooldown")

// Dispatcher sends actuation commands to return boxes with a per-device
// cooldown, so a user hammering the unlock button cannot flood the hardware.
type Dispatcher struct {
	publisher   mqtt.Publisher
	topicFormat string
	cooldown    time.Duration
	logger      *zap.Logger

	mu       sync.Mutex
	lastSent map[int]time.Time

	now func() time.Time // test hook
}

// NewDispatcher creates a command dispatcher.
func NewDispatcher(publisher mqtt.Publisher, cfg mqtt.Config, logger *zap.Logger) *Dispatcher {
	cooldown := time.Duration(cfg.UnlockCooldownSeconds) * time.Second
	return &Dispatcher{
		publisher:   publisher,
		topicFormat: cfg.CommandTopicFormat,
		cooldown:    cooldown,
		logger:      logger,
		lastSent:    make(map[int]time.Time),
		now:         time.Now,
	}
}

// SendUnlock publishes the unlock command for a box. Within the cooldown
// window the command is suppressed and ErrCooldown returned. A publish
// failure leaves the cooldown untouched so the next attempt is not wrongly
// suppressed.
func (d *Dispatcher) SendUnlock(boxID int) error {
	now := d.now()

	// Reserve the cooldown slot under the lock so concurrent requests cannot
	// both pass the check; the reservation is rolled back if publishing fails.
	d.mu.Lock()
	last, seen := d.lastSent[boxID]
	if seen && now.Sub(last) < d.cooldown {
		d.mu.Unlock()
		d.logger.Warn("Unlock command suppressed by cooldown",
			zap.Int("box_id", boxID),
			zap.Duration("since_last", now.Sub(last)),
			zap.Duration("cooldown", d.cooldown),
		)
		return ErrCooldown
	}
	d.lastSent[boxID] = now
	d.mu.Unlock()

	topic := fmt.Sprintf(d.topicFormat, boxID)
	if err := d.publisher.Publish(topic, UnlockPayload); err != nil {
		d.mu.Lock()
		if seen {
			d.lastSent[boxID] = last
		} else {
			delete(d.lastSent, boxID)
		}
		d.mu.Unlock()
		d.logger.Error("Failed to publish unlock command",
			zap.Int("box_id", boxID), zap.String("topic", topic), zap.Error(err))
		return fmt.Errorf("unlock command for box %d failed: %w", boxID, err)
	}

	d.logger.Info("Unlock command sent", zap.Int("box_id", boxID), zap.String("topic", topic))
	return nil
}
