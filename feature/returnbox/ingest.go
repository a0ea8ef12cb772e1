package returnbox

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"bookdrop/feature/returnbox/session"

	"go.uber.org/zap"
)

// MQTT topic layout. Each box publishes scan snapshots on ReturnBox<NN>/Return
// and signals door closure with the confirm literal on ReturnBox<NN>/Command.
// The backend publishes its own actuation commands on the same Command topic,
// so inbound command payloads other than the confirm literal are the box (or
// this service) talking, not a signal to ingest.
const (
	TopicPrefix   = "ReturnBox"
	ScanSuffix    = "/Return"
	CommandSuffix = "/Command"

	ScanTopicFilter    = "+" + ScanSuffix
	CommandTopicFilter = "+" + CommandSuffix

	ConfirmPayload = "CONFIRM RETURN"
	UnlockPayload  = "UNLOCK"
)

// HandleMessage routes an inbound broker message to the scan or confirm
// handler. Malformed topics and payloads are logged and dropped; ingestion
// never fails hard on bad input from a box.
func (s *Service) HandleMessage(topic string, payload []byte) {
	switch {
	case strings.HasSuffix(topic, ScanSuffix):
		boxID, err := parseBoxID(topic, ScanSuffix)
		if err != nil {
			s.logger.Warn("Dropping scan message with unparseable topic",
				zap.String("topic", topic), zap.Error(err))
			return
		}
		s.handleScan(boxID, payload)

	case strings.HasSuffix(topic, CommandSuffix):
		if string(payload) != ConfirmPayload {
			// Actuation traffic (e.g. our own UNLOCK) echoing back.
			return
		}
		boxID, err := parseBoxID(topic, CommandSuffix)
		if err != nil {
			s.logger.Warn("Dropping confirm message with unparseable topic",
				zap.String("topic", topic), zap.Error(err))
			return
		}
		s.handleConfirm(boxID)

	default:
		s.logger.Debug("Ignoring message on unrelated topic", zap.String("topic", topic))
	}
}

// handleScan folds a scan snapshot into the box's session. An empty tag list
// is meaningful: the box currently detects nothing.
func (s *Service) handleScan(boxID int, payload []byte) {
	tags, err := decodeTags(payload)
	if err != nil {
		s.logger.Warn("Dropping scan message with unexpected payload shape",
			zap.Int("box_id", boxID), zap.ByteString("payload", payload))
		return
	}

	outcome := s.store.Upsert(boxID, func(sess *session.Session) session.Outcome {
		switch sess.State {
		case session.StateFinalizePending:
			// The confirm signal beat the door-closed snapshot; this snapshot
			// is the authoritative final tag set.
			sess.Tags = tags
			sess.State = session.StateCompleted
			return session.Outcome{Finalize: true, Tags: append([]string(nil), tags...)}

		case session.StateCompleted:
			// Straggler snapshot after completion: update display tags only,
			// never re-trigger persistence.
			sess.Tags = tags
			return session.Outcome{}

		default:
			sess.Tags = tags
			return session.Outcome{}
		}
	})

	s.logger.Debug("Scan snapshot applied",
		zap.Int("box_id", boxID),
		zap.Int("tag_count", len(tags)),
		zap.Bool("finalizing", outcome.Finalize),
	)

	if outcome.Finalize {
		s.finalize(boxID, outcome.Tags)
	}
}

// handleConfirm processes the door-closed signal. Confirm-before-data and
// confirm-after-data are both legal orderings; either way exactly one
// finalization results.
func (s *Service) handleConfirm(boxID int) {
	outcome := s.store.Upsert(boxID, func(sess *session.Session) session.Outcome {
		switch {
		case sess.State == session.StateScanning && len(sess.Tags) > 0:
			// A recent snapshot already describes the final contents.
			sess.State = session.StateCompleted
			return session.Outcome{Finalize: true, Tags: append([]string(nil), sess.Tags...)}

		case sess.State == session.StateScanning:
			// No snapshot yet; wait for the next one to finalize.
			sess.State = session.StateFinalizePending
			return session.Outcome{}

		default:
			// Duplicate confirm delivery; QoS 1 does not rule it out.
			return session.Outcome{}
		}
	})

	s.logger.Info("Confirm signal processed",
		zap.Int("box_id", boxID),
		zap.Bool("finalizing", outcome.Finalize),
	)

	if outcome.Finalize {
		s.finalize(boxID, outcome.Tags)
	}
}

// parseBoxID extracts the numeric box id from a device-scoped topic, e.g.
// "ReturnBox01/Return" -> 1.
func parseBoxID(topic, suffix string) (int, error) {
	raw := strings.TrimSuffix(topic, suffix)
	if !strings.HasPrefix(raw, TopicPrefix) {
		return 0, fmt.Errorf("topic %q does not carry the %s prefix", topic, TopicPrefix)
	}
	raw = strings.TrimPrefix(raw, TopicPrefix)
	id, err := strconv.Atoi(raw)
	if err != nil || id < 0 {
		return 0, fmt.Errorf("topic %q carries no numeric box id", topic)
	}
	return id, nil
}

// decodeTags accepts the two snapshot payload shapes the firmware sends:
// a bare JSON array of tag strings, or an object wrapping it under "Return".
func decodeTags(payload []byte) ([]string, error) {
	var tags []string
	if err := json.Unmarshal(payload, &tags); err == nil && tags != nil {
		return tags, nil
	}

	var wrapped struct {
		Return []string `json:"Return"`
	}
	if err := json.Unmarshal(payload, &wrapped); err == nil && wrapped.Return != nil {
		return wrapped.Return, nil
	}

	return nil, fmt.Errorf("unexpected snapshot payload shape")
}
