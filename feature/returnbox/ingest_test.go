package returnbox

import (
	"sync"
	"testing"

	"bookdrop/core/mqtt"
	"bookdrop/feature/library"
	"bookdrop/feature/returnbox/session"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type finalizeCall struct {
	boxID int
	tags  []string
}

// finalizeRecorder replaces the async worker hand-off with a synchronous
// record of every finalization request.
type finalizeRecorder struct {
	mu    sync.Mutex
	calls []finalizeCall
}

func (r *finalizeRecorder) record(boxID int, tags []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, finalizeCall{boxID: boxID, tags: tags})
}

func (r *finalizeRecorder) snapshot() []finalizeCall {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]finalizeCall(nil), r.calls...)
}

func newIngestService() (*Service, *finalizeRecorder) {
	svc := NewService(nil, &fakePublisher{connected: true}, mqtt.Config{
		CommandTopicFormat:    "ReturnBox%02d/Command",
		UnlockCooldownSeconds: 5,
	}, library.Config{}, zap.NewNop())
	rec := &finalizeRecorder{}
	svc.finalize = rec.record
	return svc, rec
}

func TestScanThenConfirmFinalizesOnce(t *testing.T) {
	svc, rec := newIngestService()

	svc.HandleMessage("ReturnBox01/Return", []byte(`["TAG-A","TAG-B"]`))
	svc.HandleMessage("ReturnBox01/Command", []byte(ConfirmPayload))

	calls := rec.snapshot()
	assert.Len(t, calls, 1)
	assert.Equal(t, 1, calls[0].boxID)
	assert.Equal(t, []string{"TAG-A", "TAG-B"}, calls[0].tags)

	snap, ok := svc.store.Snapshot(1)
	assert.True(t, ok)
	assert.Equal(t, session.StateCompleted, snap.State)
}

func TestConfirmBeforeScanFinalizesWithNextSnapshot(t *testing.T) {
	svc, rec := newIngestService()

	// Confirm arrives first, with no tags seen yet.
	svc.HandleMessage("ReturnBox02/Command", []byte(ConfirmPayload))

	snap, ok := svc.store.Snapshot(2)
	assert.True(t, ok)
	assert.Equal(t, session.StateFinalizePending, snap.State)
	assert.Empty(t, rec.snapshot())

	// The next snapshot carries the authoritative final contents.
	svc.HandleMessage("ReturnBox02/Return", []byte(`["TAG-C"]`))

	calls := rec.snapshot()
	assert.Len(t, calls, 1)
	assert.Equal(t, 2, calls[0].boxID)
	assert.Equal(t, []string{"TAG-C"}, calls[0].tags)

	snap, _ = svc.store.Snapshot(2)
	assert.Equal(t, session.StateCompleted, snap.State)
}

func TestEmptyConfirmThenEmptySnapshotFinalizesEmpty(t *testing.T) {
	svc, rec := newIngestService()

	svc.HandleMessage("ReturnBox03/Command", []byte(ConfirmPayload))
	svc.HandleMessage("ReturnBox03/Return", []byte(`[]`))

	calls := rec.snapshot()
	assert.Len(t, calls, 1)
	assert.Empty(t, calls[0].tags)
}

func TestDuplicateConfirmDoesNotRefinalize(t *testing.T) {
	svc, rec := newIngestService()

	svc.HandleMessage("ReturnBox01/Return", []byte(`["TAG-A"]`))
	svc.HandleMessage("ReturnBox01/Command", []byte(ConfirmPayload))
	svc.HandleMessage("ReturnBox01/Command", []byte(ConfirmPayload))

	assert.Len(t, rec.snapshot(), 1)
}

func TestSnapshotAfterCompletionUpdatesDisplayOnly(t *testing.T) {
	svc, rec := newIngestService()

	svc.HandleMessage("ReturnBox01/Return", []byte(`["TAG-A"]`))
	svc.HandleMessage("ReturnBox01/Command", []byte(ConfirmPayload))
	svc.HandleMessage("ReturnBox01/Return", []byte(`["TAG-A","TAG-Z"]`))

	calls := rec.snapshot()
	assert.Len(t, calls, 1)
	assert.Equal(t, []string{"TAG-A"}, calls[0].tags)

	snap, _ := svc.store.Snapshot(1)
	assert.Equal(t, session.StateCompleted, snap.State)
	assert.Equal(t, []string{"TAG-A", "TAG-Z"}, snap.Tags)
}

func TestSnapshotReplacesTagsWholesale(t *testing.T) {
	svc, rec := newIngestService()

	svc.HandleMessage("ReturnBox01/Return", []byte(`["TAG-A","TAG-B"]`))
	svc.HandleMessage("ReturnBox01/Return", []byte(`["TAG-B"]`))
	svc.HandleMessage("ReturnBox01/Command", []byte(ConfirmPayload))

	calls := rec.snapshot()
	assert.Len(t, calls, 1)
	assert.Equal(t, []string{"TAG-B"}, calls[0].tags)
}

func TestWrappedSnapshotPayload(t *testing.T) {
	svc, rec := newIngestService()

	svc.HandleMessage("ReturnBox01/Return", []byte(`{"Return":["TAG-A"]}`))
	svc.HandleMessage("ReturnBox01/Command", []byte(ConfirmPayload))

	calls := rec.snapshot()
	assert.Len(t, calls, 1)
	assert.Equal(t, []string{"TAG-A"}, calls[0].tags)
}

func TestCommandEchoIsIgnored(t *testing.T) {
	svc, rec := newIngestService()

	// Our own actuation command echoing back must not create a session.
	svc.HandleMessage("ReturnBox01/Command", []byte(UnlockPayload))

	_, ok := svc.store.Snapshot(1)
	assert.False(t, ok)
	assert.Empty(t, rec.snapshot())
}

func TestMalformedMessagesAreDropped(t *testing.T) {
	tests := []struct {
		name    string
		topic   string
		payload string
	}{
		{"non numeric box id", "ReturnBoxXY/Return", `["TAG-A"]`},
		{"missing prefix", "Locker01/Return", `["TAG-A"]`},
		{"unrelated topic", "ReturnBox01/Telemetry", `["TAG-A"]`},
		{"payload not json", "ReturnBox01/Return", `TAG-A,TAG-B`},
		{"payload null", "ReturnBox01/Return", `null`},
		{"payload wrong shape", "ReturnBox01/Return", `{"tags":["TAG-A"]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, rec := newIngestService()
			svc.HandleMessage(tt.topic, []byte(tt.payload))
			assert.Empty(t, rec.snapshot())
		})
	}
}

func TestParseBoxID(t *testing.T) {
	tests := []struct {
		topic   string
		want    int
		wantErr bool
	}{
		{"ReturnBox01/Return", 1, false},
		{"ReturnBox12/Return", 12, false},
		{"ReturnBox0/Return", 0, false},
		{"ReturnBox-1/Return", 0, true},
		{"ReturnBox/Return", 0, true},
		{"Box01/Return", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.topic, func(t *testing.T) {
			got, err := parseBoxID(tt.topic, ScanSuffix)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
