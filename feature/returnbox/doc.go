// Package returnbox implements the return box session reconciliation engine.
//
// Unattended return boxes stream two kinds of MQTT messages: periodic scan
// snapshots (the full set of RFID tags currently detected) and an
// out-of-band confirm signal when the door closes. The two streams are
// delivered independently and in either order; this package folds them into
// one per-box session lifecycle that finalizes exactly once.
//
// # Lifecycle
//
//	SCANNING --(confirm, tags present)--> COMPLETED   (finalize now)
//	SCANNING --(confirm, no tags)-------> FINALIZE_PENDING
//	FINALIZE_PENDING --(next snapshot)--> COMPLETED   (finalize with it)
//
// Once COMPLETED, further snapshots only refresh the display tags and
// further confirms are no-ops, so duplicate delivery can never finalize a
// session twice. An explicit clear resets a box to the never-seen state.
//
// # Components
//
//   - session.Store: the guarded in-memory session map. Mutations return
//     deferred side effects so no I/O ever runs under the lock.
//   - Ingest (HandleMessage): routes broker messages to the scan and confirm
//     handlers.
//   - Worker: finalizes a captured tag set against the database in one
//     transaction (copies returned, loans closed, transaction recorded).
//   - Dispatcher: publishes unlock commands with a per-box cooldown.
//   - Service/Handler: the polling and command HTTP surface.
package returnbox
