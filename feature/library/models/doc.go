// Package models defines the GORM entities shared by the catalog, loans and
// returnbox features.
//
// The schema follows the physical library domain: a Book has BookCopy rows,
// each carrying the RFID EPC a return box reports; Loans track checked-out
// copies; ReturnTransaction and ReturnItem are the durable record the return
// box finalizer writes. All features migrate and query these entities through
// one shared definition so the finalizer and the REST surface cannot drift
// apart.
package models
