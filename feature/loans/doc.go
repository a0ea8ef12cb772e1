// Package loans manages the loan lifecycle: checkout, due dates and the
// active, history and overdue listings. Loan closure happens in the return
// box finalizer when copies come back through a box.
package loans
