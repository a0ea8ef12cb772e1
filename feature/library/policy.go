package library

import "time"

// tz is the library's operating timezone (GMT+8).
var tz = func() *time.Location {
	loc, err := time.LoadLocation("Asia/Kuala_Lumpur")
	if err != nil {
		return time.FixedZone("GMT+8", 8*60*60)
	}
	return loc
}()

// Now returns the current time in the library's operating timezone.
func Now() time.Time {
	return time.Now().In(tz)
}

// CalculateFine computes the fine for a loan returned at returnDate.
// A loan returned on or before its due date carries no fine; otherwise the
// fine accrues per full day overdue and is capped at MaxFineAmount.
func (c Config) CalculateFine(dueDate, returnDate time.Time) float64 {
	if !returnDate.After(dueDate) {
		return 0
	}

	daysOverdue := int(returnDate.Sub(dueDate).Hours() / 24)
	fine := float64(daysOverdue) * c.DailyFineRate
	if fine > c.MaxFineAmount {
		fine = c.MaxFineAmount
	}
	return fine
}
