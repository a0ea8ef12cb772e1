package library

// Config holds the lending policy settings shared by the loans feature and
// the return finalizer.
type Config struct {
	// DailyFineRate is the fine charged per day a loan is overdue.
	DailyFineRate float64 `mapstructure:"daily_fine_rate" default:"0.50"`
	// MaxFineAmount caps the fine for a single loan.
	MaxFineAmount float64 `mapstructure:"max_fine_amount" default:"10.00"`
	// LoanPeriodDays is the default loan period.
	LoanPeriodDays int `mapstructure:"loan_period_days" default:"14"`
}
