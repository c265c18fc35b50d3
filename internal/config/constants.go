package config

const (
	// DefaultDatabasePath is the default path for the library database
	DefaultDatabasePath = "./biblioteca.db"

	// DefaultLoanDays is used when a borrower does not pick a duration
	DefaultLoanDays = 15
)

// DefaultLoanAllowedDays are the loan durations offered at the desk.
var DefaultLoanAllowedDays = []int{15, 30}
