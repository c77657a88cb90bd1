package ledger

type PeriodDTO struct {
	YearIndex      int     `json:"year_index"`
	DaysAssigned   int     `json:"days_assigned"`
	DaysUsed       int     `json:"days_used"`
	DaysRemaining  int     `json:"days_remaining"`
	StartDate      string  `json:"start_date"`                // YYYY-MM-DD
	ExpirationDate *string `json:"expiration_date,omitempty"` // nil = open-ended
	Expired        bool    `json:"expired"`
}

type BalanceDTO struct {
	EmployeeID string      `json:"employee_id"`
	AsOf       string      `json:"as_of"`
	Available  int         `json:"available"`
	Periods    []PeriodDTO `json:"periods"`
}
