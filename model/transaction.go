package model

import "time"

const (
	TransactionTypeIncome  = "income"
	TransactionTypeExpense = "expense"
)

type Transaction struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	Type      string    `json:"type"`
	Amount    float64   `json:"amount"`
	Category  string    `json:"category"`
	Date      time.Time `json:"date"`
	CreatedAt time.Time `json:"created_at"`
}

// TransactionFilter narrows and paginates a transaction listing. Zero values
// mean "no filter" for the optional fields.
type TransactionFilter struct {
	Type     string
	Category string
	DateFrom time.Time
	DateTo   time.Time
	Page     int
	Limit    int
}

// TransactionPage is a paginated listing result.
type TransactionPage struct {
	Data       []*Transaction `json:"data"`
	Total      int            `json:"total"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	TotalPages int            `json:"totalPages"`
}
