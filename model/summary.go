package model

// CategorySummary aggregates one (type, category) bucket of a user's
// transactions.
type CategorySummary struct {
	Type     string  `json:"type"`
	Category string  `json:"category"`
	Total    float64 `json:"total"`
	Count    int     `json:"count"`
}

// TransactionSummary is the per-user financial overview: overall totals per
// transaction type plus the per-category breakdown.
type TransactionSummary struct {
	TotalIncome  float64           `json:"totalIncome"`
	TotalExpense float64           `json:"totalExpense"`
	Balance      float64           `json:"balance"`
	Categories   []CategorySummary `json:"categories"`
}
