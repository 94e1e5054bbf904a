// file: model/request.go

package model

// RegisterRequest defines the payload for creating a new user.
// It includes validation tags to ensure data integrity at the entry point.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=30"`
}

// LoginRequest defines the payload for user authentication.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshTokenRequest carries the refresh token presented to the
// refresh-token and logout endpoints.
type RefreshTokenRequest struct {
	Token string `json:"token" validate:"required"`
}

// TransactionRequest defines the payload for creating or replacing a
// financial transaction. Date uses the YYYY-MM-DD format.
type TransactionRequest struct {
	Type     string  `json:"type" validate:"required,oneof=income expense"`
	Amount   float64 `json:"amount" validate:"required,gt=0"`
	Category string  `json:"category" validate:"required,max=100"`
	Date     string  `json:"date" validate:"required,datetime=2006-01-02"`
}
