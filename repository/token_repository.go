// file: repository/token_repository.go

package repository

import (
	"database/sql"

	"github.com/GuilhermeTBedin/backend-controle-financeiro/logger"
	"github.com/GuilhermeTBedin/backend-controle-financeiro/model"

	"github.com/sirupsen/logrus"
)

// ITokenRepository defines the contract for refresh token database operations.
type ITokenRepository interface {
	Create(token *model.RefreshToken) error
	GetByToken(token string) (*model.RefreshToken, error)
	DeleteByToken(token string) (bool, error)
	DeleteExpired() (int64, error)
}

// TokenRepository implements ITokenRepository on top of Postgres.
type TokenRepository struct {
	DB *sql.DB
}

// NewTokenRepository creates a new TokenRepository.
func NewTokenRepository(db *sql.DB) *TokenRepository {
	return &TokenRepository{DB: db}
}

// Create inserts a new refresh token record into the database.
func (r *TokenRepository) Create(token *model.RefreshToken) error {
	log := logger.Log.WithFields(logrus.Fields{
		"user_id":    token.UserID,
		"expires_at": token.ExpiresAt,
	})
	log.Info("Executing query to create a new refresh token")

	query := `INSERT INTO refresh_tokens (user_id, token, expires_at) VALUES ($1, $2, $3) RETURNING id, created_at`
	err := r.DB.QueryRow(query, token.UserID, token.Token, token.ExpiresAt).Scan(&token.ID, &token.CreatedAt)
	if err != nil {
		log.WithError(err).Error("Failed to execute create refresh token query")
		return err
	}
	return nil
}

// GetByToken retrieves a refresh token by its string. Rows whose expiry has
// passed are treated as absent even before the background sweep removes
// them, so an expired-but-unswept token never authorizes a renewal.
func (r *TokenRepository) GetByToken(tokenString string) (*model.RefreshToken, error) {
	token := &model.RefreshToken{}
	query := `SELECT id, user_id, token, expires_at, created_at FROM refresh_tokens WHERE token = $1 AND expires_at > NOW()`
	err := r.DB.QueryRow(query, tokenString).Scan(&token.ID, &token.UserID, &token.Token, &token.ExpiresAt, &token.CreatedAt)
	if err != nil {
		if err != sql.ErrNoRows {
			logger.Log.WithError(err).Error("Failed to execute get refresh token query")
		}
		return nil, err // Return sql.ErrNoRows if not found
	}
	return token, nil
}

// DeleteByToken removes a refresh token record, returning true iff a record
// existed and was removed.
func (r *TokenRepository) DeleteByToken(tokenString string) (bool, error) {
	result, err := r.DB.Exec(`DELETE FROM refresh_tokens WHERE token = $1`, tokenString)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to execute delete refresh token query")
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// DeleteExpired purges refresh tokens whose expiry has passed. It is run
// periodically by the token cleanup job.
func (r *TokenRepository) DeleteExpired() (int64, error) {
	result, err := r.DB.Exec(`DELETE FROM refresh_tokens WHERE expires_at <= NOW()`)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to execute delete expired refresh tokens query")
		return 0, err
	}
	return result.RowsAffected()
}
