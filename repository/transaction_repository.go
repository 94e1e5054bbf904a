package repository

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/GuilhermeTBedin/backend-controle-financeiro/logger"
	"github.com/GuilhermeTBedin/backend-controle-financeiro/model"

	"github.com/sirupsen/logrus"
)

// ITransactionRepository defines the contract for transaction database
// operations. Every method is scoped by the owning user.
type ITransactionRepository interface {
	Create(transaction *model.Transaction) error
	List(userID int, filter model.TransactionFilter) ([]*model.Transaction, int, error)
	GetByID(userID, id int) (*model.Transaction, error)
	Update(transaction *model.Transaction) (bool, error)
	Delete(userID, id int) (bool, error)
	Summary(userID int) ([]model.CategorySummary, error)
}

// TransactionRepository implements ITransactionRepository.
type TransactionRepository struct {
	DB *sql.DB
}

func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{DB: db}
}

func (r *TransactionRepository) Create(transaction *model.Transaction) error {
	log := logger.Log.WithFields(logrus.Fields{
		"user_id":  transaction.UserID,
		"type":     transaction.Type,
		"amount":   transaction.Amount,
		"category": transaction.Category,
	})
	log.Info("Executing query to create a new transaction")

	query := `INSERT INTO transactions (user_id, type, amount, category, date) VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at`
	err := r.DB.QueryRow(query, transaction.UserID, transaction.Type, transaction.Amount, transaction.Category, transaction.Date).
		Scan(&transaction.ID, &transaction.CreatedAt)
	if err != nil {
		log.WithError(err).Error("Failed to execute create transaction query")
		return err
	}
	return nil
}

// buildFilterClause appends the optional filter conditions to the WHERE
// clause shared by the count and page queries.
func buildFilterClause(userID int, filter model.TransactionFilter) (string, []interface{}) {
	conditions := []string{"user_id = $1"}
	args := []interface{}{userID}

	if filter.Type != "" {
		args = append(args, filter.Type)
		conditions = append(conditions, fmt.Sprintf("type = $%d", len(args)))
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		conditions = append(conditions, fmt.Sprintf("category = $%d", len(args)))
	}
	if !filter.DateFrom.IsZero() {
		args = append(args, filter.DateFrom)
		conditions = append(conditions, fmt.Sprintf("date >= $%d", len(args)))
	}
	if !filter.DateTo.IsZero() {
		args = append(args, filter.DateTo)
		conditions = append(conditions, fmt.Sprintf("date <= $%d", len(args)))
	}

	return strings.Join(conditions, " AND "), args
}

// List returns one page of the user's transactions matching the filter,
// newest first, together with the total match count.
func (r *TransactionRepository) List(userID int, filter model.TransactionFilter) ([]*model.Transaction, int, error) {
	log := logger.Log.WithFields(logrus.Fields{
		"user_id": userID,
		"page":    filter.Page,
		"limit":   filter.Limit,
	})
	log.Info("Executing query to list transactions")

	where, args := buildFilterClause(userID, filter)

	var total int
	countQuery := `SELECT COUNT(*) FROM transactions WHERE ` + where
	if err := r.DB.QueryRow(countQuery, args...).Scan(&total); err != nil {
		log.WithError(err).Error("Failed to execute count transactions query")
		return nil, 0, err
	}

	args = append(args, filter.Limit)
	limitPos := len(args)
	args = append(args, (filter.Page-1)*filter.Limit)
	offsetPos := len(args)

	pageQuery := fmt.Sprintf(`
		SELECT id, user_id, type, amount, category, date, created_at
		FROM transactions
		WHERE %s
		ORDER BY date DESC, id DESC
		LIMIT $%d OFFSET $%d`, where, limitPos, offsetPos)

	rows, err := r.DB.Query(pageQuery, args...)
	if err != nil {
		log.WithError(err).Error("Failed to execute list transactions query")
		return nil, 0, err
	}
	defer rows.Close()

	var transactions []*model.Transaction
	for rows.Next() {
		var t model.Transaction
		if err := rows.Scan(&t.ID, &t.UserID, &t.Type, &t.Amount, &t.Category, &t.Date, &t.CreatedAt); err != nil {
			log.WithError(err).Error("Failed to scan transaction row")
			return nil, 0, err
		}
		transactions = append(transactions, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return transactions, total, nil
}

// GetByID retrieves one transaction scoped by owner. A transaction owned by
// another user scans as sql.ErrNoRows, indistinguishable from a missing one.
func (r *TransactionRepository) GetByID(userID, id int) (*model.Transaction, error) {
	t := &model.Transaction{}
	query := `SELECT id, user_id, type, amount, category, date, created_at FROM transactions WHERE id = $1 AND user_id = $2`
	err := r.DB.QueryRow(query, id, userID).Scan(&t.ID, &t.UserID, &t.Type, &t.Amount, &t.Category, &t.Date, &t.CreatedAt)
	if err != nil {
		if err != sql.ErrNoRows {
			logger.Log.WithError(err).Error("Failed to execute get transaction by ID query")
		}
		return nil, err
	}
	return t, nil
}

// Update replaces the mutable fields of an owned transaction, returning
// true iff a row was updated.
func (r *TransactionRepository) Update(transaction *model.Transaction) (bool, error) {
	log := logger.Log.WithFields(logrus.Fields{
		"user_id":        transaction.UserID,
		"transaction_id": transaction.ID,
	})
	log.Info("Executing query to update a transaction")

	query := `UPDATE transactions SET type = $1, amount = $2, category = $3, date = $4 WHERE id = $5 AND user_id = $6`
	result, err := r.DB.Exec(query, transaction.Type, transaction.Amount, transaction.Category, transaction.Date, transaction.ID, transaction.UserID)
	if err != nil {
		log.WithError(err).Error("Failed to execute update transaction query")
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// Delete removes an owned transaction, returning true iff a row was removed.
func (r *TransactionRepository) Delete(userID, id int) (bool, error) {
	result, err := r.DB.Exec(`DELETE FROM transactions WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to execute delete transaction query")
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// Summary aggregates the user's transactions per (type, category) bucket.
func (r *TransactionRepository) Summary(userID int) ([]model.CategorySummary, error) {
	log := logger.Log.WithField("user_id", userID)
	log.Info("Executing query to summarize transactions")

	query := `
		SELECT type, category, SUM(amount), COUNT(*)
		FROM transactions
		WHERE user_id = $1
		GROUP BY type, category
		ORDER BY type, SUM(amount) DESC`

	rows, err := r.DB.Query(query, userID)
	if err != nil {
		log.WithError(err).Error("Failed to execute summary query")
		return nil, err
	}
	defer rows.Close()

	var buckets []model.CategorySummary
	for rows.Next() {
		var b model.CategorySummary
		if err := rows.Scan(&b.Type, &b.Category, &b.Total, &b.Count); err != nil {
			log.WithError(err).Error("Failed to scan summary row")
			return nil, err
		}
		buckets = append(buckets, b)
	}
	return buckets, rows.Err()
}
