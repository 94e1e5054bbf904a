package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/GuilhermeTBedin/backend-controle-financeiro/logger"
	"github.com/GuilhermeTBedin/backend-controle-financeiro/model"
	"github.com/GuilhermeTBedin/backend-controle-financeiro/repository"

	"github.com/sirupsen/logrus"
)

// ErrTransactionNotFound covers both a missing transaction and one owned by
// another user, so responses cannot be used to probe other users' data.
var ErrTransactionNotFound = errors.New("transaction not found")

const (
	defaultPageLimit = 10
	maxPageLimit     = 100

	summaryCacheTTL = 10 * time.Minute
)

// TransactionService handles the business logic for financial transactions,
// with a cache-aside Redis layer on the per-user summary.
type TransactionService struct {
	repo  repository.ITransactionRepository
	cache ICacheClient
}

func NewTransactionService(repo repository.ITransactionRepository, cache ICacheClient) *TransactionService {
	return &TransactionService{
		repo:  repo,
		cache: cache,
	}
}

// Create validates nothing itself; the request DTO was validated at the
// boundary. It records the transaction for the given user and invalidates
// the user's cached summary.
func (s *TransactionService) Create(ctx context.Context, userID int, req model.TransactionRequest) (*model.Transaction, error) {
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid date: %w", err)
	}

	transaction := &model.Transaction{
		UserID:   userID,
		Type:     req.Type,
		Amount:   req.Amount,
		Category: req.Category,
		Date:     date,
	}
	if err := s.repo.Create(transaction); err != nil {
		return nil, err
	}

	s.invalidateSummary(ctx, userID)
	return transaction, nil
}

// List returns one page of the user's transactions matching the filter.
// Page and limit are clamped to sane bounds before hitting the repository.
func (s *TransactionService) List(ctx context.Context, userID int, filter model.TransactionFilter) (*model.TransactionPage, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = defaultPageLimit
	}
	if filter.Limit > maxPageLimit {
		filter.Limit = maxPageLimit
	}

	transactions, total, err := s.repo.List(userID, filter)
	if err != nil {
		return nil, err
	}
	if transactions == nil {
		transactions = []*model.Transaction{}
	}

	totalPages := (total + filter.Limit - 1) / filter.Limit

	return &model.TransactionPage{
		Data:       transactions,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
	}, nil
}

func (s *TransactionService) GetByID(ctx context.Context, userID, id int) (*model.Transaction, error) {
	transaction, err := s.repo.GetByID(userID, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrTransactionNotFound
		}
		return nil, err
	}
	return transaction, nil
}

// Update replaces an owned transaction. The existence check and the update
// are two separate round-trips; a concurrent delete between them surfaces
// as ErrTransactionNotFound from the second call.
func (s *TransactionService) Update(ctx context.Context, userID, id int, req model.TransactionRequest) (*model.Transaction, error) {
	if _, err := s.GetByID(ctx, userID, id); err != nil {
		return nil, err
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid date: %w", err)
	}

	transaction := &model.Transaction{
		ID:       id,
		UserID:   userID,
		Type:     req.Type,
		Amount:   req.Amount,
		Category: req.Category,
		Date:     date,
	}

	updated, err := s.repo.Update(transaction)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, ErrTransactionNotFound
	}

	s.invalidateSummary(ctx, userID)
	return s.GetByID(ctx, userID, id)
}

func (s *TransactionService) Delete(ctx context.Context, userID, id int) error {
	deleted, err := s.repo.Delete(userID, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrTransactionNotFound
	}

	s.invalidateSummary(ctx, userID)
	return nil
}

// Summary computes the user's financial overview, utilizing a cache-aside
// strategy: serve from Redis when present, otherwise aggregate in the
// database and store the result for future requests.
func (s *TransactionService) Summary(ctx context.Context, userID int) (*model.TransactionSummary, error) {
	cacheKey := summaryCacheKey(userID)

	cached, err := s.cache.Get(ctx, cacheKey).Result()
	if err == nil {
		var summary model.TransactionSummary
		if err := json.Unmarshal([]byte(cached), &summary); err == nil {
			return &summary, nil
		}
	}

	buckets, err := s.repo.Summary(userID)
	if err != nil {
		return nil, err
	}
	if buckets == nil {
		buckets = []model.CategorySummary{}
	}

	summary := &model.TransactionSummary{Categories: buckets}
	for _, b := range buckets {
		switch b.Type {
		case model.TransactionTypeIncome:
			summary.TotalIncome += b.Total
		case model.TransactionTypeExpense:
			summary.TotalExpense += b.Total
		}
	}
	summary.Balance = summary.TotalIncome - summary.TotalExpense

	if data, err := json.Marshal(summary); err == nil {
		s.cache.Set(ctx, cacheKey, data, summaryCacheTTL)
	}

	return summary, nil
}

func (s *TransactionService) invalidateSummary(ctx context.Context, userID int) {
	if err := s.cache.Del(ctx, summaryCacheKey(userID)).Err(); err != nil {
		logger.Log.WithFields(logrus.Fields{
			"user_id": userID,
		}).WithError(err).Warn("Failed to invalidate summary cache")
	}
}

func summaryCacheKey(userID int) string {
	return fmt.Sprintf("summary:%d", userID)
}
