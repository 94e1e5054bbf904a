package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/GuilhermeTBedin/backend-controle-financeiro/common"
	"github.com/GuilhermeTBedin/backend-controle-financeiro/model"
	"github.com/GuilhermeTBedin/backend-controle-financeiro/service"
)

// TransactionHandler holds dependencies for transaction-related handlers.
type TransactionHandler struct {
	service *service.TransactionService
}

// NewTransactionHandler creates a new TransactionHandler with its dependencies.
func NewTransactionHandler(s *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{service: s}
}

func userIDFromContext(r *http.Request) (int, *common.AppError) {
	userID, ok := r.Context().Value(UserIDKey).(int)
	if !ok {
		return 0, common.NewAppError(http.StatusUnauthorized, "Invalid user ID in token", nil)
	}
	return userID, nil
}

// Create godoc
// @Summary      Create a financial transaction
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        transaction body model.TransactionRequest true "Transaction data"
// @Success      201  {object}  model.Transaction
// @Failure      400  {object}  common.AppError "Invalid type, non-positive amount or malformed date"
// @Failure      401  {object}  common.AppError "Missing or malformed authorization header"
// @Failure      403  {object}  common.AppError "Invalid or expired access token"
// @Failure      500  {object}  common.AppError
// @Router       /transactions [post]
func (h *TransactionHandler) Create(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.TransactionRequest
	if err := common.ValidateAndDecode(r, &req); err != nil {
		return err
	}

	userID, appErr := userIDFromContext(r)
	if appErr != nil {
		return appErr
	}

	transaction, err := h.service.Create(r.Context(), userID, req)
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not create transaction", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(transaction)
	return nil
}

// List godoc
// @Summary      List transactions with filters and pagination
// @Tags         transactions
// @Produce      json
// @Security     BearerAuth
// @Param        type     query string false "Transaction type" Enums(income, expense)
// @Param        category query string false "Category label"
// @Param        from     query string false "Start date (YYYY-MM-DD)"
// @Param        to       query string false "End date (YYYY-MM-DD)"
// @Param        page     query int    false "Page number (default 1)"
// @Param        limit    query int    false "Page size (default 10, max 100)"
// @Success      200  {object}  model.TransactionPage
// @Failure      400  {object}  common.AppError "Malformed filter values"
// @Failure      401  {object}  common.AppError
// @Failure      403  {object}  common.AppError
// @Failure      500  {object}  common.AppError
// @Router       /transactions [get]
func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) *common.AppError {
	userID, appErr := userIDFromContext(r)
	if appErr != nil {
		return appErr
	}

	filter, appErr := parseTransactionFilter(r)
	if appErr != nil {
		return appErr
	}

	page, err := h.service.List(r.Context(), userID, filter)
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not retrieve transactions", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(page)
	return nil
}

// GetByID godoc
// @Summary      Get a single transaction
// @Tags         transactions
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Transaction ID"
// @Success      200  {object}  model.Transaction
// @Failure      400  {object}  common.AppError "Invalid transaction ID in URL path"
// @Failure      401  {object}  common.AppError
// @Failure      403  {object}  common.AppError
// @Failure      404  {object}  common.AppError "Transaction not found"
// @Failure      500  {object}  common.AppError
// @Router       /transactions/{id} [get]
func (h *TransactionHandler) GetByID(w http.ResponseWriter, r *http.Request) *common.AppError {
	userID, appErr := userIDFromContext(r)
	if appErr != nil {
		return appErr
	}

	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		return common.NewAppError(http.StatusBadRequest, "Invalid transaction ID in URL path", err)
	}

	transaction, err := h.service.GetByID(r.Context(), userID, id)
	if err != nil {
		switch err {
		case service.ErrTransactionNotFound:
			return common.NewAppError(http.StatusNotFound, err.Error(), nil)
		default:
			return common.NewAppError(http.StatusInternalServerError, "Could not retrieve transaction", err)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(transaction)
	return nil
}

// Update godoc
// @Summary      Replace a transaction
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Transaction ID"
// @Param        transaction body model.TransactionRequest true "New transaction data"
// @Success      200  {object}  model.Transaction
// @Failure      400  {object}  common.AppError
// @Failure      401  {object}  common.AppError
// @Failure      403  {object}  common.AppError
// @Failure      404  {object}  common.AppError "Transaction not found"
// @Failure      500  {object}  common.AppError
// @Router       /transactions/{id} [put]
func (h *TransactionHandler) Update(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.TransactionRequest
	if err := common.ValidateAndDecode(r, &req); err != nil {
		return err
	}

	userID, appErr := userIDFromContext(r)
	if appErr != nil {
		return appErr
	}

	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		return common.NewAppError(http.StatusBadRequest, "Invalid transaction ID in URL path", err)
	}

	transaction, err := h.service.Update(r.Context(), userID, id, req)
	if err != nil {
		switch err {
		case service.ErrTransactionNotFound:
			return common.NewAppError(http.StatusNotFound, err.Error(), nil)
		default:
			return common.NewAppError(http.StatusInternalServerError, "Could not update transaction", err)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(transaction)
	return nil
}

// Delete godoc
// @Summary      Delete a transaction
// @Tags         transactions
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Transaction ID"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  common.AppError
// @Failure      401  {object}  common.AppError
// @Failure      403  {object}  common.AppError
// @Failure      404  {object}  common.AppError "Transaction not found"
// @Failure      500  {object}  common.AppError
// @Router       /transactions/{id} [delete]
func (h *TransactionHandler) Delete(w http.ResponseWriter, r *http.Request) *common.AppError {
	userID, appErr := userIDFromContext(r)
	if appErr != nil {
		return appErr
	}

	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		return common.NewAppError(http.StatusBadRequest, "Invalid transaction ID in URL path", err)
	}

	if err := h.service.Delete(r.Context(), userID, id); err != nil {
		switch err {
		case service.ErrTransactionNotFound:
			return common.NewAppError(http.StatusNotFound, err.Error(), nil)
		default:
			return common.NewAppError(http.StatusInternalServerError, "Could not delete transaction", err)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"message": "transaction deleted successfully"})
	return nil
}

// Summary godoc
// @Summary      Financial summary for the authenticated user
// @Tags         transactions
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  model.TransactionSummary
// @Failure      401  {object}  common.AppError
// @Failure      403  {object}  common.AppError
// @Failure      500  {object}  common.AppError
// @Router       /transactions/summary [get]
func (h *TransactionHandler) Summary(w http.ResponseWriter, r *http.Request) *common.AppError {
	userID, appErr := userIDFromContext(r)
	if appErr != nil {
		return appErr
	}

	summary, err := h.service.Summary(r.Context(), userID)
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not retrieve summary", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(summary)
	return nil
}

func parseTransactionFilter(r *http.Request) (model.TransactionFilter, *common.AppError) {
	query := r.URL.Query()
	filter := model.TransactionFilter{
		Type:     query.Get("type"),
		Category: query.Get("category"),
	}

	if filter.Type != "" && filter.Type != model.TransactionTypeIncome && filter.Type != model.TransactionTypeExpense {
		return filter, common.NewAppError(http.StatusBadRequest, "Invalid transaction type filter", nil)
	}

	if from := query.Get("from"); from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			return filter, common.NewAppError(http.StatusBadRequest, "Invalid 'from' date, expected YYYY-MM-DD", err)
		}
		filter.DateFrom = t
	}
	if to := query.Get("to"); to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			return filter, common.NewAppError(http.StatusBadRequest, "Invalid 'to' date, expected YYYY-MM-DD", err)
		}
		filter.DateTo = t
	}

	if page := query.Get("page"); page != "" {
		n, err := strconv.Atoi(page)
		if err != nil {
			return filter, common.NewAppError(http.StatusBadRequest, "Invalid 'page' value", err)
		}
		filter.Page = n
	}
	if limit := query.Get("limit"); limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil {
			return filter, common.NewAppError(http.StatusBadRequest, "Invalid 'limit' value", err)
		}
		filter.Limit = n
	}

	return filter, nil
}
