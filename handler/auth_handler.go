package handler

import (
	"encoding/json"
	"net/http"

	"github.com/GuilhermeTBedin/backend-controle-financeiro/common"
	"github.com/GuilhermeTBedin/backend-controle-financeiro/model"
	"github.com/GuilhermeTBedin/backend-controle-financeiro/service"
)

type AuthHandler struct {
	service *service.AuthService
}

func NewAuthHandler(s *service.AuthService) *AuthHandler {
	return &AuthHandler{service: s}
}

// Register godoc
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        user body model.RegisterRequest true "New user data"
// @Success      201  {object}  model.User
// @Failure      400  {object}  common.AppError "Duplicate email or invalid fields"
// @Failure      500  {object}  common.AppError
// @Router       /auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.RegisterRequest
	if err := common.ValidateAndDecode(r, &req); err != nil {
		return err
	}

	user, err := h.service.Register(req)
	if err != nil {
		switch err {
		case service.ErrEmailAlreadyExists, service.ErrPasswordRequired:
			return common.NewAppError(http.StatusBadRequest, err.Error(), nil)
		default:
			return common.NewAppError(http.StatusInternalServerError, "Could not register user", err)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(user)
	return nil
}

// Login godoc
// @Summary      Authenticate and receive an access/refresh token pair
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        credentials body model.LoginRequest true "User credentials"
// @Success      200  {object}  service.TokenPair
// @Failure      401  {object}  common.AppError "Invalid credentials"
// @Failure      500  {object}  common.AppError
// @Router       /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.LoginRequest
	if err := common.ValidateAndDecode(r, &req); err != nil {
		return err
	}

	tokens, err := h.service.Login(req.Email, req.Password)
	if err != nil {
		switch err {
		case service.ErrInvalidCredentials:
			return common.NewAppError(http.StatusUnauthorized, err.Error(), nil)
		default:
			return common.NewAppError(http.StatusInternalServerError, "Could not process login", err)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(tokens)
	return nil
}

// Refresh godoc
// @Summary      Exchange a refresh token for a new access token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        token body model.RefreshTokenRequest true "Refresh token"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  common.AppError "Token missing"
// @Failure      403  {object}  common.AppError "Token invalid, expired or revoked"
// @Failure      500  {object}  common.AppError
// @Router       /auth/refresh-token [post]
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.RefreshTokenRequest
	if err := common.ValidateAndDecode(r, &req); err != nil {
		return err
	}

	accessToken, err := h.service.Refresh(req.Token)
	if err != nil {
		switch err {
		case service.ErrInvalidRefreshToken:
			return common.NewAppError(http.StatusForbidden, err.Error(), nil)
		default:
			return common.NewAppError(http.StatusInternalServerError, "Could not refresh token", err)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"accessToken": accessToken})
	return nil
}

// Logout godoc
// @Summary      Revoke a refresh token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        token body model.RefreshTokenRequest true "Refresh token to revoke"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  common.AppError "Token missing"
// @Failure      404  {object}  common.AppError "Token not found or already revoked"
// @Failure      500  {object}  common.AppError
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.RefreshTokenRequest
	if err := common.ValidateAndDecode(r, &req); err != nil {
		return err
	}

	if err := h.service.Logout(req.Token); err != nil {
		switch err {
		case service.ErrRefreshTokenNotFound:
			return common.NewAppError(http.StatusNotFound, err.Error(), nil)
		default:
			return common.NewAppError(http.StatusInternalServerError, "Could not process logout", err)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"message": "logged out successfully"})
	return nil
}
