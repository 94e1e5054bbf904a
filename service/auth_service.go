package service

import (
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/GuilhermeTBedin/backend-controle-financeiro/config"
	"github.com/GuilhermeTBedin/backend-controle-financeiro/logger"
	"github.com/GuilhermeTBedin/backend-controle-financeiro/model"
	"github.com/GuilhermeTBedin/backend-controle-financeiro/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 7 * 24 * time.Hour
)

var (
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrPasswordRequired   = errors.New("password is required")
	// ErrInvalidCredentials covers both an unknown email and a wrong
	// password, so login responses cannot be used to enumerate accounts.
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrInvalidRefreshToken  = errors.New("invalid or expired refresh token")
	ErrRefreshTokenNotFound = errors.New("refresh token not found")
)

// TokenPair is the credential pair returned by a successful login. Tokens
// are issued raw; the client adds the "Bearer " prefix on protected calls.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// AuthService orchestrates registration, login and the refresh-token
// lifecycle over the user and token repositories.
type AuthService struct {
	userRepo  repository.IUserRepository
	tokenRepo repository.ITokenRepository
}

func NewAuthService(userRepo repository.IUserRepository, tokenRepo repository.ITokenRepository) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
	}
}

func (s *AuthService) HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 14)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to hash password")
		return "", err
	}
	return string(bytes), nil
}

func (s *AuthService) CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// Register creates a new user with a hashed password. No tokens are issued;
// the user logs in afterwards.
func (s *AuthService) Register(req model.RegisterRequest) (*model.User, error) {
	if req.Password == "" {
		return nil, ErrPasswordRequired
	}

	exists, err := s.userRepo.EmailExists(req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, ErrEmailAlreadyExists
	}

	hashedPassword, err := s.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: hashedPassword,
	}
	if err := s.userRepo.CreateUser(user); err != nil {
		return nil, err
	}

	logger.Log.WithField("user_id", user.ID).Info("User registered successfully")
	return user, nil
}

// Login verifies the credentials and, on success, issues an access/refresh
// token pair and stores the refresh token in the registry keyed by its own
// string. Unknown email and wrong password are indistinguishable to the
// caller.
func (s *AuthService) Login(email, password string) (*TokenPair, error) {
	user, err := s.userRepo.GetUserByEmail(email)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.CheckPasswordHash(password, user.Password) {
		return nil, ErrInvalidCredentials
	}

	accessToken, err := s.generateToken(user.ID, config.AppConfig.JWT.AccessSecret, accessTokenTTL)
	if err != nil {
		return nil, err
	}

	expiresAt := time.Now().Add(refreshTokenTTL)
	refreshToken, err := s.generateToken(user.ID, config.AppConfig.JWT.RefreshSecret, refreshTokenTTL)
	if err != nil {
		return nil, err
	}

	record := &model.RefreshToken{
		UserID:    user.ID,
		Token:     refreshToken,
		ExpiresAt: expiresAt,
	}
	if err := s.tokenRepo.Create(record); err != nil {
		return nil, err
	}

	logger.Log.WithField("user_id", user.ID).Info("User logged in successfully")
	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Refresh exchanges a registered, valid refresh token for a new access
// token. The registry is consulted first: a token that was logged out or
// already purged is rejected regardless of its own embedded expiry. The
// refresh token is not rotated; it stays valid until logout or expiry.
func (s *AuthService) Refresh(tokenString string) (string, error) {
	if _, err := s.tokenRepo.GetByToken(tokenString); err != nil {
		if err == sql.ErrNoRows {
			return "", ErrInvalidRefreshToken
		}
		return "", err
	}

	claims, err := s.parseToken(tokenString, config.AppConfig.JWT.RefreshSecret)
	if err != nil {
		return "", ErrInvalidRefreshToken
	}

	return s.generateToken(claims.UserID, config.AppConfig.JWT.AccessSecret, accessTokenTTL)
}

// Logout revokes a refresh token by deleting it from the registry. A second
// logout with the same token reports ErrRefreshTokenNotFound.
func (s *AuthService) Logout(tokenString string) error {
	deleted, err := s.tokenRepo.DeleteByToken(tokenString)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrRefreshTokenNotFound
	}

	logger.Log.Info("Refresh token revoked")
	return nil
}

func (s *AuthService) generateToken(userID int, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &model.AppClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(userID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        newTokenID(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		logger.Log.WithError(err).WithField("user_id", userID).Error("Failed to sign JWT")
		return "", fmt.Errorf("failed to sign token string: %w", err)
	}

	return tokenString, nil
}

func (s *AuthService) parseToken(tokenString, secret string) (*model.AppClaims, error) {
	claims := &model.AppClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenUnverifiable
	}
	return claims, nil
}

// newTokenID gives each token a random jti so two tokens issued for the
// same user within the same second still differ.
func newTokenID() string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return strconv.FormatInt(time.Now().UnixNano(), 10)
	}
	return hex.EncodeToString(buf)
}
