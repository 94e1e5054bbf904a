// file: service/auth_service_test.go

package service

import (
	"database/sql"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/GuilhermeTBedin/backend-controle-financeiro/config"
	"github.com/GuilhermeTBedin/backend-controle-financeiro/logger"
	"github.com/GuilhermeTBedin/backend-controle-financeiro/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// TestMain runs setup before any tests in this package are executed.
func TestMain(m *testing.M) {
	logger.Init()
	config.AppConfig.JWT.AccessSecret = "test-access-secret"
	config.AppConfig.JWT.RefreshSecret = "test-refresh-secret"
	os.Exit(m.Run())
}

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) CreateUser(user *model.User) error {
	args := m.Called(user)
	return args.Error(0)
}
func (m *mockUserRepo) GetUserByEmail(email string) (*model.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}
func (m *mockUserRepo) EmailExists(email string) (bool, error) {
	args := m.Called(email)
	return args.Bool(0), args.Error(1)
}

type mockTokenRepo struct{ mock.Mock }

func (m *mockTokenRepo) Create(token *model.RefreshToken) error {
	args := m.Called(token)
	return args.Error(0)
}
func (m *mockTokenRepo) GetByToken(token string) (*model.RefreshToken, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RefreshToken), args.Error(1)
}
func (m *mockTokenRepo) DeleteByToken(token string) (bool, error) {
	args := m.Called(token)
	return args.Bool(0), args.Error(1)
}
func (m *mockTokenRepo) DeleteExpired() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

// TestAuthService_HashAndCheckPassword ensures that password hashing and
// verification work correctly.
func TestAuthService_HashAndCheckPassword(t *testing.T) {
	authService := NewAuthService(nil, nil)
	password := "mySecretPassword123"

	hashedPassword, err := authService.HashPassword(password)
	if err != nil {
		t.Fatalf("authService.HashPassword() returned an unexpected error: %v", err)
	}

	if hashedPassword == password {
		t.Errorf("Hashed password should not be the same as the original password.")
	}

	if !authService.CheckPasswordHash(password, hashedPassword) {
		t.Errorf("CheckPasswordHash() should have returned true for a matching password.")
	}

	if authService.CheckPasswordHash("notMyPassword", hashedPassword) {
		t.Errorf("CheckPasswordHash() should have returned false for a non-matching password.")
	}
}

func TestAuthService_Register(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		mockUsers := new(mockUserRepo)
		mockUsers.On("EmailExists", "ana@x.com").Return(false, nil).Once()
		mockUsers.On("CreateUser", mock.MatchedBy(func(u *model.User) bool {
			return u.Email == "ana@x.com" && u.Name == "Ana" && u.Password != "secret1"
		})).Return(nil).Once()

		authService := NewAuthService(mockUsers, nil)
		user, err := authService.Register(model.RegisterRequest{Name: "Ana", Email: "ana@x.com", Password: "secret1"})

		assert.NoError(t, err)
		assert.NotNil(t, user)
		mockUsers.AssertExpectations(t)
	})

	t.Run("duplicate email", func(t *testing.T) {
		mockUsers := new(mockUserRepo)
		mockUsers.On("EmailExists", "ana@x.com").Return(true, nil).Once()

		authService := NewAuthService(mockUsers, nil)
		_, err := authService.Register(model.RegisterRequest{Name: "Ana", Email: "ana@x.com", Password: "secret1"})

		assert.Equal(t, ErrEmailAlreadyExists, err)
		mockUsers.AssertNotCalled(t, "CreateUser")
	})

	t.Run("missing password", func(t *testing.T) {
		authService := NewAuthService(new(mockUserRepo), nil)
		_, err := authService.Register(model.RegisterRequest{Name: "Ana", Email: "ana@x.com"})

		assert.Equal(t, ErrPasswordRequired, err)
	})
}

func TestAuthService_Login(t *testing.T) {
	authService := NewAuthService(nil, nil)
	hashed, err := authService.HashPassword("secret1")
	assert.NoError(t, err)

	user := &model.User{ID: 7, Name: "Ana", Email: "ana@x.com", Password: hashed}

	t.Run("success issues pair and registers refresh token", func(t *testing.T) {
		mockUsers := new(mockUserRepo)
		mockTokens := new(mockTokenRepo)
		mockUsers.On("GetUserByEmail", "ana@x.com").Return(user, nil).Once()

		var stored *model.RefreshToken
		mockTokens.On("Create", mock.AnythingOfType("*model.RefreshToken")).Run(func(args mock.Arguments) {
			stored = args.Get(0).(*model.RefreshToken)
		}).Return(nil).Once()

		svc := NewAuthService(mockUsers, mockTokens)
		pair, err := svc.Login("ana@x.com", "secret1")

		assert.NoError(t, err)
		assert.NotEmpty(t, pair.AccessToken)
		assert.NotEmpty(t, pair.RefreshToken)
		assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)

		// The registry row is keyed by the issued refresh token string.
		assert.Equal(t, pair.RefreshToken, stored.Token)
		assert.Equal(t, user.ID, stored.UserID)
		assert.WithinDuration(t, time.Now().Add(refreshTokenTTL), stored.ExpiresAt, time.Minute)

		claims, err := svc.parseToken(pair.AccessToken, config.AppConfig.JWT.AccessSecret)
		assert.NoError(t, err)
		assert.Equal(t, user.ID, claims.UserID)
		assert.Equal(t, strconv.Itoa(user.ID), claims.Subject)

		mockUsers.AssertExpectations(t)
		mockTokens.AssertExpectations(t)
	})

	t.Run("unknown email and wrong password are indistinguishable", func(t *testing.T) {
		mockUsers := new(mockUserRepo)
		mockUsers.On("GetUserByEmail", "ghost@x.com").Return(nil, sql.ErrNoRows).Once()
		mockUsers.On("GetUserByEmail", "ana@x.com").Return(user, nil).Once()

		svc := NewAuthService(mockUsers, new(mockTokenRepo))

		_, errUnknown := svc.Login("ghost@x.com", "secret1")
		_, errWrongPassword := svc.Login("ana@x.com", "wrong-password")

		assert.Equal(t, ErrInvalidCredentials, errUnknown)
		assert.Equal(t, ErrInvalidCredentials, errWrongPassword)
	})
}

func TestAuthService_TokenRoundTrip(t *testing.T) {
	svc := NewAuthService(nil, nil)

	t.Run("access token verifies against access secret", func(t *testing.T) {
		token, err := svc.generateToken(42, config.AppConfig.JWT.AccessSecret, accessTokenTTL)
		assert.NoError(t, err)

		claims, err := svc.parseToken(token, config.AppConfig.JWT.AccessSecret)
		assert.NoError(t, err)
		assert.Equal(t, 42, claims.UserID)
	})

	t.Run("token never verifies against the other class's secret", func(t *testing.T) {
		token, err := svc.generateToken(42, config.AppConfig.JWT.AccessSecret, accessTokenTTL)
		assert.NoError(t, err)

		_, err = svc.parseToken(token, config.AppConfig.JWT.RefreshSecret)
		assert.Error(t, err)
	})

	t.Run("expired token fails verification", func(t *testing.T) {
		token, err := svc.generateToken(42, config.AppConfig.JWT.AccessSecret, -time.Minute)
		assert.NoError(t, err)

		_, err = svc.parseToken(token, config.AppConfig.JWT.AccessSecret)
		assert.Error(t, err)
	})

	t.Run("two tokens for the same user differ", func(t *testing.T) {
		first, err := svc.generateToken(42, config.AppConfig.JWT.AccessSecret, accessTokenTTL)
		assert.NoError(t, err)
		second, err := svc.generateToken(42, config.AppConfig.JWT.AccessSecret, accessTokenTTL)
		assert.NoError(t, err)
		assert.NotEqual(t, first, second)
	})
}

func TestAuthService_Refresh(t *testing.T) {
	svc := NewAuthService(nil, nil)

	refreshToken, err := svc.generateToken(7, config.AppConfig.JWT.RefreshSecret, refreshTokenTTL)
	assert.NoError(t, err)

	record := &model.RefreshToken{ID: 1, UserID: 7, Token: refreshToken, ExpiresAt: time.Now().Add(refreshTokenTTL)}

	t.Run("success issues a new access token without rotating", func(t *testing.T) {
		mockTokens := new(mockTokenRepo)
		mockTokens.On("GetByToken", refreshToken).Return(record, nil).Once()

		authService := NewAuthService(nil, mockTokens)
		accessToken, err := authService.Refresh(refreshToken)

		assert.NoError(t, err)
		claims, err := authService.parseToken(accessToken, config.AppConfig.JWT.AccessSecret)
		assert.NoError(t, err)
		assert.Equal(t, 7, claims.UserID)

		// The presented refresh token stays registered.
		mockTokens.AssertNotCalled(t, "DeleteByToken")
		mockTokens.AssertExpectations(t)
	})

	t.Run("revoked token is rejected before its embedded expiry", func(t *testing.T) {
		mockTokens := new(mockTokenRepo)
		mockTokens.On("GetByToken", refreshToken).Return(nil, sql.ErrNoRows).Once()

		authService := NewAuthService(nil, mockTokens)
		_, err := authService.Refresh(refreshToken)

		assert.Equal(t, ErrInvalidRefreshToken, err)
	})

	t.Run("token signed with the access secret is rejected", func(t *testing.T) {
		forged, err := svc.generateToken(7, config.AppConfig.JWT.AccessSecret, refreshTokenTTL)
		assert.NoError(t, err)

		mockTokens := new(mockTokenRepo)
		mockTokens.On("GetByToken", forged).Return(&model.RefreshToken{UserID: 7, Token: forged}, nil).Once()

		authService := NewAuthService(nil, mockTokens)
		_, err = authService.Refresh(forged)

		assert.Equal(t, ErrInvalidRefreshToken, err)
	})
}

func TestAuthService_Logout(t *testing.T) {
	t.Run("success deletes the registry row", func(t *testing.T) {
		mockTokens := new(mockTokenRepo)
		mockTokens.On("DeleteByToken", "some-token").Return(true, nil).Once()

		authService := NewAuthService(nil, mockTokens)
		assert.NoError(t, authService.Logout("some-token"))
		mockTokens.AssertExpectations(t)
	})

	t.Run("second logout with the same token reports not found", func(t *testing.T) {
		mockTokens := new(mockTokenRepo)
		mockTokens.On("DeleteByToken", "some-token").Return(true, nil).Once()
		mockTokens.On("DeleteByToken", "some-token").Return(false, nil).Once()

		authService := NewAuthService(nil, mockTokens)
		assert.NoError(t, authService.Logout("some-token"))
		assert.Equal(t, ErrRefreshTokenNotFound, authService.Logout("some-token"))
	})
}
