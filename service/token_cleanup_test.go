package service

import (
	"errors"
	"testing"
)

func TestTokenCleanup_Sweep(t *testing.T) {
	t.Run("purges expired tokens", func(t *testing.T) {
		mockTokens := new(mockTokenRepo)
		mockTokens.On("DeleteExpired").Return(int64(3), nil).Once()

		cleanup := NewTokenCleanup(mockTokens)
		cleanup.sweep()

		mockTokens.AssertExpectations(t)
	})

	t.Run("repository error does not panic", func(t *testing.T) {
		mockTokens := new(mockTokenRepo)
		mockTokens.On("DeleteExpired").Return(int64(0), errors.New("db down")).Once()

		cleanup := NewTokenCleanup(mockTokens)
		cleanup.sweep()

		mockTokens.AssertExpectations(t)
	})
}
