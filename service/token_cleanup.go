package service

import (
	"github.com/GuilhermeTBedin/backend-controle-financeiro/logger"
	"github.com/GuilhermeTBedin/backend-controle-financeiro/repository"

	"github.com/robfig/cron/v3"
)

// TokenCleanup periodically deletes expired refresh-token rows. The registry
// query already excludes expired rows, so the sweep only reclaims storage;
// its timing gives a soft real-time guarantee, not an exact one.
type TokenCleanup struct {
	tokenRepo repository.ITokenRepository
	cron      *cron.Cron
}

func NewTokenCleanup(tokenRepo repository.ITokenRepository) *TokenCleanup {
	return &TokenCleanup{
		tokenRepo: tokenRepo,
		cron:      cron.New(),
	}
}

// Start schedules the hourly sweep and runs one pass immediately so a
// restarted process does not wait an hour to reclaim old rows.
func (c *TokenCleanup) Start() error {
	if _, err := c.cron.AddFunc("@hourly", c.sweep); err != nil {
		return err
	}
	c.cron.Start()

	go c.sweep()
	return nil
}

// Stop halts the scheduler. A sweep already in flight finishes on its own.
func (c *TokenCleanup) Stop() {
	c.cron.Stop()
}

func (c *TokenCleanup) sweep() {
	deleted, err := c.tokenRepo.DeleteExpired()
	if err != nil {
		logger.Log.WithError(err).Error("Failed to purge expired refresh tokens")
		return
	}
	if deleted > 0 {
		logger.Log.WithField("deleted", deleted).Info("Purged expired refresh tokens")
	}
}
