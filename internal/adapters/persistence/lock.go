package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mlorenz/robotgame-go/internal/domain/shared"
)

// LockConfig tunes the lease lock's lease length and acquisition backoff
type LockConfig struct {
	LeaseDuration  time.Duration
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	MaxWait        time.Duration
}

// DefaultLockConfig returns the production lock tuning
func DefaultLockConfig() LockConfig {
	return LockConfig{
		LeaseDuration:  30 * time.Second,
		InitialBackoff: 250 * time.Millisecond,
		MaxBackoff:     2 * time.Second,
		MaxWait:        60 * time.Second,
	}
}

// GormGameLock implements game.Lock with a lock table and a lease. Claiming
// inserts the game's row if absent; losing the insert race means someone
// else holds the lock and the caller backs off and retries. Rows whose
// lease expired are treated as abandoned and taken over, so a crashed
// holder cannot block a game forever.
type GormGameLock struct {
	db     *gorm.DB
	clock  shared.Clock
	config LockConfig
	owner  string
}

// NewGormGameLock creates a lock manager with its own owner identity
func NewGormGameLock(db *gorm.DB, clock shared.Clock, config LockConfig) *GormGameLock {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &GormGameLock{
		db:     db,
		clock:  clock,
		config: config,
		owner:  uuid.NewString(),
	}
}

// Acquire claims the game's lock row, retrying with exponential backoff
// until it succeeds, the context is cancelled or MaxWait elapses
func (l *GormGameLock) Acquire(ctx context.Context, id shared.GameID) error {
	deadline := l.clock.Now().Add(l.config.MaxWait)
	backoff := l.config.InitialBackoff

	for {
		claimed, err := l.tryClaim(ctx, id)
		if err != nil {
			return err
		}
		if claimed {
			return nil
		}
		if l.clock.Now().Add(backoff).After(deadline) {
			return fmt.Errorf("timed out acquiring lock for game %s after %s", id, l.config.MaxWait)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		l.clock.Sleep(backoff)
		backoff *= 2
		if backoff > l.config.MaxBackoff {
			backoff = l.config.MaxBackoff
		}
	}
}

// tryClaim attempts one non-blocking claim of the lock row
func (l *GormGameLock) tryClaim(ctx context.Context, id shared.GameID) (bool, error) {
	now := l.clock.Now()

	// Clear an abandoned claim first; the insert below then races fairly.
	expired := l.db.WithContext(ctx).
		Where("game_id = ? AND expires_at < ?", id.String(), now).
		Delete(&GameLockModel{})
	if expired.Error != nil {
		return false, fmt.Errorf("failed to clear expired lock: %w", expired.Error)
	}

	row := &GameLockModel{
		GameID:    id.String(),
		Owner:     l.owner,
		ExpiresAt: now.Add(l.config.LeaseDuration),
	}
	result := l.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(row)
	if result.Error != nil {
		return false, fmt.Errorf("failed to claim lock: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// Release drops the claim unconditionally
func (l *GormGameLock) Release(ctx context.Context, id shared.GameID) error {
	result := l.db.WithContext(ctx).
		Where("game_id = ? AND owner = ?", id.String(), l.owner).
		Delete(&GameLockModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to release lock: %w", result.Error)
	}
	return nil
}
