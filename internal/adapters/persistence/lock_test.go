package persistence_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlorenz/robotgame-go/internal/adapters/persistence"
	"github.com/mlorenz/robotgame-go/internal/domain/shared"
	"github.com/mlorenz/robotgame-go/test/helpers"
)

func testLockConfig() persistence.LockConfig {
	return persistence.LockConfig{
		LeaseDuration:  10 * time.Second,
		InitialBackoff: 100 * time.Millisecond,
		MaxBackoff:     time.Second,
		MaxWait:        5 * time.Second,
	}
}

func TestGameLock_AcquireAndRelease(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	clock := shared.NewMockClock(time.Time{})
	lock := persistence.NewGormGameLock(db, clock, testLockConfig())
	gameID := shared.NewGameID()

	// Act / Assert
	require.NoError(t, lock.Acquire(context.Background(), gameID))
	require.NoError(t, lock.Release(context.Background(), gameID))
	require.NoError(t, lock.Acquire(context.Background(), gameID))
}

func TestGameLock_ContenderTimesOut(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	clock := shared.NewMockClock(time.Time{})
	config := testLockConfig()
	// Lease outlives MaxWait so the holder never looks abandoned while the
	// contender waits.
	config.LeaseDuration = time.Hour

	holder := persistence.NewGormGameLock(db, clock, config)
	contender := persistence.NewGormGameLock(db, clock, config)
	gameID := shared.NewGameID()

	require.NoError(t, holder.Acquire(context.Background(), gameID))

	// Act
	err := contender.Acquire(context.Background(), gameID)

	// Assert
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timed out")
}

func TestGameLock_ExpiredLeaseIsTakenOver(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	clock := shared.NewMockClock(time.Time{})
	config := testLockConfig()

	crashed := persistence.NewGormGameLock(db, clock, config)
	contender := persistence.NewGormGameLock(db, clock, config)
	gameID := shared.NewGameID()

	require.NoError(t, crashed.Acquire(context.Background(), gameID))
	clock.Advance(config.LeaseDuration + time.Second)

	// Act
	err := contender.Acquire(context.Background(), gameID)

	// Assert
	require.NoError(t, err)
}

func TestGameLock_ReleaseOnlyDropsOwnClaim(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	clock := shared.NewMockClock(time.Time{})
	config := testLockConfig()
	config.LeaseDuration = time.Hour

	holder := persistence.NewGormGameLock(db, clock, config)
	other := persistence.NewGormGameLock(db, clock, config)
	gameID := shared.NewGameID()

	require.NoError(t, holder.Acquire(context.Background(), gameID))

	// Act: a non-holder releasing is a no-op
	require.NoError(t, other.Release(context.Background(), gameID))

	// Assert: the claim still stands
	err := other.Acquire(context.Background(), gameID)
	require.Error(t, err)

	// Different games do not contend
	require.NoError(t, other.Acquire(context.Background(), shared.NewGameID()))
}

func TestGameLock_CancelledContextAborts(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	clock := shared.NewMockClock(time.Time{})
	config := testLockConfig()
	config.LeaseDuration = time.Hour

	holder := persistence.NewGormGameLock(db, clock, config)
	contender := persistence.NewGormGameLock(db, clock, config)
	gameID := shared.NewGameID()

	require.NoError(t, holder.Acquire(context.Background(), gameID))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Act
	err := contender.Acquire(ctx, gameID)

	// Assert
	require.Error(t, err)
}
