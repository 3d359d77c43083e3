package game

import (
	"context"

	"github.com/mlorenz/robotgame-go/internal/domain/shared"
	"github.com/mlorenz/robotgame-go/internal/domain/world"
)

// Repository is the keyed persistence store for game records. Records are
// read and written whole; there are no partial updates.
type Repository interface {
	FindByID(ctx context.Context, id shared.GameID) (*Game, error)
	Save(ctx context.Context, g *Game) error
	Delete(ctx context.Context, id shared.GameID) error
	ListIDs(ctx context.Context) ([]shared.GameID, error)
}

// Lock is the per-game advisory lock serializing mutating operations.
// Acquire blocks (bounded backoff) until the game's advisory key can be
// claimed, then holds it under a lease; Release drops the claim
// unconditionally. The lock is advisory: it does not roll back writes made
// inside a failed critical section.
type Lock interface {
	Acquire(ctx context.Context, id shared.GameID) error
	Release(ctx context.Context, id shared.GameID) error
}

// WorldProvider produces the initial world snapshot for a new game.
// The engine treats the result as opaque input and does not re-validate
// its topology.
type WorldProvider interface {
	NewWorld(size int) (*world.GameMap, error)
}
