package round

import (
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/mlorenz/robotgame-go/internal/domain/game"
	"github.com/mlorenz/robotgame-go/internal/domain/shared"
	"github.com/mlorenz/robotgame-go/internal/domain/world"
)

// Resolver runs the phased resolution pipeline over one ready round.
//
// The pipeline operates on a clone of the current round state and runs the
// six phases in fixed order: Sell → Buy → Move → Battle → Mine →
// Regenerate. The order is a correctness property, not an implementation
// detail: selling funds buying, buying precedes battle so upgrades only
// ever raise levels between the battle energy check and its debit, and the
// dead-robot purge after battle keeps corpses out of mining and
// regeneration.
type Resolver struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewResolver creates a resolver. A nil rng gets a time-seeded source;
// tests inject a fixed seed for deterministic robot placement. One
// resolver serves all games: the per-game lock only serializes requests
// for the same game, so the rng source is guarded here.
func NewResolver(rng *rand.Rand) *Resolver {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Resolver{rng: rng}
}

// randomPlanetID draws a spawn planet from the map index. math/rand
// sources are not safe for concurrent use.
func (r *Resolver) randomPlanetID(m *world.GameMap) shared.PlanetID {
	r.mu.Lock()
	defer r.mu.Unlock()
	return m.RandomPlanetID(r.rng)
}

// Result describes the outcome of one resolution run
type Result struct {
	ResolvedRound int  // the round number that was resolved
	NewRound      int  // the round number now current
	GameEnded     bool // true when the transition ended the game
}

// Resolve runs the pipeline once over all players' queued commands and
// performs the round transition. The pre-resolution snapshot stays
// untouched in the history under its original round number; the
// post-resolution snapshot is appended under the new round number unless
// the game ends.
func (r *Resolver) Resolve(g *game.Game) (*Result, error) {
	current := g.CurrentState()
	work := current.Clone()

	log.Printf("[game %s] resolving round %d with %d players", g.ID, current.Round, len(work.Players))

	r.sellPhase(work)
	r.buyPhase(work)
	r.movePhase(work)
	r.battlePhase(work)
	r.minePhase(work)
	r.regeneratePhase(work)

	return r.transition(g, work)
}
