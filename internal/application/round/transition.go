package round

import (
	"log"

	"github.com/mlorenz/robotgame-go/internal/domain/command"
	"github.com/mlorenz/robotgame-go/internal/domain/game"
)

// transition performs the round transition after the pipeline has run.
//
// The elimination rule is checked first: with at least two participants,
// if all but at most one player can no longer act (no living robots and
// not enough money for the cheapest robot), the round counter is treated
// as having reached the round limit. Then the transition rule proper: if
// the current round is below the limit the post-resolution snapshot is
// appended under the next round number; otherwise the game ends and the
// round does not advance. The pre-resolution snapshot was never mutated,
// so history stays intact under its original round number either way.
func (r *Resolver) transition(g *game.Game, work *game.RoundState) (*Result, error) {
	resolvedRound := g.CurrentRound

	effectiveRound := g.CurrentRound
	if eliminationReached(work) {
		log.Printf("[game %s] elimination rule triggered in round %d, forcing final round", g.ID, resolvedRound)
		effectiveRound = g.MaxRounds
	}

	if effectiveRound < g.MaxRounds {
		work.Round = g.CurrentRound + 1
		if err := g.AppendRound(work); err != nil {
			return nil, err
		}
		log.Printf("[game %s] round %d resolved, now in round %d", g.ID, resolvedRound, g.CurrentRound)
		return &Result{ResolvedRound: resolvedRound, NewRound: g.CurrentRound}, nil
	}

	if err := g.End(); err != nil {
		return nil, err
	}
	log.Printf("[game %s] round %d resolved, game ended after %d rounds", g.ID, resolvedRound, g.CurrentRound)
	return &Result{ResolvedRound: resolvedRound, NewRound: g.CurrentRound, GameEnded: true}, nil
}

// eliminationReached reports whether at most one player can still act:
// a player is out when they own no living robot and cannot afford the
// cheapest robot purchase. Single-player games never eliminate.
func eliminationReached(rs *game.RoundState) bool {
	if len(rs.Players) < 2 {
		return false
	}
	playersAbleToAct := 0
	for _, name := range rs.PlayerNames() {
		player := rs.Players[name]
		if player.AliveRobotCount() > 0 || player.Money >= command.RobotPrice {
			playersAbleToAct++
		}
	}
	return playersAbleToAct <= 1
}
