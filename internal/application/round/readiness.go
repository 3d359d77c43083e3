package round

import (
	"github.com/mlorenz/robotgame-go/internal/domain/command"
	"github.com/mlorenz/robotgame-go/internal/domain/game"
	"github.com/mlorenz/robotgame-go/internal/domain/shared"
)

// roundReady reports whether every participating player has supplied enough
// commands for the round to resolve. A single unready player blocks
// resolution indefinitely; timeouts belong to the calling boundary.
func roundReady(rs *game.RoundState) bool {
	for _, name := range rs.PlayerNames() {
		if !playerReady(rs.Players[name]) {
			return false
		}
	}
	return len(rs.Players) > 0
}

// playerReady implements the robot-coverage readiness rule:
//   - the player must have submitted at least one command of any type, and
//   - a player with no robots must have queued at least one BUYING command,
//   - a player with robots must reference every robot they own somewhere in
//     their queued commands (via the payload robot-id field).
func playerReady(p *game.PlayerState) bool {
	if !p.HasQueuedCommands() {
		return false
	}

	if len(p.Robots) == 0 {
		return len(p.Commands[command.TypeBuying]) > 0
	}

	referenced := make(map[shared.RobotID]bool)
	for _, typ := range command.Types() {
		for _, cmd := range p.Commands[typ] {
			if id, ok := cmd.RobotID(); ok {
				referenced[id] = true
			}
		}
	}
	for id := range p.Robots {
		if !referenced[id] {
			return false
		}
	}
	return true
}
