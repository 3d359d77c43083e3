package round

import (
	"log"

	"github.com/mlorenz/robotgame-go/internal/domain/command"
	"github.com/mlorenz/robotgame-go/internal/domain/game"
)

// regeneratePhase drains every player's REGENERATE queue. Living robots
// regain their regen-per-level amount up to the energy ceiling; dead
// robots are skipped with a diagnostic (their commands are normally purged
// after battle already).
func (r *Resolver) regeneratePhase(rs *game.RoundState) {
	for _, name := range rs.PlayerNames() {
		player := rs.Players[name]
		for _, cmd := range player.TakeCommands(command.TypeRegenerate) {
			payload, ok := cmd.Payload.(command.RegeneratePayload)
			if !ok {
				log.Printf("[regen] player %s: malformed regenerate payload, dropping", name)
				continue
			}
			robot, found := player.RobotByID(payload.RobotID)
			if !found {
				log.Printf("[regen] player %s: robot %s does not exist", name, payload.RobotID)
				continue
			}
			if err := robot.Regenerate(); err != nil {
				log.Printf("[regen] player %s: %v", name, err)
				continue
			}
			log.Printf("[regen] player %s: robot %s regenerated to %d energy", name, robot.ID, robot.Energy)
		}
	}
}
