package round

import (
	"log"

	"github.com/mlorenz/robotgame-go/internal/domain/command"
	"github.com/mlorenz/robotgame-go/internal/domain/game"
)

// movePhase drains every player's MOVEMENT queue. A move requires a living
// robot, a target that is a graph neighbor of the robot's current planet
// and enough energy to cover the current planet's movement difficulty.
// Successful moves debit that difficulty and extend the player's visited
// set; any failed precondition drops the command with a diagnostic.
func (r *Resolver) movePhase(rs *game.RoundState) {
	for _, name := range rs.PlayerNames() {
		player := rs.Players[name]
		for _, cmd := range player.TakeCommands(command.TypeMovement) {
			payload, ok := cmd.Payload.(command.MovementPayload)
			if !ok {
				log.Printf("[move] player %s: malformed movement payload, dropping", name)
				continue
			}
			robot, found := player.RobotByID(payload.RobotID)
			if !found {
				log.Printf("[move] player %s: robot %s does not exist", name, payload.RobotID)
				continue
			}
			if robot.Planet == payload.PlanetID {
				log.Printf("[move] player %s: robot %s is already on planet %s", name, robot.ID, payload.PlanetID)
				continue
			}
			current, found := rs.Map.PlanetByID(robot.Planet)
			if !found {
				log.Printf("[move] player %s: robot %s is on unknown planet %s", name, robot.ID, robot.Planet)
				continue
			}
			if !current.IsNeighbour(payload.PlanetID) {
				log.Printf("[move] player %s: planet %s is not a neighbour of %s", name, payload.PlanetID, robot.Planet)
				continue
			}
			if err := robot.MoveTo(payload.PlanetID, current.MovementDifficulty); err != nil {
				log.Printf("[move] player %s: %v", name, err)
				continue
			}
			if player.Visit(payload.PlanetID) {
				log.Printf("[move] player %s discovered planet %s", name, payload.PlanetID)
			}
		}
	}
}
