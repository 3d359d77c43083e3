package round

import (
	"log"

	"github.com/mlorenz/robotgame-go/internal/domain/command"
	"github.com/mlorenz/robotgame-go/internal/domain/game"
)

// minePhase drains every player's MINING queue. Mining requires the
// command's target planet to equal the robot's current planet, free
// storage on the robot and a mining level that unlocks the planet's
// resource. The mined amount is min(free storage, mining speed, resource
// remaining); the deposit disappears from the planet once exhausted.
func (r *Resolver) minePhase(rs *game.RoundState) {
	for _, name := range rs.PlayerNames() {
		player := rs.Players[name]
		for _, cmd := range player.TakeCommands(command.TypeMining) {
			payload, ok := cmd.Payload.(command.MiningPayload)
			if !ok {
				log.Printf("[mine] player %s: malformed mining payload, dropping", name)
				continue
			}
			robot, found := player.RobotByID(payload.RobotID)
			if !found {
				log.Printf("[mine] player %s: robot %s does not exist", name, payload.RobotID)
				continue
			}
			if !robot.IsAlive() {
				log.Printf("[mine] player %s: robot %s is dead and cannot mine", name, robot.ID)
				continue
			}
			if robot.Planet != payload.PlanetID {
				log.Printf("[mine] player %s: robot %s is on planet %s but the command targets %s", name, robot.ID, robot.Planet, payload.PlanetID)
				continue
			}
			planet, found := rs.Map.PlanetByID(robot.Planet)
			if !found {
				log.Printf("[mine] player %s: planet %s does not exist", name, robot.Planet)
				continue
			}
			if !planet.HasResource() {
				log.Printf("[mine] player %s: planet %s has no resources left", name, planet.ID)
				continue
			}
			if robot.InventoryFull() {
				log.Printf("[mine] player %s: robot %s has a full inventory", name, robot.ID)
				continue
			}
			if !robot.Levels.Mining.CanMine(planet.Deposit.Resource) {
				log.Printf("[mine] player %s: robot %s mining level %d cannot mine %s", name, robot.ID, robot.Levels.Mining, planet.Deposit.Resource)
				continue
			}
			capacity := robot.FreeStorage()
			if speed := robot.Levels.MiningSpeed.MiningSpeed(); speed < capacity {
				capacity = speed
			}
			resource, amount := planet.Mine(capacity)
			if amount == 0 {
				log.Printf("[mine] player %s: robot %s mined nothing on planet %s", name, robot.ID, planet.ID)
				continue
			}
			robot.AddToInventory(resource, amount)
			log.Printf("[mine] player %s: robot %s mined %d %s on planet %s", name, robot.ID, amount, resource, planet.ID)
		}
	}
}
