package round

import (
	"log"

	"github.com/mlorenz/robotgame-go/internal/domain/command"
	"github.com/mlorenz/robotgame-go/internal/domain/game"
)

// sellPhase drains every player's SELLING queue. A sale liquidates the
// robot's whole inventory at resource unit prices, crediting the player's
// money and lifetime earnings and the robot's own earnings counter.
// Dead robot, empty inventory or zero value drop the command with a
// diagnostic and no partial credit.
func (r *Resolver) sellPhase(rs *game.RoundState) {
	for _, name := range rs.PlayerNames() {
		player := rs.Players[name]
		for _, cmd := range player.TakeCommands(command.TypeSelling) {
			payload, ok := cmd.Payload.(command.SellingPayload)
			if !ok {
				log.Printf("[sell] player %s: malformed selling payload, dropping", name)
				continue
			}
			robot, found := player.RobotByID(payload.RobotID)
			if !found {
				log.Printf("[sell] player %s: robot %s does not exist", name, payload.RobotID)
				continue
			}
			if !robot.IsAlive() {
				log.Printf("[sell] player %s: robot %s is dead and cannot sell", name, robot.ID)
				continue
			}
			if robot.InventoryEmpty() {
				log.Printf("[sell] player %s: robot %s has an empty inventory", name, robot.ID)
				continue
			}
			value := robot.InventoryValue()
			if value == 0 {
				log.Printf("[sell] player %s: robot %s inventory is worthless", name, robot.ID)
				continue
			}
			robot.MoneyMade += value
			player.Credit(value)
			robot.ClearInventory()
			log.Printf("[sell] player %s: robot %s sold inventory for %d", name, robot.ID, value)
		}
	}
}
