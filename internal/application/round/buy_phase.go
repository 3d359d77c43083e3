package round

import (
	"log"

	"github.com/mlorenz/robotgame-go/internal/domain/command"
	"github.com/mlorenz/robotgame-go/internal/domain/game"
	"github.com/mlorenz/robotgame-go/internal/domain/shared"
	"github.com/mlorenz/robotgame-go/internal/domain/world"
)

// buyPhase drains every player's BUYING queue. Item names parse to either
// a robot purchase, a stat upgrade or a restore. Insufficient money drops
// the command with a diagnostic and no partial spend. New robots spawn on
// planets chosen uniformly at random from the full map index, with no
// adjacency or ownership constraint.
func (r *Resolver) buyPhase(rs *game.RoundState) {
	for _, name := range rs.PlayerNames() {
		player := rs.Players[name]
		for _, cmd := range player.TakeCommands(command.TypeBuying) {
			payload, ok := cmd.Payload.(command.BuyingPayload)
			if !ok {
				log.Printf("[buy] player %s: malformed buying payload, dropping", name)
				continue
			}
			order, err := command.ParseItem(payload.ItemName)
			if err != nil {
				log.Printf("[buy] player %s: %v", name, err)
				continue
			}
			switch order.Kind {
			case command.OrderRobot:
				r.buyRobots(rs, player, payload, order)
			case command.OrderUpgrade:
				r.buyUpgrade(player, payload, order)
			case command.OrderRestore:
				r.buyRestore(player, payload, order)
			}
		}
	}
}

func (r *Resolver) buyRobots(rs *game.RoundState, player *game.PlayerState, payload command.BuyingPayload, order command.Order) {
	quantity := payload.Quantity
	if quantity <= 0 {
		quantity = 1
	}
	cost := order.UnitPrice() * quantity
	if player.Money < cost {
		log.Printf("[buy] player %s: %d robots cost %d but only %d available", player.Name, quantity, cost, player.Money)
		return
	}
	player.Debit(cost)
	for i := 0; i < quantity; i++ {
		planet := r.randomPlanetID(rs.Map)
		robot := world.NewRobot(shared.NewRobotID(), planet)
		player.AddRobot(robot)
		player.Visit(planet)
		log.Printf("[buy] player %s: robot %s spawned on planet %s", player.Name, robot.ID, planet)
	}
}

func (r *Resolver) buyUpgrade(player *game.PlayerState, payload command.BuyingPayload, order command.Order) {
	robot, found := player.RobotByID(payload.RobotID)
	if !found {
		log.Printf("[buy] player %s: robot %s does not exist", player.Name, payload.RobotID)
		return
	}
	if !robot.IsAlive() {
		log.Printf("[buy] player %s: robot %s is dead and cannot be upgraded", player.Name, robot.ID)
		return
	}
	cost := order.UnitPrice()
	if player.Money < cost {
		log.Printf("[buy] player %s: upgrade %s costs %d but only %d available", player.Name, payload.ItemName, cost, player.Money)
		return
	}
	// Strict monotonicity is enforced by the robot; no refund semantics
	// needed because the debit happens after the upgrade succeeds.
	if err := robot.Upgrade(order.Stat, order.TargetLevel); err != nil {
		log.Printf("[buy] player %s: %v", player.Name, err)
		return
	}
	player.Debit(cost)
	log.Printf("[buy] player %s: robot %s upgraded %s to level %d", player.Name, robot.ID, order.Stat, order.TargetLevel)
}

func (r *Resolver) buyRestore(player *game.PlayerState, payload command.BuyingPayload, order command.Order) {
	robot, found := player.RobotByID(payload.RobotID)
	if !found {
		log.Printf("[buy] player %s: robot %s does not exist", player.Name, payload.RobotID)
		return
	}
	if !robot.IsAlive() {
		log.Printf("[buy] player %s: robot %s is dead and cannot be restored", player.Name, robot.ID)
		return
	}
	cost := order.UnitPrice()
	if player.Money < cost {
		log.Printf("[buy] player %s: restore %s costs %d but only %d available", player.Name, payload.ItemName, cost, player.Money)
		return
	}
	player.Debit(cost)
	switch order.RestoreStat {
	case world.StatHealth:
		robot.RestoreHealth()
	case world.StatEnergy:
		robot.RestoreEnergy()
	}
	log.Printf("[buy] player %s: robot %s restored %s", player.Name, robot.ID, order.RestoreStat)
}
