package steps

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/cucumber/godog"
	"gorm.io/gorm"

	"github.com/mlorenz/robotgame-go/internal/adapters/persistence"
	"github.com/mlorenz/robotgame-go/internal/application/round"
	"github.com/mlorenz/robotgame-go/internal/domain/command"
	domain "github.com/mlorenz/robotgame-go/internal/domain/game"
	"github.com/mlorenz/robotgame-go/internal/domain/shared"
	"github.com/mlorenz/robotgame-go/internal/domain/world"
	"github.com/mlorenz/robotgame-go/internal/infrastructure/database"
)

type roundResolutionContext struct {
	db       *gorm.DB
	games    *persistence.GormGameRepository
	handler  *round.SubmitCommandsHandler
	game     *domain.Game
	response *round.SubmitCommandsResponse
	err      error
}

func (ctx *roundResolutionContext) reset() error {
	db, err := database.NewTestConnection()
	if err != nil {
		return fmt.Errorf("failed to open test database: %w", err)
	}
	ctx.db = db
	ctx.games = persistence.NewGormGameRepository(db)
	lock := persistence.NewGormGameLock(db, shared.NewMockClock(time.Time{}), persistence.DefaultLockConfig())
	resolver := round.NewResolver(rand.New(rand.NewSource(1)))
	ctx.handler = round.NewSubmitCommandsHandler(ctx.games, lock, resolver)
	ctx.game = nil
	ctx.response = nil
	ctx.err = nil
	return nil
}

// twoPlanetWorld builds the fixed test world: p1 (difficulty 1, 50 COAL)
// and p2 (difficulty 2) are mutual neighbors.
func twoPlanetWorld() *world.GameMap {
	p1 := world.NewPlanet("p1", 1)
	p2 := world.NewPlanet("p2", 2)
	p1.Neighbours[world.DirectionEast] = "p2"
	p2.Neighbours[world.DirectionWest] = "p1"
	p1.Deposit = &world.Deposit{Resource: world.ResourceCoal, Amount: 50}
	return world.NewGameMap(
		map[shared.PlanetID]*world.Planet{"p1": p1, "p2": p2},
		map[shared.PlanetID]world.Coordinate{"p1": {X: 0, Y: 0}, "p2": {X: 1, Y: 0}},
	)
}

func (ctx *roundResolutionContext) save() error {
	return ctx.games.Save(context.Background(), ctx.game)
}

func (ctx *roundResolutionContext) player(name string) (*domain.PlayerState, error) {
	p, ok := ctx.game.CurrentState().Player(name)
	if !ok {
		return nil, fmt.Errorf("player %q not found", name)
	}
	return p, nil
}

func (ctx *roundResolutionContext) robot(id string) (*world.Robot, error) {
	robot, _, found := ctx.game.CurrentState().FindRobot(shared.RobotID(id))
	if !found {
		return nil, fmt.Errorf("robot %q not found", id)
	}
	return robot, nil
}

func (ctx *roundResolutionContext) reload() error {
	g, err := ctx.games.FindByID(context.Background(), ctx.game.ID)
	if err != nil {
		return err
	}
	ctx.game = g
	return nil
}

// Given steps

func (ctx *roundResolutionContext) aStartedGameWithPlayers(first, second string) error {
	ctx.game = domain.NewGame(shared.NewGameID(), 10, 4, twoPlanetWorld())
	for _, name := range []string{first, second} {
		if name == "" {
			continue
		}
		if err := ctx.game.AddPlayer(name, 500); err != nil {
			return err
		}
	}
	if err := ctx.game.Start(); err != nil {
		return err
	}
	return ctx.save()
}

func (ctx *roundResolutionContext) aStartedGameWithOnePlayer(name string) error {
	return ctx.aStartedGameWithPlayers(name, "")
}

func (ctx *roundResolutionContext) addRobot(owner, id, planet string, configure func(*world.Robot) error) error {
	player, err := ctx.player(owner)
	if err != nil {
		return err
	}
	robot := world.NewRobot(shared.RobotID(id), shared.PlanetID(planet))
	if configure != nil {
		if err := configure(robot); err != nil {
			return err
		}
	}
	player.AddRobot(robot)
	player.Visit(robot.Planet)
	return ctx.save()
}

func (ctx *roundResolutionContext) ownsARobotOnPlanet(owner, id, planet string) error {
	return ctx.addRobot(owner, id, planet, nil)
}

func (ctx *roundResolutionContext) ownsAnAttacker(owner, id, planet string, damageLevel, energyLevel int) error {
	return ctx.addRobot(owner, id, planet, func(r *world.Robot) error {
		if err := r.Upgrade(world.StatDamage, world.Level(damageLevel)); err != nil {
			return err
		}
		if err := r.Upgrade(world.StatEnergy, world.Level(energyLevel)); err != nil {
			return err
		}
		r.RestoreEnergy()
		return nil
	})
}

func (ctx *roundResolutionContext) ownsADefender(owner, id, planet string, healthLevel int) error {
	return ctx.addRobot(owner, id, planet, func(r *world.Robot) error {
		if err := r.Upgrade(world.StatHealth, world.Level(healthLevel)); err != nil {
			return err
		}
		r.RestoreHealth()
		return nil
	})
}

func (ctx *roundResolutionContext) ownsAMiner(owner, id, planet string, speedLevel int) error {
	return ctx.addRobot(owner, id, planet, func(r *world.Robot) error {
		return r.Upgrade(world.StatMiningSpeed, world.Level(speedLevel))
	})
}

func (ctx *roundResolutionContext) ownsACarrier(owner, id, planet string, amount int) error {
	return ctx.addRobot(owner, id, planet, func(r *world.Robot) error {
		r.AddToInventory(world.ResourceCoal, amount)
		return nil
	})
}

func (ctx *roundResolutionContext) playerStartsWithMoney(name string, money int) error {
	player, err := ctx.player(name)
	if err != nil {
		return err
	}
	player.Money = money
	return ctx.save()
}

// When steps

func (ctx *roundResolutionContext) submit(player string, commands ...command.Command) error {
	response, err := ctx.handler.Handle(context.Background(), &round.SubmitCommandsCommand{
		GameID:     ctx.game.ID,
		PlayerName: player,
		Commands:   commands,
	})
	ctx.err = err
	if err != nil {
		return nil
	}
	ctx.response = response.(*round.SubmitCommandsResponse)
	return ctx.reload()
}

func (ctx *roundResolutionContext) submitsABuyingCommand(player, item string) error {
	return ctx.submit(player, command.Command{
		Type:    command.TypeBuying,
		Payload: command.BuyingPayload{ItemName: item},
	})
}

func (ctx *roundResolutionContext) submitsABattleCommand(player, attacker, target string) error {
	return ctx.submit(player, command.Command{
		Type:    command.TypeBattle,
		Payload: command.BattlePayload{RobotID: shared.RobotID(attacker), TargetID: shared.RobotID(target)},
	})
}

func (ctx *roundResolutionContext) submitsARegenerateCommand(player, robot string) error {
	return ctx.submit(player, command.Command{
		Type:    command.TypeRegenerate,
		Payload: command.RegeneratePayload{RobotID: shared.RobotID(robot)},
	})
}

func (ctx *roundResolutionContext) submitsAMiningCommand(player, robot, planet string) error {
	return ctx.submit(player, command.Command{
		Type:    command.TypeMining,
		Payload: command.MiningPayload{RobotID: shared.RobotID(robot), PlanetID: shared.PlanetID(planet)},
	})
}

func (ctx *roundResolutionContext) submitsASellingCommand(player, robot string) error {
	return ctx.submit(player, command.Command{
		Type:    command.TypeSelling,
		Payload: command.SellingPayload{RobotID: shared.RobotID(robot)},
	})
}

// Then steps

func (ctx *roundResolutionContext) theSubmissionIsParkedAs(status string) error {
	if ctx.err != nil {
		return fmt.Errorf("submission failed: %w", ctx.err)
	}
	if ctx.response.Status != status {
		return fmt.Errorf("expected status %s, got %s", status, ctx.response.Status)
	}
	return nil
}

func (ctx *roundResolutionContext) theSubmissionResolvesRound(expected int) error {
	if ctx.err != nil {
		return fmt.Errorf("submission failed: %w", ctx.err)
	}
	if ctx.response.Status != round.StatusResolved {
		return fmt.Errorf("expected status %s, got %s", round.StatusResolved, ctx.response.Status)
	}
	if ctx.response.ResolvedRound != expected {
		return fmt.Errorf("expected resolved round %d, got %d", expected, ctx.response.ResolvedRound)
	}
	return nil
}

func (ctx *roundResolutionContext) eachPlayerOwnsRobots(expected int) error {
	for name, player := range ctx.game.CurrentState().Players {
		if len(player.Robots) != expected {
			return fmt.Errorf("player %s owns %d robots, expected %d", name, len(player.Robots), expected)
		}
	}
	return nil
}

func (ctx *roundResolutionContext) robotHasHealth(id string, expected int) error {
	robot, err := ctx.robot(id)
	if err != nil {
		return err
	}
	if robot.Health != expected {
		return fmt.Errorf("robot %s has %d health, expected %d", id, robot.Health, expected)
	}
	return nil
}

func (ctx *roundResolutionContext) robotHasEnergy(id string, expected int) error {
	robot, err := ctx.robot(id)
	if err != nil {
		return err
	}
	if robot.Energy != expected {
		return fmt.Errorf("robot %s has %d energy, expected %d", id, robot.Energy, expected)
	}
	return nil
}

func (ctx *roundResolutionContext) robotCarriesResource(id string, expected int, resource string) error {
	robot, err := ctx.robot(id)
	if err != nil {
		return err
	}
	held := robot.Inventory[world.Resource(resource)]
	if held != expected {
		return fmt.Errorf("robot %s carries %d %s, expected %d", id, held, resource, expected)
	}
	return nil
}

func (ctx *roundResolutionContext) planetIsLeftWithResource(id string, expected int, resource string) error {
	planet, found := ctx.game.CurrentState().Map.PlanetByID(shared.PlanetID(id))
	if !found {
		return fmt.Errorf("planet %q not found", id)
	}
	if planet.Deposit == nil {
		if expected != 0 {
			return fmt.Errorf("planet %s has no deposit, expected %d %s", id, expected, resource)
		}
		return nil
	}
	if string(planet.Deposit.Resource) != resource || planet.Deposit.Amount != expected {
		return fmt.Errorf("planet %s holds %d %s, expected %d %s", id, planet.Deposit.Amount, planet.Deposit.Resource, expected, resource)
	}
	return nil
}

func (ctx *roundResolutionContext) playerHasMoney(name string, expected int) error {
	player, err := ctx.player(name)
	if err != nil {
		return err
	}
	if player.Money != expected {
		return fmt.Errorf("player %s has %d money, expected %d", name, player.Money, expected)
	}
	return nil
}

func (ctx *roundResolutionContext) playerOwnsNoRobots(name string) error {
	player, err := ctx.player(name)
	if err != nil {
		return err
	}
	if len(player.Robots) != 0 {
		return fmt.Errorf("player %s owns %d robots, expected none", name, len(player.Robots))
	}
	return nil
}

// InitializeRoundResolutionScenario registers the step definitions
func InitializeRoundResolutionScenario(sc *godog.ScenarioContext) {
	ctx := &roundResolutionContext{}

	sc.Before(func(c context.Context, sc *godog.Scenario) (context.Context, error) {
		return c, ctx.reset()
	})
	sc.After(func(c context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		if ctx.db != nil {
			_ = database.Close(ctx.db)
		}
		return c, nil
	})

	sc.Step(`^a started game with players "([^"]*)" and "([^"]*)"$`, ctx.aStartedGameWithPlayers)
	sc.Step(`^a started game with players "([^"]*)"$`, ctx.aStartedGameWithOnePlayer)
	sc.Step(`^"([^"]*)" owns a robot "([^"]*)" on planet "([^"]*)"$`, ctx.ownsARobotOnPlanet)
	sc.Step(`^"([^"]*)" owns a robot "([^"]*)" on planet "([^"]*)" with damage level (\d+) and energy level (\d+)$`, ctx.ownsAnAttacker)
	sc.Step(`^"([^"]*)" owns a robot "([^"]*)" on planet "([^"]*)" with health level (\d+)$`, ctx.ownsADefender)
	sc.Step(`^"([^"]*)" owns a robot "([^"]*)" on planet "([^"]*)" with mining speed level (\d+)$`, ctx.ownsAMiner)
	sc.Step(`^"([^"]*)" owns a robot "([^"]*)" on planet "([^"]*)" carrying (\d+) COAL$`, ctx.ownsACarrier)
	sc.Step(`^player "([^"]*)" starts with (\d+) money$`, ctx.playerStartsWithMoney)

	sc.Step(`^"([^"]*)" submits a buying command for item "([^"]*)"$`, ctx.submitsABuyingCommand)
	sc.Step(`^"([^"]*)" submits a battle command from "([^"]*)" against "([^"]*)"$`, ctx.submitsABattleCommand)
	sc.Step(`^"([^"]*)" submits a regenerate command for "([^"]*)"$`, ctx.submitsARegenerateCommand)
	sc.Step(`^"([^"]*)" submits a mining command for "([^"]*)" on planet "([^"]*)"$`, ctx.submitsAMiningCommand)
	sc.Step(`^"([^"]*)" submits a selling command for "([^"]*)"$`, ctx.submitsASellingCommand)

	sc.Step(`^the submission is parked as "([^"]*)"$`, ctx.theSubmissionIsParkedAs)
	sc.Step(`^the submission resolves round (\d+)$`, ctx.theSubmissionResolvesRound)
	sc.Step(`^each player owns (\d+) robot$`, ctx.eachPlayerOwnsRobots)
	sc.Step(`^robot "([^"]*)" has (\d+) health$`, ctx.robotHasHealth)
	sc.Step(`^robot "([^"]*)" has (\d+) energy$`, ctx.robotHasEnergy)
	sc.Step(`^robot "([^"]*)" carries (\d+) ([A-Z]+)$`, ctx.robotCarriesResource)
	sc.Step(`^planet "([^"]*)" is left with (\d+) ([A-Z]+)$`, ctx.planetIsLeftWithResource)
	sc.Step(`^player "([^"]*)" has (\d+) money$`, ctx.playerHasMoney)
	sc.Step(`^player "([^"]*)" owns no robots$`, ctx.playerOwnsNoRobots)
}
