package round_test

import (
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlorenz/robotgame-go/internal/application/round"
	"github.com/mlorenz/robotgame-go/internal/domain/command"
	"github.com/mlorenz/robotgame-go/internal/domain/game"
	"github.com/mlorenz/robotgame-go/internal/domain/shared"
	"github.com/mlorenz/robotgame-go/internal/domain/world"
)

// startedGame builds a two-planet started game: p1 (difficulty 1, 50 COAL)
// and p2 (difficulty 2, empty) are mutual neighbors.
func startedGame(t *testing.T, maxRounds int, players ...string) *game.Game {
	t.Helper()

	p1 := world.NewPlanet("p1", 1)
	p2 := world.NewPlanet("p2", 2)
	p1.Neighbours[world.DirectionEast] = "p2"
	p2.Neighbours[world.DirectionWest] = "p1"
	p1.Deposit = &world.Deposit{Resource: world.ResourceCoal, Amount: 50}
	m := world.NewGameMap(
		map[shared.PlanetID]*world.Planet{"p1": p1, "p2": p2},
		map[shared.PlanetID]world.Coordinate{"p1": {X: 0, Y: 0}, "p2": {X: 1, Y: 0}},
	)

	g := game.NewGame(shared.NewGameID(), maxRounds, 4, m)
	for _, name := range players {
		require.NoError(t, g.AddPlayer(name, 500))
	}
	require.NoError(t, g.Start())
	return g
}

func testResolver() *round.Resolver {
	return round.NewResolver(rand.New(rand.NewSource(1)))
}

func queue(t *testing.T, g *game.Game, player string, commands ...command.Command) {
	t.Helper()
	p, ok := g.CurrentState().Player(player)
	require.True(t, ok)
	p.ReplaceCommands(commands)
}

func robotOf(t *testing.T, g *game.Game, player string, id shared.RobotID) *world.Robot {
	t.Helper()
	p, ok := g.CurrentState().Player(player)
	require.True(t, ok)
	robot, ok := p.RobotByID(id)
	require.True(t, ok)
	return robot
}

func TestResolver_SellingFundsBuyingInTheSameRound(t *testing.T) {
	g := startedGame(t, 10, "alice")
	alice := g.CurrentState().Players["alice"]
	alice.Money = 80 // not enough for a robot on its own

	seller := world.NewRobot("r1", "p1")
	seller.AddToInventory(world.ResourceCoal, 6) // worth 30
	alice.AddRobot(seller)

	queue(t, g, "alice",
		command.Command{Type: command.TypeSelling, Payload: command.SellingPayload{RobotID: "r1"}},
		command.Command{Type: command.TypeBuying, Payload: command.BuyingPayload{ItemName: "ROBOT"}},
	)

	_, err := testResolver().Resolve(g)
	require.NoError(t, err)

	resolved := g.CurrentState().Players["alice"]
	assert.Equal(t, 80+30-100, resolved.Money)
	assert.Len(t, resolved.Robots, 2)
	assert.Equal(t, 30, resolved.TotalMoneyMade)
	sold, _ := resolved.RobotByID("r1")
	assert.True(t, sold.InventoryEmpty())
	assert.Equal(t, 30, sold.MoneyMade)
}

func TestResolver_RobotPurchaseWithInsufficientFundsIsDropped(t *testing.T) {
	g := startedGame(t, 10, "alice")
	alice := g.CurrentState().Players["alice"]
	alice.Money = 50

	queue(t, g, "alice",
		command.Command{Type: command.TypeBuying, Payload: command.BuyingPayload{ItemName: "ROBOT"}},
	)

	_, err := testResolver().Resolve(g)
	require.NoError(t, err)

	resolved := g.CurrentState().Players["alice"]
	assert.Equal(t, 50, resolved.Money)
	assert.Empty(t, resolved.Robots)
}

func TestResolver_BattleDamageAndEnergyCost(t *testing.T) {
	g := startedGame(t, 10, "alice", "bob")

	attacker := world.NewRobot("att", "p1")
	require.NoError(t, attacker.Upgrade(world.StatDamage, 1)) // damage 2, energy cost 2
	require.NoError(t, attacker.Upgrade(world.StatEnergy, 1))
	attacker.RestoreEnergy() // 30
	g.CurrentState().Players["alice"].AddRobot(attacker)

	defender := world.NewRobot("def", "p1")
	require.NoError(t, defender.Upgrade(world.StatHealth, 1))
	defender.RestoreHealth() // 25
	g.CurrentState().Players["bob"].AddRobot(defender)

	queue(t, g, "alice",
		command.Command{Type: command.TypeBattle, Payload: command.BattlePayload{RobotID: "att", TargetID: "def"}},
	)
	queue(t, g, "bob",
		command.Command{Type: command.TypeRegenerate, Payload: command.RegeneratePayload{RobotID: "def"}},
	)

	_, err := testResolver().Resolve(g)
	require.NoError(t, err)

	assert.Equal(t, 25-2, robotOf(t, g, "bob", "def").Health)
	assert.Equal(t, 30-2, robotOf(t, g, "alice", "att").Energy)
}

func TestResolver_AttackWithoutEnergyIsDropped(t *testing.T) {
	g := startedGame(t, 10, "alice", "bob")

	attacker := world.NewRobot("att", "p1")
	attacker.Energy = 0 // needs damage level + 1 = 1
	g.CurrentState().Players["alice"].AddRobot(attacker)
	defender := world.NewRobot("def", "p1")
	g.CurrentState().Players["bob"].AddRobot(defender)

	queue(t, g, "alice",
		command.Command{Type: command.TypeBattle, Payload: command.BattlePayload{RobotID: "att", TargetID: "def"}},
	)
	queue(t, g, "bob",
		command.Command{Type: command.TypeRegenerate, Payload: command.RegeneratePayload{RobotID: "def"}},
	)

	_, err := testResolver().Resolve(g)
	require.NoError(t, err)

	assert.Equal(t, 10, robotOf(t, g, "bob", "def").Health)
	assert.Equal(t, 0, robotOf(t, g, "alice", "att").Energy)
}

func TestResolver_MutualKillsResolveSimultaneously(t *testing.T) {
	g := startedGame(t, 10, "alice", "bob")

	first := world.NewRobot("first", "p1")
	require.NoError(t, first.Upgrade(world.StatDamage, 3)) // damage 10 kills a level-0 robot
	g.CurrentState().Players["alice"].AddRobot(first)

	second := world.NewRobot("second", "p1")
	require.NoError(t, second.Upgrade(world.StatDamage, 3))
	g.CurrentState().Players["bob"].AddRobot(second)

	queue(t, g, "alice",
		command.Command{Type: command.TypeBattle, Payload: command.BattlePayload{RobotID: "first", TargetID: "second"}},
	)
	queue(t, g, "bob",
		command.Command{Type: command.TypeBattle, Payload: command.BattlePayload{RobotID: "second", TargetID: "first"}},
	)

	_, err := testResolver().Resolve(g)
	require.NoError(t, err)

	// Both attacks landed even though both robots died this round
	assert.False(t, robotOf(t, g, "alice", "first").IsAlive())
	assert.False(t, robotOf(t, g, "bob", "second").IsAlive())

	alice := g.CurrentState().Players["alice"]
	bob := g.CurrentState().Players["bob"]
	require.Len(t, alice.KilledRobots["first"], 1)
	assert.Equal(t, "bob", alice.KilledRobots["first"][0].VictimPlayer)
	require.Len(t, bob.KilledRobots["second"], 1)
	assert.Equal(t, "alice", bob.KilledRobots["second"][0].VictimPlayer)
}

func TestResolver_DeadRobotCannotMineOrRegenerate(t *testing.T) {
	g := startedGame(t, 10, "alice", "bob")

	killer := world.NewRobot("killer", "p1")
	require.NoError(t, killer.Upgrade(world.StatDamage, 3))
	g.CurrentState().Players["alice"].AddRobot(killer)

	miner := world.NewRobot("miner", "p1")
	g.CurrentState().Players["bob"].AddRobot(miner)

	queue(t, g, "alice",
		command.Command{Type: command.TypeBattle, Payload: command.BattlePayload{RobotID: "killer", TargetID: "miner"}},
	)
	queue(t, g, "bob",
		command.Command{Type: command.TypeMining, Payload: command.MiningPayload{RobotID: "miner", PlanetID: "p1"}},
		command.Command{Type: command.TypeRegenerate, Payload: command.RegeneratePayload{RobotID: "miner"}},
	)

	_, err := testResolver().Resolve(g)
	require.NoError(t, err)

	dead := robotOf(t, g, "bob", "miner")
	assert.False(t, dead.IsAlive())
	assert.True(t, dead.InventoryEmpty())

	// The deposit was not touched by the purged mining command
	planet, _ := g.CurrentState().Map.PlanetByID("p1")
	assert.Equal(t, 50, planet.Deposit.Amount)
}

func TestResolver_MiningYieldAndDepletion(t *testing.T) {
	g := startedGame(t, 10, "alice")

	miner := world.NewRobot("miner", "p1")
	require.NoError(t, miner.Upgrade(world.StatMiningSpeed, 1)) // speed 6
	g.CurrentState().Players["alice"].AddRobot(miner)

	queue(t, g, "alice",
		command.Command{Type: command.TypeMining, Payload: command.MiningPayload{RobotID: "miner", PlanetID: "p1"}},
	)

	_, err := testResolver().Resolve(g)
	require.NoError(t, err)

	assert.Equal(t, 6, robotOf(t, g, "alice", "miner").Inventory[world.ResourceCoal])
	planet, _ := g.CurrentState().Map.PlanetByID("p1")
	assert.Equal(t, 44, planet.Deposit.Amount)
}

func TestResolver_MiningLockedResourceIsDropped(t *testing.T) {
	g := startedGame(t, 10, "alice")
	planet, _ := g.CurrentState().Map.PlanetByID("p1")
	planet.Deposit = &world.Deposit{Resource: world.ResourceIron, Amount: 50}

	miner := world.NewRobot("miner", "p1") // mining level 0: COAL only
	g.CurrentState().Players["alice"].AddRobot(miner)

	queue(t, g, "alice",
		command.Command{Type: command.TypeMining, Payload: command.MiningPayload{RobotID: "miner", PlanetID: "p1"}},
	)

	_, err := testResolver().Resolve(g)
	require.NoError(t, err)

	assert.True(t, robotOf(t, g, "alice", "miner").InventoryEmpty())
	resolved, _ := g.CurrentState().Map.PlanetByID("p1")
	assert.Equal(t, 50, resolved.Deposit.Amount)
}

func TestResolver_MovementDebitsAndDiscovers(t *testing.T) {
	g := startedGame(t, 10, "alice")

	walker := world.NewRobot("walker", "p1")
	g.CurrentState().Players["alice"].AddRobot(walker)

	queue(t, g, "alice",
		command.Command{Type: command.TypeMovement, Payload: command.MovementPayload{RobotID: "walker", PlanetID: "p2"}},
	)

	_, err := testResolver().Resolve(g)
	require.NoError(t, err)

	moved := robotOf(t, g, "alice", "walker")
	assert.Equal(t, shared.PlanetID("p2"), moved.Planet)
	assert.Equal(t, 20-1, moved.Energy) // difficulty of the planet left from
	assert.True(t, g.CurrentState().Players["alice"].HasVisited("p2"))
}

func TestResolver_MovementToNonNeighbourIsDropped(t *testing.T) {
	g := startedGame(t, 10, "alice")

	walker := world.NewRobot("walker", "p1")
	g.CurrentState().Players["alice"].AddRobot(walker)

	queue(t, g, "alice",
		command.Command{Type: command.TypeMovement, Payload: command.MovementPayload{RobotID: "walker", PlanetID: "p9"}},
	)

	_, err := testResolver().Resolve(g)
	require.NoError(t, err)

	moved := robotOf(t, g, "alice", "walker")
	assert.Equal(t, shared.PlanetID("p1"), moved.Planet)
	assert.Equal(t, 20, moved.Energy)
}

func TestResolver_UpgradeTakesEffectBeforeBattle(t *testing.T) {
	g := startedGame(t, 10, "alice", "bob")

	attacker := world.NewRobot("att", "p1")
	g.CurrentState().Players["alice"].AddRobot(attacker)
	defender := world.NewRobot("def", "p1")
	g.CurrentState().Players["bob"].AddRobot(defender)

	queue(t, g, "alice",
		command.Command{Type: command.TypeBuying, Payload: command.BuyingPayload{ItemName: "DAMAGE_1", RobotID: "att"}},
		command.Command{Type: command.TypeBattle, Payload: command.BattlePayload{RobotID: "att", TargetID: "def"}},
	)
	queue(t, g, "bob",
		command.Command{Type: command.TypeRegenerate, Payload: command.RegeneratePayload{RobotID: "def"}},
	)

	_, err := testResolver().Resolve(g)
	require.NoError(t, err)

	// Level-1 damage (2) applied, not the level-0 value
	assert.Equal(t, 10-2, robotOf(t, g, "bob", "def").Health)
	assert.Equal(t, 500-50, g.CurrentState().Players["alice"].Money)
}

func TestResolver_RegenerateIsCappedAtTheCeiling(t *testing.T) {
	g := startedGame(t, 10, "alice")

	tired := world.NewRobot("tired", "p1")
	tired.Energy = 18 // regen 4 would overshoot the ceiling of 20
	g.CurrentState().Players["alice"].AddRobot(tired)

	queue(t, g, "alice",
		command.Command{Type: command.TypeRegenerate, Payload: command.RegeneratePayload{RobotID: "tired"}},
	)

	_, err := testResolver().Resolve(g)
	require.NoError(t, err)

	assert.Equal(t, 20, robotOf(t, g, "alice", "tired").Energy)
}

func TestResolver_HistoryStaysImmutable(t *testing.T) {
	g := startedGame(t, 10, "alice")

	miner := world.NewRobot("miner", "p1")
	g.CurrentState().Players["alice"].AddRobot(miner)

	queue(t, g, "alice",
		command.Command{Type: command.TypeMining, Payload: command.MiningPayload{RobotID: "miner", PlanetID: "p1"}},
	)

	result, err := testResolver().Resolve(g)
	require.NoError(t, err)
	assert.Equal(t, 0, result.ResolvedRound)
	assert.Equal(t, 1, result.NewRound)
	assert.False(t, result.GameEnded)
	assert.Equal(t, 1, g.CurrentRound)

	// The round-zero snapshot still shows the pre-resolution world
	state0, err := g.StateAt(0)
	require.NoError(t, err)
	planet0, _ := state0.Map.PlanetByID("p1")
	assert.Equal(t, 50, planet0.Deposit.Amount)
	robot0, _ := state0.Players["alice"].RobotByID("miner")
	assert.True(t, robot0.InventoryEmpty())

	// And the new round shows the post-resolution world
	planet1, _ := g.CurrentState().Map.PlanetByID("p1")
	assert.Equal(t, 48, planet1.Deposit.Amount)
}

func TestResolver_EliminationEndsTheGame(t *testing.T) {
	g := startedGame(t, 100, "alice", "bob")

	survivor := world.NewRobot("survivor", "p1")
	g.CurrentState().Players["alice"].AddRobot(survivor)

	// Bob can no longer act: no robots, not enough money for one
	g.CurrentState().Players["bob"].Money = 50

	queue(t, g, "alice",
		command.Command{Type: command.TypeRegenerate, Payload: command.RegeneratePayload{RobotID: "survivor"}},
	)

	result, err := testResolver().Resolve(g)
	require.NoError(t, err)

	assert.True(t, result.GameEnded)
	assert.Equal(t, game.StatusEnded, g.Status)
	assert.Equal(t, 0, g.CurrentRound, "a game ended by elimination does not advance the round")
}

func TestResolver_RoundLimitEndsTheGame(t *testing.T) {
	g := startedGame(t, 1, "alice")
	resolver := testResolver()

	miner := world.NewRobot("miner", "p1")
	g.CurrentState().Players["alice"].AddRobot(miner)

	queue(t, g, "alice",
		command.Command{Type: command.TypeRegenerate, Payload: command.RegeneratePayload{RobotID: "miner"}},
	)
	result, err := resolver.Resolve(g)
	require.NoError(t, err)
	require.False(t, result.GameEnded)
	require.Equal(t, 1, g.CurrentRound)

	queue(t, g, "alice",
		command.Command{Type: command.TypeRegenerate, Payload: command.RegeneratePayload{RobotID: "miner"}},
	)
	result, err = resolver.Resolve(g)
	require.NoError(t, err)

	assert.True(t, result.GameEnded)
	assert.Equal(t, game.StatusEnded, g.Status)
	assert.Equal(t, 1, g.CurrentRound)
}

func TestResolver_ConcurrentGamesShareOneResolver(t *testing.T) {
	// Different games resolve in parallel: the per-game lock only
	// serializes submissions for the same game.
	resolver := round.NewResolver(rand.New(rand.NewSource(1)))
	games := []*game.Game{
		startedGame(t, 200, "alice"),
		startedGame(t, 200, "alice"),
	}

	var wg sync.WaitGroup
	for _, g := range games {
		wg.Add(1)
		go func(g *game.Game) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				player := g.CurrentState().Players["alice"]
				player.Credit(100)
				player.ReplaceCommands([]command.Command{
					{Type: command.TypeBuying, Payload: command.BuyingPayload{ItemName: "ROBOT"}},
				})
				if _, err := resolver.Resolve(g); !assert.NoError(t, err) {
					return
				}
			}
		}(g)
	}
	wg.Wait()

	for _, g := range games {
		assert.Len(t, g.CurrentState().Players["alice"].Robots, 100)
	}
}
