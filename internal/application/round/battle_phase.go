package round

import (
	"log"

	"github.com/mlorenz/robotgame-go/internal/domain/command"
	"github.com/mlorenz/robotgame-go/internal/domain/game"
	"github.com/mlorenz/robotgame-go/internal/domain/shared"
)

// damageReport is one resolved attack, produced in the calculation
// sub-phase and applied in the application sub-phase. The energy cost is
// computed once here and carried along so the debit can never diverge from
// the check.
type damageReport struct {
	attackerID   shared.RobotID
	attackerName string
	defenderID   shared.RobotID
	damage       int
	energyCost   int
}

// battlePhase runs the battle sub-state-machine: damage calculation over
// all queued BATTLE commands, simultaneous damage application, then the
// dead-robot command purge that keeps corpses out of the mining and
// regeneration phases.
func (r *Resolver) battlePhase(rs *game.RoundState) {
	reports := r.calculateDamage(rs)
	r.applyDamage(rs, reports)
	r.purgeDeadRobotCommands(rs)
}

// calculateDamage drains every BATTLE queue into damage reports. Commands
// are consumed regardless of outcome. An attack requires a living attacker
// holding at least (damage level + 1) energy; self-targeting is rejected.
func (r *Resolver) calculateDamage(rs *game.RoundState) []damageReport {
	var reports []damageReport
	for _, name := range rs.PlayerNames() {
		player := rs.Players[name]
		for _, cmd := range player.TakeCommands(command.TypeBattle) {
			payload, ok := cmd.Payload.(command.BattlePayload)
			if !ok {
				log.Printf("[battle] player %s: malformed battle payload, dropping", name)
				continue
			}
			if payload.RobotID == payload.TargetID {
				log.Printf("[battle] player %s: robot %s cannot attack itself", name, payload.RobotID)
				continue
			}
			attacker, found := player.RobotByID(payload.RobotID)
			if !found {
				log.Printf("[battle] player %s: robot %s does not exist", name, payload.RobotID)
				continue
			}
			if !attacker.IsAlive() {
				log.Printf("[battle] player %s: robot %s is dead and cannot attack", name, attacker.ID)
				continue
			}
			energyCost := int(attacker.Levels.Damage) + 1
			if attacker.Energy < energyCost {
				log.Printf("[battle] player %s: robot %s has %d energy but needs %d to attack", name, attacker.ID, attacker.Energy, energyCost)
				continue
			}
			reports = append(reports, damageReport{
				attackerID:   attacker.ID,
				attackerName: name,
				defenderID:   payload.TargetID,
				damage:       attacker.Levels.Damage.Damage(),
				energyCost:   energyCost,
			})
		}
	}
	return reports
}

// applyDamage debits each attacker's energy and applies the carried damage
// to the defender. All reports apply against the state as of calculation,
// so robots killed during this sub-phase still land their own queued
// attacks (simultaneous resolution). Kills append to the attacking
// player's kill records, keyed by attacker robot.
func (r *Resolver) applyDamage(rs *game.RoundState, reports []damageReport) {
	type killReport struct {
		attackerID   shared.RobotID
		attackerName string
		victimName   string
		victimID     shared.RobotID
	}
	var kills []killReport

	for _, report := range reports {
		attackerState, ok := rs.Player(report.attackerName)
		if !ok {
			log.Printf("[battle] attacker player %s not found", report.attackerName)
			continue
		}
		attacker, found := attackerState.RobotByID(report.attackerID)
		if !found {
			log.Printf("[battle] attacker robot %s not found", report.attackerID)
			continue
		}
		attacker.DrainEnergy(report.energyCost)

		defender, defenderState, found := rs.FindRobot(report.defenderID)
		if !found {
			log.Printf("[battle] target robot %s not found", report.defenderID)
			continue
		}
		// Self-kill guard, re-checked defensively after lookup
		if defender.ID == report.attackerID {
			log.Printf("[battle] robot %s cannot attack itself", report.attackerID)
			continue
		}
		wasAlive := defender.IsAlive()
		defender.TakeDamage(report.damage)
		if wasAlive && !defender.IsAlive() {
			log.Printf("[battle] robot %s of player %s was killed by %s of player %s",
				defender.ID, defenderState.Name, report.attackerID, report.attackerName)
			kills = append(kills, killReport{
				attackerID:   report.attackerID,
				attackerName: report.attackerName,
				victimName:   defenderState.Name,
				victimID:     defender.ID,
			})
		}
	}

	for _, kill := range kills {
		attackerState, ok := rs.Player(kill.attackerName)
		if !ok {
			log.Printf("[battle] attacker player %s not found for kill record", kill.attackerName)
			continue
		}
		victim, victimState, found := rs.FindRobot(kill.victimID)
		if !found {
			log.Printf("[battle] killed robot %s not found for kill record", kill.victimID)
			continue
		}
		attackerState.RecordKill(kill.attackerID, victimState.Name, victim.Clone())
	}
}

// purgeDeadRobotCommands removes MINING and REGENERATE commands still
// queued for robots that are now dead, so a robot killed this round cannot
// act in the phases after battle.
func (r *Resolver) purgeDeadRobotCommands(rs *game.RoundState) {
	for _, name := range rs.PlayerNames() {
		player := rs.Players[name]
		for _, robotID := range player.RobotIDs() {
			robot := player.Robots[robotID]
			if robot.IsAlive() {
				continue
			}
			if purged := player.PurgeCommandsForRobot(robotID, command.TypeMining, command.TypeRegenerate); purged > 0 {
				log.Printf("[battle] purged %d queued commands of dead robot %s (player %s)", purged, robotID, name)
			}
		}
	}
}
