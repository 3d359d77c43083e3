package command

import (
	"encoding/json"
	"fmt"

	"github.com/mlorenz/robotgame-go/internal/domain/shared"
)

// Type tags a command with the resolution phase it belongs to
type Type string

const (
	TypeMovement   Type = "MOVEMENT"
	TypeBattle     Type = "BATTLE"
	TypeMining     Type = "MINING"
	TypeRegenerate Type = "REGENERATE"
	TypeBuying     Type = "BUYING"
	TypeSelling    Type = "SELLING"
)

// Types returns all command types in stable order
func Types() []Type {
	return []Type{TypeSelling, TypeBuying, TypeMovement, TypeBattle, TypeMining, TypeRegenerate}
}

// Valid reports whether t is a known command type
func (t Type) Valid() bool {
	switch t {
	case TypeMovement, TypeBattle, TypeMining, TypeRegenerate, TypeBuying, TypeSelling:
		return true
	default:
		return false
	}
}

// Payload is the type-specific data of a command. Each variant carries
// exactly the fields its command type requires; there is no optional
// field grab-bag to pick apart at resolution time.
type Payload interface {
	commandPayload()
	validate() error
}

// MovementPayload moves a robot to a neighbor planet
type MovementPayload struct {
	RobotID  shared.RobotID  `json:"robotId"`
	PlanetID shared.PlanetID `json:"planetId"`
}

func (MovementPayload) commandPayload() {}

func (p MovementPayload) validate() error {
	if p.RobotID == "" {
		return shared.NewValidationError("robotId", "required for MOVEMENT commands")
	}
	if p.PlanetID == "" {
		return shared.NewValidationError("planetId", "required for MOVEMENT commands")
	}
	return nil
}

// BattlePayload makes one robot attack another
type BattlePayload struct {
	RobotID  shared.RobotID `json:"robotId"`
	TargetID shared.RobotID `json:"targetId"`
}

func (BattlePayload) commandPayload() {}

func (p BattlePayload) validate() error {
	if p.RobotID == "" {
		return shared.NewValidationError("robotId", "required for BATTLE commands")
	}
	if p.TargetID == "" {
		return shared.NewValidationError("targetId", "required for BATTLE commands")
	}
	return nil
}

// MiningPayload mines the planet the robot currently occupies
type MiningPayload struct {
	RobotID  shared.RobotID  `json:"robotId"`
	PlanetID shared.PlanetID `json:"planetId"`
}

func (MiningPayload) commandPayload() {}

func (p MiningPayload) validate() error {
	if p.RobotID == "" {
		return shared.NewValidationError("robotId", "required for MINING commands")
	}
	if p.PlanetID == "" {
		return shared.NewValidationError("planetId", "required for MINING commands")
	}
	return nil
}

// RegeneratePayload restores a robot's energy by its regen amount
type RegeneratePayload struct {
	RobotID shared.RobotID `json:"robotId"`
}

func (RegeneratePayload) commandPayload() {}

func (p RegeneratePayload) validate() error {
	if p.RobotID == "" {
		return shared.NewValidationError("robotId", "required for REGENERATE commands")
	}
	return nil
}

// BuyingPayload purchases a shop item. RobotID is required for upgrades and
// restores, absent for robot purchases. Quantity applies to robot purchases
// only and defaults to 1.
type BuyingPayload struct {
	RobotID  shared.RobotID `json:"robotId,omitempty"`
	ItemName string         `json:"itemName"`
	Quantity int            `json:"itemQuantity,omitempty"`
}

func (BuyingPayload) commandPayload() {}

func (p BuyingPayload) validate() error {
	if p.ItemName == "" {
		return shared.NewValidationError("itemName", "required for BUYING commands")
	}
	order, err := ParseItem(p.ItemName)
	if err != nil {
		return shared.NewValidationError("itemName", err.Error())
	}
	if order.NeedsRobot() && p.RobotID == "" {
		return shared.NewValidationError("robotId", fmt.Sprintf("required when buying %s", p.ItemName))
	}
	if p.Quantity < 0 {
		return shared.NewValidationError("itemQuantity", "must not be negative")
	}
	return nil
}

// SellingPayload sells a robot's entire inventory
type SellingPayload struct {
	RobotID shared.RobotID `json:"robotId"`
}

func (SellingPayload) commandPayload() {}

func (p SellingPayload) validate() error {
	if p.RobotID == "" {
		return shared.NewValidationError("robotId", "required for SELLING commands")
	}
	return nil
}

// Command is one player instruction for the current round
type Command struct {
	GameID     shared.GameID `json:"gameId"`
	PlayerName string        `json:"playerName"`
	Type       Type          `json:"type"`
	Payload    Payload       `json:"payload"`
}

// Validate checks that the command is well-formed for its type
func (c Command) Validate() error {
	if !c.Type.Valid() {
		return shared.NewValidationError("type", fmt.Sprintf("unknown command type %q", c.Type))
	}
	if c.Payload == nil {
		return shared.NewValidationError("payload", "missing command payload")
	}
	if mismatch := c.payloadTypeMismatch(); mismatch {
		return shared.NewValidationError("payload", fmt.Sprintf("payload does not match command type %s", c.Type))
	}
	return c.Payload.validate()
}

func (c Command) payloadTypeMismatch() bool {
	switch c.Payload.(type) {
	case MovementPayload:
		return c.Type != TypeMovement
	case BattlePayload:
		return c.Type != TypeBattle
	case MiningPayload:
		return c.Type != TypeMining
	case RegeneratePayload:
		return c.Type != TypeRegenerate
	case BuyingPayload:
		return c.Type != TypeBuying
	case SellingPayload:
		return c.Type != TypeSelling
	default:
		return true
	}
}

// RobotID returns the robot referenced by the command's payload, if any.
// The readiness gate uses this to check robot coverage.
func (c Command) RobotID() (shared.RobotID, bool) {
	switch p := c.Payload.(type) {
	case MovementPayload:
		return p.RobotID, true
	case BattlePayload:
		return p.RobotID, true
	case MiningPayload:
		return p.RobotID, true
	case RegeneratePayload:
		return p.RobotID, true
	case SellingPayload:
		return p.RobotID, true
	case BuyingPayload:
		if p.RobotID != "" {
			return p.RobotID, true
		}
		return "", false
	default:
		return "", false
	}
}

type commandEnvelope struct {
	GameID     shared.GameID   `json:"gameId"`
	PlayerName string          `json:"playerName"`
	Type       Type            `json:"type"`
	Payload    json.RawMessage `json:"payload"`
}

// MarshalJSON encodes the command as an envelope with a type-discriminated payload
func (c Command) MarshalJSON() ([]byte, error) {
	payload, err := json.Marshal(c.Payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s payload: %w", c.Type, err)
	}
	return json.Marshal(commandEnvelope{
		GameID:     c.GameID,
		PlayerName: c.PlayerName,
		Type:       c.Type,
		Payload:    payload,
	})
}

// UnmarshalJSON decodes the envelope and dispatches the payload by type tag
func (c *Command) UnmarshalJSON(data []byte) error {
	var envelope commandEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		return err
	}
	c.GameID = envelope.GameID
	c.PlayerName = envelope.PlayerName
	c.Type = envelope.Type

	if len(envelope.Payload) == 0 {
		c.Payload = nil
		return nil
	}

	switch envelope.Type {
	case TypeMovement:
		var p MovementPayload
		if err := json.Unmarshal(envelope.Payload, &p); err != nil {
			return err
		}
		c.Payload = p
	case TypeBattle:
		var p BattlePayload
		if err := json.Unmarshal(envelope.Payload, &p); err != nil {
			return err
		}
		c.Payload = p
	case TypeMining:
		var p MiningPayload
		if err := json.Unmarshal(envelope.Payload, &p); err != nil {
			return err
		}
		c.Payload = p
	case TypeRegenerate:
		var p RegeneratePayload
		if err := json.Unmarshal(envelope.Payload, &p); err != nil {
			return err
		}
		c.Payload = p
	case TypeBuying:
		var p BuyingPayload
		if err := json.Unmarshal(envelope.Payload, &p); err != nil {
			return err
		}
		c.Payload = p
	case TypeSelling:
		var p SellingPayload
		if err := json.Unmarshal(envelope.Payload, &p); err != nil {
			return err
		}
		c.Payload = p
	default:
		return fmt.Errorf("unknown command type %q", envelope.Type)
	}
	return nil
}
