package shared

import "github.com/google/uuid"

// GameID uniquely identifies a game
type GameID string

// NewGameID generates a random game identifier
func NewGameID() GameID {
	return GameID(uuid.NewString())
}

// String returns the string representation of the game ID
func (id GameID) String() string {
	return string(id)
}

// IsZero reports whether the ID is unset
func (id GameID) IsZero() bool {
	return id == ""
}

// RobotID uniquely identifies a robot
type RobotID string

// NewRobotID generates a random robot identifier
func NewRobotID() RobotID {
	return RobotID(uuid.NewString())
}

// String returns the string representation of the robot ID
func (id RobotID) String() string {
	return string(id)
}

// PlanetID uniquely identifies a planet
type PlanetID string

// NewPlanetID generates a random planet identifier
func NewPlanetID() PlanetID {
	return PlanetID(uuid.NewString())
}

// String returns the string representation of the planet ID
func (id PlanetID) String() string {
	return string(id)
}
