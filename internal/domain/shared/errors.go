package shared

import (
	"errors"
	"fmt"
)

// DomainError is the base error type for all domain errors
type DomainError struct {
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func NewDomainError(message string) *DomainError {
	return &DomainError{Message: message}
}

// GameNotFoundError indicates the requested game does not exist.
// It is deliberately distinct from validation failures so callers can
// map it to a "not found" outcome.
type GameNotFoundError struct {
	*DomainError
	GameID GameID
}

func NewGameNotFoundError(gameID GameID) *GameNotFoundError {
	return &GameNotFoundError{
		DomainError: &DomainError{Message: fmt.Sprintf("game not found: %s", gameID)},
		GameID:      gameID,
	}
}

// IsNotFound reports whether err is (or wraps) a GameNotFoundError
func IsNotFound(err error) bool {
	var notFound *GameNotFoundError
	return errors.As(err, &notFound)
}

// GameStatusError indicates an operation was attempted in the wrong
// lifecycle status (e.g. submitting commands before the game started)
type GameStatusError struct {
	*DomainError
	Status string
}

func NewGameStatusError(status, message string) *GameStatusError {
	return &GameStatusError{
		DomainError: &DomainError{Message: message},
		Status:      status,
	}
}

// CommandRejectedError is a recoverable, per-command precondition
// violation: the offending command is dropped and processing continues
type CommandRejectedError struct {
	*DomainError
}

func NewCommandRejectedError(format string, args ...interface{}) *CommandRejectedError {
	return &CommandRejectedError{
		DomainError: &DomainError{Message: fmt.Sprintf(format, args...)},
	}
}

// ValidationError reports a malformed request field
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// IsRecoverable reports whether err is a per-command violation that must
// not abort round processing
func IsRecoverable(err error) bool {
	var rejected *CommandRejectedError
	return errors.As(err, &rejected)
}
