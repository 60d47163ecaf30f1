package commands

import (
	"errors"
	"fmt"
	"reflect"
)

type (
	// NotFoundError is returned when no command is registered under Name.
	NotFoundError struct {
		Name string
	}

	// InvalidTargetError is returned when a callable cannot back a command.
	InvalidTargetError struct {
		Target reflect.Type
	}
)

var (
	ErrInvalidInput         = errors.New("invalid input")
	ErrCommandNotFound      = errors.New("command not found")
	ErrInvalidCommandTarget = errors.New("invalid command target")
	ErrNilCommand           = errors.New("nil command")
	ErrEmptyName            = errors.New("empty command name")
)

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("command %s not found", e.Name)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrCommandNotFound
}

func (e *InvalidTargetError) Error() string {
	if e.Target == nil {
		return "nil is not suitable for a command"
	}
	return fmt.Sprintf("%s is not suitable for a command: want func() or func([]string), optionally returning error", e.Target)
}

func (e *InvalidTargetError) Is(target error) bool {
	return target == ErrInvalidCommandTarget
}
