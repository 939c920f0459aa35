package model

import (
	"errors"
	"fmt"
)

// Error classes that abort a run. Match them with errors.Is.
var (
	ErrValidation         = errors.New("validation error")
	ErrZoneNotFound       = errors.New("zone not found")
	ErrDelegationNotFound = errors.New("delegation not found")
	ErrResolutionFailure  = errors.New("resolution failure")
)

// Exit codes of the command line tool
const (
	ExitOK                 = 0
	ExitFailure            = 1
	ExitZoneNotFound       = 2
	ExitDelegationNotFound = 3
	ExitResolutionFailure  = 4
	ExitValidation         = 5
)

// Error is an error of one of the classes above, optionally wrapping its cause
type Error struct {
	Class error
	Msg   string
	Err   error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %s", e.Class, e.Msg, e.Err)
	}

	return fmt.Sprintf("%s: %s", e.Class, e.Msg)
}

// Is reports whether target is the class of e
func (e *Error) Is(target error) bool {
	return target == e.Class
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewValidationError creates an error of class ErrValidation
func NewValidationError(format string, args ...interface{}) error {
	return &Error{Class: ErrValidation, Msg: fmt.Sprintf(format, args...)}
}

// NewZoneNotFoundError creates an error of class ErrZoneNotFound
func NewZoneNotFoundError(zone string) error {
	return &Error{Class: ErrZoneNotFound, Msg: fmt.Sprintf("enforcer has no KSK for zone '%s'", zone)}
}

// NewDelegationNotFoundError creates an error of class ErrDelegationNotFound
func NewDelegationNotFoundError(name, server string) error {
	return &Error{Class: ErrDelegationNotFound, Msg: fmt.Sprintf("%s does not exist (asked %s)", name, server)}
}

// NewResolutionError creates an error of class ErrResolutionFailure wrapping cause
func NewResolutionError(cause error, format string, args ...interface{}) error {
	return &Error{Class: ErrResolutionFailure, Msg: fmt.Sprintf(format, args...), Err: cause}
}

// ExitCode maps err to the process exit status
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrZoneNotFound):
		return ExitZoneNotFound
	case errors.Is(err, ErrDelegationNotFound):
		return ExitDelegationNotFound
	case errors.Is(err, ErrResolutionFailure):
		return ExitResolutionFailure
	case errors.Is(err, ErrValidation):
		return ExitValidation
	default:
		return ExitFailure
	}
}
