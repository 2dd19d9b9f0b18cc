package engine

import (
	"errors"
	"fmt"
)

// Kind is the machine-readable class of a rejected operation.
type Kind string

const (
	KindUnknown           Kind = "UNKNOWN"
	KindInvalidRequest    Kind = "INVALID_REQUEST"
	KindForbiddenAction   Kind = "FORBIDDEN_ACTION"
	KindMissingField      Kind = "MISSING_FIELD"
	KindActOutOfTurn      Kind = "ACT_OUT_OF_TURN"
	KindForbiddenWager    Kind = "FORBIDDEN_WAGER"
	KindTileAlreadyChosen Kind = "TILE_ALREADY_CHOSEN"
	KindTileNotFound      Kind = "TILE_NOT_FOUND"
	KindForbiddenAccess   Kind = "FORBIDDEN_ACCESS"
	KindTeamAtMaxCapacity Kind = "TEAM_AT_MAX_CAPACITY"
	KindNotFound          Kind = "NOT_FOUND"
	KindBusy              Kind = "BUSY"
)

// Error is a domain error. Two errors match under errors.Is when their kinds
// are equal.
type Error struct {
	Kind     Kind
	Message  string
	Metadata map[string]string
	Cause    error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Kind == t.Kind
	}
	return false
}

var (
	ErrInvalidRequest    = &Error{Kind: KindInvalidRequest, Message: "invalid request"}
	ErrForbiddenAction   = &Error{Kind: KindForbiddenAction, Message: "forbidden action"}
	ErrMissingField      = &Error{Kind: KindMissingField, Message: "missing field"}
	ErrActOutOfTurn      = &Error{Kind: KindActOutOfTurn, Message: "act out of turn"}
	ErrForbiddenWager    = &Error{Kind: KindForbiddenWager, Message: "forbidden wager"}
	ErrTileAlreadyChosen = &Error{Kind: KindTileAlreadyChosen, Message: "tile already chosen"}
	ErrTileNotFound      = &Error{Kind: KindTileNotFound, Message: "tile not found"}
	ErrForbiddenAccess   = &Error{Kind: KindForbiddenAccess, Message: "forbidden access"}
	ErrTeamAtMaxCapacity = &Error{Kind: KindTeamAtMaxCapacity, Message: "team at max capacity"}
	ErrNotFound          = &Error{Kind: KindNotFound, Message: "not found"}
	ErrBusy              = &Error{Kind: KindBusy, Message: "game is busy"}
)

// NewError creates a domain error of the given kind.
func NewError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// WithMetadata creates a domain error carrying extra context for clients.
func WithMetadata(kind Kind, message string, metadata map[string]string) *Error {
	return &Error{Kind: kind, Message: message, Metadata: metadata}
}

// Wrap creates a domain error around an underlying cause.
func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

// KindOf reports the kind of err, or KindUnknown for non-domain errors.
func KindOf(err error) Kind {
	var domainErr *Error
	if errors.As(err, &domainErr) {
		return domainErr.Kind
	}
	return KindUnknown
}
