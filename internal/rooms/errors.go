package rooms

import (
	"errors"
	"fmt"
)

// Kind classifies a room lifecycle error.
type Kind string

const (
	KindRoomNotFound        Kind = "ROOM_NOT_FOUND"
	KindRoomFull            Kind = "ROOM_FULL"
	KindInvalidCode         Kind = "INVALID_CODE"
	KindNotHost             Kind = "NOT_HOST"
	KindGameAlreadyStarted  Kind = "GAME_ALREADY_STARTED"
	KindRematchNotAllowed   Kind = "REMATCH_NOT_ALLOWED"
	KindInsufficientPlayers Kind = "INSUFFICIENT_PLAYERS"
	KindGameNotInProgress   Kind = "GAME_NOT_IN_PROGRESS"
	KindGameNotFinished     Kind = "GAME_NOT_FINISHED"
	KindPlayerNotFound      Kind = "PLAYER_NOT_FOUND"
)

// Error is a violated room precondition. Callers map Kind to a response;
// the manager never retries these.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return fmt.Sprintf("%s: %s", e.Kind, e.Message) }

func newError(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// KindOf extracts the Kind from err, or "" if err is not a room error.
func KindOf(err error) Kind {
	var re *Error
	if errors.As(err, &re) {
		return re.Kind
	}
	return ""
}

// IsKind reports whether err is a room error of kind k.
func IsKind(err error, k Kind) bool { return KindOf(err) == k }
