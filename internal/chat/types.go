package chat

import (
	"github.com/RodrigoMarques16/Networks-18/internal/protocol"
)

// State tracks where a session is in its lifecycle.
type State int

const (
	// StateUnregistered is the initial state: connected, no nickname yet.
	StateUnregistered State = iota
	// StateIdle means a nickname is set but the session is in no room.
	StateIdle
	// StateInRoom means the session is a member of exactly one room.
	StateInRoom
)

// outboundQueueSize caps the per-session outbound queue. A session whose
// queue fills up is disconnected rather than blocked on, so a stalled
// peer bounds memory without desynchronizing protocol replies.
const outboundQueueSize = 256

// Session is the server-side state for one connected client. Every field
// except the outbound queue is owned by the event loop goroutine; the
// queue is drained by the session's writer goroutine.
type Session struct {
	ID    int64
	Nick  string
	State State
	Room  string // room name, "" when not in a room

	tr     transport
	out    chan []byte
	closed bool // set by the event loop once torn down
}

// enqueue appends one encoded frame to the outbound queue without
// blocking. It reports false when the queue is full; the caller decides
// whether that kills the session.
func (s *Session) enqueue(m protocol.Message) bool {
	if s.closed {
		return true
	}
	select {
	case s.out <- []byte(m.Encode()):
		return true
	default:
		return false
	}
}

type eventType int

const (
	evAttach eventType = iota
	evCommand
	evDetach
)

// event is the only way session, room and registry state gets mutated:
// reader goroutines produce events, the single Run loop consumes them.
type event struct {
	typ  eventType
	sess *Session
	cmd  protocol.Command
	err  error // parse failure carried alongside evCommand
}

var (
	ErrNameInUse     = errorString("name in use")
	ErrNickInvalid   = errorString("invalid nickname")
	ErrNotRegistered = errorString("no nickname set")
	ErrAlreadyInRoom = errorString("already in that room")
	ErrNotInRoom     = errorString("not in a room")
	ErrUnknownUser   = errorString("unknown user")
	ErrSelfTarget    = errorString("cannot target self")
)

type errorString string

func (e errorString) Error() string { return string(e) }
