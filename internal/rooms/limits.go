package rooms

import "time"

const (
	// DefaultRoomTTL is how long a room may go without activity before it is deleted.
	DefaultRoomTTL = 30 * time.Minute

	// DefaultPresenceTimeout is how long a member may stay silent before being
	// dropped from the live list and, at the next sweep, from the room.
	DefaultPresenceTimeout = 15 * time.Second

	// DefaultTypingVisible is how long a typing mark is shown to other members.
	DefaultTypingVisible = 3 * time.Second

	// DefaultTypingStale is the age after which a typing mark is deleted. It is
	// longer than DefaultTypingVisible so marks outlive their display briefly.
	DefaultTypingStale = 5 * time.Second

	DefaultMaxUsers      = 50
	DefaultMaxMessages   = 100
	DefaultMaxMessageLen = 500
	DefaultCodeLength    = 5
)

// Limits holds the tunable thresholds of the room engine.
type Limits struct {
	RoomTTL         time.Duration
	PresenceTimeout time.Duration
	TypingVisible   time.Duration
	TypingStale     time.Duration
	MaxUsers        int
	MaxMessages     int
	MaxMessageLen   int
	CodeLength      int
}

// DefaultLimits returns the limits used when none are configured.
func DefaultLimits() Limits {
	return Limits{
		RoomTTL:         DefaultRoomTTL,
		PresenceTimeout: DefaultPresenceTimeout,
		TypingVisible:   DefaultTypingVisible,
		TypingStale:     DefaultTypingStale,
		MaxUsers:        DefaultMaxUsers,
		MaxMessages:     DefaultMaxMessages,
		MaxMessageLen:   DefaultMaxMessageLen,
		CodeLength:      DefaultCodeLength,
	}
}

// withDefaults fills zero or negative fields from DefaultLimits.
func (l Limits) withDefaults() Limits {
	d := DefaultLimits()
	if l.RoomTTL <= 0 {
		l.RoomTTL = d.RoomTTL
	}
	if l.PresenceTimeout <= 0 {
		l.PresenceTimeout = d.PresenceTimeout
	}
	if l.TypingVisible <= 0 {
		l.TypingVisible = d.TypingVisible
	}
	if l.TypingStale <= 0 {
		l.TypingStale = d.TypingStale
	}
	if l.MaxUsers <= 0 {
		l.MaxUsers = d.MaxUsers
	}
	if l.MaxMessages <= 0 {
		l.MaxMessages = d.MaxMessages
	}
	if l.MaxMessageLen <= 0 {
		l.MaxMessageLen = d.MaxMessageLen
	}
	if l.CodeLength <= 0 {
		l.CodeLength = d.CodeLength
	}
	return l
}
