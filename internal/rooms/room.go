package rooms

import (
	"time"

	"github.com/google/uuid"
	"github.com/nfrund/pollchat/internal/presence"
)

type MessageKind string

const (
	KindSystem MessageKind = "system"
	KindChat   MessageKind = "chat"
)

// Message is an immutable entry of a room's history.
type Message struct {
	ID     string
	Kind   MessageKind
	Author string // empty for system messages
	Text   string
	SentAt time.Time
	// Stamp is the polling cursor in Unix milliseconds. It never decreases
	// within a room and is always greater than any ServerTS already handed out.
	Stamp int64
}

// Room is the state of one chat room. All fields are guarded by the Store lock.
type Room struct {
	code      string
	roster    *presence.Roster
	typing    *presence.TypingBoard
	messages  []Message
	createdAt time.Time
	updatedAt time.Time
	// watermark is the highest ServerTS returned to a poller of this room.
	watermark int64
}

func newRoom(code string, now time.Time) *Room {
	return &Room{
		code:      code,
		roster:    presence.NewRoster(),
		typing:    presence.NewTypingBoard(),
		createdAt: now,
		updatedAt: now,
	}
}

// touch records activity for room-level expiry.
func (r *Room) touch(now time.Time) {
	r.updatedAt = now
}

func (r *Room) expired(now time.Time, ttl time.Duration) bool {
	return now.Sub(r.updatedAt) > ttl
}

func (r *Room) lastStamp() int64 {
	if len(r.messages) == 0 {
		return 0
	}
	return r.messages[len(r.messages)-1].Stamp
}

// appendMessage adds a message and drops the oldest entries beyond limit.
func (r *Room) appendMessage(kind MessageKind, author, text string, now time.Time, limit int) Message {
	stamp := max(now.UnixMilli(), r.watermark+1, r.lastStamp())
	msg := Message{
		ID:     uuid.NewString(),
		Kind:   kind,
		Author: author,
		Text:   text,
		SentAt: now,
		Stamp:  stamp,
	}
	r.messages = append(r.messages, msg)

	if drop := len(r.messages) - limit; drop > 0 {
		n := copy(r.messages, r.messages[drop:])
		clear(r.messages[n:])
		r.messages = r.messages[:n]
	}
	return msg
}

// messagesSince returns a copy of the messages with Stamp strictly after since.
func (r *Room) messagesSince(since int64) []Message {
	out := make([]Message, 0)
	for _, m := range r.messages {
		if m.Stamp > since {
			out = append(out, m)
		}
	}
	return out
}

// serve returns the cursor for a poll answered at now and raises the watermark
// so later messages sort after it.
func (r *Room) serve(now time.Time) int64 {
	ts := max(now.UnixMilli(), r.lastStamp())
	if ts > r.watermark {
		r.watermark = ts
	}
	return ts
}
