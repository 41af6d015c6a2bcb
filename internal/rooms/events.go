package rooms

import (
	"context"
	"time"

	"github.com/nfrund/pollchat/internal/pubsub"
)

// RoomEvent is the payload of every room lifecycle event.
type RoomEvent struct {
	Room   string    `json:"room"`
	UserID string    `json:"user_id,omitempty"`
	Name   string    `json:"name,omitempty"`
	At     time.Time `json:"at"`
}

var (
	EventRoomCreated   = pubsub.NewEvent[RoomEvent]("rooms.room.created", "A room was created")
	EventRoomExpired   = pubsub.NewEvent[RoomEvent]("rooms.room.expired", "An idle room was swept")
	EventMemberJoined  = pubsub.NewEvent[RoomEvent]("rooms.member.joined", "A user joined a room")
	EventMemberLeft    = pubsub.NewEvent[RoomEvent]("rooms.member.left", "A user left a room")
	EventMemberExpired = pubsub.NewEvent[RoomEvent]("rooms.member.expired", "A silent member was swept")
	EventMessageSent   = pubsub.NewEvent[RoomEvent]("rooms.message.sent", "A chat message was appended")
)

// AllEvents lists every event the store publishes.
var AllEvents = []pubsub.Event[RoomEvent]{
	EventRoomCreated,
	EventRoomExpired,
	EventMemberJoined,
	EventMemberLeft,
	EventMemberExpired,
	EventMessageSent,
}

type pendingEvent struct {
	event   pubsub.Event[RoomEvent]
	payload RoomEvent
}

// outbox collects events while the store lock is held so they can be
// published after it is released.
type outbox struct {
	events []pendingEvent
}

func (o *outbox) add(event pubsub.Event[RoomEvent], payload RoomEvent) {
	o.events = append(o.events, pendingEvent{event: event, payload: payload})
}

func (s *Store) flush(o *outbox) {
	if len(o.events) == 0 {
		return
	}
	ctx := context.Background()
	for _, e := range o.events {
		if err := pubsub.Publish(ctx, s.publisher, e.event, e.payload.Room, e.payload); err != nil {
			s.logger.Error("Failed to publish room event", "topic", e.event.Name(), "room", e.payload.Room, "error", err)
		}
	}
}
