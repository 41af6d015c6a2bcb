// Package rooms is the in-memory room engine behind the polling chat relay.
//
// All rooms live in a single Store guarded by one mutex. Every exported
// operation takes the lock, sweeps expired rooms and stale members, performs
// its action and returns a copy of the state it needs, so callers never hold
// references into shared state. Sweeping inline costs O(rooms + members) per
// call; that is the scalability ceiling of this design.
package rooms

import (
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/nfrund/pollchat/internal/pubsub"
)

// Store owns every room of the process.
type Store struct {
	mu        sync.Mutex
	rooms     map[string]*Room
	clock     clockwork.Clock
	limits    Limits
	logger    *slog.Logger
	publisher pubsub.Publisher
	newCode   CodeGenerator
}

// Option is a function that configures a Store.
type Option func(*Store)

// WithClock sets the time source used for every expiry decision.
func WithClock(c clockwork.Clock) Option {
	return func(s *Store) {
		s.clock = c
	}
}

// WithLimits overrides the engine thresholds. Zero fields keep their defaults.
func WithLimits(l Limits) Option {
	return func(s *Store) {
		s.limits = l.withDefaults()
	}
}

// WithLogger sets the logger; the store adds its own "service" attribute.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		s.logger = l
	}
}

// WithPublisher sets where room events are published.
func WithPublisher(p pubsub.Publisher) Option {
	return func(s *Store) {
		s.publisher = p
	}
}

// WithCodeGenerator replaces the random room code generator.
func WithCodeGenerator(g CodeGenerator) Option {
	return func(s *Store) {
		s.newCode = g
	}
}

// NewStore creates an empty store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		rooms:     make(map[string]*Room),
		clock:     clockwork.NewRealClock(),
		limits:    DefaultLimits(),
		logger:    slog.Default(),
		publisher: pubsub.Nop{},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("service", "rooms")

	if s.newCode == nil {
		gen, err := NewCodeGenerator(s.limits.CodeLength)
		if err != nil {
			s.logger.Warn("Invalid room code length, using default", "length", s.limits.CodeLength, "error", err)
			gen, _ = NewCodeGenerator(DefaultCodeLength)
		}
		s.newCode = gen
	}
	return s
}

// Limits returns the thresholds in effect.
func (s *Store) Limits() Limits {
	return s.limits
}

// get returns the room for code. The caller holds s.mu and has swept.
func (s *Store) get(code string) (*Room, bool) {
	r, ok := s.rooms[code]
	return r, ok
}

// getOrCreate returns the room for code, registering an empty one if needed.
// The caller holds s.mu.
func (s *Store) getOrCreate(code string, now time.Time) (*Room, bool) {
	if r, ok := s.rooms[code]; ok {
		return r, false
	}
	r := newRoom(code, now)
	s.rooms[code] = r
	return r, true
}

// delete drops a room with all its members, messages and typing marks.
// The caller holds s.mu.
func (s *Store) delete(code string) {
	delete(s.rooms, code)
}

// Len returns the number of registered rooms without sweeping.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rooms)
}

// RoomStats is a point-in-time summary of one room.
type RoomStats struct {
	Code      string
	Members   int
	Live      int
	Messages  int
	Typing    int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Stats sweeps and returns a summary of every room ordered by code.
func (s *Store) Stats() []RoomStats {
	var out outbox
	defer s.flush(&out)

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	s.sweep(now, &out)

	stats := make([]RoomStats, 0, len(s.rooms))
	for code, r := range s.rooms {
		stats = append(stats, RoomStats{
			Code:      code,
			Members:   r.roster.Len(),
			Live:      r.roster.LiveCount(now, s.limits.PresenceTimeout),
			Messages:  len(r.messages),
			Typing:    r.typing.Len(),
			CreatedAt: r.createdAt,
			UpdatedAt: r.updatedAt,
		})
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].Code < stats[j].Code })
	return stats
}
