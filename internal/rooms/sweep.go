package rooms

import (
	"context"
	"time"
)

// sweep deletes idle rooms and removes stale members and typing marks.
// The caller holds s.mu. Removing members is housekeeping and does not count
// as room activity.
func (s *Store) sweep(now time.Time, out *outbox) {
	for code, r := range s.rooms {
		if r.expired(now, s.limits.RoomTTL) {
			s.delete(code)
			s.logger.Info("Room expired", "room", code, "idle", now.Sub(r.updatedAt))
			out.add(EventRoomExpired, RoomEvent{Room: code, At: now})
			continue
		}

		for _, m := range r.roster.SweepStale(now, s.limits.PresenceTimeout) {
			s.logger.Debug("Member timed out", "room", code, "user_id", m.UserID)
			out.add(EventMemberExpired, RoomEvent{Room: code, UserID: m.UserID, Name: m.Name, At: now})
		}

		r.typing.Purge(now, s.limits.TypingStale)
		r.typing.PurgeOwners(r.roster.Has)
	}
}

// Sweep runs one sweep pass immediately.
func (s *Store) Sweep() {
	var out outbox
	defer s.flush(&out)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweep(s.clock.Now(), &out)
}

// RunJanitor sweeps on a fixed interval until ctx is done. Operations keep
// sweeping inline regardless; the janitor only bounds how long garbage of
// rooms nobody touches stays in memory.
func (s *Store) RunJanitor(ctx context.Context, interval time.Duration) {
	ticker := s.clock.NewTicker(interval)
	defer ticker.Stop()

	s.logger.Info("Room janitor started", "interval", interval)
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Room janitor stopped")
			return
		case <-ticker.Chan():
			s.Sweep()
		}
	}
}
