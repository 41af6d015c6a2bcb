package presence

import (
	"sort"
	"time"
)

type Status string

const (
	StatusOnline  Status = "online"
	StatusOffline Status = "offline"
)

// Member is the presence record of one user inside a room.
type Member struct {
	UserID   string    `json:"user_id"`
	Name     string    `json:"name"`
	JoinedAt time.Time `json:"joined_at"`
	LastSeen time.Time `json:"last_seen"`
}

// Status reports whether the member has been heard from within timeout.
func (m Member) Status(now time.Time, timeout time.Duration) Status {
	if now.Sub(m.LastSeen) < timeout {
		return StatusOnline
	}
	return StatusOffline
}

// Roster tracks the members of a single room keyed by user id.
// It is not safe for concurrent use; the owning room store serializes access.
type Roster struct {
	members map[string]*Member
}

// NewRoster returns an empty roster.
func NewRoster() *Roster {
	return &Roster{members: make(map[string]*Member)}
}

// Upsert inserts the member or overwrites an existing record with the same id.
// Both JoinedAt and LastSeen are reset to now.
func (r *Roster) Upsert(userID, name string, now time.Time) Member {
	m := &Member{
		UserID:   userID,
		Name:     name,
		JoinedAt: now,
		LastSeen: now,
	}
	r.members[userID] = m
	return *m
}

// Remove deletes the member and returns the removed record.
func (r *Roster) Remove(userID string) (Member, bool) {
	m, ok := r.members[userID]
	if !ok {
		return Member{}, false
	}
	delete(r.members, userID)
	return *m, true
}

// Touch refreshes the heartbeat of a known member. Unknown ids are ignored.
func (r *Roster) Touch(userID string, now time.Time) bool {
	m, ok := r.members[userID]
	if !ok {
		return false
	}
	m.LastSeen = now
	return true
}

// Get returns a copy of the member record.
func (r *Roster) Get(userID string) (Member, bool) {
	m, ok := r.members[userID]
	if !ok {
		return Member{}, false
	}
	return *m, true
}

// Has reports whether userID is a member.
func (r *Roster) Has(userID string) bool {
	_, ok := r.members[userID]
	return ok
}

// Len returns the number of members, live or not.
func (r *Roster) Len() int {
	return len(r.members)
}

// Names returns the display names of every member in join order.
func (r *Roster) Names() []string {
	sorted := r.sorted()
	names := make([]string, 0, len(sorted))
	for _, m := range sorted {
		names = append(names, m.Name)
	}
	return names
}

// LiveNames returns the display names of members seen within timeout, in join order.
func (r *Roster) LiveNames(now time.Time, timeout time.Duration) []string {
	sorted := r.sorted()
	names := make([]string, 0, len(sorted))
	for _, m := range sorted {
		if m.Status(now, timeout) == StatusOnline {
			names = append(names, m.Name)
		}
	}
	return names
}

// LiveCount returns how many members are online at now.
func (r *Roster) LiveCount(now time.Time, timeout time.Duration) int {
	n := 0
	for _, m := range r.members {
		if m.Status(now, timeout) == StatusOnline {
			n++
		}
	}
	return n
}

// SweepStale removes members whose last heartbeat is older than timeout and
// returns them. A member exactly at the threshold is kept.
func (r *Roster) SweepStale(now time.Time, timeout time.Duration) []Member {
	var stale []Member
	for id, m := range r.members {
		if now.Sub(m.LastSeen) > timeout {
			stale = append(stale, *m)
			delete(r.members, id)
		}
	}
	sort.Slice(stale, func(i, j int) bool { return stale[i].UserID < stale[j].UserID })
	return stale
}

func (r *Roster) sorted() []*Member {
	out := make([]*Member, 0, len(r.members))
	for _, m := range r.members {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].JoinedAt.Equal(out[j].JoinedAt) {
			return out[i].JoinedAt.Before(out[j].JoinedAt)
		}
		return out[i].UserID < out[j].UserID
	})
	return out
}
