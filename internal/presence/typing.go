package presence

import (
	"sort"
	"time"
)

// Mark is the most recent typing signal of one user.
type Mark struct {
	UserID   string
	Name     string
	MarkedAt time.Time
}

// TypingBoard holds typing marks for a room. Like Roster it relies on the
// caller for synchronization.
type TypingBoard struct {
	marks map[string]Mark
}

// NewTypingBoard returns an empty board.
func NewTypingBoard() *TypingBoard {
	return &TypingBoard{marks: make(map[string]Mark)}
}

// Mark records (or overwrites) a typing signal.
func (b *TypingBoard) Mark(userID, name string, now time.Time) {
	b.marks[userID] = Mark{UserID: userID, Name: name, MarkedAt: now}
}

// Visible returns the names of marks younger than window, excluding the
// viewer's own mark. Names are ordered by mark time.
func (b *TypingBoard) Visible(viewer string, now time.Time, window time.Duration) []string {
	marks := make([]Mark, 0, len(b.marks))
	for id, m := range b.marks {
		if id == viewer {
			continue
		}
		if now.Sub(m.MarkedAt) < window {
			marks = append(marks, m)
		}
	}
	sort.Slice(marks, func(i, j int) bool {
		if !marks[i].MarkedAt.Equal(marks[j].MarkedAt) {
			return marks[i].MarkedAt.Before(marks[j].MarkedAt)
		}
		return marks[i].UserID < marks[j].UserID
	})

	names := make([]string, 0, len(marks))
	for _, m := range marks {
		names = append(names, m.Name)
	}
	return names
}

// Purge deletes marks older than stale and returns how many were removed.
func (b *TypingBoard) Purge(now time.Time, stale time.Duration) int {
	n := 0
	for id, m := range b.marks {
		if now.Sub(m.MarkedAt) > stale {
			delete(b.marks, id)
			n++
		}
	}
	return n
}

// PurgeOwners deletes every mark whose owner is rejected by keep.
func (b *TypingBoard) PurgeOwners(keep func(userID string) bool) int {
	n := 0
	for id := range b.marks {
		if !keep(id) {
			delete(b.marks, id)
			n++
		}
	}
	return n
}

// Has reports whether userID currently holds a mark.
func (b *TypingBoard) Has(userID string) bool {
	_, ok := b.marks[userID]
	return ok
}

// Len returns the number of stored marks, visible or not.
func (b *TypingBoard) Len() int {
	return len(b.marks)
}
