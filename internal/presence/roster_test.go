package presence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func TestRoster_UpsertAndNames(t *testing.T) {
	r := NewRoster()
	r.Upsert("u2", "Bob", t0.Add(time.Second))
	r.Upsert("u1", "Ann", t0)

	assert.Equal(t, 2, r.Len())
	assert.Equal(t, []string{"Ann", "Bob"}, r.Names())

	// Rejoining with the same id overwrites the record instead of duplicating it.
	r.Upsert("u1", "Annie", t0.Add(2*time.Second))
	assert.Equal(t, 2, r.Len())
	assert.Equal(t, []string{"Bob", "Annie"}, r.Names())
}

func TestRoster_Touch(t *testing.T) {
	r := NewRoster()
	r.Upsert("u1", "Ann", t0)

	assert.True(t, r.Touch("u1", t0.Add(10*time.Second)))
	assert.False(t, r.Touch("ghost", t0.Add(10*time.Second)))

	m, ok := r.Get("u1")
	require.True(t, ok)
	assert.Equal(t, t0, m.JoinedAt)
	assert.Equal(t, t0.Add(10*time.Second), m.LastSeen)
	assert.False(t, r.Has("ghost"))
}

func TestRoster_Remove(t *testing.T) {
	r := NewRoster()
	r.Upsert("u1", "Ann", t0)

	m, ok := r.Remove("u1")
	require.True(t, ok)
	assert.Equal(t, "Ann", m.Name)

	_, ok = r.Remove("u1")
	assert.False(t, ok)
	assert.Equal(t, 0, r.Len())
}

func TestRoster_LiveNames(t *testing.T) {
	const timeout = 15 * time.Second
	r := NewRoster()
	r.Upsert("u1", "Ann", t0)
	r.Upsert("u2", "Bob", t0.Add(time.Second))
	r.Touch("u2", t0.Add(10*time.Second))

	now := t0.Add(16 * time.Second)
	assert.Equal(t, []string{"Bob"}, r.LiveNames(now, timeout))
	assert.Equal(t, 1, r.LiveCount(now, timeout))
	// Raw membership still lists both until swept.
	assert.Equal(t, []string{"Ann", "Bob"}, r.Names())

	m, _ := r.Get("u1")
	assert.Equal(t, StatusOffline, m.Status(now, timeout))
}

func TestRoster_SweepStale(t *testing.T) {
	const timeout = 15 * time.Second
	r := NewRoster()
	r.Upsert("u1", "Ann", t0)
	r.Upsert("u2", "Bob", t0.Add(5*time.Second))

	t.Run("keeps members exactly at the threshold", func(t *testing.T) {
		assert.Empty(t, r.SweepStale(t0.Add(timeout), timeout))
		assert.Equal(t, 2, r.Len())
	})

	t.Run("removes members past the threshold", func(t *testing.T) {
		stale := r.SweepStale(t0.Add(timeout+time.Millisecond), timeout)
		require.Len(t, stale, 1)
		assert.Equal(t, "u1", stale[0].UserID)
		assert.Equal(t, []string{"Bob"}, r.Names())
	})
}
