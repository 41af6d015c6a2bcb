package presence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTypingBoard_Visible(t *testing.T) {
	const window = 3 * time.Second
	b := NewTypingBoard()
	b.Mark("u1", "Ann", t0)
	b.Mark("u2", "Bob", t0.Add(time.Second))

	t.Run("hides the viewer's own mark", func(t *testing.T) {
		assert.Equal(t, []string{"Bob"}, b.Visible("u1", t0.Add(time.Second), window))
		assert.Equal(t, []string{"Ann"}, b.Visible("u2", t0.Add(time.Second), window))
	})

	t.Run("shows everyone to a non-typing viewer in mark order", func(t *testing.T) {
		assert.Equal(t, []string{"Ann", "Bob"}, b.Visible("u3", t0.Add(time.Second), window))
	})

	t.Run("drops marks outside the window without deleting them", func(t *testing.T) {
		assert.Equal(t, []string{"Bob"}, b.Visible("u3", t0.Add(3500*time.Millisecond), window))
		assert.Equal(t, 2, b.Len())
	})
}

func TestTypingBoard_MarkOverwrites(t *testing.T) {
	b := NewTypingBoard()
	b.Mark("u1", "Ann", t0)
	b.Mark("u1", "Annie", t0.Add(4*time.Second))

	assert.Equal(t, 1, b.Len())
	assert.Equal(t, []string{"Annie"}, b.Visible("u2", t0.Add(5*time.Second), 3*time.Second))
}

func TestTypingBoard_Purge(t *testing.T) {
	const stale = 5 * time.Second
	b := NewTypingBoard()
	b.Mark("u1", "Ann", t0)
	b.Mark("u2", "Bob", t0.Add(2*time.Second))

	assert.Equal(t, 0, b.Purge(t0.Add(stale), stale))
	assert.Equal(t, 1, b.Purge(t0.Add(6*time.Second), stale))
	assert.False(t, b.Has("u1"))
	assert.True(t, b.Has("u2"))
}

func TestTypingBoard_PurgeOwners(t *testing.T) {
	b := NewTypingBoard()
	b.Mark("u1", "Ann", t0)
	b.Mark("u2", "Bob", t0)

	removed := b.PurgeOwners(func(id string) bool { return id == "u1" })
	assert.Equal(t, 1, removed)
	assert.True(t, b.Has("u1"))
	assert.False(t, b.Has("u2"))
}
