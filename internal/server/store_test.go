package server

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreCreatesOnFirstReference(t *testing.T) {
	store := NewInMemorySessionStore(SessionOptions{
		UseJokers:    true,
		BotTurnDelay: 25 * time.Millisecond,
	})

	sess := store.Get("fellowship")
	require.NotNil(t, sess)
	assert.Equal(t, "fellowship", sess.Name)
	assert.True(t, sess.UseJokers, "store options must apply to new sessions")
	assert.Equal(t, 25*time.Millisecond, sess.BotTurnDelay)
	assert.Equal(t, 1, store.Count())

	// Same ID resolves to the same live session.
	again := store.Get("fellowship")
	assert.Same(t, sess, again)
	assert.Equal(t, 1, store.Count())

	other := store.Get("mordor")
	assert.NotSame(t, sess, other)
	assert.Equal(t, 2, store.Count())
}

func TestStoreRemove(t *testing.T) {
	store := NewInMemorySessionStore(SessionOptions{})
	first := store.Get("shire")
	store.Remove("shire")
	assert.Equal(t, 0, store.Count())

	// A removed ID creates a fresh session on the next reference.
	second := store.Get("shire")
	assert.NotSame(t, first, second)
}
