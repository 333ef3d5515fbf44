package repository

import (
	"regexp"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Caden-Dane/Gomoku/internal/apperror"
)

var roomCodePattern = regexp.MustCompile(`^[A-Z0-9]{6}$`)

func TestRoomRegistry_CreateSession(t *testing.T) {
	t.Run("Issues a six character alphanumeric code", func(t *testing.T) {
		// Given: an empty registry
		registry := NewRoomRegistry()

		// When: creating a session
		session := registry.CreateSession("alice-conn", "Alice")

		// Then: the code matches the declared alphabet and length
		assert.Regexp(t, roomCodePattern, session.Code())
	})

	t.Run("Codes are pairwise distinct among live rooms", func(t *testing.T) {
		// Given: a registry filling up
		registry := NewRoomRegistry()
		seen := make(map[string]bool)

		// When: creating many sessions
		for i := 0; i < 500; i++ {
			code := registry.CreateSession("conn", "Player").Code()

			// Then: no code repeats
			require.False(t, seen[code], "duplicate code %s", code)
			seen[code] = true
		}
	})

	t.Run("Concurrent creates never collide", func(t *testing.T) {
		// Given: many creators racing on one registry
		registry := NewRoomRegistry()

		var wg sync.WaitGroup
		codes := make(chan string, 100)
		for i := 0; i < 100; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				codes <- registry.CreateSession("conn", "Player").Code()
			}()
		}
		wg.Wait()
		close(codes)

		// Then: every reservation produced a distinct code
		seen := make(map[string]bool)
		for code := range codes {
			assert.False(t, seen[code], "duplicate code %s", code)
			seen[code] = true
		}
	})
}

func TestRoomRegistry_GetByCode(t *testing.T) {
	t.Run("Finds a live room by its code", func(t *testing.T) {
		registry := NewRoomRegistry()
		created := registry.CreateSession("alice-conn", "Alice")

		session, err := registry.GetByCode(created.Code())

		require.NoError(t, err)
		assert.Same(t, created, session)
	})

	t.Run("Lookup is case-insensitive", func(t *testing.T) {
		// Given: a room registered under its uppercase code
		registry := NewRoomRegistry()
		created := registry.CreateSession("alice-conn", "Alice")

		// When: looking it up in lowercase
		session, err := registry.GetByCode(strings.ToLower(created.Code()))

		// Then: the same session is found
		require.NoError(t, err)
		assert.Same(t, created, session)
	})

	t.Run("Returns RoomNotFound for an unknown code", func(t *testing.T) {
		registry := NewRoomRegistry()

		_, err := registry.GetByCode("NOSUCH")

		assert.ErrorIs(t, err, apperror.ErrRoomNotFound)
	})
}

func TestRoomRegistry_DeleteByCode(t *testing.T) {
	t.Run("A deleted code is no longer resolvable", func(t *testing.T) {
		// Given: a live room
		registry := NewRoomRegistry()
		created := registry.CreateSession("alice-conn", "Alice")

		// When: deleting it
		registry.DeleteByCode(created.Code())

		// Then: lookups fail
		_, err := registry.GetByCode(created.Code())
		assert.ErrorIs(t, err, apperror.ErrRoomNotFound)
	})

	t.Run("Deleting an unknown code is a no-op", func(t *testing.T) {
		registry := NewRoomRegistry()

		registry.DeleteByCode("NOSUCH")
	})
}
