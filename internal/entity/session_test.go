package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Caden-Dane/Gomoku/internal/apperror"
)

const (
	aliceID = "alice-conn"
	bobID   = "bob-conn"
)

func newActiveSession(t *testing.T) *Session {
	t.Helper()

	session := NewSession("AB12C3", aliceID, "Alice")
	_, err := session.Join(bobID, "Bob")
	require.NoError(t, err)

	return session
}

// placeRun alternates moves so that the given identity ends up with a
// near-complete horizontal run on row 7 while the opponent stacks stones
// far away on row 0.
func placeRun(t *testing.T, session *Session, length int) {
	t.Helper()

	for i := 0; i < length; i++ {
		_, err := session.PlaceStone(aliceID, 7, 3+i)
		require.NoError(t, err)

		_, err = session.PlaceStone(bobID, 0, i)
		require.NoError(t, err)
	}
}

func TestSession_Join(t *testing.T) {
	t.Run("Second player activates the session", func(t *testing.T) {
		// Given: a freshly created room
		session := NewSession("AB12C3", aliceID, "Alice")
		require.True(t, session.IsAwaitingOpponent())

		// When: a second player joins
		snapshot, err := session.Join(bobID, "Bob")

		// Then: the snapshot shows both seats with zeroed scores and seat 0 to move
		require.NoError(t, err)
		assert.Equal(t, []string{aliceID, bobID}, snapshot.Seats)
		assert.Equal(t, map[string]string{aliceID: "Alice", bobID: "Bob"}, snapshot.Names)
		assert.Equal(t, map[string]int{aliceID: 0, bobID: 0}, snapshot.Scores)
		assert.Equal(t, 0, snapshot.TurnSeat)
		assert.False(t, session.IsAwaitingOpponent())
	})

	t.Run("Third player is rejected with RoomFull", func(t *testing.T) {
		// Given: an active session with two seats
		session := newActiveSession(t)

		// When: a third identity tries to join
		_, err := session.Join("carol-conn", "Carol")

		// Then: the join is rejected
		assert.ErrorIs(t, err, apperror.ErrRoomFull)
	})
}

func TestSession_PlaceStone(t *testing.T) {
	t.Run("Rejects a move from an unseated identity", func(t *testing.T) {
		session := newActiveSession(t)

		_, err := session.PlaceStone("carol-conn", 7, 7)

		assert.ErrorIs(t, err, apperror.ErrNotInGame)
	})

	t.Run("Rejects a move before the second seat fills", func(t *testing.T) {
		session := NewSession("AB12C3", aliceID, "Alice")

		_, err := session.PlaceStone(aliceID, 7, 7)

		assert.ErrorIs(t, err, apperror.ErrRoomNotReady)
	})

	t.Run("Rejects a move out of turn", func(t *testing.T) {
		session := newActiveSession(t)

		_, err := session.PlaceStone(bobID, 7, 7)

		assert.ErrorIs(t, err, apperror.ErrNotYourTurn)
	})

	t.Run("Rejects an out-of-bounds coordinate", func(t *testing.T) {
		session := newActiveSession(t)

		for _, coord := range []Coord{{-1, 0}, {0, -1}, {BoardSize, 0}, {0, BoardSize}} {
			_, err := session.PlaceStone(aliceID, coord[0], coord[1])
			assert.ErrorIs(t, err, apperror.ErrInvalidPosition)
		}
	})

	t.Run("Rejects a move onto an occupied cell", func(t *testing.T) {
		// Given: a stone already placed at (7,7)
		session := newActiveSession(t)
		_, err := session.PlaceStone(aliceID, 7, 7)
		require.NoError(t, err)

		// When: the opponent targets the same cell
		_, err = session.PlaceStone(bobID, 7, 7)

		// Then: the move is rejected and the turn is unchanged
		assert.ErrorIs(t, err, apperror.ErrCellOccupied)
		assert.Equal(t, 1, session.Snapshot().TurnSeat)
	})

	t.Run("A rejected move leaves board and turn untouched", func(t *testing.T) {
		// Given: an active session
		session := newActiveSession(t)
		before := session.Snapshot()

		// When: the wrong player moves
		_, err := session.PlaceStone(bobID, 3, 3)

		// Then: nothing changed
		require.Error(t, err)
		assert.Equal(t, before, session.Snapshot())
	})

	t.Run("An accepted move writes the seat's cell and toggles the turn", func(t *testing.T) {
		session := newActiveSession(t)

		outcome, err := session.PlaceStone(aliceID, 7, 7)

		require.NoError(t, err)
		assert.False(t, outcome.Scored)
		assert.Equal(t, 0, outcome.Seat)
		assert.Equal(t, CellBlack, outcome.Board[7][7])
		assert.Equal(t, 1, outcome.TurnSeat)
		assert.Equal(t, []string{aliceID, bobID}, outcome.Occupants)
	})

	t.Run("A scoring move clears the board and hands the scorer the turn", func(t *testing.T) {
		// Given: four stones of a horizontal run at (7,3)..(7,6)
		session := newActiveSession(t)
		placeRun(t, session, 4)

		// When: the fifth stone completes the line
		outcome, err := session.PlaceStone(aliceID, 7, 7)

		// Then: the scorer earns a point, the board is wiped and keeps the turn
		require.NoError(t, err)
		assert.True(t, outcome.Scored)
		assert.Equal(t, aliceID, outcome.Scorer)
		assert.Equal(t, map[string]int{aliceID: 1, bobID: 0}, outcome.Scores)
		assert.Len(t, outcome.WinLine, 5)
		assert.Equal(t, Board{}, outcome.Board)
		assert.Equal(t, 0, outcome.TurnSeat)
	})
}

func TestSession_ResetRound(t *testing.T) {
	t.Run("Clears the board and zeroes every current score", func(t *testing.T) {
		// Given: a session mid-round with a score on the table
		session := newActiveSession(t)
		placeRun(t, session, 4)
		_, err := session.PlaceStone(aliceID, 7, 7)
		require.NoError(t, err)

		// When: either seat requests a reset
		outcome, err := session.ResetRound(bobID)

		// Then: board empty, scores zeroed, seat 0 to move, membership intact
		require.NoError(t, err)
		assert.Equal(t, Board{}, outcome.Board)
		assert.Equal(t, map[string]int{aliceID: 0, bobID: 0}, outcome.Scores)
		assert.Equal(t, 0, outcome.TurnSeat)
		assert.Equal(t, []string{aliceID, bobID}, outcome.Occupants)
	})

	t.Run("Rejects a reset from an unseated identity", func(t *testing.T) {
		session := newActiveSession(t)

		_, err := session.ResetRound("carol-conn")

		assert.ErrorIs(t, err, apperror.ErrNotInGame)
	})
}

func TestSession_Leave(t *testing.T) {
	t.Run("One seat remaining resets the board for a new opponent", func(t *testing.T) {
		// Given: an active session with stones on the board
		session := newActiveSession(t)
		_, err := session.PlaceStone(aliceID, 7, 7)
		require.NoError(t, err)

		// When: the creator leaves
		outcome := session.Leave(aliceID)

		// Then: the session awaits a new opponent with a clean board
		assert.True(t, outcome.Removed)
		assert.False(t, outcome.Dissolved)
		assert.Equal(t, []string{bobID}, outcome.Remaining)

		snapshot := session.Snapshot()
		assert.Equal(t, Board{}, snapshot.Board)
		assert.Equal(t, 0, snapshot.TurnSeat)
		assert.NotContains(t, snapshot.Scores, aliceID)
		assert.True(t, session.IsAwaitingOpponent())
	})

	t.Run("Last seat leaving dissolves the session", func(t *testing.T) {
		// Given: a room with only its creator
		session := NewSession("AB12C3", aliceID, "Alice")

		// When: the creator leaves
		outcome := session.Leave(aliceID)

		// Then: the session is dissolved and refuses further mutation
		assert.True(t, outcome.Dissolved)
		assert.True(t, session.IsDissolved())

		_, err := session.Join(bobID, "Bob")
		assert.ErrorIs(t, err, apperror.ErrRoomNotFound)
	})

	t.Run("Leaving twice is a no-op", func(t *testing.T) {
		session := newActiveSession(t)
		session.Leave(aliceID)

		outcome := session.Leave(aliceID)

		assert.False(t, outcome.Removed)
	})

	t.Run("A new opponent can join after a departure", func(t *testing.T) {
		// Given: a session whose second seat just emptied
		session := newActiveSession(t)
		session.Leave(bobID)

		// When: a new player takes the open seat
		snapshot, err := session.Join("carol-conn", "Carol")

		// Then: the session is active again
		require.NoError(t, err)
		assert.Equal(t, []string{aliceID, "carol-conn"}, snapshot.Seats)
	})
}
