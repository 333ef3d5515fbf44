package entity

import (
	"sync"

	"github.com/Caden-Dane/Gomoku/internal/apperror"
)

const maxSeats = 2

// Session is the authoritative state machine of one room. Every mutating
// method is serialized by the session's own lock, so two messages for the
// same room can never interleave; different rooms proceed in parallel.
type Session struct {
	mu sync.Mutex

	code        string
	board       Board
	seats       []string
	names       map[string]string
	scores      map[string]int
	turnSeat    int
	lastWinLine []Coord
	dissolved   bool
}

// Snapshot is a consistent copy of the session state as broadcast to
// clients.
type Snapshot struct {
	Code     string            `json:"room"`
	Board    Board             `json:"board"`
	Seats    []string          `json:"players"`
	Names    map[string]string `json:"names"`
	Scores   map[string]int    `json:"scores"`
	TurnSeat int               `json:"currentTurn"`
}

// MoveOutcome describes one accepted stone placement.
type MoveOutcome struct {
	Seat     int
	Row      int
	Col      int
	Board    Board
	TurnSeat int

	Scored  bool
	Scorer  string
	WinLine []Coord
	Scores  map[string]int

	Occupants []string
}

// ResetOutcome describes a completed round reset.
type ResetOutcome struct {
	Board     Board
	Scores    map[string]int
	TurnSeat  int
	Occupants []string
}

// LeaveOutcome describes the session after one identity departed.
type LeaveOutcome struct {
	Removed   bool
	Dissolved bool
	Remaining []string
}

// NewSession creates a room with the creator in seat 0 and an empty board.
// The turn pointer is unused until a second seat fills.
func NewSession(code, creator, name string) *Session {
	return &Session{
		code:   code,
		seats:  []string{creator},
		names:  map[string]string{creator: name},
		scores: map[string]int{creator: 0},
	}
}

func (that *Session) Code() string {
	return that.code
}

// Join fills seat 1 and activates the session.
func (that *Session) Join(identity, name string) (Snapshot, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.dissolved {
		return Snapshot{}, apperror.ErrRoomNotFound
	}

	if len(that.seats) >= maxSeats {
		return Snapshot{}, apperror.ErrRoomFull
	}

	that.seats = append(that.seats, identity)
	that.names[identity] = name
	that.scores[identity] = 0

	return that.snapshot(), nil
}

// PlaceStone validates and applies one move. A move is atomic-or-rejected:
// on any error the board and turn pointer are untouched. A move that
// completes a line of WinLength or more scores a point for the mover,
// clears the board and hands the mover the first turn of the next round.
func (that *Session) PlaceStone(identity string, row, col int) (MoveOutcome, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.dissolved {
		return MoveOutcome{}, apperror.ErrRoomNotFound
	}

	seat := that.seatOf(identity)
	if seat < 0 {
		return MoveOutcome{}, apperror.ErrNotInGame
	}

	if len(that.seats) < maxSeats {
		return MoveOutcome{}, apperror.ErrRoomNotReady
	}

	if seat != that.turnSeat {
		return MoveOutcome{}, apperror.ErrNotYourTurn
	}

	if !that.board.InBounds(row, col) {
		return MoveOutcome{}, apperror.ErrInvalidPosition
	}

	if that.board[row][col] != CellEmpty {
		return MoveOutcome{}, apperror.ErrCellOccupied
	}

	mover := CellForSeat(seat)
	that.board[row][col] = mover

	outcome := MoveOutcome{
		Seat:      seat,
		Row:       row,
		Col:       col,
		Occupants: that.occupants(),
	}

	if line := that.board.FindWinLine(row, col, mover); line != nil {
		that.scores[identity]++
		that.lastWinLine = line
		that.board.Clear()
		that.turnSeat = seat

		outcome.Scored = true
		outcome.Scorer = identity
		outcome.WinLine = line
		outcome.Scores = that.scoresCopy()
	} else {
		that.turnSeat = 1 - that.turnSeat
	}

	outcome.Board = that.board
	outcome.TurnSeat = that.turnSeat

	return outcome, nil
}

// ResetRound clears the board and zeroes every current seat's score. Seat
// membership is unchanged.
func (that *Session) ResetRound(identity string) (ResetOutcome, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.dissolved {
		return ResetOutcome{}, apperror.ErrRoomNotFound
	}

	if that.seatOf(identity) < 0 {
		return ResetOutcome{}, apperror.ErrNotInGame
	}

	that.board.Clear()
	that.lastWinLine = nil
	that.turnSeat = 0
	for _, seat := range that.seats {
		that.scores[seat] = 0
	}

	return ResetOutcome{
		Board:     that.board,
		Scores:    that.scoresCopy(),
		TurnSeat:  that.turnSeat,
		Occupants: that.occupants(),
	}, nil
}

// Leave removes an identity from the session. With no seats left the
// session dissolves and must be dropped from the registry; with one seat
// left the board is cleared so a new opponent can join.
func (that *Session) Leave(identity string) LeaveOutcome {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.dissolved {
		return LeaveOutcome{}
	}

	seat := that.seatOf(identity)
	if seat < 0 {
		return LeaveOutcome{}
	}

	that.seats = append(that.seats[:seat], that.seats[seat+1:]...)
	delete(that.names, identity)
	delete(that.scores, identity)

	if len(that.seats) == 0 {
		that.dissolved = true
		return LeaveOutcome{Removed: true, Dissolved: true}
	}

	that.board.Clear()
	that.lastWinLine = nil
	that.turnSeat = 0

	return LeaveOutcome{Removed: true, Remaining: that.occupants()}
}

// Snapshot returns a consistent copy of the session state.
func (that *Session) Snapshot() Snapshot {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.snapshot()
}

func (that *Session) IsAwaitingOpponent() bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	return !that.dissolved && len(that.seats) < maxSeats
}

func (that *Session) IsDissolved() bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.dissolved
}

func (that *Session) snapshot() Snapshot {
	names := make(map[string]string, len(that.names))
	for id, name := range that.names {
		names[id] = name
	}

	return Snapshot{
		Code:     that.code,
		Board:    that.board,
		Seats:    that.occupants(),
		Names:    names,
		Scores:   that.scoresCopy(),
		TurnSeat: that.turnSeat,
	}
}

func (that *Session) seatOf(identity string) int {
	for i, id := range that.seats {
		if id == identity {
			return i
		}
	}
	return -1
}

func (that *Session) occupants() []string {
	return append([]string(nil), that.seats...)
}

func (that *Session) scoresCopy() map[string]int {
	scores := make(map[string]int, len(that.scores))
	for id, score := range that.scores {
		scores[id] = score
	}
	return scores
}
