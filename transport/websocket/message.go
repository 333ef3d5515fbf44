package websocket

import (
	"encoding/json"
	"errors"

	"github.com/Caden-Dane/Gomoku/internal/apperror"
	"github.com/Caden-Dane/Gomoku/internal/entity"
)

// Message is the tagged envelope every frame carries in both directions.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Inbound actions form a closed set; anything else is rejected at decode
// time and never reaches the game manager.
const (
	actionCreateRoom = "createRoom"
	actionJoinRoom   = "joinRoom"
	actionPlaceStone = "placeStone"
	actionResetRound = "resetRound"
)

const (
	actionIdentity       = "id"
	actionError          = "error"
	actionSessionStarted = "sessionStarted"
	actionMoveApplied    = "moveApplied"
	actionScoreUpdate    = "scoreUpdate"
	actionSessionReset   = "sessionReset"
	actionPlayerLeft     = "playerLeft"
)

type createRoomPayload struct {
	Name string `json:"name"`
}

type joinRoomPayload struct {
	Room string `json:"room"`
	Name string `json:"name"`
}

// Row and Col are pointers so that an absent coordinate is distinguishable
// from a legal zero.
type placeStonePayload struct {
	Room string `json:"room"`
	Row  *int   `json:"row"`
	Col  *int   `json:"col"`
}

type resetRoundPayload struct {
	Room string `json:"room"`
}

type ackPayload struct {
	Success bool   `json:"success"`
	Room    string `json:"room,omitempty"`
	Error   string `json:"error,omitempty"`
}

type identityPayload struct {
	ID string `json:"id"`
}

type moveAppliedPayload struct {
	Room     string       `json:"room"`
	Row      int          `json:"row"`
	Col      int          `json:"col"`
	Seat     int          `json:"seat"`
	Board    entity.Board `json:"board"`
	TurnSeat int          `json:"currentTurn"`
}

type scoreUpdatePayload struct {
	Scores  map[string]int `json:"scores"`
	Scorer  string         `json:"scorer"`
	WinLine []entity.Coord `json:"winLine"`
}

type sessionResetPayload struct {
	Board    entity.Board   `json:"board"`
	Scores   map[string]int `json:"scores"`
	TurnSeat int            `json:"currentTurn"`
}

type playerLeftPayload struct {
	ID string `json:"id"`
}

// errorCode maps a rule violation to the stable identifier clients switch
// on. Anything unrecognized is reported as an internal error without
// leaking its message.
func errorCode(err error) string {
	switch {
	case errors.Is(err, apperror.ErrRoomNotFound):
		return "RoomNotFound"
	case errors.Is(err, apperror.ErrRoomFull):
		return "RoomFull"
	case errors.Is(err, apperror.ErrRoomNotReady):
		return "RoomNotReady"
	case errors.Is(err, apperror.ErrNotInGame):
		return "NotInGame"
	case errors.Is(err, apperror.ErrNotYourTurn):
		return "NotYourTurn"
	case errors.Is(err, apperror.ErrInvalidPosition):
		return "InvalidPosition"
	case errors.Is(err, apperror.ErrCellOccupied):
		return "CellOccupied"
	case errors.Is(err, apperror.ErrAlreadyInRoom):
		return "AlreadyInRoom"
	default:
		return "InternalError"
	}
}
