package websocket

import (
	"github.com/Caden-Dane/Gomoku/internal/entity"
)

// The server is the dispatcher's broadcast sink. These are called while the
// dispatcher holds the room's lock, so they only translate the event to its
// wire shape and enqueue it; per-connection pumps do the writing.

func (that *Server) SessionStarted(recipients []string, snapshot entity.Snapshot) {
	that.broadcast(recipients, actionSessionStarted, snapshot)
}

func (that *Server) ScoreUpdate(recipients []string, scores map[string]int, scorer string, winLine []entity.Coord) {
	that.broadcast(recipients, actionScoreUpdate, scoreUpdatePayload{
		Scores:  scores,
		Scorer:  scorer,
		WinLine: winLine,
	})
}

func (that *Server) MoveApplied(recipients []string, code string, move entity.MoveOutcome) {
	that.broadcast(recipients, actionMoveApplied, moveAppliedPayload{
		Room:     code,
		Row:      move.Row,
		Col:      move.Col,
		Seat:     move.Seat,
		Board:    move.Board,
		TurnSeat: move.TurnSeat,
	})
}

func (that *Server) SessionReset(recipients []string, reset entity.ResetOutcome) {
	that.broadcast(recipients, actionSessionReset, sessionResetPayload{
		Board:    reset.Board,
		Scores:   reset.Scores,
		TurnSeat: reset.TurnSeat,
	})
}

func (that *Server) PlayerLeft(recipients []string, identity string) {
	that.broadcast(recipients, actionPlayerLeft, playerLeftPayload{ID: identity})
}
