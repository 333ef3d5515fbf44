package websocket

import (
	"encoding/json"
	"fmt"

	"github.com/Caden-Dane/Gomoku/internal/apperror"
)

func (that *Server) handleCreateRoom(c *client, payload json.RawMessage) error {
	var req createRoomPayload
	if err := that.decodePayload(c, actionCreateRoom, payload, &req); err != nil {
		return err
	}

	result, err := that.game.CreateRoom(c.id, req.Name)
	if err != nil {
		that.sendAckError(c, actionCreateRoom, err)
		return nil
	}

	that.sendTo(c.id, actionCreateRoom, ackPayload{Success: true, Room: result.Code})

	return nil
}

func (that *Server) handleJoinRoom(c *client, payload json.RawMessage) error {
	var req joinRoomPayload
	if err := that.decodePayload(c, actionJoinRoom, payload, &req); err != nil {
		return err
	}

	if _, err := that.game.JoinRoom(c.id, req.Room, req.Name); err != nil {
		that.sendAckError(c, actionJoinRoom, err)
		return nil
	}

	that.sendTo(c.id, actionJoinRoom, ackPayload{Success: true})

	return nil
}

func (that *Server) handlePlaceStone(c *client, payload json.RawMessage) error {
	var req placeStonePayload
	if err := that.decodePayload(c, actionPlaceStone, payload, &req); err != nil {
		return err
	}

	if req.Row == nil || req.Col == nil {
		that.sendAckError(c, actionPlaceStone, apperror.ErrInvalidPosition)
		return nil
	}

	if _, err := that.game.PlaceStone(c.id, req.Room, *req.Row, *req.Col); err != nil {
		that.sendAckError(c, actionPlaceStone, err)
		return nil
	}

	that.sendTo(c.id, actionPlaceStone, ackPayload{Success: true})

	return nil
}

func (that *Server) handleResetRound(c *client, payload json.RawMessage) error {
	var req resetRoundPayload
	if err := that.decodePayload(c, actionResetRound, payload, &req); err != nil {
		return err
	}

	if _, err := that.game.ResetRound(c.id, req.Room); err != nil {
		that.sendAckError(c, actionResetRound, err)
		return nil
	}

	that.sendTo(c.id, actionResetRound, ackPayload{Success: true})

	return nil
}

// decodePayload unmarshals an inbound payload, answering the caller with a
// decode error when it is ill-formed. An empty payload decodes all fields
// to their zero values, matching an empty object.
func (that *Server) decodePayload(c *client, action string, payload json.RawMessage, into any) error {
	if len(payload) == 0 {
		return nil
	}

	if err := json.Unmarshal(payload, into); err != nil {
		that.sendTo(c.id, actionError, ackPayload{Error: "malformed payload"})
		return fmt.Errorf("failed to unmarshal %s payload: %w", action, err)
	}

	return nil
}

// sendAckError reports a rejected operation to the originating connection
// only; the other occupant never hears about it.
func (that *Server) sendAckError(c *client, action string, err error) {
	that.sendTo(c.id, action, ackPayload{Error: errorCode(err)})
}
