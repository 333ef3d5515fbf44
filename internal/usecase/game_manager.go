package usecase

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/Caden-Dane/Gomoku/internal/apperror"
	"github.com/Caden-Dane/Gomoku/internal/entity"
	"github.com/Caden-Dane/Gomoku/internal/repository"
)

const (
	defaultCreatorName = "Player 1"
	defaultJoinerName  = "Player 2"
)

type roomRegistry interface {
	CreateSession(creator, name string) *entity.Session
	GetByCode(code string) (*entity.Session, error)
	DeleteByCode(code string)
}

type connectionGateway interface {
	Bind(identity, code string, seat int) error
	Rebind(identity, code string, seat int)
	Resolve(identity string) (repository.Binding, error)
	Unbind(identity string)
}

// broadcaster delivers one event to each recipient. The dispatcher calls it
// while holding the room's lock, so implementations must only enqueue,
// never block.
type broadcaster interface {
	SessionStarted(recipients []string, snapshot entity.Snapshot)
	ScoreUpdate(recipients []string, scores map[string]int, scorer string, winLine []entity.Coord)
	MoveApplied(recipients []string, code string, move entity.MoveOutcome)
	SessionReset(recipients []string, reset entity.ResetOutcome)
	PlayerLeft(recipients []string, identity string)
}

// CreateRoomResult carries the code acknowledged to the creator.
type CreateRoomResult struct {
	Code string
}

// JoinRoomResult carries the full session snapshot broadcast to both seats.
type JoinRoomResult struct {
	Snapshot entity.Snapshot
}

// MoveResult carries one accepted move.
type MoveResult struct {
	Code string
	Move entity.MoveOutcome
}

// ResetResult carries the fresh board and zeroed scores.
type ResetResult struct {
	Code  string
	Reset entity.ResetOutcome
}

// DisconnectResult names the departed identity and who was told. An empty
// Departed means the disconnect touched no room.
type DisconnectResult struct {
	Departed   string
	Recipients []string
}

// GameManager resolves inbound intents against the registry and gateway,
// invokes the session operation and fans the resulting broadcasts out while
// the room is still serialized, so every occupant observes events in the
// order the room committed them. Acknowledgements stay with the transport.
type GameManager struct {
	logger  *slog.Logger
	rooms   roomRegistry
	gateway connectionGateway
	events  broadcaster

	locks sync.Map // room code -> *sync.Mutex
}

func NewGameManager(logger *slog.Logger, rooms roomRegistry, gateway connectionGateway, events broadcaster) *GameManager {
	return &GameManager{
		logger:  logger.With("component", "game-manager"),
		rooms:   rooms,
		gateway: gateway,
		events:  events,
	}
}

// CreateRoom opens a fresh session with the caller in seat 0.
func (that *GameManager) CreateRoom(identity, name string) (*CreateRoomResult, error) {
	if _, err := that.gateway.Resolve(identity); err == nil {
		return nil, apperror.ErrAlreadyInRoom
	}

	if name == "" {
		name = defaultCreatorName
	}

	session := that.rooms.CreateSession(identity, name)

	if err := that.gateway.Bind(identity, session.Code(), 0); err != nil {
		that.rooms.DeleteByCode(session.Code())
		return nil, fmt.Errorf("failed to bind creator: %w", err)
	}

	that.logger.Info("room created", "room", session.Code(), "identity", identity)

	return &CreateRoomResult{Code: session.Code()}, nil
}

// JoinRoom seats the caller as the second player and activates the session.
func (that *GameManager) JoinRoom(identity, code, name string) (*JoinRoomResult, error) {
	if _, err := that.gateway.Resolve(identity); err == nil {
		return nil, apperror.ErrAlreadyInRoom
	}

	session, err := that.rooms.GetByCode(code)
	if err != nil {
		return nil, fmt.Errorf("failed to get room: %w", err)
	}

	if name == "" {
		name = defaultJoinerName
	}

	unlock := that.lockRoom(session.Code())
	defer unlock()

	snapshot, err := session.Join(identity, name)
	if err != nil {
		return nil, fmt.Errorf("failed to join room: %w", err)
	}

	if err = that.gateway.Bind(identity, session.Code(), 1); err != nil {
		session.Leave(identity)
		return nil, fmt.Errorf("failed to bind joiner: %w", err)
	}

	that.logger.Info("player joined", "room", session.Code(), "identity", identity)

	that.events.SessionStarted(snapshot.Seats, snapshot)

	return &JoinRoomResult{Snapshot: snapshot}, nil
}

// PlaceStone routes a move to the caller's bound session. A scoring move
// broadcasts the score update first, then the move with the already-cleared
// board.
func (that *GameManager) PlaceStone(identity, code string, row, col int) (*MoveResult, error) {
	binding, err := that.bindingOf(identity, code)
	if err != nil {
		return nil, err
	}

	unlock := that.lockRoom(binding.Code)
	defer unlock()

	session, err := that.rooms.GetByCode(binding.Code)
	if err != nil {
		return nil, fmt.Errorf("failed to get room: %w", err)
	}

	move, err := session.PlaceStone(identity, row, col)
	if err != nil {
		return nil, fmt.Errorf("failed to place stone: %w", err)
	}

	if move.Scored {
		that.logger.Info("round won", "room", binding.Code, "identity", identity)
		that.events.ScoreUpdate(move.Occupants, move.Scores, move.Scorer, move.WinLine)
	}

	that.events.MoveApplied(move.Occupants, binding.Code, move)

	return &MoveResult{Code: binding.Code, Move: move}, nil
}

// ResetRound clears the caller's bound session back to a fresh round.
func (that *GameManager) ResetRound(identity, code string) (*ResetResult, error) {
	binding, err := that.bindingOf(identity, code)
	if err != nil {
		return nil, err
	}

	unlock := that.lockRoom(binding.Code)
	defer unlock()

	session, err := that.rooms.GetByCode(binding.Code)
	if err != nil {
		return nil, fmt.Errorf("failed to get room: %w", err)
	}

	reset, err := session.ResetRound(identity)
	if err != nil {
		return nil, fmt.Errorf("failed to reset round: %w", err)
	}

	that.events.SessionReset(reset.Occupants, reset)

	return &ResetResult{Code: binding.Code, Reset: reset}, nil
}

// Disconnect tears down whatever the identity held. It is unconditionally
// safe: unbound identities and already-dissolved rooms are no-ops.
func (that *GameManager) Disconnect(identity string) *DisconnectResult {
	binding, err := that.gateway.Resolve(identity)
	if err != nil {
		return &DisconnectResult{}
	}

	unlock := that.lockRoom(binding.Code)
	defer unlock()

	that.gateway.Unbind(identity)

	session, err := that.rooms.GetByCode(binding.Code)
	if err != nil {
		return &DisconnectResult{}
	}

	outcome := session.Leave(identity)
	if !outcome.Removed {
		return &DisconnectResult{}
	}

	if outcome.Dissolved {
		that.rooms.DeleteByCode(binding.Code)
		that.locks.Delete(binding.Code)
		that.logger.Info("room dissolved", "room", binding.Code)
		return &DisconnectResult{Departed: identity}
	}

	// The survivor shifts down to seat 0. Rebind swaps the binding in one
	// step, so the survivor is never observed unbound and can never slip
	// into a second room mid-departure.
	for seat, remaining := range outcome.Remaining {
		that.gateway.Rebind(remaining, binding.Code, seat)
	}

	that.events.PlayerLeft(outcome.Remaining, identity)

	return &DisconnectResult{Departed: identity, Recipients: outcome.Remaining}
}

// lockRoom serializes one room across session mutation and broadcast
// fan-out. The per-session lock alone is not enough: two moves committed
// back to back could otherwise enqueue their broadcasts in the opposite
// order.
func (that *GameManager) lockRoom(code string) func() {
	value, _ := that.locks.LoadOrStore(code, &sync.Mutex{})
	mu := value.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// bindingOf routes by the gateway binding; a declared code, when present,
// must name the room the identity is actually bound to.
func (that *GameManager) bindingOf(identity, declared string) (repository.Binding, error) {
	binding, err := that.gateway.Resolve(identity)
	if err != nil {
		return repository.Binding{}, fmt.Errorf("identity is not in a room: %w", apperror.ErrRoomNotFound)
	}

	if declared != "" && !strings.EqualFold(declared, binding.Code) {
		return repository.Binding{}, apperror.ErrNotInGame
	}

	return binding, nil
}
