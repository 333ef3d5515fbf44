package repository

import (
	"sync"

	"github.com/Caden-Dane/Gomoku/internal/apperror"
)

// Binding locates the one room and seat a connection identity occupies.
type Binding struct {
	Code string
	Seat int
}

// ConnectionGateway indexes connection identity to (room code, seat) so
// inbound events and disconnects route in O(1) instead of scanning rooms.
// An identity holds at most one binding at any time.
type ConnectionGateway interface {
	Bind(identity, code string, seat int) error
	Rebind(identity, code string, seat int)
	Resolve(identity string) (Binding, error)
	Unbind(identity string)
}

type connectionGateway struct {
	mu       sync.RWMutex
	bindings map[string]Binding
}

func NewConnectionGateway() ConnectionGateway {
	return &connectionGateway{
		bindings: make(map[string]Binding),
	}
}

func (that *connectionGateway) Bind(identity, code string, seat int) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, bound := that.bindings[identity]; bound {
		return apperror.ErrAlreadyInRoom
	}

	that.bindings[identity] = Binding{Code: code, Seat: seat}

	return nil
}

// Rebind overwrites whatever binding the identity holds in one atomic
// step. Used when a departure shifts the surviving occupant to a new seat;
// the identity is never observably unbound in between.
func (that *connectionGateway) Rebind(identity, code string, seat int) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.bindings[identity] = Binding{Code: code, Seat: seat}
}

func (that *connectionGateway) Resolve(identity string) (Binding, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	binding, ok := that.bindings[identity]
	if !ok {
		return Binding{}, apperror.ErrNotBound
	}

	return binding, nil
}

func (that *connectionGateway) Unbind(identity string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	delete(that.bindings, identity)
}
