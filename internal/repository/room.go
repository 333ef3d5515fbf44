package repository

import (
	"strings"
	"sync"

	"github.com/Caden-Dane/Gomoku/internal/apperror"
	"github.com/Caden-Dane/Gomoku/internal/entity"
	"github.com/Caden-Dane/Gomoku/internal/pkg"
)

// RoomRegistry is the process-wide mapping from room code to session. It
// owns code uniqueness: a code is generated and the session inserted as one
// atomic reservation step, so two concurrent creators can never claim the
// same code. Lifecycle is the process lifetime; nothing is persisted.
type RoomRegistry interface {
	CreateSession(creator, name string) *entity.Session
	GetByCode(code string) (*entity.Session, error)
	DeleteByCode(code string)
}

type roomRegistry struct {
	mu    sync.RWMutex
	rooms map[string]*entity.Session
}

func NewRoomRegistry() RoomRegistry {
	return &roomRegistry{
		rooms: make(map[string]*entity.Session),
	}
}

func (that *roomRegistry) CreateSession(creator, name string) *entity.Session {
	that.mu.Lock()
	defer that.mu.Unlock()

	code := that.reserveCode()
	session := entity.NewSession(code, creator, name)
	that.rooms[code] = session

	return session
}

func (that *roomRegistry) GetByCode(code string) (*entity.Session, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	session, ok := that.rooms[normalizeCode(code)]
	if !ok {
		return nil, apperror.ErrRoomNotFound
	}

	return session, nil
}

func (that *roomRegistry) DeleteByCode(code string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	delete(that.rooms, normalizeCode(code))
}

// reserveCode re-draws until the candidate is free among live rooms.
// Callers must hold the write lock.
func (that *roomRegistry) reserveCode() string {
	for {
		code := pkg.GenerateRoomCode()
		if _, taken := that.rooms[code]; !taken {
			return code
		}
	}
}

// Room codes are matched case-insensitively.
func normalizeCode(code string) string {
	return strings.ToUpper(code)
}
