// apps/go-server/internal/store/memory.go
//
// In-memory session registry: which room each connected player is in.
// The HTTP layer uses it to resolve a player id to its room without the
// client resending the code, and to forget everyone when a room closes.
//
// Characteristics:
//   - Sessions keyed by player id; a player is in at most one room.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process restarts.
//   - Get returns ErrNotFound for unknown players.

package store

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrNotFound is returned for unknown player ids.
var ErrNotFound = errors.New("session not found")

// Session binds a player to a room.
type Session struct {
	PlayerID string    `json:"playerId"`
	RoomID   string    `json:"roomId"`
	RoomCode string    `json:"roomCode"`
	JoinedAt time.Time `json:"joinedAt"`
}

// Store defines the session registry.
// Implementations may be backed by memory (this package), Redis, SQL, etc.
type Store interface {
	// Save records or replaces the player's session.
	Save(ctx context.Context, s Session) error

	// Get retrieves a session by player id.
	Get(ctx context.Context, playerID string) (Session, error)

	// Delete forgets a player. Unknown ids are ignored.
	Delete(ctx context.Context, playerID string) error

	// ByRoom lists the sessions of a room.
	ByRoom(ctx context.Context, roomID string) ([]Session, error)

	// ClearRoom forgets every player of a room and returns how many.
	ClearRoom(ctx context.Context, roomID string) (int, error)
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu       sync.RWMutex       // guards sessions
	sessions map[string]Session // keyed by player id
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{sessions: make(map[string]Session)}
}

func (m *memory) Save(ctx context.Context, s Session) error {
	if s.PlayerID == "" {
		return errors.New("session without player id")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.PlayerID] = s
	return nil
}

func (m *memory) Get(ctx context.Context, playerID string) (Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.sessions[playerID]; ok {
		return s, nil
	}
	return Session{}, ErrNotFound
}

func (m *memory) Delete(ctx context.Context, playerID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, playerID)
	return nil
}

func (m *memory) ByRoom(ctx context.Context, roomID string) ([]Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []Session
	for _, s := range m.sessions {
		if s.RoomID == roomID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *memory) ClearRoom(ctx context.Context, roomID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, s := range m.sessions {
		if s.RoomID == roomID {
			delete(m.sessions, id)
			n++
		}
	}
	return n, nil
}
