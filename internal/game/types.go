// apps/go-server/internal/game/types.go
//
// Core type definitions for a Boggle party session.
// Defines:
//   - Status:    room phase (waiting → playing → finished).
//   - FoundWord: one accepted word with its score and time.
//   - Player:    a participant and their per-round progress.
//   - Room:      one session, owned by the rooms manager.
//   - Snapshot:  the serialisable copy of a Room handed to callers.

package game

import (
	"sort"
	"strings"
	"time"

	"github.com/robalobadob/boggle/apps/go-server/internal/board"
)

// Status is the phase of a room.
type Status string

const (
	StatusWaiting  Status = "waiting"
	StatusPlaying  Status = "playing"
	StatusFinished Status = "finished"
)

// MaxPlayers is the room capacity.
const MaxPlayers = 8

// MinPlayersToStart is the fewest players a round can start with.
const MinPlayersToStart = 2

// FoundWord is a word a player had accepted during the current round.
type FoundWord struct {
	Word      string `json:"word"`
	Score     int    `json:"score"`
	Timestamp int64  `json:"timestamp"` // unix milliseconds
}

// Player is a participant in a room.
type Player struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	Avatar     string      `json:"avatar"`
	IsHost     bool        `json:"isHost"`
	Score      int         `json:"score"`
	FoundWords []FoundWord `json:"foundWords"`
	CreatedAt  time.Time   `json:"createdAt"`
}

// Words returns the player's found words in submission order.
func (p *Player) Words() []string {
	out := make([]string, len(p.FoundWords))
	for i, fw := range p.FoundWords {
		out[i] = fw.Word
	}
	return out
}

// ResetRound clears per-round progress but keeps identity.
func (p *Player) ResetRound() {
	p.Score = 0
	p.FoundWords = []FoundWord{}
}

// Clone returns a deep copy of p.
func (p *Player) Clone() Player {
	cp := *p
	cp.FoundWords = append([]FoundWord{}, p.FoundWords...)
	return cp
}

// Room is one game session. All access goes through the rooms manager,
// which guards it with its own lock.
type Room struct {
	ID        string
	Code      string
	HostID    string
	Players   map[string]*Player
	GridSize  int
	Status    Status
	Board     board.Board // nil while waiting
	StartTime time.Time   // zero while waiting
	EndTime   time.Time   // zero unless finished
	Duration  int         // seconds
	Round     int         // rounds started so far
	GameID    string      // history id of the current round
	Seed      uint64      // board seed of the current round
	CreatedAt time.Time
}

// Host returns the current host, or nil for an empty room.
func (r *Room) Host() *Player { return r.Players[r.HostID] }

// OrderedPlayers returns players by join time, then id.
func (r *Room) OrderedPlayers() []*Player {
	out := make([]*Player, 0, len(r.Players))
	for _, p := range r.Players {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// NameTaken reports whether another player already uses name
// (case-insensitive).
func (r *Room) NameTaken(name string) bool {
	for _, p := range r.Players {
		if strings.EqualFold(p.Name, name) {
			return true
		}
	}
	return false
}

// Snapshot is the externally visible state of a room.
type Snapshot struct {
	ID        string      `json:"id"`
	Code      string      `json:"code"`
	Host      Player      `json:"host"`
	Players   []Player    `json:"players"`
	GridSize  int         `json:"gridSize"`
	Status    Status      `json:"status"`
	Board     board.Board `json:"board,omitempty"`
	StartTime int64       `json:"startTime,omitempty"` // unix milliseconds
	Duration  int         `json:"duration"`
	EndTime   int64       `json:"endTime,omitempty"` // unix milliseconds
	Round     int         `json:"round"`
	GameID    string      `json:"gameId,omitempty"`
	CreatedAt time.Time   `json:"createdAt"`
}

// Snapshot deep-copies r into its serialisable form.
func (r *Room) Snapshot() Snapshot {
	s := Snapshot{
		ID:        r.ID,
		Code:      r.Code,
		GridSize:  r.GridSize,
		Status:    r.Status,
		Board:     r.Board.Clone(),
		Duration:  r.Duration,
		Round:     r.Round,
		GameID:    r.GameID,
		CreatedAt: r.CreatedAt,
	}
	if h := r.Host(); h != nil {
		s.Host = h.Clone()
	}
	for _, p := range r.OrderedPlayers() {
		s.Players = append(s.Players, p.Clone())
	}
	if !r.StartTime.IsZero() {
		s.StartTime = r.StartTime.UnixMilli()
	}
	if !r.EndTime.IsZero() {
		s.EndTime = r.EndTime.UnixMilli()
	}
	return s
}

// Player returns the snapshot copy of the player with id.
func (s Snapshot) Player(id string) (Player, bool) {
	for _, p := range s.Players {
		if p.ID == id {
			return p, true
		}
	}
	return Player{}, false
}

// DefaultDuration is the round length in seconds for a grid size; larger
// grids get more time.
func DefaultDuration(gridSize int) int {
	switch gridSize {
	case 5:
		return 180
	case 6:
		return 240
	default:
		return 120
	}
}
