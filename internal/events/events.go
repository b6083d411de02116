// apps/go-server/internal/events/events.go
//
// Session notifications relayed to room subscribers.
//   - Every room has one channel, "presence-game-<roomID>".
//   - Handlers publish after a successful state change; a failed publish
//     never undoes the change.
//   - Payloads are the JSON shapes the web client listens for.

package events

import (
	"context"

	"github.com/robalobadob/boggle/apps/go-server/internal/board"
	"github.com/robalobadob/boggle/apps/go-server/internal/game"
)

// Event names.
const (
	PlayerJoined     = "player-joined"
	PlayerLeft       = "player-left"
	GameStarted      = "game-started"
	GameEnded        = "game-ended"
	WordFound        = "word-found"
	RevealWord       = "reveal-word"
	ResultsComplete  = "results-complete"
	RematchRequested = "rematch-requested"
)

// Channel returns the pub/sub channel of a room.
func Channel(roomID string) string { return "presence-game-" + roomID }

// Publisher delivers an event to everyone subscribed to channel.
type Publisher interface {
	Publish(ctx context.Context, channel, event string, payload any) error
}

// Nop discards every event.
type Nop struct{}

func (Nop) Publish(context.Context, string, string, any) error { return nil }

type PlayerJoinedPayload struct {
	Player       game.Player `json:"player"`
	TotalPlayers int         `json:"totalPlayers"`
}

type PlayerLeftPayload struct {
	PlayerID     string `json:"playerId"`
	PlayerName   string `json:"playerName"`
	TotalPlayers int    `json:"totalPlayers"`
	NewHostID    string `json:"newHostId,omitempty"`
}

type GameStartedPayload struct {
	StartTime int64       `json:"startTime"` // unix milliseconds
	Duration  int         `json:"duration"`
	Board     board.Board `json:"board"`
}

type GameEndedPayload struct {
	EndTime int64 `json:"endTime"` // unix milliseconds
}

// WordFoundPayload announces that someone scored, without revealing the word
// to opponents until the reveal phase.
type WordFoundPayload struct {
	PlayerID   string `json:"playerId"`
	PlayerName string `json:"playerName"`
	Word       string `json:"word,omitempty"`
	Score      int    `json:"score"`
	TotalScore int    `json:"totalScore"`
}

// PlayerRef identifies a player in reveal payloads.
type PlayerRef struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

// RevealWordPayload shows one word during the reveal phase. Score already
// includes the unique-word bonus.
type RevealWordPayload struct {
	Word     string    `json:"word"`
	Player   PlayerRef `json:"player"`
	Score    int       `json:"score"`
	IsUnique bool      `json:"isUnique"`
	Index    int       `json:"index"`
	Total    int       `json:"total"`
}

type ResultsCompletePayload struct {
	FinalRankings []game.Ranking `json:"finalRankings"`
	TotalWords    int            `json:"totalWords"`
	UniqueWords   int            `json:"uniqueWords"`
}

type RematchRequestedPayload struct {
	RequestedBy string        `json:"requestedBy"`
	Room        game.Snapshot `json:"room"`
}
