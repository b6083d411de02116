// apps/go-server/internal/rooms/manager.go
//
// Authoritative in-memory registry of active rooms.
//
// Responsibilities:
//   - Create rooms under collision-free 6-character codes.
//   - Admit and remove players, promoting a new host when needed.
//   - Drive phase transitions: waiting → playing → finished → waiting
//     (rematch, host only).
//   - Record accepted words under the same lock that guards duplicates.
//
// Concurrency:
//   - One RWMutex guards the registry and every room in it; operations
//     are atomic with respect to each other.
//   - CreateRoom consults the external CodeChecker outside the lock and
//     re-checks the registry under the lock before committing, so two
//     concurrent creations can never register the same code.
//   - Callers receive Snapshots (deep copies), never live rooms.
//
// Rooms are lost when the process exits.

package rooms

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/boggle/apps/go-server/internal/board"
	"github.com/robalobadob/boggle/apps/go-server/internal/game"
)

// ErrInvalidBoard is returned by StartGame for a board that is malformed or
// does not match the room's grid size.
var ErrInvalidBoard = errors.New("rooms: invalid board")

// Manager owns every active room of this process.
type Manager struct {
	mu    sync.RWMutex
	rooms map[string]*game.Room // keyed by code

	checker         CodeChecker
	lexicon         game.Lexicon
	newCode         func() (string, error)
	newID           func() string
	now             func() time.Time
	maxCodeAttempts int
}

// Option configures a Manager.
type Option func(*Manager)

// WithCodeChecker sets the advisory external uniqueness check.
func WithCodeChecker(c CodeChecker) Option { return func(m *Manager) { m.checker = c } }

// WithLexicon sets the dictionary used by SubmitWord.
func WithLexicon(l game.Lexicon) Option { return func(m *Manager) { m.lexicon = l } }

// WithCodeSource replaces the random code generator.
func WithCodeSource(f func() (string, error)) Option { return func(m *Manager) { m.newCode = f } }

// WithClock replaces time.Now.
func WithClock(f func() time.Time) Option { return func(m *Manager) { m.now = f } }

// WithMaxCodeAttempts bounds code generation retries.
func WithMaxCodeAttempts(n int) Option { return func(m *Manager) { m.maxCodeAttempts = n } }

// NewManager returns an empty registry.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		rooms:           make(map[string]*game.Room),
		newCode:         RandomCode,
		newID:           func() string { return uuid.NewString() },
		now:             time.Now,
		maxCodeAttempts: DefaultMaxCodeAttempts,
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// CreateRoom registers a new waiting room with host as its only player.
func (m *Manager) CreateRoom(ctx context.Context, host game.Player, gridSize int) (game.Snapshot, error) {
	if !board.ValidSize(gridSize) {
		return game.Snapshot{}, newError(KindInvalidCode, "unsupported grid size %d", gridSize)
	}
	now := m.now()
	p := m.preparePlayer(host, now)
	p.IsHost = true

	room := &game.Room{
		ID:        m.newID(),
		HostID:    p.ID,
		Players:   map[string]*game.Player{p.ID: p},
		GridSize:  gridSize,
		Status:    game.StatusWaiting,
		Duration:  game.DefaultDuration(gridSize),
		CreatedAt: now,
	}

	for attempt := 1; attempt <= m.maxCodeAttempts; attempt++ {
		code, err := m.newCode()
		if err != nil {
			return game.Snapshot{}, fmt.Errorf("rooms: draw room code: %w", err)
		}
		if m.RoomExists(code) {
			continue
		}
		if safeExists(ctx, m.checker, code) {
			continue
		}

		m.mu.Lock()
		if _, taken := m.rooms[code]; taken {
			m.mu.Unlock()
			continue
		}
		room.Code = code
		m.rooms[code] = room
		snap := room.Snapshot()
		m.mu.Unlock()

		log.Info().Str("code", code).Str("roomId", room.ID).Int("gridSize", gridSize).Int("attempts", attempt).Msg("room created")
		return snap, nil
	}
	log.Error().Int("attempts", m.maxCodeAttempts).Msg("room code space exhausted")
	return game.Snapshot{}, newError(KindInvalidCode, "failed to generate unique room code")
}

func (m *Manager) preparePlayer(in game.Player, now time.Time) *game.Player {
	p := in
	if p.ID == "" {
		p.ID = m.newID()
	}
	p.Name = strings.TrimSpace(p.Name)
	p.IsHost = false
	p.Score = 0
	p.FoundWords = []game.FoundWord{}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	return &p
}

// GetRoom looks a room up by its public code.
func (m *Manager) GetRoom(code string) (game.Snapshot, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.rooms[normalizeCode(code)]
	if !ok {
		return game.Snapshot{}, false
	}
	return r.Snapshot(), true
}

// GetRoomByID looks a room up by its internal id.
func (m *Manager) GetRoomByID(id string) (game.Snapshot, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if r := m.byID(id); r != nil {
		return r.Snapshot(), true
	}
	return game.Snapshot{}, false
}

func (m *Manager) byID(id string) *game.Room {
	for _, r := range m.rooms {
		if r.ID == id {
			return r
		}
	}
	return nil
}

// RoomExists reports whether code is registered.
func (m *Manager) RoomExists(code string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.rooms[normalizeCode(code)]
	return ok
}

// lookup returns the room for code or a ROOM_NOT_FOUND error. Callers
// hold m.mu.
func (m *Manager) lookup(code string) (*game.Room, error) {
	r, ok := m.rooms[normalizeCode(code)]
	if !ok {
		return nil, newError(KindRoomNotFound, "room %s not found", normalizeCode(code))
	}
	return r, nil
}

// JoinRoom adds player to a waiting room.
func (m *Manager) JoinRoom(code string, player game.Player) (game.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, err := m.lookup(code)
	if err != nil {
		return game.Snapshot{}, err
	}
	if len(r.Players) >= game.MaxPlayers {
		return game.Snapshot{}, newError(KindRoomFull, "room is full (max %d players)", game.MaxPlayers)
	}
	if r.Status != game.StatusWaiting {
		return game.Snapshot{}, newError(KindGameAlreadyStarted, "game already started")
	}
	p := m.preparePlayer(player, m.now())
	if r.NameTaken(p.Name) {
		return game.Snapshot{}, newError(KindInvalidCode, "player name already taken")
	}
	if _, dup := r.Players[p.ID]; dup {
		return game.Snapshot{}, newError(KindInvalidCode, "player already in room")
	}
	r.Players[p.ID] = p

	log.Info().Str("code", r.Code).Str("player", p.ID).Int("players", len(r.Players)).Msg("player joined")
	return r.Snapshot(), nil
}

// LeaveRoom removes a player. It returns nil when the room emptied and was
// deleted. Leaving a room one is not in is a no-op.
func (m *Manager) LeaveRoom(code, playerID string) (*game.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, err := m.lookup(code)
	if err != nil {
		return nil, err
	}
	delete(r.Players, playerID)

	if len(r.Players) == 0 {
		delete(m.rooms, r.Code)
		log.Info().Str("code", r.Code).Msg("room closed")
		return nil, nil
	}
	if r.HostID == playerID {
		next := r.OrderedPlayers()[0]
		next.IsHost = true
		r.HostID = next.ID
		log.Info().Str("code", r.Code).Str("host", next.ID).Msg("host reassigned")
	}

	log.Info().Str("code", r.Code).Str("player", playerID).Int("players", len(r.Players)).Msg("player left")
	snap := r.Snapshot()
	return &snap, nil
}

// StartGame moves a waiting room to playing with the given board. A
// non-positive duration keeps the room's current duration.
func (m *Manager) StartGame(code string, duration int, b board.Board) (game.Snapshot, error) {
	return m.start(code, duration, b, 0)
}

// StartGameSeeded is StartGame that also records the board seed.
func (m *Manager) StartGameSeeded(code string, duration int, b board.Board, seed uint64) (game.Snapshot, error) {
	return m.start(code, duration, b, seed)
}

func (m *Manager) start(code string, duration int, b board.Board, seed uint64) (game.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, err := m.lookup(code)
	if err != nil {
		return game.Snapshot{}, err
	}
	if len(r.Players) < game.MinPlayersToStart {
		return game.Snapshot{}, newError(KindInsufficientPlayers, "need at least %d players to start", game.MinPlayersToStart)
	}
	if r.Status != game.StatusWaiting {
		return game.Snapshot{}, newError(KindGameAlreadyStarted, "game already started")
	}
	if !board.IsValid(b) || b.Size() != r.GridSize {
		return game.Snapshot{}, fmt.Errorf("%w: want %dx%d", ErrInvalidBoard, r.GridSize, r.GridSize)
	}

	r.Status = game.StatusPlaying
	r.StartTime = m.now()
	r.EndTime = time.Time{}
	if duration > 0 {
		r.Duration = duration
	}
	r.Board = b.Clone()
	r.Round++
	r.GameID = m.newID()
	r.Seed = seed

	log.Info().Str("code", r.Code).Int("round", r.Round).Int("duration", r.Duration).Msg("game started")
	return r.Snapshot(), nil
}

// EndGame finishes a round. Ending an already finished round re-stamps
// the end time.
func (m *Manager) EndGame(code string) (game.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, err := m.lookup(code)
	if err != nil {
		return game.Snapshot{}, err
	}
	if r.Status == game.StatusWaiting {
		return game.Snapshot{}, newError(KindGameNotInProgress, "game has not started")
	}
	m.finish(r)
	return r.Snapshot(), nil
}

// EndGameIf finishes the round only while gameID is still the room's
// playing round. ended is false when the round already finished or was
// replaced; the snapshot is then the room as found.
func (m *Manager) EndGameIf(code, gameID string) (snap game.Snapshot, ended bool, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, err := m.lookup(code)
	if err != nil {
		return game.Snapshot{}, false, err
	}
	if r.GameID != gameID || r.Status != game.StatusPlaying {
		return r.Snapshot(), false, nil
	}
	m.finish(r)
	return r.Snapshot(), true, nil
}

func (m *Manager) finish(r *game.Room) {
	r.Status = game.StatusFinished
	r.EndTime = m.now()
	log.Info().Str("code", r.Code).Int("round", r.Round).Msg("game ended")
}

// RematchRoom returns a finished room to waiting, keeping its players but
// clearing their scores and words. Only the host may ask.
func (m *Manager) RematchRoom(code, requesterID string) (game.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, err := m.lookup(code)
	if err != nil {
		return game.Snapshot{}, err
	}
	if r.HostID != requesterID {
		return game.Snapshot{}, newError(KindNotHost, "only the host can request a rematch")
	}
	if r.Status != game.StatusFinished {
		return game.Snapshot{}, newError(KindRematchNotAllowed, "rematch is only allowed after the game finished")
	}

	r.Status = game.StatusWaiting
	r.Board = nil
	r.StartTime = time.Time{}
	r.EndTime = time.Time{}
	r.GameID = ""
	r.Seed = 0
	for _, p := range r.Players {
		p.ResetRound()
	}

	log.Info().Str("code", r.Code).Str("host", requesterID).Msg("rematch")
	return r.Snapshot(), nil
}

// Submission is the outcome of SubmitWord.
type Submission struct {
	Result game.Result
	Player game.Player // after the word was applied
	Room   game.Snapshot
}

// SubmitWord validates word for a player in a playing room (by internal
// id) and, when valid, appends it to the player's found words.
func (m *Manager) SubmitWord(roomID, playerID, word string, path []board.Cell) (Submission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r := m.byID(roomID)
	if r == nil {
		return Submission{}, newError(KindRoomNotFound, "room %s not found", roomID)
	}
	if r.Status != game.StatusPlaying {
		return Submission{}, newError(KindGameNotInProgress, "game is not in progress")
	}
	p, ok := r.Players[playerID]
	if !ok {
		return Submission{}, newError(KindPlayerNotFound, "player not found in room")
	}

	res := game.ValidateWord(m.lexicon, game.Submission{
		Word:       word,
		Path:       path,
		FoundWords: p.Words(),
		GridSize:   r.GridSize,
		Board:      r.Board,
	})
	if res.Valid {
		p.FoundWords = append(p.FoundWords, game.FoundWord{
			Word:      res.Word,
			Score:     res.Score,
			Timestamp: m.now().UnixMilli(),
		})
		p.Score += res.Score
		log.Debug().Str("code", r.Code).Str("player", p.ID).Str("word", res.Word).Int("score", res.Score).Msg("word accepted")
	}
	return Submission{Result: res, Player: p.Clone(), Room: r.Snapshot()}, nil
}

// PlayerState is what a reconnecting player needs to resume a round.
type PlayerState struct {
	StartTime  int64            `json:"startTime"` // unix milliseconds
	Duration   int              `json:"duration"`
	Board      board.Board      `json:"board"`
	GridSize   int              `json:"gridSize"`
	FoundWords []game.FoundWord `json:"foundWords"`
	Score      int              `json:"score"`
	Elapsed    int              `json:"elapsed"`   // whole seconds since start
	Remaining  int              `json:"remaining"` // whole seconds left, never negative
}

// PlayerState returns the round as seen by one player of a playing room.
func (m *Manager) PlayerState(code, playerID string) (PlayerState, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	r, err := m.lookup(code)
	if err != nil {
		return PlayerState{}, err
	}
	if r.Status != game.StatusPlaying {
		return PlayerState{}, newError(KindGameNotInProgress, "game is not in progress")
	}
	p, ok := r.Players[playerID]
	if !ok {
		return PlayerState{}, newError(KindPlayerNotFound, "player not found in room")
	}

	elapsed := int(m.now().Sub(r.StartTime) / time.Second)
	if elapsed < 0 {
		elapsed = 0
	}
	cp := p.Clone()
	return PlayerState{
		StartTime:  r.StartTime.UnixMilli(),
		Duration:   r.Duration,
		Board:      r.Board.Clone(),
		GridSize:   r.GridSize,
		FoundWords: cp.FoundWords,
		Score:      cp.Score,
		Elapsed:    elapsed,
		Remaining:  max(0, r.Duration-elapsed),
	}, nil
}

// Results computes the reveal sequence and rankings of a finished room.
func (m *Manager) Results(code string) (game.Results, game.Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	r, err := m.lookup(code)
	if err != nil {
		return game.Results{}, game.Snapshot{}, err
	}
	if r.Status != game.StatusFinished {
		return game.Results{}, game.Snapshot{}, newError(KindGameNotFinished, "game not finished")
	}
	snap := r.Snapshot()
	return game.BuildResults(snap), snap, nil
}

// PlayerCount returns the number of players in a room, 0 if absent.
func (m *Manager) PlayerCount(code string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if r, ok := m.rooms[normalizeCode(code)]; ok {
		return len(r.Players)
	}
	return 0
}

// RoomCount returns the number of active rooms.
func (m *Manager) RoomCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.rooms)
}

// Rooms returns snapshots of every active room, for diagnostics.
func (m *Manager) Rooms() []game.Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]game.Snapshot, 0, len(m.rooms))
	for _, r := range m.rooms {
		out = append(out, r.Snapshot())
	}
	return out
}
