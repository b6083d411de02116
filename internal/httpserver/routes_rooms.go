// apps/go-server/internal/httpserver/routes_rooms.go
//
// Room lifecycle routes, all under /rooms:
//   - POST /rooms                 → create a room; caller becomes host
//   - GET  /rooms/{code}          → room snapshot
//   - POST /rooms/{code}/join     → join a waiting room
//   - POST /rooms/{code}/leave    → leave (room closes when empty)
//   - POST /rooms/{code}/start    → host only; generates the board and starts
//   - POST /rooms/{code}/end      → finish the round
//   - POST /rooms/{code}/rematch  → host only; back to waiting
//   - GET  /rooms/{code}/history  → rounds recorded under the code
//   - GET  /rooms/{code}/player-state?playerId= → resume state (routes_game.go)
//
// Each successful mutation is followed by the matching room event.

package httpserver

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/boggle/apps/go-server/internal/board"
	"github.com/robalobadob/boggle/apps/go-server/internal/events"
	"github.com/robalobadob/boggle/apps/go-server/internal/game"
	"github.com/robalobadob/boggle/apps/go-server/internal/generator"
	"github.com/robalobadob/boggle/apps/go-server/internal/store"
)

const maxNameLength = 20

// mountRooms registers all /rooms routes.
func (s *Server) mountRooms(r chi.Router) {
	r.Route("/rooms", func(r chi.Router) {
		r.Post("/", s.handleCreateRoom)
		r.Route("/{code}", func(r chi.Router) {
			r.Get("/", s.handleGetRoom)
			r.Post("/join", s.handleJoinRoom)
			r.Post("/leave", s.handleLeaveRoom)
			r.Post("/start", s.handleStartGame)
			r.Post("/end", s.handleEndGame)
			r.Post("/rematch", s.handleRematch)
			r.Post("/reveal", s.handleReveal)
			r.Get("/results", s.handleResults)
			r.Get("/history", s.handleHistory)
			r.Get("/player-state", s.handlePlayerState)
		})
	})
}

// playerReq identifies a new player (create/join).
type playerReq struct {
	PlayerName string `json:"playerName"`
	Avatar     string `json:"avatar"`
	GridSize   int    `json:"gridSize"`
}

// roomRes is returned by create/join.
type roomRes struct {
	Room     game.Snapshot `json:"room"`
	PlayerID string        `json:"playerId"`
}

// actorReq names the player performing a room action.
type actorReq struct {
	PlayerID string `json:"playerId"`
	Duration int    `json:"duration"` // start only; seconds, 0 = room default
}

// newPlayer validates a playerReq into a fresh Player.
func newPlayer(req playerReq) (game.Player, error) {
	name := strings.TrimSpace(req.PlayerName)
	if name == "" || len([]rune(name)) > maxNameLength {
		return game.Player{}, errors.New("playerName must be 1-20 characters")
	}
	avatar := req.Avatar
	if avatar == "" {
		avatar = defaultAvatar(name)
	}
	return game.Player{ID: uuid.NewString(), Name: name, Avatar: avatar, CreatedAt: time.Now()}, nil
}

func (s *Server) remember(ctx context.Context, playerID string, room game.Snapshot) {
	if err := s.Sessions.Save(ctx, store.Session{
		PlayerID: playerID, RoomID: room.ID, RoomCode: room.Code, JoinedAt: time.Now(),
	}); err != nil {
		log.Warn().Err(err).Str("player", playerID).Msg("save session")
	}
}

func (s *Server) handleCreateRoom(w http.ResponseWriter, r *http.Request) {
	var req playerReq
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", err.Error())
		return
	}
	if req.GridSize == 0 {
		req.GridSize = 4
	}
	p, err := newPlayer(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_player", err.Error())
		return
	}

	room, err := s.Rooms.CreateRoom(r.Context(), p, req.GridSize)
	if err != nil {
		writeRoomError(w, err)
		return
	}
	s.remember(r.Context(), p.ID, room)
	writeJSON(w, http.StatusCreated, roomRes{Room: room, PlayerID: p.ID})
}

func (s *Server) handleGetRoom(w http.ResponseWriter, r *http.Request) {
	room, ok := s.Rooms.GetRoom(chi.URLParam(r, "code"))
	if !ok {
		writeError(w, http.StatusNotFound, "ROOM_NOT_FOUND", "room not found")
		return
	}
	writeJSON(w, http.StatusOK, room)
}

func (s *Server) handleJoinRoom(w http.ResponseWriter, r *http.Request) {
	var req playerReq
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", err.Error())
		return
	}
	p, err := newPlayer(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_player", err.Error())
		return
	}

	room, err := s.Rooms.JoinRoom(chi.URLParam(r, "code"), p)
	if err != nil {
		writeRoomError(w, err)
		return
	}
	s.remember(r.Context(), p.ID, room)

	joined, _ := room.Player(p.ID)
	s.publish(r.Context(), room.ID, events.PlayerJoined, events.PlayerJoinedPayload{
		Player: joined, TotalPlayers: len(room.Players),
	})
	writeJSON(w, http.StatusOK, roomRes{Room: room, PlayerID: p.ID})
}

func (s *Server) handleLeaveRoom(w http.ResponseWriter, r *http.Request) {
	var req actorReq
	if err := decode(r, &req); err != nil || req.PlayerID == "" {
		writeError(w, http.StatusBadRequest, "bad_request", "playerId is required")
		return
	}
	code := chi.URLParam(r, "code")

	before, ok := s.Rooms.GetRoom(code)
	if !ok {
		writeError(w, http.StatusNotFound, "ROOM_NOT_FOUND", "room not found")
		return
	}
	leaving, present := before.Player(req.PlayerID)

	after, err := s.Rooms.LeaveRoom(code, req.PlayerID)
	if err != nil {
		writeRoomError(w, err)
		return
	}
	if err := s.Sessions.Delete(r.Context(), req.PlayerID); err != nil {
		log.Warn().Err(err).Str("player", req.PlayerID).Msg("delete session")
	}
	if !present {
		writeJSON(w, http.StatusOK, map[string]any{"room": after})
		return
	}

	payload := events.PlayerLeftPayload{PlayerID: leaving.ID, PlayerName: leaving.Name}
	if after != nil {
		payload.TotalPlayers = len(after.Players)
		if after.Host.ID != before.Host.ID {
			payload.NewHostID = after.Host.ID
		}
	}
	s.publish(r.Context(), before.ID, events.PlayerLeft, payload)

	if after == nil {
		s.closeRoom(r.Context(), before)
	}
	writeJSON(w, http.StatusOK, map[string]any{"room": after})
}

// closeRoom drops everything kept for a deleted room.
func (s *Server) closeRoom(ctx context.Context, room game.Snapshot) {
	s.stopTimer(room.GameID)
	if _, err := s.Sessions.ClearRoom(ctx, room.ID); err != nil {
		log.Warn().Err(err).Str("roomId", room.ID).Msg("clear sessions")
	}
	if s.Hub != nil {
		s.Hub.CloseChannel(events.Channel(room.ID))
	}
}

// requireHost answers 403 unless playerID hosts room.
func requireHost(w http.ResponseWriter, room game.Snapshot, playerID string) bool {
	if room.Host.ID != playerID || playerID == "" {
		writeError(w, http.StatusForbidden, "NOT_HOST", "only the host can perform this action")
		return false
	}
	return true
}

func (s *Server) handleStartGame(w http.ResponseWriter, r *http.Request) {
	var req actorReq
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", err.Error())
		return
	}
	code := chi.URLParam(r, "code")
	room, ok := s.Rooms.GetRoom(code)
	if !ok {
		writeError(w, http.StatusNotFound, "ROOM_NOT_FOUND", "room not found")
		return
	}
	if !requireHost(w, room, req.PlayerID) {
		return
	}
	if room.Status != game.StatusWaiting {
		writeError(w, http.StatusConflict, "GAME_ALREADY_STARTED", "game already started")
		return
	}
	if len(room.Players) < game.MinPlayersToStart {
		writeError(w, http.StatusBadRequest, "INSUFFICIENT_PLAYERS", "need at least 2 players to start")
		return
	}

	seed := generator.SeedFor(s.cfg.BoardSalt, room.ID, room.Round+1)
	out, err := s.Boards.GenerateGood(r.Context(), room.GridSize, seed)
	if err != nil {
		log.Error().Err(err).Str("code", room.Code).Msg("board generation failed")
		writeError(w, http.StatusInternalServerError, "board_failed", "")
		return
	}

	started, err := s.Rooms.StartGameSeeded(code, req.Duration, out.Board, seed)
	if err != nil {
		writeRoomError(w, err)
		return
	}

	if s.History != nil {
		if err := s.History.RecordGameStarted(r.Context(), started, seed); err != nil {
			log.Warn().Err(err).Str("gameId", started.GameID).Msg("record game start")
		}
	}
	s.publish(r.Context(), started.ID, events.GameStarted, events.GameStartedPayload{
		StartTime: started.StartTime, Duration: started.Duration, Board: started.Board,
	})
	s.scheduleEnd(started)

	writeJSON(w, http.StatusOK, map[string]any{
		"room":      started,
		"wordCount": len(out.Words),
		"stats":     board.ComputeStats(started.Board),
	})
}

func (s *Server) handleEndGame(w http.ResponseWriter, r *http.Request) {
	room, err := s.endRound(r.Context(), chi.URLParam(r, "code"), "")
	if err != nil {
		writeRoomError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, room)
}

// endRound finishes a round, announces it and records it. When gameID is
// set the round is only ended if it is still that round.
func (s *Server) endRound(ctx context.Context, code, gameID string) (game.Snapshot, error) {
	var (
		room game.Snapshot
		err  error
	)
	if gameID != "" {
		var ended bool
		room, ended, err = s.Rooms.EndGameIf(code, gameID)
		if err != nil || !ended {
			return room, err
		}
	} else if room, err = s.Rooms.EndGame(code); err != nil {
		return game.Snapshot{}, err
	}
	s.stopTimer(room.GameID)

	s.publish(ctx, room.ID, events.GameEnded, events.GameEndedPayload{EndTime: room.EndTime})
	if s.History != nil {
		if err := s.History.RecordGameEnded(ctx, room, game.BuildResults(room)); err != nil {
			log.Warn().Err(err).Str("gameId", room.GameID).Msg("record game end")
		}
	}
	return room, nil
}

// scheduleEnd ends the round once its duration has elapsed.
func (s *Server) scheduleEnd(room game.Snapshot) {
	if room.Duration <= 0 || room.GameID == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	select {
	case <-s.done:
		return
	default:
	}
	code, gameID := room.Code, room.GameID
	s.timers[gameID] = time.AfterFunc(time.Duration(room.Duration)*time.Second, func() {
		if _, err := s.endRound(context.Background(), code, gameID); err != nil {
			log.Debug().Err(err).Str("code", code).Msg("timed end skipped")
		}
	})
}

func (s *Server) stopTimer(gameID string) {
	if gameID == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.timers[gameID]; ok {
		t.Stop()
		delete(s.timers, gameID)
	}
}

func (s *Server) handleRematch(w http.ResponseWriter, r *http.Request) {
	var req actorReq
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", err.Error())
		return
	}
	room, err := s.Rooms.RematchRoom(chi.URLParam(r, "code"), req.PlayerID)
	if err != nil {
		writeRoomError(w, err)
		return
	}
	s.publish(r.Context(), room.ID, events.RematchRequested, events.RematchRequestedPayload{
		RequestedBy: req.PlayerID, Room: room,
	})
	writeJSON(w, http.StatusOK, room)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if s.History == nil {
		writeJSON(w, http.StatusOK, map[string]any{"games": []any{}})
		return
	}
	games, err := s.History.RecentGames(r.Context(), chi.URLParam(r, "code"), 20)
	if err != nil {
		log.Error().Err(err).Msg("recent games")
		writeError(w, http.StatusInternalServerError, "server_error", "")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"games": games})
}
