// apps/go-server/internal/httpserver/routes_game.go
//
// In-round and post-round routes:
//   - POST /games/{roomID}/words   → submit a traced word
//   - GET  /rooms/{code}/player-state?playerId= → board, clock and own
//     words for a player resuming mid-round
//   - GET  /players/{playerID}/state → same, room taken from the session
//   - POST /rooms/{code}/reveal    → host only; stream the reveal sequence
//   - GET  /rooms/{code}/results   → reveal sequence + final rankings
//
// The reveal runs in the background: one reveal-word event per word,
// spaced by the configured delay, then results-complete.

package httpserver

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/boggle/apps/go-server/internal/board"
	"github.com/robalobadob/boggle/apps/go-server/internal/events"
	"github.com/robalobadob/boggle/apps/go-server/internal/game"
	"github.com/robalobadob/boggle/apps/go-server/internal/rooms"
	"github.com/robalobadob/boggle/apps/go-server/internal/store"
)

// mountGame registers word submission and session-based resume. Reveal,
// results and player-state live under /rooms (see mountRooms).
func (s *Server) mountGame(r chi.Router) {
	r.Post("/games/{roomID}/words", s.handleSubmitWord)
	r.Get("/players/{playerID}/state", s.handleSessionState)
}

// wordReq is the payload of POST /games/{roomID}/words.
type wordReq struct {
	PlayerID string       `json:"playerId"`
	Word     string       `json:"word"`
	Path     []board.Cell `json:"path"`
}

// wordRes answers a submission.
type wordRes struct {
	Success    bool   `json:"success"`
	Valid      bool   `json:"valid"`
	Score      int    `json:"score"`
	Word       string `json:"word"`
	TotalScore int    `json:"totalScore,omitempty"`
	Error      string `json:"error,omitempty"`
}

func (s *Server) handleSubmitWord(w http.ResponseWriter, r *http.Request) {
	var req wordReq
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", err.Error())
		return
	}
	if req.PlayerID == "" || strings.TrimSpace(req.Word) == "" || len(req.Path) == 0 {
		writeError(w, http.StatusBadRequest, "invalid_request", "playerId, word and path are required")
		return
	}

	roomID := chi.URLParam(r, "roomID")
	sub, err := s.Rooms.SubmitWord(roomID, req.PlayerID, req.Word, req.Path)
	if err != nil {
		writeRoomError(w, err)
		return
	}
	if !sub.Result.Valid {
		writeJSON(w, http.StatusBadRequest, wordRes{Word: sub.Result.Word, Error: sub.Result.Reason})
		return
	}

	if s.History != nil {
		fw := sub.Player.FoundWords[len(sub.Player.FoundWords)-1]
		if err := s.History.RecordWord(r.Context(), sub.Room.GameID, sub.Player.ID, fw); err != nil {
			log.Warn().Err(err).Str("gameId", sub.Room.GameID).Msg("record word")
		}
	}
	// Opponents learn that a word scored, not which word.
	s.publish(r.Context(), roomID, events.WordFound, events.WordFoundPayload{
		PlayerID:   sub.Player.ID,
		PlayerName: sub.Player.Name,
		Score:      sub.Result.Score,
		TotalScore: sub.Player.Score,
	})

	writeJSON(w, http.StatusOK, wordRes{
		Success:    true,
		Valid:      true,
		Score:      sub.Result.Score,
		Word:       sub.Result.Word,
		TotalScore: sub.Player.Score,
	})
}

func (s *Server) handlePlayerState(w http.ResponseWriter, r *http.Request) {
	playerID := r.URL.Query().Get("playerId")
	if playerID == "" {
		writeError(w, http.StatusBadRequest, "bad_request", "playerId is required")
		return
	}
	s.writePlayerState(w, chi.URLParam(r, "code"), playerID)
}

// handleSessionState resumes a player who only kept their id.
func (s *Server) handleSessionState(w http.ResponseWriter, r *http.Request) {
	playerID := chi.URLParam(r, "playerID")
	sess, err := s.Sessions.Get(r.Context(), playerID)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, string(rooms.KindPlayerNotFound), "no active session")
		return
	}
	if err != nil {
		log.Error().Err(err).Str("player", playerID).Msg("get session")
		writeError(w, http.StatusInternalServerError, "server_error", "")
		return
	}
	s.writePlayerState(w, sess.RoomCode, playerID)
}

func (s *Server) writePlayerState(w http.ResponseWriter, code, playerID string) {
	st, err := s.Rooms.PlayerState(code, playerID)
	if err != nil {
		writeRoomError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "playerState": st})
}

func (s *Server) handleResults(w http.ResponseWriter, r *http.Request) {
	res, _, err := s.Rooms.Results(chi.URLParam(r, "code"))
	if err != nil {
		writeRoomError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleReveal(w http.ResponseWriter, r *http.Request) {
	var req actorReq
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", err.Error())
		return
	}
	code := chi.URLParam(r, "code")
	room, ok := s.Rooms.GetRoom(code)
	if !ok {
		writeRoomError(w, &rooms.Error{Kind: rooms.KindRoomNotFound, Message: "room not found"})
		return
	}
	if !requireHost(w, room, req.PlayerID) {
		return
	}
	res, snap, err := s.Rooms.Results(code)
	if err != nil {
		writeRoomError(w, err)
		return
	}

	if !s.goBackground(func() { s.runReveal(snap, res) }) {
		writeError(w, http.StatusServiceUnavailable, "shutting_down", "")
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]any{"started": true, "total": len(res.RevealSequence)})
}

// runReveal publishes the reveal sequence, stopping early on Close.
func (s *Server) runReveal(room game.Snapshot, res game.Results) {
	ctx := context.Background()
	total := len(res.RevealSequence)
	for i, rw := range res.RevealSequence {
		p, ok := room.Player(rw.PlayerID)
		if !ok {
			continue
		}
		s.publish(ctx, room.ID, events.RevealWord, events.RevealWordPayload{
			Word:     rw.Word,
			Player:   events.PlayerRef{ID: p.ID, Name: p.Name, Avatar: p.Avatar},
			Score:    rw.RevealScore(),
			IsUnique: rw.IsUnique,
			Index:    i,
			Total:    total,
		})
		select {
		case <-s.done:
			log.Debug().Str("code", room.Code).Int("revealed", i+1).Msg("reveal interrupted")
			return
		case <-time.After(s.cfg.RevealDelay):
		}
	}
	s.publish(ctx, room.ID, events.ResultsComplete, events.ResultsCompletePayload{
		FinalRankings: res.FinalRankings,
		TotalWords:    res.TotalWords,
		UniqueWords:   res.UniqueWords,
	})
	log.Info().Str("code", room.Code).Int("words", total).Msg("reveal complete")
}
