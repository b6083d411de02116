// apps/go-server/internal/httpserver/server.go
//
// HTTP server wiring for the Boggle party backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", "/dictionary/status".
//   - Room endpoints: mounted under /rooms (routes_rooms.go).
//   - In-round endpoints: word submission, reveal, results (routes_game.go).
//   - Room event stream: GET /ws/{roomID} (websocket, outside the timeout).
//
// Notes:
//   - Handlers are thin: the rooms manager enforces every rule; handlers
//     translate its errors to status codes and publish events afterwards.
//   - History writes are best effort; failures are logged and never change
//     the response.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"hash/fnv"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/boggle/apps/go-server/internal/config"
	"github.com/robalobadob/boggle/apps/go-server/internal/events"
	"github.com/robalobadob/boggle/apps/go-server/internal/game"
	"github.com/robalobadob/boggle/apps/go-server/internal/generator"
	"github.com/robalobadob/boggle/apps/go-server/internal/history"
	"github.com/robalobadob/boggle/apps/go-server/internal/rooms"
	"github.com/robalobadob/boggle/apps/go-server/internal/store"
	"github.com/robalobadob/boggle/apps/go-server/internal/words"
)

// BoardSource produces vetted boards for new rounds.
type BoardSource interface {
	GenerateGood(ctx context.Context, gridSize int, seed uint64) (generator.Outcome, error)
}

// DictionaryStatus reports the state of the loaded dictionary.
type DictionaryStatus interface {
	Stats() words.Stats
}

// History receives finished-state writes. All methods are best effort.
type History interface {
	RecordGameStarted(ctx context.Context, snap game.Snapshot, seed uint64) error
	RecordWord(ctx context.Context, gameID, playerID string, fw game.FoundWord) error
	RecordGameEnded(ctx context.Context, snap game.Snapshot, res game.Results) error
	RecentGames(ctx context.Context, code string, limit int) ([]history.Summary, error)
}

// Deps are the collaborators a Server routes to. History and Hub may be nil.
type Deps struct {
	Rooms      *rooms.Manager
	Sessions   store.Store
	Boards     BoardSource
	Dictionary DictionaryStatus
	Events     events.Publisher
	Hub        *events.Hub
	History    History
}

// Server bundles router and collaborators.
type Server struct {
	r   *chi.Mux
	cfg config.Config
	Deps

	mu     sync.Mutex
	timers map[string]*time.Timer // round-end timers keyed by game id
	done   chan struct{}
	wg     sync.WaitGroup
}

// New constructs a Server, installs middleware, and registers routes.
func New(cfg config.Config, d Deps) *Server {
	if d.Events == nil {
		d.Events = events.Nop{}
	}
	if d.Sessions == nil {
		d.Sessions = store.NewMemoryStore()
	}
	s := &Server{
		r:      chi.NewRouter(),
		cfg:    cfg,
		Deps:   d,
		timers: make(map[string]*time.Timer),
		done:   make(chan struct{}),
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)            // add X-Request-ID
	s.r.Use(chimw.RealIP)               // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)            // recover from panics
	s.r.Use(corsFor(cfg.ClientOrigin)) // credentials-friendly CORS

	// Long-lived websocket stream; no handler timeout, no JSON header.
	s.r.Get("/ws/{roomID}", s.handleWS)

	s.r.Group(func(r chi.Router) {
		timeout := cfg.RequestTimeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		r.Use(chimw.Timeout(timeout)) // bound handler time
		r.Use(jsonContentType)        // default JSON responses

		// --- diagnostics ---
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"service":"boggle-go","endpoints":["/health","/dictionary/status","POST /rooms","/rooms/{code}/*","POST /games/{roomID}/words","/ws/{roomID}"]}`))
		})
		r.Get("/health", s.handleHealth)
		r.Get("/dictionary/status", s.handleDictionaryStatus)
		r.Get("/debug/rooms", s.handleDebugRooms)

		s.mountRooms(r)
		s.mountGame(r)
	})

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		writeError(w, http.StatusNotFound, "not_found", r.URL.Path)
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// Close stops pending round timers and reveal sequences, and waits for
// in-flight background work.
func (s *Server) Close() {
	s.mu.Lock()
	select {
	case <-s.done:
	default:
		close(s.done)
	}
	for id, t := range s.timers {
		t.Stop()
		delete(s.timers, id)
	}
	s.mu.Unlock()
	s.wg.Wait()
}

// goBackground runs fn in a goroutine that Close waits for. It reports
// false, without running fn, once Close has begun.
func (s *Server) goBackground(fn func()) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	select {
	case <-s.done:
		return false
	default:
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		fn()
	}()
	return true
}

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// corsFor enables credentialed CORS for a single origin.
func corsFor(origin string) func(http.Handler) http.Handler {
	if origin == "" {
		origin = "http://localhost:5173"
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ------------------------------ helpers ------------------------------------

type errorRes struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("encode response")
	}
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, errorRes{Error: code, Message: msg})
}

// statusFor maps a room error kind to an HTTP status.
func statusFor(kind rooms.Kind) int {
	switch kind {
	case rooms.KindRoomNotFound, rooms.KindPlayerNotFound:
		return http.StatusNotFound
	case rooms.KindNotHost:
		return http.StatusForbidden
	case rooms.KindRoomFull, rooms.KindGameAlreadyStarted, rooms.KindRematchNotAllowed,
		rooms.KindGameNotInProgress, rooms.KindGameNotFinished:
		return http.StatusConflict
	case rooms.KindInvalidCode, rooms.KindInsufficientPlayers:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// writeRoomError translates a manager error into a JSON response.
func writeRoomError(w http.ResponseWriter, err error) {
	var re *rooms.Error
	if errors.As(err, &re) {
		writeError(w, statusFor(re.Kind), string(re.Kind), re.Message)
		return
	}
	log.Error().Err(err).Msg("room operation failed")
	writeError(w, http.StatusInternalServerError, "server_error", "")
}

// decode reads a JSON body into v. An empty body leaves v untouched.
func decode(r *http.Request, v any) error {
	if r.Body == nil || r.ContentLength == 0 {
		return nil
	}
	return json.NewDecoder(r.Body).Decode(v)
}

var avatars = []string{"🎮", "🚀", "🎯", "⭐", "🎪", "🎨", "🎭", "🎹", "🎸", "🎺"}

// defaultAvatar picks a stable avatar for a display name.
func defaultAvatar(name string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(strings.ToLower(name)))
	return avatars[h.Sum32()%uint32(len(avatars))]
}

// publish sends an event for roomID, logging failures.
func (s *Server) publish(ctx context.Context, roomID, event string, payload any) {
	if err := s.Events.Publish(ctx, events.Channel(roomID), event, payload); err != nil {
		log.Warn().Err(err).Str("roomId", roomID).Str("event", event).Msg("publish failed")
	}
}

// ------------------------------ diagnostics --------------------------------

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	res := map[string]any{"ok": true, "rooms": s.Rooms.RoomCount()}
	if s.Dictionary != nil {
		res["dictionaryLoaded"] = s.Dictionary.Stats().IsLoaded
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleDictionaryStatus(w http.ResponseWriter, r *http.Request) {
	if s.Dictionary == nil {
		writeJSON(w, http.StatusOK, words.Stats{})
		return
	}
	writeJSON(w, http.StatusOK, s.Dictionary.Stats())
}

// debugRoom is one line of the /debug/rooms listing.
type debugRoom struct {
	Code     string      `json:"code"`
	ID       string      `json:"id"`
	Status   game.Status `json:"status"`
	Players  int         `json:"players"`
	Sessions int         `json:"sessions"`
	Round    int         `json:"round"`
}

func (s *Server) handleDebugRooms(w http.ResponseWriter, r *http.Request) {
	list := s.Rooms.Rooms()
	out := make([]debugRoom, 0, len(list))
	for _, room := range list {
		sessions, err := s.Sessions.ByRoom(r.Context(), room.ID)
		if err != nil {
			log.Warn().Err(err).Str("roomId", room.ID).Msg("list sessions")
		}
		out = append(out, debugRoom{
			Code:     room.Code,
			ID:       room.ID,
			Status:   room.Status,
			Players:  s.Rooms.PlayerCount(room.Code),
			Sessions: len(sessions),
			Round:    room.Round,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	writeJSON(w, http.StatusOK, map[string]any{"count": s.Rooms.RoomCount(), "rooms": out})
}

// ------------------------------ websocket ----------------------------------

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	roomID := chi.URLParam(r, "roomID")
	if _, ok := s.Rooms.GetRoomByID(roomID); !ok {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		writeError(w, http.StatusNotFound, string(rooms.KindRoomNotFound), "room not found")
		return
	}
	if s.Hub == nil {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		writeError(w, http.StatusServiceUnavailable, "events_disabled", "")
		return
	}
	s.Hub.ServeWS(w, r, events.Channel(roomID))
}
