// apps/go-server/internal/history/store.go
//
// SQLite record of played rounds.
//   - games:        one row per started round (keyed by the round's game id).
//   - game_players: who played, with final scores once the round ends.
//   - game_words:   every accepted word, flagged unique at round end.
//
// The room manager only asks CodeExists; everything else is written
// best-effort by the HTTP layer after a successful state change.

package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/robalobadob/boggle/apps/go-server/internal/game"
)

const timeLayout = time.RFC3339Nano

// Store wraps the history database.
type Store struct{ db *sql.DB }

// NewStore returns a Store over an already migrated db.
func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// CodeExists reports whether any recorded game used code.
func (s *Store) CodeExists(ctx context.Context, code string) (bool, error) {
	var cnt int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM games WHERE room_code=?`,
		strings.ToUpper(code),
	).Scan(&cnt)
	return cnt > 0, err
}

func millis(ms int64) any {
	if ms == 0 {
		return nil
	}
	return time.UnixMilli(ms).UTC().Format(timeLayout)
}

// RecordGameStarted inserts the round and its players. Recording the same
// round twice is ignored.
func (s *Store) RecordGameStarted(ctx context.Context, snap game.Snapshot, seed uint64) error {
	if snap.GameID == "" {
		return fmt.Errorf("room %s has no game id", snap.Code)
	}
	boardJSON, err := json.Marshal(snap.Board)
	if err != nil {
		return fmt.Errorf("encode board: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
        INSERT OR IGNORE INTO games
            (id, room_code, grid_size, duration, status, host_id, board, seed, started_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		snap.GameID, snap.Code, snap.GridSize, snap.Duration, string(snap.Status),
		snap.Host.ID, string(boardJSON), int64(seed), millis(snap.StartTime),
	); err != nil {
		return fmt.Errorf("insert game: %w", err)
	}

	for _, p := range snap.Players {
		if _, err := tx.ExecContext(ctx, `
            INSERT OR IGNORE INTO game_players
                (id, game_id, player_name, avatar, is_host, joined_at)
            VALUES (?, ?, ?, ?, ?, ?)`,
			p.ID, snap.GameID, p.Name, p.Avatar, p.IsHost, p.CreatedAt.UTC().Format(timeLayout),
		); err != nil {
			return fmt.Errorf("insert player %s: %w", p.ID, err)
		}
	}
	return tx.Commit()
}

// RecordWord appends one accepted word.
func (s *Store) RecordWord(ctx context.Context, gameID, playerID string, fw game.FoundWord) error {
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO game_words (game_id, player_id, word, word_length, score, found_at)
        VALUES (?, ?, ?, ?, ?, ?)`,
		gameID, playerID, fw.Word, utf8.RuneCountInString(fw.Word), fw.Score, millis(fw.Timestamp),
	)
	return err
}

// RecordGameEnded closes the round: final status, per-player totals and
// unique-word flags.
func (s *Store) RecordGameEnded(ctx context.Context, snap game.Snapshot, res game.Results) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`UPDATE games SET status=?, ended_at=?, total_words_found=? WHERE id=?`,
		string(snap.Status), millis(snap.EndTime), res.TotalWords, snap.GameID,
	); err != nil {
		return fmt.Errorf("update game: %w", err)
	}

	unique := make(map[string]int)
	for _, w := range res.RevealSequence {
		if w.IsUnique {
			unique[w.PlayerID]++
			if _, err := tx.ExecContext(ctx,
				`UPDATE game_words SET is_unique=1 WHERE game_id=? AND player_id=? AND word=?`,
				snap.GameID, w.PlayerID, w.Word,
			); err != nil {
				return fmt.Errorf("flag unique %s: %w", w.Word, err)
			}
		}
	}

	for _, p := range snap.Players {
		if _, err := tx.ExecContext(ctx, `
            UPDATE game_players
            SET final_score=?, words_found=?, unique_words_found=?
            WHERE game_id=? AND id=?`,
			p.Score, len(p.FoundWords), unique[p.ID], snap.GameID, p.ID,
		); err != nil {
			return fmt.Errorf("update player %s: %w", p.ID, err)
		}
	}
	return tx.Commit()
}

// Summary is one row of RecentGames.
type Summary struct {
	ID         string `json:"id"`
	RoomCode   string `json:"roomCode"`
	GridSize   int    `json:"gridSize"`
	Status     string `json:"status"`
	Seed       uint64 `json:"seed"`
	TotalWords int    `json:"totalWords"`
	StartedAt  string `json:"startedAt,omitempty"`
	EndedAt    string `json:"endedAt,omitempty"`
}

// RecentGames lists the latest rounds played under a room code, newest first.
func (s *Store) RecentGames(ctx context.Context, code string, limit int) ([]Summary, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
        SELECT id, room_code, grid_size, status, seed, total_words_found,
               COALESCE(started_at, ''), COALESCE(ended_at, '')
        FROM games
        WHERE room_code=?
        ORDER BY started_at DESC, created_at DESC
        LIMIT ?`, strings.ToUpper(code), limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Summary, 0, limit)
	for rows.Next() {
		var r Summary
		var seed int64
		if err := rows.Scan(&r.ID, &r.RoomCode, &r.GridSize, &r.Status, &seed, &r.TotalWords, &r.StartedAt, &r.EndedAt); err != nil {
			return nil, err
		}
		r.Seed = uint64(seed)
		out = append(out, r)
	}
	return out, rows.Err()
}
