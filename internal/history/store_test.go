package history

import (
	"context"
	"database/sql"
	"testing"
	"testing/fstest"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/boggle/apps/go-server/internal/board"
	"github.com/robalobadob/boggle/apps/go-server/internal/game"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, Migrate(db))
	return db
}

func startedSnapshot() game.Snapshot {
	joined := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	host := game.Player{ID: "p1", Name: "Ana", Avatar: "cat", IsHost: true, CreatedAt: joined}
	return game.Snapshot{
		ID:        "room-1",
		Code:      "ABC123",
		Host:      host,
		Players:   []game.Player{host, {ID: "p2", Name: "Luis", Avatar: "dog", CreatedAt: joined.Add(time.Second)}},
		GridSize:  4,
		Status:    game.StatusPlaying,
		Board:     board.Board{{"A", "B"}, {"C", "D"}},
		StartTime: joined.Add(time.Minute).UnixMilli(),
		Duration:  120,
		Round:     1,
		GameID:    "game-1",
	}
}

func TestMigrateIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, Migrate(db))

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(1) FROM _migrations`).Scan(&n))
	assert.Equal(t, 1, n)
}

func TestMigrateSelfManagedScript(t *testing.T) {
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	defer db.Close()

	fsys := fstest.MapFS{
		"001_a.sql": {Data: []byte(`CREATE TABLE a (id INTEGER);`)},
		"002_b.sql": {Data: []byte("BEGIN TRANSACTION;\nCREATE TABLE b (id INTEGER);\nCOMMIT;")},
		"notes.txt": {Data: []byte("ignored")},
	}
	require.NoError(t, migrateFS(db, fsys))
	require.NoError(t, migrateFS(db, fsys))

	var names []string
	rows, err := db.Query(`SELECT name FROM _migrations ORDER BY name`)
	require.NoError(t, err)
	for rows.Next() {
		var s string
		require.NoError(t, rows.Scan(&s))
		names = append(names, s)
	}
	require.NoError(t, rows.Err())
	assert.Equal(t, []string{"001_a.sql", "002_b.sql"}, names)
}

func TestCodeExists(t *testing.T) {
	s := NewStore(openTestDB(t))
	ctx := context.Background()

	ok, err := s.CodeExists(ctx, "ABC123")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.RecordGameStarted(ctx, startedSnapshot(), 7))

	ok, err = s.CodeExists(ctx, "abc123")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCodeExistsClosedDB(t *testing.T) {
	db := openTestDB(t)
	s := NewStore(db)
	require.NoError(t, db.Close())

	_, err := s.CodeExists(context.Background(), "ABC123")
	assert.Error(t, err)
}

func TestRecordRoundLifecycle(t *testing.T) {
	db := openTestDB(t)
	s := NewStore(db)
	ctx := context.Background()
	snap := startedSnapshot()

	require.NoError(t, s.RecordGameStarted(ctx, snap, 1<<63+5))
	require.NoError(t, s.RecordGameStarted(ctx, snap, 1<<63+5), "duplicate start is ignored")

	at := time.Date(2024, 3, 1, 10, 1, 30, 0, time.UTC).UnixMilli()
	casa := game.FoundWord{Word: "CASA", Score: 1, Timestamp: at}
	queso := game.FoundWord{Word: "QUESO", Score: 2, Timestamp: at + 1000}
	require.NoError(t, s.RecordWord(ctx, snap.GameID, "p1", casa))
	require.NoError(t, s.RecordWord(ctx, snap.GameID, "p1", queso))
	require.NoError(t, s.RecordWord(ctx, snap.GameID, "p2", casa))

	snap.Status = game.StatusFinished
	snap.EndTime = at + 60_000
	snap.Players[0].FoundWords = []game.FoundWord{casa, queso}
	snap.Players[0].Score = 3
	snap.Players[1].FoundWords = []game.FoundWord{casa}
	snap.Players[1].Score = 1
	require.NoError(t, s.RecordGameEnded(ctx, snap, game.BuildResults(snap)))

	var status string
	var total int
	require.NoError(t, db.QueryRow(`SELECT status, total_words_found FROM games WHERE id=?`, "game-1").Scan(&status, &total))
	assert.Equal(t, "finished", status)
	assert.Equal(t, 3, total)

	var score, found, unique int
	require.NoError(t, db.QueryRow(
		`SELECT final_score, words_found, unique_words_found FROM game_players WHERE game_id=? AND id=?`,
		"game-1", "p1").Scan(&score, &found, &unique))
	assert.Equal(t, []int{3, 2, 1}, []int{score, found, unique})

	var uniqueWords int
	require.NoError(t, db.QueryRow(`SELECT COUNT(1) FROM game_words WHERE is_unique=1`).Scan(&uniqueWords))
	assert.Equal(t, 1, uniqueWords)

	recent, err := s.RecentGames(ctx, "abc123", 0)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, uint64(1<<63+5), recent[0].Seed)
	assert.Equal(t, "finished", recent[0].Status)
	assert.NotEmpty(t, recent[0].EndedAt)
}

func TestRecordGameStartedNeedsGameID(t *testing.T) {
	s := NewStore(openTestDB(t))
	snap := startedSnapshot()
	snap.GameID = ""
	assert.Error(t, s.RecordGameStarted(context.Background(), snap, 0))
}
