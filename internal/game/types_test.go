package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/robalobadob/boggle/apps/go-server/internal/board"
)

func TestDefaultDurationIsMonotonic(t *testing.T) {
	prev := 0
	for _, n := range board.Sizes {
		d := DefaultDuration(n)
		assert.GreaterOrEqual(t, d, prev, "size %d", n)
		assert.Equal(t, d, DefaultDuration(n))
		prev = d
	}
}

func TestSnapshotCopiesState(t *testing.T) {
	t0 := time.Unix(100, 0)
	host := &Player{ID: "h", Name: "Host", IsHost: true, CreatedAt: t0, FoundWords: []FoundWord{{Word: "SOL"}}}
	guest := &Player{ID: "g", Name: "Guest", CreatedAt: t0.Add(time.Second)}
	r := &Room{
		ID: "id", Code: "ABC123", HostID: "h",
		Players:   map[string]*Player{"h": host, "g": guest},
		Status:    StatusPlaying,
		Board:     board.Board{{"A"}},
		StartTime: time.UnixMilli(5000),
	}

	s := r.Snapshot()
	assert.Equal(t, "h", s.Host.ID)
	assert.Equal(t, []string{"h", "g"}, []string{s.Players[0].ID, s.Players[1].ID})
	assert.EqualValues(t, 5000, s.StartTime)
	assert.Zero(t, s.EndTime)

	s.Players[0].FoundWords[0].Word = "MAR"
	s.Board[0][0] = "Z"
	assert.Equal(t, "SOL", host.FoundWords[0].Word)
	assert.Equal(t, "A", r.Board[0][0])

	p, ok := s.Player("g")
	assert.True(t, ok)
	assert.Equal(t, "Guest", p.Name)
	_, ok = s.Player("nobody")
	assert.False(t, ok)
}

func TestNameTakenIgnoresCase(t *testing.T) {
	r := &Room{Players: map[string]*Player{"a": {ID: "a", Name: "Lucía"}}}
	assert.True(t, r.NameTaken("LUCÍA"))
	assert.False(t, r.NameTaken("Lucia"))
}

func TestPlayerHelpers(t *testing.T) {
	p := &Player{Score: 4, FoundWords: []FoundWord{{Word: "CASA"}, {Word: "SOL"}}}
	assert.Equal(t, []string{"CASA", "SOL"}, p.Words())
	p.ResetRound()
	assert.Zero(t, p.Score)
	assert.NotNil(t, p.FoundWords)
	assert.Empty(t, p.FoundWords)
}
