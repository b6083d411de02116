package solver

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/boggle/apps/go-server/internal/board"
	"github.com/robalobadob/boggle/apps/go-server/internal/words"
)

var abcd = board.Board{{"A", "B"}, {"C", "D"}}

func TestSolveNoWords(t *testing.T) {
	res := Solve(abcd, words.BuildTrie([]string{"xyz", "ab", "dog"}))
	assert.Empty(t, res.Words)
	assert.Equal(t, 0, res.MaxLen)
}

func TestSolveFindsAdjacentPath(t *testing.T) {
	res := Solve(abcd, words.BuildTrie([]string{"abd"}))
	assert.Equal(t, []string{"ABD"}, res.Words)
	assert.Equal(t, 3, res.MaxLen)
}

func TestSolveNeverReusesCell(t *testing.T) {
	// "ABA" would need the single A twice.
	res := Solve(abcd, words.BuildTrie([]string{"aba", "abca"}))
	assert.Empty(t, res.Words)
}

func TestSolveRevisitsCellOnDifferentBranch(t *testing.T) {
	// Both words start in different places but share cell D.
	res := Solve(abcd, words.BuildTrie([]string{"abd", "cdb", "dcab"}))
	assert.Equal(t, []string{"ABD", "CDB", "DCAB"}, res.Words)
	assert.Equal(t, 4, res.MaxLen)
}

func TestSolveSkipsShortWords(t *testing.T) {
	res := Solve(abcd, words.BuildTrie([]string{"ab", "a"}))
	assert.Empty(t, res.Words)
}

func TestSolveFusedTile(t *testing.T) {
	b := board.Board{
		{"QU", "E", "X"},
		{"X", "S", "X"},
		{"X", "X", "O"},
	}
	res := Solve(b, words.BuildTrie([]string{"queso", "que", "qeso"}))
	assert.Equal(t, []string{"QUE", "QUESO"}, res.Words)
	assert.Equal(t, 5, res.MaxLen, "QU counts as two letters")
}

func TestSolveCountsDuplicatePathsOnce(t *testing.T) {
	b := board.Board{{"S", "O"}, {"O", "L"}}
	res := Solve(b, words.BuildTrie([]string{"sol"}))
	assert.Equal(t, []string{"SOL"}, res.Words)
	assert.Equal(t, 1, res.Count())
}

func TestSolveLowercaseTiles(t *testing.T) {
	res := Solve(board.Board{{"a", "b"}, {"c", "d"}}, words.BuildTrie([]string{"abd"}))
	assert.Equal(t, []string{"ABD"}, res.Words)
}

func TestSolveEmptyInputs(t *testing.T) {
	assert.Empty(t, Solve(nil, words.BuildTrie([]string{"abc"})).Words)
	assert.Empty(t, Solve(abcd, nil).Words)
}

// Every reported word must be traceable; brute force over all simple paths
// must find nothing the solver missed.
func TestSolveMatchesBruteForce(t *testing.T) {
	b := board.Board{
		{"C", "A", "S"},
		{"O", "S", "A"},
		{"L", "A", "R"},
	}
	vocab := []string{"casa", "cosa", "sol", "sala", "ola", "rasa", "caso", "losa", "cola", "asar", "saco"}
	trie := words.BuildTrie(vocab)
	res := Solve(b, trie)

	want := map[string]struct{}{}
	var walk func(c board.Cell, seen map[board.Cell]bool, acc string)
	walk = func(c board.Cell, seen map[board.Cell]bool, acc string) {
		acc += b.Tile(c)
		if len(acc) >= MinWordLength && trie.Contains(acc) {
			want[acc] = struct{}{}
		}
		seen[c] = true
		for dr := -1; dr <= 1; dr++ {
			for dc := -1; dc <= 1; dc++ {
				n := board.Cell{Row: c.Row + dr, Col: c.Col + dc}
				if n.InBounds(3) && !seen[n] && board.Adjacent(c, n) {
					walk(n, seen, acc)
				}
			}
		}
		delete(seen, c)
	}
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			walk(board.Cell{Row: r, Col: c}, map[board.Cell]bool{}, "")
		}
	}

	require.NotEmpty(t, want)
	got := map[string]struct{}{}
	for _, w := range res.Words {
		got[w] = struct{}{}
	}
	assert.Equal(t, want, got)
}

func TestSolveConcurrentReaders(t *testing.T) {
	trie := words.BuildTrie([]string{"abd", "cdb"})
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Len(t, Solve(abcd, trie).Words, 2)
		}()
	}
	wg.Wait()
}
