// apps/go-server/internal/solver/solver.go
//
// Exhaustive board solver.
//
// Solve enumerates every dictionary word of at least MinWordLength letters
// that can be traced as a simple path of 8-directionally adjacent cells.
// The search is a depth-first walk from every cell that follows the trie
// in lock step with the path, pruning as soon as the accumulated prefix
// leaves the trie. A fused tile such as "QU" is one grid step but one trie
// transition per letter.
//
// Solve holds no shared state and may run concurrently on any number of
// boards against the same (read-only) trie.

package solver

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/robalobadob/boggle/apps/go-server/internal/board"
	"github.com/robalobadob/boggle/apps/go-server/internal/words"
)

// MinWordLength is the shortest word the solver records.
const MinWordLength = 3

// Result is the set of words found on a board.
type Result struct {
	Words  []string `json:"words"`  // sorted, deduplicated, uppercase
	MaxLen int      `json:"maxLen"` // letters in the longest word, 0 if none
}

// Count returns the number of distinct words found.
func (r Result) Count() int { return len(r.Words) }

type search struct {
	b       board.Board
	visited [][]bool
	found   map[string]struct{}
	maxLen  int
}

// Solve returns every word from root embeddable on b.
func Solve(b board.Board, root *words.TrieNode) Result {
	if len(b) == 0 || root == nil {
		return Result{Words: []string{}}
	}
	s := &search{
		b:       b,
		visited: make([][]bool, len(b)),
		found:   make(map[string]struct{}),
	}
	for r := range b {
		s.visited[r] = make([]bool, len(b[r]))
	}

	for r := range b {
		for c := range b[r] {
			s.dfs(r, c, root, "")
		}
	}

	out := make([]string, 0, len(s.found))
	for w := range s.found {
		out = append(out, w)
	}
	sort.Strings(out)
	return Result{Words: out, MaxLen: s.maxLen}
}

func (s *search) dfs(r, c int, node *words.TrieNode, prefix string) {
	if r < 0 || r >= len(s.b) || c < 0 || c >= len(s.b[r]) || s.visited[r][c] {
		return
	}

	tile := strings.ToUpper(s.b[r][c])
	next := node
	for _, letter := range tile {
		next = next.Child(letter)
		if next == nil {
			return
		}
	}

	word := prefix + tile
	if n := utf8.RuneCountInString(word); next.IsWord && n >= MinWordLength {
		s.found[word] = struct{}{}
		s.maxLen = max(s.maxLen, n)
	}

	s.visited[r][c] = true
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			s.dfs(r+dr, c+dc, next, word)
		}
	}
	s.visited[r][c] = false
}
