// apps/go-server/internal/board/board.go
//
// Shared letter grid types.
//
//   - Board: square grid of tiles, row-major. A tile is one or more
//     uppercase letters ("A", "Ñ", or a fused unit such as "QU").
//   - Cell:  a row/column coordinate into a Board.
//
// Geometry helpers (InBounds, Adjacent) are used by both the word
// validator and the solver so the two agree on what a path is.

package board

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Sizes lists the supported grid side lengths.
var Sizes = []int{4, 5, 6}

// ValidSize reports whether n is a supported grid side length.
func ValidSize(n int) bool {
	for _, s := range Sizes {
		if s == n {
			return true
		}
	}
	return false
}

// Board is a square grid of tiles.
type Board [][]string

// Cell is a coordinate on a board.
type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// InBounds reports whether c lies on a size×size grid.
func (c Cell) InBounds(size int) bool {
	return c.Row >= 0 && c.Row < size && c.Col >= 0 && c.Col < size
}

// Adjacent reports whether a and b are distinct 8-directional neighbours.
func Adjacent(a, b Cell) bool {
	dr, dc := abs(a.Row-b.Row), abs(a.Col-b.Col)
	return max(dr, dc) == 1
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// Size returns the side length of b (0 for an empty board).
func (b Board) Size() int { return len(b) }

// Tile returns the tile at c, or "" when c is off the board.
func (b Board) Tile(c Cell) string {
	if c.Row < 0 || c.Row >= len(b) || c.Col < 0 || c.Col >= len(b[c.Row]) {
		return ""
	}
	return b[c.Row][c.Col]
}

// Spell concatenates the tiles along path.
func (b Board) Spell(path []Cell) string {
	var sb strings.Builder
	for _, c := range path {
		sb.WriteString(b.Tile(c))
	}
	return sb.String()
}

// Clone returns a deep copy of b.
func (b Board) Clone() Board {
	if b == nil {
		return nil
	}
	out := make(Board, len(b))
	for i, row := range b {
		out[i] = append([]string(nil), row...)
	}
	return out
}

// IsValid reports whether b is a non-empty square grid whose tiles are
// each one or more uppercase letters.
func IsValid(b Board) bool {
	if len(b) == 0 {
		return false
	}
	size := len(b)
	for _, row := range b {
		if len(row) != size {
			return false
		}
		for _, tile := range row {
			if !validTile(tile) {
				return false
			}
		}
	}
	return true
}

func validTile(t string) bool {
	if t == "" || utf8.RuneCountInString(t) > 2 {
		return false
	}
	for _, r := range t {
		if !unicode.IsUpper(r) {
			return false
		}
	}
	return true
}

// Stats summarises tile usage on a board.
type Stats struct {
	TotalCells    int            `json:"totalCells"`
	UniqueLetters int            `json:"uniqueLetters"`
	LetterCounts  map[string]int `json:"letterCounts"`
	MostFrequent  string         `json:"mostFrequent"`
}

// ComputeStats counts tiles on b. Ties for MostFrequent go to the
// alphabetically first tile.
func ComputeStats(b Board) Stats {
	st := Stats{LetterCounts: make(map[string]int)}
	for _, row := range b {
		for _, tile := range row {
			st.LetterCounts[tile]++
			st.TotalCells++
		}
	}
	st.UniqueLetters = len(st.LetterCounts)

	keys := make([]string, 0, len(st.LetterCounts))
	for k := range st.LetterCounts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	best := 0
	for _, k := range keys {
		if n := st.LetterCounts[k]; n > best {
			best, st.MostFrequent = n, k
		}
	}
	return st
}
