// apps/go-server/internal/game/validator.go
//
// Word submission rules.
//
// ValidateWord runs its checks in a fixed order and stops at the first
// failure, so a given bad submission always yields the same reason:
//
//  1. length         (ReasonTooShort)
//  2. path length    (ReasonPathLength)
//  3. path geometry  (ReasonInvalidPath)
//  4. board letters  (ReasonBoardMismatch, only when a board is supplied)
//  5. duplicate      (ReasonDuplicate)
//  6. dictionary     (ReasonNotInDictionary)
//
// Rejections are values, never errors.

package game

import (
	"strings"
	"unicode/utf8"

	"github.com/robalobadob/boggle/apps/go-server/internal/board"
	"github.com/robalobadob/boggle/apps/go-server/internal/words"
)

// MinWordLength is the shortest word a player may submit.
const MinWordLength = 3

// Rejection reasons.
const (
	ReasonTooShort        = "Word too short"
	ReasonPathLength      = "Path length does not match word length"
	ReasonInvalidPath     = "Invalid path"
	ReasonBoardMismatch   = "Word does not match board"
	ReasonDuplicate       = "Word already submitted"
	ReasonNotInDictionary = "Word not found in dictionary"
)

// Lexicon answers dictionary membership, ignoring case.
type Lexicon interface {
	Contains(word string) bool
}

// Submission is one word claim from a player.
type Submission struct {
	Word       string       `json:"word"`
	Path       []board.Cell `json:"path"`
	FoundWords []string     `json:"foundWords"`
	GridSize   int          `json:"gridSize"`

	// Board is optional. When set, the path must spell Word on it and
	// fused tiles count once per letter in the length check.
	Board board.Board `json:"-"`
}

// Result is the outcome of ValidateWord.
type Result struct {
	Valid  bool   `json:"valid"`
	Score  int    `json:"score"`
	Reason string `json:"reason,omitempty"`
	Word   string `json:"word"`
}

// CalculateScore returns the points for a word of the given length.
func CalculateScore(word string) int {
	switch n := utf8.RuneCountInString(word); {
	case n < 3:
		return 0
	case n <= 4:
		return 1
	case n == 5:
		return 2
	case n == 6:
		return 3
	default:
		return 5
	}
}

// ValidateWord checks sub against the rules and, on success, scores it.
// The word is folded the way the dictionary folds its entries (accents
// dropped, ñ kept) before any check, so "árbol" and "ARBOL" are one word.
func ValidateWord(lex Lexicon, sub Submission) Result {
	word := strings.ToUpper(words.Fold(sub.Word))
	reject := func(reason string) Result {
		return Result{Reason: reason, Word: word}
	}

	letters := utf8.RuneCountInString(word)
	if letters < MinWordLength {
		return reject(ReasonTooShort)
	}
	if pathLetters(sub.Path, sub.Board) != letters {
		return reject(ReasonPathLength)
	}
	if !ValidPath(sub.Path, sub.GridSize) {
		return reject(ReasonInvalidPath)
	}
	if sub.Board != nil && !strings.EqualFold(sub.Board.Spell(sub.Path), word) {
		return reject(ReasonBoardMismatch)
	}
	for _, fw := range sub.FoundWords {
		if strings.EqualFold(words.Fold(fw), word) {
			return reject(ReasonDuplicate)
		}
	}
	if lex == nil || !lex.Contains(word) {
		return reject(ReasonNotInDictionary)
	}
	return Result{Valid: true, Score: CalculateScore(word), Word: word}
}

// pathLetters is the number of letters the path covers: one per cell, or
// the tile's letter count when a board is known.
func pathLetters(path []board.Cell, b board.Board) int {
	if b == nil {
		return len(path)
	}
	n := 0
	for _, c := range path {
		if tile := b.Tile(c); tile != "" {
			n += utf8.RuneCountInString(tile)
		} else {
			n++
		}
	}
	return n
}

// ValidPath reports whether path stays on a size×size grid, never repeats
// a cell and only steps between adjacent cells.
func ValidPath(path []board.Cell, size int) bool {
	seen := make(map[board.Cell]struct{}, len(path))
	for i, c := range path {
		if !c.InBounds(size) {
			return false
		}
		if _, dup := seen[c]; dup {
			return false
		}
		seen[c] = struct{}{}
		if i > 0 && !board.Adjacent(path[i-1], c) {
			return false
		}
	}
	return true
}
