package game

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/robalobadob/boggle/apps/go-server/internal/board"
)

type wordSet map[string]bool

func (w wordSet) Contains(s string) bool { return w[strings.ToLower(s)] }

var lex = wordSet{"hola": true, "queso": true, "casa": true, "cosas": true, "arbol": true, "año": true}

func row(cols ...int) []board.Cell {
	out := make([]board.Cell, len(cols))
	for i, c := range cols {
		out[i] = board.Cell{Row: 0, Col: c}
	}
	return out
}

func TestCalculateScore(t *testing.T) {
	cases := []struct {
		length int
		want   int
	}{
		{0, 0}, {1, 0}, {2, 0},
		{3, 1}, {4, 1},
		{5, 2},
		{6, 3},
		{7, 5}, {8, 5}, {12, 5},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, CalculateScore(strings.Repeat("A", c.length)), "length %d", c.length)
	}
	assert.Equal(t, 1, CalculateScore("AÑO"), "letters, not bytes")
}

func TestValidateWordAccepts(t *testing.T) {
	res := ValidateWord(lex, Submission{Word: "HOLA", Path: row(0, 1, 2, 3), GridSize: 4})
	assert.True(t, res.Valid)
	assert.Equal(t, 1, res.Score)
	assert.Empty(t, res.Reason)
	assert.Equal(t, "HOLA", res.Word)
}

func TestValidateWordLowercaseInput(t *testing.T) {
	res := ValidateWord(lex, Submission{Word: "hola", Path: row(0, 1, 2, 3), GridSize: 4})
	assert.True(t, res.Valid)
	assert.Equal(t, "HOLA", res.Word)
}

func TestValidateWordDuplicate(t *testing.T) {
	res := ValidateWord(lex, Submission{Word: "HOLA", Path: row(0, 1, 2, 3), GridSize: 4, FoundWords: []string{"hola"}})
	assert.False(t, res.Valid)
	assert.Equal(t, ReasonDuplicate, res.Reason)
	assert.Zero(t, res.Score)
}

func TestValidateWordFoldsAccents(t *testing.T) {
	res := ValidateWord(lex, Submission{Word: "árbol", Path: row(0, 1, 2, 3, 4), GridSize: 5})
	assert.True(t, res.Valid)
	assert.Equal(t, "ARBOL", res.Word)

	res = ValidateWord(lex, Submission{Word: "arbol", Path: row(0, 1, 2, 3, 4), GridSize: 5, FoundWords: []string{res.Word}})
	assert.Equal(t, ReasonDuplicate, res.Reason)

	res = ValidateWord(lex, Submission{Word: "ÁRBOL", Path: row(0, 1, 2, 3, 4), GridSize: 5, FoundWords: []string{"árbol"}})
	assert.Equal(t, ReasonDuplicate, res.Reason)

	b := board.Board{
		{"A", "R", "B", "O", "L"},
		{"A", "Ñ", "O", "X", "X"},
		{"X", "X", "X", "X", "X"},
		{"X", "X", "X", "X", "X"},
		{"X", "X", "X", "X", "X"},
	}
	res = ValidateWord(lex, Submission{Word: "Árbol", Path: row(0, 1, 2, 3, 4), GridSize: 5, Board: b})
	assert.True(t, res.Valid, "accented input matches plain tiles")

	ano := []board.Cell{{Row: 1, Col: 0}, {Row: 1, Col: 1}, {Row: 1, Col: 2}}
	res = ValidateWord(lex, Submission{Word: "año", Path: ano, GridSize: 5, Board: b})
	assert.True(t, res.Valid, "ñ survives folding")
	assert.Equal(t, "AÑO", res.Word)
}

func TestValidateWordNonAdjacentHop(t *testing.T) {
	res := ValidateWord(lex, Submission{Word: "HOLA", Path: row(0, 2, 1, 3), GridSize: 4})
	assert.Equal(t, ReasonInvalidPath, res.Reason)
}

func TestValidateWordRejections(t *testing.T) {
	cases := []struct {
		name string
		sub  Submission
		want string
	}{
		{"too short", Submission{Word: "SI", Path: row(0, 1), GridSize: 4}, ReasonTooShort},
		{"empty", Submission{Word: "  ", GridSize: 4}, ReasonTooShort},
		{"path shorter", Submission{Word: "HOLA", Path: row(0, 1, 2), GridSize: 4}, ReasonPathLength},
		{"path longer", Submission{Word: "HOLA", Path: row(0, 1, 2, 3, 4), GridSize: 6}, ReasonPathLength},
		{"out of bounds", Submission{Word: "HOLA", Path: row(1, 2, 3, 4), GridSize: 4}, ReasonInvalidPath},
		{"negative", Submission{Word: "HOLA", Path: row(-1, 0, 1, 2), GridSize: 4}, ReasonInvalidPath},
		{"repeated cell", Submission{Word: "HOLA", Path: row(0, 1, 0, 1), GridSize: 4}, ReasonInvalidPath},
		{"same cell twice in a row", Submission{Word: "HOLA", Path: row(0, 0, 1, 2), GridSize: 4}, ReasonInvalidPath},
		{"not a word", Submission{Word: "HOLX", Path: row(0, 1, 2, 3), GridSize: 4}, ReasonNotInDictionary},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			res := ValidateWord(lex, c.sub)
			assert.False(t, res.Valid)
			assert.Equal(t, c.want, res.Reason)
		})
	}
}

// A submission failing several rules reports the earliest one.
func TestValidateWordCheckOrder(t *testing.T) {
	dup := []string{"HOLA"}

	res := ValidateWord(lex, Submission{Word: "HO", Path: row(0, 2, 1), GridSize: 4, FoundWords: dup})
	assert.Equal(t, ReasonTooShort, res.Reason)

	res = ValidateWord(lex, Submission{Word: "HOLA", Path: row(0, 2, 9), GridSize: 4, FoundWords: dup})
	assert.Equal(t, ReasonPathLength, res.Reason)

	res = ValidateWord(lex, Submission{Word: "HOLA", Path: row(0, 2, 1, 3), GridSize: 4, FoundWords: dup})
	assert.Equal(t, ReasonInvalidPath, res.Reason)

	res = ValidateWord(lex, Submission{Word: "XXXX", Path: row(0, 1, 2, 3), GridSize: 4, FoundWords: []string{"xxxx"}})
	assert.Equal(t, ReasonDuplicate, res.Reason, "duplicate is checked before the dictionary")
}

func TestValidateWordDiagonalPath(t *testing.T) {
	path := []board.Cell{{Row: 0, Col: 0}, {Row: 1, Col: 1}, {Row: 2, Col: 2}, {Row: 3, Col: 3}}
	res := ValidateWord(lex, Submission{Word: "CASA", Path: path, GridSize: 4})
	assert.True(t, res.Valid)
}

func TestValidateWordWithBoard(t *testing.T) {
	b := board.Board{
		{"QU", "E", "S", "O"},
		{"H", "O", "L", "A"},
		{"C", "A", "S", "A"},
		{"X", "X", "X", "X"},
	}

	res := ValidateWord(lex, Submission{Word: "QUESO", Path: row(0, 1, 2, 3), GridSize: 4, Board: b})
	assert.True(t, res.Valid, "QU tile covers two letters")
	assert.Equal(t, 2, res.Score)

	hola := []board.Cell{{Row: 1, Col: 0}, {Row: 1, Col: 1}, {Row: 1, Col: 2}, {Row: 1, Col: 3}}
	assert.True(t, ValidateWord(lex, Submission{Word: "hola", Path: hola, GridSize: 4, Board: b}).Valid)

	res = ValidateWord(lex, Submission{Word: "CASA", Path: hola, GridSize: 4, Board: b})
	assert.Equal(t, ReasonBoardMismatch, res.Reason)

	res = ValidateWord(lex, Submission{Word: "QUESO", Path: row(0, 1, 2, 3, 0), GridSize: 4, Board: b})
	assert.Equal(t, ReasonPathLength, res.Reason)
}

func TestValidateWordNilLexicon(t *testing.T) {
	res := ValidateWord(nil, Submission{Word: "HOLA", Path: row(0, 1, 2, 3), GridSize: 4})
	assert.Equal(t, ReasonNotInDictionary, res.Reason)
}

func TestValidPath(t *testing.T) {
	assert.True(t, ValidPath(nil, 4))
	assert.True(t, ValidPath(row(3, 2, 1, 0), 4))
	assert.False(t, ValidPath(row(0, 1, 2, 3, 4), 4))
}
