package generator

// Spanish letter dice per grid size. Each die has six faces; a board uses
// every die of its set exactly once.
var dice4 = [][]string{
	{"A", "E", "O", "I", "U", "N"},
	{"R", "L", "S", "T", "D", "N"},
	{"A", "B", "C", "D", "E", "L"},
	{"E", "I", "O", "S", "T", "R"},
	{"A", "M", "O", "R", "S", "E"},
	{"P", "A", "R", "T", "E", "S"},
	{"C", "O", "N", "T", "R", "A"},
	{"D", "E", "L", "M", "N", "O"},
	{"E", "S", "T", "A", "R", "L"},
	{"I", "N", "O", "S", "T", "V"},
	{"L", "A", "S", "E", "R", "I"},
	{"M", "E", "N", "T", "O", "S"},
	{"QU", "E", "I", "A", "O", "U"},
	{"R", "A", "S", "E", "I", "O"},
	{"T", "I", "E", "N", "D", "A"},
	{"V", "E", "R", "D", "A", "O"},
}

var dice5 = append(cloneDice(dice4[:12]), [][]string{
	{"A", "D", "O", "R", "E", "S"},
	{"Ñ", "O", "A", "E", "I", "U"},
	{"P", "U", "E", "D", "O", "S"},
	{"QU", "E", "I", "A", "O", "U"},
	{"R", "A", "S", "E", "I", "O"},
	{"S", "A", "L", "T", "E", "R"},
	{"T", "I", "E", "N", "D", "A"},
	{"V", "E", "R", "D", "A", "O"},
	{"A", "G", "O", "U", "H", "I"},
	{"B", "I", "E", "N", "O", "A"},
	{"C", "A", "S", "O", "I", "E"},
	{"F", "U", "E", "R", "A", "O"},
	{"G", "A", "T", "O", "S", "E"},
}...)

var dice6 = append(cloneDice(dice5), [][]string{
	{"H", "A", "C", "E", "R", "I"},
	{"J", "U", "E", "G", "O", "A"},
	{"L", "U", "N", "A", "S", "E"},
	{"M", "A", "N", "O", "S", "I"},
	{"P", "E", "R", "O", "S", "A"},
	{"S", "O", "L", "O", "A", "E"},
	{"T", "O", "D", "O", "A", "S"},
	{"U", "N", "O", "S", "A", "E"},
	{"V", "I", "D", "A", "S", "E"},
	{"Z", "O", "N", "A", "S", "E"},
	{"Y", "A", "E", "O", "I", "U"},
}...)

func cloneDice(src [][]string) [][]string {
	out := make([][]string, len(src))
	copy(out, src)
	return out
}

// Dice returns the die set for a grid size, or nil if unsupported.
func Dice(gridSize int) [][]string {
	switch gridSize {
	case 4:
		return dice4
	case 5:
		return dice5
	case 6:
		return dice6
	}
	return nil
}
