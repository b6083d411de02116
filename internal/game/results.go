package game

import (
	"sort"
	"strings"
)

// PlayerWord is one accepted word attributed to a player.
type PlayerWord struct {
	PlayerID   string `json:"playerId"`
	PlayerName string `json:"playerName"`
	Word       string `json:"word"`
	Score      int    `json:"score"`
}

// RevealWord is a PlayerWord marked with whether nobody else found it.
type RevealWord struct {
	PlayerWord
	IsUnique bool `json:"isUnique"`
}

// RevealScore doubles the score of unique words.
func (w RevealWord) RevealScore() int {
	if w.IsUnique {
		return w.Score * 2
	}
	return w.Score
}

// Ranking is one row of the final standings.
type Ranking struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
	Score  int    `json:"score"`
}

// Results bundles everything the reveal phase needs.
type Results struct {
	RevealSequence []RevealWord `json:"revealSequence"`
	FinalRankings  []Ranking    `json:"finalRankings"`
	TotalWords     int          `json:"totalWords"`
	UniqueWords    int          `json:"uniqueWords"`
}

// CalculateUniqueWords marks each word found by exactly one entry.
func CalculateUniqueWords(found []PlayerWord) []RevealWord {
	counts := make(map[string]int, len(found))
	for _, f := range found {
		counts[strings.ToUpper(f.Word)]++
	}
	out := make([]RevealWord, len(found))
	for i, f := range found {
		out[i] = RevealWord{PlayerWord: f, IsUnique: counts[strings.ToUpper(f.Word)] == 1}
	}
	return out
}

// PrepareRevealSequence orders words highest score first, keeping the
// input order among equal scores.
func PrepareRevealSequence(words []RevealWord) []RevealWord {
	out := append([]RevealWord(nil), words...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}

// FinalRankings orders players by score, highest first; ties keep the
// input order.
func FinalRankings(players []Player) []Ranking {
	out := make([]Ranking, len(players))
	for i, p := range players {
		out[i] = Ranking{ID: p.ID, Name: p.Name, Avatar: p.Avatar, Score: p.Score}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}

// BuildResults computes the reveal sequence and rankings for a snapshot.
func BuildResults(s Snapshot) Results {
	var found []PlayerWord
	for _, p := range s.Players {
		for _, fw := range p.FoundWords {
			found = append(found, PlayerWord{PlayerID: p.ID, PlayerName: p.Name, Word: fw.Word, Score: fw.Score})
		}
	}
	seq := PrepareRevealSequence(CalculateUniqueWords(found))
	res := Results{
		RevealSequence: seq,
		FinalRankings:  FinalRankings(s.Players),
		TotalWords:     len(seq),
	}
	for _, w := range seq {
		if w.IsUnique {
			res.UniqueWords++
		}
	}
	return res
}
