// apps/go-server/internal/generator/generator.go
//
// Board generation.
//
//   - Generate: shuffle the die set for a grid size and roll one face per
//     cell. Pure apart from the supplied RNG, so a seed reproduces a board.
//   - GenerateGood: keep rolling until the solver finds enough words and a
//     long enough word. After RelaxAfter failed attempts the word-count
//     threshold drops by RelaxFactor; after MaxAttempts the last candidate
//     is returned regardless of quality.
//
// A Generator only reads its trie, so one instance is safe to share.

package generator

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/robalobadob/boggle/apps/go-server/internal/board"
	"github.com/robalobadob/boggle/apps/go-server/internal/solver"
	"github.com/robalobadob/boggle/apps/go-server/internal/words"
)

// ErrUnsupportedSize is returned for grid sizes without a die set.
var ErrUnsupportedSize = errors.New("generator: unsupported grid size")

const (
	defaultMaxAttempts = 100
	defaultRelaxAfter  = 50
	defaultRelaxFactor = 0.7
)

// Threshold is the quality bar a candidate board must meet.
type Threshold struct {
	MinWords int
	MinLen   int
}

// DefaultThreshold returns the acceptance bar for a grid size.
func DefaultThreshold(gridSize int) Threshold {
	switch gridSize {
	case 5:
		return Threshold{MinWords: 40, MinLen: 7}
	case 6:
		return Threshold{MinWords: 60, MinLen: 7}
	default:
		return Threshold{MinWords: 20, MinLen: 6}
	}
}

// Outcome is the result of GenerateGood.
type Outcome struct {
	Board    board.Board
	Words    []string
	MaxLen   int
	Attempts int
	Accepted bool // false when the attempt cap was hit
	Relaxed  bool // true when the word-count bar was lowered
	Seed     uint64
}

// Generator produces vetted boards against one trie.
type Generator struct {
	trie        *words.TrieNode
	maxAttempts int
	relaxAfter  int
	relaxFactor float64
	threshold   func(int) Threshold
	tracer      trace.Tracer
}

// Option customises a Generator.
type Option func(*Generator)

// WithAttempts overrides the attempt cap and the relaxation point.
func WithAttempts(maxAttempts, relaxAfter int) Option {
	return func(g *Generator) {
		g.maxAttempts, g.relaxAfter = maxAttempts, relaxAfter
	}
}

// WithThreshold overrides the per-size acceptance bar.
func WithThreshold(f func(gridSize int) Threshold) Option {
	return func(g *Generator) { g.threshold = f }
}

// New returns a Generator scoring boards against trie.
func New(trie *words.TrieNode, opts ...Option) *Generator {
	g := &Generator{
		trie:        trie,
		maxAttempts: defaultMaxAttempts,
		relaxAfter:  defaultRelaxAfter,
		relaxFactor: defaultRelaxFactor,
		threshold:   DefaultThreshold,
		tracer:      otel.Tracer("boggle/generator"),
	}
	for _, o := range opts {
		o(g)
	}
	if g.maxAttempts < 1 {
		g.maxAttempts = 1
	}
	return g
}

// NewRand returns the RNG used for a seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Generate rolls a gridSize×gridSize board using rng.
func Generate(rng *rand.Rand, gridSize int) (board.Board, error) {
	set := Dice(gridSize)
	if set == nil {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedSize, gridSize)
	}
	dice := cloneDice(set)
	rng.Shuffle(len(dice), func(i, j int) { dice[i], dice[j] = dice[j], dice[i] })

	b := make(board.Board, gridSize)
	next := 0
	for r := 0; r < gridSize; r++ {
		b[r] = make([]string, gridSize)
		for c := 0; c < gridSize; c++ {
			die := dice[next]
			b[r][c] = die[rng.IntN(len(die))]
			next++
		}
	}
	return b, nil
}

// GenerateGood rolls boards from seed until one meets the threshold for
// gridSize or the attempt cap is reached.
func (g *Generator) GenerateGood(ctx context.Context, gridSize int, seed uint64) (Outcome, error) {
	_, span := g.tracer.Start(ctx, "generator.GenerateGood",
		trace.WithAttributes(attribute.Int("grid_size", gridSize)))
	defer span.End()

	if !board.ValidSize(gridSize) {
		return Outcome{}, fmt.Errorf("%w: %d", ErrUnsupportedSize, gridSize)
	}

	rng := NewRand(seed)
	want := g.threshold(gridSize)
	out := Outcome{Seed: seed}

	for out.Attempts < g.maxAttempts {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		if out.Attempts == g.relaxAfter && !out.Relaxed {
			want.MinWords = int(float64(want.MinWords) * g.relaxFactor)
			out.Relaxed = true
			log.Debug().Int("gridSize", gridSize).Int("minWords", want.MinWords).Msg("relaxing board threshold")
		}

		b, err := Generate(rng, gridSize)
		if err != nil {
			return out, err
		}
		res := solver.Solve(b, g.trie)
		out.Attempts++
		out.Board, out.Words, out.MaxLen = b, res.Words, res.MaxLen

		if res.Count() >= want.MinWords && res.MaxLen >= want.MinLen {
			out.Accepted = true
			break
		}
	}

	span.SetAttributes(
		attribute.Int("attempts", out.Attempts),
		attribute.Int("words", len(out.Words)),
		attribute.Int("max_len", out.MaxLen),
		attribute.Bool("accepted", out.Accepted),
		attribute.Bool("relaxed", out.Relaxed),
	)
	ev := log.Info()
	if !out.Accepted {
		ev = log.Warn()
	}
	ev.Int("gridSize", gridSize).
		Int("attempts", out.Attempts).
		Int("words", len(out.Words)).
		Int("maxLen", out.MaxLen).
		Bool("accepted", out.Accepted).
		Msg("board generated")
	return out, nil
}
