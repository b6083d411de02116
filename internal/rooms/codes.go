package rooms

import (
	"context"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog/log"
)

const (
	// CodeAlphabet is the character set of public room codes.
	CodeAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	// CodeLength is the number of characters in a room code.
	CodeLength = 6
	// DefaultMaxCodeAttempts bounds code generation retries.
	DefaultMaxCodeAttempts = 100
)

// RandomCode draws a room code uniformly from CodeAlphabet.
func RandomCode() (string, error) {
	return gonanoid.Generate(CodeAlphabet, CodeLength)
}

// ValidCode reports whether code has the room code shape.
func ValidCode(code string) bool {
	if len(code) != CodeLength {
		return false
	}
	for i := 0; i < len(code); i++ {
		c := code[i]
		if !(c >= '0' && c <= '9' || c >= 'A' && c <= 'Z') {
			return false
		}
	}
	return true
}

// CodeChecker reports whether a code is already recorded outside this
// process (for example in the history database).
type CodeChecker interface {
	CodeExists(ctx context.Context, code string) (bool, error)
}

// CodeCheckerFunc adapts a function to CodeChecker.
type CodeCheckerFunc func(ctx context.Context, code string) (bool, error)

func (f CodeCheckerFunc) CodeExists(ctx context.Context, code string) (bool, error) {
	return f(ctx, code)
}

// safeExists asks c about code and treats any failure as "not found",
// so a store outage only downgrades uniqueness to memory-only.
func safeExists(ctx context.Context, c CodeChecker, code string) (exists bool) {
	if c == nil {
		return false
	}
	defer func() {
		if r := recover(); r != nil {
			log.Warn().Interface("panic", r).Str("code", code).Msg("code check panicked; assuming unused")
			exists = false
		}
	}()
	ok, err := c.CodeExists(ctx, code)
	if err != nil {
		log.Warn().Err(err).Str("code", code).Msg("code check failed; assuming unused")
		return false
	}
	return ok
}
