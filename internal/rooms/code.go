package rooms

import (
	"errors"
	"fmt"

	nanoid "github.com/jaevor/go-nanoid"
)

// CodeAlphabet is the set of characters used for generated room codes: digits
// and upper-case letters, easy to read aloud and type. Five characters give
// 36^5 (about 60 million, ~26 bits) codes, plenty for a small ephemeral namespace.
const CodeAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// maxCodeAttempts bounds how often Create retries a generated code that
// collides with a live room.
const maxCodeAttempts = 8

var errCodeSpaceExhausted = errors.New("no free room code after retries")

// CodeGenerator returns a fresh random room code.
type CodeGenerator func() string

// NewCodeGenerator builds a generator producing codes of the given length.
func NewCodeGenerator(length int) (CodeGenerator, error) {
	gen, err := nanoid.CustomASCII(CodeAlphabet, length)
	if err != nil {
		return nil, fmt.Errorf("room code generator: %w", err)
	}
	return CodeGenerator(gen), nil
}
