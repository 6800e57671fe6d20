package types

import (
	"sort"
	"strings"

	"github.com/statarb-lab/pairtrade/pkg/errors"
)

// Pair is a canonicalized 2-tuple of distinct tradable symbols traded jointly
// as a spread. The first symbol always sorts lexically before the second, so
// a Pair built from (B, A) compares equal to one built from (A, B). Pairs are
// comparable and used directly as map keys.
type Pair struct {
	First  string
	Second string
}

// NewPair builds a canonical Pair from two symbols. Construction order does
// not matter; the symbols are sorted lexically.
func NewPair(a, b string) (Pair, error) {
	if a == "" || b == "" {
		return Pair{}, errors.New(errors.ErrCodeInvalidPair, "pair symbols must be non-empty")
	}

	if a == b {
		return Pair{}, errors.Newf(errors.ErrCodeInvalidPair, "pair symbols must differ, got %q twice", a)
	}

	if a > b {
		a, b = b, a
	}

	return Pair{First: a, Second: b}, nil
}

// MustPair is NewPair that panics on invalid input. Test helper.
func MustPair(a, b string) Pair {
	p, err := NewPair(a, b)
	if err != nil {
		panic(err)
	}

	return p
}

// ParsePair parses the "A/B" form produced by String.
func ParsePair(s string) (Pair, error) {
	parts := strings.Split(s, "/")
	if len(parts) != 2 {
		return Pair{}, errors.Newf(errors.ErrCodeInvalidPair, "malformed pair %q, want A/B", s)
	}

	return NewPair(parts[0], parts[1])
}

// String formats the pair as "A/B".
func (p Pair) String() string {
	return p.First + "/" + p.Second
}

// Key is the canonical sort key used wherever pairs must be processed in a
// stable order. Capital is allocated greedily in this order, so it is part of
// the engine's determinism contract.
func (p Pair) Key() string {
	return p.String()
}

// Symbols returns both legs in canonical order.
func (p Pair) Symbols() (string, string) {
	return p.First, p.Second
}

// SortPairs sorts pairs in place by canonical key.
func SortPairs(pairs []Pair) {
	sort.Slice(pairs, func(i, j int) bool {
		return pairs[i].Key() < pairs[j].Key()
	})
}
