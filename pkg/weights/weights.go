// Package weights provides literal weight tables for weighted model counting.
//
// A weight table maps literals to real-valued weights. Positive and negative
// literals of the same variable are looked up independently: the weight of
// literal -3 has no relation to the weight of literal 3.
//
// # Defaults
//
// A literal that is absent from a table is not an error. It signals "no
// preference" and evaluates to [DefaultWeight], the weight of true. Callers
// that need to distinguish presence use [Lookup.Lookup]; callers that want the
// defaulted value use [Table.Weight] or [WeightOf].
//
// # Loading
//
// Tables can be loaded from TOML, YAML or JSON files with [Load], or parsed
// from "lit=weight" pairs with [ParsePairs]:
//
//	# weights.toml
//	[weights]
//	1 = 0.3
//	-1 = 0.7
package weights

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// DefaultWeight is the weight of a literal that has no entry in a table.
const DefaultWeight = 1.0

// Lookup is the read side of a weight table.
//
// Lookup reports the weight of lit and whether the table has an entry for it.
// Implementations must not fail for absent literals.
type Lookup interface {
	Lookup(lit int) (float64, bool)
}

// Table is an in-memory weight table. A nil Table is an empty table.
type Table map[int]float64

// Lookup implements [Lookup].
func (t Table) Lookup(lit int) (float64, bool) {
	w, ok := t[lit]
	return w, ok
}

// Weight returns the weight of lit, or DefaultWeight if lit has no entry.
func (t Table) Weight(lit int) float64 {
	return WeightOf(t, lit)
}

// Set stores the weight of lit.
func (t Table) Set(lit int, w float64) {
	t[lit] = w
}

// Literals returns the literals of the table in ascending order.
func (t Table) Literals() []int {
	return slices.Sorted(maps.Keys(t))
}

// Hash returns a stable hex digest of the table contents.
// Two tables with the same entries hash identically regardless of insertion order.
func (t Table) Hash() string {
	var b strings.Builder
	for _, lit := range t.Literals() {
		fmt.Fprintf(&b, "%d=%g;", lit, t[lit])
	}
	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}

// String renders the table as sorted "lit=weight" pairs.
func (t Table) String() string {
	parts := make([]string, 0, len(t))
	for _, lit := range t.Literals() {
		parts = append(parts, fmt.Sprintf("%d=%g", lit, t[lit]))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// WeightOf returns the weight of lit in l, or DefaultWeight if l has no entry.
func WeightOf(l Lookup, lit int) float64 {
	if w, ok := l.Lookup(lit); ok {
		return w
	}
	return DefaultWeight
}

// Merge returns a new table holding the entries of all tables.
// Later tables override earlier ones.
func Merge(tables ...Table) Table {
	out := Table{}
	for _, t := range tables {
		maps.Copy(out, t)
	}
	return out
}
