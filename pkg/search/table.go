package search

import (
	"fmt"

	"github.com/tanglewood/banqi/pkg/board"
)

// Bound classifies a stored score relative to the window that produced it.
type Bound uint8

const (
	BoundEmpty Bound = iota
	BoundExact
	BoundLower
	BoundUpper
)

func (b Bound) String() string {
	switch b {
	case BoundExact:
		return "Exact"
	case BoundLower:
		return "Lower"
	case BoundUpper:
		return "Upper"
	default:
		return "Empty"
	}
}

// Entry is one transposition table slot.
type Entry struct {
	Bound Bound
	Hash  board.Hash128
	Score Score
	Depth int
	Move  board.ChessMove
}

// DefaultTableBits is the reference table size: 2^20 entries.
const DefaultTableBits = 20

// Table is a fixed-size, direct-mapped transposition table keyed by the low
// bits of the 128-bit Zobrist hash. Insert always overwrites; there is no
// age or depth replacement policy. The search that owns a Table runs
// single-threaded and exclusively, so unlike a table shared across search
// goroutines this one needs no synchronization.
type Table struct {
	entries []Entry
	mask    uint64
}

// NewTable allocates a table with 2^bits entries.
func NewTable(bits uint) *Table {
	n := uint64(1) << bits
	return &Table{entries: make([]Entry, n), mask: n - 1}
}

func (t *Table) index(hash board.Hash128) uint64 {
	return hash.Lo & t.mask
}

// Read returns the entry for hash, and whether it is present (non-empty and
// its stored hash matches the full 128-bit key, guarding against index
// collisions).
func (t *Table) Read(hash board.Hash128) (Entry, bool) {
	e := t.entries[t.index(hash)]
	if e.Bound == BoundEmpty || !e.Hash.Equal(hash) {
		return Entry{}, false
	}
	return e, true
}

// Write stores an entry for hash, unconditionally overwriting whatever
// occupied that slot.
func (t *Table) Write(hash board.Hash128, bound Bound, score Score, depth int, move board.ChessMove) {
	t.entries[t.index(hash)] = Entry{Bound: bound, Hash: hash, Score: score, Depth: depth, Move: move}
}

// Size returns the number of entries in the table.
func (t *Table) Size() uint64 {
	return uint64(len(t.entries))
}

func (t *Table) String() string {
	return fmt.Sprintf("TT[%v entries]", t.Size())
}
