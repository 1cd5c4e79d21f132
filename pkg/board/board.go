// Package board contains the Dark Chess (Banqi) board representation: piece
// geometry, move generation, make/undo, terminal detection and static
// evaluation.
package board

import (
	"fmt"
	"strings"
)

// DrawLimit is the number of half-moves without a flip or capture after
// which a position is a draw.
const DrawLimit = 60

// inventory is the canonical per-color piece count, summing to 16.
var inventory = [NumPieceTypes]uint8{
	Soldier:  5,
	Cannon:   2,
	Horse:    2,
	Chariot:  2,
	Elephant: 2,
	Advisor:  2,
	General:  1,
}

// Board is the position state: square contents, covered-piece inventory,
// per-color counts and bitmasks, side to move, the no-progress counter and
// the incrementally maintained Zobrist hash. Mutated only through MakeMove,
// always reversible via Undo. Not thread-safe -- callers own a Board (and
// its paired UndoLog) exclusively during a search.
type Board struct {
	zt *ZobristTable

	squares [NumSquares]Piece

	covered     [NumIdentities]uint8
	numCovered  [2]uint8
	numLeft     [2]uint8
	uncovered   [2]uint32
	coveredMask uint32

	noProgress    int
	currentPlayer Color

	hash Hash128
}

// NewBoard returns a fresh game board: all squares COVERED, full inventory,
// side to move UNKNOWN.
func NewBoard(zt *ZobristTable) *Board {
	b := &Board{zt: zt, currentPlayer: Unknown}

	for sq := ZeroSquare; sq < NumSquares; sq++ {
		b.squares[sq] = Covered
		b.coveredMask |= sq.Bit()
	}
	for c := Red; c <= Black; c++ {
		for t := PieceType(0); t < NumPieceTypes; t++ {
			n := inventory[t]
			b.covered[identityOf(c, t)] = n
			b.numCovered[c] += n
			b.numLeft[c] += n
		}
	}
	b.hash = b.zt.Hash(b.squares, b.currentPlayer)
	return b
}

func identityOf(c Color, t PieceType) Piece {
	if c == Red {
		return Piece(t)
	}
	return Piece(t) + NumPieceTypes
}

// FromLayout builds a board from an externally supplied position: 8 rows of
// 4 characters each, row-major with row 0 at the bottom, using the same
// character mapping as ParsePieceChar; the covered-piece counts per
// identity (for pieces not placed on the grid); and the side to move.
func FromLayout(zt *ZobristTable, grid [8]string, coveredCounts [NumIdentities]uint8, sideToMove Color) (*Board, error) {
	b := &Board{zt: zt, currentPlayer: sideToMove}

	for row := 0; row < 8; row++ {
		line := grid[row]
		if len(line) != 4 {
			return nil, fmt.Errorf("invalid layout row %d: %q", row, line)
		}
		for col := 0; col < 4; col++ {
			p, ok := ParsePieceChar(line[col])
			if !ok {
				return nil, fmt.Errorf("invalid piece char %q at row %d col %d", line[col], row, col)
			}
			sq := Square(row*4 + col)
			b.squares[sq] = p

			switch {
			case p == Covered:
				b.coveredMask |= sq.Bit()
			case p.IsIdentity():
				b.uncovered[p.Color()] |= sq.Bit()
				b.numLeft[p.Color()]++
			}
		}
	}

	b.covered = coveredCounts
	for id, n := range coveredCounts {
		c := Piece(id).Color()
		b.numCovered[c] += n
		b.numLeft[c] += n
	}

	b.hash = b.zt.Hash(b.squares, b.currentPlayer)
	return b, nil
}

// Square returns the current occupant of sq.
func (b *Board) Square(sq Square) Piece {
	return b.squares[sq]
}

// Turn returns the side to move.
func (b *Board) Turn() Color {
	return b.currentPlayer
}

// NoProgress returns the half-moves since the last flip or capture.
func (b *Board) NoProgress() int {
	return b.noProgress
}

// Hash returns the current 128-bit Zobrist hash.
func (b *Board) Hash() Hash128 {
	return b.hash
}

// CoveredMask returns the bitmask of squares that are still face-down.
func (b *Board) CoveredMask() uint32 {
	return b.coveredMask
}

// UncoveredMask returns the bitmask of face-up squares of the given color.
func (b *Board) UncoveredMask(c Color) uint32 {
	return b.uncovered[c]
}

// CoveredCount returns the number of covered pieces remaining of the given
// identity.
func (b *Board) CoveredCount(id Piece) uint8 {
	return b.covered[id]
}

// NumLeft returns the total number of pieces (on board or covered) still
// alive for the given color.
func (b *Board) NumLeft(c Color) uint8 {
	return b.numLeft[c]
}

// Terminate reports whether the game has ended: either color has no pieces
// left, or the no-progress counter has reached DrawLimit.
func (b *Board) Terminate() bool {
	return b.numLeft[Red] == 0 || b.numLeft[Black] == 0 || b.noProgress >= DrawLimit
}

// Winner returns the winning color if the game is terminal: Draw if ended by
// the no-progress rule, otherwise the color whose opponent has no pieces
// left. Undefined if Terminate() is false.
func (b *Board) Winner() Color {
	if b.noProgress >= DrawLimit {
		return Draw
	}
	if b.numLeft[Red] == 0 {
		return Black
	}
	if b.numLeft[Black] == 0 {
		return Red
	}
	return Unknown
}

// writeSquare replaces the occupant of sq, XOR-folding the Zobrist entry for
// the old piece-state out and the new one in. Every board write routes
// through here so the hash never drifts from the board contents.
func (b *Board) writeSquare(sq Square, p Piece) {
	b.hash = b.hash.Xor(b.zt.piece[sq][b.squares[sq]])
	b.squares[sq] = p
	b.hash = b.hash.Xor(b.zt.piece[sq][p])
}

// writePlayer transitions the side to move, maintaining the hash the same
// way writeSquare does for board contents.
func (b *Board) writePlayer(c Color) {
	b.hash = b.hash.Xor(b.zt.player[b.currentPlayer])
	b.currentPlayer = c
	b.hash = b.hash.Xor(b.zt.player[c])
}

func (b *Board) setUncovered(c Color, sq Square) {
	b.uncovered[c] |= sq.Bit()
}

func (b *Board) clearUncovered(c Color, sq Square) {
	b.uncovered[c] &^= sq.Bit()
}

func (b *Board) setCovered(sq Square) {
	b.coveredMask |= sq.Bit()
}

func (b *Board) clearCovered(sq Square) {
	b.coveredMask &^= sq.Bit()
}

// checkInvariants asserts the pairwise-disjoint mask invariant from spec §3.
// Cheap bitwise checks; gated by debugAssertions like every other internal
// invariant check.
func (b *Board) checkInvariants() {
	assertf(b.uncovered[Red]&b.uncovered[Black] == 0, "uncovered[red] and uncovered[black] overlap")
	assertf(b.uncovered[Red]&b.coveredMask == 0, "uncovered[red] and covered overlap")
	assertf(b.uncovered[Black]&b.coveredMask == 0, "uncovered[black] and covered overlap")
}

func (b *Board) String() string {
	var sb strings.Builder
	for row := 7; row >= 0; row-- {
		for col := 0; col < 4; col++ {
			sb.WriteString(b.squares[Square(row*4+col)].String())
		}
		if row > 0 {
			sb.WriteByte('/')
		}
	}
	return fmt.Sprintf("board{%v turn=%v noprogress=%v hash=%x%016x}", sb.String(), b.currentPlayer, b.noProgress, b.hash.Hi, b.hash.Lo)
}
