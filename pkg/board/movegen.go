package board

import "math/bits"

// ListMoves returns all legal non-flip moves available to color, ordered by
// descending rank of the destination occupant (captures first, strongest
// victim first; EMPTY destinations last). Generation is bit-parallel over
// the uncovered bitmask of color.
func (b *Board) ListMoves(color Color) []ChessMove {
	var moves []ChessMove

	mask := b.uncovered[color]
	for mask != 0 {
		sq := Square(bits.TrailingZeros32(mask))
		mask &= mask - 1

		p := b.squares[sq]
		if p.Type() == Cannon {
			for _, d := range orthogonalSteps {
				if target, ok := b.cannonScreenTarget(sq, d); ok {
					if CanCapture(p, b.squares[target]) {
						moves = append(moves, NewMove(sq, target))
					}
				}
			}
		}

		for _, d := range orthogonalSteps {
			n, ok := sq.Step(d)
			if !ok {
				continue
			}
			dst := b.squares[n]
			if !CanCapture(p, dst) {
				continue
			}
			if p.Type() == Cannon && dst != Empty {
				continue // cannons cannot capture adjacently
			}
			moves = append(moves, NewMove(sq, n))
		}
	}

	SortByPriority(moves, func(m ChessMove) MovePriority {
		dst := b.squares[m.Dst]
		if dst == Empty {
			return -1
		}
		return MovePriority(dst.Type())
	})
	return moves
}

// cannonScreenTarget walks from sq in direction d until the first occupied
// square (the screen, any color including COVERED); if found, continues
// until the next occupied square and returns it. Returns false if no screen,
// or no square beyond the screen, exists before the board edge.
func (b *Board) cannonScreenTarget(sq Square, d int) (Square, bool) {
	cur := sq
	foundScreen := false
	for {
		next, ok := cur.Step(d)
		if !ok {
			return 0, false
		}
		cur = next

		if !foundScreen {
			if b.squares[cur] != Empty {
				foundScreen = true
			}
			continue
		}
		if b.squares[cur] != Empty {
			return cur, true
		}
	}
}

// captureTargets returns the squares the piece at sq could capture next
// move, using the same path/step rules as ListMoves (including cannon
// jumps), regardless of whose turn it is. Used by Evaluate's under_attack
// computation.
func (b *Board) captureTargets(sq Square) []Square {
	p := b.squares[sq]
	var out []Square

	if p.Type() == Cannon {
		for _, d := range orthogonalSteps {
			if target, ok := b.cannonScreenTarget(sq, d); ok && CanCapture(p, b.squares[target]) {
				out = append(out, target)
			}
		}
	}
	for _, d := range orthogonalSteps {
		n, ok := sq.Step(d)
		if !ok {
			continue
		}
		dst := b.squares[n]
		if p.Type() == Cannon && dst != Empty {
			continue // cannons cannot capture adjacently
		}
		if dst != Empty && dst != Covered && CanCapture(p, dst) {
			out = append(out, n)
		}
	}
	return out
}
