package board

import "math/bits"

// generalState describes whether the General of some color has been
// revealed, is still covered, or has been captured.
type generalState uint8

const (
	generalRevealed generalState = iota
	generalCovered
	generalDead
)

func (b *Board) generalStatus(c Color) generalState {
	id := GeneralOf(c)
	mask := b.uncovered[c]
	for mask != 0 {
		sq := Square(bits.TrailingZeros32(mask))
		mask &= mask - 1
		if b.squares[sq] == id {
			return generalRevealed
		}
	}
	if b.covered[id] > 0 {
		return generalCovered
	}
	return generalDead
}

// baseValue is the nominal material value by rank.
var baseValue = [NumPieceTypes]float32{
	Soldier:  1,
	Cannon:   180,
	Horse:    6,
	Chariot:  18,
	Elephant: 90,
	Advisor:  270,
	General:  810,
}

// pieceValue returns a piece's evaluation value given the current board,
// applying the context-dependent SOLDIER/CANNON adjustment based on the
// status of the opposing color's GENERAL.
func (b *Board) pieceValue(p Piece) float32 {
	t := p.Type()
	if t != Soldier && t != Cannon {
		return baseValue[t]
	}
	switch b.generalStatus(p.Color().Opponent()) {
	case generalRevealed:
		if t == Soldier {
			return 20
		}
		return 250
	case generalCovered:
		if t == Soldier {
			return 10
		}
		return 200
	default:
		return baseValue[t]
	}
}

// underAttack computes the bitmask of squares whose revealed occupant is
// threatened by an opposing piece's next move, using the same path/step
// rules as move generation (including cannon jumps).
func (b *Board) underAttack() uint32 {
	var attacked uint32
	for _, c := range [2]Color{Red, Black} {
		mask := b.uncovered[c]
		for mask != 0 {
			sq := Square(bits.TrailingZeros32(mask))
			mask &= mask - 1
			for _, dst := range b.captureTargets(sq) {
				attacked |= dst.Bit()
			}
		}
	}
	return attacked
}

// Evaluate returns the color-relative static evaluation of the position:
// positive values favor color. Revealed pieces contribute their (possibly
// danger-scaled) value; covered inventory contributes a fraction of its
// value; the score is progressively halved as the position approaches the
// no-progress draw limit.
func (b *Board) Evaluate(color Color) float32 {
	attacked := b.underAttack()

	var score float32
	for sq := ZeroSquare; sq < NumSquares; sq++ {
		p := b.squares[sq]
		if !p.IsIdentity() {
			continue
		}
		v := b.pieceValue(p)
		if attacked&sq.Bit() != 0 {
			v /= 3
		}
		if p.Color() == color {
			score += v
		} else {
			score -= v
		}
	}

	for id := Piece(0); id < NumIdentities; id++ {
		cnt := b.covered[id]
		if cnt == 0 {
			continue
		}
		v := b.pieceValue(id) * float32(cnt) / 5
		if id.Color() == color {
			score += v
		} else {
			score -= v
		}
	}

	if b.noProgress >= DrawLimit/6 {
		score /= 2
	}
	if b.noProgress >= DrawLimit/2 {
		score /= 2
	}
	return score
}
