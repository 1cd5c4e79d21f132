package search

import (
	"math/bits"

	"github.com/tanglewood/banqi/pkg/board"
)

// NegaScout is a NegaScout (principal variation search) kernel extended
// with chance nodes for unresolved flips: every covered square is expanded
// as a probability-weighted average over the identities still in the
// covered inventory, rather than as a single deterministic child. Pseudo-code:
//
//	function negascout(α, β, depth, side, save_root) is
//	    if depth = 0 then return evaluate(side)
//	    if terminal then return mate/draw score
//	    probe transposition table
//	    for each non-flip move, scout then verify-research on fail-high
//	    for each covered square, expectation over possible flip outcomes
//	    store result, return score
//
// See: https://en.wikipedia.org/wiki/Principal_variation_search.
type NegaScout struct {
	TT *Table
}

// Search runs the kernel from b's current position for the given side,
// returning the color-relative score, the number of nodes visited and the
// chosen root move (valid only when depth > 0 and the position is
// non-terminal).
func (n NegaScout) Search(b *board.Board, depth int, side board.Color) (Score, uint64, board.ChessMove) {
	r := &run{tt: n.TT, log: board.NewUndoLog()}
	var root board.ChessMove
	score := r.negascout(b, NegInf, Inf, depth, side, true, &root)
	return score, r.nodes, root
}

type run struct {
	tt    *Table
	log   *board.UndoLog
	nodes uint64
}

func (r *run) negascout(b *board.Board, alpha, beta Score, depth int, side board.Color, saveRoot bool, root *board.ChessMove) Score {
	r.nodes++

	if depth == 0 {
		return Score(b.Evaluate(side))
	}
	if b.Terminate() {
		switch w := b.Winner(); {
		case w == board.Draw:
			return 0
		case w == side:
			return Mate(depth)
		default:
			return -Mate(depth)
		}
	}

	hash := b.Hash()
	var score Score = NegInf
	var bestMove board.ChessMove

	if entry, ok := r.tt.Read(hash); ok && b.Playable(entry.Move) {
		if entry.Depth < depth {
			if entry.Bound == BoundExact {
				score = entry.Score
				bestMove = entry.Move
				if saveRoot {
					*root = bestMove
				}
			}
		} else {
			switch entry.Bound {
			case BoundExact:
				return entry.Score
			case BoundLower:
				if entry.Score >= beta {
					return entry.Score
				}
				alpha = Max(alpha, entry.Score)
			case BoundUpper:
				if entry.Score <= alpha {
					return entry.Score
				}
				beta = Min(beta, entry.Score)
			}
		}
	}

	upper := beta
	opp := side.Opponent()

	for _, mv := range b.ListMoves(side) {
		_ = b.MakeMove(mv, r.log)
		window := -Max(alpha, score)
		t := -r.negascout(b, -upper, window, depth-1, opp, false, nil)

		if t > score {
			score = t
			bestMove = mv
			if saveRoot {
				*root = mv
			}
			if upper != beta && depth >= 3 && t < beta {
				// The zero-window scout failed high: re-search with the
				// full window to resolve the true score along the PV.
				t = -r.negascout(b, -beta, -t, depth-1, opp, false, nil)
				if t > score {
					score = t
					if saveRoot {
						*root = mv
					}
				}
			}
		}
		_ = b.Undo(r.log)

		if score >= beta {
			r.tt.Write(hash, BoundLower, score, depth, bestMove)
			return score
		}
		upper = Max(score, alpha) + 1
	}

	mask := b.CoveredMask()
	for mask != 0 {
		pos := board.Square(bits.TrailingZeros32(mask))
		mask &= mask - 1

		alphaPrime := Max(alpha, score)
		var sum Score
		var total int
		for id := board.Piece(0); id < board.NumIdentities; id++ {
			cnt := b.CoveredCount(id)
			if cnt == 0 {
				continue
			}
			flip := board.NewFlipResult(pos, id)
			_ = b.MakeMove(flip, r.log)
			v := -r.negascout(b, -beta, -alphaPrime, depth-1, opp, false, nil)
			_ = b.Undo(r.log)

			sum += Score(cnt) * v
			total += int(cnt)
		}
		if total == 0 {
			continue
		}
		e := sum / Score(total)

		if e > score {
			score = e
			bestMove = board.NewFlip(pos)
			if saveRoot {
				*root = bestMove
			}
			if score >= beta {
				r.tt.Write(hash, BoundLower, score, depth, bestMove)
				return score
			}
		}
	}

	bound := BoundUpper
	if score > alpha {
		bound = BoundExact
	}
	r.tt.Write(hash, bound, score, depth, bestMove)
	return score
}
