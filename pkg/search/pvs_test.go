package search_test

import (
	"math/bits"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tanglewood/banqi/pkg/board"
	"github.com/tanglewood/banqi/pkg/search"
)

// plainAlphaBeta is a TT-free, scout-free reference implementation of the
// same recursion NegaScout runs, used to check that the transposition table
// and the null-window scout never change the value the search converges on,
// only how fast it gets there.
func plainAlphaBeta(b *board.Board, alpha, beta search.Score, depth int, side board.Color, log *board.UndoLog) search.Score {
	if depth == 0 {
		return search.Score(b.Evaluate(side))
	}
	if b.Terminate() {
		switch w := b.Winner(); {
		case w == board.Draw:
			return 0
		case w == side:
			return search.Mate(depth)
		default:
			return -search.Mate(depth)
		}
	}

	opp := side.Opponent()
	best := search.NegInf

	for _, mv := range b.ListMoves(side) {
		_ = b.MakeMove(mv, log)
		v := -plainAlphaBeta(b, -beta, -alpha, depth-1, opp, log)
		_ = b.Undo(log)

		best = search.Max(best, v)
		alpha = search.Max(alpha, best)
		if alpha >= beta {
			return best
		}
	}

	mask := b.CoveredMask()
	for mask != 0 {
		pos := board.Square(bits.TrailingZeros32(mask))
		mask &= mask - 1

		var sum search.Score
		var total int
		for id := board.Piece(0); id < board.NumIdentities; id++ {
			cnt := b.CoveredCount(id)
			if cnt == 0 {
				continue
			}
			flip := board.NewFlipResult(pos, id)
			_ = b.MakeMove(flip, log)
			v := -plainAlphaBeta(b, -beta, -alpha, depth-1, opp, log)
			_ = b.Undo(log)

			sum += search.Score(cnt) * v
			total += int(cnt)
		}
		if total == 0 {
			continue
		}
		e := sum / search.Score(total)

		best = search.Max(best, e)
		alpha = search.Max(alpha, best)
		if alpha >= beta {
			return best
		}
	}

	return best
}

// smallPosition builds a position small enough for plainAlphaBeta to explore
// at depth 2 without a combinatorial blowup: a red soldier facing a single
// covered square with only one possible flip outcome.
func smallPosition(t *testing.T) *board.Board {
	t.Helper()
	zt := board.NewZobristTable(board.DefaultZobristSeed)
	grid := [8]string{
		"PX--",
		"----",
		"----",
		"----",
		"----",
		"----",
		"----",
		"---k",
	}
	var covered [board.NumIdentities]uint8
	covered[board.BlackSoldier] = 1

	b, err := board.FromLayout(zt, grid, covered, board.Red)
	require.NoError(t, err)
	return b
}

func TestNegaScoutMatchesPlainAlphaBeta(t *testing.T) {
	const depth = 2

	ref := plainAlphaBeta(smallPosition(t), search.NegInf, search.Inf, depth, board.Red, board.NewUndoLog())

	ns := search.NegaScout{TT: search.NewTable(10)}
	got, _, _ := ns.Search(smallPosition(t), depth, board.Red)

	require.Equal(t, ref, got)
}

func TestNegaScoutMateInOne(t *testing.T) {
	// Red general at a1 has exactly two legal moves: quiet to b1, or capture
	// the black general at a2. Searched at the reference root depth of 3,
	// the capture resolves the game with two plies of depth still nominally
	// remaining, so the reported score is 2000*3 = 6000.
	grid := [8]string{
		"K---",
		"k---",
		"----",
		"----",
		"----",
		"----",
		"----",
		"----",
	}
	zt := board.NewZobristTable(board.DefaultZobristSeed)
	b, err := board.FromLayout(zt, grid, [board.NumIdentities]uint8{}, board.Red)
	require.NoError(t, err)

	require.Len(t, b.ListMoves(board.Red), 2)

	ns := search.NegaScout{TT: search.NewTable(10)}
	score, _, move := ns.Search(b, search.InitialDepth, board.Red)

	require.Equal(t, board.StepMove, move.Kind)
	assert.Equal(t, board.Square(4), move.Dst)
	assert.Equal(t, search.Mate(2), score)
}
