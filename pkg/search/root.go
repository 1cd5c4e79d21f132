package search

import (
	"fmt"
	"time"

	"github.com/tanglewood/banqi/pkg/board"
)

// InitialDepth is the depth of the first, full-window root search.
const InitialDepth = 3

// AspirationWindow is the half-width of the aspiration window placed
// around the previous iteration's score.
const AspirationWindow Score = 5

// TimeThreshold is the per-iteration wall-clock budget that gates
// time-adaptive continuation past DepthLimit.
const TimeThreshold = 100 * time.Millisecond

// DepthHardLimit is the absolute ceiling on search depth, regardless of
// elapsed time.
const DepthHardLimit = 15

// DepthLimitForFlips computes the depth limit for the given number of
// flips observed so far in the game: it starts at 3 and grows by one ply
// every 8 flips, capped at DepthHardLimit. As pieces are revealed the
// effective branching factor drops (fewer unresolved chance nodes), so
// deeper search stays tractable.
func DepthLimitForFlips(flips int) int {
	limit := 3 + flips/8
	if limit > DepthHardLimit {
		return DepthHardLimit
	}
	return limit
}

// unresolvedMove is the sentinel the root search resets its best-move slot
// to before each window re-search, so that a re-search which visits no
// improving line never silently reuses a stale move from a prior window.
var unresolvedMove = board.ChessMove{Kind: board.FlipMove, Pos: board.Square(255), Result: board.Covered}

// PV is the principal variation produced by one root search iteration.
type PV struct {
	Depth int
	Score Score
	Nodes uint64
	Move  board.ChessMove
	Time  time.Duration
}

func (p PV) String() string {
	return fmt.Sprintf("depth=%v score=%v nodes=%v time=%v move=%v", p.Depth, p.Score, p.Nodes, p.Time, p.Move)
}

// searchSingleDepth runs one root-saving NegaScout search over the given
// window.
func searchSingleDepth(tt *Table, b *board.Board, depth int, side board.Color, alpha, beta Score) (Score, uint64, board.ChessMove) {
	r := &run{tt: tt, log: board.NewUndoLog()}
	root := unresolvedMove
	score := r.negascout(b, alpha, beta, depth, side, true, &root)
	return score, r.nodes, root
}

// searchWithAspiration runs depth with a narrow window around prevScore,
// re-searching once with an open-ended window on the failing side if the
// result falls outside it.
func searchWithAspiration(tt *Table, b *board.Board, depth int, side board.Color, prevScore Score) (Score, uint64, board.ChessMove) {
	alpha, beta := prevScore-AspirationWindow, prevScore+AspirationWindow

	score, nodes, move := searchSingleDepth(tt, b, depth, side, alpha, beta)
	switch {
	case score <= alpha:
		s, n, m := searchSingleDepth(tt, b, depth, side, NegInf, score)
		score, nodes, move = s, nodes+n, m
	case score >= beta:
		s, n, m := searchSingleDepth(tt, b, depth, side, score, Inf)
		score, nodes, move = s, nodes+n, m
	}
	return score, nodes, move
}

// GenerateMove runs the full root search procedure: an unknown side-to-move
// commits to the deterministic opening flip; otherwise a depth-3 full
// window search, then iterative deepening with aspiration windows up to
// depthLimit, then time-adaptive continuation one ply at a time up to
// DepthHardLimit for as long as each completed iteration stays within
// TimeThreshold.
func GenerateMove(tt *Table, b *board.Board, side board.Color, depthLimit int) PV {
	if side == board.Unknown {
		return PV{Move: board.NewFlip(board.Square(0))}
	}

	start := time.Now()
	score, nodes, move := searchSingleDepth(tt, b, InitialDepth, side, NegInf, Inf)
	pv := PV{Depth: InitialDepth, Score: score, Nodes: nodes, Move: move, Time: time.Since(start)}

	for depth := InitialDepth + 1; depth <= DepthHardLimit; depth++ {
		if depth > depthLimit && pv.Time > TimeThreshold {
			break
		}
		iterStart := time.Now()
		s, n, m := searchWithAspiration(tt, b, depth, side, pv.Score)
		pv = PV{Depth: depth, Score: s, Nodes: n, Move: m, Time: time.Since(iterStart)}
	}
	return pv
}
