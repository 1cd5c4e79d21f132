package board

import "sort"

// MovePriority is the move ordering priority used by SortByPriority: higher
// values are ordered first.
type MovePriority int16

// MovePriorityFn assigns an ordering priority to a move.
type MovePriorityFn func(move ChessMove) MovePriority

// SortByPriority sorts moves by descending priority, preserving relative
// order for moves of equal priority. Used by ListMoves to put captures
// first, strongest victim first, which drives alpha-beta cutoffs.
func SortByPriority(moves []ChessMove, fn MovePriorityFn) {
	sort.SliceStable(moves, func(i, j int) bool {
		return fn(moves[i]) > fn(moves[j])
	})
}
