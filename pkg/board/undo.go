package board

import "fmt"

// logEntry captures everything needed to reverse one MakeMove call: the move
// itself, the captured identity (if any), whether this move reset the
// no-progress counter and its pre-move value, and whether this move was the
// very first flip of the game (current_player transitioned out of UNKNOWN).
type logEntry struct {
	move ChessMove

	hadCapture bool
	captured   Piece

	hadProgressReset bool
	prevNoProgress   int

	wasFirstFlip bool
}

// UndoLog owns the move history, the captured-piece stack and the
// no-progress-count stack for a Board, so that every MakeMove can be
// reversed exactly via Board.Undo. A Board and its UndoLog are used
// together as one aggregate; the log never duplicates board state, only the
// deltas needed to reverse it.
type UndoLog struct {
	entries []logEntry
}

// NewUndoLog returns an empty undo log.
func NewUndoLog() *UndoLog {
	return &UndoLog{}
}

// Len returns the number of moves currently recorded.
func (u *UndoLog) Len() int {
	return len(u.entries)
}

// Playable reports whether mv is potentially valid to apply against the
// current position: a shortcut check used when consulting a transposition
// table entry whose stored best move might not apply. It deliberately does
// not re-verify the move generator's cannon-adjacency/path rules, since a TT
// hit only shortcuts scoring and the entry was produced by this same
// generator.
func (b *Board) Playable(mv ChessMove) bool {
	if mv.Kind == FlipMove {
		return b.squares[mv.Pos] == Covered
	}
	src := b.squares[mv.Src]
	return src.IsIdentity() && CanCapture(src, b.squares[mv.Dst])
}

// MakeMove applies mv, which must be pseudo-legal for the current position.
// If log is non-nil, the pre-move state needed to reverse the move is
// recorded on it. Returns an error if mv violates the position invariants.
func (b *Board) MakeMove(mv ChessMove, log *UndoLog) error {
	preNoProgress := b.noProgress
	b.noProgress++

	entry := logEntry{move: mv}

	switch mv.Kind {
	case FlipMove:
		if b.squares[mv.Pos] != Covered {
			return fmt.Errorf("flip: %v is not covered", mv.Pos)
		}
		if b.covered[mv.Result] == 0 {
			return fmt.Errorf("flip: no %v left to reveal", mv.Result)
		}

		if b.currentPlayer == Unknown {
			entry.wasFirstFlip = true
			b.writePlayer(mv.Result.Color())
		}

		b.writeSquare(mv.Pos, mv.Result)
		b.covered[mv.Result]--
		c := mv.Result.Color()
		b.setUncovered(c, mv.Pos)
		b.clearCovered(mv.Pos)
		b.numCovered[c]--

		entry.hadProgressReset = true

	case StepMove:
		srcPiece := b.squares[mv.Src]
		dstPiece := b.squares[mv.Dst]
		if !srcPiece.IsIdentity() {
			return fmt.Errorf("move: %v has no piece", mv.Src)
		}
		if dstPiece == Covered {
			return fmt.Errorf("move: %v is covered", mv.Dst)
		}
		if !CanCapture(srcPiece, dstPiece) {
			return fmt.Errorf("move: %v cannot capture %v", srcPiece, dstPiece)
		}

		if dstPiece != Empty {
			entry.hadCapture = true
			entry.captured = dstPiece
			opp := dstPiece.Color()
			b.numLeft[opp]--
			b.clearUncovered(opp, mv.Dst)
			entry.hadProgressReset = true
		}

		b.writeSquare(mv.Dst, srcPiece)
		b.writeSquare(mv.Src, Empty)
		c := srcPiece.Color()
		b.clearUncovered(c, mv.Src)
		b.setUncovered(c, mv.Dst)
	}

	b.writePlayer(b.currentPlayer.Opponent())

	if entry.hadProgressReset {
		entry.prevNoProgress = preNoProgress
		b.noProgress = 0
	}

	if log != nil {
		log.entries = append(log.entries, entry)
	}
	b.checkInvariants()
	return nil
}

// Undo reverses the last move recorded on log. Returns an error if log is
// empty.
func (b *Board) Undo(log *UndoLog) error {
	n := len(log.entries)
	if n == 0 {
		return fmt.Errorf("undo: no move to undo")
	}
	entry := log.entries[n-1]
	log.entries = log.entries[:n-1]

	if entry.hadProgressReset {
		b.noProgress = entry.prevNoProgress
	} else {
		b.noProgress--
	}

	b.writePlayer(b.currentPlayer.Opponent())
	if entry.wasFirstFlip && len(log.entries) == 0 {
		b.writePlayer(Unknown)
	}

	switch entry.move.Kind {
	case FlipMove:
		c := entry.move.Result.Color()
		b.writeSquare(entry.move.Pos, Covered)
		b.covered[entry.move.Result]++
		b.clearUncovered(c, entry.move.Pos)
		b.setCovered(entry.move.Pos)
		b.numCovered[c]++

	case StepMove:
		mover := b.squares[entry.move.Dst]
		moverColor := mover.Color()

		b.writeSquare(entry.move.Src, mover)
		if entry.hadCapture {
			b.writeSquare(entry.move.Dst, entry.captured)
		} else {
			b.writeSquare(entry.move.Dst, Empty)
		}
		b.clearUncovered(moverColor, entry.move.Dst)
		b.setUncovered(moverColor, entry.move.Src)

		if entry.hadCapture {
			opp := entry.captured.Color()
			b.numLeft[opp]++
			b.setUncovered(opp, entry.move.Dst)
		}
	}

	b.checkInvariants()
	return nil
}
