package board_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tanglewood/banqi/pkg/board"
)

func TestZobristTableDeterministic(t *testing.T) {
	a := board.NewZobristTable(board.DefaultZobristSeed)
	b := board.NewZobristTable(board.DefaultZobristSeed)

	var squares [board.NumSquares]board.Piece
	for i := range squares {
		squares[i] = board.Covered
	}
	assert.True(t, a.Hash(squares, board.Unknown).Equal(b.Hash(squares, board.Unknown)))
}

func TestZobristTableDistinctSeeds(t *testing.T) {
	a := board.NewZobristTable(1)
	b := board.NewZobristTable(2)

	var squares [board.NumSquares]board.Piece
	for i := range squares {
		squares[i] = board.Covered
	}
	assert.False(t, a.Hash(squares, board.Unknown).Equal(b.Hash(squares, board.Unknown)))
}

func TestHash128Xor(t *testing.T) {
	h := board.Hash128{Hi: 1, Lo: 2}
	assert.True(t, h.Xor(h).Equal(board.Hash128{}))
}
