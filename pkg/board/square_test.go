package board_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tanglewood/banqi/pkg/board"
)

func TestParseSquare(t *testing.T) {
	sq, ok := board.ParseSquare('a', '1')
	assert.True(t, ok)
	assert.Equal(t, board.ZeroSquare, sq)
	assert.Equal(t, "a1", sq.String())

	sq, ok = board.ParseSquare('d', '8')
	assert.True(t, ok)
	assert.Equal(t, board.Square(31), sq)
	assert.Equal(t, "d8", sq.String())

	_, ok = board.ParseSquare('e', '1')
	assert.False(t, ok)

	_, ok = board.ParseSquare('a', '9')
	assert.False(t, ok)
}

func TestSquareColRow(t *testing.T) {
	sq := board.Square(13) // row 3, col 1
	assert.Equal(t, 1, sq.Col())
	assert.Equal(t, 3, sq.Row())
}

func TestSquareStep(t *testing.T) {
	a1 := board.ZeroSquare

	n, ok := a1.Step(1)
	assert.True(t, ok)
	assert.Equal(t, "b1", n.String())

	_, ok = a1.Step(-1)
	assert.False(t, ok, "stepping left off column a must fail")

	_, ok = a1.Step(-4)
	assert.False(t, ok, "stepping below row 1 must fail")

	d1, _ := board.ParseSquare('d', '1')
	_, ok = d1.Step(1)
	assert.False(t, ok, "stepping right off column d must fail")

	n, ok = d1.Step(4)
	assert.True(t, ok)
	assert.Equal(t, "d2", n.String())
}

func TestSquareBit(t *testing.T) {
	assert.Equal(t, uint32(1), board.ZeroSquare.Bit())
	assert.Equal(t, uint32(1)<<5, board.Square(5).Bit())
}
