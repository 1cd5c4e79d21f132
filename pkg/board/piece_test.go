package board_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tanglewood/banqi/pkg/board"
)

func TestPieceTypeAndColor(t *testing.T) {
	assert.Equal(t, board.Soldier, board.RedSoldier.Type())
	assert.Equal(t, board.General, board.BlackGeneral.Type())
	assert.Equal(t, board.Red, board.RedCannon.Color())
	assert.Equal(t, board.Black, board.BlackCannon.Color())
}

func TestParsePieceChar(t *testing.T) {
	tests := []struct {
		char     byte
		expected board.Piece
		ok       bool
	}{
		{'P', board.RedSoldier, true},
		{'K', board.RedGeneral, true},
		{'k', board.BlackGeneral, true},
		{'c', board.BlackCannon, true},
		{'-', board.Empty, true},
		{'X', board.Covered, true},
		{'?', 0, false},
	}
	for _, tt := range tests {
		p, ok := board.ParsePieceChar(tt.char)
		assert.Equal(t, tt.ok, ok, "char %q", tt.char)
		if ok {
			assert.Equal(t, tt.expected, p, "char %q", tt.char)
			assert.Equal(t, string(tt.char), p.String())
		}
	}
}

func TestCanCapture(t *testing.T) {
	tests := []struct {
		name     string
		a, b     board.Piece
		expected bool
	}{
		{"soldier vs empty", board.RedSoldier, board.Empty, true},
		{"soldier vs covered", board.RedSoldier, board.Covered, false},
		{"same color blocked", board.RedSoldier, board.RedCannon, false},
		{"soldier beats general", board.RedSoldier, board.BlackGeneral, true},
		{"general cannot beat soldier", board.RedGeneral, board.BlackSoldier, false},
		{"general beats advisor", board.RedGeneral, board.BlackAdvisor, true},
		{"equal rank captures", board.RedHorse, board.BlackHorse, true},
		{"lower rank cannot capture higher", board.RedSoldier, board.BlackHorse, false},
		{"cannon beats anything", board.RedCannon, board.BlackGeneral, true},
		{"cannon beats soldier too", board.RedCannon, board.BlackSoldier, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, board.CanCapture(tt.a, tt.b))
		})
	}
}

func TestGeneralOf(t *testing.T) {
	assert.Equal(t, board.RedGeneral, board.GeneralOf(board.Red))
	assert.Equal(t, board.BlackGeneral, board.GeneralOf(board.Black))
}
