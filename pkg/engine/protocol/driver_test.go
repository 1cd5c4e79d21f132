package protocol_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tanglewood/banqi/pkg/board"
	"github.com/tanglewood/banqi/pkg/engine"
	"github.com/tanglewood/banqi/pkg/engine/protocol"
)

func newDriver(t *testing.T) (*protocol.Driver, *bytes.Buffer) {
	t.Helper()
	e := engine.New(context.Background(), "banqi", "tanglewood",
		engine.WithTableSize(8), engine.WithZobristSeed(board.DefaultZobristSeed))
	var out bytes.Buffer
	return protocol.NewDriver(e, &out), &out
}

func TestNameAndVersion(t *testing.T) {
	d, out := newDriver(t)
	code := d.Run(context.Background(), strings.NewReader("1 name\n2 version\n5 quit\n"))

	assert.Equal(t, 0, code)
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "=1 "))
	assert.Equal(t, "=2 1.0.0", lines[1])
	assert.Equal(t, "=5", lines[2])
}

func TestResetBoardThenReadyRespondsEmpty(t *testing.T) {
	d, out := newDriver(t)
	code := d.Run(context.Background(), strings.NewReader("7 reset_board\n14 ready\n5 quit\n"))

	assert.Equal(t, 0, code)
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "=7", lines[0])
	assert.Equal(t, "=14", lines[1])
}

func TestFlipThenGenMoveRoundTrip(t *testing.T) {
	d, out := newDriver(t)
	code := d.Run(context.Background(), strings.NewReader(
		"11 flip a1 P\n12 genmove red\n5 quit\n"))

	assert.Equal(t, 0, code)
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "=11", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "=12 "))
}

func TestUnrecognisedCommandExitsNonZero(t *testing.T) {
	d, out := newDriver(t)
	code := d.Run(context.Background(), strings.NewReader("99 bogus\n"))

	assert.NotEqual(t, 0, code)
	assert.Empty(t, out.String())
}

func TestMalformedMoveIsProtocolError(t *testing.T) {
	d, _ := newDriver(t)
	code := d.Run(context.Background(), strings.NewReader("10 move z9 a1\n"))

	assert.NotEqual(t, 0, code)
}

func TestTimeSettingsAndTimeLeftRespondEmpty(t *testing.T) {
	d, out := newDriver(t)
	code := d.Run(context.Background(), strings.NewReader(
		"15 time_settings 5000\n16 time_left 4000\n5 quit\n"))

	assert.Equal(t, 0, code)
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "=15", lines[0])
	assert.Equal(t, "=16", lines[1])
}

func TestTraceReportsLastSearch(t *testing.T) {
	d, out := newDriver(t)
	code := d.Run(context.Background(), strings.NewReader(
		"11 flip a1 P\n12 genmove red\n90 trace\n5 quit\n"))

	assert.Equal(t, 0, code)
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[2], "=90 depth="))
}
