// Package protocol implements the engine's line-oriented text protocol: one
// command per input line, one "=<id>[ payload]" response per output line.
// Grounded on the shape of the teacher's console driver -- a Driver that
// owns an *engine.Engine, reads lines, dispatches on the first token, writes
// response lines -- but fully synchronous: there is no goroutine reading
// stdin concurrently with dispatch, since the search never yields mid-tree
// and nothing needs to interleave with it.
package protocol

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/seekerror/logw"

	"github.com/tanglewood/banqi/pkg/board"
	"github.com/tanglewood/banqi/pkg/engine"
)

// Command ids, matching the protocol table.
const (
	idName         = 1
	idVersion      = 2
	idQuit         = 5
	idResetBoard   = 7
	idMove         = 10
	idFlip         = 11
	idGenMove      = 12
	idReady        = 14
	idTimeSettings = 15
	idTimeLeft     = 16
	idTrace        = 90 // supplemental debug affordance, not part of the original table
)

var commandNames = map[int]string{
	idName:         "name",
	idVersion:      "version",
	idQuit:         "quit",
	idResetBoard:   "reset_board",
	idMove:         "move",
	idFlip:         "flip",
	idGenMove:      "genmove",
	idReady:        "ready",
	idTimeSettings: "time_settings",
	idTimeLeft:     "time_left",
	idTrace:        "trace",
}

// Driver reads command lines from r, dispatches them to an *engine.Engine,
// and writes response lines to w. A Driver is used for exactly one protocol
// session and is not safe for concurrent use.
type Driver struct {
	e *engine.Engine
	w io.Writer
}

// NewDriver returns a driver bound to e, writing responses to w.
func NewDriver(e *engine.Engine, w io.Writer) *Driver {
	return &Driver{e: e, w: w}
}

// Run reads lines from r until EOF, a read error, or a quit command, and
// returns the process exit code to use: 0 after a clean quit, non-zero on a
// protocol error (unrecognised id, malformed token) per the protocol's exit
// code contract.
func (d *Driver) Run(ctx context.Context, r io.Reader) int {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		code, quit := d.dispatch(ctx, line)
		if quit {
			return code
		}
		if code != 0 {
			return code
		}
	}
	return 0
}

// dispatch handles one input line, returning the exit code to use if the
// driver should stop (quit is true on a clean id=5 quit; otherwise a
// non-zero code signals a protocol error).
func (d *Driver) dispatch(ctx context.Context, line string) (code int, quit bool) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		logw.Errorf(ctx, "Protocol error: malformed line %q", line)
		return 1, false
	}

	id, err := strconv.Atoi(fields[0])
	if err != nil {
		logw.Errorf(ctx, "Protocol error: malformed id %q", fields[0])
		return 1, false
	}
	name, args := fields[1], fields[2:]

	want, ok := commandNames[id]
	if !ok {
		logw.Errorf(ctx, "Protocol error: unrecognised id %d", id)
		return 1, false
	}
	if name != want {
		logw.Errorf(ctx, "Protocol error: id %d expects command %q, got %q", id, want, name)
		return 1, false
	}

	switch id {
	case idName:
		d.respond(id, d.e.Name())
	case idVersion:
		d.respond(id, d.e.Version())
	case idQuit:
		d.respondEmpty(id)
		return 0, true
	case idResetBoard:
		d.e.Reset(ctx)
		d.respondEmpty(id)
	case idMove:
		if err := d.handleMove(ctx, args); err != nil {
			logw.Errorf(ctx, "Protocol error: %v", err)
			return 1, false
		}
		d.respondEmpty(id)
	case idFlip:
		if err := d.handleFlip(ctx, args); err != nil {
			logw.Errorf(ctx, "Protocol error: %v", err)
			return 1, false
		}
		d.respondEmpty(id)
	case idGenMove:
		mv, err := d.handleGenMove(ctx, args)
		if err != nil {
			logw.Errorf(ctx, "Protocol error: %v", err)
			return 1, false
		}
		d.respond(id, mv.String())
	case idReady:
		d.respondEmpty(id)
	case idTimeSettings:
		ms, err := parseMS(args)
		if err != nil {
			logw.Errorf(ctx, "Protocol error: %v", err)
			return 1, false
		}
		d.e.SetTimeSettings(ms)
		d.respondEmpty(id)
	case idTimeLeft:
		ms, err := parseMS(args)
		if err != nil {
			logw.Errorf(ctx, "Protocol error: %v", err)
			return 1, false
		}
		d.e.SetTimeLeft(ms)
		d.respondEmpty(id)
	case idTrace:
		d.respond(id, d.e.ExplainLastSearch())
	}
	return 0, false
}

func (d *Driver) handleMove(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("move requires <src> <dst>, got %v", args)
	}
	src, ok := parseSquareToken(args[0])
	if !ok {
		return fmt.Errorf("invalid square: %q", args[0])
	}
	dst, ok := parseSquareToken(args[1])
	if !ok {
		return fmt.Errorf("invalid square: %q", args[1])
	}
	return d.e.Move(ctx, src, dst)
}

func (d *Driver) handleFlip(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("flip requires <sq> <piece-char>, got %v", args)
	}
	pos, ok := parseSquareToken(args[0])
	if !ok {
		return fmt.Errorf("invalid square: %q", args[0])
	}
	if len(args[1]) != 1 {
		return fmt.Errorf("invalid piece character: %q", args[1])
	}
	result, ok := board.ParsePieceChar(args[1][0])
	if !ok {
		return fmt.Errorf("invalid piece character: %q", args[1])
	}
	return d.e.Flip(ctx, pos, result)
}

func (d *Driver) handleGenMove(ctx context.Context, args []string) (board.ChessMove, error) {
	color := board.Unknown
	if len(args) > 0 {
		c, ok := board.ParseColor(args[0])
		if !ok {
			return board.ChessMove{}, fmt.Errorf("invalid color: %q", args[0])
		}
		color = c
	}
	return d.e.GenerateMove(ctx, color)
}

func parseSquareToken(s string) (board.Square, bool) {
	if len(s) != 2 {
		return 0, false
	}
	return board.ParseSquare(s[0], s[1])
}

func parseMS(args []string) (int, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("expected <ms>, got %v", args)
	}
	ms, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("invalid ms: %q", args[0])
	}
	return ms, nil
}

func (d *Driver) respond(id int, payload string) {
	fmt.Fprintf(d.w, "=%d %s\n", id, payload)
}

func (d *Driver) respondEmpty(id int) {
	fmt.Fprintf(d.w, "=%d\n", id)
}
