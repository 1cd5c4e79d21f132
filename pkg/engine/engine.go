// Package engine is the command-level facade over pkg/board and pkg/search:
// it owns the live position, the transposition table and the engine's
// running depth limit, and exposes the operations the text protocol driver
// dispatches to.
package engine

import (
	"context"
	"fmt"
	"sync"

	"github.com/seekerror/build"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/lang"

	"github.com/tanglewood/banqi/pkg/board"
	"github.com/tanglewood/banqi/pkg/search"
)

var version = build.NewVersion(1, 0, 0)

// Options are engine creation options.
type Options struct {
	// HashBits sizes the transposition table to 2^HashBits entries.
	HashBits uint
	// Seed is the Zobrist PRNG seed. Fixed by default so runs are
	// reproducible.
	Seed int64
	// DepthOverride, if present, pins the depth limit instead of letting it
	// grow with observed flips.
	DepthOverride lang.Optional[int]
}

func (o Options) String() string {
	if v, ok := o.DepthOverride.V(); ok {
		return fmt.Sprintf("{hashBits=%v, seed=%v, depthOverride=%v}", o.HashBits, o.Seed, v)
	}
	return fmt.Sprintf("{hashBits=%v, seed=%v}", o.HashBits, o.Seed)
}

// Option is an engine creation option.
type Option func(*Engine)

// WithTableSize sets the transposition table to 2^bits entries.
func WithTableSize(bits uint) Option {
	return func(e *Engine) {
		e.opts.HashBits = bits
	}
}

// WithZobristSeed seeds the engine's Zobrist table deterministically.
func WithZobristSeed(seed int64) Option {
	return func(e *Engine) {
		e.opts.Seed = seed
	}
}

// WithDepthLimit pins the engine's search depth limit instead of letting it
// grow with observed flips.
func WithDepthLimit(depth int) Option {
	return func(e *Engine) {
		e.opts.DepthOverride = lang.Some(depth)
	}
}

// WithOptions sets all options at once.
func WithOptions(opts Options) Option {
	return func(e *Engine) {
		e.opts = opts
	}
}

// Engine encapsulates game-playing logic: the live board, its transposition
// table, and the running depth limit driven by observed flips. Guarded by a
// mutex even though the protocol driver that owns an Engine is itself
// single-threaded end to end -- this keeps the facade safe to reuse from a
// concurrent caller (tests, an embedding application) without relying on
// that invariant.
type Engine struct {
	name, author string
	opts         Options

	zt *board.ZobristTable

	mu         sync.Mutex
	b          *board.Board
	tt         *search.Table
	depthLimit int
	flips      int

	timeSettingsMS int
	timeLeftMS     int

	lastPV search.PV
}

// New constructs an engine with a fresh board.
func New(ctx context.Context, name, author string, opts ...Option) *Engine {
	e := &Engine{
		name:   name,
		author: author,
		opts:   Options{HashBits: search.DefaultTableBits},
	}
	for _, fn := range opts {
		fn(e)
	}
	e.zt = board.NewZobristTable(e.opts.Seed)
	e.resetLocked()

	logw.Infof(ctx, "Initialized engine: %v, options=%v", e.Name(), e.opts)
	return e
}

// Name returns the engine name and version.
func (e *Engine) Name() string {
	return fmt.Sprintf("%v %v", e.name, version)
}

// Author returns the author.
func (e *Engine) Author() string {
	return e.author
}

// Version returns the engine's semantic version string.
func (e *Engine) Version() string {
	return version.String()
}

func (e *Engine) resetLocked() {
	e.b = board.NewBoard(e.zt)
	e.tt = search.NewTable(e.opts.HashBits)
	e.depthLimit = search.InitialDepth
	e.flips = 0
	e.lastPV = search.PV{}
}

// Reset discards the current game and starts a fresh board.
func (e *Engine) Reset(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()

	logw.Infof(ctx, "Reset, options=%v", e.opts)
	e.resetLocked()
}

// Board returns the current board. Callers must not mutate it.
func (e *Engine) Board() *board.Board {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.b
}

// Move applies an externally asserted step/capture move, typically from the
// opponent.
func (e *Engine) Move(ctx context.Context, src, dst board.Square) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	mv := board.NewMove(src, dst)
	if e.b.Turn() == board.Unknown {
		return fmt.Errorf("illegal move: %v", mv)
	}
	for _, cand := range e.b.ListMoves(e.b.Turn()) {
		if !cand.Equals(mv) {
			continue
		}
		if err := e.b.MakeMove(cand, nil); err != nil {
			return fmt.Errorf("illegal move: %w", err)
		}
		logw.Infof(ctx, "Move %v: %v", mv, e.b)
		return nil
	}
	return fmt.Errorf("illegal move: %v", mv)
}

// Flip applies an externally resolved flip at pos, revealing result.
func (e *Engine) Flip(ctx context.Context, pos board.Square, result board.Piece) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	mv := board.NewFlipResult(pos, result)
	if !e.b.Playable(mv) {
		return fmt.Errorf("illegal flip: %v", mv)
	}
	if err := e.b.MakeMove(mv, nil); err != nil {
		return fmt.Errorf("illegal flip: %w", err)
	}

	e.flips++
	e.depthLimit = search.DepthLimitForFlips(e.flips)

	logw.Infof(ctx, "Flip %v: %v", mv, e.b)
	return nil
}

// GenerateMove runs the root search and returns the chosen move. When color
// is board.Unknown or matches the board's current side to move, the move is
// reported from that position and -- if it is a resolved step/capture move
// -- committed to the board. A flip recommendation is never committed here:
// the actual revealed identity is only known once it is later reported
// through Flip, so a fresh-board genmove returns Flip(0) without mutating
// any state.
func (e *Engine) GenerateMove(ctx context.Context, color board.Color) (board.ChessMove, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	side := e.b.Turn()
	if color != board.Unknown {
		side = color
	}

	pv := search.GenerateMove(e.tt, e.b, side, e.effectiveDepthLimitLocked())
	e.lastPV = pv

	if pv.Move.Kind == board.StepMove && side == e.b.Turn() {
		if err := e.b.MakeMove(pv.Move, nil); err != nil {
			return board.ChessMove{}, fmt.Errorf("internal: search chose illegal move: %w", err)
		}
	}

	logw.Infof(ctx, "GenerateMove %v: %v", pv, e.b)
	return pv.Move, nil
}

// ExplainLastSearch reports the principal variation of the most recently
// completed GenerateMove call, for diagnostics.
func (e *Engine) ExplainLastSearch() string {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.lastPV.String()
}

// SetTimeSettings configures the nominal per-move time budget in
// milliseconds.
func (e *Engine) SetTimeSettings(ms int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.timeSettingsMS = ms
}

// SetTimeLeft records the remaining clock time in milliseconds.
func (e *Engine) SetTimeLeft(ms int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.timeLeftMS = ms
}

// lowTimeDepthCeiling is the conservative depth limit applied when very
// little clock time remains, so a single move does not risk running the
// hard-cap iterative deepening chain to completion.
const lowTimeDepthCeiling = 4

// lowTimeThresholdMS is the remaining-time boundary below which
// effectiveDepthLimitLocked starts clamping.
const lowTimeThresholdMS = 1000

func (e *Engine) effectiveDepthLimitLocked() int {
	if v, ok := e.opts.DepthOverride.V(); ok {
		return v
	}
	if e.timeLeftMS > 0 && e.timeLeftMS < lowTimeThresholdMS && e.depthLimit > lowTimeDepthCeiling {
		return lowTimeDepthCeiling
	}
	return e.depthLimit
}
