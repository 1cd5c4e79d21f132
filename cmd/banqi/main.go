package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/seekerror/logw"

	"github.com/tanglewood/banqi/pkg/board"
	"github.com/tanglewood/banqi/pkg/engine"
	"github.com/tanglewood/banqi/pkg/engine/protocol"
	"github.com/tanglewood/banqi/pkg/search"
)

var (
	hashBits = flag.Uint("hash", search.DefaultTableBits, "Transposition table size, as log2 of the entry count")
	depth    = flag.Int("depth", 0, "Pin the search depth limit instead of growing it with observed flips (0 disables)")
	seed     = flag.Int64("seed", board.DefaultZobristSeed, "Zobrist hashing seed")
)

func init() {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, `usage: banqi [options]

BANQI is a Chinese Dark Chess (Banqi) playing engine speaking a
line-oriented text protocol over stdin/stdout.

Options:
`)
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()
	ctx := context.Background()

	opts := []engine.Option{
		engine.WithTableSize(*hashBits),
		engine.WithZobristSeed(*seed),
	}
	if *depth > 0 {
		opts = append(opts, engine.WithDepthLimit(*depth))
	}

	e := engine.New(ctx, "banqi", "tanglewood", opts...)

	d := protocol.NewDriver(e, os.Stdout)
	code := d.Run(ctx, os.Stdin)
	if code != 0 {
		logw.Exitf(ctx, "Protocol error, exiting with code %v", code)
	}
}
