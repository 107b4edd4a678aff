// Command sketchdist estimates all pairwise MinHash distances within a
// collection of sequences and streams the significant pairs to stdout.
//
// The input is a FASTA file (plain or gzipped, "-" for stdin) or a
// pre-built sketch file (.ssk). Parameters carried by a sketch file win
// over command-line overrides; conflicting overrides are fatal.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	flags "github.com/jessevdk/go-flags"

	"github.com/hupe1980/sketchdist"
	"github.com/hupe1980/sketchdist/blobstore"
	"github.com/hupe1980/sketchdist/join"
	"github.com/hupe1980/sketchdist/sketch"
	"github.com/hupe1980/sketchdist/sketchio"
)

type cliOptions struct {
	KmerSize   int     `short:"k" long:"kmer" description:"k-mer size (1-32)"`
	SketchSize int     `short:"s" long:"sketch-size" description:"min-hashes per sketch"`
	Alphabet   string  `short:"a" long:"alphabet" default:"protein" choice:"protein" choice:"dna" description:"residue alphabet"`
	Keep       bool    `short:"Z" long:"preserve-case" description:"keep sequence case significant"`
	Distance   float64 `short:"d" long:"distance" default:"1.0" description:"maximum distance to report"`
	PValue     float64 `short:"v" long:"pvalue" default:"1.0" description:"maximum p-value to report"`
	Table      bool    `short:"t" long:"table" description:"emit a lower-triangle matrix instead of tuples"`
	Threads    int     `short:"p" long:"threads" description:"scoring threads (default: all cores)"`
	Slots      uint64  `short:"b" long:"slots" description:"hash index slot budget per round"`
	Output     string  `short:"o" long:"output" description:"write results to file instead of stdout"`
	Save       string  `long:"save" description:"also write the sketch collection to this .ssk file"`
	Verbose    bool    `long:"verbose" description:"enable debug logging to stderr"`

	Args struct {
		Input string `positional-arg-name:"input" description:"FASTA file, sketch file or - for stdin"`
	} `positional-args:"yes" required:"yes"`
}

func main() {
	var opts cliOptions
	parser := flags.NewParser(&opts, flags.Default)
	parser.Usage = "[OPTIONS] input"

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, &opts); err != nil {
		if join.IsBrokenPipe(err) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "sketchdist: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts *cliOptions) error {
	level := slog.LevelInfo
	if opts.Verbose {
		level = slog.LevelDebug
	}
	logger := sketchdist.NewTextLogger(level)

	coll, err := loadCollection(ctx, opts)
	if err != nil {
		return err
	}

	if opts.Save != "" {
		if err := saveCollection(ctx, opts.Save, coll); err != nil {
			return fmt.Errorf("save sketch: %w", err)
		}
		logger.Info("sketch file written", "path", opts.Save, "records", coll.Len())
	}

	eng, err := sketchdist.Pairwise().
		MaxDistance(opts.Distance).
		MaxPValue(opts.PValue).
		Workers(opts.Threads).
		SlotBudget(opts.Slots).
		Logger(logger).
		Build()
	if err != nil {
		return err
	}

	out := os.Stdout
	if opts.Output != "" {
		f, err := os.Create(opts.Output)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	var w join.Writer
	if opts.Table {
		w = join.NewMatrixWriter(out)
	} else {
		w = join.NewTupleWriter(out)
	}

	stats, err := eng.Run(ctx, coll, w)
	if err != nil {
		return err
	}

	logger.Info("run complete",
		"sketches", coll.Len(),
		"rounds", stats.Rounds,
		"candidates", stats.Candidates,
		"accepted", stats.Accepted)

	if adv := coll.Advisory(); adv != nil {
		fmt.Fprintf(os.Stderr,
			"WARNING: %d sequences are long enough that random %d-mer collisions are likely (longest: %s, %d residues, chance %.3g). Consider k >= %d.\n",
			adv.Count, coll.KmerSize(), adv.LongestName, adv.LongestLength, adv.RandomChance, adv.MinKmerSize)
	}
	return nil
}

// loadCollection sketches the FASTA input or loads a pre-built sketch
// file, enforcing parameter inheritance for the latter.
func loadCollection(ctx context.Context, opts *cliOptions) (*sketch.Collection, error) {
	input := opts.Args.Input

	if sketchio.IsSketchName(input) {
		store := blobstore.NewLocalStore(filepath.Dir(input))
		coll, err := sketchio.Load(ctx, store, filepath.Base(input))
		if err != nil {
			return nil, err
		}
		if err := sketchio.CheckOverrides(coll.Params(), opts.KmerSize, opts.SketchSize); err != nil {
			return nil, err
		}
		return coll, nil
	}

	params := sketch.DefaultParameters()
	if opts.Alphabet != "" {
		alphabet, ok := sketch.AlphabetByName(opts.Alphabet)
		if !ok {
			return nil, fmt.Errorf("unknown alphabet %q", opts.Alphabet)
		}
		params.Alphabet = alphabet
	}
	if opts.KmerSize != 0 {
		params.KmerSize = opts.KmerSize
	}
	if opts.SketchSize != 0 {
		params.SketchSize = opts.SketchSize
	}
	params.PreserveCase = opts.Keep

	return sketch.FromFasta(ctx, input, params)
}

func saveCollection(ctx context.Context, path string, coll *sketch.Collection) error {
	store := blobstore.NewLocalStore(filepath.Dir(path))
	return sketchio.Save(ctx, store, filepath.Base(path), coll)
}
