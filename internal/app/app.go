// internal/app/app.go
package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"

	"fragnet/internal/chem"
	"fragnet/internal/cli"
	"fragnet/internal/cmdutil"
	"fragnet/internal/config"
	"fragnet/internal/dedup"
	"fragnet/internal/pipeline"
	"fragnet/internal/smiles"
	"fragnet/internal/version"
	"fragnet/internal/writers"
)

// Exit codes. 1-3 are the documented startup errors; later codes are
// runtime failures.
const (
	exitOK          = 0
	exitNoInput     = 1
	exitInputAbsent = 2
	exitNoBaseDir   = 3
	exitRunFailed   = 10
	exitCancelled   = 130
)

// RunContext is the whole program behind the executable: parse,
// validate, wire the pipeline, report. Startup errors exit before any
// pipeline component starts.
func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	fs := cli.NewFlagSet("fragnet")
	fs.SetOutput(stderr)

	opts, err := cli.ParseArgs(fs, argv)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		fmt.Fprintln(stderr, err)
		return exitInputAbsent
	}
	if opts.Version {
		fmt.Fprintf(stdout, "fragnet version %s\n", version.Version)
		return exitOK
	}

	// Startup validation, in the documented order.
	if opts.Input == "" {
		fmt.Fprintln(stderr, "ERROR: Must specify an input")
		return exitNoInput
	}
	if st, err := os.Stat(opts.Input); err != nil || st.IsDir() {
		fmt.Fprintf(stderr, "ERROR: input (%s) does not exist\n", opts.Input)
		return exitInputAbsent
	}
	if opts.BaseDir == "" {
		fmt.Fprintln(stderr, "ERROR: Must specify a base directory")
		return exitNoBaseDir
	}

	cfg, code := mergeConfig(opts, stderr)
	if code != exitOK {
		return code
	}

	if err := os.MkdirAll(opts.BaseDir, 0o755); err != nil {
		fmt.Fprintln(stderr, err)
		return exitRunFailed
	}

	runID := uuid.NewString()
	cmdutil.Reportf(stderr, opts.Verbosity > 0, "run %s: %d workers, chunk %d, max-frag %d",
		runID, cfg.Workers, cfg.ChunkSize, cfg.MaxFrag)

	sink, err := writers.Open(cfg.Format, writers.Options{BaseDir: opts.BaseDir, RunID: runID})
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitRunFailed
	}

	cache, err := openCache(cfg.CacheDir)
	if err != nil {
		fmt.Fprintln(stderr, err)
		_ = sink.Close()
		return exitRunFailed
	}

	in, err := smiles.Open(opts.Input)
	if err != nil {
		fmt.Fprintln(stderr, err)
		_ = cache.Close()
		_ = sink.Close()
		return exitRunFailed
	}

	pcfg := pipeline.Config{
		Workers:     cfg.Workers,
		ChunkSize:   cfg.ChunkSize,
		MaxFrag:     cfg.MaxFrag,
		MolTimeout:  cfg.MolTimeout,
		ReportEvery: cfg.ReportInterval,
	}
	if opts.Verbosity > 0 {
		pcfg.Progress = func(s pipeline.Stats) {
			cmdutil.Reportf(stderr, true, "... %d molecules, %d nodes, %d edges, %d rejects",
				s.Molecules, s.Nodes, s.Edges, s.Rejects)
		}
	}
	if opts.Verbosity > 1 {
		pcfg.OnReject = func(r writers.RejectRow) {
			cmdutil.Reportf(stderr, true, "reject %s: %s", r.SMILES, r.Reason)
		}
	}

	t0 := time.Now()
	stats, perr := pipeline.Run(parent, pcfg,
		func(emit func(smiles.Record) error) error {
			return smiles.StreamRecords(parent, in, opts.Skip, opts.Limit, emit)
		},
		chem.NewBondCutter(), cache, sink)

	_ = in.Close()
	cacheErr := cache.Close()
	sinkErr := sink.Close()

	if perr != nil {
		if errors.Is(perr, context.Canceled) {
			return exitCancelled
		}
		fmt.Fprintln(stderr, perr)
		return exitRunFailed
	}
	for _, err := range []error{cacheErr, sinkErr} {
		if err != nil {
			fmt.Fprintln(stderr, err)
			return exitRunFailed
		}
	}

	fmt.Fprintf(stdout, "Processed %d molecules, wrote %d nodes and %d edges, %d rejects\n",
		stats.Molecules, stats.Nodes, stats.Edges, stats.Rejects)
	fmt.Fprintf(stdout, "Fragmentation took: %s\n", time.Since(t0).Round(time.Millisecond))
	return exitOK
}

// Run is RunContext without external cancellation.
func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

// runConfig is the merged flag/file/default view the pipeline runs on.
type runConfig struct {
	Workers        int
	ChunkSize      int
	MaxFrag        int
	ReportInterval int
	Format         string
	CacheDir       string
	MolTimeout     time.Duration
}

// mergeConfig applies the optional YAML file underneath explicit
// flags. Returns a non-OK exit code on an unreadable or invalid file.
func mergeConfig(opts cli.Options, stderr io.Writer) (runConfig, int) {
	cfg := runConfig{
		Workers:        opts.Processes,
		ChunkSize:      opts.ChunkSize,
		MaxFrag:        opts.MaxFrag,
		ReportInterval: opts.ReportInterval,
		Format:         opts.Format,
		CacheDir:       opts.CacheDir,
	}
	if opts.MolTimeout != "" {
		d, err := time.ParseDuration(opts.MolTimeout)
		if err != nil {
			fmt.Fprintf(stderr, "--mol-timeout: %v\n", err)
			return cfg, exitInputAbsent
		}
		cfg.MolTimeout = d
	}

	path := opts.ConfigPath
	explicit := path != ""
	if !explicit {
		path = config.Sibling(opts.Input)
	}
	file, err := config.Load(path, explicit)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return cfg, exitRunFailed
	}

	if !opts.Changed("processes") && file.Processes != nil {
		cfg.Workers = *file.Processes
	}
	if !opts.Changed("chunk_size") && file.ChunkSize != nil {
		cfg.ChunkSize = *file.ChunkSize
	}
	if !opts.Changed("max-frag") && file.MaxFrag != nil {
		cfg.MaxFrag = *file.MaxFrag
	}
	if !opts.Changed("report-interval") && file.ReportInterval != nil {
		cfg.ReportInterval = *file.ReportInterval
	}
	if !opts.Changed("format") && file.Format != nil {
		cfg.Format = *file.Format
	}
	if !opts.Changed("cache-dir") && file.CacheDir != nil {
		cfg.CacheDir = *file.CacheDir
	}
	if !opts.Changed("mol-timeout") && file.MolTimeout != nil {
		cfg.MolTimeout = file.Timeout()
	}
	return cfg, exitOK
}

func openCache(dir string) (dedup.Cache, error) {
	if dir == "" {
		return dedup.NewMemory(), nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return dedup.OpenBadger(dir)
}
