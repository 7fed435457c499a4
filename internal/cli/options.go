// internal/cli/options.go
package cli

import (
	"errors"
	"flag"
	"fmt"

	"fragnet/internal/version"
)

// Options holds all CLI flags and arguments.
type Options struct {
	Input   string
	BaseDir string

	Limit   int
	Skip    int
	MaxFrag int

	ReportInterval int
	Processes      int
	ChunkSize      int

	Format     string
	CacheDir   string
	MolTimeout string // duration string; validated downstream with config
	ConfigPath string

	Verbosity int // 0, 1 (-v), 2 (-vv)
	Version   bool

	// set records which flags appeared on the command line, so config
	// file values only fill the gaps.
	set map[string]bool
}

// Changed reports whether the named flag was given explicitly.
func (o Options) Changed(name string) bool { return o.set[name] }

// NewFlagSet returns a configured FlagSet with custom usage/help.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(),
			`%s: build a fragment network from standard SMILES

Converts an Informatics Matters 'standard' molecule file into
nodes.csv, edges.csv and rejects.smi under --base_dir, fragmenting
molecules over parallel workers.

Version: %s

Usage of %s:
`, name, version.Version, name)
		fs.PrintDefaults()
	}
	return fs
}

// ParseArgs registers and parses all flags, returns an Options struct.
// Missing --input/--base_dir is not an error here: the app layer maps
// those to the documented exit codes.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var opt Options
	var help, v1, v2 bool

	fs.StringVar(&opt.Input, "input", "", "standard SMILES input file [*]")
	fs.StringVar(&opt.BaseDir, "base_dir", "", "output directory, created if absent [*]")

	fs.IntVar(&opt.Limit, "l", 0, "limit processing to the first N molecules, all if 0 (shorthand) [0]")
	fs.IntVar(&opt.Limit, "limit", 0, "limit processing to the first N molecules, all if 0 [0]")
	fs.IntVar(&opt.Skip, "s", 0, "number of molecules to skip in the input file (shorthand) [0]")
	fs.IntVar(&opt.Skip, "skip", 0, "number of molecules to skip in the input file [0]")
	fs.IntVar(&opt.MaxFrag, "max-frag", 0, "reject molecules with more than this many initial fragments (0 = no limit) [0]")

	fs.IntVar(&opt.ReportInterval, "r", 1000, "reporting interval (shorthand) [1000]")
	fs.IntVar(&opt.ReportInterval, "report-interval", 1000, "reporting interval [1000]")
	fs.IntVar(&opt.Processes, "p", 4, "number of parallel fragmentation workers (shorthand) [4]")
	fs.IntVar(&opt.Processes, "processes", 4, "number of parallel fragmentation workers [4]")
	fs.IntVar(&opt.ChunkSize, "c", 10, "size of chunk the SMILES are grouped into (shorthand) [10]")
	fs.IntVar(&opt.ChunkSize, "chunk_size", 10, "size of chunk the SMILES are grouped into [10]")

	fs.StringVar(&opt.Format, "format", "csv", "output sink: csv | sqlite [csv]")
	fs.StringVar(&opt.CacheDir, "cache-dir", "", "directory for a disk-backed dedup cache (in-memory if empty)")
	fs.StringVar(&opt.MolTimeout, "mol-timeout", "", "per-molecule watchdog timeout, e.g. 30s (0/empty disables)")
	fs.StringVar(&opt.ConfigPath, "config", "", "YAML config file (default: fragnet.yaml beside the input)")

	fs.BoolVar(&v1, "v", false, "report progress at each reporting interval [false]")
	fs.BoolVar(&v2, "vv", false, "as -v, plus per-reject detail [false]")
	fs.BoolVar(&opt.Version, "version", false, "print version and exit [false]")
	fs.BoolVar(&help, "h", false, "show this help message (shorthand) [false]")

	if err := fs.Parse(argv); err != nil {
		return opt, err
	}
	if help {
		fs.Usage()
		return opt, flag.ErrHelp
	}

	opt.set = map[string]bool{}
	fs.Visit(func(f *flag.Flag) { opt.set[canonical(f.Name)] = true })

	switch {
	case v1 && v2:
		return opt, errors.New("-v and -vv are mutually exclusive")
	case v2:
		opt.Verbosity = 2
	case v1:
		opt.Verbosity = 1
	}

	if opt.Limit < 0 || opt.Skip < 0 {
		return opt, errors.New("--limit and --skip must be ≥ 0")
	}
	if opt.MaxFrag < 0 {
		return opt, errors.New("--max-frag must be ≥ 0")
	}
	if opt.Processes < 1 {
		return opt, errors.New("--processes must be ≥ 1")
	}
	if opt.ChunkSize < 1 {
		return opt, errors.New("--chunk_size must be ≥ 1")
	}
	if opt.ReportInterval < 0 {
		return opt, errors.New("--report-interval must be ≥ 0")
	}
	return opt, nil
}

// canonical folds shorthand flag names onto their long forms so
// Changed answers consistently.
func canonical(name string) string {
	switch name {
	case "l":
		return "limit"
	case "s":
		return "skip"
	case "r":
		return "report-interval"
	case "p":
		return "processes"
	case "c":
		return "chunk_size"
	}
	return name
}
