// internal/app/app.go
package app

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/emer/etable/etable"
	"github.com/nathangeffen/epiagents/ensemble"
	"github.com/nathangeffen/epiagents/internal/report"
	"github.com/nathangeffen/epiagents/macro"
	"github.com/nathangeffen/epiagents/micro"
	"github.com/nathangeffen/epiagents/scenario"
	"github.com/nathangeffen/epiagents/tabular"
)

// Exit codes.
const (
	exitOK    = 0
	exitRun   = 1
	exitUsage = 2
	exitIO    = 3
)

// Options are the parsed command-line flags.
type Options struct {
	Config      string
	Runs        int
	Seed        int64
	Method      string
	Report      string
	Clamp       bool
	Shuffle     bool
	All         bool
	MacroTSV    string
	EnsembleTSV string
	DumpConfig  bool
	Verbose     bool

	set map[string]bool // flags given explicitly
}

func newFlagSet(o *Options) *flag.FlagSet {
	fs := flag.NewFlagSet("epiagents", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&o.Config, "config", "", "TOML scenario file (default: built-in reference scenario)")
	fs.IntVar(&o.Runs, "runs", 0, "number of micro runs in the ensemble")
	fs.Int64Var(&o.Seed, "seed", 0, "base random seed (0 = derive from the clock)")
	fs.StringVar(&o.Method, "method", "", "macro integration method: euler or rk4")
	fs.StringVar(&o.Report, "report", "", "compartment summarized across the ensemble")
	fs.BoolVar(&o.Clamp, "clamp", false, "cap macro flows at the mass of their source compartment")
	fs.BoolVar(&o.Shuffle, "shuffle", false, "shuffle agent order every micro step")
	fs.BoolVar(&o.All, "all", false, "print every macro step instead of the final one")
	fs.StringVar(&o.MacroTSV, "macro-tsv", "", "write the macro series as TSV to this path")
	fs.StringVar(&o.EnsembleTSV, "ensemble-tsv", "", "write final member values as TSV to this path")
	fs.BoolVar(&o.DumpConfig, "dump-config", false, "print the effective scenario as TOML and exit")
	fs.BoolVar(&o.Verbose, "v", false, "debug logging on stderr")
	return fs
}

// ParseArgs parses argv into Options.
func ParseArgs(argv []string) (Options, *flag.FlagSet, error) {
	var o Options
	fs := newFlagSet(&o)
	if err := fs.Parse(argv); err != nil {
		return o, fs, err
	}
	if fs.NArg() > 0 {
		return o, fs, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	o.set = map[string]bool{}
	fs.Visit(func(f *flag.Flag) { o.set[f.Name] = true })
	return o, fs, nil
}

// scenarioFor loads the scenario and overlays explicit flags.
func scenarioFor(o Options) (scenario.Scenario, error) {
	sc := scenario.Default()
	if o.Config != "" {
		var err error
		if sc, err = scenario.Load(o.Config); err != nil {
			return scenario.Scenario{}, err
		}
	}
	if o.set["runs"] {
		sc.Runs = o.Runs
	}
	if o.set["seed"] {
		sc.Seed = o.Seed
	}
	if o.set["method"] {
		sc.Method = o.Method
	}
	if o.set["report"] {
		sc.Report = o.Report
	}
	if o.set["clamp"] {
		sc.Clamp = o.Clamp
	}
	if o.set["shuffle"] {
		sc.Shuffle = o.Shuffle
	}
	return sc, sc.Validate()
}

// Run is the command entry point; it returns the process exit code.
func Run(argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)
	defer func() { _ = outw.Flush() }()

	o, fs, err := ParseArgs(argv)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fs.SetOutput(outw)
			fs.PrintDefaults()
			return exitOK
		}
		_, _ = fmt.Fprintln(stderr, err)
		fs.SetOutput(stderr)
		fs.PrintDefaults()
		return exitUsage
	}

	level := slog.LevelInfo
	if o.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	sc, err := scenarioFor(o)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return exitUsage
	}
	if o.DumpConfig {
		return finish(stderr, sc.Encode(outw), outw)
	}

	seed := sc.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
		logger.Info("derived seed from clock", "seed", seed)
	}

	// Stage 1: deterministic macro run.
	macroOpts := []macro.Option{
		macro.WithRoles(sc.Roles),
		macro.WithMethod(sc.MacroMethod()),
		macro.WithLogger(logger),
	}
	if sc.Clamp {
		macroOpts = append(macroOpts, macro.WithClamp())
	}
	ts, err := macro.Run(sc.Snapshot(), sc.Params(), macroOpts...)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return exitRun
	}

	// Stage 2: stochastic ensemble.
	microOpts := []micro.Option{micro.WithRoles(sc.Roles), micro.WithLogger(logger)}
	if sc.Shuffle {
		microOpts = append(microOpts, micro.WithShuffle())
	}
	ens, err := ensemble.Run(sc.Snapshot(), sc.Params(), sc.Runs,
		ensemble.WithSeed(seed),
		ensemble.WithMicroOptions(microOpts...),
		ensemble.WithLogger(logger),
	)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return exitRun
	}
	summary, err := ensemble.Summarize(ens.Series(), sc.Report)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return exitRun
	}

	// Stage 3: output.
	if o.All {
		err = report.WriteSeries(outw, "Macro", ts)
	} else {
		err = report.WriteFinal(outw, "Macro", ts)
	}
	if err == nil {
		err = report.WriteSummary(outw, "Micro", summary)
	}
	if err == nil && o.MacroTSV != "" {
		err = writeTable(o.MacroTSV, func() (*etable.Table, error) { return tabular.SeriesTable(ts) })
	}
	if err == nil && o.EnsembleTSV != "" {
		err = writeTable(o.EnsembleTSV, func() (*etable.Table, error) {
			return tabular.StepTable(ens.Series(), ensemble.Final)
		})
	}
	return finish(stderr, err, outw)
}

// finish flushes outw and maps write failures to an exit code.
func finish(stderr io.Writer, err error, outw *bufio.Writer) int {
	if err == nil {
		err = outw.Flush()
	}
	switch {
	case err == nil, report.IsBrokenPipe(err):
		return exitOK
	default:
		_, _ = fmt.Fprintln(stderr, err)
		return exitIO
	}
}

func writeTable(path string, build func() (*etable.Table, error)) (err error) {
	dt, err := build()
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return tabular.WriteTSV(f, dt)
}
