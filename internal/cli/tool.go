package cli

import (
	"context"
	stderrors "errors"
	"flag"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/klang-lang/klang/internal/batch"
	"github.com/klang-lang/klang/internal/errors"
	"github.com/klang-lang/klang/internal/keywords"
	"github.com/klang-lang/klang/internal/translate"
	"github.com/klang-lang/klang/internal/vfs"
)

// DefaultConfigFile is read when -config is not given; a missing file is fine.
const DefaultConfigFile = "klang.json"

// Tool describes one translator binary.
type Tool struct {
	Name          string
	Version       string
	Description   string
	Direction     translate.Direction
	InputExt      string
	DefaultOutput string
}

// Env is what a Tool run reads from and writes to.
type Env struct {
	FS     vfs.FileSystem
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

type options struct {
	output     string
	outDir     string
	dict       string
	configPath string
	watch      bool
	poll       time.Duration
	jobs       int
	maxOutput  int
	verbose    bool
	debug      bool
	stdin      bool
	version    bool
	jsonOutput bool
}

func (t Tool) flagSet(stderr io.Writer, o *options) *flag.FlagSet {
	fs := flag.NewFlagSet(t.Name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.output, "o", t.DefaultOutput, "output file (single input only)")
	fs.StringVar(&o.outDir, "outdir", "", "directory for outputs when translating several files")
	fs.StringVar(&o.dict, "dict", "", "keyword dictionary file (default: built-in)")
	fs.StringVar(&o.configPath, "config", DefaultConfigFile, "JSON configuration file")
	fs.BoolVar(&o.watch, "watch", false, "retranslate inputs whenever they change")
	fs.DurationVar(&o.poll, "poll", 0, "poll for changes at this interval instead of OS notifications")
	fs.IntVar(&o.jobs, "jobs", 0, "files translated in parallel (default: GOMAXPROCS)")
	fs.IntVar(&o.maxOutput, "max-output", 0, "fail a translation whose output exceeds this many bytes")
	fs.BoolVar(&o.verbose, "verbose", false, "log progress")
	fs.BoolVar(&o.debug, "debug", false, "log debug details")
	fs.BoolVar(&o.stdin, "stdin", false, "read from stdin and write to stdout")
	fs.BoolVar(&o.version, "v", false, "display version information")
	fs.BoolVar(&o.version, "version", false, "display version information")
	fs.BoolVar(&o.jsonOutput, "json", false, "print version information as JSON")
	fs.Usage = func() { t.usage(stderr, fs) }
	return fs
}

func (t Tool) usage(w io.Writer, fs *flag.FlagSet) {
	PrintCommandUsage(w, CommandInfo{
		Name:        t.Name,
		Usage:       fmt.Sprintf("%s <input%s>... [-o output]", t.Name, t.InputExt),
		Description: t.Description,
		Flags:       flagInfos(fs),
		Examples: []string{
			fmt.Sprintf("%s prog%s -o %s", t.Name, t.InputExt, t.DefaultOutput),
			fmt.Sprintf("%s -outdir build a%s b%s", t.Name, t.InputExt, t.InputExt),
			fmt.Sprintf("%s -watch prog%s", t.Name, t.InputExt),
		},
	})
}

// Run executes the tool and returns the process exit code.
func (t Tool) Run(ctx context.Context, args []string, env Env) int {
	var o options
	fs := t.flagSet(env.Stderr, &o)
	if len(args) == 0 {
		fs.Usage()
		return 1
	}

	inputs, err := ParseInterleaved(fs, args)
	if err != nil {
		if stderrors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 1
	}
	if o.version {
		if err := PrintVersion(env.Stdout, t.Name, t.Version, o.jsonOutput); err != nil {
			fmt.Fprintf(env.Stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	}

	if o.stdin && len(inputs) > 0 {
		fmt.Fprintf(env.Stderr, "Error: %v\n", errors.Usage("-stdin takes no input files, got %d", len(inputs)))
		fs.Usage()
		return 1
	}

	cfg, err := LoadConfig(env.FS, o.configPath)
	if err != nil {
		fmt.Fprintf(env.Stderr, "Error: %v\n", err)
		return 1
	}
	t.applyConfig(fs, cfg, &o)

	logger := NewLogger(o.verbose, o.debug)
	logger.Out = env.Stdout

	tr, err := t.translator(env.FS, o, logger)
	if err != nil {
		logger.Error("%v", err)
		return 1
	}

	if o.stdin {
		logger.Out = env.Stderr
		return t.runStdin(tr, env, logger)
	}

	jobs, err := t.jobs(fs, inputs, o)
	if err != nil {
		fmt.Fprintf(env.Stderr, "Error: %v\n", err)
		fs.Usage()
		return 1
	}

	runner := &batch.Runner{FS: env.FS, Translator: tr, Jobs: o.jobs}
	results, err := runner.Run(ctx, jobs)
	code := 0
	for _, res := range results {
		if !t.report(res, env, logger) {
			code = 1
		}
	}
	if err != nil && code == 0 {
		logger.Error("%v", err)
		code = 1
	}

	if o.watch {
		if err := t.watch(ctx, runner, jobs, o, env, logger); err != nil {
			logger.Error("%v", err)
			return 1
		}
	}
	return code
}

// applyConfig fills options the command line left unset from cfg.
func (t Tool) applyConfig(fs *flag.FlagSet, cfg *Config, o *options) {
	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if !set["verbose"] {
		o.verbose = cfg.Verbose
	}
	if !set["debug"] {
		o.debug = cfg.Debug
	}
	if !set["dict"] {
		o.dict = cfg.Dictionary
	}
	if !set["outdir"] {
		o.outDir = cfg.OutputDir
	}
	if !set["max-output"] {
		o.maxOutput = cfg.MaxOutputBytes
	}
	if !set["jobs"] {
		o.jobs = cfg.Jobs
	}
	if !set["poll"] {
		// LoadConfig already validated the interval
		o.poll, _ = cfg.PollInterval()
	}
}

func (t Tool) translator(fsys vfs.FileSystem, o options, logger *Logger) (*translate.Translator, error) {
	dict := keywords.Default()
	if o.dict != "" {
		d, err := keywords.Load(fsys, o.dict)
		if err != nil {
			return nil, err
		}
		dict = d
	}
	logger.Debug("dictionary %s (format %s, %d pairs)", dict.Source, dict.Version, len(dict.Pairs))

	table := dict.Forward()
	if t.Direction == translate.Reverse {
		table = dict.Reverse()
	}
	for _, dup := range table.Duplicates() {
		e, _ := table.Lookup(dup)
		logger.Debug("token %q appears more than once; %q wins", dup, e.Mapped)
	}
	return translate.New(table, t.Direction, translate.Options{MaxOutput: o.maxOutput})
}

func (t Tool) jobs(fs *flag.FlagSet, inputs []string, o options) ([]batch.Job, error) {
	if len(inputs) == 0 {
		return nil, errors.Usage("no input file")
	}
	outputSet := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "o" {
			outputSet = true
		}
	})

	if len(inputs) == 1 && o.outDir == "" {
		return []batch.Job{{Input: inputs[0], Output: o.output}}, nil
	}
	if outputSet {
		return nil, errors.Usage("-o needs exactly one input; use -outdir for several")
	}
	jobs := make([]batch.Job, len(inputs))
	for i, in := range inputs {
		jobs[i] = batch.Job{Input: in, Output: batch.OutputPath(in, t.Direction, o.outDir)}
	}
	return jobs, nil
}

func (t Tool) runStdin(tr *translate.Translator, env Env, logger *Logger) int {
	src, err := io.ReadAll(env.Stdin)
	if err != nil {
		logger.Error("%v", errors.IOFailure("read", "stdin", err))
		return 1
	}
	out, state, err := tr.TranslateWithState(src)
	if err != nil {
		logger.Error("%v", err)
		return 1
	}
	if translate.Unterminated(state) {
		logger.Warn("stdin ends inside %s; trailing text copied as is", state)
	}
	if _, err := env.Stdout.Write(out); err != nil {
		fmt.Fprintf(env.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// report prints the outcome of one job and says whether it succeeded.
func (t Tool) report(res batch.Result, env Env, logger *Logger) bool {
	if res.Err != nil {
		fmt.Fprintf(env.Stderr, "Error: %v\n", res.Err)
		return false
	}
	if translate.Unterminated(res.State) {
		logger.Warn("'%s' ends inside %s; trailing text copied as is", res.Input, res.State)
	}
	logger.Info("wrote %d bytes", res.Bytes)
	fmt.Fprintf(env.Stdout, "Successfully translated '%s' to '%s'\n", res.Input, res.Output)
	return true
}

func (t Tool) watch(ctx context.Context, runner *batch.Runner, jobs []batch.Job, o options, env Env, logger *Logger) error {
	byPath := make(map[string]batch.Job, len(jobs))
	for _, j := range jobs {
		byPath[filepath.Clean(j.Input)] = j
	}

	// Watched inputs can be truncated mid-read, so never map them.
	watched := *runner
	watched.ReadWhole = true

	w, err := t.watcher(ctx, jobs, o, env)
	if err != nil {
		return errors.IOFailure("watch", jobs[0].Input, err)
	}
	defer w.Close()
	logger.Info("watching %d file(s)", len(jobs))

	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-w.Errors():
			logger.Warn("watch: %v", err)
		case ev, ok := <-w.Events():
			if !ok {
				return nil
			}
			job, tracked := byPath[filepath.Clean(ev.Path)]
			if !tracked || ev.Op&(vfs.OpWrite|vfs.OpCreate) == 0 {
				continue
			}
			logger.Debug("change on %s", ev.Path)
			n, state, err := runner.One(job)
			t.report(batch.Result{Job: job, Bytes: n, State: state, Err: err}, env, logger)
		}
	}
}

func (t Tool) watcher(ctx context.Context, jobs []batch.Job, o options, env Env) (vfs.Watcher, error) {
	if o.poll > 0 {
		sw := vfs.NewSimpleWatcher(env.FS)
		for _, j := range jobs {
			if err := sw.Add(j.Input); err != nil {
				return nil, err
			}
		}
		return sw, sw.StartPolling(ctx, o.poll)
	}

	w, err := vfs.NewFSWatcher()
	if err != nil {
		return nil, err
	}
	// Editors often replace files on save, so watch the directories.
	dirs := map[string]bool{}
	for _, j := range jobs {
		dir := filepath.Dir(j.Input)
		if dirs[dir] {
			continue
		}
		dirs[dir] = true
		if err := w.Add(dir); err != nil {
			w.Close()
			return nil, err
		}
	}
	return w, nil
}
