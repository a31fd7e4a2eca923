// Package batch translates many files in parallel. Every file is an
// independent translation; one failure does not stop the others.
package batch

import (
	"context"
	stderrors "errors"
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/klang-lang/klang/internal/errors"
	"github.com/klang-lang/klang/internal/translate"
	"github.com/klang-lang/klang/internal/vfs"
)

// Job names one input file and where its translation goes.
type Job struct {
	Input  string
	Output string
}

// Result reports the outcome of one Job.
type Result struct {
	Job
	Bytes int
	// State is the scan state at end of input; see translate.Unterminated.
	State translate.ScanState
	Err   error
}

// Runner executes jobs with one Translator against one FileSystem.
type Runner struct {
	FS         vfs.FileSystem
	Translator *translate.Translator
	// Jobs bounds concurrency; 0 means GOMAXPROCS.
	Jobs int
	// ReadWhole copies each input into memory instead of mapping it. Use it
	// when inputs may be rewritten while they are being translated.
	ReadWhole bool
}

// Run translates every job and returns the results in job order. The
// returned error joins all per-job failures, or is the context error if ctx
// was cancelled first.
func (r *Runner) Run(ctx context.Context, jobs []Job) ([]Result, error) {
	results := make([]Result, len(jobs))
	limit := r.Jobs
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, job := range jobs {
		results[i].Job = job
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i].Err = err
				return err
			}
			results[i].Bytes, results[i].State, results[i].Err = r.One(job)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}

	var errs []error
	for _, res := range results {
		if res.Err != nil {
			errs = append(errs, res.Err)
		}
	}
	return results, stderrors.Join(errs...)
}

// One translates a single job.
func (r *Runner) One(job Job) (int, translate.ScanState, error) {
	m, err := r.open(job.Input)
	if err != nil {
		return 0, translate.StateNormal, errors.IOFailure("open", job.Input, err)
	}
	out, state, err := r.Translator.TranslateWithState(m.Bytes())
	if cerr := m.Close(); err == nil && cerr != nil {
		err = errors.IOFailure("close", job.Input, cerr)
	}
	if err != nil {
		return 0, state, err
	}

	if dir := filepath.Dir(job.Output); dir != "." && dir != "" {
		if err := r.FS.MkdirAll(dir, 0o755); err != nil {
			return 0, state, errors.IOFailure("create directory", dir, err)
		}
	}
	if err := r.FS.WriteFile(job.Output, out, 0o644); err != nil {
		return 0, state, errors.IOFailure("write to file", job.Output, err)
	}
	return len(out), state, nil
}

type inMemory []byte

func (b inMemory) Bytes() []byte { return b }
func (b inMemory) Close() error  { return nil }

func (r *Runner) open(name string) (vfs.Mapping, error) {
	if !r.ReadWhole {
		return r.FS.Map(name)
	}
	data, err := r.FS.ReadFile(name)
	if err != nil {
		return nil, err
	}
	return inMemory(data), nil
}

// OutputPath derives the output file for input: the extension becomes .k
// for forward translation and .c for reverse. A non-empty outDir replaces
// the input's directory.
func OutputPath(input string, dir translate.Direction, outDir string) string {
	ext := ".k"
	if dir == translate.Reverse {
		ext = ".c"
	}
	base := strings.TrimSuffix(input, filepath.Ext(input)) + ext
	if outDir != "" {
		return filepath.Join(outDir, filepath.Base(base))
	}
	return base
}
