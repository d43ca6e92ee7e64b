// Package driver runs diagnostic passes over many declaration model files.
// Files are loaded and inspected in parallel; results keep the input order.
package driver

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"genmark/internal/analyzer"
	"genmark/internal/analyzers"
	"genmark/internal/ast"
	"genmark/internal/diag"
	"genmark/internal/inspect"
	"genmark/internal/observ"
	"genmark/internal/project"
	"genmark/internal/source"
	"genmark/internal/trace"
	"genmark/internal/types"
	"genmark/internal/valcheck"
)

// Options configures Diagnose.
type Options struct {
	Config project.Config
	Jobs   int           // <= 0: GOMAXPROCS
	Timer  *observ.Timer // optional
	// Register fills the analyzer registry; nil registers the built-in
	// analyzers.
	Register func(r *analyzer.Registry)
	// Progress receives per-file events; optional.
	Progress ProgressSink
}

// FileResult is the outcome for one input path.
type FileResult struct {
	Path     string
	FileID   source.FileID
	Model    *project.Model // nil when the file could not be loaded
	Bag      *diag.Bag
	Stats    inspect.Stats
	Failures []inspect.Failure
}

// Result holds every file's outcome in input order.
type Result struct {
	FileSet *source.FileSet
	Files   []FileResult
}

// Counts returns the number of problems per severity across all files.
func (r *Result) Counts() (errors, warnings, infos int) {
	if r == nil {
		return 0, 0, 0
	}
	for i := range r.Files {
		for _, p := range r.Files[i].Bag.Items() {
			switch p.Severity {
			case diag.SevError:
				errors++
			case diag.SevWarning:
				warnings++
			default:
				infos++
			}
		}
	}
	return errors, warnings, infos
}

// HasErrors reports whether any file has an error-severity problem.
func (r *Result) HasErrors() bool {
	n, _, _ := r.Counts()
	return n > 0
}

// Problems returns every file's problems, file by file.
func (r *Result) Problems() []diag.Problem {
	if r == nil {
		return nil
	}
	var out []diag.Problem
	for i := range r.Files {
		out = append(out, r.Files[i].Bag.Items()...)
	}
	return out
}

// Diagnose loads paths and inspects each model. Types declared in any of
// the files are visible to all of them. The returned error is non-nil only
// when ctx is cancelled; per-file failures are reported in the file's Bag.
func Diagnose(ctx context.Context, paths []string, opts Options) (*Result, error) {
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeDriver, "diagnose", trace.CurrentSpan(ctx))
	defer span.End("")
	ctx = trace.WithSpan(ctx, span)

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	res := &Result{
		FileSet: source.NewFileSet(),
		Files:   make([]FileResult, len(paths)),
	}
	if len(paths) == 0 {
		return res, nil
	}

	maxDiagnostics := opts.Config.MaxDiagnostics
	if maxDiagnostics <= 0 {
		maxDiagnostics = project.DefaultMaxDiagnostics
	}

	for _, path := range paths {
		emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusQueued})
	}

	var err error
	opts.Timer.Track("load", func() string {
		err = loadAll(ctx, res, paths, jobs, maxDiagnostics, opts.Progress)
		return strconv.Itoa(len(paths)) + " files"
	})
	if err != nil {
		return nil, err
	}

	var engine *inspect.Engine
	opts.Timer.Track("index", func() string {
		engine = newEngine(res, opts)
		return ""
	})

	emit(opts.Progress, Event{Stage: StageInspect, Status: StatusWorking})
	opts.Timer.Track("inspect", func() string {
		err = inspectAll(ctx, res, engine, jobs, opts.Config, opts.Progress)
		return ""
	})
	if err != nil {
		return nil, err
	}
	span.WithExtra("files", strconv.Itoa(len(paths)))
	return res, nil
}

func loadAll(ctx context.Context, res *Result, paths []string, jobs, maxDiagnostics int, sink ProgressSink) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(paths)))
	for i, path := range paths {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			emit(sink, Event{File: path, Stage: StageLoad, Status: StatusWorking})
			start := time.Now()
			fr := FileResult{Path: path, Bag: diag.NewBag(maxDiagnostics)}
			m, err := project.LoadModel(res.FileSet, path)
			if err != nil {
				emit(sink, Event{File: path, Stage: StageLoad, Status: StatusError, Err: err, Elapsed: time.Since(start)})
				fr.Bag.Add(diag.Problem{
					Severity: diag.SevError,
					Code:     diag.PrjInvalidModel,
					Message:  fmt.Sprintf("failed to load %s: %v", path, err),
				})
			} else {
				fr.Model = m
				fr.FileID = m.Source.ID
				for _, p := range m.Problems {
					fr.Bag.Add(p)
				}
			}
			res.Files[i] = fr
			return nil
		})
	}
	return g.Wait()
}

// newEngine builds the analyzers, the shared symbol index and the
// delegation resolver over every loaded model.
func newEngine(res *Result, opts Options) *inspect.Engine {
	reg := analyzer.NewRegistry()
	if opts.Register != nil {
		opts.Register(reg)
	} else {
		analyzers.Register(reg)
	}
	reg.Disable(opts.Config.Disabled...)

	index := types.Chain{}
	var files []*ast.File
	for i := range res.Files {
		if m := res.Files[i].Model; m != nil {
			index = append(index, m.Decls)
			files = append(files, m.File)
		}
	}
	index = append(index, types.JDK())

	return inspect.New(inspect.Config{
		Registry: reg,
		Index:    index,
		Policy:   valcheck.New(opts.Config.InferenceKeyword, nil),
		Resolver: inspect.NewDeclResolver(files...),
	})
}

func inspectAll(ctx context.Context, res *Result, engine *inspect.Engine, jobs int, cfg project.Config, sink ProgressSink) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(res.Files)))
	for i := range res.Files {
		fr := &res.Files[i]
		if fr.Model == nil {
			continue
		}
		g.Go(func() error {
			emit(sink, Event{File: fr.Path, Stage: StageInspect, Status: StatusWorking})
			start := time.Now()
			fileSpan := trace.Begin(trace.FromContext(gctx), trace.ScopeModule, fr.Path, trace.CurrentSpan(gctx))
			out, err := engine.RunContext(trace.WithSpan(gctx, fileSpan), fr.Model.File)
			if err != nil {
				fileSpan.End("cancelled")
				emit(sink, Event{File: fr.Path, Stage: StageInspect, Status: StatusError, Err: err, Elapsed: time.Since(start)})
				return err
			}
			for _, p := range out.Problems {
				fr.Bag.Add(p)
			}
			fr.Stats = out.Stats
			fr.Failures = out.Failures
			fileSpan.WithExtra("problems", strconv.Itoa(fr.Bag.Len())).End("")
			emit(sink, Event{File: fr.Path, Stage: StageInspect, Status: StatusDone, Elapsed: time.Since(start)})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	for i := range res.Files {
		finish(res.Files[i].Bag, cfg)
	}
	return nil
}

// finish applies the severity settings of cfg to a file's problems.
func finish(bag *diag.Bag, cfg project.Config) {
	if cfg.WarningsAsErrors {
		bag.PromoteWarnings()
	}
	if cfg.MinSeverity > diag.SevInfo {
		bag.Filter(func(p diag.Problem) bool { return p.Severity >= cfg.MinSeverity })
	}
}
