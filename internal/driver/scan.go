package driver

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"sealscan/internal/ast"
	"sealscan/internal/diag"
	"sealscan/internal/lexer"
	"sealscan/internal/observ"
	"sealscan/internal/parser"
	"sealscan/internal/project"
	"sealscan/internal/sealed"
	"sealscan/internal/source"
	"sealscan/internal/symbols"
	"sealscan/internal/testkit"
	"sealscan/internal/trace"
)

// DefaultMaxDiagnostics caps each file's diagnostics when Options leaves it unset.
const DefaultMaxDiagnostics = 256

// Options configures Scan.
type Options struct {
	Extensions     []string
	Jobs           int // <= 0 selects GOMAXPROCS
	MaxDiagnostics int
	MaxAliasDepth  int
	// Check runs the testkit invariants on every processed file and
	// bypasses the cache.
	Check    bool
	Cache    *DiskCache
	Progress ProgressSink
	// Timings attaches per-file phase reports to the results.
	Timings bool
}

type unitState struct {
	path    string
	fileID  source.FileID
	loadErr error
	bag     *diag.Bag
	tree    *ast.Builder
	unit    ast.FileID
	key     project.Digest
	cached  bool
	timer   *observ.Timer
	result  FileResult
}

// Scan runs the full pipeline over target, a source file or a directory:
// load, parse in parallel, declare every classifier, resolve supertypes in
// parallel, then run the sealed-inheritor pass per file in parallel.
// A file whose pass fails is reported in its FileResult; the other files
// continue. The returned error covers only I/O on target and cancellation.
func Scan(ctx context.Context, target string, opts Options) (*Result, error) {
	ctx, scanSpan := trace.StartSpan(ctx, trace.ScopeDriver, "scan")
	defer scanSpan.End(target)

	info, err := os.Stat(target)
	if err != nil {
		return nil, err
	}
	base := target
	var files []string
	if info.IsDir() {
		files, err = ListSources(target, opts.Extensions)
		if err != nil {
			return nil, fmt.Errorf("list sources: %w", err)
		}
	} else {
		files = []string{target}
		base = filepath.Dir(target)
	}

	if opts.MaxDiagnostics <= 0 {
		opts.MaxDiagnostics = DefaultMaxDiagnostics
	}
	timer := observ.NewTimer()
	fs := source.NewFileSetWithBase(base)
	units := loadUnits(fs, files, &opts, timer)
	res := &Result{Root: target}
	if len(units) == 0 {
		return res, nil
	}

	if opts.Cache != nil && !opts.Check && lookupCache(fs, units, &opts) {
		return finish(res, units, timer, &opts), nil
	}

	if err := runParallel(ctx, units, &opts, timer, StageParse, func(ctx context.Context, u *unitState) {
		parseUnit(fs, u)
	}); err != nil {
		return nil, err
	}

	declareIdx := timer.Begin("declare")
	_, declareSpan := trace.StartSpan(ctx, trace.ScopePass, "declare")
	table := symbols.NewTable()
	for _, u := range units {
		if u.tree != nil {
			symbols.DeclareFile(table, u.tree, u.unit, symbols.Options{Reporter: diag.BagReporter{Bag: u.bag}})
		}
	}
	declareSpan.WithExtra("symbols", strconv.Itoa(table.Len())).End("")
	timer.End(declareIdx, strconv.Itoa(table.Len())+" symbols")

	// every tree must be resolved before any pass reads alias targets across trees
	if err := runParallel(ctx, units, &opts, timer, StageResolve, func(ctx context.Context, u *unitState) {
		symbols.ResolveFile(table, u.tree, u.unit, symbols.Options{Reporter: diag.BagReporter{Bag: u.bag}})
	}); err != nil {
		return nil, err
	}

	if err := runParallel(ctx, units, &opts, timer, StageSealed, func(ctx context.Context, u *unitState) {
		if u.cached {
			return
		}
		sealUnit(ctx, fs, table, u, &opts)
	}); err != nil {
		return nil, err
	}

	for _, u := range units {
		if u.cached || u.loadErr != nil {
			continue
		}
		// a broken cache must not fail the scan
		_ = opts.Cache.Put(u.key, &u.result)
	}
	return finish(res, units, timer, &opts), nil
}

func loadUnits(fs *source.FileSet, files []string, opts *Options, timer *observ.Timer) []*unitState {
	idx := timer.Begin("load")
	units := make([]*unitState, len(files))
	for i, path := range files {
		u := &unitState{path: path, bag: diag.NewBag(opts.MaxDiagnostics), timer: observ.NewTimer()}
		id, err := fs.Load(path)
		if err != nil {
			u.loadErr = err
			u.result.Path = path
			u.bag.Add(diag.Diagnostic{
				Severity: diag.SevError,
				Code:     diag.IOLoadFileError,
				Message:  "failed to load file: " + err.Error(),
			})
		} else {
			u.fileID = id
			u.result.Path = fs.RelPath(id)
		}
		units[i] = u
		emit(opts.Progress, Event{File: u.result.Path, Stage: StageLoad, Status: StatusQueued})
	}

	digests := make([]project.Digest, 0, len(units))
	for _, u := range units {
		if u.loadErr == nil {
			digests = append(digests, project.Digest(fs.Get(u.fileID).Hash))
		}
	}
	scan := project.Combine(project.DigestOf([]byte("scan")), digests...)
	for _, u := range units {
		if u.loadErr == nil {
			u.key = cacheKey(project.Digest(fs.Get(u.fileID).Hash), scan, opts)
		}
	}
	timer.End(idx, fmt.Sprintf("%d files", len(files)))
	return units
}

// lookupCache fills cached results and reports whether every loaded unit hit.
func lookupCache(fs *source.FileSet, units []*unitState, opts *Options) bool {
	all := true
	for _, u := range units {
		if u.loadErr != nil {
			continue
		}
		var cached FileResult
		ok, err := opts.Cache.Get(u.key, &cached)
		if err != nil || !ok {
			all = false
			continue
		}
		cached.Path = fs.RelPath(u.fileID)
		cached.Cached = true
		u.result = cached
		u.cached = true
		emit(opts.Progress, Event{File: u.result.Path, Stage: StageSealed, Status: StatusCached})
	}
	return all
}

func runParallel(ctx context.Context, units []*unitState, opts *Options, timer *observ.Timer, stage Stage, fn func(context.Context, *unitState)) error {
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	ctx, span := trace.StartSpan(ctx, trace.ScopePass, string(stage))
	defer span.End("")

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(units)))
	for _, u := range units {
		if u.loadErr != nil {
			continue
		}
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			emit(opts.Progress, Event{File: u.result.Path, Stage: stage, Status: StatusWorking})
			start := time.Now()
			fn(gctx, u)
			elapsed := time.Since(start)
			u.timer.Add(string(stage), elapsed)
			timer.Add(string(stage), elapsed)
			return nil
		})
	}
	return g.Wait()
}

func parseUnit(fs *source.FileSet, u *unitState) {
	reporter := diag.BagReporter{Bag: u.bag}
	u.tree = ast.NewBuilder(ast.Hints{}, nil)
	lx := lexer.New(fs.Get(u.fileID), lexer.Options{Reporter: reporter})
	res := parser.ParseFile(lx, u.tree, parser.Options{MaxErrors: uint(u.bag.Cap()), Reporter: reporter})
	u.unit = res.File
}

func sealUnit(ctx context.Context, fs *source.FileSet, table *symbols.Table, u *unitState, opts *Options) {
	ctx, span := trace.StartSpan(ctx, trace.ScopeModule, u.result.Path)

	stats, err := sealed.ProcessUnit(ctx, u.tree, u.unit, table, sealed.Options{MaxAliasDepth: opts.MaxAliasDepth})
	u.result.Stats = stats
	if err != nil {
		u.result.Err = fmt.Errorf("%s: %w", u.result.Path, err).Error()
	} else if opts.Check {
		if err := testkit.CheckSpanInvariants(u.tree, u.unit, fs.Get(u.fileID)); err != nil {
			u.result.Err = fmt.Sprintf("%s: span check: %v", u.result.Path, err)
		} else if err := testkit.CheckInheritors(u.tree, u.unit, table, opts.MaxAliasDepth); err != nil {
			u.result.Err = fmt.Sprintf("%s: inheritor check: %v", u.result.Path, err)
		}
	}
	span.End(u.result.Err)

	u.result.Sealed = sealedClasses(fs, u.tree, u.unit)
	u.result.Diagnostics = convertDiagnostics(fs, u.bag)
}

func finish(res *Result, units []*unitState, timer *observ.Timer, opts *Options) *Result {
	res.Files = make([]FileResult, len(units))
	for i, u := range units {
		if u.loadErr != nil {
			u.result.Diagnostics = convertDiagnostics(nil, u.bag)
		}
		ev := Event{
			File:       u.result.Path,
			Stage:      StageSealed,
			Status:     StatusDone,
			Sealed:     len(u.result.Sealed),
			Inheritors: u.result.InheritorCount(),
		}
		switch {
		case u.cached:
			ev.Status = StatusCached
		case u.result.Failed():
			ev.Status, ev.Err = StatusError, errors.New(u.result.Err)
		case u.result.HasErrors():
			ev.Status, ev.Err = StatusError, errors.New("error diagnostics")
		}
		emit(opts.Progress, ev)
		if opts.Timings && !u.cached {
			report := u.timer.Report()
			u.result.Timing = &report
		}
		res.Files[i] = u.result
	}
	res.Timing = timer.Report()
	return res
}
