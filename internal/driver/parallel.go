package driver

import (
	"bytes"
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"ember/internal/diag"
	"ember/internal/project"
	"ember/internal/source"
	"ember/internal/trace"
)

// FileResult is the outcome of one script of a directory run.
type FileResult struct {
	Path   string
	Result *RunResult // nil when the file could not be loaded
	Bag    *diag.Bag
	// Output is everything the script printed. Scripts run concurrently,
	// so output is buffered per file instead of interleaved.
	Output  string
	Elapsed time.Duration
}

// Ran reports whether the script was attempted; entries skipped after
// cancellation carry only Path.
func (r FileResult) Ran() bool { return r.Bag != nil }

// ListScripts returns the *.em files under dir in sorted order, with
// forward slashes.
func ListScripts(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, project.ScriptExt) {
			files = append(files, filepath.ToSlash(path))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// RunDir runs every script under dir, each on its own machine, with at most
// opts.Jobs scripts in flight. Results keep the ListScripts order.
// Script failures are reported in the per-file bags; the returned error is
// for listing failures and cancellation.
func RunDir(ctx context.Context, dir string, opts Options) (*source.FileSet, []FileResult, error) {
	files, err := ListScripts(dir)
	if err != nil {
		return nil, nil, err
	}
	fileSet := source.NewFileSet()
	fileSet.SetBaseDir(dir)
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	// FileSet не потокобезопасен, поэтому грузим всё заранее
	fileIDs := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error)
	for _, path := range files {
		id, loadErr := fileSet.Load(path)
		if loadErr != nil {
			loadErrors[path] = loadErr
			continue
		}
		fileIDs[path] = id
	}

	for _, path := range files {
		opts.emit(ctx, Event{File: path, Stage: StageLex, Status: StatusQueued})
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	ctx, span := trace.Start(ctx, trace.ScopeDriver, "run-dir")
	span.WithExtra("files", strconv.Itoa(len(files))).WithExtra("jobs", strconv.Itoa(jobs))

	// индексы уникальны для каждой горутины, мьютекс не нужен.
	// Path заполнен заранее: после отмены у неотработавших файлов Bag == nil
	results := make([]FileResult, len(files))
	for i, path := range files {
		results[i].Path = path
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if loadErr, failed := loadErrors[path]; failed {
				bag := diag.NewBag(opts.MaxDiagnostics)
				bag.Add(diag.FromError(loadErr))
				results[i] = FileResult{Path: path, Bag: bag}
				opts.emit(gctx, Event{File: path, Stage: StageLex, Status: StatusError, Err: loadErr})
				return nil
			}

			fctx, fspan := trace.Start(gctx, trace.ScopeFile, "file")
			fspan.WithExtra("path", path)
			var out bytes.Buffer
			fileOpts := opts
			fileOpts.Out = &out
			started := time.Now()
			res := RunFile(fctx, fileSet, fileSet.Get(fileIDs[path]), fileOpts)
			elapsed := time.Since(started)

			status := StatusDone
			if res.Failed() {
				status = StatusError
			}
			fspan.End(string(status))
			results[i] = FileResult{Path: path, Result: res, Bag: res.Bag, Output: out.String(), Elapsed: elapsed}
			return nil
		})
	}

	err = g.Wait()
	span.End("")
	return fileSet, results, err
}

// Failed counts results with error diagnostics.
func Failed(results []FileResult) int {
	n := 0
	for _, r := range results {
		if r.Bag != nil && r.Bag.HasErrors() {
			n++
		}
	}
	return n
}
