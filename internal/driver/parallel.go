package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"fortio.org/safecast"
	"golang.org/x/sync/errgroup"

	"jsrb/internal/pipeline"
)

// DirOptions configures a directory-wide translation run.
type DirOptions struct {
	// Jobs bounds the worker pool; non-positive means GOMAXPROCS.
	Jobs int
	// OutDir, when set, receives outputs mirroring the input layout.
	// Empty writes each output next to its input.
	OutDir string
	// Cache, when non-nil, short-circuits unchanged inputs.
	Cache *DiskCache
	// Progress receives per-file events; nil disables reporting.
	Progress pipeline.ProgressSink
	// Timings attaches a phase timer to every result.
	Timings bool
}

// DirSummary aggregates a directory run.
type DirSummary struct {
	Total  uint32
	Done   uint32
	Cached uint32
	Failed uint32
}

// ListASTFiles returns the sorted *.json files under dir.
func ListASTFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(strings.ToLower(path), ".json") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	// Deterministic order regardless of filesystem iteration.
	sort.Strings(files)
	return files, nil
}

// TranslateDir translates every AST file under dir in parallel. A failed
// file is recorded in its Result and does not stop the others; the
// returned error covers only walk failures and context cancellation.
func (t *Translator) TranslateDir(ctx context.Context, dir string, opts DirOptions) ([]Result, DirSummary, error) {
	files, err := ListASTFiles(dir)
	if err != nil {
		return nil, DirSummary{}, err
	}
	total, err := safecast.Conv[uint32](len(files))
	if err != nil {
		return nil, DirSummary{}, err
	}
	summary := DirSummary{Total: total}
	if len(files) == 0 {
		return nil, summary, nil
	}

	sink := opts.Progress
	if sink == nil {
		sink = pipeline.NopSink{}
	}

	for _, path := range files {
		sink.OnEvent(pipeline.Event{
			File: DisplayPath(path, dir), Stage: pipeline.StageDecode, Status: pipeline.StatusQueued,
		})
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Indexes are unique per goroutine, no mutex needed.
	results := make([]Result, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			display := DisplayPath(path, dir)
			onStage := func(s pipeline.Stage) {
				sink.OnEvent(pipeline.Event{File: display, Stage: s, Status: pipeline.StatusWorking})
			}
			started := time.Now()

			res, err := t.translateFile(path, t.dirOutPath(path, dir, opts.OutDir), opts.Cache, opts.Timings, onStage)
			res.Err = err
			results[i] = res

			evt := pipeline.Event{
				File:    display,
				Stage:   pipeline.StageWrite,
				Status:  pipeline.StatusDone,
				Elapsed: time.Since(started),
			}
			if err != nil {
				evt.Status = pipeline.StatusError
				evt.Err = err
			}
			sink.OnEvent(evt)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, summary, err
	}

	for _, res := range results {
		switch {
		case res.Err != nil:
			summary.Failed++
		case res.Cached:
			summary.Cached++
			summary.Done++
		default:
			summary.Done++
		}
	}
	return results, summary, nil
}

func (t *Translator) dirOutPath(path, dir, outDir string) string {
	if outDir == "" {
		return ""
	}
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		rel = filepath.Base(path)
	}
	return OutputName(filepath.Join(outDir, rel))
}

// DisplayPath renders path relative to base for progress reporting.
func DisplayPath(path, base string) string {
	if rel, err := filepath.Rel(base, path); err == nil && !strings.HasPrefix(rel, "..") {
		return filepath.ToSlash(rel)
	}
	return filepath.ToSlash(path)
}
