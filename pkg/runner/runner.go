package runner

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/yaklabco/formulint/internal/logging"
	"github.com/yaklabco/formulint/pkg/check"
	"github.com/yaklabco/formulint/pkg/fsutil"
)

// Runner checks formula files with a check.Engine.
type Runner struct {
	// Engine checks the formulas of each file.
	Engine *check.Engine
}

// New creates a new Runner with the given engine.
func New(engine *check.Engine) *Runner {
	return &Runner{Engine: engine}
}

// Run discovers files under opts.Paths and checks them concurrently.
// Outcomes are returned in discovery order regardless of which worker
// finished first. A file that cannot be read is recorded on its outcome
// and does not stop the run.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	logger := logging.FromContext(ctx)
	logger.Debug("discovered files", logging.FieldFilesDiscovered, len(files))

	result := &Result{Files: make([]FileOutcome, 0, len(files))}
	result.Stats.FilesDiscovered = len(files)

	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(files))

	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	type job struct {
		index int
		path  string
	}

	workCh := make(chan job)
	outcomes := make([]FileOutcome, len(files))
	done := make([]bool, len(files))

	var wg sync.WaitGroup
	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range workCh {
				outcomes[j.index] = r.checkFile(ctx, workDir, j.path, opts.MaxFileSize)
				done[j.index] = true
			}
		}()
	}

feed:
	for i, path := range files {
		select {
		case <-ctx.Done():
			break feed
		case workCh <- job{index: i, path: path}:
		}
	}
	close(workCh)
	wg.Wait()

	for i := range outcomes {
		if done[i] {
			result.accumulate(outcomes[i])
		}
	}

	logger.Debug("run complete",
		logging.FieldFilesChecked, result.Stats.FilesChecked,
		logging.FieldFilesWithIssues, result.Stats.FilesWithIssues,
		logging.FieldDiagnosticsTotal, result.Stats.Diagnostics,
	)

	if ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}

	return result, nil
}

func (r *Runner) checkFile(ctx context.Context, workDir, path string, maxSize int64) FileOutcome {
	outcome := FileOutcome{Path: path, DisplayPath: displayPath(workDir, path)}

	content, info, err := fsutil.ReadFile(ctx, path, maxSize)
	if err != nil {
		outcome.Error = err
		return outcome
	}
	outcome.Info = info

	res, err := r.Engine.CheckFile(ctx, outcome.DisplayPath, content)
	if err != nil {
		outcome.Error = err
		return outcome
	}
	outcome.Result = res

	return outcome
}

func displayPath(workDir, path string) string {
	rel, err := filepath.Rel(workDir, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return rel
}
