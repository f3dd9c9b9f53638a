// Package vcover runs the UCDB analysis tool and captures the text reports
// the coverage model is built from.
package vcover

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/zjy-dev/covmodel/internal/config"
	"github.com/zjy-dev/covmodel/internal/coverage"
	"github.com/zjy-dev/covmodel/internal/exec"
	"github.com/zjy-dev/covmodel/internal/logger"
)

// ErrNoDatabase is returned when none of the configured databases exist.
var ErrNoDatabase = errors.New("no coverage database found; run tests with coverage first")

// ToolError reports a vcover invocation that exited non-zero.
type ToolError struct {
	Args     []string
	ExitCode int
	Stderr   string
}

func (e *ToolError) Error() string {
	msg := fmt.Sprintf("vcover %s exited with code %d", strings.Join(e.Args, " "), e.ExitCode)
	if s := strings.TrimSpace(e.Stderr); s != "" {
		msg += ": " + s
	}
	return msg
}

// Tool invokes vcover through an exec.Executor.
type Tool struct {
	executor    exec.Executor
	path        string
	designUnit  string
	timeout     time.Duration
	concurrency int
}

// New creates a Tool from the vcover section of the configuration.
func New(e exec.Executor, cfg config.VcoverConfig) *Tool {
	concurrency := cfg.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}
	return &Tool{
		executor:    e,
		path:        cfg.Path,
		designUnit:  cfg.DesignUnit,
		timeout:     time.Duration(cfg.Timeout) * time.Second,
		concurrency: concurrency,
	}
}

// LocateDatabase returns the first of names that exists under dir.
func LocateDatabase(dir string, names []string) (string, error) {
	for _, name := range names {
		path := filepath.Join(dir, name)
		info, err := os.Stat(path)
		if err == nil && !info.IsDir() {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w (looked for %s in %s)", ErrNoDatabase, strings.Join(names, ", "), dir)
}

// Report runs "vcover report <args...> <db>" and returns its stdout.
func (t *Tool) Report(ctx context.Context, db string, args ...string) (string, error) {
	full := append([]string{"report"}, args...)
	full = append(full, db)

	logger.Debug("running %s %s", t.path, strings.Join(full, " "))
	res, err := t.executor.Run(ctx, t.path, full...)
	if err != nil {
		return "", fmt.Errorf("failed to run vcover: %w", err)
	}
	if res.ExitCode != 0 {
		return "", &ToolError{Args: full, ExitCode: res.ExitCode, Stderr: res.Stderr}
	}
	return res.Stdout, nil
}

// SummaryArgs and the other *Args helpers return the report options for
// each block the model is built from.
func (t *Tool) SummaryArgs() []string {
	return []string{"-summary"}
}

func (t *Tool) DesignUnitArgs() []string {
	return []string{"-summary", "-du=" + t.designUnit}
}

func (t *Tool) ZerosArgs() []string {
	return []string{"-zeros", "-details", "-du=" + t.designUnit}
}

func (t *Tool) FunctionalArgs() []string {
	return []string{"-cvg", "-details"}
}

// Collect captures all four report blocks for db. The invocations run
// concurrently and the whole collection is bounded by the configured
// timeout; the first failure cancels the rest.
func (t *Tool) Collect(ctx context.Context, db string) (coverage.Reports, error) {
	if t.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}

	var reports coverage.Reports
	jobs := []struct {
		args []string
		dst  *string
	}{
		{t.SummaryArgs(), &reports.Summary},
		{t.DesignUnitArgs(), &reports.DesignUnit},
		{t.ZerosArgs(), &reports.Zeros},
		{t.FunctionalArgs(), &reports.Functional},
	}

	p := pool.New().
		WithMaxGoroutines(t.concurrency).
		WithContext(ctx).
		WithCancelOnError().
		WithFirstError()
	for _, job := range jobs {
		job := job // go 1.21: loop variable is shared across iterations
		p.Go(func(ctx context.Context) error {
			out, err := t.Report(ctx, db, job.args...)
			if err != nil {
				return err
			}
			*job.dst = out
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return coverage.Reports{}, err
	}

	logger.Debug("collected reports from %s (%d/%d/%d/%d bytes)", db,
		len(reports.Summary), len(reports.DesignUnit), len(reports.Zeros), len(reports.Functional))
	return reports, nil
}
