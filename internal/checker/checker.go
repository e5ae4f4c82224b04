// Package checker runs the instance check pipeline: resolve the
// instance, enumerate its databases, render the report, write it out.
package checker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shoestringdba/Check-SqlInstance/internal/provider"
	"github.com/shoestringdba/Check-SqlInstance/internal/reporter"
	"github.com/shoestringdba/Check-SqlInstance/pkg/config"
)

// OpenFunc produces a connected provider. Connection errors belong to
// the guarded pipeline, so opening is deferred until Run.
type OpenFunc func() (provider.Provider, error)

// Checker executes one check run.
type Checker struct {
	open OpenFunc
	cfg  *config.Config
	now  func() time.Time
}

// New creates a checker for one run.
func New(open OpenFunc, cfg *config.Config) *Checker {
	return &Checker{
		open: open,
		cfg:  cfg,
		now:  time.Now,
	}
}

// Run executes the pipeline inside a single error boundary. Any
// failure between connecting and writing the report is converted into
// one timestamped line in the error file; the previous report file is
// left untouched. Only an unwritable error file escapes as an error.
func (c *Checker) Run(ctx context.Context) error {
	err := c.check(ctx)
	if err == nil {
		return nil
	}

	slog.Warn("check failed", slog.String("instance", c.cfg.Instance), slog.String("error", err.Error()))
	if werr := reporter.WriteError(c.cfg.ErrorFile, c.now(), err); werr != nil {
		return fmt.Errorf("record failure: %w", werr)
	}
	return nil
}

func (c *Checker) check(ctx context.Context) error {
	p, err := c.open()
	if err != nil {
		return err
	}
	defer p.Close()

	inst, err := p.ResolveInstance(ctx, c.cfg.Instance)
	if err != nil {
		return err
	}

	dbs, err := p.ListDatabases(ctx, inst)
	if err != nil {
		return err
	}

	// The report is rendered fully in memory before touching the
	// output file, so a failed run never leaves a partial report.
	rendered := reporter.Render(inst, dbs, c.now())
	if err := reporter.WriteReport(c.cfg.OutputFile, rendered); err != nil {
		return err
	}

	slog.Debug("report written",
		slog.String("instance", c.cfg.Instance),
		slog.String("output", c.cfg.OutputFile),
		slog.Int("databases", len(dbs)))
	return nil
}
