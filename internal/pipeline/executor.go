// Package pipeline executes rename plans against a storage backend.
//
// Execution is strictly sequential in plan order. Transient backend
// errors are retried with exponential backoff; authentication errors
// abort the remainder of the run since every later call would fail the
// same way. Cancellation is checked between items, so an interrupted
// run never leaves a rename half-applied.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/zygboom-max/tv-rename-tool/internal/config"
	"github.com/zygboom-max/tv-rename-tool/internal/logging"
	"github.com/zygboom-max/tv-rename-tool/internal/planner"
	"github.com/zygboom-max/tv-rename-tool/internal/storage"
)

// retryBaseDelay is the first backoff delay; it doubles per attempt.
const retryBaseDelay = time.Second

// Executor applies the matched items of a plan one at a time.
type Executor struct {
	backend    storage.Backend
	log        *logging.Logger
	dryRun     bool
	maxRetries int
	pause      time.Duration

	// OnResult, when set, is called after each attempted item with its
	// 1-based position among the matched items. Not called in dry-run.
	OnResult func(index, total int, item planner.Item)

	sleep func(ctx context.Context, d time.Duration) error
}

func NewExecutor(backend storage.Backend, cfg *config.Config, log *logging.Logger) *Executor {
	if log == nil {
		log = logging.Nop()
	}
	retries := cfg.Options.MaxRetries
	if retries < 0 {
		retries = 0
	}
	pause := time.Duration(cfg.Options.RenamePauseMS) * time.Millisecond
	return &Executor{
		backend:    backend,
		log:        log,
		dryRun:     cfg.Options.DryRun,
		maxRetries: retries,
		pause:      pause,
		sleep:      sleepCtx,
	}
}

// Execute runs the plan and returns the accumulated statistics.
//
// In dry-run mode no backend call is made; matched items count under
// Renamed but keep their status. Otherwise each matched item ends up
// Executed or Failed. The returned error is non-nil only when the run
// was cut short: context cancellation, or an authentication failure
// that makes the remaining calls pointless. Statistics are valid
// either way.
func (e *Executor) Execute(ctx context.Context, plan *planner.Plan) (stats Statistics, err error) {
	stats = Collect(plan)

	if e.dryRun {
		stats.Renamed = plan.Matched()
		e.log.Info("executor", "dry run, no changes made",
			logging.F("dir", plan.Dir),
			logging.F("would_rename", stats.Renamed))
		return stats, nil
	}

	start := time.Now()
	defer func() { stats.RenameDuration = time.Since(start) }()

	total := plan.Matched()
	done := 0
	for i := range plan.Items {
		if cerr := ctx.Err(); cerr != nil {
			return stats, cerr
		}
		item := &plan.Items[i]
		if item.Status != planner.StatusMatched {
			continue
		}
		done++

		rerr := e.renameWithRetry(ctx, plan.Dir, item)
		switch {
		case rerr == nil:
			item.Status = planner.StatusExecuted
			stats.Renamed++
			e.log.Info("executor", "renamed",
				logging.F("dir", plan.Dir),
				logging.F("from", item.Source.Name),
				logging.F("to", item.Target))
		case errors.Is(rerr, context.Canceled) || errors.Is(rerr, context.DeadlineExceeded):
			// Interrupted while waiting to retry; the file was not
			// renamed, so the item stays matched.
			return stats, rerr
		default:
			item.Status = planner.StatusFailed
			item.Err = rerr
			stats.Failed++
			e.log.Error("executor", "rename failed", rerr,
				logging.F("dir", plan.Dir),
				logging.F("file", item.Source.Name))
		}

		if e.OnResult != nil {
			e.OnResult(done, total, *item)
		}

		if rerr != nil && errors.Is(rerr, storage.ErrAuth) {
			return stats, fmt.Errorf("authentication failed, aborting remaining renames: %w", rerr)
		}

		if e.pause > 0 && done < total {
			if serr := e.sleep(ctx, e.pause); serr != nil {
				return stats, serr
			}
		}
	}
	return stats, nil
}

// renameWithRetry attempts one rename, retrying transient failures up
// to maxRetries times. Non-transient errors return immediately. The
// returned error is the last attempt's error, or the context error if
// the backoff wait was interrupted.
func (e *Executor) renameWithRetry(ctx context.Context, dir string, item *planner.Item) error {
	delay := retryBaseDelay
	var err error
	for attempt := 0; attempt <= e.maxRetries; attempt++ {
		if attempt > 0 {
			e.log.Warn("executor", "retrying rename",
				logging.F("file", item.Source.Name),
				logging.F("attempt", attempt),
				logging.F("delay", delay))
			if serr := e.sleep(ctx, delay); serr != nil {
				return serr
			}
			delay *= 2
		}
		err = e.backend.Rename(ctx, dir, item.Source.Name, item.Target)
		if err == nil || !storage.IsTransient(err) {
			return err
		}
	}
	return err
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
