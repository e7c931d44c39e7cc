// Package verify replays submitted runs and decides whether to trust them.
package verify

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/boulder-daily/internal/games/boulder/engine"
	"github.com/vovakirdan/boulder-daily/internal/storage"
	"github.com/vovakirdan/boulder-daily/internal/submission"
)

// Defaults applied when a Verifier field is zero.
const (
	DefaultMaxTicks        = 20000
	DefaultMinTickInterval = 100 * time.Millisecond
)

// RunSaver persists verified runs. *storage.Store implements it.
type RunSaver interface {
	SaveRun(ctx context.Context, r *storage.Run) (string, error)
}

var _ RunSaver = (*storage.Store)(nil)

// Report is the outcome of checking one submission.
type Report struct {
	Submission submission.Submission
	Verdict    engine.Verdict
	RunID      string

	// Suspicious marks a run whose replay matched but whose claimed time is
	// not plausible for its tick count.
	Suspicious bool
}

// Valid reports whether the replay reproduced the claim.
func (r Report) Valid() bool { return r.Verdict.Valid }

// Trusted reports whether the run can be ranked.
func (r Report) Trusted() bool { return r.Verdict.Valid && !r.Suspicious }

// Verifier checks submissions by replay. The zero value is usable.
type Verifier struct {
	// MaxTicks caps history length; longer histories are malformed.
	MaxTicks int

	// MinTickInterval is the fastest plausible real tick period. Claimed
	// times below ticks*MinTickInterval mark a run suspicious.
	MinTickInterval time.Duration

	// Workers bounds CheckAll concurrency. Zero means GOMAXPROCS.
	Workers int

	Logger *log.Logger

	// Saver, when set, stores every report.
	Saver RunSaver
}

func (v *Verifier) logger() *log.Logger {
	if v.Logger != nil {
		return v.Logger
	}
	return log.Default()
}

func (v *Verifier) maxTicks() int {
	if v.MaxTicks > 0 {
		return v.MaxTicks
	}
	return DefaultMaxTicks
}

func (v *Verifier) minTickInterval() time.Duration {
	if v.MinTickInterval > 0 {
		return v.MinTickInterval
	}
	return DefaultMinTickInterval
}

func (v *Verifier) workers() int {
	if v.Workers > 0 {
		return v.Workers
	}
	return runtime.GOMAXPROCS(0)
}

// Check replays one submission. A rejected run is a normal Report; the error
// is reserved for cancellation and storage failures.
func (v *Verifier) Check(ctx context.Context, sub submission.Submission) (Report, error) {
	if err := ctx.Err(); err != nil {
		return Report{}, err
	}

	rep := Report{Submission: sub}
	history := sub.Result.History
	if err := engine.ValidateHistory(history, v.maxTicks()); err != nil {
		rep.Verdict = engine.Verdict{Reason: engine.ReasonMalformed, Err: err}
	} else {
		rep.Verdict = engine.Verify(sub.Seed, history, sub.Result.Claim())
	}

	if rep.Verdict.Valid {
		floor := int64(len(history)) * v.minTickInterval().Milliseconds()
		rep.Suspicious = sub.Result.TimeMs < floor
	}

	logger := v.logger().With("seed", sub.Seed, "mode", sub.Mode, "ticks", len(history))
	switch {
	case rep.Verdict.Err != nil:
		logger.Warn("run rejected", "reason", rep.Verdict.Reason, "error", rep.Verdict.Err)
	case !rep.Verdict.Valid:
		logger.Warn("run rejected", "reason", rep.Verdict.Reason,
			"claimed", sub.Result.Score, "replayed", rep.Verdict.Replayed.Score)
	case rep.Suspicious:
		logger.Warn("run suspicious", "timeMs", sub.Result.TimeMs)
	default:
		logger.Debug("run verified", "score", sub.Result.Score)
	}

	if v.Saver != nil {
		id, err := v.Saver.SaveRun(ctx, toRun(rep))
		if err != nil {
			return rep, fmt.Errorf("verify: save run: %w", err)
		}
		rep.RunID = id
	}
	return rep, nil
}

// CheckAll verifies submissions concurrently. Reports come back in input
// order. The first cancellation or storage error stops the batch.
func (v *Verifier) CheckAll(ctx context.Context, subs []submission.Submission) ([]Report, error) {
	reports := make([]Report, len(subs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(v.workers())

	for i, sub := range subs {
		g.Go(func() error {
			rep, err := v.Check(ctx, sub)
			if err != nil {
				return err
			}
			reports[i] = rep
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return reports, err
	}
	return reports, nil
}

// CheckFiles reads and verifies submission files. A file that cannot be
// read or decoded gets a malformed report without a submission and the rest
// of the batch is still checked. Reports come back in path order.
func (v *Verifier) CheckFiles(ctx context.Context, paths []string) ([]Report, error) {
	reports := make([]Report, len(paths))
	subs := make([]submission.Submission, 0, len(paths))
	index := make([]int, 0, len(paths))
	for i, path := range paths {
		sub, err := submission.Read(path)
		if err != nil {
			v.logger().Warn("run rejected", "file", path, "reason", engine.ReasonMalformed, "error", err)
			reports[i] = Report{Verdict: engine.Verdict{Reason: engine.ReasonMalformed, Err: err}}
			continue
		}
		subs = append(subs, sub)
		index = append(index, i)
	}

	checked, err := v.CheckAll(ctx, subs)
	for j, rep := range checked {
		reports[index[j]] = rep
	}
	return reports, err
}

func toRun(rep Report) *storage.Run {
	sub := rep.Submission
	return &storage.Run{
		Mode:        string(sub.Mode),
		Seed:        sub.Seed,
		ServerNonce: sub.ServerNonce,
		Score:       sub.Result.Score,
		Gems:        sub.Result.Gems,
		TimeMs:      sub.Result.TimeMs,
		Won:         sub.Result.Won,
		Ticks:       len(sub.Result.History),
		History:     sub.Result.History,
		Verified:    rep.Verdict.Valid,
		Suspicious:  rep.Suspicious,
		Reason:      string(rep.Verdict.Reason),
	}
}
