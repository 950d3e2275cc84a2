package metrics

import (
	"context"
	"time"

	"imagecompare/imageprocessor"
	"imagecompare/logging"
	"imagecompare/types"

	"gocv.io/x/gocv"
	"golang.org/x/sync/errgroup"
)

// Input is one image pair. The Mats stay owned by the caller.
type Input struct {
	PathA  string
	PathB  string
	ImageA gocv.Mat
	ImageB gocv.Mat
}

// Options controls an Engine
type Options struct {
	// Rules decides the verdict; nil means DefaultRules
	Rules Rules

	// HashFromGrid hashes the decoded grids instead of re-decoding the files
	HashFromGrid bool

	// Workers bounds how many metrics run at once; <= 0 runs all of them together
	Workers int
}

// Engine runs the six metrics over an image pair and applies the verdict
type Engine struct {
	rules        Rules
	hashFromGrid bool
	workers      int
}

// NewEngine creates an Engine with the given options
func NewEngine(opts Options) *Engine {
	rules := opts.Rules
	if rules == nil {
		rules = DefaultRules()
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = 6
	}
	return &Engine{rules: rules, hashFromGrid: opts.HashFromGrid, workers: workers}
}

// Rules returns the verdict rules in use
func (e *Engine) Rules() Rules {
	return e.rules
}

// Compare computes every metric concurrently. The first failing metric aborts
// the comparison and no partial result is returned.
func (e *Engine) Compare(ctx context.Context, in Input) (types.Comparison, error) {
	if err := checkSameShape("compare", in.ImageA, in.ImageB); err != nil {
		return types.Comparison{}, err
	}

	var scores types.Scores

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)

	run := func(name string, fn func() (float64, error), dst *float64) {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			start := time.Now()
			v, err := fn()
			if err != nil {
				logging.DebugLog("%s failed: %v", name, err)
				return err
			}
			logging.LogMetric(name, v, time.Since(start))
			*dst = v
			return nil
		})
	}

	a, b := in.ImageA, in.ImageB
	run(types.MetricHistogram, func() (float64, error) { return HistogramCorrelation(a, b) }, &scores.Histogram)
	run(types.MetricSSIM, func() (float64, error) { return SSIM(a, b) }, &scores.SSIM)
	run(types.MetricMSE, func() (float64, error) { return MSE(a, b) }, &scores.MSE)
	run(types.MetricMAE, func() (float64, error) { return MAE(a, b) }, &scores.MAE)
	run(types.MetricTemplate, func() (float64, error) { return TemplateMatch(a, b) }, &scores.Template)
	run(types.MetricHash, func() (float64, error) {
		var (
			score    float64
			distance int
			err      error
		)
		if e.hashFromGrid {
			score, distance, err = GridHashSimilarity(a, b)
		} else {
			score, distance, err = ImageHashSimilarity(in.PathA, in.PathB)
		}
		scores.HashDistance = distance
		return score, err
	}, &scores.Hash)

	if err := g.Wait(); err != nil {
		return types.Comparison{}, err
	}

	similar, failed := e.rules.Evaluate(scores)
	logging.DebugLog("Verdict for %s vs %s: similar=%v failed=%v", in.PathA, in.PathB, similar, failed)

	return types.Comparison{
		ImageA:      imageprocessor.Describe(in.PathA, a),
		ImageB:      imageprocessor.Describe(in.PathB, b),
		Scores:      scores,
		Similar:     similar,
		FailedRules: failed,
	}, nil
}
