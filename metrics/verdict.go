package metrics

import (
	"fmt"
	"strings"

	"imagecompare/types"

	"github.com/samber/lo"
)

// Direction says which side of the threshold a score must fall on
type Direction int

const (
	// Above requires score > threshold
	Above Direction = iota
	// Below requires score < threshold
	Below
)

func (d Direction) String() string {
	if d == Below {
		return "<"
	}
	return ">"
}

// Rule is one conjunct of the verdict
type Rule struct {
	Metric    string
	Direction Direction
	Threshold float64
}

// Passes applies the strict comparison. NaN never passes.
func (r Rule) Passes(value float64) bool {
	if r.Direction == Below {
		return value < r.Threshold
	}
	return value > r.Threshold
}

func (r Rule) String() string {
	return fmt.Sprintf("%s %s %g", r.Metric, r.Direction, r.Threshold)
}

// Rules is the full verdict: every rule must pass
type Rules []Rule

// DefaultRules returns the fixed verdict thresholds. The template and hash
// scores are reported but take no part in the verdict.
func DefaultRules() Rules {
	return Rules{
		{Metric: types.MetricHistogram, Direction: Above, Threshold: 0.9},
		{Metric: types.MetricSSIM, Direction: Above, Threshold: 0.5},
		{Metric: types.MetricMSE, Direction: Below, Threshold: 200},
		{Metric: types.MetricMAE, Direction: Below, Threshold: 200},
	}
}

// Evaluate returns whether all rules pass and the rules that did not
func (rs Rules) Evaluate(s types.Scores) (bool, []string) {
	failed := []string{}
	for _, r := range rs {
		value, ok := s.Value(r.Metric)
		if !ok || !r.Passes(value) {
			failed = append(failed, r.String())
		}
	}
	return len(failed) == 0, failed
}

// Similar is Evaluate without the failure details
func (rs Rules) Similar(s types.Scores) bool {
	similar, _ := rs.Evaluate(s)
	return similar
}

// Override returns a copy of the rules with the named metric's threshold replaced
func (rs Rules) Override(metric string, threshold float64) (Rules, error) {
	out := make(Rules, len(rs))
	copy(out, rs)

	for i := range out {
		if out[i].Metric == metric {
			out[i].Threshold = threshold
			return out, nil
		}
	}

	names := lo.Map(rs, func(r Rule, _ int) string { return r.Metric })
	return nil, fmt.Errorf("%w %q, expected one of: %s", ErrUnknownMetric, metric, strings.Join(names, ", "))
}
