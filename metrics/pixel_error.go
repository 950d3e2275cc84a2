package metrics

import (
	"imagecompare/types"

	"gocv.io/x/gocv"
)

// MSE returns the mean squared per-element difference over every pixel and
// channel. Differences are taken exactly, never wrapped in 8 bits.
func MSE(a, b gocv.Mat) (float64, error) {
	if err := checkSameShape(types.MetricMSE, a, b); err != nil {
		return 0, err
	}

	diff := absDiff(a, b)
	defer diff.Close()

	wide := gocv.NewMat()
	defer wide.Close()
	diff.ConvertTo(&wide, gocv.MatTypeCV64F)

	squared := gocv.NewMat()
	defer squared.Close()
	gocv.Multiply(wide, wide, &squared)

	return meanAll(squared), nil
}

// MAE returns the mean absolute per-element difference over every pixel and channel
func MAE(a, b gocv.Mat) (float64, error) {
	if err := checkSameShape(types.MetricMAE, a, b); err != nil {
		return 0, err
	}

	diff := absDiff(a, b)
	defer diff.Close()

	return meanAll(diff), nil
}

// absDiff is |a-b| per element; for 8-bit inputs this is exact
func absDiff(a, b gocv.Mat) gocv.Mat {
	diff := gocv.NewMat()
	gocv.AbsDiff(a, b, &diff)
	return diff
}
