package metrics

import (
	"imagecompare/types"

	"gocv.io/x/gocv"
)

// HistogramBins is the number of bins per channel of the joint color histogram
const HistogramBins = 8

// HistogramCorrelation compares the joint 8x8x8 color histograms of two grids
// using Pearson correlation. When either histogram has zero variance the
// correlation is undefined; the result is then 1 if both histograms are
// identical and 0 otherwise.
func HistogramCorrelation(a, b gocv.Mat) (float64, error) {
	if err := checkSameShape(types.MetricHistogram, a, b); err != nil {
		return 0, err
	}

	histA := colorHistogram(a)
	defer histA.Close()
	histB := colorHistogram(b)
	defer histB.Close()

	binsA, binsB := histogramBins(histA), histogramBins(histB)
	if isConstant(binsA) || isConstant(binsB) {
		for i := range binsA {
			if binsA[i] != binsB[i] {
				return 0, nil
			}
		}
		return 1, nil
	}

	correl := float64(gocv.CompareHist(histA, histB, gocv.HistCmpCorrel))
	return clamp(correl, -1, 1), nil
}

func colorHistogram(img gocv.Mat) gocv.Mat {
	mask := gocv.NewMat()
	defer mask.Close()

	hist := gocv.NewMat()
	gocv.CalcHist(
		[]gocv.Mat{img},
		[]int{0, 1, 2},
		mask,
		&hist,
		[]int{HistogramBins, HistogramBins, HistogramBins},
		[]float64{0, 256, 0, 256, 0, 256},
		false,
	)
	return hist
}

// histogramBins flattens a 3-D histogram into a vector
func histogramBins(hist gocv.Mat) []float64 {
	bins := make([]float64, 0, HistogramBins*HistogramBins*HistogramBins)
	for i := 0; i < HistogramBins; i++ {
		for j := 0; j < HistogramBins; j++ {
			for k := 0; k < HistogramBins; k++ {
				bins = append(bins, float64(hist.GetFloatAt3(i, j, k)))
			}
		}
	}
	return bins
}

func isConstant(v []float64) bool {
	for _, x := range v[1:] {
		if x != v[0] {
			return false
		}
	}
	return true
}
