package metrics

import (
	"errors"
	"fmt"

	"gocv.io/x/gocv"
)

var (
	// ErrShapeMismatch is returned by pairwise metrics when the two grids
	// differ in height, width or channel count.
	ErrShapeMismatch = errors.New("image shapes differ")

	// ErrEmptyImage is returned when a metric receives an empty Mat.
	ErrEmptyImage = errors.New("empty image")

	// ErrImageTooSmall is returned by SSIM for images smaller than its window.
	ErrImageTooSmall = errors.New("image smaller than SSIM window")

	// ErrTemplateTooLarge is returned when the template does not fit in the image.
	ErrTemplateTooLarge = errors.New("template larger than image")

	// ErrUnknownMetric is returned for rule overrides naming no verdict metric.
	ErrUnknownMetric = errors.New("unknown metric")
)

func shapeString(m gocv.Mat) string {
	return fmt.Sprintf("%dx%dx%d", m.Rows(), m.Cols(), m.Channels())
}

// checkSameShape fails fast unless both grids are non-empty with identical dimensions
func checkSameShape(metric string, a, b gocv.Mat) error {
	if a.Empty() || b.Empty() {
		return fmt.Errorf("%s: %w", metric, ErrEmptyImage)
	}
	if a.Rows() != b.Rows() || a.Cols() != b.Cols() || a.Channels() != b.Channels() {
		return fmt.Errorf("%s: %w: %s vs %s", metric, ErrShapeMismatch, shapeString(a), shapeString(b))
	}
	return nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// meanAll averages a Scalar mean across the Mat's channels
func meanAll(m gocv.Mat) float64 {
	s := m.Mean()
	vals := []float64{s.Val1, s.Val2, s.Val3, s.Val4}
	n := m.Channels()
	var sum float64
	for i := 0; i < n && i < len(vals); i++ {
		sum += vals[i]
	}
	return sum / float64(n)
}
