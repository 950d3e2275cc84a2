package metrics

import (
	"bytes"
	"fmt"

	"imagecompare/types"

	"gocv.io/x/gocv"
)

// TemplateMatch slides tmpl over img with normalized cross-correlation
// (TM_CCOEFF_NORMED: each window and the template are made zero-mean per
// channel and normalized by their joint energy) and returns the best score.
//
// When both grids have the same size there is only one offset, so the result
// is simply the correlation coefficient of the two images rather than a
// search. In that case a flat (zero-variance) input has no defined
// correlation and the result is 1 for byte-identical grids and 0 otherwise.
func TemplateMatch(img, tmpl gocv.Mat) (float64, error) {
	if img.Empty() || tmpl.Empty() {
		return 0, fmt.Errorf("%s: %w", types.MetricTemplate, ErrEmptyImage)
	}
	if img.Channels() != tmpl.Channels() {
		return 0, fmt.Errorf("%s: %w: %s vs %s", types.MetricTemplate, ErrShapeMismatch, shapeString(img), shapeString(tmpl))
	}
	if tmpl.Rows() > img.Rows() || tmpl.Cols() > img.Cols() {
		return 0, fmt.Errorf("%s: %w: %s vs %s", types.MetricTemplate, ErrTemplateTooLarge, shapeString(img), shapeString(tmpl))
	}

	imgBytes, tmplBytes := img.ToBytes(), tmpl.ToBytes()
	if tmpl.Rows() == img.Rows() && tmpl.Cols() == img.Cols() &&
		(isFlat(imgBytes, img.Channels()) || isFlat(tmplBytes, tmpl.Channels())) {
		if bytes.Equal(imgBytes, tmplBytes) {
			return 1, nil
		}
		return 0, nil
	}

	result := gocv.NewMat()
	defer result.Close()
	mask := gocv.NewMat()
	defer mask.Close()

	gocv.MatchTemplate(img, tmpl, &result, gocv.TmCcoeffNormed, mask)
	_, maxVal, _, _ := gocv.MinMaxLoc(result)

	return clamp(float64(maxVal), -1, 1), nil
}

// isFlat reports whether every pixel of an interleaved 8-bit buffer is the same
func isFlat(data []byte, channels int) bool {
	if len(data) < channels {
		return true
	}
	first := data[:channels]
	for i := channels; i+channels <= len(data); i += channels {
		if !bytes.Equal(data[i:i+channels], first) {
			return false
		}
	}
	return true
}
