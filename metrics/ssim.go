package metrics

import (
	"fmt"
	"image"

	"imagecompare/types"

	"gocv.io/x/gocv"
)

// SSIM parameters. The window is a 7x7 uniform filter with sample covariance,
// matching the common scikit-image defaults for 8-bit data.
const (
	SSIMWindow    = 7
	ssimK1        = 0.01
	ssimK2        = 0.03
	ssimDataRange = 255.0
)

// SSIM computes the mean structural similarity of the grayscale versions of
// two grids. Statistics are taken over every 7x7 window and averaged over the
// positions where the window lies fully inside the image. Images with a side
// shorter than the window are rejected with ErrImageTooSmall.
func SSIM(a, b gocv.Mat) (float64, error) {
	if err := checkSameShape(types.MetricSSIM, a, b); err != nil {
		return 0, err
	}
	if a.Rows() < SSIMWindow || a.Cols() < SSIMWindow {
		return 0, fmt.Errorf("%s: %w: %s", types.MetricSSIM, ErrImageTooSmall, shapeString(a))
	}

	x := grayFloat(a)
	defer x.Close()
	y := grayFloat(b)
	defer y.Close()

	xx, yy, xy := gocv.NewMat(), gocv.NewMat(), gocv.NewMat()
	defer xx.Close()
	defer yy.Close()
	defer xy.Close()
	gocv.Multiply(x, x, &xx)
	gocv.Multiply(y, y, &yy)
	gocv.Multiply(x, y, &xy)

	filtered := make([][]float64, 0, 5)
	for _, m := range []gocv.Mat{x, y, xx, yy, xy} {
		mean := gocv.NewMat()
		defer mean.Close()
		gocv.Blur(m, &mean, image.Pt(SSIMWindow, SSIMWindow))

		data, err := mean.DataPtrFloat64()
		if err != nil {
			return 0, fmt.Errorf("%s: reading filtered image: %w", types.MetricSSIM, err)
		}
		filtered = append(filtered, data)
	}
	ux, uy, uxx, uyy, uxy := filtered[0], filtered[1], filtered[2], filtered[3], filtered[4]

	n := float64(SSIMWindow * SSIMWindow)
	covNorm := n / (n - 1)
	c1 := (ssimK1 * ssimDataRange) * (ssimK1 * ssimDataRange)
	c2 := (ssimK2 * ssimDataRange) * (ssimK2 * ssimDataRange)

	rows, cols := a.Rows(), a.Cols()
	pad := (SSIMWindow - 1) / 2

	var sum float64
	var count int
	for r := pad; r < rows-pad; r++ {
		for c := pad; c < cols-pad; c++ {
			i := r*cols + c
			vx := covNorm * (uxx[i] - ux[i]*ux[i])
			vy := covNorm * (uyy[i] - uy[i]*uy[i])
			vxy := covNorm * (uxy[i] - ux[i]*uy[i])

			num := (2*ux[i]*uy[i] + c1) * (2*vxy + c2)
			den := (ux[i]*ux[i] + uy[i]*uy[i] + c1) * (vx + vy + c2)
			sum += num / den
			count++
		}
	}

	return clamp(sum/float64(count), -1, 1), nil
}

// grayFloat converts a BGR grid to a single-channel float64 luminance Mat
func grayFloat(img gocv.Mat) gocv.Mat {
	gray := gocv.NewMat()
	defer gray.Close()

	if img.Channels() != 1 {
		gocv.CvtColor(img, &gray, gocv.ColorBGRToGray)
	} else {
		img.CopyTo(&gray)
	}

	out := gocv.NewMat()
	gray.ConvertTo(&out, gocv.MatTypeCV64F)
	return out
}
