package imageprocessor

import (
	"fmt"
	"image"

	"github.com/corona10/goimagehash"
	"github.com/disintegration/imaging"
	"gocv.io/x/gocv"
)

// HashSize is the side of the thumbnail an average hash is computed from
const HashSize = 8

// ComputeAverageHash calculates the average hash of an already decoded grid
func ComputeAverageHash(img gocv.Mat) (*goimagehash.ImageHash, error) {
	if img.Empty() {
		return nil, fmt.Errorf("cannot compute hash for empty image")
	}

	gray := gocv.NewMat()
	defer gray.Close()

	if img.Channels() != 1 {
		gocv.CvtColor(img, &gray, gocv.ColorBGRToGray)
	} else {
		img.CopyTo(&gray)
	}

	resized := gocv.NewMat()
	defer resized.Close()

	gocv.Resize(gray, &resized, image.Point{X: HashSize, Y: HashSize}, 0, 0, gocv.InterpolationArea)

	pixels := make([]uint8, 0, HashSize*HashSize)
	for y := 0; y < resized.Rows(); y++ {
		for x := 0; x < resized.Cols(); x++ {
			pixels = append(pixels, resized.GetUCharAt(y, x))
		}
	}

	return goimagehash.NewImageHash(averageHashBits(pixels), goimagehash.AHash), nil
}

// AverageHashFromFile decodes the file on its own (independently of the
// OpenCV loaders) and computes its average hash. The file is closed before
// returning, whether or not decoding succeeded.
func AverageHashFromFile(path string) (*goimagehash.ImageHash, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	thumb := imaging.Resize(imaging.Grayscale(img), HashSize, HashSize, imaging.Lanczos)

	pixels := make([]uint8, 0, HashSize*HashSize)
	for y := 0; y < HashSize; y++ {
		row := thumb.Pix[y*thumb.Stride:]
		for x := 0; x < HashSize; x++ {
			pixels = append(pixels, row[x*4])
		}
	}

	return goimagehash.NewImageHash(averageHashBits(pixels), goimagehash.AHash), nil
}

// averageHashBits sets one bit per pixel, most significant bit first, for
// every pixel at or above the mean
func averageHashBits(pixels []uint8) uint64 {
	if len(pixels) == 0 {
		return 0
	}

	var sum uint64
	for _, p := range pixels {
		sum += uint64(p)
	}
	mean := float64(sum) / float64(len(pixels))

	var hash uint64
	for _, p := range pixels {
		hash <<= 1
		if float64(p) >= mean {
			hash |= 1
		}
	}
	return hash
}

// CalculateHammingDistance returns the number of differing bits between two hashes
func CalculateHammingDistance(hash1, hash2 *goimagehash.ImageHash) (int, error) {
	if hash1 == nil || hash2 == nil {
		return 0, fmt.Errorf("cannot compare missing hash")
	}
	return hash1.Distance(hash2)
}
