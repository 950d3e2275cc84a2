package metrics

import (
	"fmt"

	"imagecompare/imageprocessor"
	"imagecompare/types"

	"github.com/corona10/goimagehash"
	"gocv.io/x/gocv"
)

// HashSimilarity maps a Hamming distance to a score as 1 - distance/bits².
// The squared divisor is kept from the tool this one replaces, so a 64-bit
// hash never scores below 1 - 64/4096.
func HashSimilarity(distance, bits int) float64 {
	if bits <= 0 {
		return 0
	}
	return 1.0 - float64(distance)/float64(bits*bits)
}

// ImageHashSimilarity decodes both files independently of the loaded grids,
// hashes them and returns the similarity score and Hamming distance
func ImageHashSimilarity(path1, path2 string) (float64, int, error) {
	h1, err := imageprocessor.AverageHashFromFile(path1)
	if err != nil {
		return 0, 0, fmt.Errorf("%s: %w", types.MetricHash, err)
	}
	h2, err := imageprocessor.AverageHashFromFile(path2)
	if err != nil {
		return 0, 0, fmt.Errorf("%s: %w", types.MetricHash, err)
	}
	return hashScore(h1, h2)
}

// GridHashSimilarity hashes two already decoded grids
func GridHashSimilarity(a, b gocv.Mat) (float64, int, error) {
	h1, err := imageprocessor.ComputeAverageHash(a)
	if err != nil {
		return 0, 0, fmt.Errorf("%s: %w", types.MetricHash, err)
	}
	h2, err := imageprocessor.ComputeAverageHash(b)
	if err != nil {
		return 0, 0, fmt.Errorf("%s: %w", types.MetricHash, err)
	}
	return hashScore(h1, h2)
}

func hashScore(h1, h2 *goimagehash.ImageHash) (float64, int, error) {
	distance, err := imageprocessor.CalculateHammingDistance(h1, h2)
	if err != nil {
		return 0, 0, fmt.Errorf("%s: %w", types.MetricHash, err)
	}
	return HashSimilarity(distance, h1.Bits()), distance, nil
}
