// Package imageprocessor loads raster images into BGR pixel grids and computes
// the average-hash signatures used by the hash metric.
package imageprocessor

import "gocv.io/x/gocv"

// ImageLoader is the interface that all image loaders must implement
type ImageLoader interface {
	// CanLoad checks if the loader can handle the given file
	CanLoad(path string) bool

	// LoadImage loads and returns the image as a CV_8UC3 Mat in BGR order
	LoadImage(path string) (gocv.Mat, error)
}
