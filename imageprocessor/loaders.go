package imageprocessor

import (
	"gocv.io/x/gocv"
)

// BaseImageLoader provides common functionality for all image loaders
type BaseImageLoader struct {
	// Formats this loader can handle
	SupportedFormats []FormatType
}

// CanLoad checks if this loader supports the file's format
func (l *BaseImageLoader) CanLoad(path string) bool {
	format := GetFileFormat(path)

	for _, supported := range l.SupportedFormats {
		if format == supported {
			return fileExists(path)
		}
	}

	return false
}

// DefaultLoadImage reads the file with OpenCV as a 3-channel BGR image.
// Grayscale sources are expanded to three identical channels and alpha is dropped.
func (l *BaseImageLoader) DefaultLoadImage(path string) (gocv.Mat, error) {
	img := gocv.IMRead(path, gocv.IMReadColor)
	if img.Empty() {
		return img, newImageLoadError("failed to load image", path)
	}
	return img, nil
}
