package imageprocessor

import (
	"fmt"

	"imagecompare/logging"

	"gocv.io/x/gocv"
)

// StandardImageLoader handles common image formats like JPEG, PNG, etc.
type StandardImageLoader struct {
	BaseImageLoader
	fallback *GoImageLoader
}

// NewStandardImageLoader creates a new loader for standard image formats
func NewStandardImageLoader() *StandardImageLoader {
	return &StandardImageLoader{
		BaseImageLoader: BaseImageLoader{
			SupportedFormats: []FormatType{
				FormatJPEG,
				FormatPNG,
				FormatBMP,
				FormatTIFF,
			},
		},
		fallback: NewGoImageLoader(),
	}
}

// LoadImage loads a standard image format with OpenCV, falling back to the
// Go decoders when OpenCV returns nothing
func (l *StandardImageLoader) LoadImage(path string) (gocv.Mat, error) {
	img, err := l.DefaultLoadImage(path)
	if err == nil {
		return img, nil
	}
	img.Close()

	logging.LogInfo("OpenCV could not decode %s, trying Go image decoders", path)
	return l.fallback.LoadImage(path)
}

// GoImageLoader decodes with Go's image packages (plus golang.org/x/image)
// and converts the result to a BGR Mat. OpenCV builds without GIF or WebP
// support rely on it.
type GoImageLoader struct {
	BaseImageLoader
}

// NewGoImageLoader creates a loader backed by the Go image decoders
func NewGoImageLoader() *GoImageLoader {
	return &GoImageLoader{
		BaseImageLoader: BaseImageLoader{
			SupportedFormats: []FormatType{
				FormatJPEG,
				FormatPNG,
				FormatGIF,
				FormatBMP,
				FormatTIFF,
				FormatWEBP,
			},
		},
	}
}

// LoadImage decodes the file and converts it to a Mat
func (l *GoImageLoader) LoadImage(path string) (gocv.Mat, error) {
	decoded, err := tryGoImagePackages(path)
	if err != nil {
		return gocv.NewMat(), fmt.Errorf("failed to decode image %s: %w", path, err)
	}

	mat, err := gocvMatFromGoImage(decoded)
	if err != nil {
		return mat, fmt.Errorf("failed to convert image %s: %w", path, err)
	}
	return mat, nil
}
