package imageprocessor

import (
	"fmt"

	"imagecompare/logging"
	"imagecompare/types"
	"imagecompare/utils"

	"gocv.io/x/gocv"
)

// LoadError reports that an input path could not be turned into a pixel grid
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("cannot load image %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

var defaultRegistry = NewImageLoaderRegistry()

// LoadImage validates the path and decodes it with the matching loader
func LoadImage(path string) (gocv.Mat, error) {
	if err := utils.ValidateImagePath(path); err != nil {
		return gocv.NewMat(), &LoadError{Path: path, Err: err}
	}

	if !IsImageFile(path) {
		logging.DebugLog("Unrecognized extension for %s, letting OpenCV sniff the content", path)
	}

	img, err := defaultRegistry.LoadImage(path)
	if err != nil {
		img.Close()
		return gocv.NewMat(), &LoadError{Path: path, Err: err}
	}
	if img.Empty() || img.Channels() != 3 {
		img.Close()
		return gocv.NewMat(), &LoadError{Path: path, Err: fmt.Errorf("decoded image is not a 3-channel grid")}
	}

	logging.DebugLog("Loaded %s: %dx%d, %d channels", path, img.Cols(), img.Rows(), img.Channels())
	return img, nil
}

// LoadImagePair loads both images. If either fails nothing is returned open.
func LoadImagePair(path1, path2 string) (gocv.Mat, gocv.Mat, error) {
	img1, err := LoadImage(path1)
	if err != nil {
		return gocv.NewMat(), gocv.NewMat(), err
	}

	img2, err := LoadImage(path2)
	if err != nil {
		img1.Close()
		return gocv.NewMat(), gocv.NewMat(), err
	}

	return img1, img2, nil
}

// Describe returns the dimensions of a loaded image
func Describe(path string, img gocv.Mat) types.ImageInfo {
	return types.ImageInfo{
		Path:     path,
		Width:    img.Cols(),
		Height:   img.Rows(),
		Channels: img.Channels(),
	}
}
