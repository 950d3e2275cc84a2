package imageprocessor

import (
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"gocv.io/x/gocv"
)

// Utility functions used across the various image loaders

// Try to load an image using Go's image packages
func tryGoImagePackages(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	return img, err
}

// gocvMatFromGoImage converts a decoded Go image into a CV_8UC3 Mat in BGR order.
// Alpha is discarded without compositing, the same way OpenCV's IMReadColor does.
func gocvMatFromGoImage(img image.Image) (gocv.Mat, error) {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width == 0 || height == 0 {
		return gocv.NewMat(), fmt.Errorf("image has no pixels")
	}

	data := make([]byte, 0, width*height*3)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			data = append(data, c.B, c.G, c.R)
		}
	}

	view, err := gocv.NewMatFromBytes(height, width, gocv.MatTypeCV8UC3, data)
	if err != nil {
		return gocv.NewMat(), err
	}
	defer view.Close()

	// the view borrows data, hand back an owning copy
	return view.Clone(), nil
}

// Check if a file exists
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Helper function to create standardized image load errors
func newImageLoadError(message, path string) error {
	return fmt.Errorf("%s: %s", message, path)
}
