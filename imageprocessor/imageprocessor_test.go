package imageprocessor

import (
	"errors"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func writePNG(t *testing.T, dir, name string, img image.Image) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	return path
}

func solid(w, h int, c color.Color) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// leftRight is dark on the left half and bright on the right half
func leftRight(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if x < w/2 {
				img.Set(x, y, color.NRGBA{R: 10, G: 10, B: 10, A: 255})
			} else {
				img.Set(x, y, color.NRGBA{R: 240, G: 240, B: 240, A: 255})
			}
		}
	}
	return img
}

func TestLoadImageIsBGR(t *testing.T) {
	dir := t.TempDir()
	path := writePNG(t, dir, "red.png", solid(16, 12, color.NRGBA{R: 255, A: 255}))

	img, err := LoadImage(path)
	if err != nil {
		t.Fatalf("LoadImage: %v", err)
	}
	defer img.Close()

	if img.Rows() != 12 || img.Cols() != 16 || img.Channels() != 3 {
		t.Fatalf("unexpected shape %dx%dx%d", img.Rows(), img.Cols(), img.Channels())
	}
	px := img.GetVecbAt(5, 5)
	if px[0] != 0 || px[1] != 0 || px[2] != 255 {
		t.Errorf("expected BGR (0,0,255), got %v", px)
	}
}

func TestGoImageLoaderMatchesOpenCV(t *testing.T) {
	dir := t.TempDir()
	path := writePNG(t, dir, "mixed.png", solid(4, 4, color.NRGBA{R: 200, G: 100, B: 50, A: 255}))

	fromGo, err := NewGoImageLoader().LoadImage(path)
	if err != nil {
		t.Fatalf("GoImageLoader: %v", err)
	}
	defer fromGo.Close()

	fromCV, err := NewStandardImageLoader().LoadImage(path)
	if err != nil {
		t.Fatalf("StandardImageLoader: %v", err)
	}
	defer fromCV.Close()

	a, b := fromGo.ToBytes(), fromCV.ToBytes()
	if len(a) != len(b) {
		t.Fatalf("length mismatch %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("byte %d differs: %d vs %d", i, a[i], b[i])
		}
	}
}

func TestLoadGIFThroughGoDecoder(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "blue.gif")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	pal := image.NewPaletted(image.Rect(0, 0, 8, 8), color.Palette{color.RGBA{B: 255, A: 255}})
	if err := gif.Encode(f, pal, nil); err != nil {
		t.Fatal(err)
	}
	f.Close()

	if !NewGoImageLoader().CanLoad(path) {
		t.Errorf("Go decoder should accept gif")
	}
	if NewStandardImageLoader().CanLoad(path) {
		t.Errorf("standard loader should not claim gif")
	}

	img, err := LoadImage(path)
	if err != nil {
		t.Fatalf("LoadImage: %v", err)
	}
	defer img.Close()

	px := img.GetVecbAt(0, 0)
	if px[0] != 255 || px[1] != 0 || px[2] != 0 {
		t.Errorf("expected BGR (255,0,0), got %v", px)
	}
}

func TestLoadImagePairFailures(t *testing.T) {
	dir := t.TempDir()
	good := writePNG(t, dir, "ok.png", solid(8, 8, color.White))
	corrupt := filepath.Join(dir, "corrupt.png")
	if err := os.WriteFile(corrupt, []byte("definitely not an image"), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		a, b     string
		wantPath string
	}{
		{"missing first", filepath.Join(dir, "nope.png"), good, filepath.Join(dir, "nope.png")},
		{"missing second", good, filepath.Join(dir, "nope.jpg"), filepath.Join(dir, "nope.jpg")},
		{"corrupt", good, corrupt, corrupt},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := LoadImagePair(tc.a, tc.b)
			var loadErr *LoadError
			if !errors.As(err, &loadErr) {
				t.Fatalf("expected *LoadError, got %v", err)
			}
			if loadErr.Path != tc.wantPath {
				t.Errorf("error names %s, want %s", loadErr.Path, tc.wantPath)
			}
		})
	}
}

func TestRegistryLoaderSelection(t *testing.T) {
	r := NewImageLoaderRegistry()

	if _, ok := r.GetLoader("x.webp").(*GoImageLoader); !ok {
		t.Errorf("webp should use the Go decoder")
	}
	if _, ok := r.GetLoader("x.JPG").(*StandardImageLoader); !ok {
		t.Errorf("jpg should use the standard loader")
	}
	if _, ok := r.GetLoader("x.unknown").(*StandardImageLoader); !ok {
		t.Errorf("unknown extensions should fall back to the standard loader")
	}
	if r.CanLoadFile("x.cr3") {
		t.Errorf("RAW formats are not supported")
	}
}

func TestAverageHashBits(t *testing.T) {
	pixels := make([]uint8, 64)
	for i := 32; i < 64; i++ {
		pixels[i] = 200
	}
	if got, want := averageHashBits(pixels), uint64(0x00000000FFFFFFFF); got != want {
		t.Errorf("got %016x, want %016x", got, want)
	}

	// a flat thumbnail sits exactly on its mean
	flat := make([]uint8, 64)
	if got := averageHashBits(flat); got != ^uint64(0) {
		t.Errorf("flat thumbnail: got %016x, want all ones", got)
	}
}

func TestAverageHashPaths(t *testing.T) {
	dir := t.TempDir()
	a := writePNG(t, dir, "a.png", leftRight(64, 64))
	b := writePNG(t, dir, "b.png", leftRight(64, 64))

	ha, err := AverageHashFromFile(a)
	if err != nil {
		t.Fatal(err)
	}
	hb, err := AverageHashFromFile(b)
	if err != nil {
		t.Fatal(err)
	}
	d, err := CalculateHammingDistance(ha, hb)
	if err != nil {
		t.Fatal(err)
	}
	if d != 0 {
		t.Errorf("identical files should hash identically, distance %d", d)
	}
	if ha.Bits() != 64 {
		t.Errorf("expected 64-bit hash, got %d", ha.Bits())
	}

	mat, err := LoadImage(a)
	if err != nil {
		t.Fatal(err)
	}
	defer mat.Close()

	hm, err := ComputeAverageHash(mat)
	if err != nil {
		t.Fatal(err)
	}
	// left half dark, right half bright: columns 4-7 of every row set
	if got, want := hm.GetHash(), uint64(0x0F0F0F0F0F0F0F0F); got != want {
		t.Errorf("grid hash %016x, want %016x", got, want)
	}

	if _, err := AverageHashFromFile(filepath.Join(dir, "missing.png")); err == nil {
		t.Errorf("expected error for a missing file")
	}
}
