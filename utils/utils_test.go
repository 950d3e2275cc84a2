package utils

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseThresholdOverride(t *testing.T) {
	tests := []struct {
		in      string
		name    string
		value   float64
		wantErr bool
	}{
		{in: "mse=150", name: "mse", value: 150},
		{in: " SSIM = 0.75 ", name: "ssim", value: 0.75},
		{in: "histogram=-0.5", name: "histogram", value: -0.5},
		{in: "mse", wantErr: true},
		{in: "=3", wantErr: true},
		{in: "mae=abc", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			name, value, err := ParseThresholdOverride(tc.in)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tc.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if name != tc.name || value != tc.value {
				t.Errorf("got (%s, %v), want (%s, %v)", name, value, tc.name, tc.value)
			}
		})
	}
}

func TestValidateImagePath(t *testing.T) {
	dir := t.TempDir()

	good := filepath.Join(dir, "a.png")
	if err := os.WriteFile(good, []byte{0x89, 'P', 'N', 'G'}, 0644); err != nil {
		t.Fatal(err)
	}
	empty := filepath.Join(dir, "empty.png")
	if err := os.WriteFile(empty, nil, 0644); err != nil {
		t.Fatal(err)
	}

	if err := ValidateImagePath(good); err != nil {
		t.Errorf("expected %s to be valid: %v", good, err)
	}
	for _, p := range []string{"", dir, empty, filepath.Join(dir, "missing.png")} {
		if err := ValidateImagePath(p); err == nil {
			t.Errorf("expected %q to be rejected", p)
		}
	}
}
