package utils

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// DefaultLogPath is used when --debug is given without --logfile
const DefaultLogPath = "imagecompare.log"

// ValidateImagePath checks that the path exists and is a regular, non-empty file
func ValidateImagePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("empty image path")
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("image path does not exist: %s", path)
		}
		return fmt.Errorf("cannot access image path: %s (%w)", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("image path is a directory: %s", path)
	}
	if info.Size() == 0 {
		return fmt.Errorf("image file is empty: %s", path)
	}
	return nil
}

// ParseThresholdOverride parses a "metric=value" pair as given to --threshold
func ParseThresholdOverride(s string) (string, float64, error) {
	parts := strings.SplitN(s, "=", 2)
	if len(parts) != 2 {
		return "", 0, fmt.Errorf("invalid threshold override '%s', expected metric=value", s)
	}

	name := strings.ToLower(strings.TrimSpace(parts[0]))
	if name == "" {
		return "", 0, fmt.Errorf("invalid threshold override '%s', missing metric name", s)
	}

	value, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return "", 0, fmt.Errorf("invalid threshold value '%s' for %s", parts[1], name)
	}
	return name, value, nil
}
