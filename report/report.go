// Package report renders a comparison for people (text) or tools (JSON).
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"imagecompare/types"
)

// Format selects the renderer
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// ParseFormat validates a --format value
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatJSON:
		return f, nil
	}
	return "", fmt.Errorf("unknown output format '%s' (use text or json)", s)
}

const separator = "---------------------------------------------------------"

type section struct {
	label       string
	explanation string
	value       func(types.Scores) float64
}

var sections = []section{
	{
		label:       "Histogram similarity",
		explanation: "Values close to 1 indicate high similarity in the color distributions of the images.",
		value:       func(s types.Scores) float64 { return s.Histogram },
	},
	{
		label:       "SSIM similarity",
		explanation: "Values range from -1 to 1, where 1 indicates a perfect match. Higher values indicate higher structural similarity.",
		value:       func(s types.Scores) float64 { return s.SSIM },
	},
	{
		label:       "MSE",
		explanation: "Lower values indicate higher similarity. It's a measure of the average squared difference between the pixels of the images.",
		value:       func(s types.Scores) float64 { return s.MSE },
	},
	{
		label:       "MAE",
		explanation: "Lower values indicate higher similarity. It's a measure of the average absolute difference between the pixels of the images.",
		value:       func(s types.Scores) float64 { return s.MAE },
	},
	{
		label:       "Feature matching similarity",
		explanation: "Higher values indicate higher similarity in feature matching between the images.",
		value:       func(s types.Scores) float64 { return s.Template },
	},
	{
		label:       "Image hashing similarity",
		explanation: "Values close to 1 indicate higher similarity. Compares hashes representing the images.",
		value:       func(s types.Scores) float64 { return s.Hash },
	},
}

// Write renders the comparison in the requested format
func Write(w io.Writer, c types.Comparison, format Format) error {
	switch format {
	case FormatJSON:
		return WriteJSON(w, c)
	case FormatText, "":
		return WriteText(w, c)
	}
	return fmt.Errorf("unknown output format '%s'", format)
}

// WriteText prints one block per metric followed by the overall assessment
func WriteText(w io.Writer, c types.Comparison) error {
	var b strings.Builder
	for _, s := range sections {
		fmt.Fprintf(&b, "%s: %v\n", s.label, s.value(c.Scores))
		fmt.Fprintf(&b, "Explanation: %s\n", s.explanation)
		b.WriteString(separator + "\n")
	}

	b.WriteString("\nOverall assessment:\n")
	if c.Similar {
		b.WriteString("The images are quite similar.\n")
	} else {
		b.WriteString("The images are not very similar.\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteJSON prints the comparison as a single indented JSON object
func WriteJSON(w io.Writer, c types.Comparison) error {
	if c.FailedRules == nil {
		c.FailedRules = []string{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(c)
}
