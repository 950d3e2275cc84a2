package report

import (
	"bytes"
	"strings"
	"testing"

	"imagecompare/types"

	"github.com/tidwall/gjson"
)

func sample(similar bool) types.Comparison {
	c := types.Comparison{
		ImageA: types.ImageInfo{Path: "a.png", Width: 10, Height: 20, Channels: 3},
		ImageB: types.ImageInfo{Path: "b.png", Width: 10, Height: 20, Channels: 3},
		Scores: types.Scores{
			Histogram:    0.95,
			SSIM:         0.8,
			MSE:          250,
			MAE:          30,
			Template:     0.7,
			Hash:         1 - 3.0/4096.0,
			HashDistance: 3,
		},
		Similar: similar,
	}
	if !similar {
		c.FailedRules = []string{"mse < 200"}
	}
	return c
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteText(&buf, sample(false)); err != nil {
		t.Fatal(err)
	}
	out := buf.String()

	for _, want := range []string{
		"Histogram similarity: 0.95\n",
		"SSIM similarity: 0.8\n",
		"MSE: 250\n",
		"MAE: 30\n",
		"Feature matching similarity: 0.7\n",
		"Image hashing similarity: 0.999267578125\n",
		"\nOverall assessment:\nThe images are not very similar.\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if n := strings.Count(out, "Explanation: "); n != 6 {
		t.Errorf("expected 6 explanations, got %d", n)
	}
	if n := strings.Count(out, separator+"\n"); n != 6 {
		t.Errorf("expected 6 separators, got %d", n)
	}

	buf.Reset()
	if err := Write(&buf, sample(true), FormatText); err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(buf.String(), "The images are quite similar.\n") {
		t.Errorf("unexpected verdict line:\n%s", buf.String())
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sample(false), FormatJSON); err != nil {
		t.Fatal(err)
	}
	doc := buf.String()

	if !gjson.Valid(doc) {
		t.Fatalf("invalid JSON:\n%s", doc)
	}
	checks := map[string]string{
		"image_a.path":         "a.png",
		"image_b.height":       "20",
		"scores.mse":           "250",
		"scores.hash_distance": "3",
		"similar":              "false",
		"failed_rules.0":       "mse < 200",
	}
	for path, want := range checks {
		if got := gjson.Get(doc, path).String(); got != want {
			t.Errorf("%s = %q, want %q", path, got, want)
		}
	}

	buf.Reset()
	if err := WriteJSON(&buf, sample(true)); err != nil {
		t.Fatal(err)
	}
	if rules := gjson.Get(buf.String(), "failed_rules"); !rules.IsArray() || len(rules.Array()) != 0 {
		t.Errorf("failed_rules should be an empty array, got %s", rules.Raw)
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"text": FormatText, "JSON": FormatJSON, " json ": FormatJSON} {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseFormat("yaml"); err == nil {
		t.Errorf("expected an error for yaml")
	}
}
