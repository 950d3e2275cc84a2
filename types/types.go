package types

// Metric names, used as keys for verdict rules and structured output
const (
	MetricHistogram = "histogram"
	MetricSSIM      = "ssim"
	MetricMSE       = "mse"
	MetricMAE       = "mae"
	MetricTemplate  = "template"
	MetricHash      = "hash"
)

// Scores holds the result of every metric for one image pair
type Scores struct {
	Histogram    float64 `json:"histogram"`
	SSIM         float64 `json:"ssim"`
	MSE          float64 `json:"mse"`
	MAE          float64 `json:"mae"`
	Template     float64 `json:"template"`
	Hash         float64 `json:"hash"`
	HashDistance int     `json:"hash_distance"`
}

// Value returns the score registered under the given metric name
func (s Scores) Value(metric string) (float64, bool) {
	switch metric {
	case MetricHistogram:
		return s.Histogram, true
	case MetricSSIM:
		return s.SSIM, true
	case MetricMSE:
		return s.MSE, true
	case MetricMAE:
		return s.MAE, true
	case MetricTemplate:
		return s.Template, true
	case MetricHash:
		return s.Hash, true
	}
	return 0, false
}

// ImageInfo describes one of the compared images
type ImageInfo struct {
	Path     string `json:"path"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Channels int    `json:"channels"`
}

// Comparison is the full outcome of comparing two images
type Comparison struct {
	ImageA      ImageInfo `json:"image_a"`
	ImageB      ImageInfo `json:"image_b"`
	Scores      Scores    `json:"scores"`
	Similar     bool      `json:"similar"`
	FailedRules []string  `json:"failed_rules"`
}
