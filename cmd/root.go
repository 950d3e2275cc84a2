package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"imagecompare/imageprocessor"
	"imagecompare/logging"
	"imagecompare/metrics"
	"imagecompare/report"
	"imagecompare/signalhandler"
	"imagecompare/utils"

	"github.com/spf13/cobra"
)

// ErrUsage is returned when the command is not given exactly two images
var ErrUsage = errors.New("expected exactly two image paths")

type options struct {
	format       string
	thresholds   []string
	hashFromGrid bool
	debug        bool
	logFile      string
}

// NewRootCmd builds the imagecompare command
func NewRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "imagecompare [flags] <image1> <image2>",
		Short: "Compare two images with several similarity metrics.",
		Long: fmt.Sprintf(`Compare two images with several similarity metrics.

Computes color histogram correlation, SSIM, MSE, MAE, template matching and
average-hash similarity, then decides whether the images are similar:
histogram > 0.9, SSIM > 0.5, MSE < 200 and MAE < 200 must all hold.
Both images must have the same dimensions; they are never resized.

Supported extensions: %s`, strings.Join(imageprocessor.GetSupportedExtensions(), " ")),
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", string(report.FormatText), "Output format: text or json")
	cmd.Flags().StringArrayVarP(&opts.thresholds, "threshold", "t", []string{},
		"Override a verdict threshold as metric=value (histogram, ssim, mse, mae)")
	cmd.Flags().BoolVar(&opts.hashFromGrid, "hash-from-grid", false,
		"Compute the average hash from the decoded images instead of decoding the files again")
	cmd.Flags().BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	cmd.Flags().StringVar(&opts.logFile, "logfile", utils.DefaultLogPath, "Debug log file")

	return cmd
}

func run(cmd *cobra.Command, args []string, opts *options) error {
	if len(args) != 2 {
		cmd.Usage()
		return ErrUsage
	}

	format, err := report.ParseFormat(opts.format)
	if err != nil {
		return err
	}

	rules, err := buildRules(opts.thresholds)
	if err != nil {
		return err
	}

	if opts.debug {
		if err := logging.SetupLogger(opts.logFile); err != nil {
			logging.LogWarning("Failed to setup logging: %v", err)
		} else {
			fmt.Fprintf(cmd.ErrOrStderr(), "Debug mode enabled. Logging to: %s\n", opts.logFile)
			defer logging.CloseLogger()
		}
	}

	img1, img2, err := imageprocessor.LoadImagePair(args[0], args[1])
	if err != nil {
		return fmt.Errorf("one or both image paths are invalid: %w", err)
	}
	defer img1.Close()
	defer img2.Close()

	engine := metrics.NewEngine(metrics.Options{
		Rules:        rules,
		HashFromGrid: opts.hashFromGrid,
		Workers:      signalhandler.GetOptimalProcs(),
	})

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	result, err := engine.Compare(ctx, metrics.Input{
		PathA:  args[0],
		PathB:  args[1],
		ImageA: img1,
		ImageB: img2,
	})
	if err != nil {
		return fmt.Errorf("comparison aborted: %w", err)
	}

	return report.Write(cmd.OutOrStdout(), result, format)
}

func buildRules(overrides []string) (metrics.Rules, error) {
	rules := metrics.DefaultRules()
	for _, o := range overrides {
		name, value, err := utils.ParseThresholdOverride(o)
		if err != nil {
			return nil, err
		}
		rules, err = rules.Override(name, value)
		if err != nil {
			return nil, err
		}
		logging.DebugLog("Threshold override: %s", o)
	}
	return rules, nil
}

// Execute runs the root command and exits with status 1 on any failure.
// This is called by main.main().
func Execute() {
	if err := NewRootCmd().ExecuteContext(context.Background()); err != nil {
		if !errors.Is(err, ErrUsage) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
