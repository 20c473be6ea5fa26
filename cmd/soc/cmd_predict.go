package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"socpredict/internal/apperrors"
	"socpredict/internal/features"
)

// featureFlags maps flag names to feature names.
var featureFlags = []struct {
	flag string
	name features.Name
}{
	{"tpi", features.TPI},
	{"tri", features.TRI},
	{"twi", features.TWI},
	{"vdepth", features.VDepth},
	{"vis", features.VIS},
	{"ndvi-max", features.NDVIMax},
	{"ndvi-median", features.NDVIMedian},
	{"ndvi-sd", features.NDVISD},
}

func newPredictCmd(flags *rootFlags) *cobra.Command {
	var random, asJSON bool
	var input string
	values := make(map[string]*float64, len(featureFlags))

	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Request a single prediction",
		Long: `Submits one feature record and prints the model estimates.

Every feature must be given, either as a flag, in a JSON record read
with --input, or through --random. Values from --input override random
values and flags override both.

Example:
  soc predict --random
  soc predict --input features.json --twi 9
  soc predict --tpi 1.2 --tri 3 --twi 8.5 --vdepth 30 --vis 0.21 \
    --ndvi-max 0.8 --ndvi-median 0.55 --ndvi-sd 0.12`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var f features.InputFeatures
			if random {
				f = features.Random(nil)
			}
			if input != "" {
				rec, err := readFeatures(cmd, input)
				if err != nil {
					return err
				}
				f = overlay(f, rec)
			}
			for _, ff := range featureFlags {
				if cmd.Flags().Changed(ff.flag) {
					if err := f.SetValue(ff.name, *values[ff.flag]); err != nil {
						return err
					}
				}
			}
			return runPredict(cmd, flags, f, asJSON)
		},
	}

	for _, ff := range featureFlags {
		spec, _ := features.Lookup(ff.name)
		values[ff.flag] = cmd.Flags().Float64(ff.flag, 0, spec.Label)
	}
	cmd.Flags().BoolVar(&random, "random", false, "Fill features with random values")
	cmd.Flags().StringVar(&input, "input", "", "Read a JSON feature record from a file (- for stdin)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the predictions as JSON")
	return cmd
}

// readFeatures decodes a possibly partial feature record from path.
func readFeatures(cmd *cobra.Command, path string) (features.InputFeatures, error) {
	var r io.Reader = cmd.InOrStdin()
	if path != "-" {
		file, err := os.Open(path)
		if err != nil {
			return features.InputFeatures{}, fmt.Errorf("failed to open input: %w", err)
		}
		defer file.Close()
		r = file
	}

	var f features.InputFeatures
	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return features.InputFeatures{}, apperrors.NewValidation("input is not a JSON feature record: " + err.Error())
	}
	return f, nil
}

// overlay returns base with every field set in top copied over.
func overlay(base, top features.InputFeatures) features.InputFeatures {
	for _, name := range features.Names() {
		if v, ok := top.Get(name); ok {
			_ = base.SetValue(name, v)
		}
	}
	return base
}

func runPredict(cmd *cobra.Command, flags *rootFlags, f features.InputFeatures, asJSON bool) error {
	if err := f.Validate(); err != nil {
		return err
	}

	cfg, _, err := loadConfig(flags)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Debug("requesting prediction", zap.String("endpoint", cfg.Service.Endpoint))
	result, err := newClient(cfg, logger).Predict(ctx, f)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if asJSON {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode result: %w", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	fmt.Fprintln(out, "Prediction Results")
	for _, row := range result.Rows() {
		fmt.Fprintln(out, row.String())
	}
	return nil
}
