package main

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var predictPlannedTime string

var predictCmd = &cobra.Command{
	Use:   "predict <address>",
	Short: "Run one prediction and print the result as JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runPredict,
}

func init() {
	rootCmd.AddCommand(predictCmd)
	predictCmd.Flags().StringVar(&predictPlannedTime, "planned-time", "", "Planned posting time (RFC3339); empty means no time adjustment")
}

func runPredict(cmd *cobra.Command, args []string) error {
	a, err := buildApp()
	if err != nil {
		return err
	}
	defer a.close()

	ctx := context.Background()

	var planned *time.Time
	if predictPlannedTime != "" {
		t, err := time.Parse(time.RFC3339, predictPlannedTime)
		if err != nil {
			return err
		}
		planned = &t
	}

	if err := a.trainFromSink(ctx, 5000); err != nil {
		return err
	}

	pred, err := a.predictor.Predict(ctx, args[0], planned)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(pred.PredictionResult)
}
