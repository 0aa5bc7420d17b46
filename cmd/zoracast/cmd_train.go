package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var trainSampleLimit int

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Train the model from recorded samples and report fit",
	Long: `Run one offline training pass over the samples recorded in the result
sink. Useful for validating that enough observed outcomes have
accumulated for the model to fit before deploying a server restart.`,
	RunE: runTrain,
}

func init() {
	rootCmd.AddCommand(trainCmd)
	trainCmd.Flags().IntVar(&trainSampleLimit, "sample-limit", 5000, "Maximum training samples pulled from the sink")
}

func runTrain(cmd *cobra.Command, args []string) error {
	a, err := buildApp()
	if err != nil {
		return err
	}
	defer a.close()

	if err := a.trainFromSink(context.Background(), trainSampleLimit); err != nil {
		return err
	}
	fmt.Println("Training complete, model fits the recorded sample set")
	return nil
}
