package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/zoracast/zoracast/internal/features"
)

var gainersCount int

var gainersCmd = &cobra.Command{
	Use:   "top-gainers",
	Short: "List the coins with the largest 24h market cap gains",
	RunE:  runGainers,
}

func init() {
	rootCmd.AddCommand(gainersCmd)
	gainersCmd.Flags().IntVar(&gainersCount, "count", 5, "Number of coins to list")
}

func runGainers(cmd *cobra.Command, args []string) error {
	a, err := buildApp()
	if err != nil {
		return err
	}
	defer a.close()

	coins, err := a.provider.TopGainers(context.Background(), gainersCount)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SYMBOL\tNAME\tMARKET CAP (ETH)\tVOLUME 24H (ETH)\tDELTA 24H %\tADDRESS")
	for _, c := range coins {
		capEth, volEth, delta := features.Normalize(c)
		fmt.Fprintf(w, "%s\t%s\t%.4f\t%.4f\t%+.2f\t%s\n",
			c.Symbol, c.Name, capEth, volEth, delta, c.Address)
	}
	return w.Flush()
}
