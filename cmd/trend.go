package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vesselops/fueleu/config"
	"github.com/vesselops/fueleu/core/analytics"
	"github.com/vesselops/fueleu/pkg/export"
)

var (
	trendStart int
	trendEnd   int
	trendPool  string
	trendFleet string
)

var trendCmd = &cobra.Command{
	Use:   "trend",
	Short: "Project compliance over a range of years",
	RunE:  runTrend,
}

func init() {
	trendCmd.Flags().IntVar(&trendStart, "start", 2025, "first year")
	trendCmd.Flags().IntVar(&trendEnd, "end", 2032, "last year")
	trendCmd.Flags().StringVar(&trendPool, "pool", "", "restrict to one pool")
	trendCmd.Flags().StringVar(&trendFleet, "fleet", "", "JSON fleet file instead of the registry")
	rootCmd.AddCommand(trendCmd)
}

func runTrend(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	engine, err := newEngine(cfg)
	if err != nil {
		return err
	}
	vessels, err := loadVessels(cfg, trendFleet, trendPool)
	if err != nil {
		return err
	}
	points, err := engine.Trend(vessels, trendStart, trendEnd)
	if err != nil {
		return err
	}
	if err := export.WriteJSON(cmd.OutOrStdout(), points); err != nil {
		return err
	}

	if len(points) < 2 {
		return nil
	}
	outlook := analytics.BalanceOutlook(points)
	fmt.Fprintf(cmd.OutOrStdout(), "balance slope: %.2f tCO2e/year\n", outlook.Slope)
	if outlook.FirstDeficitYear != 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "first projected deficit year: %d\n", outlook.FirstDeficitYear)
	}
	return nil
}
