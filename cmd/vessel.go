package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vesselops/fueleu/config"
	"github.com/vesselops/fueleu/core/analytics"
)

var (
	vesselPool  string
	vesselFleet string
)

var vesselCmd = &cobra.Command{
	Use:   "vessel",
	Short: "Vessel registry commands",
}

var vesselLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List registered vessels",
	RunE:  runVesselLs,
}

func init() {
	vesselLsCmd.Flags().StringVar(&vesselPool, "pool", "", "restrict to one pool")
	vesselLsCmd.Flags().StringVar(&vesselFleet, "fleet", "", "JSON fleet file instead of the registry")
	vesselCmd.AddCommand(vesselLsCmd)
	rootCmd.AddCommand(vesselCmd)
}

func runVesselLs(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	vessels, err := loadVessels(cfg, vesselFleet, vesselPool)
	if err != nil {
		return err
	}
	for _, v := range vessels {
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%.0f MJ\t%.3f gCO2e/MJ\n",
			v.ID, v.Name, v.Pool, v.FuelConsumptionMJ, v.GHGIntensity)
	}
	if len(vessels) > 1 {
		stats := analytics.Fleet(vessels)
		fmt.Fprintf(cmd.OutOrStdout(), "fleet mean intensity: %.3f (stddev %.3f)\n",
			stats.MeanIntensity, stats.IntensityStdDev)
	}
	return nil
}
