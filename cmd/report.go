package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/vesselops/fueleu/config"
	"github.com/vesselops/fueleu/core/compliance"
	"github.com/vesselops/fueleu/pkg/export"
)

var (
	reportYear   int
	reportPool   string
	reportFleet  string
	reportFormat string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Compute a pool compliance report",
	RunE:  runReport,
}

func init() {
	reportCmd.Flags().IntVar(&reportYear, "year", time.Now().Year(), "reporting year")
	reportCmd.Flags().StringVar(&reportPool, "pool", "", "restrict to one pool")
	reportCmd.Flags().StringVar(&reportFleet, "fleet", "", "JSON fleet file instead of the registry")
	reportCmd.Flags().StringVar(&reportFormat, "format", "json", "output format (json, csv or table)")
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	engine, err := newEngine(cfg)
	if err != nil {
		return err
	}
	vessels, err := loadVessels(cfg, reportFleet, reportPool)
	if err != nil {
		return err
	}
	summary, err := engine.PoolCompliance(vessels, reportYear)
	if err != nil {
		return err
	}
	switch reportFormat {
	case "json":
		return export.WriteJSON(cmd.OutOrStdout(), summary)
	case "csv":
		return export.WritePoolCSV(cmd.OutOrStdout(), summary)
	case "table":
		return writeReportTable(cmd.OutOrStdout(), summary)
	default:
		return fmt.Errorf("unknown format %q", reportFormat)
	}
}

func writeReportTable(w io.Writer, summary compliance.PoolSummary) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "VESSEL\tINTENSITY\tTARGET\tBALANCE\tPENALTY\tSCORE\tSTATUS\n")
	for _, r := range summary.Vessels {
		fmt.Fprintf(tw, "%s\t%.3f\t%.3f\t%.2f\t%.6f\t%.2f\t%s\n",
			r.ID, r.GHGIntensity, r.TargetIntensity, r.ComplianceBalance,
			r.PotentialPenalty, r.Score, r.Status)
	}
	fmt.Fprintf(tw, "POOL (%d)\t%.3f\t%.3f\t%.2f\t%.6f\t%.2f\t%t\n",
		summary.VesselCount, summary.PoolAverageIntensity, summary.PoolTargetIntensity,
		summary.TotalComplianceBalance, summary.PoolPotentialPenalty,
		summary.PoolScore, summary.PoolCompliant)
	return tw.Flush()
}

func newEngine(cfg *config.Config) (*compliance.Engine, error) {
	scheme, err := cfg.Scheme.Scheme()
	if err != nil {
		return nil, fmt.Errorf("scheme: %w", err)
	}
	return compliance.New(scheme)
}
