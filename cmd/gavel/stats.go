package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/evidentiary/gavel/internal/cli"
	"github.com/evidentiary/gavel/internal/model"
	"github.com/evidentiary/gavel/internal/triage"
)

func statsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show aggregate triage statistics without writing files",
		Long: `Run the classification, scoring, and verification stages over all
evidence sources and print aggregate counts per category and priority.
Nothing is written to disk.`,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			return bindCommandFlags(cmd, map[string]string{
				"dirs.evidence": "evidence-dir",
				"dirs.external": "external-dir",
				"integrity.db":  "integrity-db",
			})
		},
		RunE: runStats,
	}

	cmd.Flags().String("evidence-dir", "", "directory of processed evidence CSV files")
	cmd.Flags().String("external-dir", "", "directory of external data (geodata tracks, email exports)")
	cmd.Flags().String("integrity-db", "", "path to the integrity validation database")

	return cmd
}

func runStats(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	engine := triage.New(engineConfig(false))
	summary, err := engine.Stats(ctx)
	if err != nil {
		return err
	}

	for _, w := range summary.Warnings {
		fmt.Println(cli.FormatWarning(w))
	}

	priorities := []model.Priority{
		model.PriorityCritical,
		model.PriorityHigh,
		model.PriorityMedium,
		model.PriorityLow,
		model.PriorityUnknown,
	}
	priorityLines := ""
	for _, p := range priorities {
		if count := summary.Stats.ByPriority[p]; count > 0 {
			priorityLines += fmt.Sprintf("  %-16s %d\n", p, count)
		}
	}

	content := fmt.Sprintf(`Total records:     %d
Verified:          %d (%.1f%%)
From tables:       %d
From external:     %d

By priority:
%s
By category:
%s`,
		summary.Stats.Total,
		summary.Stats.Verified,
		summary.Stats.VerificationRate(),
		summary.IngestedRecords,
		summary.ExternalRecords,
		priorityLines,
		topCategories(summary.Stats.ByCategory, len(summary.Stats.ByCategory)),
	)

	fmt.Println(cli.RenderBox("Evidence Statistics", content))
	return nil
}
