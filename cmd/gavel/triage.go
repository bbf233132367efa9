package main

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/evidentiary/gavel/internal/cli"
	"github.com/evidentiary/gavel/internal/config"
	"github.com/evidentiary/gavel/internal/model"
	"github.com/evidentiary/gavel/internal/triage"
)

func triageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "triage",
		Short: "Build the exhibit index and defensibility statement",
		Long: `Run the full evidence triage: load processed evidence tables, scan
external data sources, classify and score every record, cross-verify
content hashes against the integrity database, and write a ranked exhibit
index with its paired defensibility statement.`,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			return bindCommandFlags(cmd, map[string]string{
				"dirs.evidence": "evidence-dir",
				"dirs.external": "external-dir",
				"dirs.output":   "output-dir",
				"integrity.db":  "integrity-db",
				"case.id":       "case-id",
			})
		},
		RunE: runTriage,
	}

	cmd.Flags().String("evidence-dir", "", "directory of processed evidence CSV files")
	cmd.Flags().String("external-dir", "", "directory of external data (geodata tracks, email exports)")
	cmd.Flags().StringP("output-dir", "o", "", "directory for the generated index and statement")
	cmd.Flags().String("integrity-db", "", "path to the integrity validation database")
	cmd.Flags().String("case-id", "", "case identifier embedded in exhibit names")

	return cmd
}

func runTriage(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	fmt.Println(cli.FormatTitle("Legal evidence triage"))

	engine := triage.New(engineConfig(true))
	summary, err := engine.Run(ctx)
	if err != nil {
		return err
	}

	for _, w := range summary.Warnings {
		fmt.Println(cli.FormatWarning(w))
	}

	content := fmt.Sprintf(`Total exhibits:    %d
Verified:          %d (%.1f%%)
From tables:       %d
From external:     %d
High priority:     %d

Top categories:
%s
Index:             %s
Statement:         %s
Run ID:            %s`,
		summary.Stats.Total,
		summary.Stats.Verified,
		summary.Stats.VerificationRate(),
		summary.IngestedRecords,
		summary.ExternalRecords,
		summary.Stats.ByPriority[model.PriorityHigh]+summary.Stats.ByPriority[model.PriorityCritical],
		topCategories(summary.Stats.ByCategory, 5),
		summary.IndexPath,
		summary.StatementPath,
		summary.RunID,
	)

	fmt.Println(cli.RenderBox("Triage Complete", content))
	slog.Info("exhibit index generated", "path", summary.IndexPath)
	return nil
}

func engineConfig(showProgress bool) triage.Config {
	return triage.Config{
		EvidenceDir:   config.ExpandPath(viper.GetString("dirs.evidence")),
		ExternalDir:   config.ExpandPath(viper.GetString("dirs.external")),
		OutputDir:     config.ExpandPath(viper.GetString("dirs.output")),
		IntegrityDB:   config.ExpandPath(viper.GetString("integrity.db")),
		CaseID:        viper.GetString("case.id"),
		PreviewLength: viper.GetInt("index.preview_length"),
		ShowProgress:  showProgress,
	}
}

type categoryCount struct {
	name  string
	count int
}

// topCategories renders the n most frequent categories, ties broken by
// name for stable output.
func topCategories(byCategory map[string]int, n int) string {
	counts := make([]categoryCount, 0, len(byCategory))
	for name, count := range byCategory {
		counts = append(counts, categoryCount{name: name, count: count})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].count != counts[j].count {
			return counts[i].count > counts[j].count
		}
		return counts[i].name < counts[j].name
	})

	if len(counts) > n {
		counts = counts[:n]
	}

	var b strings.Builder
	for _, c := range counts {
		fmt.Fprintf(&b, "  %-16s %d\n", c.name, c.count)
	}
	return b.String()
}
