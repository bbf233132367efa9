package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/evidentiary/gavel/internal/cli"
	"github.com/evidentiary/gavel/internal/model"
)

func categoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List the legal category table",
		Long: `Print every legal relevance category with its scoring weight and the
keywords that trigger it. Classification is exact substring matching over
these keyword sets, so this table fully determines categorization.`,
		RunE: runCategories,
	}
}

func runCategories(_ *cobra.Command, _ []string) error {
	var b strings.Builder
	for _, cat := range model.DefaultCatalog().Categories() {
		keywords := strings.Join(cat.Keywords, ", ")
		if keywords == "" {
			keywords = "(fallback)"
		}
		fmt.Fprintf(&b, "%-14s %2d  %s\n", cat.Name, cat.Weight, keywords)
	}

	fmt.Println(cli.RenderBox("Legal Categories", b.String()))
	return nil
}
