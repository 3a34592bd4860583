package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"chine/internal/config"
)

func newSearchesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "searches",
		Short: "List the configured searches and their rules",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			rows := make([][]string, 0, len(cfg.Searches))
			for _, search := range cfg.Searches {
				rows = append(rows, searchRow(search))
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(
				[]string{"Name", "Query", "Max price", "Max unit price", "Min quantity"},
				rows,
				3, 4, 5,
			))
			return nil
		},
	}
}

func searchRow(search config.Search) []string {
	maxPrice := "-"
	if search.MaxPrice != nil {
		maxPrice = fmt.Sprintf("%.2f €", *search.MaxPrice)
	}
	maxUnit := "-"
	if search.MaxUnitPrice != nil {
		maxUnit = fmt.Sprintf("%.4f €", *search.MaxUnitPrice)
	}
	minQty := "-"
	if search.MinQuantity != nil {
		minQty = strconv.Itoa(*search.MinQuantity)
	}
	return []string{search.Name, search.Query, maxPrice, maxUnit, minQty}
}
