package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"sortdir/internal/category"
)

func newCategoriesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List the effective extension to category table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			table, err := category.New(cfg.Categories)
			if err != nil {
				return err
			}

			groups := table.Categories()
			rows := make([][]string, 0, len(groups)+1)
			for _, group := range groups {
				rows = append(rows, []string{group.Name, strconv.Itoa(len(group.Extensions)), strings.Join(group.Extensions, " ")})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable([]string{"Category", "Count", "Extensions"}, rows, []columnAlignment{alignLeft, alignRight}))
			fmt.Fprintf(out, "Unknown extensions go to \"<EXT> Files\"; files without one go to %q.\n", category.FallbackCategory)
			if n := len(cfg.Categories); n > 0 {
				fmt.Fprintf(out, "%d override(s) from configuration applied.\n", n)
			}
			return nil
		},
	}
}
