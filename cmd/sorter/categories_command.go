package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"sorter/internal/category"
)

func newCategoriesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "Show which folder each extension is sorted into",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			organized := make(map[string]struct{}, len(cfg.Organize.Extensions))
			for _, ext := range cfg.Organize.Extensions {
				organized[ext] = struct{}{}
			}

			rows := make([][]string, 0, len(organized))
			for _, entry := range category.Entries() {
				_, ok := organized[entry.Extension]
				folder := string(entry.Category)
				if category.IsArchive(entry.Extension) {
					folder = category.ArchivesDir + "/<name> (expanded)"
				}
				rows = append(rows, []string{entry.Extension, folder, yesNo(ok)})
				delete(organized, entry.Extension)
			}
			// Allow-listed extensions missing from the table land in Others.
			extra := make([]string, 0, len(organized))
			for ext := range organized {
				extra = append(extra, ext)
			}
			sort.Strings(extra)
			for _, ext := range extra {
				rows = append(rows, []string{ext, string(category.Resolve(ext)), yesNo(true)})
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderTable(tableSpec{
				Headers: []string{"Extension", "Folder", "Organized"},
				Rows:    rows,
			}))
			return nil
		},
	}
}
