package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/arxiv-digest/internal/store"
	"github.com/pdiddy/arxiv-digest/pkg/types"
)

var recordsCmd = &cobra.Command{
	Use:   "records",
	Short: "Inspect the record archive",
}

var recordsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List archived records, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openArchive(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		limit, _ := cmd.Flags().GetInt("limit")
		records, err := s.List(cmd.Context(), limit)
		if err != nil {
			return err
		}
		if len(records) == 0 {
			fmt.Println("No archived records.")
			return nil
		}

		fmt.Printf("%-14s  %-60s  %-10s  %s\n", "ID", "Title", "Created", "Authors")
		fmt.Println(strings.Repeat("-", 100))
		for _, r := range records {
			title := r.Title
			if len(title) > 60 {
				title = title[:57] + "..."
			}
			fmt.Printf("%-14s  %-60s  %-10s  %s\n", r.Identifier, title, r.Created, formatAuthors(r.Authors))
		}
		fmt.Printf("\n%d records\n", len(records))
		return nil
	},
}

var recordsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the archive to a YAML file",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openArchive(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		out, _ := cmd.Flags().GetString("out")
		if err := s.ExportYAML(cmd.Context(), out); err != nil {
			return err
		}
		fmt.Printf("archive exported to %s\n", out)
		return nil
	},
}

func init() {
	recordsCmd.PersistentFlags().String("archive-dir", "digest", "archive base directory")
	recordsListCmd.Flags().Int("limit", 0, "maximum records to list (default 20)")
	recordsExportCmd.Flags().String("out", "records.yaml", "export file path")

	recordsCmd.AddCommand(recordsListCmd)
	recordsCmd.AddCommand(recordsExportCmd)
	rootCmd.AddCommand(recordsCmd)
}

func openArchive(cmd *cobra.Command) (*store.Store, error) {
	dir, _ := cmd.Flags().GetString("archive-dir")
	return store.NewStore(types.StoreConfig{DigestDir: dir})
}

func formatAuthors(authors []string) string {
	switch len(authors) {
	case 0:
		return ""
	case 1:
		return authors[0]
	default:
		return authors[0] + " et al."
	}
}
