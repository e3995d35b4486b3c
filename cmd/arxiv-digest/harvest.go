package main

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/arxiv-digest/internal/filter"
	"github.com/pdiddy/arxiv-digest/internal/harvest"
	"github.com/pdiddy/arxiv-digest/internal/render"
	"github.com/pdiddy/arxiv-digest/internal/store"
	"github.com/pdiddy/arxiv-digest/pkg/types"
)

var harvestCmd = &cobra.Command{
	Use:   "harvest",
	Short: "Fetch, filter, and render records for a category and date range",
	Long: `Harvest walks the OAI-PMH ListRecords pages for a category, retrying
rate-limited requests and stopping at the configured time budget. Retained
records are rendered to an HTML fragment and, when an archive directory is
configured, written to the record archive.`,
	RunE: runHarvest,
}

func init() {
	harvestCmd.Flags().String("category", "", "arXiv set to harvest (e.g. cs, stat.ML)")
	harvestCmd.Flags().String("from", "", "date range start, YYYY-MM-DD (default: yesterday)")
	harvestCmd.Flags().String("until", "", "date range end, YYYY-MM-DD (default: yesterday)")
	harvestCmd.Flags().Duration("retry-delay", 0, "wait before retrying a rate-limited request (default 30s)")
	harvestCmd.Flags().Duration("budget", 0, "total harvest time budget (default 5m)")
	harvestCmd.Flags().Duration("page-delay", 0, "minimum spacing between page requests")
	harvestCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 60s)")
	harvestCmd.Flags().String("filters", "", "YAML file mapping record fields to keyword lists")
	harvestCmd.Flags().String("output", "arxiv_papers.html", "HTML output path")
	harvestCmd.Flags().String("list-id", "", "id attribute of the fragment's container div")
	harvestCmd.Flags().String("archive-dir", "", "archive harvested records under this directory")

	rootCmd.AddCommand(harvestCmd)
}

func runHarvest(cmd *cobra.Command, args []string) error {
	cfg := types.HarvestConfig{
		Category: stringSetting(cmd, "category"),
		From:     stringSetting(cmd, "from"),
		Until:    stringSetting(cmd, "until"),
	}
	cfg.RetryDelay, _ = cmd.Flags().GetDuration("retry-delay")
	cfg.Budget, _ = cmd.Flags().GetDuration("budget")
	cfg.PageDelay, _ = cmd.Flags().GetDuration("page-delay")
	cfg.Timeout, _ = cmd.Flags().GetDuration("timeout")
	cfg.ApplyDefaults(time.Now())

	if cfg.Category == "" {
		return fmt.Errorf("provide a category via --category, the config file, or ARXIV_DIGEST_CATEGORY")
	}

	if path := stringSetting(cmd, "filters"); path != "" {
		filters, err := filter.LoadFile(path)
		if err != nil {
			return err
		}
		cfg.Filters = filters
	} else if viper.IsSet("filters") {
		cfg.Filters = viper.GetStringMapStringSlice("filters")
	}

	client := &http.Client{Timeout: cfg.Timeout}

	records, harvestErr := harvest.Harvest(cmd.Context(), client, cfg, os.Stdout)
	if harvestErr != nil && !errors.Is(harvestErr, harvest.ErrMalformedResponse) {
		return harvestErr
	}
	if errors.Is(harvestErr, harvest.ErrMalformedResponse) {
		fmt.Fprintf(os.Stderr, "warning: %v; rendering the %d records harvested so far\n", harvestErr, len(records))
	}

	output := stringSetting(cmd, "output")
	renderer := render.New(types.RenderConfig{ListID: stringSetting(cmd, "list-id")}, time.Now())
	if err := renderer.WriteFile(records, output); err != nil {
		return err
	}
	fmt.Printf("HTML fragment saved as %s (%d records)\n", output, len(records))

	if archiveDir := stringSetting(cmd, "archive-dir"); archiveDir != "" {
		s, err := store.NewStore(types.StoreConfig{DigestDir: archiveDir})
		if err != nil {
			return err
		}
		defer s.Close()

		n, err := s.Upsert(cmd.Context(), records)
		if err != nil {
			return err
		}
		fmt.Printf("archived %d records under %s\n", n, archiveDir)
	}

	if harvestErr != nil {
		return fmt.Errorf("harvest incomplete: %w", harvestErr)
	}
	return nil
}
