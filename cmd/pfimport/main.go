// cmd/pfimport/main.go
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pfman/portfolio-import/pkg/client"
	"github.com/pfman/portfolio-import/pkg/config"
	"github.com/pfman/portfolio-import/pkg/logging"
	"github.com/pfman/portfolio-import/pkg/model"
	"github.com/pfman/portfolio-import/pkg/wizard"
)

func main() {
	// .env is optional; real env vars win either way
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.NewLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to set up logging: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	root := newRootCmd(cfg, logger)
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(cfg *config.Config, logger *zap.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:           "pfimport",
		Short:         "Import a property portfolio from a CSV file",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.AddCommand(
		newTemplateCmd(),
		newInspectCmd(cfg, logger),
		newValidateCmd(cfg, logger),
		newImportCmd(cfg, logger),
	)

	return root
}

func newTemplateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "template",
		Short: "Print the CSV template header",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), model.TemplateHeader())
			return nil
		},
	}
}

// newWizardForFile creates a wizard and feeds it the given CSV file, leaving
// it on the mapping step.
func newWizardForFile(path string, api client.PortfolioAPI, cfg *config.Config, logger *zap.Logger) (*wizard.Wizard, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	w, err := wizard.New(api, cfg, logger)
	if err != nil {
		return nil, err
	}
	w.WithProgress(func(processed, total int) {
		logger.Debug("Processing rows",
			zap.Int("processed", processed),
			zap.Int("total", total))
	})

	if err := w.SelectFile(info.Name(), info.Size(), string(content)); err != nil {
		return nil, err
	}

	return w, nil
}

func newInspectCmd(cfg *config.Config, logger *zap.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <file.csv>",
		Short: "Show the suggested column mapping for a CSV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := newWizardForFile(args[0], nil, cfg, logger)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			mapping := w.Mapping()
			for _, col := range mapping.Columns() {
				field := mapping.Get(col)
				if field == model.FieldIgnored {
					fmt.Fprintf(out, "%-30s -> (ignored)\n", col)
				} else {
					fmt.Fprintf(out, "%-30s -> %s\n", col, field)
				}
			}

			if w.MappingSufficient() {
				fmt.Fprintln(out, "\nMapping is sufficient for geocoding.")
			} else {
				fmt.Fprintln(out, "\nMapping is NOT sufficient for geocoding.")
			}
			return nil
		},
	}
}

func newValidateCmd(cfg *config.Config, logger *zap.Logger) *cobra.Command {
	var mappingFile string

	cmd := &cobra.Command{
		Use:   "validate <file.csv>",
		Short: "Map and validate a CSV file without submitting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := newWizardForFile(args[0], nil, cfg, logger)
			if err != nil {
				return err
			}
			if err := applyMappingOverrides(w, mappingFile); err != nil {
				return err
			}
			if err := w.AdvanceToReview(cmd.Context()); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			stats := w.Stats()
			fmt.Fprintf(out, "Rows: %d total, %d valid, %d invalid\n",
				stats.TotalRows, stats.ValidRows, stats.InvalidRows)

			for _, row := range w.FilteredRows(wizard.RowsFilter{InvalidOnly: true}) {
				fmt.Fprintf(out, "row %d:\n", row.OriginalIndex+1)
				for _, msg := range row.Errors {
					fmt.Fprintf(out, "  - %s\n", msg)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&mappingFile, "mapping", "", "YAML file of column-to-field overrides")
	return cmd
}

func newImportCmd(cfg *config.Config, logger *zap.Logger) *cobra.Command {
	var (
		mappingFile string
		title       string
		description string
	)

	cmd := &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Run the whole pipeline and submit the portfolio",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := client.NewClient(cfg.APIBaseURL, cfg.HTTPTimeout, logger)
			if err != nil {
				return err
			}

			w, err := newWizardForFile(args[0], api, cfg, logger)
			if err != nil {
				return err
			}
			if err := applyMappingOverrides(w, mappingFile); err != nil {
				return err
			}
			if err := w.AdvanceToReview(cmd.Context()); err != nil {
				return err
			}
			if err := w.AdvanceToDetails(); err != nil {
				return err
			}
			if err := w.SetDetails(title, description); err != nil {
				return err
			}
			if err := w.Submit(cmd.Context()); err != nil {
				return err
			}

			stats := w.Stats()
			stats.LogSummary(logger)
			fmt.Fprintf(cmd.OutOrStdout(),
				"Portfolio %q created with %d properties (%d invalid rows skipped)\n",
				w.Draft().Title, stats.ValidRows, stats.InvalidRows)
			return nil
		},
	}

	cmd.Flags().StringVar(&mappingFile, "mapping", "", "YAML file of column-to-field overrides")
	cmd.Flags().StringVar(&title, "title", "", "portfolio title (required, 3-100 characters)")
	cmd.Flags().StringVar(&description, "description", "", "portfolio description (optional)")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}
