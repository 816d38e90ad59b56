package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	appLogger "github.com/FACorreiaa/go-gas-station-finder/app/logger"
	appMiddleware "github.com/FACorreiaa/go-gas-station-finder/app/middleware"
	"github.com/FACorreiaa/go-gas-station-finder/config"
	"github.com/FACorreiaa/go-gas-station-finder/internal/container"
	"github.com/FACorreiaa/go-gas-station-finder/internal/types"
)

var lookupCmd = &cobra.Command{
	Use:   "lookup <query...>",
	Short: "Run a single location query and print the result",
	Long:  "Runs one message through the finder pipeline, prints the preview text and writes the CSV export, if any, into the output directory.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runLookup,
}

var (
	lookupOutDir  string
	lookupVariant string
	lookupQuiet   bool
)

func init() {
	lookupCmd.Flags().StringVarP(&lookupOutDir, "out", "o", ".", "Directory the CSV export is written to")
	lookupCmd.Flags().StringVar(&lookupVariant, "variant", "", "Override finder.variant (bulk or ranked)")
	lookupCmd.Flags().BoolVarP(&lookupQuiet, "quiet", "q", false, "Do not print progress updates")
	rootCmd.AddCommand(lookupCmd)
}

func runLookup(cmd *cobra.Command, args []string) error {
	cfg, err := config.InitConfig()
	if err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}
	if lookupVariant != "" {
		cfg.Finder.Variant = lookupVariant
		if err := config.Validate(&cfg); err != nil {
			return err
		}
	}
	// The CLI never publishes events.
	cfg.Kafka.Enabled = false

	logger := appLogger.New(cfg.Mode, os.Stderr)

	c, err := container.NewContainer(&cfg, nil, logger)
	if err != nil {
		return fmt.Errorf("failed to build container: %w", err)
	}
	defer c.Close()

	out := cmd.OutOrStdout()
	progress := func(update string) {
		if !lookupQuiet {
			fmt.Fprintln(cmd.ErrOrStderr(), update)
		}
	}

	ctx := appMiddleware.WithSearchID(context.Background(), uuid.New())
	result, err := c.FinderService.HandleWithProgress(ctx, strings.Join(args, " "), progress)
	if err != nil {
		return fmt.Errorf("lookup failed: %w", err)
	}

	if result.Export != nil {
		path, err := writeExport(lookupOutDir, result.Export)
		if err != nil {
			return err
		}
		logger.Info("Export written", slog.String("path", path))
	}

	fmt.Fprintln(out, result.FinalText)
	return nil
}

func writeExport(dir string, export *types.ExportFile) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}
	path := filepath.Join(dir, export.Filename)
	if err := os.WriteFile(path, export.Content, 0o644); err != nil {
		return "", fmt.Errorf("failed to write export %s: %w", path, err)
	}
	return path, nil
}
