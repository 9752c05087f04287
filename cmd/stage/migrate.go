package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"model-stage/internal/batch"
	"model-stage/internal/config"
)

func migrateCmd() *cobra.Command {
	var (
		configFile string
		flags      config.Flags
	)
	cmd := &cobra.Command{
		Use:   "migrate <file.html>...",
		Short: "Migrate placeholders of one or more documents",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Load config
			var cfg config.Config
			if configFile != "" {
				var err error
				cfg, err = config.Load(configFile)
				if err != nil {
					return err
				}
			}
			// CLI flags override config file
			cfg.Resolve(flags)
			return runMigrate(cmd.Context(), cfg, args)
		},
	}
	cmd.Flags().StringVar(&configFile, "config", "", "Path to config.json file")
	cmd.Flags().StringVar(&flags.OutputDir, "output", "", "Output directory (default: ./staged)")
	cmd.Flags().Float64Var(&flags.Width, "width", 0, "Frame width in pixels (default: 1280)")
	cmd.Flags().Float64Var(&flags.Height, "height", 0, "Frame height in pixels (default: 720)")
	cmd.Flags().IntVar(&flags.Workers, "workers", 0, "Number of worker goroutines (default: NumCPU)")
	cmd.Flags().BoolVar(&flags.Preview, "preview", false, "Write a WebP layout preview per document")
	return cmd
}

func runMigrate(ctx context.Context, cfg config.Config, paths []string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	fmt.Printf("Documents: %d, Workers: %d\n", len(paths), cfg.Workers)
	fmt.Printf("Frame: %.0fx%.0f\n", cfg.FrameWidth, cfg.FrameHeight)
	fmt.Printf("Output: %s\n", cfg.OutputDir)
	fmt.Println("------------------------------------------------------------")

	start := time.Now()
	results := batch.Run(ctx, batch.Config{
		BaseDir:      cfg.BaseDir,
		OutputDir:    cfg.OutputDir,
		Frame:        cfg.Frame(),
		Preview:      cfg.Preview,
		PreviewWidth: cfg.PreviewWidth,
		Workers:      cfg.Workers,
		Progress: func(done, total int, rate float64) {
			fmt.Printf("  [%d/%d] %.1f docs/sec\n", done, total, rate)
		},
	}, paths)

	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", time.Since(start).Seconds())

	success, viewers := 0, 0
	var failed []batch.Result
	for _, r := range results {
		if r.Success {
			success++
			viewers += len(r.Viewers)
		} else {
			failed = append(failed, r)
		}
	}
	fmt.Printf("Migrated: %d/%d documents, %d viewers\n", success, len(results), viewers)

	if len(failed) > 0 {
		fmt.Printf("\nFailed (%d):\n", len(failed))
		for _, r := range failed[:min(len(failed), 20)] {
			fmt.Printf("  %s: %s\n", r.Source, r.Error)
		}
	}

	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	if err := os.MkdirAll(cfg.OutputDir, 0755); err == nil {
		if err := batch.WriteManifest(manifestPath, results); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
		} else {
			fmt.Printf("Manifest: %s\n", manifestPath)
		}
	}

	if len(failed) > 0 {
		return fmt.Errorf("%d document(s) failed", len(failed))
	}
	return nil
}
