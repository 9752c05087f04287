package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/cobra"

	"model-stage/internal/config"
	"model-stage/internal/document"
	"model-stage/internal/geometry"
	"model-stage/internal/migrate"
	"model-stage/internal/script"
	"model-stage/internal/viewer"
)

func playCmd() *cobra.Command {
	var (
		configFile string
		output     string
		trace      bool
		flags      config.Flags
	)
	cmd := &cobra.Command{
		Use:   "play <file.html> <script.json>",
		Short: "Migrate a document, replay a viewer script on it and write the result",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var cfg config.Config
			if configFile != "" {
				var err error
				cfg, err = config.Load(configFile)
				if err != nil {
					return err
				}
			}
			cfg.Resolve(flags)

			s, err := script.Load(args[1])
			if err != nil {
				return err
			}
			doc, err := document.Load(args[0])
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			frame := geometry.FixedFrame(cfg.Frame())
			m := migrate.Migrator{Doc: doc, Frame: frame, Capability: viewer.DefinedRegistry()}
			if _, err := m.Run(ctx); err != nil {
				return err
			}

			r := script.NewRunner(doc, frame, cfg.TransitionOptions(), cfg.Animation())
			if trace {
				var mu sync.Mutex
				obsCtx, stop := context.WithCancel(ctx)
				wait := script.Observe(obsCtx, doc, cfg.SampleInterval(), func(id string, b geometry.Rect) {
					mu.Lock()
					defer mu.Unlock()
					fmt.Printf("  %-12s %.0fx%.0f at (%.0f,%.0f)\n", id, b.Width, b.Height, b.Left, b.Top)
				})
				defer wait()
				defer stop()
			}
			if err := r.Run(ctx, s); err != nil {
				return err
			}

			if output == "" {
				output = filepath.Join(cfg.OutputDir, filepath.Base(args[0]))
			}
			if err := os.MkdirAll(filepath.Dir(output), 0755); err != nil {
				return err
			}
			f, err := os.Create(output)
			if err != nil {
				return err
			}
			defer f.Close()
			if err := doc.Render(f); err != nil {
				return err
			}
			fmt.Printf("Played %d step(s), wrote %s\n", len(s.Steps), output)
			return nil
		},
	}
	cmd.Flags().StringVar(&configFile, "config", "", "Path to config.json file")
	cmd.Flags().StringVar(&output, "output", "", "Output file (default: <output dir>/<file>)")
	cmd.Flags().BoolVar(&trace, "trace", false, "Print viewer box changes while playing")
	cmd.Flags().Float64Var(&flags.Width, "width", 0, "Frame width in pixels (default: 1280)")
	cmd.Flags().Float64Var(&flags.Height, "height", 0, "Frame height in pixels (default: 720)")
	return cmd
}
