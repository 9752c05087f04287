package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"model-stage/internal/document"
	"model-stage/internal/geometry"
	"model-stage/internal/migrate"
	"model-stage/internal/snapshot"
	"model-stage/internal/viewer"
)

func snapshotCmd() *cobra.Command {
	var width, height float64
	cmd := &cobra.Command{
		Use:   "snapshot <file.html> <viewer-id>",
		Short: "Migrate a document and print one viewer's state as JSON",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := document.Load(args[0])
			if err != nil {
				return err
			}
			m := migrate.Migrator{
				Doc:        doc,
				Frame:      geometry.FixedFrame{Width: width, Height: height},
				Capability: viewer.DefinedRegistry(),
			}
			if _, err := m.Run(cmd.Context()); err != nil {
				return err
			}
			state, ok := snapshot.Capture(doc.ByID(args[1]))
			if !ok {
				return fmt.Errorf("no viewer with id %q", args[1])
			}
			data, err := snapshot.Marshal(state)
			if err != nil {
				return err
			}
			fmt.Println(string(data))
			return nil
		},
	}
	cmd.Flags().Float64Var(&width, "width", 1280, "Frame width in pixels")
	cmd.Flags().Float64Var(&height, "height", 720, "Frame height in pixels")
	return cmd
}
