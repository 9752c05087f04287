package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:   "stage",
		Short: "Place 3-D model viewers into HTML documents",
		Long: `stage - viewport layout for embedded 3-D model viewers

Replaces <object src=... z=...> placeholders with <model-viewer> elements
sized, positioned and framed for a given screen size.`,
		SilenceUsage: true,
	}
	root.AddCommand(migrateCmd(), fitCmd(), snapshotCmd(), captureCmd(), playCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
