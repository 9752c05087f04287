package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"model-stage/internal/capture"
	"model-stage/internal/preview"
)

func captureCmd() *cobra.Command {
	var (
		specks float64
		crop   bool
		out    string
	)
	cmd := &cobra.Command{
		Use:   "capture <image>",
		Short: "Report the visible area of a captured viewer image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			img, err := capture.Load(args[0])
			if err != nil {
				return err
			}
			if specks > 0 {
				img = capture.RemoveSpecks(img, specks)
			}
			b := capture.VisibleBounds(img)
			fmt.Printf("Image:    %dx%d\n", img.Bounds().Dx(), img.Bounds().Dy())
			fmt.Printf("Visible:  %v\n", b)
			fmt.Printf("Coverage: %.2f%%\n", capture.Coverage(img)*100)

			if out == "" {
				return nil
			}
			if crop {
				img = capture.Crop(img)
			}
			if err := preview.WriteWebP(out, img); err != nil {
				return err
			}
			fmt.Printf("Wrote:    %s\n", out)
			return nil
		},
	}
	cmd.Flags().Float64Var(&specks, "despeckle", 0, "Drop blobs smaller than this share of visible pixels (e.g. 0.05)")
	cmd.Flags().BoolVar(&crop, "crop", false, "Crop the written image to its visible area")
	cmd.Flags().StringVar(&out, "out", "", "Write the cleaned capture as WebP")
	return cmd
}
