package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"model-stage/internal/geometry"
	"model-stage/internal/placement"
	"model-stage/internal/viewport"
)

func fitCmd() *cobra.Command {
	var (
		width, height float64
		attrs         = map[string]*string{}
	)
	cmd := &cobra.Command{
		Use:   "fit",
		Short: "Print the viewer geometry for one placement declaration",
		RunE: func(cmd *cobra.Command, args []string) error {
			decl := map[string]string{}
			for name, v := range attrs {
				if *v != "" {
					decl[name] = *v
				}
			}
			spec, err := placement.Parse(decl)
			if err != nil {
				return err
			}
			geo := viewport.Fit(spec, geometry.Frame{Width: width, Height: height})
			fmt.Printf("left:          %.2fpx\n", geo.Left)
			fmt.Printf("top:           %.2fpx\n", geo.Top)
			fmt.Printf("width:         %.2fpx\n", geo.Width)
			fmt.Printf("height:        %.2fpx\n", geo.Height)
			fmt.Printf("field-of-view: %.4fdeg\n", geo.FieldOfView)
			fmt.Printf("camera-orbit:  %gdeg %gdeg %gm\n",
				geo.Orbit.YawDeg, geo.Orbit.PitchDeg, geo.Orbit.DistanceMeters)
			return nil
		},
	}
	cmd.Flags().Float64Var(&width, "width", 1280, "Frame width in pixels")
	cmd.Flags().Float64Var(&height, "height", 720, "Frame height in pixels")
	for name, def := range map[string]string{
		placement.AttrSource:    "model.glb",
		placement.AttrZ:         "1",
		placement.AttrSize:      "",
		placement.AttrRatio:     "",
		placement.AttrPos:       "",
		placement.AttrRotationX: "",
		placement.AttrRotationY: "",
		placement.AttrRotationZ: "",
	} {
		attrs[name] = cmd.Flags().String(name, def, "placeholder "+name+" attribute")
	}
	return cmd
}
