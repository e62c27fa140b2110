// prism - Whitted-style ray tracer
// Render built-in or glTF scenes to PNG/PPM, or orbit them live in the
// terminal.
//
// Viewer controls:
//
//	Mouse drag  - Orbit the camera
//	Scroll      - Zoom in/out
//	W/S         - Orbit up/down
//	A/D         - Orbit left/right
//	+/-         - Zoom in/out
//	R           - Reset view
//	[ / ]       - Fewer/more bounces
//	?           - Toggle HUD overlay
//	Esc         - Quit
package main

import (
	"context"
	"os"
	"syscall"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	if err := fang.Execute(
		context.Background(),
		newRootCmd(),
		fang.WithVersion(version),
		fang.WithNotifySignal(os.Interrupt, syscall.SIGTERM),
	); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "prism",
		Short: "A recursive ray tracer for spheres, planes and glass",
		Long: "prism traces reflections, refractions and hard shadows for scenes built from\n" +
			"spheres and planes. Scenes come from built-in presets or glTF files.",
	}
	root.AddCommand(
		newRenderCmd(),
		newViewCmd(),
		newShowCmd(),
		newExportCmd(),
		newPresetsCmd(),
	)
	return root
}
