package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"github.com/taigrr/prism/pkg/models"
)

func newExportCmd() *cobra.Command {
	var sf sceneFlags
	cmd := &cobra.Command{
		Use:   "export <out.gltf|out.glb>",
		Short: "Write a scene as glTF for editing in other tools",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, cam, name, err := sf.load()
			if err != nil {
				return err
			}
			if err := models.SaveScene(args[0], w, cam); err != nil {
				return fmt.Errorf("export %s: %w", name, err)
			}
			log.Printf("Exported %s to %s", name, args[0])
			return nil
		},
	}
	sf.register(cmd)
	return cmd
}
