package main

import (
	"errors"
	"fmt"
	"log"
	"math"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/taigrr/prism/pkg/material"
	"github.com/taigrr/prism/pkg/models"
	"github.com/taigrr/prism/pkg/scene"
)

// sceneFlags selects the world a command works on.
type sceneFlags struct {
	preset     string
	path       string
	fov        float64 // degrees; 0 keeps the scene's own
	lightColor string  // hex; empty keeps the scene's own
}

func (f *sceneFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.preset, "preset", "p", "", "built-in scene (see 'prism presets')")
	cmd.Flags().StringVarP(&f.path, "scene", "s", "", "glTF or GLB scene file")
	cmd.Flags().Float64Var(&f.fov, "fov", 0, "field of view in degrees (default: the scene's)")
	cmd.Flags().StringVar(&f.lightColor, "light", "", "light color as hex, e.g. #ffeecc")
	cmd.MarkFlagsMutuallyExclusive("preset", "scene")
}

// load builds the world and camera, and returns a short name for them.
func (f *sceneFlags) load() (*scene.World, scene.CameraSpec, string, error) {
	var (
		w    *scene.World
		cam  scene.CameraSpec
		name string
		err  error
	)
	switch {
	case f.path != "":
		w, cam, err = models.LoadScene(f.path)
		if err != nil {
			return nil, cam, "", fmt.Errorf("load scene: %w", err)
		}
		name = filepath.Base(f.path)
	default:
		name = f.preset
		if name == "" {
			name = "default"
		}
		w, cam, err = scene.Preset(name)
		if err != nil {
			return nil, cam, "", err
		}
	}

	if f.fov < 0 || f.fov >= 180 {
		return nil, cam, "", fmt.Errorf("fov %v out of range (0, 180)", f.fov)
	}
	if f.fov > 0 {
		cam.FOV = f.fov * math.Pi / 180
	}
	if f.lightColor != "" {
		if w.Light == nil {
			return nil, cam, "", errors.New("--light given but the scene has no light")
		}
		c, err := material.ParseHex(f.lightColor)
		if err != nil {
			return nil, cam, "", fmt.Errorf("parse --light: %w", err)
		}
		w.Light.Intensity = c
	}

	log.Printf("Loaded %s: %d objects", name, len(w.Objects))
	return w, cam, name, nil
}

func newPresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List the built-in scenes",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range scene.PresetNames() {
				w, _, _ := scene.Preset(name)
				printSummary(cmd.OutOrStdout(), [][2]string{{name, fmt.Sprintf("%d objects", len(w.Objects))}})
			}
		},
	}
}
