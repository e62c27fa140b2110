package main

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/charmbracelet/x/term"
	"github.com/nfnt/resize"
	"github.com/spf13/cobra"
	"github.com/taigrr/prism/pkg/render"
)

func newShowCmd() *cobra.Command {
	var cols int
	cmd := &cobra.Command{
		Use:   "show <image>",
		Short: "Print a PNG, JPEG or PPM image in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fb, err := loadImage(args[0])
			if err != nil {
				return err
			}
			if cols <= 0 {
				cols = terminalWidth()
			}
			fmt.Fprint(cmd.OutOrStdout(), fitToColumns(fb, cols).ANSI())
			return nil
		},
	}
	cmd.Flags().IntVarP(&cols, "cols", "c", 0, "width in terminal columns (default: terminal width)")
	return cmd
}

func loadImage(path string) (*render.Framebuffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	if fb, err := render.ReadPPM(f); err == nil {
		return fb, nil
	}
	if _, err := f.Seek(0, 0); err != nil {
		return nil, fmt.Errorf("rewind image: %w", err)
	}
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return render.FromImage(img), nil
}

// fitToColumns shrinks fb to at most cols pixels wide. Each terminal cell
// shows two pixels stacked, so square pixels keep their aspect.
func fitToColumns(fb *render.Framebuffer, cols int) *render.Framebuffer {
	if fb.Width <= cols {
		return fb
	}
	return render.FromImage(resize.Resize(uint(cols), 0, fb.ToImage(), resize.Bilinear))
}

func terminalWidth() int {
	w, _, err := term.GetSize(os.Stdout.Fd())
	if err != nil || w <= 0 {
		return 80
	}
	return w
}
