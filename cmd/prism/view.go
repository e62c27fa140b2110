package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"time"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/harmonica"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/spf13/cobra"
	"github.com/taigrr/prism/pkg/math3d"
	"github.com/taigrr/prism/pkg/render"
	"github.com/taigrr/prism/pkg/scene"
)

type viewOptions struct {
	scene sceneFlags
	fps   int
	depth int
}

func newViewCmd() *cobra.Command {
	var opts viewOptions
	cmd := &cobra.Command{
		Use:   "view",
		Short: "Orbit a scene interactively in the terminal",
		Long: "view traces the scene at terminal resolution and re-traces it as the camera moves.\n\n" +
			"Controls:\n" +
			"  Mouse drag  - Orbit the camera\n" +
			"  Scroll      - Zoom in/out\n" +
			"  W/S/A/D     - Orbit up/down/left/right\n" +
			"  +/-         - Zoom in/out\n" +
			"  L           - Position light (mouse to aim, click to set)\n" +
			"  [ / ]       - Fewer/more bounces\n" +
			"  R           - Reset view\n" +
			"  ?           - Toggle HUD overlay\n" +
			"  Esc         - Quit",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runView(cmd.Context(), opts)
		},
	}
	opts.scene.register(cmd)
	cmd.Flags().IntVar(&opts.fps, "fps", 30, "target FPS for camera motion")
	cmd.Flags().IntVarP(&opts.depth, "depth", "d", 3, "maximum reflection/refraction bounces")
	return cmd
}

// SpringAxis carries a velocity that decays smoothly to zero.
type SpringAxis struct {
	Velocity float64
	spring   harmonica.Spring
	accel    float64 // internal spring velocity (for animating Velocity toward 0)
}

// NewSpringAxis creates an axis with harmonica spring for smooth velocity decay
func NewSpringAxis(fps int) SpringAxis {
	return SpringAxis{
		// Frequency 4.0 = moderate speed, damping 1.0 = critically damped (no overshoot)
		spring: harmonica.NewSpring(harmonica.FPS(fps), 4.0, 1.0),
	}
}

// Step returns how far the axis moves this frame and decays the velocity.
func (a *SpringAxis) Step() float64 {
	d := a.Velocity
	a.Velocity, a.accel = a.spring.Update(a.Velocity, a.accel, 0)
	if math.Abs(a.Velocity) < 1e-4 && math.Abs(a.accel) < 1e-4 {
		a.Velocity, a.accel = 0, 0
	}
	return d
}

// OrbitMotion drives an Orbit from impulses.
type OrbitMotion struct {
	Pitch, Yaw, Zoom SpringAxis
	fps              int
}

func NewOrbitMotion(fps int) *OrbitMotion {
	m := &OrbitMotion{fps: fps}
	m.Reset()
	return m
}

func (m *OrbitMotion) ApplyImpulse(pitch, yaw, zoom float64) {
	m.Pitch.Velocity += pitch
	m.Yaw.Velocity += yaw
	m.Zoom.Velocity += zoom
}

func (m *OrbitMotion) Reset() {
	m.Pitch = NewSpringAxis(m.fps)
	m.Yaw = NewSpringAxis(m.fps)
	m.Zoom = NewSpringAxis(m.fps)
}

// Update advances one frame and reports whether the orbit moved.
func (m *OrbitMotion) Update(o *render.Orbit) bool {
	dp, dy, dz := m.Pitch.Step(), m.Yaw.Step(), m.Zoom.Step()
	if dp == 0 && dy == 0 && dz == 0 {
		return false
	}
	o.Rotate(dp, dy)
	o.Zoom(dz)
	return true
}

// ViewState holds all view-related settings (UI state, not library code)
type ViewState struct {
	Depth        int
	LightMode    bool        // Whether in light positioning mode
	PendingLight math3d.Vec3 // Light position while positioning
	ApplyLight   bool        // Move the light to PendingLight before the next frame
	ShowHUD      bool        // Whether to show the HUD overlay
}

// ScreenToLight maps a screen position onto the hemisphere above target,
// at the light's current distance from it.
func (v *ViewState) ScreenToLight(screenX, screenY, width, height int, target, light math3d.Vec3, yaw float64) math3d.Vec3 {
	// Normalize to [-1, 1]
	nx := (float64(screenX)/float64(width))*2 - 1
	nz := (float64(screenY)/float64(height))*2 - 1

	// Clamp to unit circle
	lenSq := nx*nx + nz*nz
	if lenSq > 1 {
		l := math.Sqrt(lenSq)
		nx /= l
		nz /= l
		lenSq = 1
	}
	ny := math.Sqrt(1 - lenSq)

	// Screen right/down follow the camera's heading
	dir := math3d.RotateY(-yaw).MulVec3Dir(math3d.V3(nx, ny, -nz))
	dist := light.Distance(target)
	if dist == 0 {
		dist = 10
	}
	return target.Add(dir.Normalize().Scale(dist))
}

// HUD renders an overlay with scene info and controls
type HUD struct {
	name      string
	objects   int
	frameTime time.Duration
	fps       float64
	fpsFrames int
	fpsTime   time.Time
}

// NewHUD creates a new HUD
func NewHUD(name string, objects int) *HUD {
	return &HUD{name: name, objects: objects, fpsTime: time.Now()}
}

// FrameDone records a displayed frame and how long it took to trace.
func (h *HUD) FrameDone(traced time.Duration) {
	h.frameTime = traced
	h.fpsFrames++
	elapsed := time.Since(h.fpsTime)
	if elapsed >= time.Second {
		h.fps = float64(h.fpsFrames) / elapsed.Seconds()
		h.fpsFrames = 0
		h.fpsTime = time.Now()
	}
}

var (
	hudStyle   = lipgloss.NewStyle().Background(lipgloss.Color("#000000")).Foreground(lipgloss.Color("#FFFFFF"))
	hudFPS     = hudStyle.Foreground(lipgloss.Color("#50FA7B"))
	hudTitle   = hudStyle.Bold(true)
	hudCount   = hudStyle.Foreground(lipgloss.Color("#8BE9FD")).Bold(true)
	hudHint    = hudStyle.Foreground(lipgloss.Color("#F1FA8C")).Faint(true)
	hudLightOn = hudStyle.Foreground(lipgloss.Color("#F1FA8C")).Bold(true)
)

// Render draws the HUD overlay directly to the terminal
func (h *HUD) Render(width, height int, state *ViewState, busy bool) {
	const clearLine = "\x1b[2K"

	// Helper to position cursor
	moveTo := func(row, col int) string {
		return fmt.Sprintf("\x1b[%d;%dH", row, col)
	}

	// Always clear the HUD rows (so toggling off works)
	fmt.Print(moveTo(1, 1) + clearLine)
	fmt.Print(moveTo(height, 1) + clearLine)

	// Light mode always shows its indicator
	if state.LightMode {
		msg := hudLightOn.Render(" ◉ LIGHT MODE - Move mouse to position, click to set, Esc to cancel ")
		fmt.Print(moveTo(height, max((width-lipgloss.Width(msg))/2, 1)) + msg)
		return
	}

	if !state.ShowHUD {
		return
	}

	// Top left: FPS and trace time
	fps := hudFPS.Render(fmt.Sprintf(" %.0f FPS %v ", h.fps, h.frameTime.Round(time.Millisecond)))
	fmt.Print(moveTo(1, 1) + fps)

	// Top middle: scene name
	title := hudTitle.Render(" " + h.name + " ")
	fmt.Print(moveTo(1, max((width-lipgloss.Width(title))/2, 1)) + title)

	// Top right: object count
	count := hudCount.Render(fmt.Sprintf(" %d objects ", h.objects))
	fmt.Print(moveTo(1, max(width-lipgloss.Width(count)+1, 1)) + count)

	// Bottom: depth and status
	status := fmt.Sprintf(" depth %d ", state.Depth)
	if busy {
		status += "· tracing "
	}
	fmt.Print(moveTo(height, 1) + hudStyle.Render(status))

	hint := hudHint.Render(" L: position light ")
	fmt.Print(moveTo(height, max(width-lipgloss.Width(hint)+1, 1)) + hint)
}

// frame is one finished (or abandoned) trace.
type frame struct {
	canvas  *render.Canvas
	elapsed time.Duration
	err     error
}

// frameTrace is a trace running in the background.
type frameTrace struct {
	ctx    context.Context
	cancel context.CancelFunc
	done   <-chan frame
}

// startFrame traces the world on a worker pool. The done channel receives
// exactly one frame. The world must not change until it does.
func startFrame(ctx context.Context, w *scene.World, view math3d.Mat4, fov float64, width, height, depth int) *frameTrace {
	ctx, cancel := context.WithCancel(ctx)
	out := make(chan frame, 1)

	camera := render.NewCamera(width, height, fov)
	camera.SetTransform(view)

	go func() {
		start := time.Now()
		canvas, err := camera.RenderWith(ctx, w, render.Options{Depth: depth})
		out <- frame{canvas: canvas, elapsed: time.Since(start), err: err}
	}()
	return &frameTrace{ctx: ctx, cancel: cancel, done: out}
}

// Done returns the channel the frame arrives on, or nil for no trace.
func (t *frameTrace) Done() <-chan frame {
	if t == nil {
		return nil
	}
	return t.done
}

// Finish releases the trace's context after its frame was received.
func (t *frameTrace) Finish() {
	t.cancel()
}

// Abandon cancels the trace and waits for its workers to stop.
func (t *frameTrace) Abandon() {
	t.cancel()
	<-t.done
}

func runView(ctx context.Context, opts viewOptions) error {
	w, camSpec, name, err := opts.scene.load()
	if err != nil {
		return err
	}
	if opts.fps <= 0 {
		return fmt.Errorf("fps must be positive, got %d", opts.fps)
	}

	// Create terminal
	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	// Enable mouse mode
	fmt.Fprint(os.Stdout, "\x1b[?1003h") // Enable any-event mouse tracking
	fmt.Fprint(os.Stdout, "\x1b[?1006h") // Enable SGR extended mouse mode

	cleanup := func() {
		fmt.Fprint(os.Stdout, "\x1b[?1003l")
		fmt.Fprint(os.Stdout, "\x1b[?1006l")
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}

	termRenderer := render.NewTerminalRenderer(term, width, height)
	fbWidth, fbHeight := termRenderer.FramebufferSize()

	orbit := render.NewOrbit(camSpec.From, camSpec.To)
	home := *orbit
	motion := NewOrbitMotion(opts.fps)
	state := &ViewState{Depth: opts.depth, ShowHUD: true}
	hud := NewHUD(name, len(w.Objects))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Input state
	const (
		orbitStrength = 1.5
		zoomStep      = 0.5
	)
	var mouseDown bool
	var lastMouseX, lastMouseY int

	var (
		trace *frameTrace
		dirty = true
	)
	abandonFrame := func() {
		if trace != nil {
			// Wait so the world is not touched while rows are in flight.
			trace.Abandon()
		}
		trace = nil
	}
	defer abandonFrame()

	targetDuration := time.Second / time.Duration(opts.fps)
	ticker := time.NewTicker(targetDuration)
	defer ticker.Stop()
	events := term.Events()

	for {
		select {
		case <-ctx.Done():
			abandonFrame()
			cleanup()
			return nil

		case ev := <-events:
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				width, height = ev.Width, ev.Height
				term.Erase()
				term.Resize(width, height)
				termRenderer = render.NewTerminalRenderer(term, width, height)
				fbWidth, fbHeight = termRenderer.FramebufferSize()
				// The frame in flight has the old size.
				abandonFrame()
				dirty = true

			case uv.KeyPressEvent:
				switch {
				case ev.MatchString("escape"):
					if state.LightMode {
						state.LightMode = false
					} else {
						cancel()
					}
				case ev.MatchString("ctrl+c"):
					cancel()
				case ev.MatchString("r"):
					motion.Reset()
					*orbit = home
					dirty = true
				case ev.MatchString("w", "up"):
					motion.ApplyImpulse(orbitStrength/float64(opts.fps), 0, 0)
				case ev.MatchString("s", "down"):
					motion.ApplyImpulse(-orbitStrength/float64(opts.fps), 0, 0)
				case ev.MatchString("a", "left"):
					motion.ApplyImpulse(0, -orbitStrength/float64(opts.fps), 0)
				case ev.MatchString("d", "right"):
					motion.ApplyImpulse(0, orbitStrength/float64(opts.fps), 0)
				case ev.MatchString("+", "="):
					motion.ApplyImpulse(0, 0, -zoomStep)
				case ev.MatchString("-", "_"):
					motion.ApplyImpulse(0, 0, zoomStep)
				case ev.MatchString("["):
					if state.Depth > 1 {
						state.Depth--
						dirty = true
					}
				case ev.MatchString("]"):
					state.Depth++
					dirty = true
				case ev.MatchString("l"):
					if w.Light != nil {
						state.LightMode = true
						state.PendingLight = w.Light.Position
					}
				case ev.MatchString("?"), ev.MatchString("shift+/"):
					state.ShowHUD = !state.ShowHUD
				}

			case uv.MouseClickEvent:
				if state.LightMode {
					// The light is applied when the next frame starts.
					state.LightMode = false
					state.ApplyLight = true
					dirty = true
				} else {
					mouseDown = true
					lastMouseX, lastMouseY = ev.X, ev.Y
				}

			case uv.MouseReleaseEvent:
				mouseDown = false

			case uv.MouseMotionEvent:
				if state.LightMode {
					state.PendingLight = state.ScreenToLight(ev.X, ev.Y, width, height, orbit.Target, w.Light.Position, orbit.Yaw)
				} else if mouseDown {
					dx := ev.X - lastMouseX
					dy := ev.Y - lastMouseY
					motion.ApplyImpulse(float64(dy)*0.02, float64(dx)*0.02, 0)
					lastMouseX, lastMouseY = ev.X, ev.Y
				}

			case uv.MouseWheelEvent:
				switch ev.Button {
				case uv.MouseWheelUp:
					motion.ApplyImpulse(0, 0, -zoomStep)
				case uv.MouseWheelDown:
					motion.ApplyImpulse(0, 0, zoomStep)
				}
			}

		case f := <-trace.Done():
			trace.Finish()
			trace = nil
			if f.err != nil {
				break
			}
			termRenderer.Render(render.FromCanvas(f.canvas))
			if err := termRenderer.Flush(); err != nil {
				cleanup()
				return fmt.Errorf("flush: %w", err)
			}
			hud.FrameDone(f.elapsed)

		case <-ticker.C:
			if motion.Update(orbit) {
				dirty = true
			}
		}

		// Only one trace runs at a time; motion that arrives meanwhile is
		// picked up by the next one.
		if dirty && trace == nil && ctx.Err() == nil {
			if state.ApplyLight {
				w.Light.Position = state.PendingLight
				state.ApplyLight = false
			}
			trace = startFrame(ctx, w, orbit.ViewTransform(), camSpec.FOV, fbWidth, fbHeight, state.Depth)
			dirty = false
		}

		hud.Render(width, height, state, trace != nil)
	}
}
