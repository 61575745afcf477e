package app

import (
	"errors"
	"fmt"

	"github.com/gekko3d/cloudview"
	"github.com/gekko3d/cloudview/pointcloud/pc/core"
	"github.com/gekko3d/cloudview/pointcloud/pc/gpu"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/mathgl/mgl32"
)

type App struct {
	Window   *cloudview.WindowState
	Instance *wgpu.Instance
	Adapter  *wgpu.Adapter
	Device   *wgpu.Device
	Queue    *wgpu.Queue
	Surface  *wgpu.Surface
	Config   *wgpu.SurfaceConfiguration

	PointBuffer  *gpu.PointBuffer
	PointPass    *gpu.PointPass
	TextPass     *gpu.TextPass
	TextRenderer *core.TextRenderer

	Settings cloudview.Config
	Logger   cloudview.Logger
	Watcher  *cloudview.ConfigWatcher

	Camera     *core.CameraState
	Projection *core.Projection
	Look       core.LookTracker
	Generator  *core.Generator
	Ring       *core.Ring
	Clock      *core.FrameClock
	Profiler   *Profiler
	Input      cloudview.Input

	State         core.LoopState
	MouseCaptured bool
	ShowHUD       bool
	Width, Height int

	quitRequested bool
}

// NewApp builds the CPU side of the viewer from settings. The ring has no
// storage until UseSink or Init attaches one.
func NewApp(settings cloudview.Config, logger cloudview.Logger) *App {
	if logger == nil {
		logger = cloudview.NewNopLogger()
	}

	cam := core.NewCameraState()
	cam.Position = mgl32.Vec3(settings.Camera.Position)
	cam.Yaw = settings.Camera.Yaw
	cam.Pitch = settings.Camera.Pitch
	cam.Speed = settings.Camera.Speed
	cam.Sensitivity = settings.Camera.Sensitivity

	return &App{
		Settings:   settings,
		Logger:     logger,
		Camera:     cam,
		Projection: core.NewProjection(settings.Camera.Fov, settings.Camera.Near, settings.Camera.Far, settings.Window.Width, settings.Window.Height),
		Generator:  core.NewSeededGenerator(settings.Points.Seed),
		Clock:      core.NewFrameClock(0),
		Profiler:   NewProfiler(),
		State:      core.Running,
		ShowHUD:    settings.HUD,
		Width:      settings.Window.Width,
		Height:     settings.Window.Height,
	}
}

// UseSink attaches ring storage sized to the configured capacity.
func (a *App) UseSink(sink core.PointSink) error {
	ring, err := core.NewRing(sink, a.Settings.Points.Capacity)
	if err != nil {
		return err
	}
	a.Ring = ring
	return nil
}

// Init creates the wgpu device for the window and every GPU resource. Any
// failure here is fatal for the viewer.
func (a *App) Init() error {
	if a.Window == nil {
		return errors.New("app has no window")
	}

	a.Instance = wgpu.CreateInstance(nil)
	a.Surface = a.Instance.CreateSurface(wgpuglfw.GetSurfaceDescriptor(a.Window.Glfw))

	adapter, err := a.Instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		CompatibleSurface: a.Surface,
		PowerPreference:   wgpu.PowerPreferenceHighPerformance,
	})
	if err != nil {
		return fmt.Errorf("request adapter: %w", err)
	}
	a.Adapter = adapter

	a.Device, err = adapter.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "PointCloud Device",
	})
	if err != nil {
		return fmt.Errorf("request device: %w", err)
	}
	a.Queue = a.Device.GetQueue()

	width, height := a.Window.FramebufferSize()
	caps := a.Surface.GetCapabilities(adapter)
	if len(caps.Formats) == 0 || len(caps.AlphaModes) == 0 {
		return errors.New("surface reports no usable formats")
	}
	a.Config = &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      caps.Formats[0],
		Width:       uint32(max(width, 1)),
		Height:      uint32(max(height, 1)),
		PresentMode: wgpu.PresentModeFifo,
		AlphaMode:   caps.AlphaModes[0],
	}
	a.Surface.Configure(a.Adapter, a.Device, a.Config)
	a.Width, a.Height = width, height
	a.Projection.Resize(width, height)

	a.PointBuffer, err = gpu.NewPointBuffer(a.Device, a.Settings.Points.Capacity)
	if err != nil {
		return err
	}
	if err := a.UseSink(a.PointBuffer); err != nil {
		return err
	}

	a.PointPass, err = gpu.NewPointPass(a.Device, a.Config.Format)
	if err != nil {
		return err
	}

	// The HUD is optional; the viewer runs without it.
	a.TextRenderer, err = core.NewDefaultTextRenderer(18)
	if err != nil {
		a.Logger.Warnf("text renderer unavailable: %v", err)
	} else if a.TextPass, err = gpu.NewTextPass(a.Device, a.Queue, a.Config.Format, a.TextRenderer); err != nil {
		a.Logger.Warnf("text pass unavailable: %v", err)
		a.TextPass = nil
	}

	a.Window.OnResize(a.Resize)
	a.Window.OnPointer(a.HandlePointer)
	a.SetCaptured(true)

	a.Clock = core.NewFrameClock(a.Window.Now())

	a.Logger.Infof("ring: %d points (%d MiB), %d points per frame, draw policy %s",
		a.Ring.Capacity(), a.Ring.Capacity()*core.PointSize>>20, a.Settings.Points.PointsPerFrame, a.Settings.Points.DrawPolicy)
	return nil
}

// SetCaptured grabs or releases the pointer. Capturing resets the look
// tracker so the first motion event only records the cursor position.
func (a *App) SetCaptured(captured bool) {
	a.MouseCaptured = captured
	a.Look.Reset()
	if a.Window != nil {
		a.Window.SetCaptured(captured)
	}
}

// HandlePointer is the cursor callback.
func (a *App) HandlePointer(x, y float64) {
	if !a.MouseCaptured {
		return
	}
	if dx, dy, ok := a.Look.Track(x, y); ok {
		a.Camera.ApplyLook(dx, dy)
	}
}

// Resize reconfigures the surface and the projection. The view is untouched.
func (a *App) Resize(w, h int) {
	a.Width, a.Height = w, h
	a.Projection.Resize(w, h)
	if w > 0 && h > 0 && a.Surface != nil {
		a.Config.Width = uint32(w)
		a.Config.Height = uint32(h)
		a.Surface.Configure(a.Adapter, a.Device, a.Config)
	}
}

// RequestQuit asks the loop to stop at the top of its next iteration.
func (a *App) RequestQuit() {
	a.quitRequested = true
	if a.Window != nil {
		a.Window.RequestClose()
	}
}

func (a *App) closeRequested() bool {
	return a.quitRequested || (a.Window != nil && a.Window.ShouldClose())
}

func (a *App) moveIntent() core.MoveIntent {
	return core.MoveIntent{
		Forward:  a.Input.IsPressed(cloudview.KeyW),
		Backward: a.Input.IsPressed(cloudview.KeyS),
		Left:     a.Input.IsPressed(cloudview.KeyA),
		Right:    a.Input.IsPressed(cloudview.KeyD),
		Up:       a.Input.IsPressed(cloudview.KeySpace),
		Down:     a.Input.IsPressed(cloudview.KeyShift),
	}
}

// Update runs the CPU part of one frame at monotonic time now (seconds):
// timing, quit check, input, config reload, and one streamed batch.
func (a *App) Update(now float64) error {
	if a.State != core.Running {
		return nil
	}
	if a.closeRequested() {
		a.State = core.ShuttingDown
		return nil
	}

	if a.Clock.Tick(now) {
		a.Logger.Infof("FPS: %d", a.Clock.FPS)
	}

	if a.Input.IsPressed(cloudview.KeyEscape) {
		a.RequestQuit()
	}
	if a.Input.IsJustPressed(cloudview.KeyTab) {
		a.SetCaptured(!a.MouseCaptured)
	}
	if a.Input.IsJustPressed(cloudview.KeyF1) {
		a.ShowHUD = !a.ShowHUD
	}
	if a.Input.IsJustPressed(cloudview.KeyF3) {
		a.Logger.SetDebug(!a.Logger.DebugEnabled())
	}

	a.Camera.ApplyMove(a.moveIntent(), float32(a.Clock.Dt))

	if a.Watcher != nil {
		if next, ok := a.Watcher.Poll(); ok {
			a.ApplySettings(next)
		}
	}

	if a.Ring == nil {
		return errors.New("ring has no storage")
	}

	a.Profiler.BeginScope("generate")
	batch := a.Generator.Generate(a.Settings.Points.PointsPerFrame)
	a.Profiler.EndScope("generate")

	a.Profiler.BeginScope("upload")
	err := a.Ring.Upload(batch)
	a.Profiler.EndScope("upload")
	if err != nil {
		return fmt.Errorf("upload batch: %w", err)
	}

	a.Profiler.SetCount("valid", a.Ring.Valid())
	a.Profiler.SetCount("cursor", a.Ring.Cursor())
	a.Profiler.SetCount("draw", a.DrawCount())
	return nil
}

// ApplySettings takes the live fields of a reloaded config.
func (a *App) ApplySettings(next cloudview.Config) {
	live := a.Settings.Live(next)
	a.Settings = live
	a.Camera.Speed = live.Camera.Speed
	a.Camera.Sensitivity = live.Camera.Sensitivity
	a.ShowHUD = live.HUD
	a.Logger.SetDebug(live.Debug)
	a.Logger.Infof("config reloaded: speed %.2f, sensitivity %.3f, %d points per frame, draw policy %s",
		live.Camera.Speed, live.Camera.Sensitivity, live.Points.PointsPerFrame, live.Points.DrawPolicy)
}

// DrawCount is the number of ring slots the point pass covers this frame.
func (a *App) DrawCount() int {
	if a.Ring == nil {
		return 0
	}
	return a.Ring.DrawCount(a.Settings.Points.DrawPolicy == cloudview.DrawCapacity)
}

// Uniforms is the point pass state for the current camera and viewport.
func (a *App) Uniforms() gpu.PointUniforms {
	return gpu.PointUniforms{
		View:       a.Camera.GetViewMatrix(),
		Projection: a.Projection.Matrix(),
		CameraPos:  a.Camera.Position,
		Color:      a.Settings.Points.Color,
		Viewport:   [2]float32{float32(max(a.Width, 1)), float32(max(a.Height, 1))},
		MinSize:    a.Settings.Points.MinSize,
		MaxSize:    a.Settings.Points.MaxSize,
	}
}

// Run drives frames until the window closes or quit is requested, then
// releases every resource.
func (a *App) Run() {
	a.Window.PollEvents()
	a.Input.Poll(a.Window.Glfw)

	for a.State == core.Running {
		if err := a.Update(a.Window.Now()); err != nil {
			a.Logger.Errorf("%v", err)
		}
		if a.State != core.Running {
			break
		}
		a.Render()
		a.Window.PollEvents()
		a.Input.Poll(a.Window.Glfw)
	}

	a.Close()
}

// Close releases GPU objects and the window. The app ends in Stopped.
func (a *App) Close() {
	if a.State == core.Stopped {
		return
	}
	a.State = core.ShuttingDown

	if a.Watcher != nil {
		if err := a.Watcher.Close(); err != nil {
			a.Logger.Warnf("close config watcher: %v", err)
		}
	}
	if a.TextPass != nil {
		a.TextPass.Release()
	}
	if a.PointPass != nil {
		a.PointPass.Release()
	}
	if a.PointBuffer != nil {
		a.PointBuffer.Release()
	}
	if a.Queue != nil {
		a.Queue.Release()
	}
	if a.Device != nil {
		a.Device.Release()
	}
	if a.Adapter != nil {
		a.Adapter.Release()
	}
	if a.Surface != nil {
		a.Surface.Release()
	}
	if a.Instance != nil {
		a.Instance.Release()
	}
	if a.Window != nil {
		a.Window.Destroy()
	}

	a.State = core.Stopped
	a.Logger.Infof("stopped after %d points", a.writtenPoints())
}

func (a *App) writtenPoints() uint64 {
	if a.Ring == nil {
		return 0
	}
	return a.Ring.Written()
}
