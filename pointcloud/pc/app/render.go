package app

import (
	"fmt"
	"strings"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/gekko3d/cloudview/pointcloud/pc/core"
)

var hudColor = [4]float32{1, 1, 0, 1}

// HUDText is the overlay shown in the top-left corner.
func (a *App) HUDText() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "FPS: %d\n", a.Clock.FPS)
	if a.Ring != nil {
		fmt.Fprintf(&sb, "Points: %d / %d (cursor %d)\n", a.Ring.Valid(), a.Ring.Capacity(), a.Ring.Cursor())
		fmt.Fprintf(&sb, "Drawn: %d (%s)\n", a.DrawCount(), a.Settings.Points.DrawPolicy)
	}
	p := a.Camera.Position
	fmt.Fprintf(&sb, "Pos: %.2f %.2f %.2f  Yaw: %.1f  Pitch: %.1f", p[0], p[1], p[2], a.Camera.Yaw, a.Camera.Pitch)
	if !a.MouseCaptured {
		sb.WriteString("\n[Tab] capture mouse")
	}
	if a.Logger.DebugEnabled() {
		sb.WriteString("\n")
		sb.WriteString(strings.TrimRight(a.Profiler.GetStatsString(), "\n"))
	}
	return sb.String()
}

// Render records and presents one frame: the point pass over the ring, then
// the HUD. Frame-level GPU errors are logged and the frame is dropped.
func (a *App) Render() {
	if a.Surface == nil || a.Width <= 0 || a.Height <= 0 {
		return
	}
	a.Profiler.BeginScope("render")
	defer a.Profiler.EndScope("render")

	if err := a.PointPass.Update(a.Queue, a.Uniforms()); err != nil {
		a.Logger.Errorf("write point uniforms: %v", err)
		return
	}

	if a.TextPass != nil {
		var vertices []core.TextVertex
		if a.ShowHUD {
			vertices = a.TextRenderer.BuildVertices([]core.TextItem{{
				Text:     a.HUDText(),
				Position: [2]float32{10, 10},
				Scale:    1,
				Color:    hudColor,
			}}, a.Width, a.Height)
		}
		if err := a.TextPass.Update(a.Queue, vertices); err != nil {
			a.Logger.Warnf("write HUD vertices: %v", err)
		}
	}

	nextTexture, err := a.Surface.GetCurrentTexture()
	if err != nil {
		a.Logger.Errorf("GetCurrentTexture failed: %v", err)
		return
	}
	defer nextTexture.Release()

	view, err := nextTexture.CreateView(nil)
	if err != nil {
		a.Logger.Errorf("CreateView failed: %v", err)
		return
	}
	defer view.Release()

	encoder, err := a.Device.CreateCommandEncoder(nil)
	if err != nil {
		a.Logger.Errorf("CreateCommandEncoder failed: %v", err)
		return
	}
	defer encoder.Release()

	rPass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:       view,
			LoadOp:     wgpu.LoadOpClear,
			StoreOp:    wgpu.StoreOpStore,
			ClearValue: wgpu.Color{R: 0, G: 0, B: 0, A: 1},
		}},
	})
	a.PointPass.Draw(rPass, a.PointBuffer, a.DrawCount())
	if a.TextPass != nil {
		a.TextPass.Draw(rPass)
	}
	if err := rPass.End(); err != nil {
		a.Logger.Errorf("render pass End failed: %v", err)
	}
	rPass.Release()

	cmd, err := encoder.Finish(nil)
	if err != nil {
		a.Logger.Errorf("encoder Finish failed: %v", err)
		return
	}
	defer cmd.Release()

	// The ring writes issued in Update sit ahead of this submission on the queue.
	a.Queue.Submit(cmd)
	a.Surface.Present()
}
