package entity

import "math"

// WindowFrame is a snapshot of the rendering window taken at one moment.
// OriginX/OriginY come from in-page script evaluation (window.screenX/Y)
// and are the authoritative origin signal. BoundsX/BoundsY come from the
// window manager and are only used to detect disagreement between the two.
type WindowFrame struct {
	OriginX          float64
	OriginY          float64
	BoundsX          float64
	BoundsY          float64
	ScrollX          float64
	ScrollY          float64
	InnerWidth       float64
	InnerHeight      float64
	OuterWidth       float64
	OuterHeight      float64
	DevicePixelRatio float64
}

// OriginDiscrepancy returns the largest axis distance between the
// script-reported origin and the window-manager-reported origin.
func (f WindowFrame) OriginDiscrepancy() float64 {
	return math.Max(math.Abs(f.OriginX-f.BoundsX), math.Abs(f.OriginY-f.BoundsY))
}

// ElementGeometry is an element's bounding box in page coordinate space.
type ElementGeometry struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

func (g ElementGeometry) CenterX() float64 { return g.X + g.Width/2 }
func (g ElementGeometry) CenterY() float64 { return g.Y + g.Height/2 }

// HasArea reports whether the box is usable as a click target.
func (g ElementGeometry) HasArea() bool {
	return g.Width > 0 && g.Height > 0
}

// ScreenPoint is an absolute point in OS display space. It is the only
// coordinate type the input-injection adapter accepts.
type ScreenPoint struct {
	X int
	Y int
}

// Resolution is the outcome of resolving a selector to a screen point.
// Degraded marks points computed from a stale cached frame because a
// fresh one could not be obtained.
type Resolution struct {
	Point    ScreenPoint
	Degraded bool
}
