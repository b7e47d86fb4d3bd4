package geometry

import (
	"context"
	"fmt"
	"math"

	"demo-agent/internal/application/port/output"
	"demo-agent/internal/domain/entity"
)

// Chrome offset computation modes.
const (
	ChromeModeDynamic = "dynamic"
	ChromeModeFixed   = "fixed"
)

// Config holds the coordinate-calibration tunables. The chrome correction
// and fallback values are window-manager dependent and deliberately not
// hard-coded anywhere else.
type Config struct {
	ChromeMode       string
	ChromeFixed      float64
	ChromeCorrection float64
	ChromeMin        float64
	ChromeMax        float64
	ChromeFallback   float64

	// OriginTolerance is the allowed disagreement, in pixels, between the
	// script-reported and window-manager-reported window origins before
	// the discrepancy is logged.
	OriginTolerance float64
}

func DefaultConfig() Config {
	return Config{
		ChromeMode:       ChromeModeDynamic,
		ChromeFixed:      70,
		ChromeCorrection: 25,
		ChromeMin:        10,
		ChromeMax:        180,
		ChromeFallback:   70,
		OriginTolerance:  5,
	}
}

// Resolver converts element selectors into absolute screen points. It owns
// an explicit frame cache: the last successfully obtained WindowFrame,
// reused only when a fresh one cannot be fetched.
type Resolver struct {
	browser   output.BrowserPort
	logger    output.LoggerPort
	cfg       Config
	lastFrame *entity.WindowFrame
}

func New(browser output.BrowserPort, logger output.LoggerPort, cfg Config) *Resolver {
	if cfg.ChromeMax <= cfg.ChromeMin {
		cfg = DefaultConfig()
	}
	return &Resolver{
		browser: browser,
		logger:  logger,
		cfg:     cfg,
	}
}

// Resolve computes the absolute screen point for the center of the element
// matching selector. With forceRefresh the cached frame is bypassed and a
// fresh one is fetched. A degraded resolution (stale frame reused) is
// still returned, not an error.
func (r *Resolver) Resolve(ctx context.Context, selector string, forceRefresh bool) (entity.Resolution, error) {
	geom, err := r.browser.ElementGeometry(ctx, selector)
	if err != nil {
		return entity.Resolution{}, err
	}
	if !geom.HasArea() {
		return entity.Resolution{}, fmt.Errorf("%w: selector %q has zero-area box", entity.ErrGeometryUnavailable, selector)
	}

	frame, degraded, err := r.obtainFrame(ctx, forceRefresh)
	if err != nil {
		return entity.Resolution{}, err
	}

	if d := frame.OriginDiscrepancy(); d > r.cfg.OriginTolerance {
		r.logger.Warn("Window origin signals disagree, preferring in-page script",
			"scriptOrigin", fmt.Sprintf("(%.0f,%.0f)", frame.OriginX, frame.OriginY),
			"boundsOrigin", fmt.Sprintf("(%.0f,%.0f)", frame.BoundsX, frame.BoundsY),
			"discrepancy", d,
		)
	}

	chrome := r.chromeOffset(frame)

	point := entity.ScreenPoint{
		X: int(math.Round(frame.OriginX + geom.CenterX() + frame.ScrollX)),
		Y: int(math.Round(frame.OriginY + geom.CenterY() + frame.ScrollY + chrome)),
	}

	r.logger.Debug("Resolved selector to screen point",
		"selector", selector,
		"pageCenter", fmt.Sprintf("(%.0f,%.0f)", geom.CenterX(), geom.CenterY()),
		"screen", fmt.Sprintf("(%d,%d)", point.X, point.Y),
		"chromeOffset", chrome,
		"degraded", degraded,
	)

	return entity.Resolution{Point: point, Degraded: degraded}, nil
}

// RefreshFrame fetches a fresh window frame into the cache. The executor
// calls this once per plan so that window movement or scrolling since the
// plan was generated is picked up before the first step.
func (r *Resolver) RefreshFrame(ctx context.Context) error {
	frame, err := r.browser.WindowFrame(ctx)
	if err != nil {
		if r.lastFrame != nil {
			r.logger.Warn("Frame refresh failed, keeping previous frame", "error", err)
			return nil
		}
		return fmt.Errorf("%w: %v", entity.ErrWindowFrameUnavailable, err)
	}
	r.lastFrame = &frame
	return nil
}

// LastFrame returns the cached frame, or false when nothing has been
// fetched yet.
func (r *Resolver) LastFrame() (entity.WindowFrame, bool) {
	if r.lastFrame == nil {
		return entity.WindowFrame{}, false
	}
	return *r.lastFrame, true
}

// ChromeOffset exposes the offset computed for frame, for calibration
// reporting.
func (r *Resolver) ChromeOffset(frame entity.WindowFrame) float64 {
	return r.chromeOffset(frame)
}

func (r *Resolver) obtainFrame(ctx context.Context, forceRefresh bool) (entity.WindowFrame, bool, error) {
	if !forceRefresh && r.lastFrame != nil {
		return *r.lastFrame, false, nil
	}

	frame, err := r.browser.WindowFrame(ctx)
	if err != nil {
		if r.lastFrame != nil {
			r.logger.Warn("Window frame unavailable, reusing previous frame", "error", err)
			return *r.lastFrame, true, nil
		}
		return entity.WindowFrame{}, false, fmt.Errorf("%w: %v", entity.ErrWindowFrameUnavailable, err)
	}

	r.lastFrame = &frame
	return frame, false, nil
}

// chromeOffset derives the vertical distance between the window's outer
// frame and the content origin. Dynamic mode estimates it from the
// outer/inner height difference; out-of-range estimates are replaced by
// the configured fallback, never propagated.
func (r *Resolver) chromeOffset(frame entity.WindowFrame) float64 {
	if r.cfg.ChromeMode == ChromeModeFixed {
		return r.cfg.ChromeFixed
	}

	raw := frame.OuterHeight - frame.InnerHeight
	adjusted := raw - r.cfg.ChromeCorrection
	if adjusted < r.cfg.ChromeMin || adjusted > r.cfg.ChromeMax {
		r.logger.Warn("Chrome offset out of range, substituting fallback",
			"raw", raw,
			"adjusted", adjusted,
			"min", r.cfg.ChromeMin,
			"max", r.cfg.ChromeMax,
			"fallback", r.cfg.ChromeFallback,
		)
		return r.cfg.ChromeFallback
	}
	return adjusted
}
