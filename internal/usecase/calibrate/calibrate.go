package calibrate

import (
	"context"
	"fmt"
	"os"

	"demo-agent/internal/application/port/output"
	"demo-agent/internal/domain/entity"
	"demo-agent/internal/usecase/geometry"
)

// Report captures everything needed to hand-tune the chrome offset for a
// given window manager: the raw frame signals, the offset that was used
// and the point a probe selector resolved to.
type Report struct {
	Selector       string
	Frame          entity.WindowFrame
	ChromeOffset   float64
	Resolved       entity.Resolution
	ScreenshotPath string
}

// UseCase resolves a probe selector and reports the intermediate
// coordinate data. Clicking too high means the chrome offset is too
// large; too low means too small.
type UseCase struct {
	browser  output.BrowserPort
	resolver *geometry.Resolver
	logger   output.LoggerPort
}

func New(browser output.BrowserPort, resolver *geometry.Resolver, logger output.LoggerPort) *UseCase {
	return &UseCase{
		browser:  browser,
		resolver: resolver,
		logger:   logger,
	}
}

// Run resolves selector and, when screenshotPath is non-empty, saves a
// screenshot next to the report so the resolved point can be checked
// against what was actually rendered.
func (uc *UseCase) Run(ctx context.Context, selector, screenshotPath string) (*Report, error) {
	res, err := uc.resolver.Resolve(ctx, selector, true)
	if err != nil {
		return nil, fmt.Errorf("resolve probe %q: %w", selector, err)
	}

	frame, ok := uc.resolver.LastFrame()
	if !ok {
		return nil, entity.ErrWindowFrameUnavailable
	}

	report := &Report{
		Selector:     selector,
		Frame:        frame,
		ChromeOffset: uc.resolver.ChromeOffset(frame),
		Resolved:     res,
	}

	if screenshotPath != "" {
		shot, err := uc.browser.Screenshot(ctx)
		if err != nil {
			uc.logger.Warn("Calibration screenshot failed", "error", err)
		} else if err := os.WriteFile(screenshotPath, shot.Data, 0644); err != nil {
			uc.logger.Warn("Could not write calibration screenshot", "path", screenshotPath, "error", err)
		} else {
			report.ScreenshotPath = screenshotPath
		}
	}

	uc.logger.Info("Calibration complete",
		"selector", selector,
		"screen", fmt.Sprintf("(%d,%d)", res.Point.X, res.Point.Y),
		"chromeOffset", report.ChromeOffset,
		"origin", fmt.Sprintf("(%.0f,%.0f)", frame.OriginX, frame.OriginY),
		"scroll", fmt.Sprintf("(%.0f,%.0f)", frame.ScrollX, frame.ScrollY),
	)

	return report, nil
}
