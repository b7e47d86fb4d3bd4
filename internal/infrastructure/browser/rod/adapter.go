package rod

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"strings"
	"time"

	"demo-agent/internal/application/port/output"
	"demo-agent/internal/domain/entity"

	"github.com/disintegration/imaging"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/ysmood/gson"
)

var _ output.BrowserPort = (*BrowserAdapter)(nil)

const (
	defaultSlowMotion = 200 * time.Millisecond
	defaultTimeout    = 10 * time.Second
)

type BrowserAdapter struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	page     *rod.Page
	timeout  time.Duration
	cleaner  CleanConfig
}

type BrowserConfig struct {
	Headless   bool
	SlowMotion time.Duration
	Timeout    time.Duration
	NoSandbox  bool
	DevTools   bool
}

func DefaultConfig() BrowserConfig {
	return BrowserConfig{
		Headless:   false,
		SlowMotion: defaultSlowMotion,
		Timeout:    defaultTimeout,
		NoSandbox:  true,
		DevTools:   false,
	}
}

func NewBrowserAdapter(ctx context.Context, cfg BrowserConfig) (*BrowserAdapter, error) {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}

	l := launcher.New().
		Headless(cfg.Headless).
		Devtools(cfg.DevTools).
		NoSandbox(cfg.NoSandbox).
		Delete("use-mock-keychain")

	url, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	browser := rod.New().
		ControlURL(url).
		SlowMotion(cfg.SlowMotion).
		MustConnect()

	page := browser.MustPage("about:blank")

	return &BrowserAdapter{
		browser:  browser,
		launcher: l,
		page:     page,
		timeout:  cfg.Timeout,
		cleaner:  DefaultCleanConfig,
	}, nil
}

func (b *BrowserAdapter) Navigate(ctx context.Context, url string) error {
	if err := b.page.Navigate(url); err != nil {
		return fmt.Errorf("navigation failed: %w", err)
	}
	b.page.MustWaitLoad()
	b.page.WaitIdle(5 * time.Second)
	return nil
}

// ElementGeometry returns the bounding box of the first match for
// selector, in page coordinate space. The box is derived from the
// element's content quads, so it reflects layout after CSS transforms.
func (b *BrowserAdapter) ElementGeometry(ctx context.Context, selector string) (entity.ElementGeometry, error) {
	el, err := b.element(selector)
	if err != nil {
		return entity.ElementGeometry{}, fmt.Errorf("%w: %q: %v", entity.ErrElementNotFound, selector, err)
	}

	shape, err := el.Shape()
	if err != nil || len(shape.Quads) == 0 {
		return entity.ElementGeometry{}, fmt.Errorf("%w: %q has no content quads", entity.ErrGeometryUnavailable, selector)
	}

	quad := shape.Quads[0]
	minX, minY := quad[0], quad[1]
	maxX, maxY := quad[0], quad[1]
	for i := 2; i < len(quad); i += 2 {
		if quad[i] < minX {
			minX = quad[i]
		}
		if quad[i] > maxX {
			maxX = quad[i]
		}
		if quad[i+1] < minY {
			minY = quad[i+1]
		}
		if quad[i+1] > maxY {
			maxY = quad[i+1]
		}
	}

	return entity.ElementGeometry{
		X:      minX,
		Y:      minY,
		Width:  maxX - minX,
		Height: maxY - minY,
	}, nil
}

const windowFrameJS = `() => ({
	originX: window.screenX,
	originY: window.screenY,
	scrollX: window.scrollX || window.pageXOffset || 0,
	scrollY: window.scrollY || window.pageYOffset || 0,
	innerWidth: window.innerWidth,
	innerHeight: window.innerHeight,
	outerWidth: window.outerWidth,
	outerHeight: window.outerHeight,
	devicePixelRatio: window.devicePixelRatio || 1
})`

// WindowFrame combines two origin signals: window.screenX/Y from in-page
// script (authoritative) and the browser window bounds from the DevTools
// protocol. The resolver compares them and logs disagreement.
func (b *BrowserAdapter) WindowFrame(ctx context.Context) (entity.WindowFrame, error) {
	res, err := b.page.Timeout(b.timeout).Eval(windowFrameJS)
	if err != nil {
		return entity.WindowFrame{}, fmt.Errorf("window frame eval failed: %w", err)
	}

	v := res.Value
	frame := entity.WindowFrame{
		OriginX:          v.Get("originX").Num(),
		OriginY:          v.Get("originY").Num(),
		ScrollX:          v.Get("scrollX").Num(),
		ScrollY:          v.Get("scrollY").Num(),
		InnerWidth:       v.Get("innerWidth").Num(),
		InnerHeight:      v.Get("innerHeight").Num(),
		OuterWidth:       v.Get("outerWidth").Num(),
		OuterHeight:      v.Get("outerHeight").Num(),
		DevicePixelRatio: v.Get("devicePixelRatio").Num(),
	}

	// The window-manager signal is secondary; when it is unavailable the
	// script origin stands alone and the discrepancy check is a no-op.
	frame.BoundsX = frame.OriginX
	frame.BoundsY = frame.OriginY
	if bounds, err := b.page.GetWindow(); err == nil && bounds != nil {
		if bounds.Left != nil {
			frame.BoundsX = float64(*bounds.Left)
		}
		if bounds.Top != nil {
			frame.BoundsY = float64(*bounds.Top)
		}
	}

	return frame, nil
}

// DOMClick clicks through the DOM, bypassing the OS pointer. This is the
// fallback used when native injection fails.
func (b *BrowserAdapter) DOMClick(ctx context.Context, selector string) error {
	el, err := b.element(selector)
	if err != nil {
		return fmt.Errorf("%w: %q: %v", entity.ErrElementNotFound, selector, err)
	}
	if err := el.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return fmt.Errorf("dom click failed: %w", err)
	}
	b.page.WaitIdle(2 * time.Second)
	return nil
}

// PageHTML returns the body markup cleaned down to what the planner
// needs: scripts, styles and presentation attributes stripped, output
// capped.
func (b *BrowserAdapter) PageHTML(ctx context.Context) (string, error) {
	body, err := b.page.Timeout(b.timeout).Element("body")
	if err != nil {
		return "", fmt.Errorf("body not found: %w", err)
	}
	html, err := body.HTML()
	if err != nil {
		return "", fmt.Errorf("failed to get HTML: %w", err)
	}
	return CleanHTML(html, &b.cleaner), nil
}

func (b *BrowserAdapter) Screenshot(ctx context.Context) (*entity.Screenshot, error) {
	imgBytes, err := b.page.Screenshot(true, &proto.PageCaptureScreenshot{
		Format:  proto.PageCaptureScreenshotFormatJpeg,
		Quality: gson.Int(85),
	})
	if err != nil {
		return nil, fmt.Errorf("screenshot failed: %w", err)
	}

	img, _, err := image.Decode(bytes.NewReader(imgBytes))
	if err != nil {
		return nil, fmt.Errorf("image decode failed: %w", err)
	}

	// Wide captures get downscaled so calibration screenshots stay small.
	if img.Bounds().Dx() > 1600 {
		img = imaging.Resize(img, 1600, 0, imaging.Lanczos)
		buf := new(bytes.Buffer)
		if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: 85}); err != nil {
			return nil, fmt.Errorf("jpeg encode failed: %w", err)
		}
		imgBytes = buf.Bytes()
	}

	return &entity.Screenshot{
		Data:   imgBytes,
		Format: "jpeg",
		Width:  img.Bounds().Dx(),
		Height: img.Bounds().Dy(),
	}, nil
}

// Bring raises the window. Synthetic pointer clicks land on whatever
// window is frontmost, so this runs before every plan.
func (b *BrowserAdapter) Bring(ctx context.Context) error {
	if _, err := b.page.Activate(); err != nil {
		return fmt.Errorf("activate window: %w", err)
	}
	return nil
}

func (b *BrowserAdapter) CurrentURL() string {
	return b.page.MustInfo().URL
}

func (b *BrowserAdapter) Close() {
	if b.browser != nil {
		_ = b.browser.Close()
	}
	if b.launcher != nil {
		b.launcher.Kill()
		b.launcher.Cleanup()
	}
}

// element looks up the first match for a CSS or XPath selector, bounded
// by the adapter timeout.
func (b *BrowserAdapter) element(selector string) (*rod.Element, error) {
	if strings.HasPrefix(selector, "/") || strings.Contains(selector, "xpath") {
		return b.page.Timeout(b.timeout).ElementX(selector)
	}
	return b.page.Timeout(b.timeout).Element(selector)
}
