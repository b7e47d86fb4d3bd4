package inputdriver

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"demo-agent/internal/application/port/output"
	"demo-agent/internal/domain/entity"
	"demo-agent/internal/usecase/geometry"
)

type Config struct {
	MoveDuration    time.Duration
	BaseActionDelay time.Duration
	InterKeyDelay   time.Duration
	CurveIntensity  float64
	JitterFraction  float64 // post-action delay jitter
	SegmentJitter   float64 // per-segment movement delay jitter
	PointsPerSecond int
	Curved          bool

	// Seed fixes the driver's randomness source. Zero means seed from the
	// clock; tests set it for reproducible paths and delays.
	Seed int64
}

func DefaultConfig() Config {
	return Config{
		MoveDuration:    500 * time.Millisecond,
		BaseActionDelay: 500 * time.Millisecond,
		InterKeyDelay:   50 * time.Millisecond,
		CurveIntensity:  0.06,
		JitterFraction:  0.3,
		SegmentJitter:   0.2,
		PointsPerSecond: 20,
		Curved:          true,
	}
}

// Driver moves the synthetic pointer along human-like paths and performs
// clicks and typing against resolved screen points. Clicks fall back from
// the native pointer to a DOM click issued through the browser.
type Driver struct {
	input    output.InputPort
	browser  output.BrowserPort
	resolver *geometry.Resolver
	logger   output.LoggerPort
	cfg      Config
	rng      *rand.Rand
	sleep    func(time.Duration)
}

func New(input output.InputPort, browser output.BrowserPort, resolver *geometry.Resolver, logger output.LoggerPort, cfg Config) *Driver {
	if cfg.PointsPerSecond <= 0 {
		cfg.PointsPerSecond = DefaultConfig().PointsPerSecond
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Driver{
		input:    input,
		browser:  browser,
		resolver: resolver,
		logger:   logger,
		cfg:      cfg,
		rng:      rand.New(rand.NewSource(seed)),
		sleep:    time.Sleep,
	}
}

// MoveTo drives the cursor from its current position to point. The path
// is generated by GeneratePath with the given seed, so a fixed seed makes
// the whole movement reproducible.
func (d *Driver) MoveTo(ctx context.Context, point entity.ScreenPoint, duration time.Duration, curved bool, seed int64) error {
	curX, curY, err := d.input.CursorPosition()
	if err != nil {
		return fmt.Errorf("%w: read cursor position: %v", entity.ErrInputInjectionFailed, err)
	}
	start := entity.ScreenPoint{X: curX, Y: curY}

	path := GeneratePath(start, point, duration, d.cfg.PointsPerSecond, curved, d.cfg.CurveIntensity, d.cfg.SegmentJitter, seed)

	for i, p := range path.Points {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := d.input.MoveCursor(p.X, p.Y); err != nil {
			return fmt.Errorf("%w: move cursor: %v", entity.ErrInputInjectionFailed, err)
		}
		if i < len(path.Delays) {
			d.sleep(path.Delays[i])
		}
	}
	return nil
}

// clickStrategy is one attempt in the ordered click fallback chain.
type clickStrategy struct {
	name    string
	attempt func() error
}

// Click resolves selector with a forced frame refresh, moves the pointer
// to the target and tries each click strategy in order until one
// succeeds: a native pointer click at the resolved screen point, then a
// DOM click through the browser.
func (d *Driver) Click(ctx context.Context, selector string) error {
	res, err := d.resolver.Resolve(ctx, selector, true)
	if err != nil {
		return fmt.Errorf("resolve %q: %w", selector, err)
	}
	if res.Degraded {
		d.logger.Warn("Clicking with degraded resolution", "selector", selector)
	}

	if err := d.MoveTo(ctx, res.Point, d.cfg.MoveDuration, d.cfg.Curved, d.rng.Int63()); err != nil {
		return err
	}

	// Brief settle before pressing, like a human homing in on the target.
	d.sleep(jitterDuration(d.rng, 100*time.Millisecond, 0.5))

	strategies := []clickStrategy{
		{
			name: "native",
			attempt: func() error {
				if err := d.input.ClickAt(res.Point.X, res.Point.Y); err != nil {
					return fmt.Errorf("%w: %v", entity.ErrInputInjectionFailed, err)
				}
				return nil
			},
		},
		{
			name: "dom",
			attempt: func() error {
				return d.browser.DOMClick(ctx, selector)
			},
		},
	}

	var lastErr error
	for _, s := range strategies {
		err := s.attempt()
		if err == nil {
			d.logger.Info("Click succeeded",
				"selector", selector,
				"strategy", s.name,
				"screen", fmt.Sprintf("(%d,%d)", res.Point.X, res.Point.Y),
			)
			d.postActionDelay()
			return nil
		}
		d.logger.Warn("Click attempt failed", "selector", selector, "strategy", s.name, "error", err)
		lastErr = err
	}

	return fmt.Errorf("all click strategies failed for %q: %w", selector, lastErr)
}

// TypeText forwards value to the OS keystroke injector one character at a
// time with a small inter-key delay. An empty value is a no-op success.
// Injection failure propagates; there is no fallback for typing.
func (d *Driver) TypeText(ctx context.Context, value string) error {
	if value == "" {
		return nil
	}

	runes := []rune(value)
	for i, r := range runes {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := d.input.TypeKeys(string(r)); err != nil {
			return fmt.Errorf("%w: type key %d of %d: %v", entity.ErrInputInjectionFailed, i+1, len(runes), err)
		}
		if i < len(runes)-1 {
			d.sleep(d.cfg.InterKeyDelay)
		}
	}

	d.logger.Debug("Typed text", "length", len(runes))
	d.postActionDelay()
	return nil
}

// postActionDelay decouples successive synthetic actions from the target
// application's own UI latency.
func (d *Driver) postActionDelay() {
	if d.cfg.BaseActionDelay <= 0 {
		return
	}
	d.sleep(jitterDuration(d.rng, d.cfg.BaseActionDelay, d.cfg.JitterFraction))
}
