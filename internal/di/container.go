package di

import (
	"context"
	"fmt"

	"demo-agent/internal/application/port/input"
	"demo-agent/internal/application/port/output"
	"demo-agent/internal/infrastructure/browser/rod"
	robotinput "demo-agent/internal/infrastructure/input/robotgo"
	"demo-agent/internal/infrastructure/logger"
	"demo-agent/internal/infrastructure/narrator"
	"demo-agent/internal/infrastructure/planner"
	"demo-agent/internal/usecase/calibrate"
	"demo-agent/internal/usecase/geometry"
	"demo-agent/internal/usecase/inputdriver"
	"demo-agent/internal/usecase/planrunner"
	"demo-agent/internal/usecase/rundemo"
)

type Container struct {
	Logger    output.LoggerPort
	Browser   output.BrowserPort
	Input     output.InputPort
	Narrator  output.NarratorPort
	Planner   output.PlannerPort
	Resolver  *geometry.Resolver
	Driver    *inputdriver.Driver
	Executor  input.PlanExecutor
	RunDemo   *rundemo.UseCase
	Calibrate *calibrate.UseCase
}

type Config struct {
	RunName string
	Debug   bool

	BrowserHeadless bool

	PlannerProvider string
	PlannerAPIKey   string
	PlannerModel    string
	PlannerBaseURL  string

	// SpeechBinary empty means narration is printed, not spoken.
	SpeechBinary string

	Geometry geometry.Config
	Driver   inputdriver.Config
}

// NewContainer wires the full object graph. The planner is optional: with
// no API key configured the container still serves plan execution and
// calibration, and RunDemo stays nil.
func NewContainer(ctx context.Context, cfg Config) (*Container, error) {
	logCfg := logger.DefaultConfig(cfg.RunName)
	logCfg.Debug = cfg.Debug
	log, err := logger.NewZapAdapter(logCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	browserCfg := rod.DefaultConfig()
	browserCfg.Headless = cfg.BrowserHeadless
	browser, err := rod.NewBrowserAdapter(ctx, browserCfg)
	if err != nil {
		log.Close()
		return nil, fmt.Errorf("failed to create browser: %w", err)
	}

	osInput := robotinput.NewInputAdapter(log)

	resolver := geometry.New(browser, log, cfg.Geometry)
	driver := inputdriver.New(osInput, browser, resolver, log, cfg.Driver)

	var narr output.NarratorPort
	if cfg.SpeechBinary != "" {
		narr = narrator.NewCommandNarrator(cfg.SpeechBinary, nil, log)
	} else {
		narr = narrator.NewConsoleNarrator()
	}

	executor := planrunner.New(driver, resolver, browser, narr, log)

	c := &Container{
		Logger:    log,
		Browser:   browser,
		Input:     osInput,
		Narrator:  narr,
		Resolver:  resolver,
		Driver:    driver,
		Executor:  executor,
		Calibrate: calibrate.New(browser, resolver, log),
	}

	if cfg.PlannerAPIKey != "" {
		pl, err := planner.NewPlanner(planner.Config{
			Provider: cfg.PlannerProvider,
			APIKey:   cfg.PlannerAPIKey,
			Model:    cfg.PlannerModel,
			BaseURL:  cfg.PlannerBaseURL,
			Logger:   log,
		})
		if err != nil {
			c.Close()
			return nil, fmt.Errorf("failed to create planner: %w", err)
		}
		c.Planner = pl
		c.RunDemo = rundemo.New(browser, pl, executor, log)
	}

	return c, nil
}

func (c *Container) Close() {
	if c.Browser != nil {
		c.Browser.Close()
	}
	if c.Logger != nil {
		c.Logger.Close()
	}
}
