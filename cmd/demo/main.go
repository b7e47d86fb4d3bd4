package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"demo-agent/internal/di"
	"demo-agent/internal/domain/entity"
	"demo-agent/internal/infrastructure/env"
	"demo-agent/internal/usecase/geometry"
	"demo-agent/internal/usecase/inputdriver"
)

var (
	headless   bool
	debug      bool
	provider   string
	model      string
	speech     string
	screenshot string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "demo",
		Short: "Drive scripted product demonstrations in a real browser",
		Long: `demo resolves page elements to OS screen coordinates and walks through
demonstration plans with a synthetic pointer, keyboard and narration.`,
	}

	rootCmd.PersistentFlags().BoolVar(&headless, "headless", false, "Run the browser headless (native clicks need a visible window)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")

	runCmd := &cobra.Command{
		Use:   "run <url> <instruction>",
		Short: "Plan and execute a demonstration from a natural language instruction",
		Args:  cobra.ExactArgs(2),
		RunE:  runDemo,
	}
	runCmd.Flags().StringVar(&provider, "provider", "", "Planner provider: openai, anthropic (default: from env)")
	runCmd.Flags().StringVar(&model, "model", "", "Planner model override")
	runCmd.Flags().StringVar(&speech, "speech", "", "Speech binary for narration (default: from env, console fallback)")

	execCmd := &cobra.Command{
		Use:   "exec <url> <plan.json>",
		Short: "Execute a demonstration plan from a JSON file",
		Args:  cobra.ExactArgs(2),
		RunE:  execPlan,
	}
	execCmd.Flags().StringVar(&speech, "speech", "", "Speech binary for narration (default: from env, console fallback)")

	calibrateCmd := &cobra.Command{
		Use:   "calibrate <url> <selector>",
		Short: "Resolve one element and report the coordinate calibration",
		Args:  cobra.ExactArgs(2),
		RunE:  runCalibrate,
	}
	calibrateCmd.Flags().StringVar(&screenshot, "screenshot", "", "Write a page screenshot to this path")

	rootCmd.AddCommand(runCmd, execCmd, calibrateCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func buildConfig(envService *env.EnvService, runName string) di.Config {
	geo := geometry.DefaultConfig()
	geo.ChromeMode = envService.GetWithDefault("CHROME_OFFSET_MODE", geo.ChromeMode)
	geo.ChromeFixed = envService.GetFloat("CHROME_OFFSET_FIXED", geo.ChromeFixed)
	geo.ChromeCorrection = envService.GetFloat("CHROME_HEIGHT_CORRECTION", geo.ChromeCorrection)
	geo.ChromeMin = envService.GetFloat("CHROME_OFFSET_MIN", geo.ChromeMin)
	geo.ChromeMax = envService.GetFloat("CHROME_OFFSET_MAX", geo.ChromeMax)
	geo.ChromeFallback = envService.GetFloat("CHROME_OFFSET_FALLBACK", geo.ChromeFallback)

	drv := inputdriver.DefaultConfig()
	drv.MoveDuration = envService.GetDuration("MOUSE_MOVE_DURATION", drv.MoveDuration)
	drv.BaseActionDelay = envService.GetDuration("ACTION_BASE_DELAY", drv.BaseActionDelay)
	drv.InterKeyDelay = envService.GetDuration("TYPE_KEY_DELAY", drv.InterKeyDelay)
	drv.CurveIntensity = envService.GetFloat("MOUSE_CURVE_INTENSITY", drv.CurveIntensity)
	drv.Curved = envService.GetBool("MOUSE_CURVED_PATHS", drv.Curved)

	plannerProvider := provider
	if plannerProvider == "" {
		plannerProvider = envService.GetWithDefault("PLANNER_PROVIDER", "openai")
	}
	apiKey := envService.Get("OPENAI_API_KEY")
	if plannerProvider == "anthropic" || plannerProvider == "claude" {
		apiKey = envService.Get("ANTHROPIC_API_KEY")
	}

	speechBinary := speech
	if speechBinary == "" {
		speechBinary = envService.Get("SPEECH_BINARY")
	}

	return di.Config{
		RunName:         runName,
		Debug:           debug,
		BrowserHeadless: headless,
		PlannerProvider: plannerProvider,
		PlannerAPIKey:   apiKey,
		PlannerModel:    model,
		PlannerBaseURL:  envService.Get("PLANNER_BASE_URL"),
		SpeechBinary:    speechBinary,
		Geometry:        geo,
		Driver:          drv,
	}
}

func runDemo(cmd *cobra.Command, args []string) error {
	url, instruction := args[0], args[1]
	envService := env.NewEnvService()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	cfg := buildConfig(envService, instruction)
	if cfg.PlannerAPIKey == "" {
		return fmt.Errorf("no planner API key configured (set OPENAI_API_KEY or ANTHROPIC_API_KEY)")
	}

	container, err := di.NewContainer(ctx, cfg)
	if err != nil {
		return err
	}
	defer container.Close()

	if err := container.Browser.Navigate(ctx, url); err != nil {
		return err
	}

	result, err := container.RunDemo.Run(ctx, instruction)
	if err != nil {
		return err
	}
	printResult(result)
	return nil
}

func execPlan(cmd *cobra.Command, args []string) error {
	url, planPath := args[0], args[1]
	envService := env.NewEnvService()

	data, err := os.ReadFile(planPath)
	if err != nil {
		return fmt.Errorf("read plan file: %w", err)
	}
	var plan entity.Plan
	if err := json.Unmarshal(data, &plan); err != nil {
		return fmt.Errorf("parse plan file: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	container, err := di.NewContainer(ctx, buildConfig(envService, planPath))
	if err != nil {
		return err
	}
	defer container.Close()

	if err := container.Browser.Navigate(ctx, url); err != nil {
		return err
	}

	result, err := container.Executor.Execute(ctx, plan)
	if err != nil {
		return err
	}
	printResult(result)
	return nil
}

func runCalibrate(cmd *cobra.Command, args []string) error {
	url, selector := args[0], args[1]
	envService := env.NewEnvService()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	container, err := di.NewContainer(ctx, buildConfig(envService, "calibrate"))
	if err != nil {
		return err
	}
	defer container.Close()

	if err := container.Browser.Navigate(ctx, url); err != nil {
		return err
	}

	report, err := container.Calibrate.Run(ctx, selector, screenshot)
	if err != nil {
		return err
	}

	fmt.Printf("selector:      %s\n", report.Selector)
	fmt.Printf("window origin: (%.0f, %.0f)\n", report.Frame.OriginX, report.Frame.OriginY)
	fmt.Printf("scroll:        (%.0f, %.0f)\n", report.Frame.ScrollX, report.Frame.ScrollY)
	fmt.Printf("chrome offset: %.0f px\n", report.ChromeOffset)
	fmt.Printf("screen point:  (%d, %d)\n", report.Resolved.Point.X, report.Resolved.Point.Y)
	if report.Resolved.Degraded {
		color.Yellow("resolution used a cached window frame")
	}
	if report.ScreenshotPath != "" {
		fmt.Printf("screenshot:    %s\n", report.ScreenshotPath)
	}
	return nil
}

func printResult(result *entity.ExecutionResult) {
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)

	fmt.Println()
	for _, step := range result.Steps {
		label := step.Type
		if step.Action != "" {
			label = fmt.Sprintf("%s/%s", step.Type, step.Action)
		}
		if step.Status == entity.StepSucceeded {
			green.Printf("  ✓ step %d %s\n", step.Index, label)
		} else {
			red.Printf("  ✗ step %d %s: %s\n", step.Index, label, step.Reason)
		}
	}
	fmt.Println()
	if result.AllSucceeded {
		green.Println("demonstration completed")
	} else {
		red.Println("demonstration completed with failures")
	}
}
