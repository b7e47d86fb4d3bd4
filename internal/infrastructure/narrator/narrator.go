// Package narrator speaks plan narration to the viewer. Narration is best
// effort: callers treat failures as non-fatal.
package narrator

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/fatih/color"

	"demo-agent/internal/application/port/output"
)

var _ output.NarratorPort = (*CommandNarrator)(nil)

// CommandNarrator shells out to a local text-to-speech binary, "say" on
// macOS or "espeak" on Linux. The call blocks until playback finishes so
// narration and interaction stay in sequence.
type CommandNarrator struct {
	binary string
	args   []string
	logger output.LoggerPort
}

func NewCommandNarrator(binary string, args []string, logger output.LoggerPort) *CommandNarrator {
	if binary == "" {
		binary = "say"
	}
	return &CommandNarrator{
		binary: binary,
		args:   args,
		logger: logger.WithField("component", "narrator"),
	}
}

func (n *CommandNarrator) Narrate(ctx context.Context, content string) error {
	if content == "" {
		return nil
	}

	printNarration(content)

	cmd := exec.CommandContext(ctx, n.binary, append(n.args, content)...)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("speech command %q failed: %w", n.binary, err)
	}
	n.logger.Debug("narration spoken", "length", len(content))
	return nil
}

var _ output.NarratorPort = (*ConsoleNarrator)(nil)

// ConsoleNarrator prints narration instead of speaking it. Used when no
// speech binary is available or audio is disabled.
type ConsoleNarrator struct{}

func NewConsoleNarrator() *ConsoleNarrator {
	return &ConsoleNarrator{}
}

func (n *ConsoleNarrator) Narrate(_ context.Context, content string) error {
	if content == "" {
		return nil
	}
	printNarration(content)
	return nil
}

func printNarration(content string) {
	magenta := color.New(color.FgMagenta, color.Bold)
	magenta.Printf("\n[NARRATION] %s\n", content)
}
