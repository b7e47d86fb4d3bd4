// Package robotgo injects pointer and keyboard events at the OS level.
package robotgo

import (
	"fmt"

	"github.com/go-vgo/robotgo"

	"demo-agent/internal/application/port/output"
	"demo-agent/internal/domain/entity"
)

// InputAdapter implements output.InputPort on top of the robotgo library.
// Events land on whatever window currently owns the given screen point, so
// the browser window must be frontmost before clicking.
type InputAdapter struct {
	logger output.LoggerPort
}

var _ output.InputPort = (*InputAdapter)(nil)

func NewInputAdapter(logger output.LoggerPort) *InputAdapter {
	return &InputAdapter{logger: logger.WithField("component", "os-input")}
}

func (a *InputAdapter) MoveCursor(x, y int) error {
	robotgo.Move(x, y)
	return nil
}

func (a *InputAdapter) ClickAt(x, y int) error {
	robotgo.Move(x, y)
	robotgo.Click("left", false)

	// robotgo reports nothing back; verify the pointer actually landed
	// where we asked, which catches a locked screen or denied permissions.
	cx, cy := robotgo.Location()
	if dx, dy := abs(cx-x), abs(cy-y); dx > 2 || dy > 2 {
		return fmt.Errorf("%w: pointer at (%d, %d) after click at (%d, %d)",
			entity.ErrInputInjectionFailed, cx, cy, x, y)
	}
	return nil
}

func (a *InputAdapter) TypeKeys(text string) error {
	if text == "" {
		return nil
	}
	robotgo.TypeStr(text)
	return nil
}

func (a *InputAdapter) CursorPosition() (int, int, error) {
	x, y := robotgo.Location()
	return x, y, nil
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
