package output

// InputPort drives the OS-level synthetic pointer and keyboard. All
// coordinates are in absolute screen space. The pointer is a singleton OS
// resource; callers must not issue concurrent operations.
type InputPort interface {
	MoveCursor(x, y int) error
	ClickAt(x, y int) error
	TypeKeys(text string) error
	CursorPosition() (int, int, error)
}
