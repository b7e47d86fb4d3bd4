package inputdriver

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"demo-agent/internal/domain/entity"
	"demo-agent/internal/infrastructure/logger"
	"demo-agent/internal/usecase/geometry"
)

type fakeInput struct {
	moves     []entity.ScreenPoint
	clicks    []entity.ScreenPoint
	typed     []string
	clickErr  error
	typeErr   error
	positionX int
	positionY int
}

func (f *fakeInput) MoveCursor(x, y int) error {
	f.moves = append(f.moves, entity.ScreenPoint{X: x, Y: y})
	f.positionX, f.positionY = x, y
	return nil
}

func (f *fakeInput) ClickAt(x, y int) error {
	if f.clickErr != nil {
		return f.clickErr
	}
	f.clicks = append(f.clicks, entity.ScreenPoint{X: x, Y: y})
	return nil
}

func (f *fakeInput) TypeKeys(text string) error {
	if f.typeErr != nil {
		return f.typeErr
	}
	f.typed = append(f.typed, text)
	return nil
}

func (f *fakeInput) CursorPosition() (int, int, error) {
	return f.positionX, f.positionY, nil
}

type fakeBrowser struct {
	domClicks   []string
	domClickErr error
}

func (f *fakeBrowser) Navigate(ctx context.Context, url string) error { return nil }

func (f *fakeBrowser) ElementGeometry(ctx context.Context, selector string) (entity.ElementGeometry, error) {
	return entity.ElementGeometry{X: 40, Y: 50, Width: 20, Height: 20}, nil
}

func (f *fakeBrowser) WindowFrame(ctx context.Context) (entity.WindowFrame, error) {
	return entity.WindowFrame{
		OriginX: 100, OriginY: 200, BoundsX: 100, BoundsY: 200,
		InnerHeight: 705, OuterHeight: 800,
	}, nil
}

func (f *fakeBrowser) DOMClick(ctx context.Context, selector string) error {
	if f.domClickErr != nil {
		return f.domClickErr
	}
	f.domClicks = append(f.domClicks, selector)
	return nil
}

func (f *fakeBrowser) PageHTML(ctx context.Context) (string, error) { return "", nil }
func (f *fakeBrowser) Screenshot(ctx context.Context) (*entity.Screenshot, error) {
	return nil, errors.New("not implemented")
}
func (f *fakeBrowser) Bring(ctx context.Context) error { return nil }
func (f *fakeBrowser) CurrentURL() string              { return "" }
func (f *fakeBrowser) Close()                          {}

func newTestDriver(input *fakeInput, browser *fakeBrowser) *Driver {
	cfg := DefaultConfig()
	cfg.MoveDuration = 10 * time.Millisecond
	cfg.BaseActionDelay = 0
	cfg.InterKeyDelay = 0
	cfg.Seed = 1

	resolver := geometry.New(browser, logger.NewNop(), geometry.DefaultConfig())
	d := New(input, browser, resolver, logger.NewNop(), cfg)
	d.sleep = func(time.Duration) {}
	return d
}

func TestMoveTo_ReachesTarget(t *testing.T) {
	input := &fakeInput{}
	d := newTestDriver(input, &fakeBrowser{})

	target := entity.ScreenPoint{X: 300, Y: 400}
	require.NoError(t, d.MoveTo(context.Background(), target, 100*time.Millisecond, true, 5))

	require.NotEmpty(t, input.moves)
	assert.Equal(t, target, input.moves[len(input.moves)-1])
}

func TestClick_NativeStrategyWins(t *testing.T) {
	input := &fakeInput{}
	browser := &fakeBrowser{}
	d := newTestDriver(input, browser)

	require.NoError(t, d.Click(context.Background(), "#btn"))

	// screen point: origin (100,200) + center (50,60) + chrome 70
	require.Len(t, input.clicks, 1)
	assert.Equal(t, entity.ScreenPoint{X: 150, Y: 330}, input.clicks[0])
	assert.Empty(t, browser.domClicks, "DOM fallback must not run when the native click works")
}

func TestClick_FallsBackToDOM(t *testing.T) {
	input := &fakeInput{clickErr: errors.New("injection blocked")}
	browser := &fakeBrowser{}
	d := newTestDriver(input, browser)

	require.NoError(t, d.Click(context.Background(), "#btn"))

	assert.Equal(t, []string{"#btn"}, browser.domClicks)
}

func TestClick_AllStrategiesFail(t *testing.T) {
	input := &fakeInput{clickErr: errors.New("injection blocked")}
	browser := &fakeBrowser{domClickErr: errors.New("node detached")}
	d := newTestDriver(input, browser)

	err := d.Click(context.Background(), "#btn")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "node detached")
}

func TestTypeText_EmptyIsNoop(t *testing.T) {
	input := &fakeInput{}
	d := newTestDriver(input, &fakeBrowser{})

	require.NoError(t, d.TypeText(context.Background(), ""))
	assert.Empty(t, input.typed)
}

func TestTypeText_OneKeystrokePerRune(t *testing.T) {
	input := &fakeInput{}
	d := newTestDriver(input, &fakeBrowser{})

	require.NoError(t, d.TypeText(context.Background(), "héy"))
	assert.Equal(t, []string{"h", "é", "y"}, input.typed)
}

func TestTypeText_InjectionFailure(t *testing.T) {
	input := &fakeInput{typeErr: errors.New("keyboard grabbed")}
	d := newTestDriver(input, &fakeBrowser{})

	err := d.TypeText(context.Background(), "abc")
	assert.ErrorIs(t, err, entity.ErrInputInjectionFailed)
}

func TestMoveTo_CancelledContext(t *testing.T) {
	input := &fakeInput{}
	d := newTestDriver(input, &fakeBrowser{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := d.MoveTo(ctx, entity.ScreenPoint{X: 10, Y: 10}, 100*time.Millisecond, false, 1)
	assert.ErrorIs(t, err, context.Canceled)
}
