package inputdriver

import (
	"testing"
	"time"

	"demo-agent/internal/domain/entity"
)

func TestGeneratePath_EndpointsExact(t *testing.T) {
	start := entity.ScreenPoint{X: 10, Y: 20}
	end := entity.ScreenPoint{X: 400, Y: 300}

	path := GeneratePath(start, end, 500*time.Millisecond, 20, true, 0.2, 0.2, 42)

	if path.Points[0] != start {
		t.Errorf("path must start at %v, got %v", start, path.Points[0])
	}
	if last := path.Points[len(path.Points)-1]; last != end {
		t.Errorf("path must end at %v, got %v", end, last)
	}
}

func TestGeneratePath_MinimumPoints(t *testing.T) {
	path := GeneratePath(entity.ScreenPoint{}, entity.ScreenPoint{X: 5, Y: 5}, 50*time.Millisecond, 20, true, 0.2, 0.2, 1)

	if len(path.Points) != minPathPoints {
		t.Errorf("expected %d points for a very short move, got %d", minPathPoints, len(path.Points))
	}
}

func TestGeneratePath_PointCountScalesWithDuration(t *testing.T) {
	short := GeneratePath(entity.ScreenPoint{}, entity.ScreenPoint{X: 500, Y: 0}, time.Second, 20, true, 0.2, 0.2, 1)
	long := GeneratePath(entity.ScreenPoint{}, entity.ScreenPoint{X: 500, Y: 0}, 2*time.Second, 20, true, 0.2, 0.2, 1)

	if len(short.Points) != 20 {
		t.Errorf("expected 20 points for 1s at 20pps, got %d", len(short.Points))
	}
	if len(long.Points) != 40 {
		t.Errorf("expected 40 points for 2s at 20pps, got %d", len(long.Points))
	}
}

func TestGeneratePath_DeterministicForSeed(t *testing.T) {
	start := entity.ScreenPoint{X: 0, Y: 0}
	end := entity.ScreenPoint{X: 800, Y: 600}

	a := GeneratePath(start, end, time.Second, 20, true, 0.2, 0.2, 7)
	b := GeneratePath(start, end, time.Second, 20, true, 0.2, 0.2, 7)

	for i := range a.Points {
		if a.Points[i] != b.Points[i] {
			t.Fatalf("point %d differs between identical seeds: %v vs %v", i, a.Points[i], b.Points[i])
		}
	}
	for i := range a.Delays {
		if a.Delays[i] != b.Delays[i] {
			t.Fatalf("delay %d differs between identical seeds", i)
		}
	}
}

func TestGeneratePath_StraightWhenNotCurved(t *testing.T) {
	path := GeneratePath(entity.ScreenPoint{X: 0, Y: 0}, entity.ScreenPoint{X: 1000, Y: 0}, time.Second, 20, false, 0.2, 0.2, 9)

	for _, p := range path.Points {
		if p.Y != 0 {
			t.Errorf("straight horizontal path must stay on the line, got %v", p)
		}
	}
}

func TestGeneratePath_CurvedLeavesTheLine(t *testing.T) {
	path := GeneratePath(entity.ScreenPoint{X: 0, Y: 0}, entity.ScreenPoint{X: 1000, Y: 0}, time.Second, 20, true, 0.2, 0.2, 9)

	bent := false
	for _, p := range path.Points {
		if p.Y != 0 {
			bent = true
			break
		}
	}
	if !bent {
		t.Error("curved path should deviate from the straight line")
	}
}

func TestGeneratePath_DelaysPerSegment(t *testing.T) {
	path := GeneratePath(entity.ScreenPoint{}, entity.ScreenPoint{X: 300, Y: 300}, time.Second, 20, true, 0.2, 0.2, 3)

	if len(path.Delays) != len(path.Points)-1 {
		t.Fatalf("expected %d delays, got %d", len(path.Points)-1, len(path.Delays))
	}

	segment := time.Second / time.Duration(len(path.Points))
	lo := time.Duration(float64(segment) * 0.8)
	hi := time.Duration(float64(segment) * 1.2)
	for i, d := range path.Delays {
		if d < lo || d > hi {
			t.Errorf("delay %d = %v outside jitter bounds [%v, %v]", i, d, lo, hi)
		}
	}
}
