package inputdriver

import (
	"math"
	"math/rand"
	"time"

	"demo-agent/internal/domain/entity"
)

const minPathPoints = 10

// Path is a sampled pointer trajectory. Delays[i] is the pause after
// emitting Points[i]; it has one entry per segment, so its length is
// len(Points)-1.
type Path struct {
	Points []entity.ScreenPoint
	Delays []time.Duration
}

// GeneratePath builds the trajectory from start to end. With curved it
// bends the straight line into a quadratic Bezier whose control point is
// offset perpendicular to the line by intensity x distance, to a random
// side. The result is a pure function of the arguments: the same seed
// always yields the same path, which keeps tests deterministic.
func GeneratePath(start, end entity.ScreenPoint, duration time.Duration, pointsPerSecond int, curved bool, intensity, segmentJitter float64, seed int64) Path {
	rng := rand.New(rand.NewSource(seed))

	numPoints := int(duration.Seconds() * float64(pointsPerSecond))
	if numPoints < minPathPoints {
		numPoints = minPathPoints
	}

	sx, sy := float64(start.X), float64(start.Y)
	ex, ey := float64(end.X), float64(end.Y)
	dx, dy := ex-sx, ey-sy
	dist := math.Hypot(dx, dy)

	cx, cy := sx+dx/2, sy+dy/2
	if curved && dist > 0 {
		sign := float64(rng.Intn(2)*2 - 1)
		offset := intensity * dist * sign
		// Unit perpendicular to the straight line.
		cx += -dy / dist * offset
		cy += dx / dist * offset
	}

	points := make([]entity.ScreenPoint, numPoints)
	for i := 0; i < numPoints; i++ {
		t := float64(i) / float64(numPoints-1)
		omt := 1 - t
		x := omt*omt*sx + 2*omt*t*cx + t*t*ex
		y := omt*omt*sy + 2*omt*t*cy + t*t*ey
		points[i] = entity.ScreenPoint{X: int(math.Round(x)), Y: int(math.Round(y))}
	}

	segment := duration / time.Duration(numPoints)
	delays := make([]time.Duration, numPoints-1)
	for i := range delays {
		delays[i] = jitterDuration(rng, segment, segmentJitter)
	}

	return Path{Points: points, Delays: delays}
}

// jitterDuration scales d by a random factor in [1-fraction, 1+fraction].
func jitterDuration(rng *rand.Rand, d time.Duration, fraction float64) time.Duration {
	factor := 1 + (rng.Float64()*2-1)*fraction
	return time.Duration(float64(d) * factor)
}
