package agent

import (
	"github.com/pthm-cable/thrust/geom"
)

// Sense casts every sensor ray from the current position and records the
// nearest obstacle wall hit along each. Rays that hit nothing report the
// full sensor range.
func (a *Agent) Sense(obstacles []geom.Rect) {
	if !a.active() {
		return
	}

	maxDist := a.params.SensorRange
	base := a.rotation

	for i, angle := range a.params.SensorAngles {
		end := a.pos.Add(geom.FromAngle(headingRad(base+angle), maxDist))
		a.sensors[i] = castRay(a.pos, end, maxDist, obstacles)
	}
}

// castRay intersects origin->end against the four walls of each obstacle.
func castRay(origin, end geom.Vec2, maxDist float64, obstacles []geom.Rect) SensorReading {
	reading := SensorReading{End: end, Distance: maxDist}

	for _, ob := range obstacles {
		for _, wall := range ob.Edges() {
			hit, ok := geom.SegmentIntersection(origin, end, wall.A, wall.B)
			if !ok {
				continue
			}
			if d := hit.Dist(origin); d < reading.Distance {
				reading = SensorReading{End: hit, Distance: d, Hit: true}
			}
		}
	}
	return reading
}
