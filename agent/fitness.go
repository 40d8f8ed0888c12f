package agent

import (
	"math"

	"github.com/pthm-cable/thrust/geom"
)

// Fitness weights. A checkpoint is worth more than the largest possible
// distance reward, so passing one more checkpoint always ranks higher.
const (
	CheckpointReward   = 10000.0
	MaxDistanceReward  = 2000.0
	DistanceRewardRate = 2.0
	CompletionReward   = 20000.0
	SpeedReward        = 5000.0
	MovementReward     = 0.1

	// bestDistance values at or above this were never really recorded.
	recordedDistanceLimit = 99999.0
)

// CalcFitness scores the agent at the end of its life and stores the result.
// Progress is read from the agent's own checkpoint record; start is the
// generation's spawn point and maxLifetime its tick limit.
func (a *Agent) CalcFitness(start geom.Vec2, maxLifetime int) float64 {
	fitness := CheckpointReward * float64(a.VisitedCount())

	if a.bestDistance < recordedDistanceLimit {
		fitness += math.Max(0, MaxDistanceReward-a.bestDistance*DistanceRewardRate)
	}

	if a.completed {
		fitness += CompletionReward
		fitness += SpeedReward * float64(maxLifetime) / float64(a.timeAlive+1)
	}

	fitness += a.pos.Dist(start) * MovementReward

	a.fitness = fitness
	return fitness
}
