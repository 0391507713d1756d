package roadmap

import (
	"math"

	"skilltrail/pkg/domain"
)

// Progress returns the percentage of steps marked complete as an integer in
// [0,100], rounded half-up. An empty step list is 0 percent. Pure and order
// independent: only the counts matter.
func Progress(steps []domain.Step) int {
	if len(steps) == 0 {
		return 0
	}
	completed := 0
	for _, step := range steps {
		if step.Completed {
			completed++
		}
	}
	return int(math.Round(float64(completed) / float64(len(steps)) * 100))
}
