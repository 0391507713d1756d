package roadmap

import (
	"testing"

	"skilltrail/pkg/domain"
)

func TestProgressNoSteps(t *testing.T) {
	if got := Progress(nil); got != 0 {
		t.Fatalf("Progress(nil) = %d, want 0", got)
	}
	if got := Progress([]domain.Step{}); got != 0 {
		t.Fatalf("Progress(empty) = %d, want 0", got)
	}
}

func TestProgressRounding(t *testing.T) {
	cases := []struct {
		completed int
		total     int
		want      int
	}{
		{0, 3, 0},
		{1, 3, 33},
		{2, 3, 67},
		{3, 3, 100},
		{1, 2, 50},
		{1, 8, 13},
		{1, 1, 100},
	}
	for _, tc := range cases {
		steps := make([]domain.Step, tc.total)
		for i := 0; i < tc.completed; i++ {
			steps[i].Completed = true
		}
		if got := Progress(steps); got != tc.want {
			t.Fatalf("Progress(%d of %d) = %d, want %d", tc.completed, tc.total, got, tc.want)
		}
	}
}

func TestProgressOrderIndependent(t *testing.T) {
	front := []domain.Step{{Completed: true}, {Completed: true}, {}, {}}
	back := []domain.Step{{}, {}, {Completed: true}, {Completed: true}}
	if Progress(front) != Progress(back) {
		t.Fatalf("progress depends on which indices are complete: %d vs %d", Progress(front), Progress(back))
	}
}
