package animation

import (
	"testing"

	"github.com/cardboardwm/cardboard/internal/view"
)

func TestTaskReachesTargetOverTime(t *testing.T) {
	q := NewQueue()
	v := &view.View{}
	v.SetPosition(0, 0)

	finished := false
	q.Enqueue(v, 100, 0, 0.16, func() { finished = true })

	for i := 0; i < 20 && !finished; i++ {
		q.Tick(0.016)
	}

	if !finished {
		t.Fatalf("expected animation to finish")
	}
	if v.X != 100 {
		t.Fatalf("expected view to snap to target x=100, got %d", v.X)
	}
	if q.Len() != 0 {
		t.Fatalf("expected queue drained, got %d tasks", q.Len())
	}
}

func TestCancelTasksSnapsToTarget(t *testing.T) {
	q := NewQueue()
	v := &view.View{}
	v.SetPosition(0, 0)
	q.Enqueue(v, 50, 50, 1.0, nil)

	q.CancelTasks(v)

	if v.X != 50 || v.Y != 50 {
		t.Fatalf("expected view snapped to target, got (%d,%d)", v.X, v.Y)
	}

	q.Tick(0.016)
	if v.X != 50 {
		t.Fatalf("expected cancelled task to not move view further")
	}
}

func TestEasingIsMonotonicTowardTarget(t *testing.T) {
	q := NewQueue()
	v := &view.View{}
	v.SetPosition(0, 0)
	q.Enqueue(v, 100, 0, 0.5, nil)

	var prev int32 = -1
	for i := 0; i < 10; i++ {
		q.Tick(0.05)
		if v.X < prev {
			t.Fatalf("expected monotonic progress toward target, got x=%d after prev=%d", v.X, prev)
		}
		prev = v.X
	}
}
