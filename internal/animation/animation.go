// Package animation implements ViewAnimation: a single FIFO queue of
// view-movement tasks, drained once per fixed-period tick and eased with
// a smoothstep curve.
package animation

import (
	"github.com/cardboardwm/cardboard/internal/view"
)

// Task is one queued view movement.
type Task struct {
	View      *view.View
	StartX    int32
	StartY    int32
	TargetX   int32
	TargetY   int32
	Elapsed   float64 // seconds since enqueue
	Duration  float64 // seconds
	Cancelled bool
	OnFinished func()
}

// Queue is the FIFO animation queue. It is not safe for concurrent use;
// the single-threaded core loop owns it.
type Queue struct {
	tasks []*Task
}

// NewQueue returns an empty animation queue.
func NewQueue() *Queue { return &Queue{} }

// Enqueue captures v's current position as the task's start and queues a
// task animating it toward (targetX, targetY) over duration seconds.
func (q *Queue) Enqueue(v *view.View, targetX, targetY int32, duration float64, onFinished func()) *Task {
	t := &Task{
		View: v, StartX: v.X, StartY: v.Y, TargetX: targetX, TargetY: targetY,
		Duration: duration, OnFinished: onFinished,
	}
	v.SetTarget(targetX, targetY)
	q.tasks = append(q.tasks, t)
	return t
}

// CancelTasks marks every task referencing v as cancelled and snaps v to
// its target immediately.
func (q *Queue) CancelTasks(v *view.View) {
	for _, t := range q.tasks {
		if t.View == v {
			t.Cancelled = true
		}
	}
	v.SetPosition(v.TargetX, v.TargetY)
}

// smoothstep is the standard cubic ease: t^2 * (3 - 2t).
func smoothstep(t float64) float64 {
	return t * t * (3 - 2*t)
}

// Tick drains the queue once (its length at the moment Tick is called),
// advancing each non-cancelled task by dt seconds. Tasks that have not
// yet reached 99.9% completeness are re-enqueued for the next tick;
// finished tasks fire their OnFinished callback, if set.
func (q *Queue) Tick(dt float64) {
	n := len(q.tasks)
	pending := q.tasks[:n]
	q.tasks = q.tasks[n:]

	for _, t := range pending {
		if t.Cancelled {
			continue
		}
		t.Elapsed += dt
		frac := t.Elapsed / t.Duration
		if frac > 1 {
			frac = 1
		}
		ease := smoothstep(frac)
		t.View.X = t.StartX - int32(ease*float64(t.StartX-t.TargetX))
		t.View.Y = t.StartY - int32(ease*float64(t.StartY-t.TargetY))

		if frac < 0.999 {
			q.tasks = append(q.tasks, t)
			continue
		}
		t.View.SetPosition(t.TargetX, t.TargetY)
		if t.OnFinished != nil {
			t.OnFinished()
		}
	}
}

// Len reports the number of tasks currently queued (for tests/metrics).
func (q *Queue) Len() int { return len(q.tasks) }
