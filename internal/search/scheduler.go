package search

import "context"

// Task is a cooperative unit of work. Step performs one bounded slice of work
// and reports whether the task wants to run again.
type Task interface {
	Step() bool
}

// Generation identifies the current query. Tasks capture it when they start
// and stop once it is no longer current.
type Generation uint64

// Scheduler runs tasks one step at a time, round-robin. It does not start
// goroutines; the host decides when to call Step.
type Scheduler struct {
	tasks      []Task
	next       int
	generation Generation
}

// NewScheduler returns an idle scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Spawn queues task for execution.
func (s *Scheduler) Spawn(task Task) {
	if task == nil {
		return
	}
	s.tasks = append(s.tasks, task)
}

// Step advances a single task by one step and reports whether work remains.
func (s *Scheduler) Step() bool {
	if len(s.tasks) == 0 {
		return false
	}
	if s.next >= len(s.tasks) {
		s.next = 0
	}

	idx := s.next
	if s.tasks[idx].Step() {
		s.next = idx + 1
	} else {
		s.tasks = append(s.tasks[:idx], s.tasks[idx+1:]...)
		s.next = idx
	}
	return len(s.tasks) > 0
}

// Pending reports whether any task is still queued.
func (s *Scheduler) Pending() bool {
	return len(s.tasks) > 0
}

// RunUntilIdle steps tasks until none remain or ctx is done.
func (s *Scheduler) RunUntilIdle(ctx context.Context) error {
	for s.Pending() {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.Step()
	}
	return nil
}

// NextGeneration makes a fresh generation current and returns it.
func (s *Scheduler) NextGeneration() Generation {
	s.generation++
	return s.generation
}

// Current returns the live generation.
func (s *Scheduler) Current() Generation {
	return s.generation
}

// IsCurrent reports whether gen is still the live generation.
func (s *Scheduler) IsCurrent(gen Generation) bool {
	return s.generation == gen
}

// Reset drops all queued tasks and invalidates the live generation.
func (s *Scheduler) Reset() {
	s.tasks = nil
	s.next = 0
	s.generation++
}
