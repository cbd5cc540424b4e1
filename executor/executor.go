// Package executor provides a cooperative single-threaded executor for
// steptrace tasks.
package executor

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/sarchlab/steptrace"
	"github.com/sarchlab/steptrace/hooking"
)

// ErrTickLimit is returned by Run when the tick limit is reached before all
// the tasks complete.
var ErrTickLimit = errors.New("tick limit reached")

type spawnedTask struct {
	step func() bool
}

// An Executor steps tasks in rounds. In every round, or tick, each pending
// task is stepped exactly once, in the order the tasks were spawned.
//
// The executor is also a hooking domain. Instruments that publish spans to it
// report the executor name as the location of the spans, and Now can be used
// as the time teller of tracers.
type Executor struct {
	*hooking.Domain

	// MaxTicks limits the number of ticks Run executes. Zero means no limit.
	MaxTicks uint64

	lock  sync.Mutex
	tick  uint64
	tasks []spawnedTask
}

// NewExecutor creates a new Executor.
func NewExecutor(name string) *Executor {
	return &Executor{
		Domain: hooking.NewDomain(name),
	}
}

// Spawn adds a task to the executor. The task is first stepped in the next
// tick. If onDone is not nil, it is called with the task output when the task
// completes. Tasks can be spawned from onDone callbacks.
func Spawn[T any](e *Executor, task steptrace.Task[T], onDone func(T)) {
	if task == nil {
		panic("task must not be nil")
	}

	step := func() bool {
		out, done := task.Step()
		if done && onDone != nil {
			onDone(out)
		}

		return done
	}

	e.lock.Lock()
	e.tasks = append(e.tasks, spawnedTask{step: step})
	e.lock.Unlock()
}

// Now returns the current tick.
func (e *Executor) Now() float64 {
	e.lock.Lock()
	defer e.lock.Unlock()

	return float64(e.tick)
}

// Pending returns the number of tasks that have not completed.
func (e *Executor) Pending() int {
	e.lock.Lock()
	defer e.lock.Unlock()

	return len(e.tasks)
}

// Run steps the tasks until all of them complete. It stops early when the
// context is cancelled or the tick limit is reached. The tasks that have not
// completed when Run returns are dropped.
func (e *Executor) Run(ctx context.Context) error {
	for {
		tasks, err := e.startTick(ctx)
		if err != nil {
			e.dropAll()
			return err
		}

		if len(tasks) == 0 {
			return nil
		}

		remaining := make([]spawnedTask, 0, len(tasks))
		for _, t := range tasks {
			if !t.step() {
				remaining = append(remaining, t)
			}
		}

		e.endTick(remaining)
	}
}

func (e *Executor) startTick(ctx context.Context) ([]spawnedTask, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("executor %s: %w", e.Name(), err)
	}

	e.lock.Lock()
	defer e.lock.Unlock()

	if len(e.tasks) == 0 {
		return nil, nil
	}

	if e.MaxTicks > 0 && e.tick >= e.MaxTicks {
		return nil, fmt.Errorf("executor %s after %d ticks: %w",
			e.Name(), e.tick, ErrTickLimit)
	}

	tasks := e.tasks
	e.tasks = nil

	return tasks, nil
}

// endTick puts the unfinished tasks in front of the tasks spawned during the
// tick and advances the time.
func (e *Executor) endTick(remaining []spawnedTask) {
	e.lock.Lock()
	defer e.lock.Unlock()

	e.tasks = append(remaining, e.tasks...)
	e.tick++
}

func (e *Executor) dropAll() {
	e.lock.Lock()
	e.tasks = nil
	e.lock.Unlock()
}
