package board

import (
	"context"
	"fmt"
	"sync/atomic"

	"zenban/internal/domain"
)

// Mover issues the server calls that confirm an optimistic move.
type Mover interface {
	ReorderTasks(ctx context.Context, columnID int, ids []int) error
	MoveTask(ctx context.Context, taskID, columnID int, beforeID, afterID *int) error
}

// DropTarget identifies where a grabbed task was released: on another
// task, or on a column itself (the empty-column case).
type DropTarget struct {
	TaskID   int // task under the drop point, 0 when none
	ColumnID int // column marker, 0 when dropping on a task
}

// dragGesture is the in-flight drag state between DragStart and DragEnd.
type dragGesture struct {
	taskID    int
	sourceCol int
	snapshot  domain.Task
}

// Engine turns drop gestures into optimistic state mutations plus the
// minimal confirmation calls. Local mutation happens synchronously in
// DragEnd; the returned Confirmation carries the server calls for the
// caller to run asynchronously. Confirmation failures are reported to
// the error sink and never rolled back; local and server state may
// diverge until the next full reload.
type Engine struct {
	state   *State
	mover   Mover
	onError func(error)

	drag *dragGesture

	// gen stamps each gesture; confirmations from an older gesture
	// are dropped so a slow confirmation cannot trail a newer one.
	// Atomic because Run executes off the update loop while new
	// gestures advance the counter on it.
	gen atomic.Uint64
}

// NewEngine creates an Engine over the given state. onError may be nil.
func NewEngine(state *State, mover Mover, onError func(error)) *Engine {
	if onError == nil {
		onError = func(error) {}
	}
	return &Engine{state: state, mover: mover, onError: onError}
}

// Dragging returns a snapshot of the task being dragged, for preview
// rendering, and whether a drag is in progress.
func (e *Engine) Dragging() (domain.Task, bool) {
	if e.drag == nil {
		return domain.Task{}, false
	}
	return e.drag.snapshot, true
}

// DragStart begins a gesture for the given task. It locates the task's
// current column by scanning the board; if the task cannot be found the
// call is a silent no-op.
func (e *Engine) DragStart(taskID int) {
	colID, ok := e.state.ColumnOf(taskID)
	if !ok {
		return
	}
	task, _ := e.state.TaskByID(taskID)
	e.drag = &dragGesture{taskID: taskID, sourceCol: colID, snapshot: task}
}

// Cancel abandons the in-flight gesture without mutating anything.
func (e *Engine) Cancel() {
	e.drag = nil
}

// DragEnd completes the gesture: it mutates the board state
// synchronously and returns the confirmation to run against the server,
// or nil when the drop was a no-op. The engine returns to idle either way.
func (e *Engine) DragEnd(taskID int, drop DropTarget) *Confirmation {
	defer func() { e.drag = nil }()

	sourceCol, ok := e.state.ColumnOf(taskID)
	if !ok {
		return nil
	}
	targetCol, ok := e.resolveTargetColumn(drop)
	if !ok {
		return nil
	}

	if sourceCol == targetCol {
		return e.reorderWithin(taskID, sourceCol, drop)
	}
	return e.moveAcross(taskID, sourceCol, targetCol, drop)
}

// resolveTargetColumn finds the column owning the drop point.
func (e *Engine) resolveTargetColumn(drop DropTarget) (int, bool) {
	if drop.TaskID != 0 {
		return e.state.ColumnOf(drop.TaskID)
	}
	if drop.ColumnID != 0 && e.state.HasColumn(drop.ColumnID) {
		return drop.ColumnID, true
	}
	return 0, false
}

// reorderWithin handles a drop inside the task's own column.
func (e *Engine) reorderWithin(taskID, colID int, drop DropTarget) *Confirmation {
	list := e.state.Tasks(colID)
	fromIdx := indexOf(list, taskID)
	toIdx := indexOf(list, drop.TaskID)
	if fromIdx == -1 || toIdx == -1 || fromIdx == toIdx {
		return nil
	}

	updated := arrayMove(list, fromIdx, toIdx)
	e.state.SetTasks(colID, updated)

	ids := taskIDs(updated)
	gen := e.nextGen()
	return e.confirmation(gen, func(ctx context.Context) error {
		if err := e.mover.ReorderTasks(ctx, colID, ids); err != nil {
			return fmt.Errorf("persisting reorder of column %d: %w", colID, err)
		}
		return nil
	})
}

// moveAcross handles a drop into a different column. The task is spliced
// out of the source list and inserted before the drop task (or appended
// when dropping on the column itself), then the move is confirmed with
// the task's immediate neighbors in the updated target list, followed by
// a full reorder of the target column to pin the final order.
func (e *Engine) moveAcross(taskID, sourceCol, targetCol int, drop DropTarget) *Confirmation {
	fromList := e.state.Tasks(sourceCol)
	fromIdx := indexOf(fromList, taskID)
	if fromIdx == -1 {
		return nil
	}
	moving := fromList[fromIdx]

	newFrom := make([]domain.Task, 0, len(fromList)-1)
	newFrom = append(newFrom, fromList[:fromIdx]...)
	newFrom = append(newFrom, fromList[fromIdx+1:]...)

	toList := e.state.Tasks(targetCol)
	insertIdx := len(toList)
	if drop.TaskID != 0 {
		if i := indexOf(toList, drop.TaskID); i != -1 {
			insertIdx = i
		}
	}
	newTo := make([]domain.Task, 0, len(toList)+1)
	newTo = append(newTo, toList[:insertIdx]...)
	newTo = append(newTo, moving)
	newTo = append(newTo, toList[insertIdx:]...)

	e.state.SetTasks(sourceCol, newFrom)
	e.state.SetTasks(targetCol, newTo)

	var beforeID, afterID *int
	if insertIdx+1 < len(newTo) {
		id := newTo[insertIdx+1].ID
		beforeID = &id
	}
	if insertIdx > 0 {
		id := newTo[insertIdx-1].ID
		afterID = &id
	}

	ids := taskIDs(newTo)
	gen := e.nextGen()
	return e.confirmation(gen, func(ctx context.Context) error {
		if err := e.mover.MoveTask(ctx, taskID, targetCol, beforeID, afterID); err != nil {
			return fmt.Errorf("moving task %d to column %d: %w", taskID, targetCol, err)
		}
		if err := e.mover.ReorderTasks(ctx, targetCol, ids); err != nil {
			return fmt.Errorf("persisting reorder of column %d: %w", targetCol, err)
		}
		return nil
	})
}

func (e *Engine) nextGen() uint64 {
	return e.gen.Add(1)
}

func (e *Engine) confirmation(gen uint64, run func(ctx context.Context) error) *Confirmation {
	return &Confirmation{engine: e, gen: gen, run: run}
}

// Confirmation is the deferred server-side half of a completed gesture.
type Confirmation struct {
	engine *Engine
	gen    uint64
	run    func(ctx context.Context) error
}

// Run executes the confirmation calls. Failures go to the engine's error
// sink; the optimistic mutation stands regardless. A confirmation that
// has been superseded by a newer gesture is skipped.
func (c *Confirmation) Run(ctx context.Context) {
	if c == nil {
		return
	}
	if c.gen != c.engine.gen.Load() {
		return
	}
	if err := c.run(ctx); err != nil {
		c.engine.onError(err)
	}
}

// arrayMove removes the element at from and reinserts it at to,
// preserving the relative order of all other elements.
func arrayMove(list []domain.Task, from, to int) []domain.Task {
	out := make([]domain.Task, 0, len(list))
	out = append(out, list[:from]...)
	out = append(out, list[from+1:]...)
	moved := list[from]
	out = append(out[:to], append([]domain.Task{moved}, out[to:]...)...)
	return out
}
