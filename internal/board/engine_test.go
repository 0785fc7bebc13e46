package board

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zenban/internal/domain"
)

// recordingMover captures confirmation calls for inspection.
type recordingMover struct {
	reorders []reorderCall
	moves    []moveCall

	reorderErr error
	moveErr    error
}

type reorderCall struct {
	columnID int
	ids      []int
}

type moveCall struct {
	taskID   int
	columnID int
	beforeID *int
	afterID  *int
}

func (m *recordingMover) ReorderTasks(ctx context.Context, columnID int, ids []int) error {
	m.reorders = append(m.reorders, reorderCall{columnID: columnID, ids: ids})
	return m.reorderErr
}

func (m *recordingMover) MoveTask(ctx context.Context, taskID, columnID int, beforeID, afterID *int) error {
	m.moves = append(m.moves, moveCall{taskID: taskID, columnID: columnID, beforeID: beforeID, afterID: afterID})
	return m.moveErr
}

func tasks(ids ...int) []domain.Task {
	out := make([]domain.Task, len(ids))
	for i, id := range ids {
		out[i] = domain.Task{ID: id}
	}
	return out
}

func twoColumnState() *State {
	cols := []domain.Column{
		{ID: 1, Name: "Todo"},
		{ID: 2, Name: "Doing"},
	}
	return NewState(cols, map[int][]domain.Task{
		1: tasks(7, 8),
		2: tasks(9, 10),
	})
}

func ids(list []domain.Task) []int { return taskIDs(list) }

func TestEngine_ReorderWithinColumn(t *testing.T) {
	state := NewState(
		[]domain.Column{{ID: 1}},
		map[int][]domain.Task{1: tasks(1, 2, 3, 4)},
	)
	mover := &recordingMover{}
	engine := NewEngine(state, mover, nil)

	engine.DragStart(2)
	conf := engine.DragEnd(2, DropTarget{TaskID: 4})
	require.NotNil(t, conf)

	// Local state updates before any server call.
	assert.Equal(t, []int{1, 3, 4, 2}, ids(state.Tasks(1)))
	assert.Empty(t, mover.reorders)

	conf.Run(context.Background())
	require.Len(t, mover.reorders, 1)
	assert.Equal(t, 1, mover.reorders[0].columnID)
	assert.Equal(t, []int{1, 3, 4, 2}, mover.reorders[0].ids)
	assert.Empty(t, mover.moves)
}

func TestEngine_ReorderDropOnSelfIsNoOp(t *testing.T) {
	state := NewState(
		[]domain.Column{{ID: 1}},
		map[int][]domain.Task{1: tasks(1, 2, 3)},
	)
	mover := &recordingMover{}
	engine := NewEngine(state, mover, nil)

	engine.DragStart(2)
	conf := engine.DragEnd(2, DropTarget{TaskID: 2})

	assert.Nil(t, conf)
	assert.Equal(t, []int{1, 2, 3}, ids(state.Tasks(1)))
	_, dragging := engine.Dragging()
	assert.False(t, dragging)
}

func TestEngine_MoveAcrossColumns(t *testing.T) {
	state := twoColumnState()
	mover := &recordingMover{}
	engine := NewEngine(state, mover, nil)

	// Drop task 7 onto task 9, which heads the second column.
	engine.DragStart(7)
	conf := engine.DragEnd(7, DropTarget{TaskID: 9})
	require.NotNil(t, conf)

	assert.Equal(t, []int{8}, ids(state.Tasks(1)))
	assert.Equal(t, []int{7, 9, 10}, ids(state.Tasks(2)))

	conf.Run(context.Background())

	require.Len(t, mover.moves, 1)
	move := mover.moves[0]
	assert.Equal(t, 7, move.taskID)
	assert.Equal(t, 2, move.columnID)
	require.NotNil(t, move.beforeID)
	assert.Equal(t, 9, *move.beforeID)
	assert.Nil(t, move.afterID)

	// The move is pinned by a full reorder of the target column.
	require.Len(t, mover.reorders, 1)
	assert.Equal(t, 2, mover.reorders[0].columnID)
	assert.Equal(t, []int{7, 9, 10}, mover.reorders[0].ids)
}

func TestEngine_MoveAcrossMiddleHasBothNeighbors(t *testing.T) {
	state := twoColumnState()
	mover := &recordingMover{}
	engine := NewEngine(state, mover, nil)

	engine.DragStart(7)
	conf := engine.DragEnd(7, DropTarget{TaskID: 10})
	require.NotNil(t, conf)

	assert.Equal(t, []int{9, 7, 10}, ids(state.Tasks(2)))

	conf.Run(context.Background())
	require.Len(t, mover.moves, 1)
	move := mover.moves[0]
	require.NotNil(t, move.beforeID)
	require.NotNil(t, move.afterID)
	assert.Equal(t, 10, *move.beforeID)
	assert.Equal(t, 9, *move.afterID)
}

func TestEngine_MoveToColumnEndHasNoSuccessor(t *testing.T) {
	state := twoColumnState()
	mover := &recordingMover{}
	engine := NewEngine(state, mover, nil)

	// Dropping on the column itself appends.
	engine.DragStart(7)
	conf := engine.DragEnd(7, DropTarget{ColumnID: 2})
	require.NotNil(t, conf)

	assert.Equal(t, []int{9, 10, 7}, ids(state.Tasks(2)))

	conf.Run(context.Background())
	require.Len(t, mover.moves, 1)
	move := mover.moves[0]
	assert.Nil(t, move.beforeID)
	require.NotNil(t, move.afterID)
	assert.Equal(t, 10, *move.afterID)
}

func TestEngine_MoveToEmptyColumn(t *testing.T) {
	state := NewState(
		[]domain.Column{{ID: 1}, {ID: 2}},
		map[int][]domain.Task{1: tasks(5)},
	)
	mover := &recordingMover{}
	engine := NewEngine(state, mover, nil)

	engine.DragStart(5)
	conf := engine.DragEnd(5, DropTarget{ColumnID: 2})
	require.NotNil(t, conf)

	assert.Empty(t, state.Tasks(1))
	assert.Equal(t, []int{5}, ids(state.Tasks(2)))

	conf.Run(context.Background())
	require.Len(t, mover.moves, 1)
	assert.Nil(t, mover.moves[0].beforeID)
	assert.Nil(t, mover.moves[0].afterID)
}

func TestEngine_TaskNeverDuplicatedAcrossColumns(t *testing.T) {
	state := twoColumnState()
	engine := NewEngine(state, &recordingMover{}, nil)

	engine.DragStart(8)
	engine.DragEnd(8, DropTarget{TaskID: 10})

	seen := map[int]int{}
	for _, col := range state.Columns() {
		for _, task := range state.Tasks(col.ID) {
			seen[task.ID]++
		}
	}
	for id, n := range seen {
		assert.Equal(t, 1, n, "task %d appears %d times", id, n)
	}
	assert.Len(t, seen, 4)
}

func TestEngine_DropOnUnknownTargetIsNoOp(t *testing.T) {
	state := twoColumnState()
	mover := &recordingMover{}
	engine := NewEngine(state, mover, nil)

	engine.DragStart(7)
	conf := engine.DragEnd(7, DropTarget{ColumnID: 99})

	assert.Nil(t, conf)
	assert.Equal(t, []int{7, 8}, ids(state.Tasks(1)))
}

func TestEngine_CancelLeavesStateUntouched(t *testing.T) {
	state := twoColumnState()
	engine := NewEngine(state, &recordingMover{}, nil)

	engine.DragStart(7)
	_, dragging := engine.Dragging()
	require.True(t, dragging)

	engine.Cancel()
	_, dragging = engine.Dragging()
	assert.False(t, dragging)
	assert.Equal(t, []int{7, 8}, ids(state.Tasks(1)))
}

func TestEngine_ConfirmationErrorGoesToSinkWithoutRollback(t *testing.T) {
	state := twoColumnState()
	mover := &recordingMover{moveErr: errors.New("boom")}

	var sunk error
	engine := NewEngine(state, mover, func(err error) { sunk = err })

	engine.DragStart(7)
	conf := engine.DragEnd(7, DropTarget{TaskID: 9})
	require.NotNil(t, conf)
	conf.Run(context.Background())

	require.Error(t, sunk)
	assert.Contains(t, sunk.Error(), "boom")
	// The optimistic mutation stands; the next reload reconciles.
	assert.Equal(t, []int{7, 9, 10}, ids(state.Tasks(2)))
}

func TestEngine_StaleConfirmationIsSkipped(t *testing.T) {
	state := NewState(
		[]domain.Column{{ID: 1}},
		map[int][]domain.Task{1: tasks(1, 2, 3)},
	)
	mover := &recordingMover{}
	engine := NewEngine(state, mover, nil)

	engine.DragStart(1)
	first := engine.DragEnd(1, DropTarget{TaskID: 3})
	require.NotNil(t, first)

	engine.DragStart(2)
	second := engine.DragEnd(2, DropTarget{TaskID: 1})
	require.NotNil(t, second)

	// The older confirmation arrives late and must not fire.
	first.Run(context.Background())
	assert.Empty(t, mover.reorders)

	second.Run(context.Background())
	require.Len(t, mover.reorders, 1)
	assert.Equal(t, ids(state.Tasks(1)), mover.reorders[0].ids)
}

func TestEngine_NilConfirmationRunIsSafe(t *testing.T) {
	var conf *Confirmation
	conf.Run(context.Background())
}

func TestEngine_ConfirmationRunsSafelyAcrossGestures(t *testing.T) {
	state := twoColumnState()
	mover := &recordingMover{}
	engine := NewEngine(state, mover, nil)

	engine.DragStart(7)
	first := engine.DragEnd(7, DropTarget{TaskID: 8})
	require.NotNil(t, first)

	// The first confirmation runs off the update loop while a new
	// gesture advances the generation on it. The race detector fails
	// this test if the staleness check is unsynchronized.
	done := make(chan struct{})
	go func() {
		defer close(done)
		first.Run(context.Background())
	}()

	engine.DragStart(9)
	second := engine.DragEnd(9, DropTarget{TaskID: 10})
	require.NotNil(t, second)
	<-done

	second.Run(context.Background())

	// The newest confirmation always fires and fires last; the first
	// one either ran before being superseded or was skipped.
	require.NotEmpty(t, mover.reorders)
	require.LessOrEqual(t, len(mover.reorders), 2)
	last := mover.reorders[len(mover.reorders)-1]
	assert.Equal(t, 2, last.columnID)
	assert.Equal(t, []int{10, 9}, last.ids)
	assert.Equal(t, []int{8, 7}, ids(state.Tasks(1)))
}

func TestArrayMove(t *testing.T) {
	tests := []struct {
		name     string
		from, to int
		want     []int
	}{
		{"forward", 0, 2, []int{2, 3, 1, 4}},
		{"backward", 3, 1, []int{1, 4, 2, 3}},
		{"adjacent", 1, 2, []int{1, 3, 2, 4}},
		{"to front", 2, 0, []int{3, 1, 2, 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := tasks(1, 2, 3, 4)
			got := arrayMove(in, tt.from, tt.to)
			assert.Equal(t, tt.want, ids(got))
			// The input list is left intact.
			assert.Equal(t, []int{1, 2, 3, 4}, ids(in))
		})
	}
}
