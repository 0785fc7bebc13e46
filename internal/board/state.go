// Package board holds the client-side state for one open board and the
// optimistic mutation engines that act on it. The server stays the
// source of truth; this state is a lagging, optimistically-updated
// mirror scoped to a single board view.
package board

import "zenban/internal/domain"

// State maps a board's columns to their ordered task lists.
type State struct {
	columns []domain.Column
	tasks   map[int][]domain.Task
}

// NewState builds a State from loaded columns and their task lists.
// Columns are expected in server order; missing task lists read as empty.
func NewState(columns []domain.Column, tasksByColumn map[int][]domain.Task) *State {
	if tasksByColumn == nil {
		tasksByColumn = make(map[int][]domain.Task)
	}
	return &State{columns: columns, tasks: tasksByColumn}
}

// Columns returns the column list in order.
func (s *State) Columns() []domain.Column {
	return s.columns
}

// Tasks returns the ordered task list of a column.
func (s *State) Tasks(columnID int) []domain.Task {
	return s.tasks[columnID]
}

// SetTasks replaces a column's task list.
func (s *State) SetTasks(columnID int, tasks []domain.Task) {
	s.tasks[columnID] = tasks
}

// ReplaceColumns swaps in a freshly loaded column list, dropping task
// lists for columns that no longer exist.
func (s *State) ReplaceColumns(columns []domain.Column) {
	s.columns = columns
	keep := make(map[int]bool, len(columns))
	for _, col := range columns {
		keep[col.ID] = true
	}
	for id := range s.tasks {
		if !keep[id] {
			delete(s.tasks, id)
		}
	}
}

// ColumnOf scans all columns for the one owning the given task.
func (s *State) ColumnOf(taskID int) (int, bool) {
	for colID, list := range s.tasks {
		for _, t := range list {
			if t.ID == taskID {
				return colID, true
			}
		}
	}
	return 0, false
}

// TaskByID returns the task with the given id, wherever it lives.
func (s *State) TaskByID(taskID int) (domain.Task, bool) {
	for _, list := range s.tasks {
		for _, t := range list {
			if t.ID == taskID {
				return t, true
			}
		}
	}
	return domain.Task{}, false
}

// HasColumn reports whether the column exists on this board.
func (s *State) HasColumn(columnID int) bool {
	for _, col := range s.columns {
		if col.ID == columnID {
			return true
		}
	}
	return false
}

// indexOf returns the position of a task in a list, or -1.
func indexOf(list []domain.Task, taskID int) int {
	for i, t := range list {
		if t.ID == taskID {
			return i
		}
	}
	return -1
}

// taskIDs projects a task list to its id sequence.
func taskIDs(list []domain.Task) []int {
	ids := make([]int, len(list))
	for i, t := range list {
		ids[i] = t.ID
	}
	return ids
}
